package tui

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"petmate/internal/client"
	"petmate/internal/platform/httpclient"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	petName = iota
	petType
	petBreed
	petAge
	petDescription
	petImage
	petFieldCount
)

var petLabels = [petFieldCount]string{"Name", "Type", "Breed", "Age", "Description", "Image URL"}

var petServerFields = map[string]int{
	"name":        petName,
	"type":        petType,
	"breed":       petBreed,
	"age":         petAge,
	"description": petDescription,
	"image":       petImage,
}

type profileLoadedMsg struct {
	user client.User
	pets []client.Pet
	err  error
}

type petSavedMsg struct {
	pet client.Pet
	err error
}

type petDeletedMsg struct {
	name string
	err  error
}

// petForm sirve para alta y edición; editing vacío = alta.
type petForm struct {
	editing string
	title   string
	inputs  [petFieldCount]textinput.Model
	focus   int
	fields  map[int]string
	err     string
}

func newPetForm(p *client.Pet) *petForm {
	f := &petForm{title: "New pet"}
	for i := range f.inputs {
		in := textinput.New()
		in.Prompt = ""
		in.CharLimit = 80
		in.Placeholder = petLabels[i]
		in.Cursor.SetMode(cursor.CursorStatic)
		f.inputs[i] = in
	}
	f.inputs[petType].Placeholder = "dog, cat, bird, hamster, other"
	f.inputs[petDescription].CharLimit = 500
	f.inputs[petImage].CharLimit = 300

	if p != nil {
		f.editing = p.ID
		f.title = "Edit " + p.Name
		f.inputs[petName].SetValue(p.Name)
		f.inputs[petType].SetValue(p.Type)
		f.inputs[petBreed].SetValue(p.Breed)
		f.inputs[petAge].SetValue(strconv.Itoa(p.Age))
		f.inputs[petDescription].SetValue(p.Description)
		f.inputs[petImage].SetValue(p.Image)
	}
	return f
}

func (f *petForm) setFocus(i int) tea.Cmd {
	for k := range f.inputs {
		f.inputs[k].Blur()
	}
	f.focus = (i + petFieldCount) % petFieldCount
	return f.inputs[f.focus].Focus()
}

func (f *petForm) value(i int) string { return strings.TrimSpace(f.inputs[i].Value()) }

// age: vacío = sin dato (lo rechaza el server); no numérico se corta acá.
func (f *petForm) age() (*int, bool) {
	raw := f.value(petAge)
	if raw == "" {
		return nil, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, false
	}
	return &n, true
}

func (f *petForm) submit(b Backend) tea.Cmd {
	f.err, f.fields = "", nil

	age, ok := f.age()
	if !ok {
		f.fields = map[int]string{petAge: "Age must be a number"}
		return nil
	}

	name, breed := f.value(petName), f.value(petBreed)
	typ := strings.ToLower(f.value(petType))
	desc, image := f.value(petDescription), f.value(petImage)

	if f.editing == "" {
		in := client.PetInput{Name: name, Type: typ, Breed: breed, Age: age, Description: desc, Image: image}
		return func() tea.Msg {
			p, err := b.CreatePet(context.Background(), in)
			return petSavedMsg{pet: p, err: err}
		}
	}

	id := f.editing
	patch := client.PetPatch{Name: &name, Type: &typ, Breed: &breed, Age: age, Description: &desc, Image: &image}
	return func() tea.Msg {
		p, err := b.UpdatePet(context.Background(), id, patch)
		return petSavedMsg{pet: p, err: err}
	}
}

func (f *petForm) fail(err error) {
	f.err = client.Message(err)

	var he *httpclient.HTTPError
	if !errors.As(err, &he) || len(he.Fields) == 0 {
		return
	}
	f.fields = make(map[int]string, len(he.Fields))
	var extra []string
	for k, v := range he.Fields {
		if i, ok := petServerFields[k]; ok {
			f.fields[i] = v
			continue
		}
		extra = append(extra, v)
	}
	sort.Strings(extra)
	if len(extra) > 0 {
		f.err += ": " + strings.Join(extra, ", ")
	}
}

func (f *petForm) view() string {
	var b strings.Builder
	b.WriteString(nameStyle.Render(f.title) + "\n\n")
	for i := range f.inputs {
		label := labelStyle.Render(petLabels[i])
		if i == f.focus {
			label = focusStyle.Inherit(labelStyle).Render(petLabels[i])
		}
		line := lipgloss.JoinHorizontal(lipgloss.Top, label, f.inputs[i].View())
		if msg, ok := f.fields[i]; ok {
			line += "  " + errStyle.Render(msg)
		}
		b.WriteString(line + "\n")
	}
	if f.err != "" {
		b.WriteString("\n" + errStyle.Render(f.err))
	}
	b.WriteString(helpStyle.Render("tab next • enter save • esc cancel"))
	return b.String()
}

// profileModel: datos del usuario y sus mascotas. Sin mascotas abre el alta directamente.
type profileModel struct {
	spinner spinner.Model
	loading bool
	busy    bool

	user     client.User
	pets     []client.Pet
	selected int
	deleting bool

	form   *petForm
	err    error
	notice string
}

func newProfileModel() profileModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = focusStyle
	return profileModel{spinner: sp}
}

func (m *profileModel) init(b Backend) tea.Cmd {
	m.loading = true
	m.err = nil
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		ctx := context.Background()
		u, err := b.Me(ctx)
		if err != nil {
			return profileLoadedMsg{err: err}
		}
		pets, err := b.MyPets(ctx)
		return profileLoadedMsg{user: u, pets: pets, err: err}
	})
}

// editing: mientras hay un formulario abierto las teclas son texto.
func (m profileModel) editing() bool { return m.form != nil }

func (m profileModel) update(msg tea.Msg, b Backend) (profileModel, tea.Cmd) {
	switch msg := msg.(type) {
	case profileLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.user, m.pets = msg.user, msg.pets
		if m.selected >= len(m.pets) {
			m.selected = max(len(m.pets)-1, 0)
		}
		if len(m.pets) == 0 && m.form == nil {
			m.form = newPetForm(nil)
			return m, m.form.setFocus(petName)
		}
		return m, nil

	case petSavedMsg:
		m.busy = false
		if msg.err != nil {
			if m.form != nil {
				m.form.fail(msg.err)
			}
			return m, nil
		}
		m.form = nil
		m.notice = "Saved " + msg.pet.Name
		return m, m.init(b)

	case petDeletedMsg:
		m.busy = false
		m.deleting = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.notice = "Removed " + msg.name
		return m, m.init(b)

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if m.busy || m.loading {
			return m, nil
		}
		if m.form != nil {
			return m.updateForm(msg, b)
		}
		return m.updateList(msg, b)
	}
	return m, nil
}

func (m profileModel) updateForm(msg tea.KeyMsg, b Backend) (profileModel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.form = nil
		return m, nil
	case "tab", "down":
		return m, m.form.setFocus(m.form.focus + 1)
	case "shift+tab", "up":
		return m, m.form.setFocus(m.form.focus - 1)
	case "enter":
		if m.form.focus != petFieldCount-1 {
			return m, m.form.setFocus(m.form.focus + 1)
		}
		cmd := m.form.submit(b)
		m.busy = cmd != nil
		m.notice = ""
		return m, cmd
	}

	var cmd tea.Cmd
	m.form.inputs[m.form.focus], cmd = m.form.inputs[m.form.focus].Update(msg)
	return m, cmd
}

func (m profileModel) updateList(msg tea.KeyMsg, b Backend) (profileModel, tea.Cmd) {
	if m.deleting {
		m.deleting = false
		if msg.String() != "y" || len(m.pets) == 0 {
			return m, nil
		}
		p := m.pets[m.selected]
		m.busy = true
		return m, func() tea.Msg {
			return petDeletedMsg{name: p.Name, err: b.DeletePet(context.Background(), p.ID)}
		}
	}

	switch msg.String() {
	case "up", "k":
		if m.selected > 0 {
			m.selected--
		}
	case "down", "j":
		if m.selected < len(m.pets)-1 {
			m.selected++
		}
	case "n":
		m.notice = ""
		m.form = newPetForm(nil)
		return m, m.form.setFocus(petName)
	case "e", "enter":
		if len(m.pets) == 0 {
			return m, nil
		}
		m.notice = ""
		m.form = newPetForm(&m.pets[m.selected])
		return m, m.form.setFocus(petName)
	case "x":
		if len(m.pets) > 0 {
			m.deleting = true
			m.notice = ""
		}
	case "r":
		return m, m.init(b)
	}
	return m, nil
}

func (m profileModel) view() string {
	if m.form != nil {
		return m.form.view()
	}

	var b strings.Builder
	b.WriteString(nameStyle.Render("My profile") + "\n\n")

	switch {
	case m.loading:
		b.WriteString(m.spinner.View() + " Loading profile...")
		return b.String()
	case m.err != nil:
		b.WriteString(errStyle.Render("Couldn't load profile: "+client.Message(m.err)) + "\n")
		b.WriteString(helpStyle.Render("r retry • f feed • s sign out • q quit"))
		return b.String()
	}

	b.WriteString(fmt.Sprintf("%s · %s · %s\n", m.user.Name, m.user.Email, m.user.UserType))
	if m.user.ProfileCompleted {
		b.WriteString(okStyle.Render("Profile complete") + "\n\n")
	} else {
		b.WriteString(metaStyle.Render("Add a pet to start matching") + "\n\n")
	}

	b.WriteString(nameStyle.Render("My pets") + "\n")
	if len(m.pets) == 0 {
		b.WriteString(metaStyle.Render("No pets yet.") + "\n")
	}
	for i, p := range m.pets {
		line := fmt.Sprintf("%s (%s, %s, %d)", p.Name, p.Type, p.Breed, p.Age)
		if i == m.selected {
			b.WriteString(focusStyle.Render("> "+line) + "\n")
			continue
		}
		b.WriteString("  " + line + "\n")
	}

	switch {
	case m.deleting && len(m.pets) > 0:
		b.WriteString("\n" + errStyle.Render("Delete "+m.pets[m.selected].Name+"? y to confirm"))
	case m.busy:
		b.WriteString("\n" + metaStyle.Render("Please wait..."))
	case m.notice != "":
		b.WriteString("\n" + okStyle.Render(m.notice))
	}

	b.WriteString(helpStyle.Render("↑/↓ select • n new pet • e edit • x delete • r reload • f feed • m matches • s sign out • q quit"))
	return b.String()
}
