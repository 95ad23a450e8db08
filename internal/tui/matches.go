package tui

import (
	"context"
	"fmt"
	"strings"

	"petmate/internal/client"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

type matchesLoadedMsg struct {
	items []client.Match
	err   error
}

type matchesModel struct {
	spinner spinner.Model
	loading bool
	items   []client.Match
	err     error
}

func newMatchesModel() matchesModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = focusStyle
	return matchesModel{spinner: sp}
}

func (m *matchesModel) init(b Backend) tea.Cmd {
	m.loading = true
	m.err = nil
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		items, err := b.Matches(context.Background())
		return matchesLoadedMsg{items: items, err: err}
	})
}

func (m matchesModel) update(msg tea.Msg, b Backend) (matchesModel, tea.Cmd) {
	switch msg := msg.(type) {
	case matchesLoadedMsg:
		m.loading = false
		m.items, m.err = msg.items, msg.err
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if msg.String() == "r" && !m.loading {
			return m, m.init(b)
		}
	}
	return m, nil
}

func (m matchesModel) view() string {
	var b strings.Builder
	b.WriteString(nameStyle.Render("Matches") + "\n\n")

	switch {
	case m.loading:
		b.WriteString(m.spinner.View() + " Loading matches...")
	case m.err != nil:
		b.WriteString(errStyle.Render("Couldn't load matches: " + client.Message(m.err)))
	case len(m.items) == 0:
		b.WriteString("No matches yet. Keep swiping!")
	default:
		for _, it := range m.items {
			line := fmt.Sprintf("%s ♥ %s (%s, %s)", it.MyPet.Name, it.Pet.Name, it.Pet.Type, it.Pet.Breed)
			contact := fmt.Sprintf("   %s · %s · %s", it.Owner.Name, it.Owner.Contact, it.MatchDate.Format("02 Jan 2006"))
			b.WriteString(nameStyle.Render(line) + "\n" + metaStyle.Render(contact) + "\n")
		}
	}

	b.WriteString(helpStyle.Render("esc back to feed • r reload • p profile • s sign out • q quit"))
	return b.String()
}
