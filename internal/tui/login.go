package tui

import (
	"context"
	"errors"
	"sort"
	"strings"

	"petmate/internal/client"
	"petmate/internal/platform/httpclient"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	fieldName = iota
	fieldEmail
	fieldPassword
	fieldConfirm
	fieldCode
	fieldCount
)

var fieldLabels = [fieldCount]string{"Name", "Email", "Password", "Confirm password", "Reset code"}

// json del server -> campo del form
var serverFields = map[string]int{
	"name":             fieldName,
	"email":            fieldEmail,
	"password":         fieldPassword,
	"confirm_password": fieldConfirm,
	"code":             fieldCode,
}

type loginMode int

const (
	modeSignIn loginMode = iota
	modeRegister
	// modeReset: el usuario ya tiene el código y elige el password nuevo.
	modeReset
)

type sessionMsg struct {
	session client.Session
	err     error
}

type resetSentMsg struct {
	email string
	err   error
}

type resetDoneMsg struct{ err error }

type loginModel struct {
	mode     loginMode
	inputs   [fieldCount]textinput.Model
	focus    int
	busy     bool

	err    string
	fields map[int]string
	notice string
}

func newLoginModel() loginModel {
	var m loginModel
	for i := range m.inputs {
		in := textinput.New()
		in.Prompt = ""
		in.CharLimit = 64
		in.Placeholder = fieldLabels[i]
		if i == fieldCode {
			in.Placeholder = "code from the email"
		}
		in.Cursor.SetMode(cursor.CursorStatic)
		if i == fieldPassword || i == fieldConfirm {
			in.EchoMode = textinput.EchoPassword
			in.EchoCharacter = '•'
		}
		m.inputs[i] = in
	}
	m.focus = fieldEmail
	return m
}

func (m *loginModel) init() tea.Cmd {
	return m.inputs[m.focus].Focus()
}

// visible: en login solo email y password.
func (m loginModel) visible() []int {
	switch m.mode {
	case modeRegister:
		return []int{fieldName, fieldEmail, fieldPassword, fieldConfirm}
	case modeReset:
		return []int{fieldCode, fieldPassword, fieldConfirm}
	}
	return []int{fieldEmail, fieldPassword}
}

func (m *loginModel) setMode(mode loginMode) tea.Cmd {
	m.mode = mode
	m.err, m.fields = "", nil
	m.inputs[fieldPassword].SetValue("")
	m.inputs[fieldConfirm].SetValue("")
	return m.setFocus(m.visible()[0])
}

func (m loginModel) update(msg tea.Msg, b Backend) (loginModel, tea.Cmd) {
	switch msg := msg.(type) {
	case resetSentMsg:
		m.busy = false
		if msg.err != nil {
			m.fail(msg.err)
			return m, nil
		}
		cmd := m.setMode(modeReset)
		m.notice = "Reset code sent to " + msg.email + ". Enter it below."
		return m, cmd

	case resetDoneMsg:
		m.busy = false
		if msg.err != nil {
			m.fail(msg.err)
			return m, nil
		}
		m.inputs[fieldCode].SetValue("")
		cmd := m.setMode(modeSignIn)
		m.notice = "Password updated. Sign in with your new password."
		return m, cmd

	case tea.KeyMsg:
		if m.busy {
			return m, nil
		}
		switch msg.String() {
		case "ctrl+n":
			next := modeRegister
			if m.mode != modeSignIn {
				next = modeSignIn
			}
			m.notice = ""
			return m, m.setMode(next)
		case "ctrl+e":
			m.notice = ""
			return m, m.setMode(modeReset)
		case "esc":
			if m.mode == modeSignIn {
				return m, nil
			}
			m.notice = ""
			return m, m.setMode(modeSignIn)
		case "ctrl+r":
			email := strings.TrimSpace(m.inputs[fieldEmail].Value())
			m.busy = true
			return m, func() tea.Msg {
				return resetSentMsg{email: email, err: b.RequestPasswordReset(context.Background(), email)}
			}
		case "tab", "down":
			return m, m.move(1)
		case "shift+tab", "up":
			return m, m.move(-1)
		case "enter":
			vis := m.visible()
			if m.focus != vis[len(vis)-1] {
				return m, m.move(1)
			}
			return m.submit(b)
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *loginModel) move(delta int) tea.Cmd {
	vis := m.visible()
	idx := 0
	for i, f := range vis {
		if f == m.focus {
			idx = i
		}
	}
	idx = (idx + delta + len(vis)) % len(vis)
	return m.setFocus(vis[idx])
}

func (m *loginModel) setFocus(f int) tea.Cmd {
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
	m.focus = f
	return m.inputs[f].Focus()
}

func (m loginModel) submit(b Backend) (loginModel, tea.Cmd) {
	m.busy = true
	m.err, m.fields, m.notice = "", nil, ""

	email := strings.TrimSpace(m.inputs[fieldEmail].Value())
	password := m.inputs[fieldPassword].Value()

	switch m.mode {
	case modeSignIn:
		return m, func() tea.Msg {
			s, err := b.Login(context.Background(), email, password)
			return sessionMsg{session: s, err: err}
		}
	case modeReset:
		code := strings.TrimSpace(m.inputs[fieldCode].Value())
		confirm := m.inputs[fieldConfirm].Value()
		return m, func() tea.Msg {
			return resetDoneMsg{err: b.ConfirmPasswordReset(context.Background(), code, password, confirm)}
		}
	}

	req := client.RegisterRequest{
		Name:            strings.TrimSpace(m.inputs[fieldName].Value()),
		Email:           email,
		Password:        password,
		ConfirmPassword: m.inputs[fieldConfirm].Value(),
		UserType:        "petOwner",
	}
	return m, func() tea.Msg {
		s, err := b.Register(context.Background(), req)
		return sessionMsg{session: s, err: err}
	}
}

// fail muestra el error del server; los de validación van al lado de cada campo.
func (m *loginModel) fail(err error) {
	m.busy = false
	m.notice = ""
	m.err = client.Message(err)

	var he *httpclient.HTTPError
	if errors.As(err, &he) && len(he.Fields) > 0 {
		m.fields = make(map[int]string, len(he.Fields))
		var extra []string
		for k, v := range he.Fields {
			if f, ok := serverFields[k]; ok {
				m.fields[f] = v
				continue
			}
			extra = append(extra, v)
		}
		sort.Strings(extra)
		if len(extra) > 0 {
			m.err += ": " + strings.Join(extra, ", ")
		}
	}
}

func (m loginModel) view() string {
	var b strings.Builder

	title := "Sign in"
	switch m.mode {
	case modeRegister:
		title = "Create account"
	case modeReset:
		title = "Reset password"
	}
	b.WriteString(nameStyle.Render(title) + "\n\n")

	for _, f := range m.visible() {
		text := fieldLabels[f]
		if m.mode == modeReset && f == fieldPassword {
			text = "New password"
		}
		label := labelStyle.Render(text)
		if f == m.focus {
			label = focusStyle.Inherit(labelStyle).Render(text)
		}
		line := lipgloss.JoinHorizontal(lipgloss.Top, label, m.inputs[f].View())
		if msg, ok := m.fields[f]; ok {
			line += "  " + errStyle.Render(msg)
		}
		b.WriteString(line + "\n")
	}

	switch {
	case m.busy:
		b.WriteString("\n" + metaStyle.Render("Please wait..."))
	case m.err != "":
		b.WriteString("\n" + errStyle.Render(m.err))
	case m.notice != "":
		b.WriteString("\n" + okStyle.Render(m.notice))
	}

	help := "tab next • enter submit • ctrl+n create account • ctrl+r send reset code • ctrl+e enter code • ctrl+c quit"
	if m.mode != modeSignIn {
		help = "tab next • enter submit • esc back to sign in • ctrl+c quit"
	}
	b.WriteString(helpStyle.Render(help))
	return b.String()
}
