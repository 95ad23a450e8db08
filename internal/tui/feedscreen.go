package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"petmate/internal/client"
	"petmate/internal/domain/feed"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// feedLoadedMsg lleva el controller que lo originó para descartar cargas de un montaje anterior.
type feedLoadedMsg struct {
	ctrl *feed.Controller
	err  error
}

type feedModel struct {
	ctrl    *feed.Controller
	spinner spinner.Model
	pending bool
	last    string
}

func newFeedModel(ctrl *feed.Controller) *feedModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = focusStyle
	return &feedModel{ctrl: ctrl, spinner: sp}
}

func (m *feedModel) init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.load())
}

func (m *feedModel) load() tea.Cmd {
	m.pending = true
	m.last = ""
	ctrl := m.ctrl
	return func() tea.Msg {
		return feedLoadedMsg{ctrl: ctrl, err: ctrl.Load(context.Background())}
	}
}

func (m *feedModel) close() {
	m.ctrl.Close()
}

func (m *feedModel) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case feedLoadedMsg:
		if msg.ctrl != m.ctrl || errors.Is(msg.err, feed.ErrSuperseded) {
			return nil
		}
		m.pending = false
		return nil

	case spinner.TickMsg:
		if !m.loading() {
			return nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "l", "right":
			m.decide(feed.OutcomeLike)
		case "d", "left":
			m.decide(feed.OutcomeDislike)
		case "r":
			v := m.ctrl.Snapshot()
			switch {
			case v.Loading || m.pending:
				// ya hay una carga en curso
			case v.State == feed.StateExhausted:
				m.ctrl.Reset()
				m.last = ""
			case v.State == feed.StateEmpty:
				return tea.Batch(m.spinner.Tick, m.load())
			}
		case "R":
			if !m.loading() {
				return tea.Batch(m.spinner.Tick, m.load())
			}
		}
	}
	return nil
}

func (m *feedModel) loading() bool {
	return m.pending || m.ctrl.Snapshot().Loading
}

func (m *feedModel) decide(o feed.Outcome) {
	name := m.ctrl.Snapshot().Current.Name
	if _, ok := m.ctrl.Decide(context.Background(), o); !ok {
		return
	}
	verb := "Liked"
	if o == feed.OutcomeDislike {
		verb = "Passed on"
	}
	m.last = fmt.Sprintf("%s %s", verb, name)
}

func (m *feedModel) view() string {
	v := m.ctrl.Snapshot()

	if m.pending || v.Loading {
		return m.spinner.View() + " Loading pets..." +
			helpStyle.Render("m matches • p profile • s sign out • q quit")
	}

	var b strings.Builder
	switch v.State {
	case feed.StateEmpty:
		if v.Err != nil {
			b.WriteString(errStyle.Render("Couldn't load pets: " + client.Message(v.Err)))
			b.WriteString(helpStyle.Render("r retry • m matches • p profile • s sign out • q quit"))
			return b.String()
		}
		b.WriteString("No pets to show right now. Check back later!")
		b.WriteString(helpStyle.Render("r reload • m matches • p profile • s sign out • q quit"))

	case feed.StateExhausted:
		b.WriteString(nameStyle.Render("You've seen every pet!") + "\n")
		if m.last != "" {
			b.WriteString(okStyle.Render(m.last) + "\n")
		}
		b.WriteString(helpStyle.Render("r start over • R reload • m matches • p profile • s sign out • q quit"))

	case feed.StateActive:
		b.WriteString(renderProfile(v.Current, v.Position, v.Len) + "\n")
		if m.last != "" {
			b.WriteString(okStyle.Render(m.last) + "\n")
		}
		b.WriteString(helpStyle.Render("← d pass • l → like • m matches • p profile • s sign out • q quit"))
	}
	return b.String()
}

func renderProfile(p feed.Profile, pos, total int) string {
	var b strings.Builder
	b.WriteString(nameStyle.Render(p.Name) + "\n")

	years := "years"
	if p.Age == 1 {
		years = "year"
	}
	b.WriteString(metaStyle.Render(fmt.Sprintf("%s · %s · %d %s", p.Species, p.Breed, p.Age, years)) + "\n")
	if p.Description != "" {
		b.WriteString("\n" + p.Description + "\n")
	}
	if p.ImageURL != "" {
		b.WriteString("\n" + metaStyle.Render(p.ImageURL) + "\n")
	}
	b.WriteString("\n" + metaStyle.Render(fmt.Sprintf("%d/%d", pos+1, total)))
	return cardStyle.Render(b.String())
}
