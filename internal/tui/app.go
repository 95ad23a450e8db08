// Package tui es el cliente de terminal de petmate (bubbletea).
//
// Pantallas: login/registro/reset, perfil, feed y matches. El feed es dueño de un
// feed.Controller que se crea al montar la pantalla y se cierra al salir de ella.
package tui

import (
	"context"
	"time"

	"petmate/internal/client"
	"petmate/internal/domain/feed"
	"petmate/internal/platform/logger"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Backend es lo que la TUI usa de la API. *client.API lo implementa.
type Backend interface {
	Register(ctx context.Context, in client.RegisterRequest) (client.Session, error)
	Login(ctx context.Context, email, password string) (client.Session, error)
	RequestPasswordReset(ctx context.Context, email string) error
	ConfirmPasswordReset(ctx context.Context, code, password, confirm string) error
	SignOut(ctx context.Context) error

	Me(ctx context.Context) (client.User, error)
	MyPets(ctx context.Context) ([]client.Pet, error)
	CreatePet(ctx context.Context, in client.PetInput) (client.Pet, error)
	UpdatePet(ctx context.Context, id string, in client.PetPatch) (client.Pet, error)
	DeletePet(ctx context.Context, id string) error

	Matches(ctx context.Context) ([]client.Match, error)
	Source() feed.Source
	Recorder() feed.Recorder
}

type Options struct {
	// Fixture usa los perfiles fijos y solo loguea las decisiones.
	Fixture      bool
	FixtureDelay time.Duration

	Sink feed.AsyncOptions
	Log  logger.Logger

	// CloseTimeout acota cuánto se espera a que se entreguen las decisiones pendientes.
	CloseTimeout time.Duration
}

type screen int

const (
	screenLogin screen = iota
	screenFeed
	screenMatches
	screenProfile
)

type signedOutMsg struct{ err error }

// App es el modelo raíz.
type App struct {
	backend Backend
	opts    Options
	log     logger.Logger

	screen  screen
	login   loginModel
	feed    *feedModel
	matches matchesModel
	profile profileModel

	user client.User
	sink feed.Sink

	width  int
	height int
}

func New(b Backend, opts Options) *App {
	if opts.Log == nil {
		opts.Log = logger.NewNop()
	}
	if opts.CloseTimeout <= 0 {
		opts.CloseTimeout = 5 * time.Second
	}
	if opts.Sink.Log == nil {
		opts.Sink.Log = opts.Log
	}
	return &App{
		backend: b,
		opts:    opts,
		log:     opts.Log.With(map[string]any{"component": "tui"}),
		login:   newLoginModel(),
	}
}

func (a *App) Init() tea.Cmd {
	return a.login.init()
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			a.unmountFeed()
			return a, tea.Quit
		}

	case sessionMsg:
		if msg.err != nil {
			a.login.fail(msg.err)
			return a, nil
		}
		return a, a.startSession(msg.session)

	case signedOutMsg:
		if msg.err != nil {
			a.log.Warn("sign out failed", map[string]any{"err": msg.err})
		}
		a.user = client.User{}
		a.screen = screenLogin
		a.login = newLoginModel()
		return a, a.login.init()
	}

	switch a.screen {
	case screenLogin:
		var cmd tea.Cmd
		a.login, cmd = a.login.update(msg, a.backend)
		return a, cmd
	case screenFeed:
		return a.updateFeed(msg)
	case screenMatches:
		return a.updateMatches(msg)
	case screenProfile:
		return a.updateProfile(msg)
	}
	return a, nil
}

func (a *App) updateFeed(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "q":
			a.unmountFeed()
			return a, tea.Quit
		case "m":
			return a, a.openMatches()
		case "p":
			return a, a.openProfile()
		case "s":
			return a, a.signOut()
		}
	}
	if m, ok := msg.(feedLoadedMsg); ok && client.IsUnauthorized(m.err) && a.feed != nil && m.ctrl == a.feed.ctrl {
		return a, a.signOut()
	}
	if a.feed == nil {
		return a, nil
	}
	return a, a.feed.update(msg)
}

func (a *App) updateMatches(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "q":
			return a, tea.Quit
		case "esc", "f":
			return a, a.openFeed()
		case "p":
			return a, a.openProfile()
		case "s":
			return a, a.signOut()
		}
	}
	if m, ok := msg.(matchesLoadedMsg); ok && client.IsUnauthorized(m.err) {
		return a, a.signOut()
	}
	var cmd tea.Cmd
	a.matches, cmd = a.matches.update(msg, a.backend)
	return a, cmd
}

func (a *App) updateProfile(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && !a.profile.editing() && !a.profile.deleting {
		switch k.String() {
		case "q":
			return a, tea.Quit
		case "esc", "f":
			return a, a.openFeed()
		case "m":
			return a, a.openMatches()
		case "s":
			return a, a.signOut()
		}
	}
	switch m := msg.(type) {
	case profileLoadedMsg:
		if client.IsUnauthorized(m.err) {
			return a, a.signOut()
		}
		if m.err == nil {
			a.user = m.user
		}
	case petSavedMsg:
		if client.IsUnauthorized(m.err) {
			return a, a.signOut()
		}
	}
	var cmd tea.Cmd
	a.profile, cmd = a.profile.update(msg, a.backend)
	return a, cmd
}

func (a *App) View() string {
	var body string
	switch a.screen {
	case screenLogin:
		body = a.login.view()
	case screenFeed:
		if a.feed != nil {
			body = a.feed.view()
		}
	case screenMatches:
		body = a.matches.view()
	case screenProfile:
		body = a.profile.view()
	}

	header := titleStyle.Render("🐾 PetMate")
	if a.user.Name != "" {
		header = lipgloss.JoinHorizontal(lipgloss.Top, header, metaStyle.Render("  "+a.user.Name))
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, body) + "\n"
}

// Shutdown cierra el feed y espera a que se entreguen las decisiones encoladas.
func (a *App) Shutdown(ctx context.Context) error {
	a.unmountFeed()
	return a.closeSink(ctx)
}

func (a *App) startSession(s client.Session) tea.Cmd {
	a.user = s.User
	if a.opts.Fixture {
		a.sink = feed.LogSink{Log: a.log}
	} else {
		a.sink = feed.NewAsyncSink(a.backend.Recorder(), a.opts.Sink)
	}
	a.log.Info("session started", map[string]any{"user_id": s.User.UID, "profile_completed": s.User.ProfileCompleted})

	// sin mascota no hay matches posibles: primero el alta del perfil
	if !s.User.ProfileCompleted {
		return a.openProfile()
	}
	return a.openFeed()
}

func (a *App) openFeed() tea.Cmd {
	a.screen = screenFeed
	return a.mountFeed()
}

func (a *App) openMatches() tea.Cmd {
	a.unmountFeed()
	a.screen = screenMatches
	a.matches = newMatchesModel()
	return a.matches.init(a.backend)
}

func (a *App) openProfile() tea.Cmd {
	a.unmountFeed()
	a.screen = screenProfile
	a.profile = newProfileModel()
	return a.profile.init(a.backend)
}

func (a *App) source() feed.Source {
	if a.opts.Fixture {
		return feed.FixtureSource{Delay: a.opts.FixtureDelay}
	}
	return a.backend.Source()
}

func (a *App) mountFeed() tea.Cmd {
	a.unmountFeed()
	a.feed = newFeedModel(feed.NewController(a.source(), a.sink, a.log))
	return a.feed.init()
}

func (a *App) unmountFeed() {
	if a.feed != nil {
		a.feed.close()
		a.feed = nil
	}
}

// signOut corre fuera del loop de UI: drenar el sink puede tardar.
func (a *App) signOut() tea.Cmd {
	a.unmountFeed()
	sink, _ := a.sink.(*feed.AsyncSink)
	a.sink = nil
	backend, timeout, log := a.backend, a.opts.CloseTimeout, a.log

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if sink != nil {
			_ = drainSink(ctx, sink, log)
		}
		return signedOutMsg{err: backend.SignOut(ctx)}
	}
}

func (a *App) closeSink(ctx context.Context) error {
	sink, ok := a.sink.(*feed.AsyncSink)
	a.sink = nil
	if !ok {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, a.opts.CloseTimeout)
	defer cancel()
	return drainSink(ctx, sink, a.log)
}

// drainSink cierra el sink y deja en el log cuántas decisiones llegaron al server.
func drainSink(ctx context.Context, sink *feed.AsyncSink, log logger.Logger) error {
	err := sink.Close(ctx)
	delivered, dropped := sink.Stats()
	fields := map[string]any{"delivered": delivered, "dropped": dropped}
	if err != nil {
		fields["err"] = err
		log.Warn("decision sink closed before draining", fields)
		return err
	}
	log.Info("decision sink drained", fields)
	return nil
}
