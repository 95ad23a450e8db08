package tui

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"petmate/internal/client"
	"petmate/internal/domain/feed"
	"petmate/internal/platform/httpclient"
	"petmate/internal/platform/logger"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type fakeBackend struct {
	mu        sync.Mutex
	profiles  []feed.Profile
	fetchErr  error
	fetches   int
	recorded  []feed.Decision
	matches   []client.Match
	loginErr  error
	signedOut bool
	resets    []string

	confirms []string
	resetErr error

	pets    []client.Pet
	petErr  error
	created []client.PetInput
	patches []client.PetPatch
	deleted []string
}

func (f *fakeBackend) Register(ctx context.Context, in client.RegisterRequest) (client.Session, error) {
	return client.Session{User: client.User{UID: "u-1", Name: in.Name, Email: in.Email}, Token: "tok"}, nil
}

// Login devuelve un usuario que ya tiene mascota: entra directo al feed.
func (f *fakeBackend) Login(ctx context.Context, email, password string) (client.Session, error) {
	if f.loginErr != nil {
		return client.Session{}, f.loginErr
	}
	return client.Session{User: client.User{UID: "u-1", Name: "Alice", Email: email, ProfileCompleted: true}, Token: "tok"}, nil
}

func (f *fakeBackend) ConfirmPasswordReset(ctx context.Context, code, password, confirm string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.resetErr != nil {
		return f.resetErr
	}
	f.confirms = append(f.confirms, code+":"+password)
	return nil
}

func (f *fakeBackend) Me(ctx context.Context) (client.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return client.User{UID: "u-1", Name: "Alice", Email: "alice@example.com", UserType: "petOwner", ProfileCompleted: len(f.pets) > 0}, nil
}

func (f *fakeBackend) MyPets(ctx context.Context) ([]client.Pet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]client.Pet(nil), f.pets...), nil
}

func (f *fakeBackend) CreatePet(ctx context.Context, in client.PetInput) (client.Pet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.petErr != nil {
		return client.Pet{}, f.petErr
	}
	f.created = append(f.created, in)
	p := client.Pet{ID: "p-" + in.Name, Name: in.Name, Type: in.Type, Breed: in.Breed, Description: in.Description}
	if in.Age != nil {
		p.Age = *in.Age
	}
	f.pets = append(f.pets, p)
	return p, nil
}

func (f *fakeBackend) UpdatePet(ctx context.Context, id string, in client.PetPatch) (client.Pet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.patches = append(f.patches, in)
	for i, p := range f.pets {
		if p.ID != id {
			continue
		}
		if in.Breed != nil {
			p.Breed = *in.Breed
		}
		f.pets[i] = p
		return p, nil
	}
	return client.Pet{}, &httpclient.HTTPError{StatusCode: http.StatusNotFound, Code: "pet_not_found"}
}

func (f *fakeBackend) DeletePet(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, id)
	out := f.pets[:0]
	for _, p := range f.pets {
		if p.ID != id {
			out = append(out, p)
		}
	}
	f.pets = out
	return nil
}

func (f *fakeBackend) RequestPasswordReset(ctx context.Context, email string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resets = append(f.resets, email)
	return nil
}

func (f *fakeBackend) SignOut(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.signedOut = true
	return nil
}

func (f *fakeBackend) Matches(ctx context.Context) ([]client.Match, error) {
	return f.matches, nil
}

func (f *fakeBackend) Source() feed.Source {
	return feed.SourceFunc(func(ctx context.Context) ([]feed.Profile, error) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.fetches++
		if f.fetchErr != nil {
			return nil, f.fetchErr
		}
		return f.profiles, nil
	})
}

func (f *fakeBackend) Recorder() feed.Recorder { return recorderFunc(f.record) }

func (f *fakeBackend) record(ctx context.Context, d feed.Decision) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.recorded = append(f.recorded, d)
	return nil
}

type recorderFunc func(ctx context.Context, d feed.Decision) error

func (r recorderFunc) Record(ctx context.Context, d feed.Decision) error { return r(ctx, d) }

// drain ejecuta cmd y los que vayan saliendo, salvo ticks del spinner.
func drain(t *testing.T, a *App, cmd tea.Cmd) {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for steps := 0; len(queue) > 0; steps++ {
		if steps > 100 {
			t.Fatalf("too many commands")
		}
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		switch msg := c().(type) {
		case nil, spinner.TickMsg, tea.QuitMsg:
		case tea.BatchMsg:
			queue = append(queue, msg...)
		default:
			_, next := a.Update(msg)
			queue = append(queue, next)
		}
	}
}

func press(t *testing.T, a *App, key string) {
	t.Helper()
	var msg tea.KeyMsg
	switch key {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	case "left":
		msg = tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		msg = tea.KeyMsg{Type: tea.KeyRight}
	case "down":
		msg = tea.KeyMsg{Type: tea.KeyDown}
	case "ctrl+n":
		msg = tea.KeyMsg{Type: tea.KeyCtrlN}
	case "ctrl+r":
		msg = tea.KeyMsg{Type: tea.KeyCtrlR}
	case "ctrl+e":
		msg = tea.KeyMsg{Type: tea.KeyCtrlE}
	case "tab":
		msg = tea.KeyMsg{Type: tea.KeyTab}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	_, cmd := a.Update(msg)
	drain(t, a, cmd)
}

func signIn(t *testing.T, a *App) {
	t.Helper()
	drain(t, a, a.Init())
	a.login.inputs[fieldEmail].SetValue("alice@example.com")
	press(t, a, "enter")
	a.login.inputs[fieldPassword].SetValue("Secret1")
	press(t, a, "enter")
}

func fixturePets() []feed.Profile { return feed.FixtureProfiles() }

func TestApp_LoginThenSwipeThroughFixture(t *testing.T) {
	a := New(&fakeBackend{}, Options{Fixture: true})
	signIn(t, a)

	require.Equal(t, screenFeed, a.screen)
	assert.Contains(t, a.View(), "Max")
	assert.Contains(t, a.View(), "Alice")

	press(t, a, "l")
	assert.Contains(t, a.View(), "Luna")
	assert.Contains(t, a.View(), "Liked Max")

	press(t, a, "right")
	press(t, a, "d")
	assert.Contains(t, a.View(), "You've seen every pet!")

	v := a.feed.ctrl.Snapshot()
	assert.Equal(t, feed.StateExhausted, v.State)
	assert.Equal(t, 3, v.Position)

	press(t, a, "r")
	assert.Contains(t, a.View(), "Max")
	assert.Equal(t, 0, a.feed.ctrl.Snapshot().Position)

	require.NoError(t, a.Shutdown(context.Background()))
}

func TestApp_DecisionsReachRecorder(t *testing.T) {
	b := &fakeBackend{profiles: fixturePets()}
	a := New(b, Options{Sink: feed.AsyncOptions{InitialInterval: time.Millisecond}})
	signIn(t, a)

	press(t, a, "l")
	press(t, a, "left")
	require.NoError(t, a.Shutdown(context.Background()))

	b.mu.Lock()
	defer b.mu.Unlock()
	assert.Equal(t, []feed.Decision{
		{PetID: "fixture-max", Outcome: feed.OutcomeLike},
		{PetID: "fixture-luna", Outcome: feed.OutcomeDislike},
	}, b.recorded)
}

func TestApp_LoadFailureShowsErrorAndRetries(t *testing.T) {
	b := &fakeBackend{fetchErr: errors.New("connection refused")}
	a := New(b, Options{Fixture: false})
	signIn(t, a)

	assert.Contains(t, a.View(), "Couldn't load pets")
	assert.Equal(t, feed.StateEmpty, a.feed.ctrl.Snapshot().State)

	b.mu.Lock()
	b.fetchErr = nil
	b.profiles = fixturePets()
	b.mu.Unlock()

	press(t, a, "r")
	assert.Contains(t, a.View(), "Max")
	assert.Equal(t, 2, b.fetches)

	require.NoError(t, a.Shutdown(context.Background()))
}

func TestApp_EmptyFeed(t *testing.T) {
	a := New(&fakeBackend{}, Options{})
	signIn(t, a)

	assert.Contains(t, a.View(), "No pets to show")
	press(t, a, "l")
	assert.Equal(t, feed.StateEmpty, a.feed.ctrl.Snapshot().State)

	require.NoError(t, a.Shutdown(context.Background()))
}

func TestApp_LoginValidationErrors(t *testing.T) {
	b := &fakeBackend{loginErr: &httpclient.HTTPError{
		StatusCode: http.StatusBadRequest,
		Code:       "validation_failed",
		Message:    "Please check the form",
		Fields:     map[string]string{"email": "Invalid email address"},
	}}
	a := New(b, Options{})
	signIn(t, a)

	require.Equal(t, screenLogin, a.screen)
	out := a.View()
	assert.Contains(t, out, "Invalid email address")
	assert.Contains(t, out, "Please check the form")
}

func TestApp_RegisterToggleShowsExtraFields(t *testing.T) {
	a := New(&fakeBackend{}, Options{Fixture: true})
	drain(t, a, a.Init())

	assert.NotContains(t, a.View(), "Confirm password")
	press(t, a, "ctrl+n")
	assert.Contains(t, a.View(), "Create account")
	assert.Contains(t, a.View(), "Confirm password")

	a.login.inputs[fieldName].SetValue("Alice Demir")
	a.login.inputs[fieldEmail].SetValue("alice@example.com")
	a.login.inputs[fieldPassword].SetValue("Secret1")
	a.login.inputs[fieldConfirm].SetValue("Secret1")
	a.login.setFocus(fieldConfirm)
	press(t, a, "enter")

	// cuenta nueva sin mascota: va al alta del perfil, no al feed
	require.Equal(t, screenProfile, a.screen)
	assert.Nil(t, a.feed)
	assert.Contains(t, a.View(), "New pet")
	require.NoError(t, a.Shutdown(context.Background()))
}

func TestApp_PasswordReset(t *testing.T) {
	b := &fakeBackend{}
	a := New(b, Options{})
	drain(t, a, a.Init())

	a.login.inputs[fieldEmail].SetValue("alice@example.com")
	press(t, a, "ctrl+r")

	assert.Equal(t, []string{"alice@example.com"}, b.resets)
	assert.Contains(t, a.View(), "Reset code sent")

	// queda en el paso del código
	require.Equal(t, modeReset, a.login.mode)
	assert.Equal(t, fieldCode, a.login.focus)
	assert.Contains(t, a.View(), "New password")

	a.login.inputs[fieldCode].SetValue("code-123")
	press(t, a, "enter")
	a.login.inputs[fieldPassword].SetValue("Newpass9")
	press(t, a, "enter")
	a.login.inputs[fieldConfirm].SetValue("Newpass9")
	press(t, a, "enter")

	assert.Equal(t, []string{"code-123:Newpass9"}, b.confirms)
	assert.Equal(t, modeSignIn, a.login.mode)
	assert.Contains(t, a.View(), "Password updated")
	assert.Empty(t, a.login.inputs[fieldPassword].Value())
}

func TestApp_ResetCodeEnteredDirectly(t *testing.T) {
	b := &fakeBackend{resetErr: &httpclient.HTTPError{
		StatusCode: http.StatusBadRequest,
		Code:       "auth/invalid-action-code",
		Message:    "The reset link is invalid or has expired.",
	}}
	a := New(b, Options{})
	drain(t, a, a.Init())

	press(t, a, "ctrl+e")
	require.Equal(t, modeReset, a.login.mode)

	a.login.inputs[fieldCode].SetValue("stale")
	a.login.inputs[fieldPassword].SetValue("Newpass9")
	a.login.inputs[fieldConfirm].SetValue("Newpass9")
	a.login.setFocus(fieldConfirm)
	press(t, a, "enter")

	assert.Equal(t, modeReset, a.login.mode)
	assert.Contains(t, a.View(), "invalid or has expired")

	press(t, a, "esc")
	assert.Equal(t, modeSignIn, a.login.mode)
	assert.Contains(t, a.View(), "Sign in")
}

func TestApp_OnboardingCreatesFirstPet(t *testing.T) {
	b := &fakeBackend{profiles: fixturePets()}
	a := New(b, Options{})
	drain(t, a, a.Init())

	press(t, a, "ctrl+n")
	a.login.inputs[fieldName].SetValue("Alice Demir")
	a.login.inputs[fieldEmail].SetValue("alice@example.com")
	a.login.inputs[fieldPassword].SetValue("Secret1")
	a.login.inputs[fieldConfirm].SetValue("Secret1")
	a.login.setFocus(fieldConfirm)
	press(t, a, "enter")

	require.Equal(t, screenProfile, a.screen)
	require.NotNil(t, a.profile.form)

	form := a.profile.form
	form.inputs[petName].SetValue("Max")
	form.inputs[petType].SetValue("Dog")
	form.inputs[petBreed].SetValue("Golden Retriever")
	form.inputs[petAge].SetValue("3")
	form.setFocus(petImage)
	press(t, a, "enter")

	require.Len(t, b.created, 1)
	assert.Equal(t, "dog", b.created[0].Type)
	require.NotNil(t, b.created[0].Age)
	assert.Equal(t, 3, *b.created[0].Age)

	assert.Nil(t, a.profile.form)
	out := a.View()
	assert.Contains(t, out, "Saved Max")
	assert.Contains(t, out, "Max (dog, Golden Retriever, 3)")
	assert.Contains(t, out, "Profile complete")

	press(t, a, "f")
	require.Equal(t, screenFeed, a.screen)
	assert.Contains(t, a.View(), "Max")
	require.NoError(t, a.Shutdown(context.Background()))
}

func TestApp_PetFormErrors(t *testing.T) {
	b := &fakeBackend{}
	a := New(b, Options{})
	signIn(t, a)
	press(t, a, "p")
	require.NotNil(t, a.profile.form)

	// edad no numérica: no sale al server
	form := a.profile.form
	form.inputs[petName].SetValue("Max")
	form.inputs[petAge].SetValue("three")
	form.setFocus(petImage)
	press(t, a, "enter")
	assert.Empty(t, b.created)
	assert.Contains(t, a.View(), "Age must be a number")

	b.petErr = &httpclient.HTTPError{
		StatusCode: http.StatusBadRequest,
		Code:       "validation_failed",
		Message:    "Please correct the highlighted fields.",
		Fields:     map[string]string{"type": "Pet type is required", "breed": "Breed is required"},
	}
	form.inputs[petAge].SetValue("3")
	press(t, a, "enter")

	out := a.View()
	assert.Contains(t, out, "Pet type is required")
	assert.Contains(t, out, "Breed is required")
	assert.False(t, a.profile.busy)

	// teclas de navegación son texto mientras el formulario está abierto
	press(t, a, "q")
	assert.Equal(t, screenProfile, a.screen)
	assert.Equal(t, "q", form.inputs[petImage].Value())

	press(t, a, "esc")
	assert.Nil(t, a.profile.form)
}

func TestApp_ProfileEditAndDelete(t *testing.T) {
	b := &fakeBackend{
		profiles: fixturePets(),
		pets: []client.Pet{
			{ID: "p-luna", Name: "Luna", Type: "cat", Breed: "Siamese", Age: 2},
			{ID: "p-rex", Name: "Rex", Type: "dog", Breed: "Beagle", Age: 5},
		},
	}
	a := New(b, Options{})
	signIn(t, a)
	ctrl := a.feed.ctrl

	press(t, a, "p")
	require.Equal(t, screenProfile, a.screen)
	assert.Nil(t, a.feed)
	assert.ErrorIs(t, ctrl.Load(context.Background()), feed.ErrClosed)
	assert.Contains(t, a.View(), "Luna (cat, Siamese, 2)")

	press(t, a, "down")
	press(t, a, "e")
	require.NotNil(t, a.profile.form)
	form := a.profile.form
	assert.Equal(t, "Rex", form.inputs[petName].Value())
	assert.Equal(t, "5", form.inputs[petAge].Value())

	form.inputs[petBreed].SetValue("Basset Hound")
	form.setFocus(petImage)
	press(t, a, "enter")

	require.Len(t, b.patches, 1)
	require.NotNil(t, b.patches[0].Breed)
	assert.Equal(t, "Basset Hound", *b.patches[0].Breed)
	assert.Contains(t, a.View(), "Rex (dog, Basset Hound, 5)")

	// x pide confirmación; otra tecla cancela
	press(t, a, "x")
	assert.Contains(t, a.View(), "Delete Rex?")
	press(t, a, "n")
	assert.Empty(t, b.deleted)
	assert.Nil(t, a.profile.form)

	press(t, a, "x")
	press(t, a, "y")
	assert.Equal(t, []string{"p-rex"}, b.deleted)
	assert.Contains(t, a.View(), "Removed Rex")
	assert.NotContains(t, a.View(), "Basset Hound")

	press(t, a, "esc")
	require.Equal(t, screenFeed, a.screen)
	require.NoError(t, a.Shutdown(context.Background()))
}

func TestApp_ShutdownLogsSinkStats(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	b := &fakeBackend{profiles: fixturePets()}
	a := New(b, Options{
		Log:  logger.NewZap(zap.New(core)),
		Sink: feed.AsyncOptions{InitialInterval: time.Millisecond},
	})
	signIn(t, a)

	press(t, a, "l")
	press(t, a, "d")
	require.NoError(t, a.Shutdown(context.Background()))

	drained := logs.FilterMessage("decision sink drained").All()
	require.Len(t, drained, 1)
	ctx := drained[0].ContextMap()
	assert.EqualValues(t, 2, ctx["delivered"])
	assert.EqualValues(t, 0, ctx["dropped"])
}

func TestApp_MatchesScreenClosesFeed(t *testing.T) {
	b := &fakeBackend{
		profiles: fixturePets(),
		matches: []client.Match{{
			ID:    "m-1",
			MyPet: client.PetSummary{Name: "Luna"},
			Pet:   client.PetSummary{Name: "Max", Type: "dog", Breed: "Golden Retriever"},
			Owner: client.Owner{Name: "Bob", Contact: "bob@example.com"},
		}},
	}
	a := New(b, Options{})
	signIn(t, a)
	ctrl := a.feed.ctrl

	press(t, a, "m")
	require.Equal(t, screenMatches, a.screen)
	assert.Nil(t, a.feed)
	assert.ErrorIs(t, ctrl.Load(context.Background()), feed.ErrClosed)

	out := a.View()
	assert.Contains(t, out, "Luna ♥ Max")
	assert.Contains(t, out, "bob@example.com")

	press(t, a, "esc")
	require.Equal(t, screenFeed, a.screen)
	assert.NotSame(t, ctrl, a.feed.ctrl)
	assert.Contains(t, a.View(), "Max")

	require.NoError(t, a.Shutdown(context.Background()))
}

func TestApp_StaleLoadIsIgnored(t *testing.T) {
	a := New(&fakeBackend{}, Options{Fixture: true})
	signIn(t, a)

	old := a.feed.ctrl
	press(t, a, "m")
	press(t, a, "esc")
	require.NotSame(t, old, a.feed.ctrl)

	// una carga de un montaje anterior no toca el feed actual
	a.feed.pending = true
	_, _ = a.Update(feedLoadedMsg{ctrl: old, err: feed.ErrClosed})
	assert.True(t, a.feed.pending)

	_, _ = a.Update(feedLoadedMsg{ctrl: a.feed.ctrl})
	assert.False(t, a.feed.pending)

	require.NoError(t, a.Shutdown(context.Background()))
}

func TestApp_SignOut(t *testing.T) {
	b := &fakeBackend{profiles: fixturePets()}
	a := New(b, Options{Sink: feed.AsyncOptions{InitialInterval: time.Millisecond}})
	signIn(t, a)
	press(t, a, "l")

	press(t, a, "s")

	require.Equal(t, screenLogin, a.screen)
	assert.True(t, b.signedOut)
	assert.Nil(t, a.feed)
	assert.Len(t, b.recorded, 1)
	assert.True(t, strings.Contains(a.View(), "Sign in"))
}
