package client

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"petmate/internal/domain/feed"
	"petmate/internal/platform/httpclient"
)

// API envuelve las rutas de petmate. Login/Register guardan el token en el cliente HTTP.
type API struct {
	http *httpclient.Client
}

func New(c *httpclient.Client) *API {
	return &API{http: c}
}

// SetToken restaura una sesión guardada.
func (a *API) SetToken(token string) { a.http.SetToken(token) }

func (a *API) Token() string { return a.http.Token() }

func (a *API) Register(ctx context.Context, in RegisterRequest) (Session, error) {
	var out Session
	if err := a.http.DoJSON(ctx, http.MethodPost, "/auth/register", in, &out); err != nil {
		return Session{}, err
	}
	a.http.SetToken(out.Token)
	return out, nil
}

func (a *API) Login(ctx context.Context, email, password string) (Session, error) {
	in := map[string]string{"email": email, "password": password}

	var out Session
	if err := a.http.DoJSON(ctx, http.MethodPost, "/auth/login", in, &out); err != nil {
		return Session{}, err
	}
	a.http.SetToken(out.Token)
	return out, nil
}

// SignOut revoca el token en el server y lo olvida localmente aunque el server falle.
func (a *API) SignOut(ctx context.Context) error {
	defer a.http.SetToken("")
	return a.http.DoJSON(ctx, http.MethodPost, "/auth/signout", nil, nil)
}

func (a *API) RequestPasswordReset(ctx context.Context, email string) error {
	return a.http.DoJSON(ctx, http.MethodPost, "/auth/password-reset", map[string]string{"email": email}, nil)
}

func (a *API) ConfirmPasswordReset(ctx context.Context, code, password, confirm string) error {
	in := map[string]string{"code": code, "password": password, "confirm_password": confirm}
	return a.http.DoJSON(ctx, http.MethodPost, "/auth/password-reset/confirm", in, nil)
}

func (a *API) Me(ctx context.Context) (User, error) {
	var out User
	err := a.http.DoJSON(ctx, http.MethodGet, "/me", nil, &out)
	return out, err
}

func (a *API) CreatePet(ctx context.Context, in PetInput) (Pet, error) {
	var out Pet
	err := a.http.DoJSON(ctx, http.MethodPost, "/pets", in, &out)
	return out, err
}

func (a *API) MyPets(ctx context.Context) ([]Pet, error) {
	var out []Pet
	err := a.http.DoJSON(ctx, http.MethodGet, "/pets", nil, &out)
	return out, err
}

func (a *API) UpdatePet(ctx context.Context, id string, in PetPatch) (Pet, error) {
	var out Pet
	err := a.http.DoJSON(ctx, http.MethodPatch, "/pets/"+url.PathEscape(id), in, &out)
	return out, err
}

func (a *API) DeletePet(ctx context.Context, id string) error {
	return a.http.DoJSON(ctx, http.MethodDelete, "/pets/"+url.PathEscape(id), nil, nil)
}

func (a *API) Recommendations(ctx context.Context) ([]feed.Profile, error) {
	var out []feed.Profile
	if err := a.http.DoJSON(ctx, http.MethodGet, "/feed/recommendations", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (a *API) Decide(ctx context.Context, d feed.Decision) (DecisionResult, error) {
	var out DecisionResult
	err := a.http.DoJSON(ctx, http.MethodPost, "/feed/decisions", d, &out)
	return out, err
}

func (a *API) Matches(ctx context.Context) ([]Match, error) {
	var out []Match
	err := a.http.DoJSON(ctx, http.MethodGet, "/matches", nil, &out)
	return out, err
}

// Source adapta las recomendaciones al feed.
func (a *API) Source() feed.Source {
	return feed.SourceFunc(a.Recommendations)
}

// Recorder entrega decisiones por HTTP. Los 4xx no se reintentan.
func (a *API) Recorder() feed.Recorder {
	return recorder{api: a}
}

type recorder struct {
	api *API
}

func (r recorder) Record(ctx context.Context, d feed.Decision) error {
	_, err := r.api.Decide(ctx, d)
	if err == nil {
		return nil
	}
	var he *httpclient.HTTPError
	if errors.As(err, &he) && !he.Temporary() {
		return &rejectedError{err: err}
	}
	return err
}

// rejectedError es ErrRejected y a la vez conserva el error HTTP original.
type rejectedError struct{ err error }

func (e *rejectedError) Error() string { return "decision rejected: " + e.err.Error() }

func (e *rejectedError) Is(target error) bool { return target == feed.ErrRejected }

func (e *rejectedError) Unwrap() error { return e.err }

// Message devuelve un texto corto para mostrar en la UI.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var he *httpclient.HTTPError
	if errors.As(err, &he) {
		if he.Message != "" {
			return he.Message
		}
		return http.StatusText(he.StatusCode)
	}
	return strings.TrimPrefix(err.Error(), "httpclient: ")
}
