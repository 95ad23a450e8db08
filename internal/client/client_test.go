package client_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"petmate/internal/adapters/notify"
	"petmate/internal/client"
	"petmate/internal/config"
	"petmate/internal/domain/feed"
	"petmate/internal/platform/httpclient"
	"petmate/internal/router"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAPI(t *testing.T, baseURL string) *client.API {
	t.Helper()
	hc, err := httpclient.New(baseURL, 5*time.Second)
	require.NoError(t, err)
	return client.New(hc)
}

func newBackend(t *testing.T) *httptest.Server {
	t.Helper()

	cfg := config.Default()
	cfg.JWTSecret = "client-test-secret-0123456789"
	h, err := router.NewRouter(router.Options{Config: cfg})
	require.NoError(t, err)

	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)
	return ts
}

func registerWithPet(t *testing.T, api *client.API, name, email, petName string) client.Pet {
	t.Helper()
	ctx := context.Background()

	_, err := api.Register(ctx, client.RegisterRequest{
		Name: name, Email: email, Password: "Secret1", ConfirmPassword: "Secret1", UserType: "petOwner",
	})
	require.NoError(t, err)
	require.NotEmpty(t, api.Token())

	age := 2
	p, err := api.CreatePet(ctx, client.PetInput{Name: petName, Type: "dog", Breed: "Labrador", Age: &age})
	require.NoError(t, err)
	return p
}

func TestAPI_SessionLifecycle(t *testing.T) {
	ts := newBackend(t)
	api := newAPI(t, ts.URL)
	ctx := context.Background()

	pet := registerWithPet(t, api, "Alice Demir", "alice@example.com", "Buddy")

	me, err := api.Me(ctx)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", me.Email)
	assert.True(t, me.ProfileCompleted)

	newName := "Buddy Jr"
	updated, err := api.UpdatePet(ctx, pet.ID, client.PetPatch{Name: &newName})
	require.NoError(t, err)
	assert.Equal(t, "Buddy Jr", updated.Name)

	mine, err := api.MyPets(ctx)
	require.NoError(t, err)
	require.Len(t, mine, 1)

	require.NoError(t, api.SignOut(ctx))
	assert.Empty(t, api.Token())

	_, err = api.Me(ctx)
	assert.True(t, client.IsUnauthorized(err))

	_, err = api.Login(ctx, "alice@example.com", "Secret1")
	require.NoError(t, err)
	require.NoError(t, api.DeletePet(ctx, pet.ID))
}

func TestAPI_PasswordResetRoundTrip(t *testing.T) {
	mailer := notify.NewLogMailer(nil)
	cfg := config.Default()
	cfg.JWTSecret = "client-test-secret-0123456789"
	h, err := router.NewRouter(router.Options{Config: cfg, Mailer: mailer})
	require.NoError(t, err)
	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)

	api := newAPI(t, ts.URL)
	ctx := context.Background()
	registerWithPet(t, api, "Alice Demir", "alice@example.com", "Buddy")
	require.NoError(t, api.SignOut(ctx))

	require.NoError(t, api.RequestPasswordReset(ctx, "alice@example.com"))
	code, ok := mailer.LastCode("alice@example.com")
	require.True(t, ok)

	err = api.ConfirmPasswordReset(ctx, code, "Newpass9", "Other99")
	var he *httpclient.HTTPError
	require.True(t, errors.As(err, &he))
	assert.Equal(t, http.StatusBadRequest, he.StatusCode)
	assert.Contains(t, he.Fields, "confirm_password")

	require.NoError(t, api.ConfirmPasswordReset(ctx, code, "Newpass9", "Newpass9"))
	_, err = api.Login(ctx, "alice@example.com", "Newpass9")
	require.NoError(t, err)

	err = api.ConfirmPasswordReset(ctx, code, "Again999", "Again999")
	require.True(t, errors.As(err, &he))
	assert.Equal(t, "auth/invalid-action-code", he.Code)
}

func TestAPI_LoginErrorCarriesLocalizedMessage(t *testing.T) {
	ts := newBackend(t)
	api := newAPI(t, ts.URL)

	_, err := api.Login(context.Background(), "ghost@example.com", "Secret1")
	require.Error(t, err)

	var he *httpclient.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusNotFound, he.StatusCode)
	assert.Equal(t, "auth/user-not-found", he.Code)
	assert.Equal(t, "No account was found for this email.", client.Message(err))
}

func TestAPI_FeedLoopCreatesMatch(t *testing.T) {
	ts := newBackend(t)
	alice := newAPI(t, ts.URL)
	bob := newAPI(t, ts.URL)
	ctx := context.Background()

	alicePet := registerWithPet(t, alice, "Alice Demir", "alice@example.com", "Luna")
	registerWithPet(t, bob, "Bob Yılmaz", "bob@example.com", "Max")

	// Bob likea a Luna directo por la API
	res, err := bob.Decide(ctx, feed.Decision{PetID: alicePet.ID, Outcome: feed.OutcomeLike})
	require.NoError(t, err)
	assert.False(t, res.Matched)

	// Alice usa el feed completo: source remoto + sink asíncrono
	sink := feed.NewAsyncSink(alice.Recorder(), feed.AsyncOptions{InitialInterval: time.Millisecond})
	ctrl := feed.NewController(alice.Source(), sink, nil)

	require.NoError(t, ctrl.Load(ctx))
	v := ctrl.Snapshot()
	require.Equal(t, feed.StateActive, v.State)
	assert.Equal(t, "Max", v.Current.Name)

	_, ok := ctrl.Like(ctx)
	require.True(t, ok)
	assert.Equal(t, feed.StateExhausted, ctrl.Snapshot().State)

	ctrl.Close()
	require.NoError(t, sink.Close(ctx))
	delivered, dropped := sink.Stats()
	assert.Equal(t, int64(1), delivered)
	assert.Zero(t, dropped)

	ms, err := alice.Matches(ctx)
	require.NoError(t, err)
	require.Len(t, ms, 1)
	assert.Equal(t, "bob@example.com", ms[0].Owner.Contact)
	assert.Equal(t, "Luna", ms[0].MyPet.Name)
}

func TestRecorder_ClientErrorsAreRejected(t *testing.T) {
	ts := newBackend(t)
	api := newAPI(t, ts.URL)
	registerWithPet(t, api, "Alice Demir", "alice@example.com", "Luna")

	err := api.Recorder().Record(context.Background(), feed.Decision{PetID: "missing", Outcome: feed.OutcomeLike})
	require.Error(t, err)
	assert.ErrorIs(t, err, feed.ErrRejected)

	st, ok := httpclient.StatusOf(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusNotFound, st)
}

func TestRecorder_ServerErrorsAreRetryable(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer ts.Close()

	api := newAPI(t, ts.URL)
	err := api.Recorder().Record(context.Background(), feed.Decision{PetID: "p-1", Outcome: feed.OutcomeLike})
	require.Error(t, err)
	assert.False(t, errors.Is(err, feed.ErrRejected))
	assert.Equal(t, "Service Unavailable", client.Message(err))
}
