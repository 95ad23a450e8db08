package users

import (
	"context"
	"errors"
	"testing"
	"time"

	"petmate/internal/platform/validate"
	"petmate/internal/ports/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// -------------------------
// Fakes
// -------------------------

type testRepo struct {
	byID      map[string]User
	updateErr error
}

func newTestRepo() *testRepo { return &testRepo{byID: map[string]User{}} }

func (r *testRepo) Create(ctx context.Context, u User) error {
	for _, existing := range r.byID {
		if existing.Email == u.Email {
			return ErrEmailTaken
		}
	}
	r.byID[u.ID] = u
	return nil
}

func (r *testRepo) Update(ctx context.Context, u User) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	if _, ok := r.byID[u.ID]; !ok {
		return ErrNotFound
	}
	r.byID[u.ID] = u
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (User, error) {
	u, ok := r.byID[id]
	if !ok {
		return User{}, ErrNotFound
	}
	return u, nil
}

func (r *testRepo) GetByEmail(ctx context.Context, email string) (User, error) {
	for _, u := range r.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return User{}, ErrNotFound
}

type testResets struct {
	byToken map[string]PasswordReset
	// staleGet simula otra confirmación que reclamó el código entre Get y MarkUsed.
	staleGet bool
}

func (r *testResets) Create(ctx context.Context, p PasswordReset) error {
	r.byToken[p.Token] = p
	return nil
}

func (r *testResets) Get(ctx context.Context, token string) (PasswordReset, error) {
	p, ok := r.byToken[token]
	if !ok {
		return PasswordReset{}, errors.New("not found")
	}
	if r.staleGet {
		p.UsedAt = nil
	}
	return p, nil
}

func (r *testResets) MarkUsed(ctx context.Context, token string, at time.Time) error {
	p := r.byToken[token]
	if p.UsedAt != nil {
		return ErrResetInvalid
	}
	p.UsedAt = &at
	r.byToken[token] = p
	return nil
}

func (r *testResets) Release(ctx context.Context, token string) error {
	p := r.byToken[token]
	p.UsedAt = nil
	r.byToken[token] = p
	return nil
}

type testTokens struct {
	issued  int
	revoked []string
}

func (t *testTokens) Issue(ctx context.Context, userID, email string) (auth.Token, error) {
	t.issued++
	return auth.Token{Value: "tok-" + userID, TokenID: "jti-" + userID}, nil
}

func (t *testTokens) Revoke(ctx context.Context, c auth.Claims) error {
	t.revoked = append(t.revoked, c.TokenID)
	return nil
}

type sentReset struct {
	to, code string
}

type testMailer struct {
	sent []sentReset
}

func (m *testMailer) SendPasswordReset(ctx context.Context, to, name, code string, expiresAt time.Time) error {
	m.sent = append(m.sent, sentReset{to: to, code: code})
	return nil
}

type fixture struct {
	svc    *Service
	repo   *testRepo
	resets *testResets
	tokens *testTokens
	mailer *testMailer
	now    time.Time
}

func newFixture() *fixture {
	f := &fixture{
		repo:   newTestRepo(),
		resets: &testResets{byToken: map[string]PasswordReset{}},
		tokens: &testTokens{},
		mailer: &testMailer{},
		now:    time.Date(2025, 12, 22, 10, 0, 0, 0, time.UTC),
	}
	f.svc = NewService(Deps{
		Repo:     f.repo,
		Resets:   f.resets,
		Tokens:   f.tokens,
		Mailer:   f.mailer,
		ResetTTL: time.Hour,
	})
	f.svc.hashCost = bcrypt.MinCost
	f.svc.now = func() time.Time { return f.now }
	return f
}

func validRegister() RegisterInput {
	return RegisterInput{
		Name:            "Ayşe Kaya",
		Email:           "  Ayse@Example.com ",
		Password:        "Secret1",
		ConfirmPassword: "Secret1",
		UserType:        UserTypePetOwner,
	}
}

// -------------------------
// Tests
// -------------------------

func TestService_Register_PersistsUserWithProfileIncomplete(t *testing.T) {
	f := newFixture()

	sess, err := f.svc.Register(context.Background(), validRegister())
	require.NoError(t, err)

	assert.Equal(t, "ayse@example.com", sess.User.Email)
	assert.Equal(t, "Ayşe Kaya", sess.User.Name)
	assert.Equal(t, UserTypePetOwner, sess.User.Type)
	assert.False(t, sess.User.ProfileCompleted)
	assert.Equal(t, f.now, sess.User.CreatedAt)
	assert.NotEqual(t, []byte("Secret1"), sess.User.PasswordHash)
	assert.Equal(t, "tok-"+sess.User.ID, sess.Token.Value)
}

func TestService_Register_ValidationErrors(t *testing.T) {
	f := newFixture()

	in := validRegister()
	in.Name = "A"
	in.Password = "secret1"
	in.ConfirmPassword = "other"
	in.UserType = "breeder"

	_, err := f.svc.Register(context.Background(), in)

	var verr *validate.Error
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "Name is too short", verr.Fields["name"])
	assert.Equal(t, "Password must contain an uppercase letter", verr.Fields["password"])
	assert.Equal(t, "Passwords do not match", verr.Fields["confirm_password"])
	assert.Equal(t, "Select a user type", verr.Fields["user_type"])
	assert.Zero(t, f.tokens.issued)
}

func TestService_Register_DuplicateEmail(t *testing.T) {
	f := newFixture()
	_, err := f.svc.Register(context.Background(), validRegister())
	require.NoError(t, err)

	_, err = f.svc.Register(context.Background(), validRegister())
	code, ok := CodeOf(err)
	require.True(t, ok)
	assert.Equal(t, CodeEmailInUse, code)
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestService_Login(t *testing.T) {
	f := newFixture()
	reg, err := f.svc.Register(context.Background(), validRegister())
	require.NoError(t, err)

	sess, err := f.svc.Login(context.Background(), LoginInput{Email: "ayse@example.com", Password: "Secret1"})
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, sess.User.ID)

	_, err = f.svc.Login(context.Background(), LoginInput{Email: "ayse@example.com", Password: "Wrong12"})
	code, _ := CodeOf(err)
	assert.Equal(t, CodeWrongPassword, code)

	_, err = f.svc.Login(context.Background(), LoginInput{Email: "nobody@example.com", Password: "Secret1"})
	code, _ = CodeOf(err)
	assert.Equal(t, CodeUserNotFound, code)
}

func TestService_ResetPassword_Flow(t *testing.T) {
	f := newFixture()
	_, err := f.svc.Register(context.Background(), validRegister())
	require.NoError(t, err)

	require.NoError(t, f.svc.ResetPassword(context.Background(), "AYSE@example.com"))
	require.Len(t, f.mailer.sent, 1)
	code := f.mailer.sent[0].code
	assert.Equal(t, "ayse@example.com", f.mailer.sent[0].to)

	err = f.svc.ConfirmPasswordReset(context.Background(), ConfirmResetInput{
		Code: code, Password: "Newpass9", ConfirmPassword: "Newpass9",
	})
	require.NoError(t, err)

	_, err = f.svc.Login(context.Background(), LoginInput{Email: "ayse@example.com", Password: "Newpass9"})
	require.NoError(t, err)

	// el código es de un solo uso
	err = f.svc.ConfirmPasswordReset(context.Background(), ConfirmResetInput{
		Code: code, Password: "Another9", ConfirmPassword: "Another9",
	})
	c, _ := CodeOf(err)
	assert.Equal(t, CodeInvalidCode, c)
}

func TestService_Login_MalformedEmail(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Login(context.Background(), LoginInput{Email: "not-an-email", Password: "Secret1"})
	code, ok := CodeOf(err)
	require.True(t, ok)
	assert.Equal(t, CodeInvalidEmail, code)

	// el campo sigue disponible para el formulario
	var verr *validate.Error
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "Invalid email address", verr.Fields["email"])

	// con más campos mal es validación normal
	_, err = f.svc.Login(context.Background(), LoginInput{Email: "not-an-email", Password: "x"})
	_, ok = CodeOf(err)
	assert.False(t, ok)
	require.True(t, errors.As(err, &verr))
	assert.Len(t, verr.Fields, 2)

	// email vacío no es "inválido", es requerido
	_, err = f.svc.Login(context.Background(), LoginInput{Email: "", Password: "Secret1"})
	_, ok = CodeOf(err)
	assert.False(t, ok)
}

func TestService_ResetPassword_MalformedEmail(t *testing.T) {
	f := newFixture()
	err := f.svc.ResetPassword(context.Background(), "nope")
	code, _ := CodeOf(err)
	assert.Equal(t, CodeInvalidEmail, code)
	assert.Empty(t, f.mailer.sent)
}

func TestService_ConfirmReset_ConcurrentClaimIsInvalidCode(t *testing.T) {
	f := newFixture()
	_, err := f.svc.Register(context.Background(), validRegister())
	require.NoError(t, err)
	require.NoError(t, f.svc.ResetPassword(context.Background(), "ayse@example.com"))
	code := f.mailer.sent[0].code

	require.NoError(t, f.svc.ConfirmPasswordReset(context.Background(), ConfirmResetInput{
		Code: code, Password: "Newpass9", ConfirmPassword: "Newpass9",
	}))

	// la otra confirmación leyó el código antes de que se marcara usado
	f.resets.staleGet = true
	err = f.svc.ConfirmPasswordReset(context.Background(), ConfirmResetInput{
		Code: code, Password: "Another9", ConfirmPassword: "Another9",
	})
	c, ok := CodeOf(err)
	require.True(t, ok)
	assert.Equal(t, CodeInvalidCode, c)
	assert.ErrorIs(t, err, ErrResetInvalid)

	_, err = f.svc.Login(context.Background(), LoginInput{Email: "ayse@example.com", Password: "Newpass9"})
	require.NoError(t, err)
}

func TestService_ConfirmReset_UpdateFailureKeepsCode(t *testing.T) {
	f := newFixture()
	_, err := f.svc.Register(context.Background(), validRegister())
	require.NoError(t, err)
	require.NoError(t, f.svc.ResetPassword(context.Background(), "ayse@example.com"))
	code := f.mailer.sent[0].code

	f.repo.updateErr = errors.New("db down")
	err = f.svc.ConfirmPasswordReset(context.Background(), ConfirmResetInput{
		Code: code, Password: "Newpass9", ConfirmPassword: "Newpass9",
	})
	require.Error(t, err)
	_, isAuth := CodeOf(err)
	assert.False(t, isAuth)
	assert.Nil(t, f.resets.byToken[code].UsedAt)

	// al volver la base, el mismo código sirve
	f.repo.updateErr = nil
	require.NoError(t, f.svc.ConfirmPasswordReset(context.Background(), ConfirmResetInput{
		Code: code, Password: "Newpass9", ConfirmPassword: "Newpass9",
	}))
	assert.NotNil(t, f.resets.byToken[code].UsedAt)
}

func TestService_ResetPassword_ExpiredCode(t *testing.T) {
	f := newFixture()
	_, err := f.svc.Register(context.Background(), validRegister())
	require.NoError(t, err)
	require.NoError(t, f.svc.ResetPassword(context.Background(), "ayse@example.com"))

	f.now = f.now.Add(2 * time.Hour)
	err = f.svc.ConfirmPasswordReset(context.Background(), ConfirmResetInput{
		Code: f.mailer.sent[0].code, Password: "Newpass9", ConfirmPassword: "Newpass9",
	})
	assert.ErrorIs(t, err, ErrResetInvalid)
}

func TestService_ResetPassword_UnknownEmail(t *testing.T) {
	f := newFixture()
	err := f.svc.ResetPassword(context.Background(), "ghost@example.com")
	code, ok := CodeOf(err)
	require.True(t, ok)
	assert.Equal(t, CodeUserNotFound, code)
	assert.Empty(t, f.mailer.sent)
}

func TestService_SignOut_RevokesToken(t *testing.T) {
	f := newFixture()
	require.NoError(t, f.svc.SignOut(context.Background(), auth.Claims{UserID: "u-1", TokenID: "jti-1"}))
	assert.Equal(t, []string{"jti-1"}, f.tokens.revoked)

	assert.ErrorIs(t, f.svc.SignOut(context.Background(), auth.Claims{}), ErrInvalidInput)
}

func TestService_MarkProfileCompleted_Idempotent(t *testing.T) {
	f := newFixture()
	sess, err := f.svc.Register(context.Background(), validRegister())
	require.NoError(t, err)

	require.NoError(t, f.svc.MarkProfileCompleted(context.Background(), sess.User.ID))
	require.NoError(t, f.svc.MarkProfileCompleted(context.Background(), sess.User.ID))

	u, err := f.svc.Me(context.Background(), sess.User.ID)
	require.NoError(t, err)
	assert.True(t, u.ProfileCompleted)
}
