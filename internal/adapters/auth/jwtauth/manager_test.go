package jwtauth

import (
	"context"
	"testing"
	"time"

	"petmate/internal/adapters/storage/memory"
	"petmate/internal/ports/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	m, err := NewManager(Config{Secret: []byte("0123456789abcdef0123"), Issuer: "petmate-test", TTL: time.Hour}, memory.NewTokenDenylist())
	require.NoError(t, err)
	return m
}

func TestManager_IssueAndVerify(t *testing.T) {
	m := newTestManager(t)

	tok, err := m.Issue(context.Background(), "user-1", "ayse@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, tok.Value)

	claims, err := m.Verify(context.Background(), tok.Value)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "ayse@example.com", claims.Email)
	assert.Equal(t, tok.TokenID, claims.TokenID)
}

func TestManager_RejectsShortSecret(t *testing.T) {
	_, err := NewManager(Config{Secret: []byte("short")}, nil)
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestManager_RejectsExpired(t *testing.T) {
	m := newTestManager(t)
	start := time.Now()
	m.now = func() time.Time { return start }

	tok, err := m.Issue(context.Background(), "user-1", "")
	require.NoError(t, err)

	m.now = func() time.Time { return start.Add(2 * time.Hour) }
	_, err = m.Verify(context.Background(), tok.Value)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestManager_RejectsForeignIssuerAndSecret(t *testing.T) {
	m := newTestManager(t)
	other, err := NewManager(Config{Secret: []byte("another-secret-value"), Issuer: "petmate-test"}, nil)
	require.NoError(t, err)

	tok, err := other.Issue(context.Background(), "user-1", "")
	require.NoError(t, err)

	_, err = m.Verify(context.Background(), tok.Value)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = m.Verify(context.Background(), "not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestManager_RevokeThenVerifyFails(t *testing.T) {
	m := newTestManager(t)

	tok, err := m.Issue(context.Background(), "user-1", "")
	require.NoError(t, err)
	claims, err := m.Verify(context.Background(), tok.Value)
	require.NoError(t, err)

	require.NoError(t, m.Revoke(context.Background(), claims))

	_, err = m.Verify(context.Background(), tok.Value)
	assert.ErrorIs(t, err, ErrRevoked)
}

func TestManager_RevokeWithoutTokenIDIsNoop(t *testing.T) {
	m := newTestManager(t)
	assert.NoError(t, m.Revoke(context.Background(), auth.Claims{UserID: "dev-user"}))
}
