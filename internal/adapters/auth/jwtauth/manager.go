package jwtauth

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"strings"
	"time"

	"petmate/internal/ports/auth"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrNotConfigured = errors.New("jwt auth not configured")
	ErrInvalidToken  = errors.New("invalid token")
	ErrRevoked       = errors.New("token revoked")
)

// Denylist guarda los token IDs revocados (sign out) hasta que expiran.
type Denylist interface {
	Add(ctx context.Context, tokenID string, until time.Time) error
	Contains(ctx context.Context, tokenID string) (bool, error)
}

type Config struct {
	Secret []byte
	Issuer string
	TTL    time.Duration
}

// Manager emite (auth.TokenIssuer) y verifica (auth.AuthVerifier) tokens HS256.
type Manager struct {
	secret []byte
	issuer string
	ttl    time.Duration
	deny   Denylist
	now    func() time.Time
}

type sessionClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email,omitempty"`
}

func NewManager(cfg Config, deny Denylist) (*Manager, error) {
	if len(cfg.Secret) < 16 {
		return nil, fmt.Errorf("%w: secret must be at least 16 bytes", ErrNotConfigured)
	}
	issuer := strings.TrimSpace(cfg.Issuer)
	if issuer == "" {
		issuer = "petmate"
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Manager{
		secret: cfg.Secret,
		issuer: issuer,
		ttl:    ttl,
		deny:   deny,
		now:    time.Now,
	}, nil
}

// RandomSecret genera un secreto efímero (modo dev sin JWT_SECRET).
// Los tokens dejan de valer al reiniciar el proceso.
func RandomSecret() []byte {
	b := make([]byte, 32)
	_, _ = rand.Read(b)
	return b
}

func (m *Manager) Issue(ctx context.Context, userID, email string) (auth.Token, error) {
	if m == nil {
		return auth.Token{}, ErrNotConfigured
	}
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return auth.Token{}, errors.New("user id required")
	}

	now := m.now()
	exp := now.Add(m.ttl)
	jti := uuid.NewString()

	claims := sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.issuer,
			Subject:   userID,
			ID:        jti,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
		Email: strings.TrimSpace(email),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return auth.Token{}, fmt.Errorf("sign token: %w", err)
	}

	return auth.Token{
		Value:     signed,
		TokenID:   jti,
		ExpiresAt: exp,
	}, nil
}

func (m *Manager) Verify(ctx context.Context, token string) (auth.Claims, error) {
	if m == nil {
		return auth.Claims{}, ErrNotConfigured
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrInvalidToken
	}

	var parsed sessionClaims
	_, err := jwt.ParseWithClaims(token, &parsed, func(t *jwt.Token) (any, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(m.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return auth.Claims{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if strings.TrimSpace(parsed.Subject) == "" || parsed.ID == "" {
		return auth.Claims{}, fmt.Errorf("%w: missing subject or id", ErrInvalidToken)
	}

	if m.deny != nil {
		revoked, err := m.deny.Contains(ctx, parsed.ID)
		if err != nil {
			return auth.Claims{}, fmt.Errorf("check denylist: %w", err)
		}
		if revoked {
			return auth.Claims{}, ErrRevoked
		}
	}

	claims := auth.Claims{
		UserID:  parsed.Subject,
		Email:   parsed.Email,
		TokenID: parsed.ID,
	}
	if parsed.ExpiresAt != nil {
		claims.ExpiresAt = parsed.ExpiresAt.Time
	}
	return claims, nil
}

// Revoke agrega el token a la denylist hasta su expiración.
func (m *Manager) Revoke(ctx context.Context, claims auth.Claims) error {
	if m == nil {
		return ErrNotConfigured
	}
	if claims.TokenID == "" {
		// Sesión dev (X-Debug-User-ID): no hay token que revocar.
		return nil
	}
	if m.deny == nil {
		return errors.New("denylist not configured")
	}
	until := claims.ExpiresAt
	if until.IsZero() {
		until = m.now().Add(m.ttl)
	}
	return m.deny.Add(ctx, claims.TokenID, until)
}
