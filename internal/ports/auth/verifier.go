package auth

import "context"

// AuthVerifier verifica un token y devuelve claims o error.
type AuthVerifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}

// TokenIssuer emite y revoca tokens de sesión.
type TokenIssuer interface {
	Issue(ctx context.Context, userID, email string) (Token, error)
	Revoke(ctx context.Context, claims Claims) error
}
