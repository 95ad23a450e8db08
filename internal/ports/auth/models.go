package auth

import "time"

// Claims representa la información extraída del token.
type Claims struct {
	UserID    string
	Email     string
	TokenID   string
	ExpiresAt time.Time
}

// Token emitido al registrarse o iniciar sesión.
type Token struct {
	Value     string
	TokenID   string
	ExpiresAt time.Time
}
