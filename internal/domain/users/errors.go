package users

import (
	"errors"

	"petmate/internal/platform/i18n"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("user not found")
	ErrEmailTaken   = errors.New("email already registered")
	ErrResetInvalid = errors.New("reset code invalid or expired")
)

// AuthError lleva un código estable (estilo Firebase) que el handler traduce.
type AuthError struct {
	Code string
	Err  error
}

func (e *AuthError) Error() string {
	if e.Err == nil {
		return e.Code
	}
	return e.Code + ": " + e.Err.Error()
}

func (e *AuthError) Unwrap() error { return e.Err }

func authErr(code string, err error) error {
	return &AuthError{Code: code, Err: err}
}

// Códigos re-exportados para no obligar a importar i18n desde handlers/tests.
const (
	CodeEmailInUse    = i18n.CodeEmailInUse
	CodeInvalidEmail  = i18n.CodeInvalidEmail
	CodeWeakPassword  = i18n.CodeWeakPassword
	CodeUserNotFound  = i18n.CodeUserNotFound
	CodeWrongPassword = i18n.CodeWrongPassword
	CodeInvalidCode   = i18n.CodeInvalidToken
	CodeUnauthorized  = i18n.CodeUnauthorized
)

// CodeOf devuelve el código de auth si err es *AuthError.
func CodeOf(err error) (string, bool) {
	var ae *AuthError
	if errors.As(err, &ae) {
		return ae.Code, true
	}
	return "", false
}
