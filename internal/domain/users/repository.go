package users

import (
	"context"
	"time"
)

type Repository interface {
	// Create devuelve ErrEmailTaken si el email ya existe.
	Create(ctx context.Context, u User) error
	Update(ctx context.Context, u User) error
	GetByID(ctx context.Context, id string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
}

type ResetRepository interface {
	Create(ctx context.Context, r PasswordReset) error
	Get(ctx context.Context, token string) (PasswordReset, error)
	// MarkUsed reclama el código una sola vez; si ya estaba usado devuelve ErrResetInvalid.
	MarkUsed(ctx context.Context, token string, at time.Time) error
	// Release deshace un MarkUsed cuyo cambio de password no se pudo guardar.
	Release(ctx context.Context, token string) error
}
