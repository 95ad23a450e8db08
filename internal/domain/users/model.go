package users

import "time"

// UserType define el tipo de cuenta.
// @Enum petOwner, veterinarian
type UserType string

const (
	UserTypePetOwner     UserType = "petOwner"
	UserTypeVeterinarian UserType = "veterinarian"
)

func (t UserType) Valid() bool {
	return t == UserTypePetOwner || t == UserTypeVeterinarian
}

// User es el registro persistido de una cuenta.
type User struct {
	ID    string
	Email string
	Name  string
	Type  UserType

	PasswordHash []byte

	// ProfileCompleted pasa a true cuando el usuario crea su primera mascota.
	ProfileCompleted bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// PasswordReset es un código de un solo uso enviado por email.
type PasswordReset struct {
	Token     string
	UserID    string
	CreatedAt time.Time
	ExpiresAt time.Time
	UsedAt    *time.Time
}

func (p PasswordReset) Usable(now time.Time) bool {
	return p.UsedAt == nil && now.Before(p.ExpiresAt)
}
