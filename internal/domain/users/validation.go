package users

import (
	"strings"

	"petmate/internal/platform/validate"
)

type RegisterInput struct {
	Name            string   `json:"name" validate:"notblank,min=2,max=50"`
	Email           string   `json:"email" validate:"required,email"`
	Password        string   `json:"password" validate:"required,min=6,upper,lower,digit"`
	ConfirmPassword string   `json:"confirm_password" validate:"required,eqfield=Password"`
	UserType        UserType `json:"user_type" validate:"required,oneof=petOwner veterinarian"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type ConfirmResetInput struct {
	Code            string `json:"code" validate:"notblank"`
	Password        string `json:"password" validate:"required,min=6,upper,lower,digit"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=Password"`
}

// Los mensajes van en inglés; i18n los traduce al responder.
var messages = validate.Messages{
	"name.notblank": "Name is required",
	"name.min":      "Name is too short",
	"name.max":      "Name is too long",

	"email.required": "Email is required",
	"email.email":    "Invalid email address",

	"password.required": "Password is required",
	"password.min":      "Password must be at least 6 characters",
	"password.upper":    "Password must contain an uppercase letter",
	"password.lower":    "Password must contain a lowercase letter",
	"password.digit":    "Password must contain a number",

	"confirm_password.required": "Password confirmation is required",
	"confirm_password.eqfield":  "Passwords do not match",

	"user_type": "Select a user type",

	"code": "Reset code is required",
}

func ValidateRegister(in RegisterInput) validate.FieldErrors {
	in.Email = normalizeEmail(in.Email)
	return validate.Struct(in, messages)
}

func ValidateLogin(in LoginInput) validate.FieldErrors {
	in.Email = normalizeEmail(in.Email)
	return validate.Struct(in, messages)
}

func ValidateResetEmail(email string) validate.FieldErrors {
	return validate.Var("email", normalizeEmail(email), "required,email", messages)
}

func ValidateConfirmReset(in ConfirmResetInput) validate.FieldErrors {
	return validate.Struct(in, messages)
}

// emailError: si lo único mal es el formato del email, sale como auth/invalid-email
// (con el campo igual adjunto); si no, como error de validación normal.
func emailError(errs validate.FieldErrors) error {
	if len(errs) == 1 && errs["email"] == messages["email.email"] {
		return authErr(CodeInvalidEmail, errs.AsError())
	}
	return errs.AsError()
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
