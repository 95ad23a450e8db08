package pets

import "petmate/internal/platform/validate"

const (
	MaxAge         = 50
	MaxDescription = 500
)

type ProfileInput struct {
	Name        string  `json:"name" validate:"notblank,max=50"`
	Species     Species `json:"type" validate:"required,oneof=dog cat bird hamster other"`
	Breed       string  `json:"breed" validate:"notblank,max=80"`
	Age         *int    `json:"age" validate:"required,gte=0,lte=50"`
	Description string  `json:"description" validate:"max=500"`
	ImageURL    string  `json:"image" validate:"omitempty,url"`
}

var messages = validate.Messages{
	"name":          "Pet name is required",
	"type.required": "Pet type is required",
	"type.oneof":    "Unknown pet type",
	"breed":         "Breed is required",
	"age.required":  "Age must be a non-negative number",
	"age.gte":       "Age must be a non-negative number",
	"age.lte":       "Age is out of range",
	"description":   "Description is too long",
	"image":         "Image must be a valid URL",
}

// ValidateProfile corre antes de crear/actualizar. Vacío = válido.
func ValidateProfile(in ProfileInput) validate.FieldErrors {
	return validate.Struct(in, messages)
}
