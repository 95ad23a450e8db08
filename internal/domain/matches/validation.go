package matches

import (
	"petmate/internal/domain/feed"
	"petmate/internal/platform/validate"
)

type DecisionInput struct {
	PetID   string       `json:"pet_id" validate:"notblank"`
	Outcome feed.Outcome `json:"outcome" validate:"oneof=like dislike"`
}

var messages = validate.Messages{
	"pet_id":  "Pet is required",
	"outcome": "Outcome must be like or dislike",
}

func ValidateDecision(in DecisionInput) validate.FieldErrors {
	return validate.Struct(in, messages)
}
