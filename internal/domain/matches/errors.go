package matches

import "errors"

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("match not found")
	ErrMatchExists  = errors.New("match already exists")
	ErrPetNotFound  = errors.New("pet not found")
	ErrOwnPet       = errors.New("cannot decide on own pet")
)
