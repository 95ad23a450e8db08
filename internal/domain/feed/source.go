package feed

import (
	"context"
	"time"
)

// Profile es lo que el feed muestra de una mascota. Inmutable desde el feed.
type Profile struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Species     string `json:"type"`
	Breed       string `json:"breed"`
	Age         int    `json:"age"`
	Description string `json:"description"`
	ImageURL    string `json:"image,omitempty"`
}

// Source entrega la lista ordenada de candidatos. Se llama una vez por carga.
type Source interface {
	Fetch(ctx context.Context) ([]Profile, error)
}

// SourceFunc adapta una función a Source.
type SourceFunc func(ctx context.Context) ([]Profile, error)

func (f SourceFunc) Fetch(ctx context.Context) ([]Profile, error) { return f(ctx) }

// DefaultFixtureDelay imita la latencia de un backend real.
const DefaultFixtureDelay = time.Second

const placeholderImage = "https://via.placeholder.com/300"

var fixtureProfiles = []Profile{
	{
		ID:          "fixture-max",
		Name:        "Max",
		Species:     "dog",
		Breed:       "Golden Retriever",
		Age:         3,
		Description: "Energetic and playful. Gets along great with other animals.",
		ImageURL:    placeholderImage,
	},
	{
		ID:          "fixture-luna",
		Name:        "Luna",
		Species:     "cat",
		Breed:       "British Shorthair",
		Age:         2,
		Description: "Calm and sweet. Loves sitting on laps.",
		ImageURL:    placeholderImage,
	},
	{
		ID:          "fixture-buddy",
		Name:        "Buddy",
		Species:     "dog",
		Breed:       "Labrador",
		Age:         1,
		Description: "Very energetic. Loves running and playing fetch.",
		ImageURL:    placeholderImage,
	},
}

// FixtureProfiles devuelve una copia de [Max, Luna, Buddy].
func FixtureProfiles() []Profile {
	out := make([]Profile, len(fixtureProfiles))
	copy(out, fixtureProfiles)
	return out
}

// FixtureSource devuelve los perfiles fijos después de Delay.
type FixtureSource struct {
	Delay time.Duration
}

func (s FixtureSource) Fetch(ctx context.Context) ([]Profile, error) {
	if s.Delay <= 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return FixtureProfiles(), nil
	}

	t := time.NewTimer(s.Delay)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-t.C:
		return FixtureProfiles(), nil
	}
}
