package matches

import (
	"context"
	"fmt"
	"time"

	"petmate/internal/domain/feed"
	"petmate/internal/domain/pets"
)

// CandidateLister: mascotas de otros dueños excluyendo IDs.
type CandidateLister interface {
	ListCandidates(ctx context.Context, forUserID string, exclude map[string]struct{}, limit int) ([]pets.Pet, error)
}

type RecommenderOptions struct {
	Limit        int
	Fixture      bool          // usa FixtureSource en vez del store
	FixtureDelay time.Duration // solo con Fixture
}

// Recommender arma la fuente de recomendaciones por usuario.
type Recommender struct {
	pets      CandidateLister
	decisions DecisionRepository
	opts      RecommenderOptions
}

func NewRecommender(p CandidateLister, decisions DecisionRepository, opts RecommenderOptions) *Recommender {
	return &Recommender{pets: p, decisions: decisions, opts: opts}
}

// ForUser devuelve una feed.Source: mascotas ajenas no decididas, por orden de alta.
func (r *Recommender) ForUser(userID string) feed.Source {
	if r.opts.Fixture {
		return feed.FixtureSource{Delay: r.opts.FixtureDelay}
	}

	return feed.SourceFunc(func(ctx context.Context) ([]feed.Profile, error) {
		decided, err := r.decisions.DecidedPetIDs(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("decided pets: %w", err)
		}

		items, err := r.pets.ListCandidates(ctx, userID, decided, r.opts.Limit)
		if err != nil {
			return nil, fmt.Errorf("list candidates: %w", err)
		}

		out := make([]feed.Profile, 0, len(items))
		for _, p := range items {
			out = append(out, ToProfile(p))
		}
		return out, nil
	})
}

func ToProfile(p pets.Pet) feed.Profile {
	return feed.Profile{
		ID:          p.ID,
		Name:        p.Name,
		Species:     string(p.Species),
		Breed:       p.Breed,
		Age:         p.Age,
		Description: p.Description,
		ImageURL:    p.ImageURL,
	}
}
