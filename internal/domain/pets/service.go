package pets

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"petmate/internal/platform/logger"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("pet not found")
	ErrForbidden    = errors.New("forbidden")
)

// ProfileCompleter marca el perfil del dueño como completo (lo implementa users).
type ProfileCompleter interface {
	MarkProfileCompleted(ctx context.Context, userID string) error
}

type Service struct {
	repo      Repository
	completer ProfileCompleter
	log       logger.Logger
	now       func() time.Time
}

func NewService(repo Repository, completer ProfileCompleter, log logger.Logger) *Service {
	if log == nil {
		log = logger.NewNop()
	}
	return &Service{
		repo:      repo,
		completer: completer,
		log:       log.With(map[string]any{"module": "pets"}),
		now:       time.Now,
	}
}

func (s *Service) Create(ctx context.Context, ownerUserID string, in ProfileInput) (Pet, error) {
	if strings.TrimSpace(ownerUserID) == "" {
		return Pet{}, ErrInvalidInput
	}
	in = trimInput(in)
	if errs := ValidateProfile(in); errs.HasErrors() {
		return Pet{}, errs.AsError()
	}

	now := s.now()
	p := Pet{
		ID:          uuid.NewString(),
		OwnerUserID: ownerUserID,
		Name:        in.Name,
		Species:     in.Species,
		Breed:       in.Breed,
		Age:         *in.Age,
		Description: in.Description,
		ImageURL:    in.ImageURL,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return Pet{}, err
	}

	if s.completer != nil {
		// No bloquea la creación: el flag se puede recalcular más tarde.
		if err := s.completer.MarkProfileCompleted(ctx, ownerUserID); err != nil {
			s.log.Warn("mark profile completed failed", map[string]any{"user_id": ownerUserID, "err": err})
		}
	}
	return p, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Pet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Pet{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

// OwnerOf devuelve solo el dueño, sin exponer el perfil.
func (s *Service) OwnerOf(ctx context.Context, petID string) (string, error) {
	p, err := s.GetByID(ctx, petID)
	if err != nil {
		return "", fmt.Errorf("owner of %q: %w", petID, err)
	}
	return p.OwnerUserID, nil
}

func (s *Service) ListByOwner(ctx context.Context, ownerUserID string) ([]Pet, error) {
	return s.repo.ListByOwner(ctx, ownerUserID)
}

func (s *Service) ListCandidates(ctx context.Context, forUserID string, exclude map[string]struct{}, limit int) ([]Pet, error) {
	return s.repo.ListCandidates(ctx, forUserID, exclude, limit)
}

// PatchInput: punteros para PATCH real, nil = no tocar.
type PatchInput struct {
	Name        *string  `json:"name"`
	Species     *Species `json:"type"`
	Breed       *string  `json:"breed"`
	Age         *int     `json:"age"`
	Description *string  `json:"description"`
	ImageURL    *string  `json:"image"`
}

// Update aplica el patch y valida el perfil resultante completo. Solo el dueño.
func (s *Service) Update(ctx context.Context, id, actorUserID string, in PatchInput) (Pet, error) {
	current, err := s.GetByID(ctx, id)
	if err != nil {
		return Pet{}, err
	}
	if current.OwnerUserID != actorUserID {
		return Pet{}, ErrForbidden
	}

	merged := ProfileInput{
		Name:        current.Name,
		Species:     current.Species,
		Breed:       current.Breed,
		Age:         &current.Age,
		Description: current.Description,
		ImageURL:    current.ImageURL,
	}
	if in.Name != nil {
		merged.Name = *in.Name
	}
	if in.Species != nil {
		merged.Species = *in.Species
	}
	if in.Breed != nil {
		merged.Breed = *in.Breed
	}
	if in.Age != nil {
		merged.Age = in.Age
	}
	if in.Description != nil {
		merged.Description = *in.Description
	}
	if in.ImageURL != nil {
		merged.ImageURL = *in.ImageURL
	}

	merged = trimInput(merged)
	if errs := ValidateProfile(merged); errs.HasErrors() {
		return Pet{}, errs.AsError()
	}

	current.Name = merged.Name
	current.Species = merged.Species
	current.Breed = merged.Breed
	current.Age = *merged.Age
	current.Description = merged.Description
	current.ImageURL = merged.ImageURL
	current.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, current); err != nil {
		return Pet{}, fmt.Errorf("update pet: %w", err)
	}
	return current, nil
}

func (s *Service) Delete(ctx context.Context, id, actorUserID string) error {
	current, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if current.OwnerUserID != actorUserID {
		return ErrForbidden
	}
	return s.repo.Delete(ctx, id)
}

// Seed inserta perfiles con ID fijo si no existen (fixtures de dev).
func (s *Service) Seed(ctx context.Context, items []Pet) error {
	for _, p := range items {
		if _, err := s.repo.GetByID(ctx, p.ID); err == nil {
			continue
		} else if !errors.Is(err, ErrNotFound) {
			return err
		}
		if p.CreatedAt.IsZero() {
			p.CreatedAt = s.now()
		}
		if p.UpdatedAt.IsZero() {
			p.UpdatedAt = p.CreatedAt
		}
		if err := s.repo.Create(ctx, p); err != nil {
			return fmt.Errorf("seed pet %s: %w", p.ID, err)
		}
	}
	return nil
}

func trimInput(in ProfileInput) ProfileInput {
	in.Name = strings.TrimSpace(in.Name)
	in.Species = Species(strings.ToLower(strings.TrimSpace(string(in.Species))))
	in.Breed = strings.TrimSpace(in.Breed)
	in.Description = strings.TrimSpace(in.Description)
	in.ImageURL = strings.TrimSpace(in.ImageURL)
	return in
}
