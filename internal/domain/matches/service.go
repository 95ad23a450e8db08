package matches

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"petmate/internal/domain/feed"
	"petmate/internal/domain/pets"
	"petmate/internal/platform/logger"

	"github.com/google/uuid"
)

// PetLookup es lo que matches necesita de pets.
type PetLookup interface {
	GetByID(ctx context.Context, id string) (pets.Pet, error)
}

// Contacts resuelve nombre y contacto del otro dueño (lo implementa users).
type Contacts interface {
	Contact(ctx context.Context, userID string) (name, email string, err error)
}

type Service struct {
	pets      PetLookup
	contacts  Contacts
	decisions DecisionRepository
	matches   MatchRepository
	log       logger.Logger
	now       func() time.Time
}

func NewService(p PetLookup, c Contacts, decisions DecisionRepository, matches MatchRepository, log logger.Logger) *Service {
	if log == nil {
		log = logger.NewNop()
	}
	return &Service{
		pets:      p,
		contacts:  c,
		decisions: decisions,
		matches:   matches,
		log:       log.With(map[string]any{"module": "matches"}),
		now:       time.Now,
	}
}

// Record guarda la decisión (idempotente) y, si es like recíproco, crea el match.
// Reentregar la misma decisión devuelve el mismo match.
func (s *Service) Record(ctx context.Context, userID string, in DecisionInput) (Decision, *Match, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return Decision{}, nil, ErrInvalidInput
	}
	in.PetID = strings.TrimSpace(in.PetID)
	if errs := ValidateDecision(in); errs.HasErrors() {
		return Decision{}, nil, errs.AsError()
	}

	pet, err := s.pets.GetByID(ctx, in.PetID)
	if err != nil {
		if errors.Is(err, pets.ErrNotFound) {
			return Decision{}, nil, ErrPetNotFound
		}
		return Decision{}, nil, fmt.Errorf("lookup pet: %w", err)
	}
	if pet.OwnerUserID == userID {
		return Decision{}, nil, ErrOwnPet
	}

	d := Decision{
		UserID:     userID,
		PetID:      pet.ID,
		PetOwnerID: pet.OwnerUserID,
		Outcome:    in.Outcome,
		DecidedAt:  s.now(),
	}
	if err := s.decisions.Upsert(ctx, d); err != nil {
		return Decision{}, nil, fmt.Errorf("store decision: %w", err)
	}

	if d.Outcome != feed.OutcomeLike {
		return d, nil, nil
	}

	m, err := s.matchIfMutual(ctx, d)
	if err != nil {
		return d, nil, err
	}
	return d, m, nil
}

func (s *Service) matchIfMutual(ctx context.Context, d Decision) (*Match, error) {
	back, ok, err := s.decisions.LatestLike(ctx, d.PetOwnerID, d.UserID)
	if err != nil {
		return nil, fmt.Errorf("lookup reciprocal like: %w", err)
	}
	if !ok {
		return nil, nil
	}

	// la mascota likeada por el otro pudo haberse borrado
	if _, err := s.pets.GetByID(ctx, back.PetID); err != nil {
		if errors.Is(err, pets.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("lookup pet: %w", err)
	}

	if existing, err := s.matches.GetByPair(ctx, back.PetID, d.PetID); err == nil {
		return &existing, nil
	} else if !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("lookup match: %w", err)
	}

	m := Match{
		ID:        uuid.NewString(),
		UserA:     d.UserID,
		PetA:      back.PetID,
		UserB:     d.PetOwnerID,
		PetB:      d.PetID,
		CreatedAt: s.now(),
	}
	if err := s.matches.Create(ctx, m); err != nil {
		// carrera: el otro lado lo creó primero
		if errors.Is(err, ErrMatchExists) {
			existing, gerr := s.matches.GetByPair(ctx, back.PetID, d.PetID)
			if gerr != nil {
				return nil, fmt.Errorf("lookup match: %w", gerr)
			}
			return &existing, nil
		}
		return nil, fmt.Errorf("create match: %w", err)
	}

	s.log.Info("match created", map[string]any{
		"match_id": m.ID,
		"user_a":   m.UserA,
		"user_b":   m.UserB,
	})
	return &m, nil
}

// Owner es la parte visible del otro dueño.
type Owner struct {
	ID      string
	Name    string
	Contact string
}

// MatchView es un match visto por uno de los dos usuarios.
type MatchView struct {
	ID        string
	MyPet     pets.Pet
	OtherPet  pets.Pet
	Owner     Owner
	MatchedAt time.Time
}

// ListMatches devuelve los matches del usuario, más recientes primero.
// Matches con mascotas borradas se omiten.
func (s *Service) ListMatches(ctx context.Context, userID string) ([]MatchView, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, ErrInvalidInput
	}

	items, err := s.matches.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]MatchView, 0, len(items))
	for _, m := range items {
		myPetID, otherPetID, otherUser := m.Sides(userID)

		myPet, err := s.pets.GetByID(ctx, myPetID)
		if err != nil {
			s.log.Debug("match skipped", map[string]any{"match_id": m.ID, "err": err})
			continue
		}
		otherPet, err := s.pets.GetByID(ctx, otherPetID)
		if err != nil {
			s.log.Debug("match skipped", map[string]any{"match_id": m.ID, "err": err})
			continue
		}

		owner := Owner{ID: otherUser}
		if s.contacts != nil {
			name, email, err := s.contacts.Contact(ctx, otherUser)
			if err != nil {
				s.log.Warn("owner contact unavailable", map[string]any{"user_id": otherUser, "err": err})
			} else {
				owner.Name, owner.Contact = name, email
			}
		}

		out = append(out, MatchView{
			ID:        m.ID,
			MyPet:     myPet,
			OtherPet:  otherPet,
			Owner:     owner,
			MatchedAt: m.CreatedAt,
		})
	}
	return out, nil
}
