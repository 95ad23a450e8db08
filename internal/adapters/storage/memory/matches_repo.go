package memory

import (
	"context"
	"sort"
	"sync"

	"petmate/internal/domain/feed"
	"petmate/internal/domain/matches"
)

type decisionKey struct {
	userID string
	petID  string
}

type decisionRepo struct {
	mu   sync.RWMutex
	byID map[decisionKey]matches.Decision
}

func NewDecisionRepo() matches.DecisionRepository {
	return &decisionRepo{byID: make(map[decisionKey]matches.Decision)}
}

func (r *decisionRepo) Upsert(ctx context.Context, d matches.Decision) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.byID[decisionKey{userID: d.UserID, petID: d.PetID}] = d
	return nil
}

func (r *decisionRepo) DecidedPetIDs(ctx context.Context, userID string) (map[string]struct{}, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]struct{})
	for k := range r.byID {
		if k.userID == userID {
			out[k.petID] = struct{}{}
		}
	}
	return out, nil
}

func (r *decisionRepo) LatestLike(ctx context.Context, userID, ownerUserID string) (matches.Decision, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var (
		best  matches.Decision
		found bool
	)
	for k, d := range r.byID {
		if k.userID != userID || d.PetOwnerID != ownerUserID || d.Outcome != feed.OutcomeLike {
			continue
		}
		if !found || d.DecidedAt.After(best.DecidedAt) {
			best, found = d, true
		}
	}
	return best, found, nil
}

type matchRepo struct {
	mu     sync.RWMutex
	byPair map[string]matches.Match
}

func NewMatchRepo() matches.MatchRepository {
	return &matchRepo{byPair: make(map[string]matches.Match)}
}

func (r *matchRepo) Create(ctx context.Context, m matches.Match) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := matches.PairKey(m.PetA, m.PetB)
	if _, exists := r.byPair[key]; exists {
		return matches.ErrMatchExists
	}
	r.byPair[key] = m
	return nil
}

func (r *matchRepo) GetByPair(ctx context.Context, petX, petY string) (matches.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.byPair[matches.PairKey(petX, petY)]
	if !ok {
		return matches.Match{}, matches.ErrNotFound
	}
	return m, nil
}

func (r *matchRepo) ListByUser(ctx context.Context, userID string) ([]matches.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]matches.Match, 0)
	for _, m := range r.byPair {
		if m.Involves(userID) {
			out = append(out, m)
		}
	}
	// más recientes primero
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}
