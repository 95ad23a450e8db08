package postgres

import (
	"context"
	"database/sql"
	"errors"

	"petmate/internal/domain/feed"
	"petmate/internal/domain/matches"
)

type DecisionsRepo struct {
	db *sql.DB
}

func NewDecisionsRepo(db *sql.DB) *DecisionsRepo {
	return &DecisionsRepo{db: db}
}

func (r *DecisionsRepo) Upsert(ctx context.Context, d matches.Decision) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO decisions (user_id, pet_id, pet_owner_id, outcome, decided_at)
		VALUES ($1,$2,$3,$4,$5)
		ON CONFLICT (user_id, pet_id) DO UPDATE
		SET pet_owner_id = EXCLUDED.pet_owner_id,
		    outcome = EXCLUDED.outcome,
		    decided_at = EXCLUDED.decided_at
	`, d.UserID, d.PetID, d.PetOwnerID, string(d.Outcome), d.DecidedAt)
	return err
}

func (r *DecisionsRepo) DecidedPetIDs(ctx context.Context, userID string) (map[string]struct{}, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT pet_id FROM decisions WHERE user_id = $1`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]struct{})
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out[id] = struct{}{}
	}
	return out, rows.Err()
}

func (r *DecisionsRepo) LatestLike(ctx context.Context, userID, ownerUserID string) (matches.Decision, bool, error) {
	var d matches.Decision
	var outcome string
	err := r.db.QueryRowContext(ctx, `
		SELECT user_id, pet_id, pet_owner_id, outcome, decided_at
		FROM decisions
		WHERE user_id = $1 AND pet_owner_id = $2 AND outcome = $3
		ORDER BY decided_at DESC
		LIMIT 1
	`, userID, ownerUserID, string(feed.OutcomeLike)).Scan(
		&d.UserID, &d.PetID, &d.PetOwnerID, &outcome, &d.DecidedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return matches.Decision{}, false, nil
		}
		return matches.Decision{}, false, err
	}
	d.Outcome = feed.Outcome(outcome)
	return d, true, nil
}

type MatchesRepo struct {
	db *sql.DB
}

func NewMatchesRepo(db *sql.DB) *MatchesRepo {
	return &MatchesRepo{db: db}
}

// Create se apoya en UNIQUE(pair_key) para resolver la carrera de dos likes simultáneos.
func (r *MatchesRepo) Create(ctx context.Context, m matches.Match) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO matches (id, pair_key, user_a, pet_a, user_b, pet_b, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
	`, m.ID, matches.PairKey(m.PetA, m.PetB), m.UserA, m.PetA, m.UserB, m.PetB, m.CreatedAt)
	if isUniqueViolation(err) {
		return matches.ErrMatchExists
	}
	return err
}

func (r *MatchesRepo) GetByPair(ctx context.Context, petX, petY string) (matches.Match, error) {
	var m matches.Match
	err := r.db.QueryRowContext(ctx, `
		SELECT id, user_a, pet_a, user_b, pet_b, created_at
		FROM matches
		WHERE pair_key = $1
	`, matches.PairKey(petX, petY)).Scan(&m.ID, &m.UserA, &m.PetA, &m.UserB, &m.PetB, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return matches.Match{}, matches.ErrNotFound
		}
		return matches.Match{}, err
	}
	return m, nil
}

func (r *MatchesRepo) ListByUser(ctx context.Context, userID string) ([]matches.Match, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_a, pet_a, user_b, pet_b, created_at
		FROM matches
		WHERE user_a = $1 OR user_b = $1
		ORDER BY created_at DESC, id ASC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]matches.Match, 0)
	for rows.Next() {
		var m matches.Match
		if err := rows.Scan(&m.ID, &m.UserA, &m.PetA, &m.UserB, &m.PetB, &m.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
