package matches

import "context"

type DecisionRepository interface {
	// Upsert por (user_id, pet_id).
	Upsert(ctx context.Context, d Decision) error

	// DecidedPetIDs: mascotas que el usuario ya decidió (like o dislike).
	DecidedPetIDs(ctx context.Context, userID string) (map[string]struct{}, error)

	// LatestLike busca el like más reciente de userID sobre alguna mascota de ownerUserID.
	// ok=false si no hay.
	LatestLike(ctx context.Context, userID, ownerUserID string) (d Decision, ok bool, err error)
}

type MatchRepository interface {
	// Create devuelve ErrMatchExists si el par ya tiene match.
	Create(ctx context.Context, m Match) error
	GetByPair(ctx context.Context, petX, petY string) (Match, error)
	ListByUser(ctx context.Context, userID string) ([]Match, error)
}
