package pets

import "context"

type Repository interface {
	Create(ctx context.Context, p Pet) error
	Update(ctx context.Context, p Pet) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (Pet, error)
	ListByOwner(ctx context.Context, ownerUserID string) ([]Pet, error)

	// ListCandidates devuelve mascotas de otros dueños, en orden de creación,
	// excluyendo los IDs dados. limit <= 0 = sin límite.
	ListCandidates(ctx context.Context, excludeOwner string, excludeIDs map[string]struct{}, limit int) ([]Pet, error)
}
