package matches

import (
	"context"

	"petmate/internal/domain/feed"
	"petmate/internal/domain/pets"
)

// FixtureOwnerID es el dueño sintético de las mascotas de ejemplo.
const FixtureOwnerID = "fixture-owner"

// Seeder inserta mascotas con ID fijo (pets.Service.Seed).
type Seeder interface {
	Seed(ctx context.Context, items []pets.Pet) error
}

// SeedFixtures carga [Max, Luna, Buddy] en el store para que las decisiones
// sobre el feed fixture apunten a mascotas reales.
func SeedFixtures(ctx context.Context, s Seeder) error {
	profiles := feed.FixtureProfiles()
	items := make([]pets.Pet, 0, len(profiles))
	for _, p := range profiles {
		items = append(items, pets.Pet{
			ID:          p.ID,
			OwnerUserID: FixtureOwnerID,
			Name:        p.Name,
			Species:     pets.Species(p.Species),
			Breed:       p.Breed,
			Age:         p.Age,
			Description: p.Description,
			ImageURL:    p.ImageURL,
		})
	}
	return s.Seed(ctx, items)
}
