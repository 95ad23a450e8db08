package pets

import "time"

// Species define las especies soportadas.
// @Enum dog, cat, bird, hamster, other
type Species string

const (
	SpeciesDog     Species = "dog"
	SpeciesCat     Species = "cat"
	SpeciesBird    Species = "bird"
	SpeciesHamster Species = "hamster"
	SpeciesOther   Species = "other"
)

func (s Species) Valid() bool {
	switch s {
	case SpeciesDog, SpeciesCat, SpeciesBird, SpeciesHamster, SpeciesOther:
		return true
	}
	return false
}

// Pet es el perfil de mascota que se muestra en el feed y en el perfil del dueño.
type Pet struct {
	ID          string
	OwnerUserID string

	Name    string
	Species Species
	Breed   string
	Age     int // años, >= 0

	Description string
	ImageURL    string // referencia a object storage; opcional

	CreatedAt time.Time
	UpdatedAt time.Time
}
