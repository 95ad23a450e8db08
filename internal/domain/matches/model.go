package matches

import (
	"time"

	"petmate/internal/domain/feed"
)

// Decision persistida. Clave (UserID, PetID): decidir de nuevo pisa la anterior.
type Decision struct {
	UserID     string
	PetID      string
	PetOwnerID string // denormalizado para buscar likes recíprocos sin join
	Outcome    feed.Outcome
	DecidedAt  time.Time
}

// Match: UserA likeó PetB (de UserB) y UserB había likeado PetA (de UserA).
// Un match por par de mascotas sin importar el orden.
type Match struct {
	ID        string
	UserA     string
	PetA      string
	UserB     string
	PetB      string
	CreatedAt time.Time
}

// Involves indica si el usuario es una de las dos partes.
func (m Match) Involves(userID string) bool {
	return m.UserA == userID || m.UserB == userID
}

// Sides devuelve (mi mascota, la del otro, el otro usuario) desde la vista de userID.
func (m Match) Sides(userID string) (myPet, otherPet, otherUser string) {
	if m.UserA == userID {
		return m.PetA, m.PetB, m.UserB
	}
	return m.PetB, m.PetA, m.UserA
}

// PairKey normaliza el par de mascotas (orden lexicográfico).
func PairKey(petX, petY string) string {
	if petY < petX {
		petX, petY = petY, petX
	}
	return petX + "|" + petY
}
