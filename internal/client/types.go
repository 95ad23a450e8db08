package client

import "time"

type User struct {
	UID              string    `json:"uid"`
	Email            string    `json:"email"`
	Name             string    `json:"name"`
	UserType         string    `json:"userType"`
	CreatedAt        time.Time `json:"createdAt"`
	ProfileCompleted bool      `json:"profileCompleted"`
}

type Session struct {
	User      User      `json:"user"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

type RegisterRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
	UserType        string `json:"user_type"`
}

type Pet struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"ownerId"`
	Name        string    `json:"name"`
	Type        string    `json:"type"`
	Breed       string    `json:"breed"`
	Age         int       `json:"age"`
	Description string    `json:"description"`
	Image       string    `json:"image,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type PetInput struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Breed       string `json:"breed"`
	Age         *int   `json:"age"`
	Description string `json:"description,omitempty"`
	Image       string `json:"image,omitempty"`
}

// PetPatch: nil = no tocar.
type PetPatch struct {
	Name        *string `json:"name,omitempty"`
	Type        *string `json:"type,omitempty"`
	Breed       *string `json:"breed,omitempty"`
	Age         *int    `json:"age,omitempty"`
	Description *string `json:"description,omitempty"`
	Image       *string `json:"image,omitempty"`
}

type DecisionResult struct {
	PetID     string    `json:"pet_id"`
	Outcome   string    `json:"outcome"`
	DecidedAt time.Time `json:"decided_at"`
	Matched   bool      `json:"matched"`
	MatchID   string    `json:"match_id,omitempty"`
}

type PetSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Type  string `json:"type"`
	Breed string `json:"breed"`
	Age   int    `json:"age"`
	Image string `json:"image,omitempty"`
}

type Owner struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Contact string `json:"contact"`
}

type Match struct {
	ID        string     `json:"id"`
	MyPet     PetSummary `json:"myPet"`
	Pet       PetSummary `json:"pet"`
	Owner     Owner      `json:"owner"`
	MatchDate time.Time  `json:"matchDate"`
}
