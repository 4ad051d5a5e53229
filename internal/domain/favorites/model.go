package favorites

import "time"

// Favorite es una marca (user, pet) única: a lo sumo una fila por par.
type Favorite struct {
	ID        string
	UserID    string
	PetID     string
	CreatedAt time.Time
}

// ToggleState es el estado resultante de un Toggle.
type ToggleState string

const (
	StateFavorited   ToggleState = "favorited"
	StateUnfavorited ToggleState = "unfavorited"
)
