package favorites

import "context"

type Repository interface {
	// Insert agrega la marca. Devuelve false (sin error) si el par
	// (user, pet) ya existía: el storage garantiza la unicidad.
	Insert(ctx context.Context, f Favorite) (bool, error)
	// Delete saca la marca. Devuelve false si no había nada que borrar.
	Delete(ctx context.Context, userID, petID string) (bool, error)

	Exists(ctx context.Context, userID, petID string) (bool, error)
	ListByUser(ctx context.Context, userID string) ([]Favorite, error)

	DeleteByPet(ctx context.Context, petID string) error
}
