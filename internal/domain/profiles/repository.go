package profiles

import "context"

type Repository interface {
	// Insert crea el perfil. Devuelve false (sin error) si el id ya
	// existía: así EnsureExists tolera la carrera de dos primeros logins.
	Insert(ctx context.Context, p Profile) (bool, error)
	Upsert(ctx context.Context, p Profile) error
	GetByID(ctx context.Context, id string) (Profile, error)
}
