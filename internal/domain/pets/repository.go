package pets

import "context"

type Repository interface {
	Create(ctx context.Context, p Pet) error
	Update(ctx context.Context, p Pet) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (Pet, error)

	// ListAvailable aplica status=available + filtros; orden created_at desc.
	ListAvailable(ctx context.Context, f Filters) ([]Pet, error)
	// ListByPublisher devuelve todas las publicaciones del publisher (cualquier status), desc.
	ListByPublisher(ctx context.Context, publisherID string) ([]Pet, error)
}
