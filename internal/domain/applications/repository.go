package applications

import "context"

type Repository interface {
	Create(ctx context.Context, a Application) error
	Update(ctx context.Context, a Application) error
	GetByID(ctx context.Context, id string) (Application, error)

	// ListByApplicant: solicitudes enviadas por el applicant, created_at desc.
	ListByApplicant(ctx context.Context, applicantID string) ([]Application, error)
	// ListByPets: solicitudes cuyo pet_id está en el set, created_at desc.
	ListByPets(ctx context.Context, petIDs []string) ([]Application, error)
	// ListPendingByPet: solo pending de una publicación (para la cascada de aprobación).
	ListPendingByPet(ctx context.Context, petID string) ([]Application, error)

	DeleteByPet(ctx context.Context, petID string) error
}
