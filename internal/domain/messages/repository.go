package messages

import "context"

type Repository interface {
	Create(ctx context.Context, m Message) error
	Update(ctx context.Context, m Message) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (Message, error)

	// ListByRecipient devuelve el inbox completo, created_at desc.
	ListByRecipient(ctx context.Context, recipientID string) ([]Message, error)
}
