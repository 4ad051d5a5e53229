package messages

import "time"

// Type clasifica el mensaje en el inbox.
// @Enum application, system, message
type Type string

const (
	TypeApplication Type = "application"
	TypeSystem      Type = "system"
	TypeMessage     Type = "message"
)

// Message es una notificación dirigida a un destinatario.
// SenderID vacío = mensaje del sistema.
type Message struct {
	ID          string
	RecipientID string
	SenderID    string

	Title   string
	Content string
	Type    Type

	IsRead bool

	CreatedAt time.Time
}
