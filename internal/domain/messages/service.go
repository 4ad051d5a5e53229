package messages

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

func (s *Service) ListForRecipient(ctx context.Context, recipientID string) ([]Message, error) {
	if strings.TrimSpace(recipientID) == "" {
		return nil, ErrForbidden
	}
	return s.repo.ListByRecipient(ctx, recipientID)
}

// UnreadCount se deriva del listado, no se persiste.
func UnreadCount(items []Message) int {
	n := 0
	for _, m := range items {
		if !m.IsRead {
			n++
		}
	}
	return n
}

// MarkRead es idempotente: marcar un mensaje ya leído no es error.
func (s *Service) MarkRead(ctx context.Context, messageID, callerID string) (Message, error) {
	messageID = strings.TrimSpace(messageID)
	callerID = strings.TrimSpace(callerID)
	if messageID == "" || callerID == "" {
		return Message{}, ErrInvalidInput
	}

	m, err := s.repo.GetByID(ctx, messageID)
	if err != nil {
		return Message{}, ErrNotFound
	}
	if m.RecipientID != callerID {
		return Message{}, ErrForbidden
	}

	if m.IsRead {
		return m, nil
	}

	m.IsRead = true
	if err := s.repo.Update(ctx, m); err != nil {
		return Message{}, err
	}
	return m, nil
}

func (s *Service) Delete(ctx context.Context, messageID, callerID string) error {
	messageID = strings.TrimSpace(messageID)
	callerID = strings.TrimSpace(callerID)
	if messageID == "" || callerID == "" {
		return ErrInvalidInput
	}

	m, err := s.repo.GetByID(ctx, messageID)
	if err != nil {
		return ErrNotFound
	}
	if m.RecipientID != callerID {
		return ErrForbidden
	}

	return s.repo.Delete(ctx, messageID)
}

// NotifyApplication implementa applications.Notifier: el workflow de
// solicitudes publica acá los eventos de alta y decisión.
func (s *Service) NotifyApplication(ctx context.Context, recipientID, senderID, title, content string) error {
	return s.send(ctx, recipientID, senderID, title, content, TypeApplication)
}

// NotifySystem crea un mensaje del sistema (sin sender).
func (s *Service) NotifySystem(ctx context.Context, recipientID, title, content string) error {
	return s.send(ctx, recipientID, "", title, content, TypeSystem)
}

func (s *Service) send(ctx context.Context, recipientID, senderID, title, content string, typ Type) error {
	recipientID = strings.TrimSpace(recipientID)
	if recipientID == "" || strings.TrimSpace(title) == "" {
		return ErrInvalidInput
	}

	m := Message{
		ID:          uuid.NewString(),
		RecipientID: recipientID,
		SenderID:    strings.TrimSpace(senderID),
		Title:       strings.TrimSpace(title),
		Content:     strings.TrimSpace(content),
		Type:        typ,
		IsRead:      false,
		CreatedAt:   s.now(),
	}
	return s.repo.Create(ctx, m)
}
