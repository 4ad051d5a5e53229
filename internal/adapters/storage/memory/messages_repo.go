package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"pet-adoption-market/internal/domain/messages"
)

type messagesRepo struct {
	mu   sync.RWMutex
	byID map[string]messages.Message
}

func NewMessagesRepo() messages.Repository {
	return &messagesRepo{
		byID: make(map[string]messages.Message),
	}
}

func (r *messagesRepo) Create(ctx context.Context, m messages.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(m.ID) == "" {
		return errors.New("message id required")
	}
	if _, exists := r.byID[m.ID]; exists {
		return errors.New("message already exists")
	}
	r.byID[m.ID] = m
	return nil
}

func (r *messagesRepo) Update(ctx context.Context, m messages.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[m.ID]; !exists {
		return messages.ErrNotFound
	}
	r.byID[m.ID] = m
	return nil
}

func (r *messagesRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[id]; !exists {
		return messages.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *messagesRepo) GetByID(ctx context.Context, id string) (messages.Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.byID[id]
	if !ok {
		return messages.Message{}, messages.ErrNotFound
	}
	return m, nil
}

func (r *messagesRepo) ListByRecipient(ctx context.Context, recipientID string) ([]messages.Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]messages.Message, 0)
	for _, m := range r.byID {
		if m.RecipientID == recipientID {
			out = append(out, m)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}
