package messages

import (
	"context"
	"errors"
	"testing"
)

type testRepo struct {
	byID map[string]Message
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Message{}}
}

func (r *testRepo) Create(ctx context.Context, m Message) error {
	if m.ID == "" {
		return errors.New("repo: id required")
	}
	r.byID[m.ID] = m
	return nil
}

func (r *testRepo) Update(ctx context.Context, m Message) error {
	if _, ok := r.byID[m.ID]; !ok {
		return errors.New("repo: not found")
	}
	r.byID[m.ID] = m
	return nil
}

func (r *testRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return errors.New("repo: not found")
	}
	delete(r.byID, id)
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Message, error) {
	m, ok := r.byID[id]
	if !ok {
		return Message{}, errors.New("repo: not found")
	}
	return m, nil
}

func (r *testRepo) ListByRecipient(ctx context.Context, recipientID string) ([]Message, error) {
	out := make([]Message, 0)
	for _, m := range r.byID {
		if m.RecipientID == recipientID {
			out = append(out, m)
		}
	}
	return out, nil
}

func seedInbox(t *testing.T, svc *Service, recipientID string, n int) []Message {
	t.Helper()
	for i := 0; i < n; i++ {
		if err := svc.NotifyApplication(context.Background(), recipientID, "sender-1", "Hola", "contenido"); err != nil {
			t.Fatalf("notify: %v", err)
		}
	}
	items, err := svc.ListForRecipient(context.Background(), recipientID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != n {
		t.Fatalf("expected %d messages, got %d", n, len(items))
	}
	return items
}

func TestService_NotifyAndUnreadCount(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	items := seedInbox(t, svc, "user-1", 3)
	if UnreadCount(items) != 3 {
		t.Fatalf("expected 3 unread, got %d", UnreadCount(items))
	}
	for _, m := range items {
		if m.Type != TypeApplication {
			t.Fatalf("expected application type, got %q", m.Type)
		}
		if m.IsRead {
			t.Fatalf("new message born read")
		}
	}

	if _, err := svc.MarkRead(context.Background(), items[0].ID, "user-1"); err != nil {
		t.Fatalf("mark read: %v", err)
	}

	items, _ = svc.ListForRecipient(context.Background(), "user-1")
	if UnreadCount(items) != 2 {
		t.Fatalf("expected 2 unread after mark, got %d", UnreadCount(items))
	}
}

func TestService_MarkRead_IdempotentAndOwnerOnly(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	items := seedInbox(t, svc, "user-1", 1)
	id := items[0].ID

	if _, err := svc.MarkRead(context.Background(), id, "otro"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for non-recipient, got %v", err)
	}

	m, err := svc.MarkRead(context.Background(), id, "user-1")
	if err != nil || !m.IsRead {
		t.Fatalf("mark read: %v read=%v", err, m.IsRead)
	}

	// Segunda vez: mismo resultado, sin error
	m, err = svc.MarkRead(context.Background(), id, "user-1")
	if err != nil || !m.IsRead {
		t.Fatalf("second mark read: %v read=%v", err, m.IsRead)
	}

	if _, err := svc.MarkRead(context.Background(), "nope", "user-1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestService_Delete_OwnerOnly(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	items := seedInbox(t, svc, "user-1", 1)
	id := items[0].ID

	if err := svc.Delete(context.Background(), id, "otro"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if err := svc.Delete(context.Background(), id, "user-1"); err != nil {
		t.Fatalf("delete: %v", err)
	}

	left, _ := svc.ListForRecipient(context.Background(), "user-1")
	if len(left) != 0 {
		t.Fatalf("message survived delete")
	}
}

func TestService_NotifySystem_HasNoSender(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	if err := svc.NotifySystem(context.Background(), "user-1", "Bienvenido", "gracias por registrarte"); err != nil {
		t.Fatalf("notify system: %v", err)
	}

	items, _ := svc.ListForRecipient(context.Background(), "user-1")
	if len(items) != 1 {
		t.Fatalf("expected 1 message, got %d", len(items))
	}
	if items[0].Type != TypeSystem || items[0].SenderID != "" {
		t.Fatalf("system message malformed: %+v", items[0])
	}

	// Sin título no hay mensaje
	if err := svc.NotifySystem(context.Background(), "user-1", "  ", "x"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for blank title, got %v", err)
	}
}
