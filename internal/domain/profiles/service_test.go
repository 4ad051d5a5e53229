package profiles

import (
	"context"
	"errors"
	"testing"
	"time"

	"pet-adoption-market/internal/ports/auth"
)

type testRepo struct {
	byID map[string]Profile

	// Simula la carrera de dos primeros logins: aunque GetByID falló,
	// el insert encuentra el id ya tomado.
	insertLoses bool
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Profile{}}
}

func (r *testRepo) Insert(ctx context.Context, p Profile) (bool, error) {
	if r.insertLoses {
		return false, nil
	}
	if _, ok := r.byID[p.ID]; ok {
		return false, nil
	}
	r.byID[p.ID] = p
	return true, nil
}

func (r *testRepo) Upsert(ctx context.Context, p Profile) error {
	r.byID[p.ID] = p
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Profile, error) {
	p, ok := r.byID[id]
	if !ok {
		return Profile{}, errors.New("repo: not found")
	}
	return p, nil
}

func TestService_EnsureExists_CreatesOnFirstLogin(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	p, err := svc.EnsureExists(context.Background(), auth.Claims{
		UserID:    "user-1",
		FullName:  "Ana Perez",
		AvatarURL: "https://cdn.example.com/a.png",
	})
	if err != nil {
		t.Fatalf("ensure: %v", err)
	}
	if p.ID != "user-1" || p.FullName != "Ana Perez" || p.Role != RoleUser {
		t.Fatalf("profile seeded wrong: %+v", p)
	}
	if !p.CreatedAt.Equal(now) {
		t.Fatalf("created_at not from clock: %v", p.CreatedAt)
	}

	// Segundo login: devuelve el existente, no re-siembra
	p.FullName = "cambiado"
	repo.byID["user-1"] = p

	got, err := svc.EnsureExists(context.Background(), auth.Claims{UserID: "user-1", FullName: "Ana Perez"})
	if err != nil {
		t.Fatalf("ensure again: %v", err)
	}
	if got.FullName != "cambiado" {
		t.Fatalf("second login overwrote profile: %+v", got)
	}
}

func TestService_EnsureExists_ToleratesInsertRace(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	// El otro request "ganó": el insert devuelve false y el perfil ya está
	repo.insertLoses = true
	repo.byID["user-1"] = Profile{ID: "user-1", FullName: "Ganadora", Role: RoleUser}

	got, err := svc.EnsureExists(context.Background(), auth.Claims{UserID: "user-1", FullName: "Perdedora"})
	if err != nil {
		t.Fatalf("ensure under race: %v", err)
	}
	if got.FullName != "Ganadora" {
		t.Fatalf("race loser overwrote winner: %+v", got)
	}
}

func TestService_EnsureExists_RequiresUserID(t *testing.T) {
	svc := NewService(newTestRepo())

	if _, err := svc.EnsureExists(context.Background(), auth.Claims{}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestService_Save_UpsertsEditableFieldsOnly(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	repo.byID["user-1"] = Profile{
		ID:        "user-1",
		FullName:  "Ana",
		AvatarURL: "https://cdn.example.com/a.png",
		Role:      RolePublisher,
	}

	got, err := svc.Save(context.Background(), "user-1", SaveInput{
		FullName: "Ana Perez",
		Phone:    "+51 999 888 777",
		Address:  "Av. Siempre Viva 123",
	})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if got.FullName != "Ana Perez" || got.Phone != "+51 999 888 777" {
		t.Fatalf("editable fields not saved: %+v", got)
	}
	if got.Role != RolePublisher || got.AvatarURL != "https://cdn.example.com/a.png" {
		t.Fatalf("save touched role or avatar: %+v", got)
	}
}

func TestService_Save_CreatesWhenMissing(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	got, err := svc.Save(context.Background(), "user-1", SaveInput{FullName: "Ana"})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if got.ID != "user-1" || got.Role != RoleUser {
		t.Fatalf("upsert did not seed new profile: %+v", got)
	}
}
