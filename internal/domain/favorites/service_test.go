package favorites

import (
	"context"
	"errors"
	"testing"
)

type testRepo struct {
	byPair map[[2]string]Favorite
}

func newTestRepo() *testRepo {
	return &testRepo{byPair: map[[2]string]Favorite{}}
}

func (r *testRepo) Insert(ctx context.Context, f Favorite) (bool, error) {
	key := [2]string{f.UserID, f.PetID}
	if _, ok := r.byPair[key]; ok {
		return false, nil
	}
	r.byPair[key] = f
	return true, nil
}

func (r *testRepo) Delete(ctx context.Context, userID, petID string) (bool, error) {
	key := [2]string{userID, petID}
	if _, ok := r.byPair[key]; !ok {
		return false, nil
	}
	delete(r.byPair, key)
	return true, nil
}

func (r *testRepo) Exists(ctx context.Context, userID, petID string) (bool, error) {
	_, ok := r.byPair[[2]string{userID, petID}]
	return ok, nil
}

func (r *testRepo) ListByUser(ctx context.Context, userID string) ([]Favorite, error) {
	out := make([]Favorite, 0)
	for _, f := range r.byPair {
		if f.UserID == userID {
			out = append(out, f)
		}
	}
	return out, nil
}

func (r *testRepo) DeleteByPet(ctx context.Context, petID string) error {
	for key, f := range r.byPair {
		if f.PetID == petID {
			delete(r.byPair, key)
		}
	}
	return nil
}

func TestService_Toggle_RoundTrip(t *testing.T) {
	svc := NewService(newTestRepo())

	st, err := svc.Toggle(context.Background(), "user-1", "pet-1")
	if err != nil {
		t.Fatalf("first toggle: %v", err)
	}
	if st != StateFavorited {
		t.Fatalf("expected favorited, got %q", st)
	}

	on, err := svc.IsFavorited(context.Background(), "user-1", "pet-1")
	if err != nil || !on {
		t.Fatalf("expected favorited=true, got %v err=%v", on, err)
	}

	st, err = svc.Toggle(context.Background(), "user-1", "pet-1")
	if err != nil {
		t.Fatalf("second toggle: %v", err)
	}
	if st != StateUnfavorited {
		t.Fatalf("expected unfavorited, got %q", st)
	}

	on, err = svc.IsFavorited(context.Background(), "user-1", "pet-1")
	if err != nil || on {
		t.Fatalf("expected favorited=false after round trip, got %v err=%v", on, err)
	}
}

func TestService_Toggle_IsPerUser(t *testing.T) {
	svc := NewService(newTestRepo())

	if _, err := svc.Toggle(context.Background(), "user-1", "pet-1"); err != nil {
		t.Fatalf("toggle: %v", err)
	}

	on, err := svc.IsFavorited(context.Background(), "user-2", "pet-1")
	if err != nil || on {
		t.Fatalf("favorite leaked across users: %v err=%v", on, err)
	}
}

func TestService_Toggle_RequiresAuth(t *testing.T) {
	svc := NewService(newTestRepo())

	if _, err := svc.Toggle(context.Background(), "", "pet-1"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if _, err := svc.Toggle(context.Background(), "user-1", "  "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for blank pet, got %v", err)
	}
}

func TestService_IsFavorited_AnonymousIsFalse(t *testing.T) {
	svc := NewService(newTestRepo())

	// Sin sesión: false, sin error (el endpoint es público)
	on, err := svc.IsFavorited(context.Background(), "", "pet-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if on {
		t.Fatalf("anonymous caller should never see favorited=true")
	}
}

func TestService_RemoveForPet(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	if _, err := svc.Toggle(context.Background(), "user-1", "pet-1"); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if _, err := svc.Toggle(context.Background(), "user-2", "pet-1"); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if _, err := svc.Toggle(context.Background(), "user-1", "pet-2"); err != nil {
		t.Fatalf("toggle: %v", err)
	}

	if err := svc.RemoveForPet(context.Background(), "pet-1"); err != nil {
		t.Fatalf("remove for pet: %v", err)
	}

	if on, _ := svc.IsFavorited(context.Background(), "user-1", "pet-1"); on {
		t.Fatalf("favorite survived pet cleanup")
	}
	if on, _ := svc.IsFavorited(context.Background(), "user-1", "pet-2"); !on {
		t.Fatalf("cleanup removed favorites of another pet")
	}
}
