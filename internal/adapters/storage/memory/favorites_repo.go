package memory

import (
	"context"
	"sort"
	"sync"

	"pet-adoption-market/internal/domain/favorites"
)

type favoritesRepo struct {
	mu sync.Mutex
	// key (user_id, pet_id): la unicidad del par está garantizada por el mapa
	byPair map[[2]string]favorites.Favorite
}

func NewFavoritesRepo() favorites.Repository {
	return &favoritesRepo{
		byPair: make(map[[2]string]favorites.Favorite),
	}
}

func (r *favoritesRepo) Insert(ctx context.Context, f favorites.Favorite) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := [2]string{f.UserID, f.PetID}
	if _, exists := r.byPair[key]; exists {
		return false, nil
	}
	r.byPair[key] = f
	return true, nil
}

func (r *favoritesRepo) Delete(ctx context.Context, userID, petID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := [2]string{userID, petID}
	if _, exists := r.byPair[key]; !exists {
		return false, nil
	}
	delete(r.byPair, key)
	return true, nil
}

func (r *favoritesRepo) Exists(ctx context.Context, userID, petID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, exists := r.byPair[[2]string{userID, petID}]
	return exists, nil
}

func (r *favoritesRepo) ListByUser(ctx context.Context, userID string) ([]favorites.Favorite, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]favorites.Favorite, 0)
	for _, f := range r.byPair {
		if f.UserID == userID {
			out = append(out, f)
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

func (r *favoritesRepo) DeleteByPet(ctx context.Context, petID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for key, f := range r.byPair {
		if f.PetID == petID {
			delete(r.byPair, key)
		}
	}
	return nil
}
