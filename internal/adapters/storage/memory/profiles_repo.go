package memory

import (
	"context"
	"errors"
	"strings"
	"sync"

	"pet-adoption-market/internal/domain/profiles"
)

type profilesRepo struct {
	mu   sync.Mutex
	byID map[string]profiles.Profile
}

func NewProfilesRepo() profiles.Repository {
	return &profilesRepo{
		byID: make(map[string]profiles.Profile),
	}
}

func (r *profilesRepo) Insert(ctx context.Context, p profiles.Profile) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(p.ID) == "" {
		return false, errors.New("profile id required")
	}
	if _, exists := r.byID[p.ID]; exists {
		// mismo contrato que ON CONFLICT DO NOTHING
		return false, nil
	}
	r.byID[p.ID] = p
	return true, nil
}

func (r *profilesRepo) Upsert(ctx context.Context, p profiles.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(p.ID) == "" {
		return errors.New("profile id required")
	}
	r.byID[p.ID] = p
	return nil
}

func (r *profilesRepo) GetByID(ctx context.Context, id string) (profiles.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.byID[id]
	if !ok {
		return profiles.Profile{}, profiles.ErrNotFound
	}
	return p, nil
}
