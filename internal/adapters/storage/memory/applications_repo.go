package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"pet-adoption-market/internal/domain/applications"
)

type applicationsRepo struct {
	mu   sync.RWMutex
	byID map[string]applications.Application
}

func NewApplicationsRepo() applications.Repository {
	return &applicationsRepo{
		byID: make(map[string]applications.Application),
	}
}

func (r *applicationsRepo) Create(ctx context.Context, a applications.Application) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(a.ID) == "" {
		return errors.New("application id required")
	}
	if _, exists := r.byID[a.ID]; exists {
		return errors.New("application already exists")
	}
	r.byID[a.ID] = a
	return nil
}

func (r *applicationsRepo) Update(ctx context.Context, a applications.Application) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[a.ID]; !exists {
		return applications.ErrNotFound
	}
	r.byID[a.ID] = a
	return nil
}

func (r *applicationsRepo) GetByID(ctx context.Context, id string) (applications.Application, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.byID[id]
	if !ok {
		return applications.Application{}, applications.ErrNotFound
	}
	return a, nil
}

func (r *applicationsRepo) ListByApplicant(ctx context.Context, applicantID string) ([]applications.Application, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]applications.Application, 0)
	for _, a := range r.byID {
		if a.ApplicantID == applicantID {
			out = append(out, a)
		}
	}

	sortApplicationsNewestFirst(out)
	return out, nil
}

func (r *applicationsRepo) ListByPets(ctx context.Context, petIDs []string) ([]applications.Application, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	member := make(map[string]struct{}, len(petIDs))
	for _, id := range petIDs {
		member[id] = struct{}{}
	}

	out := make([]applications.Application, 0)
	for _, a := range r.byID {
		if _, ok := member[a.PetID]; ok {
			out = append(out, a)
		}
	}

	sortApplicationsNewestFirst(out)
	return out, nil
}

func (r *applicationsRepo) ListPendingByPet(ctx context.Context, petID string) ([]applications.Application, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]applications.Application, 0)
	for _, a := range r.byID {
		if a.PetID == petID && a.Status == applications.StatusPending {
			out = append(out, a)
		}
	}

	sortApplicationsNewestFirst(out)
	return out, nil
}

func (r *applicationsRepo) DeleteByPet(ctx context.Context, petID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, a := range r.byID {
		if a.PetID == petID {
			delete(r.byID, id)
		}
	}
	return nil
}

func sortApplicationsNewestFirst(items []applications.Application) {
	sort.Slice(items, func(i, j int) bool {
		if !items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].CreatedAt.After(items[j].CreatedAt)
		}
		return items[i].ID > items[j].ID
	})
}
