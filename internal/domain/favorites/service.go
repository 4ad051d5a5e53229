package favorites

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

// Toggle invierte la marca y devuelve el estado resultante.
// Primero intenta borrar; si no había fila, inserta. El insert es
// condicional sobre la unicidad (user, pet): si otra llamada concurrente
// ganó la carrera, el par ya está marcado y reportamos favorited igual.
func (s *Service) Toggle(ctx context.Context, userID, petID string) (ToggleState, error) {
	userID = strings.TrimSpace(userID)
	petID = strings.TrimSpace(petID)
	if userID == "" {
		return "", ErrForbidden
	}
	if petID == "" {
		return "", ErrInvalidInput
	}

	deleted, err := s.repo.Delete(ctx, userID, petID)
	if err != nil {
		return "", err
	}
	if deleted {
		return StateUnfavorited, nil
	}

	f := Favorite{
		ID:        uuid.NewString(),
		UserID:    userID,
		PetID:     petID,
		CreatedAt: s.now(),
	}
	if _, err := s.repo.Insert(ctx, f); err != nil {
		return "", err
	}
	return StateFavorited, nil
}

// IsFavorited devuelve false sin error cuando no hay usuario autenticado.
func (s *Service) IsFavorited(ctx context.Context, userID, petID string) (bool, error) {
	userID = strings.TrimSpace(userID)
	petID = strings.TrimSpace(petID)
	if userID == "" || petID == "" {
		return false, nil
	}
	return s.repo.Exists(ctx, userID, petID)
}

func (s *Service) ListForUser(ctx context.Context, userID string) ([]Favorite, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrForbidden
	}
	return s.repo.ListByUser(ctx, userID)
}

// RemoveForPet implementa pets.DependentCleaner.
func (s *Service) RemoveForPet(ctx context.Context, petID string) error {
	return s.repo.DeleteByPet(ctx, petID)
}
