package profiles

import (
	"context"
	"errors"
	"strings"
	"time"

	"pet-adoption-market/internal/ports/auth"
)

var (
	ErrInvalidInput = errors.New("invalid input")
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

// EnsureExists crea el perfil en el primer login si no está, sembrado con
// los metadatos del token. Dos primeros logins concurrentes pueden intentar
// el insert a la vez: el duplicado se trata como éxito (el perfil ya existe).
func (s *Service) EnsureExists(ctx context.Context, claims auth.Claims) (Profile, error) {
	userID := strings.TrimSpace(claims.UserID)
	if userID == "" {
		return Profile{}, ErrInvalidInput
	}

	if p, err := s.repo.GetByID(ctx, userID); err == nil {
		return p, nil
	}

	now := s.now()
	p := Profile{
		ID:        userID,
		FullName:  strings.TrimSpace(claims.FullName),
		AvatarURL: strings.TrimSpace(claims.AvatarURL),
		Role:      RoleUser,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.repo.Insert(ctx, p)
	if err != nil {
		return Profile{}, err
	}
	if !created {
		// Perdimos la carrera: otro request ya lo creó
		return s.repo.GetByID(ctx, userID)
	}
	return p, nil
}

func (s *Service) Get(ctx context.Context, userID string) (Profile, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return Profile{}, ErrInvalidInput
	}
	p, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return Profile{}, ErrNotFound
	}
	return p, nil
}

type SaveInput struct {
	FullName string
	Phone    string
	Address  string
}

// Save upsertea el perfil del propio usuario. Role y AvatarURL no se
// tocan desde acá.
func (s *Service) Save(ctx context.Context, userID string, in SaveInput) (Profile, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return Profile{}, ErrInvalidInput
	}

	p, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		p = Profile{
			ID:        userID,
			Role:      RoleUser,
			CreatedAt: s.now(),
		}
	}

	p.FullName = strings.TrimSpace(in.FullName)
	p.Phone = strings.TrimSpace(in.Phone)
	p.Address = strings.TrimSpace(in.Address)
	p.UpdatedAt = s.now()

	if err := s.repo.Upsert(ctx, p); err != nil {
		return Profile{}, err
	}
	return p, nil
}
