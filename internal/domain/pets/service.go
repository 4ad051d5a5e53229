package pets

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

// DependentCleaner limpia entidades que cuelgan de una publicación
// (favoritos, solicitudes) cuando el owner la borra. Definido acá para
// no importar los otros módulos (mismo truco que PetCatalog en applications).
type DependentCleaner interface {
	RemoveForPet(ctx context.Context, petID string) error
}

type Service struct {
	repo     Repository
	now      func() time.Time
	cleaners []DependentCleaner
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

// RegisterCleaner registra limpieza en cascada para Delete.
// Se llama en el wiring del router, después de construir los otros services.
func (s *Service) RegisterCleaner(c DependentCleaner) {
	if c != nil {
		s.cleaners = append(s.cleaners, c)
	}
}

type CreateInput struct {
	Name              string
	Species           string
	Breed             string
	AgeYears          *int
	AgeMonths         *int
	Gender            string
	Size              string
	Color             string
	Description       string
	HealthStatus      string
	VaccinationStatus string
	Location          string
	Requirements      string
	Images            []string
}

// Create inserta una publicación nueva. El status siempre arranca en
// available, ignorando lo que mande el cliente.
func (s *Service) Create(ctx context.Context, publisherID string, in CreateInput) (Pet, error) {
	if strings.TrimSpace(publisherID) == "" {
		return Pet{}, ErrForbidden
	}
	if strings.TrimSpace(in.Name) == "" ||
		strings.TrimSpace(in.Location) == "" ||
		strings.TrimSpace(in.Description) == "" {
		return Pet{}, ErrInvalidInput
	}

	species := Species(strings.TrimSpace(in.Species))
	if !validSpecies(species) {
		return Pet{}, ErrInvalidInput
	}

	gender := Gender(strings.TrimSpace(in.Gender))
	if gender == "" {
		gender = GenderUnknown
	}
	if !validGender(gender) {
		return Pet{}, ErrInvalidInput
	}

	size := Size(strings.TrimSpace(in.Size))
	if !validSize(size) {
		return Pet{}, ErrInvalidInput
	}

	if in.AgeYears != nil && *in.AgeYears < 0 {
		return Pet{}, ErrInvalidInput
	}
	if in.AgeMonths != nil && (*in.AgeMonths < 0 || *in.AgeMonths > 11) {
		return Pet{}, ErrInvalidInput
	}

	now := s.now()
	p := Pet{
		ID:                uuid.NewString(),
		PublisherID:       publisherID,
		Name:              strings.TrimSpace(in.Name),
		Species:           species,
		Breed:             strings.TrimSpace(in.Breed),
		AgeYears:          in.AgeYears,
		AgeMonths:         in.AgeMonths,
		Gender:            gender,
		Size:              size,
		Color:             strings.TrimSpace(in.Color),
		Description:       strings.TrimSpace(in.Description),
		HealthStatus:      strings.TrimSpace(in.HealthStatus),
		VaccinationStatus: strings.TrimSpace(in.VaccinationStatus),
		Location:          strings.TrimSpace(in.Location),
		Requirements:      strings.TrimSpace(in.Requirements),
		Status:            StatusAvailable,
		Images:            in.Images,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

type UpdateInput struct {
	// Punteros para PATCH real: nil = no tocar.
	Name              *string
	Species           *string
	Breed             *string
	AgeYears          *int
	AgeMonths         *int
	Gender            *string
	Size              *string
	Color             *string
	Description       *string
	HealthStatus      *string
	VaccinationStatus *string
	Location          *string
	Requirements      *string
	Images            []string
}

// Update edita la publicación. Solo el owner; PublisherID nunca cambia.
func (s *Service) Update(ctx context.Context, petID, callerID string, in UpdateInput) (Pet, error) {
	p, err := s.repo.GetByID(ctx, petID)
	if err != nil {
		return Pet{}, err
	}
	if p.PublisherID != callerID {
		return Pet{}, ErrForbidden
	}

	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return Pet{}, ErrInvalidInput
		}
		p.Name = strings.TrimSpace(*in.Name)
	}
	if in.Species != nil {
		sp := Species(strings.TrimSpace(*in.Species))
		if !validSpecies(sp) {
			return Pet{}, ErrInvalidInput
		}
		p.Species = sp
	}
	if in.Breed != nil {
		p.Breed = strings.TrimSpace(*in.Breed)
	}
	if in.AgeYears != nil {
		if *in.AgeYears < 0 {
			return Pet{}, ErrInvalidInput
		}
		v := *in.AgeYears
		p.AgeYears = &v
	}
	if in.AgeMonths != nil {
		if *in.AgeMonths < 0 || *in.AgeMonths > 11 {
			return Pet{}, ErrInvalidInput
		}
		v := *in.AgeMonths
		p.AgeMonths = &v
	}
	if in.Gender != nil {
		g := Gender(strings.TrimSpace(*in.Gender))
		if !validGender(g) {
			return Pet{}, ErrInvalidInput
		}
		p.Gender = g
	}
	if in.Size != nil {
		sz := Size(strings.TrimSpace(*in.Size))
		if !validSize(sz) {
			return Pet{}, ErrInvalidInput
		}
		p.Size = sz
	}
	if in.Color != nil {
		p.Color = strings.TrimSpace(*in.Color)
	}
	if in.Description != nil {
		if strings.TrimSpace(*in.Description) == "" {
			return Pet{}, ErrInvalidInput
		}
		p.Description = strings.TrimSpace(*in.Description)
	}
	if in.HealthStatus != nil {
		p.HealthStatus = strings.TrimSpace(*in.HealthStatus)
	}
	if in.VaccinationStatus != nil {
		p.VaccinationStatus = strings.TrimSpace(*in.VaccinationStatus)
	}
	if in.Location != nil {
		if strings.TrimSpace(*in.Location) == "" {
			return Pet{}, ErrInvalidInput
		}
		p.Location = strings.TrimSpace(*in.Location)
	}
	if in.Requirements != nil {
		p.Requirements = strings.TrimSpace(*in.Requirements)
	}
	if in.Images != nil {
		p.Images = in.Images
	}

	p.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

// Delete borra la publicación y sus dependientes (favoritos, solicitudes).
// La decisión de cascada vs. huérfanos está documentada en DESIGN.md.
func (s *Service) Delete(ctx context.Context, petID, callerID string) error {
	p, err := s.repo.GetByID(ctx, petID)
	if err != nil {
		return err
	}
	if p.PublisherID != callerID {
		return ErrForbidden
	}

	if err := s.repo.Delete(ctx, petID); err != nil {
		return err
	}

	for _, c := range s.cleaners {
		if err := c.RemoveForPet(ctx, petID); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Pet, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListAvailable(ctx context.Context, f Filters) ([]Pet, error) {
	f.Species = strings.TrimSpace(f.Species)
	f.Gender = strings.TrimSpace(f.Gender)
	f.Size = strings.TrimSpace(f.Size)
	f.Location = strings.TrimSpace(f.Location)
	f.Search = strings.TrimSpace(f.Search)
	return s.repo.ListAvailable(ctx, f)
}

func (s *Service) ListByPublisher(ctx context.Context, publisherID string) ([]Pet, error) {
	return s.repo.ListByPublisher(ctx, publisherID)
}

// SetStatus cambia el estado de adopción. Owner-only: lo usa el workflow
// de solicitudes cuando la cascada de aprobación está activa.
func (s *Service) SetStatus(ctx context.Context, petID, callerID string, status Status) (Pet, error) {
	switch status {
	case StatusAvailable, StatusPending, StatusAdopted:
	default:
		return Pet{}, ErrInvalidInput
	}

	p, err := s.repo.GetByID(ctx, petID)
	if err != nil {
		return Pet{}, err
	}
	if p.PublisherID != callerID {
		return Pet{}, ErrForbidden
	}

	if p.Status == status {
		return p, nil
	}

	p.Status = status
	p.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}
