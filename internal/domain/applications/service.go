package applications

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"pet-adoption-market/internal/domain/pets"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
)

// MissingFieldsError detalla qué campos obligatorios faltaron en Submit.
// errors.Is(err, ErrInvalidInput) sigue funcionando vía Unwrap.
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return "missing required fields: " + strings.Join(e.Fields, ", ")
}

func (e *MissingFieldsError) Unwrap() error { return ErrInvalidInput }

// PetCatalog es el recorte de pets.Service que necesita el workflow.
// Interfaz local para poder testear con un catálogo fake.
type PetCatalog interface {
	GetByID(ctx context.Context, id string) (pets.Pet, error)
	ListByPublisher(ctx context.Context, publisherID string) ([]pets.Pet, error)
	SetStatus(ctx context.Context, petID, callerID string, status pets.Status) (pets.Pet, error)
}

// Notifier publica mensajes de workflow en el inbox del destinatario.
type Notifier interface {
	NotifyApplication(ctx context.Context, recipientID, senderID, title, content string) error
}

// Config controla la cascada al aprobar: si está activa, aprobar una
// solicitud marca la mascota como adopted y rechaza las pending hermanas.
// Default apagada: cada solicitud se decide de forma independiente.
type Config struct {
	CascadeApproval bool
}

type Service struct {
	repo     Repository
	catalog  PetCatalog
	notifier Notifier // puede ser nil
	cfg      Config
	now      func() time.Time
}

func NewService(repo Repository, catalog PetCatalog, notifier Notifier, cfg Config) *Service {
	return &Service{
		repo:     repo,
		catalog:  catalog,
		notifier: notifier,
		cfg:      cfg,
		now:      time.Now,
	}
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Reportar nombres de campo como en el wire (json tag), no como en Go.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	return v
}

type SubmitInput struct {
	ApplicantName    string `json:"applicant_name" validate:"required"`
	ApplicantEmail   string `json:"applicant_email" validate:"required"`
	ApplicantPhone   string `json:"applicant_phone" validate:"required"`
	ApplicantAddress string `json:"applicant_address" validate:"required"`
	HousingType      string `json:"housing_type"`
	HasExperience    bool   `json:"has_experience"`
	OtherPets        string `json:"other_pets"`
	Reason           string `json:"reason" validate:"required"`
}

// Submit crea una solicitud pending sobre una publicación existente.
// No hay unicidad por (applicant, pet): el mismo usuario puede volver a aplicar.
func (s *Service) Submit(ctx context.Context, petID, applicantID string, in SubmitInput) (Application, error) {
	if strings.TrimSpace(applicantID) == "" {
		return Application{}, ErrForbidden
	}

	in.ApplicantName = strings.TrimSpace(in.ApplicantName)
	in.ApplicantEmail = strings.TrimSpace(in.ApplicantEmail)
	in.ApplicantPhone = strings.TrimSpace(in.ApplicantPhone)
	in.ApplicantAddress = strings.TrimSpace(in.ApplicantAddress)
	in.HousingType = strings.TrimSpace(in.HousingType)
	in.OtherPets = strings.TrimSpace(in.OtherPets)
	in.Reason = strings.TrimSpace(in.Reason)

	if err := validate.Struct(in); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			missing := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				missing = append(missing, fe.Field())
			}
			return Application{}, &MissingFieldsError{Fields: missing}
		}
		return Application{}, ErrInvalidInput
	}

	// La publicación tiene que existir y ser fetchable
	p, err := s.catalog.GetByID(ctx, strings.TrimSpace(petID))
	if err != nil {
		return Application{}, ErrNotFound
	}

	now := s.now()
	a := Application{
		ID:               uuid.NewString(),
		PetID:            p.ID,
		ApplicantID:      applicantID,
		ApplicantName:    in.ApplicantName,
		ApplicantEmail:   in.ApplicantEmail,
		ApplicantPhone:   in.ApplicantPhone,
		ApplicantAddress: in.ApplicantAddress,
		HousingType:      in.HousingType,
		HasExperience:    in.HasExperience,
		OtherPets:        in.OtherPets,
		Reason:           in.Reason,
		Status:           StatusPending,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return Application{}, err
	}

	if s.notifier != nil {
		// Best-effort: el alta de la solicitud ya quedó persistida.
		_ = s.notifier.NotifyApplication(ctx, p.PublisherID, applicantID,
			"New adoption application",
			fmt.Sprintf("%s applied to adopt %s.", in.ApplicantName, p.Name))
	}

	return a, nil
}

func (s *Service) ListForApplicant(ctx context.Context, applicantID string) ([]Application, error) {
	if strings.TrimSpace(applicantID) == "" {
		return nil, ErrForbidden
	}
	return s.repo.ListByApplicant(ctx, applicantID)
}

// ListForPublisher resuelve primero el set de publicaciones del publisher
// y después filtra solicitudes por pertenencia a ese set.
func (s *Service) ListForPublisher(ctx context.Context, publisherID string) ([]Application, error) {
	if strings.TrimSpace(publisherID) == "" {
		return nil, ErrForbidden
	}

	owned, err := s.catalog.ListByPublisher(ctx, publisherID)
	if err != nil {
		return nil, err
	}
	if len(owned) == 0 {
		return []Application{}, nil
	}

	ids := make([]string, 0, len(owned))
	for _, p := range owned {
		ids = append(ids, p.ID)
	}
	return s.repo.ListByPets(ctx, ids)
}

// Decide mueve pending -> approved|rejected, una sola vez.
// El chequeo de estado va antes que el de ownership: una solicitud ya
// decidida responde conflict sin importar quién llama.
func (s *Service) Decide(ctx context.Context, applicationID, publisherID string, outcome Status) (Application, error) {
	if outcome != StatusApproved && outcome != StatusRejected {
		return Application{}, ErrInvalidInput
	}
	if strings.TrimSpace(publisherID) == "" {
		return Application{}, ErrForbidden
	}

	a, err := s.repo.GetByID(ctx, strings.TrimSpace(applicationID))
	if err != nil {
		return Application{}, ErrNotFound
	}

	if a.Status != StatusPending {
		return Application{}, ErrConflict
	}

	p, err := s.catalog.GetByID(ctx, a.PetID)
	if err != nil {
		return Application{}, ErrNotFound
	}
	if p.PublisherID != publisherID {
		return Application{}, ErrForbidden
	}

	now := s.now()
	a.Status = outcome
	a.UpdatedAt = now

	if err := s.repo.Update(ctx, a); err != nil {
		return Application{}, err
	}

	if outcome == StatusApproved && s.cfg.CascadeApproval {
		if err := s.cascadeApproval(ctx, a, publisherID, now); err != nil {
			return Application{}, err
		}
	}

	if s.notifier != nil {
		title := "Adoption application approved"
		content := fmt.Sprintf("Your application for %s was approved.", p.Name)
		if outcome == StatusRejected {
			title = "Adoption application rejected"
			content = fmt.Sprintf("Your application for %s was rejected.", p.Name)
		}
		_ = s.notifier.NotifyApplication(ctx, a.ApplicantID, publisherID, title, content)
	}

	return a, nil
}

// cascadeApproval marca la mascota como adopted y rechaza las pending hermanas.
func (s *Service) cascadeApproval(ctx context.Context, approved Application, publisherID string, now time.Time) error {
	if _, err := s.catalog.SetStatus(ctx, approved.PetID, publisherID, pets.StatusAdopted); err != nil {
		return err
	}

	siblings, err := s.repo.ListPendingByPet(ctx, approved.PetID)
	if err != nil {
		return err
	}
	for _, sib := range siblings {
		if sib.ID == approved.ID {
			continue
		}
		sib.Status = StatusRejected
		sib.UpdatedAt = now
		if err := s.repo.Update(ctx, sib); err != nil {
			return err
		}
		if s.notifier != nil {
			_ = s.notifier.NotifyApplication(ctx, sib.ApplicantID, publisherID,
				"Adoption application rejected",
				"The pet you applied for was adopted by another applicant.")
		}
	}
	return nil
}

// RemoveForPet implementa pets.DependentCleaner: al borrar una publicación
// se van también sus solicitudes.
func (s *Service) RemoveForPet(ctx context.Context, petID string) error {
	return s.repo.DeleteByPet(ctx, petID)
}
