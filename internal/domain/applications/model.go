package applications

import "time"

// Status define el estado de la solicitud.
// Máquina de estados: pending -> approved | rejected, terminal en ambas ramas.
// @Enum pending, approved, rejected
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// HousingType es opcional; valores libres del formulario original.
type HousingType string

const (
	HousingApartment HousingType = "apartment"
	HousingHouse     HousingType = "house"
	HousingTownhouse HousingType = "townhouse"
	HousingOther     HousingType = "other"
)

// Application representa una solicitud de adopción sobre una publicación.
// Los datos de contacto son un snapshot al momento de enviar: no se
// re-derivan del perfil del solicitante.
type Application struct {
	ID          string
	PetID       string
	ApplicantID string

	ApplicantName    string
	ApplicantEmail   string
	ApplicantPhone   string
	ApplicantAddress string

	HousingType   string
	HasExperience bool
	OtherPets     string
	Reason        string

	Status Status

	CreatedAt time.Time
	UpdatedAt time.Time
}
