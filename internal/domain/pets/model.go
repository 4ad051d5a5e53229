package pets

import "time"

// Species define las especies publicables.
// @Enum dog, cat, rabbit, bird, other
type Species string

const (
	SpeciesDog    Species = "dog"
	SpeciesCat    Species = "cat"
	SpeciesRabbit Species = "rabbit"
	SpeciesBird   Species = "bird"
	SpeciesOther  Species = "other"
)

// Gender define el sexo de la mascota.
// @Enum male, female, unknown
type Gender string

const (
	GenderMale    Gender = "male"
	GenderFemale  Gender = "female"
	GenderUnknown Gender = "unknown"
)

// Size define el porte. Vacío = no informado.
// @Enum small, medium, large
type Size string

const (
	SizeSmall  Size = "small"
	SizeMedium Size = "medium"
	SizeLarge  Size = "large"
)

// Status define el estado de adopción de la publicación.
// @Enum available, pending, adopted
type Status string

const (
	StatusAvailable Status = "available"
	StatusPending   Status = "pending"
	StatusAdopted   Status = "adopted"
)

// Pet representa una publicación de adopción.
// PublisherID es inmutable después de crear: la publicación pertenece
// a un único publisher durante toda su vida.
type Pet struct {
	ID          string
	PublisherID string

	Name      string
	Species   Species
	Breed     string
	AgeYears  *int
	AgeMonths *int
	Gender    Gender
	Size      Size
	Color     string

	Description       string
	HealthStatus      string
	VaccinationStatus string
	Location          string
	Requirements      string

	Status Status
	Images []string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Filters acota el listado público. Campos vacíos no filtran.
// Search es substring case-insensitive sobre name O breed.
type Filters struct {
	Species  string
	Gender   string
	Size     string
	Location string
	Search   string
}

func validSpecies(s Species) bool {
	switch s {
	case SpeciesDog, SpeciesCat, SpeciesRabbit, SpeciesBird, SpeciesOther:
		return true
	}
	return false
}

func validGender(g Gender) bool {
	switch g {
	case GenderMale, GenderFemale, GenderUnknown:
		return true
	}
	return false
}

func validSize(s Size) bool {
	switch s {
	case "", SizeSmall, SizeMedium, SizeLarge:
		return true
	}
	return false
}
