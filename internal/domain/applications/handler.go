package applications

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"pet-adoption-market/internal/domain/pets"
	"pet-adoption-market/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, petsSvc *pets.Service) {
	r.Post("/pets/{petID}/applications", submitHandler(svc))

	// Vista applicant y vista publisher, ambas con la mascota joineada
	r.Get("/me/applications", listForApplicantHandler(svc, petsSvc))
	r.Get("/me/listings/applications", listForPublisherHandler(svc, petsSvc))

	r.Post("/applications/{appID}/decision", decideHandler(svc))
}

type submitRequest struct {
	ApplicantName    string `json:"applicant_name"`
	ApplicantEmail   string `json:"applicant_email"`
	ApplicantPhone   string `json:"applicant_phone"`
	ApplicantAddress string `json:"applicant_address"`
	HousingType      string `json:"housing_type"`
	HasExperience    bool   `json:"has_experience"`
	OtherPets        string `json:"other_pets"`
	Reason           string `json:"reason"`
}

type decideRequest struct {
	Status string `json:"status"` // approved | rejected
}

type petSummary struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Species  string   `json:"species"`
	Breed    string   `json:"breed,omitempty"`
	Location string   `json:"location"`
	Status   string   `json:"status"`
	Images   []string `json:"images"`
}

type applicationResponse struct {
	ID               string      `json:"id"`
	PetID            string      `json:"pet_id"`
	ApplicantID      string      `json:"applicant_id"`
	ApplicantName    string      `json:"applicant_name"`
	ApplicantEmail   string      `json:"applicant_email"`
	ApplicantPhone   string      `json:"applicant_phone"`
	ApplicantAddress string      `json:"applicant_address"`
	HousingType      string      `json:"housing_type,omitempty"`
	HasExperience    bool        `json:"has_experience"`
	OtherPets        string      `json:"other_pets,omitempty"`
	Reason           string      `json:"reason"`
	Status           string      `json:"status"`
	CreatedAt        time.Time   `json:"created_at"`
	UpdatedAt        time.Time   `json:"updated_at"`
	Pet              *petSummary `json:"pet,omitempty"`
}

func submitHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req submitRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		a, err := svc.Submit(r.Context(), chi.URLParam(r, "petID"), claims.UserID, SubmitInput{
			ApplicantName:    req.ApplicantName,
			ApplicantEmail:   req.ApplicantEmail,
			ApplicantPhone:   req.ApplicantPhone,
			ApplicantAddress: req.ApplicantAddress,
			HousingType:      req.HousingType,
			HasExperience:    req.HasExperience,
			OtherPets:        req.OtherPets,
			Reason:           req.Reason,
		})
		if err != nil {
			writeApplicationError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toApplicationResponse(a, nil))
	}
}

func listForApplicantHandler(svc *Service, petsSvc *pets.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := svc.ListForApplicant(r.Context(), claims.UserID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, joinPets(r, items, petsSvc))
	}
}

func listForPublisherHandler(svc *Service, petsSvc *pets.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := svc.ListForPublisher(r.Context(), claims.UserID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, joinPets(r, items, petsSvc))
	}
}

func decideHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req decideRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		a, err := svc.Decide(r.Context(), chi.URLParam(r, "appID"), claims.UserID, Status(strings.TrimSpace(req.Status)))
		if err != nil {
			writeApplicationError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toApplicationResponse(a, nil))
	}
}

// joinPets arma las respuestas con su mascota. Tolera referencias
// huérfanas: si la publicación ya no está, la solicitud sale sin pet.
func joinPets(r *http.Request, items []Application, petsSvc *pets.Service) []applicationResponse {
	cache := map[string]*petSummary{}
	out := make([]applicationResponse, 0, len(items))

	for _, a := range items {
		sum, ok := cache[a.PetID]
		if !ok {
			p, err := petsSvc.GetByID(r.Context(), a.PetID)
			if err == nil {
				sum = toPetSummary(p)
			}
			cache[a.PetID] = sum
		}
		out = append(out, toApplicationResponse(a, sum))
	}
	return out
}

func writeApplicationError(w http.ResponseWriter, err error) {
	var missing *MissingFieldsError
	switch {
	case errors.As(err, &missing):
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error":          "missing required fields",
			"missing_fields": missing.Fields,
		})
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrForbidden):
		http.Error(w, "forbidden", http.StatusForbidden)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "not found", http.StatusNotFound)
	case errors.Is(err, ErrConflict):
		http.Error(w, "application already decided", http.StatusConflict)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func toPetSummary(p pets.Pet) *petSummary {
	images := p.Images
	if images == nil {
		images = []string{}
	}
	return &petSummary{
		ID:       p.ID,
		Name:     p.Name,
		Species:  string(p.Species),
		Breed:    p.Breed,
		Location: p.Location,
		Status:   string(p.Status),
		Images:   images,
	}
}

func toApplicationResponse(a Application, pet *petSummary) applicationResponse {
	return applicationResponse{
		ID:               a.ID,
		PetID:            a.PetID,
		ApplicantID:      a.ApplicantID,
		ApplicantName:    a.ApplicantName,
		ApplicantEmail:   a.ApplicantEmail,
		ApplicantPhone:   a.ApplicantPhone,
		ApplicantAddress: a.ApplicantAddress,
		HousingType:      a.HousingType,
		HasExperience:    a.HasExperience,
		OtherPets:        a.OtherPets,
		Reason:           a.Reason,
		Status:           string(a.Status),
		CreatedAt:        a.CreatedAt,
		UpdatedAt:        a.UpdatedAt,
		Pet:              pet,
	}
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos
// para no crear helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
