package pets

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"pet-adoption-market/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/pets", func(pr chi.Router) {
		// Listado público de disponibles, con filtros por query string
		pr.Get("/", listAvailableHandler(svc))
		pr.Post("/", createPetHandler(svc))

		pr.Get("/{petID}", getPetHandler(svc))
		pr.Patch("/{petID}", updatePetHandler(svc))
		pr.Delete("/{petID}", deletePetHandler(svc))
	})

	// Publicaciones propias del publisher (cualquier status)
	r.Get("/me/pets", listMyPetsHandler(svc))
}

type createPetRequest struct {
	Name              string   `json:"name"`
	Species           string   `json:"species"`
	Breed             string   `json:"breed"`
	AgeYears          *int     `json:"age_years"`
	AgeMonths         *int     `json:"age_months"`
	Gender            string   `json:"gender"`
	Size              string   `json:"size"`
	Color             string   `json:"color"`
	Description       string   `json:"description"`
	HealthStatus      string   `json:"health_status"`
	VaccinationStatus string   `json:"vaccination_status"`
	Location          string   `json:"location"`
	Requirements      string   `json:"adoption_requirements"`
	Images            []string `json:"images"`
}

type updatePetRequest struct {
	// Punteros para PATCH real: nil = no tocar.
	Name              *string  `json:"name"`
	Species           *string  `json:"species"`
	Breed             *string  `json:"breed"`
	AgeYears          *int     `json:"age_years"`
	AgeMonths         *int     `json:"age_months"`
	Gender            *string  `json:"gender"`
	Size              *string  `json:"size"`
	Color             *string  `json:"color"`
	Description       *string  `json:"description"`
	HealthStatus      *string  `json:"health_status"`
	VaccinationStatus *string  `json:"vaccination_status"`
	Location          *string  `json:"location"`
	Requirements      *string  `json:"adoption_requirements"`
	Images            []string `json:"images"`
}

type petResponse struct {
	ID                string    `json:"id"`
	PublisherID       string    `json:"publisher_id"`
	Name              string    `json:"name"`
	Species           string    `json:"species"`
	Breed             string    `json:"breed,omitempty"`
	AgeYears          *int      `json:"age_years,omitempty"`
	AgeMonths         *int      `json:"age_months,omitempty"`
	Gender            string    `json:"gender"`
	Size              string    `json:"size,omitempty"`
	Color             string    `json:"color,omitempty"`
	Description       string    `json:"description"`
	HealthStatus      string    `json:"health_status,omitempty"`
	VaccinationStatus string    `json:"vaccination_status,omitempty"`
	Location          string    `json:"location"`
	Requirements      string    `json:"adoption_requirements,omitempty"`
	Status            string    `json:"status"`
	Images            []string  `json:"images"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func listAvailableHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		f := Filters{
			Species:  q.Get("species"),
			Gender:   q.Get("gender"),
			Size:     q.Get("size"),
			Location: q.Get("location"),
			Search:   q.Get("q"),
		}

		items, err := svc.ListAvailable(r.Context(), f)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]petResponse, 0, len(items))
		for _, p := range items {
			out = append(out, toPetResponse(p))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func createPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req createPetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		p, err := svc.Create(r.Context(), claims.UserID, CreateInput{
			Name:              req.Name,
			Species:           req.Species,
			Breed:             req.Breed,
			AgeYears:          req.AgeYears,
			AgeMonths:         req.AgeMonths,
			Gender:            req.Gender,
			Size:              req.Size,
			Color:             req.Color,
			Description:       req.Description,
			HealthStatus:      req.HealthStatus,
			VaccinationStatus: req.VaccinationStatus,
			Location:          req.Location,
			Requirements:      req.Requirements,
			Images:            req.Images,
		})
		if err != nil {
			writePetError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toPetResponse(p))
	}
}

func getPetHandler(svc *Service) http.HandlerFunc {
	// Público: el detalle de una publicación no exige sesión
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := svc.GetByID(r.Context(), chi.URLParam(r, "petID"))
		if err != nil {
			http.Error(w, "pet not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, toPetResponse(p))
	}
}

func updatePetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req updatePetRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		p, err := svc.Update(r.Context(), chi.URLParam(r, "petID"), claims.UserID, UpdateInput{
			Name:              req.Name,
			Species:           req.Species,
			Breed:             req.Breed,
			AgeYears:          req.AgeYears,
			AgeMonths:         req.AgeMonths,
			Gender:            req.Gender,
			Size:              req.Size,
			Color:             req.Color,
			Description:       req.Description,
			HealthStatus:      req.HealthStatus,
			VaccinationStatus: req.VaccinationStatus,
			Location:          req.Location,
			Requirements:      req.Requirements,
			Images:            req.Images,
		})
		if err != nil {
			writePetError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toPetResponse(p))
	}
}

func deletePetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		if err := svc.Delete(r.Context(), chi.URLParam(r, "petID"), claims.UserID); err != nil {
			writePetError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func listMyPetsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := svc.ListByPublisher(r.Context(), claims.UserID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]petResponse, 0, len(items))
		for _, p := range items {
			out = append(out, toPetResponse(p))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// writePetError mapea los sentinels del módulo a status codes.
// Forbidden nunca detalla el motivo para no filtrar ownership.
func writePetError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrForbidden):
		http.Error(w, "forbidden", http.StatusForbidden)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "pet not found", http.StatusNotFound)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func toPetResponse(p Pet) petResponse {
	images := p.Images
	if images == nil {
		images = []string{}
	}
	return petResponse{
		ID:                p.ID,
		PublisherID:       p.PublisherID,
		Name:              p.Name,
		Species:           string(p.Species),
		Breed:             p.Breed,
		AgeYears:          p.AgeYears,
		AgeMonths:         p.AgeMonths,
		Gender:            string(p.Gender),
		Size:              string(p.Size),
		Color:             p.Color,
		Description:       p.Description,
		HealthStatus:      p.HealthStatus,
		VaccinationStatus: p.VaccinationStatus,
		Location:          p.Location,
		Requirements:      p.Requirements,
		Status:            string(p.Status),
		Images:            images,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos
// para no crear helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
