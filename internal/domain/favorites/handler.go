package favorites

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
	// GET no exige sesión: sin usuario responde favorited=false
	r.Get("/pets/{petID}/favorite", isFavoritedHandler(svc))
	r.Post("/pets/{petID}/favorite", toggleHandler(svc))

	r.Get("/me/favorites", listMyFavoritesHandler(svc, petsSvc))
}

type favoriteResponse struct {
	ID        string       `json:"id"`
	PetID     string       `json:"pet_id"`
	CreatedAt time.Time    `json:"created_at"`
	Pet       *favoritePet `json:"pet,omitempty"`
}

type favoritePet struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Species  string   `json:"species"`
	Breed    string   `json:"breed,omitempty"`
	Location string   `json:"location"`
	Status   string   `json:"status"`
	Images   []string `json:"images"`
}

func isFavoritedHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		fav, err := svc.IsFavorited(r.Context(), claims.UserID, chi.URLParam(r, "petID"))
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"favorited": fav})
	}
}

func toggleHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		state, err := svc.Toggle(r.Context(), claims.UserID, chi.URLParam(r, "petID"))
		if err != nil {
			switch {
			case errors.Is(err, ErrInvalidInput):
				http.Error(w, err.Error(), http.StatusBadRequest)
			case errors.Is(err, ErrForbidden):
				http.Error(w, "forbidden", http.StatusForbidden)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"state": string(state)})
	}
}

func listMyFavoritesHandler(svc *Service, petsSvc *pets.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := svc.ListForUser(r.Context(), claims.UserID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]favoriteResponse, 0, len(items))
		for _, f := range items {
			resp := favoriteResponse{
				ID:        f.ID,
				PetID:     f.PetID,
				CreatedAt: f.CreatedAt,
			}
			// Tolera marcas huérfanas: sin publicación, va sin pet
			if p, err := petsSvc.GetByID(r.Context(), f.PetID); err == nil {
				images := p.Images
				if images == nil {
					images = []string{}
				}
				resp.Pet = &favoritePet{
					ID:       p.ID,
					Name:     p.Name,
					Species:  string(p.Species),
					Breed:    p.Breed,
					Location: p.Location,
					Status:   string(p.Status),
					Images:   images,
				}
			}
			out = append(out, resp)
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos
// para no crear helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
