package uploads

import (
	"encoding/json"
	"io"
	"net/http"
	"path"
	"strings"

	"pet-adoption-market/internal/middleware"
	"pet-adoption-market/internal/ports/files"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// maxUploadBytes limita las imágenes de publicaciones a 5MB.
const maxUploadBytes = 5 << 20

func RegisterRoutes(r chi.Router, up files.Uploader) {
	r.Post("/uploads", uploadHandler(up))
}

type uploadResponse struct {
	URL string `json:"url"`
}

// uploadHandler sube una imagen al blob store externo bajo una key con
// prefijo del usuario y devuelve la URL pública durable.
func uploadHandler(up files.Uploader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		if up == nil {
			http.Error(w, "uploads not configured", http.StatusServiceUnavailable)
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			http.Error(w, "invalid multipart body", http.StatusBadRequest)
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			http.Error(w, "file field required", http.StatusBadRequest)
			return
		}
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			http.Error(w, "failed to read file", http.StatusBadRequest)
			return
		}

		contentType := header.Header.Get("Content-Type")
		if contentType == "" {
			contentType = http.DetectContentType(data)
		}
		if !strings.HasPrefix(contentType, "image/") {
			http.Error(w, "only images are accepted", http.StatusBadRequest)
			return
		}

		key := claims.UserID + "/" + uuid.NewString() + path.Ext(header.Filename)
		url, err := up.Upload(r.Context(), key, contentType, data)
		if err != nil {
			http.Error(w, "upload failed, please retry", http.StatusBadGateway)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(uploadResponse{URL: url})
	}
}
