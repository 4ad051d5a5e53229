package router

import (
	"database/sql"
	"net/http"

	mem "pet-adoption-market/internal/adapters/storage/memory"
	pg "pet-adoption-market/internal/adapters/storage/postgres"
	"pet-adoption-market/internal/domain/applications"
	"pet-adoption-market/internal/domain/favorites"
	"pet-adoption-market/internal/domain/messages"
	"pet-adoption-market/internal/domain/pets"
	"pet-adoption-market/internal/domain/profiles"
	"pet-adoption-market/internal/domain/uploads"
	"pet-adoption-market/internal/middleware"
	"pet-adoption-market/internal/platform/logger"
	"pet-adoption-market/internal/ports/auth"
	"pet-adoption-market/internal/ports/files"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB

	// Opcional: si viene, habilita POST /uploads.
	Uploader files.Uploader

	// Opcional: si viene, loguea cada request.
	Logger logger.Logger

	// Al aprobar una solicitud, marca la mascota adopted y
	// rechaza las pending restantes.
	CascadeApproval bool
}

func NewRouter(opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	if opts.Logger != nil {
		r.Use(middleware.RequestLog(opts.Logger))
	}

	r.Use(middleware.AuthContext(opts.AuthVerifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	var (
		petRepo     pets.Repository
		appRepo     applications.Repository
		favRepo     favorites.Repository
		msgRepo     messages.Repository
		profileRepo profiles.Repository
	)

	if opts.DB != nil {
		petRepo = pg.NewPetsRepo(opts.DB)
		appRepo = pg.NewApplicationsRepo(opts.DB)
		favRepo = pg.NewFavoritesRepo(opts.DB)
		msgRepo = pg.NewMessagesRepo(opts.DB)
		profileRepo = pg.NewProfilesRepo(opts.DB)
	} else {
		petRepo = mem.NewPetsRepo()
		appRepo = mem.NewApplicationsRepo()
		favRepo = mem.NewFavoritesRepo()
		msgRepo = mem.NewMessagesRepo()
		profileRepo = mem.NewProfilesRepo()
	}

	// Services por módulo
	petsSvc := pets.NewService(petRepo)
	favSvc := favorites.NewService(favRepo)
	msgSvc := messages.NewService(msgRepo)
	appSvc := applications.NewService(appRepo, petsSvc, msgSvc, applications.Config{
		CascadeApproval: opts.CascadeApproval,
	})
	profileSvc := profiles.NewService(profileRepo)

	// Al borrar una mascota caen también sus favoritos y solicitudes.
	petsSvc.RegisterCleaner(favSvc)
	petsSvc.RegisterCleaner(appSvc)

	// Rutas por módulo
	pets.RegisterRoutes(r, petsSvc)
	applications.RegisterRoutes(r, appSvc, petsSvc)
	favorites.RegisterRoutes(r, favSvc, petsSvc)
	messages.RegisterRoutes(r, msgSvc)
	profiles.RegisterRoutes(r, profileSvc)
	if opts.Uploader != nil {
		uploads.RegisterRoutes(r, opts.Uploader)
	}

	return r
}
