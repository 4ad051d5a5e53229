package main

import (
	"net/http"
	"os"
	"time"

	"pet-adoption-market/internal/adapters/auth/gotrue"
	"pet-adoption-market/internal/adapters/auth/hs256"
	"pet-adoption-market/internal/adapters/files/bucket"
	pg "pet-adoption-market/internal/adapters/storage/postgres"
	"pet-adoption-market/internal/config"
	"pet-adoption-market/internal/platform/logger"
	"pet-adoption-market/internal/ports/auth"
	"pet-adoption-market/internal/ports/files"
	"pet-adoption-market/internal/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.App.LogLevel),
		Format: logger.ParseFormat(cfg.App.LogFormat),
		App:    cfg.App.Name,
	})

	opts := router.Options{
		Logger:          log,
		CascadeApproval: cfg.Workflow.CascadeApproval,
	}

	if cfg.DB.DSN != "" {
		db, err := pg.Open(cfg.DB.DSN)
		if err != nil {
			log.Error("db open failed", map[string]any{"err": err.Error()})
			os.Exit(1)
		}
		defer db.Close()
		opts.DB = db
	} else {
		log.Warn("sin db.dsn: repos in-memory, los datos no persisten", nil)
	}

	verifier, err := buildVerifier(cfg)
	if err != nil {
		log.Error("auth setup failed", map[string]any{"err": err.Error()})
		os.Exit(1)
	}
	if verifier == nil {
		log.Warn("auth en modo dev: identidad por header X-Debug-User-ID", nil)
	}
	opts.AuthVerifier = verifier

	if cfg.Files.BaseURL != "" {
		up, err := buildUploader(cfg)
		if err != nil {
			log.Error("uploads setup failed", map[string]any{"err": err.Error()})
			os.Exit(1)
		}
		opts.Uploader = up
	}

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router.NewRouter(opts),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	log.Info("starting server", map[string]any{"addr": cfg.Addr(), "auth_mode": cfg.Auth.Mode})
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", map[string]any{"err": err.Error()})
		os.Exit(1)
	}
}

func buildVerifier(cfg *config.Config) (auth.AuthVerifier, error) {
	switch cfg.Auth.Mode {
	case "jwt":
		return hs256.NewVerifier(cfg.Auth.JWTSecret)
	case "remote":
		client, err := gotrue.NewClient(gotrue.Config{
			BaseURL: cfg.Auth.ProviderURL,
			APIKey:  cfg.Auth.ProviderKey,
			Timeout: 5 * time.Second,
		})
		if err != nil {
			return nil, err
		}
		return gotrue.NewVerifier(client), nil
	default: // dev
		return nil, nil
	}
}

func buildUploader(cfg *config.Config) (files.Uploader, error) {
	return bucket.NewClient(bucket.Config{
		BaseURL: cfg.Files.BaseURL,
		APIKey:  cfg.Files.APIKey,
		Bucket:  cfg.Files.Bucket,
		Timeout: 10 * time.Second,
	})
}
