package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.HTTP.Port != 8080 {
		t.Fatalf("expected default port 8080, got %d", cfg.HTTP.Port)
	}
	if cfg.HTTP.ReadTimeout != 5*time.Second || cfg.HTTP.WriteTimeout != 10*time.Second {
		t.Fatalf("default timeouts wrong: %v / %v", cfg.HTTP.ReadTimeout, cfg.HTTP.WriteTimeout)
	}
	if cfg.Auth.Mode != "dev" {
		t.Fatalf("expected default auth mode dev, got %q", cfg.Auth.Mode)
	}
	if cfg.Workflow.CascadeApproval {
		t.Fatalf("cascade approval should default off")
	}
	if cfg.Addr() != ":8080" {
		t.Fatalf("addr wrong: %q", cfg.Addr())
	}
}

func TestLoad_YAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
app:
  name: adopciones
  log_level: debug
  log_format: json
http:
  port: 9090
  read_timeout: 2s
auth:
  mode: jwt
  jwt_secret: shhh
workflow:
  cascade_approval: true
`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("write yaml: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.App.Name != "adopciones" || cfg.App.LogLevel != "debug" || cfg.App.LogFormat != "json" {
		t.Fatalf("app section wrong: %+v", cfg.App)
	}
	if cfg.HTTP.Port != 9090 || cfg.HTTP.ReadTimeout != 2*time.Second {
		t.Fatalf("http section wrong: %+v", cfg.HTTP)
	}
	if cfg.Auth.Mode != "jwt" || cfg.Auth.JWTSecret != "shhh" {
		t.Fatalf("auth section wrong: %+v", cfg.Auth)
	}
	if !cfg.Workflow.CascadeApproval {
		t.Fatalf("cascade approval not read from yaml")
	}
	// Lo no seteado conserva el default
	if cfg.HTTP.WriteTimeout != 10*time.Second {
		t.Fatalf("default write timeout lost: %v", cfg.HTTP.WriteTimeout)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("http:\n  port: 9090\n"), 0o600); err != nil {
		t.Fatalf("write yaml: %v", err)
	}

	t.Setenv("ADOPT_HTTP_PORT", "7070")
	t.Setenv("ADOPT_DB_DSN", "postgres://localhost/adopt")
	t.Setenv("ADOPT_AUTH_JWT_SECRET", "env-secret")
	t.Setenv("ADOPT_WORKFLOW_CASCADE_APPROVAL", "true")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.HTTP.Port != 7070 {
		t.Fatalf("env did not override file port: %d", cfg.HTTP.Port)
	}
	if cfg.DB.DSN != "postgres://localhost/adopt" {
		t.Fatalf("db dsn not read from env: %q", cfg.DB.DSN)
	}
	if cfg.Auth.JWTSecret != "env-secret" {
		t.Fatalf("jwt secret not read from env: %q", cfg.Auth.JWTSecret)
	}
	if !cfg.Workflow.CascadeApproval {
		t.Fatalf("cascade approval not read from env")
	}
}
