package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// envPrefix: toda la config se puede pisar por env, p.ej.
// ADOPT_HTTP_PORT=9090, ADOPT_DB_DSN=..., ADOPT_AUTH_JWT_SECRET=...
const envPrefix = "ADOPT_"

type Config struct {
	App struct {
		Name      string `koanf:"name"`
		LogLevel  string `koanf:"log_level"`
		LogFormat string `koanf:"log_format"`
	} `koanf:"app"`

	HTTP struct {
		Port         int           `koanf:"port"`
		ReadTimeout  time.Duration `koanf:"read_timeout"`
		WriteTimeout time.Duration `koanf:"write_timeout"`
	} `koanf:"http"`

	DB struct {
		// Vacío => repos in-memory (modo dev)
		DSN string `koanf:"dsn"`
	} `koanf:"db"`

	Auth struct {
		// dev | jwt | remote
		Mode        string `koanf:"mode"`
		JWTSecret   string `koanf:"jwt_secret"`
		ProviderURL string `koanf:"provider_url"`
		ProviderKey string `koanf:"provider_key"`
	} `koanf:"auth"`

	Files struct {
		BaseURL string `koanf:"base_url"`
		APIKey  string `koanf:"api_key"`
		Bucket  string `koanf:"bucket"`
	} `koanf:"files"`

	Workflow struct {
		// Si está activa, aprobar una solicitud marca la mascota como
		// adopted y rechaza las pending hermanas.
		CascadeApproval bool `koanf:"cascade_approval"`
	} `koanf:"workflow"`
}

// Load arma la config: defaults + config.yaml (si existe) + env vars.
func Load(paths ...string) (*Config, error) {
	k := koanf.New(".")

	// Archivo yaml opcional: primero CONFIG_FILE, después ./config.yaml
	candidates := []string{}
	if cf := strings.TrimSpace(os.Getenv("CONFIG_FILE")); cf != "" {
		candidates = append(candidates, cf)
	}
	candidates = append(candidates, paths...)
	candidates = append(candidates, "config.yaml")

	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err != nil {
			continue
		}
		if err := k.Load(file.Provider(candidate), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", candidate, err)
		}
		break
	}

	// Env vars pisan al archivo. ADOPT_SECCION_CAMPO => seccion.campo
	// (solo el primer guión bajo separa la sección).
	if err := k.Load(env.Provider(".", env.Opt{
		TransformFunc: func(key, value string) (string, any) {
			if !strings.HasPrefix(key, envPrefix) {
				return "", nil
			}
			key = strings.ToLower(strings.TrimPrefix(key, envPrefix))
			if parts := strings.SplitN(key, "_", 2); len(parts) == 2 {
				key = parts[0] + "." + parts[1]
			}
			return key, value
		},
	}), nil); err != nil {
		return nil, fmt.Errorf("config: load env: %w", err)
	}

	cfg := &Config{}
	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
		},
	}); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}

	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if strings.TrimSpace(c.App.Name) == "" {
		c.App.Name = "pet-adoption-market"
	}
	if c.HTTP.Port <= 0 {
		c.HTTP.Port = 8080
	}
	if c.HTTP.ReadTimeout <= 0 {
		c.HTTP.ReadTimeout = 5 * time.Second
	}
	if c.HTTP.WriteTimeout <= 0 {
		c.HTTP.WriteTimeout = 10 * time.Second
	}
	if strings.TrimSpace(c.Auth.Mode) == "" {
		c.Auth.Mode = "dev"
	}
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.HTTP.Port)
}
