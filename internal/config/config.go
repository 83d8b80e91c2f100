// Package config carga la configuración del proceso: defaults, archivo YAML
// opcional (BIRDS_CONFIG) y variables de entorno con prefijo BIRDS_.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "BIRDS_"

// Render modes para GET /birds.
const (
	RenderJSON  = "json"
	RenderPlain = "plain"
)

type Config struct {
	Addr string `koanf:"addr"`

	// Envelope: true => {"birds":[...],"messages":[...]}, false => array plano.
	Envelope bool   `koanf:"envelope"`
	Render   string `koanf:"render"`

	// Storage: DB_DSN (Postgres) gana sobre SQLitePath; ninguno => in-memory.
	DBDSN      string `koanf:"db_dsn"`
	SQLitePath string `koanf:"sqlite_path"`
	SeedFile   string `koanf:"seed_file"`

	// Pool de Postgres; 0 => defaults del adapter.
	DBMaxOpenConns int `koanf:"db_max_open_conns"`
	DBMaxIdleConns int `koanf:"db_max_idle_conns"`

	LogLevel  string `koanf:"log_level"`
	LogFormat string `koanf:"log_format"`
	AppName   string `koanf:"app_name"`
}

func Default() Config {
	return Config{
		Addr:      ":8080",
		Envelope:  false,
		Render:    RenderJSON,
		LogLevel:  "info",
		LogFormat: "text",
		AppName:   "birds-api",
	}
}

// Load: defaults -> archivo (si BIRDS_CONFIG) -> env BIRDS_*.
// PORT y DB_DSN sin prefijo se respetan por compatibilidad con el deploy actual.
func Load() (Config, error) {
	cfg := Default()
	k := koanf.New(".")

	if path := strings.TrimSpace(os.Getenv(envPrefix + "CONFIG")); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Config{}, fmt.Errorf("%w: %s: %v", ErrLoadConfig, path, err)
		}
	}

	envProvider := env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return Config{}, fmt.Errorf("%w: env: %v", ErrLoadConfig, err)
	}

	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	if v := strings.TrimSpace(os.Getenv("PORT")); v != "" && !k.Exists("addr") {
		cfg.Addr = ":" + v
	}
	if v := strings.TrimSpace(os.Getenv("DB_DSN")); v != "" && cfg.DBDSN == "" {
		cfg.DBDSN = v
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.Addr) == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	if c.DBMaxOpenConns < 0 || c.DBMaxIdleConns < 0 {
		return fmt.Errorf("%w: db pool sizes must not be negative", ErrInvalidConfig)
	}
	switch c.Render {
	case RenderJSON, RenderPlain:
	default:
		return fmt.Errorf("%w: render must be %q or %q, got %q", ErrInvalidConfig, RenderJSON, RenderPlain, c.Render)
	}
	return nil
}
