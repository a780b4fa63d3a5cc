// Package config carga la configuración desde variables de entorno y,
// si CONFIG_PATH apunta a un YAML, desde ese archivo (el entorno pisa al archivo).
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	AppName string `yaml:"app_name" env:"APP_NAME" env-default:"pet-clinic-visits"`

	HTTP      HTTP      `yaml:"http"`
	DB        DB        `yaml:"db"`
	Redis     Redis     `yaml:"redis"`
	Auth      Auth      `yaml:"auth"`
	Odin      Odin      `yaml:"odin"`
	RateLimit RateLimit `yaml:"rate_limit"`
	Log       Log       `yaml:"log"`
}

type HTTP struct {
	Port         string        `yaml:"port" env:"PORT" env-default:"8080"`
	ReadTimeout  time.Duration `yaml:"read_timeout" env:"HTTP_READ_TIMEOUT" env-default:"5s"`
	WriteTimeout time.Duration `yaml:"write_timeout" env:"HTTP_WRITE_TIMEOUT" env-default:"10s"`
	IdleTimeout  time.Duration `yaml:"idle_timeout" env:"HTTP_IDLE_TIMEOUT" env-default:"60s"`
}

// DB: DSN vacío => store in-memory.
type DB struct {
	DSN     string `yaml:"dsn" env:"DB_DSN"`
	Migrate bool   `yaml:"migrate" env:"DB_MIGRATE" env-default:"false"`
}

// Redis: Addr vacío => sin cache.
type Redis struct {
	Addr     string        `yaml:"addr" env:"REDIS_ADDR"`
	Password string        `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int           `yaml:"db" env:"REDIS_DB" env-default:"0"`
	TTL      time.Duration `yaml:"ttl" env:"CACHE_TTL" env-default:"5m"`
}

type Auth struct {
	JWTSecret string        `yaml:"jwt_secret" env:"AUTH_JWT_SECRET"`
	JWTIssuer string        `yaml:"jwt_issuer" env:"AUTH_JWT_ISSUER" env-default:"pet-clinic"`
	TokenTTL  time.Duration `yaml:"token_ttl" env:"AUTH_TOKEN_TTL" env-default:"1h"`
}

type Odin struct {
	BaseURL string `yaml:"base_url" env:"ODIN_BASE_URL"`
	APIKey  string `yaml:"api_key" env:"ODIN_API_KEY"`
}

// RateLimit: RPS <= 0 lo desactiva.
type RateLimit struct {
	RPS   float64 `yaml:"rps" env:"RATE_LIMIT_RPS" env-default:"0"`
	Burst int     `yaml:"burst" env:"RATE_LIMIT_BURST" env-default:"20"`
}

type Log struct {
	Level  string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"text"`
}

// Load lee CONFIG_PATH si está seteado; si no, solo el entorno.
func Load() (*Config, error) {
	var cfg Config

	if path := strings.TrimSpace(os.Getenv("CONFIG_PATH")); path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config file %s: %w", path, err)
		}
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("read env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if strings.TrimSpace(c.HTTP.Port) == "" {
		return fmt.Errorf("config: PORT is empty")
	}
	if c.RateLimit.RPS < 0 {
		return fmt.Errorf("config: RATE_LIMIT_RPS must be >= 0")
	}
	if (c.Odin.BaseURL == "") != (c.Odin.APIKey == "") {
		return fmt.Errorf("config: ODIN_BASE_URL and ODIN_API_KEY go together")
	}
	return nil
}

// Addr es la dirección de escucha (":8080").
func (c *Config) Addr() string {
	return ":" + strings.TrimPrefix(c.HTTP.Port, ":")
}

// AuthMode describe qué verifier se va a usar: "jwt", "odin" o "dev".
func (c *Config) AuthMode() string {
	switch {
	case c.Auth.JWTSecret != "":
		return "jwt"
	case c.Odin.BaseURL != "":
		return "odin"
	default:
		return "dev"
	}
}

// Usage devuelve la descripción de todas las variables (para `--help`).
func Usage() string {
	var cfg Config
	text, err := cleanenv.GetDescription(&cfg, nil)
	if err != nil {
		return ""
	}
	return text
}
