package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v9"
	"github.com/joho/godotenv"
)

type Config struct {
	Addr            string        `env:"HTTP_ADDR" envDefault:":8080"`
	TLSCertFile     string        `env:"TLS_CERT_FILE"`
	TLSKeyFile      string        `env:"TLS_KEY_FILE"`
	ShareKey        string        `env:"SHARE_KEY"`
	ShareTTL        time.Duration `env:"SHARE_TTL" envDefault:"720h"`
	PublicURL       string        `env:"PUBLIC_URL"`
	RateLimit       float64       `env:"RATE_LIMIT" envDefault:"5"`
	RateBurst       int           `env:"RATE_BURST" envDefault:"10"`
	StaticDir       string        `env:"STATIC_DIR" envDefault:"./static/main"`
	PresetsFile     string        `env:"PRESETS_FILE"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"5s"`
}

func (c *Config) TLSEnabled() bool {
	return c.TLSCertFile != "" && c.TLSKeyFile != ""
}

// Load reads .env files (when present) into the environment and parses it.
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load env file: %w", err)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if (cfg.TLSCertFile == "") != (cfg.TLSKeyFile == "") {
		return nil, fmt.Errorf("TLS_CERT_FILE and TLS_KEY_FILE must be set together")
	}
	if cfg.RateLimit <= 0 || cfg.RateBurst <= 0 {
		return nil, fmt.Errorf("RATE_LIMIT and RATE_BURST must be positive")
	}
	if cfg.ShareKey != "" && len(cfg.ShareKey) < 16 {
		return nil, fmt.Errorf("SHARE_KEY must be at least 16 characters")
	}
	return &cfg, nil
}
