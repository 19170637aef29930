// Package config loads server configuration from the environment.
// A .env file is honored when present (loaded by the cmd mains via godotenv);
// this package only reads the process environment.
package config

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// Config holds everything the server needs at startup.
type Config struct {
	DatabaseURL    string `koanf:"database_url"`
	ServerPort     string `koanf:"server_port"`
	JWTSecret      string `koanf:"jwt_secret"`
	AllowedOrigins string `koanf:"allowed_origins"`
}

// Load reads configuration from environment variables
// (DATABASE_URL, SERVER_PORT, JWT_SECRET, ALLOWED_ORIGINS).
func Load() (*Config, error) {
	k := koanf.New(".")

	cfg := &Config{}

	if err := k.Load(env.Provider("", ".", strings.ToLower), nil); err != nil {
		return nil, fmt.Errorf("loading environment: %w", err)
	}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	if cfg.ServerPort == "" {
		cfg.ServerPort = "8080"
	}

	return cfg, nil
}

// Validate checks the fields the server cannot run without.
func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	return nil
}
