package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds all process-wide settings, parsed once at startup and passed
// to constructors explicitly.
type Config struct {
	Port          string        `env:"PORT" envDefault:"8080"`
	DBPath        string        `env:"DB_PATH" envDefault:"./data/auctions.db"`
	JWTSecret     string        `env:"JWT_SECRET"`
	TokenTTL      time.Duration `env:"TOKEN_TTL" envDefault:"1h"`
	SweepInterval time.Duration `env:"SWEEP_INTERVAL" envDefault:"0"`
	LogLevel      string        `env:"LOG_LEVEL" envDefault:"info"`
}

// Load parses the configuration from the environment.
func Load() (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// Addr returns the listen address for the HTTP server.
func (c Config) Addr() string {
	return ":" + c.Port
}
