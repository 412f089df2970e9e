// Package config loads application configuration from the environment,
// optionally seeded from a .env file.
package config

import (
	"log/slog"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// ServerConfig holds the listen address.
type ServerConfig struct {
	Host string `envconfig:"HOST" default:"127.0.0.1"`
	Port int    `envconfig:"PORT" default:"8080"`
}

// JwtConfig holds the token signing secret and validity windows. The
// secret has no default: startup fails without it, and it is never logged.
type JwtConfig struct {
	Secret string        `envconfig:"SECRET" required:"true"`
	Expiry time.Duration `envconfig:"EXPIRY" default:"1h"`
	Leeway time.Duration `envconfig:"LEEWAY" default:"60s"`
}

// RateLimitConfig bounds requests per client IP.
type RateLimitConfig struct {
	MaxRequests int           `envconfig:"MAX_REQUESTS" default:"50"`
	Window      time.Duration `envconfig:"WINDOW" default:"1s"`
}

// AppConfig is the process-wide configuration.
type AppConfig struct {
	Server    ServerConfig    `envconfig:"SERVER"`
	Jwt       JwtConfig       `envconfig:"JWT"`
	RateLimit RateLimitConfig `envconfig:"RATE_LIMIT"`
}

// Load reads AppConfig from the environment. A .env file in the working
// directory is loaded first when present.
func Load(logger *slog.Logger) (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		logger.Warn("no .env file found, using system environment variables")
	}
	var cfg AppConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	logger.Info("config loaded",
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"jwt_expiry", cfg.Jwt.Expiry,
		"jwt_leeway", cfg.Jwt.Leeway,
	)
	return &cfg, nil
}
