// Copyright (c) 2026 Medora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config handles application-wide settings and environment parsing.

Values come from OS environment variables, optionally seeded from a local
.env file. Required values fail fast at startup.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}
*/
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/taibuivan/medora/internal/platform/sec"
)

// # Configuration Schema

// Config holds all runtime configuration for the Medora API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Logging
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	LogFile  string `env:"LOG_FILE"`

	// Relational Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL,required"`
	DBMaxConns  int32  `env:"DB_MAX_CONNS" envDefault:"25"`
	DBMinConns  int32  `env:"DB_MIN_CONNS" envDefault:"2"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// Key-Value Cache (Redis)
	RedisURL      string `env:"REDIS_URL,required"`
	RedisPoolSize int    `env:"REDIS_POOL_SIZE" envDefault:"10"`

	// Token signing
	JWTSecret string        `env:"JWT_SECRET,required"`
	JWTTTL    time.Duration `env:"JWT_TTL" envDefault:"24h"`

	// Local file storage for uploaded images
	UploadDir string `env:"UPLOAD_DIR" envDefault:"./uploads"`

	// EmployeeIDPrefix is prepended to the zero-padded employee sequence.
	EmployeeIDPrefix string `env:"EMPLOYEE_ID_PREFIX" envDefault:"MD"`

	// Backpressure
	MaxConcurrentRequests int64 `env:"MAX_CONCURRENT_REQUESTS" envDefault:"256"`

	// Activity log dispatch
	ActivityQueueSize int `env:"ACTIVITY_QUEUE_SIZE" envDefault:"1024"`
	ActivityWorkers   int `env:"ACTIVITY_WORKERS"    envDefault:"2"`

	// ProductCacheTTL bounds how long public catalog reads are served from Redis.
	ProductCacheTTL time.Duration `env:"PRODUCT_CACHE_TTL" envDefault:"5m"`

	// Cross-Origin Resource Sharing, comma separated.
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`
}

// # Configuration Loading

// Load reads an optional .env file and parses environment variables into a [Config].
func Load() (*Config, error) {
	// A missing .env is normal outside local development.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: failed to read .env: %w", err)
	}

	return Parse()
}

// Parse maps the current environment into a [Config] and validates it.
func Parse() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if len(c.JWTSecret) < sec.MinSecretLength {
		return fmt.Errorf("config: JWT_SECRET must be at least %d bytes", sec.MinSecretLength)
	}
	if c.JWTTTL <= 0 {
		return errors.New("config: JWT_TTL must be positive")
	}
	if strings.TrimSpace(c.EmployeeIDPrefix) == "" {
		return errors.New("config: EMPLOYEE_ID_PREFIX must not be empty")
	}
	if c.MaxConcurrentRequests < 1 {
		return errors.New("config: MAX_CONCURRENT_REQUESTS must be at least 1")
	}
	if c.DBMaxConns < 1 || c.DBMinConns < 0 || c.DBMinConns > c.DBMaxConns {
		return errors.New("config: DB_MIN_CONNS must be between 0 and DB_MAX_CONNS")
	}
	if c.ActivityQueueSize < 1 || c.ActivityWorkers < 1 {
		return errors.New("config: ACTIVITY_QUEUE_SIZE and ACTIVITY_WORKERS must be at least 1")
	}
	return nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
