// Package config loads the server settings from the environment, optionally
// seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds runtime settings for the API server and its background jobs.
type Config struct {
	Port        string   `env:"PORT" envDefault:"8000"`
	DatabaseURL string   `env:"DATABASE_URL" envDefault:"snake_arena.db"`
	CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`
	StaticDir   string   `env:"STATIC_DIR"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`

	JWTSecret string        `env:"JWT_SECRET_KEY" envDefault:"dev-jwt-secret-key-change-in-production"`
	TokenTTL  time.Duration `env:"ACCESS_TOKEN_TTL" envDefault:"24h"`

	SessionMaxAge        time.Duration `env:"SESSION_MAX_AGE" envDefault:"2h"`
	SessionSweepInterval time.Duration `env:"SESSION_SWEEP_INTERVAL" envDefault:"5m"`
	SnapshotInterval     time.Duration `env:"LEADERBOARD_SNAPSHOT_INTERVAL" envDefault:"10m"`
	SnapshotPrefix       string        `env:"LEADERBOARD_SNAPSHOT_PREFIX" envDefault:"leaderboard"`

	R2 R2Config
}

// R2Config points at the S3-compatible bucket leaderboard snapshots are
// published to. Publishing is off while Bucket is empty.
type R2Config struct {
	AccountID       string `env:"CLOUDFLARE_ACCOUNT_ID"`
	AccessKeyID     string `env:"R2_ACCESS_KEY_ID"`
	AccessKeySecret string `env:"R2_ACCESS_KEY_SECRET"`
	Bucket          string `env:"R2_BUCKET_NAME"`
	Endpoint        string `env:"R2_ENDPOINT"`
	CDNBaseURL      string `env:"CDN_BASE_URL"`
}

// Enabled reports whether a bucket is configured.
func (r R2Config) Enabled() bool { return r.Bucket != "" }

// Load reads the given dotenv files (".env" when none are named) into the
// process environment and parses Config from it. A missing dotenv file is not
// an error; variables already set in the environment win.
func Load(files ...string) (*Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", f, err)
		}
	}
	return Parse()
}

// Parse builds a Config from the current environment only.
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET_KEY must not be empty")
	}
	if c.TokenTTL <= 0 {
		return errors.New("ACCESS_TOKEN_TTL must be positive")
	}
	if c.SessionMaxAge <= 0 || c.SessionSweepInterval <= 0 {
		return errors.New("session sweep settings must be positive")
	}
	if c.R2.Enabled() && c.SnapshotInterval <= 0 {
		return errors.New("LEADERBOARD_SNAPSHOT_INTERVAL must be positive")
	}
	return nil
}
