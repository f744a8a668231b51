// Package config loads and validates app config from env and an optional .env file using Viper.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"maonav/internal/security"

	"github.com/spf13/viper"
)

// Store backends.
const (
	StorePostgres = "postgres"
	StoreSQLite   = "sqlite"
	StoreMemory   = "memory"
)

// Config holds application configuration loaded from the environment.
type Config struct {
	// Addr is the HTTP listen address (e.g. :8080).
	Addr string `mapstructure:"ADDR"`
	// WebDir holds the built front-end served for non-API paths.
	WebDir string `mapstructure:"WEB_DIR"`
	// CORSAllowOrigin is sent as Access-Control-Allow-Origin.
	CORSAllowOrigin string `mapstructure:"CORS_ALLOW_ORIGIN"`

	// Store selects the persistence backend: postgres, sqlite or memory.
	Store string `mapstructure:"STORE"`
	// DatabaseURL is the Postgres DSN; required when Store is postgres.
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	// SQLiteDSN is the SQLite data source used when Store is sqlite.
	SQLiteDSN string `mapstructure:"SQLITE_DSN"`

	// JWTSecret keys both token signatures and password hashes.
	JWTSecret string `mapstructure:"JWT_SECRET"`
	// LegacyHashPolicy is compat, bcrypt or reset.
	LegacyHashPolicy string `mapstructure:"LEGACY_HASH_POLICY"`
	// AdminUsername and AdminPassword create the first admin when none exists.
	AdminUsername string `mapstructure:"ADMIN_USERNAME"`
	AdminPassword string `mapstructure:"ADMIN_PASSWORD"`
	// SessionPurgeInterval is how often expired sessions are deleted; 0 disables.
	SessionPurgeInterval time.Duration `mapstructure:"SESSION_PURGE_INTERVAL"`

	// LogLevel is debug, info, warn or error.
	LogLevel string `mapstructure:"LOG_LEVEL"`
	// LogFormat is text or json.
	LogFormat string `mapstructure:"LOG_FORMAT"`
}

// Load reads .env (if present), then builds and validates Config from the environment via Viper.
// Missing .env is ignored. Env vars override .env.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigFile(".env")
	v.SetConfigType("env")
	_ = v.ReadInConfig() // ignore ErrConfigFileNotFound

	v.AutomaticEnv()

	v.SetDefault("ADDR", ":8080")
	v.SetDefault("WEB_DIR", "web")
	v.SetDefault("CORS_ALLOW_ORIGIN", "*")
	v.SetDefault("STORE", StoreSQLite)
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("SQLITE_DSN", "file:maonav.db")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("LEGACY_HASH_POLICY", string(security.LegacyCompat))
	v.SetDefault("ADMIN_USERNAME", "")
	v.SetDefault("ADMIN_PASSWORD", "")
	v.SetDefault("SESSION_PURGE_INTERVAL", "1h")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Addr == "" {
		return errors.New("config: ADDR must be set")
	}
	if c.JWTSecret == "" {
		return errors.New("config: JWT_SECRET must be set")
	}

	c.Store = strings.ToLower(c.Store)
	switch c.Store {
	case StorePostgres:
		if c.DatabaseURL == "" {
			return errors.New("config: DATABASE_URL must be set when STORE=postgres")
		}
	case StoreSQLite:
		if c.SQLiteDSN == "" {
			return errors.New("config: SQLITE_DSN must be set when STORE=sqlite")
		}
	case StoreMemory:
	default:
		return fmt.Errorf("config: unknown STORE %q", c.Store)
	}

	if _, err := security.ParseLegacyPolicy(c.LegacyHashPolicy); err != nil {
		return fmt.Errorf("config: LEGACY_HASH_POLICY: %w", err)
	}
	if (c.AdminUsername == "") != (c.AdminPassword == "") {
		return errors.New("config: ADMIN_USERNAME and ADMIN_PASSWORD must be set together")
	}
	if c.SessionPurgeInterval < 0 {
		return errors.New("config: SESSION_PURGE_INTERVAL must not be negative")
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("config: unknown LOG_FORMAT %q", c.LogFormat)
	}
	return nil
}

// Policy returns the parsed legacy hash policy. Load has already validated it.
func (c *Config) Policy() security.LegacyPolicy {
	p, _ := security.ParseLegacyPolicy(c.LegacyHashPolicy)
	return p
}
