package config // package config loads application configuration from environment variables

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
)

// Recognised ENVIRONMENT values. Production enables the strict bootstrap
// guards (no SQLite, no wildcard CORS).
const (
	EnvDevelopment = "development"
	EnvStaging     = "staging"
	EnvProduction  = "production"
)

// Config holds all runtime configuration values. Each field corresponds to
// an environment variable; required variables fail bootstrap with a fatal
// log message.
type Config struct {
	Env            string   // ENVIRONMENT: development, staging or production
	Port           string   // HTTP port to listen on
	DatabaseURL    string   // database connection string
	SecretKey      string   // secret used to sign tokens
	Algorithm      string   // token signing algorithm (default HS256)
	AccessTTLMin   int      // access token time-to-live in minutes
	RefreshTTLDays int      // refresh token time-to-live in days
	CORSOrigins    []string // CORS allow-list
}

// Load reads and validates the configuration, exiting the process on any
// error. Services assume a Load()ed config is internally consistent.
func Load() Config {
	cfg, err := fromEnv()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	return cfg
}

func fromEnv() (Config, error) {
	cfg := Config{
		Env:            strings.ToLower(strings.TrimSpace(os.Getenv("ENVIRONMENT"))),
		Port:           getenvDefault("PORT", "8080"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		SecretKey:      os.Getenv("SECRET_KEY"),
		Algorithm:      getenvDefault("ALGORITHM", "HS256"),
		AccessTTLMin:   60,
		RefreshTTLDays: 7,
	}
	if cfg.DatabaseURL == "" {
		return cfg, errors.New("missing required env var: DATABASE_URL")
	}
	if cfg.SecretKey == "" {
		return cfg, errors.New("missing required env var: SECRET_KEY")
	}
	switch cfg.Env {
	case EnvDevelopment, EnvStaging, EnvProduction:
	case "":
		return cfg, errors.New("missing required env var: ENVIRONMENT")
	default:
		return cfg, fmt.Errorf("invalid ENVIRONMENT %q (want development, staging or production)", cfg.Env)
	}

	var err error
	if cfg.AccessTTLMin, err = intDefault("ACCESS_TOKEN_EXPIRE_MINUTES", 60); err != nil {
		return cfg, err
	}
	if cfg.RefreshTTLDays, err = intDefault("REFRESH_TOKEN_EXPIRE_DAYS", 7); err != nil {
		return cfg, err
	}

	for _, o := range strings.Split(os.Getenv("CORS_ORIGINS"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.CORSOrigins = append(cfg.CORSOrigins, o)
		}
	}

	if cfg.Env == EnvProduction {
		if strings.Contains(strings.ToLower(cfg.DatabaseURL), "sqlite") {
			return cfg, errors.New("refusing to start: SQLite database in production")
		}
		for _, o := range cfg.CORSOrigins {
			if o == "*" {
				return cfg, errors.New("refusing to start: wildcard CORS origin in production")
			}
		}
	}
	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func intDefault(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid int for %s: %q", key, v)
	}
	return n, nil
}
