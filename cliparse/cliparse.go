// Copyright (c) 2026 Crowdsignal Forms authors.
// Licensed under the GPL v2 or later; see LICENSE.

package cliparse

import (
	"errors"
	"flag"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port            int
	DatabaseURL     string
	DatabaseType    string
	APIKeySalt      string
	ResultsSlugSalt string
	BaseURL         string
}

// DefaultBaseURL is where hosted results pages live unless overridden.
const DefaultBaseURL = "https://app.crowdsignal.com"

// ParseFlags validates flags, falling back to the environment (a .env
// file is honored when present).
func ParseFlags(args []string) (Config, error) {
	// Missing .env is fine; the environment may be set by the host.
	_ = godotenv.Load()

	var cfg Config

	fs := flag.NewFlagSet("crowdsignal-forms", flag.ContinueOnError)

	// Network and storage (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL (postgres DSN or sqlite path)")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")
	fs.StringVar(&cfg.BaseURL, "base-url", "", "Public base URL for results links")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.APIKeySalt, "api-salt", "", "Poll API key salt (prefer env)")
	fs.StringVar(&cfg.ResultsSlugSalt, "results-salt", "", "Results slug salt (prefer env)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 3320 // default
		}
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = "sqlite"
		}
	}
	if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
		return Config{}, errors.New("database type must be sqlite or postgres")
	}

	if cfg.BaseURL == "" {
		cfg.BaseURL = os.Getenv("BASE_URL")
		if cfg.BaseURL == "" {
			cfg.BaseURL = DefaultBaseURL
		}
	}

	// Secrets - MUST be provided
	if cfg.APIKeySalt == "" {
		cfg.APIKeySalt = os.Getenv("API_KEY_SALT")
	}
	if cfg.APIKeySalt == "" {
		return Config{}, errors.New("API_KEY_SALT required")
	}

	if cfg.ResultsSlugSalt == "" {
		cfg.ResultsSlugSalt = os.Getenv("RESULTS_SLUG_SALT")
	}
	if cfg.ResultsSlugSalt == "" {
		return Config{}, errors.New("RESULTS_SLUG_SALT required")
	}

	return cfg, nil
}
