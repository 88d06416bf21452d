// Copyright (c) 2026 Crowdsignal Forms authors.
// Licensed under the GPL v2 or later; see LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

A .env file in the working directory is loaded first when present
(missing is not an error).

# Config Fields

  - Port: Server listen port (default: 3320)
  - DatabaseURL: Postgres DSN or sqlite path (required)
  - DatabaseType: "sqlite" or "postgres" (default: sqlite)
  - BaseURL: Public base URL for results links
  - APIKeySalt: Secret for poll API key HMAC (required)
  - ResultsSlugSalt: Secret for results slug generation (required)

# CLI Flags

	-p            Server port
	-d            Database URL
	-t            Database type
	--base-url    Public base URL
	--api-salt    Poll API key salt
	--results-salt Results slug salt

# Environment Variables

Flags fall back to environment variables:

	PORT              → -p
	DATABASE_URL      → -d
	DATABASE_TYPE     → -t
	BASE_URL          → --base-url
	API_KEY_SALT      → --api-salt
	RESULTS_SLUG_SALT → --results-salt

CLI flags take precedence over environment variables.

# Validation

ParseFlags returns an error if required values are missing or if the
database type is not one of sqlite, postgres.
*/
package cliparse
