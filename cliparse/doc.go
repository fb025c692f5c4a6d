// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseURL: PostgreSQL connection string or SQLite path (required)
  - DatabaseType: "sqlite" or "postgres" (default: sqlite)
  - OwnerKeySalt: Secret for owner key HMAC (required)
  - FingerprintSalt: Secret for reviewer fingerprint hashing (required)
  - BaseURL: Public base URL embedded in share links

# CLI Flags

	-p                Server port
	-d                Database URL
	-t                Database type
	--base-url        Public base URL
	--owner-salt      Owner key salt
	--fingerprint-salt Fingerprint salt

# Environment Variables

Flags fall back to environment variables:

	PORT             → -p
	DATABASE_URL     → -d
	DATABASE_TYPE    → -t
	BASE_URL         → --base-url
	OWNER_KEY_SALT   → --owner-salt
	FINGERPRINT_SALT → --fingerprint-salt

CLI flags take precedence over environment variables.

# Validation

ParseFlags returns an error if required values are missing:

  - DATABASE_URL must be provided
  - OWNER_KEY_SALT must be provided
  - FINGERPRINT_SALT must be provided

# Example

	// In main.go
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}

	db, err := sql.Open("sqlite", cfg.DatabaseURL)
	// ...
	mux := router.NewRouter(db, cfg)
*/
package cliparse
