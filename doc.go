// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Candid API server.

Candid lets a project owner publish a work sample behind an anonymous
shareable link, collect 1-10 ratings with free-text reviews from visitors,
and surfaces the top-rated projects on a public leaderboard.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	DATABASE_URL=candid.db go run main.go

Or with flags:

	go run main.go -p 3318 -d "postgres://..." -t postgres

# Configuration

Required settings:

  - DATABASE_URL (-d): PostgreSQL connection string or SQLite file path
  - OWNER_KEY_SALT (--owner-salt): Secret for owner key HMAC
  - FINGERPRINT_SALT (--fingerprint-salt): Secret for reviewer fingerprint hashing

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): "sqlite" or "postgres" (default: sqlite)
  - BASE_URL (--base-url): Public base URL embedded in share links

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (projects, reviews, browse, leaderboard)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: Request/response types
  - auth: Owner keys, share codes, fingerprint hashing
  - db: Schema creation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
