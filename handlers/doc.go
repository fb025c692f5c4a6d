// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Candid API.

# Handler Types

Each handler is a struct with database and config dependencies:

  - ProjectHandler: Owner operations (create, admin view, archive)
  - ReviewHandler: Review submission and helpful votes
  - BrowseHandler: Public project pages, review listings, review status
  - LeaderboardHandler: Ranked project listings

Handlers are created via constructor functions that accept *sql.DB and Config:

	projectHandler := handlers.NewProjectHandler(db, cfg)

# Project Lifecycle

Projects have two states: active → archived (one-way, owner-initiated)

	POST /projects              → CreateProject (returns owner_key + share code)
	GET  /projects/{id}/admin   → GetProjectAdmin (owner stats)
	POST /projects/{id}/archive → ArchiveProject

Owner operations require the X-Owner-Key header.

# Review Flow

Visitors interact via the share code; no account or token is needed:

	GET  /p/{code}               → GetProject (counts a view)
	GET  /p/{code}/review-status → GetReviewStatus (has this client reviewed?)
	POST /p/{code}/reviews       → SubmitReview (rating 1-10 + text)
	GET  /p/{code}/reviews       → ListReviews (?sort=recent|highest|lowest|helpful)
	POST /reviews/{id}/helpful   → MarkHelpful

Clients are identified by a weak fingerprint (User-Agent + Accept-Language,
salted HMAC). The duplicate guard in guard.go keys on it; see that file for
what the guard does and does not promise.

# Aggregation

rank.go holds the pure core: the incremental mean that maintains each
project's average rating in O(1) per submission, the in-memory review
orderings, and the leaderboard window cutoffs. Everything there is
side-effect free and unit tested without a database.

# Leaderboard

	GET /leaderboard → GetLeaderboard (?window=all|week|month)

Active projects with at least one review, ordered by average rating then
review count, top 20.
*/
package handlers
