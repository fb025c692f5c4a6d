// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/danielhkuo/candid/cliparse"
	"github.com/danielhkuo/candid/handlers"
	"github.com/danielhkuo/candid/middleware"
)

func NewRouter(db *sql.DB, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	projectHandler := handlers.NewProjectHandler(db, cfg)
	reviewHandler := handlers.NewReviewHandler(db, cfg)
	browseHandler := handlers.NewBrowseHandler(db, cfg)
	leaderboardHandler := handlers.NewLeaderboardHandler(db, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Project management (owner operations)
	mux.HandleFunc("POST /projects", middleware.WithLogging(projectHandler.CreateProject))
	mux.HandleFunc("GET /projects/{id}/admin", middleware.WithLogging(projectHandler.GetProjectAdmin))
	mux.HandleFunc("POST /projects/{id}/archive", middleware.WithLogging(projectHandler.ArchiveProject))

	// Public review page (share-code scoped, anonymous)
	mux.HandleFunc("GET /p/{code}", middleware.WithLogging(browseHandler.GetProject))
	mux.HandleFunc("GET /p/{code}/reviews", middleware.WithLogging(browseHandler.ListReviews))
	mux.HandleFunc("GET /p/{code}/review-status", middleware.WithLogging(browseHandler.GetReviewStatus))
	mux.HandleFunc("POST /p/{code}/reviews", middleware.WithLogging(reviewHandler.SubmitReview))

	// Helpful votes
	mux.HandleFunc("POST /reviews/{id}/helpful", middleware.WithLogging(reviewHandler.MarkHelpful))

	// Leaderboard
	mux.HandleFunc("GET /leaderboard", middleware.WithLogging(leaderboardHandler.GetLeaderboard))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("candid API v1"))
	})

	return mux
}
