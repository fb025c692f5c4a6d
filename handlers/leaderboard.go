// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/danielhkuo/candid/cliparse"
	"github.com/danielhkuo/candid/middleware"
	"github.com/danielhkuo/candid/models"
)

type LeaderboardHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewLeaderboardHandler(db *sql.DB, cfg cliparse.Config) *LeaderboardHandler {
	return &LeaderboardHandler{db: db, cfg: cfg}
}

// GetLeaderboard handles GET /leaderboard?window=all|week|month
// Ranks active projects with at least one review by average rating;
// at equal averages, more reviews rank first. The top 3 entries form the
// podium, but that split is presentation only - one query, one ordering.
func (h *LeaderboardHandler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	window := r.URL.Query().Get("window")
	if window == "" {
		window = models.WindowAll
	}
	if !ValidWindow(window) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "window must be one of: all, week, month")
		return
	}

	entries, err := TopProjects(h.db, window, models.LeaderboardLimit, time.Now().UTC())
	if err != nil {
		slog.Error("failed to query leaderboard", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.LeaderboardResponse{
		Window:  window,
		Entries: entries,
	})
}

// TopProjects returns the ranked leaderboard for a time window.
// Filter: active projects with totalReviews > 0, created within the window.
// Order: average rating descending, then total reviews descending.
func TopProjects(db *sql.DB, window string, limit int, now time.Time) ([]models.LeaderboardEntry, error) {
	query := `
		SELECT ` + projectColumns + `
		FROM project
		WHERE status = $1 AND total_reviews > 0
	`
	args := []interface{}{models.StatusActive}

	if cutoff, ok := WindowStart(now, window); ok {
		query += ` AND created_at >= $2`
		args = append(args, cutoff)
	}

	query += `
		ORDER BY average_rating DESC, total_reviews DESC
		LIMIT ` + strconv.Itoa(limit)

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []models.LeaderboardEntry{}
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, models.LeaderboardEntry{
			Rank:    len(entries) + 1, // 1-indexed ranking
			Project: project,
		})
	}

	return entries, rows.Err()
}
