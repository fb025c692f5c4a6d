// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/candid/cliparse"
	"github.com/danielhkuo/candid/middleware"
	"github.com/danielhkuo/candid/models"
)

type BrowseHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewBrowseHandler(db *sql.DB, cfg cliparse.Config) *BrowseHandler {
	return &BrowseHandler{db: db, cfg: cfg}
}

// GetProject handles GET /p/:code
// Resolves a share code to its project and counts the page view. Archived
// projects stay reachable; only new reviews are blocked for them.
func (h *BrowseHandler) GetProject(w http.ResponseWriter, r *http.Request) {
	shareCode := r.PathValue("code")
	if shareCode == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "share code is required")
		return
	}

	project, err := getProjectByShareCode(h.db, shareCode)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Project not found")
		return
	}
	if err != nil {
		slog.Error("failed to query project", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	// Atomic increment: safe under concurrent page loads
	_, err = h.db.Exec(`
		UPDATE project SET views = views + 1 WHERE id = $1
	`, project.ID)
	if err != nil {
		slog.Warn("failed to count view", "error", err, "project_id", project.ID)
		// Non-fatal: the page still renders
	} else {
		project.Views++
	}

	middleware.JSONResponse(w, http.StatusOK, project)
}

// ListReviews handles GET /p/:code/reviews?sort=recent|highest|lowest|helpful
// Fetches at most the 50 most recent published reviews, then orders them in
// memory. The cap is a fixed window, not a cursor: older reviews are
// invisible to this query regardless of sort key.
func (h *BrowseHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
	shareCode := r.PathValue("code")
	if shareCode == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "share code is required")
		return
	}

	sortKey := r.URL.Query().Get("sort")
	if sortKey == "" {
		sortKey = models.SortRecent
	}
	if !ValidSortKey(sortKey) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "sort must be one of: recent, highest, lowest, helpful")
		return
	}

	var projectID string
	err := h.db.QueryRow(`
		SELECT id FROM project WHERE share_code = $1
	`, shareCode).Scan(&projectID)

	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Project not found")
		return
	}
	if err != nil {
		slog.Error("failed to query project", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	reviews, err := fetchRecentReviews(h.db, projectID)
	if err != nil {
		slog.Error("failed to query reviews", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	SortReviews(reviews, sortKey)

	views := make([]models.ReviewView, len(reviews))
	for i, rev := range reviews {
		views[i] = models.ReviewView{
			ID:           rev.ID,
			Rating:       rev.Rating,
			Text:         rev.Text,
			HelpfulCount: rev.HelpfulCount,
			CreatedAt:    rev.CreatedAt,
			SubmittedAgo: humanize.Time(rev.CreatedAt),
		}
	}

	middleware.JSONResponse(w, http.StatusOK, models.ReviewListResponse{
		Reviews: views,
		Total:   len(views),
		Sort:    sortKey,
	})
}

// GetReviewStatus handles GET /p/:code/review-status
// Tells the client whether its fingerprint already reviewed this project,
// so the form can short-circuit before a doomed submission.
func (h *BrowseHandler) GetReviewStatus(w http.ResponseWriter, r *http.Request) {
	shareCode := r.PathValue("code")
	if shareCode == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "share code is required")
		return
	}

	var projectID string
	err := h.db.QueryRow(`
		SELECT id FROM project WHERE share_code = $1
	`, shareCode).Scan(&projectID)

	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Project not found")
		return
	}
	if err != nil {
		slog.Error("failed to query project", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	fingerprint := ClientFingerprint(r, h.cfg.FingerprintSalt)
	reviewed, err := HasReviewed(h.db, projectID, fingerprint)
	if err != nil {
		slog.Error("failed to check review mark", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ReviewStatusResponse{
		AlreadyReviewed: reviewed,
	})
}

// fetchRecentReviews returns up to 50 published reviews, newest first.
func fetchRecentReviews(db *sql.DB, projectID string) ([]models.Review, error) {
	rows, err := db.Query(`
		SELECT id, project_id, rating, review_text, helpful_count, flag_count, status, created_at
		FROM review
		WHERE project_id = $1 AND status = $2
		ORDER BY created_at DESC
		LIMIT $3
	`, projectID, models.ReviewPublished, models.ReviewFetchLimit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reviews := []models.Review{}
	for rows.Next() {
		var rev models.Review
		if err := rows.Scan(&rev.ID, &rev.ProjectID, &rev.Rating, &rev.Text,
			&rev.HelpfulCount, &rev.FlagCount, &rev.Status, &rev.CreatedAt); err != nil {
			return nil, err
		}
		reviews = append(reviews, rev)
	}

	return reviews, rows.Err()
}
