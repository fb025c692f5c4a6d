// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/danielhkuo/candid/auth"
	"github.com/danielhkuo/candid/cliparse"
	"github.com/danielhkuo/candid/middleware"
	"github.com/danielhkuo/candid/models"
)

type ReviewHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewReviewHandler(db *sql.DB, cfg cliparse.Config) *ReviewHandler {
	return &ReviewHandler{db: db, cfg: cfg}
}

// SubmitReview handles POST /p/:code/reviews
//
// Validation runs before any storage access; the duplicate guard runs
// before the write. The review insert, the guard mark and the aggregate
// update share one transaction, so a failed write leaves no partial state.
// Two concurrent submissions can still both read the old average and
// last-write-wins on average_rating; that read-modify-write race is
// inherent to the incremental-mean design and is accepted here.
func (h *ReviewHandler) SubmitReview(w http.ResponseWriter, r *http.Request) {
	shareCode := r.PathValue("code")
	if shareCode == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "share code is required")
		return
	}

	// Parse request
	var req models.SubmitReviewRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	// Validate before touching storage
	if req.Rating < models.RatingMin || req.Rating > models.RatingMax {
		middleware.ErrorResponse(w, http.StatusBadRequest, "rating must be an integer between 1 and 10")
		return
	}
	// Both bounds apply to the trimmed text, which is what gets stored;
	// surrounding whitespace neither satisfies the minimum nor breaks
	// the maximum.
	text := strings.TrimSpace(req.Text)
	textLen := utf8.RuneCountInString(text)
	if textLen < models.ReviewTextMin {
		middleware.ErrorResponse(w, http.StatusBadRequest, "review must be at least 50 characters")
		return
	}
	if textLen > models.ReviewTextMax {
		middleware.ErrorResponse(w, http.StatusBadRequest, "review must be 1000 characters or less")
		return
	}
	if !req.Consent {
		middleware.ErrorResponse(w, http.StatusBadRequest, "you must agree to the anonymous review policy")
		return
	}

	// Find project by share code
	var projectID, status string
	var averageRating float64
	var totalReviews int
	err := h.db.QueryRow(`
		SELECT id, status, average_rating, total_reviews
		FROM project
		WHERE share_code = $1
	`, shareCode).Scan(&projectID, &status, &averageRating, &totalReviews)

	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Project not found")
		return
	}
	if err != nil {
		slog.Error("failed to query project", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if status != models.StatusActive {
		middleware.ErrorResponse(w, http.StatusConflict, "Project is not accepting reviews")
		return
	}

	// Duplicate guard: one review per (project, fingerprint). This check
	// is advisory; the mark insert inside the transaction is what decides.
	fingerprint := ClientFingerprint(r, h.cfg.FingerprintSalt)
	reviewed, err := HasReviewed(h.db, projectID, fingerprint)
	if err != nil {
		slog.Error("failed to check review mark", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if reviewed {
		middleware.ErrorResponse(w, http.StatusConflict, "You have already reviewed this project")
		return
	}

	reviewID, err := auth.GenerateID(16)
	if err != nil {
		slog.Error("failed to generate review ID", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to submit review")
		return
	}

	ipHash := auth.HashIP(middleware.GetClientIP(r), h.cfg.FingerprintSalt)
	now := time.Now().UTC()

	// Fold the new rating into the running aggregate
	newAverage, newCount := ApplyNewRating(averageRating, totalReviews, req.Rating)

	tx, err := h.db.Begin()
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer tx.Rollback()

	// The mark goes in first. If another request with the same fingerprint
	// won the race between our HasReviewed check and here, the insert
	// affects no rows and the whole submission aborts.
	marked, err := RecordReviewed(tx, projectID, fingerprint, now)
	if err != nil {
		slog.Error("failed to record review mark", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to submit review")
		return
	}
	if !marked {
		middleware.ErrorResponse(w, http.StatusConflict, "You have already reviewed this project")
		return
	}

	_, err = tx.Exec(`
		INSERT INTO review (id, project_id, rating, review_text, helpful_count, flag_count,
		                    status, fingerprint_hash, ip_hash, created_at)
		VALUES ($1, $2, $3, $4, 0, 0, $5, $6, $7, $8)
	`, reviewID, projectID, req.Rating, text, models.ReviewPublished, fingerprint, ipHash, now)

	if err != nil {
		slog.Error("failed to insert review", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to submit review")
		return
	}

	// total_reviews advances atomically; average_rating carries the
	// precomputed incremental mean
	_, err = tx.Exec(`
		UPDATE project
		SET average_rating = $1, total_reviews = total_reviews + 1
		WHERE id = $2
	`, newAverage, projectID)

	if err != nil {
		slog.Error("failed to update aggregate", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to submit review")
		return
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to submit review")
		return
	}

	slog.Info("review submitted", "project_id", projectID, "review_id", reviewID, "rating", req.Rating)

	middleware.JSONResponse(w, http.StatusCreated, models.SubmitReviewResponse{
		ReviewID:      reviewID,
		AverageRating: newAverage,
		TotalReviews:  newCount,
		Message:       "Review submitted successfully",
	})
}

// MarkHelpful handles POST /reviews/:id/helpful
// A fingerprint can vote once per review; repeat calls are no-ops that
// report the unchanged count.
func (h *ReviewHandler) MarkHelpful(w http.ResponseWriter, r *http.Request) {
	reviewID := r.PathValue("id")
	if reviewID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "review id is required")
		return
	}

	var status string
	var helpfulCount int
	err := h.db.QueryRow(`
		SELECT status, helpful_count FROM review WHERE id = $1
	`, reviewID).Scan(&status, &helpfulCount)

	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Review not found")
		return
	}
	if err != nil {
		slog.Error("failed to query review", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if status != models.ReviewPublished {
		middleware.ErrorResponse(w, http.StatusConflict, "Review is not published")
		return
	}

	fingerprint := ClientFingerprint(r, h.cfg.FingerprintSalt)
	voted, err := HasMarkedHelpful(h.db, reviewID, fingerprint)
	if err != nil {
		slog.Error("failed to check helpful mark", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if voted {
		middleware.JSONResponse(w, http.StatusOK, models.MarkHelpfulResponse{
			HelpfulCount: helpfulCount,
			Message:      "Already marked helpful",
		})
		return
	}

	now := time.Now().UTC()

	tx, err := h.db.Begin()
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer tx.Rollback()

	// The mark insert is the authoritative dedup check. If another vote
	// from the same fingerprint slipped in after HasMarkedHelpful, it
	// affects no rows and the counter is left alone.
	marked, err := RecordHelpful(tx, reviewID, fingerprint, now)
	if err != nil {
		slog.Error("failed to record helpful mark", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to mark helpful")
		return
	}
	if !marked {
		tx.Rollback()

		if err := h.db.QueryRow(`
			SELECT helpful_count FROM review WHERE id = $1
		`, reviewID).Scan(&helpfulCount); err != nil {
			slog.Error("failed to query review", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		middleware.JSONResponse(w, http.StatusOK, models.MarkHelpfulResponse{
			HelpfulCount: helpfulCount,
			Message:      "Already marked helpful",
		})
		return
	}

	// Atomic increment: no read-modify-write on the counter
	_, err = tx.Exec(`
		UPDATE review SET helpful_count = helpful_count + 1 WHERE id = $1
	`, reviewID)

	if err != nil {
		slog.Error("failed to increment helpful count", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to mark helpful")
		return
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to mark helpful")
		return
	}

	slog.Info("review marked helpful", "review_id", reviewID)

	middleware.JSONResponse(w, http.StatusOK, models.MarkHelpfulResponse{
		HelpfulCount: helpfulCount + 1,
		Message:      "Marked helpful",
	})
}
