// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"time"
	"unicode/utf8"

	"github.com/danielhkuo/candid/auth"
	"github.com/danielhkuo/candid/cliparse"
	"github.com/danielhkuo/candid/middleware"
	"github.com/danielhkuo/candid/models"
)

type ProjectHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewProjectHandler(db *sql.DB, cfg cliparse.Config) *ProjectHandler {
	return &ProjectHandler{db: db, cfg: cfg}
}

const projectColumns = `id, share_code, title, description, url, thumbnail_url,
	       tech_stack, status, views, total_reviews, average_rating, created_at`

// CreateProject handles POST /projects
func (h *ProjectHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	var req models.CreateProjectRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	// Validate input
	if req.Title == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "title is required")
		return
	}
	if utf8.RuneCountInString(req.Title) > models.TitleMax {
		middleware.ErrorResponse(w, http.StatusBadRequest, "title must be 100 characters or less")
		return
	}
	if req.Description == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "description is required")
		return
	}
	if utf8.RuneCountInString(req.Description) > models.DescriptionMax {
		middleware.ErrorResponse(w, http.StatusBadRequest, "description must be 500 characters or less")
		return
	}
	if !validProjectURL(req.URL) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "a valid http(s) url is required")
		return
	}
	if len(req.TechStack) > models.TechStackMax {
		middleware.ErrorResponse(w, http.StatusBadRequest, "at most 5 tech stack tags are allowed")
		return
	}

	// Generate project ID
	projectID, err := auth.GenerateID(16)
	if err != nil {
		slog.Error("failed to generate project ID", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create project")
		return
	}

	// Owner key is HMAC-derived, share code is random and public
	ownerKey := auth.GenerateOwnerKey(projectID, h.cfg.OwnerKeySalt)
	shareCode, err := auth.GenerateShareCode()
	if err != nil {
		slog.Error("failed to generate share code", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create project")
		return
	}

	techStack := req.TechStack
	if techStack == nil {
		techStack = []string{}
	}
	techJSON, err := json.Marshal(techStack)
	if err != nil {
		slog.Error("failed to marshal tech stack", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create project")
		return
	}

	var thumbnail *string
	if req.ThumbnailURL != "" {
		thumbnail = &req.ThumbnailURL
	}

	// Insert project with zeroed aggregates
	_, err = h.db.Exec(`
		INSERT INTO project (id, share_code, title, description, url, thumbnail_url,
		                     tech_stack, status, views, total_reviews, average_rating, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 0, 0, 0, $9)
	`, projectID, shareCode, req.Title, req.Description, req.URL, thumbnail,
		string(techJSON), models.StatusActive, time.Now().UTC())

	if err != nil {
		slog.Error("failed to insert project", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create project")
		return
	}

	slog.Info("project created", "project_id", projectID, "share_code", shareCode)

	middleware.JSONResponse(w, http.StatusCreated, models.CreateProjectResponse{
		ProjectID: projectID,
		OwnerKey:  ownerKey,
		ShareCode: shareCode,
		ShareURL:  h.cfg.BaseURL + "/review/" + shareCode,
	})
}

// GetProjectAdmin handles GET /projects/:id/admin
// Returns the full project including aggregates for the owner.
func (h *ProjectHandler) GetProjectAdmin(w http.ResponseWriter, r *http.Request) {
	projectID := r.PathValue("id")
	if projectID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "project_id is required")
		return
	}

	// Validate owner key
	ownerKey := r.Header.Get("X-Owner-Key")
	if err := auth.ValidateOwnerKey(projectID, ownerKey, h.cfg.OwnerKeySalt); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid owner key")
		return
	}

	project, err := getProjectByID(h.db, projectID)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Project not found")
		return
	}
	if err != nil {
		slog.Error("failed to query project", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, project)
}

// ArchiveProject handles POST /projects/:id/archive
// The transition is one-way; archived projects stop accepting reviews and
// drop off the leaderboard, but their review pages stay reachable.
func (h *ProjectHandler) ArchiveProject(w http.ResponseWriter, r *http.Request) {
	projectID := r.PathValue("id")
	if projectID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "project_id is required")
		return
	}

	// Validate owner key
	ownerKey := r.Header.Get("X-Owner-Key")
	if err := auth.ValidateOwnerKey(projectID, ownerKey, h.cfg.OwnerKeySalt); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid owner key")
		return
	}

	var status string
	err := h.db.QueryRow("SELECT status FROM project WHERE id = $1", projectID).Scan(&status)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Project not found")
		return
	}
	if err != nil {
		slog.Error("failed to query project", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if status == models.StatusArchived {
		middleware.ErrorResponse(w, http.StatusConflict, "Project is already archived")
		return
	}

	_, err = h.db.Exec(`
		UPDATE project SET status = $1 WHERE id = $2
	`, models.StatusArchived, projectID)

	if err != nil {
		slog.Error("failed to archive project", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to archive project")
		return
	}

	slog.Info("project archived", "project_id", projectID)

	middleware.JSONResponse(w, http.StatusOK, models.ArchiveProjectResponse{
		Status: models.StatusArchived,
	})
}

// Helper functions

func validProjectURL(raw string) bool {
	if raw == "" {
		return false
	}
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProject(row rowScanner) (models.Project, error) {
	var project models.Project
	var techJSON string
	err := row.Scan(
		&project.ID, &project.ShareCode, &project.Title, &project.Description,
		&project.URL, &project.ThumbnailURL, &techJSON, &project.Status,
		&project.Views, &project.TotalReviews, &project.AverageRating,
		&project.CreatedAt,
	)
	if err != nil {
		return models.Project{}, err
	}

	if err := json.Unmarshal([]byte(techJSON), &project.TechStack); err != nil {
		// A corrupt tag list should not make the whole project unreadable
		project.TechStack = []string{}
	}

	return project, nil
}

func getProjectByID(db *sql.DB, projectID string) (models.Project, error) {
	return scanProject(db.QueryRow(`
		SELECT `+projectColumns+`
		FROM project
		WHERE id = $1
	`, projectID))
}

func getProjectByShareCode(db *sql.DB, shareCode string) (models.Project, error) {
	return scanProject(db.QueryRow(`
		SELECT `+projectColumns+`
		FROM project
		WHERE share_code = $1
	`, shareCode))
}
