package models

import "time"

// Project status constants
const (
	StatusActive   = "active"
	StatusArchived = "archived"
)

// Review status constants
const (
	ReviewPublished = "published"
)

// Review sort keys
const (
	SortRecent  = "recent"
	SortHighest = "highest"
	SortLowest  = "lowest"
	SortHelpful = "helpful"
)

// Leaderboard time windows
const (
	WindowAll   = "all"
	WindowWeek  = "week"
	WindowMonth = "month"
)

// Validation limits
const (
	RatingMin        = 1
	RatingMax        = 10
	ReviewTextMin    = 50
	ReviewTextMax    = 1000
	TitleMax         = 100
	DescriptionMax   = 500
	TechStackMax     = 5
	ReviewFetchLimit = 50
	LeaderboardLimit = 20
)

// Request types

type CreateProjectRequest struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	URL          string   `json:"url"`
	ThumbnailURL string   `json:"thumbnail_url,omitempty"`
	TechStack    []string `json:"tech_stack"`
}

type SubmitReviewRequest struct {
	Rating int    `json:"rating"`
	Text   string `json:"text"`
	// Consent to the anonymous review policy; required, like the
	// checkbox on the submission form.
	Consent bool `json:"consent"`
}

// Response types

type CreateProjectResponse struct {
	ProjectID string `json:"project_id"`
	OwnerKey  string `json:"owner_key"`
	ShareCode string `json:"share_code"`
	ShareURL  string `json:"share_url"`
}

type SubmitReviewResponse struct {
	ReviewID      string  `json:"review_id"`
	AverageRating float64 `json:"average_rating"`
	TotalReviews  int     `json:"total_reviews"`
	Message       string  `json:"message"`
}

type MarkHelpfulResponse struct {
	HelpfulCount int    `json:"helpful_count"`
	Message      string `json:"message"`
}

type ReviewStatusResponse struct {
	AlreadyReviewed bool `json:"already_reviewed"`
}

type ArchiveProjectResponse struct {
	Status string `json:"status"`
}

type ReviewListResponse struct {
	Reviews []ReviewView `json:"reviews"`
	Total   int          `json:"total"`
	Sort    string       `json:"sort"`
}

type LeaderboardResponse struct {
	Window  string             `json:"window"`
	Entries []LeaderboardEntry `json:"entries"`
}

type LeaderboardEntry struct {
	Rank    int     `json:"rank"` // 1-indexed; the top 3 form the podium
	Project Project `json:"project"`
}

// Domain types

type Project struct {
	ID            string    `json:"id"`
	ShareCode     string    `json:"share_code"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	URL           string    `json:"url"`
	ThumbnailURL  *string   `json:"thumbnail_url,omitempty"`
	TechStack     []string  `json:"tech_stack"`
	Status        string    `json:"status"`
	Views         int       `json:"views"`
	TotalReviews  int       `json:"total_reviews"`
	AverageRating float64   `json:"average_rating"`
	CreatedAt     time.Time `json:"created_at"`
}

type Review struct {
	ID              string    `json:"id"`
	ProjectID       string    `json:"project_id"`
	Rating          int       `json:"rating"`
	Text            string    `json:"text"`
	HelpfulCount    int       `json:"helpful_count"`
	FlagCount       int       `json:"flag_count"`
	Status          string    `json:"status"`
	FingerprintHash string    `json:"-"` // Never expose in JSON
	IPHash          string    `json:"-"` // Never expose in JSON
	CreatedAt       time.Time `json:"created_at"`
}

// ReviewView is the public shape of a review in listings.
type ReviewView struct {
	ID           string    `json:"id"`
	Rating       int       `json:"rating"`
	Text         string    `json:"text"`
	HelpfulCount int       `json:"helpful_count"`
	CreatedAt    time.Time `json:"created_at"`
	SubmittedAgo string    `json:"submitted_ago"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
