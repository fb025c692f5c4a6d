// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/danielhkuo/candid/auth"
	"github.com/danielhkuo/candid/cliparse"
	"github.com/danielhkuo/candid/db"
)

// SetupTestDB creates a fresh in-memory SQLite database with the full schema.
// A single connection keeps every query on the same in-memory database.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	conn.SetMaxOpenConns(1)

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:            3318,
		DatabaseURL:     ":memory:",
		DatabaseType:    "sqlite",
		OwnerKeySalt:    "test-owner-salt",
		FingerprintSalt: "test-fp-salt",
		BaseURL:         "https://candid.test",
	}
}

// CreateTestProject creates a project and returns its ID, owner key and share code.
// status should be "active" or "archived".
func CreateTestProject(t *testing.T, conn *sql.DB, cfg cliparse.Config, status string) (projectID, ownerKey, shareCode string) {
	t.Helper()

	projectID, _ = auth.GenerateID(16)
	ownerKey = auth.GenerateOwnerKey(projectID, cfg.OwnerKeySalt)
	shareCode, _ = auth.GenerateShareCode()

	_, err := conn.Exec(`
		INSERT INTO project (id, share_code, title, description, url, tech_stack, status, created_at)
		VALUES ($1, $2, 'Test Project', 'A project under test', 'https://example.com', '["Go"]', $3, $4)
	`, projectID, shareCode, status, time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to create test project: %v", err)
	}

	return projectID, ownerKey, shareCode
}

// CreateTestReview inserts a published review directly and returns its ID.
// It does not touch the project aggregate or the duplicate-guard marks.
func CreateTestReview(t *testing.T, conn *sql.DB, projectID string, rating, helpfulCount int, createdAt time.Time) string {
	t.Helper()

	reviewID, _ := auth.GenerateID(16)
	_, err := conn.Exec(`
		INSERT INTO review (id, project_id, rating, review_text, helpful_count, status, created_at)
		VALUES ($1, $2, $3, 'This is a test review body long enough to pass validation.', $4, 'published', $5)
	`, reviewID, projectID, rating, helpfulCount, createdAt)
	if err != nil {
		t.Fatalf("Failed to create test review: %v", err)
	}

	return reviewID
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
