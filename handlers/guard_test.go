// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/danielhkuo/candid/auth"
)

func TestClientFingerprint(t *testing.T) {
	salt := "test-fp-salt"

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("User-Agent", "Mozilla/5.0 (X11; Linux x86_64)")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	fp1 := ClientFingerprint(req, salt)
	fp2 := ClientFingerprint(req, salt)
	if fp1 != fp2 {
		t.Error("Same request must produce the same fingerprint")
	}

	// A different browser is a different client
	other := httptest.NewRequest("GET", "/", nil)
	other.Header.Set("User-Agent", "Mozilla/5.0 (Macintosh)")
	other.Header.Set("Accept-Language", "en-US,en;q=0.9")
	if ClientFingerprint(other, salt) == fp1 {
		t.Error("Different user agent must produce a different fingerprint")
	}

	// A different locale is a different client
	locale := httptest.NewRequest("GET", "/", nil)
	locale.Header.Set("User-Agent", "Mozilla/5.0 (X11; Linux x86_64)")
	locale.Header.Set("Accept-Language", "de-DE")
	if ClientFingerprint(locale, salt) == fp1 {
		t.Error("Different locale must produce a different fingerprint")
	}

	if ClientFingerprint(req, "other-salt") == fp1 {
		t.Error("Different salt must produce a different fingerprint")
	}
}

func TestReviewMarks(t *testing.T) {
	conn := setupTestDB(t)
	defer conn.Close()

	cfg := getTestConfig()
	projectID, _, _ := createTestProject(t, conn, cfg, "active")

	fp := auth.HashFingerprint("Mozilla/5.0", "en-US", cfg.FingerprintSalt)

	reviewed, err := HasReviewed(conn, projectID, fp)
	if err != nil {
		t.Fatalf("HasReviewed() error = %v", err)
	}
	if reviewed {
		t.Error("Expected no mark for a fresh fingerprint")
	}

	record := func() bool {
		tx, err := conn.Begin()
		if err != nil {
			t.Fatalf("Begin() error = %v", err)
		}
		marked, err := RecordReviewed(tx, projectID, fp, time.Now().UTC())
		if err != nil {
			tx.Rollback()
			t.Fatalf("RecordReviewed() error = %v", err)
		}
		if err := tx.Commit(); err != nil {
			t.Fatalf("Commit() error = %v", err)
		}
		return marked
	}

	// Only the first recording reports an inserted mark
	if !record() {
		t.Error("Expected first RecordReviewed() to insert")
	}
	if record() {
		t.Error("Expected second RecordReviewed() to report an existing mark")
	}

	reviewed, err = HasReviewed(conn, projectID, fp)
	if err != nil {
		t.Fatalf("HasReviewed() error = %v", err)
	}
	if !reviewed {
		t.Error("Expected mark after recording")
	}

	var count int
	if err := conn.QueryRow(`SELECT COUNT(*) FROM review_mark WHERE project_id = $1`, projectID).Scan(&count); err != nil {
		t.Fatalf("Failed to count marks: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected 1 mark row, got %d", count)
	}

	// A different fingerprint is unaffected
	otherFp := auth.HashFingerprint("Mozilla/5.0 (other)", "en-US", cfg.FingerprintSalt)
	reviewed, err = HasReviewed(conn, projectID, otherFp)
	if err != nil {
		t.Fatalf("HasReviewed() error = %v", err)
	}
	if reviewed {
		t.Error("Expected no mark for a different fingerprint")
	}
}

func TestHelpfulMarks(t *testing.T) {
	conn := setupTestDB(t)
	defer conn.Close()

	cfg := getTestConfig()
	projectID, _, _ := createTestProject(t, conn, cfg, "active")
	reviewID := createTestReview(t, conn, projectID, 8, 0, testTime(0))

	fp := auth.HashFingerprint("Mozilla/5.0", "en-US", cfg.FingerprintSalt)

	voted, err := HasMarkedHelpful(conn, reviewID, fp)
	if err != nil {
		t.Fatalf("HasMarkedHelpful() error = %v", err)
	}
	if voted {
		t.Error("Expected no mark for a fresh fingerprint")
	}

	for i, wantMarked := range []bool{true, false} {
		tx, err := conn.Begin()
		if err != nil {
			t.Fatalf("Begin() error = %v", err)
		}
		marked, err := RecordHelpful(tx, reviewID, fp, time.Now().UTC())
		if err != nil {
			tx.Rollback()
			t.Fatalf("RecordHelpful() error = %v", err)
		}
		if err := tx.Commit(); err != nil {
			t.Fatalf("Commit() error = %v", err)
		}
		if marked != wantMarked {
			t.Errorf("RecordHelpful() call %d = %v, want %v", i+1, marked, wantMarked)
		}
	}

	voted, err = HasMarkedHelpful(conn, reviewID, fp)
	if err != nil {
		t.Fatalf("HasMarkedHelpful() error = %v", err)
	}
	if !voted {
		t.Error("Expected mark after recording")
	}

	var count int
	if err := conn.QueryRow(`SELECT COUNT(*) FROM helpful_mark WHERE review_id = $1`, reviewID).Scan(&count); err != nil {
		t.Fatalf("Failed to count marks: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected 1 mark row, got %d", count)
	}
}
