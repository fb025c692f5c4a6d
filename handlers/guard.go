// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/danielhkuo/candid/auth"
	"github.com/danielhkuo/candid/middleware"
)

// The duplicate guard tracks, per project and per review, whether a client
// has already reviewed or voted. Clients are identified by a weak
// fingerprint (user agent + locale), so the guard deters casual
// resubmission only: a different browser, or a spoofed User-Agent, gets a
// fresh fingerprint. There is no stronger server-side identity for
// anonymous reviewers, and that gap is a deliberate policy, not a bug.

// ClientFingerprint derives the anonymous reviewer fingerprint for a request.
func ClientFingerprint(r *http.Request, salt string) string {
	return auth.HashFingerprint(r.UserAgent(), middleware.ClientLocale(r), salt)
}

// HasReviewed reports whether this fingerprint already reviewed the project.
func HasReviewed(db *sql.DB, projectID, fingerprint string) (bool, error) {
	var exists bool
	err := db.QueryRow(`
		SELECT EXISTS(
			SELECT 1 FROM review_mark
			WHERE project_id = $1 AND fingerprint = $2
		)
	`, projectID, fingerprint).Scan(&exists)
	return exists, err
}

// RecordReviewed marks the project as reviewed by this fingerprint.
// Returns false when the mark already existed. The primary key is the
// authoritative dedup check: concurrent requests that all passed
// HasReviewed still get exactly one true here.
func RecordReviewed(tx *sql.Tx, projectID, fingerprint string, now time.Time) (bool, error) {
	res, err := tx.Exec(`
		INSERT INTO review_mark (project_id, fingerprint, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT DO NOTHING
	`, projectID, fingerprint, now)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// HasMarkedHelpful reports whether this fingerprint already voted on the review.
func HasMarkedHelpful(db *sql.DB, reviewID, fingerprint string) (bool, error) {
	var exists bool
	err := db.QueryRow(`
		SELECT EXISTS(
			SELECT 1 FROM helpful_mark
			WHERE review_id = $1 AND fingerprint = $2
		)
	`, reviewID, fingerprint).Scan(&exists)
	return exists, err
}

// RecordHelpful marks the review as voted by this fingerprint. Returns
// false when the mark already existed, so the caller skips the increment.
func RecordHelpful(tx *sql.Tx, reviewID, fingerprint string, now time.Time) (bool, error) {
	res, err := tx.Exec(`
		INSERT INTO helpful_mark (review_id, fingerprint, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT DO NOTHING
	`, reviewID, fingerprint, now)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
