// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database schema creation.

# Schema

Four tables:

  - project: published work samples with aggregate rating fields
  - review: anonymous 1-10 ratings with free text
  - review_mark: (project_id, fingerprint) pairs that already reviewed
  - helpful_mark: (review_id, fingerprint) pairs that already voted helpful

# Aggregates

project.average_rating and project.total_reviews are maintained
incrementally on every review submission; they are never recomputed from
the review table. project.views and review.helpful_count are monotonic
counters updated with atomic "SET x = x + 1" writes.

# Duplicate guard

The mark tables carry the duplicate guard's state. Their primary keys are
the uniqueness constraint: inserting an existing pair is a no-op
(ON CONFLICT DO NOTHING), so recording is idempotent. The fingerprint is a
weak client hash, so the guard deters rather than prevents resubmission.

# Unique Constraints

  - project.share_code (unique)
  - review_mark (project_id, fingerprint)
  - helpful_mark (review_id, fingerprint)

# Dialect

The schema avoids engine-specific functions (no NOW(), no JSONB) so the
same DDL runs on PostgreSQL and SQLite. Timestamps are always supplied by
the application in UTC.
*/
package db
