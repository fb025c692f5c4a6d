// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines the domain, request and response types.

# Domain Types

Project and Review mirror the database rows. The reviewer fingerprint and
IP hashes are carried on Review for abuse analysis but are never
serialized to JSON.

# Invariants

  - Project.AverageRating is the arithmetic mean of all published review
    ratings; 0 when TotalReviews is 0.
  - Review.Rating is an integer in [1, 10].
  - Review text length (50-1000 characters) is enforced at submission
    time only, never re-validated on read.
  - Project.Status moves one way: active → archived.

# Constants

Sort keys (recent, highest, lowest, helpful), leaderboard windows
(all, week, month) and validation limits live here so handlers and tests
share one definition.
*/
package models
