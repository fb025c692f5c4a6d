// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"sort"
	"time"

	"github.com/danielhkuo/candid/models"
)

// ApplyNewRating folds one rating into a project's running aggregate:
//
//	newCount   = totalReviews + 1
//	newAverage = (averageRating*totalReviews + rating) / newCount
//
// O(1) per submission; the full review set is never re-read. float64 keeps
// the running mean within display precision (one decimal place) over many
// thousands of applications.
func ApplyNewRating(averageRating float64, totalReviews, rating int) (float64, int) {
	newCount := totalReviews + 1
	newAverage := (averageRating*float64(totalReviews) + float64(rating)) / float64(newCount)
	return newAverage, newCount
}

// ValidSortKey reports whether key is one of the supported review orderings.
func ValidSortKey(key string) bool {
	switch key {
	case models.SortRecent, models.SortHighest, models.SortLowest, models.SortHelpful:
		return true
	}
	return false
}

// SortReviews reorders an already-fetched review set in place. Sorting is
// stable: reviews that compare equal keep their prior order. Membership and
// size never change, only order.
func SortReviews(reviews []models.Review, sortKey string) {
	switch sortKey {
	case models.SortRecent:
		sort.SliceStable(reviews, func(i, j int) bool {
			return reviews[i].CreatedAt.After(reviews[j].CreatedAt)
		})
	case models.SortHighest:
		sort.SliceStable(reviews, func(i, j int) bool {
			return reviews[i].Rating > reviews[j].Rating
		})
	case models.SortLowest:
		sort.SliceStable(reviews, func(i, j int) bool {
			return reviews[i].Rating < reviews[j].Rating
		})
	case models.SortHelpful:
		sort.SliceStable(reviews, func(i, j int) bool {
			return reviews[i].HelpfulCount > reviews[j].HelpfulCount
		})
	}
}

// ValidWindow reports whether window is a supported leaderboard time filter.
func ValidWindow(window string) bool {
	switch window {
	case models.WindowAll, models.WindowWeek, models.WindowMonth:
		return true
	}
	return false
}

// WindowStart returns the creation-time cutoff for a leaderboard window.
// ok is false for the all-time window (no cutoff).
func WindowStart(now time.Time, window string) (cutoff time.Time, ok bool) {
	switch window {
	case models.WindowWeek:
		return now.AddDate(0, 0, -7), true
	case models.WindowMonth:
		return now.AddDate(0, -1, 0), true
	}
	return time.Time{}, false
}
