// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/candid/models"
)

func TestApplyNewRating(t *testing.T) {
	tests := []struct {
		name          string
		averageRating float64
		totalReviews  int
		rating        int
		wantAverage   float64
		wantCount     int
	}{
		{"first review sets the average", 0, 0, 8, 8.0, 1},
		{"second review averages in", 8.0, 1, 6, 7.0, 2},
		{"low second review pulls the average down", 8.0, 1, 4, 6.0, 2},
		{"third review", 7.0, 2, 10, 8.0, 3},
		{"minimum rating", 8.0, 3, 1, 6.25, 4},
		{"maximum rating", 5.0, 4, 10, 6.0, 5},
		{"large existing count barely moves", 7.5, 1000, 10, (7.5*1000 + 10) / 1001, 1001},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotAverage, gotCount := ApplyNewRating(tt.averageRating, tt.totalReviews, tt.rating)
			assert.InDelta(t, tt.wantAverage, gotAverage, 1e-9)
			assert.Equal(t, tt.wantCount, gotCount)
		})
	}
}

// The incremental mean must track the true mean within display precision
// even after thousands of applications.
func TestApplyNewRatingDrift(t *testing.T) {
	avg := 0.0
	count := 0
	sum := 0

	for i := 0; i < 10000; i++ {
		rating := i%10 + 1 // cycle 1..10
		avg, count = ApplyNewRating(avg, count, rating)
		sum += rating
	}

	require.Equal(t, 10000, count)
	trueMean := float64(sum) / float64(count)
	assert.InDelta(t, trueMean, avg, 0.05, "incremental mean drifted beyond display precision")
	assert.InDelta(t, 5.5, trueMean, 1e-9)
}

func TestValidSortKey(t *testing.T) {
	for _, key := range []string{"recent", "highest", "lowest", "helpful"} {
		assert.True(t, ValidSortKey(key), key)
	}
	for _, key := range []string{"", "Recent", "newest", "controversial"} {
		assert.False(t, ValidSortKey(key), key)
	}
}

func TestSortReviews(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	fixture := func() []models.Review {
		return []models.Review{
			{ID: "a", Rating: 6, HelpfulCount: 0, CreatedAt: base.Add(4 * time.Minute)},
			{ID: "b", Rating: 10, HelpfulCount: 2, CreatedAt: base.Add(3 * time.Minute)},
			{ID: "c", Rating: 3, HelpfulCount: 7, CreatedAt: base.Add(2 * time.Minute)},
			{ID: "d", Rating: 8, HelpfulCount: 1, CreatedAt: base.Add(1 * time.Minute)},
		}
	}

	tests := []struct {
		sortKey string
		want    []string
	}{
		{models.SortRecent, []string{"a", "b", "c", "d"}},
		{models.SortHighest, []string{"b", "d", "a", "c"}},
		{models.SortLowest, []string{"c", "a", "d", "b"}},
		{models.SortHelpful, []string{"c", "b", "d", "a"}},
	}

	for _, tt := range tests {
		t.Run(tt.sortKey, func(t *testing.T) {
			reviews := fixture()
			SortReviews(reviews, tt.sortKey)

			got := make([]string, len(reviews))
			for i, rev := range reviews {
				got[i] = rev.ID
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

// Equal keys keep their prior order: sorting is stable, and the set never
// changes, only the order.
func TestSortReviewsStability(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	reviews := []models.Review{
		{ID: "first", Rating: 7, HelpfulCount: 3, CreatedAt: base.Add(3 * time.Minute)},
		{ID: "second", Rating: 7, HelpfulCount: 3, CreatedAt: base.Add(2 * time.Minute)},
		{ID: "third", Rating: 7, HelpfulCount: 3, CreatedAt: base.Add(1 * time.Minute)},
	}

	for _, sortKey := range []string{models.SortHighest, models.SortLowest, models.SortHelpful} {
		SortReviews(reviews, sortKey)
		require.Len(t, reviews, 3)
		assert.Equal(t, "first", reviews[0].ID, sortKey)
		assert.Equal(t, "second", reviews[1].ID, sortKey)
		assert.Equal(t, "third", reviews[2].ID, sortKey)
	}
}

func TestValidWindow(t *testing.T) {
	for _, window := range []string{"all", "week", "month"} {
		assert.True(t, ValidWindow(window), window)
	}
	for _, window := range []string{"", "day", "year", "Week"} {
		assert.False(t, ValidWindow(window), window)
	}
}

func TestWindowStart(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	cutoff, ok := WindowStart(now, models.WindowWeek)
	require.True(t, ok)
	assert.Equal(t, time.Date(2025, 6, 8, 12, 0, 0, 0, time.UTC), cutoff)

	cutoff, ok = WindowStart(now, models.WindowMonth)
	require.True(t, ok)
	assert.Equal(t, time.Date(2025, 5, 15, 12, 0, 0, 0, time.UTC), cutoff)

	_, ok = WindowStart(now, models.WindowAll)
	assert.False(t, ok, "all-time window has no cutoff")
}

// Guards against float equality surprises in the aggregate: exact halves
// must round-trip through the formula cleanly.
func TestApplyNewRatingExactValues(t *testing.T) {
	avg, count := ApplyNewRating(0, 0, 7)
	assert.True(t, avg == 7.0 && count == 1)

	avg, count = ApplyNewRating(avg, count, 8)
	assert.True(t, math.Abs(avg-7.5) < 1e-12 && count == 2)
}
