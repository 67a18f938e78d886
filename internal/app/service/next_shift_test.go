package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shift-tracker/internal/domain"
)

func TestNextShift(t *testing.T) {
	shifts := []domain.Shift{
		{Date: "2026-10-15", Start: "9:00AM", Job: "morning"},
		{Date: "2026-10-15", Start: domain.NotAvailable, Job: "unknown"},
		{Date: "2026-10-16", Start: "4:00 PM", Job: "evening"},
	}

	t.Run("before everything", func(t *testing.T) {
		now := time.Date(2026, 10, 15, 7, 30, 0, 0, time.UTC)
		got, ok := NextShift(shifts, now, time.UTC)
		require.True(t, ok)
		assert.Equal(t, "morning", got.Shift.Job)
		assert.Equal(t, 90*time.Minute, got.Until)
	})

	t.Run("exactly at start is not next", func(t *testing.T) {
		now := time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)
		got, ok := NextShift(shifts, now, time.UTC)
		require.True(t, ok)
		assert.Equal(t, "evening", got.Shift.Job)
		assert.Equal(t, time.Date(2026, 10, 16, 16, 0, 0, 0, time.UTC), got.StartsAt)
		assert.Equal(t, 31*time.Hour, got.Until)
	})

	t.Run("after everything", func(t *testing.T) {
		now := time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC)
		_, ok := NextShift(shifts, now, time.UTC)
		assert.False(t, ok)
	})

	t.Run("nothing parses", func(t *testing.T) {
		_, ok := NextShift([]domain.Shift{{Date: "2026-12-01", Start: domain.NotAvailable}}, testNow, time.UTC)
		assert.False(t, ok)
	})

	t.Run("reads dates in location", func(t *testing.T) {
		loc := time.FixedZone("EST", -5*3600)
		now := time.Date(2026, 10, 15, 13, 30, 0, 0, time.UTC) // 8:30 local
		got, ok := NextShift(shifts, now, loc)
		require.True(t, ok)
		assert.Equal(t, "morning", got.Shift.Job)
		assert.Equal(t, 30*time.Minute, got.Until)
	})
}

func TestNextShift_FirstInListOrder(t *testing.T) {
	// Out of order on purpose: the first qualifying entry wins, not the nearest.
	shifts := []domain.Shift{
		{Date: "2026-10-20", Start: "9:00", Job: "later"},
		{Date: "2026-10-16", Start: "9:00", Job: "sooner"},
	}
	got, ok := NextShift(shifts, testNow, time.UTC)
	require.True(t, ok)
	assert.Equal(t, "later", got.Shift.Job)
}
