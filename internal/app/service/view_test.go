package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shift-tracker/internal/domain"
)

func sourced(date string, source domain.Source, hours float64) domain.Shift {
	return domain.Shift{Date: date, Source: source, PaidHours: hours, GrossPay: hours * 10, NetPay: hours * 8}
}

func TestFilterBySource(t *testing.T) {
	shifts := []domain.Shift{
		sourced("2026-10-01", domain.SourceWalmart, 1),
		sourced("2026-10-02", domain.SourceCanes, 2),
	}
	assert.Len(t, FilterBySource(shifts, domain.SourceAll), 2)
	assert.Len(t, FilterBySource(shifts, ""), 2)

	got := FilterBySource(shifts, domain.SourceCanes)
	require.Len(t, got, 1)
	assert.Equal(t, "2026-10-02", got[0].Date)
}

func TestMonth(t *testing.T) {
	shifts := []domain.Shift{
		sourced("2026-09-30", domain.SourceWalmart, 9), // other month, same ISO week as Oct 1
		sourced("2026-10-01", domain.SourceWalmart, 4),
		sourced("2026-10-01", domain.SourceCanes, 3),
		sourced("2026-10-04", domain.SourceCanes, 5),
		sourced("2026-10-05", domain.SourceWalmart, 6),
	}

	view := Month(shifts, 2026, time.October, domain.SourceAll)
	require.Len(t, view.Weeks, 2)

	first := view.Weeks[0]
	assert.Equal(t, 40, first.Total.Week)
	assert.InDelta(t, 12, first.Total.PaidHours, 1e-9)
	require.Len(t, first.Days, 2)
	assert.Len(t, first.Days[0].Shifts, 2)
	assert.InDelta(t, 7, first.Days[0].Total.PaidHours, 1e-9)

	assert.Equal(t, 41, view.Weeks[1].Total.Week)

	canes := Month(shifts, 2026, time.October, domain.SourceCanes)
	require.Len(t, canes.Weeks, 1)
	assert.InDelta(t, 8, canes.Weeks[0].Total.PaidHours, 1e-9)

	assert.Empty(t, Month(shifts, 2026, time.March, domain.SourceAll).Weeks)
}

func TestMarkedDays(t *testing.T) {
	shifts := []domain.Shift{
		sourced("2026-10-01", domain.SourceWalmart, 1),
		sourced("2026-10-14", domain.SourceCanes, 1),
		sourced("2026-11-14", domain.SourceCanes, 1),
	}
	assert.Equal(t, map[int]bool{1: true, 14: true}, MarkedDays(shifts, 2026, time.October))
}
