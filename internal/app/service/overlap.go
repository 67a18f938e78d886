package service

import (
	"shift-tracker/internal/domain"
	"shift-tracker/pkg/clock"
)

const minutesPerDay = 24 * 60

type span struct {
	idx        int
	start, end int
}

// DetectOverlaps recomputes HasOverlap for every shift. Within one date every
// pair is checked with half-open intervals, so touching shifts (one ends as
// the next starts) do not overlap. An end before its start runs past
// midnight and is extended by a day. Shifts whose start or end does not
// parse are never flagged and never flag others.
func DetectOverlaps(shifts []domain.Shift) {
	byDate := make(map[string][]span)
	for i := range shifts {
		shifts[i].HasOverlap = false
		start, ok := clock.Parse(shifts[i].Start)
		if !ok {
			continue
		}
		end, ok := clock.Parse(shifts[i].End)
		if !ok {
			continue
		}
		sp := span{idx: i, start: start.Minutes(), end: end.Minutes()}
		if sp.end < sp.start {
			sp.end += minutesPerDay
		}
		byDate[shifts[i].Date] = append(byDate[shifts[i].Date], sp)
	}

	for _, day := range byDate {
		if len(day) < 2 {
			continue
		}
		for i := 0; i < len(day)-1; i++ {
			for j := i + 1; j < len(day); j++ {
				a, b := day[i], day[j]
				if a.start < b.end && b.start < a.end {
					shifts[a.idx].HasOverlap = true
					shifts[b.idx].HasOverlap = true
				}
			}
		}
	}
}
