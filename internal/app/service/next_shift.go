package service

import (
	"time"

	"shift-tracker/internal/domain"
	"shift-tracker/internal/model"
	"shift-tracker/pkg/calendar"
	"shift-tracker/pkg/clock"
)

// NextShift returns the first shift in list order whose date+start instant,
// read in loc, is strictly after now. Shifts without a parseable start are
// skipped.
func NextShift(shifts []domain.Shift, now time.Time, loc *time.Location) (model.NextShift, bool) {
	if loc == nil {
		loc = time.Local
	}
	for _, s := range shifts {
		start, ok := clock.Parse(s.Start)
		if !ok {
			continue
		}
		day, ok := calendar.ParseDate(s.Date, loc)
		if !ok {
			continue
		}
		at := start.On(day)
		if at.After(now) {
			return model.NextShift{Shift: s, StartsAt: at, Until: at.Sub(now)}, true
		}
	}
	return model.NextShift{}, false
}
