package service

import (
	"encoding/json"
	"strings"
	"time"

	"go.uber.org/zap"

	"shift-tracker/internal/domain"
	"shift-tracker/pkg/calendar"
	"shift-tracker/pkg/clock"
)

const (
	canesKey        = "canes"
	canesDefaultJob = "Cane's Shift"
)

// CanesMapper reads the restaurant feed: a flat list of day-of-month plus
// "start-end" strings. Days are placed in the month of Now; an overflowing
// day rolls into the next month. No unpaid break applies.
type CanesMapper struct{}

func (CanesMapper) Source() domain.Source { return domain.SourceCanes }
func (CanesMapper) Key() string           { return canesKey }

func (m CanesMapper) Map(raw json.RawMessage, env MapEnv) []domain.Shift {
	var entries []json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		env.Log.Debug("canes branch unreadable", zap.Error(err))
		return nil
	}
	loc := env.Settings.Loc()
	now := env.Now.In(loc)

	out := make([]domain.Shift, 0, len(entries))
	for i, rawEntry := range entries {
		var e domain.CanesEntry
		if err := json.Unmarshal(rawEntry, &e); err != nil {
			env.Log.Debug("canes entry unreadable", zap.Int("index", i), zap.Error(err))
			continue
		}
		if !e.Day.Valid {
			env.Log.Debug("canes entry dropped: no day", zap.Int("index", i))
			continue
		}
		date := time.Date(now.Year(), now.Month(), e.Day.Value, 0, 0, 0, 0, loc)

		start, end := splitDuration(e.Duration)
		duration := clock.Hours(start, end)

		job := e.Job
		if job == "" {
			job = canesDefaultJob
		}
		out = append(out, price(domain.Shift{
			Date:          calendar.FormatDate(date),
			Start:         orNotAvailable(start),
			End:           orNotAvailable(end),
			DurationHours: duration,
			PaidHours:     duration,
			Job:           job,
			Source:        domain.SourceCanes,
		}, env.Settings))
	}
	return out
}

func splitDuration(s string) (start, end string) {
	parts := strings.Split(s, "-")
	start = strings.TrimSpace(parts[0])
	if len(parts) > 1 {
		end = strings.TrimSpace(parts[1])
	}
	return start, end
}

func orNotAvailable(s string) string {
	if s == "" {
		return domain.NotAvailable
	}
	return s
}
