package service

import (
	"encoding/json"

	"go.uber.org/zap"

	"shift-tracker/internal/domain"
	"shift-tracker/pkg/calendar"
	"shift-tracker/pkg/clock"
)

const (
	walmartKey        = "walmart"
	walmartDefaultJob = "Walmart Shift"

	// Shifts longer than breakThresholdHours lose one unpaid hour.
	breakThresholdHours = 5.5
	unpaidBreakHours    = 1
)

// WalmartMapper reads the retail scheduling API branch: weeks of schedules
// with absolute start/end instants.
type WalmartMapper struct{}

func (WalmartMapper) Source() domain.Source { return domain.SourceWalmart }
func (WalmartMapper) Key() string           { return walmartKey }

func (m WalmartMapper) Map(raw json.RawMessage, env MapEnv) []domain.Shift {
	var branch domain.WalmartBranch
	if err := json.Unmarshal(raw, &branch); err != nil {
		env.Log.Debug("walmart branch unreadable", zap.Error(err))
		return nil
	}
	var out []domain.Shift
	for wi, rawWeek := range branch.Payload.Weeks {
		var week domain.WalmartWeek
		if err := json.Unmarshal(rawWeek, &week); err != nil {
			env.Log.Debug("walmart week unreadable", zap.Int("week", wi), zap.Error(err))
			continue
		}
		for _, rawSched := range week.Schedules {
			var sched domain.WalmartSchedule
			if err := json.Unmarshal(rawSched, &sched); err != nil {
				env.Log.Debug("walmart schedule unreadable", zap.Int("week", wi), zap.Error(err))
				continue
			}
			if s, ok := m.shift(sched, env); ok {
				out = append(out, s)
			}
		}
	}
	return out
}

func (WalmartMapper) shift(sched domain.WalmartSchedule, env MapEnv) (domain.Shift, bool) {
	loc := env.Settings.Loc()
	start, ok := sched.ShiftStartTime.Time(loc)
	if !ok {
		env.Log.Debug("walmart schedule dropped: no start instant")
		return domain.Shift{}, false
	}
	start = start.In(loc)

	startStr := start.Format(clockLayout)
	endStr := domain.NotAvailable
	if end, ok := sched.ShiftEndTime.Time(loc); ok {
		endStr = end.In(loc).Format(clockLayout)
	}

	duration := clock.Hours(startStr, endStr)
	paid := duration
	if duration > breakThresholdHours {
		paid = duration - unpaidBreakHours
	}

	job := walmartDefaultJob
	if len(sched.Events) > 0 && sched.Events[0].JobDescription != "" {
		job = sched.Events[0].JobDescription
	}

	return price(domain.Shift{
		Date:          calendar.FormatDate(start),
		Start:         startStr,
		End:           endStr,
		DurationHours: duration,
		PaidHours:     paid,
		Job:           job,
		Source:        domain.SourceWalmart,
	}, env.Settings), true
}

// clockLayout renders instants as "9:00AM".
const clockLayout = "3:04PM"
