package service

import (
	"sort"
	"time"

	"shift-tracker/internal/domain"
	"shift-tracker/internal/model"
	"shift-tracker/pkg/calendar"
)

// DailyTotals folds shifts per date, in ascending date order.
func DailyTotals(shifts []domain.Shift) []model.DailyTotal {
	index := make(map[string]int)
	var out []model.DailyTotal
	for _, s := range shifts {
		i, ok := index[s.Date]
		if !ok {
			i = len(out)
			index[s.Date] = i
			out = append(out, model.DailyTotal{Date: s.Date})
		}
		out[i].Shifts++
		out[i].PaidHours += s.PaidHours
		out[i].GrossPay += s.GrossPay
		out[i].NetPay += s.NetPay
	}
	sortDaily(out)
	return out
}

// WeeklyTotals folds shifts per ISO week number, sorted by week number.
// Every shift lands in exactly one bucket; the same number in different
// years shares a bucket.
func WeeklyTotals(shifts []domain.Shift) []model.WeeklyTotal {
	index := make(map[int]int)
	var out []model.WeeklyTotal
	for _, s := range shifts {
		week, _ := calendar.DateWeek(s.Date)
		i, ok := index[week]
		if !ok {
			i = len(out)
			index[week] = i
			out = append(out, model.WeeklyTotal{Week: week})
		}
		out[i].PaidHours += s.PaidHours
		out[i].GrossPay += s.GrossPay
		out[i].NetPay += s.NetPay
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Week < out[j].Week })
	return out
}

// PeriodTotals estimates the next paycheck from the ISO week containing now
// and the week number before it. The previous week is plain currentWeek-1:
// in week 1 it is 0 and matches nothing.
func PeriodTotals(shifts []domain.Shift, settings domain.Settings, now time.Time) model.PeriodTotal {
	current := calendar.Week(now.In(settings.Loc()))
	out := model.PeriodTotal{CurrentWeek: current, LastWeek: current - 1}
	for _, s := range shifts {
		week, ok := calendar.DateWeek(s.Date)
		if !ok {
			continue
		}
		if week == out.CurrentWeek || week == out.LastWeek {
			out.GrossPay += s.GrossPay
		}
	}
	out.NetPay = out.GrossPay * settings.TakeHome()
	return out
}

// Summarize is the header fold over the whole list.
func Summarize(shifts []domain.Shift) model.Summary {
	if len(shifts) == 0 {
		return model.Summary{Empty: true}
	}
	sum := model.Summary{
		Shifts:    len(shifts),
		FirstDate: shifts[0].Date,
		LastDate:  shifts[0].Date,
	}
	for _, s := range shifts {
		if s.Date < sum.FirstDate {
			sum.FirstDate = s.Date
		}
		if s.Date > sum.LastDate {
			sum.LastDate = s.Date
		}
		sum.PaidHours += s.PaidHours
		sum.GrossPay += s.GrossPay
		sum.NetPay += s.NetPay
	}
	return sum
}

func sortDaily(days []model.DailyTotal) {
	sort.SliceStable(days, func(i, j int) bool {
		return days[i].Date < days[j].Date
	})
}
