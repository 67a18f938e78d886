package service

import (
	"time"

	"shift-tracker/internal/domain"
	"shift-tracker/internal/model"
	"shift-tracker/pkg/calendar"
)

// FilterBySource keeps shifts of one source. SourceAll and "" keep all.
func FilterBySource(shifts []domain.Shift, source domain.Source) []domain.Shift {
	out := make([]domain.Shift, 0, len(shifts))
	for _, s := range shifts {
		if source == "" || source == domain.SourceAll || s.Source == source {
			out = append(out, s)
		}
	}
	return out
}

// ShiftsOn returns the shifts dated date, in list order.
func ShiftsOn(shifts []domain.Shift, date string) []domain.Shift {
	var out []domain.Shift
	for _, s := range shifts {
		if s.Date == date {
			out = append(out, s)
		}
	}
	return out
}

// MarkedDays reports which days of year/month carry at least one shift.
func MarkedDays(shifts []domain.Shift, year int, month time.Month) map[int]bool {
	out := make(map[int]bool)
	for _, s := range shifts {
		if !calendar.InMonth(s.Date, year, month) {
			continue
		}
		if t, ok := calendar.ParseDate(s.Date, time.UTC); ok {
			out[t.Day()] = true
		}
	}
	return out
}

// Month builds the list view for one month: days grouped by ISO week with a
// total after each week. Weekly totals only see that month's shifts.
func Month(shifts []domain.Shift, year int, month time.Month, source domain.Source) model.MonthView {
	view := model.MonthView{Year: year, Month: month, Source: source}
	if view.Source == "" {
		view.Source = domain.SourceAll
	}

	var inMonth []domain.Shift
	for _, s := range FilterBySource(shifts, source) {
		if calendar.InMonth(s.Date, year, month) {
			inMonth = append(inMonth, s)
		}
	}

	for _, day := range DailyTotals(inMonth) {
		week, _ := calendar.DateWeek(day.Date)
		if n := len(view.Weeks); n == 0 || view.Weeks[n-1].Total.Week != week {
			view.Weeks = append(view.Weeks, model.WeekView{Total: model.WeeklyTotal{Week: week}})
		}
		w := &view.Weeks[len(view.Weeks)-1]
		w.Days = append(w.Days, model.DayView{Total: day, Shifts: ShiftsOn(inMonth, day.Date)})
		w.Total.PaidHours += day.PaidHours
		w.Total.GrossPay += day.GrossPay
		w.Total.NetPay += day.NetPay
	}
	return view
}
