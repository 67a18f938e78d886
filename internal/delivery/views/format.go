// Package views renders schedules as plain chat or terminal text.
package views

import (
	"fmt"
	"math"
	"strings"
	"time"

	"shift-tracker/internal/domain"
	"shift-tracker/internal/model"
	"shift-tracker/pkg/calendar"
)

// NoShifts is the empty-schedule message.
const NoShifts = "🎉 No shifts found! Enjoy your time off."

func shortDate(date string) string {
	t, ok := calendar.ParseDate(date, time.UTC)
	if !ok {
		return date
	}
	return t.Format("Jan 2")
}

// FormatSummary is the header line: date range and totals.
func FormatSummary(sum model.Summary) string {
	if sum.Empty {
		return "No shifts · 0h · $0.00"
	}
	return fmt.Sprintf("%s - %s · %.1fh Paid · ~$%.2f gross · ~$%.2f take-home",
		shortDate(sum.FirstDate), shortDate(sum.LastDate), sum.PaidHours, sum.GrossPay, sum.NetPay)
}

func formatShiftLine(s domain.Shift) string {
	line := fmt.Sprintf("  %s: %s - %s (%.2fh paid)", s.Job, s.Start, s.End, s.PaidHours)
	if s.HasOverlap {
		line += " ⚠️ Overlap!"
	}
	return line
}

// FormatMonth renders the list view with a total after every week.
func FormatMonth(view model.MonthView) string {
	title := fmt.Sprintf("%s %d", view.Month, view.Year)
	if view.Source != domain.SourceAll {
		title += " · " + string(view.Source)
	}
	if len(view.Weeks) == 0 {
		return title + "\n\nNo shifts for this filter in " + fmt.Sprintf("%s %d.", view.Month, view.Year)
	}

	var b strings.Builder
	b.WriteString(title)
	b.WriteString("\n")
	for _, w := range view.Weeks {
		for _, d := range w.Days {
			t, _ := calendar.ParseDate(d.Total.Date, time.UTC)
			fmt.Fprintf(&b, "\n%s %d · %.2fh · ~$%.2f\n", t.Format("Mon"), t.Day(), d.Total.PaidHours, d.Total.NetPay)
			for _, s := range d.Shifts {
				b.WriteString(formatShiftLine(s))
				b.WriteString("\n")
			}
		}
		fmt.Fprintf(&b, "Week %d Total: %.2fh Paid, ~$%.2f Take-Home\n", w.Total.Week, w.Total.PaidHours, w.Total.NetPay)
	}
	return b.String()
}

// FormatDay lists one date's shifts with the daily total.
func FormatDay(date string, shifts []domain.Shift) string {
	if len(shifts) == 0 {
		return shortDate(date) + ": no shifts."
	}
	var b strings.Builder
	total := model.DailyTotal{Date: date}
	for _, s := range shifts {
		total.PaidHours += s.PaidHours
		total.NetPay += s.NetPay
	}
	fmt.Fprintf(&b, "%s · %.2fh · ~$%.2f\n", shortDate(date), total.PaidHours, total.NetPay)
	for _, s := range shifts {
		b.WriteString(formatShiftLine(s))
		b.WriteString("\n")
	}
	return b.String()
}

func FormatPaycheck(p model.PeriodTotal) string {
	return fmt.Sprintf("Next Paycheck Estimate\n(Based on shifts for Week %d & %d)\nGross Pay: ~$%.2f\nTake-Home Pay: ~$%.2f",
		p.LastWeek, p.CurrentWeek, p.GrossPay, p.NetPay)
}

// FormatNext reads "starts in Xh Ym": whole hours, then the rest rounded to
// minutes.
func FormatNext(n model.NextShift, ok bool) string {
	if !ok {
		return "No upcoming shifts."
	}
	hours := int(n.Until / time.Hour)
	mins := int(math.Round(float64(n.Until%time.Hour) / float64(time.Minute)))
	return fmt.Sprintf("Next shift (%s) starts in %dh %dm.", n.Shift.Job, hours, mins)
}

func FormatSettings(s domain.Settings) string {
	return fmt.Sprintf("Rates: walmart $%.2f/h, canes $%.2f/h\nTake-home: %.0f%%",
		s.Rate(domain.SourceWalmart), s.Rate(domain.SourceCanes), s.TakeHomePercent)
}

func FormatWeekly(totals []model.WeeklyTotal) string {
	if len(totals) == 0 {
		return NoShifts
	}
	var b strings.Builder
	for _, w := range totals {
		fmt.Fprintf(&b, "Week %d Total: %.2fh Paid, ~$%.2f gross, ~$%.2f Take-Home\n", w.Week, w.PaidHours, w.GrossPay, w.NetPay)
	}
	return b.String()
}

func FormatDaily(totals []model.DailyTotal) string {
	if len(totals) == 0 {
		return NoShifts
	}
	var b strings.Builder
	for _, d := range totals {
		fmt.Fprintf(&b, "%s · %d shift(s) · %.2fh · ~$%.2f\n", d.Date, d.Shifts, d.PaidHours, d.NetPay)
	}
	return b.String()
}
