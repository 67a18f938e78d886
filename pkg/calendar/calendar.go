package calendar

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the grouping key format for shift dates.
const DateLayout = "2006-01-02"

// FormatDate renders t as YYYY-MM-DD using t's own location.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate reads YYYY-MM-DD as local midnight in loc.
func ParseDate(s string, loc *time.Location) (time.Time, bool) {
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(DateLayout, s, loc)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Week returns the ISO-8601 week number of t (week 1 holds the year's
// first Thursday). Only the calendar fields of t are used.
func Week(t time.Time) int {
	_, w := t.ISOWeek()
	return w
}

// DateWeek is Week for a YYYY-MM-DD key. ok is false when the key is not a date.
func DateWeek(date string) (int, bool) {
	t, ok := ParseDate(date, time.UTC)
	if !ok {
		return 0, false
	}
	return Week(t), true
}

// MonthKey formats a year/month pair as YYYY-MM.
func MonthKey(year int, month time.Month) string {
	return fmt.Sprintf("%04d-%02d", year, int(month))
}

// ParseMonthKey reads YYYY-MM, rolling month 0 and 13 into the adjacent year.
func ParseMonthKey(s string) (int, time.Month, bool) {
	parts := strings.Split(s, "-")
	if len(parts) != 2 {
		return 0, 0, false
	}
	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, false
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, false
	}
	t := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return t.Year(), t.Month(), true
}

// InMonth reports whether the YYYY-MM-DD key falls in year/month.
func InMonth(date string, year int, month time.Month) bool {
	return strings.HasPrefix(date, MonthKey(year, month)+"-")
}

func daysInMonth(year int, month time.Month) int {
	t := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC)
	return t.Day()
}
