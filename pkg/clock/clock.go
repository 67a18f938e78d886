// Package clock parses free-form time-of-day strings ("9:05", "11:30 PM",
// "12:15am") and measures the hours between two of them.
package clock

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var timePattern = regexp.MustCompile(`(?i)(\d{1,2}):(\d{2})\s*(AM|PM)?`)

// TimeOfDay is an hour:minute pair in 24-hour form. Only hour and minute
// carry meaning; it is not tied to any date.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// Parse extracts the first H:MM / HH:MM occurrence from s, honouring an
// optional AM/PM marker. Without a marker the hour is taken as already
// 24-hour. ok is false for empty input, no match, or an hour/minute outside
// a real clock face.
func Parse(s string) (t TimeOfDay, ok bool) {
	if strings.TrimSpace(s) == "" {
		return TimeOfDay{}, false
	}
	m := timePattern.FindStringSubmatch(s)
	if m == nil {
		return TimeOfDay{}, false
	}
	h, _ := strconv.Atoi(m[1])
	mm, _ := strconv.Atoi(m[2])
	switch strings.ToUpper(m[3]) {
	case "PM":
		if h < 12 {
			h += 12
		}
	case "AM":
		if h == 12 {
			h = 0
		}
	}
	if h > 23 || mm > 59 {
		return TimeOfDay{}, false
	}
	return TimeOfDay{Hour: h, Minute: mm}, true
}

// Minutes returns minutes since midnight.
func (t TimeOfDay) Minutes() int {
	return t.Hour*60 + t.Minute
}

func (t TimeOfDay) Before(o TimeOfDay) bool {
	return t.Minutes() < o.Minutes()
}

// On anchors t to the calendar day of date, in date's location.
func (t TimeOfDay) On(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour, t.Minute, 0, 0, date.Location())
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// Hours returns the elapsed hours from start to end. An end earlier than the
// start is an overnight shift and wraps by 24h. If either side does not
// parse the result is 0.
func Hours(start, end string) float64 {
	s, ok := Parse(start)
	if !ok {
		return 0
	}
	e, ok := Parse(end)
	if !ok {
		return 0
	}
	return Between(s, e)
}

// Between is Hours for already parsed values.
func Between(start, end TimeOfDay) float64 {
	diff := float64(end.Minutes()-start.Minutes()) / 60
	if diff < 0 {
		diff += 24
	}
	return diff
}
