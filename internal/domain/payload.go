package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Payload is the combined schedule document keyed by source branch. Branches
// stay raw so that one malformed branch cannot spoil the other.
type Payload map[string]json.RawMessage

// DecodePayload accepts any JSON object. Anything else is a transport problem.
func DecodePayload(data []byte) (Payload, error) {
	var p Payload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decode payload: %w", err)
	}
	if p == nil {
		return nil, fmt.Errorf("decode payload: not an object")
	}
	return p, nil
}

// WalmartBranch is the nested weeks -> schedules shape.
type WalmartBranch struct {
	Payload struct {
		Weeks []json.RawMessage `json:"weeks"`
	} `json:"payload"`
}

type WalmartWeek struct {
	Schedules []json.RawMessage `json:"schedules"`
}

type WalmartSchedule struct {
	ShiftStartTime Timestamp `json:"shiftStartTime"`
	ShiftEndTime   Timestamp `json:"shiftEndTime"`
	Events         []struct {
		JobDescription string `json:"jobDescription"`
	} `json:"events"`
}

// CanesEntry is one row of the flat restaurant feed.
type CanesEntry struct {
	Day      DayOfMonth `json:"day"`
	Duration string     `json:"duration"`
	Job      string     `json:"job"`
}

// Timestamp holds an absolute instant as sent by the source: an RFC 3339
// string, a zone-less local string, or epoch milliseconds.
type Timestamp struct {
	text   string
	millis *int64
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil
	}
	if b[0] == '"' {
		return json.Unmarshal(b, &t.text)
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	if ms, ok := wholeNumber(f); ok {
		t.millis = &ms
	}
	return nil
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
}

// Time resolves the instant. Zone-less strings are read in loc.
func (t Timestamp) Time(loc *time.Location) (time.Time, bool) {
	if t.millis != nil {
		return time.UnixMilli(*t.millis), true
	}
	s := strings.TrimSpace(t.text)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if parsed, err := time.ParseInLocation(layout, s, loc); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}

// NewTimestamp builds a Timestamp from its textual form.
func NewTimestamp(s string) Timestamp {
	return Timestamp{text: s}
}

// DayOfMonth is a day number that may arrive as a JSON number or string.
// Strings are read like a lenient integer parse: leading digits win.
type DayOfMonth struct {
	Value int
	Valid bool
}

func (d *DayOfMonth) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		d.Value, d.Valid = leadingInt(s)
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	n, ok := wholeNumber(f)
	if !ok || n < math.MinInt32 || n > math.MaxInt32 {
		return nil
	}
	d.Value, d.Valid = int(n), true
	return nil
}

func leadingInt(s string) (int, bool) {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	start := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == start {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}

// wholeNumber truncates f toward zero. ok is false for NaN, infinities and
// values outside the int64 range.
func wholeNumber(f float64) (int64, bool) {
	if math.IsNaN(f) || f < -(1<<63) || f >= 1<<63 {
		return 0, false
	}
	return int64(f), true
}
