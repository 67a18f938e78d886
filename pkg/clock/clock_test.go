package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		want   TimeOfDay
		wantOK bool
	}{
		{name: "pm adds twelve", in: "11:30 PM", want: TimeOfDay{23, 30}, wantOK: true},
		{name: "midnight am", in: "12:15 AM", want: TimeOfDay{0, 15}, wantOK: true},
		{name: "noon pm stays", in: "12:00 PM", want: TimeOfDay{12, 0}, wantOK: true},
		{name: "no marker", in: "9:05", want: TimeOfDay{9, 5}, wantOK: true},
		{name: "24h no marker", in: "22:00", want: TimeOfDay{22, 0}, wantOK: true},
		{name: "lowercase no space", in: "4:45pm", want: TimeOfDay{16, 45}, wantOK: true},
		{name: "am before noon unchanged", in: "9:00AM", want: TimeOfDay{9, 0}, wantOK: true},
		{name: "surrounding text", in: "starts 7:30 AM sharp", want: TimeOfDay{7, 30}, wantOK: true},
		{name: "empty", in: "", wantOK: false},
		{name: "blank", in: "   ", wantOK: false},
		{name: "not available", in: "N/A", wantOK: false},
		{name: "no colon", in: "930", wantOK: false},
		{name: "minute out of range", in: "9:75", wantOK: false},
		{name: "hour out of range", in: "25:00", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Parse(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestHours(t *testing.T) {
	tests := []struct {
		name       string
		start, end string
		want       float64
	}{
		{name: "day shift", start: "9:00", end: "17:00", want: 8},
		{name: "overnight wrap", start: "22:00", end: "6:00", want: 8},
		{name: "meridiem", start: "4:00PM", end: "10:30PM", want: 6.5},
		{name: "same time", start: "9:00", end: "9:00", want: 0},
		{name: "empty start", start: "", end: "17:00", want: 0},
		{name: "empty end", start: "9:00", end: "", want: 0},
		{name: "garbage", start: "later", end: "soon", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Hours(tt.start, tt.end), 1e-9)
		})
	}
}

func TestTimeOfDay_On(t *testing.T) {
	loc := time.FixedZone("CST", -6*3600)
	day := time.Date(2026, 3, 8, 0, 0, 0, 0, loc)
	got := TimeOfDay{Hour: 14, Minute: 5}.On(day)

	assert.Equal(t, time.Date(2026, 3, 8, 14, 5, 0, 0, loc), got)
	assert.Equal(t, "14:05", TimeOfDay{Hour: 14, Minute: 5}.String())
}
