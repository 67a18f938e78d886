package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodePayload(t *testing.T) {
	p, err := DecodePayload([]byte(`{"walmart": {"payload": {}}, "canes": []}`))
	require.NoError(t, err)
	assert.Contains(t, p, "walmart")
	assert.Contains(t, p, "canes")

	_, err = DecodePayload([]byte(`[1, 2]`))
	assert.Error(t, err)

	_, err = DecodePayload([]byte(`null`))
	assert.Error(t, err)
}

func TestTimestamp(t *testing.T) {
	loc := time.FixedZone("EST", -5*3600)
	tests := []struct {
		name   string
		raw    string
		want   time.Time
		wantOK bool
	}{
		{name: "rfc3339", raw: `"2026-10-12T14:00:00Z"`, want: time.Date(2026, 10, 12, 14, 0, 0, 0, time.UTC), wantOK: true},
		{name: "fractional", raw: `"2026-10-12T14:00:00.000-05:00"`, want: time.Date(2026, 10, 12, 14, 0, 0, 0, loc), wantOK: true},
		{name: "zone-less is local", raw: `"2026-10-12T09:30:00"`, want: time.Date(2026, 10, 12, 9, 30, 0, 0, loc), wantOK: true},
		{name: "epoch millis", raw: `1791806400000`, want: time.UnixMilli(1791806400000), wantOK: true},
		{name: "null", raw: `null`, wantOK: false},
		{name: "millis out of range", raw: `1e300`, wantOK: false},
		{name: "millis just past int64", raw: `9.3e18`, wantOK: false},
		{name: "garbage", raw: `"soon"`, wantOK: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ts Timestamp
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &ts))
			got, ok := ts.Time(loc)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.True(t, tt.want.Equal(got), "got %s", got)
			}
		})
	}
}

func TestDayOfMonth(t *testing.T) {
	tests := []struct {
		raw       string
		want      int
		wantValid bool
	}{
		{`12`, 12, true},
		{`"7"`, 7, true},
		{`" 21st"`, 21, true},
		{`3.9`, 3, true},
		{`"Mon"`, 0, false},
		{`""`, 0, false},
		{`null`, 0, false},
		{`1e20`, 0, false},
		{`-1e300`, 0, false},
		{`4294967296`, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			var d DayOfMonth
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &d))
			assert.Equal(t, tt.wantValid, d.Valid)
			assert.Equal(t, tt.want, d.Value)
		})
	}
}

func TestSettings(t *testing.T) {
	s := DefaultSettings()
	assert.InDelta(t, 13.87, s.Rate(SourceWalmart), 1e-9)
	assert.InDelta(t, 0.87, s.TakeHome(), 1e-9)
	assert.Zero(t, s.Rate("unknown"))

	c := s.Clone()
	c.Rates[SourceCanes] = 20
	assert.InDelta(t, 14.25, s.Rate(SourceCanes), 1e-9)

	assert.Equal(t, time.Local, Settings{}.Loc())
}
