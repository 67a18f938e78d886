package service

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shift-tracker/internal/domain"
)

var testNow = time.Date(2026, 10, 15, 8, 0, 0, 0, time.UTC)

func testSettings() domain.Settings {
	s := domain.DefaultSettings()
	s.Location = time.UTC
	return s
}

func mustPayload(t *testing.T, raw string) domain.Payload {
	t.Helper()
	p, err := domain.DecodePayload([]byte(raw))
	require.NoError(t, err)
	return p
}

func walmartPayload(schedules string) string {
	return `{"walmart": {"payload": {"weeks": [{"schedules": [` + schedules + `]}]}}}`
}

func TestNormalize_WalmartEndToEnd(t *testing.T) {
	p := mustPayload(t, walmartPayload(`{
		"shiftStartTime": "2026-10-12T09:00:00Z",
		"shiftEndTime": "2026-10-12T17:00:00Z",
		"events": [{"jobDescription": "Stocking"}]
	}`))

	got := NewNormalizer(nil).Normalize(p, testSettings(), testNow)

	want := []domain.Shift{{
		Date:          "2026-10-12",
		Start:         "9:00AM",
		End:           "5:00PM",
		DurationHours: 8,
		PaidHours:     7,
		GrossPay:      97.09,
		NetPay:        84.4683,
		Job:           "Stocking",
		Source:        domain.SourceWalmart,
	}}
	if diff := cmp.Diff(want, got, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Errorf("Normalize() mismatch (-want +got):\n%s", diff)
	}
}

func TestNormalize_WalmartBreakRule(t *testing.T) {
	tests := []struct {
		name     string
		end      string
		wantPaid float64
	}{
		{name: "six hours loses break", end: "2026-10-12T15:00:00Z", wantPaid: 5},
		{name: "five hours kept", end: "2026-10-12T14:00:00Z", wantPaid: 5},
		{name: "exactly five and a half kept", end: "2026-10-12T14:30:00Z", wantPaid: 5.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := mustPayload(t, walmartPayload(`{"shiftStartTime": "2026-10-12T09:00:00Z", "shiftEndTime": "`+tt.end+`"}`))
			got := NewNormalizer(nil).Normalize(p, testSettings(), testNow)
			require.Len(t, got, 1)
			assert.InDelta(t, tt.wantPaid, got[0].PaidHours, 1e-9)
			assert.LessOrEqual(t, got[0].PaidHours, got[0].DurationHours)
			assert.Equal(t, "Walmart Shift", got[0].Job)
		})
	}
}

func TestNormalize_WalmartLocalTimeAndDrops(t *testing.T) {
	settings := testSettings()
	settings.Location = time.FixedZone("CDT", -5*3600)

	p := mustPayload(t, walmartPayload(`
		{"shiftStartTime": "2026-10-13T02:00:00Z", "shiftEndTime": "2026-10-13T06:00:00Z"},
		{"shiftStartTime": "not a time", "shiftEndTime": "2026-10-13T06:00:00Z"},
		{"shiftStartTime": "2026-10-14T14:00:00Z"},
		"junk"
	`))
	got := NewNormalizer(nil).Normalize(p, settings, testNow)
	require.Len(t, got, 2)

	// 02:00Z is 21:00 the previous local day.
	assert.Equal(t, "2026-10-12", got[0].Date)
	assert.Equal(t, "9:00PM", got[0].Start)
	assert.Equal(t, "1:00AM", got[0].End)
	assert.InDelta(t, 4, got[0].DurationHours, 1e-9)

	assert.Equal(t, "2026-10-14", got[1].Date)
	assert.Equal(t, domain.NotAvailable, got[1].End)
	assert.Zero(t, got[1].PaidHours)
}

func TestNormalize_Canes(t *testing.T) {
	p := mustPayload(t, `{"canes": [
		{"day": 3, "duration": "4:00 PM - 10:00 PM"},
		{"day": "20", "duration": "10:30AM-2:30PM", "job": "Cashier"},
		{"day": 32, "duration": "9:00-12:00"},
		{"day": 5},
		{"day": "Mon", "duration": "9:00-12:00"}
	]}`)
	got := NewNormalizer(nil).Normalize(p, testSettings(), testNow)
	require.Len(t, got, 4)

	assert.Equal(t, "2026-10-03", got[0].Date)
	assert.Equal(t, "4:00 PM", got[0].Start)
	assert.Equal(t, "10:00 PM", got[0].End)
	assert.InDelta(t, 6, got[0].PaidHours, 1e-9)
	assert.InDelta(t, 6*14.25, got[0].GrossPay, 1e-9)
	assert.InDelta(t, 6*14.25*0.87, got[0].NetPay, 1e-9)
	assert.Equal(t, "Cane's Shift", got[0].Job)
	assert.Equal(t, domain.SourceCanes, got[0].Source)

	assert.Equal(t, "2026-10-05", got[1].Date)
	assert.Equal(t, domain.NotAvailable, got[1].Start)
	assert.Equal(t, domain.NotAvailable, got[1].End)
	assert.Zero(t, got[1].DurationHours)

	assert.Equal(t, "2026-10-20", got[2].Date)
	assert.Equal(t, "Cashier", got[2].Job)
	assert.InDelta(t, 4, got[2].PaidHours, 1e-9)

	// Day 32 of October rolls into November.
	assert.Equal(t, "2026-11-01", got[3].Date)
}

func TestNormalize_MalformedBranches(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "empty object", raw: `{}`},
		{name: "wrong branch types", raw: `{"walmart": "oops", "canes": {"day": 1}}`},
		{name: "weeks not a list", raw: `{"walmart": {"payload": {"weeks": 7}}}`},
		{name: "schedules not a list", raw: `{"walmart": {"payload": {"weeks": [{"schedules": "x"}]}}}`},
		{name: "null branches", raw: `{"walmart": null, "canes": null}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewNormalizer(nil).Normalize(mustPayload(t, tt.raw), testSettings(), testNow)
			assert.Empty(t, got)
		})
	}
}

func TestNormalize_OneBadBranchKeepsTheOther(t *testing.T) {
	p := mustPayload(t, `{"walmart": 12, "canes": [{"day": 1, "duration": "9:00-10:00"}]}`)
	got := NewNormalizer(nil).Normalize(p, testSettings(), testNow)
	require.Len(t, got, 1)
	assert.Equal(t, domain.SourceCanes, got[0].Source)
}

func TestNormalize_SortsAcrossSources(t *testing.T) {
	p := mustPayload(t, `{
		"walmart": {"payload": {"weeks": [
			{"schedules": [{"shiftStartTime": "2026-10-12T13:00:00Z", "shiftEndTime": "2026-10-12T17:00:00Z"}]},
			{"schedules": [{"shiftStartTime": "2026-10-02T09:00:00Z", "shiftEndTime": "2026-10-02T12:00:00Z"}]}
		]}},
		"canes": [
			{"day": 12, "duration": "7:00AM-11:00AM"},
			{"day": 12},
			{"day": 12, "duration": "6:00 PM-9:00 PM"}
		]
	}`)
	got := NewNormalizer(nil).Normalize(p, testSettings(), testNow)

	var order []string
	for _, s := range got {
		order = append(order, s.Date+" "+s.Start)
	}
	assert.Equal(t, []string{
		"2026-10-02 9:00AM",
		"2026-10-12 7:00AM",
		"2026-10-12 1:00PM",
		"2026-10-12 6:00 PM",
		"2026-10-12 N/A",
	}, order)
}

func TestNormalize_SettingsAreNotRetroactive(t *testing.T) {
	p := mustPayload(t, `{"canes": [{"day": 1, "duration": "9:00-13:00"}]}`)
	n := NewNormalizer(nil)

	settings := testSettings()
	before := n.Normalize(p, settings, testNow)

	settings.Rates[domain.SourceCanes] = 20
	settings.TakeHomePercent = 50
	after := n.Normalize(p, settings, testNow)

	assert.InDelta(t, 4*14.25, before[0].GrossPay, 1e-9)
	assert.InDelta(t, 80, after[0].GrossPay, 1e-9)
	assert.InDelta(t, 40, after[0].NetPay, 1e-9)
}

func TestBuildSchedule_FlagsOverlaps(t *testing.T) {
	p := mustPayload(t, `{
		"walmart": {"payload": {"weeks": [{"schedules": [
			{"shiftStartTime": "2026-10-12T09:00:00Z", "shiftEndTime": "2026-10-12T13:00:00Z"}
		]}]}},
		"canes": [{"day": 12, "duration": "12:00-14:00"}, {"day": 13, "duration": "9:00-10:00"}]
	}`)
	got := NewNormalizer(nil).BuildSchedule(p, testSettings(), testNow)
	require.Len(t, got, 3)
	assert.True(t, got[0].HasOverlap)
	assert.True(t, got[1].HasOverlap)
	assert.False(t, got[2].HasOverlap)
}
