package httpapi

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shift-tracker/internal/app/service"
	"shift-tracker/internal/domain"
	"shift-tracker/internal/model"
)

var testNow = time.Date(2026, 10, 15, 8, 0, 0, 0, time.UTC)

const samplePayload = `{
	"walmart": {"payload": {"weeks": [{"schedules": [
		{"shiftStartTime": "2026-10-12T09:00:00Z", "shiftEndTime": "2026-10-12T17:00:00Z",
		 "events": [{"jobDescription": "Stocking"}]}
	]}]}},
	"canes": [{"day": 12, "duration": "4:00 PM-8:00 PM"}, {"day": 16, "duration": "5:00 PM-9:00 PM"}]
}`

type stubLoader struct {
	body string
	err  error
}

func (l stubLoader) Load(ctx context.Context) (domain.PayloadSnapshot, error) {
	if l.err != nil {
		return domain.PayloadSnapshot{}, l.err
	}
	return domain.PayloadSnapshot{ID: "p1", Origin: "server", Body: []byte(l.body)}, nil
}

func newTestServer(t *testing.T, loader domain.PayloadLoader) (*gin.Engine, *service.ScheduleService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	settings := domain.DefaultSettings()
	settings.Location = time.UTC
	svc := service.NewScheduleService(loader, nil, settings, nil)

	h := NewHandler(svc, nil)
	h.Now = func() time.Time { return testNow }
	return NewRouter(h), svc
}

func loaded(t *testing.T) *gin.Engine {
	t.Helper()
	router, svc := newTestServer(t, stubLoader{body: samplePayload})
	_, err := svc.Reload(context.Background(), testNow)
	require.NoError(t, err)
	return router
}

func do(router http.Handler, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func TestShifts_FilterBySource(t *testing.T) {
	router := loaded(t)

	w := do(router, http.MethodGet, "/shifts", "")
	require.Equal(t, http.StatusOK, w.Code)
	all := decode[struct {
		Total int            `json:"total"`
		Items []domain.Shift `json:"items"`
	}](t, w)
	assert.Equal(t, 3, all.Total)
	assert.Equal(t, "Stocking", all.Items[0].Job)

	w = do(router, http.MethodGet, "/shifts?source=canes", "")
	canes := decode[struct {
		Total int `json:"total"`
	}](t, w)
	assert.Equal(t, 2, canes.Total)

	w = do(router, http.MethodGet, "/shifts?source=target", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSummaryAndTotals(t *testing.T) {
	router := loaded(t)

	sum := decode[model.Summary](t, do(router, http.MethodGet, "/summary", ""))
	assert.Equal(t, "2026-10-12", sum.FirstDate)
	assert.Equal(t, "2026-10-16", sum.LastDate)
	assert.InDelta(t, 15.0, sum.PaidHours, 1e-9)
	assert.InDelta(t, 97.09+57+57, sum.GrossPay, 1e-9)

	daily := decode[struct {
		Items []model.DailyTotal `json:"items"`
	}](t, do(router, http.MethodGet, "/totals/daily", ""))
	require.Len(t, daily.Items, 2)
	assert.Equal(t, 2, daily.Items[0].Shifts)

	weekly := decode[struct {
		Items []model.WeeklyTotal `json:"items"`
	}](t, do(router, http.MethodGet, "/totals/weekly?source=walmart", ""))
	require.Len(t, weekly.Items, 1)
	assert.Equal(t, 42, weekly.Items[0].Week)
	assert.InDelta(t, 7.0, weekly.Items[0].PaidHours, 1e-9)
}

func TestMonth(t *testing.T) {
	router := loaded(t)

	view := decode[model.MonthView](t, do(router, http.MethodGet, "/month", ""))
	assert.Equal(t, 2026, view.Year)
	assert.Equal(t, time.October, view.Month)
	require.Len(t, view.Weeks, 1)
	assert.Len(t, view.Weeks[0].Days, 2)

	empty := decode[model.MonthView](t, do(router, http.MethodGet, "/month?month=2026-11", ""))
	assert.Empty(t, empty.Weeks)

	assert.Equal(t, http.StatusBadRequest, do(router, http.MethodGet, "/month?month=oct", "").Code)
}

func TestNextAndPaycheck(t *testing.T) {
	router := loaded(t)

	n := decode[model.NextShift](t, do(router, http.MethodGet, "/next", ""))
	assert.Equal(t, "2026-10-16", n.Shift.Date)
	assert.Equal(t, 33*time.Hour, n.Until)

	p := decode[model.PeriodTotal](t, do(router, http.MethodGet, "/paycheck", ""))
	assert.Equal(t, 41, p.LastWeek)
	assert.Equal(t, 42, p.CurrentWeek)

	empty, _ := newTestServer(t, stubLoader{body: samplePayload})
	assert.Equal(t, http.StatusNotFound, do(empty, http.MethodGet, "/next", "").Code)
}

func TestExportCSV(t *testing.T) {
	router := loaded(t)

	w := do(router, http.MethodGet, "/export.csv?source=walmart", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "my_schedule.csv")

	rows, err := csv.NewReader(w.Body).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"2026-10-12", "Stocking", "9:00AM", "5:00PM", "7.00", "97.09", "84.47"}, rows[1])
}

func TestReload(t *testing.T) {
	router, _ := newTestServer(t, stubLoader{body: samplePayload})

	w := do(router, http.MethodPost, "/reload", "")
	require.Equal(t, http.StatusOK, w.Code)
	got := decode[struct {
		Origin string `json:"origin"`
		Shifts int    `json:"shifts"`
	}](t, w)
	assert.Equal(t, "server", got.Origin)
	assert.Equal(t, 3, got.Shifts)

	failing, _ := newTestServer(t, stubLoader{err: errors.New("offline")})
	assert.Equal(t, http.StatusBadGateway, do(failing, http.MethodPost, "/reload", "").Code)
}

func TestSettings(t *testing.T) {
	router := loaded(t)

	got := decode[domain.Settings](t, do(router, http.MethodGet, "/settings", ""))
	assert.InDelta(t, domain.DefaultWalmartRate, got.Rates[domain.SourceWalmart], 1e-9)

	w := do(router, http.MethodPut, "/settings", `{"rates": {"walmart": 20}, "takeHomePercent": 50}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	got = decode[domain.Settings](t, w)
	assert.InDelta(t, 20.0, got.Rates[domain.SourceWalmart], 1e-9)
	assert.InDelta(t, domain.DefaultCanesRate, got.Rates[domain.SourceCanes], 1e-9)
	assert.InDelta(t, 50.0, got.TakeHomePercent, 1e-9)

	// The rebuild prices the last payload with the new rate.
	shifts := decode[struct {
		Items []domain.Shift `json:"items"`
	}](t, do(router, http.MethodGet, "/shifts?source=walmart", ""))
	require.Len(t, shifts.Items, 1)
	assert.InDelta(t, 140.0, shifts.Items[0].GrossPay, 1e-9)
	assert.InDelta(t, 70.0, shifts.Items[0].NetPay, 1e-9)

	// Source keys are matched case-insensitively and stored canonically.
	w = do(router, http.MethodPut, "/settings", `{"rates": {" Walmart ": 18}}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	got = decode[domain.Settings](t, w)
	assert.InDelta(t, 18.0, got.Rates[domain.SourceWalmart], 1e-9)
	assert.Len(t, got.Rates, 2)

	for _, body := range []string{
		`{"rates": {"target": 10}}`,
		`{"rates": {"all": 10}}`,
		`{"rates": {"ALL": 10}}`,
		`{"rates": {"canes": -1}}`,
		`{"takeHomePercent": 0}`,
		`{"takeHomePercent": 120}`,
		`not json`,
	} {
		assert.Equal(t, http.StatusBadRequest, do(router, http.MethodPut, "/settings", body).Code, body)
	}
}

func TestHealth(t *testing.T) {
	router := loaded(t)
	got := decode[map[string]any](t, do(router, http.MethodGet, "/health", ""))
	assert.Equal(t, "ok", got["status"])
	assert.EqualValues(t, 3, got["shifts"])
}

func TestSettings_MixedCaseKeyIsPersistedCanonically(t *testing.T) {
	gin.SetMode(gin.TestMode)
	repo := &memSettings{}
	settings := domain.DefaultSettings()
	settings.Location = time.UTC
	svc := service.NewScheduleService(stubLoader{body: samplePayload}, repo, settings, nil)
	h := NewHandler(svc, nil)
	h.Now = func() time.Time { return testNow }
	router := NewRouter(h)

	w := do(router, http.MethodPut, "/settings", `{"rates": {"Walmart": 20}}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	require.NotNil(t, repo.saved)
	assert.Equal(t, map[domain.Source]float64{
		domain.SourceWalmart: 20,
		domain.SourceCanes:   domain.DefaultCanesRate,
	}, repo.saved.Rates)
}

type memSettings struct {
	saved *domain.Settings
}

func (m *memSettings) LoadSettings(ctx context.Context, base domain.Settings) (domain.Settings, error) {
	return base, nil
}

func (m *memSettings) SaveSettings(ctx context.Context, s domain.Settings) error {
	c := s.Clone()
	m.saved = &c
	return nil
}
