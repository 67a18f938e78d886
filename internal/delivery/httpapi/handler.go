// Package httpapi exposes the built schedule over HTTP for dashboards and
// spreadsheets.
package httpapi

import (
	"errors"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"shift-tracker/internal/app/service"
	"shift-tracker/internal/domain"
	"shift-tracker/internal/export"
	"shift-tracker/pkg/calendar"
)

type Handler struct {
	Schedule *service.ScheduleService
	Log      *zap.Logger
	Now      func() time.Time
}

func NewHandler(schedule *service.ScheduleService, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{Schedule: schedule, Log: log, Now: time.Now}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/health", h.health)
	rg.GET("/shifts", h.shifts)           // GET /shifts?source=canes
	rg.GET("/month", h.month)             // GET /month?month=2026-10&source=all
	rg.GET("/summary", h.summary)         // GET /summary?source=walmart
	rg.GET("/totals/daily", h.daily)      // GET /totals/daily?source=
	rg.GET("/totals/weekly", h.weekly)    // GET /totals/weekly?source=
	rg.GET("/paycheck", h.paycheck)       // GET /paycheck
	rg.GET("/next", h.next)               // GET /next
	rg.GET("/export.csv", h.exportCSV)    // GET /export.csv?source=
	rg.POST("/reload", h.reload)          // POST /reload
	rg.GET("/settings", h.getSettings)    // GET /settings
	rg.PUT("/settings", h.updateSettings) // PUT /settings
}

// NewRouter builds a gin engine with recovery and request logging to log.
func NewRouter(h *Handler) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(h.Log))
	h.RegisterRoutes(&router.RouterGroup)
	return router
}

func requestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Debug("http request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("took", time.Since(start)))
	}
}

func (h *Handler) health(c *gin.Context) {
	sched := h.Schedule.Current()
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"shifts":    len(sched.Shifts),
		"origin":    sched.Origin,
		"payloadId": sched.PayloadID,
		"builtAt":   sched.BuiltAt,
	})
}

// filtered returns the current shifts narrowed by ?source=. ok is false after
// a 400 has been written.
func (h *Handler) filtered(c *gin.Context) ([]domain.Shift, bool) {
	source, ok := parseSource(c.Query("source"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown source"})
		return nil, false
	}
	return service.FilterBySource(h.Schedule.Current().Shifts, source), true
}

func (h *Handler) shifts(c *gin.Context) {
	shifts, ok := h.filtered(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"total": len(shifts), "items": shifts})
}

func (h *Handler) month(c *gin.Context) {
	source, ok := parseSource(c.Query("source"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown source"})
		return
	}
	sched := h.Schedule.Current()
	year, month, _ := h.Now().In(sched.Settings.Loc()).Date()
	if key := c.Query("month"); key != "" {
		var valid bool
		year, month, valid = calendar.ParseMonthKey(key)
		if !valid {
			c.JSON(http.StatusBadRequest, gin.H{"error": "month must be YYYY-MM"})
			return
		}
	}
	c.JSON(http.StatusOK, sched.Month(year, month, source))
}

func (h *Handler) summary(c *gin.Context) {
	shifts, ok := h.filtered(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, service.Summarize(shifts))
}

func (h *Handler) daily(c *gin.Context) {
	shifts, ok := h.filtered(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": service.DailyTotals(shifts)})
}

func (h *Handler) weekly(c *gin.Context) {
	shifts, ok := h.filtered(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": service.WeeklyTotals(shifts)})
}

func (h *Handler) paycheck(c *gin.Context) {
	c.JSON(http.StatusOK, h.Schedule.Current().Period(h.Now()))
}

func (h *Handler) next(c *gin.Context) {
	n, ok := h.Schedule.Current().Next(h.Now())
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "no upcoming shifts"})
		return
	}
	c.JSON(http.StatusOK, n)
}

func (h *Handler) exportCSV(c *gin.Context) {
	shifts, ok := h.filtered(c)
	if !ok {
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+export.FileName+`"`)
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Status(http.StatusOK)
	if err := export.WriteCSV(c.Writer, shifts); err != nil {
		h.Log.Error("export csv", zap.Error(err))
	}
}

func (h *Handler) reload(c *gin.Context) {
	sched, err := h.Schedule.Reload(c.Request.Context(), h.Now())
	switch {
	case errors.Is(err, service.ErrBusy):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	case err != nil:
		h.Log.Warn("reload failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "could not load schedule data"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"origin":    sched.Origin,
		"payloadId": sched.PayloadID,
		"shifts":    len(sched.Shifts),
		"summary":   sched.Summary(),
	})
}

func (h *Handler) getSettings(c *gin.Context) {
	c.JSON(http.StatusOK, h.Schedule.Settings())
}

// settingsPatch is a partial update. Absent fields keep their value.
type settingsPatch struct {
	Rates           map[domain.Source]float64 `json:"rates"`
	TakeHomePercent *float64                  `json:"takeHomePercent"`
}

// normalize checks the patch and returns it with rate keys mapped to
// canonical source names.
func (p settingsPatch) normalize() (settingsPatch, error) {
	out := settingsPatch{Rates: make(map[domain.Source]float64, len(p.Rates)), TakeHomePercent: p.TakeHomePercent}
	for key, rate := range p.Rates {
		src, ok := parseSource(string(key))
		if !ok || src == domain.SourceAll {
			return settingsPatch{}, errors.New("unknown source " + string(key))
		}
		if !(rate > 0) || math.IsInf(rate, 0) {
			return settingsPatch{}, errors.New("rates must be positive")
		}
		out.Rates[src] = rate
	}
	if p.TakeHomePercent != nil {
		if v := *p.TakeHomePercent; !(v > 0 && v <= 100) {
			return settingsPatch{}, errors.New("takeHomePercent must be in (0, 100]")
		}
	}
	return out, nil
}

func (h *Handler) updateSettings(c *gin.Context) {
	var raw settingsPatch
	if err := c.ShouldBindJSON(&raw); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	patch, err := raw.normalize()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	sched, err := h.Schedule.UpdateSettings(c.Request.Context(), h.Now(), func(s *domain.Settings) {
		for src, rate := range patch.Rates {
			s.Rates[src] = rate
		}
		if patch.TakeHomePercent != nil {
			s.TakeHomePercent = *patch.TakeHomePercent
		}
	})
	if err != nil {
		h.Log.Error("update settings", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "save failed"})
		return
	}
	c.JSON(http.StatusOK, sched.Settings)
}

// parseSource accepts "", "all" and the concrete source names.
func parseSource(s string) (domain.Source, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || s == string(domain.SourceAll) {
		return domain.SourceAll, true
	}
	for _, src := range domain.Sources() {
		if string(src) == s {
			return src, true
		}
	}
	return "", false
}
