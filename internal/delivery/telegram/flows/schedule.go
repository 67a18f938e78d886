package flows

import (
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"gopkg.in/telebot.v3"

	"shift-tracker/internal/app/service"
	"shift-tracker/internal/delivery/telegram/keyboards"
	"shift-tracker/internal/delivery/telegram/middleware"
	"shift-tracker/internal/delivery/telegram/router"
	"shift-tracker/internal/delivery/views"
	"shift-tracker/internal/domain"
	"shift-tracker/pkg/calendar"
)

// RegisterSchedule wires the month picker and the per-month list with its
// source filter.
func RegisterSchedule(r *router.CallbackRouter, schedule *service.ScheduleService, log *zap.Logger) {
	showYear := func(c telebot.Context, year int) error {
		title, markup := keyboards.BuildMonthKeyboard(year)
		return middleware.EditOrSend(c, title, markup)
	}

	r.Register(keyboards.UniqueOtherMonth, func(c telebot.Context, payload string) error {
		y, err := strconv.Atoi(payload)
		if err != nil {
			y = time.Now().Year()
		}
		return showYear(c, y)
	})
	r.Register(keyboards.UniqueMonthPrev, func(c telebot.Context, payload string) error {
		y, _ := strconv.Atoi(payload)
		return showYear(c, y-1)
	})
	r.Register(keyboards.UniqueMonthNext, func(c telebot.Context, payload string) error {
		y, _ := strconv.Atoi(payload)
		return showYear(c, y+1)
	})

	showMonth := func(c telebot.Context, payload string) error {
		monthKey, src, _ := strings.Cut(payload, "|")
		year, month, ok := calendar.ParseMonthKey(monthKey)
		if !ok {
			log.Debug("bad month key", zap.String("payload", payload))
			return nil
		}
		source := ParseSource(src)
		text := views.FormatMonth(schedule.Current().Month(year, month, source))
		return middleware.EditOrSend(c, text, keyboards.BuildFilterKeyboard(year, month, source))
	}
	r.Register(keyboards.UniquePickMonth, showMonth)
	r.Register(keyboards.UniqueMonthFilter, showMonth)
}

// ParseSource maps a filter payload to a source. Unknown values mean all.
func ParseSource(s string) domain.Source {
	for _, src := range domain.Sources() {
		if string(src) == strings.ToLower(strings.TrimSpace(s)) {
			return src
		}
	}
	return domain.SourceAll
}
