package telegram

import (
	"bytes"
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gopkg.in/telebot.v3"

	"shift-tracker/internal/app/service"
	"shift-tracker/internal/delivery/telegram/flows"
	"shift-tracker/internal/delivery/telegram/keyboards"
	"shift-tracker/internal/delivery/telegram/router"
	"shift-tracker/internal/delivery/views"
	"shift-tracker/internal/domain"
	"shift-tracker/internal/export"
	"shift-tracker/pkg/calendar"
)

const reloadTimeout = 30 * time.Second

type Handler struct {
	Bot         *telebot.Bot
	Schedule    *service.ScheduleService
	Async       *service.AsyncService
	Subscribers *service.SubscriberService
	Calendar    *calendar.CalendarController
	Router      *router.CallbackRouter
	Log         *zap.Logger
	Now         func() time.Time
}

var (
	btnSchedule = telebot.Btn{Text: "📅 Schedule"}
	btnCalendar = telebot.Btn{Text: "🗓 Calendar"}
	btnPaycheck = telebot.Btn{Text: "💰 Paycheck"}
	btnNext     = telebot.Btn{Text: "⏭ Next shift"}
	btnExport   = telebot.Btn{Text: "📄 Export CSV"}
	btnRefresh  = telebot.Btn{Text: "🔄 Refresh"}
)

func (h *Handler) Register() {
	if h.Log == nil {
		h.Log = zap.NewNop()
	}
	if h.Now == nil {
		h.Now = time.Now
	}
	if h.Router == nil {
		h.Router = router.New(h.Log)
	}
	if h.Calendar == nil {
		h.Calendar = &calendar.CalendarController{}
	}
	h.Calendar.Marked = func(year int, month time.Month) map[int]bool {
		return service.MarkedDays(h.Schedule.Current().Shifts, year, month)
	}
	h.Calendar.OnDate = h.showDay
	h.Router.CalDelegate = h.Calendar.Handle

	h.Bot.Handle("/start", h.handleStart)
	h.Bot.Handle("/stop", h.handleStop)
	h.Bot.Handle("/schedule", h.handleSchedule)
	h.Bot.Handle("/calendar", h.handleCalendar)
	h.Bot.Handle("/paycheck", h.handlePaycheck)
	h.Bot.Handle("/next", h.handleNext)
	h.Bot.Handle("/export", h.handleExport)
	h.Bot.Handle("/refresh", h.handleRefresh)
	h.Bot.Handle("/settings", h.handleSettings)
	h.Bot.Handle("/rate", h.handleRate)
	h.Bot.Handle("/takehome", h.handleTakeHome)

	h.Bot.Handle(telebot.OnText, func(c telebot.Context) error {
		switch c.Text() {
		case btnSchedule.Text:
			return h.handleSchedule(c)
		case btnCalendar.Text:
			return h.handleCalendar(c)
		case btnPaycheck.Text:
			return h.handlePaycheck(c)
		case btnNext.Text:
			return h.handleNext(c)
		case btnExport.Text:
			return h.handleExport(c)
		case btnRefresh.Text:
			return h.handleRefresh(c)
		}
		return nil
	})

	flows.RegisterSchedule(h.Router, h.Schedule, h.Log)
	h.Router.Attach(h.Bot)
}

func (h *Handler) handleStart(c telebot.Context) error {
	if h.Subscribers != nil && c.Chat() != nil {
		name := ""
		if c.Sender() != nil {
			name = c.Sender().FirstName
		}
		if err := h.Subscribers.Subscribe(context.Background(), c.Chat().ID, name); err != nil {
			h.Log.Warn("subscribe failed", zap.Int64("chat_id", c.Chat().ID), zap.Error(err))
		}
	}
	markup := &telebot.ReplyMarkup{ResizeKeyboard: true}
	markup.Reply(
		markup.Row(markup.Text(btnSchedule.Text), markup.Text(btnCalendar.Text)),
		markup.Row(markup.Text(btnPaycheck.Text), markup.Text(btnNext.Text)),
		markup.Row(markup.Text(btnExport.Text), markup.Text(btnRefresh.Text)),
	)
	return c.Send("Welcome! Your Walmart and Cane's shifts in one place.", markup)
}

func (h *Handler) handleStop(c telebot.Context) error {
	if h.Subscribers == nil || c.Chat() == nil {
		return nil
	}
	if err := h.Subscribers.Unsubscribe(context.Background(), c.Chat().ID); err != nil {
		h.Log.Warn("unsubscribe failed", zap.Int64("chat_id", c.Chat().ID), zap.Error(err))
		return c.Send("Could not unsubscribe, try again later.")
	}
	return c.Send("You will no longer get schedule updates. /start to resubscribe.")
}

// Notify sends the summary of sched to every subscribed chat.
func (h *Handler) Notify(ctx context.Context, sched service.Schedule) {
	if h.Subscribers == nil {
		return
	}
	subs, err := h.Subscribers.List(ctx)
	if err != nil {
		h.Log.Warn("list subscribers", zap.Error(err))
		return
	}
	text := "📅 Schedule updated.\n" + views.FormatSummary(sched.Summary())
	for _, sub := range subs {
		if _, err := h.Bot.Send(telebot.ChatID(sub.ChatID), text); err != nil {
			h.Log.Warn("notify subscriber", zap.Int64("chat_id", sub.ChatID), zap.Error(err))
		}
	}
}

// handleSchedule shows the current month with the summary header on top.
func (h *Handler) handleSchedule(c telebot.Context) error {
	sched := h.Schedule.Current()
	if sched.Empty() {
		return c.Send(views.NoShifts)
	}
	now := h.Now().In(sched.Settings.Loc())
	view := sched.Month(now.Year(), now.Month(), domain.SourceAll)
	text := views.FormatSummary(sched.Summary()) + "\n\n" + views.FormatMonth(view)
	return c.Send(text, keyboards.BuildFilterKeyboard(now.Year(), now.Month(), domain.SourceAll))
}

func (h *Handler) handleCalendar(c telebot.Context) error {
	now := h.Now().In(h.Schedule.Settings().Loc())
	return h.Calendar.ShowCalendar(c, now)
}

func (h *Handler) showDay(date string, c telebot.Context) error {
	shifts := service.ShiftsOn(h.Schedule.Current().Shifts, date)
	return c.Send(views.FormatDay(date, shifts))
}

func (h *Handler) handlePaycheck(c telebot.Context) error {
	sched := h.Schedule.Current()
	return c.Send(views.FormatPaycheck(sched.Period(h.Now())))
}

func (h *Handler) handleNext(c telebot.Context) error {
	next, ok := h.Schedule.Current().Next(h.Now())
	return c.Send(views.FormatNext(next, ok))
}

func (h *Handler) handleExport(c telebot.Context) error {
	sched := h.Schedule.Current()
	if sched.Empty() {
		return c.Send(views.NoShifts)
	}
	var buf bytes.Buffer
	if err := export.WriteCSV(&buf, sched.Shifts); err != nil {
		h.Log.Error("export csv", zap.Error(err))
		return c.Send("Could not build the CSV, try again later.")
	}
	return c.Send(&telebot.Document{
		File:     telebot.FromReader(&buf),
		FileName: export.FileName,
		MIME:     "text/csv",
	})
}

// handleRefresh reloads on the worker pool so the update loop is not held up
// by a slow schedule server.
func (h *Handler) handleRefresh(c telebot.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), reloadTimeout)
	defer cancel()

	res, err := h.Async.SubmitAsync(ctx, func() (any, error) {
		return h.Schedule.Reload(ctx, h.Now())
	})
	switch {
	case errors.Is(err, service.ErrBusy):
		return c.Send("Already refreshing, hang on.")
	case err != nil:
		h.Log.Warn("refresh failed", zap.Error(err))
		return c.Send("Error: Could not load schedule data.")
	}
	sched := res.(service.Schedule)
	return c.Send("Schedule updated from " + sched.Origin + ".\n" + views.FormatSummary(sched.Summary()))
}

func (h *Handler) handleSettings(c telebot.Context) error {
	return c.Send(views.FormatSettings(h.Schedule.Settings()))
}

// handleRate takes "/rate <walmart|canes> <dollars>".
func (h *Handler) handleRate(c telebot.Context) error {
	source, rate, err := ParseRateArgs(c.Args())
	if err != nil {
		return c.Send(err.Error())
	}
	return h.updateSettings(c, func(s *domain.Settings) { s.Rates[source] = rate })
}

// handleTakeHome takes "/takehome <percent>".
func (h *Handler) handleTakeHome(c telebot.Context) error {
	pct, err := ParseTakeHomeArgs(c.Args())
	if err != nil {
		return c.Send(err.Error())
	}
	return h.updateSettings(c, func(s *domain.Settings) { s.TakeHomePercent = pct })
}

func (h *Handler) updateSettings(c telebot.Context, change func(*domain.Settings)) error {
	ctx, cancel := context.WithTimeout(context.Background(), reloadTimeout)
	defer cancel()

	sched, err := h.Schedule.UpdateSettings(ctx, h.Now(), change)
	if err != nil {
		h.Log.Error("update settings", zap.Error(err))
		return c.Send("Could not save settings.")
	}
	return c.Send("Saved.\n" + views.FormatSettings(sched.Settings))
}
