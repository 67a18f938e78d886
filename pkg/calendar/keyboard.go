package calendar

import (
	"strconv"
	"time"

	"gopkg.in/telebot.v3"
)

// Callback uniques used by the month grid.
const (
	UniqueDay  = "cal_day"
	UniquePrev = "cal_prev"
	UniqueNext = "cal_next"
	UniqueNoop = "cal_noop"
)

// CalendarController renders an inline month grid and turns its callbacks
// into a picked date.
type CalendarController struct {
	// Marked returns the days of the month that have shifts.
	Marked func(year int, month time.Month) map[int]bool
	OnDate func(date string, c telebot.Context) error
}

// ShowCalendar sends or edits the grid for the month containing now.
func (cc *CalendarController) ShowCalendar(c telebot.Context, now time.Time) error {
	return cc.SendCalendar(c, now.Year(), now.Month())
}

// SendCalendar edits the callback message when there is one, otherwise sends.
func (cc *CalendarController) SendCalendar(c telebot.Context, year int, month time.Month) error {
	var marked map[int]bool
	if cc.Marked != nil {
		marked = cc.Marked(year, month)
	}
	title, markup := BuildCalendar(year, month, marked)
	if c.Callback() != nil {
		return c.Edit(title, markup)
	}
	return c.Send(title, markup)
}

// BuildCalendar lays out a Monday-first grid. Marked days get a dot.
func BuildCalendar(year int, month time.Month, marked map[int]bool) (string, *telebot.ReplyMarkup) {
	markup := &telebot.ReplyMarkup{}
	var rows []telebot.Row

	header := telebot.Row{}
	for _, d := range []string{"Mo", "Tu", "We", "Th", "Fr", "Sa", "Su"} {
		header = append(header, markup.Data(d, UniqueNoop))
	}
	rows = append(rows, header)

	week := telebot.Row{}
	lead := (int(time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Weekday()) + 6) % 7
	for i := 0; i < lead; i++ {
		week = append(week, markup.Data(" ", UniqueNoop))
	}
	for d := 1; d <= daysInMonth(year, month); d++ {
		label := strconv.Itoa(d)
		if marked[d] {
			label += "•"
		}
		date := FormatDate(time.Date(year, month, d, 0, 0, 0, 0, time.UTC))
		week = append(week, markup.Data(label, UniqueDay, date))
		if len(week) == 7 {
			rows = append(rows, week)
			week = telebot.Row{}
		}
	}
	if len(week) > 0 {
		for len(week) < 7 {
			week = append(week, markup.Data(" ", UniqueNoop))
		}
		rows = append(rows, week)
	}

	prev := time.Date(year, month-1, 1, 0, 0, 0, 0, time.UTC)
	next := time.Date(year, month+1, 1, 0, 0, 0, 0, time.UTC)
	rows = append(rows, telebot.Row{
		markup.Data("<", UniquePrev, MonthKey(prev.Year(), prev.Month())),
		markup.Data(">", UniqueNext, MonthKey(next.Year(), next.Month())),
	})
	markup.Inline(rows...)

	title := "Pick a day: " + month.String() + " " + strconv.Itoa(year)
	return title, markup
}

// Handle dispatches a cal_* callback. The router hands it the key and payload.
func (cc *CalendarController) Handle(c telebot.Context, key, payload string) error {
	switch key {
	case UniqueDay:
		if _, ok := ParseDate(payload, time.UTC); !ok {
			return c.Send("Bad date")
		}
		if cc.OnDate != nil {
			return cc.OnDate(payload, c)
		}
		return nil
	case UniquePrev, UniqueNext:
		year, month, ok := ParseMonthKey(payload)
		if !ok {
			return c.Send("Bad month")
		}
		return cc.SendCalendar(c, year, month)
	}
	return nil
}
