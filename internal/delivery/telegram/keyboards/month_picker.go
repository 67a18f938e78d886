package keyboards

import (
	"fmt"
	"strconv"
	"time"

	"gopkg.in/telebot.v3"

	"shift-tracker/internal/domain"
	"shift-tracker/pkg/calendar"
)

// Callback uniques owned by the schedule flow.
const (
	UniquePickMonth   = "pick_month"
	UniqueMonthPrev   = "month_prev"
	UniqueMonthNext   = "month_next"
	UniqueMonthFilter = "month_filter"
	UniqueOtherMonth  = "other_month"
)

func BuildMonthKeyboard(year int) (string, *telebot.ReplyMarkup) {
	markup := &telebot.ReplyMarkup{}

	rows := []telebot.Row{}
	for i := 1; i <= 12; i += 3 {
		row := telebot.Row{}
		for m := i; m < i+3; m++ {
			month := time.Month(m)
			row = append(row, markup.Data(month.String()[:3], UniquePickMonth, calendar.MonthKey(year, month)))
		}
		rows = append(rows, row)
	}

	prev := markup.Data("← "+strconv.Itoa(year-1), UniqueMonthPrev, strconv.Itoa(year))
	next := markup.Data(strconv.Itoa(year+1)+" →", UniqueMonthNext, strconv.Itoa(year))
	rows = append(rows, markup.Row(prev, next))

	markup.Inline(rows...)
	title := fmt.Sprintf("Pick a month: %d", year)
	return title, markup
}

// BuildFilterKeyboard is shown under a month listing. The active filter is
// ticked; payloads carry "YYYY-MM|source".
func BuildFilterKeyboard(year int, month time.Month, active domain.Source) *telebot.ReplyMarkup {
	markup := &telebot.ReplyMarkup{}
	key := calendar.MonthKey(year, month)

	filters := telebot.Row{}
	for _, src := range append([]domain.Source{domain.SourceAll}, domain.Sources()...) {
		label := filterLabel(src)
		if src == active {
			label = "✓ " + label
		}
		filters = append(filters, markup.Data(label, UniqueMonthFilter, key, string(src)))
	}

	prev := time.Date(year, month-1, 1, 0, 0, 0, 0, time.UTC)
	next := time.Date(year, month+1, 1, 0, 0, 0, 0, time.UTC)
	nav := markup.Row(
		markup.Data("<", UniquePickMonth, calendar.MonthKey(prev.Year(), prev.Month()), string(active)),
		markup.Data("Months", UniqueOtherMonth, strconv.Itoa(year)),
		markup.Data(">", UniquePickMonth, calendar.MonthKey(next.Year(), next.Month()), string(active)),
	)
	markup.Inline(filters, nav)
	return markup
}

func filterLabel(src domain.Source) string {
	switch src {
	case domain.SourceWalmart:
		return "Walmart"
	case domain.SourceCanes:
		return "Cane's"
	default:
		return "All Jobs"
	}
}
