package model

import (
	"time"

	"shift-tracker/internal/domain"
)

type DailyTotal struct {
	Date      string  `json:"date"`
	Shifts    int     `json:"shifts"`
	PaidHours float64 `json:"paidHours"`
	GrossPay  float64 `json:"grossPay"`
	NetPay    float64 `json:"netPay"`
}

// WeeklyTotal is keyed by ISO week number alone, so the same number in two
// different years lands in one bucket.
type WeeklyTotal struct {
	Week      int     `json:"week"`
	PaidHours float64 `json:"paidHours"`
	GrossPay  float64 `json:"grossPay"`
	NetPay    float64 `json:"netPay"`
}

// PeriodTotal is the next-paycheck estimate over LastWeek and CurrentWeek.
type PeriodTotal struct {
	LastWeek    int     `json:"lastWeek"`
	CurrentWeek int     `json:"currentWeek"`
	GrossPay    float64 `json:"grossPay"`
	NetPay      float64 `json:"netPay"`
}

// Summary is the header line over the whole list. Empty is the "no shifts"
// state, not a failure.
type Summary struct {
	Empty     bool    `json:"empty"`
	Shifts    int     `json:"shifts"`
	FirstDate string  `json:"firstDate,omitempty"`
	LastDate  string  `json:"lastDate,omitempty"`
	PaidHours float64 `json:"paidHours"`
	GrossPay  float64 `json:"grossPay"`
	NetPay    float64 `json:"netPay"`
}

type NextShift struct {
	Shift    domain.Shift  `json:"shift"`
	StartsAt time.Time     `json:"startsAt"`
	Until    time.Duration `json:"until"`
}

// DayView is one day of a month listing.
type DayView struct {
	Total  DailyTotal     `json:"total"`
	Shifts []domain.Shift `json:"shifts"`
}

// WeekView groups the days of one ISO week inside a month listing. Total
// only counts days of that month.
type WeekView struct {
	Total WeeklyTotal `json:"total"`
	Days  []DayView   `json:"days"`
}

type MonthView struct {
	Year   int           `json:"year"`
	Month  time.Month    `json:"month"`
	Source domain.Source `json:"source"`
	Weeks  []WeekView    `json:"weeks"`
}
