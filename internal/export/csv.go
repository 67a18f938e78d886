// Package export serializes a shift list for spreadsheets.
package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"shift-tracker/internal/domain"
)

// FileName is the suggested download name.
const FileName = "my_schedule.csv"

var header = []string{"Date", "Job", "Start", "End", "Paid Hours", "Gross Pay", "Net Pay"}

// WriteCSV writes one row per shift, numbers with two decimals.
func WriteCSV(w io.Writer, shifts []domain.Shift) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, s := range shifts {
		if err := cw.Write([]string{
			s.Date,
			s.Job,
			s.Start,
			s.End,
			money(s.PaidHours),
			money(s.GrossPay),
			money(s.NetPay),
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func money(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
