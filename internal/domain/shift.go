package domain

// Source tags where a shift came from. It drives rate lookup, filtering and
// display styling.
type Source string

const (
	SourceWalmart Source = "walmart"
	SourceCanes   Source = "canes"

	// SourceAll is the filter value that keeps every source.
	SourceAll Source = "all"
)

// NotAvailable stands in for a missing start or end time.
const NotAvailable = "N/A"

// Sources lists the concrete sources in display order.
func Sources() []Source {
	return []Source{SourceWalmart, SourceCanes}
}

// Shift is one scheduled block of work on one calendar date. Only the overlap
// detector writes HasOverlap; everything else treats a Shift as read-only.
type Shift struct {
	Date          string  `json:"date"`
	Start         string  `json:"start"`
	End           string  `json:"end"`
	DurationHours float64 `json:"durationHours"`
	PaidHours     float64 `json:"paidHours"`
	GrossPay      float64 `json:"grossPay"`
	NetPay        float64 `json:"netPay"`
	Job           string  `json:"job"`
	Source        Source  `json:"source"`
	HasOverlap    bool    `json:"hasOverlap"`
}
