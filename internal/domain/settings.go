package domain

import "time"

const (
	DefaultWalmartRate     = 13.87
	DefaultCanesRate       = 14.25
	DefaultTakeHomePercent = 87
)

// Settings is the pay configuration applied at normalization time. Changing
// it never touches shifts that were already built.
type Settings struct {
	Rates           map[Source]float64 `json:"rates" yaml:"rates"`
	TakeHomePercent float64            `json:"takeHomePercent" yaml:"take_home_percent"`
	Location        *time.Location     `json:"-" yaml:"-"`
}

func DefaultSettings() Settings {
	return Settings{
		Rates: map[Source]float64{
			SourceWalmart: DefaultWalmartRate,
			SourceCanes:   DefaultCanesRate,
		},
		TakeHomePercent: DefaultTakeHomePercent,
		Location:        time.Local,
	}
}

// Rate returns the hourly rate for source, 0 when unset.
func (s Settings) Rate(source Source) float64 {
	return s.Rates[source]
}

// TakeHome is the take-home fraction, TakeHomePercent/100.
func (s Settings) TakeHome() float64 {
	return s.TakeHomePercent / 100
}

// Loc never returns nil.
func (s Settings) Loc() *time.Location {
	if s.Location == nil {
		return time.Local
	}
	return s.Location
}

// Clone copies the rate map so the result can be changed independently.
func (s Settings) Clone() Settings {
	out := s
	out.Rates = make(map[Source]float64, len(s.Rates))
	for k, v := range s.Rates {
		out.Rates[k] = v
	}
	return out
}
