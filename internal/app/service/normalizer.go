package service

import (
	"encoding/json"
	"sort"
	"time"

	"go.uber.org/zap"

	"shift-tracker/internal/domain"
	"shift-tracker/pkg/clock"
)

// SourceMapper turns one raw payload branch into shifts of a single source.
// A branch it cannot read yields no shifts, never an error.
type SourceMapper interface {
	Source() domain.Source
	Key() string
	Map(raw json.RawMessage, env MapEnv) []domain.Shift
}

// MapEnv is what a mapper may consult besides the raw branch.
type MapEnv struct {
	Settings domain.Settings
	Now      time.Time
	Log      *zap.Logger
}

type Normalizer struct {
	mappers []SourceMapper
	log     *zap.Logger
}

// NewNormalizer registers the given mappers, or the two built-in sources
// when none are passed.
func NewNormalizer(log *zap.Logger, mappers ...SourceMapper) *Normalizer {
	if log == nil {
		log = zap.NewNop()
	}
	if len(mappers) == 0 {
		mappers = []SourceMapper{WalmartMapper{}, CanesMapper{}}
	}
	return &Normalizer{mappers: mappers, log: log}
}

// Normalize maps every known branch of p, prices the shifts with settings
// and returns them sorted by (date, start).
func (n *Normalizer) Normalize(p domain.Payload, settings domain.Settings, now time.Time) []domain.Shift {
	env := MapEnv{Settings: settings, Now: now, Log: n.log}
	var shifts []domain.Shift
	for _, m := range n.mappers {
		raw, ok := p[m.Key()]
		if !ok || len(raw) == 0 {
			continue
		}
		mapped := m.Map(raw, env)
		n.log.Debug("mapped source branch",
			zap.String("source", string(m.Source())),
			zap.Int("shifts", len(mapped)))
		shifts = append(shifts, mapped...)
	}
	SortShifts(shifts)
	return shifts
}

// BuildSchedule is the full pass: normalize, then flag overlaps.
func (n *Normalizer) BuildSchedule(p domain.Payload, settings domain.Settings, now time.Time) []domain.Shift {
	shifts := n.Normalize(p, settings, now)
	DetectOverlaps(shifts)
	return shifts
}

// price fills pay fields from paid hours and the settings in force.
func price(s domain.Shift, settings domain.Settings) domain.Shift {
	s.GrossPay = s.PaidHours * settings.Rate(s.Source)
	s.NetPay = s.GrossPay * settings.TakeHome()
	return s
}

// SortShifts orders by date, then parsed start time. Within a date, shifts
// whose start does not parse go last; ties keep their input order.
func SortShifts(shifts []domain.Shift) {
	sort.SliceStable(shifts, func(i, j int) bool {
		a, b := shifts[i], shifts[j]
		if a.Date != b.Date {
			return a.Date < b.Date
		}
		as, aok := clock.Parse(a.Start)
		bs, bok := clock.Parse(b.Start)
		switch {
		case aok && bok:
			return as.Before(bs)
		case aok:
			return true
		default:
			return false
		}
	})
}
