package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"shift-tracker/internal/domain"
	"shift-tracker/internal/model"
)

// ErrBusy is returned when a reload is asked for while another is running.
var ErrBusy = errors.New("reload already in progress")

// Schedule is one completed pipeline run. Callers get their own copy of
// Shifts and must not expect later runs to update it.
type Schedule struct {
	Shifts    []domain.Shift  `json:"shifts"`
	Settings  domain.Settings `json:"settings"`
	Origin    string          `json:"origin"`
	PayloadID string          `json:"payloadId"`
	BuiltAt   time.Time       `json:"builtAt"`
}

func (s Schedule) Empty() bool { return len(s.Shifts) == 0 }

func (s Schedule) Summary() model.Summary { return Summarize(s.Shifts) }

func (s Schedule) Daily() []model.DailyTotal { return DailyTotals(s.Shifts) }

func (s Schedule) Weekly() []model.WeeklyTotal { return WeeklyTotals(s.Shifts) }

func (s Schedule) Period(now time.Time) model.PeriodTotal {
	return PeriodTotals(s.Shifts, s.Settings, now)
}

func (s Schedule) Next(now time.Time) (model.NextShift, bool) {
	return NextShift(s.Shifts, now, s.Settings.Loc())
}

func (s Schedule) Month(year int, month time.Month, source domain.Source) model.MonthView {
	return Month(s.Shifts, year, month, source)
}

// ScheduleService keeps the most recently completed schedule. Runs never
// overlap: a reload while another is in flight fails with ErrBusy, and the
// last run to finish is the one readers see.
type ScheduleService struct {
	Loader       domain.PayloadLoader
	SettingsRepo domain.SettingsRepo
	Normalizer   *Normalizer
	Log          *zap.Logger

	reloading atomic.Bool

	mu       sync.RWMutex
	settings domain.Settings
	payload  domain.Payload
	snap     domain.PayloadSnapshot
	current  Schedule
}

func NewScheduleService(loader domain.PayloadLoader, settingsRepo domain.SettingsRepo, settings domain.Settings, log *zap.Logger) *ScheduleService {
	if log == nil {
		log = zap.NewNop()
	}
	return &ScheduleService{
		Loader:       loader,
		SettingsRepo: settingsRepo,
		Normalizer:   NewNormalizer(log),
		Log:          log,
		settings:     settings.Clone(),
		current:      Schedule{Settings: settings.Clone()},
	}
}

// Init merges persisted settings over the configured ones.
func (s *ScheduleService) Init(ctx context.Context) error {
	if s.SettingsRepo == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	merged, err := s.SettingsRepo.LoadSettings(ctx, s.settings.Clone())
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}
	s.settings = merged
	return nil
}

// Reload pulls a payload from the loader and rebuilds the schedule from it.
func (s *ScheduleService) Reload(ctx context.Context, now time.Time) (Schedule, error) {
	if !s.reloading.CompareAndSwap(false, true) {
		return Schedule{}, ErrBusy
	}
	defer s.reloading.Store(false)

	snap, err := s.Loader.Load(ctx)
	if err != nil {
		return Schedule{}, err
	}
	return s.Apply(snap, now)
}

// Apply rebuilds the schedule from an already loaded snapshot.
func (s *ScheduleService) Apply(snap domain.PayloadSnapshot, now time.Time) (Schedule, error) {
	payload, err := domain.DecodePayload(snap.Body)
	if err != nil {
		return Schedule{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.payload = payload
	s.snap = snap
	s.rebuildLocked(now)
	return s.currentLocked(), nil
}

// UpdateSettings applies change to a copy of the settings, persists it and
// runs a fresh normalization pass over the last payload.
func (s *ScheduleService) UpdateSettings(ctx context.Context, now time.Time, change func(*domain.Settings)) (Schedule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.settings.Clone()
	change(&next)
	if s.SettingsRepo != nil {
		if err := s.SettingsRepo.SaveSettings(ctx, next); err != nil {
			return Schedule{}, fmt.Errorf("save settings: %w", err)
		}
	}
	s.settings = next
	s.Log.Info("settings updated",
		zap.Float64("walmart_rate", next.Rate(domain.SourceWalmart)),
		zap.Float64("canes_rate", next.Rate(domain.SourceCanes)),
		zap.Float64("take_home_percent", next.TakeHomePercent))
	if s.payload != nil {
		s.rebuildLocked(now)
	}
	return s.currentLocked(), nil
}

func (s *ScheduleService) Current() Schedule {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currentLocked()
}

func (s *ScheduleService) Settings() domain.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings.Clone()
}

func (s *ScheduleService) rebuildLocked(now time.Time) {
	settings := s.settings.Clone()
	shifts := s.Normalizer.BuildSchedule(s.payload, settings, now)
	s.current = Schedule{
		Shifts:    shifts,
		Settings:  settings,
		Origin:    s.snap.Origin,
		PayloadID: s.snap.ID,
		BuiltAt:   now,
	}
	s.Log.Info("schedule built",
		zap.String("origin", s.snap.Origin),
		zap.String("payload_id", s.snap.ID),
		zap.Int("shifts", len(shifts)))
}

func (s *ScheduleService) currentLocked() Schedule {
	out := s.current
	out.Shifts = append([]domain.Shift(nil), s.current.Shifts...)
	out.Settings = s.current.Settings.Clone()
	return out
}
