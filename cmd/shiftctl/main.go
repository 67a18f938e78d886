// Command shiftctl prints schedule reports from a saved combined payload.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"shift-tracker/config"
	"shift-tracker/internal/app/service"
	"shift-tracker/internal/domain"
	"shift-tracker/internal/fetch"
	"shift-tracker/internal/logging"
)

// options holds the persistent flags shared by every report.
type options struct {
	payload     string
	walmartRate float64
	canesRate   float64
	takeHome    float64
	tz          string
	now         string
	source      string
	verbose     bool

	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:   "shiftctl",
		Short: "Reports over a combined Walmart and Cane's schedule payload",
		Long: `shiftctl normalizes a saved combined schedule payload and prints
totals, the next shift or a CSV export.

Rates and take-home default to the bot's configuration (.env, SETTINGS_FILE
and environment) and can be overridden per run.

Example:
  shiftctl summary --payload combined_schedule.json --canes-rate 15
  shiftctl weekly --source walmart
  shiftctl export --out my_schedule.csv`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := "warn"
			if opts.verbose {
				level = "debug"
			}
			var err error
			opts.logger, err = logging.New(level)
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if opts.logger != nil {
				_ = opts.logger.Sync()
			}
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.payload, "payload", "", "combined payload JSON file (default: FALLBACK_FILE)")
	flags.Float64Var(&opts.walmartRate, "walmart-rate", 0, "hourly rate for Walmart shifts")
	flags.Float64Var(&opts.canesRate, "canes-rate", 0, "hourly rate for Cane's shifts")
	flags.Float64Var(&opts.takeHome, "take-home", 0, "take-home percent of gross pay")
	flags.StringVar(&opts.tz, "tz", "", "IANA time zone for shift times (default: TIMEZONE or local)")
	flags.StringVar(&opts.now, "now", "", "reference time, RFC3339 or YYYY-MM-DDTHH:MM (default: current time)")
	flags.StringVar(&opts.source, "source", "all", "filter: all, walmart or canes")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging to stderr")

	root.AddCommand(
		newSummaryCmd(opts),
		newDailyCmd(opts),
		newWeeklyCmd(opts),
		newMonthCmd(opts),
		newPaycheckCmd(opts),
		newNextCmd(opts),
		newExportCmd(opts),
	)
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// settings layers the flags the user set over the loaded configuration.
func (o *options) settings(cmd *cobra.Command, base domain.Settings) (domain.Settings, error) {
	s := base.Clone()
	flags := cmd.Flags()
	if flags.Changed("walmart-rate") {
		s.Rates[domain.SourceWalmart] = o.walmartRate
	}
	if flags.Changed("canes-rate") {
		s.Rates[domain.SourceCanes] = o.canesRate
	}
	if flags.Changed("take-home") {
		s.TakeHomePercent = o.takeHome
	}
	if o.tz != "" {
		loc, err := time.LoadLocation(o.tz)
		if err != nil {
			return domain.Settings{}, fmt.Errorf("--tz: %w", err)
		}
		s.Location = loc
	}
	return s, nil
}

func (o *options) reference(loc *time.Location) (time.Time, error) {
	if o.now == "" {
		return time.Now(), nil
	}
	if t, err := time.Parse(time.RFC3339, o.now); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation("2006-01-02T15:04", o.now, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("--now: want RFC3339 or YYYY-MM-DDTHH:MM, got %q", o.now)
	}
	return t, nil
}

// load builds the schedule for one report run.
func (o *options) load(cmd *cobra.Command) (service.Schedule, time.Time, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return service.Schedule{}, time.Time{}, err
	}
	settings, err := o.settings(cmd, cfg.Settings)
	if err != nil {
		return service.Schedule{}, time.Time{}, err
	}
	now, err := o.reference(settings.Loc())
	if err != nil {
		return service.Schedule{}, time.Time{}, err
	}

	path := o.payload
	if path == "" {
		path = cfg.FallbackFile
	}
	snap, err := fetch.NewLoader("", path, nil, o.logger).LoadFile()
	if err != nil {
		return service.Schedule{}, time.Time{}, fmt.Errorf("read payload %s: %w", path, err)
	}
	sched, err := service.NewScheduleService(nil, nil, settings, o.logger).Apply(snap, now)
	if err != nil {
		return service.Schedule{}, time.Time{}, err
	}
	o.logger.Debug("schedule loaded", zap.String("path", path), zap.Int("shifts", len(sched.Shifts)))
	return sched, now, nil
}

func (o *options) filter() (domain.Source, error) {
	switch s := domain.Source(o.source); s {
	case "", domain.SourceAll:
		return domain.SourceAll, nil
	case domain.SourceWalmart, domain.SourceCanes:
		return s, nil
	default:
		return "", fmt.Errorf("--source: unknown source %q", o.source)
	}
}
