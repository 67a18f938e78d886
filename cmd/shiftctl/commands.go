package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"shift-tracker/internal/app/service"
	"shift-tracker/internal/delivery/views"
	"shift-tracker/internal/domain"
	"shift-tracker/internal/export"
	"shift-tracker/pkg/calendar"
)

// report wraps a renderer that needs the filtered shifts.
func report(o *options, render func(shifts []domain.Shift) string) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		source, err := o.filter()
		if err != nil {
			return err
		}
		sched, _, err := o.load(cmd)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), render(service.FilterBySource(sched.Shifts, source)))
		return err
	}
}

func newSummaryCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Date range, paid hours and pay over all shifts",
		Args:  cobra.NoArgs,
		RunE: report(o, func(shifts []domain.Shift) string {
			return views.FormatSummary(service.Summarize(shifts))
		}),
	}
}

func newDailyCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "daily",
		Short: "Totals per calendar date",
		Args:  cobra.NoArgs,
		RunE: report(o, func(shifts []domain.Shift) string {
			return views.FormatDaily(service.DailyTotals(shifts))
		}),
	}
}

func newWeeklyCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "weekly",
		Short: "Totals per ISO week",
		Args:  cobra.NoArgs,
		RunE: report(o, func(shifts []domain.Shift) string {
			return views.FormatWeekly(service.WeeklyTotals(shifts))
		}),
	}
}

func newMonthCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "month [YYYY-MM]",
		Short: "List one month grouped by week (default: the month of --now)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := o.filter()
			if err != nil {
				return err
			}
			sched, now, err := o.load(cmd)
			if err != nil {
				return err
			}
			year, month, _ := now.In(sched.Settings.Loc()).Date()
			if len(args) == 1 {
				var ok bool
				if year, month, ok = calendar.ParseMonthKey(args[0]); !ok {
					return fmt.Errorf("month must be YYYY-MM, got %q", args[0])
				}
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), views.FormatMonth(sched.Month(year, month, source)))
			return err
		},
	}
}

func newPaycheckCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "paycheck",
		Short: "Estimate the next paycheck from last and current week",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sched, now, err := o.load(cmd)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), views.FormatPaycheck(sched.Period(now)))
			return err
		},
	}
}

func newNextCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "next",
		Short: "Time until the next shift starts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sched, now, err := o.load(cmd)
			if err != nil {
				return err
			}
			next, ok := sched.Next(now)
			_, err = fmt.Fprintln(cmd.OutOrStdout(), views.FormatNext(next, ok))
			return err
		},
	}
}

func newExportCmd(o *options) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the shift list as CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := o.filter()
			if err != nil {
				return err
			}
			sched, _, err := o.load(cmd)
			if err != nil {
				return err
			}
			shifts := service.FilterBySource(sched.Shifts, source)
			if out == "" || out == "-" {
				return export.WriteCSV(cmd.OutOrStdout(), shifts)
			}
			f, err := os.Create(out)
			if err != nil {
				return err
			}
			if err := export.WriteCSV(f, shifts); err != nil {
				f.Close()
				return err
			}
			return f.Close()
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file, - for stdout (default: stdout)")
	return cmd
}
