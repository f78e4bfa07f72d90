package cmd

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/grovetools/dash/pkg/calendar"
	"github.com/grovetools/dash/pkg/dashboard"
)

func parseDateArg(arg string) (time.Time, error) {
	if arg == "today" || arg == "" {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local), nil
	}
	d, err := calendar.ParseDateKey(arg)
	if err != nil {
		return time.Time{}, fmt.Errorf("bad date %q (want YYYY-MM-DD): %w", arg, err)
	}
	return d, nil
}

func NewCalCmd(svc **dashboard.Service) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cal",
		Short: "Manage the calendar",
	}

	cmd.AddCommand(newCalAddCmd(svc))
	cmd.AddCommand(newCalListCmd(svc))
	cmd.AddCommand(newCalRmCmd(svc))
	cmd.AddCommand(newCalMonthCmd(svc))
	cmd.AddCommand(newCalExportCmd(svc))
	cmd.AddCommand(newCalImportCmd(svc))

	return cmd
}

func newCalAddCmd(svc **dashboard.Service) *cobra.Command {
	return &cobra.Command{
		Use:   "add <date> <time> <title>",
		Short: "Add an event",
		Long: `Add an event on a date.

Examples:
  dash cal add 2026-09-01 09:00 "Standup"
  dash cal add today 12:30 "Lunch with Sam"`,
		Args: cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := parseDateArg(args[0])
			if err != nil {
				return err
			}
			if _, err := time.Parse("15:04", args[1]); err != nil {
				return fmt.Errorf("bad time %q (want HH:MM): %w", args[1], err)
			}
			title := strings.TrimSpace(strings.Join(args[2:], " "))
			if title == "" {
				return errors.New("event title must not be empty")
			}
			return (*svc).AddEvent(date, title, args[1])
		},
	}
}

func newCalListCmd(svc **dashboard.Service) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list [date]",
		Short:   "List events for a date, or every date",
		Aliases: []string{"ls"},
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			if len(args) == 1 {
				date, err := parseDateArg(args[0])
				if err != nil {
					return err
				}
				events := (*svc).EventsForDate(date)
				if len(events) == 0 {
					fmt.Fprintln(out, "No events")
					return nil
				}
				for _, ev := range events {
					fmt.Fprintf(out, "%s  %s  %s\n", ev.Time, ev.ID, ev.Title)
				}
				return nil
			}

			all := (*svc).Events()
			if len(all) == 0 {
				fmt.Fprintln(out, "No events")
				return nil
			}
			keys := make([]string, 0, len(all))
			for key := range all {
				keys = append(keys, key)
			}
			sort.Strings(keys)
			for _, key := range keys {
				fmt.Fprintf(out, "%s\n", key)
				for _, ev := range all[key] {
					fmt.Fprintf(out, "  %s  %s  %s\n", ev.Time, ev.ID, ev.Title)
				}
			}
			return nil
		},
	}
	return cmd
}

func newCalRmCmd(svc **dashboard.Service) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <date> <event-id>",
		Short:   "Delete an event",
		Aliases: []string{"delete"},
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := parseDateArg(args[0])
			if err != nil {
				return err
			}
			return (*svc).DeleteEvent(calendar.DateKey(date), args[1])
		},
	}
}

func newCalMonthCmd(svc **dashboard.Service) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "month [YYYY-MM]",
		Short: "Print the month grid with event counts",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cursor := time.Now()
			if len(args) == 1 {
				parsed, err := time.ParseInLocation("2006-01", args[0], time.Local)
				if err != nil {
					return fmt.Errorf("bad month %q (want YYYY-MM): %w", args[0], err)
				}
				cursor = parsed
			}

			month := calendar.NewMonth(cursor)
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, month.String())
			fmt.Fprintln(out, "Sun    Mon    Tue    Wed    Thu    Fri    Sat")

			days := month.Days()
			for i, day := range days {
				cell := fmt.Sprintf("%2d", day.Day())
				if !month.Contains(day) {
					cell = " ."
				}
				if n := len((*svc).EventsForDate(day)); n > 0 && month.Contains(day) {
					cell = fmt.Sprintf("%2d(%d)", day.Day(), n)
				}
				fmt.Fprintf(out, "%-7s", cell)
				if (i+1)%7 == 0 {
					fmt.Fprintln(out)
				}
			}
			return nil
		},
	}
	return cmd
}

func newCalExportCmd(svc **dashboard.Service) *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export all events as iCalendar",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			if outPath != "" {
				f, err := os.Create(outPath)
				if err != nil {
					return fmt.Errorf("create %s: %w", outPath, err)
				}
				defer f.Close()
				w = f
			}
			return calendar.WriteICS(w, (*svc).Events())
		},
	}

	cmd.Flags().StringVarP(&outPath, "output", "o", "", "Write to a file instead of stdout")
	return cmd
}

func newCalImportCmd(svc **dashboard.Service) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.ics>",
		Short: "Import events from an iCalendar file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open %s: %w", args[0], err)
			}
			defer f.Close()

			imported, err := calendar.ReadICS(f)
			if err != nil {
				return err
			}

			n := 0
			for key, list := range imported {
				date, err := calendar.ParseDateKey(key)
				if err != nil {
					continue
				}
				for _, ev := range list {
					if err := (*svc).AddEvent(date, ev.Title, ev.Time); err != nil {
						return err
					}
					n++
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d events\n", n)
			return nil
		},
	}
}
