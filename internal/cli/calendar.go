package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/roadmap/pkg/core/calendar"
)

// calendarCommand creates the calendar helper command.
func (c *CLI) calendarCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Calendar arithmetic used by the timeline",
		Long: `Calendar arithmetic used by the timeline.

All dates are calendar days (YYYY-MM-DD); times of day and time zones play
no part. These helpers print exactly what the engine computes.`,
	}

	cmd.AddCommand(c.calendarWeekCommand())
	cmd.AddCommand(c.calendarDaysCommand())
	cmd.AddCommand(c.calendarAddCommand())
	cmd.AddCommand(c.calendarMonthCommand())

	return cmd
}

func parseDay(s string) (time.Time, error) {
	t, ok := calendar.Parse(s)
	if !ok {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD)", s)
	}
	return t, nil
}

// calendarWeekCommand creates the "calendar week" subcommand.
func (c *CLI) calendarWeekCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "week <date>",
		Short: "Print the ISO week number and the first Monday on or after a date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := parseDay(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "week %d\n", calendar.WeekNumber(d))
			fmt.Fprintf(out, "monday %s\n", calendar.Format(calendar.NextMonday(d)))
			return nil
		},
	}
}

// calendarDaysCommand creates the "calendar days" subcommand.
func (c *CLI) calendarDaysCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "days <from> <to>",
		Short: "Print the number of days between two dates",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := parseDay(args[0])
			if err != nil {
				return err
			}
			to, err := parseDay(args[1])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), calendar.DaysBetween(from, to))
			return nil
		},
	}
}

// calendarAddCommand creates the "calendar add" subcommand.
func (c *CLI) calendarAddCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "add <date> <days>",
		Short: "Add a (possibly negative) number of days to a date",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := parseDay(args[0])
			if err != nil {
				return err
			}
			n, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid day count %q: %w", args[1], err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), calendar.Format(calendar.AddDays(d, n)))
			return nil
		},
	}
}

// calendarMonthCommand creates the "calendar month" subcommand.
func (c *CLI) calendarMonthCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "month <date>",
		Short: "Print the month and quarter containing a date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := parseDay(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "month %s %s\n", calendar.Format(calendar.MonthStart(d)), calendar.Format(calendar.MonthEnd(d)))
			fmt.Fprintf(out, "quarter Q%d %s %s\n", calendar.Quarter(d),
				calendar.Format(calendar.QuarterStart(d)), calendar.Format(calendar.QuarterEnd(d)))
			return nil
		},
	}
}
