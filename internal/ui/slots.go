package ui

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/roster/internal/grid"
	"github.com/javiermolinar/roster/internal/tui/view"
)

func (a *App) slotsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "slots",
		Short: "Print the slot boundaries of a day",
		Long: `Print the time slots the grid uses for a day.

Example:
  roster slots
  roster slots --date tomorrow --interval 45`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := a.effectiveConfig()
			if err != nil {
				return err
			}
			day, err := a.day()
			if err != nil {
				return err
			}

			interval := cfg.Roster.IntervalMinutes
			slots := grid.Slots(day, interval)
			out := cmd.OutOrStdout()

			fmt.Fprintln(out, formatHeader(fmt.Sprintf("%s · every %s · %d slots",
				view.DayTitle(day, a.now()), view.FormatDuration(time.Duration(interval)*time.Minute), len(slots))))
			for i, s := range slots {
				fmt.Fprintf(out, "%s  %s\n", formatMuted(fmt.Sprintf("%3d", i)), view.FormatSpan(s.Start, s.End))
			}
			return nil
		},
	}
}
