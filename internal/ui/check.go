package ui

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/spf13/cobra"

	"github.com/javiermolinar/roster/internal/history"
	"github.com/javiermolinar/roster/internal/logging"
	"github.com/javiermolinar/roster/internal/plan"
	"github.com/javiermolinar/roster/internal/shift"
	"github.com/javiermolinar/roster/internal/tui/view"
)

var errInvalidPlan = errors.New("plan has invalid entries")

const (
	counterLabelWidth = 18
	minBarWidth       = 10
	maxBarWidth       = 48
)

func (a *App) checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check FILE",
		Short: "Replay a plan file and report overlaps and coverage",
		Long: `Load a TOML plan of shifts, apply each one as if it were entered in
the grid, and print the overlaps, the per-day counter coverage and the
resulting history.

Overlaps are warnings and do not change the exit status. Entries that
cannot be resolved are listed and make the command fail.

Plan format:
  [[shifts]]
  employee = "John Smith"      # id or name
  counter  = "Checkout 1"      # id or name
  start    = "2024-01-01 09:00"
  end      = "2024-01-01 17:00"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runCheck(cmd, args[0])
		},
	}
}

func (a *App) runCheck(cmd *cobra.Command, path string) error {
	cfg, err := a.effectiveConfig()
	if err != nil {
		return err
	}
	f, err := plan.Load(path)
	if err != nil {
		return err
	}

	logger, closeLog, err := logging.Open(cfg.Log, a.debug)
	if err != nil {
		return err
	}
	defer func() { _ = closeLog() }()

	session, closeSession, err := newSession(cfg, logger)
	if err != nil {
		return err
	}
	defer func() { _ = closeSession() }()

	planned, invalid := f.Resolve(session.Directory())
	report, err := plan.Apply(cmd.Context(), session, planned)
	if err != nil {
		return err
	}
	report.Invalid = invalid

	out := cmd.OutOrStdout()
	c := checkPrinter{
		out:      out,
		dir:      session.Directory(),
		interval: cfg.Roster.IntervalMinutes,
		width:    termWidth(),
	}
	c.summary(path, report)
	c.invalid(report.Invalid)
	c.overlaps(report)
	c.coverage(report)
	c.history(session.History())

	if len(report.Invalid) > 0 {
		return fmt.Errorf("%w: %d of %d", errInvalidPlan, len(report.Invalid), len(f.Shifts))
	}
	return nil
}

// checkPrinter writes the sections of a check report.
type checkPrinter struct {
	out      io.Writer
	dir      *shift.Directory
	interval int
	width    int
}

func (c checkPrinter) summary(path string, r *plan.Report) {
	fmt.Fprintln(c.out, formatHeader("Plan: "+path))
	line := fmt.Sprintf("  %d shifts applied", len(r.Applied))
	if n := len(r.Invalid); n > 0 {
		line += ", " + formatError(fmt.Sprintf("%d invalid", n))
	}
	if n := r.ConflictCount(); n > 0 {
		line += ", " + formatWarning(fmt.Sprintf("%d overlapping", n))
	} else {
		line += ", " + formatOK("no overlaps")
	}
	fmt.Fprintln(c.out, line)
}

func (c checkPrinter) invalid(errs []plan.ValidationError) {
	if len(errs) == 0 {
		return
	}
	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, formatHeader("Invalid entries"))
	for _, e := range errs {
		fmt.Fprintf(c.out, "  %s\n", formatError(e.Error()))
	}
}

func (c checkPrinter) overlaps(r *plan.Report) {
	byCounter := r.ConflictsByCounter()
	if len(byCounter) == 0 {
		return
	}
	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, formatHeader("Overlaps"))
	for _, ctr := range c.dir.Counters() {
		applied := byCounter[ctr.ID]
		if len(applied) == 0 {
			continue
		}
		fmt.Fprintf(c.out, "  %s\n", ctr.Name)
		for _, a := range applied {
			others := make([]string, len(a.Conflicts))
			for i, o := range a.Conflicts {
				others[i] = fmt.Sprintf("%s %s", c.employeeName(o.EmployeeID), view.FormatSpan(o.Start, o.End))
			}
			fmt.Fprintf(c.out, "    %s %s %s %s\n",
				a.Employee.Name,
				view.FormatSpan(a.Start, a.End),
				formatWarning("overlaps"),
				strings.Join(others, ", "),
			)
		}
	}
}

func (c checkPrinter) coverage(r *plan.Report) {
	shifts := r.Shifts()
	counters := c.dir.Counters()
	for _, day := range r.Days() {
		fmt.Fprintln(c.out)
		fmt.Fprintln(c.out, formatHeader(fmt.Sprintf("Coverage · %s · every %s",
			day.Format("Monday, Jan 2 2006"), view.FormatDuration(time.Duration(c.interval)*time.Minute))))
		for _, cov := range plan.DayCoverage(shifts, counters, day, c.interval) {
			fmt.Fprintf(c.out, "  %s %s %s\n",
				padRight(view.FitCell(cov.Counter.Name, counterLabelWidth), counterLabelWidth),
				c.bar(cov),
				formatMuted(fmt.Sprintf("%d/%d", cov.Occupied, cov.Total)),
			)
		}
	}
}

// bar draws the occupied share of a counter's day.
func (c checkPrinter) bar(cov plan.Coverage) string {
	width := min(max(c.width-counterLabelWidth-14, minBarWidth), maxBarWidth)
	filled := int(cov.Ratio()*float64(width) + 0.5)
	if cov.Occupied > 0 && filled == 0 {
		filled = 1
	}
	return formatOK(strings.Repeat("█", filled)) + formatMuted(strings.Repeat("░", width-filled))
}

func (c checkPrinter) history(entries []history.Entry) {
	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, formatHeader(fmt.Sprintf("History (%d)", len(entries))))
	if len(entries) == 0 {
		fmt.Fprintln(c.out, formatMuted("  No changes"))
		return
	}
	for _, e := range entries {
		fmt.Fprintf(c.out, "  %s  %s @ %s  %s\n",
			formatBadge(e.Action),
			e.EmployeeName,
			e.CounterName,
			formatMuted(e.Details),
		)
	}
}

func (c checkPrinter) employeeName(id string) string {
	if name, ok := c.dir.EmployeeName(id); ok {
		return name
	}
	return history.UnknownName
}

func padRight(s string, width int) string {
	if n := ansi.StringWidth(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}
