// Package ui implements the roster command line.
package ui

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/roster/internal/config"
	"github.com/javiermolinar/roster/internal/dateutil"
	"github.com/javiermolinar/roster/internal/db"
	"github.com/javiermolinar/roster/internal/grid"
	"github.com/javiermolinar/roster/internal/logging"
	"github.com/javiermolinar/roster/internal/roster"
	"github.com/javiermolinar/roster/internal/tui"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// App holds the CLI application state.
type App struct {
	config   *config.Config
	root     *cobra.Command
	debug    bool   // Enable debug logging
	date     string // --date, empty means today
	interval int    // --interval, zero keeps the configured value
	now      func() time.Time
}

// NewApp creates a new CLI application with the given config.
func NewApp(cfg *config.Config) *App {
	if cfg == nil {
		cfg = config.Default()
	}
	a := &App{config: cfg, now: time.Now}

	a.root = &cobra.Command{
		Use:   "roster",
		Short: "A terminal roster planner",
		Long: `Roster shows a day as a grid of time slots and counters.

Assign employees to counters, move and resize their shifts, and undo
any change. Overlapping shifts on a counter are flagged, never blocked.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          a.runTUI,
	}

	// Add global flags
	a.root.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug logging (logs to "+logging.DebugFile+")")
	a.root.PersistentFlags().StringVar(&a.date, "date", "", "Day to open (YYYY-MM-DD, today, tomorrow, monday...)")
	a.root.PersistentFlags().IntVar(&a.interval, "interval", 0, fmt.Sprintf("Slot width in minutes, one of %v", grid.AllowedIntervals))

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.configCmd())
	a.root.AddCommand(a.slotsCmd())
	a.root.AddCommand(a.checkCmd())

	return a
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "roster %s (commit: %s)\n", Version, Commit)
		},
	}
}

func (a *App) runTUI(_ *cobra.Command, _ []string) error {
	cfg, err := a.effectiveConfig()
	if err != nil {
		return err
	}
	day, err := a.day()
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

	return tui.Run(session, cfg, tui.WithDay(day), tui.WithLogger(logger))
}

// effectiveConfig applies the command line overrides to a copy of the config.
func (a *App) effectiveConfig() (*config.Config, error) {
	cfg := *a.config
	if a.interval != 0 {
		if !grid.ValidInterval(a.interval) {
			return nil, fmt.Errorf("%w: must be one of %v, got %d", errInvalidInterval, grid.AllowedIntervals, a.interval)
		}
		cfg.Roster.IntervalMinutes = a.interval
	}
	return &cfg, nil
}

// day resolves --date against the current time.
func (a *App) day() (time.Time, error) {
	now := a.now()
	if a.date == "" {
		return grid.DayStart(now), nil
	}
	day, err := dateutil.ParseDay(a.date, now)
	if err != nil {
		return time.Time{}, fmt.Errorf("--date: %w", err)
	}
	return day, nil
}

var errInvalidInterval = errors.New("invalid interval")

// newSession opens an in-memory session over the configured directory.
func newSession(cfg *config.Config, logger *slog.Logger) (*roster.Session, func() error, error) {
	dir, err := cfg.Directory()
	if err != nil {
		return nil, nil, fmt.Errorf("building directory: %w", err)
	}
	repo, err := db.NewMemory()
	if err != nil {
		return nil, nil, fmt.Errorf("opening session store: %w", err)
	}
	return roster.NewSession(repo, dir, roster.WithLogger(logger)), repo.Close, nil
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.root.Execute()
}
