// Package config handles configuration loading from files, defaults, and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"

	"github.com/javiermolinar/roster/internal/dateutil"
	"github.com/javiermolinar/roster/internal/grid"
	"github.com/javiermolinar/roster/internal/shift"
	"github.com/javiermolinar/roster/internal/tui/theme"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "ROSTER_"

// Config holds the application configuration.
type Config struct {
	Roster    RosterConfig     `toml:"roster"`
	UI        UIConfig         `toml:"ui"`
	Log       LogConfig        `toml:"log"`
	Employees []shift.Employee `toml:"employees" validate:"unique=ID,dive"`
	Counters  []shift.Counter  `toml:"counters" validate:"unique=ID,dive"`
}

// RosterConfig holds grid settings.
type RosterConfig struct {
	IntervalMinutes int    `toml:"interval_minutes" env:"INTERVAL_MINUTES"` // one of 15, 30, 45, 60, 120, 240, 480
	ViewStart       string `toml:"view_start" env:"VIEW_START"`             // first visible row, "HH:MM"
}

// UIConfig holds TUI settings.
type UIConfig struct {
	Theme string `toml:"theme" env:"UI_THEME"` // "mocha", "macchiato", "frappe", "latte"
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string `toml:"level" env:"LOG_LEVEL"`   // debug, info, warn, error
	Format string `toml:"format" env:"LOG_FORMAT"` // text or json
	File   string `toml:"file" env:"LOG_FILE"`     // empty discards logs while the TUI runs
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Roster: RosterConfig{
			IntervalMinutes: grid.DefaultInterval,
			ViewStart:       "08:00",
		},
		UI: UIConfig{
			Theme: "mocha",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Employees: DefaultEmployees(),
		Counters:  DefaultCounters(),
	}
}

// DefaultEmployees returns the staff a fresh install starts with.
func DefaultEmployees() []shift.Employee {
	return []shift.Employee{
		{ID: "1", Name: "John Smith", Position: "Cashier", Color: "#89b4fa"},
		{ID: "2", Name: "Sarah Johnson", Position: "Manager", Color: "#f38ba8"},
		{ID: "3", Name: "Mike Brown", Position: "Stocker", Color: "#a6e3a1"},
		{ID: "4", Name: "Lisa Davis", Position: "Deli Worker", Color: "#fab387"},
		{ID: "5", Name: "David Wilson", Position: "Bakery", Color: "#cba6f7"},
		{ID: "6", Name: "Jennifer Lee", Position: "Produce", Color: "#94e2d5"},
		{ID: "7", Name: "Robert Taylor", Position: "Butcher", Color: "#eba0ac"},
		{ID: "8", Name: "Emily White", Position: "Cashier", Color: "#f9e2af"},
	}
}

// DefaultCounters returns the counters a fresh install starts with.
func DefaultCounters() []shift.Counter {
	return []shift.Counter{
		{ID: "1", Name: "Checkout 1", Description: "Main checkout counter"},
		{ID: "2", Name: "Checkout 2", Description: "Express lane (10 items or less)"},
		{ID: "3", Name: "Customer Service", Description: "Returns and customer inquiries"},
		{ID: "4", Name: "Deli Counter", Description: "Fresh meat and cheese service"},
		{ID: "5", Name: "Bakery", Description: "Fresh bread and pastries"},
		{ID: "6", Name: "Produce", Description: "Fruits and vegetables section"},
		{ID: "7", Name: "Butcher", Description: "Fresh meat counter"},
	}
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "roster", "config.toml")
}

// Load loads configuration from the default path, merging with defaults and env vars.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigPath())
}

// LoadFrom loads configuration from the specified path.
// It starts with defaults, overlays file config if it exists, then applies env overrides.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	// Try to load from file (not an error if it doesn't exist)
	if err := loadFromFile(path, cfg); err != nil {
		return nil, err
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	cfg.Log.File = expandPath(cfg.Log.File)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// loadFromFile loads config from a file if it exists.
// A file that lists employees or counters replaces the default lists.
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // File doesn't exist, use defaults
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	employees, counters := cfg.Employees, cfg.Counters
	cfg.Employees, cfg.Counters = nil, nil

	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	if cfg.Employees == nil {
		cfg.Employees = employees
	}
	if cfg.Counters == nil {
		cfg.Counters = counters
	}
	return nil
}

// applyEnvOverrides applies ROSTER_* environment variables.
// Environment variables take precedence over file config.
func applyEnvOverrides(cfg *Config) error {
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("reading environment: %w", err)
	}
	return nil
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if !grid.ValidInterval(c.Roster.IntervalMinutes) {
		return fmt.Errorf("interval_minutes must be one of %v, got %d", grid.AllowedIntervals, c.Roster.IntervalMinutes)
	}
	if _, err := dateutil.ParseClock(c.Roster.ViewStart); err != nil {
		return fmt.Errorf("view_start: %w", err)
	}
	if !theme.IsAvailable(c.UI.Theme) {
		return fmt.Errorf("unknown theme %q, available: %s", c.UI.Theme, strings.Join(theme.Available(), ", "))
	}
	if !isValidLevel(c.Log.Level) {
		return fmt.Errorf("invalid log level: %s", c.Log.Level)
	}
	if f := strings.ToLower(c.Log.Format); f != "text" && f != "json" {
		return fmt.Errorf("log format must be text or json, got %q", c.Log.Format)
	}
	if len(c.Counters) == 0 {
		return errors.New("at least one counter must be configured")
	}
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("directory: %w", err)
	}
	return nil
}

func isValidLevel(level string) bool {
	switch strings.ToLower(level) {
	case "debug", "info", "warn", "error":
		return true
	}
	return false
}

// Directory builds the employee and counter directory from the config.
func (c *Config) Directory() (*shift.Directory, error) {
	return shift.NewDirectory(c.Employees, c.Counters)
}

// Save writes the configuration to the default path.
func (c *Config) Save() error {
	return c.SaveTo(DefaultConfigPath())
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
