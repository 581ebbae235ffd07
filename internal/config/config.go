package config

import (
	"os"
	"path/filepath"
	"slices"

	"github.com/spf13/viper"

	"github.com/Iron-Ham/cohort/internal/roster"
)

// Config represents the complete cohort configuration
type Config struct {
	Engine  EngineConfig  `mapstructure:"engine" yaml:"engine"`
	Slots   []SlotConfig  `mapstructure:"slots" yaml:"slots"`
	Roster  RosterConfig  `mapstructure:"roster" yaml:"roster"`
	Report  ReportConfig  `mapstructure:"report" yaml:"report"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
}

// EngineConfig controls the assignment engine
type EngineConfig struct {
	// CapacityPerGroup is the number of individuals each group seats (default: 24)
	CapacityPerGroup int `mapstructure:"capacity_per_group" yaml:"capacity_per_group"`
	// TagStrategy selects how individuals without an affinity tag are labelled.
	// Options: "counter" (reproducible, default), "random"
	TagStrategy string `mapstructure:"tag_strategy" yaml:"tag_strategy"`
}

// SlotConfig describes one slot in the catalogue. Catalogue order is the
// order slots are packed in.
type SlotConfig struct {
	Name   string `mapstructure:"name" yaml:"name"`
	Groups int    `mapstructure:"groups" yaml:"groups"`
	// Aliases are extra words that select this slot in free-text answers
	Aliases []string `mapstructure:"aliases" yaml:"aliases,omitempty"`
}

// RosterConfig controls roster loading
type RosterConfig struct {
	// Columns maps fields to CSV header names
	Columns roster.Columns `mapstructure:"columns" yaml:"columns"`
	// Exclude lists glob patterns; individuals whose id matches are dropped
	Exclude []string `mapstructure:"exclude" yaml:"exclude"`
	// StrongMarkers are words that turn a slot answer into a strong preference
	StrongMarkers []string `mapstructure:"strong_markers" yaml:"strong_markers"`
}

// ReportConfig controls report output
type ReportConfig struct {
	// Format is the default output format. Options: "text", "json"
	Format string `mapstructure:"format" yaml:"format"`
	// Color enables styled text output
	Color bool `mapstructure:"color" yaml:"color"`
	// Width is the text report width in columns (0 = detect terminal width)
	Width int `mapstructure:"width" yaml:"width"`
}

// LoggingConfig controls debug logging behavior
type LoggingConfig struct {
	// Enabled controls whether logging is active (default: true)
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`
	// Level is the minimum log level. Options: "debug", "info", "warn", "error"
	Level string `mapstructure:"level" yaml:"level"`
	// Dir is the directory for cohort.log. Empty writes to stderr.
	Dir string `mapstructure:"dir" yaml:"dir"`
}

// Default returns a Config with sensible default values
func Default() *Config {
	return &Config{
		Engine: EngineConfig{
			CapacityPerGroup: 24,
			TagStrategy:      TagStrategyCounter,
		},
		Roster: RosterConfig{
			Columns:       roster.DefaultColumns(),
			Exclude:       []string{},
			StrongMarkers: slices.Clone(roster.DefaultStrongMarkers),
		},
		Report: ReportConfig{
			Format: FormatText,
			Color:  true,
			Width:  0,
		},
		Logging: LoggingConfig{
			Enabled: true,
			Level:   "warn",
			Dir:     "",
		},
	}
}

// Example returns the default configuration with a sample slot catalogue,
// as written by "cohort config init".
func Example() *Config {
	cfg := Default()
	cfg.Slots = []SlotConfig{
		{Name: "tuesday", Groups: 2, Aliases: []string{"tue", "tues"}},
		{Name: "thursday", Groups: 2, Aliases: []string{"thu", "thurs"}},
	}
	return cfg
}

// SetDefaults registers default values with viper
func SetDefaults() {
	defaults := Default()

	// Engine defaults
	viper.SetDefault("engine.capacity_per_group", defaults.Engine.CapacityPerGroup)
	viper.SetDefault("engine.tag_strategy", defaults.Engine.TagStrategy)

	// Roster defaults
	viper.SetDefault("roster.columns.id", defaults.Roster.Columns.ID)
	viper.SetDefault("roster.columns.name", defaults.Roster.Columns.Name)
	viper.SetDefault("roster.columns.preference", defaults.Roster.Columns.Preference)
	viper.SetDefault("roster.columns.affinity", defaults.Roster.Columns.Affinity)
	viper.SetDefault("roster.exclude", defaults.Roster.Exclude)
	viper.SetDefault("roster.strong_markers", defaults.Roster.StrongMarkers)

	// Report defaults
	viper.SetDefault("report.format", defaults.Report.Format)
	viper.SetDefault("report.color", defaults.Report.Color)
	viper.SetDefault("report.width", defaults.Report.Width)

	// Logging defaults
	viper.SetDefault("logging.enabled", defaults.Logging.Enabled)
	viper.SetDefault("logging.level", defaults.Logging.Level)
	viper.SetDefault("logging.dir", defaults.Logging.Dir)
}

// Load reads the configuration from viper into a Config struct
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	// Validate the configuration
	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	// Check XDG_CONFIG_HOME first
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "cohort")
	}
	// Fall back to ~/.config/cohort
	home, err := os.UserHomeDir()
	if err != nil {
		return ".cohort"
	}
	return filepath.Join(home, ".config", "cohort")
}

// ConfigFile returns the path to the config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// RosterSlots converts the slot catalogue into engine slots, in order
func (c *Config) RosterSlots() []roster.Slot {
	slots := make([]roster.Slot, 0, len(c.Slots))
	for _, s := range c.Slots {
		slots = append(slots, roster.Slot{Name: s.Name, Groups: s.Groups})
	}
	return slots
}

// SlotAliases returns the aliases of each slot keyed by slot name
func (c *Config) SlotAliases() map[string][]string {
	aliases := make(map[string][]string, len(c.Slots))
	for _, s := range c.Slots {
		if len(s.Aliases) > 0 {
			aliases[s.Name] = s.Aliases
		}
	}
	return aliases
}

// PreferenceParser builds a parser for free-text slot answers
func (c *Config) PreferenceParser() *roster.PreferenceParser {
	return roster.NewPreferenceParser(c.RosterSlots(), c.SlotAliases(), c.Roster.StrongMarkers)
}

// Loader builds a roster loader from the roster settings
func (c *Config) Loader() (*roster.Loader, error) {
	return roster.NewLoader(c.PreferenceParser(),
		roster.WithColumns(c.Roster.Columns),
		roster.WithExclude(c.Roster.Exclude...),
	)
}
