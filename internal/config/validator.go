package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/gobwas/glob"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // The config field path (e.g., "engine.capacity_per_group")
	Value   any    // The invalid value
	Message string // Human-readable error description
}

// Error implements the error interface for ValidationError
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for ValidationErrors
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e)))
	for i, err := range e {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// Tag strategies
const (
	TagStrategyCounter = "counter"
	TagStrategyRandom  = "random"
)

// Report formats
const (
	FormatText = "text"
	FormatJSON = "json"
)

// maxCapacityPerGroup bounds engine.capacity_per_group
const maxCapacityPerGroup = 10000

// ValidLogLevels returns the list of valid log levels
func ValidLogLevels() []string {
	return []string{"debug", "info", "warn", "error"}
}

// ValidTagStrategies returns the list of valid synthetic tag strategies
func ValidTagStrategies() []string {
	return []string{TagStrategyCounter, TagStrategyRandom}
}

// ValidReportFormats returns the list of valid report formats
func ValidReportFormats() []string {
	return []string{FormatText, FormatJSON}
}

// Validate checks the Config for invalid values and returns all validation errors found
func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	errors = append(errors, c.validateEngine()...)
	errors = append(errors, c.validateSlots()...)
	errors = append(errors, c.validateRoster()...)
	errors = append(errors, c.validateReport()...)
	errors = append(errors, c.validateLogging()...)

	return errors
}

// validateEngine validates the EngineConfig
func (c *Config) validateEngine() []ValidationError {
	var errors []ValidationError

	if c.Engine.CapacityPerGroup <= 0 {
		errors = append(errors, ValidationError{
			Field:   "engine.capacity_per_group",
			Value:   c.Engine.CapacityPerGroup,
			Message: "must be positive",
		})
	} else if c.Engine.CapacityPerGroup > maxCapacityPerGroup {
		errors = append(errors, ValidationError{
			Field:   "engine.capacity_per_group",
			Value:   c.Engine.CapacityPerGroup,
			Message: fmt.Sprintf("exceeds maximum of %d", maxCapacityPerGroup),
		})
	}

	if !slices.Contains(ValidTagStrategies(), c.Engine.TagStrategy) {
		errors = append(errors, ValidationError{
			Field:   "engine.tag_strategy",
			Value:   c.Engine.TagStrategy,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidTagStrategies(), ", ")),
		})
	}

	return errors
}

// validateSlots validates the slot catalogue. Slot names and aliases share
// one namespace since both select a slot from free text.
func (c *Config) validateSlots() []ValidationError {
	var errors []ValidationError
	owner := make(map[string]string) // lowercased name or alias -> slot

	claim := func(field, word, slot string) {
		key := strings.ToLower(strings.TrimSpace(word))
		if key == "" {
			errors = append(errors, ValidationError{
				Field:   field,
				Value:   word,
				Message: "must not be empty",
			})
			return
		}
		if prev, ok := owner[key]; ok && prev != slot {
			errors = append(errors, ValidationError{
				Field:   field,
				Value:   word,
				Message: fmt.Sprintf("already selects slot %q", prev),
			})
			return
		}
		owner[key] = slot
	}

	seen := make(map[string]bool, len(c.Slots))
	for i, s := range c.Slots {
		field := fmt.Sprintf("slots[%d]", i)

		if seen[s.Name] {
			errors = append(errors, ValidationError{
				Field:   field + ".name",
				Value:   s.Name,
				Message: "duplicate slot name",
			})
		} else {
			claim(field+".name", s.Name, s.Name)
		}
		seen[s.Name] = true

		if s.Groups <= 0 {
			errors = append(errors, ValidationError{
				Field:   field + ".groups",
				Value:   s.Groups,
				Message: "must be positive",
			})
		}

		for j, alias := range s.Aliases {
			claim(fmt.Sprintf("%s.aliases[%d]", field, j), alias, s.Name)
		}
	}

	return errors
}

// validateRoster validates the RosterConfig
func (c *Config) validateRoster() []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(c.Roster.Columns.ID) == "" {
		errors = append(errors, ValidationError{
			Field:   "roster.columns.id",
			Value:   c.Roster.Columns.ID,
			Message: "must not be empty",
		})
	}

	columns := []struct {
		field  string
		header string
	}{
		{"roster.columns.id", c.Roster.Columns.ID},
		{"roster.columns.name", c.Roster.Columns.Name},
		{"roster.columns.preference", c.Roster.Columns.Preference},
		{"roster.columns.affinity", c.Roster.Columns.Affinity},
	}
	used := make(map[string]string)
	for _, col := range columns {
		header := strings.ToLower(strings.TrimSpace(col.header))
		if header == "" {
			continue
		}
		if prev, ok := used[header]; ok {
			errors = append(errors, ValidationError{
				Field:   col.field,
				Value:   col.header,
				Message: fmt.Sprintf("same column as %s", prev),
			})
			continue
		}
		used[header] = col.field
	}

	for i, pattern := range c.Roster.Exclude {
		if _, err := glob.Compile(pattern); err != nil {
			errors = append(errors, ValidationError{
				Field:   fmt.Sprintf("roster.exclude[%d]", i),
				Value:   pattern,
				Message: fmt.Sprintf("invalid glob pattern: %v", err),
			})
		}
	}

	for i, marker := range c.Roster.StrongMarkers {
		if strings.TrimSpace(marker) == "" {
			errors = append(errors, ValidationError{
				Field:   fmt.Sprintf("roster.strong_markers[%d]", i),
				Value:   marker,
				Message: "must not be empty",
			})
		}
	}

	return errors
}

// validateReport validates the ReportConfig
func (c *Config) validateReport() []ValidationError {
	var errors []ValidationError

	if !slices.Contains(ValidReportFormats(), c.Report.Format) {
		errors = append(errors, ValidationError{
			Field:   "report.format",
			Value:   c.Report.Format,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidReportFormats(), ", ")),
		})
	}

	if c.Report.Width < 0 {
		errors = append(errors, ValidationError{
			Field:   "report.width",
			Value:   c.Report.Width,
			Message: "must be non-negative",
		})
	}

	return errors
}

// validateLogging validates the LoggingConfig
func (c *Config) validateLogging() []ValidationError {
	var errors []ValidationError

	// Validate log level
	if c.Logging.Level != "" && !slices.Contains(ValidLogLevels(), c.Logging.Level) {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Value:   c.Logging.Level,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidLogLevels(), ", ")),
		})
	}

	// Check for null bytes which are invalid in paths
	if strings.ContainsRune(c.Logging.Dir, '\x00') {
		errors = append(errors, ValidationError{
			Field:   "logging.dir",
			Value:   c.Logging.Dir,
			Message: "contains invalid null character",
		})
	}

	return errors
}
