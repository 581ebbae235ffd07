// Package errors provides the error definitions used across cohort. It
// defines sentinel errors, typed errors that carry context about the input
// that caused them, and classification helpers for the CLI.
//
// # Error Types
//
// Domain-specific errors:
//   - CapacityError: a slot's constrained demand exceeds its total capacity.
//     Raised once, before any group is created or mutated.
//   - RosterError: a roster file could not be read or parsed.
//
// Semantic errors:
//   - ValidationError: invalid configuration or engine input.
//
// Over-capacity placements made by the packer are diagnostics, not errors;
// they never surface through this package.
//
// # Usage
//
//	err := errors.NewCapacityError("tuesday", 50, 48)
//	if errors.Is(err, errors.ErrCapacityExceeded) { ... }
//
//	var capErr *errors.CapacityError
//	if errors.As(err, &capErr) {
//	    fmt.Println(capErr.Slot, capErr.Demand, capErr.Capacity)
//	}
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Re-export standard library functions for convenience.
// This allows callers to import only this package for all error handling.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	New    = errors.New
	Join   = errors.Join
)

// Severity represents the severity level of an error.
type Severity int

const (
	// SeverityDebug is for errors that are useful for debugging but not critical.
	SeverityDebug Severity = iota
	// SeverityInfo is for informational errors that don't indicate a problem.
	SeverityInfo
	// SeverityWarning is for errors that might indicate a problem but aren't critical.
	SeverityWarning
	// SeverityError is for errors that indicate a real problem.
	SeverityError
	// SeverityCritical is for errors that require immediate attention.
	SeverityCritical
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityDebug:
		return "debug"
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// -----------------------------------------------------------------------------
// Sentinel Errors
// -----------------------------------------------------------------------------

// Engine sentinel errors
var (
	// ErrCapacityExceeded indicates a slot's constrained demand exceeds groups × capacity.
	ErrCapacityExceeded = New("capacity exceeded")
	// ErrUnknownSlot indicates a preference names a slot missing from the catalogue.
	ErrUnknownSlot = New("unknown slot")
	// ErrDuplicateSlot indicates two catalogue entries share a name.
	ErrDuplicateSlot = New("duplicate slot")
	// ErrNoGroups indicates individuals must be placed but no group exists.
	ErrNoGroups = New("no groups available")
)

// Roster sentinel errors
var (
	// ErrRosterFormat indicates a roster file is malformed or of an unsupported type.
	ErrRosterFormat = New("invalid roster format")
	// ErrUnrecognizedPreference indicates a free-text preference matched no single slot.
	ErrUnrecognizedPreference = New("unrecognized slot preference")
)

// General sentinel errors
var (
	// ErrInvalidInput indicates that input validation failed.
	ErrInvalidInput = New("invalid input")
)

// -----------------------------------------------------------------------------
// Base Error Interface
// -----------------------------------------------------------------------------

// CohortError is the base interface for all cohort errors.
type CohortError interface {
	error

	// Unwrap returns the underlying error, if any.
	Unwrap() error

	// Is reports whether this error matches the target error.
	Is(target error) bool

	// Severity returns the severity level of this error.
	Severity() Severity

	// IsUserFacing returns true if the error message is safe to display
	// to end users.
	IsUserFacing() bool
}

// baseError provides common functionality for all error types.
type baseError struct {
	message    string
	cause      error
	severity   Severity
	userFacing bool
}

// Error returns the error message.
func (e *baseError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

// Unwrap returns the underlying error.
func (e *baseError) Unwrap() error {
	return e.cause
}

// Is checks if this error matches the target.
func (e *baseError) Is(target error) bool {
	if e.cause != nil {
		return errors.Is(e.cause, target)
	}
	return false
}

// Severity returns the error severity.
func (e *baseError) Severity() Severity {
	return e.severity
}

// IsUserFacing returns whether the error is safe to show users.
func (e *baseError) IsUserFacing() bool {
	return e.userFacing
}

// formatPrefixed renders "<kind> [k=v, ...]: message: cause".
func formatPrefixed(kind string, parts []string, message string, cause error) string {
	prefix := kind
	if len(parts) > 0 {
		prefix = fmt.Sprintf("%s [%s]", kind, strings.Join(parts, ", "))
	}
	if cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, message, cause)
	}
	return fmt.Sprintf("%s: %s", prefix, message)
}

// -----------------------------------------------------------------------------
// Domain-Specific Errors
// -----------------------------------------------------------------------------

// CapacityError reports that the individuals preferring a slot cannot fit
// into that slot's groups even before any packing is attempted.
//
// Example:
//
//	err := errors.NewCapacityError("tuesday", 50, 48)
//	fmt.Println(err) // "capacity error [slot=tuesday, demand=50, capacity=48]: slot demand exceeds total capacity"
type CapacityError struct {
	baseError
	Slot     string
	Demand   int
	Capacity int
}

// NewCapacityError creates a new CapacityError.
func NewCapacityError(slot string, demand, capacity int) *CapacityError {
	return &CapacityError{
		baseError: baseError{
			message:    "slot demand exceeds total capacity",
			severity:   SeverityError,
			userFacing: true,
		},
		Slot:     slot,
		Demand:   demand,
		Capacity: capacity,
	}
}

// Error returns the formatted error message.
func (e *CapacityError) Error() string {
	parts := []string{
		fmt.Sprintf("slot=%s", e.Slot),
		fmt.Sprintf("demand=%d", e.Demand),
		fmt.Sprintf("capacity=%d", e.Capacity),
	}
	return formatPrefixed("capacity error", parts, e.message, e.cause)
}

// Is checks if this error matches the target.
func (e *CapacityError) Is(target error) bool {
	if _, ok := target.(*CapacityError); ok {
		return true
	}
	if target == ErrCapacityExceeded {
		return true
	}
	return e.baseError.Is(target)
}

// RosterError represents a failure to read or parse a roster.
//
// Example:
//
//	err := errors.NewRosterError("missing id column", errors.ErrRosterFormat).WithPath("roster.csv")
type RosterError struct {
	baseError
	Path string
	Line int
}

// NewRosterError creates a new RosterError.
func NewRosterError(message string, cause error) *RosterError {
	return &RosterError{
		baseError: baseError{
			message:    message,
			cause:      cause,
			severity:   SeverityError,
			userFacing: true,
		},
	}
}

// WithPath adds the roster file path to the error context.
func (e *RosterError) WithPath(path string) *RosterError {
	e.Path = path
	return e
}

// WithLine adds the 1-based line number to the error context.
func (e *RosterError) WithLine(line int) *RosterError {
	e.Line = line
	return e
}

// Error returns the formatted error message.
func (e *RosterError) Error() string {
	var parts []string
	if e.Path != "" {
		parts = append(parts, fmt.Sprintf("path=%s", e.Path))
	}
	if e.Line > 0 {
		parts = append(parts, fmt.Sprintf("line=%d", e.Line))
	}
	return formatPrefixed("roster error", parts, e.message, e.cause)
}

// Is checks if this error matches the target.
func (e *RosterError) Is(target error) bool {
	if _, ok := target.(*RosterError); ok {
		return true
	}
	return e.baseError.Is(target)
}

// -----------------------------------------------------------------------------
// Semantic Errors
// -----------------------------------------------------------------------------

// ValidationError represents invalid input or configuration.
//
// Example:
//
//	err := errors.NewValidationError("capacity must be positive").WithField("capacity").WithValue(0)
type ValidationError struct {
	baseError
	Field string
	Value any
}

// NewValidationError creates a new ValidationError.
func NewValidationError(message string) *ValidationError {
	return &ValidationError{
		baseError: baseError{
			message:    message,
			severity:   SeverityWarning,
			userFacing: true,
		},
	}
}

// WithField adds a field name to the error context.
func (e *ValidationError) WithField(field string) *ValidationError {
	e.Field = field
	return e
}

// WithValue adds the invalid value to the error context.
func (e *ValidationError) WithValue(value any) *ValidationError {
	e.Value = value
	return e
}

// WithCause adds a cause to the error.
func (e *ValidationError) WithCause(cause error) *ValidationError {
	e.cause = cause
	return e
}

// Error returns the formatted error message.
func (e *ValidationError) Error() string {
	var parts []string
	if e.Field != "" {
		parts = append(parts, fmt.Sprintf("field=%s", e.Field))
	}
	if e.Value != nil {
		parts = append(parts, fmt.Sprintf("value=%v", e.Value))
	}
	return formatPrefixed("validation error", parts, e.message, e.cause)
}

// Is checks if this error matches the target.
func (e *ValidationError) Is(target error) bool {
	if _, ok := target.(*ValidationError); ok {
		return true
	}
	if target == ErrInvalidInput {
		return true
	}
	return e.baseError.Is(target)
}

// -----------------------------------------------------------------------------
// Error Classification Helpers
// -----------------------------------------------------------------------------

// IsUserFacing returns true if the error message is safe to display to end users.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}

	var cohortErr CohortError
	if As(err, &cohortErr) {
		return cohortErr.IsUserFacing()
	}
	return false
}

// GetSeverity returns the severity level of the error.
// Returns SeverityError for errors that don't implement CohortError.
func GetSeverity(err error) Severity {
	if err == nil {
		return SeverityDebug
	}

	var cohortErr CohortError
	if As(err, &cohortErr) {
		return cohortErr.Severity()
	}
	return SeverityError
}

// Wrap wraps an error with additional context message.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with a formatted context message.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}
