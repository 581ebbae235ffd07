package cmd

import (
	"fmt"
	"io"

	"github.com/Iron-Ham/cohort/internal/config"
	"github.com/Iron-Ham/cohort/internal/errors"
)

// Exit codes returned by ReportError.
const (
	ExitOK = 0
	// ExitFailure covers infeasible rosters and runtime failures.
	ExitFailure = 1
	// ExitInvalidInput covers malformed configuration, rosters and engine input.
	ExitInvalidInput = 2
)

// loadConfig loads and validates the configuration.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, errors.NewValidationError("invalid configuration").WithCause(err)
	}
	return cfg, nil
}

// ReportError writes err to w and returns the process exit code for it.
// User-facing errors are rewritten into plain sentences; anything else is
// printed as is.
func ReportError(w io.Writer, err error) int {
	if err == nil {
		return ExitOK
	}

	lines := []string{err.Error()}
	if errors.IsUserFacing(err) {
		lines = userMessages(err)
	}
	for _, line := range lines {
		fmt.Fprintf(w, "Error: %s\n", line)
	}
	return exitCode(err)
}

// exitCode maps err to an exit code. Anything below error severity is an
// input problem the user can fix by editing a file.
func exitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, errors.ErrInvalidInput):
		return ExitInvalidInput
	case errors.GetSeverity(err) < errors.SeverityError:
		return ExitInvalidInput
	default:
		return ExitFailure
	}
}

// userMessages renders err one line per failure, expanding joined errors.
func userMessages(err error) []string {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		var lines []string
		for _, e := range joined.Unwrap() {
			lines = append(lines, userMessages(e)...)
		}
		return lines
	}

	var capErr *errors.CapacityError
	if errors.As(err, &capErr) {
		return []string{fmt.Sprintf("slot %q is over-subscribed: %d individuals asked for it but its groups seat %d",
			capErr.Slot, capErr.Demand, capErr.Capacity)}
	}
	return []string{err.Error()}
}
