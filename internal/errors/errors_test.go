package errors

import (
	"errors"
	"fmt"
	"testing"
)

// -----------------------------------------------------------------------------
// Severity Tests
// -----------------------------------------------------------------------------

func TestSeverity_String(t *testing.T) {
	tests := []struct {
		severity Severity
		want     string
	}{
		{SeverityDebug, "debug"},
		{SeverityInfo, "info"},
		{SeverityWarning, "warning"},
		{SeverityError, "error"},
		{SeverityCritical, "critical"},
		{Severity(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.severity.String(); got != tt.want {
				t.Errorf("Severity.String() = %q, want %q", got, tt.want)
			}
		})
	}
}

// -----------------------------------------------------------------------------
// CapacityError Tests
// -----------------------------------------------------------------------------

func TestNewCapacityError(t *testing.T) {
	err := NewCapacityError("tuesday", 50, 48)

	if err.Slot != "tuesday" || err.Demand != 50 || err.Capacity != 48 {
		t.Errorf("fields = (%q, %d, %d), want (tuesday, 50, 48)", err.Slot, err.Demand, err.Capacity)
	}
	if err.Severity() != SeverityError {
		t.Errorf("Severity() = %v, want %v", err.Severity(), SeverityError)
	}
	if !err.IsUserFacing() {
		t.Error("IsUserFacing() = false, want true")
	}
}

func TestCapacityError_Error(t *testing.T) {
	err := NewCapacityError("tuesday", 50, 48)
	want := "capacity error [slot=tuesday, demand=50, capacity=48]: slot demand exceeds total capacity"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestCapacityError_Is(t *testing.T) {
	err := NewCapacityError("tuesday", 50, 48)

	if !Is(err, &CapacityError{}) {
		t.Error("Is(CapacityError{}) = false, want true")
	}
	if !Is(err, ErrCapacityExceeded) {
		t.Error("Is(ErrCapacityExceeded) = false, want true")
	}
	if Is(err, ErrInvalidInput) {
		t.Error("Is(ErrInvalidInput) = true, want false")
	}

	wrapped := fmt.Errorf("run failed: %w", err)
	var capErr *CapacityError
	if !As(wrapped, &capErr) {
		t.Fatal("As(*CapacityError) = false through wrapping")
	}
	if capErr.Slot != "tuesday" {
		t.Errorf("Slot = %q, want tuesday", capErr.Slot)
	}
}

// -----------------------------------------------------------------------------
// RosterError Tests
// -----------------------------------------------------------------------------

func TestRosterError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *RosterError
		want string
	}{
		{
			name: "basic error",
			err:  NewRosterError("unreadable", nil),
			want: "roster error: unreadable",
		},
		{
			name: "with path and line",
			err:  NewRosterError("bad row", ErrRosterFormat).WithPath("r.csv").WithLine(4),
			want: "roster error [path=r.csv, line=4]: bad row: invalid roster format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRosterError_Is(t *testing.T) {
	err := NewRosterError("bad row", ErrRosterFormat)

	if !Is(err, &RosterError{}) {
		t.Error("Is(RosterError{}) = false, want true")
	}
	if !Is(err, ErrRosterFormat) {
		t.Error("Is(ErrRosterFormat) = false, want true")
	}
	if Unwrap(err) != ErrRosterFormat {
		t.Errorf("Unwrap() = %v, want %v", Unwrap(err), ErrRosterFormat)
	}
}

// -----------------------------------------------------------------------------
// ValidationError Tests
// -----------------------------------------------------------------------------

func TestValidationError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *ValidationError
		want string
	}{
		{
			name: "basic error",
			err:  NewValidationError("invalid input"),
			want: "validation error: invalid input",
		},
		{
			name: "with field",
			err:  NewValidationError("cannot be empty").WithField("name"),
			want: "validation error [field=name]: cannot be empty",
		},
		{
			name: "with field and value",
			err:  NewValidationError("must be positive").WithField("capacity").WithValue(-1),
			want: "validation error [field=capacity, value=-1]: must be positive",
		},
		{
			name: "with cause",
			err:  NewValidationError("bad slot").WithCause(ErrUnknownSlot),
			want: "validation error: bad slot: unknown slot",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidationError_Is(t *testing.T) {
	err := NewValidationError("test").WithCause(ErrUnknownSlot)

	if !Is(err, &ValidationError{}) {
		t.Error("Is(ValidationError{}) = false, want true")
	}
	if !Is(err, ErrInvalidInput) {
		t.Error("Is(ErrInvalidInput) = false, want true")
	}
	if !Is(err, ErrUnknownSlot) {
		t.Error("Is(ErrUnknownSlot) = false, want true")
	}
	if Is(err, ErrCapacityExceeded) {
		t.Error("Is(ErrCapacityExceeded) = true, want false")
	}
}

// -----------------------------------------------------------------------------
// Classification Helper Tests
// -----------------------------------------------------------------------------

func TestClassification(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		userFacing bool
		severity   Severity
	}{
		{"nil error", nil, false, SeverityDebug},
		{"plain error", errors.New("boom"), false, SeverityError},
		{"capacity error", NewCapacityError("a", 3, 2), true, SeverityError},
		{"wrapped validation", Wrap(NewValidationError("x"), "ctx"), true, SeverityWarning},
		{"roster error", NewRosterError("x", nil), true, SeverityError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsUserFacing(tt.err); got != tt.userFacing {
				t.Errorf("IsUserFacing() = %v, want %v", got, tt.userFacing)
			}
			if got := GetSeverity(tt.err); got != tt.severity {
				t.Errorf("GetSeverity() = %v, want %v", got, tt.severity)
			}
		})
	}
}

func TestWrap(t *testing.T) {
	if Wrap(nil, "ctx") != nil {
		t.Error("Wrap(nil) should return nil")
	}
	if Wrapf(nil, "ctx %d", 1) != nil {
		t.Error("Wrapf(nil) should return nil")
	}

	err := Wrapf(ErrNoGroups, "slot %s", "tuesday")
	if err.Error() != "slot tuesday: no groups available" {
		t.Errorf("Wrapf() = %q", err.Error())
	}
	if !Is(err, ErrNoGroups) {
		t.Error("wrapped error should match ErrNoGroups")
	}
}
