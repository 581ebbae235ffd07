// Package logging provides structured logging for cohort runs.
//
// The package wraps Go's log/slog with a JSON handler and adds child loggers
// that carry run context (phase, slot) on every entry. A packing run logs
// phase boundaries at INFO, cluster splits at DEBUG and every over-capacity
// placement at WARN, so a log file from one run is enough to explain why a
// group ended up over its capacity.
//
// # Basic Usage
//
//	logger, err := logging.NewLogger("/path/to/run", "INFO")
//	if err != nil {
//	    return err
//	}
//	defer logger.Close()
//
//	slotLogger := logger.WithPhase("slots").WithSlot("tuesday")
//	slotLogger.Warn("forced placement over capacity", "tag", "7", "size", 3)
//
// Output:
//
//	{"time":"...","level":"WARN","msg":"forced placement over capacity","phase":"slots","slot":"tuesday","tag":"7","size":3}
//
// # Testing
//
// Use [NopLogger] to discard output, or [NewWriterLogger] with a buffer to
// assert on emitted entries.
//
// # Log Levels
//
//   - [LevelDebug]: cluster splits and per-placement detail
//   - [LevelInfo]: phase boundaries (default)
//   - [LevelWarn]: over-capacity placements and advisory roster warnings
//   - [LevelError]: failed runs
package logging
