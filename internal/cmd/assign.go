package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Iron-Ham/cohort/internal/assign"
	"github.com/Iron-Ham/cohort/internal/cluster"
	"github.com/Iron-Ham/cohort/internal/config"
	"github.com/Iron-Ham/cohort/internal/errors"
	"github.com/Iron-Ham/cohort/internal/logging"
	"github.com/Iron-Ham/cohort/internal/report"
	"github.com/Iron-Ham/cohort/internal/roster"
)

var (
	assignJSON    bool
	assignOut     string
	assignWatch   bool
	assignNoColor bool
)

var assignCmd = &cobra.Command{
	Use:   "assign <roster>",
	Short: "Assign a roster to groups",
	Long: `Assign every individual in a roster (.csv, .yaml or .yml) to a group.

Slots and their group counts come from the configuration file. The command
fails without packing anything if a slot is asked for by more individuals
than its groups can seat.

Examples:
  cohort assign roster.csv
  cohort assign roster.csv --json
  cohort assign roster.csv --out groups.csv
  cohort assign roster.yaml --capacity 20 --watch`,
	Args: cobra.ExactArgs(1),
	RunE: runAssign,
}

func init() {
	rootCmd.AddCommand(assignCmd)

	assignCmd.Flags().BoolVar(&assignJSON, "json", false, "write the report as JSON")
	assignCmd.Flags().StringVarP(&assignOut, "out", "o", "", "write the assignment to a CSV file")
	assignCmd.Flags().BoolVarP(&assignWatch, "watch", "w", false, "re-run whenever the roster file changes")
	assignCmd.Flags().BoolVar(&assignNoColor, "no-color", false, "disable styled output")
}

func runAssign(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Close() }()

	path := args[0]
	out := cmd.OutOrStdout()
	run := func() error {
		return assignRoster(out, cfg, logger, path)
	}

	if !assignWatch {
		return run()
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return watchRoster(ctx, cmd.ErrOrStderr(), path, run)
}

// watchRoster runs fn once and again after every change to path until ctx
// is cancelled. Failed runs are reported and do not stop the watch.
func watchRoster(ctx context.Context, errOut io.Writer, path string, fn func() error) error {
	runOnce := func() {
		if err := fn(); err != nil {
			ReportError(errOut, err)
		}
	}

	runOnce()
	fmt.Fprintf(errOut, "Watching %s for changes (Ctrl+C to stop)\n", path)

	err := roster.Watch(ctx, path, roster.DefaultDebounce, runOnce)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// assignRoster loads, assigns and reports one roster.
func assignRoster(out io.Writer, cfg *config.Config, logger *logging.Logger, path string) error {
	loader, err := cfg.Loader()
	if err != nil {
		return err
	}
	individuals, warnings, err := loader.LoadFile(path)
	if err != nil {
		return err
	}
	warnings = append(warnings, roster.Check(individuals, cfg.Engine.CapacityPerGroup)...)

	engine := assign.New(cfg.Engine.CapacityPerGroup,
		assign.WithTagGenerator(tagGenerator(cfg.Engine.TagStrategy)),
		assign.WithLogger(logger.With("roster", path)),
	)
	res, err := engine.Assign(individuals, cfg.RosterSlots())
	if err != nil {
		if errors.Is(err, errors.ErrNoGroups) {
			return errors.Wrap(err, "no slots are configured; run 'cohort config init' and edit the slots list")
		}
		return err
	}

	if assignJSON || cfg.Report.Format == config.FormatJSON {
		err = report.JSON(out, res.Summary(), res.Conflicts, warnings)
	} else {
		err = report.Text(out, res.Summary(), res.Conflicts, warnings, report.Options{
			Color: cfg.Report.Color && !assignNoColor,
			Width: cfg.Report.Width,
		})
	}
	if err != nil {
		return errors.Wrap(err, "failed to write report")
	}

	if assignOut != "" {
		if err := writeAssignmentsFile(assignOut, res); err != nil {
			return err
		}
	}
	return nil
}

func writeAssignmentsFile(path string, res *assign.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "failed to create %s", path)
	}
	if err := report.WriteAssignmentsCSV(f, res); err != nil {
		_ = f.Close()
		return errors.Wrapf(err, "failed to write %s", path)
	}
	return f.Close()
}

// tagGenerator returns the synthetic tag source for strategy. A nil result
// leaves the engine on its per-run counter.
func tagGenerator(strategy string) cluster.TagGenerator {
	if strategy == config.TagStrategyRandom {
		return cluster.NewRandomGenerator()
	}
	return nil
}

// newLogger builds the run logger from the logging settings.
func newLogger(cfg *config.Config) (*logging.Logger, error) {
	if !cfg.Logging.Enabled {
		return logging.NopLogger(), nil
	}
	logger, err := logging.NewLogger(cfg.Logging.Dir, logging.ParseLevel(cfg.Logging.Level))
	if err != nil {
		return nil, errors.Wrap(err, "failed to create logger")
	}
	return logger, nil
}
