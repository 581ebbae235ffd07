package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Iron-Ham/cohort/internal/config"
	"github.com/Iron-Ham/cohort/internal/errors"
	"github.com/Iron-Ham/cohort/internal/roster"
)

var checkCmd = &cobra.Command{
	Use:   "check <roster>",
	Short: "Check a roster without assigning it",
	Long: `Load a roster and report problems without assigning anyone.

Reports unreadable rows, unrecognized slot answers, duplicate ids, missing
names and affinity tags too large for one group, then compares each slot's
demand with its capacity. The command fails if any slot is over-subscribed.`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	loader, err := cfg.Loader()
	if err != nil {
		return err
	}
	individuals, warnings, err := loader.LoadFile(args[0])
	if err != nil {
		return err
	}
	warnings = append(warnings, roster.Check(individuals, cfg.Engine.CapacityPerGroup)...)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%d individuals loaded from %s\n", len(individuals), args[0])

	infeasible := printDemand(out, individuals, cfg)

	if len(warnings) == 0 {
		fmt.Fprintln(out, "\nNo warnings.")
	} else {
		fmt.Fprintf(out, "\nWarnings (%d):\n", len(warnings))
		for _, w := range warnings {
			fmt.Fprintf(out, "  - [%s] %s\n", w.Kind, w.String())
		}
	}

	if len(infeasible) > 0 {
		return errors.Join(infeasible...)
	}
	return nil
}

// printDemand writes the per-slot demand table and returns a CapacityError
// for each over-subscribed slot.
func printDemand(out io.Writer, individuals []*roster.Individual, cfg *config.Config) []error {
	demand := make(map[string]int)
	unconstrained := 0
	for _, ind := range individuals {
		if ind.Preference.IsNone() {
			unconstrained++
			continue
		}
		demand[ind.Preference.Slot]++
	}

	var infeasible []error
	fmt.Fprintln(out, "\nSlot demand:")
	for _, slot := range cfg.Slots {
		capacity := slot.Groups * cfg.Engine.CapacityPerGroup
		marker := ""
		if demand[slot.Name] > capacity {
			marker = "  OVER"
			infeasible = append(infeasible, errors.NewCapacityError(slot.Name, demand[slot.Name], capacity))
		}
		fmt.Fprintf(out, "  %-12s %4d / %d%s\n", slot.Name, demand[slot.Name], capacity, marker)
	}
	fmt.Fprintf(out, "  %-12s %4d\n", "(any)", unconstrained)
	return infeasible
}
