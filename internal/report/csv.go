package report

import (
	"cmp"
	"encoding/csv"
	"io"
	"slices"

	"github.com/Iron-Ham/cohort/internal/assign"
	"github.com/Iron-Ham/cohort/internal/roster"
)

// CSVHeader is the header row written by WriteAssignmentsCSV.
var CSVHeader = []string{"id", "name", "slot", "group"}

// WriteAssignmentsCSV writes one row per individual, ordered by group and
// then by id.
func WriteAssignmentsCSV(w io.Writer, res *assign.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return err
	}

	for _, g := range res.Groups {
		members := g.Members()
		slices.SortStableFunc(members, func(a, b *roster.Individual) int {
			return cmp.Compare(a.ID, b.ID)
		})
		for _, m := range members {
			if err := cw.Write([]string{m.ID, m.Name, g.ID().Slot, g.ID().String()}); err != nil {
				return err
			}
		}
	}

	cw.Flush()
	return cw.Error()
}
