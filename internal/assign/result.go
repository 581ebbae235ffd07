package assign

import (
	"github.com/Iron-Ham/cohort/internal/packer"
	"github.com/Iron-Ham/cohort/internal/pool"
	"github.com/Iron-Ham/cohort/internal/roster"
)

// Result is the outcome of a successful run.
type Result struct {
	// Assignment maps every input individual to its group.
	Assignment map[*roster.Individual]pool.GroupID

	// Groups lists every group, slot by slot in catalogue order.
	Groups []*pool.Group

	// Conflicts lists each placement that pushed a group past capacity.
	Conflicts []packer.Conflict

	slots    []string
	capacity int
}

// GroupOf returns the group ind was assigned to.
func (r *Result) GroupOf(ind *roster.Individual) (pool.GroupID, bool) {
	id, ok := r.Assignment[ind]
	return id, ok
}

// Group returns the group with id, or nil.
func (r *Result) Group(id pool.GroupID) *pool.Group {
	for _, g := range r.Groups {
		if g.ID() == id {
			return g
		}
	}
	return nil
}

// GroupSummary is the occupancy of one group.
type GroupSummary struct {
	ID       pool.GroupID `json:"id"`
	Size     int          `json:"size"`
	Capacity int          `json:"capacity"`
	Overflow bool         `json:"overflow"`
}

// SlotSummary is the occupancy of one slot's groups.
type SlotSummary struct {
	Slot     string         `json:"slot"`
	Groups   []GroupSummary `json:"groups"`
	Size     int            `json:"size"`
	Capacity int            `json:"capacity"`
}

// Summary is a read-only view of group occupancy for reporting.
type Summary struct {
	Slots       []SlotSummary `json:"slots"`
	Population  int           `json:"population"`
	Capacity    int           `json:"capacity"`
	Overflowing int           `json:"overflowing_groups"`
}

// Summary returns per-slot, per-group occupancy.
func (r *Result) Summary() Summary {
	var s Summary
	index := make(map[string]int, len(r.slots))
	for _, name := range r.slots {
		index[name] = len(s.Slots)
		s.Slots = append(s.Slots, SlotSummary{Slot: name})
	}

	for _, g := range r.Groups {
		gs := GroupSummary{
			ID:       g.ID(),
			Size:     g.Size(),
			Capacity: r.capacity,
			Overflow: g.Overflowing(),
		}
		slot := &s.Slots[index[g.ID().Slot]]
		slot.Groups = append(slot.Groups, gs)
		slot.Size += gs.Size
		slot.Capacity += gs.Capacity

		s.Population += gs.Size
		s.Capacity += gs.Capacity
		if gs.Overflow {
			s.Overflowing++
		}
	}
	return s
}
