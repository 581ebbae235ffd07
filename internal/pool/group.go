package pool

import (
	"fmt"

	"github.com/Iron-Ham/cohort/internal/roster"
)

// GroupID identifies a group by its slot and zero-based index in that slot.
type GroupID struct {
	Slot  string `json:"slot"`
	Index int    `json:"index"`
}

// String renders the 1-based label, e.g. "tuesday-2".
func (id GroupID) String() string {
	return fmt.Sprintf("%s-%d", id.Slot, id.Index+1)
}

// Group is a capacity-bounded set of individuals belonging to one slot.
type Group struct {
	id       GroupID
	capacity int
	seq      uint64
	members  []*roster.Individual
	tags     map[string]int // real affinity tag -> member count
}

// Sequence numbers groups in creation order. Pools break size ties by this
// order, so groups that end up in one pool should come from one Sequence.
// The zero value is ready to use. A Sequence is not safe for concurrent use.
type Sequence struct {
	n uint64
}

// NewGroup creates an empty group.
func (s *Sequence) NewGroup(id GroupID, capacity int) *Group {
	s.n++
	return &Group{
		id:       id,
		capacity: capacity,
		seq:      s.n,
		tags:     make(map[string]int),
	}
}

// NewSlotGroups creates count empty groups for slot, indexed from zero.
func (s *Sequence) NewSlotGroups(slot string, count, capacity int) []*Group {
	groups := make([]*Group, count)
	for i := range groups {
		groups[i] = s.NewGroup(GroupID{Slot: slot, Index: i}, capacity)
	}
	return groups
}

// ID returns the group's identifier.
func (g *Group) ID() GroupID { return g.id }

// Capacity returns the nominal capacity.
func (g *Group) Capacity() int { return g.capacity }

// Size returns the number of members.
func (g *Group) Size() int { return len(g.members) }

// Free returns the remaining room. It is negative for an overflowing group.
func (g *Group) Free() int { return g.capacity - len(g.members) }

// Overflowing reports whether the group holds more than its capacity.
func (g *Group) Overflowing() bool { return len(g.members) > g.capacity }

// Fits reports whether n more members fit without exceeding capacity.
func (g *Group) Fits(n int) bool { return len(g.members)+n <= g.capacity }

// Members returns a copy of the members in placement order.
func (g *Group) Members() []*roster.Individual {
	return append([]*roster.Individual(nil), g.members...)
}

// HasTag reports whether any member carries the real affinity tag.
func (g *Group) HasTag(tag string) bool {
	return tag != "" && g.tags[tag] > 0
}

// Add places members into the group. Capacity is not enforced here.
func (g *Group) Add(members ...*roster.Individual) {
	for _, m := range members {
		g.members = append(g.members, m)
		if m.HasAffinity() {
			g.tags[m.Affinity]++
		}
	}
}
