package pool

import (
	"cmp"
	"container/heap"
	"slices"
)

// Pool is a mutable collection of groups ordered by occupancy.
type Pool struct {
	groups []*Group
	owned  map[*Group]bool
	heap   groupHeap
}

// New creates a pool owning groups, all of them initially queued.
func New(groups ...*Group) *Pool {
	p := &Pool{
		owned: make(map[*Group]bool, len(groups)),
		heap: groupHeap{
			pos: make(map[*Group]int, len(groups)),
		},
	}
	for _, g := range groups {
		if p.owned[g] {
			continue
		}
		p.owned[g] = true
		p.groups = append(p.groups, g)
		p.heap.items = append(p.heap.items, g)
		p.heap.pos[g] = len(p.heap.items) - 1
	}
	heap.Init(&p.heap)
	return p
}

// Merge returns a new pool owning the union of the groups of pools, ordered
// by creation. The source pools must not be used afterwards.
func Merge(pools ...*Pool) *Pool {
	var all []*Group
	for _, p := range pools {
		all = append(all, p.groups...)
	}
	slices.SortStableFunc(all, func(a, b *Group) int {
		return cmp.Compare(a.seq, b.seq)
	})
	return New(all...)
}

// Len returns the number of groups currently queued.
func (p *Pool) Len() int {
	return p.heap.Len()
}

// Groups returns every group the pool owns, queued or not, in creation order.
func (p *Pool) Groups() []*Group {
	return slices.Clone(p.groups)
}

// Smallest removes and returns the queued group with the fewest members,
// earliest-created first among equals. It returns nil when nothing is queued.
func (p *Pool) Smallest() *Group {
	if p.heap.Len() == 0 {
		return nil
	}
	return heap.Pop(&p.heap).(*Group)
}

// Remove takes g out of the queue by identity. It reports whether g was
// queued.
func (p *Pool) Remove(g *Group) bool {
	i, ok := p.heap.pos[g]
	if !ok {
		return false
	}
	heap.Remove(&p.heap, i)
	return true
}

// Reinsert queues g again at the position matching its current size. A
// group that is still queued is re-sorted in place; a group the pool did not
// own is adopted.
func (p *Pool) Reinsert(g *Group) {
	if !p.owned[g] {
		p.owned[g] = true
		p.groups = append(p.groups, g)
	}
	if i, ok := p.heap.pos[g]; ok {
		heap.Fix(&p.heap, i)
		return
	}
	heap.Push(&p.heap, g)
}

// GroupContainingTag returns the owned group holding a member with the real
// affinity tag, or nil. The packer keeps at most one such group per tag
// within a phase; should several exist, the earliest-created wins.
func (p *Pool) GroupContainingTag(tag string) *Group {
	if tag == "" {
		return nil
	}
	for _, g := range p.groups {
		if g.HasTag(tag) {
			return g
		}
	}
	return nil
}

// groupHeap is a min-heap of groups by (size, creation order) with a
// position index for removal by identity.
type groupHeap struct {
	items []*Group
	pos   map[*Group]int
}

func (h groupHeap) Len() int { return len(h.items) }

func (h groupHeap) Less(i, j int) bool {
	a, b := h.items[i], h.items[j]
	if a.Size() != b.Size() {
		return a.Size() < b.Size()
	}
	return a.seq < b.seq
}

func (h groupHeap) Swap(i, j int) {
	h.items[i], h.items[j] = h.items[j], h.items[i]
	h.pos[h.items[i]] = i
	h.pos[h.items[j]] = j
}

func (h *groupHeap) Push(x any) {
	g := x.(*Group)
	h.pos[g] = len(h.items)
	h.items = append(h.items, g)
}

func (h *groupHeap) Pop() any {
	old := h.items
	n := len(old)
	g := old[n-1]
	old[n-1] = nil
	h.items = old[:n-1]
	delete(h.pos, g)
	return g
}
