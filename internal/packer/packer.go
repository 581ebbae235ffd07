package packer

import (
	"container/heap"
	"fmt"

	"github.com/Iron-Ham/cohort/internal/cluster"
	"github.com/Iron-Ham/cohort/internal/errors"
	"github.com/Iron-Ham/cohort/internal/logging"
	"github.com/Iron-Ham/cohort/internal/pool"
)

// ConflictKind classifies an over-capacity placement.
type ConflictKind string

const (
	// ConflictIrreducible is a cluster of two or three members that fit in
	// no group and was forced into the smallest one.
	ConflictIrreducible ConflictKind = "irreducible"
	// ConflictSingleton is a lone individual placed into a full group.
	ConflictSingleton ConflictKind = "singleton"
)

// Conflict records a placement that pushed a group past capacity.
type Conflict struct {
	Kind      ConflictKind `json:"kind"`
	Tag       cluster.Tag  `json:"-"`
	Size      int          `json:"size"`
	Group     pool.GroupID `json:"group"`
	Occupancy int          `json:"occupancy"` // group size after placement
}

// String renders the conflict for diagnostics.
func (c Conflict) String() string {
	return fmt.Sprintf("%s conflict: %d member(s) tagged %q forced into %s (%d members)",
		c.Kind, c.Size, c.Tag.String(), c.Group, c.Occupancy)
}

// Option configures a Packer.
type Option func(*Packer)

// WithLogger sets the logger used for split and conflict diagnostics.
func WithLogger(logger *logging.Logger) Option {
	return func(p *Packer) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// Packer assigns clusters to groups of a fixed capacity.
type Packer struct {
	capacity int
	logger   *logging.Logger
}

// New creates a Packer for groups holding capacity members each.
func New(capacity int, opts ...Option) *Packer {
	p := &Packer{
		capacity: capacity,
		logger:   logging.NopLogger(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Pack places every member of clusters into a group of gp and returns the
// conflicts raised along the way. With matchExisting set, a cluster with a
// real tag is first offered to the group already holding that tag.
//
// Every group taken from gp is returned to it before Pack returns. The only
// error is errors.ErrNoGroups, for non-empty clusters and an empty pool.
func (p *Packer) Pack(clusters []cluster.Cluster, gp *pool.Pool, matchExisting bool) ([]Conflict, error) {
	var queue clusterQueue
	for _, c := range clusters {
		if c.Size() > 0 {
			queue.push(c)
		}
	}
	if queue.Len() == 0 {
		return nil, nil
	}
	if gp.Len() == 0 {
		return nil, errors.ErrNoGroups
	}

	var conflicts []Conflict
	for queue.Len() > 0 {
		k := queue.pop()
		g := p.target(k, gp, matchExisting)

		switch {
		case g.Fits(k.Size()) || k.Size() == 1:
			g.Add(k.Members...)
			if g.Overflowing() {
				conflicts = append(conflicts, p.conflict(ConflictSingleton, k, g))
			}
			gp.Reinsert(g)

		case k.Size() >= 4:
			first, second := cluster.Split(k)
			p.logger.Debug("split cluster",
				"tag", k.Tag.String(),
				"size", k.Size(),
				"group", g.ID().String(),
				"free", g.Free(),
			)
			queue.push(first)
			queue.push(second)
			gp.Reinsert(g)

		default:
			gp.Reinsert(g)
			forced := gp.Smallest()
			forced.Add(k.Members...)
			if forced.Overflowing() {
				conflicts = append(conflicts, p.conflict(ConflictIrreducible, k, forced))
			}
			gp.Reinsert(forced)
		}
	}
	return conflicts, nil
}

// target picks the group to offer k to, taking it out of the pool's queue.
func (p *Packer) target(k cluster.Cluster, gp *pool.Pool, matchExisting bool) *pool.Group {
	if matchExisting && !k.Tag.Synthetic {
		if g := gp.GroupContainingTag(k.Tag.Value); g != nil && gp.Remove(g) {
			return g
		}
	}
	return gp.Smallest()
}

func (p *Packer) conflict(kind ConflictKind, k cluster.Cluster, g *pool.Group) Conflict {
	c := Conflict{
		Kind:      kind,
		Tag:       k.Tag,
		Size:      k.Size(),
		Group:     g.ID(),
		Occupancy: g.Size(),
	}
	p.logger.Warn("group over capacity",
		"kind", string(kind),
		"tag", k.Tag.String(),
		"size", c.Size,
		"group", c.Group.String(),
		"occupancy", c.Occupancy,
		"capacity", p.capacity,
	)
	return c
}

// clusterQueue is a max-heap of clusters by size. Equal sizes pop in the
// order they were pushed.
type clusterQueue struct {
	items []queuedCluster
	seq   uint64
}

type queuedCluster struct {
	cluster.Cluster
	seq uint64
}

func (q *clusterQueue) push(c cluster.Cluster) {
	q.seq++
	heap.Push(q, queuedCluster{Cluster: c, seq: q.seq})
}

func (q *clusterQueue) pop() cluster.Cluster {
	return heap.Pop(q).(queuedCluster).Cluster
}

func (q clusterQueue) Len() int { return len(q.items) }

func (q clusterQueue) Less(i, j int) bool {
	a, b := q.items[i], q.items[j]
	if a.Size() != b.Size() {
		return a.Size() > b.Size()
	}
	return a.seq < b.seq
}

func (q clusterQueue) Swap(i, j int) { q.items[i], q.items[j] = q.items[j], q.items[i] }

func (q *clusterQueue) Push(x any) { q.items = append(q.items, x.(queuedCluster)) }

func (q *clusterQueue) Pop() any {
	old := q.items
	n := len(old)
	item := old[n-1]
	old[n-1] = queuedCluster{}
	q.items = old[:n-1]
	return item
}
