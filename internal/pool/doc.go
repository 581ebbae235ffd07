// Package pool holds the capacity-bounded groups individuals are placed into.
//
// A [Pool] orders its groups in a binary min-heap keyed by current occupancy,
// breaking ties by group creation order as numbered by a [Sequence]. Beyond popping the least-full group
// it supports removing a specific group by identity, which the packer needs
// when it routes a cluster to the group already holding its affinity tag.
// Positions are tracked in an index so removal and re-insertion are
// O(log n).
//
// Callers pop or remove a group before mutating it and reinsert it
// afterwards; a Pool never inspects members on its own except to answer
// [Pool.GroupContainingTag].
package pool
