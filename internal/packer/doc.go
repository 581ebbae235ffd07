// Package packer places affinity clusters into capacity-bounded groups.
//
// The Packer is priority-greedy: it always takes the largest outstanding
// cluster and offers it to the least-occupied group. A cluster that does
// not fit is halved and requeued; one too small to split (two or three
// members) is forced into the smallest group and reported as a Conflict.
// A singleton is always placed, overflowing if it must.
//
// Packing never fails for a non-empty pool. Every overflow is reported, so a
// group exceeds capacity if and only if some Conflict names it.
package packer
