// Package cluster partitions individuals by affinity tag.
//
// A [Cluster] is the maximal set of candidates sharing one [Tag] within a
// single candidate list. Individuals without an affinity token receive a
// synthetic tag from a [TagGenerator], so each of them forms a cluster of one
// and is never merged into somebody else's cluster. Clusters are transient:
// they are recomputed for every packing phase and discarded afterwards.
package cluster
