package cluster

import "github.com/Iron-Ham/cohort/internal/roster"

// Cluster is a set of individuals sharing one tag.
type Cluster struct {
	Tag     Tag
	Members []*roster.Individual
}

// Size returns the number of members.
func (c Cluster) Size() int {
	return len(c.Members)
}

// ByAffinity partitions individuals into clusters by tag. Every individual
// appears in exactly one cluster. Clusters are ordered by the first
// appearance of their tag and members keep input order, so the output is
// fully determined by the input and gen.
func ByAffinity(individuals []*roster.Individual, gen TagGenerator) []Cluster {
	index := make(map[Tag]int)
	var clusters []Cluster

	for _, ind := range individuals {
		tag := TagOf(ind, gen)
		i, ok := index[tag]
		if !ok {
			i = len(clusters)
			index[tag] = i
			clusters = append(clusters, Cluster{Tag: tag})
		}
		clusters[i].Members = append(clusters[i].Members, ind)
	}
	return clusters
}

// Split halves c into clusters of ⌈n/2⌉ and ⌊n/2⌋ members that keep c's tag.
// The first half holds the first members in order.
func Split(c Cluster) (Cluster, Cluster) {
	mid := (len(c.Members) + 1) / 2
	first := Cluster{Tag: c.Tag, Members: append([]*roster.Individual(nil), c.Members[:mid]...)}
	second := Cluster{Tag: c.Tag, Members: append([]*roster.Individual(nil), c.Members[mid:]...)}
	return first, second
}
