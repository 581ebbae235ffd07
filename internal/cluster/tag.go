package cluster

import (
	"strconv"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/Iron-Ham/cohort/internal/roster"
)

// Tag identifies a cluster. Real tags come from an individual's affinity
// token; synthetic tags stand in for individuals without one. A synthetic
// tag never equals a real tag, even when the values coincide.
type Tag struct {
	Value     string
	Synthetic bool
}

// Real returns the real tag for an affinity token.
func Real(value string) Tag {
	return Tag{Value: value}
}

// String returns the tag value, prefixed with '~' when synthetic.
func (t Tag) String() string {
	if t.Synthetic {
		return "~" + t.Value
	}
	return t.Value
}

// TagGenerator produces synthetic tags. Every tag returned by one generator
// must be distinct for the life of the generator.
type TagGenerator interface {
	Next() Tag
}

// CounterGenerator yields "<prefix>-1", "<prefix>-2", ... It is deterministic
// and safe for concurrent use.
type CounterGenerator struct {
	prefix string
	n      atomic.Uint64
}

// NewCounterGenerator creates a CounterGenerator. An empty prefix uses "anon".
func NewCounterGenerator(prefix string) *CounterGenerator {
	if prefix == "" {
		prefix = "anon"
	}
	return &CounterGenerator{prefix: prefix}
}

// Next returns the next synthetic tag.
func (g *CounterGenerator) Next() Tag {
	return Tag{
		Value:     g.prefix + "-" + strconv.FormatUint(g.n.Add(1), 10),
		Synthetic: true,
	}
}

// RandomGenerator yields random UUID tags. Output differs between runs, so
// packing results are only reproducible up to synthetic-tag naming.
type RandomGenerator struct{}

// NewRandomGenerator creates a RandomGenerator.
func NewRandomGenerator() *RandomGenerator {
	return &RandomGenerator{}
}

// Next returns a fresh random synthetic tag.
func (RandomGenerator) Next() Tag {
	return Tag{Value: uuid.NewString(), Synthetic: true}
}

// TagOf returns ind's real tag, or a fresh synthetic tag from gen when ind
// has no affinity.
func TagOf(ind *roster.Individual, gen TagGenerator) Tag {
	if ind.HasAffinity() {
		return Real(ind.Affinity)
	}
	return gen.Next()
}
