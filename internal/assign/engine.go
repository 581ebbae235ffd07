package assign

import (
	"fmt"
	"strings"
	"time"

	"github.com/Iron-Ham/cohort/internal/cluster"
	"github.com/Iron-Ham/cohort/internal/errors"
	"github.com/Iron-Ham/cohort/internal/logging"
	"github.com/Iron-Ham/cohort/internal/packer"
	"github.com/Iron-Ham/cohort/internal/pool"
	"github.com/Iron-Ham/cohort/internal/roster"
)

// Phase names used in log output.
const (
	PhaseSlots  = "slots"
	PhaseGlobal = "global"
)

// Option configures an Engine.
type Option func(*Engine)

// WithTagGenerator sets the synthetic tag source. By default each run uses
// a fresh cluster.CounterGenerator, which makes runs reproducible.
func WithTagGenerator(gen cluster.TagGenerator) Option {
	return func(e *Engine) {
		e.gen = gen
	}
}

// WithLogger sets the engine's logger.
func WithLogger(logger *logging.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// Engine assigns individuals to groups of a fixed capacity. An Engine holds
// no per-run state and may be reused.
type Engine struct {
	capacity int
	gen      cluster.TagGenerator
	logger   *logging.Logger
}

// New creates an Engine for groups of capacity members.
func New(capacity int, opts ...Option) *Engine {
	e := &Engine{
		capacity: capacity,
		logger:   logging.NopLogger(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Assign runs an Engine with default options.
func Assign(individuals []*roster.Individual, slots []roster.Slot, capacity int) (*Result, error) {
	return New(capacity).Assign(individuals, slots)
}

// Assign places every individual in exactly one group.
//
// It returns *errors.ValidationError for malformed input, *errors.CapacityError
// when a slot's demand exceeds its total capacity, and errors.ErrNoGroups when
// individuals without a preference exist but no slot does. Over-capacity
// placements are reported in Result.Conflicts and do not fail the run.
func (e *Engine) Assign(individuals []*roster.Individual, slots []roster.Slot) (*Result, error) {
	if err := e.validate(individuals, slots); err != nil {
		return nil, err
	}
	if err := e.checkFeasible(individuals, slots); err != nil {
		e.logger.Warn("assignment infeasible", "error", err.Error())
		return nil, err
	}

	var unconstrained []*roster.Individual
	for _, ind := range individuals {
		if ind.Preference.IsNone() {
			unconstrained = append(unconstrained, ind)
		}
	}
	if len(unconstrained) > 0 && len(slots) == 0 {
		return nil, errors.ErrNoGroups
	}

	gen := e.gen
	if gen == nil {
		gen = cluster.NewCounterGenerator("")
	}

	start := time.Now()
	res := &Result{
		Assignment: make(map[*roster.Individual]pool.GroupID, len(individuals)),
		capacity:   e.capacity,
	}

	var seq pool.Sequence
	pools := make([]*pool.Pool, 0, len(slots))
	for _, slot := range slots {
		groups := seq.NewSlotGroups(slot.Name, slot.Groups, e.capacity)
		gp := pool.New(groups...)
		pools = append(pools, gp)
		res.Groups = append(res.Groups, groups...)
		res.slots = append(res.slots, slot.Name)

		var candidates []*roster.Individual
		for _, ind := range individuals {
			if ind.Preference.Prefers(slot.Name) {
				candidates = append(candidates, ind)
			}
		}

		log := e.logger.WithPhase(PhaseSlots).WithSlot(slot.Name)
		conflicts, err := e.pack(log, candidates, gp, false, gen)
		if err != nil {
			return nil, errors.Wrapf(err, "pack slot %s", slot.Name)
		}
		res.Conflicts = append(res.Conflicts, conflicts...)
	}

	if len(unconstrained) > 0 {
		log := e.logger.WithPhase(PhaseGlobal)
		conflicts, err := e.pack(log, unconstrained, pool.Merge(pools...), true, gen)
		if err != nil {
			return nil, errors.Wrap(err, "pack unconstrained individuals")
		}
		res.Conflicts = append(res.Conflicts, conflicts...)
	}

	for _, g := range res.Groups {
		for _, m := range g.Members() {
			res.Assignment[m] = g.ID()
		}
	}

	e.logger.Info("assignment complete",
		"individuals", len(individuals),
		"groups", len(res.Groups),
		"conflicts", len(res.Conflicts),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return res, nil
}

// pack clusters candidates and packs them into gp.
func (e *Engine) pack(log *logging.Logger, candidates []*roster.Individual, gp *pool.Pool, matchExisting bool, gen cluster.TagGenerator) ([]packer.Conflict, error) {
	clusters := cluster.ByAffinity(candidates, gen)
	log.Info("packing phase started",
		"candidates", len(candidates),
		"clusters", len(clusters),
		"groups", gp.Len(),
	)

	conflicts, err := packer.New(e.capacity, packer.WithLogger(log)).Pack(clusters, gp, matchExisting)
	if err != nil {
		return nil, err
	}

	log.Info("packing phase completed", "conflicts", len(conflicts))
	return conflicts, nil
}

// validate rejects input the packer cannot run on.
func (e *Engine) validate(individuals []*roster.Individual, slots []roster.Slot) error {
	if e.capacity <= 0 {
		return errors.NewValidationError("capacity per group must be positive").
			WithField("capacity").
			WithValue(e.capacity)
	}

	known := make(map[string]bool, len(slots))
	for i, slot := range slots {
		field := fmt.Sprintf("slots[%d]", i)
		if strings.TrimSpace(slot.Name) == "" {
			return errors.NewValidationError("slot name is required").
				WithField(field + ".name")
		}
		if slot.Groups <= 0 {
			return errors.NewValidationError("slot must have at least one group").
				WithField(field + ".groups").
				WithValue(slot.Groups)
		}
		if known[slot.Name] {
			return errors.NewValidationError("slot name is not unique").
				WithField(field + ".name").
				WithValue(slot.Name).
				WithCause(errors.ErrDuplicateSlot)
		}
		known[slot.Name] = true
	}

	for i, ind := range individuals {
		if ind == nil {
			return errors.NewValidationError("individual is nil").
				WithField(fmt.Sprintf("individuals[%d]", i))
		}
		if !ind.Preference.IsNone() && !known[ind.Preference.Slot] {
			return errors.NewValidationError("preference names an unknown slot").
				WithField(fmt.Sprintf("individuals[%d].preference", i)).
				WithValue(ind.Preference.Slot).
				WithCause(errors.ErrUnknownSlot)
		}
	}
	return nil
}

// checkFeasible fails on the first slot, in catalogue order, whose demand
// exceeds groups × capacity.
func (e *Engine) checkFeasible(individuals []*roster.Individual, slots []roster.Slot) error {
	demand := make(map[string]int, len(slots))
	for _, ind := range individuals {
		if !ind.Preference.IsNone() {
			demand[ind.Preference.Slot]++
		}
	}
	for _, slot := range slots {
		total := slot.Groups * e.capacity
		if demand[slot.Name] > total {
			return errors.NewCapacityError(slot.Name, demand[slot.Name], total)
		}
	}
	return nil
}
