package assign

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/Iron-Ham/cohort/internal/cluster"
	"github.com/Iron-Ham/cohort/internal/errors"
	"github.com/Iron-Ham/cohort/internal/logging"
	"github.com/Iron-Ham/cohort/internal/pool"
	"github.com/Iron-Ham/cohort/internal/roster"
)

func person(id string, pref roster.SlotPreference, affinity string) *roster.Individual {
	return &roster.Individual{ID: id, Preference: pref, Affinity: affinity}
}

func people(prefix string, n int, pref roster.SlotPreference, affinity string) []*roster.Individual {
	out := make([]*roster.Individual, n)
	for i := range out {
		out[i] = person(fmt.Sprintf("%s%02d", prefix, i), pref, affinity)
	}
	return out
}

// checkResult asserts completeness and that the overflowing groups are
// exactly the groups named by a conflict.
func checkResult(t *testing.T, individuals []*roster.Individual, res *Result, capacity int) {
	t.Helper()

	if len(res.Assignment) != len(individuals) {
		t.Errorf("assignment covers %d individuals, want %d", len(res.Assignment), len(individuals))
	}
	for _, ind := range individuals {
		if _, ok := res.GroupOf(ind); !ok {
			t.Errorf("%s has no group", ind.ID)
		}
	}

	total := 0
	for _, g := range res.Groups {
		total += g.Size()
	}
	if total != len(individuals) {
		t.Errorf("groups hold %d members, want %d", total, len(individuals))
	}

	named := make(map[pool.GroupID]bool)
	for _, c := range res.Conflicts {
		named[c.Group] = true
	}
	for _, g := range res.Groups {
		if over := g.Size() > capacity; over != named[g.ID()] {
			t.Errorf("group %s: size %d, over capacity %v, named by conflict %v",
				g.ID(), g.Size(), over, named[g.ID()])
		}
	}
}

func checkSlotsHonored(t *testing.T, individuals []*roster.Individual, res *Result) {
	t.Helper()
	for _, ind := range individuals {
		if ind.Preference.IsNone() {
			continue
		}
		id, _ := res.GroupOf(ind)
		if id.Slot != ind.Preference.Slot {
			t.Errorf("%s prefers %s but was placed in %s", ind.ID, ind.Preference.Slot, id)
		}
	}
}

func TestAssign_InfeasibleSlot(t *testing.T) {
	individuals := people("s", 50, roster.Strong("tuesday"), "")
	slots := []roster.Slot{{Name: "tuesday", Groups: 2}}

	res, err := Assign(individuals, slots, 24)
	if res != nil {
		t.Errorf("expected no result for infeasible input, got %+v", res)
	}
	if !errors.Is(err, errors.ErrCapacityExceeded) {
		t.Fatalf("error = %v, want ErrCapacityExceeded", err)
	}

	var capErr *errors.CapacityError
	if !errors.As(err, &capErr) {
		t.Fatalf("error %T is not a *CapacityError", err)
	}
	if capErr.Slot != "tuesday" || capErr.Demand != 50 || capErr.Capacity != 48 {
		t.Errorf("CapacityError = {%s %d %d}, want {tuesday 50 48}", capErr.Slot, capErr.Demand, capErr.Capacity)
	}
}

func TestAssign_InfeasibleDemandCountsWeakAndStrong(t *testing.T) {
	individuals := append(people("w", 3, roster.Weak("mon"), ""), people("s", 2, roster.Strong("mon"), "")...)
	slots := []roster.Slot{{Name: "mon", Groups: 1}}

	_, err := Assign(individuals, slots, 4)
	var capErr *errors.CapacityError
	if !errors.As(err, &capErr) {
		t.Fatalf("error = %v, want *CapacityError", err)
	}
	if capErr.Demand != 5 {
		t.Errorf("Demand = %d, want 5", capErr.Demand)
	}
}

func TestAssign_InfeasibleReportsFirstSlotInOrder(t *testing.T) {
	individuals := append(people("a", 3, roster.Weak("b"), ""), people("b", 3, roster.Weak("a"), "")...)
	slots := []roster.Slot{{Name: "b", Groups: 1}, {Name: "a", Groups: 1}}

	_, err := Assign(individuals, slots, 2)
	var capErr *errors.CapacityError
	if !errors.As(err, &capErr) {
		t.Fatalf("error = %v, want *CapacityError", err)
	}
	if capErr.Slot != "b" {
		t.Errorf("Slot = %s, want b", capErr.Slot)
	}
}

func TestAssign_SharedTagWithoutPreference(t *testing.T) {
	individuals := people("p", 3, roster.NoPreference(), "7")
	slots := []roster.Slot{{Name: "only", Groups: 1}}

	res, err := Assign(individuals, slots, 24)
	if err != nil {
		t.Fatalf("Assign() error = %v", err)
	}

	want := pool.GroupID{Slot: "only", Index: 0}
	for _, ind := range individuals {
		if got, _ := res.GroupOf(ind); got != want {
			t.Errorf("%s in %s, want %s", ind.ID, got, want)
		}
	}
	if len(res.Conflicts) != 0 {
		t.Errorf("unexpected conflicts: %v", res.Conflicts)
	}
}

func TestAssign_GlobalPhasePullsTowardSeatedTag(t *testing.T) {
	anchor := person("anchor", roster.Weak("thu"), "7")
	friends := people("f", 3, roster.NoPreference(), "7")
	individuals := append([]*roster.Individual{anchor}, friends...)
	slots := []roster.Slot{{Name: "tue", Groups: 2}, {Name: "thu", Groups: 2}}

	res, err := Assign(individuals, slots, 24)
	if err != nil {
		t.Fatalf("Assign() error = %v", err)
	}

	seat, _ := res.GroupOf(anchor)
	if seat.Slot != "thu" {
		t.Fatalf("anchor placed in %s, want a thu group", seat)
	}
	for _, f := range friends {
		if got, _ := res.GroupOf(f); got != seat {
			t.Errorf("%s in %s, want %s with its tag", f.ID, got, seat)
		}
	}
	checkResult(t, individuals, res, 24)
}

func TestAssign_SlotHonoring(t *testing.T) {
	var individuals []*roster.Individual
	individuals = append(individuals, people("mw", 20, roster.Weak("mon"), "")...)
	individuals = append(individuals, people("ms", 10, roster.Strong("mon"), "band")...)
	individuals = append(individuals, people("ws", 15, roster.Strong("wed"), "")...)
	individuals = append(individuals, people("ww", 6, roster.Weak("wed"), "band")...)
	individuals = append(individuals, people("n", 25, roster.NoPreference(), "")...)
	individuals = append(individuals, people("nb", 4, roster.NoPreference(), "band")...)
	slots := []roster.Slot{{Name: "mon", Groups: 2}, {Name: "wed", Groups: 2}}

	res, err := Assign(individuals, slots, 20)
	if err != nil {
		t.Fatalf("Assign() error = %v", err)
	}
	checkSlotsHonored(t, individuals, res)
	checkResult(t, individuals, res, 20)
}

func TestAssign_StrengthDoesNotChangePacking(t *testing.T) {
	build := func(pref func(string) roster.SlotPreference) []*roster.Individual {
		var out []*roster.Individual
		for i := 0; i < 10; i++ {
			out = append(out, person(fmt.Sprintf("p%d", i), pref("fri"), fmt.Sprintf("t%d", i%3)))
		}
		return out
	}
	slots := []roster.Slot{{Name: "fri", Groups: 3}}

	weak := build(roster.Weak)
	strong := build(roster.Strong)

	wr, err := Assign(weak, slots, 5)
	if err != nil {
		t.Fatalf("Assign(weak) error = %v", err)
	}
	sr, err := Assign(strong, slots, 5)
	if err != nil {
		t.Fatalf("Assign(strong) error = %v", err)
	}

	for i := range weak {
		w, _ := wr.GroupOf(weak[i])
		s, _ := sr.GroupOf(strong[i])
		if w != s {
			t.Errorf("%s: weak -> %s, strong -> %s", weak[i].ID, w, s)
		}
	}
}

func TestAssign_AffinityKeptWhenItFits(t *testing.T) {
	var individuals []*roster.Individual
	individuals = append(individuals, people("a", 5, roster.Weak("sat"), "red")...)
	individuals = append(individuals, people("b", 4, roster.Strong("sat"), "blue")...)
	individuals = append(individuals, people("c", 6, roster.Weak("sat"), "")...)
	slots := []roster.Slot{{Name: "sat", Groups: 2}}

	res, err := Assign(individuals, slots, 10)
	if err != nil {
		t.Fatalf("Assign() error = %v", err)
	}

	byTag := make(map[string]pool.GroupID)
	for _, ind := range individuals {
		if !ind.HasAffinity() {
			continue
		}
		id, _ := res.GroupOf(ind)
		if prev, ok := byTag[ind.Affinity]; ok && prev != id {
			t.Errorf("tag %s split across %s and %s", ind.Affinity, prev, id)
		}
		byTag[ind.Affinity] = id
	}
	checkResult(t, individuals, res, 10)
}

func TestAssign_IrreducibleConflictIsReported(t *testing.T) {
	var individuals []*roster.Individual
	for i := 0; i < 3; i++ {
		individuals = append(individuals, people(fmt.Sprintf("t%d-", i), 2, roster.Weak("x"), fmt.Sprintf("pair%d", i))...)
	}
	slots := []roster.Slot{{Name: "x", Groups: 2}}

	// Three pairs into two groups of 3: 6 fits in total but pairs cannot
	// share a group of 3 without one overflowing.
	res, err := Assign(individuals, slots, 3)
	if err != nil {
		t.Fatalf("Assign() error = %v", err)
	}
	if len(res.Conflicts) == 0 {
		t.Fatal("expected an irreducible conflict")
	}
	checkResult(t, individuals, res, 3)
	if res.Summary().Overflowing == 0 {
		t.Error("summary should count the overflowing group")
	}
}

func TestAssign_Validation(t *testing.T) {
	tests := []struct {
		name        string
		individuals []*roster.Individual
		slots       []roster.Slot
		capacity    int
		wantField   string
		wantCause   error
	}{
		{
			name:      "zero capacity",
			slots:     []roster.Slot{{Name: "a", Groups: 1}},
			capacity:  0,
			wantField: "capacity",
		},
		{
			name:      "slot without groups",
			slots:     []roster.Slot{{Name: "a", Groups: 0}},
			capacity:  10,
			wantField: "slots[0].groups",
		},
		{
			name:      "blank slot name",
			slots:     []roster.Slot{{Name: "a", Groups: 1}, {Name: " ", Groups: 1}},
			capacity:  10,
			wantField: "slots[1].name",
		},
		{
			name:      "duplicate slot",
			slots:     []roster.Slot{{Name: "a", Groups: 1}, {Name: "a", Groups: 2}},
			capacity:  10,
			wantField: "slots[1].name",
			wantCause: errors.ErrDuplicateSlot,
		},
		{
			name:        "unknown preferred slot",
			individuals: []*roster.Individual{person("x", roster.NoPreference(), ""), person("y", roster.Weak("b"), "")},
			slots:       []roster.Slot{{Name: "a", Groups: 1}},
			capacity:    10,
			wantField:   "individuals[1].preference",
			wantCause:   errors.ErrUnknownSlot,
		},
		{
			name:        "nil individual",
			individuals: []*roster.Individual{nil},
			slots:       []roster.Slot{{Name: "a", Groups: 1}},
			capacity:    10,
			wantField:   "individuals[0]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Assign(tt.individuals, tt.slots, tt.capacity)

			var valErr *errors.ValidationError
			if !errors.As(err, &valErr) {
				t.Fatalf("error = %v, want *ValidationError", err)
			}
			if valErr.Field != tt.wantField {
				t.Errorf("Field = %q, want %q", valErr.Field, tt.wantField)
			}
			if !errors.Is(err, errors.ErrInvalidInput) {
				t.Error("validation errors should match ErrInvalidInput")
			}
			if tt.wantCause != nil && !errors.Is(err, tt.wantCause) {
				t.Errorf("error %v does not wrap %v", err, tt.wantCause)
			}
		})
	}
}

func TestAssign_NoSlots(t *testing.T) {
	t.Run("unconstrained individuals", func(t *testing.T) {
		_, err := Assign(people("p", 2, roster.NoPreference(), ""), nil, 10)
		if !errors.Is(err, errors.ErrNoGroups) {
			t.Errorf("error = %v, want ErrNoGroups", err)
		}
	})

	t.Run("empty population", func(t *testing.T) {
		res, err := Assign(nil, nil, 10)
		if err != nil {
			t.Fatalf("Assign() error = %v", err)
		}
		if len(res.Assignment) != 0 || len(res.Groups) != 0 {
			t.Errorf("expected empty result, got %+v", res)
		}
	})
}

func TestAssign_Deterministic(t *testing.T) {
	var individuals []*roster.Individual
	for i := 0; i < 60; i++ {
		pref := roster.NoPreference()
		switch i % 4 {
		case 0:
			pref = roster.Weak("am")
		case 1:
			pref = roster.Strong("pm")
		}
		aff := ""
		if i%3 == 0 {
			aff = fmt.Sprintf("g%d", i%5)
		}
		individuals = append(individuals, person(fmt.Sprintf("p%02d", i), pref, aff))
	}
	slots := []roster.Slot{{Name: "am", Groups: 2}, {Name: "pm", Groups: 2}}

	first, err := Assign(individuals, slots, 16)
	if err != nil {
		t.Fatalf("first Assign() error = %v", err)
	}
	second, err := Assign(individuals, slots, 16)
	if err != nil {
		t.Fatalf("second Assign() error = %v", err)
	}

	byID := func(r *Result) map[string]string {
		out := make(map[string]string)
		for ind, id := range r.Assignment {
			out[ind.ID] = id.String()
		}
		return out
	}
	if diff := cmp.Diff(byID(first), byID(second)); diff != "" {
		t.Errorf("runs differ (-first +second):\n%s", diff)
	}
	checkSlotsHonored(t, individuals, first)
	checkResult(t, individuals, first, 16)
}

type recordingGenerator struct {
	calls int
}

func (g *recordingGenerator) Next() cluster.Tag {
	g.calls++
	return cluster.Tag{Value: fmt.Sprintf("r%d", g.calls), Synthetic: true}
}

func TestEngine_Options(t *testing.T) {
	gen := &recordingGenerator{}
	var logs bytes.Buffer
	logger := logging.NewWriterLogger(&logs, logging.LevelInfo)

	individuals := append(people("a", 2, roster.NoPreference(), ""), people("b", 2, roster.Weak("s"), "x")...)
	engine := New(5, WithTagGenerator(gen), WithLogger(logger))

	if _, err := engine.Assign(individuals, []roster.Slot{{Name: "s", Groups: 1}}); err != nil {
		t.Fatalf("Assign() error = %v", err)
	}
	if gen.calls != 2 {
		t.Errorf("generator called %d times, want 2 (one per untagged individual)", gen.calls)
	}

	out := logs.String()
	for _, want := range []string{`"phase":"slots"`, `"slot":"s"`, `"phase":"global"`, "assignment complete"} {
		if !strings.Contains(out, want) {
			t.Errorf("logs missing %s:\n%s", want, out)
		}
	}
}

func TestResult_Summary(t *testing.T) {
	individuals := append(people("m", 7, roster.Weak("mon"), ""), people("n", 2, roster.NoPreference(), "")...)
	slots := []roster.Slot{{Name: "mon", Groups: 2}, {Name: "tue", Groups: 1}}

	res, err := Assign(individuals, slots, 5)
	if err != nil {
		t.Fatalf("Assign() error = %v", err)
	}

	s := res.Summary()
	if s.Population != 9 {
		t.Errorf("Population = %d, want 9", s.Population)
	}
	if s.Capacity != 15 {
		t.Errorf("Capacity = %d, want 15", s.Capacity)
	}
	if len(s.Slots) != 2 || s.Slots[0].Slot != "mon" || s.Slots[1].Slot != "tue" {
		t.Fatalf("slot order = %+v", s.Slots)
	}
	if len(s.Slots[0].Groups) != 2 || len(s.Slots[1].Groups) != 1 {
		t.Errorf("group counts = %d/%d, want 2/1", len(s.Slots[0].Groups), len(s.Slots[1].Groups))
	}
	if s.Slots[0].Capacity != 10 {
		t.Errorf("mon capacity = %d, want 10", s.Slots[0].Capacity)
	}
	if s.Overflowing != 0 {
		t.Errorf("Overflowing = %d, want 0", s.Overflowing)
	}

	id := s.Slots[1].Groups[0].ID
	if g := res.Group(id); g == nil || g.ID() != id {
		t.Errorf("Group(%s) = %v", id, g)
	}
	if res.Group(pool.GroupID{Slot: "nope"}) != nil {
		t.Error("Group() of unknown id should be nil")
	}
}
