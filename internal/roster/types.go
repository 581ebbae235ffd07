package roster

import "fmt"

// Strength is how firmly an individual asked for a slot.
type Strength int

const (
	// StrengthNone means the individual expressed no slot preference.
	StrengthNone Strength = iota
	// StrengthWeak is a stated but flexible preference.
	StrengthWeak
	// StrengthStrong is a preference the individual marked as a requirement.
	StrengthStrong
)

// String returns the string representation of the strength.
func (s Strength) String() string {
	switch s {
	case StrengthNone:
		return "none"
	case StrengthWeak:
		return "weak"
	case StrengthStrong:
		return "strong"
	default:
		return "unknown"
	}
}

// SlotPreference names one slot and how strongly it is wanted. The zero value
// is "no preference".
//
// Weak and strong preferences select the same candidate set during packing;
// the strength is carried for reporting only.
type SlotPreference struct {
	Slot     string   `json:"slot,omitempty"`
	Strength Strength `json:"strength"`
}

// NoPreference returns the zero preference.
func NoPreference() SlotPreference {
	return SlotPreference{}
}

// Weak returns a weak preference for slot.
func Weak(slot string) SlotPreference {
	return SlotPreference{Slot: slot, Strength: StrengthWeak}
}

// Strong returns a strong preference for slot.
func Strong(slot string) SlotPreference {
	return SlotPreference{Slot: slot, Strength: StrengthStrong}
}

// IsNone reports whether no slot was requested.
func (p SlotPreference) IsNone() bool {
	return p.Strength == StrengthNone || p.Slot == ""
}

// Prefers reports whether the preference names slot, at any strength.
func (p SlotPreference) Prefers(slot string) bool {
	return !p.IsNone() && p.Slot == slot
}

// String renders "none", "weak:<slot>" or "strong:<slot>".
func (p SlotPreference) String() string {
	if p.IsNone() {
		return "none"
	}
	return fmt.Sprintf("%s:%s", p.Strength, p.Slot)
}

// Individual is one member of the population.
type Individual struct {
	// ID is the roster's unique identifier. Uniqueness is checked by Check
	// but not enforced; the engine keys its result on the pointer.
	ID string `json:"id" yaml:"id"`

	// Name is an optional display name.
	Name string `json:"name,omitempty" yaml:"name,omitempty"`

	// Preference is the requested slot, if any.
	Preference SlotPreference `json:"preference" yaml:"-"`

	// Affinity is the normalized affinity token. Empty means the individual
	// asked to be grouped with nobody in particular.
	Affinity string `json:"affinity,omitempty" yaml:"affinity,omitempty"`
}

// HasAffinity reports whether the individual supplied an affinity token.
func (i *Individual) HasAffinity() bool {
	return i.Affinity != ""
}

// DisplayName returns Name, or ID when no name is set.
func (i *Individual) DisplayName() string {
	if i.Name != "" {
		return i.Name
	}
	return i.ID
}

// Slot is a named bucket owning a fixed number of groups.
type Slot struct {
	Name   string `json:"name" mapstructure:"name"`
	Groups int    `json:"groups" mapstructure:"groups"`
}
