// Package roster defines the population fed to the assignment engine and the
// collaborators that produce it.
//
// The core types are [Individual], [SlotPreference] and [Slot]. Everything
// else in the package turns raw tabular records into those types: the
// [PreferenceParser] maps free-text answers ("Tuesday only", "either") onto a
// slot and a strength, [NormalizeAffinity] canonicalizes affinity tokens, the
// [Loader] reads CSV and YAML rosters and drops excluded ids, [Check] runs the
// advisory sanity checks, and [Watch] re-triggers a run when the roster file
// changes on disk.
//
// Nothing in this package is consulted by the packing algorithm itself.
package roster
