// Package report renders assignment results for people and for other tools.
//
// Text draws a styled occupancy overview with lipgloss, JSON emits the same
// information as a single document, and WriteAssignmentsCSV exports the
// individual-to-group mapping.
package report
