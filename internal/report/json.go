package report

import (
	"encoding/json"
	"io"

	"github.com/Iron-Ham/cohort/internal/assign"
	"github.com/Iron-Ham/cohort/internal/packer"
	"github.com/Iron-Ham/cohort/internal/roster"
)

// Document is the JSON form of a report.
type Document struct {
	Summary   assign.Summary   `json:"summary"`
	Conflicts []ConflictJSON   `json:"conflicts"`
	Warnings  []roster.Warning `json:"warnings"`
}

// ConflictJSON flattens a packer.Conflict for JSON output.
type ConflictJSON struct {
	packer.Conflict
	Tag       string `json:"tag"`
	Synthetic bool   `json:"synthetic,omitempty"`
}

// NewDocument assembles a Document. Nil slices become empty arrays.
func NewDocument(summary assign.Summary, conflicts []packer.Conflict, warnings []roster.Warning) Document {
	doc := Document{
		Summary:   summary,
		Conflicts: make([]ConflictJSON, 0, len(conflicts)),
		Warnings:  warnings,
	}
	for _, c := range conflicts {
		doc.Conflicts = append(doc.Conflicts, ConflictJSON{
			Conflict:  c,
			Tag:       c.Tag.Value,
			Synthetic: c.Tag.Synthetic,
		})
	}
	if doc.Warnings == nil {
		doc.Warnings = []roster.Warning{}
	}
	return doc
}

// JSON writes the report as an indented JSON document.
func JSON(w io.Writer, summary assign.Summary, conflicts []packer.Conflict, warnings []roster.Warning) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(NewDocument(summary, conflicts, warnings))
}
