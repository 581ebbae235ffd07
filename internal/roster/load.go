package roster

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
	"gopkg.in/yaml.v3"

	"github.com/Iron-Ham/cohort/internal/errors"
)

// Columns names the CSV header for each field. Header matching is
// case-insensitive and ignores surrounding whitespace.
type Columns struct {
	ID         string `mapstructure:"id"`
	Name       string `mapstructure:"name"`
	Preference string `mapstructure:"preference"`
	Affinity   string `mapstructure:"affinity"`
}

// DefaultColumns returns the header names used when none are configured.
func DefaultColumns() Columns {
	return Columns{
		ID:         "id",
		Name:       "name",
		Preference: "preference",
		Affinity:   "affinity",
	}
}

// Warning kinds reported by the loader and Check.
const (
	WarnMissingID         = "missing-id"
	WarnExcluded          = "excluded"
	WarnBadPreference     = "unrecognized-preference"
	WarnDuplicateID       = "duplicate-id"
	WarnMissingName       = "missing-name"
	WarnOversizedAffinity = "oversized-affinity"
)

// Warning is an advisory finding about the roster. Warnings never stop a run.
type Warning struct {
	Kind    string `json:"kind"`
	Line    int    `json:"line,omitempty"`
	ID      string `json:"id,omitempty"`
	Message string `json:"message"`
}

// String renders the warning on one line.
func (w Warning) String() string {
	var b strings.Builder
	if w.Line > 0 {
		fmt.Fprintf(&b, "line %d: ", w.Line)
	}
	if w.ID != "" {
		fmt.Fprintf(&b, "%s: ", w.ID)
	}
	b.WriteString(w.Message)
	return b.String()
}

// Loader reads rosters into Individuals.
type Loader struct {
	columns  Columns
	parser   *PreferenceParser
	patterns []string
	exclude  []glob.Glob
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithColumns overrides the CSV header names.
func WithColumns(c Columns) LoaderOption {
	return func(l *Loader) {
		l.columns = c
	}
}

// WithExclude drops individuals whose ID matches any of the glob patterns.
func WithExclude(patterns ...string) LoaderOption {
	return func(l *Loader) {
		l.patterns = append(l.patterns, patterns...)
	}
}

// NewLoader creates a Loader that resolves preferences with parser.
func NewLoader(parser *PreferenceParser, opts ...LoaderOption) (*Loader, error) {
	l := &Loader{
		columns: DefaultColumns(),
		parser:  parser,
	}
	for _, opt := range opts {
		opt(l)
	}
	for _, pattern := range l.patterns {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, errors.NewValidationError("invalid exclude pattern").
				WithField("roster.exclude").WithValue(pattern).WithCause(err)
		}
		l.exclude = append(l.exclude, g)
	}
	return l, nil
}

// LoadFile reads a roster, choosing the format from the file extension.
func (l *Loader) LoadFile(path string) ([]*Individual, []Warning, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, errors.NewRosterError("failed to open roster", err).WithPath(path)
	}
	defer f.Close()

	var (
		individuals []*Individual
		warnings    []Warning
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		individuals, warnings, err = l.LoadCSV(f)
	case ".yaml", ".yml":
		individuals, warnings, err = l.LoadYAML(f)
	default:
		return nil, nil, errors.NewRosterError("unsupported roster extension "+filepath.Ext(path), errors.ErrRosterFormat).WithPath(path)
	}
	if err != nil {
		var rosterErr *errors.RosterError
		if errors.As(err, &rosterErr) && rosterErr.Path == "" {
			rosterErr.WithPath(path)
		}
		return nil, nil, err
	}
	return individuals, warnings, nil
}

// record is one raw roster row before normalization.
type record struct {
	Line       int    `yaml:"-"`
	ID         string `yaml:"id"`
	Name       string `yaml:"name"`
	Preference string `yaml:"preference"`
	Affinity   string `yaml:"affinity"`
}

// LoadCSV reads a CSV roster with a header row.
func (l *Loader) LoadCSV(r io.Reader) ([]*Individual, []Warning, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, errors.NewRosterError("failed to read header", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.ToLower(strings.TrimSpace(name))] = i
	}
	column := func(name string) int {
		if i, ok := index[strings.ToLower(strings.TrimSpace(name))]; ok && name != "" {
			return i
		}
		return -1
	}

	idCol := column(l.columns.ID)
	if idCol < 0 {
		return nil, nil, errors.NewRosterError(fmt.Sprintf("missing %q column", l.columns.ID), errors.ErrRosterFormat).WithLine(1)
	}
	nameCol := column(l.columns.Name)
	prefCol := column(l.columns.Preference)
	affCol := column(l.columns.Affinity)

	field := func(row []string, col int) string {
		if col < 0 || col >= len(row) {
			return ""
		}
		return row[col]
	}

	var records []record
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, errors.NewRosterError("failed to read row", errors.Join(errors.ErrRosterFormat, err))
		}
		line, _ := cr.FieldPos(0)
		records = append(records, record{
			Line:       line,
			ID:         field(row, idCol),
			Name:       field(row, nameCol),
			Preference: field(row, prefCol),
			Affinity:   field(row, affCol),
		})
	}

	individuals, warnings := l.build(records)
	return individuals, warnings, nil
}

// yamlRoster is the YAML roster document.
type yamlRoster struct {
	Individuals []record `yaml:"individuals"`
}

// LoadYAML reads a YAML roster of the form:
//
//	individuals:
//	  - id: s-001
//	    name: Ada
//	    preference: tuesday only
//	    affinity: "7"
func (l *Loader) LoadYAML(r io.Reader) ([]*Individual, []Warning, error) {
	var doc yamlRoster
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, nil, nil
		}
		return nil, nil, errors.NewRosterError("failed to decode YAML roster", errors.Join(errors.ErrRosterFormat, err))
	}

	individuals, warnings := l.build(doc.Individuals)
	return individuals, warnings, nil
}

// build normalizes raw records, applying exclusion and preference parsing.
func (l *Loader) build(records []record) ([]*Individual, []Warning) {
	individuals := make([]*Individual, 0, len(records))
	var warnings []Warning

	for _, rec := range records {
		id := strings.TrimSpace(rec.ID)
		if id == "" {
			warnings = append(warnings, Warning{
				Kind:    WarnMissingID,
				Line:    rec.Line,
				Message: "row has no id; skipped",
			})
			continue
		}
		if l.excluded(id) {
			warnings = append(warnings, Warning{
				Kind:    WarnExcluded,
				Line:    rec.Line,
				ID:      id,
				Message: "matches an exclude pattern; skipped",
			})
			continue
		}

		ind := &Individual{
			ID:       id,
			Name:     strings.TrimSpace(rec.Name),
			Affinity: NormalizeAffinity(rec.Affinity),
		}
		if l.parser != nil {
			pref, err := l.parser.Parse(rec.Preference)
			if err != nil {
				warnings = append(warnings, Warning{
					Kind:    WarnBadPreference,
					Line:    rec.Line,
					ID:      id,
					Message: fmt.Sprintf("preference %q not recognized; treated as no preference", strings.TrimSpace(rec.Preference)),
				})
			}
			ind.Preference = pref
		}
		individuals = append(individuals, ind)
	}
	return individuals, warnings
}

func (l *Loader) excluded(id string) bool {
	for _, g := range l.exclude {
		if g.Match(id) {
			return true
		}
	}
	return false
}
