package roster

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/Iron-Ham/cohort/internal/errors"
)

func newTestLoader(t *testing.T, opts ...LoaderOption) *Loader {
	t.Helper()
	l, err := NewLoader(testParser(), opts...)
	if err != nil {
		t.Fatalf("NewLoader failed: %v", err)
	}
	return l
}

func TestLoader_LoadCSV(t *testing.T) {
	input := `ID,Name,Preference,Affinity
s1,Ada,Tuesday only,#7
s2,Grace,thursday,7
s3,Linus,,
,Nobody,tuesday,
s4,Ken,monday,none
`
	l := newTestLoader(t)

	got, warnings, err := l.LoadCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("LoadCSV failed: %v", err)
	}

	want := []*Individual{
		{ID: "s1", Name: "Ada", Preference: Strong("tuesday"), Affinity: "7"},
		{ID: "s2", Name: "Grace", Preference: Weak("thursday"), Affinity: "7"},
		{ID: "s3", Name: "Linus"},
		{ID: "s4", Name: "Ken"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("LoadCSV() mismatch (-want +got):\n%s", diff)
	}

	if len(warnings) != 2 {
		t.Fatalf("expected 2 warnings, got %d: %v", len(warnings), warnings)
	}
	if warnings[0].Kind != WarnMissingID || warnings[0].Line != 5 {
		t.Errorf("warnings[0] = %+v, want missing-id on line 5", warnings[0])
	}
	if warnings[1].Kind != WarnBadPreference || warnings[1].ID != "s4" {
		t.Errorf("warnings[1] = %+v, want unrecognized-preference for s4", warnings[1])
	}
}

func TestLoader_LoadCSV_ZeroIsARealTag(t *testing.T) {
	input := "id,affinity\ns1,0\ns2,#0\ns3,-\n"
	l := newTestLoader(t)

	got, _, err := l.LoadCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("LoadCSV failed: %v", err)
	}
	want := []*Individual{
		{ID: "s1", Affinity: "0"},
		{ID: "s2", Affinity: "0"},
		{ID: "s3"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("LoadCSV() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoader_LoadCSV_CustomColumns(t *testing.T) {
	input := "Student Number,Lab Time,Team\n42,tue,blue\n"
	l := newTestLoader(t, WithColumns(Columns{ID: "student number", Preference: "lab time", Affinity: "team"}))

	got, _, err := l.LoadCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("LoadCSV failed: %v", err)
	}
	want := []*Individual{{ID: "42", Preference: Weak("tuesday"), Affinity: "blue"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("LoadCSV() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoader_LoadCSV_MissingIDColumn(t *testing.T) {
	l := newTestLoader(t)

	_, _, err := l.LoadCSV(strings.NewReader("name,preference\nAda,tuesday\n"))
	if err == nil {
		t.Fatal("expected error for missing id column")
	}
	if !errors.Is(err, errors.ErrRosterFormat) {
		t.Errorf("error = %v, want ErrRosterFormat", err)
	}
}

func TestLoader_LoadCSV_Empty(t *testing.T) {
	l := newTestLoader(t)

	got, warnings, err := l.LoadCSV(strings.NewReader(""))
	if err != nil {
		t.Fatalf("LoadCSV failed: %v", err)
	}
	if len(got) != 0 || len(warnings) != 0 {
		t.Errorf("expected empty result, got %v / %v", got, warnings)
	}
}

func TestLoader_Exclude(t *testing.T) {
	input := "id,name\nstaff-1,TA\ns1,Ada\ntest-*,Literal\n"
	l := newTestLoader(t, WithExclude("staff-*", "test-\\*"))

	got, warnings, err := l.LoadCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("LoadCSV failed: %v", err)
	}
	if len(got) != 1 || got[0].ID != "s1" {
		t.Fatalf("expected only s1 to survive exclusion, got %v", got)
	}
	if len(warnings) != 2 {
		t.Fatalf("expected 2 exclusion warnings, got %v", warnings)
	}
	for _, w := range warnings {
		if w.Kind != WarnExcluded {
			t.Errorf("warning kind = %q, want %q", w.Kind, WarnExcluded)
		}
	}
}

func TestNewLoader_InvalidPattern(t *testing.T) {
	_, err := NewLoader(testParser(), WithExclude("[unclosed"))
	if err == nil {
		t.Fatal("expected error for invalid glob pattern")
	}
	if !errors.Is(err, errors.ErrInvalidInput) {
		t.Errorf("error = %v, want validation error", err)
	}
}

func TestLoader_LoadYAML(t *testing.T) {
	input := `
individuals:
  - id: s1
    name: Ada
    preference: tue only
    affinity: "7"
  - id: s2
    affinity: 7
  - id: s3
    preference: either
`
	l := newTestLoader(t)

	got, warnings, err := l.LoadYAML(strings.NewReader(input))
	if err != nil {
		t.Fatalf("LoadYAML failed: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}
	want := []*Individual{
		{ID: "s1", Name: "Ada", Preference: Strong("tuesday"), Affinity: "7"},
		{ID: "s2", Affinity: "7"},
		{ID: "s3"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("LoadYAML() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoader_LoadYAML_Malformed(t *testing.T) {
	l := newTestLoader(t)

	_, _, err := l.LoadYAML(strings.NewReader("individuals: [unterminated"))
	if !errors.Is(err, errors.ErrRosterFormat) {
		t.Errorf("error = %v, want ErrRosterFormat", err)
	}
}

func TestLoader_LoadFile(t *testing.T) {
	dir := t.TempDir()
	l := newTestLoader(t)

	csvPath := filepath.Join(dir, "roster.csv")
	if err := os.WriteFile(csvPath, []byte("id\ns1\ns2\n"), 0644); err != nil {
		t.Fatal(err)
	}
	got, _, err := l.LoadFile(csvPath)
	if err != nil {
		t.Fatalf("LoadFile(csv) failed: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("LoadFile(csv) returned %d individuals, want 2", len(got))
	}

	ymlPath := filepath.Join(dir, "roster.yml")
	if err := os.WriteFile(ymlPath, []byte("individuals:\n  - id: s1\n"), 0644); err != nil {
		t.Fatal(err)
	}
	got, _, err = l.LoadFile(ymlPath)
	if err != nil {
		t.Fatalf("LoadFile(yml) failed: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("LoadFile(yml) returned %d individuals, want 1", len(got))
	}

	txtPath := filepath.Join(dir, "roster.txt")
	if err := os.WriteFile(txtPath, []byte("s1"), 0644); err != nil {
		t.Fatal(err)
	}
	_, _, err = l.LoadFile(txtPath)
	var rosterErr *errors.RosterError
	if !errors.As(err, &rosterErr) {
		t.Fatalf("LoadFile(txt) error = %v, want RosterError", err)
	}
	if rosterErr.Path != txtPath {
		t.Errorf("RosterError.Path = %q, want %q", rosterErr.Path, txtPath)
	}

	_, _, err = l.LoadFile(filepath.Join(dir, "missing.csv"))
	if err == nil {
		t.Error("LoadFile(missing) should fail")
	}
}

func TestWarning_String(t *testing.T) {
	w := Warning{Kind: WarnDuplicateID, Line: 3, ID: "s1", Message: "id appears 2 times"}
	if got := w.String(); got != "line 3: s1: id appears 2 times" {
		t.Errorf("String() = %q", got)
	}
	if got := (Warning{Message: "plain"}).String(); got != "plain" {
		t.Errorf("String() = %q, want plain", got)
	}
}
