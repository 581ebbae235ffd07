package roster

import "testing"

func TestCheck(t *testing.T) {
	individuals := []*Individual{
		{ID: "s1", Name: "Ada", Affinity: "7"},
		{ID: "s2", Name: "Grace", Affinity: "7"},
		{ID: "s1", Name: "Ada again", Affinity: "7"},
		{ID: "s3"},
	}

	warnings := Check(individuals, 2)

	kinds := make(map[string]int)
	for _, w := range warnings {
		kinds[w.Kind]++
	}
	if kinds[WarnDuplicateID] != 1 {
		t.Errorf("duplicate-id warnings = %d, want 1", kinds[WarnDuplicateID])
	}
	if kinds[WarnMissingName] != 1 {
		t.Errorf("missing-name warnings = %d, want 1", kinds[WarnMissingName])
	}
	if kinds[WarnOversizedAffinity] != 1 {
		t.Errorf("oversized-affinity warnings = %d, want 1", kinds[WarnOversizedAffinity])
	}
}

func TestCheck_Clean(t *testing.T) {
	individuals := []*Individual{
		{ID: "s1", Name: "Ada", Affinity: "7"},
		{ID: "s2", Name: "Grace", Affinity: "7"},
	}
	if warnings := Check(individuals, 24); len(warnings) != 0 {
		t.Errorf("expected no warnings, got %v", warnings)
	}
	if warnings := Check(individuals, 0); len(warnings) != 0 {
		t.Errorf("capacity 0 should skip the size check, got %v", warnings)
	}
}
