package roster

import "fmt"

// Check runs the advisory sanity checks on a loaded population: duplicate
// ids, missing names, and affinity tags with more members than one group
// holds (those clusters will be split). capacity <= 0 skips the last check.
// Warnings are returned in order of first appearance.
func Check(individuals []*Individual, capacity int) []Warning {
	var warnings []Warning

	idCount := make(map[string]int)
	var idOrder []string
	tagCount := make(map[string]int)
	var tagOrder []string

	for _, ind := range individuals {
		if idCount[ind.ID] == 0 {
			idOrder = append(idOrder, ind.ID)
		}
		idCount[ind.ID]++

		if ind.Name == "" {
			warnings = append(warnings, Warning{
				Kind:    WarnMissingName,
				ID:      ind.ID,
				Message: "no display name",
			})
		}

		if ind.HasAffinity() {
			if tagCount[ind.Affinity] == 0 {
				tagOrder = append(tagOrder, ind.Affinity)
			}
			tagCount[ind.Affinity]++
		}
	}

	for _, id := range idOrder {
		if n := idCount[id]; n > 1 {
			warnings = append(warnings, Warning{
				Kind:    WarnDuplicateID,
				ID:      id,
				Message: fmt.Sprintf("id appears %d times", n),
			})
		}
	}

	if capacity > 0 {
		for _, tag := range tagOrder {
			if n := tagCount[tag]; n > capacity {
				warnings = append(warnings, Warning{
					Kind:    WarnOversizedAffinity,
					Message: fmt.Sprintf("affinity %q has %d members but a group holds %d; it will be split", tag, n, capacity),
				})
			}
		}
	}

	return warnings
}
