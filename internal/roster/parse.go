package roster

import (
	"slices"
	"strings"
	"unicode"

	"github.com/Iron-Ham/cohort/internal/errors"
)

// DefaultStrongMarkers are the words that upgrade a preference to strong.
var DefaultStrongMarkers = []string{"only", "must", "strong", "strongly", "cannot", "can't"}

// noPreferenceAnswers are normalized answers meaning "any slot is fine".
var noPreferenceAnswers = []string{
	"none", "no preference", "no", "any", "either", "whatever", "n/a", "na", "-",
}

// noAffinityTokens are normalized affinity values meaning "no affinity".
var noAffinityTokens = []string{"none", "n/a", "na", "-"}

// PreferenceParser maps free-text slot answers onto a SlotPreference.
type PreferenceParser struct {
	phrases       map[string]string // normalized slot name or alias -> slot name
	strongMarkers []string          // normalized
}

// NewPreferenceParser builds a parser for the given slot catalogue. aliases
// maps a slot name to extra words that also select it ("tue" for "tuesday").
// A nil strongMarkers uses DefaultStrongMarkers.
func NewPreferenceParser(slots []Slot, aliases map[string][]string, strongMarkers []string) *PreferenceParser {
	if strongMarkers == nil {
		strongMarkers = DefaultStrongMarkers
	}

	p := &PreferenceParser{
		phrases: make(map[string]string),
	}
	for _, slot := range slots {
		if phrase := normalizeWords(slot.Name); phrase != "" {
			p.phrases[phrase] = slot.Name
		}
		for _, alias := range aliases[slot.Name] {
			if phrase := normalizeWords(alias); phrase != "" {
				p.phrases[phrase] = slot.Name
			}
		}
	}
	for _, marker := range strongMarkers {
		if m := normalizeWords(marker); m != "" {
			p.strongMarkers = append(p.strongMarkers, m)
		}
	}
	return p
}

// Parse interprets answer. Blank answers and phrases such as "either" mean no
// preference. Otherwise exactly one slot must be mentioned; the preference is
// strong when a strong marker also appears.
func (p *PreferenceParser) Parse(answer string) (SlotPreference, error) {
	text := normalizeWords(answer)
	trimmed := strings.ToLower(strings.TrimSpace(answer))
	if text == "" || slices.Contains(noPreferenceAnswers, text) || slices.Contains(noPreferenceAnswers, trimmed) {
		return NoPreference(), nil
	}

	var matched []string
	for phrase, slot := range p.phrases {
		if containsPhrase(text, phrase) && !slices.Contains(matched, slot) {
			matched = append(matched, slot)
		}
	}

	switch len(matched) {
	case 1:
	case 0:
		return NoPreference(), errors.NewValidationError("answer names no known slot").
			WithField("preference").WithValue(answer).WithCause(errors.ErrUnrecognizedPreference)
	default:
		slices.Sort(matched)
		return NoPreference(), errors.NewValidationError("answer names several slots: "+strings.Join(matched, ", ")).
			WithField("preference").WithValue(answer).WithCause(errors.ErrUnrecognizedPreference)
	}

	for _, marker := range p.strongMarkers {
		if containsPhrase(text, marker) {
			return Strong(matched[0]), nil
		}
	}
	return Weak(matched[0]), nil
}

// NormalizeAffinity canonicalizes a raw affinity token: trimmed, lowercased,
// without a leading '#', inner whitespace collapsed. Blank tokens and
// placeholders such as "none" or "-" become "" (no affinity).
func NormalizeAffinity(raw string) string {
	token := strings.ToLower(strings.TrimSpace(raw))
	token = strings.TrimSpace(strings.TrimPrefix(token, "#"))
	token = strings.Join(strings.Fields(token), " ")
	if slices.Contains(noAffinityTokens, token) {
		return ""
	}
	return token
}

// normalizeWords lowercases s and joins its words with single spaces.
// Apostrophes stay inside words so "can't" remains one word.
func normalizeWords(s string) string {
	s = strings.ReplaceAll(s, "’", "'")
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\''
	})
	return strings.Join(fields, " ")
}

// containsPhrase reports whether phrase occurs in text on word boundaries.
// Both arguments must already be normalized.
func containsPhrase(text, phrase string) bool {
	return strings.Contains(" "+text+" ", " "+phrase+" ")
}
