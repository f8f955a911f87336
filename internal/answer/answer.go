package answer

import "strings"

// boldMarker is the markup wrapper question banks use to highlight answers.
const boldMarker = "**"

// Normalize returns the canonical form of an answer string.
//
// Normalization rules:
// - Bold markers ("**") are removed wherever they appear
// - Surrounding whitespace is trimmed
//
// Normalize is idempotent.
func Normalize(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, boldMarker, ""))
}

// NormalizeAll normalizes every element of answers, preserving order.
func NormalizeAll(answers []string) []string {
	out := make([]string, len(answers))
	for i, a := range answers {
		out[i] = Normalize(a)
	}
	return out
}

// Check reports whether the selected answers match the correct answers.
// Both sides are normalized and compared as sets, so order and duplicates
// do not matter. An empty selection is never correct, even when correct is
// also empty.
func Check(selected, correct []string) bool {
	if len(selected) == 0 {
		return false
	}
	return sameSet(toSet(selected), toSet(correct))
}

// Contains reports whether candidate, once normalized, is one of answers.
func Contains(answers []string, candidate string) bool {
	_, ok := toSet(answers)[Normalize(candidate)]
	return ok
}

func toSet(answers []string) map[string]struct{} {
	set := make(map[string]struct{}, len(answers))
	for _, a := range answers {
		set[Normalize(a)] = struct{}{}
	}
	return set
}

func sameSet(a, b map[string]struct{}) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if _, ok := b[k]; !ok {
			return false
		}
	}
	return true
}
