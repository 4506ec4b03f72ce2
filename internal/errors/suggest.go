package errors

import (
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"
)

// Suggest returns the candidate closest to input, or "" if none is close
// enough to be a likely typo.
func Suggest(input string, candidates []string) string {
	input = strings.ToLower(strings.TrimSpace(input))
	if input == "" {
		return ""
	}

	best, bestDist := "", -1
	for _, c := range candidates {
		d := levenshtein.ComputeDistance(input, strings.ToLower(c))
		if bestDist < 0 || d < bestDist {
			best, bestDist = c, d
		}
	}

	// Roughly one edit per three characters, and never fewer than two so a
	// swapped pair of letters still matches.
	limit := max(len(input)/3, 2)
	if bestDist < 0 || bestDist > limit {
		return ""
	}
	return best
}

// UnknownRoot builds the E002 error for a root name, suggesting the
// closest registered name.
func UnknownRoot(name string, known []string) *TourError {
	err := New("E002").WithDetail("No root is registered under %q.", name)
	if s := Suggest(name, known); s != "" {
		return err.WithSuggestion(fmt.Sprintf("Did you mean %q?", s))
	}
	if len(known) > 0 {
		err.WithSuggestion("Available roots: " + strings.Join(known, ", "))
	}
	return err
}
