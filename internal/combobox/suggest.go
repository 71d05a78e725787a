package combobox

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// Suggest returns the option label closest to query by edit distance, for
// the empty-result hint. It gives up when the best distance exceeds half of
// the query length.
func Suggest(options []Option, query string) (string, bool) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" || len(options) == 0 {
		return "", false
	}
	limit := (len([]rune(q)) + 1) / 2
	best, bestDist := "", -1
	for _, opt := range options {
		d := levenshtein.ComputeDistance(q, strings.ToLower(opt.Label))
		if bestDist < 0 || d < bestDist {
			best, bestDist = opt.Label, d
		}
	}
	if bestDist < 0 || bestDist > limit {
		return "", false
	}
	return best, true
}
