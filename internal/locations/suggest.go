// Package locations helps users name graph nodes the service knows about.
package locations

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// Known is the set of location names reported by the routing service.
type Known struct {
	names []string
	index map[string]struct{}
}

// NewKnown builds a Known set; blank and duplicate names are dropped and the
// rest kept sorted.
func NewKnown(names []string) Known {
	k := Known{index: make(map[string]struct{}, len(names))}
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		if _, dup := k.index[n]; dup {
			continue
		}
		k.index[n] = struct{}{}
		k.names = append(k.names, n)
	}
	sort.Strings(k.names)
	return k
}

// Names returns the sorted location names.
func (k Known) Names() []string {
	out := make([]string, len(k.names))
	copy(out, k.names)
	return out
}

func (k Known) Len() int { return len(k.names) }

// Contains reports an exact, case-sensitive match.
func (k Known) Contains(name string) bool {
	_, ok := k.index[strings.TrimSpace(name)]
	return ok
}

// Suggest returns the known name closest to input when input is not itself
// known and the edit distance is small enough to be a plausible typo.
// Comparison ignores case so "warehouse" suggests "Warehouse".
func (k Known) Suggest(input string) (string, bool) {
	input = strings.TrimSpace(input)
	if input == "" || k.Contains(input) {
		return "", false
	}
	lower := strings.ToLower(input)
	best, bestDist := "", -1
	for _, n := range k.names {
		d := levenshtein.ComputeDistance(lower, strings.ToLower(n))
		if bestDist < 0 || d < bestDist {
			best, bestDist = n, d
		}
	}
	if bestDist < 0 || bestDist > threshold(input) {
		return "", false
	}
	return best, true
}

func threshold(input string) int {
	t := len([]rune(input)) / 3
	if t < 2 {
		return 2
	}
	return t
}
