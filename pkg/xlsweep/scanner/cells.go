// Package scanner locates pattern occurrences in cell values and whole
// workbooks.
package scanner

// Match pairs a pattern with every position it occurs at in one cell value.
type Match struct {
	// Pattern is the matched pattern as it appears in the pattern set.
	Pattern string
	// Positions holds zero-based character offsets, ascending.
	Positions []int
}

// ScanValue finds all occurrences of each pattern in a cell value.
// Occurrences are leftmost-first and non-overlapping: the search resumes
// past the end of each match, so adjacent matches are reported separately.
// Positions are character offsets, not byte offsets. Patterns with no
// occurrences contribute nothing.
func ScanValue(value string, patterns []string) []Match {
	if value == "" || len(patterns) == 0 {
		return nil
	}

	runes := []rune(value)
	var matches []Match
	for _, p := range patterns {
		positions := occurrences(runes, []rune(p))
		if len(positions) > 0 {
			matches = append(matches, Match{Pattern: p, Positions: positions})
		}
	}
	return matches
}

func occurrences(value, pat []rune) []int {
	if len(pat) == 0 || len(pat) > len(value) {
		return nil
	}

	var positions []int
	for i := 0; i+len(pat) <= len(value); {
		if runesEqual(value[i:i+len(pat)], pat) {
			positions = append(positions, i)
			i += len(pat)
			continue
		}
		i++
	}
	return positions
}

func runesEqual(a, b []rune) bool {
	for i := range b {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
