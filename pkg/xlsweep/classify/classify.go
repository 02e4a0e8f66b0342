// Package classify decides whether a code point is printable and describes it.
package classify

import (
	"fmt"
	"sort"
	"unicode"

	"golang.org/x/text/unicode/runenames"
)

// categoryNames holds the two-letter general category names in a fixed
// lookup order so classification is deterministic.
var categoryNames []string

func init() {
	for name := range unicode.Categories {
		if len(name) == 2 {
			categoryNames = append(categoryNames, name)
		}
	}
	sort.Strings(categoryNames)
}

// Category returns the two-letter Unicode general category of r,
// or "Cn" if the code point is unassigned.
func Category(r rune) string {
	for _, name := range categoryNames {
		if unicode.Is(unicode.Categories[name], r) {
			return name
		}
	}
	return "Cn"
}

// Name returns the Unicode character name of r, or "Unknown character"
// if the code point has no registered name.
func Name(r rune) string {
	if n := runenames.Name(r); n != "" {
		return n
	}
	return "Unknown character"
}

// Classify reports whether r is printable together with a human-readable
// description. ASCII control characters and the C1 range [127,160) are
// always non-printable; otherwise the general category decides: any C*
// category (control, format, surrogate, private use, unassigned) is
// non-printable. Pure function of the code point.
func Classify(r rune) (printable bool, description string) {
	if r < 32 || (r >= 127 && r < 160) {
		return false, "Control character (non-printable)"
	}

	cat := Category(r)
	name := Name(r)

	if cat[0] == 'C' {
		return false, fmt.Sprintf("Unicode category: %s (%s)", cat, name)
	}
	return true, fmt.Sprintf("Unicode: %s (category: %s)", name, cat)
}
