// Package pattern builds and decodes the sets of problematic-character
// patterns the scanner searches for.
//
// A pattern is either a single character, matched literally, or an escape
// token such as `\x81` denoting one code point. The default set carries
// both forms for every high byte: a cell holding byte 0x81 matches the
// literal form, while a cell holding the four characters `\x81` as text
// matches the token form. Both are kept deliberately, so the same
// underlying character can surface as two findings depending on how the
// source string was produced.
package pattern

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"xlsweep/pkg/xlsweep/models"
)

// DecodeError indicates an escape token does not denote exactly one
// code point.
type DecodeError struct {
	Token string
	Err   error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("cannot decode pattern %q: %v", e.Token, e.Err)
	}
	return fmt.Sprintf("cannot decode pattern %q to a single character", e.Token)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Default returns the default pattern set: every byte 0x80-0xFF as a
// literal character, followed by every byte's escape-token form, in
// ascending byte order within each pass.
func Default() []string {
	return Range(0x80, 0xFF)
}

// Range builds a pattern set over an inclusive byte range using the same
// two-pass construction as Default: all literals first, then all tokens.
func Range(lo, hi byte) []string {
	n := int(hi) - int(lo) + 1
	patterns := make([]string, 0, 2*n)
	for i := int(lo); i <= int(hi); i++ {
		patterns = append(patterns, string(rune(i)))
	}
	for i := int(lo); i <= int(hi); i++ {
		patterns = append(patterns, fmt.Sprintf(`\x%02x`, i))
	}
	return patterns
}

// Resolve returns the code point a pattern denotes: the character itself
// for single-character patterns, the decoded code point for escape tokens
// (`\xHH`, `\uHHHH`, `\UXXXXXXXX`). Any other form is a DecodeError.
func Resolve(p string) (rune, error) {
	runes := []rune(p)
	switch {
	case len(runes) == 0:
		return 0, &DecodeError{Token: p}
	case len(runes) == 1:
		return runes[0], nil
	}

	r, _, tail, err := strconv.UnquoteChar(p, 0)
	if err != nil {
		return 0, &DecodeError{Token: p, Err: err}
	}
	if tail != "" {
		return 0, &DecodeError{Token: p}
	}
	return r, nil
}

// Decoded returns the single-character string form of a pattern, decoding
// escape tokens first.
func Decoded(p string) (string, error) {
	r, err := Resolve(p)
	if err != nil {
		return "", err
	}
	return string(r), nil
}

// ParseTarget interprets a caller-supplied target pattern: an argument
// containing a backslash is decoded as an escape token, anything else is
// used verbatim.
//
// Known limitation inherited from the original tool: a genuine literal
// backslash in a target argument is always taken for an escape token and
// cannot be searched for directly.
func ParseTarget(arg string) (string, error) {
	if !strings.Contains(arg, `\`) {
		return arg, nil
	}
	return Decoded(arg)
}

// HexLabel renders the hex form of a pattern for reports: "0x%02x" of the
// code point for single-character patterns, the token text verbatim for
// escape tokens.
func HexLabel(p string) string {
	if runes := []rune(p); len(runes) == 1 {
		return fmt.Sprintf("0x%02x", runes[0])
	}
	return p
}

// Union returns the de-duplicated decoded single-character union of every
// pattern appearing in findings, in first-seen order. Tokens that fail to
// decode are skipped with a warning.
func Union(findings []models.Finding) []string {
	seen := make(map[string]struct{})
	var union []string
	for _, f := range findings {
		decoded, err := Decoded(f.Pattern)
		if err != nil {
			slog.Warn("skipping undecodable pattern", "pattern", f.Pattern, "error", err)
			continue
		}
		if _, ok := seen[decoded]; ok {
			continue
		}
		seen[decoded] = struct{}{}
		union = append(union, decoded)
	}
	return union
}
