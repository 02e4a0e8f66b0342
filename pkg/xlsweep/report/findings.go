package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"

	"xlsweep/pkg/xlsweep/models"
)

const separator = "--------------------------------------------------------------------------------"

// contextPrefix is the label in front of each context snippet; the caret
// line is indented by its width.
const contextPrefix = "Context: ..."

// Snippet returns the context window around one occurrence and a caret
// line pointing at the exact offset. pos is a character offset into value;
// the window extends up to window characters each side. Caret indentation
// uses display width so wide characters do not shift the pointer.
func Snippet(value string, pos, window int) (context, caret string) {
	runes := []rune(value)
	if pos < 0 || pos >= len(runes) {
		return "", ""
	}

	start := pos - window
	if start < 0 {
		start = 0
	}
	end := pos + window + 1
	if end > len(runes) {
		end = len(runes)
	}

	context = string(runes[start:end])
	pad := runewidth.StringWidth(string(runes[start:pos]))
	caret = strings.Repeat(" ", pad) + "^"
	return context, caret
}

// WriteFinding renders one finding block in the console/report narrative
// format.
func WriteFinding(w io.Writer, f models.Finding, window int) {
	fmt.Fprintf(w, "Sheet: %s\n", f.Sheet)
	fmt.Fprintf(w, "Location: Cell %s%d (Column Header: %s)\n", f.Column, f.Row, f.ColumnHeader)
	fmt.Fprintf(w, "Problematic Character: %s\n", f.HexValue)
	if f.IsPrintable {
		fmt.Fprintf(w, "Character: '%s' - %s\n", f.Pattern, f.Description)
	} else {
		fmt.Fprintf(w, "Character: Non-printable - %s\n", f.Description)
	}
	fmt.Fprintf(w, "Character Position(s) in Cell: %s\n", joinPositions(f.Positions))
	fmt.Fprintf(w, "Cell Value: %s\n", f.CellValue)
	for _, pos := range f.Positions {
		context, caret := Snippet(f.CellValue, pos, window)
		fmt.Fprintf(w, "%s%s...\n", contextPrefix, context)
		fmt.Fprintf(w, "%s%s\n", strings.Repeat(" ", runewidth.StringWidth(contextPrefix)), caret)
	}
	fmt.Fprintln(w, separator)
}

// WriteFindingsText writes the plain-text findings report mirroring the
// console narrative. Content that is not valid UTF-8 yields an
// EncodingError and no file; callers should direct the operator at the CSV
// artifact instead.
func WriteFindingsText(path, source string, findings []models.Finding, window int, now time.Time) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Problematic Character Report for: %s\n", filepath.Base(source))
	fmt.Fprintf(&b, "Generated on: %s\n\n", now.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "Found %d instances of problematic characters:\n", len(findings))
	fmt.Fprintln(&b, separator)
	for _, f := range findings {
		WriteFinding(&b, f, window)
	}

	content := b.String()
	if !utf8.ValidString(content) {
		return &EncodingError{Path: path}
	}
	return os.WriteFile(path, []byte(content), 0644)
}

// LikelyOffenders lists the locations of the last few findings, used to
// hint at the cells that broke a report write.
func LikelyOffenders(findings []models.Finding, n int) []string {
	if len(findings) < n {
		n = len(findings)
	}
	hints := make([]string, 0, n)
	for _, f := range findings[len(findings)-n:] {
		hints = append(hints, fmt.Sprintf("Sheet: %s, Cell: %s%d", f.Sheet, f.Column, f.Row))
	}
	return hints
}
