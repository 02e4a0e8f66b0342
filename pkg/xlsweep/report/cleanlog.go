package report

import (
	"fmt"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"xlsweep/pkg/xlsweep/models"
)

// WriteCleanLog writes the cleaning change log: one numbered block per
// change record with sheet, cell, original and cleaned values. Content
// that is not valid UTF-8 yields an EncodingError and no file.
func WriteCleanLog(path, source string, records []models.ChangeRecord, now time.Time) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Cleaning Log for %s\n", source)
	fmt.Fprintf(&b, "Created on %s\n\n", now.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "Total cells cleaned: %d\n\n", len(records))

	for i, rec := range records {
		fmt.Fprintf(&b, "Change %d:\n", i+1)
		fmt.Fprintf(&b, "  Sheet: %s\n", rec.Sheet)
		fmt.Fprintf(&b, "  Cell: %s\n", rec.Cell)
		fmt.Fprintf(&b, "  Original: %s\n", rec.Original)
		fmt.Fprintf(&b, "  Cleaned: %s\n\n", rec.Cleaned)
	}

	content := b.String()
	if !utf8.ValidString(content) {
		return &EncodingError{Path: path}
	}
	return os.WriteFile(path, []byte(content), 0644)
}

// LikelyChangedCells lists the locations of the last few change records,
// used to hint at the cells that broke a log write.
func LikelyChangedCells(records []models.ChangeRecord, n int) []string {
	if len(records) < n {
		n = len(records)
	}
	hints := make([]string, 0, n)
	for _, rec := range records[len(records)-n:] {
		hints = append(hints, fmt.Sprintf("Sheet: %s, Cell: %s", rec.Sheet, rec.Cell))
	}
	return hints
}
