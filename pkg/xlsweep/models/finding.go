// Package models defines data structures shared by the scan and clean passes.
package models

import "fmt"

// Finding records one occurrence-class of a problematic pattern: a single
// (cell, pattern) pair with every position the pattern occurs at. A cell
// containing several distinct patterns yields several Findings.
type Finding struct {
	// Sheet is the sheet name the cell lives on.
	Sheet string `json:"sheet"`
	// Row is the 1-based sheet row number. Row 1 is the header row, so
	// findings always carry Row >= 2.
	Row int `json:"row"`
	// Column is the column letter (A, B, ..., Z, AA, ...).
	Column string `json:"column"`
	// ColumnHeader is the header-row value of the finding's column.
	ColumnHeader string `json:"column_header"`
	// CellValue is a snapshot of the cell text taken at scan time. It is
	// report-only; cleaning re-reads the live cell through the reference.
	CellValue string `json:"cell_value"`
	// Pattern is the matched pattern exactly as it appears in the pattern
	// set: a single character or an escape token such as `\x81`.
	Pattern string `json:"pattern"`
	// HexValue is the two-digit hex form (0x81) for single-character
	// patterns, or the token text verbatim for escape tokens.
	HexValue string `json:"hex_value"`
	// IsPrintable reports whether the underlying character is printable.
	IsPrintable bool `json:"is_printable"`
	// Description is the human-readable classification of the character.
	Description string `json:"description"`
	// Positions holds zero-based character offsets of each occurrence
	// within CellValue, ascending.
	Positions []int `json:"positions"`
}

// Ref returns the finding's cell reference.
func (f Finding) Ref() CellRef {
	return CellRef{Sheet: f.Sheet, Column: f.Column, Row: f.Row}
}

// CellRef identifies a cell by sheet name, column letter and 1-based row.
// It is the join key between scan results and cleaning actions.
type CellRef struct {
	Sheet  string `json:"sheet"`
	Column string `json:"column"`
	Row    int    `json:"row"`
}

// Name returns the in-sheet cell name, e.g. "B12".
func (r CellRef) Name() string {
	return fmt.Sprintf("%s%d", r.Column, r.Row)
}

// String returns the fully qualified reference, e.g. "Sheet1!B12".
func (r CellRef) String() string {
	return fmt.Sprintf("%s!%s%d", r.Sheet, r.Column, r.Row)
}
