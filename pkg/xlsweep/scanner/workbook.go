package scanner

import (
	"log/slog"
	"strconv"

	"github.com/xuri/excelize/v2"

	"xlsweep/pkg/xlsweep/classify"
	"xlsweep/pkg/xlsweep/models"
	"xlsweep/pkg/xlsweep/pattern"
)

// ScanWorkbook walks every sheet of an open workbook and returns one
// Finding per (cell, pattern) match.
//
// Sheets are visited in workbook order, rows ascending, columns ascending,
// and patterns in pattern-set order within a cell, so two scans of the same
// content produce identical ordered results. Row 1 of each sheet is the
// header row: it supplies column headers and is excluded from the scanned
// body, so findings carry sheet row numbers starting at 2. Only
// string-typed cells are scanned. A sheet whose rows cannot be read is
// logged and skipped.
func ScanWorkbook(f *excelize.File, patterns []string) []models.Finding {
	var findings []models.Finding

	for _, sheet := range f.GetSheetList() {
		slog.Info("scanning sheet", "sheet", sheet)

		rows, err := f.GetRows(sheet)
		if err != nil {
			slog.Warn("cannot read sheet rows", "sheet", sheet, "error", err)
			continue
		}
		if len(rows) == 0 {
			continue
		}

		header := rows[0]
		for rowIdx, row := range rows[1:] {
			rowNum := rowIdx + 2 // body starts below the header row
			for colIdx, value := range row {
				if value == "" || !IsStringCell(f, sheet, colIdx+1, rowNum) {
					continue
				}
				findings = append(findings, scanCell(sheet, header, rowNum, colIdx+1, value, patterns)...)
			}
		}
	}

	return findings
}

// scanCell turns the matches in one cell into findings.
func scanCell(sheet string, header []string, rowNum, colNum int, value string, patterns []string) []models.Finding {
	matches := ScanValue(value, patterns)
	if len(matches) == 0 {
		return nil
	}

	colName, err := excelize.ColumnNumberToName(colNum)
	if err != nil {
		slog.Warn("cannot resolve column name", "sheet", sheet, "column", colNum, "error", err)
		return nil
	}
	columnHeader := ""
	if colNum-1 < len(header) {
		columnHeader = header[colNum-1]
	}

	findings := make([]models.Finding, 0, len(matches))
	for _, m := range matches {
		r, err := pattern.Resolve(m.Pattern)
		if err != nil {
			slog.Warn("skipping unresolvable pattern", "pattern", m.Pattern, "error", err)
			continue
		}
		printable, description := classify.Classify(r)

		findings = append(findings, models.Finding{
			Sheet:        sheet,
			Row:          rowNum,
			Column:       colName,
			ColumnHeader: columnHeader,
			CellValue:    value,
			Pattern:      m.Pattern,
			HexValue:     pattern.HexLabel(m.Pattern),
			IsPrintable:  printable,
			Description:  description,
			Positions:    m.Positions,
		})
	}
	return findings
}

// IsStringCell reports whether a cell holds text. Shared and inline
// strings qualify. Plain number cells carry no type attribute in the xlsx,
// so an untyped cell qualifies only when its value does not parse as a
// number; every explicitly typed non-string cell (number, boolean, date,
// error, formula) is skipped regardless of how its value renders.
func IsStringCell(f *excelize.File, sheet string, col, row int) bool {
	cellName, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return false
	}
	cellType, err := f.GetCellType(sheet, cellName)
	if err != nil {
		return false
	}
	switch cellType {
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString:
		return true
	case excelize.CellTypeUnset:
		value, err := f.GetCellValue(sheet, cellName)
		if err != nil {
			return false
		}
		_, numErr := strconv.ParseFloat(value, 64)
		return numErr != nil
	}
	return false
}
