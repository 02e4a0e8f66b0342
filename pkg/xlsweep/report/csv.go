package report

import (
	"encoding/csv"
	"os"
	"strconv"
	"strings"

	"xlsweep/pkg/xlsweep/models"
)

// csvHeader is the stable column schema of the records artifact, one row
// per finding. Kept machine-friendly for automated post-processing.
var csvHeader = []string{
	"sheet", "row", "column", "column_header", "cell_value",
	"problematic_char", "hex_value", "char_positions",
	"is_printable", "char_description",
}

// WriteRecordsCSV writes the structured records artifact, UTF-8 encoded.
func WriteRecordsCSV(path string, findings []models.Finding) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return err
	}
	for _, fd := range findings {
		row := []string{
			fd.Sheet,
			strconv.Itoa(fd.Row),
			fd.Column,
			fd.ColumnHeader,
			fd.CellValue,
			fd.Pattern,
			fd.HexValue,
			joinPositions(fd.Positions),
			strconv.FormatBool(fd.IsPrintable),
			fd.Description,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func joinPositions(positions []int) string {
	parts := make([]string, len(positions))
	for i, p := range positions {
		parts[i] = strconv.Itoa(p)
	}
	return strings.Join(parts, ", ")
}
