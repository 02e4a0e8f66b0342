package scanner

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"xlsweep/pkg/xlsweep/models"
	"xlsweep/pkg/xlsweep/pattern"
)

// buildWorkbook writes a two-sheet fixture into a temp dir and reopens it.
func buildWorkbook(t *testing.T) *excelize.File {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	require.NoError(t, f.SetCellStr("Sheet1", "A1", "Name"))
	require.NoError(t, f.SetCellStr("Sheet1", "B1", "Note"))
	require.NoError(t, f.SetCellStr("Sheet1", "A2", "café"))
	require.NoError(t, f.SetCellValue("Sheet1", "B2", 1234.5))
	require.NoError(t, f.SetCellStr("Sheet1", "A3", "hello"))

	_, err := f.NewSheet("Extra")
	require.NoError(t, err)
	require.NoError(t, f.SetCellStr("Extra", "A1", "Header"))
	require.NoError(t, f.SetCellStr("Extra", "B3", "café again"))

	path := filepath.Join(t.TempDir(), "fixture.xlsx")
	require.NoError(t, f.SaveAs(path))

	reopened, err := excelize.OpenFile(path)
	require.NoError(t, err)
	t.Cleanup(func() { reopened.Close() })
	return reopened
}

func TestScanWorkbookOrdering(t *testing.T) {
	f := buildWorkbook(t)

	findings := ScanWorkbook(f, pattern.Default())
	require.Len(t, findings, 3)

	// Sheet1 rows ascending, then the second sheet.
	assert.Equal(t, "Sheet1", findings[0].Sheet)
	assert.Equal(t, 2, findings[0].Row)
	assert.Equal(t, "A", findings[0].Column)
	assert.Equal(t, "Name", findings[0].ColumnHeader)
	assert.Equal(t, "café", findings[0].CellValue)
	assert.Equal(t, "0xe9", findings[0].HexValue)
	assert.True(t, findings[0].IsPrintable)
	assert.Equal(t, []int{3}, findings[0].Positions)

	assert.Equal(t, "Sheet1", findings[1].Sheet)
	assert.Equal(t, 3, findings[1].Row)
	assert.Equal(t, "0x81", findings[1].HexValue)
	assert.False(t, findings[1].IsPrintable)
	assert.Equal(t, "Control character (non-printable)", findings[1].Description)
	assert.Equal(t, []int{2}, findings[1].Positions)

	// Header row and number cells never surface.
	for _, fd := range findings {
		assert.GreaterOrEqual(t, fd.Row, 2)
	}

	assert.Equal(t, "Extra", findings[2].Sheet)
	assert.Equal(t, models.CellRef{Sheet: "Extra", Column: "B", Row: 3}, findings[2].Ref())
}

func TestScanWorkbookDeterminism(t *testing.T) {
	f := buildWorkbook(t)

	first := ScanWorkbook(f, pattern.Default())
	second := ScanWorkbook(f, pattern.Default())
	assert.Equal(t, first, second)
}

func TestScanWorkbookSkipsNumericCells(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetCellStr("Sheet1", "A1", "Amount"))
	require.NoError(t, f.SetCellStr("Sheet1", "B1", "Label"))
	// Plain number cells carry no type attribute in the stored xlsx, so a
	// naive type check mistakes them for text.
	require.NoError(t, f.SetCellValue("Sheet1", "A2", 1234.5))
	require.NoError(t, f.SetCellValue("Sheet1", "A3", 45))
	require.NoError(t, f.SetCellBool("Sheet1", "A4", true))
	require.NoError(t, f.SetCellStr("Sheet1", "B2", "x4y"))

	path := filepath.Join(t.TempDir(), "mixed.xlsx")
	require.NoError(t, f.SaveAs(path))
	reopened, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer reopened.Close()

	findings := ScanWorkbook(reopened, []string{"4"})
	require.Len(t, findings, 1, "only the string cell may match")
	assert.Equal(t, models.CellRef{Sheet: "Sheet1", Column: "B", Row: 2}, findings[0].Ref())
	assert.Equal(t, []int{1}, findings[0].Positions)
}

func TestIsStringCell(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetCellStr("Sheet1", "A1", "text"))
	require.NoError(t, f.SetCellValue("Sheet1", "A2", 1234.5))
	require.NoError(t, f.SetCellBool("Sheet1", "A3", false))

	path := filepath.Join(t.TempDir(), "types.xlsx")
	require.NoError(t, f.SaveAs(path))
	reopened, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer reopened.Close()

	assert.True(t, IsStringCell(reopened, "Sheet1", 1, 1))
	assert.False(t, IsStringCell(reopened, "Sheet1", 1, 2))
	assert.False(t, IsStringCell(reopened, "Sheet1", 1, 3))
}

func TestScanWorkbookSingleTarget(t *testing.T) {
	f := buildWorkbook(t)

	target, err := pattern.ParseTarget(`\xe9`)
	require.NoError(t, err)
	findings := ScanWorkbook(f, []string{target})

	require.Len(t, findings, 2)
	assert.Equal(t, "Sheet1", findings[0].Sheet)
	assert.Equal(t, "Extra", findings[1].Sheet)
	for _, fd := range findings {
		assert.Equal(t, "é", fd.Pattern)
	}
}

func TestScanWorkbookHighByteHexValues(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	require.NoError(t, f.SetCellStr("Sheet1", "A1", "Header"))
	row := 2
	for _, b := range []rune{0x80, 0x9F, 0xA0, 0xE9, 0xFF} {
		cell, err := excelize.CoordinatesToCellName(1, row)
		require.NoError(t, err)
		require.NoError(t, f.SetCellStr("Sheet1", cell, "x"+string(b)+"y"))
		row++
	}

	path := filepath.Join(t.TempDir(), "bytes.xlsx")
	require.NoError(t, f.SaveAs(path))
	reopened, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer reopened.Close()

	findings := ScanWorkbook(reopened, pattern.Default())
	require.Len(t, findings, 5)
	want := []string{"0x80", "0x9f", "0xa0", "0xe9", "0xff"}
	for i, fd := range findings {
		assert.Equal(t, want[i], fd.HexValue)
		assert.Equal(t, []int{1}, fd.Positions)
	}
}

func TestScanWorkbookEmpty(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	findings := ScanWorkbook(f, pattern.Default())
	assert.Empty(t, findings)
}

func TestColumnLetterBijection(t *testing.T) {
	seen := make(map[string]struct{}, 1000)
	prev := ""
	for n := 1; n <= 1000; n++ {
		name, err := excelize.ColumnNumberToName(n)
		require.NoError(t, err)

		_, dup := seen[name]
		require.False(t, dup, "duplicate label %q", name)
		seen[name] = struct{}{}

		if prev != "" {
			require.True(t, columnLess(prev, name), "labels must increase: %q then %q", prev, name)
		}
		prev = name

		back, err := excelize.ColumnNameToNumber(name)
		require.NoError(t, err)
		require.Equal(t, n, back)
	}
}

// columnLess orders column labels the way their indices order: first by
// length, then lexicographically.
func columnLess(a, b string) bool {
	if len(a) != len(b) {
		return len(a) < len(b)
	}
	return a < b
}
