package xlsweep

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestScanMissingFile(t *testing.T) {
	_, err := Scan(filepath.Join(t.TempDir(), "nope.xlsx"), nil, DefaultOptions())
	assert.ErrorIs(t, err, ErrOpenFailure)
}

func TestScanUnparsableFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garbage.xlsx")
	require.NoError(t, os.WriteFile(path, []byte("not a workbook"), 0644))

	findings, err := Scan(path, nil, DefaultOptions())
	assert.ErrorIs(t, err, ErrOpenFailure)
	assert.Empty(t, findings)
}

func TestScanWorkbook(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetCellStr("Sheet1", "A1", "Name"))
	require.NoError(t, f.SetCellStr("Sheet1", "A2", "café"))
	path := filepath.Join(t.TempDir(), "in.xlsx")
	require.NoError(t, f.SaveAs(path))

	findings, err := Scan(path, nil, DefaultOptions())
	require.NoError(t, err)
	require.Len(t, findings, 1)
	assert.Equal(t, "0xe9", findings[0].HexValue)

	// An explicit target narrows the scan.
	none, err := Scan(path, []string{""}, DefaultOptions())
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestPatterns(t *testing.T) {
	assert.Len(t, Patterns(nil, DefaultOptions()), 256)
	assert.Equal(t, []string{"é"}, Patterns([]string{"é"}, DefaultOptions()))

	narrow := Patterns(nil, Options{RangeStart: 0x80, RangeEnd: 0x83})
	assert.Len(t, narrow, 8)
}

func TestOptionsDefaulting(t *testing.T) {
	var o Options
	assert.Equal(t, 10, o.Window())
	lo, hi := o.PatternRange()
	assert.Equal(t, byte(0x80), lo)
	assert.Equal(t, byte(0xFF), hi)
	assert.Equal(t, "20060102_150405", o.Layout())
}
