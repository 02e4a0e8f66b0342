package xlsweep

import (
	"fmt"
	"os"

	"github.com/xuri/excelize/v2"

	"xlsweep/pkg/xlsweep/models"
	"xlsweep/pkg/xlsweep/pattern"
	"xlsweep/pkg/xlsweep/scanner"
)

// Scan opens the workbook at path and scans it for the given patterns.
// A nil or empty pattern slice scans for the default set over the options'
// byte range. Open or parse failures wrap ErrOpenFailure and yield no
// findings; a readable workbook with no matches yields an empty slice and
// no error.
func Scan(path string, patterns []string, opts Options) ([]models.Finding, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOpenFailure, err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOpenFailure, err)
	}
	defer f.Close()

	return scanner.ScanWorkbook(f, Patterns(patterns, opts)), nil
}

// Patterns resolves the effective pattern set: the caller's explicit
// patterns when present, the configured default range otherwise.
func Patterns(explicit []string, opts Options) []string {
	if len(explicit) > 0 {
		return explicit
	}
	lo, hi := opts.PatternRange()
	return pattern.Range(lo, hi)
}
