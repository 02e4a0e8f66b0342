package xlsweep

import "errors"

// ErrOpenFailure indicates the source workbook could not be read or parsed.
// It is the only failure that aborts a run: scanning returns no findings
// and the diagnostic is surfaced to the operator.
var ErrOpenFailure = errors.New("cannot open workbook")
