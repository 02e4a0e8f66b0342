// Package xlsweep scans spreadsheet workbooks for problematic characters
// and drives their cleanup.
package xlsweep

const (
	defaultContextWindow   = 10
	defaultRangeStart      = 0x80
	defaultRangeEnd        = 0xFF
	defaultTimestampLayout = "20060102_150405"
)

// Options configures scanning and artifact generation. The zero value uses
// the defaults of the original tool: the high-byte range 0x80-0xFF and a
// ten-character context window.
type Options struct {
	// ContextWindow is the number of characters shown before and after a
	// match in report snippets. Zero means the default of 10.
	ContextWindow int
	// RangeStart and RangeEnd bound the default pattern set (inclusive).
	// Both zero means 0x80-0xFF.
	RangeStart byte
	RangeEnd   byte
	// OutputDir overrides where artifacts are written. Empty means next to
	// the source workbook.
	OutputDir string
	// TimestampLayout is the time layout embedded in artifact names.
	TimestampLayout string
}

// DefaultOptions returns the defaults explicitly.
func DefaultOptions() Options {
	return Options{
		ContextWindow:   defaultContextWindow,
		RangeStart:      defaultRangeStart,
		RangeEnd:        defaultRangeEnd,
		TimestampLayout: defaultTimestampLayout,
	}
}

// Window returns the effective context window.
func (o Options) Window() int {
	if o.ContextWindow > 0 {
		return o.ContextWindow
	}
	return defaultContextWindow
}

// PatternRange returns the effective byte range for the default pattern set.
func (o Options) PatternRange() (lo, hi byte) {
	lo, hi = o.RangeStart, o.RangeEnd
	if lo == 0 && hi == 0 {
		return defaultRangeStart, defaultRangeEnd
	}
	if hi < lo {
		hi = lo
	}
	return lo, hi
}

// Layout returns the effective timestamp layout for artifact names.
func (o Options) Layout() string {
	if o.TimestampLayout != "" {
		return o.TimestampLayout
	}
	return defaultTimestampLayout
}
