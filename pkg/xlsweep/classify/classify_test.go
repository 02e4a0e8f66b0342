package classify

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyControlRanges(t *testing.T) {
	tests := []struct {
		name string
		r    rune
	}{
		{"SOH", 0x01},
		{"tab", 0x09},
		{"newline", 0x0A},
		{"DEL", 0x7F},
		{"C1 start", 0x80},
		{"C1 end", 0x9F},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			printable, desc := Classify(tt.r)
			assert.False(t, printable)
			assert.Equal(t, "Control character (non-printable)", desc)
		})
	}
}

func TestClassifyPrintable(t *testing.T) {
	tests := []struct {
		name     string
		r        rune
		category string
		contains string
	}{
		{"latin capital A", 0x41, "Lu", "LATIN CAPITAL LETTER A"},
		{"e acute", 0xE9, "Ll", "LATIN SMALL LETTER E WITH ACUTE"},
		{"no-break space", 0xA0, "Zs", "NO-BREAK SPACE"},
		{"inverted exclamation", 0xA1, "Po", "INVERTED EXCLAMATION MARK"},
		{"multiplication sign", 0xD7, "Sm", "MULTIPLICATION SIGN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			printable, desc := Classify(tt.r)
			assert.True(t, printable)
			assert.Contains(t, desc, tt.contains)
			assert.Contains(t, desc, "category: "+tt.category)
		})
	}
}

func TestClassifyNonPrintableCategory(t *testing.T) {
	// U+00AD SOFT HYPHEN is a Cf (format) character above the control ranges.
	printable, desc := Classify(0xAD)
	assert.False(t, printable)
	assert.True(t, strings.HasPrefix(desc, "Unicode category: Cf"), desc)
}

func TestCategory(t *testing.T) {
	assert.Equal(t, "Lu", Category('A'))
	assert.Equal(t, "Nd", Category('7'))
	assert.Equal(t, "Cc", Category(0x01))
}
