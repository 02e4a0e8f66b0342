// Package config loads optional TOML configuration for scans and reports.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"xlsweep/pkg/xlsweep"
)

// File mirrors the TOML layout:
//
//	[scan]
//	context_window = 10
//	range_start = 0x80
//	range_end = 0xff
//
//	[output]
//	dir = "reports"
//	timestamp_layout = "20060102_150405"
type File struct {
	Scan struct {
		ContextWindow int `toml:"context_window"`
		RangeStart    int `toml:"range_start"`
		RangeEnd      int `toml:"range_end"`
	} `toml:"scan"`
	Output struct {
		Dir             string `toml:"dir"`
		TimestampLayout string `toml:"timestamp_layout"`
	} `toml:"output"`
}

// Load reads and parses a TOML config file.
func Load(path string) (*File, error) {
	var f File
	if _, err := toml.DecodeFile(path, &f); err != nil {
		return nil, fmt.Errorf("loading config %s: %w", path, err)
	}
	if err := f.validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return &f, nil
}

// LoadIfPresent is Load, except a missing file is not an error and yields
// an empty config.
func LoadIfPresent(path string) (*File, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return &File{}, nil
	}
	return Load(path)
}

func (f *File) validate() error {
	for _, v := range []struct {
		name  string
		value int
	}{
		{"scan.range_start", f.Scan.RangeStart},
		{"scan.range_end", f.Scan.RangeEnd},
	} {
		if v.value < 0 || v.value > 0xFF {
			return fmt.Errorf("%s must be a byte value, got %d", v.name, v.value)
		}
	}
	if f.Scan.ContextWindow < 0 {
		return fmt.Errorf("scan.context_window must not be negative")
	}
	return nil
}

// Apply overlays the config's set values onto opts, leaving unset fields
// at their current values.
func (f *File) Apply(opts *xlsweep.Options) {
	if f.Scan.ContextWindow > 0 {
		opts.ContextWindow = f.Scan.ContextWindow
	}
	if f.Scan.RangeStart > 0 {
		opts.RangeStart = byte(f.Scan.RangeStart)
	}
	if f.Scan.RangeEnd > 0 {
		opts.RangeEnd = byte(f.Scan.RangeEnd)
	}
	if f.Output.Dir != "" {
		opts.OutputDir = f.Output.Dir
	}
	if f.Output.TimestampLayout != "" {
		opts.TimestampLayout = f.Output.TimestampLayout
	}
}
