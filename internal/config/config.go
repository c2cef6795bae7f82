// Package config holds the loader options that are configurable per
// deployment rather than per call: fallback units for headers that
// carry none, the body scan order, and the optional uniform-grid check.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/openpiv/pivgo/internal/units"
	"github.com/openpiv/pivgo/internal/vec"
)

// Options is the root configuration. Fields omitted from the JSON file
// retain their defaults, so partial configs are safe.
type Options struct {
	// Fallback units applied when a header's VARIABLES declaration is
	// present but individual fields cannot be extracted.
	LengthUnit   *string `json:"length_unit,omitempty"`
	VelocityUnit *string `json:"velocity_unit,omitempty"`
	TimeUnit     *string `json:"time_unit,omitempty"`

	// ScanOrder maps flat body rows onto the grid: "row" or "column".
	ScanOrder *string `json:"scan_order,omitempty"`

	// ValidateGrid enables the per-file body row-count check during
	// directory loads.
	ValidateGrid *bool `json:"validate_grid,omitempty"`
}

// EmptyOptions returns an Options with all fields unset.
func EmptyOptions() *Options {
	return &Options{}
}

// Load reads Options from a JSON file.
func Load(path string) (*Options, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	opts := EmptyOptions()
	if err := json.Unmarshal(data, opts); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return opts, nil
}

// Validate checks that the configuration values are valid.
func (o *Options) Validate() error {
	if o.ScanOrder != nil {
		switch vec.ScanOrder(*o.ScanOrder) {
		case vec.RowMajor, vec.ColumnMajor:
		default:
			return fmt.Errorf("scan_order must be %q or %q, got %q", vec.RowMajor, vec.ColumnMajor, *o.ScanOrder)
		}
	}
	return nil
}

// DefaultUnits returns the fallback unit triple, filling unset fields
// from the package units defaults {mm, m/s, s}.
func (o *Options) DefaultUnits() units.Triple {
	t := units.DefaultTriple()
	if o.LengthUnit != nil {
		t.Length = *o.LengthUnit
	}
	if o.VelocityUnit != nil {
		t.Velocity = *o.VelocityUnit
	}
	if o.TimeUnit != nil {
		t.Time = *o.TimeUnit
	}
	return t
}

// GetScanOrder returns the configured scan order or RowMajor.
func (o *Options) GetScanOrder() vec.ScanOrder {
	if o.ScanOrder == nil {
		return vec.RowMajor
	}
	return vec.ScanOrder(*o.ScanOrder)
}

// GetValidateGrid returns the validate_grid value or false.
func (o *Options) GetValidateGrid() bool {
	if o.ValidateGrid == nil {
		return false
	}
	return *o.ValidateGrid
}
