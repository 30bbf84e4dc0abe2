package source

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/arloliu/greenlight/types"
)

// Lane is one entry of a lanes file.
type Lane struct {
	// Name identifies the approach (e.g. "north"). Informational only.
	Name string `yaml:"name"`

	// Density is the lane weight.
	Density float64 `yaml:"density"`
}

// LanesFile is the document read by File.
//
// Example:
//
//	lanes:
//	  - name: north
//	    density: 10
//	  - name: east
//	    density: 30
type LanesFile struct {
	Lanes []Lane `yaml:"lanes"`
}

// File implements a density source backed by a YAML lanes file.
//
// The file is read on every call, so edits take effect at the next cycle.
type File struct {
	path string
}

var _ types.DensitySource = (*File)(nil)

// NewFile creates a density source that reads the lanes file at path.
//
// Parameters:
//   - path: Path to a YAML lanes file
//
// Returns:
//   - *File: Source reading path on every call
func NewFile(path string) *File {
	return &File{path: path}
}

// Path returns the lanes file path.
func (f *File) Path() string {
	return f.path
}

// Densities reads the lanes file and returns the density of each lane in file order.
//
// Returns:
//   - []float64: Density per lane
//   - error: Read or decode error, or context error if ctx is done
func (f *File) Densities(ctx context.Context) ([]float64, error) {
	lanes, err := f.Lanes(ctx)
	if err != nil {
		return nil, err
	}

	densities := make([]float64, len(lanes))
	for i, lane := range lanes {
		densities[i] = lane.Density
	}

	return densities, nil
}

// Lanes reads the lanes file and returns its entries.
func (f *File) Lanes(ctx context.Context) ([]Lane, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read lanes file: %w", err)
	}

	return ParseLanes(data)
}

// ParseLanes decodes a YAML lanes document.
func ParseLanes(data []byte) ([]Lane, error) {
	var doc LanesFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse lanes file: %w", err)
	}

	return doc.Lanes, nil
}
