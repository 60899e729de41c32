package world

import (
	"errors"
	"fmt"
)

// ErrInvalidCounts is returned by Generate when a vocabulary count is unusable.
var ErrInvalidCounts = errors.New("invalid vocabulary counts")

// Counts sizes every generated list of one puzzle session.
type Counts struct {
	FaultCodes  int `yaml:"fault_codes"`
	SourceFiles int `yaml:"source_files"`
	Versions    int `yaml:"versions"`
	PatchFiles  int `yaml:"patch_files"`
	Parameters  int `yaml:"parameters"`
}

// DefaultCounts are the list sizes the printed manual is written against.
func DefaultCounts() Counts {
	return Counts{
		FaultCodes:  16,
		SourceFiles: 12,
		Versions:    9,
		PatchFiles:  9,
		Parameters:  9,
	}
}

// Validate reports the first unusable count.
func (c Counts) Validate() error {
	fields := []struct {
		name string
		n    int
	}{
		{"fault_codes", c.FaultCodes},
		{"source_files", c.SourceFiles},
		{"versions", c.Versions},
		{"patch_files", c.PatchFiles},
		{"parameters", c.Parameters},
	}
	for _, f := range fields {
		if f.n < 1 {
			return fmt.Errorf("%w: %s must be at least 1, got %d", ErrInvalidCounts, f.name, f.n)
		}
	}
	return nil
}

// CrossTable maps a (fault code, source file) pair to a version index.
type CrossTable struct {
	rows  int
	cols  int
	cells []int
}

// At returns the version index for fault code row and source file col.
func (t *CrossTable) At(row, col int) int {
	return t.cells[row*t.cols+col]
}

// Rows returns the number of fault code rows.
func (t *CrossTable) Rows() int { return t.rows }

// Cols returns the number of source file columns.
func (t *CrossTable) Cols() int { return t.cols }

// Catalog is the immutable vocabulary of one puzzle session.
// Nothing mutates a Catalog after Generate returns it.
type Catalog struct {
	Seed        int32
	FaultCodes  []string
	SourceFiles []string
	Versions    []string
	PatchFiles  []string
	Parameters  []string
	Cross       *CrossTable
}

// Generate builds a catalog from seed. It returns the generator as well so the
// fault factory can keep drawing from the same cursor.
//
// Generation order is fixed: fault codes, source files, versions, patch files,
// parameters, then the cross table row by row.
func Generate(seed int32, counts Counts) (*Catalog, *Generator, error) {
	if err := counts.Validate(); err != nil {
		return nil, nil, err
	}

	g := NewGenerator(seed)
	c := &Catalog{Seed: seed}

	c.FaultCodes = generateList(g, counts.FaultCodes, NewFaultCode)
	c.SourceFiles = generateList(g, counts.SourceFiles, NewFileName)
	c.Versions = generateList(g, counts.Versions, NewVersion)
	c.PatchFiles = generateList(g, counts.PatchFiles, NewFileName)
	c.Parameters = generateList(g, counts.Parameters, NewParameter)
	c.Cross = generateCrossTable(g, counts.FaultCodes, counts.SourceFiles, counts.Versions)

	return c, g, nil
}

func generateCrossTable(g *Generator, rows, cols, versions int) *CrossTable {
	t := &CrossTable{rows: rows, cols: cols, cells: make([]int, rows*cols)}
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			t.cells[i*cols+j] = g.Next(0, versions)
		}
	}
	return t
}
