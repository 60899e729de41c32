package world

// FaultReport describes one simulated crash. Reports are values and are never
// modified once drawn.
type FaultReport struct {
	FaultIndex      int
	FaultCode       string
	SourceFileIndex int
	SourceFile      string
	Line            int
	Column          int
}

// Range is a half-open integer interval [Min, Max).
type Range struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

// FaultFactory draws fault reports from a catalog.
type FaultFactory struct {
	catalog *Catalog
	rng     *Generator
	lines   Range
	columns Range
}

// NewFaultFactory creates a factory drawing from rng, normally the generator
// returned by Generate.
func NewFaultFactory(catalog *Catalog, rng *Generator, lines, columns Range) *FaultFactory {
	return &FaultFactory{
		catalog: catalog,
		rng:     rng,
		lines:   lines,
		columns: columns,
	}
}

// Next draws a report. It does not record it anywhere; callers keep history.
func (f *FaultFactory) Next() FaultReport {
	fault := f.rng.Next(0, len(f.catalog.FaultCodes))
	source := f.rng.Next(0, len(f.catalog.SourceFiles))
	line := f.rng.Next(f.lines.Min, f.lines.Max)
	column := f.rng.Next(f.columns.Min, f.columns.Max)

	return FaultReport{
		FaultIndex:      fault,
		FaultCode:       f.catalog.FaultCodes[fault],
		SourceFileIndex: source,
		SourceFile:      f.catalog.SourceFiles[source],
		Line:            line,
		Column:          column,
	}
}
