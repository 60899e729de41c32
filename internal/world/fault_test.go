package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFaultFactoryDrawsFromCatalog(t *testing.T) {
	c, rng, err := Generate(0, DefaultCounts())
	require.NoError(t, err)

	lines := Range{Min: 1, Max: 250}
	columns := Range{Min: 1, Max: 100}
	f := NewFaultFactory(c, rng, lines, columns)

	for i := 0; i < 500; i++ {
		r := f.Next()
		require.GreaterOrEqual(t, r.FaultIndex, 0)
		require.Less(t, r.FaultIndex, len(c.FaultCodes))
		require.GreaterOrEqual(t, r.SourceFileIndex, 0)
		require.Less(t, r.SourceFileIndex, len(c.SourceFiles))

		assert.Equal(t, c.FaultCodes[r.FaultIndex], r.FaultCode)
		assert.Equal(t, c.SourceFiles[r.SourceFileIndex], r.SourceFile)
		assert.GreaterOrEqual(t, r.Line, lines.Min)
		assert.Less(t, r.Line, lines.Max)
		assert.GreaterOrEqual(t, r.Column, columns.Min)
		assert.Less(t, r.Column, columns.Max)
	}
}

func TestFaultFactoryContinuesCatalogCursor(t *testing.T) {
	draw := func() []FaultReport {
		c, rng, err := Generate(31, DefaultCounts())
		require.NoError(t, err)
		f := NewFaultFactory(c, rng, Range{1, 250}, Range{1, 100})
		return []FaultReport{f.Next(), f.Next(), f.Next()}
	}
	assert.Equal(t, draw(), draw())
}
