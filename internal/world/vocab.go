package world

import (
	"fmt"
	"strings"
)

// Character classes, as [min, max) bounds for Generator.Next.
const (
	digitMin  = 0
	digitMax  = 9
	letterMin = 'A'
	letterMax = 'Z'
	lowerMin  = 'a'
	lowerMax  = 'z' + 1

	// Separator is the only non-alphanumeric glyph a fault code can carry.
	Separator = '-'

	// maxRedraws bounds the duplicate redraw loop for one list entry.
	maxRedraws = 64
)

// Syllable tables for file names. Order matters: indices are drawn.
var filePrefixes = []string{
	"pr", "res", "raz", "wa", "fa", "ex", "gil", "lin", "lon",
	"sat", "pl", "equ", "kor", "mim", "dun", "hex", "tol", "vy",
}

var fileSuffixes = []string{
	"le", "ble", "cle", "ne", "ee", "ed", "ick", "ion", "ist",
	"or", "ely", "ux", "ant", "oid", "ash",
}

var parameterFlags = []string{
	"verbose", "force", "rebuild", "purge", "trace", "isolate",
	"safe-mode", "rollback", "no-cache", "strict", "reindex", "flush",
}

// digitGlyph draws one decimal digit.
func digitGlyph(g *Generator) byte {
	return byte('0' + g.Next(digitMin, digitMax))
}

// letterGlyph draws one uppercase letter.
func letterGlyph(g *Generator) byte {
	return byte(g.Next(letterMin, letterMax))
}

// NewFaultCode builds one eight-glyph fault code: a digit, a letter, a
// separator before or after a digit-letter-digit middle section depending on
// a fraction draw, then a letter and a digit.
func NewFaultCode(g *Generator) string {
	var b strings.Builder
	b.Grow(8)

	b.WriteByte(digitGlyph(g))
	b.WriteByte(letterGlyph(g))

	a := g.NextDouble()
	if a < 0.5 {
		b.WriteByte(Separator)
	}

	b.WriteByte(digitGlyph(g))
	b.WriteByte(letterGlyph(g))
	b.WriteByte(digitGlyph(g))

	if a >= 0.5 {
		b.WriteByte(Separator)
	}

	b.WriteByte(letterGlyph(g))
	b.WriteByte(digitGlyph(g))

	return b.String()
}

// NewFileName builds a lowercase file name such as "razcle.pxi".
func NewFileName(g *Generator) string {
	prefix := filePrefixes[g.Next(0, len(filePrefixes))]
	suffix := fileSuffixes[g.Next(0, len(fileSuffixes))]

	n := g.Next(2, 5)
	ext := make([]byte, n)
	for i := range ext {
		ext[i] = byte(g.Next(lowerMin, lowerMax))
	}
	return prefix + suffix + "." + string(ext)
}

// NewVersion builds a version label such as "v3.0.7".
func NewVersion(g *Generator) string {
	major := g.Next(0, 10)
	minor := g.Next(0, 10)
	patch := g.Next(0, 10)
	return fmt.Sprintf("v%d.%d.%d", major, minor, patch)
}

// NewParameter builds a command line parameter such as "--purge 42".
func NewParameter(g *Generator) string {
	flag := parameterFlags[g.Next(0, len(parameterFlags))]
	value := g.Next(10, 100)
	return fmt.Sprintf("--%s %d", flag, value)
}

// generateList draws n distinct entries. A duplicate is redrawn, up to
// maxRedraws times, after which it is kept so that small vocabularies still
// terminate.
func generateList(g *Generator, n int, draw func(*Generator) string) []string {
	list := make([]string, 0, n)
	seen := make(map[string]bool, n)
	for i := 0; i < n; i++ {
		v := draw(g)
		for attempts := 0; seen[v] && attempts < maxRedraws; attempts++ {
			v = draw(g)
		}
		seen[v] = true
		list = append(list, v)
	}
	return list
}

// GlyphValue maps a fault code glyph to a number: digits to their value,
// letters to their 1-indexed alphabet rank, anything else to 0.
func GlyphValue(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	default:
		return AlphabetRank(c)
	}
}

// AlphabetRank returns the 1-indexed, case-insensitive rank of a letter
// ('a' and 'A' are 1, 'z' and 'Z' are 26) or 0 for anything else.
func AlphabetRank(c byte) int {
	switch {
	case c >= 'a' && c <= 'z':
		return int(c-'a') + 1
	case c >= 'A' && c <= 'Z':
		return int(c-'A') + 1
	default:
		return 0
	}
}
