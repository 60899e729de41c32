package game

import (
	"strings"

	"github.com/nmtechsupport/techsupport/internal/world"
)

// Fixed patch file answers, by index into the catalog's patch file list.
const (
	patchPinnedSource   = 5 // rule A
	patchSharedGlyph    = 3 // rule B
	patchEvenPosition   = 2 // rule C
	patchVowelHeavy     = 4 // rule D
	patchLateAlphabet   = 0 // rule E
	patchRushedColumn   = 7 // rule F
	patchLongHistory    = 6 // rule G
	patchDefault        = 8 // rule H
	minPatchFiles       = patchDefault + 1
	minSourceFiles      = 10
	rushedCountdown     = 99
	rushedColumn        = 75
	longHistoryFaults   = 4
	longHistoryLines    = 450
	lateAlphabetCut     = 26.0 / 4.0 * 3.0
	faultSumFirstStart  = 2
	faultSumSecondStart = 5
	faultSumWidth       = 3
)

// pinnedSources always resolve to patchPinnedSource.
var pinnedSources = [...]int{2, 5, 9}

// PatchRule names the branch of the patch file decision list that fired.
type PatchRule uint8

const (
	RulePinnedSource PatchRule = iota
	RuleSharedGlyph
	RuleEvenPosition
	RuleVowelHeavy
	RuleLateAlphabet
	RuleRushedColumn
	RuleLongHistory
	RuleDefault
)

var patchRuleNames = [...]string{
	"pinned-source", "shared-glyph", "even-position", "vowel-heavy",
	"late-alphabet", "rushed-column", "long-history", "default",
}

func (r PatchRule) String() string {
	if int(r) < len(patchRuleNames) {
		return patchRuleNames[r]
	}
	return "unknown"
}

// PatchDecision is the outcome of CorrectPatchFile: the answer and the rule
// that produced it.
type PatchDecision struct {
	Index int
	Rule  PatchRule
}

// CorrectVersion looks the answer up in the cross table.
func CorrectVersion(c *world.Catalog, r world.FaultReport) int {
	return c.Cross.At(r.FaultIndex, r.SourceFileIndex)
}

// CorrectPatchFile walks the patch file rules in order; the first one that
// holds decides. history includes r itself. countdown is the resolve countdown
// remaining when the answer is checked.
func CorrectPatchFile(r world.FaultReport, history []world.FaultReport, countdown int) PatchDecision {
	switch {
	case isPinnedSource(r.SourceFileIndex):
		return PatchDecision{patchPinnedSource, RulePinnedSource}
	case sharesGlyph(r.FaultCode, r.SourceFile):
		return PatchDecision{patchSharedGlyph, RuleSharedGlyph}
	case r.Line%2 == 0 && r.Column%2 == 0:
		return PatchDecision{patchEvenPosition, RuleEvenPosition}
	case vowelHeavy(r.SourceFile) || r.Column > r.Line:
		return PatchDecision{patchVowelHeavy, RuleVowelHeavy}
	case len(r.SourceFile) > 0 && float64(world.AlphabetRank(r.SourceFile[0])) >= lateAlphabetCut:
		return PatchDecision{patchLateAlphabet, RuleLateAlphabet}
	case countdown < rushedCountdown && r.Column > rushedColumn:
		return PatchDecision{patchRushedColumn, RuleRushedColumn}
	case len(history) >= longHistoryFaults && sumLines(history) >= longHistoryLines:
		return PatchDecision{patchLongHistory, RuleLongHistory}
	default:
		return PatchDecision{patchDefault, RuleDefault}
	}
}

func isPinnedSource(i int) bool {
	for _, p := range pinnedSources {
		if i == p {
			return true
		}
	}
	return false
}

// sharesGlyph compares fault code glyphs from index 2 onward with every glyph
// of the file name, ignoring case. Separators compare literally.
func sharesGlyph(code, file string) bool {
	if len(code) <= faultSumFirstStart {
		return false
	}
	lowerFile := strings.ToLower(file)
	for _, c := range strings.ToLower(code[faultSumFirstStart:]) {
		if strings.ContainsRune(lowerFile, c) {
			return true
		}
	}
	return false
}

// vowelHeavy counts the base name up to the first '.'; anything that is not
// a lowercase vowel counts as a consonant.
func vowelHeavy(file string) bool {
	vowels, consonants := 0, 0
	for i := 0; i < len(file); i++ {
		c := file[i]
		if c == '.' {
			break
		}
		if strings.IndexByte("aeiou", c) >= 0 {
			vowels++
		} else {
			consonants++
		}
	}
	return vowels >= consonants
}

func sumLines(history []world.FaultReport) int {
	total := 0
	for _, h := range history {
		total += h.Line
	}
	return total
}

// CorrectParameter sums glyph values of fault code positions 2-4 into a and
// 5-7 into b, then reduces |a*line - b*column| xor a*b into the parameter list.
func CorrectParameter(r world.FaultReport, parameters int) int {
	a := glyphSum(r.FaultCode, faultSumFirstStart)
	b := glyphSum(r.FaultCode, faultSumSecondStart)

	x := a*r.Line - b*r.Column
	if x < 0 {
		x = -x
	}
	x ^= a * b
	return x % parameters
}

// glyphSum adds up faultSumWidth glyph values starting at start. Positions
// past the end of a short code count as 0.
func glyphSum(code string, start int) int {
	sum := 0
	for i := start; i < start+faultSumWidth && i < len(code); i++ {
		sum += world.GlyphValue(code[i])
	}
	return sum
}
