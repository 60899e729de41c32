package render

// Seven-segment bits.
const (
	segA = 1 << iota // top
	segB             // upper right
	segC             // lower right
	segD             // bottom
	segE             // lower left
	segF             // upper left
	segG             // middle
)

var digitSegments = [10]uint8{
	segA | segB | segC | segD | segE | segF,
	segB | segC,
	segA | segB | segD | segE | segG,
	segA | segB | segC | segD | segG,
	segB | segC | segF | segG,
	segA | segC | segD | segF | segG,
	segA | segC | segD | segE | segF | segG,
	segA | segB | segC,
	segA | segB | segC | segD | segE | segF | segG,
	segA | segB | segC | segD | segF | segG,
}

// Each digit is a 3x5 block of cells; a cell is lit when any segment that
// covers it is.
const (
	DigitCols = 3
	DigitRows = 5
)

var segmentCover = [DigitRows][DigitCols]uint8{
	{segA | segF, segA, segA | segB},
	{segF, 0, segB},
	{segF | segE | segG, segG, segB | segC | segG},
	{segE, 0, segC},
	{segE | segD, segD, segC | segD},
}

// SegmentDisplay is the two-digit countdown readout. It satisfies game.Display.
type SegmentDisplay struct {
	Value int
	On    bool
}

// SetValue stores v, clamped to what two digits can show.
func (d *SegmentDisplay) SetValue(v int) {
	d.Value = min(max(v, 0), 99)
}

// SetOn switches the display on or off.
func (d *SegmentDisplay) SetOn(on bool) { d.On = on }

// DrawSegments paints the display at (x, y). Unlit segments are drawn dim so
// the readout keeps its shape when off.
func DrawSegments(buf *CellBuffer, x, y int, d *SegmentDisplay, lit, unlit uint8) {
	tens, ones := d.Value/10, d.Value%10
	drawDigit(buf, x, y, tens, d.On, lit, unlit)
	drawDigit(buf, x+DigitCols+1, y, ones, d.On, lit, unlit)
}

func drawDigit(buf *CellBuffer, x, y, digit int, on bool, lit, unlit uint8) {
	mask := digitSegments[digit]
	for row := 0; row < DigitRows; row++ {
		for col := 0; col < DigitCols; col++ {
			cover := segmentCover[row][col]
			if cover == 0 {
				continue
			}
			fg := unlit
			if on && cover&mask != 0 {
				fg = lit
			}
			buf.Set(x+col, y+row, GlyphFullBlock, fg, ColorBlack)
		}
	}
}
