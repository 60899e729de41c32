package render

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	GlyphWidth  = 16
	GlyphHeight = 16
	AtlasCols   = 16
	AtlasRows   = 16
)

// Block glyph codes (CP437) used by the segment display and status lights.
const (
	GlyphFullBlock  byte = 219
	GlyphLowerHalf  byte = 220
	GlyphUpperHalf  byte = 223
	GlyphSmallBlock byte = 254
)

// FontAtlas holds the glyph atlas and cached sub-images.
type FontAtlas struct {
	image  *ebiten.Image
	glyphs [256]*ebiten.Image
}

// NewFontAtlas generates the atlas at startup. Printable ASCII is rendered
// with basicfont.Face7x13; the block glyphs are drawn by hand. Every other
// code stays blank.
func NewFontAtlas() *FontAtlas {
	atlasW := AtlasCols * GlyphWidth
	atlasH := AtlasRows * GlyphHeight

	img := image.NewNRGBA(image.Rect(0, 0, atlasW, atlasH))
	face := basicfont.Face7x13

	for code := 0; code < 256; code++ {
		cx := (code % AtlasCols) * GlyphWidth
		cy := (code / AtlasCols) * GlyphHeight

		if code >= 32 && code <= 126 {
			drawFontGlyph(img, face, cx, cy, rune(code))
			continue
		}
		drawBlockGlyph(img, cx, cy, byte(code))
	}

	eimg := ebiten.NewImageFromImage(img)
	a := &FontAtlas{image: eimg}

	for code := 0; code < 256; code++ {
		x := (code % AtlasCols) * GlyphWidth
		y := (code / AtlasCols) * GlyphHeight
		rect := image.Rect(x, y, x+GlyphWidth, y+GlyphHeight)
		a.glyphs[code] = eimg.SubImage(rect).(*ebiten.Image)
	}

	return a
}

// Glyph returns the cached sub-image for a character code.
func (a *FontAtlas) Glyph(code byte) *ebiten.Image {
	return a.glyphs[code]
}

// drawFontGlyph renders a single ASCII character into the atlas.
// basicfont.Face7x13 glyphs are 7x13, centered in a 16x16 cell.
func drawFontGlyph(img *image.NRGBA, face font.Face, cellX, cellY int, r rune) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.White),
		Face: face,
		Dot:  fixed.P(cellX+4, cellY+13),
	}
	d.DrawString(string(r))
}

// drawBlockGlyph fills the block elements; unknown codes are left empty.
func drawBlockGlyph(img *image.NRGBA, cellX, cellY int, code byte) {
	var x0, y0, x1, y1 int
	switch code {
	case GlyphFullBlock:
		x0, y0, x1, y1 = 0, 0, GlyphWidth, GlyphHeight
	case GlyphLowerHalf:
		x0, y0, x1, y1 = 0, GlyphHeight/2, GlyphWidth, GlyphHeight
	case GlyphUpperHalf:
		x0, y0, x1, y1 = 0, 0, GlyphWidth, GlyphHeight/2
	case GlyphSmallBlock:
		x0, y0, x1, y1 = 4, 4, 12, 12
	default:
		return
	}

	w := color.NRGBA{255, 255, 255, 255}
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			img.SetNRGBA(cellX+x, cellY+y, w)
		}
	}
}
