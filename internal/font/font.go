package font

import "github.com/FabianRolfMatthiasNoll/SequenceMemory/internal/mono"

// DecorationDimensions places an underline or strikethrough inside a cell.
type DecorationDimensions struct {
	Offset int // rows from the top of the cell
	Height int
}

// GlyphMapping maps a character to its cell index in the font sheet.
type GlyphMapping interface {
	Index(r rune) int
}

// MappingFunc adapts a function to GlyphMapping.
type MappingFunc func(r rune) int

func (f MappingFunc) Index(r rune) int { return f(r) }

// ReplacementIndex is the cell ASCII maps unknown characters to.
const ReplacementIndex = 95

type asciiMapping struct{}

func (asciiMapping) Index(r rune) int {
	if r >= ' ' && r <= '~' {
		return int(r - ' ')
	}
	return ReplacementIndex
}

// ASCII maps printable ASCII starting at space to cells 0..94.
var ASCII GlyphMapping = asciiMapping{}

// Font describes a grid of fixed-size glyph cells laid out row-major in a
// packed image.
type Font struct {
	Image            Image
	CharacterSize    mono.Size
	CharacterSpacing int
	Baseline         int // rows from the top of the cell to the baseline
	Underline        DecorationDimensions
	Strikethrough    DecorationDimensions
	Mapping          GlyphMapping
}

// Columns returns how many cells fit across the sheet.
func (f *Font) Columns() int {
	if f.CharacterSize.W <= 0 {
		return 0
	}
	return f.Image.Width() / f.CharacterSize.W
}

// Rows returns how many cell rows fit down the sheet.
func (f *Font) Rows() int {
	if f.CharacterSize.H <= 0 {
		return 0
	}
	return f.Image.Height() / f.CharacterSize.H
}

// Advance is the horizontal distance between consecutive characters.
func (f *Font) Advance() int { return f.CharacterSize.W + f.CharacterSpacing }

func (f *Font) LineHeight() int { return f.CharacterSize.H }

// Glyph returns the view of r's cell. Degenerate fonts and characters that
// map outside the grid yield an empty glyph.
func (f *Font) Glyph(r rune) Glyph {
	cols := f.Columns()
	if cols == 0 || f.CharacterSize.H <= 0 || f.Mapping == nil {
		return Glyph{}
	}
	i := f.Mapping.Index(r)
	if i < 0 || i >= cols*f.Rows() {
		return Glyph{}
	}
	x := (i % cols) * f.CharacterSize.W
	y := (i / cols) * f.CharacterSize.H
	return Glyph{
		image: f.Image,
		area:  mono.Rectangle{Min: mono.Pt(x, y), Size: f.CharacterSize},
	}
}

// Glyph is a non-owning window onto one cell of a font image.
type Glyph struct {
	image Image
	area  mono.Rectangle
}

// Area is the glyph's cell in image coordinates.
func (g Glyph) Area() mono.Rectangle { return g.area }

func (g Glyph) IsEmpty() bool { return g.area.IsEmpty() }

func (g Glyph) Draw(target mono.Surface, at mono.Point) error {
	if g.IsEmpty() {
		return nil
	}
	return g.image.DrawSubImage(target, g.area, at)
}

// DrawSubImage draws part of the glyph. area is relative to the glyph's cell
// and is clipped to it; at is where the clipped area's top-left lands.
func (g Glyph) DrawSubImage(target mono.Surface, area mono.Rectangle, at mono.Point) error {
	area = area.Intersect(mono.Rectangle{Size: g.area.Size})
	if area.IsEmpty() {
		return nil
	}
	return g.image.DrawSubImage(target, area.Translate(g.area.Min), at)
}
