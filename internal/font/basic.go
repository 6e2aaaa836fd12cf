package font

import (
	"errors"

	"github.com/FabianRolfMatthiasNoll/SequenceMemory/internal/mono"
	"github.com/FabianRolfMatthiasNoll/SequenceMemory/internal/progmem"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Font6x13 is basicfont's 7x13 face packed into a 16-column sheet of 6x13
// cells (96x78 px, 936 bytes).
var Font6x13 = mustPack(basicfont.Face7x13, 16)

func mustPack(face *basicfont.Face, columns int) *Font {
	f, err := Pack(face, columns)
	if err != nil {
		panic(err)
	}
	return f
}

// Pack rasterises the printable ASCII glyphs of face, followed by U+FFFD in
// cell ReplacementIndex, into a packed sheet with the given number of
// columns. The result maps characters with ASCII.
func Pack(face *basicfont.Face, columns int) (*Font, error) {
	if face == nil || face.Mask == nil {
		return nil, errors.New("font: face has no glyph mask")
	}
	if columns <= 0 {
		return nil, errors.New("font: columns must be positive")
	}
	cellW, cellH := face.Width, face.Ascent+face.Descent
	if cellW <= 0 || cellH <= 0 {
		return nil, errors.New("font: face has empty cells")
	}

	chars := make([]rune, 0, ReplacementIndex+1)
	for r := ' '; r <= '~'; r++ {
		chars = append(chars, r)
	}
	chars = append(chars, '\ufffd')

	rows := (len(chars) + columns - 1) / columns
	width := columns * cellW
	rowBytes := (width + 7) / 8
	data := make([]byte, rowBytes*rows*cellH)

	dot := fixed.P(0, face.Ascent)
	for i, r := range chars {
		dr, mask, maskp, _, ok := face.Glyph(dot, r)
		if !ok {
			continue
		}
		ox, oy := (i%columns)*cellW, (i/columns)*cellH
		for y := 0; y < dr.Dy(); y++ {
			cy := dr.Min.Y + y
			if cy < 0 || cy >= cellH {
				continue
			}
			for x := 0; x < dr.Dx(); x++ {
				cx := dr.Min.X + x
				if cx < 0 || cx >= cellW {
					continue
				}
				if _, _, _, a := mask.At(maskp.X+x, maskp.Y+y).RGBA(); a < 0x8000 {
					continue
				}
				px, py := ox+cx, oy+cy
				data[py*rowBytes+px/8] |= 0x80 >> (px % 8)
			}
		}
	}

	return &Font{
		Image:            NewImage(progmem.New(data), width),
		CharacterSize:    mono.Size{W: cellW, H: cellH},
		CharacterSpacing: max(face.Advance-face.Width, 0),
		Baseline:         face.Ascent - 1,
		Underline:        DecorationDimensions{Offset: face.Ascent + 1, Height: 1},
		Strikethrough:    DecorationDimensions{Offset: cellH / 2, Height: 1},
		Mapping:          ASCII,
	}, nil
}
