package font

import (
	"testing"

	"github.com/FabianRolfMatthiasNoll/SequenceMemory/internal/mono"
	"github.com/FabianRolfMatthiasNoll/SequenceMemory/internal/progmem"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// packBits builds a packed asset of the given size from a pixel function.
func packBits(w, h int, on func(x, y int) bool) []byte {
	rowBytes := (w + 7) / 8
	data := make([]byte, rowBytes*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if on(x, y) {
				data[y*rowBytes+x/8] |= 0x80 >> (x % 8)
			}
		}
	}
	return data
}

// recorder counts FillContiguous calls on top of a framebuffer.
type recorder struct {
	*mono.Framebuffer
	fills int
}

func (r *recorder) FillContiguous(area mono.Rectangle, colors mono.ColorIterator) error {
	r.fills++
	return r.Framebuffer.FillContiguous(area, colors)
}

// 20px wide sheet (3 bytes per row, 4 padding bits) of 4x3 cells: 5 columns, 2 rows.
func gridFont(on func(x, y int) bool) *Font {
	return &Font{
		Image:         NewImage(progmem.New(packBits(20, 6, on)), 20),
		CharacterSize: mono.Size{W: 4, H: 3},
		Mapping:       MappingFunc(func(r rune) int { return int(r - 'a') }),
	}
}

func TestGlyphAddressing(t *testing.T) {
	f := gridFont(func(x, y int) bool { return false })
	if f.Columns() != 5 || f.Rows() != 2 {
		t.Fatalf("grid = %dx%d, want 5x2", f.Columns(), f.Rows())
	}
	for i := 0; i < 10; i++ {
		g := f.Glyph(rune('a' + i))
		want := mono.Rect((i%5)*4, (i/5)*3, 4, 3)
		if g.Area() != want {
			t.Fatalf("glyph %d area = %+v want %+v", i, g.Area(), want)
		}
	}
}

func TestGlyphOutsideGridIsEmpty(t *testing.T) {
	f := gridFont(func(x, y int) bool { return true })
	for _, r := range []rune{'a' + 10, 'a' + 1000, 'a' - 1} {
		g := f.Glyph(r)
		if !g.IsEmpty() {
			t.Fatalf("glyph %q should be empty, got %+v", r, g.Area())
		}
		fb := mono.NewFramebuffer(8, 8)
		if err := g.Draw(fb, mono.Pt(0, 0)); err != nil {
			t.Fatal(err)
		}
		if fb.CountOn() != 0 {
			t.Fatalf("empty glyph %q drew pixels", r)
		}
	}
}

func TestDegenerateFontYieldsEmptyGlyph(t *testing.T) {
	zero := &Font{
		Image:   NewImage(progmem.New(make([]byte, 4)), 8),
		Mapping: ASCII,
	}
	if !zero.Glyph('A').IsEmpty() {
		t.Fatal("zero cell width must give an empty glyph")
	}
	narrow := &Font{
		Image:         NewImage(progmem.New(make([]byte, 10)), 4),
		CharacterSize: mono.Size{W: 6, H: 10},
		Mapping:       ASCII,
	}
	if !narrow.Glyph(' ').IsEmpty() {
		t.Fatal("asset narrower than a cell must give an empty glyph")
	}
}

func TestGlyphDrawCopiesCell(t *testing.T) {
	// Light a diagonal inside cell 7 (column 2, row 1) only.
	f := gridFont(func(x, y int) bool {
		return x >= 8 && x < 12 && y >= 3 && y < 6 && x-8 == y-3
	})
	fb := mono.NewFramebuffer(10, 10)
	if err := f.Glyph('a'+7).Draw(fb, mono.Pt(2, 5)); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		if fb.At(2+i, 5+i) != mono.On {
			t.Fatalf("diagonal pixel %d not lit", i)
		}
	}
	if fb.CountOn() != 3 {
		t.Fatalf("lit = %d, want 3", fb.CountOn())
	}

	// Neighbouring cells stay dark.
	fb2 := mono.NewFramebuffer(10, 10)
	_ = f.Glyph('a'+6).Draw(fb2, mono.Pt(0, 0))
	_ = f.Glyph('a'+2).Draw(fb2, mono.Pt(0, 0))
	if fb2.CountOn() != 0 {
		t.Fatal("neighbouring cells drew pixels")
	}
}

func TestGlyphSubImageClipsToCell(t *testing.T) {
	g := Font6x13.Glyph('H')
	full := mono.NewFramebuffer(6, 13)
	if err := g.Draw(full, mono.Point{}); err != nil {
		t.Fatal(err)
	}

	// The area overhangs the 6x13 cell; only its (3,6)-(6,13) corner is drawn.
	at := mono.Pt(10, 20)
	fb := mono.NewFramebuffer(32, 40)
	if err := g.DrawSubImage(fb, mono.Rect(3, 6, 10, 10), at); err != nil {
		t.Fatal(err)
	}
	want := 0
	for y := 0; y < 7; y++ {
		for x := 0; x < 3; x++ {
			if fb.At(at.X+x, at.Y+y) != full.At(3+x, 6+y) {
				t.Fatalf("pixel (%d,%d) differs from the glyph", x, y)
			}
			if full.At(3+x, 6+y) == mono.On {
				want++
			}
		}
	}
	if want == 0 {
		t.Fatal("corner of 'H' is blank")
	}
	if fb.CountOn() != want {
		t.Fatalf("lit = %d, want %d", fb.CountOn(), want)
	}

	// Clipping stays inside the cell even when the neighbours are lit.
	solid := gridFont(func(x, y int) bool { return true })
	fb = mono.NewFramebuffer(10, 10)
	if err := solid.Glyph('a'+6).DrawSubImage(fb, mono.Rect(2, 1, 10, 10), mono.Pt(0, 0)); err != nil {
		t.Fatal(err)
	}
	if fb.CountOn() != 4 || fb.At(1, 1) != mono.On || fb.At(2, 0) != mono.Off {
		t.Fatalf("clipped area bled out of the cell: lit = %d", fb.CountOn())
	}

	// An area entirely outside the cell draws nothing.
	fb = mono.NewFramebuffer(32, 40)
	if err := g.DrawSubImage(fb, mono.Rect(20, 20, 3, 3), mono.Point{}); err != nil {
		t.Fatalf("outside area: %v", err)
	}
	if fb.CountOn() != 0 {
		t.Fatal("outside area drew pixels")
	}
}

func TestSubImageOutOfBoundsDrawsNothing(t *testing.T) {
	data := packBits(12, 4, func(x, y int) bool { return true })
	im := NewImage(progmem.New(data), 12)
	for _, area := range []mono.Rectangle{
		{},
		mono.Rect(0, 0, 0, 3),
		mono.Rect(10, 0, 4, 2),  // crosses the right edge
		mono.Rect(0, 3, 2, 2),   // crosses the bottom edge
		mono.Rect(-1, 0, 2, 2),  // negative origin
		mono.Rect(20, 20, 1, 1), // fully outside
	} {
		r := &recorder{Framebuffer: mono.NewFramebuffer(16, 16)}
		if err := im.DrawSubImage(r, area, mono.Pt(0, 0)); err != nil {
			t.Fatalf("%+v: %v", area, err)
		}
		if r.fills != 0 || r.CountOn() != 0 {
			t.Fatalf("%+v: touched target (fills=%d lit=%d)", area, r.fills, r.CountOn())
		}
	}
}

func TestSubImageSkipsRowPadding(t *testing.T) {
	// 12px wide: 2 bytes per row, DataWidth 16, 4 padding bits per row.
	on := func(x, y int) bool { return (x+y)%3 == 0 }
	im := NewImage(progmem.New(packBits(12, 5, on)), 12)
	if im.DataWidth() != 16 || im.Height() != 5 {
		t.Fatalf("geometry: dataWidth=%d height=%d", im.DataWidth(), im.Height())
	}
	area := mono.Rect(3, 1, 9, 4)
	fb := mono.NewFramebuffer(12, 6)
	if err := im.DrawSubImage(fb, area, mono.Pt(1, 2)); err != nil {
		t.Fatal(err)
	}
	for y := 0; y < area.Size.H; y++ {
		for x := 0; x < area.Size.W; x++ {
			want := mono.Off
			if on(area.Min.X+x, area.Min.Y+y) {
				want = mono.On
			}
			if got := fb.At(1+x, 2+y); got != want {
				t.Fatalf("pixel (%d,%d) = %s want %s", x, y, got, want)
			}
		}
	}
}

func TestPixelsAreFiniteAndSinglePass(t *testing.T) {
	im := NewImage(progmem.New(packBits(8, 2, func(x, y int) bool { return true })), 8)
	px := im.pixels(mono.Rect(0, 0, 3, 2))
	n := 0
	for {
		if _, ok := px.Next(); !ok {
			break
		}
		n++
	}
	if n != 6 {
		t.Fatalf("yielded %d pixels, want 6", n)
	}
	if _, ok := px.Next(); ok {
		t.Fatal("exhausted stream yielded again")
	}
}

// spyMemory records every read window.
type spyMemory struct {
	*progmem.ROM
	windows [][2]int
}

func (s *spyMemory) ReadAt(p []byte, off int64) (int, error) {
	s.windows = append(s.windows, [2]int{int(off), len(p)})
	return s.ROM.ReadAt(p, off)
}

func TestChunkRefillAcrossRows(t *testing.T) {
	// 64px wide (8 bytes per row), 40 rows: 320 bytes, ten chunks.
	on := func(x, y int) bool { return (x*7+y*3)%5 == 0 }
	mem := &spyMemory{ROM: progmem.New(packBits(64, 40, on))}
	im := NewImage(mem, 64)
	area := mono.Rect(5, 2, 9, 38)
	fb := mono.NewFramebuffer(16, 40)
	if err := im.DrawSubImage(fb, area, mono.Pt(0, 0)); err != nil {
		t.Fatal(err)
	}
	for y := 0; y < area.Size.H; y++ {
		for x := 0; x < area.Size.W; x++ {
			want := mono.Off
			if on(area.Min.X+x, area.Min.Y+y) {
				want = mono.On
			}
			if got := fb.At(x, y); got != want {
				t.Fatalf("pixel (%d,%d) = %s want %s", x, y, got, want)
			}
		}
	}
	if len(mem.windows) < 2 {
		t.Fatalf("expected several chunk loads for a %d byte blit, got %d", 38*8, len(mem.windows))
	}
	prev := -1
	for _, w := range mem.windows {
		off, n := w[0], w[1]
		if off < 0 || off+n > mem.Len() {
			t.Fatalf("read window [%d,%d) outside asset of %d bytes", off, off+n, mem.Len())
		}
		if n != ChunkSize {
			t.Fatalf("window length %d, want %d", n, ChunkSize)
		}
		if off <= prev {
			t.Fatalf("windows not strictly forward: %d after %d", off, prev)
		}
		prev = off
	}
}

func TestChunkWindowClampedAtEnd(t *testing.T) {
	// 40 bytes: a chunk at the last row must be shifted back to start at 8.
	mem := &spyMemory{ROM: progmem.New(packBits(8, 40, func(x, y int) bool { return y == 39 }))}
	im := NewImage(mem, 8)
	fb := mono.NewFramebuffer(8, 1)
	if err := im.DrawSubImage(fb, mono.Rect(0, 39, 8, 1), mono.Pt(0, 0)); err != nil {
		t.Fatal(err)
	}
	if fb.CountOn() != 8 {
		t.Fatalf("lit = %d, want 8", fb.CountOn())
	}
	if len(mem.windows) != 1 || mem.windows[0] != [2]int{8, ChunkSize} {
		t.Fatalf("windows = %v, want [[8 %d]]", mem.windows, ChunkSize)
	}
}

func TestSmallAssetReadsWholeBlob(t *testing.T) {
	mem := &spyMemory{ROM: progmem.New(packBits(8, 3, func(x, y int) bool { return x == y }))}
	im := NewImage(mem, 8)
	fb := mono.NewFramebuffer(8, 3)
	if err := im.Draw(fb, mono.Pt(0, 0)); err != nil {
		t.Fatal(err)
	}
	if fb.CountOn() != 3 {
		t.Fatalf("lit = %d", fb.CountOn())
	}
	if len(mem.windows) != 1 || mem.windows[0] != [2]int{0, 3} {
		t.Fatalf("windows = %v", mem.windows)
	}
}

func TestFont6x13Geometry(t *testing.T) {
	f := Font6x13
	if f.Image.Width() != 96 || f.Image.Height() != 78 || f.Image.Memory().Len() != 936 {
		t.Fatalf("sheet %dx%d (%d bytes)", f.Image.Width(), f.Image.Height(), f.Image.Memory().Len())
	}
	if f.Columns() != 16 || f.CharacterSize != (mono.Size{W: 6, H: 13}) {
		t.Fatalf("columns=%d cell=%+v", f.Columns(), f.CharacterSize)
	}
	if got := f.Glyph('A').Area().Min; got != mono.Pt(6, 26) {
		t.Fatalf("'A' cell origin = %+v", got)
	}
	if got := f.Glyph('é').Area().Min; got != mono.Pt(90, 65) {
		t.Fatalf("replacement cell origin = %+v", got)
	}
}

func TestFont6x13MatchesFace(t *testing.T) {
	face := basicfont.Face7x13
	for _, r := range []rune{'A', 'g', '!', '~', '0'} {
		fb := mono.NewFramebuffer(6, 13)
		if err := Font6x13.Glyph(r).Draw(fb, mono.Pt(0, 0)); err != nil {
			t.Fatal(err)
		}
		dr, mask, maskp, _, ok := face.Glyph(fixed.P(0, face.Ascent), r)
		if !ok {
			t.Fatalf("face lacks %q", r)
		}
		lit := 0
		for y := 0; y < dr.Dy(); y++ {
			for x := 0; x < dr.Dx(); x++ {
				_, _, _, a := mask.At(maskp.X+x, maskp.Y+y).RGBA()
				want := a >= 0x8000
				if got := fb.At(dr.Min.X+x, dr.Min.Y+y) == mono.On; got != want {
					t.Fatalf("%q pixel (%d,%d) = %v want %v", r, x, y, got, want)
				}
				if want {
					lit++
				}
			}
		}
		if lit == 0 {
			t.Fatalf("%q has no ink", r)
		}
	}
	fb := mono.NewFramebuffer(6, 13)
	_ = Font6x13.Glyph(' ').Draw(fb, mono.Pt(0, 0))
	if fb.CountOn() != 0 {
		t.Fatal("space drew pixels")
	}
}

func TestFold(t *testing.T) {
	for in, want := range map[string]string{
		"Répète!":     "Repete!",
		"Good! Next:": "Good! Next:",
		"Ñandú":       "Nandu",
	} {
		if got := Fold(in); got != want {
			t.Fatalf("Fold(%q) = %q want %q", in, got, want)
		}
	}
}
