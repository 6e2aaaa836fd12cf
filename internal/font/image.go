// Package font renders text and glyphs by extracting sub-images from a
// packed, read-only 1-bit bitmap.
//
// The bitmap lives behind a Memory so it can sit in storage that is only
// efficiently readable in chunks. Blits stream pixels out of a small window
// of that memory instead of copying rows.
package font

import (
	"io"

	"github.com/FabianRolfMatthiasNoll/SequenceMemory/internal/mono"
)

// Memory is read-only storage holding a packed bitmap.
type Memory interface {
	io.ReaderAt
	Len() int
}

// Image is a packed monochrome bitmap: one bit per pixel, most significant
// bit first, each row padded to a whole number of bytes.
type Image struct {
	mem   Memory
	width int
}

func NewImage(mem Memory, width int) Image {
	return Image{mem: mem, width: width}
}

func (im Image) Width() int { return im.width }

// RowBytes is the number of bytes per padded row.
func (im Image) RowBytes() int { return (im.width + 7) / 8 }

// DataWidth is the padded row width in pixels.
func (im Image) DataWidth() int { return im.RowBytes() * 8 }

func (im Image) Height() int {
	if im.mem == nil || im.RowBytes() == 0 {
		return 0
	}
	return im.mem.Len() / im.RowBytes()
}

func (im Image) Size() mono.Size { return mono.Size{W: im.width, H: im.Height()} }

func (im Image) Bounds() mono.Rectangle { return mono.Rectangle{Size: im.Size()} }

// Memory returns the backing storage.
func (im Image) Memory() Memory { return im.mem }

// Draw blits the whole image with its top-left corner at at.
func (im Image) Draw(target mono.Surface, at mono.Point) error {
	return im.DrawSubImage(target, im.Bounds(), at)
}

// DrawSubImage blits area of the image so that its top-left corner lands on
// at. Areas that are empty or not fully inside the image draw nothing.
func (im Image) DrawSubImage(target mono.Surface, area mono.Rectangle, at mono.Point) error {
	if !im.Bounds().ContainsRect(area) {
		return nil
	}
	px := im.pixels(area)
	if err := target.FillContiguous(mono.Rectangle{Min: at, Size: area.Size}, px); err != nil {
		return err
	}
	return px.Err()
}

func (im Image) pixels(area mono.Rectangle) *Pixels {
	dw := im.DataWidth()
	return &Pixels{
		r:         chunkReader{mem: im.mem},
		width:     area.Size.W,
		bit:       area.Min.Y*dw + area.Min.X,
		rowSkip:   dw - area.Size.W,
		remaining: area.Size.Area(),
	}
}

// Pixels is a forward-only stream of the colours inside one sub-image, in
// row-major order. It yields exactly width*height colours and cannot be
// restarted.
type Pixels struct {
	r         chunkReader
	width     int
	x         int
	bit       int // absolute bit offset of the next pixel
	rowSkip   int // padding bits between the end of one row and the next
	remaining int
	err       error
}

func (p *Pixels) Next() (mono.Color, bool) {
	if p.remaining <= 0 || p.err != nil {
		return mono.Off, false
	}
	b, err := p.r.byteAt(p.bit / 8)
	if err != nil {
		p.err = err
		return mono.Off, false
	}
	c := mono.Off
	if b&(0x80>>(p.bit%8)) != 0 {
		c = mono.On
	}
	p.bit++
	p.x++
	p.remaining--
	if p.x == p.width {
		p.x = 0
		p.bit += p.rowSkip
	}
	return c, true
}

// Err reports a memory read failure that cut the stream short.
func (p *Pixels) Err() error { return p.err }
