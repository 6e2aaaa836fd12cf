package mono

import (
	"hash/crc32"
	"image"
	"image/color"
)

// Framebuffer is a packed 1bpp buffer: rows padded to whole bytes, most
// significant bit first. It is the in-memory frame the boards push to their
// output on flush.
type Framebuffer struct {
	w, h   int
	stride int
	buf    []byte
}

func NewFramebuffer(w, h int) *Framebuffer {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	stride := (w + 7) / 8
	return &Framebuffer{w: w, h: h, stride: stride, buf: make([]byte, stride*h)}
}

func (f *Framebuffer) Size() Size        { return Size{f.w, f.h} }
func (f *Framebuffer) Bounds() Rectangle { return Rect(0, 0, f.w, f.h) }

// Bytes exposes the packed rows.
func (f *Framebuffer) Bytes() []byte { return f.buf }

func (f *Framebuffer) CRC32() uint32 { return crc32.ChecksumIEEE(f.buf) }

func (f *Framebuffer) At(x, y int) Color {
	if !f.Bounds().Contains(Pt(x, y)) {
		return Off
	}
	if f.buf[y*f.stride+x/8]&(0x80>>(x%8)) != 0 {
		return On
	}
	return Off
}

func (f *Framebuffer) Set(x, y int, c Color) {
	if !f.Bounds().Contains(Pt(x, y)) {
		return
	}
	i, bit := y*f.stride+x/8, byte(0x80>>(x%8))
	if c == On {
		f.buf[i] |= bit
	} else {
		f.buf[i] &^= bit
	}
}

// CountOn returns the number of lit pixels.
func (f *Framebuffer) CountOn() int {
	n := 0
	for y := 0; y < f.h; y++ {
		for x := 0; x < f.w; x++ {
			if f.At(x, y) == On {
				n++
			}
		}
	}
	return n
}

// CopyFrom copies src into f. Both buffers must have the same size.
func (f *Framebuffer) CopyFrom(src *Framebuffer) {
	copy(f.buf, src.buf)
}

func (f *Framebuffer) Clear(c Color) error {
	var v byte
	if c == On {
		v = 0xFF
	}
	for i := range f.buf {
		f.buf[i] = v
	}
	return nil
}

func (f *Framebuffer) DrawPixels(it PixelIterator) error {
	for {
		p, ok := it.Next()
		if !ok {
			return nil
		}
		f.Set(p.X, p.Y, p.Color)
	}
}

func (f *Framebuffer) FillContiguous(area Rectangle, colors ColorIterator) error {
	if area.IsEmpty() {
		return nil
	}
	m := area.Max()
	for y := area.Min.Y; y < m.Y; y++ {
		for x := area.Min.X; x < m.X; x++ {
			c, ok := colors.Next()
			if !ok {
				return nil
			}
			f.Set(x, y, c)
		}
	}
	return nil
}

func (f *Framebuffer) FillSolid(area Rectangle, c Color) error {
	area = area.Intersect(f.Bounds())
	m := area.Max()
	for y := area.Min.Y; y < m.Y; y++ {
		for x := area.Min.X; x < m.X; x++ {
			f.Set(x, y, c)
		}
	}
	return nil
}

// RGBA renders the buffer into an RGBA image using the given palette.
func (f *Framebuffer) RGBA(on, off color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, f.w, f.h))
	f.WriteRGBA(img.Pix, on, off)
	return img
}

// WriteRGBA fills pix (w*h*4 bytes) with the buffer's pixels.
func (f *Framebuffer) WriteRGBA(pix []byte, on, off color.RGBA) {
	i := 0
	for y := 0; y < f.h; y++ {
		for x := 0; x < f.w; x++ {
			if i+3 >= len(pix) {
				return
			}
			c := off
			if f.At(x, y) == On {
				c = on
			}
			pix[i], pix[i+1], pix[i+2], pix[i+3] = c.R, c.G, c.B, c.A
			i += 4
		}
	}
}
