package mono

// Pixel is a single coloured point.
type Pixel struct {
	Point
	Color Color
}

// PixelIterator yields pixels until ok is false.
type PixelIterator interface {
	Next() (px Pixel, ok bool)
}

// ColorIterator yields colours for consecutive positions of an area.
type ColorIterator interface {
	Next() (c Color, ok bool)
}

// Surface is the monochrome drawable the renderer targets. Implementations
// clip drawing to Bounds and never fail for out-of-range coordinates; an
// error means the underlying display or transport failed.
type Surface interface {
	Bounds() Rectangle
	Clear(c Color) error
	DrawPixels(it PixelIterator) error
	// FillContiguous paints area in row-major order with colours taken from
	// colors. It stops early if colors runs out.
	FillContiguous(area Rectangle, colors ColorIterator) error
	FillSolid(area Rectangle, c Color) error
}

// PixelSlice adapts a slice to PixelIterator.
type PixelSlice struct {
	px []Pixel
	i  int
}

func Pixels(px ...Pixel) *PixelSlice { return &PixelSlice{px: px} }

func (s *PixelSlice) Next() (Pixel, bool) {
	if s.i >= len(s.px) {
		return Pixel{}, false
	}
	p := s.px[s.i]
	s.i++
	return p, true
}
