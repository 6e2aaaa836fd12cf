// Package mono holds the 1-bit drawing primitives shared by the renderer,
// the game engine and the boards.
package mono

// Color is a binary pixel colour.
type Color uint8

const (
	Off Color = iota
	On
)

func (c Color) String() string {
	if c == On {
		return "on"
	}
	return "off"
}

type Point struct {
	X, Y int
}

func Pt(x, y int) Point { return Point{X: x, Y: y} }

func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

type Size struct {
	W, H int
}

// IsZero reports whether the size covers no pixels.
func (s Size) IsZero() bool { return s.W <= 0 || s.H <= 0 }

func (s Size) Area() int {
	if s.IsZero() {
		return 0
	}
	return s.W * s.H
}

// Rectangle is an axis-aligned area given by its top-left corner and size.
type Rectangle struct {
	Min  Point
	Size Size
}

func Rect(x, y, w, h int) Rectangle {
	return Rectangle{Min: Point{x, y}, Size: Size{w, h}}
}

// Max returns the exclusive bottom-right corner.
func (r Rectangle) Max() Point {
	return Point{r.Min.X + r.Size.W, r.Min.Y + r.Size.H}
}

func (r Rectangle) IsEmpty() bool { return r.Size.IsZero() }

// Contains reports whether p lies inside r.
func (r Rectangle) Contains(p Point) bool {
	m := r.Max()
	return p.X >= r.Min.X && p.Y >= r.Min.Y && p.X < m.X && p.Y < m.Y
}

// ContainsRect reports whether o lies entirely inside r. Empty rectangles
// are never contained.
func (r Rectangle) ContainsRect(o Rectangle) bool {
	if o.IsEmpty() || r.IsEmpty() {
		return false
	}
	rm, om := r.Max(), o.Max()
	return o.Min.X >= r.Min.X && o.Min.Y >= r.Min.Y && om.X <= rm.X && om.Y <= rm.Y
}

func (r Rectangle) Translate(d Point) Rectangle {
	return Rectangle{Min: r.Min.Add(d), Size: r.Size}
}

// Intersect returns the overlap of r and o, or the zero rectangle.
func (r Rectangle) Intersect(o Rectangle) Rectangle {
	rm, om := r.Max(), o.Max()
	x0, y0 := max(r.Min.X, o.Min.X), max(r.Min.Y, o.Min.Y)
	x1, y1 := min(rm.X, om.X), min(rm.Y, om.Y)
	if x1 <= x0 || y1 <= y0 {
		return Rectangle{}
	}
	return Rect(x0, y0, x1-x0, y1-y0)
}
