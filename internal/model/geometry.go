// Package model holds the pure data types and small pure functions that
// describe a fabric scrap packing session: fabrics, edges, geometry
// primitives, and session-wide configuration. Nothing here performs I/O.
package model

// Side identifies which edge of the growing composite a strip attaches to.
type Side int

const (
	Top Side = iota
	Right
	Bottom
	Left
)

func (s Side) String() string {
	switch s {
	case Top:
		return "top"
	case Right:
		return "right"
	case Bottom:
		return "bottom"
	case Left:
		return "left"
	default:
		return "unknown"
	}
}

// Strategy names a quilt assembly strategy.
type Strategy string

const (
	LogCabin        Strategy = "log-cabin"
	CourthouseSteps Strategy = "courthouse-steps"
	RailFence       Strategy = "rail-fence"
)

// Point is an integer pixel coordinate.
type Point struct {
	X, Y int
}

// Rect is an axis-aligned pixel rectangle, width/height inclusive of origin.
type Rect struct {
	X, Y, W, H int
}

// Right2 and Bottom2 avoid colliding with the Side constants above.
func (r Rect) Right2() int  { return r.X + r.W }
func (r Rect) Bottom2() int { return r.Y + r.H }

func (r Rect) Area() int { return r.W * r.H }

// Intersect returns the overlapping rectangle of r and o, or the zero Rect
// (W==0 || H==0) when they do not overlap.
func (r Rect) Intersect(o Rect) Rect {
	x0, y0 := max(r.X, o.X), max(r.Y, o.Y)
	x1, y1 := min(r.Right2(), o.Right2()), min(r.Bottom2(), o.Bottom2())
	if x1 <= x0 || y1 <= y0 {
		return Rect{}
	}
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Segment is one side of an ImageShape, carrying enough information to
// reconstruct direction and orientation without a back-reference to the
// shape it came from.
type Segment struct {
	Start, End   Point
	Length       int
	Horizontal   bool
	Orientation  Side // which side of the owning shape this segment represents
}

// ImageShape is the positioned, possibly-rotated footprint of one fabric (or
// one strip, or the whole composite) as it sits inside the packing space.
// Rotations accumulates every 90-degree turn applied so far; Box and Edges
// account for it without mutating W/H in place.
type ImageShape struct {
	X, Y, W, H int
	Rotations  []int
}

// Box returns the shape's bounding rectangle, swapping W/H when the total
// accumulated rotation is an odd multiple of 90 degrees.
func (s ImageShape) Box() Rect {
	w, h := s.W, s.H
	if s.oddRotation() {
		w, h = h, w
	}
	return Rect{X: s.X, Y: s.Y, W: w, H: h}
}

func (s ImageShape) oddRotation() bool {
	total := 0
	for _, a := range s.Rotations {
		total += a
	}
	return (total/90)%2 != 0
}

// Rotate accumulates an additional rotation (degrees, must be a multiple of 90).
func (s ImageShape) Rotate(angleDeg int) ImageShape {
	next := make([]int, len(s.Rotations)+1)
	copy(next, s.Rotations)
	next[len(s.Rotations)] = angleDeg
	s.Rotations = next
	return s
}

// Edges returns the four segments of the shape's current (rotated) box in
// top, right, bottom, left order.
func (s ImageShape) Edges() []Segment {
	b := s.Box()
	return []Segment{
		{Start: Point{b.X, b.Y}, End: Point{b.Right2(), b.Y}, Length: b.W, Horizontal: true, Orientation: Top},
		{Start: Point{b.Right2(), b.Y}, End: Point{b.Right2(), b.Bottom2()}, Length: b.H, Horizontal: false, Orientation: Right},
		{Start: Point{b.X, b.Bottom2()}, End: Point{b.Right2(), b.Bottom2()}, Length: b.W, Horizontal: true, Orientation: Bottom},
		{Start: Point{b.X, b.Y}, End: Point{b.X, b.Bottom2()}, Length: b.H, Horizontal: false, Orientation: Left},
	}
}

// OverlapArea returns the pixel area shared by two shapes' boxes.
func (s ImageShape) OverlapArea(o ImageShape) int {
	return s.Box().Intersect(o.Box()).Area()
}

// HomeImageShapes translates a set of shapes so their combined minimum
// corner becomes the origin.
func HomeImageShapes(shapes []ImageShape) []ImageShape {
	if len(shapes) == 0 {
		return shapes
	}
	minX, minY := shapes[0].Box().X, shapes[0].Box().Y
	for _, s := range shapes[1:] {
		b := s.Box()
		if b.X < minX {
			minX = b.X
		}
		if b.Y < minY {
			minY = b.Y
		}
	}
	out := make([]ImageShape, len(shapes))
	for i, s := range shapes {
		s.X -= minX
		s.Y -= minY
		out[i] = s
	}
	return out
}
