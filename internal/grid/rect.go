package grid

import "fmt"

// Rect is a half-open index rectangle [X0,X1) x [Y0,Y1) in global grid indices.
// X runs along columns (i), Y along rows (j).
type Rect struct {
	X0, X1, Y0, Y1 int
}

func NewRect(x0, x1, y0, y1 int) Rect {
	return Rect{X0: x0, X1: x1, Y0: y0, Y1: y1}
}

func (r Rect) Width() int {
	if r.X1 <= r.X0 {
		return 0
	}
	return r.X1 - r.X0
}

func (r Rect) Height() int {
	if r.Y1 <= r.Y0 {
		return 0
	}
	return r.Y1 - r.Y0
}

func (r Rect) Area() int {
	return r.Width() * r.Height()
}

func (r Rect) Empty() bool {
	return r.X1 <= r.X0 || r.Y1 <= r.Y0
}

func (r Rect) Contains(i, j int) bool {
	return i >= r.X0 && i < r.X1 && j >= r.Y0 && j < r.Y1
}

// Intersect returns the overlap of r and o. The result may be empty.
func (r Rect) Intersect(o Rect) Rect {
	return Rect{
		X0: max(r.X0, o.X0),
		X1: min(r.X1, o.X1),
		Y0: max(r.Y0, o.Y0),
		Y1: min(r.Y1, o.Y1),
	}
}

// Grow expands r by w on every side.
func (r Rect) Grow(w int) Rect {
	return Rect{X0: r.X0 - w, X1: r.X1 + w, Y0: r.Y0 - w, Y1: r.Y1 + w}
}

func (r Rect) String() string {
	return fmt.Sprintf("[%d,%d)x[%d,%d)", r.X0, r.X1, r.Y0, r.Y1)
}
