// Package grid holds ghost-padded multi-component grid functions.
//
// A Function is addressed with global indices (row j, column i, component c).
// Storage is one contiguous row-major slice: components of a point are
// adjacent, points of a row are adjacent, rows follow each other. The halo is
// allocated on all four sides; halo cells that lie outside the global domain
// are never read by the operators and stay at whatever value the caller left.
package grid

import "fmt"

// Function is a 2D grid function owning Owned plus a halo of width Halo.
type Function struct {
	Owned Rect
	Halo  int
	Comps int

	// ghosted extent
	x0, y0     int
	cols, rows int
	data       []float64
}

func NewFunction(owned Rect, halo, comps int) *Function {
	if owned.Empty() || halo < 0 || comps < 1 {
		panic(fmt.Sprintf("grid: invalid function shape owned=%v halo=%d comps=%d", owned, halo, comps))
	}
	g := owned.Grow(halo)
	return &Function{
		Owned: owned,
		Halo:  halo,
		Comps: comps,
		x0:    g.X0,
		y0:    g.Y0,
		cols:  g.Width(),
		rows:  g.Height(),
		data:  make([]float64, g.Area()*comps),
	}
}

// Ghosted returns the owned rectangle grown by the halo.
func (f *Function) Ghosted() Rect {
	return f.Owned.Grow(f.Halo)
}

// Stride returns the distance in the backing slice between vertically
// adjacent points.
func (f *Function) Stride() int {
	return f.cols * f.Comps
}

func (f *Function) InBounds(j, i, c int) bool {
	return uint(j-f.y0) < uint(f.rows) && uint(i-f.x0) < uint(f.cols) && uint(c) < uint(f.Comps)
}

func (f *Function) index(j, i, c int) int {
	lj, li := j-f.y0, i-f.x0
	if uint(lj) >= uint(f.rows) || uint(li) >= uint(f.cols) || uint(c) >= uint(f.Comps) {
		panic(fmt.Sprintf("grid: index (%d,%d,%d) outside %v with %d components", j, i, c, f.Ghosted(), f.Comps))
	}
	return (lj*f.cols+li)*f.Comps + c
}

// At returns the value at row j, column i, component c.
func (f *Function) At(j, i, c int) float64 {
	return f.data[f.index(j, i, c)]
}

func (f *Function) Set(j, i, c int, v float64) {
	f.data[f.index(j, i, c)] = v
}

func (f *Function) Add(j, i, c int, v float64) {
	f.data[f.index(j, i, c)] += v
}

// Data exposes the backing slice in row-major (row, column, component) order.
func (f *Function) Data() []float64 {
	return f.data
}

// Fill sets every value, halo included.
func (f *Function) Fill(v float64) {
	for k := range f.data {
		f.data[k] = v
	}
}

func (f *Function) Clear() {
	clear(f.data)
}

// CopyRect copies values of every component inside r from o into f.
func (f *Function) CopyRect(o *Function, r Rect) {
	if f.Comps != o.Comps {
		panic(fmt.Sprintf("grid: component mismatch %d != %d", f.Comps, o.Comps))
	}
	if r.Empty() {
		return
	}
	n := r.Width() * f.Comps
	for j := r.Y0; j < r.Y1; j++ {
		dst := f.index(j, r.X0, 0)
		src := o.index(j, r.X0, 0)
		// last point of the row must be addressable in both
		_ = f.index(j, r.X1-1, f.Comps-1)
		_ = o.index(j, r.X1-1, o.Comps-1)
		copy(f.data[dst:dst+n], o.data[src:src+n])
	}
}

// Each calls fn for every owned point.
func (f *Function) Each(fn func(j, i int)) {
	for j := f.Owned.Y0; j < f.Owned.Y1; j++ {
		for i := f.Owned.X0; i < f.Owned.X1; i++ {
			fn(j, i)
		}
	}
}
