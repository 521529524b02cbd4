// Package region decomposes an owned index rectangle into closure regions.
//
// Along each axis the owned range splits into at most three spans: a left
// closure span, an interior span and a right closure span. A closure span only
// exists when the owned range reaches the corresponding global boundary, so a
// subdomain that touches no boundary resolves to a single interior region. The
// cartesian product of the x and y spans gives up to 9 regions (4 corners,
// 4 edges, 1 center) that tile the owned range exactly once.
package region

import (
	"fmt"

	"github.com/0x5844/sbpwave/internal/grid"
	"github.com/0x5844/sbpwave/internal/sbp"
)

// Span is a half-open index range [Lo,Hi) along one axis served by one stencil variant.
type Span struct {
	Lo, Hi int
	Kind   sbp.Closure

	// Edge is the global index of the boundary point a closure span abuts
	// (0 or N-1). Unused for interior spans.
	Edge int
}

func (s Span) Len() int {
	if s.Hi <= s.Lo {
		return 0
	}
	return s.Hi - s.Lo
}

func (s Span) Empty() bool { return s.Hi <= s.Lo }

// Clip restricts s to [lo,hi).
func (s Span) Clip(lo, hi int) Span {
	s.Lo = max(s.Lo, lo)
	s.Hi = min(s.Hi, hi)
	return s
}

// Penalty returns the boundary index inside s that carries a SAT term.
func (s Span) Penalty() (int, bool) {
	if s.Kind == sbp.Interior {
		return 0, false
	}
	return s.Edge, s.Edge >= s.Lo && s.Edge < s.Hi
}

// Sign is -1 at a left edge and +1 at a right edge, 0 for interior spans.
func (s Span) Sign() float64 {
	switch s.Kind {
	case sbp.LeftClosure:
		return -1
	case sbp.RightClosure:
		return 1
	}
	return 0
}

// Region is one rectangle of the decomposition with its closure kind per axis.
type Region struct {
	X, Y Span
}

func (r Region) Rect() grid.Rect {
	return grid.NewRect(r.X.Lo, r.X.Hi, r.Y.Lo, r.Y.Hi)
}

func (r Region) Empty() bool { return r.X.Empty() || r.Y.Empty() }

func (r Region) Points() int { return r.X.Len() * r.Y.Len() }

// PenaltyX returns the column of the true x boundary inside r, if any.
func (r Region) PenaltyX() (int, bool) { return r.X.Penalty() }

// PenaltyY returns the row of the true y boundary inside r, if any.
func (r Region) PenaltyY() (int, bool) { return r.Y.Penalty() }

// Name uses one letter per axis, x first: L(eft), C(enter), R(ight).
// "CL" is the bottom edge, "LR" the top-left corner.
func (r Region) Name() string {
	return string([]byte{letter(r.X.Kind), letter(r.Y.Kind)})
}

func letter(k sbp.Closure) byte {
	switch k {
	case sbp.LeftClosure:
		return 'L'
	case sbp.RightClosure:
		return 'R'
	}
	return 'C'
}

func (r Region) String() string {
	return fmt.Sprintf("%s%v", r.Name(), r.Rect())
}

// Axis splits the owned range [start,end) of an axis with n global points.
func Axis(start, end, n, nc int) []Span {
	spans := make([]Span, 0, 3)
	lo, hi := start, end
	if start == 0 {
		spans = append(spans, Span{Lo: 0, Hi: min(nc, end), Kind: sbp.LeftClosure, Edge: 0})
		lo = nc
	}
	var right *Span
	if end == n {
		right = &Span{Lo: max(n-nc, start), Hi: n, Kind: sbp.RightClosure, Edge: n - 1}
		hi = n - nc
	}
	if lo < hi {
		spans = append(spans, Span{Lo: lo, Hi: hi, Kind: sbp.Interior})
	}
	if right != nil {
		spans = append(spans, *right)
	}
	return spans
}

// Partition returns the closure regions of owned on a grid of n points,
// ordered bottom to top and left to right.
func Partition(owned grid.Rect, n [2]int, nc int) []Region {
	xs := Axis(owned.X0, owned.X1, n[0], nc)
	ys := Axis(owned.Y0, owned.Y1, n[1], nc)
	regions := make([]Region, 0, len(xs)*len(ys))
	for _, y := range ys {
		for _, x := range xs {
			regions = append(regions, Region{X: x, Y: y})
		}
	}
	return regions
}

// Clip intersects every region with rect and drops the empty results.
func Clip(regions []Region, rect grid.Rect) []Region {
	out := make([]Region, 0, len(regions))
	for _, r := range regions {
		c := Region{X: r.X.Clip(rect.X0, rect.X1), Y: r.Y.Clip(rect.Y0, rect.Y1)}
		if !c.Empty() {
			out = append(out, c)
		}
	}
	return out
}

// Count returns the number of points covered by regions.
func Count(regions []Region) int {
	n := 0
	for _, r := range regions {
		n += r.Points()
	}
	return n
}
