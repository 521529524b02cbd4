package region

import (
	"errors"
	"fmt"

	"github.com/0x5844/sbpwave/internal/grid"
)

var (
	ErrGlobalExtent = errors.New("region: global extent smaller than twice the closure width")
	ErrLocalExtent  = errors.New("region: owned extent too small")
	ErrRange        = errors.New("region: owned range outside the global grid")
)

// Layout carries the geometry the decomposition depends on.
type Layout struct {
	N            [2]int // global points per axis
	NClosures    int
	ClosureWidth int
	SW           int // ghost dependency radius
}

var axisName = [2]string{"x", "y"}

// Validate rejects configurations for which the 9-way decomposition or the
// inner/outer split is not well defined.
func (l Layout) Validate(owned grid.Rect) error {
	lo := [2]int{owned.X0, owned.Y0}
	hi := [2]int{owned.X1, owned.Y1}
	for a := 0; a < 2; a++ {
		n := l.N[a]
		if n < 2*l.ClosureWidth {
			return fmt.Errorf("%w: %s has %d points, closure width %d", ErrGlobalExtent, axisName[a], n, l.ClosureWidth)
		}
		if lo[a] < 0 || hi[a] > n || lo[a] >= hi[a] {
			return fmt.Errorf("%w: %s range [%d,%d) of %d", ErrRange, axisName[a], lo[a], hi[a], n)
		}
		size := hi[a] - lo[a]
		if size < 2*l.SW {
			return fmt.Errorf("%w: %s extent %d below twice the halo width %d", ErrLocalExtent, axisName[a], size, l.SW)
		}
		if (lo[a] == 0 || hi[a] == n) && size < l.ClosureWidth {
			return fmt.Errorf("%w: %s extent %d at a boundary below closure width %d", ErrLocalExtent, axisName[a], size, l.ClosureWidth)
		}
		// a partition edge must not cut through a closure span
		if lo[a] > 0 && lo[a] < l.NClosures {
			return fmt.Errorf("%w: %s starts at %d inside the left closure", ErrLocalExtent, axisName[a], lo[a])
		}
		if hi[a] < n && hi[a] > n-l.NClosures {
			return fmt.Errorf("%w: %s ends at %d inside the right closure", ErrLocalExtent, axisName[a], hi[a])
		}
	}
	return nil
}

// All is the full 9-way decomposition of owned.
func (l Layout) All(owned grid.Rect) []Region {
	return Partition(owned, l.N, l.NClosures)
}

// InnerRect shrinks owned by SW on every side that is a partition edge.
// Sides on the global boundary stay put.
func (l Layout) InnerRect(owned grid.Rect) grid.Rect {
	in := owned
	if owned.X0 > 0 {
		in.X0 += l.SW
	}
	if owned.X1 < l.N[0] {
		in.X1 -= l.SW
	}
	if owned.Y0 > 0 {
		in.Y0 += l.SW
	}
	if owned.Y1 < l.N[1] {
		in.Y1 -= l.SW
	}
	return in
}

// Shell returns disjoint rectangles covering owned minus InnerRect(owned).
// Bottom and top bands span the full width; left and right bands only the
// rows between them, so shell corners appear once.
func (l Layout) Shell(owned grid.Rect) []grid.Rect {
	in := l.InnerRect(owned)
	bands := []grid.Rect{
		grid.NewRect(owned.X0, owned.X1, owned.Y0, in.Y0),
		grid.NewRect(owned.X0, owned.X1, in.Y1, owned.Y1),
		grid.NewRect(owned.X0, in.X0, in.Y0, in.Y1),
		grid.NewRect(in.X1, owned.X1, in.Y0, in.Y1),
	}
	out := bands[:0]
	for _, b := range bands {
		if !b.Empty() {
			out = append(out, b)
		}
	}
	return out
}

// Inner returns the regions whose stencils never read ghost values.
func (l Layout) Inner(owned grid.Rect) []Region {
	return Clip(l.All(owned), l.InnerRect(owned))
}

// Outer returns the regions of the shell that depend on ghost values.
func (l Layout) Outer(owned grid.Rect) []Region {
	all := l.All(owned)
	var out []Region
	for _, band := range l.Shell(owned) {
		out = append(out, Clip(all, band)...)
	}
	return out
}
