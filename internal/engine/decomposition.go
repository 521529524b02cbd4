package engine

import (
	"fmt"

	"github.com/0x5844/sbpwave/internal/grid"
)

// Decomposition is a px x py process grid over a global grid of N points.
// Rank r sits at column r % px and row r / px.
type Decomposition struct {
	N      [2]int
	Procs  [2]int
	bounds [2][]int
}

// Split returns p+1 boundaries dividing n points as evenly as possible, the
// first n%p parts taking one extra point.
func Split(n, p int) []int {
	b := make([]int, p+1)
	for k := 0; k < p; k++ {
		size := n / p
		if k < n%p {
			size++
		}
		b[k+1] = b[k] + size
	}
	return b
}

func NewDecomposition(n, procs [2]int) (*Decomposition, error) {
	d := &Decomposition{N: n, Procs: procs}
	for a := 0; a < 2; a++ {
		if procs[a] < 1 || procs[a] > n[a] {
			return nil, fmt.Errorf("engine: %d processes along an axis of %d points", procs[a], n[a])
		}
		d.bounds[a] = Split(n[a], procs[a])
	}
	return d, nil
}

func (d *Decomposition) Ranks() int { return d.Procs[0] * d.Procs[1] }

// Owned returns the index rectangle of rank.
func (d *Decomposition) Owned(rank int) grid.Rect {
	px, py := rank%d.Procs[0], rank/d.Procs[0]
	return grid.NewRect(d.bounds[0][px], d.bounds[0][px+1], d.bounds[1][py], d.bounds[1][py+1])
}

func (d *Decomposition) All() []grid.Rect {
	out := make([]grid.Rect, d.Ranks())
	for r := range out {
		out[r] = d.Owned(r)
	}
	return out
}
