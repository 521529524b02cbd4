// Package sbp defines central first-derivative summation-by-parts operators.
//
// An Operator holds an interior stencil and a table of one-sided closure
// stencils used on the first rows next to the left edge. The right edge reuses
// the same table through index and sign reflection. Coefficient tables are
// static data; nothing is derived per call.
package sbp

import (
	"errors"
	"fmt"
)

var ErrUnknownOrder = errors.New("sbp: unknown operator order")

// Closure tags which stencil variant applies at an index along one axis.
type Closure uint8

const (
	LeftClosure Closure = iota
	Interior
	RightClosure
)

func (c Closure) String() string {
	switch c {
	case LeftClosure:
		return "left"
	case Interior:
		return "interior"
	case RightClosure:
		return "right"
	}
	return fmt.Sprintf("Closure(%d)", uint8(c))
}

// Operator is a first-derivative SBP operator of a fixed design order.
type Operator struct {
	Order int
	Name  string

	interior     []float64 // width 2r+1
	radius       int
	half         []float64 // interior[r+k] for k=1..r when the stencil is antisymmetric
	closures     []float64 // nClosures x closureWidth, row-major
	nClosures    int
	closureWidth int
	weights      []float64 // boundary quadrature weights, one per closure row
}

func define(order int, name string, interior []float64, closures [][]float64, weights []float64) *Operator {
	if len(interior)%2 == 0 {
		panic(fmt.Sprintf("sbp: %s interior width %d is not odd", name, len(interior)))
	}
	if len(closures) == 0 || len(weights) != len(closures) {
		panic(fmt.Sprintf("sbp: %s has %d closure rows and %d weights", name, len(closures), len(weights)))
	}
	w := len(closures[0])
	flat := make([]float64, 0, len(closures)*w)
	for k, row := range closures {
		if len(row) != w {
			panic(fmt.Sprintf("sbp: %s closure row %d has width %d, want %d", name, k, len(row), w))
		}
		flat = append(flat, row...)
	}
	r := (len(interior) - 1) / 2
	op := &Operator{
		Order:        order,
		Name:         name,
		interior:     interior,
		radius:       r,
		closures:     flat,
		nClosures:    len(closures),
		closureWidth: w,
		weights:      weights,
	}
	antisym := interior[r] == 0
	for k := 1; k <= r && antisym; k++ {
		antisym = interior[r+k] == -interior[r-k]
	}
	if antisym {
		op.half = make([]float64, r)
		for k := 1; k <= r; k++ {
			op.half[k-1] = interior[r+k]
		}
	}
	return op
}

// ByOrder returns the operator of the given design order.
func ByOrder(order int) (*Operator, error) {
	switch order {
	case 2:
		return D2, nil
	case 4:
		return D4, nil
	case 6:
		return D6, nil
	}
	return nil, fmt.Errorf("%w: %d", ErrUnknownOrder, order)
}

// Orders lists the declared design orders.
func Orders() []int {
	return []int{2, 4, 6}
}

// Ranges returns (interior width, number of closure rows, closure width).
func (o *Operator) Ranges() (int, int, int) {
	return len(o.interior), o.nClosures, o.closureWidth
}

// Radius is the interior half-width, which is also the ghost dependency radius.
func (o *Operator) Radius() int { return o.radius }

func (o *Operator) NClosures() int { return o.nClosures }

func (o *Operator) ClosureWidth() int { return o.closureWidth }

// InteriorStencil returns a copy of the interior coefficients.
func (o *Operator) InteriorStencil() []float64 {
	return append([]float64(nil), o.interior...)
}

// ClosureRow returns a copy of closure row k.
func (o *Operator) ClosureRow(k int) []float64 {
	w := o.closureWidth
	return append([]float64(nil), o.closures[k*w:(k+1)*w]...)
}

// Weight returns the quadrature weight (in units of h) at index i of an axis
// with n points.
func (o *Operator) Weight(i, n int) float64 {
	if i < o.nClosures {
		return o.weights[i]
	}
	if k := n - 1 - i; k < o.nClosures {
		return o.weights[k]
	}
	return 1
}

// ClosureAt reports which stencil variant serves index i of an axis with n points.
func (o *Operator) ClosureAt(i, n int) Closure {
	switch {
	case i < o.nClosures:
		return LeftClosure
	case i >= n-o.nClosures:
		return RightClosure
	}
	return Interior
}
