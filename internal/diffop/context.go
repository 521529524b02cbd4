// Package diffop assembles SBP-SAT right-hand sides of first-order hyperbolic
// systems over a process-local subdomain.
//
// A Kernel evaluates its PDE over one region of the 9-way decomposition. The
// Apply entry points recompute the decomposition on every call and route each
// region to the kernel, either all at once or split into the parts that do and
// do not depend on ghost values.
package diffop

import (
	"errors"
	"fmt"

	"github.com/0x5844/sbpwave/internal/grid"
	"github.com/0x5844/sbpwave/internal/region"
	"github.com/0x5844/sbpwave/internal/sbp"
)

var (
	ErrHalo        = errors.New("diffop: halo narrower than the operator radius")
	ErrSpacing     = errors.New("diffop: inverse spacing must be positive")
	ErrCoefficient = errors.New("diffop: missing coefficient")
)

// Coefficient is a per-point velocity or material field evaluated at grid index (i, j).
type Coefficient interface {
	At(i, j int) float64
}

// CoefficientFunc adapts a plain function to Coefficient.
type CoefficientFunc func(i, j int) float64

func (f CoefficientFunc) At(i, j int) float64 { return f(i, j) }

// Constant is a spatially uniform coefficient.
type Constant float64

func (c Constant) At(int, int) float64 { return float64(c) }

// Context is the geometry and coefficient bundle of one subdomain.
type Context struct {
	N     [2]int     // global points per axis
	HI    [2]float64 // inverse spacing per axis
	XL    [2]float64 // physical coordinates of index (0,0)
	Start [2]int     // owned range [Start, End) per axis
	End   [2]int
	SW    int // ghost width

	A, B Coefficient
}

func (c *Context) Owned() grid.Rect {
	return grid.NewRect(c.Start[0], c.End[0], c.Start[1], c.End[1])
}

// Layout returns the decomposition geometry for op.
func (c *Context) Layout(op *sbp.Operator) region.Layout {
	return region.Layout{N: c.N, NClosures: op.NClosures(), ClosureWidth: op.ClosureWidth(), SW: c.SW}
}

// Validate checks that op can be applied over the owned range.
func (c *Context) Validate(op *sbp.Operator) error {
	if c.SW < op.Radius() {
		return fmt.Errorf("%w: %d < %d for %s", ErrHalo, c.SW, op.Radius(), op.Name)
	}
	if c.HI[0] <= 0 || c.HI[1] <= 0 {
		return fmt.Errorf("%w: %v", ErrSpacing, c.HI)
	}
	return c.Layout(op).Validate(c.Owned())
}

// X is the physical x coordinate of column i.
func (c *Context) X(i int) float64 { return c.XL[0] + float64(i)/c.HI[0] }

// Y is the physical y coordinate of row j.
func (c *Context) Y(j int) float64 { return c.XL[1] + float64(j)/c.HI[1] }

// Uniform builds the context of owned on [lower, upper]^2 sampled by n points per axis.
func Uniform(n [2]int, lower, upper float64, owned grid.Rect, sw int) *Context {
	return &Context{
		N:     n,
		HI:    [2]float64{float64(n[0]-1) / (upper - lower), float64(n[1]-1) / (upper - lower)},
		XL:    [2]float64{lower, lower},
		Start: [2]int{owned.X0, owned.Y0},
		End:   [2]int{owned.X1, owned.Y1},
		SW:    sw,
	}
}
