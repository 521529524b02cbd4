package diffop

import (
	"github.com/0x5844/sbpwave/internal/grid"
	"github.com/0x5844/sbpwave/internal/region"
	"github.com/0x5844/sbpwave/internal/sbp"
)

// Kernel evaluates a right-hand side over one region. Region writes dst only
// inside r and never writes src.
type Kernel interface {
	Context() *Context
	Operator() *sbp.Operator
	Region(t float64, src, dst *grid.Function, r region.Region)
}

// Apply runs k over the given regions and returns how many were applied.
func Apply(k Kernel, t float64, src, dst *grid.Function, regions []region.Region) int {
	for _, r := range regions {
		k.Region(t, src, dst, r)
	}
	return len(regions)
}

// ApplyAll evaluates k over the whole owned range.
func ApplyAll(k Kernel, t float64, src, dst *grid.Function) int {
	ctx := k.Context()
	return Apply(k, t, src, dst, ctx.Layout(k.Operator()).All(ctx.Owned()))
}

// ApplyInner evaluates k over the points whose stencils read no ghost values.
// It may run while the ghost exchange for src is in flight.
func ApplyInner(k Kernel, t float64, src, dst *grid.Function) int {
	ctx := k.Context()
	return Apply(k, t, src, dst, ctx.Layout(k.Operator()).Inner(ctx.Owned()))
}

// ApplyOuter evaluates k over the ghost-dependent shell. The ghost exchange for
// src must have completed.
func ApplyOuter(k Kernel, t float64, src, dst *grid.Function) int {
	ctx := k.Context()
	return Apply(k, t, src, dst, ctx.Layout(k.Operator()).Outer(ctx.Owned()))
}
