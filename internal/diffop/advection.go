package diffop

import (
	"fmt"
	"math"

	"github.com/0x5844/sbpwave/internal/grid"
	"github.com/0x5844/sbpwave/internal/region"
	"github.com/0x5844/sbpwave/internal/sbp"
)

// Advection is v_t = -a v_x - b v_y, applied to every component of the field.
// Boundary points where the velocity points into the domain receive the upwind
// penalty -|a| HI v (x) or -|b| HI v (y) for homogeneous inflow data.
type Advection struct {
	Op  *sbp.Operator
	Ctx *Context
}

func NewAdvection(op *sbp.Operator, ctx *Context) (*Advection, error) {
	if err := ctx.Validate(op); err != nil {
		return nil, err
	}
	if ctx.A == nil || ctx.B == nil {
		return nil, fmt.Errorf("%w: advection needs A and B", ErrCoefficient)
	}
	return &Advection{Op: op, Ctx: ctx}, nil
}

func (k *Advection) Context() *Context       { return k.Ctx }
func (k *Advection) Operator() *sbp.Operator { return k.Op }

func (k *Advection) Region(_ float64, src, dst *grid.Function, r region.Region) {
	ctx := k.Ctx
	hix, hiy := ctx.HI[0], ctx.HI[1]
	dx := k.Op.X(r.X.Kind, ctx.N[0])
	dy := k.Op.Y(r.Y.Kind, ctx.N[1])

	for j := r.Y.Lo; j < r.Y.Hi; j++ {
		for i := r.X.Lo; i < r.X.Hi; i++ {
			a, b := ctx.A.At(i, j), ctx.B.At(i, j)
			for c := 0; c < src.Comps; c++ {
				dst.Set(j, i, c, -a*dx(src, hix, i, j, c)-b*dy(src, hiy, i, j, c))
			}
		}
	}

	if i, ok := r.PenaltyX(); ok {
		hi := k.Op.HIX(r.X.Kind, ctx.N[0])
		s := r.X.Sign()
		for j := r.Y.Lo; j < r.Y.Hi; j++ {
			a := ctx.A.At(i, j)
			if s*a >= 0 {
				continue
			}
			for c := 0; c < src.Comps; c++ {
				dst.Add(j, i, c, -math.Abs(a)*hi(src, hix, i, j, c))
			}
		}
	}
	if j, ok := r.PenaltyY(); ok {
		hi := k.Op.HIY(r.Y.Kind, ctx.N[1])
		s := r.Y.Sign()
		for i := r.X.Lo; i < r.X.Hi; i++ {
			b := ctx.B.At(i, j)
			if s*b >= 0 {
				continue
			}
			for c := 0; c < src.Comps; c++ {
				dst.Add(j, i, c, -math.Abs(b)*hi(src, hiy, i, j, c))
			}
		}
	}
}

// InjectInflow imposes homogeneous Dirichlet data strongly: it zeros dst at
// every owned boundary point where the velocity points into the domain. It is
// a post-pass run after the full right-hand side has been assembled.
func InjectInflow(ctx *Context, dst *grid.Function) {
	owned := ctx.Owned()
	nx, ny := ctx.N[0], ctx.N[1]
	zero := func(j, i int) {
		for c := 0; c < dst.Comps; c++ {
			dst.Set(j, i, c, 0)
		}
	}
	if owned.X0 == 0 {
		for j := owned.Y0; j < owned.Y1; j++ {
			if ctx.A.At(0, j) > 0 {
				zero(j, 0)
			}
		}
	}
	if owned.X1 == nx {
		for j := owned.Y0; j < owned.Y1; j++ {
			if ctx.A.At(nx-1, j) < 0 {
				zero(j, nx-1)
			}
		}
	}
	if owned.Y0 == 0 {
		for i := owned.X0; i < owned.X1; i++ {
			if ctx.B.At(i, 0) > 0 {
				zero(0, i)
			}
		}
	}
	if owned.Y1 == ny {
		for i := owned.X0; i < owned.X1; i++ {
			if ctx.B.At(i, ny-1) < 0 {
				zero(ny-1, i)
			}
		}
	}
}
