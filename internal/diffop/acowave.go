package diffop

import (
	"fmt"
	"math"

	"github.com/0x5844/sbpwave/internal/grid"
	"github.com/0x5844/sbpwave/internal/region"
	"github.com/0x5844/sbpwave/internal/sbp"
)

// Components of the acoustic wave state.
const (
	U = iota
	V
	P
)

// Forcing is a time dependent source for the two velocity equations at
// physical coordinates (x, y).
type Forcing interface {
	At(t, x, y float64) (fu, fv float64)
}

// Manufactured is the forcing for which
//
//	p = cos(5πt) sin(3πx) sin(4πy)
//	u = -3/5 sin(5πt) cos(3πx) sin(4πy)
//	v = -4/5 sin(5πt) sin(3πx) cos(4πy)
//
// solves the system with a = 1/(2+xy).
type Manufactured struct{}

func (Manufactured) At(t, x, y float64) (float64, float64) {
	xy := x * y
	ct := math.Cos(5 * math.Pi * t)
	fu := -(3 * math.Pi * ct * math.Cos(3*math.Pi*x) * math.Sin(4*math.Pi*y) * (xy + 1)) / (xy + 2)
	fv := -(4 * math.Pi * ct * math.Cos(4*math.Pi*y) * math.Sin(3*math.Pi*x) * (xy + 1)) / (xy + 2)
	return fu, fv
}

// RhoInv is the material coefficient 1/(2+xy) that Manufactured is built for.
func RhoInv(ctx *Context) Coefficient {
	return CoefficientFunc(func(i, j int) float64 {
		return 1 / (2 + ctx.X(i)*ctx.Y(j))
	})
}

// Acowave is the first-order acoustic wave system
//
//	u_t = -a p_x + F_u
//	v_t = -a p_y + F_v
//	p_t = -u_x - v_y
//
// with zero pressure imposed weakly on every true boundary. The x boundaries
// penalize u and the y boundaries penalize v, both with HI applied to p;
// west/south terms are subtracted and east/north terms added.
type Acowave struct {
	Op      *sbp.Operator
	Ctx     *Context
	Forcing Forcing // nil disables forcing
}

func NewAcowave(op *sbp.Operator, ctx *Context, forcing Forcing) (*Acowave, error) {
	if err := ctx.Validate(op); err != nil {
		return nil, err
	}
	if ctx.A == nil {
		return nil, fmt.Errorf("%w: acowave needs A", ErrCoefficient)
	}
	return &Acowave{Op: op, Ctx: ctx, Forcing: forcing}, nil
}

func (w *Acowave) Context() *Context       { return w.Ctx }
func (w *Acowave) Operator() *sbp.Operator { return w.Op }

func (w *Acowave) Region(t float64, src, dst *grid.Function, r region.Region) {
	ctx := w.Ctx
	hix, hiy := ctx.HI[0], ctx.HI[1]
	dx := w.Op.X(r.X.Kind, ctx.N[0])
	dy := w.Op.Y(r.Y.Kind, ctx.N[1])

	for j := r.Y.Lo; j < r.Y.Hi; j++ {
		for i := r.X.Lo; i < r.X.Hi; i++ {
			a := ctx.A.At(i, j)
			var fu, fv float64
			if w.Forcing != nil {
				fu, fv = w.Forcing.At(t, ctx.X(i), ctx.Y(j))
			}
			dst.Set(j, i, U, -a*dx(src, hix, i, j, P)+fu)
			dst.Set(j, i, V, -a*dy(src, hiy, i, j, P)+fv)
			dst.Set(j, i, P, -dx(src, hix, i, j, U)-dy(src, hiy, i, j, V))
		}
	}

	if i, ok := r.PenaltyX(); ok {
		hi := w.Op.HIX(r.X.Kind, ctx.N[0])
		s := r.X.Sign()
		for j := r.Y.Lo; j < r.Y.Hi; j++ {
			dst.Add(j, i, U, s*hi(src, hix, i, j, P))
		}
	}
	if j, ok := r.PenaltyY(); ok {
		hi := w.Op.HIY(r.Y.Kind, ctx.N[1])
		s := r.Y.Sign()
		for i := r.X.Lo; i < r.X.Hi; i++ {
			dst.Add(j, i, V, s*hi(src, hiy, i, j, P))
		}
	}
}
