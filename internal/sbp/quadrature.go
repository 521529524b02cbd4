package sbp

import "github.com/0x5844/sbpwave/internal/grid"

// The inverse quadrature HI = H^-1 is diagonal. Only its closure part differs
// from hi, so the left/right variants scale by the reciprocal boundary weight.

func (o *Operator) HILeft(v *grid.Line, hi float64, i, c int) float64 {
	return hi / o.weights[i] * v.At(i, c)
}

func (o *Operator) HIRight(v *grid.Line, hi float64, n, i, c int) float64 {
	return hi / o.weights[n-i-1] * v.At(i, c)
}

func (o *Operator) HIXLeft(v *grid.Function, hix float64, i, j, c int) float64 {
	return hix / o.weights[i] * v.At(j, i, c)
}

func (o *Operator) HIXRight(v *grid.Function, hix float64, nx, i, j, c int) float64 {
	return hix / o.weights[nx-i-1] * v.At(j, i, c)
}

func (o *Operator) HIYLeft(v *grid.Function, hiy float64, i, j, c int) float64 {
	return hiy / o.weights[j] * v.At(j, i, c)
}

func (o *Operator) HIYRight(v *grid.Function, hiy float64, ny, i, j, c int) float64 {
	return hiy / o.weights[ny-j-1] * v.At(j, i, c)
}

// HIX returns the x inverse-quadrature variant for kind on an axis of nx points.
func (o *Operator) HIX(kind Closure, nx int) Deriv2D {
	switch kind {
	case LeftClosure:
		return o.HIXLeft
	case RightClosure:
		return func(v *grid.Function, hix float64, i, j, c int) float64 {
			return o.HIXRight(v, hix, nx, i, j, c)
		}
	}
	return func(v *grid.Function, hix float64, i, j, c int) float64 {
		return hix * v.At(j, i, c)
	}
}

// HIY returns the y inverse-quadrature variant for kind on an axis of ny points.
func (o *Operator) HIY(kind Closure, ny int) Deriv2D {
	switch kind {
	case LeftClosure:
		return o.HIYLeft
	case RightClosure:
		return func(v *grid.Function, hiy float64, i, j, c int) float64 {
			return o.HIYRight(v, hiy, ny, i, j, c)
		}
	}
	return func(v *grid.Function, hiy float64, i, j, c int) float64 {
		return hiy * v.At(j, i, c)
	}
}
