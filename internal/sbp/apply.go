package sbp

import "github.com/0x5844/sbpwave/internal/grid"

// Deriv2D is a directional derivative of component c at column i, row j.
type Deriv2D func(v *grid.Function, hi float64, i, j, c int) float64

//=============================================================================
// 1D
//=============================================================================

// ApplyLeft computes v_x at a left closure index 0 <= i < NClosures.
func (o *Operator) ApplyLeft(v *grid.Line, hi float64, i, c int) float64 {
	w := o.closureWidth
	row := o.closures[i*w : (i+1)*w]
	u := 0.0
	for k, s := range row {
		u += s * v.At(k, c)
	}
	return hi * u
}

// ApplyInterior computes v_x at an index at least NClosures away from both edges.
func (o *Operator) ApplyInterior(v *grid.Line, hi float64, i, c int) float64 {
	u := 0.0
	if o.half != nil {
		for k, s := range o.half {
			u += s * (v.At(i+k+1, c) - v.At(i-k-1, c))
		}
		return hi * u
	}
	for k, s := range o.interior {
		u += s * v.At(i-o.radius+k, c)
	}
	return hi * u
}

// ApplyRight computes v_x at a right closure index n-NClosures <= i < n.
func (o *Operator) ApplyRight(v *grid.Line, hi float64, n, i, c int) float64 {
	w := o.closureWidth
	row := o.closures[(n-i-1)*w : (n-i)*w]
	u := 0.0
	for k := 0; k < w; k++ {
		u -= row[w-k-1] * v.At(n-w+k, c)
	}
	return hi * u
}

// Apply1D dispatches on the closure kind.
func (o *Operator) Apply1D(kind Closure, v *grid.Line, hi float64, n, i, c int) float64 {
	switch kind {
	case LeftClosure:
		return o.ApplyLeft(v, hi, i, c)
	case RightClosure:
		return o.ApplyRight(v, hi, n, i, c)
	}
	return o.ApplyInterior(v, hi, i, c)
}

//=============================================================================
// 2D in x, row j held fixed
//=============================================================================

func (o *Operator) XLeft(v *grid.Function, hix float64, i, j, c int) float64 {
	w := o.closureWidth
	row := o.closures[i*w : (i+1)*w]
	u := 0.0
	for k, s := range row {
		u += s * v.At(j, k, c)
	}
	return hix * u
}

func (o *Operator) XInterior(v *grid.Function, hix float64, i, j, c int) float64 {
	u := 0.0
	if o.half != nil {
		for k, s := range o.half {
			u += s * (v.At(j, i+k+1, c) - v.At(j, i-k-1, c))
		}
		return hix * u
	}
	for k, s := range o.interior {
		u += s * v.At(j, i-o.radius+k, c)
	}
	return hix * u
}

func (o *Operator) XRight(v *grid.Function, hix float64, nx, i, j, c int) float64 {
	w := o.closureWidth
	row := o.closures[(nx-i-1)*w : (nx-i)*w]
	u := 0.0
	for k := 0; k < w; k++ {
		u -= row[w-k-1] * v.At(j, nx-w+k, c)
	}
	return hix * u
}

//=============================================================================
// 2D in y, column i held fixed
//=============================================================================

func (o *Operator) YLeft(v *grid.Function, hiy float64, i, j, c int) float64 {
	w := o.closureWidth
	row := o.closures[j*w : (j+1)*w]
	u := 0.0
	for k, s := range row {
		u += s * v.At(k, i, c)
	}
	return hiy * u
}

func (o *Operator) YInterior(v *grid.Function, hiy float64, i, j, c int) float64 {
	u := 0.0
	if o.half != nil {
		for k, s := range o.half {
			u += s * (v.At(j+k+1, i, c) - v.At(j-k-1, i, c))
		}
		return hiy * u
	}
	for k, s := range o.interior {
		u += s * v.At(j-o.radius+k, i, c)
	}
	return hiy * u
}

func (o *Operator) YRight(v *grid.Function, hiy float64, ny, i, j, c int) float64 {
	w := o.closureWidth
	row := o.closures[(ny-j-1)*w : (ny-j)*w]
	u := 0.0
	for k := 0; k < w; k++ {
		u -= row[w-k-1] * v.At(ny-w+k, i, c)
	}
	return hiy * u
}

// X returns the x-derivative variant for kind on an axis of nx points.
func (o *Operator) X(kind Closure, nx int) Deriv2D {
	switch kind {
	case LeftClosure:
		return o.XLeft
	case RightClosure:
		return func(v *grid.Function, hix float64, i, j, c int) float64 {
			return o.XRight(v, hix, nx, i, j, c)
		}
	}
	return o.XInterior
}

// Y returns the y-derivative variant for kind on an axis of ny points.
func (o *Operator) Y(kind Closure, ny int) Deriv2D {
	switch kind {
	case LeftClosure:
		return o.YLeft
	case RightClosure:
		return func(v *grid.Function, hiy float64, i, j, c int) float64 {
			return o.YRight(v, hiy, ny, i, j, c)
		}
	}
	return o.YInterior
}
