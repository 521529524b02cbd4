package sbp

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Matrix assembles D as a dense n x n matrix for spacing h.
func (o *Operator) Matrix(n int, h float64) (*mat.Dense, error) {
	if n < 2*o.closureWidth {
		return nil, fmt.Errorf("sbp: %s needs at least %d points, got %d", o.Name, 2*o.closureWidth, n)
	}
	hi := 1 / h
	d := mat.NewDense(n, n, nil)
	w := o.closureWidth
	for i := 0; i < o.nClosures; i++ {
		for k := 0; k < w; k++ {
			d.Set(i, k, hi*o.closures[i*w+k])
		}
	}
	for i := o.nClosures; i < n-o.nClosures; i++ {
		for k, s := range o.interior {
			d.Set(i, i-o.radius+k, hi*s)
		}
	}
	for i := n - o.nClosures; i < n; i++ {
		row := o.closures[(n-i-1)*w : (n-i)*w]
		for k := 0; k < w; k++ {
			d.Set(i, n-w+k, -hi*row[w-k-1])
		}
	}
	return d, nil
}

// Quadrature returns the diagonal norm H for spacing h.
func (o *Operator) Quadrature(n int, h float64) *mat.DiagDense {
	diag := make([]float64, n)
	for i := range diag {
		diag[i] = h * o.Weight(i, n)
	}
	return mat.NewDiagDense(n, diag)
}

// SBPResidual returns max |HD + (HD)^T - B| for B = diag(-1,0,...,0,1).
func (o *Operator) SBPResidual(n int, h float64) (float64, error) {
	d, err := o.Matrix(n, h)
	if err != nil {
		return 0, err
	}
	var q mat.Dense
	q.Mul(o.Quadrature(n, h), d)
	var s mat.Dense
	s.Add(&q, q.T())
	s.Set(0, 0, s.At(0, 0)+1)
	s.Set(n-1, n-1, s.At(n-1, n-1)-1)
	res := 0.0
	for _, x := range s.RawMatrix().Data {
		res = math.Max(res, math.Abs(x))
	}
	return res, nil
}
