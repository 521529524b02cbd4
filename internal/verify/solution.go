// Package verify measures the order of accuracy of the assembled right-hand
// sides against closed-form solutions.
package verify

import "math"

// Solution is a closed-form solution of one of the PDEs. Eval writes the state
// and Rate its time derivative at (t, x, y).
type Solution interface {
	Comps() int
	Eval(t, x, y float64, out []float64)
	Rate(t, x, y float64, out []float64)
}

// Acowave solves the forced acoustic wave system with a = 1/(2+xy). The
// pressure vanishes on the boundary of [-1,1]^2 and [0,1]^2.
type Acowave struct{}

func (Acowave) Comps() int { return 3 }

func (Acowave) Eval(t, x, y float64, out []float64) {
	st, ct := math.Sin(5*math.Pi*t), math.Cos(5*math.Pi*t)
	sx, cx := math.Sin(3*math.Pi*x), math.Cos(3*math.Pi*x)
	sy, cy := math.Sin(4*math.Pi*y), math.Cos(4*math.Pi*y)
	out[0] = -0.6 * st * cx * sy
	out[1] = -0.8 * st * sx * cy
	out[2] = ct * sx * sy
}

func (Acowave) Rate(t, x, y float64, out []float64) {
	st, ct := math.Sin(5*math.Pi*t), math.Cos(5*math.Pi*t)
	sx, cx := math.Sin(3*math.Pi*x), math.Cos(3*math.Pi*x)
	sy, cy := math.Sin(4*math.Pi*y), math.Cos(4*math.Pi*y)
	out[0] = -3 * math.Pi * ct * cx * sy
	out[1] = -4 * math.Pi * ct * sx * cy
	out[2] = -5 * math.Pi * st * sx * sy
}

// Gaussian is a pulse exp(-r^2/RStar^2) centred at the origin at t = 0,
// transported with velocity (A, B).
type Gaussian struct {
	A, B  float64
	RStar float64
}

func (Gaussian) Comps() int { return 1 }

func (g Gaussian) Eval(t, x, y float64, out []float64) {
	out[0] = g.at(x-g.A*t, y-g.B*t)
}

func (g Gaussian) Rate(t, x, y float64, out []float64) {
	xs, ys := x-g.A*t, y-g.B*t
	r2 := g.RStar * g.RStar
	v := g.at(xs, ys)
	// -a g_x - b g_y
	out[0] = 2 * v * (g.A*xs + g.B*ys) / r2
}

func (g Gaussian) at(x, y float64) float64 {
	return math.Exp(-(x*x + y*y) / (g.RStar * g.RStar))
}
