package verify

import (
	"context"
	"fmt"
	"math"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0x5844/sbpwave/internal/diffop"
	"github.com/0x5844/sbpwave/internal/engine"
	"github.com/0x5844/sbpwave/internal/sbp"
)

func TestRateIsTimeDerivative(t *testing.T) {
	const dt = 1e-6
	sols := []Solution{Acowave{}, Gaussian{A: 1.5, B: -1, RStar: 0.3}}
	for _, sol := range sols {
		n := sol.Comps()
		lo, hi, rate := make([]float64, n), make([]float64, n), make([]float64, n)
		for _, p := range [][3]float64{{0.1, 0.3, -0.2}, {0.37, -0.6, 0.45}, {0, 0.05, 0.9}} {
			tm, x, y := p[0], p[1], p[2]
			sol.Eval(tm-dt, x, y, lo)
			sol.Eval(tm+dt, x, y, hi)
			sol.Rate(tm, x, y, rate)
			for c := 0; c < n; c++ {
				assert.InDelta(t, (hi[c]-lo[c])/(2*dt), rate[c], 1e-5, "%T comp %d at %v", sol, c, p)
			}
		}
	}
}

func TestAcowaveSolvesForcedSystem(t *testing.T) {
	const d = 1e-6
	at := func(tm, x, y float64) []float64 {
		out := make([]float64, 3)
		Acowave{}.Eval(tm, x, y, out)
		return out
	}
	rate := make([]float64, 3)
	for _, p := range [][3]float64{{0.15, 0.3, -0.2}, {0.4, -0.7, 0.55}} {
		tm, x, y := p[0], p[1], p[2]
		Acowave{}.Rate(tm, x, y, rate)
		a := 1 / (2 + x*y)
		fu, fv := diffop.Manufactured{}.At(tm, x, y)

		px := (at(tm, x+d, y)[2] - at(tm, x-d, y)[2]) / (2 * d)
		py := (at(tm, x, y+d)[2] - at(tm, x, y-d)[2]) / (2 * d)
		ux := (at(tm, x+d, y)[0] - at(tm, x-d, y)[0]) / (2 * d)
		vy := (at(tm, x, y+d)[1] - at(tm, x, y-d)[1]) / (2 * d)

		assert.InDelta(t, -a*px+fu, rate[0], 1e-5)
		assert.InDelta(t, -a*py+fv, rate[1], 1e-5)
		assert.InDelta(t, -ux-vy, rate[2], 1e-5)
	}

	// zero pressure on the boundary of [-1,1]^2
	out := make([]float64, 3)
	for _, b := range []float64{-1, 1} {
		for _, s := range []float64{-0.8, 0.1, 0.65} {
			Acowave{}.Eval(0.2, b, s, out)
			assert.InDelta(t, 0, out[2], 1e-14)
			Acowave{}.Eval(0.2, s, b, out)
			assert.InDelta(t, 0, out[2], 1e-14)
		}
	}
}

func convergence(t *testing.T, s Study) []Result {
	t.Helper()
	results, err := Run(context.Background(), s, zerolog.Nop())
	require.NoError(t, err)
	require.Len(t, results, len(s.Sizes))
	assert.True(t, math.IsNaN(results[0].Rate))
	for k := 1; k < len(results); k++ {
		require.Less(t, results[k].L2, results[k-1].L2, "N=%d", results[k].N)
	}
	return results
}

func TestAcowaveConvergence(t *testing.T) {
	for _, order := range sbp.Orders() {
		t.Run(fmt.Sprintf("order%d", order), func(t *testing.T) {
			results := convergence(t, Study{
				Options: engine.Options{
					PDE:   engine.Acowave,
					Order: order,
					Procs: [2]int{2, 2},
					Lower: -1,
					Upper: 1,
				},
				Sizes: []int{51, 101, 201},
				Time:  0.15,
			})
			last := results[len(results)-1]
			assert.Greater(t, last.Rate, float64(order)/2-0.5, "results %+v", results)
		})
	}
}

func TestAdvectionConvergence(t *testing.T) {
	for _, order := range sbp.Orders() {
		t.Run(fmt.Sprintf("order%d", order), func(t *testing.T) {
			results := convergence(t, Study{
				Options: engine.Options{
					PDE:       engine.Advection,
					Order:     order,
					Procs:     [2]int{2, 1},
					Lower:     -1,
					Upper:     1,
					Velocity:  [2]float64{1.5, -1},
					Injection: true,
				},
				Sizes: []int{81, 161, 321},
				Time:  0.15,
				RStar: 0.1,
			})
			last := results[len(results)-1]
			assert.Greater(t, last.Rate, float64(order)/2-0.5, "results %+v", results)
		})
	}
}

func TestRunRejectsBadStudies(t *testing.T) {
	_, err := Run(context.Background(), Study{Options: engine.Options{PDE: engine.Acowave, Order: 2}}, zerolog.Nop())
	require.ErrorIs(t, err, ErrSizes)

	_, err = Run(context.Background(), Study{Options: engine.Options{PDE: "heat"}, Sizes: []int{20}}, zerolog.Nop())
	require.ErrorIs(t, err, engine.ErrUnknownPDE)

	_, err = Run(context.Background(), Study{
		Options: engine.Options{PDE: engine.Acowave, Order: 6, Procs: [2]int{1, 1}, Lower: 0, Upper: 1},
		Sizes:   []int{12},
	}, zerolog.Nop())
	require.Error(t, err)
}
