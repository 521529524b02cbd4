package verify

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/rs/zerolog"

	"github.com/0x5844/sbpwave/internal/engine"
)

var ErrSizes = errors.New("verify: study needs at least one grid size")

// Result is the right-hand side error on one grid.
type Result struct {
	N    int
	H    float64
	L2   float64
	Rate float64 // observed order against the previous grid, NaN for the first

	Stats engine.Stats
}

// Study evaluates the right-hand side of the exact solution on a sequence of
// grids and compares it with the exact time derivative.
type Study struct {
	Options engine.Options // N is replaced by each size
	Sizes   []int
	Time    float64
	RStar   float64 // gaussian width for advection
}

// Solution returns the closed-form solution matching the study's PDE.
func (s Study) Solution() (Solution, error) {
	switch s.Options.PDE {
	case engine.Acowave:
		return Acowave{}, nil
	case engine.Advection:
		return Gaussian{A: s.Options.Velocity[0], B: s.Options.Velocity[1], RStar: s.RStar}, nil
	}
	return nil, fmt.Errorf("%w: %q", engine.ErrUnknownPDE, s.Options.PDE)
}

// Run executes the study. Sizes are used in the given order.
func Run(ctx context.Context, s Study, log zerolog.Logger) ([]Result, error) {
	if len(s.Sizes) == 0 {
		return nil, ErrSizes
	}
	sol, err := s.Solution()
	if err != nil {
		return nil, err
	}

	results := make([]Result, 0, len(s.Sizes))
	for _, n := range s.Sizes {
		opts := s.Options
		opts.N = [2]int{n, n}
		e, err := engine.New(opts, log)
		if err != nil {
			return nil, fmt.Errorf("verify: N=%d: %w", n, err)
		}

		src, dst, want := e.NewFields(), e.NewFields(), e.NewFields()
		e.Project(src, func(x, y float64, out []float64) { sol.Eval(s.Time, x, y, out) })
		e.Project(want, func(x, y float64, out []float64) { sol.Rate(s.Time, x, y, out) })
		if err := e.RHS(ctx, s.Time, src, dst); err != nil {
			return nil, fmt.Errorf("verify: N=%d: %w", n, err)
		}

		r := Result{
			N:     n,
			H:     (opts.Upper - opts.Lower) / float64(n-1),
			L2:    e.L2(dst, want),
			Rate:  math.NaN(),
			Stats: e.GetStats(),
		}
		if k := len(results); k > 0 {
			prev := results[k-1]
			r.Rate = math.Log(prev.L2/r.L2) / math.Log(prev.H/r.H)
		}
		results = append(results, r)

		log.Debug().
			Int("n", n).
			Float64("h", r.H).
			Float64("l2", r.L2).
			Float64("rate", r.Rate).
			Msg("grid done")
	}
	return results, nil
}
