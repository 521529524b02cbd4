// Package engine evaluates SBP-SAT right-hand sides over a decomposed grid.
//
// Every subdomain of the process grid gets its own context, kernel and ghost
// padded fields. One RHS evaluation runs all subdomains concurrently; each one
// starts its ghost exchange, applies the inner regions, waits for the exchange
// and then applies the outer shell.
package engine

import (
	"context"
	"errors"
	"fmt"
	"math"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"

	"github.com/0x5844/sbpwave/internal/diffop"
	"github.com/0x5844/sbpwave/internal/grid"
	"github.com/0x5844/sbpwave/internal/halo"
	"github.com/0x5844/sbpwave/internal/sbp"
)

type PDE string

const (
	Acowave   PDE = "acowave"
	Advection PDE = "advection"
)

var ErrUnknownPDE = errors.New("engine: unknown pde")

// Options describe one discretization.
type Options struct {
	PDE   PDE
	Order int
	N     [2]int
	Procs [2]int

	// square domain [Lower, Upper]^2
	Lower, Upper float64

	Workers int // concurrent subdomains, 0 means GOMAXPROCS

	// advection only
	Velocity  [2]float64
	Injection bool
}

type Engine struct {
	opts     Options
	op       *sbp.Operator
	decomp   *Decomposition
	contexts []*diffop.Context
	kernels  []diffop.Kernel
	exchange *halo.Exchange
	log      zerolog.Logger

	// Statistics
	evalCounter     int64
	regionCounter   int64
	exchangeCounter int64
	computationTime int64 // Nanoseconds
}

func New(opts Options, log zerolog.Logger) (*Engine, error) {
	op, err := sbp.ByOrder(opts.Order)
	if err != nil {
		return nil, err
	}
	if opts.Upper <= opts.Lower {
		return nil, fmt.Errorf("engine: empty domain [%g,%g]", opts.Lower, opts.Upper)
	}
	decomp, err := NewDecomposition(opts.N, opts.Procs)
	if err != nil {
		return nil, err
	}
	if opts.Workers <= 0 {
		opts.Workers = runtime.GOMAXPROCS(0)
	}

	e := &Engine{
		opts:     opts,
		op:       op,
		decomp:   decomp,
		exchange: halo.New(decomp.All(), op.Radius()),
		log:      log.With().Str("component", "engine").Logger(),
	}
	for rank := 0; rank < decomp.Ranks(); rank++ {
		ctx := diffop.Uniform(opts.N, opts.Lower, opts.Upper, decomp.Owned(rank), op.Radius())
		k, err := e.kernel(ctx)
		if err != nil {
			return nil, fmt.Errorf("engine: rank %d owning %v: %w", rank, decomp.Owned(rank), err)
		}
		e.contexts = append(e.contexts, ctx)
		e.kernels = append(e.kernels, k)
	}

	e.log.Debug().
		Str("pde", string(opts.PDE)).
		Str("operator", op.Name).
		Ints("n", opts.N[:]).
		Ints("procs", opts.Procs[:]).
		Int("workers", opts.Workers).
		Msg("engine ready")
	return e, nil
}

func (e *Engine) kernel(ctx *diffop.Context) (diffop.Kernel, error) {
	switch e.opts.PDE {
	case Acowave:
		ctx.A = diffop.RhoInv(ctx)
		return diffop.NewAcowave(e.op, ctx, diffop.Manufactured{})
	case Advection:
		ctx.A = diffop.Constant(e.opts.Velocity[0])
		ctx.B = diffop.Constant(e.opts.Velocity[1])
		return diffop.NewAdvection(e.op, ctx)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownPDE, e.opts.PDE)
}

func (e *Engine) Operator() *sbp.Operator {
	return e.op
}

func (e *Engine) Decomposition() *Decomposition {
	return e.decomp
}

// Context returns the PDE context of rank.
func (e *Engine) Context(rank int) *diffop.Context {
	return e.contexts[rank]
}

// Options returns the options with defaults applied.
func (e *Engine) Options() Options {
	return e.opts
}

// Comps is the number of field components of the PDE.
func (e *Engine) Comps() int {
	if e.opts.PDE == Acowave {
		return 3
	}
	return 1
}

// NewFields allocates one ghost padded function per subdomain.
func (e *Engine) NewFields() []*grid.Function {
	fields := make([]*grid.Function, e.decomp.Ranks())
	for rank := range fields {
		fields[rank] = grid.NewFunction(e.decomp.Owned(rank), e.op.Radius(), e.Comps())
	}
	return fields
}

// Project samples fn at the physical coordinates of every owned point.
func (e *Engine) Project(fields []*grid.Function, fn func(x, y float64, out []float64)) {
	out := make([]float64, e.Comps())
	for rank, f := range fields {
		ctx := e.contexts[rank]
		f.Each(func(j, i int) {
			fn(ctx.X(i), ctx.Y(j), out)
			for c, v := range out {
				f.Set(j, i, c, v)
			}
		})
	}
}

// RHS evaluates the right-hand side of src at time t into dst. src is only
// read; ghost values of src are refreshed as part of the evaluation.
func (e *Engine) RHS(ctx context.Context, t float64, src, dst []*grid.Function) error {
	if len(src) != e.decomp.Ranks() || len(dst) != e.decomp.Ranks() {
		return fmt.Errorf("engine: got %d/%d fields for %d subdomains", len(src), len(dst), e.decomp.Ranks())
	}
	start := time.Now()
	defer func() {
		atomic.AddInt64(&e.computationTime, time.Since(start).Nanoseconds())
	}()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.opts.Workers)
	for rank, k := range e.kernels {
		g.Go(func() error {
			req := e.exchange.Start(gctx, rank, src)
			n := diffop.ApplyInner(k, t, src[rank], dst[rank])
			if err := req.Wait(gctx); err != nil {
				return fmt.Errorf("rank %d exchange: %w", rank, err)
			}
			n += diffop.ApplyOuter(k, t, src[rank], dst[rank])
			if e.opts.PDE == Advection && e.opts.Injection {
				diffop.InjectInflow(e.contexts[rank], dst[rank])
			}
			atomic.AddInt64(&e.regionCounter, int64(n))
			atomic.AddInt64(&e.exchangeCounter, int64(e.exchange.Points(rank)))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	atomic.AddInt64(&e.evalCounter, 1)
	return nil
}

// L2 returns the discrete norm sqrt(hx*hy)*||a-b|| over all owned points.
func (e *Engine) L2(a, b []*grid.Function) float64 {
	var x, y []float64
	for rank := range a {
		fa, fb := a[rank], b[rank]
		fa.Each(func(j, i int) {
			for c := 0; c < fa.Comps; c++ {
				x = append(x, fa.At(j, i, c))
				y = append(y, fb.At(j, i, c))
			}
		})
	}
	return e.Spacing() * floats.Distance(x, y, 2)
}

// Spacing is sqrt(hx*hy).
func (e *Engine) Spacing() float64 {
	hi := e.contexts[0].HI
	return math.Sqrt(1 / (hi[0] * hi[1]))
}

type Stats struct {
	Evaluations int64
	Regions     int64
	GhostPoints int64
	ComputeTime time.Duration
	AvgEval     time.Duration
}

func (e *Engine) GetStats() Stats {
	s := Stats{
		Evaluations: atomic.LoadInt64(&e.evalCounter),
		Regions:     atomic.LoadInt64(&e.regionCounter),
		GhostPoints: atomic.LoadInt64(&e.exchangeCounter),
		ComputeTime: time.Duration(atomic.LoadInt64(&e.computationTime)),
	}
	if s.Evaluations > 0 {
		s.AvgEval = s.ComputeTime / time.Duration(s.Evaluations)
	}
	return s
}
