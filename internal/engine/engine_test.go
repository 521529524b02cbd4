package engine

import (
	"context"
	"fmt"
	"math"
	"runtime"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0x5844/sbpwave/internal/grid"
	"github.com/0x5844/sbpwave/internal/region"
	"github.com/0x5844/sbpwave/internal/sbp"
)

func TestSplit(t *testing.T) {
	assert.Equal(t, []int{0, 4, 7, 10}, Split(10, 3))
	assert.Equal(t, []int{0, 5, 10}, Split(10, 2))
	assert.Equal(t, []int{0, 7}, Split(7, 1))
}

func TestDecomposition(t *testing.T) {
	d, err := NewDecomposition([2]int{10, 7}, [2]int{3, 2})
	require.NoError(t, err)
	require.Equal(t, 6, d.Ranks())

	assert.Equal(t, grid.NewRect(0, 4, 0, 4), d.Owned(0))
	assert.Equal(t, grid.NewRect(7, 10, 0, 4), d.Owned(2))
	assert.Equal(t, grid.NewRect(4, 7, 4, 7), d.Owned(4))

	area := 0
	for _, r := range d.All() {
		area += r.Area()
	}
	assert.Equal(t, 70, area)

	_, err = NewDecomposition([2]int{10, 7}, [2]int{0, 1})
	require.Error(t, err)
	_, err = NewDecomposition([2]int{10, 7}, [2]int{1, 8})
	require.Error(t, err)
}

func smooth(x, y float64, out []float64) {
	for c := range out {
		out[c] = math.Sin(2*x+float64(c)) * math.Cos(3*y-float64(c)) * (1 + x*y)
	}
}

func options(pde PDE, order int, n, procs [2]int) Options {
	return Options{
		PDE:       pde,
		Order:     order,
		N:         n,
		Procs:     procs,
		Lower:     -1,
		Upper:     1,
		Velocity:  [2]float64{1.5, -1},
		Injection: true,
	}
}

func TestDecomposedMatchesSingle(t *testing.T) {
	n := [2]int{40, 44}
	ctx := context.Background()
	for _, pde := range []PDE{Acowave, Advection} {
		for _, order := range sbp.Orders() {
			single, err := New(options(pde, order, n, [2]int{1, 1}), zerolog.Nop())
			require.NoError(t, err)
			src := single.NewFields()
			single.Project(src, smooth)
			want := single.NewFields()
			require.NoError(t, single.RHS(ctx, 0.3, src, want))

			for _, procs := range [][2]int{{2, 2}, {3, 2}, {1, 3}, {3, 3}} {
				t.Run(fmt.Sprintf("%s/%d/%v", pde, order, procs), func(t *testing.T) {
					e, err := New(options(pde, order, n, procs), zerolog.Nop())
					require.NoError(t, err)
					src := e.NewFields()
					e.Project(src, smooth)
					dst := e.NewFields()
					require.NoError(t, e.RHS(ctx, 0.3, src, dst))

					for rank, f := range dst {
						f.Each(func(j, i int) {
							for c := 0; c < f.Comps; c++ {
								require.Equal(t, want[0].At(j, i, c), f.At(j, i, c), "rank %d (%d,%d,%d)", rank, i, j, c)
							}
						})
					}

					assert.Equal(t, procs[0]*procs[1], e.Decomposition().Ranks())
					assert.Equal(t, runtime.GOMAXPROCS(0), e.Options().Workers)
					assert.Equal(t, order, e.Operator().Order)
					for rank := range dst {
						assert.Equal(t, e.Decomposition().Owned(rank), e.Context(rank).Owned())
					}

					st := e.GetStats()
					assert.Equal(t, int64(1), st.Evaluations)
					assert.Positive(t, st.Regions)
					assert.Positive(t, st.GhostPoints)
				})
			}
		}
	}
}

func TestRHSRespectsCancellation(t *testing.T) {
	e, err := New(options(Acowave, 4, [2]int{30, 30}, [2]int{2, 1}), zerolog.Nop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = e.RHS(ctx, 0, e.NewFields(), e.NewFields())
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, int64(0), e.GetStats().Evaluations)
}

func TestRHSFieldMismatch(t *testing.T) {
	e, err := New(options(Acowave, 2, [2]int{20, 20}, [2]int{2, 2}), zerolog.Nop())
	require.NoError(t, err)
	require.Error(t, e.RHS(context.Background(), 0, e.NewFields()[:3], e.NewFields()))
}

func TestNewRejectsBadOptions(t *testing.T) {
	_, err := New(options("heat", 4, [2]int{20, 20}, [2]int{1, 1}), zerolog.Nop())
	require.ErrorIs(t, err, ErrUnknownPDE)

	_, err = New(options(Acowave, 8, [2]int{20, 20}, [2]int{1, 1}), zerolog.Nop())
	require.ErrorIs(t, err, sbp.ErrUnknownOrder)

	_, err = New(options(Acowave, 4, [2]int{20, 20}, [2]int{10, 1}), zerolog.Nop())
	require.ErrorIs(t, err, region.ErrLocalExtent)

	_, err = New(options(Advection, 6, [2]int{16, 30}, [2]int{1, 1}), zerolog.Nop())
	require.ErrorIs(t, err, region.ErrGlobalExtent)

	bad := options(Acowave, 2, [2]int{20, 20}, [2]int{1, 1})
	bad.Upper = bad.Lower
	_, err = New(bad, zerolog.Nop())
	require.Error(t, err)
}

func TestL2(t *testing.T) {
	e, err := New(options(Advection, 2, [2]int{11, 11}, [2]int{2, 3}), zerolog.Nop())
	require.NoError(t, err)
	a, b := e.NewFields(), e.NewFields()
	e.Project(a, func(_, _ float64, out []float64) { out[0] = 1 })

	// h = 0.2 on [-1,1] with 121 points
	assert.InDelta(t, 0.2*11, e.L2(a, b), 1e-12)
	assert.Equal(t, 0.0, e.L2(a, a))
	assert.Equal(t, 1, e.Comps())
}

func BenchmarkRHS(b *testing.B) {
	ctx := context.Background()
	for _, pde := range []PDE{Acowave, Advection} {
		e, err := New(options(pde, 4, [2]int{401, 401}, [2]int{2, 2}), zerolog.Nop())
		require.NoError(b, err)
		src, dst := e.NewFields(), e.NewFields()
		e.Project(src, smooth)

		b.Run(string(pde), func(b *testing.B) {
			b.ReportAllocs()
			for b.Loop() {
				if err := e.RHS(ctx, 0.1, src, dst); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
