package halo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0x5844/sbpwave/internal/grid"
)

func value(i, j, c int) float64 {
	return float64(1000*j + 10*i + c)
}

func TestExchangeFillsSideBands(t *testing.T) {
	const sw = 2
	owned := []grid.Rect{
		grid.NewRect(0, 8, 0, 6),
		grid.NewRect(8, 15, 0, 6),
		grid.NewRect(0, 8, 6, 12),
		grid.NewRect(8, 15, 6, 12),
	}
	global := grid.NewRect(0, 15, 0, 12)

	fields := make([]*grid.Function, len(owned))
	for k, r := range owned {
		f := grid.NewFunction(r, sw, 2)
		f.Fill(-1)
		f.Each(func(j, i int) {
			f.Set(j, i, 0, value(i, j, 0))
			f.Set(j, i, 1, value(i, j, 1))
		})
		fields[k] = f
	}

	ex := New(owned, sw)
	ctx := context.Background()
	for rank := range owned {
		require.NoError(t, ex.Start(ctx, rank, fields).Wait(ctx))
	}

	for k, f := range fields {
		r := owned[k]
		g := f.Ghosted()
		for j := g.Y0; j < g.Y1; j++ {
			for i := g.X0; i < g.X1; i++ {
				inX := i >= r.X0 && i < r.X1
				inY := j >= r.Y0 && j < r.Y1
				side := inX != inY && global.Contains(i, j)
				for c := 0; c < 2; c++ {
					switch {
					case inX && inY, side:
						require.Equal(t, value(i, j, c), f.At(j, i, c), "rank %d (%d,%d,%d)", k, i, j, c)
					default:
						// corners and points outside the domain are left alone
						require.Equal(t, -1.0, f.At(j, i, c), "rank %d (%d,%d,%d)", k, i, j, c)
					}
				}
			}
		}
	}

	assert.Equal(t, 2*6+2*8, ex.Points(0))
	assert.Equal(t, 2*6+2*7, ex.Points(3))
}

func TestSingleSubdomainHasNoTransfers(t *testing.T) {
	owned := []grid.Rect{grid.NewRect(0, 10, 0, 10)}
	ex := New(owned, 3)
	assert.Equal(t, 0, ex.Points(0))

	f := grid.NewFunction(owned[0], 3, 1)
	ctx := context.Background()
	require.NoError(t, ex.Start(ctx, 0, []*grid.Function{f}).Wait(ctx))
}

func TestStartRejectsMismatchedFields(t *testing.T) {
	owned := []grid.Rect{grid.NewRect(0, 5, 0, 10), grid.NewRect(5, 10, 0, 10)}
	ex := New(owned, 1)
	ctx := context.Background()
	err := ex.Start(ctx, 0, []*grid.Function{grid.NewFunction(owned[0], 1, 1)}).Wait(ctx)
	require.Error(t, err)
}

func TestCanceledExchange(t *testing.T) {
	owned := []grid.Rect{grid.NewRect(0, 5, 0, 10), grid.NewRect(5, 10, 0, 10)}
	ex := New(owned, 1)
	fields := []*grid.Function{grid.NewFunction(owned[0], 1, 1), grid.NewFunction(owned[1], 1, 1)}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := ex.Start(ctx, 0, fields).Wait(context.Background())
	require.ErrorIs(t, err, context.Canceled)
}

func TestWaitOutlivesCopyAfterCancel(t *testing.T) {
	const n = 1000
	owned := []grid.Rect{grid.NewRect(0, n, 0, n), grid.NewRect(n, 2*n, 0, n)}
	ex := New(owned, 3)
	fields := []*grid.Function{grid.NewFunction(owned[0], 3, 3), grid.NewFunction(owned[1], 3, 3)}

	for trial := 0; trial < 20; trial++ {
		ctx, cancel := context.WithCancel(context.Background())
		req := ex.Start(ctx, trial%2, fields)
		cancel()
		_ = req.Wait(ctx)
		select {
		case <-req.done:
		default:
			t.Fatalf("trial %d: Wait returned while the copy was still running", trial)
		}
	}
}
