// Package halo refreshes ghost values between subdomains that live in one
// process. Transfers follow a star stencil: only the four side bands of width
// sw are exchanged, corner ghosts are never read by axis-aligned derivatives.
package halo

import (
	"context"
	"fmt"

	"github.com/0x5844/sbpwave/internal/grid"
)

type transfer struct {
	from int
	rect grid.Rect
}

// Exchange holds the precomputed transfers of a fixed decomposition.
type Exchange struct {
	sw        int
	owned     []grid.Rect
	transfers [][]transfer // indexed by receiving rank
}

// New computes the transfers between the given owned rectangles for ghost width sw.
func New(owned []grid.Rect, sw int) *Exchange {
	e := &Exchange{
		sw:        sw,
		owned:     append([]grid.Rect(nil), owned...),
		transfers: make([][]transfer, len(owned)),
	}
	for to, r := range owned {
		bands := []grid.Rect{
			grid.NewRect(r.X0-sw, r.X0, r.Y0, r.Y1),
			grid.NewRect(r.X1, r.X1+sw, r.Y0, r.Y1),
			grid.NewRect(r.X0, r.X1, r.Y0-sw, r.Y0),
			grid.NewRect(r.X0, r.X1, r.Y1, r.Y1+sw),
		}
		for _, band := range bands {
			for from, o := range owned {
				if from == to {
					continue
				}
				if x := band.Intersect(o); !x.Empty() {
					e.transfers[to] = append(e.transfers[to], transfer{from: from, rect: x})
				}
			}
		}
	}
	return e
}

// Points returns the number of ghost points rank receives per exchange.
func (e *Exchange) Points(rank int) int {
	n := 0
	for _, t := range e.transfers[rank] {
		n += t.rect.Area()
	}
	return n
}

// Request is an exchange in flight.
type Request struct {
	done chan struct{}
	err  error
}

// Start fills the ghosts of fields[rank] from the owned values of the other
// ranks in the background. The owned values of every field must not change
// until the request completes; fields[rank] ghosts must not be read before then.
func (e *Exchange) Start(ctx context.Context, rank int, fields []*grid.Function) *Request {
	req := &Request{done: make(chan struct{})}
	if len(fields) != len(e.owned) {
		req.err = fmt.Errorf("halo: %d fields for %d subdomains", len(fields), len(e.owned))
		close(req.done)
		return req
	}
	go func() {
		defer close(req.done)
		dst := fields[rank]
		for _, t := range e.transfers[rank] {
			if err := ctx.Err(); err != nil {
				req.err = err
				return
			}
			dst.CopyRect(fields[t.from], t.rect)
		}
	}()
	return req
}

// Wait blocks until the exchange completes. When ctx is done first it still
// waits for the copy goroutine to stop, so no ghost is written after Wait
// returns.
func (r *Request) Wait(ctx context.Context) error {
	select {
	case <-r.done:
		return r.err
	case <-ctx.Done():
		<-r.done
		return ctx.Err()
	}
}
