package diffop

import (
	"github.com/0x5844/sbpwave/internal/grid"
	"github.com/0x5844/sbpwave/internal/region"
	"github.com/0x5844/sbpwave/internal/sbp"
)

// Derivative1D writes the derivative of every component of src into dst over
// the owned range of src on an axis of n points. dst must own the same range.
func Derivative1D(op *sbp.Operator, src, dst *grid.Line, hi float64, n int) {
	for _, s := range region.Axis(src.Lo, src.Hi, n, op.NClosures()) {
		for i := s.Lo; i < s.Hi; i++ {
			for c := 0; c < src.Comps; c++ {
				dst.Set(i, c, op.Apply1D(s.Kind, src, hi, n, i, c))
			}
		}
	}
}
