package grid

import "fmt"

// Line is the 1D counterpart of Function, addressed by (index, component).
type Line struct {
	Lo, Hi int // owned range [Lo,Hi)
	Halo   int
	Comps  int
	data   []float64
}

func NewLine(lo, hi, halo, comps int) *Line {
	if hi <= lo || halo < 0 || comps < 1 {
		panic(fmt.Sprintf("grid: invalid line shape [%d,%d) halo=%d comps=%d", lo, hi, halo, comps))
	}
	return &Line{
		Lo:    lo,
		Hi:    hi,
		Halo:  halo,
		Comps: comps,
		data:  make([]float64, (hi-lo+2*halo)*comps),
	}
}

func (l *Line) index(i, c int) int {
	li := i - l.Lo + l.Halo
	if uint(li) >= uint(l.Hi-l.Lo+2*l.Halo) || uint(c) >= uint(l.Comps) {
		panic(fmt.Sprintf("grid: index (%d,%d) outside [%d,%d) with halo %d and %d components",
			i, c, l.Lo, l.Hi, l.Halo, l.Comps))
	}
	return li*l.Comps + c
}

func (l *Line) At(i, c int) float64 {
	return l.data[l.index(i, c)]
}

func (l *Line) Set(i, c int, v float64) {
	l.data[l.index(i, c)] = v
}

func (l *Line) Data() []float64 {
	return l.data
}
