// Package mnca registers a two-neighbourhood cellular automaton: an inner disc
// and an outer ring each vote on the next state through density bands.
package mnca

import (
	_ "embed"

	"gpu-ca/internal/grid"
	"gpu-ca/internal/rules"
)

//go:embed compute.wgsl
var computeTemplate string

const (
	// Radius bounds the square scanned around every cell.
	Radius = 7

	innerMin, innerMax = 1, 9   // squared distance of the inner disc
	outerMin, outerMax = 25, 49 // squared distance of the outer ring
)

// band sets the cell to state when a neighbourhood density lies within [lo, hi].
type band struct {
	outer  bool
	lo, hi float32
	state  float32
}

// Bands are applied in order; later matches win.
var bands = []band{
	{outer: false, lo: 0.210, hi: 0.220, state: 1},
	{outer: false, lo: 0.350, hi: 0.500, state: 0},
	{outer: false, lo: 0.750, hi: 0.850, state: 0},
	{outer: true, lo: 0.100, hi: 0.280, state: 0},
	{outer: true, lo: 0.430, hi: 0.550, state: 1},
	{outer: false, lo: 0.120, hi: 0.150, state: 0},
}

// DefaultRule returns the capture preset: a 1000x1000 grid seeded half live,
// recording its first 290 ticks at 750x750.
func DefaultRule() rules.Rule {
	return rules.Rule{
		Name: "mnca",
		Grid: grid.Config{
			Rows:      1000,
			GroupSize: 64,
			Seed:      111,
			Threshold: 0.5,
		},
		Capture: rules.Capture{
			Frames: 290,
			Width:  750,
			Height: 750,
			Delay:  0,
			Path:   "output.gif",
		},
		Compute: computeTemplate,
		Step:    StepRows,
	}
}

// Densities returns the live fraction of the inner and outer neighbourhoods
// of (x, y) with wrap-around edges.
func Densities(rows int, cur []float32, x, y int) (inner, outer float32) {
	var innerSum, innerCount, outerSum, outerCount float32
	for dy := -Radius; dy <= Radius; dy++ {
		for dx := -Radius; dx <= Radius; dx++ {
			d2 := dx*dx + dy*dy
			inInner := d2 >= innerMin && d2 <= innerMax
			inOuter := d2 >= outerMin && d2 <= outerMax
			if !inInner && !inOuter {
				continue
			}
			v := cur[rules.Wrap(y+dy, rows)*rows+rules.Wrap(x+dx, rows)]
			if inInner {
				innerSum += v
				innerCount++
			}
			if inOuter {
				outerSum += v
				outerCount++
			}
		}
	}
	return innerSum / innerCount, outerSum / outerCount
}

// Next applies the density bands to a cell currently in state.
func Next(state, inner, outer float32) float32 {
	for _, b := range bands {
		d := inner
		if b.outer {
			d = outer
		}
		if d >= b.lo && d <= b.hi {
			state = b.state
		}
	}
	return state
}

// Step advances every cell of the lattice.
func Step(rows int, cur, next []float32) { StepRows(rows, cur, next, 0, rows) }

// StepRows advances lattice rows [y0, y1).
func StepRows(rows int, cur, next []float32, y0, y1 int) {
	for y := y0; y < y1; y++ {
		for x := 0; x < rows; x++ {
			inner, outer := Densities(rows, cur, x, y)
			idx := y*rows + x
			next[idx] = Next(cur[idx], inner, outer)
		}
	}
}

func init() {
	rules.Register("mnca", func(cfg map[string]string) rules.Rule {
		r := DefaultRule()
		rules.ApplyOverrides(&r, cfg)
		return r
	})
}
