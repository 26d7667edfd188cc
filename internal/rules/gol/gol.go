// Package gol registers Conway's Game of Life on a toroidal lattice.
package gol

import (
	_ "embed"

	"gpu-ca/internal/grid"
	"gpu-ca/internal/rules"
)

//go:embed compute.wgsl
var computeTemplate string

// DefaultRule returns the Game of Life preset: a 500x500 grid, one cell in
// five live at start, no capture.
func DefaultRule() rules.Rule {
	return rules.Rule{
		Name: "gol",
		Grid: grid.Config{
			Rows:      500,
			GroupSize: 256,
			Seed:      222,
			Threshold: 0.8,
		},
		Capture: rules.Capture{Width: 750, Height: 750, Path: "gol.gif"},
		Compute: computeTemplate,
		Step:    StepRows,
	}
}

// Step applies the B3/S23 rule with wrap-around edges to the whole lattice.
func Step(rows int, cur, next []float32) { StepRows(rows, cur, next, 0, rows) }

// StepRows applies the rule to lattice rows [y0, y1).
func StepRows(rows int, cur, next []float32, y0, y1 int) {
	for y := y0; y < y1; y++ {
		for x := 0; x < rows; x++ {
			var neighbors float32
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					if dx == 0 && dy == 0 {
						continue
					}
					nx := rules.Wrap(x+dx, rows)
					ny := rules.Wrap(y+dy, rows)
					neighbors += cur[ny*rows+nx]
				}
			}
			idx := y*rows + x
			alive := cur[idx] > 0.5
			next[idx] = 0
			if (alive && (neighbors == 2 || neighbors == 3)) || (!alive && neighbors == 3) {
				next[idx] = 1
			}
		}
	}
}

func init() {
	rules.Register("gol", func(cfg map[string]string) rules.Rule {
		r := DefaultRule()
		rules.ApplyOverrides(&r, cfg)
		return r
	})
}
