// Package brain registers Brian's Brain: firing cells always refract for one
// tick, resting cells fire when exactly two neighbours are firing.
package brain

import (
	_ "embed"

	"gpu-ca/internal/grid"
	"gpu-ca/internal/rules"
)

const (
	stateDead  = 0
	stateOn    = 1
	stateDying = 2
)

//go:embed compute.wgsl
var computeTemplate string

// DefaultRule returns the preset: a 400x400 grid with one cell in eight
// firing at start.
func DefaultRule() rules.Rule {
	return rules.Rule{
		Name: "brain",
		Grid: grid.Config{
			Rows:      400,
			GroupSize: 256,
			Seed:      7,
			Threshold: 0.875,
		},
		Capture: rules.Capture{Width: 800, Height: 800, Path: "brain.gif"},
		Compute: computeTemplate,
		Step:    StepRows,
	}
}

func state(v float32) int {
	switch {
	case v >= 1.5:
		return stateDying
	case v >= 0.5:
		return stateOn
	default:
		return stateDead
	}
}

// StepRows advances lattice rows [y0, y1) by one tick.
func StepRows(rows int, cur, next []float32, y0, y1 int) {
	for y := y0; y < y1; y++ {
		for x := 0; x < rows; x++ {
			idx := y*rows + x
			switch state(cur[idx]) {
			case stateOn:
				next[idx] = stateDying
			case stateDying:
				next[idx] = stateDead
			default:
				firing := 0
				for dy := -1; dy <= 1; dy++ {
					for dx := -1; dx <= 1; dx++ {
						if dx == 0 && dy == 0 {
							continue
						}
						n := cur[rules.Wrap(y+dy, rows)*rows+rules.Wrap(x+dx, rows)]
						if state(n) == stateOn {
							firing++
						}
					}
				}
				next[idx] = stateDead
				if firing == 2 {
					next[idx] = stateOn
				}
			}
		}
	}
}

func init() {
	rules.Register("brain", func(cfg map[string]string) rules.Rule {
		r := DefaultRule()
		rules.ApplyOverrides(&r, cfg)
		return r
	})
}
