// Package elementary registers a one-dimensional Wolfram code projected onto
// the lattice: row 0 holds the newest generation and every tick scrolls the
// history one row down.
package elementary

import (
	_ "embed"
	"strconv"

	"gpu-ca/internal/grid"
	"gpu-ca/internal/rules"
)

// DefaultCode is the Wolfram code used when no override is given.
const DefaultCode = 110

//go:embed compute.wgsl
var computeTemplate string

// DefaultRule returns the preset for the given Wolfram code.
func DefaultRule(code uint8) rules.Rule {
	return rules.Rule{
		Name: "elementary",
		Grid: grid.Config{
			Rows:      256,
			GroupSize: 64,
			Seed:      1,
			Threshold: 0.5,
		},
		Capture: rules.Capture{Width: 768, Height: 768, Path: "elementary.gif"},
		Compute: computeTemplate,
		Params:  map[string]int{"code": int(code)},
		Step:    Stepper(code),
	}
}

// Stepper returns the transition for a Wolfram code.
func Stepper(code uint8) rules.StepFunc {
	return func(rows int, cur, next []float32, y0, y1 int) {
		for y := y0; y < y1; y++ {
			line := next[y*rows : (y+1)*rows]
			if y > 0 {
				copy(line, cur[(y-1)*rows:y*rows])
				continue
			}
			for x := range line {
				left := bit(cur[rules.Wrap(x-1, rows)])
				center := bit(cur[x])
				right := bit(cur[rules.Wrap(x+1, rows)])
				line[x] = float32((code >> (left<<2 | center<<1 | right)) & 1)
			}
		}
	}
}

func bit(v float32) uint8 {
	if v > 0.5 {
		return 1
	}
	return 0
}

func init() {
	rules.Register("elementary", func(cfg map[string]string) rules.Rule {
		code := uint8(DefaultCode)
		if v, ok := cfg["code"]; ok {
			if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 && parsed <= 255 {
				code = uint8(parsed)
			}
		}
		r := DefaultRule(code)
		rules.ApplyOverrides(&r, cfg)
		return r
	})
}
