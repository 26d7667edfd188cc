// Package rules holds the automaton presets a run can be started with: the
// grid parameters, the WGSL programs the GPU stages dispatch, and a host
// reference of each transition rule.
package rules

import (
	"fmt"
	"sort"
	"strconv"

	"gpu-ca/internal/grid"
)

// StepFunc computes lattice rows [y0, y1) of next from cur on a rows x rows
// lattice. It must be a pure function of cur and must not read next.
type StepFunc func(rows int, cur, next []float32, y0, y1 int)

// Capture fixes the optional recording of the first Frames ticks.
type Capture struct {
	Frames int
	Width  int
	Height int
	// Delay is the per-frame delay in hundredths of a second.
	Delay int
	Path  string
}

// Enabled reports whether the run records an animation.
func (c Capture) Enabled() bool { return c.Frames > 0 && c.Width > 0 && c.Height > 0 }

// Rule is a fully resolved automaton preset.
type Rule struct {
	Name    string
	Grid    grid.Config
	Capture Capture
	// Compute is the WGSL template of the update program.
	Compute string
	// Params are rule constants exposed to the programs as .Params.
	Params map[string]int
	Step   StepFunc
}

// ComputeSource renders the update program for the rule's grid.
func (r Rule) ComputeSource() (string, error) {
	return renderShader(r.Name+"-compute", r.Compute, r.Grid, r.Params)
}

// DrawSource renders the shared draw program for the rule's grid.
func (r Rule) DrawSource() (string, error) {
	return renderShader("draw", drawTemplate, r.Grid, r.Params)
}

// Factory resolves a Rule from optional string overrides.
type Factory func(cfg map[string]string) Rule

var registry = map[string]Factory{}

// Register adds a rule factory under name.
func Register(name string, f Factory) {
	if name == "" || f == nil {
		return
	}
	registry[name] = f
}

// Lookup returns the factory registered under name.
func Lookup(name string) (Factory, bool) {
	f, ok := registry[name]
	return f, ok
}

// Names lists the registered rules in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resolve looks name up and applies cfg to the preset.
func Resolve(name string, cfg map[string]string) (Rule, error) {
	f, ok := Lookup(name)
	if !ok {
		return Rule{}, fmt.Errorf("unknown rule %q (have %v)", name, Names())
	}
	r := f(cfg)
	if err := r.Grid.Validate(); err != nil {
		return Rule{}, fmt.Errorf("rule %s: %w", name, err)
	}
	return r, nil
}

// ApplyOverrides populates r from a flag-style key/value map. Unparseable or
// out-of-range values are ignored.
func ApplyOverrides(r *Rule, cfg map[string]string) {
	if cfg == nil {
		return
	}
	if v, ok := cfg["rows"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			r.Grid.Rows = parsed
		}
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			r.Grid.Seed = parsed
		}
	}
	if v, ok := cfg["threshold"]; ok {
		if parsed, err := strconv.ParseFloat(v, 32); err == nil && parsed >= 0 && parsed <= 1 {
			r.Grid.Threshold = float32(parsed)
		}
	}
	if v, ok := cfg["frames"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			r.Capture.Frames = parsed
		}
	}
	if v, ok := cfg["size"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			r.Capture.Width = parsed
			r.Capture.Height = parsed
		}
	}
	if v, ok := cfg["out"]; ok && v != "" {
		r.Capture.Path = v
	}
}

// Wrap maps a possibly negative coordinate onto [0, n).
func Wrap(v, n int) int {
	return (v%n + n) % n
}
