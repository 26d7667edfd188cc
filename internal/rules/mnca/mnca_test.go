package mnca

import (
	"slices"
	"testing"

	"gpu-ca/internal/grid"
	"gpu-ca/internal/rules"
)

func TestEmptyGridStaysEmpty(t *testing.T) {
	const rows = 20
	cur := make([]float32, rows*rows)
	next := make([]float32, rows*rows)
	Step(rows, cur, next)
	for i, v := range next {
		if v != 0 {
			t.Fatalf("cell %d came alive from nothing", i)
		}
	}
}

func TestSaturatedGridHolds(t *testing.T) {
	const rows = 20
	cur := make([]float32, rows*rows)
	for i := range cur {
		cur[i] = 1
	}
	next := make([]float32, rows*rows)
	Step(rows, cur, next)
	// Both densities are 1.0: no band matches so every cell keeps its state.
	for i, v := range next {
		if v != 1 {
			t.Fatalf("cell %d changed state under saturated neighbourhoods", i)
		}
	}
}

func TestDensitiesWrap(t *testing.T) {
	const rows = 16
	cur := make([]float32, rows*rows)
	// Live cell diagonal across the corner from (0,0).
	cur[(rows-1)*rows+(rows-1)] = 1
	inner, outer := Densities(rows, cur, 0, 0)
	if inner <= 0 {
		t.Fatal("wrapped neighbour not counted in the inner disc")
	}
	if outer != 0 {
		t.Fatalf("outer ring should be empty, got %v", outer)
	}
}

func TestNextBandOrder(t *testing.T) {
	// An empty outer ring sits below every outer band.
	if got := Next(0, 0.215, 0); got != 1 {
		t.Fatalf("inner birth band should set the cell, got %v", got)
	}
	if got := Next(0, 0.215, 0.2); got != 0 {
		t.Fatalf("outer death band must override inner birth, got %v", got)
	}
	if got := Next(1, 0.4, 0.5); got != 1 {
		t.Fatalf("outer birth band applies after inner death band, got %v", got)
	}
	if got := Next(1, 0.13, 0.5); got != 0 {
		t.Fatalf("final inner band must win, got %v", got)
	}
}

func TestStepDeterministic(t *testing.T) {
	const rows = 32
	seed := grid.Seed(rows*rows, 111, 0.5)
	a := make([]float32, len(seed))
	b := make([]float32, len(seed))
	Step(rows, seed, a)
	Step(rows, seed, b)
	if !slices.Equal(a, b) {
		t.Fatal("step must be a pure function of the current buffer")
	}
}

func TestRegisteredPreset(t *testing.T) {
	r, err := rules.Resolve("mnca", nil)
	if err != nil {
		t.Fatal(err)
	}
	if r.Grid.Rows != 1000 || r.Grid.GroupSize != 64 || r.Grid.Seed != 111 {
		t.Fatalf("unexpected grid preset %+v", r.Grid)
	}
	if !r.Capture.Enabled() || r.Capture.Frames != 290 || r.Capture.Width != 750 || r.Capture.Path != "output.gif" {
		t.Fatalf("unexpected capture preset %+v", r.Capture)
	}
}
