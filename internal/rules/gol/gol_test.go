package gol

import (
	"strings"
	"testing"

	"gpu-ca/internal/rules"
)

func TestBlinkerOscillation(t *testing.T) {
	const rows = 5
	cur := make([]float32, rows*rows)
	next := make([]float32, rows*rows)
	set := func(x, y int) { cur[y*rows+x] = 1 }
	set(2, 1)
	set(2, 2)
	set(2, 3)

	check := func(cells []float32, expects map[[2]int]bool, stage string) {
		t.Helper()
		for y := 0; y < rows; y++ {
			for x := 0; x < rows; x++ {
				alive := cells[y*rows+x] == 1
				if expects[[2]int{x, y}] != alive {
					t.Fatalf("%s: cell (%d,%d) alive=%v, expected %v", stage, x, y, alive, !alive)
				}
			}
		}
	}

	Step(rows, cur, next)
	check(next, map[[2]int]bool{{1, 2}: true, {2, 2}: true, {3, 2}: true}, "first step")

	Step(rows, next, cur)
	check(cur, map[[2]int]bool{{2, 1}: true, {2, 2}: true, {2, 3}: true}, "second step")
}

func TestGliderWrapsAroundEdges(t *testing.T) {
	const rows = 6
	cur := make([]float32, rows*rows)
	next := make([]float32, rows*rows)
	for _, p := range [][2]int{{1, 0}, {2, 1}, {0, 2}, {1, 2}, {2, 2}} {
		cur[p[1]*rows+p[0]] = 1
	}
	// A glider returns to its shape shifted by (1,1) every four generations.
	for i := 0; i < 4*rows; i++ {
		Step(rows, cur, next)
		cur, next = next, cur
	}
	live := 0
	for _, v := range cur {
		if v == 1 {
			live++
		}
	}
	if live != 5 {
		t.Fatalf("glider should survive the torus with 5 cells, got %d", live)
	}
	for _, p := range [][2]int{{1, 0}, {2, 1}, {0, 2}, {1, 2}, {2, 2}} {
		if cur[p[1]*rows+p[0]] != 1 {
			t.Fatalf("after %d generations glider should be back at %v", 4*rows, p)
		}
	}
}

func TestRegisteredPreset(t *testing.T) {
	r, err := rules.Resolve("gol", nil)
	if err != nil {
		t.Fatal(err)
	}
	if r.Grid.Rows != 500 || r.Grid.GroupSize != 256 || r.Grid.Seed != 222 || r.Grid.Threshold != 0.8 {
		t.Fatalf("unexpected preset %+v", r.Grid)
	}
	if r.Capture.Enabled() {
		t.Fatal("gol does not capture by default")
	}
	src, err := r.ComputeSource()
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(src, "const ROWS: i32 = 500;") || !strings.Contains(src, "@workgroup_size(256)") {
		t.Fatalf("compute source not specialised:\n%s", src)
	}
	draw, err := r.DrawSource()
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(draw, "const ROWS: u32 = 500u;") {
		t.Fatalf("draw source not specialised:\n%s", draw)
	}
}

func TestOverrides(t *testing.T) {
	r, err := rules.Resolve("gol", map[string]string{"rows": "64", "frames": "10", "seed": "x"})
	if err != nil {
		t.Fatal(err)
	}
	if r.Grid.Rows != 64 || r.Capture.Frames != 10 || r.Grid.Seed != 222 {
		t.Fatalf("overrides not applied as expected: %+v %+v", r.Grid, r.Capture)
	}
}
