package brain

import (
	"strings"
	"testing"

	"gpu-ca/internal/rules"
)

func TestCycleOnDyingDead(t *testing.T) {
	const rows = 5
	cur := make([]float32, rows*rows)
	next := make([]float32, rows*rows)
	cur[12] = stateOn

	StepRows(rows, cur, next, 0, rows)
	if next[12] != stateDying {
		t.Fatalf("firing cell became %v, want dying", next[12])
	}
	StepRows(rows, next, cur, 0, rows)
	if cur[12] != stateDead {
		t.Fatalf("dying cell became %v, want dead", cur[12])
	}
}

func TestTwoFiringNeighboursIgnite(t *testing.T) {
	const rows = 5
	cur := make([]float32, rows*rows)
	next := make([]float32, rows*rows)
	cur[1*rows+1] = stateOn
	cur[1*rows+2] = stateOn

	StepRows(rows, cur, next, 0, rows)
	// Cells in rows 0 and 2 above and below the pair see exactly two firing neighbours.
	for _, x := range []int{1, 2} {
		for _, y := range []int{0, 2} {
			if next[y*rows+x] != stateOn {
				t.Fatalf("cell (%d,%d) = %v, want firing", x, y, next[y*rows+x])
			}
		}
	}
	for _, x := range []int{0, 3} {
		if next[1*rows+x] != stateDead {
			t.Fatalf("cell (%d,1) sees one firing neighbour, got %v", x, next[1*rows+x])
		}
	}
}

func TestDyingNeighboursDoNotCount(t *testing.T) {
	const rows = 4
	cur := make([]float32, rows*rows)
	next := make([]float32, rows*rows)
	cur[0] = stateDying
	cur[1] = stateDying

	StepRows(rows, cur, next, 0, rows)
	for i, v := range next {
		if v != stateDead {
			t.Fatalf("cell %d = %v, want every cell dead", i, v)
		}
	}
}

func TestRegisteredPreset(t *testing.T) {
	r, err := rules.Resolve("brain", map[string]string{"rows": "64"})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if r.Grid.Rows != 64 || r.Grid.Threshold != 0.875 {
		t.Fatalf("unexpected grid %+v", r.Grid)
	}
	src, err := r.ComputeSource()
	if err != nil {
		t.Fatalf("ComputeSource: %v", err)
	}
	if !strings.Contains(src, "const ROWS: i32 = 64;") || !strings.Contains(src, "@workgroup_size(256)") {
		t.Fatalf("compute program not specialised:\n%s", src)
	}
}
