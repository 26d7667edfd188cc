package render

import (
	"testing"
)

func pixel(buf []byte, width, x, y int) [4]byte {
	i := (y*width + x) * 4
	return [4]byte{buf[i], buf[i+1], buf[i+2], buf[i+3]}
}

var (
	black = [4]byte{0, 0, 0, 255}
	white = [4]byte{255, 255, 255, 255}
)

func TestRasterizeDegenerateGrid(t *testing.T) {
	buf := make([]byte, 3*3*4)
	Rasterize(buf, []float32{1}, 1, 3, 3, Palette)
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			if got := pixel(buf, 3, x, y); got != black {
				t.Fatalf("pixel (%d,%d) = %v, a single live cell covers the target", x, y, got)
			}
		}
	}
	Rasterize(buf, []float32{0}, 1, 3, 3, Palette)
	if got := pixel(buf, 3, 1, 1); got != white {
		t.Fatalf("dead grid must show the clear colour, got %v", got)
	}
}

func TestRasterizeRowZeroIsTop(t *testing.T) {
	// 2x2 lattice, only the top-left cell live, rendered at 4x4.
	cells := []float32{1, 0, 0, 0}
	buf := make([]byte, 4*4*4)
	Rasterize(buf, cells, 2, 4, 4, Palette)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			want := white
			if x < 2 && y < 2 {
				want = black
			}
			if got := pixel(buf, 4, x, y); got != want {
				t.Fatalf("pixel (%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestRasterizeDownsamples(t *testing.T) {
	// 4x4 lattice into 2x2 pixels: each pixel centre lands in cell (2*p+1).
	cells := make([]float32, 16)
	cells[1*4+1] = 1
	buf := make([]byte, 2*2*4)
	Rasterize(buf, cells, 4, 2, 2, Palette)
	if got := pixel(buf, 2, 0, 0); got != black {
		t.Fatalf("pixel (0,0) samples cell (1,1), got %v", got)
	}
	if got := pixel(buf, 2, 1, 1); got != white {
		t.Fatalf("pixel (1,1) samples cell (3,3), got %v", got)
	}
}

func TestFillCells(t *testing.T) {
	buf := make([]byte, 12)
	FillCells(buf, []float32{0, 1, 2}, Palette)
	if pixel(buf, 3, 0, 0) != white || pixel(buf, 3, 1, 0) != black {
		t.Fatalf("FillCells = %v", buf)
	}
	if got := pixel(buf, 3, 2, 0); got != [4]byte{255, 0, 0, 255} {
		t.Fatalf("dying cell = %v, want red", got)
	}

	FillCells(buf, []float32{1, 1, 1}, nil)
	for i, b := range buf {
		if b != 0 {
			t.Fatalf("empty palette must clear the buffer, byte %d = %d", i, b)
		}
	}
}

func TestStateRounding(t *testing.T) {
	cases := map[float32]int{0: 0, 0.49: 0, 0.5: 1, 1: 1, 1.49: 1, 1.5: 2, 2: 2, 7: 2}
	for v, want := range cases {
		if got := State(v); got != want {
			t.Fatalf("State(%v) = %d, want %d", v, got, want)
		}
	}
}
