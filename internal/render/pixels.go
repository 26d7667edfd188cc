package render

import "image/color"

var (
	// ClearColor is the background every frame starts from.
	ClearColor = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	// LiveColor is the colour of cells in state 1.
	LiveColor = color.RGBA{A: 255}
	// DyingColor is the colour of cells in state 2 and above.
	DyingColor = color.RGBA{R: 255, A: 255}
)

// Palette maps a cell state to the colour the draw program gives it. State 0
// is never drawn, so it shows the clear colour.
var Palette = []color.RGBA{ClearColor, LiveColor, DyingColor}

// State rounds a cell scalar to a palette index.
func State(v float32) int {
	if v < 0.5 {
		return 0
	}
	if v < 1.5 {
		return 1
	}
	return 2
}

func paletteColor(palette []color.RGBA, v float32) color.RGBA {
	idx := State(v)
	if idx >= len(palette) {
		idx = len(palette) - 1
	}
	return palette[idx]
}

func putRGBA(buf []byte, base int, c color.RGBA) {
	buf[base+0] = c.R
	buf[base+1] = c.G
	buf[base+2] = c.B
	buf[base+3] = c.A
}

// FillCells converts cells into one RGBA pixel per cell in buf. When the
// palette is empty the buffer is cleared to transparent black.
func FillCells(buf []byte, cells []float32, palette []color.RGBA) {
	if len(palette) == 0 {
		clear(buf[:len(cells)*4])
		return
	}
	for i, c := range cells {
		putRGBA(buf, i*4, paletteColor(palette, c))
	}
}

// Rasterize renders a rows x rows lattice into a width x height RGBA buffer
// the way the draw program does: every pixel takes the colour of the cell
// whose quad contains the pixel centre.
func Rasterize(buf []byte, cells []float32, rows, width, height int, palette []color.RGBA) {
	cols := make([]int, width)
	for px := range cols {
		cols[px] = (2*px + 1) * rows / (2 * width)
	}
	for py := 0; py < height; py++ {
		row := (2*py + 1) * rows / (2 * height)
		line := cells[row*rows : (row+1)*rows]
		base := py * width * 4
		for px, col := range cols {
			putRGBA(buf, base+px*4, paletteColor(palette, line[col]))
		}
	}
}
