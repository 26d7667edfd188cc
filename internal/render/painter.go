//go:build ebiten

package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// GridPainter uploads cell data into an image with one pixel per cell.
type GridPainter struct {
	rows int
	img  *ebiten.Image
	buf  []byte
}

// NewGridPainter allocates a painter for a rows x rows lattice.
func NewGridPainter(rows int) *GridPainter {
	gp := &GridPainter{rows: rows, buf: make([]byte, 4*rows*rows)}
	gp.img = ebiten.NewImage(rows, rows)
	return gp
}

// Blit uploads cells and draws them scaled to fill a side x side square.
func (gp *GridPainter) Blit(dst *ebiten.Image, cells []float32, palette []color.RGBA, side int) {
	if len(cells) != gp.rows*gp.rows {
		return
	}
	FillCells(gp.buf, cells, palette)
	gp.img.WritePixels(gp.buf)

	scale := float64(side) / float64(gp.rows)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(scale, scale)
	dst.DrawImage(gp.img, op)
}

// Rows returns the lattice side the painter was built for.
func (gp *GridPainter) Rows() int { return gp.rows }
