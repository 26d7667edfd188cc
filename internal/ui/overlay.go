//go:build ebiten

package ui

import (
	"fmt"
	"image/color"

	"gpu-ca/internal/capture"
	"gpu-ca/internal/driver"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

// Overlay draws the run status in the top-left corner.
type Overlay struct {
	driver *driver.Driver
	rec    *capture.Recorder
	path   string
	hidden bool

	panel *ebiten.Image
}

// NewOverlay constructs an overlay for d. rec may be nil when the run does
// not capture.
func NewOverlay(d *driver.Driver, rec *capture.Recorder, path string) *Overlay {
	o := &Overlay{driver: d, rec: rec, path: path}
	o.panel = ebiten.NewImage(1, 1)
	o.panel.Fill(color.RGBA{A: 160})
	return o
}

// Toggle shows or hides the overlay.
func (o *Overlay) Toggle() { o.hidden = !o.hidden }

// Lines returns the status text.
func (o *Overlay) Lines() []string {
	lines := []string{fmt.Sprintf("tick %d", o.driver.Tick())}
	if o.rec == nil {
		return lines
	}
	switch o.driver.Phase() {
	case driver.PhaseCapturing:
		lines = append(lines, fmt.Sprintf("capturing %d/%d", o.rec.Len(), o.rec.Length()))
	case driver.PhaseSaved:
		lines = append(lines, fmt.Sprintf("saved %d frames to %s", o.driver.Saved(), o.path))
	case driver.PhaseSaveFailed:
		lines = append(lines, fmt.Sprintf("save failed: %v", o.driver.SaveErr()))
	}
	if n := len(o.rec.Dropped()); n > 0 {
		lines = append(lines, fmt.Sprintf("dropped %d", n))
	}
	return lines
}

// Draw renders the overlay onto the provided screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	if o.hidden {
		return
	}
	const lineHeight = 16
	lines := o.Lines()
	width := 0
	for _, l := range lines {
		if w := len(l) * 7; w > width {
			width = w
		}
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(width+12), float64(len(lines)*lineHeight+8))
	screen.DrawImage(o.panel, op)
	for i, l := range lines {
		text.Draw(screen, l, basicfont.Face7x13, 6, 16+i*lineHeight, color.White)
	}
}
