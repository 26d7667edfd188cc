//go:build ebiten

package app

import (
	"gpu-ca/internal/capture"
	"gpu-ca/internal/cpu"
	"gpu-ca/internal/driver"
	"gpu-ca/internal/render"
	"gpu-ca/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Game adapts a host backend and its driver to the ebiten.Game interface.
type Game struct {
	backend *cpu.Backend
	driver  *driver.Driver
	painter *render.GridPainter
	overlay *ui.Overlay

	side   int
	paused bool
}

// New constructs a Game presenting backend in a side x side window.
func New(backend *cpu.Backend, d *driver.Driver, rec *capture.Recorder, side int) *Game {
	return &Game{
		backend: backend,
		driver:  d,
		painter: render.NewGridPainter(backend.Rule().Grid.Rows),
		overlay: ui.NewOverlay(d, rec, backend.Rule().Capture.Path),
		side:    side,
	}
}

// Update handles input and advances the automaton by one tick.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		g.overlay.Toggle()
	}
	if g.paused {
		return nil
	}
	return g.driver.Frame()
}

// Draw renders the most recently presented buffer.
func (g *Game) Draw(screen *ebiten.Image) {
	cells := g.backend.Store().Buffer(0)
	if tick := g.driver.Tick(); tick > 0 {
		cells = g.backend.Cells(tick - 1)
	}
	g.painter.Blit(screen, cells, render.Palette, g.side)
	g.overlay.Draw(screen)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.side, g.side
}
