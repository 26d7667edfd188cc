// Package cpu runs a rule on the host with the same ping-pong contract as the
// GPU pipeline. It backs the preview window, the headless capture tool and
// the end-to-end tests.
package cpu

import (
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"gpu-ca/internal/capture"
	"gpu-ca/internal/grid"
	"gpu-ca/internal/render"
	"gpu-ca/internal/rules"
)

// Backend owns the two host cell buffers of a run.
type Backend struct {
	rule    rules.Rule
	store   *grid.Store
	workers int
	last    int
}

// New seeds a backend for rule. workers <= 0 uses GOMAXPROCS.
func New(rule rules.Rule, workers int) *Backend {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Backend{rule: rule, store: grid.NewStore(rule.Grid), workers: workers, last: -1}
}

// Rule returns the rule the backend runs.
func (b *Backend) Rule() rules.Rule { return b.rule }

// Store exposes the cell buffers.
func (b *Backend) Store() *grid.Store { return b.store }

// Advance runs the update for tick, reading the current buffer and writing
// the next one in parallel row bands.
func (b *Backend) Advance(tick int) error {
	if tick != b.last+1 {
		return fmt.Errorf("cpu: advance to tick %d after tick %d", tick, b.last)
	}
	rows := b.rule.Grid.Rows
	cur, next := b.store.Current(tick), b.store.Next(tick)

	bands := b.workers
	if bands > rows {
		bands = rows
	}
	per := (rows + bands - 1) / bands
	var g errgroup.Group
	for y0 := 0; y0 < rows; y0 += per {
		y1 := min(y0+per, rows)
		g.Go(func() error {
			b.rule.Step(rows, cur, next, y0, y1)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	b.last = tick
	return nil
}

// Cells returns the buffer presented after the update at tick.
func (b *Backend) Cells(tick int) []float32 { return b.store.Drawn(tick) }

// Source returns a capture source rasterising the presented buffer.
func (b *Backend) Source(layout capture.Layout) capture.Source {
	return &source{backend: b, layout: layout}
}

type source struct {
	backend *Backend
	layout  capture.Layout
}

func (s *source) ReadFrame(tick int, read func(padded []byte) error) error {
	if tick != s.backend.last {
		return fmt.Errorf("cpu: tick %d not presented (last %d): %w", tick, s.backend.last, capture.ErrMapFailed)
	}
	frame := make([]byte, s.layout.FrameSize())
	render.Rasterize(frame, s.backend.Cells(tick), s.backend.rule.Grid.Rows,
		s.layout.Width, s.layout.Height, render.Palette)
	padded, err := capture.Pad(frame, s.layout)
	if err != nil {
		return err
	}
	return read(padded)
}
