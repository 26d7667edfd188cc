// Package driver sequences one run: every frame advances the automaton and
// presents it; the first ticks are optionally captured and, once the capture
// window closes, encoded exactly once.
package driver

import (
	"context"
	"fmt"
	"log"
)

// Simulation advances the state for a tick and presents the result. Any
// error is fatal to the run.
type Simulation interface {
	Advance(tick int) error
}

// Capturer stores frames for the first Length ticks. *capture.Recorder
// satisfies it.
type Capturer interface {
	Length() int
	Active(tick int) bool
	Capture(tick int) bool
	Drain() [][]byte
	Dropped() []int
}

// SaveFunc receives the captured frames in tick order.
type SaveFunc func(frames [][]byte) error

// Phase is the capture state of a run.
type Phase int

const (
	// PhaseLive runs without capture.
	PhaseLive Phase = iota
	// PhaseCapturing stores a frame per tick.
	PhaseCapturing
	// PhaseSaved means the animation was written.
	PhaseSaved
	// PhaseSaveFailed means the single save attempt failed.
	PhaseSaveFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseLive:
		return "live"
	case PhaseCapturing:
		return "capturing"
	case PhaseSaved:
		return "saved"
	case PhaseSaveFailed:
		return "save failed"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// Driver owns the tick counter of a run.
type Driver struct {
	sim    Simulation
	rec    Capturer
	save   SaveFunc
	logger *log.Logger

	tick    int
	phase   Phase
	saved   int
	saveErr error
}

// Option configures a Driver.
type Option func(*Driver)

// WithCapture records the first rec.Length() ticks and hands them to save
// when the tick counter reaches that length.
func WithCapture(rec Capturer, save SaveFunc) Option {
	return func(d *Driver) {
		if rec == nil || save == nil {
			return
		}
		d.rec = rec
		d.save = save
		d.phase = PhaseCapturing
	}
}

// WithLogger replaces the standard logger.
func WithLogger(l *log.Logger) Option {
	return func(d *Driver) {
		if l != nil {
			d.logger = l
		}
	}
}

// New returns a driver at tick 0.
func New(sim Simulation, opts ...Option) *Driver {
	d := &Driver{sim: sim, logger: log.Default()}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Tick returns the number of frames rendered so far.
func (d *Driver) Tick() int { return d.tick }

// Phase returns the capture state.
func (d *Driver) Phase() Phase { return d.phase }

// Saved returns the number of frames handed to the save step.
func (d *Driver) Saved() int { return d.saved }

// SaveErr returns the error of the save step, if it ran and failed.
func (d *Driver) SaveErr() error { return d.saveErr }

// Frame renders one tick. Only simulation errors are returned; capture drops
// and save failures stay contained.
func (d *Driver) Frame() error {
	tick := d.tick
	if err := d.sim.Advance(tick); err != nil {
		return fmt.Errorf("tick %d: %w", tick, err)
	}
	if d.phase == PhaseCapturing {
		if d.rec.Active(tick) {
			d.rec.Capture(tick)
		}
		if tick == d.rec.Length() {
			d.export()
		}
	}
	d.tick++
	return nil
}

// Run renders ticks frames, stopping early when ctx is done between frames.
func (d *Driver) Run(ctx context.Context, ticks int) error {
	for i := 0; i < ticks; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := d.Frame(); err != nil {
			return err
		}
	}
	return nil
}

func (d *Driver) export() {
	frames := d.rec.Drain()
	d.saved = len(frames)
	if dropped := d.rec.Dropped(); len(dropped) > 0 {
		d.logger.Printf("capture: %d of %d frames dropped", len(dropped), d.rec.Length())
	}
	d.logger.Printf("saving %d frames...", len(frames))
	if err := d.save(frames); err != nil {
		d.saveErr = err
		d.phase = PhaseSaveFailed
		d.logger.Printf("save failed: %v", err)
		return
	}
	d.phase = PhaseSaved
	d.logger.Printf("saved!")
}
