package app

import (
	"log"

	"gpu-ca/internal/capture"
	"gpu-ca/internal/driver"
	"gpu-ca/internal/encode"
	"gpu-ca/internal/rules"
)

// NewDriver wires sim to the rule's capture settings. When the rule records
// an animation, src supplies the frames and the returned recorder is non-nil.
func NewDriver(rule rules.Rule, sim driver.Simulation, src capture.Source, logger *log.Logger) (*driver.Driver, *capture.Recorder) {
	opts := []driver.Option{driver.WithLogger(logger)}
	if !rule.Capture.Enabled() || src == nil {
		return driver.New(sim, opts...), nil
	}
	c := rule.Capture
	layout := capture.NewLayout(c.Width, c.Height)
	rec := capture.NewRecorder(src, layout, c.Frames, logger)
	save := func(frames [][]byte) error {
		return encode.WriteFile(c.Path, frames, encode.Options{
			Width:  c.Width,
			Height: c.Height,
			Delay:  c.Delay,
		})
	}
	opts = append(opts, driver.WithCapture(rec, save))
	return driver.New(sim, opts...), rec
}

// CaptureLayout returns the host layout of the rule's capture target.
func CaptureLayout(rule rules.Rule) capture.Layout {
	return capture.NewLayout(rule.Capture.Width, rule.Capture.Height)
}
