//go:build !ebiten

package ui

import (
	"gpu-ca/internal/capture"
	"gpu-ca/internal/driver"
)

// Overlay is a no-op placeholder used when the ebiten build tag is absent.
type Overlay struct{}

// NewOverlay constructs a stub overlay.
func NewOverlay(*driver.Driver, *capture.Recorder, string) *Overlay { return &Overlay{} }

// Toggle is a no-op in headless builds.
func (o *Overlay) Toggle() {}

// Draw is a no-op placeholder.
func (o *Overlay) Draw(any) {}
