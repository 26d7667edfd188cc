//go:build gpu

package gpu

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
)

// Model advances the automaton and presents it to a configured surface.
type Model struct {
	ctx     *Context
	res     *Resources
	surface *wgpu.Surface
	format  wgpu.TextureFormat
}

// NewModel draws res onto surface, which must already be configured with
// format.
func NewModel(ctx *Context, res *Resources, surface *wgpu.Surface, format wgpu.TextureFormat) *Model {
	return &Model{ctx: ctx, res: res, surface: surface, format: format}
}

// Advance encodes the update for tick and the draw of its result in one
// submission, then presents the frame. Every error is fatal to the run.
func (m *Model) Advance(tick int) error {
	encoder, err := m.ctx.Device.CreateCommandEncoder(nil)
	if err != nil {
		return fmt.Errorf("gpu: command encoder: %w", err)
	}
	defer encoder.Release()
	if err := m.res.ComputePass(encoder, tick); err != nil {
		return fmt.Errorf("gpu: update pass: %w", err)
	}

	frame, err := m.surface.GetCurrentTexture()
	if err != nil {
		return fmt.Errorf("gpu: surface texture: %w", err)
	}
	defer frame.Release()
	view, err := frame.CreateView(nil)
	if err != nil {
		return fmt.Errorf("gpu: surface view: %w", err)
	}
	defer view.Release()

	if err := m.res.RenderPass(encoder, view, m.format, tick); err != nil {
		return fmt.Errorf("gpu: draw pass: %w", err)
	}
	if err := m.ctx.Submit(encoder); err != nil {
		return fmt.Errorf("gpu: submit: %w", err)
	}
	m.surface.Present()
	return nil
}
