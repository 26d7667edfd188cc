//go:build gpu

package gpu

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"

	"gpu-ca/internal/capture"
)

// FrameReader renders a tick into a fixed-size texture independent of the
// window and reads it back through a row-padded buffer. Both objects are
// reused across ticks; each readback is unmapped before the next starts.
type FrameReader struct {
	ctx    *Context
	res    *Resources
	layout capture.Layout

	target *wgpu.Texture
	view   *wgpu.TextureView
	output *wgpu.Buffer
}

// NewFrameReader allocates the capture target and readback buffer. res must
// hold a draw pipeline for CaptureFormat.
func NewFrameReader(ctx *Context, res *Resources, layout capture.Layout) (_ *FrameReader, err error) {
	fr := &FrameReader{ctx: ctx, res: res, layout: layout}
	defer func() {
		if err != nil {
			fr.Release()
		}
	}()
	fr.target, err = ctx.Device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         "capture target",
		Usage:         wgpu.TextureUsageCopySrc | wgpu.TextureUsageRenderAttachment,
		Dimension:     wgpu.TextureDimension2D,
		Size:          fr.extent(),
		Format:        CaptureFormat,
		MipLevelCount: 1,
		SampleCount:   1,
	})
	if err != nil {
		return nil, fmt.Errorf("gpu: capture texture: %w", err)
	}
	fr.view, err = fr.target.CreateView(nil)
	if err != nil {
		return nil, fmt.Errorf("gpu: capture view: %w", err)
	}
	fr.output, err = ctx.Device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "capture readback",
		Size:  uint64(layout.BufferSize()),
		Usage: wgpu.BufferUsageCopyDst | wgpu.BufferUsageMapRead,
	})
	if err != nil {
		return nil, fmt.Errorf("gpu: readback buffer: %w", err)
	}
	return fr, nil
}

func (fr *FrameReader) extent() wgpu.Extent3D {
	return wgpu.Extent3D{
		Width:              uint32(fr.layout.Width),
		Height:             uint32(fr.layout.Height),
		DepthOrArrayLayers: 1,
	}
}

// ReadFrame implements capture.Source. It blocks on a device poll until the
// map callback has fired; a failed or unresolved map yields ErrMapFailed.
func (fr *FrameReader) ReadFrame(tick int, read func(padded []byte) error) error {
	encoder, err := fr.ctx.Device.CreateCommandEncoder(nil)
	if err != nil {
		return fmt.Errorf("gpu: command encoder: %w", err)
	}
	defer encoder.Release()
	if err := fr.res.RenderPass(encoder, fr.view, CaptureFormat, tick); err != nil {
		return err
	}
	size := fr.extent()
	err = encoder.CopyTextureToBuffer(
		fr.target.AsImageCopy(),
		&wgpu.ImageCopyBuffer{
			Buffer: fr.output,
			Layout: wgpu.TextureDataLayout{
				Offset:       0,
				BytesPerRow:  uint32(fr.layout.PaddedBytesPerRow()),
				RowsPerImage: uint32(fr.layout.Height),
			},
		},
		&size,
	)
	if err != nil {
		return fmt.Errorf("gpu: copy capture target: %w", err)
	}
	if err := fr.ctx.Submit(encoder); err != nil {
		return fmt.Errorf("gpu: submit capture: %w", err)
	}

	bufSize := uint64(fr.layout.BufferSize())
	var (
		resolved bool
		status   wgpu.BufferMapAsyncStatus
	)
	err = fr.output.MapAsync(wgpu.MapModeRead, 0, bufSize, func(s wgpu.BufferMapAsyncStatus) {
		resolved = true
		status = s
	})
	if err != nil {
		return fmt.Errorf("%w: %v", capture.ErrMapFailed, err)
	}
	fr.ctx.Device.Poll(true, nil)
	if !resolved {
		return fmt.Errorf("%w: map for tick %d never resolved", capture.ErrMapFailed, tick)
	}
	if status != wgpu.BufferMapAsyncStatusSuccess {
		return fmt.Errorf("%w: status %v", capture.ErrMapFailed, status)
	}
	defer fr.output.Unmap()
	return read(fr.output.GetMappedRange(0, uint(bufSize)))
}

// Release frees the capture target and readback buffer.
func (fr *FrameReader) Release() {
	if fr.output != nil {
		fr.output.Release()
		fr.output = nil
	}
	if fr.view != nil {
		fr.view.Release()
		fr.view = nil
	}
	if fr.target != nil {
		fr.target.Release()
		fr.target = nil
	}
}
