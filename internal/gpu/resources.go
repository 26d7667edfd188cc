//go:build gpu

package gpu

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"

	"gpu-ca/internal/grid"
	"gpu-ca/internal/render"
	"gpu-ca/internal/rules"
)

// CaptureFormat is the colour format of the off-screen capture target.
const CaptureFormat = wgpu.TextureFormatRGBA8UnormSrgb

var clearColor = wgpu.Color{
	R: float64(render.ClearColor.R) / 255,
	G: float64(render.ClearColor.G) / 255,
	B: float64(render.ClearColor.B) / 255,
	A: float64(render.ClearColor.A) / 255,
}

// Resources holds the GPU objects of a run. They are created once and never
// resized; the cell buffers are only ever addressed through tick parity.
type Resources struct {
	ctx  *Context
	grid grid.Config

	cellBuffers    [2]*wgpu.Buffer
	cellBindGroups [2]*wgpu.BindGroup
	vertices       *wgpu.Buffer

	bindLayout     *wgpu.BindGroupLayout
	computeLayout  *wgpu.PipelineLayout
	drawLayout     *wgpu.PipelineLayout
	computeShader  *wgpu.ShaderModule
	drawShader     *wgpu.ShaderModule
	computePipe    *wgpu.ComputePipeline
	pipelines      map[wgpu.TextureFormat]*wgpu.RenderPipeline
	workGroupCount uint32
}

// NewResources compiles the rule's programs, seeds both cell buffers
// identically and builds the two bind groups. A draw pipeline is created for
// each target format.
func NewResources(ctx *Context, rule rules.Rule, formats ...wgpu.TextureFormat) (_ *Resources, err error) {
	cfg := rule.Grid
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	r := &Resources{
		ctx:            ctx,
		grid:           cfg,
		pipelines:      make(map[wgpu.TextureFormat]*wgpu.RenderPipeline),
		workGroupCount: cfg.WorkGroups(),
	}
	defer func() {
		if err != nil {
			r.Release()
		}
	}()

	size := cfg.BufferSize()
	r.bindLayout, err = ctx.Device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "cells",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageCompute,
				Buffer: wgpu.BufferBindingLayout{
					Type:           wgpu.BufferBindingTypeReadOnlyStorage,
					MinBindingSize: size,
				},
			},
			{
				Binding:    1,
				Visibility: wgpu.ShaderStageCompute,
				Buffer: wgpu.BufferBindingLayout{
					Type:           wgpu.BufferBindingTypeStorage,
					MinBindingSize: size,
				},
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("gpu: bind group layout: %w", err)
	}

	if err := r.buildCompute(rule); err != nil {
		return nil, err
	}

	seeded := grid.Seed(cfg.Cells(), cfg.Seed, cfg.Threshold)
	for i := range r.cellBuffers {
		r.cellBuffers[i], err = ctx.Device.CreateBufferInit(&wgpu.BufferInitDescriptor{
			Label:    fmt.Sprintf("cell buffer %d", i),
			Contents: wgpu.ToBytes(seeded),
			Usage:    wgpu.BufferUsageVertex | wgpu.BufferUsageStorage | wgpu.BufferUsageCopyDst,
		})
		if err != nil {
			return nil, fmt.Errorf("gpu: cell buffer %d: %w", i, err)
		}
	}
	for i, bs := range grid.BindSets() {
		r.cellBindGroups[i], err = ctx.Device.CreateBindGroup(&wgpu.BindGroupDescriptor{
			Label:  fmt.Sprintf("cells %d->%d", bs.Read, bs.Write),
			Layout: r.bindLayout,
			Entries: []wgpu.BindGroupEntry{
				{Binding: 0, Buffer: r.cellBuffers[bs.Read], Size: wgpu.WholeSize},
				{Binding: 1, Buffer: r.cellBuffers[bs.Write], Size: wgpu.WholeSize},
			},
		})
		if err != nil {
			return nil, fmt.Errorf("gpu: bind group %d: %w", i, err)
		}
	}

	quad := grid.QuadVertices(cfg.Rows)
	r.vertices, err = ctx.Device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    "quad",
		Contents: wgpu.ToBytes(quad[:]),
		Usage:    wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("gpu: vertex buffer: %w", err)
	}

	if err := r.buildDraw(rule, formats); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Resources) buildCompute(rule rules.Rule) error {
	src, err := rule.ComputeSource()
	if err != nil {
		return err
	}
	r.computeShader, err = r.ctx.Device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          rule.Name + " compute",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: src},
	})
	if err != nil {
		return fmt.Errorf("gpu: compute shader: %w", err)
	}
	r.computeLayout, err = r.ctx.Device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            "compute",
		BindGroupLayouts: []*wgpu.BindGroupLayout{r.bindLayout},
	})
	if err != nil {
		return fmt.Errorf("gpu: compute layout: %w", err)
	}
	r.computePipe, err = r.ctx.Device.CreateComputePipeline(&wgpu.ComputePipelineDescriptor{
		Label:  rule.Name + " update",
		Layout: r.computeLayout,
		Compute: wgpu.ProgrammableStageDescriptor{
			Module:     r.computeShader,
			EntryPoint: "main",
		},
	})
	if err != nil {
		return fmt.Errorf("gpu: compute pipeline: %w", err)
	}
	return nil
}

func (r *Resources) buildDraw(rule rules.Rule, formats []wgpu.TextureFormat) error {
	src, err := rule.DrawSource()
	if err != nil {
		return err
	}
	r.drawShader, err = r.ctx.Device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          "draw",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: src},
	})
	if err != nil {
		return fmt.Errorf("gpu: draw shader: %w", err)
	}
	r.drawLayout, err = r.ctx.Device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{Label: "draw"})
	if err != nil {
		return fmt.Errorf("gpu: draw layout: %w", err)
	}

	buffers := []wgpu.VertexBufferLayout{
		{
			ArrayStride: grid.CellBytes,
			StepMode:    wgpu.VertexStepModeInstance,
			Attributes: []wgpu.VertexAttribute{
				{Format: wgpu.VertexFormatFloat32, Offset: 0, ShaderLocation: 0},
			},
		},
		{
			ArrayStride: 2 * 4,
			StepMode:    wgpu.VertexStepModeVertex,
			Attributes: []wgpu.VertexAttribute{
				{Format: wgpu.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 1},
			},
		},
	}
	for _, format := range formats {
		if _, ok := r.pipelines[format]; ok {
			continue
		}
		pipe, err := r.ctx.Device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
			Label:  fmt.Sprintf("draw %v", format),
			Layout: r.drawLayout,
			Vertex: wgpu.VertexState{
				Module:     r.drawShader,
				EntryPoint: "vs_main",
				Buffers:    buffers,
			},
			Primitive: wgpu.PrimitiveState{
				Topology:  wgpu.PrimitiveTopologyTriangleList,
				FrontFace: wgpu.FrontFaceCCW,
				CullMode:  wgpu.CullModeNone,
			},
			Multisample: wgpu.MultisampleState{Count: 1, Mask: 0xFFFFFFFF},
			Fragment: &wgpu.FragmentState{
				Module:     r.drawShader,
				EntryPoint: "fs_main",
				Targets: []wgpu.ColorTargetState{
					{Format: format, Blend: &wgpu.BlendStateReplace, WriteMask: wgpu.ColorWriteMaskAll},
				},
			},
		})
		if err != nil {
			return fmt.Errorf("gpu: draw pipeline %v: %w", format, err)
		}
		r.pipelines[format] = pipe
	}
	return nil
}

// Grid returns the lattice configuration.
func (r *Resources) Grid() grid.Config { return r.grid }

// WorkGroupCount returns the number of compute groups dispatched per tick.
func (r *Resources) WorkGroupCount() uint32 { return r.workGroupCount }

// ComputePass encodes the update for tick.
func (r *Resources) ComputePass(encoder *wgpu.CommandEncoder, tick int) error {
	pass := encoder.BeginComputePass(&wgpu.ComputePassDescriptor{Label: "update"})
	defer pass.Release()
	pass.SetPipeline(r.computePipe)
	pass.SetBindGroup(0, r.cellBindGroups[tick%2], nil)
	pass.DispatchWorkgroups(r.workGroupCount, 1, 1)
	return pass.End()
}

// RenderPass encodes the draw of the buffer presented after tick into view,
// cleared to white first.
func (r *Resources) RenderPass(encoder *wgpu.CommandEncoder, view *wgpu.TextureView, format wgpu.TextureFormat, tick int) error {
	pipe, ok := r.pipelines[format]
	if !ok {
		return fmt.Errorf("gpu: no draw pipeline for %v", format)
	}
	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		Label: "draw",
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:       view,
				LoadOp:     wgpu.LoadOpClear,
				StoreOp:    wgpu.StoreOpStore,
				ClearValue: clearColor,
			},
		},
	})
	defer pass.Release()
	pass.SetPipeline(pipe)
	pass.SetVertexBuffer(0, r.cellBuffers[grid.Active(tick).Draw], 0, wgpu.WholeSize)
	pass.SetVertexBuffer(1, r.vertices, 0, wgpu.WholeSize)
	pass.Draw(grid.VertexCount, uint32(r.grid.Cells()), 0, 0)
	return pass.End()
}

// Release frees every GPU object held.
func (r *Resources) Release() {
	for _, p := range r.pipelines {
		p.Release()
	}
	r.pipelines = nil
	for i := range r.cellBindGroups {
		if r.cellBindGroups[i] != nil {
			r.cellBindGroups[i].Release()
			r.cellBindGroups[i] = nil
		}
	}
	for i := range r.cellBuffers {
		if r.cellBuffers[i] != nil {
			r.cellBuffers[i].Release()
			r.cellBuffers[i] = nil
		}
	}
	if r.vertices != nil {
		r.vertices.Release()
		r.vertices = nil
	}
	if r.computePipe != nil {
		r.computePipe.Release()
		r.computePipe = nil
	}
	if r.computeLayout != nil {
		r.computeLayout.Release()
		r.computeLayout = nil
	}
	if r.drawLayout != nil {
		r.drawLayout.Release()
		r.drawLayout = nil
	}
	if r.computeShader != nil {
		r.computeShader.Release()
		r.computeShader = nil
	}
	if r.drawShader != nil {
		r.drawShader.Release()
		r.drawShader = nil
	}
	if r.bindLayout != nil {
		r.bindLayout.Release()
		r.bindLayout = nil
	}
}
