//go:build gpu

package main

import (
	"flag"
	"log"
	"runtime"

	"gpu-ca/internal/app"
	"gpu-ca/internal/capture"
	"gpu-ca/internal/gpu"
	"gpu-ca/internal/rules"
	_ "gpu-ca/internal/rules/brain"
	_ "gpu-ca/internal/rules/elementary"
	_ "gpu-ca/internal/rules/gol"
	_ "gpu-ca/internal/rules/mnca"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/glfw/v3.3/glfw"
)

func init() {
	// GLFW calls must stay on the main thread.
	runtime.LockOSThread()
}

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	rule, err := cfg.Resolve()
	if err != nil {
		log.Fatal(err)
	}
	if err := run(cfg, rule); err != nil {
		log.Fatal(err)
	}
}

func run(cfg *app.Config, rule rules.Rule) error {
	if err := glfw.Init(); err != nil {
		return err
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	glfw.WindowHint(glfw.Resizable, glfw.False)
	window, err := glfw.CreateWindow(cfg.Window, cfg.Window, "gpu-ca: "+rule.Name, nil, nil)
	if err != nil {
		return err
	}
	defer window.Destroy()
	window.SetKeyCallback(func(w *glfw.Window, _ glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		if action == glfw.Press {
			w.SetShouldClose(true)
		}
	})

	instance := wgpu.CreateInstance(nil)
	defer instance.Release()
	surface := instance.CreateSurface(wgpuglfw.GetSurfaceDescriptor(window))
	defer surface.Release()

	adapter, err := instance.RequestAdapter(&wgpu.RequestAdapterOptions{CompatibleSurface: surface})
	if err != nil {
		return err
	}
	defer adapter.Release()
	device, err := adapter.RequestDevice(nil)
	if err != nil {
		return err
	}
	defer device.Release()

	ctx, err := gpu.NewContext(device)
	if err != nil {
		return err
	}
	caps := surface.GetCapabilities(adapter)
	format := caps.Formats[0]
	width, height := window.GetFramebufferSize()
	surface.Configure(adapter, device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      format,
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: wgpu.PresentModeFifo,
		AlphaMode:   caps.AlphaModes[0],
	})

	res, err := gpu.NewResources(ctx, rule, format, gpu.CaptureFormat)
	if err != nil {
		return err
	}
	defer res.Release()
	model := gpu.NewModel(ctx, res, surface, format)

	var src capture.Source
	if rule.Capture.Enabled() {
		reader, err := gpu.NewFrameReader(ctx, res, app.CaptureLayout(rule))
		if err != nil {
			return err
		}
		defer reader.Release()
		src = reader
	}
	d, _ := app.NewDriver(rule, model, src, nil)

	for !window.ShouldClose() {
		glfw.PollEvents()
		if err := d.Frame(); err != nil {
			return err
		}
	}
	return nil
}
