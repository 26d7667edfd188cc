//go:build gpu

package gpu

import (
	"errors"

	"github.com/cogentcore/webgpu/wgpu"
)

// Context carries the device and its queue into every stage. It is built by
// whoever acquired the device; stages never look it up globally.
type Context struct {
	Device *wgpu.Device
	Queue  *wgpu.Queue
}

// NewContext wraps device and its default queue.
func NewContext(device *wgpu.Device) (*Context, error) {
	if device == nil {
		return nil, errors.New("gpu: nil device")
	}
	return &Context{Device: device, Queue: device.GetQueue()}, nil
}

// Submit finishes encoder and submits it as one batch.
func (c *Context) Submit(encoder *wgpu.CommandEncoder) error {
	cmd, err := encoder.Finish(nil)
	if err != nil {
		return err
	}
	defer cmd.Release()
	c.Queue.Submit(cmd)
	return nil
}
