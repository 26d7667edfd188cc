// Package capture copies what the draw stage renders back to host memory for
// the first ticks of a run and accumulates the frames for encoding.
package capture

import (
	"errors"
	"log"
)

// ErrMapFailed is returned by a Source when the readback buffer could not be
// mapped for reading.
var ErrMapFailed = errors.New("capture: buffer map failed")

// Source renders the state drawn at a tick into an off-screen target, copies
// it into a row-padded buffer and maps that buffer. read is called with the
// mapped bytes while the mapping is held; the mapping is released before
// ReadFrame returns.
type Source interface {
	ReadFrame(tick int, read func(padded []byte) error) error
}

// FrameList is the ordered list of captured RGBA frames.
type FrameList struct {
	frames [][]byte
}

// Append adds a frame at the end of the list.
func (l *FrameList) Append(frame []byte) { l.frames = append(l.frames, frame) }

// Len returns the number of frames held.
func (l *FrameList) Len() int { return len(l.frames) }

// Drain hands over all frames and empties the list.
func (l *FrameList) Drain() [][]byte {
	out := l.frames
	l.frames = nil
	return out
}

// Recorder captures ticks [0, length) from a Source. A tick whose readback
// fails is dropped and the run continues; drops are logged and counted.
type Recorder struct {
	src    Source
	layout Layout
	length int
	frames FrameList

	captured []int
	dropped  []int
	logger   *log.Logger
}

// NewRecorder builds a recorder for length ticks. A nil logger uses the
// standard logger.
func NewRecorder(src Source, layout Layout, length int, logger *log.Logger) *Recorder {
	if logger == nil {
		logger = log.Default()
	}
	return &Recorder{src: src, layout: layout, length: length, logger: logger}
}

// Layout returns the capture layout.
func (r *Recorder) Layout() Layout { return r.layout }

// Length returns the number of ticks the recorder covers.
func (r *Recorder) Length() int { return r.length }

// Active reports whether tick falls inside the capture window.
func (r *Recorder) Active(tick int) bool { return tick >= 0 && tick < r.length }

// Capture reads back tick and appends it to the frame list. It blocks until
// the mapping resolves and reports whether a frame was stored.
func (r *Recorder) Capture(tick int) bool {
	if !r.Active(tick) {
		return false
	}
	var frame []byte
	err := r.src.ReadFrame(tick, func(padded []byte) error {
		var err error
		frame, err = Unpad(padded, r.layout)
		return err
	})
	if err != nil {
		// TODO: decide whether dropped frames should abort or retry instead
		// of shortening the animation.
		r.dropped = append(r.dropped, tick)
		r.logger.Printf("capture: dropping frame %d: %v", tick, err)
		return false
	}
	r.frames.Append(frame)
	r.captured = append(r.captured, tick)
	return true
}

// Len returns the number of frames currently held.
func (r *Recorder) Len() int { return r.frames.Len() }

// Captured returns the ticks stored so far, in capture order.
func (r *Recorder) Captured() []int { return r.captured }

// Dropped returns the ticks whose readback failed.
func (r *Recorder) Dropped() []int { return r.dropped }

// Drain hands the frame list to the caller and empties it.
func (r *Recorder) Drain() [][]byte { return r.frames.Drain() }
