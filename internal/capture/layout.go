package capture

import "fmt"

const (
	// BytesPerPixel is the texel size of the RGBA8 capture target.
	BytesPerPixel = 4
	// CopyAlignment is the row alignment WebGPU requires for texture to
	// buffer copies.
	CopyAlignment = 256
)

// Layout describes the host copy of one capture target.
type Layout struct {
	Width  int
	Height int
	// Align is the required row stride multiple of the padded buffer.
	Align int
}

// NewLayout returns a layout with the WebGPU copy alignment.
func NewLayout(width, height int) Layout {
	return Layout{Width: width, Height: height, Align: CopyAlignment}
}

// UnpaddedBytesPerRow is the tight row length.
func (l Layout) UnpaddedBytesPerRow() int { return l.Width * BytesPerPixel }

// PaddedBytesPerRow is the row stride of the readback buffer.
func (l Layout) PaddedBytesPerRow() int { return PaddedBytesPerRow(l.Width, l.Align) }

// BufferSize is the byte size of the padded readback buffer.
func (l Layout) BufferSize() int { return l.PaddedBytesPerRow() * l.Height }

// FrameSize is the byte size of one tightly packed frame.
func (l Layout) FrameSize() int { return l.UnpaddedBytesPerRow() * l.Height }

// PaddedBytesPerRow rounds width*4 up to the next multiple of align.
func PaddedBytesPerRow(width, align int) int {
	unpadded := width * BytesPerPixel
	if align <= 1 {
		return unpadded
	}
	return (unpadded + align - 1) / align * align
}

// Unpad strips the trailing padding of every row in padded and returns a
// tightly packed frame of FrameSize bytes.
func Unpad(padded []byte, l Layout) ([]byte, error) {
	if len(padded) < l.BufferSize() {
		return nil, fmt.Errorf("capture: padded buffer holds %d bytes, need %d", len(padded), l.BufferSize())
	}
	stride := l.PaddedBytesPerRow()
	row := l.UnpaddedBytesPerRow()
	out := make([]byte, 0, l.FrameSize())
	for y := 0; y < l.Height; y++ {
		start := y * stride
		out = append(out, padded[start:start+row]...)
	}
	return out, nil
}

// Pad lays a tightly packed frame out with the padded row stride; padding
// bytes are zero.
func Pad(frame []byte, l Layout) ([]byte, error) {
	if len(frame) != l.FrameSize() {
		return nil, fmt.Errorf("capture: frame holds %d bytes, need %d", len(frame), l.FrameSize())
	}
	stride := l.PaddedBytesPerRow()
	row := l.UnpaddedBytesPerRow()
	out := make([]byte, l.BufferSize())
	for y := 0; y < l.Height; y++ {
		copy(out[y*stride:y*stride+row], frame[y*row:(y+1)*row])
	}
	return out, nil
}
