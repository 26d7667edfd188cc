// Package encode serialises captured RGBA frames into a looping animated GIF.
package encode

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"io"
	"os"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// ErrNoFrames is returned when there is nothing to encode.
var ErrNoFrames = errors.New("encode: no frames")

// Options fixes the animation container.
type Options struct {
	Width  int
	Height int
	// Delay is the per-frame delay in hundredths of a second.
	Delay int
	// Workers bounds parallel palette conversion; <= 0 uses GOMAXPROCS.
	Workers int
}

// Encode writes frames, tightly packed RGBA of Width*Height*4 bytes each, as
// an infinitely looping GIF in the given order.
func Encode(w io.Writer, frames [][]byte, opts Options) error {
	if len(frames) == 0 {
		return ErrNoFrames
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		return fmt.Errorf("encode: invalid size %dx%d", opts.Width, opts.Height)
	}
	images, err := convertAll(frames, opts)
	if err != nil {
		return err
	}

	anim := &gif.GIF{
		Image:     images,
		Delay:     make([]int, len(images)),
		LoopCount: 0,
		Config:    image.Config{Width: opts.Width, Height: opts.Height},
	}
	for i := range anim.Delay {
		anim.Delay[i] = opts.Delay
	}
	if err := gif.EncodeAll(w, anim); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteFile creates path and encodes frames into it.
func WriteFile(path string, frames [][]byte, opts Options) (err error) {
	if len(frames) == 0 {
		return ErrNoFrames
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("encode: %w", cerr)
		}
	}()
	return Encode(f, frames, opts)
}

func convertAll(frames [][]byte, opts Options) ([]*image.Paletted, error) {
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	out := make([]*image.Paletted, len(frames))
	var g errgroup.Group
	g.SetLimit(workers)
	for i, frame := range frames {
		g.Go(func() error {
			img, err := Paletted(frame, opts.Width, opts.Height)
			if err != nil {
				return fmt.Errorf("encode: frame %d: %w", i, err)
			}
			out[i] = img
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Paletted converts one RGBA frame. Frames with at most 256 distinct colours
// keep them exactly; others are dithered onto the Plan 9 palette.
func Paletted(frame []byte, width, height int) (*image.Paletted, error) {
	if len(frame) != width*height*4 {
		return nil, fmt.Errorf("frame holds %d bytes, need %d", len(frame), width*height*4)
	}
	bounds := image.Rect(0, 0, width, height)
	src := &image.RGBA{Pix: frame, Stride: width * 4, Rect: bounds}

	if img, ok := exactPaletted(src); ok {
		return img, nil
	}
	img := image.NewPaletted(bounds, palette.Plan9)
	draw.FloydSteinberg.Draw(img, bounds, src, image.Point{})
	return img, nil
}

func exactPaletted(src *image.RGBA) (*image.Paletted, bool) {
	index := make(map[color.RGBA]uint8)
	var pal color.Palette
	pix := make([]uint8, len(src.Pix)/4)
	for i := range pix {
		p := src.Pix[i*4 : i*4+4 : i*4+4]
		c := color.RGBA{R: p[0], G: p[1], B: p[2], A: p[3]}
		idx, ok := index[c]
		if !ok {
			if len(pal) == 256 {
				return nil, false
			}
			idx = uint8(len(pal))
			index[c] = idx
			pal = append(pal, c)
		}
		pix[i] = idx
	}
	return &image.Paletted{Pix: pix, Stride: src.Rect.Dx(), Rect: src.Rect, Palette: pal}, true
}
