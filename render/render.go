// Package render sphere-traces a signed distance function into a grayscale
// frame and samples planar slices of it.
package render

import (
	"context"
	"image"
	"image/color"
	"math"
	"runtime"
	"strings"
	"sync"

	"github.com/soypat/glgl/math/ms1"
	"github.com/soypat/glgl/math/ms3"
	"golang.org/x/sync/errgroup"
)

// Frame is a rendered image of brightness values, row major with y down.
type Frame struct {
	Width  int
	Height int
	Pix    []float32
}

// At returns the brightness at column x and row y.
func (f *Frame) At(x, y int) float32 {
	return f.Pix[y*f.Width+x]
}

// Gray quantizes the frame, clamping brightness to [0, 1].
func (f *Frame) Gray() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, f.Width, f.Height))
	for y := range f.Height {
		for x := range f.Width {
			img.SetGray(x, y, color.Gray{Y: uint8(math.Round(float64(ms1.Clamp(f.At(x, y), 0, 1) * 255)))})
		}
	}
	return img
}

const asciiRamp = " .:-=+*#%@"

// ASCII prints the frame as text. Each character covers two rows, since
// terminal cells are about twice as tall as they are wide.
func (f *Frame) ASCII() string {
	var b strings.Builder
	for y := 0; y < f.Height; y += 2 {
		for x := range f.Width {
			v := f.At(x, y)
			if y+1 < f.Height {
				v = (v + f.At(x, y+1)) / 2
			}
			i := int(ms1.Clamp(v, 0, 1) * float32(len(asciiRamp)-1))
			b.WriteByte(asciiRamp[i])
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// SDF is a signed distance function. Render and Slice stop at the first
// error it returns.
type SDF func(ms3.Vec) (float32, error)

// Render traces one ray bundle per pixel. Rows are shaded in parallel; the
// first error or a cancelled ctx stops the render.
func Render(ctx context.Context, sdf SDF, cfg Config) (*Frame, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	frame := &Frame{
		Width:  cfg.Width,
		Height: cfg.Height,
		Pix:    make([]float32, cfg.Width*cfg.Height),
	}

	var mu sync.Mutex
	done := 0
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for py := range cfg.Height {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			tr := newTracer(sdf, cfg)
			row := frame.Pix[py*cfg.Width : (py+1)*cfg.Width]
			for px := range row {
				row[px] = tr.pixel(px, py)
				if tr.err != nil {
					return tr.err
				}
			}
			if cfg.Progress != nil {
				mu.Lock()
				done++
				cfg.Progress(done, cfg.Height)
				mu.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return frame, nil
}
