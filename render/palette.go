package render

import (
	"fmt"
	"image"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/soypat/glgl/math/ms1"
)

// Palette tints a frame by blending two hex colors in Lab space. The zero
// Palette means grayscale output.
type Palette struct {
	Dark  string `toml:"dark"`
	Light string `toml:"light"`
}

// IsZero reports whether no colors are set.
func (p Palette) IsZero() bool {
	return p.Dark == "" && p.Light == ""
}

func (p Palette) colors() (colorful.Color, colorful.Color, error) {
	dark, err := colorful.Hex(p.Dark)
	if err != nil {
		return colorful.Color{}, colorful.Color{}, fmt.Errorf("palette dark color %q: %w", p.Dark, err)
	}
	light, err := colorful.Hex(p.Light)
	if err != nil {
		return colorful.Color{}, colorful.Color{}, fmt.Errorf("palette light color %q: %w", p.Light, err)
	}
	return dark, light, nil
}

func (p Palette) validate() error {
	if p.IsZero() {
		return nil
	}
	_, _, err := p.colors()
	return err
}

// Colorize maps each brightness, clamped to [0, 1], onto the palette.
func (f *Frame) Colorize(p Palette) (*image.RGBA, error) {
	dark, light, err := p.colors()
	if err != nil {
		return nil, err
	}
	img := image.NewRGBA(image.Rect(0, 0, f.Width, f.Height))
	for y := range f.Height {
		for x := range f.Width {
			t := float64(ms1.Clamp(f.At(x, y), 0, 1))
			img.Set(x, y, dark.BlendLab(light, t).Clamped())
		}
	}
	return img, nil
}

// Image returns the colorized frame, or the grayscale one for a zero
// palette.
func (f *Frame) Image(p Palette) (image.Image, error) {
	if p.IsZero() {
		return f.Gray(), nil
	}
	return f.Colorize(p)
}
