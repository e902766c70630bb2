// Package render turns palette-indexed frames into displayable RGBA
// images and animations. It only reads the sprite and palette; all
// mutation stays in the raster and session packages.
package render

import (
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"math"

	"github.com/ericpauley/go-quantize/quantize"

	"badc0de.net/pkg/go-shp/pal"
	"badc0de.net/pkg/go-shp/shp"
)

// MaxPixels is the canvas size ceiling. A sprite above it renders as a
// fixed 1x1 placeholder instead of attempting the allocation; at RGBA
// that bound is already around a quarter gigabyte per frame.
const MaxPixels = 64_000_000

// Brightness is clamped into this range before scaling.
const (
	MinBrightness = 0.2
	MaxBrightness = 3.0
)

// Frame renders one frame as RGBA. Each channel is scaled by the
// clamped brightness; alpha is 0 wherever the pixel holds the
// background index and 255 everywhere else, whatever the brightness. A
// frame index out of range falls back to frame 0.
func Frame(s *shp.Sprite, p *pal.Palette, frame int, brightness float64) *image.RGBA {
	if px := int64(s.Width) * int64(s.Height); px == 0 || px > MaxPixels {
		return placeholder()
	}
	if frame < 0 || frame >= len(s.Frames) {
		if len(s.Frames) == 0 {
			return placeholder()
		}
		frame = 0
	}

	b := math.Min(math.Max(brightness, MinBrightness), MaxBrightness)
	img := image.NewRGBA(image.Rect(0, 0, s.Width, s.Height))
	src := s.Frames[frame].Pixels
	for i, idx := range src {
		c := p.Colors[idx]
		o := i * 4
		img.Pix[o+0] = scale(c.R, b)
		img.Pix[o+1] = scale(c.G, b)
		img.Pix[o+2] = scale(c.B, b)
		if idx == 0 {
			img.Pix[o+3] = 0
		} else {
			img.Pix[o+3] = 255
		}
	}
	return img
}

func scale(v uint8, brightness float64) uint8 {
	s := math.Round(float64(v) * brightness)
	if s > 255 {
		return 255
	}
	return uint8(s)
}

func placeholder() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.SetRGBA(0, 0, color.RGBA{A: 255})
	return img
}

// Animate renders every frame and assembles an animated GIF. The
// brightness-scaled RGBA frames no longer match the source palette, so
// each frame is re-quantized to its own 255-color palette with a
// transparent entry prepended as index 0; background pixels then come
// out transparent with DisposalBackground between frames.
func Animate(s *shp.Sprite, p *pal.Palette, msPerFrame int, brightness float64) *gif.GIF {
	g := &gif.GIF{}
	if msPerFrame <= 0 {
		msPerFrame = 150
	}

	q := quantize.MedianCutQuantizer{}
	for i := range s.Frames {
		img := Frame(s, p, i, brightness)

		qp := q.Quantize(make(color.Palette, 0, 255), img)
		framePal := append(color.Palette{color.Transparent}, qp...)

		out := image.NewPaletted(img.Bounds(), framePal)
		draw.Draw(out, img.Bounds(), img, image.Point{}, draw.Over)

		g.Image = append(g.Image, out)
		g.Delay = append(g.Delay, msPerFrame/10) // gif delays are centiseconds
		g.Disposal = append(g.Disposal, gif.DisposalBackground)
	}
	g.BackgroundIndex = 0
	return g
}
