package shp

// This file contains shp package's functions related to implementing
// the image package's Decode interfaces, modeled after the public
// interface of the image/gif package. Decoding a frame to a displayable
// image with a real palette and brightness control lives in the render
// package; the decoder registered here only knows the format's built-in
// convention of index 0 being transparent, and substitutes a grayscale
// ramp for the missing palette.

import (
	"encoding/binary"
	"image"
	"image/color"
	"io"

	"github.com/pkg/errors"
)

func init() {
	// An SHP file opens with a zero marker word.
	image.RegisterFormat("shp", "\x00\x00", Decode, DecodeConfig)
}

// DecodeConfig returns the canvas size of the sprite without decoding
// any frame data.
func DecodeConfig(r io.Reader) (image.Config, error) {
	var h header
	if err := binary.Read(r, binary.LittleEndian, &h); err != nil {
		return image.Config{}, errors.Wrapf(ErrInvalidDimensions, "reading header: %v", err)
	}
	if h.Zero != 0 {
		return image.Config{}, errors.Wrapf(ErrNotASprite, "marker %#04x", h.Zero)
	}
	if h.Width == 0 || h.Height == 0 || h.FrameCount == 0 {
		return image.Config{}, errors.Wrapf(ErrInvalidDimensions, "%dx%d, %d frames", h.Width, h.Height, h.FrameCount)
	}
	return image.Config{Width: int(h.Width), Height: int(h.Height), ColorModel: color.RGBAModel}, nil
}

// Decode returns the first frame of the sprite as a paletted image with
// a grayscale palette, index 0 fully transparent.
func Decode(r io.Reader) (image.Image, error) {
	s, err := DecodeAll(r)
	if err != nil {
		return nil, err
	}
	return s.Frames[0].Paletted(s.Width, s.Height, GrayscalePalette()), nil
}

// Paletted wraps the frame's pixel buffer in an image.Paletted of the
// given canvas size. The buffer is shared, not copied.
func (f *Frame) Paletted(width, height int, p color.Palette) *image.Paletted {
	return &image.Paletted{
		Pix:     f.Pixels,
		Stride:  width,
		Rect:    image.Rect(0, 0, width, height),
		Palette: p,
	}
}

// GrayscalePalette returns a 256-entry gray ramp with entry 0
// transparent, the stand-in palette for contexts where no .pal file is
// at hand.
func GrayscalePalette() color.Palette {
	p := make(color.Palette, 256)
	p[0] = color.RGBA{}
	for i := 1; i < 256; i++ {
		v := uint8(i)
		p[i] = color.RGBA{R: v, G: v, B: v, A: 0xFF}
	}
	return p
}
