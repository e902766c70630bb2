// Package pal implements the 256-color palette files that give SHP
// pixel indices their displayed colors, and a catalog for palettes
// shipped alongside game data.
//
// A .pal file is exactly 768 bytes: 256 RGB triples, no header. The
// palette is never mutated by the sprite codec; many sprites may share
// one palette.
package pal

import (
	"image/color"
	"io"

	"github.com/pkg/errors"
)

// Size is the byte size of a raw .pal file.
const Size = 256 * 3

// Palette is an ordered set of 256 opaque RGB colors.
type Palette struct {
	Colors [256]color.RGBA
}

// Grayscale returns the fallback palette used when no .pal file is
// loaded: entry i is (i,i,i).
func Grayscale() *Palette {
	p := &Palette{}
	for i := range p.Colors {
		v := uint8(i)
		p.Colors[i] = color.RGBA{R: v, G: v, B: v, A: 0xFF}
	}
	return p
}

// ReadFrom reads a raw 768-byte palette.
func ReadFrom(r io.Reader) (*Palette, error) {
	var buf [Size]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return nil, errors.Wrap(err, "pal: reading 768 palette bytes")
	}
	return FromBytes(buf[:])
}

// FromBytes builds a palette from at least 768 bytes of RGB triples.
func FromBytes(b []byte) (*Palette, error) {
	if len(b) < Size {
		return nil, errors.Errorf("pal: got %d bytes, want %d", len(b), Size)
	}
	p := &Palette{}
	for i := range p.Colors {
		p.Colors[i] = color.RGBA{R: b[i*3], G: b[i*3+1], B: b[i*3+2], A: 0xFF}
	}
	return p, nil
}

// WriteTo writes the palette in raw .pal layout.
func (p *Palette) WriteTo(w io.Writer) (int64, error) {
	buf := make([]byte, 0, Size)
	for _, c := range p.Colors {
		buf = append(buf, c.R, c.G, c.B)
	}
	n, err := w.Write(buf)
	return int64(n), err
}

// ColorPalette converts to an image/color palette. When transparentZero
// is set, entry 0 becomes fully transparent, matching how index 0 is
// rendered and exported.
func (p *Palette) ColorPalette(transparentZero bool) color.Palette {
	cp := make(color.Palette, 256)
	for i, c := range p.Colors {
		cp[i] = c
	}
	if transparentZero {
		cp[0] = color.RGBA{}
	}
	return cp
}
