// Package raster implements the pixel-level drawing operations of the
// sprite editor: single pixels, lines, rectangles, circles, brush
// stamps, flood fill and quantized true-color paste.
//
// Every operation takes the sprite plus a frame index and silently does
// nothing for coordinates outside the canvas or a frame index outside
// the sprite. Callers are expected to clamp their input; the checks
// here only make sure that edge rounding can never scribble over a
// neighboring frame's memory.
package raster

import (
	"image"
	"image/color"
	"math"

	"badc0de.net/pkg/go-shp/pal"
	"badc0de.net/pkg/go-shp/quant"
	"badc0de.net/pkg/go-shp/shp"
)

// SetPixel writes one palette index, dropping out-of-range writes.
func SetPixel(s *shp.Sprite, fi, x, y int, c byte) {
	if fi < 0 || fi >= len(s.Frames) {
		return
	}
	if x < 0 || y < 0 || x >= s.Width || y >= s.Height {
		return
	}
	s.Frames[fi].Pixels[y*s.Width+x] = c
}

// GetPixel reads one palette index; out-of-range reads return the
// background index.
func GetPixel(s *shp.Sprite, fi, x, y int) byte {
	if fi < 0 || fi >= len(s.Frames) {
		return 0
	}
	if x < 0 || y < 0 || x >= s.Width || y >= s.Height {
		return 0
	}
	return s.Frames[fi].Pixels[y*s.Width+x]
}

// DrawLine draws an integer Bresenham line. Both endpoints are always
// painted; a zero-length line paints a single pixel.
func DrawLine(s *shp.Sprite, fi, x0, y0, x1, y1 int, c byte) {
	dx := abs(x1 - x0)
	sx := 1
	if x0 >= x1 {
		sx = -1
	}
	dy := -abs(y1 - y0)
	sy := 1
	if y0 >= y1 {
		sy = -1
	}
	err := dx + dy
	for {
		SetPixel(s, fi, x0, y0, c)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// DrawRect outlines the rectangle spanned by the two corners, in either
// order.
func DrawRect(s *shp.Sprite, fi, x0, y0, x1, y1 int, c byte) {
	lx, rx := minMax(x0, x1)
	ty, by := minMax(y0, y1)
	DrawLine(s, fi, lx, ty, rx, ty, c)
	DrawLine(s, fi, lx, by, rx, by, c)
	DrawLine(s, fi, lx, ty, lx, by, c)
	DrawLine(s, fi, rx, ty, rx, by, c)
}

// FillRect fills the rectangle spanned by the two corners inclusively,
// in either order.
func FillRect(s *shp.Sprite, fi, x0, y0, x1, y1 int, c byte) {
	lx, rx := minMax(x0, x1)
	ty, by := minMax(y0, y1)
	for y := ty; y <= by; y++ {
		for x := lx; x <= rx; x++ {
			SetPixel(s, fi, x, y, c)
		}
	}
}

// DrawCircle outlines a circle with the midpoint algorithm, painting
// the 8-way symmetric points. A non-positive radius is a no-op.
func DrawCircle(s *shp.Sprite, fi, cx, cy, radius int, c byte) {
	if radius <= 0 {
		return
	}
	x, y := radius, 0
	err := 1 - x
	for x >= y {
		SetPixel(s, fi, cx+x, cy+y, c)
		SetPixel(s, fi, cx+y, cy+x, c)
		SetPixel(s, fi, cx-y, cy+x, c)
		SetPixel(s, fi, cx-x, cy+y, c)
		SetPixel(s, fi, cx-x, cy-y, c)
		SetPixel(s, fi, cx-y, cy-x, c)
		SetPixel(s, fi, cx+y, cy-x, c)
		SetPixel(s, fi, cx+x, cy-y, c)
		y++
		if err < 0 {
			err += 2*y + 1
		} else {
			x--
			err += 2*(y-x) + 1
		}
	}
}

// FillCircle fills a disc scanline by scanline, computing the row span
// from dx*dx+dy*dy <= r*r with one square root per row. A non-positive
// radius is a no-op.
func FillCircle(s *shp.Sprite, fi, cx, cy, radius int, c byte) {
	if radius <= 0 {
		return
	}
	r2 := int64(radius) * int64(radius)
	for y := cy - radius; y <= cy+radius; y++ {
		dy := int64(y - cy)
		xr2 := r2 - dy*dy
		if xr2 < 0 {
			continue
		}
		dx := int(math.Sqrt(float64(xr2)))
		for x := cx - dx; x <= cx+dx; x++ {
			SetPixel(s, fi, x, y, c)
		}
	}
}

// StampDisc paints one dab of a round brush of the given diameter.
// Diameter 1 or less paints a single pixel; bigger brushes fill a disc
// of radius (diameter-1)/2, at least 1, which matches how common pixel
// art tools size their brushes.
func StampDisc(s *shp.Sprite, fi, cx, cy, diameter int, c byte) {
	if diameter <= 1 {
		SetPixel(s, fi, cx, cy, c)
		return
	}
	radius := (diameter - 1) / 2
	if radius < 1 {
		radius = 1
	}
	FillCircle(s, fi, cx, cy, radius, c)
}

// FloodFill repaints the 4-connected region of the seed's color with
// newColor. Filling a region with the color it already has is a no-op,
// which also keeps the traversal from revisiting cells forever.
//
// The traversal is iterative over an explicit stack; its depth depends
// on the region shape, never on the call stack.
func FloodFill(s *shp.Sprite, fi, x, y int, newColor byte) {
	if fi < 0 || fi >= len(s.Frames) {
		return
	}
	if x < 0 || y < 0 || x >= s.Width || y >= s.Height {
		return
	}
	target := GetPixel(s, fi, x, y)
	if target == newColor {
		return
	}

	type point struct{ x, y int }
	stack := []point{{x, y}}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if p.x < 0 || p.y < 0 || p.x >= s.Width || p.y >= s.Height {
			continue
		}
		if GetPixel(s, fi, p.x, p.y) != target {
			continue
		}
		SetPixel(s, fi, p.x, p.y, newColor)
		stack = append(stack,
			point{p.x - 1, p.y}, point{p.x + 1, p.y},
			point{p.x, p.y - 1}, point{p.x, p.y + 1})
	}
}

// PasteAlphaThreshold is the minimum 8-bit alpha an imported pixel
// needs before it is quantized and written; anything below is treated
// as fully transparent. There is no blending.
const PasteAlphaThreshold = 8

// PasteQuantized stamps a decoded true-color image onto the frame at
// (destX, destY), mapping each sufficiently opaque pixel to its nearest
// palette index. Destination coordinates outside the canvas are
// dropped; source pixels under the alpha threshold leave the
// destination untouched.
func PasteQuantized(s *shp.Sprite, fi int, src image.Image, destX, destY int, p *pal.Palette) {
	if fi < 0 || fi >= len(s.Frames) {
		return
	}
	b := src.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, a := src.At(x, y).RGBA()
			if uint8(a>>8) < PasteAlphaThreshold {
				continue
			}
			idx := quant.BestIndex(color.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(bl >> 8)}, p)
			SetPixel(s, fi, destX+x-b.Min.X, destY+y-b.Min.Y, idx)
		}
	}
}

// PasteCentered pastes the image centered on the canvas, the default
// placement when importing a frame.
func PasteCentered(s *shp.Sprite, fi int, src image.Image, p *pal.Palette) {
	b := src.Bounds()
	PasteQuantized(s, fi, src, (s.Width-b.Dx())/2, (s.Height-b.Dy())/2, p)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func minMax(a, b int) (int, int) {
	if a <= b {
		return a, b
	}
	return b, a
}
