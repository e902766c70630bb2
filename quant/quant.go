// Package quant reduces true-color pixels to indices in a fixed
// 256-color palette.
//
// SHP pixels are 8-bit palette indices, so anything imported from an
// RGBA source has to pass through here. Matching is plain squared
// euclidean distance in RGB; no alpha, no perceptual weighting.
package quant

import (
	"image/color"

	"badc0de.net/pkg/go-shp/pal"
)

func dist2(a, b color.RGBA) uint32 {
	dr := int32(a.R) - int32(b.R)
	dg := int32(a.G) - int32(b.G)
	db := int32(a.B) - int32(b.B)
	return uint32(dr*dr + dg*dg + db*db)
}

// BestIndex returns the palette index closest to the given color.
//
// Indices are scanned in ascending order and the first index reaching
// the minimum wins, so ties resolve to the lowest index and identical
// inputs always map to the same output. An exact match ends the scan
// early.
func BestIndex(c color.RGBA, p *pal.Palette) uint8 {
	best := uint8(0)
	bestD := uint32(1<<32 - 1)
	for i := 0; i < 256; i++ {
		d := dist2(c, p.Colors[i])
		if d < bestD {
			bestD = d
			best = uint8(i)
			if d == 0 {
				break
			}
		}
	}
	return best
}
