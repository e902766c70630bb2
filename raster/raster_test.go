package raster

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"badc0de.net/pkg/go-shp/pal"
	"badc0de.net/pkg/go-shp/shp"
	"badc0de.net/pkg/go-shp/ttesting"
)

func TestSetPixelBoundsClamp(t *testing.T) {
	s := shp.New(4, 3, 1)
	before := s.Frames[0].Clone()

	SetPixel(s, 0, -1, 0, 9)
	SetPixel(s, 0, 4, 0, 9)
	SetPixel(s, 0, 0, -1, 9)
	SetPixel(s, 0, 0, 3, 9)
	SetPixel(s, 1, 0, 0, 9) // frame index out of range
	SetPixel(s, -1, 0, 0, 9)

	if !bytes.Equal(s.Frames[0].Pixels, before) {
		t.Errorf("buffer changed by out-of-range writes: %v", s.Frames[0].Pixels)
	}
}

func TestGetPixelOutOfRange(t *testing.T) {
	s := shp.New(2, 2, 1)
	s.Frames[0].Pixels[0] = 5
	if got := GetPixel(s, 0, 0, 0); got != 5 {
		t.Errorf("GetPixel(0,0) = %d; want 5", got)
	}
	for _, p := range [][2]int{{-1, 0}, {2, 0}, {0, -1}, {0, 2}} {
		if got := GetPixel(s, 0, p[0], p[1]); got != 0 {
			t.Errorf("GetPixel(%d,%d) = %d; want 0", p[0], p[1], got)
		}
	}
}

func TestDrawLineEndpoints(t *testing.T) {
	s := shp.New(5, 5, 1)
	DrawLine(s, 0, 0, 0, 4, 4, 7)
	if GetPixel(s, 0, 0, 0) != 7 || GetPixel(s, 0, 4, 4) != 7 {
		t.Error("line endpoints not painted")
	}
	// Diagonal passes through the middle.
	if GetPixel(s, 0, 2, 2) != 7 {
		t.Error("diagonal line missed (2,2)")
	}
}

func TestDrawLineDegenerate(t *testing.T) {
	s := shp.New(3, 3, 1)
	DrawLine(s, 0, 1, 1, 1, 1, 3)
	want := shp.New(3, 3, 1)
	SetPixel(want, 0, 1, 1, 3)
	if !bytes.Equal(s.Frames[0].Pixels, want.Frames[0].Pixels) {
		t.Errorf("single-point line = %v", s.Frames[0].Pixels)
	}
}

func TestFillRectNormalizesCorners(t *testing.T) {
	a := shp.New(4, 4, 1)
	b := shp.New(4, 4, 1)
	FillRect(a, 0, 1, 1, 2, 3, 5)
	FillRect(b, 0, 2, 3, 1, 1, 5) // corners reversed
	if !bytes.Equal(a.Frames[0].Pixels, b.Frames[0].Pixels) {
		t.Error("reversed corners filled a different rect")
	}
	if GetPixel(a, 0, 2, 3) != 5 || GetPixel(a, 0, 1, 1) != 5 {
		t.Error("inclusive bounds not filled")
	}
	if GetPixel(a, 0, 3, 3) != 0 || GetPixel(a, 0, 0, 0) != 0 {
		t.Error("fill leaked outside the rect")
	}
}

func TestDrawRectBorderOnly(t *testing.T) {
	s := shp.New(5, 5, 1)
	DrawRect(s, 0, 0, 0, 4, 4, 2)
	if GetPixel(s, 0, 2, 2) != 0 {
		t.Error("DrawRect painted the interior")
	}
	for _, p := range [][2]int{{0, 0}, {4, 0}, {0, 4}, {4, 4}, {2, 0}, {0, 2}, {4, 2}, {2, 4}} {
		if GetPixel(s, 0, p[0], p[1]) != 2 {
			t.Errorf("border pixel (%d,%d) not painted", p[0], p[1])
		}
	}
}

func TestCircleNonPositiveRadius(t *testing.T) {
	s := shp.New(4, 4, 1)
	DrawCircle(s, 0, 2, 2, 0, 9)
	FillCircle(s, 0, 2, 2, -1, 9)
	if !s.Frames[0].Empty() {
		t.Errorf("radius <= 0 painted pixels: %v", s.Frames[0].Pixels)
	}
}

func TestDrawCircleSymmetry(t *testing.T) {
	s := shp.New(9, 9, 1)
	DrawCircle(s, 0, 4, 4, 3, 1)
	for _, p := range [][2]int{{7, 4}, {1, 4}, {4, 7}, {4, 1}} {
		if GetPixel(s, 0, p[0], p[1]) != 1 {
			t.Errorf("cardinal point (%d,%d) missing", p[0], p[1])
		}
	}
	if GetPixel(s, 0, 4, 4) != 0 {
		t.Error("outline painted the center")
	}
}

func TestFillCircleContainsDiamond(t *testing.T) {
	s := shp.New(9, 9, 1)
	FillCircle(s, 0, 4, 4, 3, 1)
	if GetPixel(s, 0, 4, 4) != 1 || GetPixel(s, 0, 6, 4) != 1 || GetPixel(s, 0, 4, 2) != 1 {
		t.Error("disc interior not filled")
	}
	if GetPixel(s, 0, 0, 0) != 0 {
		t.Error("disc filled outside its bounding circle")
	}
}

func TestStampDisc(t *testing.T) {
	s := shp.New(5, 5, 1)
	StampDisc(s, 0, 2, 2, 1, 4)
	if GetPixel(s, 0, 2, 2) != 4 {
		t.Error("diameter-1 stamp did not paint the center")
	}
	var painted int
	for _, p := range s.Frames[0].Pixels {
		if p != 0 {
			painted++
		}
	}
	if painted != 1 {
		t.Errorf("diameter-1 stamp painted %d pixels; want 1", painted)
	}

	StampDisc(s, 0, 2, 2, 3, 4)
	if GetPixel(s, 0, 3, 2) != 4 || GetPixel(s, 0, 2, 1) != 4 {
		t.Error("diameter-3 stamp did not cover radius 1")
	}
}

func TestFloodFill(t *testing.T) {
	s := shp.New(4, 4, 1)
	// A vertical wall splitting the canvas.
	FillRect(s, 0, 2, 0, 2, 3, 9)

	FloodFill(s, 0, 0, 0, 5)
	for y := 0; y < 4; y++ {
		for x := 0; x < 2; x++ {
			if GetPixel(s, 0, x, y) != 5 {
				t.Errorf("left region (%d,%d) = %d; want 5", x, y, GetPixel(s, 0, x, y))
			}
		}
		if GetPixel(s, 0, 3, y) != 0 {
			t.Errorf("fill crossed the wall at (3,%d)", y)
		}
	}
}

func TestFloodFillIdempotent(t *testing.T) {
	s := shp.New(4, 4, 1)
	FloodFill(s, 0, 1, 1, 6)
	after := s.Frames[0].Clone()
	FloodFill(s, 0, 1, 1, 6)
	if !bytes.Equal(s.Frames[0].Pixels, after) {
		t.Error("second fill with the same color changed pixels")
	}
}

func TestFloodFillOutsideSeed(t *testing.T) {
	s := shp.New(4, 4, 1)
	FloodFill(s, 0, -1, 0, 6)
	FloodFill(s, 0, 0, 99, 6)
	if !s.Frames[0].Empty() {
		t.Error("out-of-canvas seed painted pixels")
	}
}

func TestPasteQuantized(t *testing.T) {
	s := shp.New(4, 4, 1)
	p := pal.Grayscale()

	src := image.NewRGBA(image.Rect(0, 0, 2, 2))
	src.SetRGBA(0, 0, color.RGBA{R: 200, G: 200, B: 200, A: 255})
	src.SetRGBA(1, 0, color.RGBA{R: 50, G: 50, B: 50, A: 255})
	src.SetRGBA(0, 1, color.RGBA{R: 120, G: 120, B: 120, A: 4}) // under threshold
	src.SetRGBA(1, 1, color.RGBA{R: 10, G: 10, B: 10, A: 255})

	PasteQuantized(s, 0, src, 1, 1, p)

	ttesting.AssertEqualUint8(t, "pasted (1,1)", GetPixel(s, 0, 1, 1), 200)
	ttesting.AssertEqualUint8(t, "pasted (2,1)", GetPixel(s, 0, 2, 1), 50)
	ttesting.AssertEqualUint8(t, "transparent source pixel left destination alone", GetPixel(s, 0, 1, 2), 0)
	ttesting.AssertEqualUint8(t, "pasted (2,2)", GetPixel(s, 0, 2, 2), 10)
}

func TestPasteQuantizedClipsAtEdge(t *testing.T) {
	s := shp.New(2, 2, 1)
	p := pal.Grayscale()
	src := image.NewRGBA(image.Rect(0, 0, 3, 3))
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			src.SetRGBA(x, y, color.RGBA{R: 77, G: 77, B: 77, A: 255})
		}
	}
	PasteQuantized(s, 0, src, 1, 1, p)
	ttesting.AssertEqualBytes(t, "clipped paste", s.Frames[0].Pixels, []byte{
		0, 0,
		0, 77,
	})
}

func TestPasteCentered(t *testing.T) {
	s := shp.New(4, 4, 1)
	p := pal.Grayscale()
	src := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			src.SetRGBA(x, y, color.RGBA{R: 33, G: 33, B: 33, A: 255})
		}
	}
	PasteCentered(s, 0, src, p)
	ttesting.AssertEqualBytes(t, "centered 2x2 on 4x4", s.Frames[0].Pixels, []byte{
		0, 0, 0, 0,
		0, 33, 33, 0,
		0, 33, 33, 0,
		0, 0, 0, 0,
	})
}
