package shp

import (
	"bytes"
	"testing"

	"badc0de.net/pkg/go-shp/ttesting"
)

func TestEncodeEmptySprite(t *testing.T) {
	s := &Sprite{Width: 4, Height: 4}
	if err := s.EncodeAll(&bytes.Buffer{}); err != ErrEmptySprite {
		t.Errorf("EncodeAll = %v; want %v", err, ErrEmptySprite)
	}
}

func TestRoundTrip(t *testing.T) {
	s := New(4, 3, 3)
	// Frame 1 stays all-background on purpose.
	s.Frames[0].Pixels[0] = 1
	s.Frames[0].Pixels[5] = 200
	s.Frames[2].Pixels[11] = 7

	var buf bytes.Buffer
	if err := s.EncodeAll(&buf); err != nil {
		t.Fatalf("EncodeAll: %v", err)
	}

	// Two non-empty frames follow the headers; the empty one emits no
	// data block at all.
	ttesting.AssertEqualInt(t, "encoded size", buf.Len(), 8+3*24+2*12)

	got, err := DecodeBytes(buf.Bytes())
	if err != nil {
		t.Fatalf("DecodeBytes: %v", err)
	}
	if got.Width != s.Width || got.Height != s.Height || len(got.Frames) != len(s.Frames) {
		t.Fatalf("round trip shape = %dx%d, %d frames; want %dx%d, %d frames",
			got.Width, got.Height, len(got.Frames), s.Width, s.Height, len(s.Frames))
	}
	for i := range s.Frames {
		if !bytes.Equal(got.Frames[i].Pixels, s.Frames[i].Pixels) {
			t.Errorf("frame %d = %v; want %v", i, got.Frames[i].Pixels, s.Frames[i].Pixels)
		}
	}
}

func TestEncodeEmptyFrameOffset(t *testing.T) {
	s := New(2, 2, 2)
	s.Frames[1].Pixels[3] = 9

	var buf bytes.Buffer
	if err := s.EncodeAll(&buf); err != nil {
		t.Fatalf("EncodeAll: %v", err)
	}
	b := buf.Bytes()

	// The data offset lives in the last 4 bytes of each 24-byte frame
	// header. Frame 0 is all background so its offset must be written
	// as zero.
	off0 := b[8+20 : 8+24]
	if !bytes.Equal(off0, []byte{0, 0, 0, 0}) {
		t.Errorf("empty frame offset bytes = %v; want zeros", off0)
	}
	off1 := b[8+24+20 : 8+24+24]
	if want := byte(8 + 2*24); off1[0] != want || off1[1] != 0 || off1[2] != 0 || off1[3] != 0 {
		t.Errorf("frame 1 offset bytes = %v; want [%d 0 0 0]", off1, want)
	}
}
