package shp

// This file contains the shp writer. The writer always emits the
// uncompressed row encoding, whatever encoding the frames were read
// from; the decoder accepts all three, so files round-trip.

import (
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
)

const (
	headerSize      = 8
	frameHeaderSize = 24
)

// EncodeAll serializes the sprite to the passed writer.
//
// Frames whose every pixel is the background index are written with a
// zero data offset and no data block, mirroring the decoder's
// convention for empty frames. All other frames are written as a full
// uncompressed canvas at origin (0,0).
func (s *Sprite) EncodeAll(w io.Writer) error {
	if len(s.Frames) == 0 {
		return ErrEmptySprite
	}

	n := len(s.Frames)
	frameSize := s.Width * s.Height

	offsets := make([]uint32, n)
	cursor := uint32(headerSize + frameHeaderSize*n)
	for i := range s.Frames {
		if s.Frames[i].Empty() {
			continue
		}
		offsets[i] = cursor
		cursor += uint32(frameSize)
	}

	h := header{
		Width:      uint16(s.Width),
		Height:     uint16(s.Height),
		FrameCount: uint16(n),
	}
	if err := binary.Write(w, binary.LittleEndian, &h); err != nil {
		return errors.Wrap(err, "writing shp header")
	}

	for i := range s.Frames {
		fh := frameHeader{
			W:          uint16(s.Width),
			H:          uint16(s.Height),
			DataOffset: offsets[i],
		}
		if err := binary.Write(w, binary.LittleEndian, &fh); err != nil {
			return errors.Wrapf(err, "writing frame header %d", i)
		}
	}

	for i := range s.Frames {
		if offsets[i] == 0 {
			continue
		}
		if _, err := w.Write(s.Frames[i].Pixels); err != nil {
			return errors.Wrapf(err, "writing frame data %d", i)
		}
	}
	return nil
}
