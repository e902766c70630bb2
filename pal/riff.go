package pal

// Microsoft RIFF palettes ("PAL " form with a LOGPALETTE data chunk)
// are a common interchange wrapper around the same 256 colors. Only
// reading is supported; saving always produces the raw 768-byte form.

import (
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
	"golang.org/x/image/riff"
)

var (
	palType  = riff.FourCC{'P', 'A', 'L', ' '}
	dataType = riff.FourCC{'d', 'a', 't', 'a'}
)

// ReadRIFF reads the first palette data chunk of a RIFF PAL file.
// Entries beyond 255 are ignored; missing entries stay black.
func ReadRIFF(r io.Reader) (*Palette, error) {
	formType, rd, err := riff.NewReader(r)
	if err != nil {
		return nil, errors.Wrap(err, "pal: opening RIFF stream")
	}
	if formType != palType {
		return nil, errors.Errorf("pal: unsupported RIFF form type %q", formType[:])
	}

	for {
		id, _, data, err := rd.Next()
		if err == io.EOF {
			return nil, errors.New("pal: RIFF file has no data chunk")
		}
		if err != nil {
			return nil, errors.Wrap(err, "pal: reading RIFF chunk")
		}
		if id != dataType {
			continue
		}
		return readLogPalette(data)
	}
}

func readLogPalette(r io.Reader) (*Palette, error) {
	var head [4]byte
	if _, err := io.ReadFull(r, head[:]); err != nil {
		return nil, errors.Wrap(err, "pal: reading LOGPALETTE header")
	}
	// palVersion is always 0x0300, stored low byte first.
	if ver := binary.BigEndian.Uint16(head[0:2]); ver != 3 {
		return nil, errors.Errorf("pal: unsupported palette version %d", ver)
	}
	count := int(binary.LittleEndian.Uint16(head[2:4]))

	p := &Palette{}
	for i := range p.Colors {
		p.Colors[i].A = 0xFF
	}
	var entry [4]byte // peRed, peGreen, peBlue, peFlags
	for i := 0; i < count; i++ {
		if _, err := io.ReadFull(r, entry[:]); err != nil {
			return nil, errors.Wrapf(err, "pal: reading entry %d of %d", i, count)
		}
		if i > 255 {
			continue
		}
		p.Colors[i].R = entry[0]
		p.Colors[i].G = entry[1]
		p.Colors[i].B = entry[2]
	}
	return p, nil
}
