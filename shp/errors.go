package shp

import "errors"

// Decode and encode failures form a closed set. Callers are expected to
// match with errors.Is; decode helpers attach positional context on top
// of these with pkg/errors wrapping.
var (
	// ErrNotASprite is returned when the leading marker word is not zero.
	ErrNotASprite = errors.New("shp: leading marker word is not zero")

	// ErrInvalidDimensions is returned when the header declares a zero
	// width, height or frame count, or is itself too short to read.
	ErrInvalidDimensions = errors.New("shp: invalid dimensions or frame count")

	// ErrTruncated is returned when the file ends in the middle of a
	// frame header or a frame's row data.
	ErrTruncated = errors.New("shp: truncated file")

	// ErrOffsetOutOfRange is returned when a frame header points past
	// the end of the file.
	ErrOffsetOutOfRange = errors.New("shp: frame data offset out of range")

	// ErrEmptySprite is returned by the encoder for a sprite with no
	// frames.
	ErrEmptySprite = errors.New("shp: sprite has no frames")
)
