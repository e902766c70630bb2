// Package shp implements a reader and writer for the SHP sprite format
// used by late-90s real-time-strategy game assets, together with the
// in-memory Sprite model that the raster and history packages mutate.
//
// The on-disk format is an 8-byte header (a zero marker word, canvas
// width, canvas height and frame count, all little-endian uint16),
// followed by one 24-byte header per frame, followed by the frame data
// blocks addressed by per-frame offsets. Frame data comes in three
// mutually exclusive row encodings selected by the low bits of the frame
// flags; the writer only ever emits the uncompressed one.
package shp
