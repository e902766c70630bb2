// Package imageio decodes still images for import into a sprite frame.
//
// The editor core is agnostic to container formats: whatever this
// package can decode arrives at the raster layer as one true-color
// frame, which then goes through palette quantization. Animated
// containers contribute their first frame only.
package imageio

import (
	"image"
	"io"
	"os"

	// Import decoders for the containers artists actually throw at the
	// editor. Decoding goes through image.Decode's format registry.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/golang/glog"
	"github.com/nfnt/resize"
	"github.com/pkg/errors"
)

// Decode reads a single representative frame from any registered image
// format and returns it with the format name.
func Decode(r io.Reader) (image.Image, string, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, "", errors.Wrap(err, "imageio: decoding image")
	}
	glog.V(2).Infof("imageio: decoded %s image %v", format, img.Bounds().Size())
	return img, format, nil
}

// Open decodes a single representative frame from the file at path.
func Open(path string) (image.Image, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", errors.Wrapf(err, "imageio: opening %s", path)
	}
	defer f.Close()
	return Decode(f)
}

// FitToCanvas scales the image down to fit within width x height,
// keeping its aspect ratio. Images that already fit are returned
// unchanged; imports are never scaled up.
func FitToCanvas(img image.Image, width, height int) image.Image {
	b := img.Bounds()
	if b.Dx() <= width && b.Dy() <= height {
		return img
	}
	return resize.Thumbnail(uint(width), uint(height), img, resize.Lanczos3)
}
