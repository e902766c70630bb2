// Command shpconv converts between .shp sprites and common image
// formats.
//
// The direction is picked from the output name:
//
//	shpconv --in=logo.png --out=logo.shp --width=64 --height=64 --pal_path=unittem.pal
//	shpconv --in=explosion.shp --out=frames/ --pal_path=unittem.pal
//	shpconv --in=explosion.shp --out=explosion.gif --ms=150
//
// A .shp output imports the input image, scaled down to fit the canvas
// and quantized against the palette. A .gif output renders the whole
// animation. Any other output is taken as a directory and one PNG per
// frame is written into it.
package main

import (
	"flag"
	"fmt"
	"image/gif"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"badc0de.net/pkg/flagutil/v1"

	"badc0de.net/pkg/go-shp/imageio"
	"badc0de.net/pkg/go-shp/pal"
	"badc0de.net/pkg/go-shp/paths"
	"badc0de.net/pkg/go-shp/raster"
	"badc0de.net/pkg/go-shp/render"
	"badc0de.net/pkg/go-shp/shp"

	"github.com/golang/glog"
	"golang.org/x/sync/errgroup"
)

var (
	inPath     = flag.String("in", "", "input file (.shp or any supported image)")
	outPath    = flag.String("out", "", "output file or directory")
	width      = flag.Int("width", 64, "canvas width when importing an image")
	height     = flag.Int("height", 64, "canvas height when importing an image")
	msPerFrame = flag.Int("ms", 150, "milliseconds per frame for gif output")
	brightness = flag.Float64("brightness", 1.0, "brightness multiplier for rendered output")

	palPath string
)

func paletteOpen() *pal.Palette {
	if palPath == "" {
		return pal.Grayscale()
	}
	f, err := os.Open(palPath)
	if err != nil {
		glog.Errorf("opening palette %q, falling back to grayscale: %v", palPath, err)
		return pal.Grayscale()
	}
	defer f.Close()
	p, err := pal.ReadFrom(f)
	if err != nil {
		glog.Errorf("reading palette %q, falling back to grayscale: %v", palPath, err)
		return pal.Grayscale()
	}
	return p
}

func importImage(p *pal.Palette) error {
	img, format, err := imageio.Open(*inPath)
	if err != nil {
		return err
	}
	glog.V(1).Infof("decoded %q as %s", *inPath, format)

	img = imageio.FitToCanvas(img, *width, *height)
	s := shp.New(*width, *height, 1)
	raster.PasteCentered(s, 0, img, p)

	f, err := os.Create(*outPath)
	if err != nil {
		return err
	}
	defer f.Close()
	return s.EncodeAll(f)
}

func exportGIF(s *shp.Sprite, p *pal.Palette) error {
	f, err := os.Create(*outPath)
	if err != nil {
		return err
	}
	defer f.Close()
	return gif.EncodeAll(f, render.Animate(s, p, *msPerFrame, *brightness))
}

func exportPNGs(s *shp.Sprite, p *pal.Palette) error {
	if err := os.MkdirAll(*outPath, 0755); err != nil {
		return err
	}

	var g errgroup.Group
	g.SetLimit(8)
	for i := range s.Frames {
		i := i // per-iteration copy: module targets pre-1.22 loopvar semantics here
		g.Go(func() error {
			img := render.Frame(s, p, i, *brightness)
			name := filepath.Join(*outPath, fmt.Sprintf("frame%04d.png", i))
			f, err := os.Create(name)
			if err != nil {
				return err
			}
			if err := png.Encode(f, img); err != nil {
				f.Close()
				return err
			}
			return f.Close()
		})
	}
	return g.Wait()
}

func main() {
	paths.SetupFilePathFlag("unittem.pal", "pal_path", &palPath)
	flagutil.Parse()
	flag.Set("logtostderr", "true")

	if *inPath == "" || *outPath == "" {
		glog.Exitf("both --in and --out are required")
	}
	p := paletteOpen()

	if strings.EqualFold(filepath.Ext(*outPath), ".shp") {
		if err := importImage(p); err != nil {
			glog.Exitf("importing %q: %v", *inPath, err)
		}
		return
	}

	f, err := os.Open(*inPath)
	if err != nil {
		glog.Exitf("opening %q: %v", *inPath, err)
	}
	s, err := shp.DecodeAll(f)
	f.Close()
	if err != nil {
		glog.Exitf("decoding %q: %v", *inPath, err)
	}

	if strings.EqualFold(filepath.Ext(*outPath), ".gif") {
		err = exportGIF(s, p)
	} else {
		err = exportPNGs(s, p)
	}
	if err != nil {
		glog.Exitf("writing %q: %v", *outPath, err)
	}
}
