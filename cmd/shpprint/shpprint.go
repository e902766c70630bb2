// Command shpprint prints frames of a .shp sprite on the terminal.
//
// Usage:
//
//	shpprint --shp_path=explosion.shp --pal_path=unittem.pal --frame=2
//
// Without --pal_path a grayscale palette is used. With --all, every
// frame is printed in order.
package main

import (
	"flag"
	"image"
	"os"

	"badc0de.net/pkg/flagutil/v1"

	"badc0de.net/pkg/go-shp/imageprint"
	"badc0de.net/pkg/go-shp/pal"
	"badc0de.net/pkg/go-shp/paths"
	"badc0de.net/pkg/go-shp/render"
	"badc0de.net/pkg/go-shp/shp"

	"github.com/golang/glog"
)

var (
	frame      = flag.Int("frame", 0, "frame to print")
	all        = flag.Bool("all", false, "whether to print every frame in order")
	col256     = flag.Bool("col256", false, "whether to use 256 col instead of 24 bit")
	rasTerm    = flag.Bool("rasterm", false, "whether to print with an inline-image escape code (kitty, iterm2, sixel) instead of colored cells")
	noColor    = flag.Bool("nocolor", false, "whether to print plain ascii art without color escape sequences")
	blanks     = flag.Bool("blanks", true, "whether to just use colored blanks instead of some bad ascii art")
	brightness = flag.Float64("brightness", 1.0, "brightness multiplier for the rendered frame")

	shpPath string
	palPath string
)

func setupFilePathFlags() {
	flag.StringVar(&shpPath, "shp_path", "", "Path to the .shp sprite to print")
	paths.SetupFilePathFlag("unittem.pal", "pal_path", &palPath)
}

func spriteOpen() (*shp.Sprite, error) {
	f, err := os.Open(shpPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return shp.DecodeAll(f)
}

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

func out(img image.Image) {
	switch {
	case *rasTerm:
		imageprint.PrintRasTerm(img)
	case *noColor:
		imageprint.PrintNoColor(img, false)
	case *col256:
		imageprint.Print256Color(img, *blanks)
	default:
		imageprint.Print24bit(img, *blanks)
	}
}

func main() {
	setupFilePathFlags()
	flagutil.Parse()
	flag.Set("logtostderr", "true")

	if shpPath == "" && flag.NArg() > 0 {
		shpPath = flag.Arg(0)
	}
	if shpPath == "" {
		glog.Exitf("no sprite given; pass --shp_path or a positional argument")
	}

	s, err := spriteOpen()
	if err != nil {
		glog.Exitf("loading sprite %q: %v", shpPath, err)
	}
	p := paletteOpen()

	if *all {
		for i := range s.Frames {
			out(render.Frame(s, p, i, *brightness))
		}
		return
	}
	out(render.Frame(s, p, *frame, *brightness))
}
