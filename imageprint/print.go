// Package imageprint prints rendered sprite frames on the terminal.
// UNSUPPORTED debug package.
//
// This package has an API with no stability guarantees.
package imageprint

import (
	"fmt"
	"image"
	ic "image/color"
	"os"

	"github.com/BourgeoisBear/rasterm"
	"github.com/andybons/gogif"
	"github.com/gookit/color"
)

type dumper interface {
	Printf(s string, arg ...interface{})
}
type fmtDumperT struct{}

func (fmtDumperT) Printf(s string, arg ...interface{}) {
	fmt.Printf(s, arg...)
}

var fmtDumper fmtDumperT

// cell prints one pixel as a two-column cell. Transparent pixels (the
// background index renders with alpha 0) come out as a gray
// checkerboard so holes in a sprite are distinguishable from black.
func cell(col ic.Color, x, y int, escapesTrueColor, blanks, noColor bool) {
	cR, cG, cB, cA := col.RGBA()
	if cA == 0 {
		if noColor {
			fmt.Printf("  ")
			return
		}
		check := uint8(40)
		if (x+y)%2 == 0 {
			check = 56
		}
		if escapesTrueColor {
			fmt.Printf("\x1b[48;2;%d;%d;%dm  \x1b[0m", check, check, check)
		} else {
			color.RGB(check, check, check, true).Printf("  ")
		}
		return
	}

	var d dumper
	if noColor {
		d = &fmtDumper
	} else if escapesTrueColor {
		fmt.Printf("\x1b[48;2;%d;%d;%dm", uint8(cR>>8), uint8(cG>>8), uint8(cB>>8))
		d = &fmtDumper
	} else {
		d = color.RGB(uint8(cR>>8), uint8(cG>>8), uint8(cB>>8), true)
	}
	if blanks {
		d.Printf("  ")
	} else {
		lum := ((cR + cG + cB) / 3) >> 8
		switch {
		case lum < 32:
			d.Printf("..")
		case lum < 64:
			d.Printf("--")
		case lum < 128:
			d.Printf("==")
		default:
			d.Printf("##")
		}
	}
	if escapesTrueColor {
		fmt.Printf("\x1b[0m")
	}
}

// Print256Color draws a frame using 256color'd ascii art.
func Print256Color(i image.Image, blanks bool) {
	printCells(i, blanks, false, false)
}

// Print24bit draws a frame using 24bit color escape sequences by
// changing the background.
func Print24bit(i image.Image, blanks bool) {
	printCells(i, blanks, true, false)
}

// PrintNoColor draws a frame without color escape sequences. Only makes
// sense with blanks=false.
func PrintNoColor(i image.Image, blanks bool) {
	printCells(i, blanks, true, true)
}

func printCells(i image.Image, blanks, escapesTrueColor, noColor bool) {
	for y := i.Bounds().Min.Y; y < i.Bounds().Max.Y; y++ {
		for x := i.Bounds().Min.X; x < i.Bounds().Max.X; x++ {
			cell(i.At(x, y), x, y, escapesTrueColor, blanks, noColor)
		}
		if !noColor {
			fmt.Printf("\x1b[0m")
		}
		fmt.Printf("\n")
	}
}

// PrintRasTerm draws a frame with whatever inline-image protocol the
// terminal speaks: Kitty, iTerm2/WezTerm, or sixel with a quantized
// palette as the fallback.
func PrintRasTerm(i image.Image) {
	if rasterm.IsTermKitty() {
		rasterm.Settings{}.KittyWriteImage(os.Stdout, i)
		fmt.Printf("\n")
		return
	}
	if rasterm.IsTermItermWez() {
		rasterm.Settings{}.ItermWriteImage(os.Stdout, i)
		fmt.Printf("\n")
		return
	}
	if capable, err := rasterm.IsSixelCapable(); capable && err == nil {
		palettedImage := image.NewPaletted(i.Bounds(), nil)
		quantizer := gogif.MedianCutQuantizer{NumColor: 64}
		quantizer.Quantize(palettedImage, i.Bounds(), i, image.ZP)

		rasterm.Settings{}.SixelWriteImage(os.Stdout, palettedImage)
		fmt.Printf("\n")
		return
	}
}
