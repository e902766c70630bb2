// Command shpweb serves a .shp sprite over HTTP for inspection in a
// browser: an index page with thumbnails of every frame, individual
// frames as PNG and the full animation as GIF.
//
// Usage:
//
//	shpweb --shp_path=explosion.shp --pal_path=unittem.pal --listen_address=:8080
package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"runtime"

	"badc0de.net/pkg/flagutil/v1"

	"badc0de.net/pkg/go-shp/pal"
	"badc0de.net/pkg/go-shp/paths"
	"badc0de.net/pkg/go-shp/shp"
	"badc0de.net/pkg/go-shp/web"

	"github.com/common-nighthawk/go-figure"
	"github.com/golang/glog"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	_ "golang.org/x/net/trace"
)

var (
	listenAddress  = flag.String("listen_address", ":8080", "http listen address for shpweb")
	debugWebServer = flag.String("debug_web_server_listen_address", "", "where the debug server will listen")

	shpPath string
	palPath string
)

func setupFilePathFlags() {
	flag.StringVar(&shpPath, "shp_path", "", "Path to the .shp sprite to serve")
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

func main() {
	setupFilePathFlags()
	flagutil.Parse()

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

	figure.NewFigure("shpweb", "", true).Print()
	glog.Infof("serving %q (%dx%d, %d frames) on %s", shpPath, s.Width, s.Height, len(s.Frames), *listenAddress)

	if *debugWebServer != "" {
		// x/net/trace registers /debug/requests on the default mux.
		http.HandleFunc("/debug/minimetrics", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprintf(w, "runtime.NumGoroutine(): %d\n", runtime.NumGoroutine())
		})
		go http.ListenAndServe(*debugWebServer, nil)
	}

	r := mux.NewRouter()
	web.NewHandler(s, p, shpPath).RegisterRoutes(r)

	glog.Fatal(http.ListenAndServe(*listenAddress, handlers.CombinedLoggingHandler(os.Stderr, r)))
}
