// Package web serves rendered sprite frames over HTTP for quick
// inspection in a browser: single frames as PNG, the whole animation
// as GIF, and an index page with inline thumbnails.
package web

import (
	"bytes"
	"fmt"
	"html/template"
	"image/gif"
	"image/png"
	"net/http"
	"os"
	"strconv"
	"sync"

	"github.com/golang/glog"
	"github.com/gorilla/mux"
	"github.com/vincent-petithory/dataurl"

	"badc0de.net/pkg/go-shp/datafiles"
	"badc0de.net/pkg/go-shp/pal"
	"badc0de.net/pkg/go-shp/render"
	"badc0de.net/pkg/go-shp/shp"
)

// Handler serves one sprite/palette pair.
type Handler struct {
	lock sync.Mutex

	sprite  *shp.Sprite
	palette *pal.Palette

	shpPath string // for Last-Modified; may be empty
}

// NewHandler constructs a web handler for the passed sprite and
// palette. shpPath, when non-empty, names the file the sprite was
// loaded from and is only used for the Last-Modified header.
func NewHandler(sprite *shp.Sprite, palette *pal.Palette, shpPath string) *Handler {
	return &Handler{
		sprite:  sprite,
		palette: palette,
		shpPath: shpPath,
	}
}

func (h *Handler) brightness(r *http.Request) float64 {
	b := 1.0
	if q := r.URL.Query().Get("b"); q != "" {
		if v, err := strconv.ParseFloat(q, 64); err == nil {
			b = v
		}
		// ignore invalid b
	}
	return b
}

func (h *Handler) setCacheHeaders(w http.ResponseWriter, etag string) {
	w.Header().Set("Cache-Control", "public; max-age=3600")
	w.Header().Set("ETag", etag)
	if s, err := os.Stat(h.shpPath); err == nil {
		w.Header().Set("Last-Modified", s.ModTime().Format(http.TimeFormat))
	}
}

func (h *Handler) frameHandler(w http.ResponseWriter, r *http.Request) {
	h.lock.Lock()
	defer h.lock.Unlock()

	vars := mux.Vars(r)
	idx, err := strconv.Atoi(vars["idx"])
	if err != nil {
		http.Error(w, "idx not a number", http.StatusBadRequest)
		return
	}
	if idx < 0 || idx >= len(h.sprite.Frames) {
		http.Error(w, "no such frame", http.StatusNotFound)
		return
	}
	b := h.brightness(r)

	generation := 1 // bump if the way we generate it changes
	mime := "image/png"
	etag := fmt.Sprintf(`W/"frame:%d:%dx%d:%d:%d:%.2f:%s"`, generation, h.sprite.Width, h.sprite.Height, len(h.sprite.Frames), idx, b, mime)
	if r.Header.Get("If-None-Match") == etag {
		h.setCacheHeaders(w, etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}

	img := render.Frame(h.sprite, h.palette, idx, b)

	w.Header().Set("Content-Type", mime)
	h.setCacheHeaders(w, etag)
	w.WriteHeader(http.StatusOK)
	png.Encode(w, img)
}

func (h *Handler) animHandler(w http.ResponseWriter, r *http.Request) {
	h.lock.Lock()
	defer h.lock.Unlock()

	msPerFrame := 150
	if q := r.URL.Query().Get("ms"); q != "" {
		if v, err := strconv.Atoi(q); err == nil && v > 0 {
			msPerFrame = v
		}
		// ignore invalid ms
	}
	b := h.brightness(r)

	generation := 1 // bump if the way we generate it changes
	mime := "image/gif"
	etag := fmt.Sprintf(`W/"anim:%d:%dx%d:%d:%d:%.2f:%s"`, generation, h.sprite.Width, h.sprite.Height, len(h.sprite.Frames), msPerFrame, b, mime)
	if r.Header.Get("If-None-Match") == etag {
		h.setCacheHeaders(w, etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}

	g := render.Animate(h.sprite, h.palette, msPerFrame, b)

	w.Header().Set("Content-Type", mime)
	h.setCacheHeaders(w, etag)
	w.WriteHeader(http.StatusOK)
	if err := gif.EncodeAll(w, g); err != nil {
		glog.Errorf("error encoding gif: %v", err)
	}
}

type indexFrame struct {
	Index   int
	DataURL template.URL
}

type indexData struct {
	Width  int
	Height int
	Frames []indexFrame
}

func (h *Handler) indexHandler(w http.ResponseWriter, r *http.Request) {
	h.lock.Lock()
	defer h.lock.Unlock()

	tmpl, err := datafiles.IndexTemplate()
	if err != nil {
		glog.Errorf("error parsing index template: %v", err)
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}

	b := h.brightness(r)

	data := indexData{
		Width:  h.sprite.Width,
		Height: h.sprite.Height,
	}
	for i := range h.sprite.Frames {
		img := render.Frame(h.sprite, h.palette, i, b)
		buf := &bytes.Buffer{}
		if err := png.Encode(buf, img); err != nil {
			glog.Errorf("error encoding frame %d thumbnail: %v", i, err)
			continue
		}
		data.Frames = append(data.Frames, indexFrame{
			Index:   i,
			DataURL: template.URL(dataurl.New(buf.Bytes(), "image/png").String()),
		})
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.Execute(w, data); err != nil {
		glog.Errorf("error executing index template: %v", err)
	}
}

// RegisterRoutes attaches the handler's routes to the passed router.
func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/", h.indexHandler)
	r.HandleFunc("/frame/{idx:[0-9]+}.png", h.frameHandler)
	r.HandleFunc("/anim.gif", h.animHandler)
}
