package web

import (
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"

	"badc0de.net/pkg/go-shp/pal"
	"badc0de.net/pkg/go-shp/shp"
)

func testServer(t *testing.T) *httptest.Server {
	t.Helper()

	s := shp.New(4, 4, 2)
	s.Frames[0].Pixels[0] = 200
	s.Frames[1].Pixels[5] = 10

	p := pal.Grayscale()

	r := mux.NewRouter()
	NewHandler(s, p, "").RegisterRoutes(r)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func TestFramePNG(t *testing.T) {
	srv := testServer(t)

	resp, err := http.Get(srv.URL + "/frame/0.png")
	if err != nil {
		t.Fatalf("get frame: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status: got %d; want %d", resp.StatusCode, http.StatusOK)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/png" {
		t.Errorf("content type: got %q; want image/png", ct)
	}
	if resp.Header.Get("ETag") == "" {
		t.Errorf("missing ETag header")
	}

	img, err := png.Decode(resp.Body)
	if err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if img.Bounds().Dx() != 4 || img.Bounds().Dy() != 4 {
		t.Errorf("bounds: got %v; want 4x4", img.Bounds())
	}
}

func TestFrameNotFound(t *testing.T) {
	srv := testServer(t)

	resp, err := http.Get(srv.URL + "/frame/7.png")
	if err != nil {
		t.Fatalf("get frame: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status: got %d; want %d", resp.StatusCode, http.StatusNotFound)
	}
}

func TestFrameNotModified(t *testing.T) {
	srv := testServer(t)

	resp, err := http.Get(srv.URL + "/frame/0.png")
	if err != nil {
		t.Fatalf("first get: %v", err)
	}
	resp.Body.Close()
	etag := resp.Header.Get("ETag")
	if etag == "" {
		t.Fatalf("no ETag on first response")
	}

	req, _ := http.NewRequest("GET", srv.URL+"/frame/0.png", nil)
	req.Header.Set("If-None-Match", etag)
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("conditional get: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotModified {
		t.Errorf("status: got %d; want %d", resp.StatusCode, http.StatusNotModified)
	}
}

func TestAnimGIF(t *testing.T) {
	srv := testServer(t)

	resp, err := http.Get(srv.URL + "/anim.gif?ms=100")
	if err != nil {
		t.Fatalf("get anim: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status: got %d; want %d", resp.StatusCode, http.StatusOK)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/gif" {
		t.Errorf("content type: got %q; want image/gif", ct)
	}
}

func TestIndexListsFrames(t *testing.T) {
	srv := testServer(t)

	resp, err := http.Get(srv.URL + "/")
	if err != nil {
		t.Fatalf("get index: %v", err)
	}
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("reading index: %v", err)
	}
	body := string(b)

	if !strings.Contains(body, "frame/0.png") || !strings.Contains(body, "frame/1.png") {
		t.Errorf("index missing frame links: %s", body)
	}
	if !strings.Contains(body, "data:image/png;base64") {
		t.Errorf("index missing inline thumbnails")
	}
}
