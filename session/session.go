// Package session owns the mutable state of one editing session: the
// sprite being edited, the palette it is displayed with, the undo
// history and the playback position. The data model underneath
// (shp.Sprite, pal.Palette, history.History) stays presentation-free;
// anything that displays state reads it from here and anything that
// mutates it goes through here.
//
// A session is exclusively owned by a single caller. Nothing in it is
// safe for concurrent use, and nothing needs to be: every operation
// runs to completion on the calling goroutine.
package session

import (
	"io"
	"time"

	"github.com/golang/glog"
	"github.com/pkg/errors"

	"badc0de.net/pkg/go-shp/history"
	"badc0de.net/pkg/go-shp/pal"
	"badc0de.net/pkg/go-shp/shp"
)

// DefaultMsPerFrame is the playback speed a fresh session starts with.
const DefaultMsPerFrame = 150

// Playback tracks animation preview state. Elapsed wall time
// accumulates in milliseconds; whole frame steps are consumed from the
// accumulator and the remainder carries over, so the effective speed
// stays correct however irregularly Tick is called.
type Playback struct {
	Playing    bool
	Current    int
	MsPerFrame int64

	accumulatorMS int64
}

// Tick advances the current frame by however many whole frame periods
// the accumulated time covers, wrapping modulo frameCount. It reports
// whether the frame index changed. Zero elapsed time is a no-op and the
// call is safe to repeat.
func (p *Playback) Tick(elapsedMS int64, frameCount int) bool {
	if !p.Playing || frameCount == 0 || p.MsPerFrame <= 0 {
		return false
	}
	if elapsedMS > 0 {
		p.accumulatorMS += elapsedMS
	}
	advanced := false
	for p.accumulatorMS >= p.MsPerFrame {
		p.accumulatorMS -= p.MsPerFrame
		p.Current = (p.Current + 1) % frameCount
		advanced = true
	}
	return advanced
}

// Session is the owning structure for one open sprite.
type Session struct {
	Sprite  *shp.Sprite
	Palette *pal.Palette
	History *history.History
	Play    Playback

	dirty    bool
	lastTick time.Time
}

// New returns an empty session with the grayscale fallback palette.
func New() *Session {
	return &Session{
		Palette: pal.Grayscale(),
		History: history.New(history.DefaultMaxDepth),
		Play:    Playback{MsPerFrame: DefaultMsPerFrame},
	}
}

// NewCanvas replaces the session's sprite with a blank one.
func (s *Session) NewCanvas(width, height, frames int) {
	s.Sprite = shp.New(width, height, frames)
	s.resetAfterLoad()
}

// Load decodes a sprite from the reader and makes it the session's
// sprite. On failure the previous sprite, history and playback state
// are left exactly as they were.
func (s *Session) Load(r io.Reader) error {
	loaded, err := shp.DecodeAll(r)
	if err != nil {
		return errors.Wrap(err, "session: loading sprite")
	}
	s.Sprite = loaded
	s.resetAfterLoad()
	glog.V(1).Infof("session: loaded %dx%d sprite, %d frames", loaded.Width, loaded.Height, len(loaded.Frames))
	return nil
}

func (s *Session) resetAfterLoad() {
	s.History.Reset()
	s.Play.Current = 0
	s.Play.accumulatorMS = 0
	s.dirty = false
}

// Save encodes the sprite to the writer and clears the dirty flag.
func (s *Session) Save(w io.Writer) error {
	if s.Sprite == nil {
		return shp.ErrEmptySprite
	}
	if err := s.Sprite.EncodeAll(w); err != nil {
		return errors.Wrap(err, "session: saving sprite")
	}
	s.dirty = false
	return nil
}

// LoadPalette reads a raw .pal file and makes it the display palette.
// The sprite's pixels are untouched; only their displayed colors
// change.
func (s *Session) LoadPalette(r io.Reader) error {
	p, err := pal.ReadFrom(r)
	if err != nil {
		return err
	}
	s.Palette = p
	return nil
}

// ActiveFrame returns the frame index edits and preview apply to,
// clamped into the sprite's range.
func (s *Session) ActiveFrame() int {
	if s.Sprite == nil || len(s.Sprite.Frames) == 0 {
		return 0
	}
	if s.Play.Current >= len(s.Sprite.Frames) {
		return len(s.Sprite.Frames) - 1
	}
	return s.Play.Current
}

// SetActiveFrame switches which frame is being edited. History
// invalidation is handled lazily by the anchor check inside History.
func (s *Session) SetActiveFrame(i int) {
	if s.Sprite == nil || i < 0 || i >= len(s.Sprite.Frames) {
		return
	}
	s.Play.Current = i
}

// Frame returns the active frame, or nil if no sprite is loaded.
func (s *Session) Frame() *shp.Frame {
	if s.Sprite == nil || len(s.Sprite.Frames) == 0 {
		return nil
	}
	return &s.Sprite.Frames[s.ActiveFrame()]
}

// BeginGesture records the undo snapshot for one discrete edit gesture
// and marks the session dirty. Call it on press, before the first
// raster operation of the stroke, and not again until the next stroke.
func (s *Session) BeginGesture() {
	f := s.Frame()
	if f == nil {
		return
	}
	s.History.Record(f, s.ActiveFrame())
	s.dirty = true
}

// Undo rolls the active frame back one gesture.
func (s *Session) Undo() bool {
	f := s.Frame()
	if f == nil {
		return false
	}
	if s.History.Undo(f, s.ActiveFrame()) {
		s.dirty = true
		return true
	}
	return false
}

// Redo reapplies the most recently undone gesture.
func (s *Session) Redo() bool {
	f := s.Frame()
	if f == nil {
		return false
	}
	if s.History.Redo(f, s.ActiveFrame()) {
		s.dirty = true
		return true
	}
	return false
}

// Dirty reports whether there are unsaved changes.
func (s *Session) Dirty() bool {
	return s.dirty
}

// TickPlayback advances playback by the wall time since the previous
// call. The first call only arms the clock.
func (s *Session) TickPlayback(now time.Time) bool {
	if s.lastTick.IsZero() {
		s.lastTick = now
		return false
	}
	elapsed := now.Sub(s.lastTick).Milliseconds()
	s.lastTick = now
	if s.Sprite == nil {
		return false
	}
	return s.Play.Tick(elapsed, len(s.Sprite.Frames))
}
