// Package history implements the editor's frame-scoped undo/redo.
//
// Snapshots are whole pixel buffers, recorded once per edit gesture
// (press to release), not per intermediate point; recording any finer
// would burn through the depth bound within a single stroke. The stacks
// are anchored to one frame index: using them while a different frame
// is active throws them away instead of restoring another frame's past
// into the current one.
package history

import "badc0de.net/pkg/go-shp/shp"

// DefaultMaxDepth bounds the undo stack when no explicit depth is
// given. Worst-case memory per edited frame is maxDepth canvas copies.
const DefaultMaxDepth = 100

// History holds the bounded undo and redo snapshot stacks for the frame
// currently being edited.
type History struct {
	undo     [][]byte
	redo     [][]byte
	maxDepth int

	anchor   int
	anchored bool
}

// New constructs a History bounded to maxDepth snapshots per stack.
// Non-positive depths fall back to DefaultMaxDepth.
func New(maxDepth int) *History {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return &History{maxDepth: maxDepth}
}

// Record pushes a snapshot of the frame's current buffer onto the undo
// stack. Call it exactly once at the start of each discrete edit
// gesture. A fresh edit invalidates the redo line, and the oldest undo
// entry is evicted once the depth bound is exceeded. Recording against
// a different frame than the stacks belong to discards them first.
func (h *History) Record(f *shp.Frame, activeIndex int) {
	if !h.anchored || h.anchor != activeIndex {
		h.Reset()
		h.anchor = activeIndex
		h.anchored = true
	}
	h.undo = append(h.undo, f.Clone())
	if len(h.undo) > h.maxDepth {
		h.undo = h.undo[1:]
	}
	h.redo = nil
}

// Undo swaps the frame's buffer with the most recent undo snapshot,
// moving the displaced buffer to the redo stack. It reports whether any
// pixels changed hands.
//
// If activeIndex is not the anchored frame, both stacks are discarded,
// the anchor moves to activeIndex, and the frame is left untouched.
func (h *History) Undo(f *shp.Frame, activeIndex int) bool {
	if !h.rebind(activeIndex) {
		return false
	}
	n := len(h.undo)
	if n == 0 {
		return false
	}
	prev := h.undo[n-1]
	h.undo = h.undo[:n-1]
	h.redo = append(h.redo, f.Pixels)
	f.Pixels = prev
	return true
}

// Redo is the inverse of Undo.
func (h *History) Redo(f *shp.Frame, activeIndex int) bool {
	if !h.rebind(activeIndex) {
		return false
	}
	n := len(h.redo)
	if n == 0 {
		return false
	}
	next := h.redo[n-1]
	h.redo = h.redo[:n-1]
	h.undo = append(h.undo, f.Pixels)
	f.Pixels = next
	return true
}

// rebind checks the anchor and reports whether the stacks may be used.
func (h *History) rebind(activeIndex int) bool {
	if h.anchored && h.anchor == activeIndex {
		return true
	}
	h.Reset()
	h.anchor = activeIndex
	h.anchored = true
	return false
}

// Reset drops both stacks, e.g. after loading a new sprite.
func (h *History) Reset() {
	h.undo = nil
	h.redo = nil
	h.anchored = false
}

// CanUndo reports whether an Undo for the given frame would change
// anything.
func (h *History) CanUndo(activeIndex int) bool {
	return h.anchored && h.anchor == activeIndex && len(h.undo) > 0
}

// CanRedo reports whether a Redo for the given frame would change
// anything.
func (h *History) CanRedo(activeIndex int) bool {
	return h.anchored && h.anchor == activeIndex && len(h.redo) > 0
}
