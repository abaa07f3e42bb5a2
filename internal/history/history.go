// Package history provides snapshot-based undo/redo over the annotation
// shape list. Whole-list snapshots are stored per action; at annotation
// scale this is cheaper than structural diffing and trivially correct.
package history

import (
	"github.com/CarryCash/EngiVibe-2.5-Pro/internal/annotate"
)

// History holds the current shape list plus undo and redo snapshot stacks.
// Every user-initiated mutation pushes the pre-mutation list onto past and
// clears future.
type History struct {
	current []annotate.Shape
	past    [][]annotate.Shape
	future  [][]annotate.Shape
}

// New creates an empty history.
func New() *History {
	return &History{}
}

// Current returns the live shape list. Callers must treat it as read-only;
// mutations go through Commit.
func (h *History) Current() []annotate.Shape {
	return h.current
}

// Commit adopts a new shape list as current, pushing the pre-change list
// onto the undo stack and invalidating any redo entries.
func (h *History) Commit(shapes []annotate.Shape) {
	h.past = append(h.past, h.current)
	h.future = nil
	h.current = annotate.CloneShapes(shapes)
}

// Undo restores the most recent undo snapshot. No-op on an empty stack.
func (h *History) Undo() {
	if len(h.past) == 0 {
		return
	}
	h.future = append([][]annotate.Shape{h.current}, h.future...)
	h.current = h.past[len(h.past)-1]
	h.past = h.past[:len(h.past)-1]
}

// Redo re-applies the most recently undone snapshot. No-op on an empty stack.
func (h *History) Redo() {
	if len(h.future) == 0 {
		return
	}
	h.past = append(h.past, h.current)
	h.current = h.future[0]
	h.future = h.future[1:]
}

// CanUndo reports whether an undo snapshot exists.
func (h *History) CanUndo() bool {
	return len(h.past) > 0
}

// CanRedo reports whether a redo snapshot exists.
func (h *History) CanRedo() bool {
	return len(h.future) > 0
}

// Reset drops all state. Used when a new base document arrives; unlike an
// erase-all commit this is not undoable.
func (h *History) Reset() {
	h.current = nil
	h.past = nil
	h.future = nil
}
