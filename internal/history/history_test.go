package history

import (
	"testing"

	"github.com/CarryCash/EngiVibe-2.5-Pro/internal/annotate"
)

func rect(id string, x float64) *annotate.Rect {
	return &annotate.Rect{Ident: id, X: x, W: 1, H: 1}
}

func ids(shapes []annotate.Shape) []string {
	out := make([]string, len(shapes))
	for i, s := range shapes {
		out[i] = s.ID()
	}
	return out
}

func sameIDs(a []annotate.Shape, want ...string) bool {
	got := ids(a)
	if len(got) != len(want) {
		return false
	}
	for i := range want {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

func TestCommitUndoRedoSequence(t *testing.T) {
	h := New()

	h.Commit([]annotate.Shape{rect("a", 0)})
	h.Commit([]annotate.Shape{rect("a", 0), rect("b", 5)})
	h.Commit([]annotate.Shape{rect("a", 0), rect("b", 5), rect("c", 9)})

	// n undos return to the pre-sequence state.
	h.Undo()
	h.Undo()
	h.Undo()
	if len(h.Current()) != 0 {
		t.Fatalf("after 3 undos: %v, want empty", ids(h.Current()))
	}

	// n redos restore the post-sequence state.
	h.Redo()
	h.Redo()
	h.Redo()
	if !sameIDs(h.Current(), "a", "b", "c") {
		t.Fatalf("after 3 redos: %v", ids(h.Current()))
	}
}

func TestUndoRedoEmptyStacksNoOp(t *testing.T) {
	h := New()
	h.Undo()
	h.Redo()
	if len(h.Current()) != 0 || h.CanUndo() || h.CanRedo() {
		t.Fatal("empty history must be inert")
	}
}

func TestCommitClearsFuture(t *testing.T) {
	h := New()
	h.Commit([]annotate.Shape{rect("a", 0)})
	h.Commit([]annotate.Shape{rect("a", 0), rect("b", 1)})
	h.Undo()
	if !h.CanRedo() {
		t.Fatal("expected redo entry after undo")
	}
	h.Commit([]annotate.Shape{rect("a", 0), rect("x", 2)})
	if h.CanRedo() {
		t.Fatal("commit must invalidate the redo stack")
	}
	if !sameIDs(h.Current(), "a", "x") {
		t.Fatalf("current = %v", ids(h.Current()))
	}
}

func TestInterleavedUndoRedo(t *testing.T) {
	h := New()
	h.Commit([]annotate.Shape{rect("a", 0)})
	h.Commit([]annotate.Shape{rect("a", 0), rect("b", 1)})
	h.Undo()
	h.Redo()
	if !sameIDs(h.Current(), "a", "b") {
		t.Fatalf("current = %v", ids(h.Current()))
	}
	h.Undo()
	if !sameIDs(h.Current(), "a") {
		t.Fatalf("current = %v", ids(h.Current()))
	}
}

func TestEraseAllIsUndoable(t *testing.T) {
	h := New()
	h.Commit([]annotate.Shape{rect("a", 0), rect("b", 1)})
	h.Commit(nil) // erase all
	if len(h.Current()) != 0 {
		t.Fatal("erase all should empty the list")
	}
	h.Undo()
	if !sameIDs(h.Current(), "a", "b") {
		t.Fatalf("undo of erase all gave %v", ids(h.Current()))
	}
}

func TestSnapshotsAreIndependent(t *testing.T) {
	h := New()
	r := rect("a", 0)
	h.Commit([]annotate.Shape{r})
	// Mutating the caller's shape must not reach the stored snapshot.
	r.X = 99
	if h.Current()[0].(*annotate.Rect).X != 0 {
		t.Fatal("history snapshot shares state with caller")
	}
}

func TestReset(t *testing.T) {
	h := New()
	h.Commit([]annotate.Shape{rect("a", 0)})
	h.Undo()
	h.Reset()
	if h.CanUndo() || h.CanRedo() || len(h.Current()) != 0 {
		t.Fatal("reset must drop all state")
	}
}
