package app

import (
	"testing"

	"github.com/CarryCash/EngiVibe-2.5-Pro/internal/annotate"
	"github.com/CarryCash/EngiVibe-2.5-Pro/internal/document"
	"github.com/CarryCash/EngiVibe-2.5-Pro/pkg/geometry"
)

const stateMarkup = `<svg viewBox="0 0 50 50"><rect id="slab-1" x="5" y="5" width="20" height="10"/></svg>`

func TestSetDocumentResetsSession(t *testing.T) {
	s := NewState()
	s.History.Commit([]annotate.Shape{&annotate.Rect{Ident: "a", W: 1, H: 1}})
	s.AddMeasurement(annotate.NewMeasurement(geometry.Point2D{}, geometry.Point2D{X: 3, Y: 4}))

	var docEvents int
	s.On(EventDocumentChanged, func(interface{}) { docEvents++ })

	doc := document.New(stateMarkup, "0 0 50 50", nil)
	if err := s.SetDocument(doc, "## Notes"); err != nil {
		t.Fatalf("set document: %v", err)
	}

	if len(s.Shapes()) != 0 {
		t.Fatal("shapes should reset with a new document")
	}
	if s.History.CanUndo() {
		t.Fatal("old history must not survive a document change")
	}
	if len(s.Measurements()) != 0 {
		t.Fatal("measurements should reset with a new document")
	}
	if s.Report != "## Notes" {
		t.Fatalf("got report %q", s.Report)
	}
	if s.Scene.FindByID("slab-1") == nil {
		t.Fatal("scene should be parsed from the new document")
	}
	if docEvents != 1 {
		t.Fatalf("got %d document events, want 1", docEvents)
	}
}

func TestSetDocumentRejectsBadMarkup(t *testing.T) {
	s := NewState()
	doc := document.New("<svg><rect</svg>", "0 0 50 50", nil)
	if err := s.SetDocument(doc, ""); err == nil {
		t.Fatal("expected parse error for malformed markup")
	}
}

func TestApplyMarkupKeepsAnnotations(t *testing.T) {
	s := NewState()
	doc := document.New(stateMarkup, "0 0 50 50", nil)
	if err := s.SetDocument(doc, ""); err != nil {
		t.Fatalf("set document: %v", err)
	}
	s.History.Commit([]annotate.Shape{&annotate.Circle{Ident: "c", R: 2}})

	edited := `<svg viewBox="0 0 50 50"><rect id="slab-1" x="5" y="5" width="20" height="10" stroke="#ff0000"/></svg>`
	if err := s.ApplyMarkup(edited); err != nil {
		t.Fatalf("apply markup: %v", err)
	}
	if s.Document.Content != edited {
		t.Fatal("document content should track the edited markup")
	}
	if len(s.Shapes()) != 1 {
		t.Fatal("edits must not disturb drawn shapes")
	}
	if s.Scene.FindByID("slab-1").Attr("stroke") != "#ff0000" {
		t.Fatal("scene should reflect the edit")
	}
}

func TestUndoRedoEmitOnlyWhenEffective(t *testing.T) {
	s := NewState()
	var events int
	s.On(EventShapesChanged, func(interface{}) { events++ })

	s.Undo() // empty history
	if events != 0 {
		t.Fatal("undo on empty history must not emit")
	}

	s.History.Commit([]annotate.Shape{&annotate.Rect{Ident: "a", W: 1, H: 1}})
	s.Undo()
	s.Redo()
	if events != 2 {
		t.Fatalf("got %d shape events, want 2", events)
	}
	if len(s.Shapes()) != 1 {
		t.Fatal("redo should restore the shape")
	}
}

func TestEraseAllShapesUndoable(t *testing.T) {
	s := NewState()
	s.History.Commit([]annotate.Shape{&annotate.Rect{Ident: "a", W: 1, H: 1}})

	s.EraseAllShapes()
	if len(s.Shapes()) != 0 {
		t.Fatal("erase should clear all shapes")
	}
	s.Undo()
	if len(s.Shapes()) != 1 {
		t.Fatal("erase must be a single undoable step")
	}

	s.Undo() // back to empty
	var events int
	s.On(EventShapesChanged, func(interface{}) { events++ })
	s.EraseAllShapes()
	if events != 0 {
		t.Fatal("erasing an empty canvas must not push a frame")
	}
}
