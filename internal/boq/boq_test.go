package boq

import (
	"testing"

	"github.com/CarryCash/EngiVibe-2.5-Pro/internal/document"
)

const billMarkup = `<svg viewBox="0 0 100 100">
  <g id="grid-layer">
    <line id="gridline-1" x1="0" y1="0" x2="100" y2="0"/>
  </g>
  <rect id="beam-1" data-type="beam" x="10" y="10" width="40" height="2"/>
  <rect id="beam-2" data-type="beam" x="10" y="30" width="30" height="2"/>
  <circle id="col-1" data-type="column" cx="20" cy="50" r="3"/>
  <rect id="slab-1" data-type="slab" x="0" y="60" width="20" height="10"/>
</svg>`

func TestFromScene(t *testing.T) {
	scene, err := document.ParseScene(billMarkup)
	if err != nil {
		t.Fatalf("parse scene: %v", err)
	}
	lines := FromScene(scene)

	if len(lines) != 3 {
		t.Fatalf("got %d bill rows, want 3", len(lines))
	}
	// Rows come back sorted by type.
	if lines[0].Type != "beam" || lines[1].Type != "column" || lines[2].Type != "slab" {
		t.Fatalf("got row order %v %v %v", lines[0].Type, lines[1].Type, lines[2].Type)
	}

	beams := lines[0]
	if beams.Count != 2 {
		t.Fatalf("got %d beams, want 2", beams.Count)
	}
	if beams.TotalLength != 70 {
		t.Fatalf("got beam length %v, want 70", beams.TotalLength)
	}

	cols := lines[1]
	if cols.Count != 1 || cols.TotalLength != 6 {
		t.Fatalf("got columns %+v", cols)
	}

	slabs := lines[2]
	if slabs.TotalArea != 200 {
		t.Fatalf("got slab area %v, want 200", slabs.TotalArea)
	}

	if TotalCount(lines) != 4 {
		t.Fatalf("got total %d, want 4", TotalCount(lines))
	}
}

func TestFromSceneIgnoresUntyped(t *testing.T) {
	scene, err := document.ParseScene(`<svg><rect x="0" y="0" width="10" height="10"/></svg>`)
	if err != nil {
		t.Fatalf("parse scene: %v", err)
	}
	if lines := FromScene(scene); len(lines) != 0 {
		t.Fatalf("got %d rows for untyped drawing, want 0", len(lines))
	}
}

func TestFromSceneEmpty(t *testing.T) {
	if lines := FromScene(&document.Scene{}); len(lines) != 0 {
		t.Fatalf("got %d rows for empty scene, want 0", len(lines))
	}
}
