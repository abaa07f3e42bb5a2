// Package boq derives a bill of quantities from the typed elements of a
// drawing: per element kind, the count and the summed extents.
package boq

import (
	"sort"

	"gonum.org/v1/gonum/floats"

	"github.com/CarryCash/EngiVibe-2.5-Pro/internal/document"
	"github.com/CarryCash/EngiVibe-2.5-Pro/pkg/geometry"
)

// Line is one bill row: every element sharing a data-type. Length is the
// dominant bounding-box extent, a take-off approximation for linear members;
// Area is the bounding-box area, meaningful for plates and slabs.
type Line struct {
	Type        string
	Count       int
	TotalLength float64
	TotalArea   float64
}

// FromScene walks the drawing and aggregates all elements that declare a
// data-type. Untyped scaffolding (grids, arrows, raw groups) is ignored.
func FromScene(s *document.Scene) []Line {
	type acc struct {
		lengths []float64
		areas   []float64
	}
	byType := make(map[string]*acc)

	var walk func(e *document.Element)
	walk = func(e *document.Element) {
		if e == nil {
			return
		}
		if kind := e.Attr("data-type"); kind != "" {
			a := byType[kind]
			if a == nil {
				a = &acc{}
				byType[kind] = a
			}
			bb := s.BBox(e)
			longest := bb.Width
			if bb.Height > longest {
				longest = bb.Height
			}
			a.lengths = append(a.lengths, longest)
			a.areas = append(a.areas, bb.Width*bb.Height)
		}
		for _, c := range e.Children {
			walk(c)
		}
	}
	walk(s.Root)

	lines := make([]Line, 0, len(byType))
	for kind, a := range byType {
		lines = append(lines, Line{
			Type:        kind,
			Count:       len(a.lengths),
			TotalLength: geometry.Round3(floats.Sum(a.lengths)),
			TotalArea:   geometry.Round3(floats.Sum(a.areas)),
		})
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i].Type < lines[j].Type })
	return lines
}

// TotalCount sums the element counts across all bill rows.
func TotalCount(lines []Line) int {
	n := 0
	for _, l := range lines {
		n += l.Count
	}
	return n
}
