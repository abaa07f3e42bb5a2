// Package export writes the drawing session out: the annotated SVG, the
// bill of quantities as CSV, and the drawn shapes as a minimal DXF.
package export

import (
	"fmt"
	"strings"

	"github.com/CarryCash/EngiVibe-2.5-Pro/internal/annotate"
	"github.com/CarryCash/EngiVibe-2.5-Pro/internal/document"
	"github.com/CarryCash/EngiVibe-2.5-Pro/pkg/colorutil"
)

// AnnotatedSVG serializes the scene with the user's shapes and measurements
// appended as a trailing annotation group, so the export opens identically
// in any SVG viewer.
func AnnotatedSVG(scene *document.Scene, shapes []annotate.Shape, measurements []annotate.Measurement) string {
	if len(shapes) == 0 && len(measurements) == 0 {
		return scene.Markup()
	}

	var b strings.Builder
	b.WriteString(`<g id="annotations" fill="none">`)
	for _, s := range shapes {
		b.WriteString(shapeMarkup(s))
	}
	for _, m := range measurements {
		fmt.Fprintf(&b, `<line x1="%g" y1="%g" x2="%g" y2="%g" stroke="%s" stroke-dasharray="0.3 0.2"/>`,
			m.P1.X, m.P1.Y, m.P2.X, m.P2.Y, colorutil.Hex(colorutil.Cyan))
		mid := m.P1.Midpoint(m.P2)
		fmt.Fprintf(&b, `<text x="%g" y="%g" font-size="1" fill="%s">%.3f</text>`,
			mid.X, mid.Y, colorutil.Hex(colorutil.Cyan), m.Distance)
	}
	b.WriteString(`</g>`)
	return scene.MarkupWithExtra(b.String())
}

func shapeMarkup(s annotate.Shape) string {
	switch v := s.(type) {
	case *annotate.Rect:
		return fmt.Sprintf(`<rect id="%s" x="%g" y="%g" width="%g" height="%g" stroke="%s"/>`,
			v.ID(), v.X, v.Y, v.W, v.H, colorutil.Hex(v.Color))
	case *annotate.Circle:
		return fmt.Sprintf(`<circle id="%s" cx="%g" cy="%g" r="%g" stroke="%s"/>`,
			v.ID(), v.CX, v.CY, v.R, colorutil.Hex(v.Color))
	case *annotate.Polyline:
		pts := make([]string, len(v.Points))
		for i, p := range v.Points {
			pts[i] = fmt.Sprintf("%g,%g", p.X, p.Y)
		}
		return fmt.Sprintf(`<polyline id="%s" points="%s" stroke="%s"/>`,
			v.ID(), strings.Join(pts, " "), colorutil.Hex(v.Color))
	case *annotate.Arc:
		return fmt.Sprintf(`<path id="%s" d="M %g %g Q %g %g %g %g" stroke="%s"/>`,
			v.ID(), v.P1.X, v.P1.Y, v.Control.X, v.Control.Y, v.P2.X, v.P2.Y, colorutil.Hex(v.Color))
	default:
		return ""
	}
}
