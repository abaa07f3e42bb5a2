// Package report assembles the markdown engineering report shown in the
// report tab and written by the export actions.
package report

import (
	"fmt"
	"strings"

	"github.com/CarryCash/EngiVibe-2.5-Pro/internal/annotate"
	"github.com/CarryCash/EngiVibe-2.5-Pro/internal/boq"
	"github.com/CarryCash/EngiVibe-2.5-Pro/internal/document"
)

// Build combines the generated report body with the live session data:
// the bill of quantities and any measurements the user has taken.
func Build(doc document.BaseDocument, body string, bill []boq.Line, measurements []annotate.Measurement) string {
	var b strings.Builder

	body = strings.TrimSpace(body)
	if body != "" {
		b.WriteString(body)
		b.WriteString("\n")
	}

	if len(bill) > 0 {
		b.WriteString("\n## Quantities\n\n")
		b.WriteString("| Element | Count | Length (m) | Area (m²) |\n")
		b.WriteString("|---|---|---|---|\n")
		for _, line := range bill {
			fmt.Fprintf(&b, "| %s | %d | %.3f | %.3f |\n", line.Type, line.Count, line.TotalLength, line.TotalArea)
		}
		fmt.Fprintf(&b, "\nTotal elements: %d\n", boq.TotalCount(bill))
	}

	if len(measurements) > 0 {
		b.WriteString("\n## Measurements\n\n")
		for i, m := range measurements {
			fmt.Fprintf(&b, "%d. (%.3f, %.3f) to (%.3f, %.3f): %.3f m\n",
				i+1, m.P1.X, m.P1.Y, m.P2.X, m.P2.Y, m.Distance)
		}
	}

	if doc.Geo != nil {
		fmt.Fprintf(&b, "\nSite: %s (%.6f, %.6f)\n", geoName(*doc.Geo), doc.Geo.Lat, doc.Geo.Lng)
	}

	return strings.TrimSpace(b.String()) + "\n"
}

func geoName(g document.GeoLocation) string {
	if g.Name != "" {
		return g.Name
	}
	return "unnamed site"
}
