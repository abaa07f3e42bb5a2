package report

import (
	"strings"
	"testing"

	"github.com/CarryCash/EngiVibe-2.5-Pro/internal/annotate"
	"github.com/CarryCash/EngiVibe-2.5-Pro/internal/boq"
	"github.com/CarryCash/EngiVibe-2.5-Pro/internal/document"
	"github.com/CarryCash/EngiVibe-2.5-Pro/pkg/geometry"
)

func TestBuildFullReport(t *testing.T) {
	doc := document.New("<svg/>", "0 0 10 10", &document.GeoLocation{Lat: 48.8584, Lng: 2.2945, Name: "Paris"})
	bill := []boq.Line{
		{Type: "beam", Count: 2, TotalLength: 70, TotalArea: 140},
	}
	meas := []annotate.Measurement{
		annotate.NewMeasurement(geometry.Point2D{}, geometry.Point2D{X: 3, Y: 4}),
	}

	out := Build(doc, "## Assumptions\n\nPinned bases.", bill, meas)

	for _, want := range []string{
		"## Assumptions",
		"## Quantities",
		"| beam | 2 | 70.000 | 140.000 |",
		"Total elements: 2",
		"## Measurements",
		"1. (0.000, 0.000) to (3.000, 4.000): 5.000 m",
		"Site: Paris (48.858400, 2.294500)",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("report missing %q:\n%s", want, out)
		}
	}
}

func TestBuildOmitsEmptySections(t *testing.T) {
	doc := document.New("<svg/>", "0 0 10 10", nil)
	out := Build(doc, "body", nil, nil)
	if strings.Contains(out, "## Quantities") || strings.Contains(out, "## Measurements") || strings.Contains(out, "Site:") {
		t.Fatalf("empty sections should be omitted:\n%s", out)
	}
	if !strings.HasSuffix(out, "\n") {
		t.Fatal("report should end with a newline")
	}
}
