package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/CarryCash/EngiVibe-2.5-Pro/internal/annotate"
	"github.com/CarryCash/EngiVibe-2.5-Pro/internal/boq"
	"github.com/CarryCash/EngiVibe-2.5-Pro/internal/document"
	"github.com/CarryCash/EngiVibe-2.5-Pro/pkg/colorutil"
	"github.com/CarryCash/EngiVibe-2.5-Pro/pkg/geometry"
)

func testShapes() []annotate.Shape {
	return []annotate.Shape{
		&annotate.Rect{Ident: "r1", X: 1, Y: 2, W: 3, H: 4, Color: colorutil.Orange},
		&annotate.Circle{Ident: "c1", CX: 10, CY: 10, R: 2, Color: colorutil.Red},
		&annotate.Polyline{Ident: "p1", Points: []geometry.Point2D{{X: 0, Y: 0}, {X: 5, Y: 0}, {X: 5, Y: 5}}, Color: colorutil.Green},
		&annotate.Arc{Ident: "a1", P1: geometry.Point2D{X: 0, Y: 0}, P2: geometry.Point2D{X: 10, Y: 0}, Control: geometry.Point2D{X: 5, Y: 6}, Color: colorutil.Blue},
	}
}

func TestAnnotatedSVG(t *testing.T) {
	scene, err := document.ParseScene(`<svg viewBox="0 0 20 20"><rect id="beam-1" x="0" y="0" width="10" height="2"/></svg>`)
	if err != nil {
		t.Fatalf("parse scene: %v", err)
	}
	meas := []annotate.Measurement{annotate.NewMeasurement(geometry.Point2D{}, geometry.Point2D{X: 3, Y: 4})}

	out := AnnotatedSVG(scene, testShapes(), meas)
	for _, want := range []string{
		`id="beam-1"`,
		`<g id="annotations"`,
		`<rect id="r1"`,
		`<circle id="c1"`,
		`<polyline id="p1" points="0,0 5,0 5,5"`,
		`d="M 0 0 Q 5 6 10 0"`,
		`>5.000</text>`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("export missing %q:\n%s", want, out)
		}
	}
	if !strings.HasSuffix(strings.TrimSpace(out), "</svg>") {
		t.Fatal("annotations must land inside the root element")
	}
}

func TestAnnotatedSVGNoAnnotations(t *testing.T) {
	scene, err := document.ParseScene(`<svg viewBox="0 0 20 20"/>`)
	if err != nil {
		t.Fatalf("parse scene: %v", err)
	}
	out := AnnotatedSVG(scene, nil, nil)
	if strings.Contains(out, "annotations") {
		t.Fatal("clean document should serialize without an annotation group")
	}
}

func TestWriteBillCSV(t *testing.T) {
	var buf bytes.Buffer
	lines := []boq.Line{{Type: "beam", Count: 2, TotalLength: 70, TotalArea: 140}}
	if err := WriteBillCSV(&buf, lines); err != nil {
		t.Fatalf("write bill: %v", err)
	}
	got := buf.String()
	if !strings.HasPrefix(got, "element,count,total_length_m,total_area_m2\n") {
		t.Fatalf("bad header: %q", got)
	}
	if !strings.Contains(got, "beam,2,70.000,140.000\n") {
		t.Fatalf("bad row: %q", got)
	}
}

func TestWriteMeasurementsCSV(t *testing.T) {
	var buf bytes.Buffer
	meas := []annotate.Measurement{annotate.NewMeasurement(geometry.Point2D{}, geometry.Point2D{X: 3, Y: 4})}
	if err := WriteMeasurementsCSV(&buf, meas); err != nil {
		t.Fatalf("write measurements: %v", err)
	}
	if !strings.Contains(buf.String(), "0.000,0.000,3.000,4.000,5.000") {
		t.Fatalf("bad row: %q", buf.String())
	}
}

func TestWriteDXF(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteDXF(&buf, testShapes()); err != nil {
		t.Fatalf("write dxf: %v", err)
	}
	got := buf.String()
	for _, want := range []string{"SECTION", "ENTITIES", "LWPOLYLINE", "CIRCLE", "ENDSEC", "EOF"} {
		if !strings.Contains(got, want) {
			t.Fatalf("dxf missing %q", want)
		}
	}
	// DXF Y axis points up; the circle center must be mirrored.
	if !strings.Contains(got, "-10.000000") {
		t.Fatal("expected flipped Y coordinates")
	}
	if strings.Count(got, "LWPOLYLINE") != 3 {
		t.Fatalf("got %d polylines, want 3 (rect, polyline, flattened arc)", strings.Count(got, "LWPOLYLINE"))
	}
}
