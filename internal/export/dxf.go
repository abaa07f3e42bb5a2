package export

import (
	"fmt"
	"io"

	"github.com/CarryCash/EngiVibe-2.5-Pro/internal/annotate"
	"github.com/CarryCash/EngiVibe-2.5-Pro/pkg/geometry"
)

// Drawn shapes land on this DXF layer so CAD users can toggle them against
// imported base geometry.
const dxfLayer = "ANNOTATIONS"

// Curves have no exact DXF quadratic form here; they are flattened to
// polylines with this many segments.
const arcSegments = 16

// WriteDXF writes the drawn shapes as a minimal ASCII DXF (ENTITIES section
// only), enough for CAD import. Y is flipped because DXF grows upward while
// drawing coordinates grow downward.
func WriteDXF(w io.Writer, shapes []annotate.Shape) error {
	ew := &errWriter{w: w}

	ew.pair(0, "SECTION")
	ew.pair(2, "ENTITIES")
	for _, s := range shapes {
		switch v := s.(type) {
		case *annotate.Rect:
			writeLWPolyline(ew, []geometry.Point2D{
				{X: v.X, Y: v.Y},
				{X: v.X + v.W, Y: v.Y},
				{X: v.X + v.W, Y: v.Y + v.H},
				{X: v.X, Y: v.Y + v.H},
			}, true)
		case *annotate.Circle:
			ew.pair(0, "CIRCLE")
			ew.pair(8, dxfLayer)
			ew.fpair(10, v.CX)
			ew.fpair(20, -v.CY)
			ew.fpair(40, v.R)
		case *annotate.Polyline:
			writeLWPolyline(ew, v.Points, false)
		case *annotate.Arc:
			pts := make([]geometry.Point2D, arcSegments+1)
			for i := 0; i <= arcSegments; i++ {
				t := float64(i) / arcSegments
				pts[i] = geometry.QuadBezier(v.P1, v.Control, v.P2, t)
			}
			writeLWPolyline(ew, pts, false)
		}
	}
	ew.pair(0, "ENDSEC")
	ew.pair(0, "EOF")
	return ew.err
}

func writeLWPolyline(ew *errWriter, pts []geometry.Point2D, closed bool) {
	ew.pair(0, "LWPOLYLINE")
	ew.pair(8, dxfLayer)
	ew.pair(90, fmt.Sprintf("%d", len(pts)))
	if closed {
		ew.pair(70, "1")
	} else {
		ew.pair(70, "0")
	}
	for _, p := range pts {
		ew.fpair(10, p.X)
		ew.fpair(20, -p.Y)
	}
}

// errWriter carries the first write error through the group-code pairs so
// the entity loops stay linear.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) pair(code int, value string) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, "%d\n%s\n", code, value)
}

func (ew *errWriter) fpair(code int, value float64) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, "%d\n%.6f\n", code, value)
}
