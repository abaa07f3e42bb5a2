package canvas

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"log"
	"math"
	"strings"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/CarryCash/EngiVibe-2.5-Pro/internal/annotate"
	"github.com/CarryCash/EngiVibe-2.5-Pro/pkg/colorutil"
	"github.com/CarryCash/EngiVibe-2.5-Pro/pkg/geometry"
)

// Overlay palette.
var (
	gridMinorColor = color.RGBA{R: 225, G: 225, B: 228, A: 255}
	gridAxisColor  = color.RGBA{R: 180, G: 180, B: 186, A: 255}
	crosshairColor = color.RGBA{R: 160, G: 160, B: 170, A: 255}
	readoutColor   = color.RGBA{R: 60, G: 60, B: 70, A: 255}
	selectionColor = colorutil.Yellow
	measureColor   = color.RGBA{R: 0, G: 150, B: 170, A: 255}
)

// The grid thins itself until adjacent lines are at least this far apart on
// screen.
const minGridSpacingPx = 8.0

// Curve segments when flattening arcs for the overlay.
const arcOverlaySegments = 24

// draw is the raster drawing function. Paint order is fixed: grid, base
// document, selection highlight, drawn shapes, measurements, then cursor.
func (dc *DrawingCanvas) draw(w, h int) image.Image {
	output := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(output, output.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	if w <= 0 || h <= 0 {
		return output
	}

	view := dc.vp.View()
	if view.Width <= 0 || view.Height <= 0 {
		return output
	}
	sx := float64(w) / view.Width
	sy := float64(h) / view.Height
	toScreen := func(p geometry.Point2D) (int, int) {
		return int((p.X - view.X) * sx), int((p.Y - view.Y) * sy)
	}

	dc.drawGrid(output, view, sx, sy, w, h)
	dc.drawBase(output, view, sx, sy, w, h)
	dc.drawSelection(output, toScreen)
	dc.drawShapes(output, toScreen, sx)
	dc.drawMeasurements(output, toScreen)
	dc.drawCursor(output, w, h)
	return output
}

// drawGrid paints reference lines covering ten times the document bounds,
// spaced wide enough to stay legible at any zoom.
func (dc *DrawingCanvas) drawGrid(output *image.RGBA, view geometry.Rect, sx, sy float64, w, h int) {
	region := dc.vp.DocumentBounds().ScaleAboutCenter(10)

	spacing := dc.mapper.GridSize
	if spacing <= 0 {
		spacing = 0.5
	}
	for spacing*sx < minGridSpacingPx || spacing*sy < minGridSpacingPx {
		spacing *= 2
	}

	left := math.Max(view.X, region.X)
	right := math.Min(view.X+view.Width, region.X+region.Width)
	top := math.Max(view.Y, region.Y)
	bottom := math.Min(view.Y+view.Height, region.Y+region.Height)
	if left >= right || top >= bottom {
		return
	}

	py1 := int((top - view.Y) * sy)
	py2 := int((bottom - view.Y) * sy)
	for x := math.Ceil(left/spacing) * spacing; x <= right; x += spacing {
		col := gridMinorColor
		if math.Abs(x) < spacing/2 {
			col = gridAxisColor
		}
		px := int((x - view.X) * sx)
		if px < 0 || px >= w {
			continue
		}
		for y := py1; y <= py2 && y < h; y++ {
			if y >= 0 {
				output.Set(px, y, col)
			}
		}
	}

	px1 := int((left - view.X) * sx)
	px2 := int((right - view.X) * sx)
	for y := math.Ceil(top/spacing) * spacing; y <= bottom; y += spacing {
		col := gridMinorColor
		if math.Abs(y) < spacing/2 {
			col = gridAxisColor
		}
		py := int((y - view.Y) * sy)
		if py < 0 || py >= h {
			continue
		}
		for x := px1; x <= px2 && x < w; x++ {
			if x >= 0 {
				output.Set(x, py, col)
			}
		}
	}
}

// drawBase paints the generated document, rasterized through its vector
// form and cached until content, viewport, or size change.
func (dc *DrawingCanvas) drawBase(output *image.RGBA, view geometry.Rect, sx, sy float64, w, h int) {
	markup := dc.state.Document.Content
	if strings.TrimSpace(markup) == "" {
		drawTextCentered(output, "DESCRIBE A STRUCTURE TO BEGIN", w/2, h/2, readoutColor, 2)
		return
	}

	if dc.base.img == nil || dc.base.markup != markup || dc.base.view != view || dc.base.w != w || dc.base.h != h {
		img, err := rasterizeMarkup(markup, view, sx, sy, w, h)
		if err != nil {
			log.Printf("base render failed: %v", err)
			drawText(output, "RENDER ERROR", 8, 8, colorutil.Red, 2)
			return
		}
		dc.base = baseCache{markup: markup, view: view, w: w, h: h, img: img}
	}
	draw.Draw(output, output.Bounds(), dc.base.img, image.Point{}, draw.Over)
}

func rasterizeMarkup(markup string, view geometry.Rect, sx, sy float64, w, h int) (*image.RGBA, error) {
	icon, err := oksvg.ReadIconStream(strings.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("parse markup: %w", err)
	}

	// Position the document's viewBox so that world coordinates land where
	// the viewport mapping says they should.
	vb := icon.ViewBox
	icon.SetTarget((vb.X-view.X)*sx, (vb.Y-view.Y)*sy, vb.W*sx, vb.H*sy)

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	icon.Draw(rasterx.NewDasher(w, h, scanner), 1.0)
	return img, nil
}

// drawSelection paints the dashed highlight box around the selected element.
func (dc *DrawingCanvas) drawSelection(output *image.RGBA, toScreen func(geometry.Point2D) (int, int)) {
	sel := dc.insp.Current()
	if sel == nil {
		return
	}
	bb := sel.BoundingBox.Expand(0.25)
	x1, y1 := toScreen(geometry.Point2D{X: bb.X, Y: bb.Y})
	x2, y2 := toScreen(geometry.Point2D{X: bb.X + bb.Width, Y: bb.Y + bb.Height})
	drawDashedRect(output, x1, y1, x2, y2, selectionColor)
}

// drawShapes paints committed annotations and the shape under construction.
func (dc *DrawingCanvas) drawShapes(output *image.RGBA, toScreen func(geometry.Point2D) (int, int), sx float64) {
	for _, s := range dc.state.Shapes() {
		drawShape(output, s, toScreen, sx)
	}
	if pending := dc.machine.PendingShape(); pending != nil {
		drawShape(output, pending, toScreen, sx)
	}
}

func drawShape(output *image.RGBA, s annotate.Shape, toScreen func(geometry.Point2D) (int, int), sx float64) {
	switch v := s.(type) {
	case *annotate.Rect:
		x1, y1 := toScreen(geometry.Point2D{X: v.X, Y: v.Y})
		x2, y2 := toScreen(geometry.Point2D{X: v.X + v.W, Y: v.Y + v.H})
		drawRectOutline(output, x1, y1, x2, y2, v.Color, 2)
	case *annotate.Circle:
		cx, cy := toScreen(geometry.Point2D{X: v.CX, Y: v.CY})
		drawCircleOutline(output, float64(cx), float64(cy), v.R*sx, v.Color)
	case *annotate.Polyline:
		for i := 1; i < len(v.Points); i++ {
			x1, y1 := toScreen(v.Points[i-1])
			x2, y2 := toScreen(v.Points[i])
			drawLine(output, x1, y1, x2, y2, v.Color, 2)
		}
	case *annotate.Arc:
		prev := v.P1
		for i := 1; i <= arcOverlaySegments; i++ {
			t := float64(i) / arcOverlaySegments
			next := geometry.QuadBezier(v.P1, v.Control, v.P2, t)
			x1, y1 := toScreen(prev)
			x2, y2 := toScreen(next)
			drawLine(output, x1, y1, x2, y2, v.Color, 2)
			prev = next
		}
	}
}

// drawMeasurements paints committed measurements and the live preview line.
func (dc *DrawingCanvas) drawMeasurements(output *image.RGBA, toScreen func(geometry.Point2D) (int, int)) {
	for _, m := range dc.state.Measurements() {
		x1, y1 := toScreen(m.P1)
		x2, y2 := toScreen(m.P2)
		drawLine(output, x1, y1, x2, y2, measureColor, 1)
		mid := m.P1.Midpoint(m.P2)
		mx, my := toScreen(mid)
		drawLabel(output, fmt.Sprintf("%.3f", m.Distance), mx, my-6, measureColor)
	}

	if p1, p2, ok := dc.machine.MeasurePreview(); ok {
		x1, y1 := toScreen(p1)
		x2, y2 := toScreen(p2)
		drawDashedLine(output, x1, y1, x2, y2, measureColor)
		mid := p1.Midpoint(p2)
		mx, my := toScreen(mid)
		drawLabel(output, fmt.Sprintf("%.3f", p1.Distance(p2)), mx, my-6, measureColor)
	}
}

// drawLabel renders s with the fixed 7x13 face, horizontally centered on x
// with the baseline at y.
func drawLabel(dst *image.RGBA, s string, x, y int, c color.RGBA) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
	}
	w := d.MeasureString(s).Ceil()
	d.Dot = fixed.P(x-w/2, y)
	d.DrawString(s)
}

// drawCursor paints the crosshair and the snapped coordinate readout.
func (dc *DrawingCanvas) drawCursor(output *image.RGBA, w, h int) {
	if !dc.hovering {
		return
	}
	cx := int(dc.hover.X)
	cy := int(dc.hover.Y)
	for x := 0; x < w; x++ {
		if (x+cy)%4 < 2 {
			output.Set(x, cy, crosshairColor)
		}
	}
	for y := 0; y < h; y++ {
		if (cx+y)%4 < 2 {
			output.Set(cx, y, crosshairColor)
		}
	}

	world := dc.mapper.Snap(dc.mapper.ScreenToWorld(dc.hover, dc.vp.View(), float64(w), float64(h)))
	readout := fmt.Sprintf("(%.3f, %.3f)", world.X, world.Y)
	tx := cx + 12
	ty := cy + 12
	if tx+textWidth(readout, 2) > w {
		tx = cx - 12 - textWidth(readout, 2)
	}
	if ty+10 > h {
		ty = cy - 22
	}
	drawText(output, readout, tx, ty, readoutColor, 2)
}
