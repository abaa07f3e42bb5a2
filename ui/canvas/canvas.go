// Package canvas provides the interactive drawing canvas: the rasterized
// base document with grid, annotations, measurements, and cursor overlays,
// plus pointer handling for the active tool.
package canvas

import (
	"image"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"github.com/CarryCash/EngiVibe-2.5-Pro/internal/app"
	"github.com/CarryCash/EngiVibe-2.5-Pro/internal/inspector"
	"github.com/CarryCash/EngiVibe-2.5-Pro/internal/tools"
	"github.com/CarryCash/EngiVibe-2.5-Pro/internal/viewport"
	"github.com/CarryCash/EngiVibe-2.5-Pro/pkg/geometry"
)

// DrawingCanvas displays the drawing and routes pointer input to the tool
// machine. The viewport pans and zooms in world space, so the widget always
// fills its allotted area; there is no scroll container.
type DrawingCanvas struct {
	widget.BaseWidget

	state   *app.State
	vp      *viewport.Controller
	mapper  *viewport.Mapper
	machine *tools.Machine
	insp    *inspector.Inspector

	raster  *fynecanvas.Raster
	content *interactiveContent

	base baseCache

	// Hover state for the crosshair and coordinate readout.
	hover    geometry.Point2D
	hovering bool

	onViewportChanged func()
}

// NewDrawingCanvas creates the canvas bound to the session state, viewport,
// and tool machine.
func NewDrawingCanvas(state *app.State, vp *viewport.Controller, mapper *viewport.Mapper, machine *tools.Machine, insp *inspector.Inspector) *DrawingCanvas {
	dc := &DrawingCanvas{
		state:   state,
		vp:      vp,
		mapper:  mapper,
		machine: machine,
		insp:    insp,
	}

	dc.raster = fynecanvas.NewRaster(dc.draw)
	dc.raster.ScaleMode = fynecanvas.ImageScalePixels
	dc.raster.SetMinSize(fyne.NewSize(400, 300))

	dc.content = newInteractiveContent(dc, dc.raster)
	dc.ExtendBaseWidget(dc)
	return dc
}

// OnViewportChanged sets a callback fired after zoom or pan.
func (dc *DrawingCanvas) OnViewportChanged(fn func()) {
	dc.onViewportChanged = fn
}

// ZoomIn zooms the viewport in one step around its center.
func (dc *DrawingCanvas) ZoomIn() {
	dc.vp.Zoom(viewport.ZoomInFactor)
	dc.viewportChanged()
}

// ZoomOut zooms the viewport out one step around its center.
func (dc *DrawingCanvas) ZoomOut() {
	dc.vp.Zoom(viewport.ZoomOutFactor)
	dc.viewportChanged()
}

// ResetView restores the viewport to the document bounds.
func (dc *DrawingCanvas) ResetView() {
	dc.vp.ResetToFit()
	dc.viewportChanged()
}

// Pan shifts the viewport by a pointer delta in pixels.
func (dc *DrawingCanvas) Pan(dxPixels, dyPixels float64) {
	w, h := dc.pixelSize()
	dc.vp.Pan(dxPixels, dyPixels, w, h)
	dc.viewportChanged()
}

// InvalidateBase forces the base document raster to re-render on next draw.
// Called when the document content mutates.
func (dc *DrawingCanvas) InvalidateBase() {
	dc.base = baseCache{}
	dc.Refresh()
}

// Refresh redraws the canvas.
func (dc *DrawingCanvas) Refresh() {
	dc.raster.Refresh()
}

func (dc *DrawingCanvas) viewportChanged() {
	if dc.onViewportChanged != nil {
		dc.onViewportChanged()
	}
	dc.state.Emit(app.EventViewportChanged, dc.vp.View())
	dc.Refresh()
}

func (dc *DrawingCanvas) pixelSize() (w, h float64) {
	size := dc.content.Size()
	return float64(size.Width), float64(size.Height)
}

// screenToWorld maps a widget position to snapped world coordinates.
func (dc *DrawingCanvas) screenToWorld(pos fyne.Position) (screen, world geometry.Point2D) {
	screen = geometry.Point2D{X: float64(pos.X), Y: float64(pos.Y)}
	w, h := dc.pixelSize()
	world = dc.mapper.Snap(dc.mapper.ScreenToWorld(screen, dc.vp.View(), w, h))
	return screen, world
}

// CreateRenderer implements fyne.Widget.
func (dc *DrawingCanvas) CreateRenderer() fyne.WidgetRenderer {
	return &drawingCanvasRenderer{canvas: dc}
}

type drawingCanvasRenderer struct {
	canvas *DrawingCanvas
}

func (r *drawingCanvasRenderer) Layout(size fyne.Size) {
	r.canvas.content.Resize(size)
}

func (r *drawingCanvasRenderer) MinSize() fyne.Size {
	return fyne.NewSize(100, 100)
}

func (r *drawingCanvasRenderer) Refresh() {
	r.canvas.raster.Refresh()
}

func (r *drawingCanvasRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.canvas.content}
}

func (r *drawingCanvasRenderer) Destroy() {}

// interactiveContent wraps the raster to handle mouse events and hands them
// to the tool machine as pointer transitions.
type interactiveContent struct {
	widget.BaseWidget
	canvas *DrawingCanvas
	raster *fynecanvas.Raster

	dragging bool
	lastDrag fyne.Position
}

func newInteractiveContent(dc *DrawingCanvas, raster *fynecanvas.Raster) *interactiveContent {
	ic := &interactiveContent{canvas: dc, raster: raster}
	ic.ExtendBaseWidget(ic)
	return ic
}

func (ic *interactiveContent) CreateRenderer() fyne.WidgetRenderer {
	return &interactiveContentRenderer{content: ic}
}

// Tapped delivers a stationary click as a down/up pair.
func (ic *interactiveContent) Tapped(ev *fyne.PointEvent) {
	// Reject clicks outside widget bounds; Fyne can deliver them after
	// focus changes.
	size := ic.Size()
	if ev.Position.X < 0 || ev.Position.Y < 0 ||
		ev.Position.X > size.Width || ev.Position.Y > size.Height {
		return
	}
	screen, world := ic.canvas.screenToWorld(ev.Position)
	ic.canvas.machine.PointerDown(screen, world)
	ic.canvas.machine.PointerUp(screen, world)
	ic.canvas.Refresh()
}

// DoubleTapped finishes a polyline.
func (ic *interactiveContent) DoubleTapped(ev *fyne.PointEvent) {
	_, world := ic.canvas.screenToWorld(ev.Position)
	ic.canvas.machine.DoubleClick(world)
	ic.canvas.Refresh()
}

// Dragged synthesizes the down transition at the drag origin, then streams
// moves. Fyne only reports drags once motion starts, so the origin is
// recovered from the first event's delta.
func (ic *interactiveContent) Dragged(ev *fyne.DragEvent) {
	if !ic.dragging {
		ic.dragging = true
		start := fyne.Position{
			X: ev.Position.X - ev.Dragged.DX,
			Y: ev.Position.Y - ev.Dragged.DY,
		}
		screen, world := ic.canvas.screenToWorld(start)
		ic.canvas.machine.PointerDown(screen, world)
	}
	ic.lastDrag = ev.Position
	screen, world := ic.canvas.screenToWorld(ev.Position)
	ic.canvas.machine.PointerMove(screen, world)
	ic.canvas.Refresh()
}

func (ic *interactiveContent) DragEnd() {
	if !ic.dragging {
		return
	}
	ic.dragging = false
	screen, world := ic.canvas.screenToWorld(ic.lastDrag)
	ic.canvas.machine.PointerUp(screen, world)
	ic.canvas.Refresh()
}

// Scrolled zooms with the wheel.
func (ic *interactiveContent) Scrolled(ev *fyne.ScrollEvent) {
	if ev.Scrolled.DY > 0 {
		ic.canvas.ZoomIn()
	} else if ev.Scrolled.DY < 0 {
		ic.canvas.ZoomOut()
	}
}

// MouseIn implements desktop.Hoverable.
func (ic *interactiveContent) MouseIn(ev *desktop.MouseEvent) {
	ic.trackHover(ev)
}

// MouseMoved feeds hover positions to the crosshair and live previews.
func (ic *interactiveContent) MouseMoved(ev *desktop.MouseEvent) {
	ic.trackHover(ev)
}

// MouseOut hides the crosshair.
func (ic *interactiveContent) MouseOut() {
	ic.canvas.hovering = false
	ic.canvas.Refresh()
}

func (ic *interactiveContent) trackHover(ev *desktop.MouseEvent) {
	screen, world := ic.canvas.screenToWorld(ev.Position)
	ic.canvas.hover = screen
	ic.canvas.hovering = true
	if !ic.dragging {
		ic.canvas.machine.PointerMove(screen, world)
	}
	ic.canvas.Refresh()
}

type interactiveContentRenderer struct {
	content *interactiveContent
}

func (r *interactiveContentRenderer) Layout(size fyne.Size) {
	r.content.raster.Resize(size)
}

func (r *interactiveContentRenderer) MinSize() fyne.Size {
	return r.content.raster.MinSize()
}

func (r *interactiveContentRenderer) Refresh() {
	r.content.raster.Refresh()
}

func (r *interactiveContentRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.content.raster}
}

func (r *interactiveContentRenderer) Destroy() {}

// baseCache holds the rasterized base document keyed by what it depends on.
type baseCache struct {
	markup string
	view   geometry.Rect
	w, h   int
	img    *image.RGBA
}
