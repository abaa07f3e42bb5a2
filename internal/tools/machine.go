// Package tools interprets pointer gestures according to the active drawing
// tool and turns them into committed shapes, measurements, detail requests,
// and pan/select delegations.
package tools

import (
	"image/color"
	"math"
	"strings"

	"github.com/CarryCash/EngiVibe-2.5-Pro/internal/annotate"
	"github.com/CarryCash/EngiVibe-2.5-Pro/internal/history"
	"github.com/CarryCash/EngiVibe-2.5-Pro/pkg/colorutil"
	"github.com/CarryCash/EngiVibe-2.5-Pro/pkg/geometry"
)

// Tool identifies the active interaction tool. Exactly one is active at a
// time; switching discards any gesture in progress.
type Tool int

const (
	ToolSelect Tool = iota
	ToolMeasure
	ToolDetailQuery
	ToolDrawRect
	ToolDrawCircle
	ToolDrawPolyline
	ToolDrawArc
)

func (t Tool) String() string {
	switch t {
	case ToolSelect:
		return "Select"
	case ToolMeasure:
		return "Measure"
	case ToolDetailQuery:
		return "Detail"
	case ToolDrawRect:
		return "Rectangle"
	case ToolDrawCircle:
		return "Circle"
	case ToolDrawPolyline:
		return "Polyline"
	case ToolDrawArc:
		return "Arc"
	default:
		return "Unknown"
	}
}

const (
	// A down/up pair closer than this (screen pixels) is a click; anything
	// farther is a pan.
	clickThresholdPx = 5.0
	// Measurements below this world distance are noise and not committed.
	minMeasureDistance = 0.01
)

// The three-click arc gesture is a small explicit state machine. Each state
// carries only the data the step needs.
type arcState interface{ isArcState() }

type arcIdle struct{}

type arcAwaitingEnd struct {
	start geometry.Point2D
}

type arcAwaitingControl struct {
	start, end geometry.Point2D
	control    geometry.Point2D
}

func (arcIdle) isArcState()            {}
func (arcAwaitingEnd) isArcState()     {}
func (arcAwaitingControl) isArcState() {}

// Machine is the per-tool gesture interpreter. All methods run on the single
// interaction thread; handlers never block.
type Machine struct {
	tool    Tool
	history *history.History
	color   color.RGBA

	// Pointer tracking in screen pixels for the select tool's click/pan split.
	down       bool
	panning    bool
	downScreen geometry.Point2D
	lastScreen geometry.Point2D

	// Drag-draw state for rectangle/circle.
	anchor  geometry.Point2D
	pending annotate.Shape

	// Click-tool state.
	measureStart *geometry.Point2D
	poly         *annotate.Polyline
	arc          arcState

	// Last world position, feeding every live preview.
	cursor geometry.Point2D

	onMeasure     func(annotate.Measurement)
	onDetail      func(elementID string)
	onSelectClick func(world geometry.Point2D)
	onPan         func(dxPixels, dyPixels float64)
	onChanged     func()
	onToolChanged func(Tool)
}

// NewMachine creates a machine in the select tool driving the given history.
func NewMachine(h *history.History) *Machine {
	return &Machine{
		tool:    ToolSelect,
		history: h,
		color:   colorutil.Orange,
		arc:     arcIdle{},
	}
}

// OnMeasure sets the callback for committed measurements.
func (m *Machine) OnMeasure(fn func(annotate.Measurement)) { m.onMeasure = fn }

// OnDetail sets the callback for committed detail-query requests.
func (m *Machine) OnDetail(fn func(elementID string)) { m.onDetail = fn }

// OnSelectClick sets the callback for select-tool clicks, which the caller
// routes to the selection inspector.
func (m *Machine) OnSelectClick(fn func(world geometry.Point2D)) { m.onSelectClick = fn }

// OnPan sets the callback for select-tool drags, which the caller routes to
// the viewport controller.
func (m *Machine) OnPan(fn func(dxPixels, dyPixels float64)) { m.onPan = fn }

// OnChanged sets the callback fired whenever visible machine state changes.
func (m *Machine) OnChanged(fn func()) { m.onChanged = fn }

// OnToolChanged sets the callback fired when the active tool switches.
func (m *Machine) OnToolChanged(fn func(Tool)) { m.onToolChanged = fn }

// ActiveTool returns the currently active tool.
func (m *Machine) ActiveTool() Tool {
	return m.tool
}

// SetShapeColor sets the display color for newly drawn shapes.
func (m *Machine) SetShapeColor(c color.RGBA) {
	m.color = c
}

// SetTool switches the active tool. Any shape mid-construction is discarded
// without pushing a history frame; an abandoned gesture is not undoable.
func (m *Machine) SetTool(t Tool) {
	if t == m.tool {
		return
	}
	m.discardInProgress()
	m.tool = t
	if m.onToolChanged != nil {
		m.onToolChanged(t)
	}
	m.changed()
}

// Reset discards all gesture state. Called when a new base document arrives.
func (m *Machine) Reset() {
	m.discardInProgress()
	m.tool = ToolSelect
}

func (m *Machine) discardInProgress() {
	m.pending = nil
	m.poly = nil
	m.measureStart = nil
	m.arc = arcIdle{}
	m.down = false
	m.panning = false
}

// PointerDown begins a gesture. screen is in container pixels, world in
// drawing coordinates (already snapped by the caller when snapping is on).
func (m *Machine) PointerDown(screen, world geometry.Point2D) {
	m.down = true
	m.panning = false
	m.downScreen = screen
	m.lastScreen = screen
	m.cursor = world

	switch m.tool {
	case ToolDrawRect:
		m.anchor = world
		m.pending = &annotate.Rect{Ident: annotate.NewID(), X: world.X, Y: world.Y, Color: m.color}
	case ToolDrawCircle:
		m.anchor = world
		m.pending = &annotate.Circle{Ident: annotate.NewID(), CX: world.X, CY: world.Y, Color: m.color}
	}
	m.changed()
}

// PointerMove tracks the pointer, with or without a button held. It must be
// called once per pointer-move event; previews follow the cursor from here.
func (m *Machine) PointerMove(screen, world geometry.Point2D) {
	m.cursor = world

	switch m.tool {
	case ToolSelect:
		if m.down {
			if !m.panning && screen.Distance(m.downScreen) >= clickThresholdPx {
				m.panning = true
			}
			if m.panning && m.onPan != nil {
				m.onPan(screen.X-m.lastScreen.X, screen.Y-m.lastScreen.Y)
			}
		}
	case ToolDrawRect:
		if r, ok := m.pending.(*annotate.Rect); ok {
			r.X, r.Y, r.W, r.H = rectFrom(m.anchor, world)
		}
	case ToolDrawCircle:
		if c, ok := m.pending.(*annotate.Circle); ok {
			c.R = m.anchor.Distance(world)
		}
	case ToolDrawPolyline:
		if m.poly != nil {
			m.poly.Points[len(m.poly.Points)-1] = world
		}
	case ToolDrawArc:
		if st, ok := m.arc.(arcAwaitingControl); ok {
			st.control = world
			m.arc = st
		}
	}
	m.lastScreen = screen
	m.changed()
}

// PointerUp ends a gesture. For the click-driven tools this is the click.
func (m *Machine) PointerUp(screen, world geometry.Point2D) {
	wasDown := m.down
	m.down = false
	m.cursor = world

	switch m.tool {
	case ToolSelect:
		if m.panning {
			m.panning = false
			return
		}
		if wasDown && m.onSelectClick != nil {
			m.onSelectClick(world)
		}
	case ToolMeasure:
		m.clickMeasure(world)
	case ToolDrawRect:
		if r, ok := m.pending.(*annotate.Rect); ok {
			m.pending = nil
			if r.W > 0 && r.H > 0 {
				m.commitShape(r)
			}
		}
	case ToolDrawCircle:
		if c, ok := m.pending.(*annotate.Circle); ok {
			m.pending = nil
			if c.R > 0 {
				m.commitShape(c)
			}
		}
	case ToolDrawPolyline:
		m.clickPolyline(world)
	case ToolDrawArc:
		m.clickArc(world)
	}
	m.changed()
}

// DoubleClick commits the polyline under construction, dropping the live
// preview vertex. Other tools ignore it.
func (m *Machine) DoubleClick(world geometry.Point2D) {
	if m.tool != ToolDrawPolyline || m.poly == nil {
		return
	}
	pts := m.poly.Points[:len(m.poly.Points)-1]
	if len(pts) >= 2 {
		m.commitShape(&annotate.Polyline{
			Ident:  m.poly.Ident,
			Points: append([]geometry.Point2D(nil), pts...),
			Color:  m.poly.Color,
		})
	}
	m.poly = nil
	m.changed()
}

// SubmitDetailQuery emits a detail request for the entered identifier and
// reverts to the select tool. Empty input is ignored.
func (m *Machine) SubmitDetailQuery(text string) bool {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return false
	}
	if m.onDetail != nil {
		m.onDetail(trimmed)
	}
	m.SetTool(ToolSelect)
	return true
}

func (m *Machine) clickMeasure(world geometry.Point2D) {
	if m.measureStart == nil {
		p := world
		m.measureStart = &p
		return
	}
	meas := annotate.NewMeasurement(*m.measureStart, world)
	m.measureStart = nil
	if meas.Distance > minMeasureDistance && m.onMeasure != nil {
		m.onMeasure(meas)
	}
}

func (m *Machine) clickPolyline(world geometry.Point2D) {
	if m.poly == nil {
		// Seed with a duplicated point so the last vertex can track the
		// cursor as a movable preview.
		m.poly = &annotate.Polyline{
			Ident:  annotate.NewID(),
			Points: []geometry.Point2D{world, world},
			Color:  m.color,
		}
		return
	}
	m.poly.Points[len(m.poly.Points)-1] = world
	m.poly.Points = append(m.poly.Points, world)
}

func (m *Machine) clickArc(world geometry.Point2D) {
	switch st := m.arc.(type) {
	case arcIdle:
		m.arc = arcAwaitingEnd{start: world}
	case arcAwaitingEnd:
		m.arc = arcAwaitingControl{
			start:   st.start,
			end:     world,
			control: st.start.Midpoint(world),
		}
	case arcAwaitingControl:
		m.commitShape(&annotate.Arc{
			Ident:   annotate.NewID(),
			P1:      st.start,
			P2:      st.end,
			Control: world,
			Color:   m.color,
		})
		m.arc = arcIdle{}
	}
}

// PendingShape returns the shape currently under construction for preview
// rendering, or nil. The returned shape is owned by the machine.
func (m *Machine) PendingShape() annotate.Shape {
	if m.pending != nil {
		return m.pending
	}
	if m.poly != nil {
		return m.poly
	}
	switch st := m.arc.(type) {
	case arcAwaitingEnd:
		return &annotate.Arc{
			P1:      st.start,
			P2:      m.cursor,
			Control: st.start.Midpoint(m.cursor),
			Color:   m.color,
		}
	case arcAwaitingControl:
		return &annotate.Arc{P1: st.start, P2: st.end, Control: st.control, Color: m.color}
	}
	return nil
}

// MeasurePreview returns the live measurement line from the first click to
// the cursor, if one is in progress.
func (m *Machine) MeasurePreview() (p1, p2 geometry.Point2D, ok bool) {
	if m.measureStart == nil {
		return geometry.Point2D{}, geometry.Point2D{}, false
	}
	return *m.measureStart, m.cursor, true
}

// Cursor returns the last pointer position in world coordinates.
func (m *Machine) Cursor() geometry.Point2D {
	return m.cursor
}

func (m *Machine) commitShape(s annotate.Shape) {
	cur := m.history.Current()
	next := make([]annotate.Shape, 0, len(cur)+1)
	next = append(next, cur...)
	next = append(next, s)
	m.history.Commit(next)
}

func (m *Machine) changed() {
	if m.onChanged != nil {
		m.onChanged()
	}
}

// rectFrom normalizes two opposite corners into an origin-plus-size
// rectangle, whichever way the drag went.
func rectFrom(a, b geometry.Point2D) (x, y, w, h float64) {
	x = math.Min(a.X, b.X)
	y = math.Min(a.Y, b.Y)
	w = math.Abs(b.X - a.X)
	h = math.Abs(b.Y - a.Y)
	return x, y, w, h
}
