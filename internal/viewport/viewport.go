// Package viewport owns the visible window into the drawing's world
// coordinate space and the screen/world coordinate mapping.
package viewport

import (
	"github.com/CarryCash/EngiVibe-2.5-Pro/pkg/geometry"
)

// Zoom factors used by the zoom controls.
const (
	ZoomInFactor  = 1.2
	ZoomOutFactor = 0.8333
)

// DefaultGridSize is the snap grid increment in world units.
const DefaultGridSize = 0.5

// Controller owns the visible rectangle in world coordinates. The viewport
// is replaced wholesale on zoom, pan, and reset; its extents stay positive
// as long as the document bounds are valid.
type Controller struct {
	view      geometry.Rect
	docBounds geometry.Rect
}

// NewController creates a controller fitted to the document bounds.
func NewController(docBounds geometry.Rect) *Controller {
	return &Controller{view: docBounds, docBounds: docBounds}
}

// View returns the current visible rectangle in world coordinates.
func (c *Controller) View() geometry.Rect {
	return c.view
}

// DocumentBounds returns the bounds the controller resets to.
func (c *Controller) DocumentBounds() geometry.Rect {
	return c.docBounds
}

// SetDocumentBounds replaces the document bounds and resets the viewport to
// them. Called whenever a new base document arrives.
func (c *Controller) SetDocumentBounds(bounds geometry.Rect) {
	c.docBounds = bounds
	c.view = bounds
}

// Zoom shrinks or grows the viewport by factor, keeping its center fixed.
// factor > 1 zooms in. A zero factor is ignored.
func (c *Controller) Zoom(factor float64) {
	if factor == 0 {
		return
	}
	dx := (c.view.Width - c.view.Width/factor) / 2
	dy := (c.view.Height - c.view.Height/factor) / 2
	c.view = geometry.Rect{
		X:      c.view.X + dx,
		Y:      c.view.Y + dy,
		Width:  c.view.Width / factor,
		Height: c.view.Height / factor,
	}
}

// Pan shifts the viewport by a screen-pixel delta so the content follows the
// pointer. The container size converts pixels to world units per axis.
func (c *Controller) Pan(dxPixels, dyPixels float64, containerW, containerH float64) {
	if containerW <= 0 || containerH <= 0 {
		return
	}
	c.view.X -= dxPixels * c.view.Width / containerW
	c.view.Y -= dyPixels * c.view.Height / containerH
}

// ResetToFit restores the viewport to the document bounds exactly.
func (c *Controller) ResetToFit() {
	c.view = c.docBounds
}

// Mapper converts pointer positions in screen space to world space for the
// current viewport, with optional grid snapping. It is a pure function of
// (point, viewport, container size, snap flag).
type Mapper struct {
	SnapEnabled bool
	GridSize    float64
}

// NewMapper creates a mapper with the default grid size and snapping off.
func NewMapper() *Mapper {
	return &Mapper{GridSize: DefaultGridSize}
}

// ScreenToWorld converts a screen-pixel point to world coordinates given the
// viewport and container pixel size.
func (m *Mapper) ScreenToWorld(screen geometry.Point2D, view geometry.Rect, containerW, containerH float64) geometry.Point2D {
	t := worldTransform(view, containerW, containerH)
	return t.Apply(screen)
}

// WorldToScreen converts a world point back to screen pixels; the inverse of
// ScreenToWorld.
func (m *Mapper) WorldToScreen(world geometry.Point2D, view geometry.Rect, containerW, containerH float64) geometry.Point2D {
	t := worldTransform(view, containerW, containerH)
	inv, ok := t.Inverse()
	if !ok {
		return geometry.Point2D{}
	}
	return inv.Apply(world)
}

// Snap quantizes the point to the mapper's grid when snapping is enabled;
// otherwise it is a passthrough.
func (m *Mapper) Snap(p geometry.Point2D) geometry.Point2D {
	if !m.SnapEnabled {
		return p
	}
	grid := m.GridSize
	if grid <= 0 {
		grid = DefaultGridSize
	}
	return geometry.SnapTo(p, grid)
}

// worldTransform maps screen pixels onto the viewport rectangle.
func worldTransform(view geometry.Rect, containerW, containerH float64) geometry.AffineTransform {
	sx, sy := 1.0, 1.0
	if containerW > 0 {
		sx = view.Width / containerW
	}
	if containerH > 0 {
		sy = view.Height / containerH
	}
	return geometry.Translation(view.X, view.Y).Compose(geometry.Scaling(sx, sy))
}
