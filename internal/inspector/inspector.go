// Package inspector resolves clicks on the drawing to identified elements
// and lets the user edit a small set of presentation attributes on them.
package inspector

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/CarryCash/EngiVibe-2.5-Pro/internal/document"
	"github.com/CarryCash/EngiVibe-2.5-Pro/pkg/geometry"
)

// A click on a deeply nested node searches this many ancestor levels for an
// identified element before giving up.
const maxAncestorDepth = 5

// Elements with these id prefixes are scaffolding, never selectable.
var ignoredIDPrefixes = []string{"grid", "arrow"}

// EditableAttributes lists the attributes ApplyEdit accepts, in display order.
var EditableAttributes = []string{"id", "stroke", "fill", "stroke-width"}

// Selection describes the currently selected element. Attributes is a
// mutable mirror of the element's attributes at selection time.
type Selection struct {
	ElementID   string
	ElementType string
	Attributes  map[string]string
	BoundingBox geometry.Rect
}

// Inspector owns the current selection against a scene. Not safe for
// concurrent use; all calls happen on the interaction thread.
type Inspector struct {
	scene *document.Scene
	sel   *Selection

	onSelectionChanged func(*Selection)
	onContentMutated   func(markup string)
}

func New() *Inspector {
	return &Inspector{}
}

// OnSelectionChanged sets the callback fired when the selection changes,
// including clearing (nil).
func (in *Inspector) OnSelectionChanged(fn func(*Selection)) { in.onSelectionChanged = fn }

// OnContentMutated sets the callback fired with the full serialized markup
// after an edit lands in the scene.
func (in *Inspector) OnContentMutated(fn func(markup string)) { in.onContentMutated = fn }

// SetScene replaces the scene and clears any selection from the old one.
func (in *Inspector) SetScene(s *document.Scene) {
	in.scene = s
	in.Clear()
}

// Current returns the active selection, or nil.
func (in *Inspector) Current() *Selection {
	return in.sel
}

// HitTest resolves a world-space click to a selection. The node under the
// point may be an anonymous child of the interesting element, so the search
// walks upward a bounded number of levels looking for a usable id. A click
// that resolves to nothing clears the selection.
func (in *Inspector) HitTest(world geometry.Point2D) *Selection {
	if in.scene == nil {
		return nil
	}
	el := in.scene.ElementAt(world)
	for depth := 0; el != nil && depth <= maxAncestorDepth; depth++ {
		if id := el.ID(); selectableID(id) {
			in.sel = &Selection{
				ElementID:   id,
				ElementType: el.Type(),
				Attributes:  el.AttrMap(),
				BoundingBox: in.scene.BBox(el),
			}
			in.notifySelection()
			return in.sel
		}
		el = el.Parent
	}
	in.Clear()
	return nil
}

// Select looks an element up by id directly, bypassing hit testing. Used
// when a detail view or report names an element.
func (in *Inspector) Select(id string) *Selection {
	if in.scene == nil || !selectableID(id) {
		return nil
	}
	el := in.scene.FindByID(id)
	if el == nil {
		return nil
	}
	in.sel = &Selection{
		ElementID:   id,
		ElementType: el.Type(),
		Attributes:  el.AttrMap(),
		BoundingBox: in.scene.BBox(el),
	}
	in.notifySelection()
	return in.sel
}

// ApplyEdit sets one editable attribute on the selected element. The
// selection mirror always updates; the scene updates only if the element is
// still present, in which case the mutated markup is published. Editing "id"
// re-keys the selection to the new value.
func (in *Inspector) ApplyEdit(name, value string) error {
	if in.sel == nil {
		return errors.New("no element selected")
	}
	if !editable(name) {
		return fmt.Errorf("attribute %q is not editable", name)
	}
	if name == "stroke-width" {
		w, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil || w < 0 {
			return fmt.Errorf("invalid stroke-width %q", value)
		}
	}

	lookupID := in.sel.ElementID
	in.sel.Attributes[name] = value
	if name == "id" {
		in.sel.ElementID = value
	}

	if in.scene != nil {
		if el := in.scene.FindByID(lookupID); el != nil {
			el.SetAttr(name, value)
			if in.onContentMutated != nil {
				in.onContentMutated(in.scene.Markup())
			}
		}
	}
	in.notifySelection()
	return nil
}

// Clear drops the selection.
func (in *Inspector) Clear() {
	if in.sel == nil {
		return
	}
	in.sel = nil
	in.notifySelection()
}

func (in *Inspector) notifySelection() {
	if in.onSelectionChanged != nil {
		in.onSelectionChanged(in.sel)
	}
}

func selectableID(id string) bool {
	if id == "" {
		return false
	}
	for _, prefix := range ignoredIDPrefixes {
		if strings.HasPrefix(id, prefix) {
			return false
		}
	}
	return true
}

func editable(name string) bool {
	for _, a := range EditableAttributes {
		if a == name {
			return true
		}
	}
	return false
}
