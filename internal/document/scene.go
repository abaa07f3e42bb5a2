package document

import (
	"bytes"
	"encoding/xml"
	"io"
	"strings"

	"github.com/CarryCash/EngiVibe-2.5-Pro/pkg/geometry"
)

// Attr is a single markup attribute. Order is preserved so reserialized
// markup stays close to what the generator produced.
type Attr struct {
	Name  string
	Value string
}

// Element is one addressable node of the scene tree.
type Element struct {
	Tag      string
	Attrs    []Attr
	Text     string
	Parent   *Element
	Children []*Element
}

// Attr returns the value of the named attribute, or "" if absent.
func (e *Element) Attr(name string) string {
	for _, a := range e.Attrs {
		if a.Name == name {
			return a.Value
		}
	}
	return ""
}

// SetAttr sets or appends the named attribute.
func (e *Element) SetAttr(name, value string) {
	for i, a := range e.Attrs {
		if a.Name == name {
			e.Attrs[i].Value = value
			return
		}
	}
	e.Attrs = append(e.Attrs, Attr{Name: name, Value: value})
}

// ID returns the element's identifier attribute.
func (e *Element) ID() string {
	return e.Attr("id")
}

// Type returns the element's declared data-type classification, falling back
// to its raw tag when absent.
func (e *Element) Type() string {
	if t := e.Attr("data-type"); t != "" {
		return t
	}
	return e.Tag
}

// AttrMap returns a copy of all attributes as a map.
func (e *Element) AttrMap() map[string]string {
	m := make(map[string]string, len(e.Attrs))
	for _, a := range e.Attrs {
		m[a.Name] = a.Value
	}
	return m
}

// Scene is the owned model of the live drawing: a tree of addressable
// elements. Edits mutate the scene; rendering is a pure projection of it.
type Scene struct {
	Root *Element
}

// ParseScene builds a scene tree from vector markup. A nil root means an
// empty scene; parse failures return the error and an empty scene so the
// caller can degrade to the placeholder render.
func ParseScene(markup string) (*Scene, error) {
	s := &Scene{}
	if strings.TrimSpace(markup) == "" {
		return s, nil
	}

	dec := xml.NewDecoder(strings.NewReader(markup))
	dec.Strict = false

	var stack []*Element
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return &Scene{}, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			el := &Element{Tag: t.Name.Local}
			for _, a := range t.Attr {
				name := a.Name.Local
				// Keep xmlns declarations intact on round trip; other
				// namespaced attributes lose their prefix, which is fine
				// for the attribute set generated drawings use.
				if a.Name.Space == "xmlns" {
					name = "xmlns:" + a.Name.Local
				}
				el.SetAttr(name, a.Value)
			}
			if len(stack) == 0 {
				s.Root = el
			} else {
				parent := stack[len(stack)-1]
				el.Parent = parent
				parent.Children = append(parent.Children, el)
			}
			stack = append(stack, el)
		case xml.EndElement:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		case xml.CharData:
			if len(stack) > 0 {
				text := strings.TrimSpace(string(t))
				if text != "" {
					stack[len(stack)-1].Text += text
				}
			}
		}
	}
	return s, nil
}

// FindByID returns the first element with the given identifier, or nil.
func (s *Scene) FindByID(id string) *Element {
	if s.Root == nil || id == "" {
		return nil
	}
	return findByID(s.Root, id)
}

func findByID(e *Element, id string) *Element {
	if e.Attr("id") == id {
		return e
	}
	for _, c := range e.Children {
		if found := findByID(c, id); found != nil {
			return found
		}
	}
	return nil
}

// ElementAt returns the topmost leaf element whose geometry contains the
// world point, or nil when the point hits only the canvas background.
// Later siblings paint on top, so they are searched first.
func (s *Scene) ElementAt(p geometry.Point2D) *Element {
	if s.Root == nil {
		return nil
	}
	return elementAt(s.Root, p)
}

func elementAt(e *Element, p geometry.Point2D) *Element {
	for i := len(e.Children) - 1; i >= 0; i-- {
		if hit := elementAt(e.Children[i], p); hit != nil {
			return hit
		}
	}
	if len(e.Children) > 0 || e.Tag == "svg" || e.Tag == "g" || e.Tag == "defs" {
		return nil
	}
	box := s2bbox(e)
	if box.Width == 0 && box.Height == 0 {
		return nil
	}
	// Thin strokes are unhittable as exact boxes; pad a little.
	if box.Expand(0.25).Contains(p) {
		return e
	}
	return nil
}

// BBox returns the axis-aligned bounding box of an element in world
// coordinates, computed from its geometry attributes. Containers report the
// union of their children.
func (s *Scene) BBox(e *Element) geometry.Rect {
	return s2bbox(e)
}

func s2bbox(e *Element) geometry.Rect {
	switch e.Tag {
	case "rect", "image":
		return geometry.NewRect(attrFloat(e, "x"), attrFloat(e, "y"),
			attrFloat(e, "width"), attrFloat(e, "height"))
	case "circle":
		r := attrFloat(e, "r")
		return geometry.NewRect(attrFloat(e, "cx")-r, attrFloat(e, "cy")-r, 2*r, 2*r)
	case "ellipse":
		rx, ry := attrFloat(e, "rx"), attrFloat(e, "ry")
		return geometry.NewRect(attrFloat(e, "cx")-rx, attrFloat(e, "cy")-ry, 2*rx, 2*ry)
	case "line":
		return geometry.BoundingBox([]geometry.Point2D{
			{X: attrFloat(e, "x1"), Y: attrFloat(e, "y1")},
			{X: attrFloat(e, "x2"), Y: attrFloat(e, "y2")},
		})
	case "polyline", "polygon":
		return geometry.BoundingBox(parsePointsAttr(e.Attr("points")))
	case "path":
		return geometry.BoundingBox(PathPoints(e.Attr("d")))
	case "text":
		return geometry.NewRect(attrFloat(e, "x"), attrFloat(e, "y"), 0, 0)
	default:
		var box geometry.Rect
		first := true
		for _, c := range e.Children {
			cb := s2bbox(c)
			if cb.Width == 0 && cb.Height == 0 {
				continue
			}
			if first {
				box = cb
				first = false
			} else {
				box = box.Union(cb)
			}
		}
		return box
	}
}

func attrFloat(e *Element, name string) float64 {
	return parseFloatDefault(e.Attr(name), 0)
}

// MarkupWithExtra serializes the scene back to markup, inserting extra raw
// markup immediately before the root's closing tag. Used by exports to attach
// the annotation group without mutating the scene.
func (s *Scene) MarkupWithExtra(extra string) string {
	if s.Root == nil {
		return ""
	}
	var buf bytes.Buffer
	writeElement(&buf, s.Root, extra)
	return buf.String()
}

// Markup serializes the scene back to vector markup. This is the canonical
// form of the live drawing, including any inspector edits.
func (s *Scene) Markup() string {
	return s.MarkupWithExtra("")
}

func writeElement(buf *bytes.Buffer, e *Element, rootExtra string) {
	buf.WriteByte('<')
	buf.WriteString(e.Tag)
	for _, a := range e.Attrs {
		buf.WriteByte(' ')
		buf.WriteString(a.Name)
		buf.WriteString(`="`)
		xml.EscapeText(buf, []byte(a.Value))
		buf.WriteByte('"')
	}
	if len(e.Children) == 0 && e.Text == "" && rootExtra == "" {
		buf.WriteString("/>")
		return
	}
	buf.WriteByte('>')
	if e.Text != "" {
		xml.EscapeText(buf, []byte(e.Text))
	}
	for _, c := range e.Children {
		writeElement(buf, c, "")
	}
	if rootExtra != "" {
		buf.WriteString(rootExtra)
	}
	buf.WriteString("</")
	buf.WriteString(e.Tag)
	buf.WriteByte('>')
}
