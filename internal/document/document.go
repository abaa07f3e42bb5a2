// Package document models the externally generated drawing: its markup,
// declared bounds, and the addressable scene parsed from the markup.
package document

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/CarryCash/EngiVibe-2.5-Pro/pkg/geometry"
)

// DefaultBounds is substituted when a document's bounds declaration is malformed.
var DefaultBounds = geometry.NewRect(0, 0, 100, 100)

// GeoLocation is an informational site location attached to a generated
// design. It is displayed as a badge with a map link and never consumed by
// any canvas logic.
type GeoLocation struct {
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
	Name string  `json:"name,omitempty"`
}

// MapURL returns an outbound map link for the location.
func (g GeoLocation) MapURL() string {
	return fmt.Sprintf("https://www.openstreetmap.org/?mlat=%.6f&mlon=%.6f#map=17/%.6f/%.6f",
		g.Lat, g.Lng, g.Lat, g.Lng)
}

// BaseDocument is the externally supplied drawing, read-only for the canvas
// engine. Content is the vector markup body; an empty string renders the
// empty-state placeholder.
type BaseDocument struct {
	Content string
	Bounds  geometry.Rect
	Geo     *GeoLocation
}

// New creates a BaseDocument from raw markup and a bounds declaration.
func New(content, bounds string, geo *GeoLocation) BaseDocument {
	return BaseDocument{
		Content: content,
		Bounds:  ParseBounds(bounds),
		Geo:     geo,
	}
}

// Empty reports whether the document has no drawing body.
func (d BaseDocument) Empty() bool {
	return strings.TrimSpace(d.Content) == ""
}

// ParseBounds parses a "minX minY width height" declaration. Anything other
// than exactly four numeric tokens with positive extents falls back to
// DefaultBounds; a malformed declaration must never fail the render.
func ParseBounds(s string) geometry.Rect {
	fields := strings.Fields(s)
	if len(fields) != 4 {
		return DefaultBounds
	}
	vals := make([]float64, 4)
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return DefaultBounds
		}
		vals[i] = v
	}
	if vals[2] <= 0 || vals[3] <= 0 {
		return DefaultBounds
	}
	return geometry.NewRect(vals[0], vals[1], vals[2], vals[3])
}
