package document

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/CarryCash/EngiVibe-2.5-Pro/pkg/geometry"
)

var pathCmdRe = regexp.MustCompile(`([MmLlHhVvCcQqSsTtAaZz])([^MmLlHhVvCcQqSsTtAaZz]*)`)

// PathPoints extracts the vertices a path command list passes through.
// Curve control points are included, so boxes derived from the result are
// conservative; that is acceptable for hit-testing and selection highlights.
func PathPoints(d string) []geometry.Point2D {
	d = strings.TrimSpace(d)
	if d == "" {
		return nil
	}

	var points []geometry.Point2D
	var cur geometry.Point2D

	for _, match := range pathCmdRe.FindAllStringSubmatch(d, -1) {
		cmd := match[1]
		coords := parseCoords(match[2])

		switch cmd {
		case "M", "L", "T":
			for i := 0; i+1 < len(coords); i += 2 {
				cur = geometry.Point2D{X: coords[i], Y: coords[i+1]}
				points = append(points, cur)
			}
		case "m", "l", "t":
			for i := 0; i+1 < len(coords); i += 2 {
				cur = cur.Add(geometry.Point2D{X: coords[i], Y: coords[i+1]})
				points = append(points, cur)
			}
		case "H":
			for _, x := range coords {
				cur.X = x
				points = append(points, cur)
			}
		case "h":
			for _, x := range coords {
				cur.X += x
				points = append(points, cur)
			}
		case "V":
			for _, y := range coords {
				cur.Y = y
				points = append(points, cur)
			}
		case "v":
			for _, y := range coords {
				cur.Y += y
				points = append(points, cur)
			}
		case "C", "S", "Q":
			for i := 0; i+1 < len(coords); i += 2 {
				cur = geometry.Point2D{X: coords[i], Y: coords[i+1]}
				points = append(points, cur)
			}
		case "c", "s", "q":
			// Relative curve coordinates are all offsets from the segment
			// start; only the last pair moves the pen.
			stride := 6
			if cmd == "s" || cmd == "q" {
				stride = 4
			}
			for i := 0; i+stride-1 < len(coords); i += stride {
				for j := 0; j+1 < stride; j += 2 {
					points = append(points, cur.Add(geometry.Point2D{X: coords[i+j], Y: coords[i+j+1]}))
				}
				cur = cur.Add(geometry.Point2D{X: coords[i+stride-2], Y: coords[i+stride-1]})
			}
		case "A":
			// Arc: endpoint is the last pair of each 7-value group.
			for i := 0; i+6 < len(coords); i += 7 {
				cur = geometry.Point2D{X: coords[i+5], Y: coords[i+6]}
				points = append(points, cur)
			}
		case "a":
			for i := 0; i+6 < len(coords); i += 7 {
				cur = cur.Add(geometry.Point2D{X: coords[i+5], Y: coords[i+6]})
				points = append(points, cur)
			}
		case "Z", "z":
			// Close path: no new vertex.
		}
	}
	return points
}

// parseCoords splits a command argument string into numbers. Separators are
// commas and whitespace; a minus sign also starts a new number.
func parseCoords(s string) []float64 {
	s = strings.ReplaceAll(s, ",", " ")
	s = strings.ReplaceAll(s, "-", " -")
	var coords []float64
	for _, f := range strings.Fields(s) {
		if v, err := strconv.ParseFloat(f, 64); err == nil {
			coords = append(coords, v)
		}
	}
	return coords
}

// parsePointsAttr parses a polyline/polygon points attribute.
func parsePointsAttr(s string) []geometry.Point2D {
	coords := parseCoords(s)
	pts := make([]geometry.Point2D, 0, len(coords)/2)
	for i := 0; i+1 < len(coords); i += 2 {
		pts = append(pts, geometry.Point2D{X: coords[i], Y: coords[i+1]})
	}
	return pts
}

func parseFloatDefault(s string, def float64) float64 {
	if s == "" {
		return def
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return def
	}
	return v
}
