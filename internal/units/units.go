// Package units converts between the metric drawing units and the units
// engineers ask for in reports.
package units

import (
	"fmt"
	"strings"
)

// Unit is a length unit with its size in meters. Area conversions square it.
type Unit struct {
	Symbol string
	Name   string
	Meters float64
}

// Lengths lists the supported units in display order. Drawing coordinates
// are meters.
var Lengths = []Unit{
	{Symbol: "mm", Name: "millimeter", Meters: 0.001},
	{Symbol: "cm", Name: "centimeter", Meters: 0.01},
	{Symbol: "m", Name: "meter", Meters: 1},
	{Symbol: "in", Name: "inch", Meters: 0.0254},
	{Symbol: "ft", Name: "foot", Meters: 0.3048},
	{Symbol: "yd", Name: "yard", Meters: 0.9144},
}

// Find looks a unit up by symbol, case-insensitively.
func Find(symbol string) (Unit, error) {
	s := strings.ToLower(strings.TrimSpace(symbol))
	for _, u := range Lengths {
		if u.Symbol == s {
			return u, nil
		}
	}
	return Unit{}, fmt.Errorf("unknown unit %q", symbol)
}

// ConvertLength converts a length value between units.
func ConvertLength(value float64, from, to Unit) float64 {
	return value * from.Meters / to.Meters
}

// ConvertArea converts an area value between the squares of two length units.
func ConvertArea(value float64, from, to Unit) float64 {
	f := from.Meters / to.Meters
	return value * f * f
}

// FormatLength renders a drawing-unit (meter) length in the target unit.
func FormatLength(meters float64, to Unit) string {
	return fmt.Sprintf("%.3f %s", ConvertLength(meters, Lengths[2], to), to.Symbol)
}
