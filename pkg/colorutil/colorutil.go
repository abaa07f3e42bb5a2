// Package colorutil provides shared color utilities for the drawing studio.
package colorutil

import (
	"fmt"
	"image/color"
	"strings"
)

// Common overlay colors used throughout the application.
var (
	Black   = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	White   = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Cyan    = color.RGBA{R: 0, G: 255, B: 255, A: 255}
	Magenta = color.RGBA{R: 255, G: 0, B: 255, A: 255}
	Blue    = color.RGBA{R: 0, G: 0, B: 255, A: 255}
	Green   = color.RGBA{R: 0, G: 255, B: 0, A: 255}
	Yellow  = color.RGBA{R: 255, G: 255, B: 0, A: 255}
	Red     = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	Orange  = color.RGBA{R: 255, G: 140, B: 0, A: 255}
)

// named covers the CSS color keywords that generated drawings actually use.
var named = map[string]color.RGBA{
	"black":   Black,
	"white":   White,
	"cyan":    Cyan,
	"magenta": Magenta,
	"blue":    Blue,
	"green":   Green,
	"yellow":  Yellow,
	"red":     Red,
	"orange":  Orange,
	"gray":    {R: 128, G: 128, B: 128, A: 255},
	"grey":    {R: 128, G: 128, B: 128, A: 255},
	"none":    {},
}

// Parse interprets a stroke/fill attribute value: "#rgb", "#rrggbb", or a
// color keyword. Unknown values fall back to black.
func Parse(s string) color.RGBA {
	s = strings.TrimSpace(strings.ToLower(s))
	if c, ok := named[s]; ok {
		return c
	}
	if strings.HasPrefix(s, "#") {
		hex := s[1:]
		if len(hex) == 3 {
			hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
		}
		if len(hex) == 6 {
			var r, g, b uint8
			if _, err := fmt.Sscanf(hex, "%02x%02x%02x", &r, &g, &b); err == nil {
				return color.RGBA{R: r, G: g, B: b, A: 255}
			}
		}
	}
	return Black
}

// Hex formats a color as a "#rrggbb" attribute value.
func Hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
