// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/colormath/colormath.go
// Summary: RGB parsing, formatting and blending helpers for popup colours.
// Usage: Used by the blend cache and the terminal host to tint popup highlights.

package colormath

import (
	"fmt"
	"math"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// RGB is an 8-bit per channel colour.
type RGB struct {
	R, G, B uint8
}

// ParseHex parses "#rrggbb" (the leading '#' is optional).
func ParseHex(s string) (RGB, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return RGB{}, fmt.Errorf("parse colour %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return RGB{R: r, G: g, B: b}, nil
}

// Hex formats the colour as a lowercase 6-digit "#rrggbb" string.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Value packs the colour as 0xRRGGBB.
func (c RGB) Value() int32 {
	return int32(c.R)<<16 | int32(c.G)<<8 | int32(c.B)
}

// Color converts to a true-colour tcell.Color.
func (c RGB) Color() tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// FromColor converts a tcell colour. Invalid/default colours report ok=false.
func FromColor(c tcell.Color) (RGB, bool) {
	if !c.Valid() {
		return RGB{}, false
	}
	r, g, b := c.TrueColor().RGB()
	if r < 0 || g < 0 || b < 0 {
		return RGB{}, false
	}
	return RGB{R: uint8(r), G: uint8(g), B: uint8(b)}, true
}

// Luminosity returns the average of the three channels.
func Luminosity(c RGB) float64 {
	return (float64(c.R) + float64(c.G) + float64(c.B)) / 3
}

// TowardLuminosity moves every channel of src toward lum by alpha percent,
// flooring each channel. alpha is clamped to [0,100].
func TowardLuminosity(src RGB, lum float64, alpha int) RGB {
	f := float64(ClampPercent(alpha)) / 100
	step := func(ch uint8) uint8 {
		v := math.Floor(float64(ch) + (lum-float64(ch))*f)
		return uint8(math.Max(0, math.Min(255, v)))
	}
	return RGB{R: step(src.R), G: step(src.G), B: step(src.B)}
}

// Mix linearly interpolates from a toward b; t is clamped to [0,1].
func Mix(a, b RGB, t float64) RGB {
	t = math.Max(0, math.Min(1, t))
	lerp := func(x, y uint8) uint8 {
		return uint8(math.Round(float64(x)*(1-t) + float64(y)*t))
	}
	return RGB{R: lerp(a.R, b.R), G: lerp(a.G, b.G), B: lerp(a.B, b.B)}
}

// ClampPercent clamps v to [0,100].
func ClampPercent(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
