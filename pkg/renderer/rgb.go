// pkg/renderer/rgb.go
// Copyright(c) 2026 osd contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package renderer

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/mmp/osd/pkg/math"
)

///////////////////////////////////////////////////////////////////////////
// RGB

type RGB struct {
	R, G, B float32
}

// RGBA is a straight (non-premultiplied) alpha color with components
// nominally in [0,1].
type RGBA struct {
	R, G, B, A float32
}

func LerpRGB(x float32, a, b RGB) RGB {
	return RGB{R: math.Lerp(x, a.R, b.R), G: math.Lerp(x, a.G, b.G), B: math.Lerp(x, a.B, b.B)}
}

func (r RGB) Equals(other RGB) bool {
	return r.R == other.R && r.G == other.G && r.B == other.B
}

func (r RGB) Scale(v float32) RGB {
	return RGB{R: r.R * v, G: r.G * v, B: r.B * v}
}

// RGBFromHex converts a packed integer color value to an RGB where the low
// 8 bits give blue, the next 8 give green, and then the next 8 give red.
func RGBFromHex(c int) RGB {
	r, g, b := (c>>16)&255, (c>>8)&255, c&255
	return RGB{R: float32(r) / 255, G: float32(g) / 255, B: float32(b) / 255}
}

func RGBFromUInt8(r uint8, g uint8, b uint8) RGB {
	return RGB{R: float32(r) / 255, G: float32(g) / 255, B: float32(b) / 255}
}

// Scale scales the color channels by v, leaving alpha unchanged.
func (c RGBA) Scale(v float32) RGBA {
	return RGBA{R: c.R * v, G: c.G * v, B: c.B * v, A: c.A}
}

///////////////////////////////////////////////////////////////////////////
// Packed colors

// The framebuffer and the low-level drawing routines represent colors
// packed into a uint32 with alpha in the most significant byte, then blue,
// green, and red in the least significant byte. Alpha is straight, not
// premultiplied. Packing the working color once per draw call keeps the
// per-pixel blend loop free of float conversions.

// Pack converts to the packed framebuffer representation, clamping each
// component to [0,1].
func (c RGBA) Pack() uint32 {
	q := func(v float32) uint32 {
		return uint32(math.Clamp(v, 0, 1)*255 + 0.5)
	}
	return q(c.A)<<24 | q(c.B)<<16 | q(c.G)<<8 | q(c.R)
}

// UnpackRGBA is the inverse of RGBA.Pack.
func UnpackRGBA(p uint32) RGBA {
	return RGBA{
		R: float32(p&0xff) / 255,
		G: float32((p>>8)&0xff) / 255,
		B: float32((p>>16)&0xff) / 255,
		A: float32(p>>24) / 255,
	}
}

// ScalePacked scales the color channels of a packed color by v, leaving
// alpha unchanged; v is expected to be in [0,1].
func ScalePacked(p uint32, v float32) uint32 {
	r := uint32(float32(p&0xff) * v)
	g := uint32(float32((p>>8)&0xff) * v)
	b := uint32(float32((p>>16)&0xff) * v)
	return p&0xff000000 | b<<16 | g<<8 | r
}

// ScalePackedAlpha scales only the alpha channel of a packed color.
func ScalePackedAlpha(p uint32, v float32) uint32 {
	a := uint32(math.Clamp(float32(p>>24)*v, 0, 255))
	return a<<24 | p&0x00ffffff
}

///////////////////////////////////////////////////////////////////////////
// JSON

// ParseHexColor parses a color of the form "#rrggbb" or "#rrggbbaa" (the
// leading '#' is optional); if no alpha digits are given, the color is
// fully opaque.
func ParseHexColor(s string) (RGBA, error) {
	hex := strings.TrimPrefix(s, "#")
	v, err := strconv.ParseUint(hex, 16, 64)
	if err != nil {
		return RGBA{}, fmt.Errorf("%s: invalid color specifier", s)
	}
	switch len(hex) {
	case 6:
		return RGBA{
			R: float32((v>>16)&255) / 255,
			G: float32((v>>8)&255) / 255,
			B: float32(v&255) / 255,
			A: 1,
		}, nil
	case 8:
		return RGBA{
			R: float32((v>>24)&255) / 255,
			G: float32((v>>16)&255) / 255,
			B: float32((v>>8)&255) / 255,
			A: float32(v&255) / 255,
		}, nil
	default:
		return RGBA{}, fmt.Errorf("%s: expected 6 or 8 hex digits", s)
	}
}

func (c *RGBA) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	rgba, err := ParseHexColor(s)
	if err != nil {
		return err
	}
	*c = rgba
	return nil
}

func (c RGBA) MarshalJSON() ([]byte, error) {
	p := c.Pack()
	r, g, b, a := p&255, (p>>8)&255, (p>>16)&255, p>>24
	if a == 255 {
		return []byte(fmt.Sprintf("\"#%02x%02x%02x\"", r, g, b)), nil
	}
	return []byte(fmt.Sprintf("\"#%02x%02x%02x%02x\"", r, g, b, a)), nil
}

// CheckJSON implements util.JSONChecker so that configuration validation
// accepts hex color strings where an RGBA is expected.
func (c RGBA) CheckJSON(json interface{}) bool {
	s, ok := json.(string)
	if !ok {
		return false
	}
	_, err := ParseHexColor(s)
	return err == nil
}
