// pkg/renderer/framebuffer.go
// Copyright(c) 2026 osd contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package renderer

import (
	"image"
	"image/color"
)

// Framebuffer is a fixed-size RGBA pixel buffer that all of the drawing
// routines render into. Pixels are packed uint32s as described in rgb.go.
// The buffer is allocated once and reused across frames; Clear resets it
// to fully transparent without reallocating.
//
// All shape drawing goes through BlendPixel, which is bounds checked, so
// callers are free to draw geometry that extends past the edges.
type Framebuffer struct {
	Width, Height int
	pix           []uint32
}

func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		Width:  width,
		Height: height,
		pix:    make([]uint32, width*height),
	}
}

// Clear resets every pixel to transparent black.
func (fb *Framebuffer) Clear() {
	clear(fb.pix)
}

// Pixels returns the underlying pixel storage in row-major order. The
// slice aliases the framebuffer's memory; it is valid until the next
// draw or Clear call.
func (fb *Framebuffer) Pixels() []uint32 {
	return fb.pix
}

// Get returns the packed pixel at (x, y), or 0 if out of bounds.
func (fb *Framebuffer) Get(x, y int) uint32 {
	if x < 0 || y < 0 || x >= fb.Width || y >= fb.Height {
		return 0
	}
	return fb.pix[y*fb.Width+x]
}

// BlendPixel composites color over the existing pixel at (x, y) using the
// standard over operator with straight alpha. Coordinates outside the
// buffer are silently ignored.
func (fb *Framebuffer) BlendPixel(x, y int, color uint32) {
	if x < 0 || y < 0 || x >= fb.Width || y >= fb.Height {
		return
	}
	sa := color >> 24
	idx := y*fb.Width + x
	switch sa {
	case 0:
		return
	case 255:
		fb.pix[idx] = color
	default:
		d := fb.pix[idx]
		sr, sg, sb := color&255, (color>>8)&255, (color>>16)&255
		dr, dg, db := d&255, (d>>8)&255, (d>>16)&255
		inv := 255 - sa
		r := (sr*sa + dr*inv) / 255
		g := (sg*sa + dg*inv) / 255
		b := (sb*sa + db*inv) / 255
		a := sa + (d>>24)*inv/255
		fb.pix[idx] = a<<24 | b<<16 | g<<8 | r
	}
}

///////////////////////////////////////////////////////////////////////////
// image interop

// Framebuffer implements draw.Image so that text can be composited with
// the x/image font machinery and so that frames can be handed directly to
// image encoders. Shape primitives never use Set; they only blend.

func (fb *Framebuffer) ColorModel() color.Model {
	return color.NRGBAModel
}

func (fb *Framebuffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, fb.Width, fb.Height)
}

func (fb *Framebuffer) At(x, y int) color.Color {
	if x < 0 || y < 0 || x >= fb.Width || y >= fb.Height {
		return color.NRGBA{}
	}
	p := fb.pix[y*fb.Width+x]
	return color.NRGBA{R: uint8(p), G: uint8(p >> 8), B: uint8(p >> 16), A: uint8(p >> 24)}
}

func (fb *Framebuffer) Set(x, y int, c color.Color) {
	if x < 0 || y < 0 || x >= fb.Width || y >= fb.Height {
		return
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	fb.pix[y*fb.Width+x] = uint32(n.A)<<24 | uint32(n.B)<<16 | uint32(n.G)<<8 | uint32(n.R)
}
