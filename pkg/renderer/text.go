// pkg/renderer/text.go
// Copyright(c) 2026 osd contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package renderer

import (
	"image"
	"image/color"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Font is a face at a fixed pixel size. Size is the nominal line height;
// text drawn at (x, y) occupies roughly the box from y to y+Size.
type Font struct {
	Size   int
	Mono   bool
	face   font.Face
	ascent fixed.Int26_6
}

var (
	parseRegular = sync.OnceValues(func() (*opentype.Font, error) { return opentype.Parse(goregular.TTF) })
	parseMono    = sync.OnceValues(func() (*opentype.Font, error) { return opentype.Parse(gomono.TTF) })
)

// MakeFont returns a font at the given pixel size, using the Go mono
// typeface if mono is set and the regular one otherwise.
func MakeFont(size int, mono bool) (*Font, error) {
	parse := parseRegular
	if mono {
		parse = parseMono
	}
	fnt, err := parse()
	if err != nil {
		return nil, err
	}

	face, err := opentype.NewFace(fnt, &opentype.FaceOptions{
		Size:    float64(size),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, err
	}

	return &Font{Size: size, Mono: mono, face: face, ascent: face.Metrics().Ascent}, nil
}

// MeasureWidth returns the advance width of s in pixels.
func (f *Font) MeasureWidth(s string) int {
	if f == nil {
		return 0
	}
	return font.MeasureString(f.face, s).Ceil()
}

func packedNRGBA(p uint32) color.NRGBA {
	return color.NRGBA{R: uint8(p), G: uint8(p >> 8), B: uint8(p >> 16), A: uint8(p >> 24)}
}

// DrawText draws a single line of text with its top left corner at
// (x, y). A nil font draws nothing.
func (fb *Framebuffer) DrawText(s string, x, y int, f *Font, fg uint32) {
	if f == nil || s == "" {
		return
	}
	d := font.Drawer{
		Dst:  fb,
		Src:  image.NewUniform(packedNRGBA(fg)),
		Face: f.face,
		Dot:  fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y) + f.ascent},
	}
	d.DrawString(s)
}

// DrawTextOutlined draws text over an outline rendered by stamping the
// string at every offset within outlinePx, which keeps it legible against
// video backgrounds of any brightness.
func (fb *Framebuffer) DrawTextOutlined(s string, x, y int, f *Font, fg, outline uint32, outlinePx int) {
	if f == nil || s == "" {
		return
	}
	for dy := -outlinePx; dy <= outlinePx; dy++ {
		for dx := -outlinePx; dx <= outlinePx; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			fb.DrawText(s, x+dx, y+dy, f, outline)
		}
	}
	fb.DrawText(s, x, y, f, fg)
}
