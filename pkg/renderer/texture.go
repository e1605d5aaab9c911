// pkg/renderer/texture.go
// Copyright(c) 2026 osd contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package renderer

import (
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"io"

	"github.com/nfnt/resize"

	gomath "math"
)

// Texture is an immutable RGBA image sampled by the sphere renderer.
// Pixels use the same packed representation as the framebuffer.
type Texture struct {
	Width, Height int
	pix           []uint32
}

// TextureFromImage packs an image into a Texture, converting through
// NRGBA so that alpha stays straight.
func TextureFromImage(img image.Image) *Texture {
	b := img.Bounds()
	nrgba, ok := img.(*image.NRGBA)
	if !ok {
		nrgba = image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(nrgba, nrgba.Bounds(), img, b.Min, draw.Src)
		b = nrgba.Bounds()
	}

	t := &Texture{Width: b.Dx(), Height: b.Dy()}
	t.pix = make([]uint32, t.Width*t.Height)
	for y := 0; y < t.Height; y++ {
		row := nrgba.Pix[(y+b.Min.Y-nrgba.Rect.Min.Y)*nrgba.Stride:]
		for x := 0; x < t.Width; x++ {
			p := row[(x+b.Min.X-nrgba.Rect.Min.X)*4:]
			t.pix[y*t.Width+x] = uint32(p[3])<<24 | uint32(p[2])<<16 | uint32(p[1])<<8 | uint32(p[0])
		}
	}
	return t
}

// DecodeTexture reads a PNG image and packs it into a Texture.
func DecodeTexture(r io.Reader) (*Texture, error) {
	img, err := png.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decoding texture: %w", err)
	}
	return TextureFromImage(img), nil
}

// Image converts back to a standard image, for resampling and encoding.
func (t *Texture) Image() image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, t.Width, t.Height))
	for y := 0; y < t.Height; y++ {
		for x := 0; x < t.Width; x++ {
			p := t.pix[y*t.Width+x]
			i := y*img.Stride + x*4
			img.Pix[i] = uint8(p)
			img.Pix[i+1] = uint8(p >> 8)
			img.Pix[i+2] = uint8(p >> 16)
			img.Pix[i+3] = uint8(p >> 24)
		}
	}
	return img
}

// Resized returns a copy resampled to the given dimensions with a
// Mitchell-Netravali filter, or the texture itself if it already matches.
func (t *Texture) Resized(width, height int) *Texture {
	if t.Width == width && t.Height == height {
		return t
	}
	return TextureFromImage(resize.Resize(uint(width), uint(height), t.Image(), resize.MitchellNetravali))
}

// Sample bilinearly interpolates the texture at (u, v), with both
// coordinates wrapping so that an equirectangular skin is seamless at the
// antimeridian. A nil texture samples as opaque black.
func (t *Texture) Sample(u, v float32) uint32 {
	if t == nil || len(t.pix) == 0 {
		return 0xff000000
	}

	u -= float32(gomath.Floor(float64(u)))
	v -= float32(gomath.Floor(float64(v)))

	fx := u * float32(t.Width)
	fy := v * float32(t.Height)

	// u or v of exactly 1 lands on width/height; fold it back before
	// taking the integer texel index.
	fx = float32(gomath.Mod(float64(fx), float64(t.Width)))
	fy = float32(gomath.Mod(float64(fy), float64(t.Height)))

	x0, y0 := int(fx), int(fy)
	x1 := (x0 + 1) % t.Width
	y1 := (y0 + 1) % t.Height

	tx := fx - float32(x0)
	ty := fy - float32(y0)

	p00 := t.pix[y0*t.Width+x0]
	p10 := t.pix[y0*t.Width+x1]
	p01 := t.pix[y1*t.Width+x0]
	p11 := t.pix[y1*t.Width+x1]

	w00 := (1 - tx) * (1 - ty)
	w10 := tx * (1 - ty)
	w01 := (1 - tx) * ty
	w11 := tx * ty

	lerp := func(shift uint32) uint32 {
		c00 := float32((p00 >> shift) & 255)
		c10 := float32((p10 >> shift) & 255)
		c01 := float32((p01 >> shift) & 255)
		c11 := float32((p11 >> shift) & 255)
		return uint32(w00*c00 + w10*c10 + w01*c01 + w11*c11)
	}

	return lerp(24)<<24 | lerp(16)<<16 | lerp(8)<<8 | lerp(0)
}

// Get returns the packed texel at (x, y) without filtering; out of range
// coordinates return transparent black.
func (t *Texture) Get(x, y int) uint32 {
	if t == nil || x < 0 || y < 0 || x >= t.Width || y >= t.Height {
		return 0
	}
	return t.pix[y*t.Width+x]
}

// DrawTexture samples t across a w x h rectangle whose top left corner is
// at (x, y), scaling sample alpha by the given factor. Icons smaller or
// larger than their nominal size go through the same bilinear filter the
// sphere shading uses.
func (fb *Framebuffer) DrawTexture(t *Texture, x, y, w, h int, alpha float32) {
	if t == nil || w <= 0 || h <= 0 {
		return
	}
	for j := 0; j < h; j++ {
		v := (float32(j) + 0.5) / float32(h)
		for i := 0; i < w; i++ {
			u := (float32(i) + 0.5) / float32(w)
			c := t.Sample(u, v)
			if alpha != 1 {
				c = ScalePackedAlpha(c, alpha)
			}
			fb.BlendPixel(x+i, y+j, c)
		}
	}
}
