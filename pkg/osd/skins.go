// pkg/osd/skins.go
// Copyright(c) 2026 osd contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package osd

import (
	"errors"
	"fmt"
	"image"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/mmp/osd/pkg/log"
	"github.com/mmp/osd/pkg/math"
	"github.com/mmp/osd/pkg/renderer"
	"github.com/mmp/osd/pkg/util"
)

// The navball skins are community Kerbal Space Program textures,
// equirectangular with the poles at the top and bottom edges.
var skinFilenames = map[string]string{
	"stock":              "stock.png",
	"stock_iva":          "stock-iva.png",
	"5th_horseman_v2":    "5thHorseman_v2-navball.png",
	"5th_horseman_black": "5thHorseman-navball_blackgrey_DIF.png",
	"5th_horseman_brown": "5thHorseman-navball_brownblue_DIF.png",
	"jafo":               "JAFO.png",
	"kbob":               "kBob_v2.2.png",
	"ordinary_kerman":    "OrdinaryKerman.png",
	"trekky":             "Trekky0623_DIF.png",
	"apollo":             "tooRelic_Apollo.png",
	"white_owl":          "White_Owl.png",
	"zasnold":            "Zasnold_DIF.png",
	"falconb":            "FalconB.png",
}

// BuiltinSkin is generated procedurally and needs no resource files; it
// is the default for the demo and for tests.
const BuiltinSkin = "builtin"

var ErrSkinNotFound = errors.New("navball skin not found")

// SkinNames returns every selectable skin name, the built-in one first.
func SkinNames() []string {
	names := []string{BuiltinSkin}
	return append(names, util.SortedMapKeys(skinFilenames)...)
}

// skinFilename falls back to the stock ball for unknown names.
func skinFilename(name string) string {
	if fn, ok := skinFilenames[name]; ok {
		return fn
	}
	return skinFilenames["stock"]
}

type skinKey struct {
	name string
	size int
}

// Rebuilding widgets after a reconfiguration should not redo the PNG
// decode and rescale, so finished skin textures are kept briefly.
var skinCache = expirable.NewLRU[skinKey, *renderer.Texture](8, nil, 30*time.Minute)

// LoadSkin returns the named skin rescaled for a sphere of the given
// diameter: the equirectangular map is brought to 2*size x size so the
// bilinear lookups during sphere shading stay cache-friendly. Results
// are cached across calls.
func LoadSkin(name string, size int, lg *log.Logger) (*renderer.Texture, error) {
	key := skinKey{name: name, size: size}
	if tex, ok := skinCache.Get(key); ok {
		return tex, nil
	}

	var tex *renderer.Texture
	if name == BuiltinSkin {
		tex = builtinSkin(2*size, size)
	} else {
		fn := "navball_skins/" + skinFilename(name)
		r, err := util.LoadResource(fn)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", fn, ErrSkinNotFound)
		}
		defer r.Close()

		tex, err = renderer.DecodeTexture(r)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", fn, err)
		}
		tex = tex.Resized(2*size, size)
		lg.Infof("%s: loaded navball skin at %dx%d", fn, 2*size, size)
	}

	skinCache.Add(key, tex)
	return tex, nil
}

// builtinSkin draws an artificial-horizon style ball: blue sky and brown
// ground hemispheres, a white horizon band, pitch ladder rungs every 10
// degrees, and heading ticks every 30 degrees along the horizon.
func builtinSkin(w, h int) *renderer.Texture {
	sky := renderer.RGB{R: 0.16, G: 0.42, B: 0.75}
	ground := renderer.RGB{R: 0.45, G: 0.27, B: 0.11}
	line := renderer.RGB{R: 0.92, G: 0.92, B: 0.92}

	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for j := 0; j < h; j++ {
		// The sphere shader maps the up pole to v=0, so the top rows
		// hold positive elevations.
		v := (float32(j) + 0.5) / float32(h)
		elev := (0.5 - v) * 180
		for i := 0; i < w; i++ {
			u := (float32(i) + 0.5) / float32(w)
			azim := (u - 0.5) * 360

			c := ground
			if elev > 0 {
				c = sky
			}

			// Fade toward the horizon so the ball reads as curved.
			fade := 1 - 0.3*math.Abs(elev)/90
			c = c.Scale(fade)

			if onBuiltinMarking(azim, elev) {
				c = renderer.LerpRGB(0.75, c, line)
			}

			p := img.PixOffset(i, j)
			img.Pix[p+0] = uint8(math.Clamp(c.R, 0, 1)*255 + 0.5)
			img.Pix[p+1] = uint8(math.Clamp(c.G, 0, 1)*255 + 0.5)
			img.Pix[p+2] = uint8(math.Clamp(c.B, 0, 1)*255 + 0.5)
			img.Pix[p+3] = 255
		}
	}
	return renderer.TextureFromImage(img)
}

func onBuiltinMarking(azim, elev float32) bool {
	// Horizon band.
	if math.Abs(elev) < 1 {
		return true
	}
	// Pitch ladder rungs every 10 degrees, broken into dashes.
	if d := math.Abs(math.Mod(elev, 10)); (d < 0.6 || d > 9.4) && math.Abs(elev) > 5 {
		da := math.Abs(math.Mod(azim, 30))
		if da < 8 || da > 22 {
			return true
		}
	}
	// Heading ticks every 30 degrees near the horizon.
	if math.Abs(elev) < 6 {
		if d := math.Abs(math.Mod(azim, 30)); d < 0.75 || d > 29.25 {
			return true
		}
	}
	return false
}

///////////////////////////////////////////////////////////////////////////
// Marker icons

// IconKind selects which procedurally generated icon stands in when a
// config value asks for "builtin".
type IconKind int

const (
	IconSun IconKind = iota
	IconMoon
	IconCenterIndicator
)

const builtinIconSize = 64

// LoadIcon resolves an icon config value: empty means no icon (and no
// error), "builtin" the generated one for the kind, anything else a PNG
// resource path.
func LoadIcon(value string, kind IconKind) (*renderer.Texture, error) {
	switch value {
	case "":
		return nil, nil
	case "builtin":
		switch kind {
		case IconSun:
			return builtinSunIcon(builtinIconSize), nil
		case IconMoon:
			return builtinMoonIcon(builtinIconSize), nil
		default:
			return builtinCenterIndicatorIcon(builtinIconSize), nil
		}
	default:
		r, err := util.LoadResource(value)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", value, err)
		}
		defer r.Close()

		tex, err := renderer.DecodeTexture(r)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", value, err)
		}
		return tex, nil
	}
}

func newIconImage(s int) *image.NRGBA {
	return image.NewNRGBA(image.Rect(0, 0, s, s))
}

func setIconPixel(img *image.NRGBA, x, y int, c renderer.RGBA) {
	p := img.PixOffset(x, y)
	img.Pix[p+0] = uint8(math.Clamp(c.R, 0, 1)*255 + 0.5)
	img.Pix[p+1] = uint8(math.Clamp(c.G, 0, 1)*255 + 0.5)
	img.Pix[p+2] = uint8(math.Clamp(c.B, 0, 1)*255 + 0.5)
	img.Pix[p+3] = uint8(math.Clamp(c.A, 0, 1)*255 + 0.5)
}

// builtinSunIcon is a filled disc with eight rays on a transparent
// background.
func builtinSunIcon(s int) *renderer.Texture {
	img := newIconImage(s)
	c := float32(s-1) / 2
	disc := 0.28 * float32(s)
	rayInner, rayOuter := 0.36*float32(s), 0.48*float32(s)
	sun := renderer.RGBA{R: 1, G: 0.85, B: 0.2, A: 1}

	for y := 0; y < s; y++ {
		for x := 0; x < s; x++ {
			dx, dy := float32(x)-c, float32(y)-c
			r := math.Sqrt(dx*dx + dy*dy)
			switch {
			case r <= disc:
				setIconPixel(img, x, y, sun)
			case r >= rayInner && r <= rayOuter:
				// Rays every 45 degrees, a few degrees wide.
				ang := math.Degrees(math.Atan2(dy, dx))
				d := math.Abs(math.Mod(ang+382.5, 45) - 22.5)
				if d < 5 {
					setIconPixel(img, x, y, sun)
				}
			}
		}
	}
	return renderer.TextureFromImage(img)
}

// builtinMoonIcon is a crescent: the lit disc minus an offset disc.
func builtinMoonIcon(s int) *renderer.Texture {
	img := newIconImage(s)
	c := float32(s-1) / 2
	disc := 0.4 * float32(s)
	bite := 0.36 * float32(s)
	biteOffset := 0.22 * float32(s)
	moon := renderer.RGBA{R: 0.85, G: 0.87, B: 0.95, A: 1}

	for y := 0; y < s; y++ {
		for x := 0; x < s; x++ {
			dx, dy := float32(x)-c, float32(y)-c
			in := dx*dx+dy*dy <= disc*disc
			bx := dx - biteOffset
			out := bx*bx+dy*dy > bite*bite
			if in && out {
				setIconPixel(img, x, y, moon)
			}
		}
	}
	return renderer.TextureFromImage(img)
}

// builtinCenterIndicatorIcon is a thin ring around a center dot, the
// boresight reticle drawn over the sphere.
func builtinCenterIndicatorIcon(s int) *renderer.Texture {
	img := newIconImage(s)
	c := float32(s-1) / 2
	ring := 0.44 * float32(s)
	ringHalfWidth := 0.05 * float32(s)
	dot := 0.1 * float32(s)
	white := renderer.RGBA{R: 1, G: 1, B: 1, A: 1}

	for y := 0; y < s; y++ {
		for x := 0; x < s; x++ {
			dx, dy := float32(x)-c, float32(y)-c
			r := math.Sqrt(dx*dx + dy*dy)
			if r <= dot || math.Abs(r-ring) <= ringHalfWidth {
				setIconPixel(img, x, y, white)
			}
		}
	}
	return renderer.TextureFromImage(img)
}
