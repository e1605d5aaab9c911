// pkg/osd/navball.go
// Copyright(c) 2026 osd contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package osd

import (
	"golang.org/x/sync/errgroup"

	"github.com/mmp/osd/pkg/celestial"
	"github.com/mmp/osd/pkg/math"
	"github.com/mmp/osd/pkg/renderer"
)

// spherePoint is one entry of the precomputed projection table: the unit
// vector from the sphere center through the pixel's point on the front
// hemisphere. Pixels outside the inscribed circle are invalid and skipped
// at render time.
type spherePoint struct {
	dir   [3]float32
	valid bool
}

// navballWidget renders the orientation sphere: a software-shaded ball
// wrapped in an equirectangular skin that rotates with the platform
// attitude, plus the level marker, center indicator, and sun and moon
// markers on top of it.
type navballWidget struct {
	config *Config

	lut  []spherePoint
	skin *renderer.Texture

	showCenterIndicator bool
	centerIcon          *renderer.Texture

	celestialEnabled    bool
	sunFront, sunBack   *renderer.Texture
	moonFront, moonBack *renderer.Texture
}

func newNavballWidget(config *Config) *navballWidget {
	return &navballWidget{config: config}
}

func (w *navballWidget) Name() string { return "navball" }

// Activate builds the projection table and loads the skin and icon
// textures, fetching them in parallel. A missing skin is a hard error; a
// missing center indicator or celestial icon just disables that overlay.
func (w *navballWidget) Activate(ctx *ActivateContext) error {
	cfg := &w.config.Navball
	cel := &w.config.Celestial

	w.lut = buildSphereLUT(cfg.Size)

	var g errgroup.Group
	g.Go(func() error {
		var err error
		w.skin, err = LoadSkin(cfg.Skin, cfg.Size, ctx.Lg)
		return err
	})

	w.showCenterIndicator = cfg.ShowCenterIndicator
	var centerErr error
	if w.showCenterIndicator {
		g.Go(func() error {
			w.centerIcon, centerErr = LoadIcon(cfg.CenterIndicatorIcon, IconCenterIndicator)
			return nil
		})
	}

	w.celestialEnabled = cel.Enabled
	slots := []struct {
		path string
		kind IconKind
		dst  **renderer.Texture
	}{
		{cel.SunFrontIcon, IconSun, &w.sunFront},
		{cel.SunBackIcon, IconSun, &w.sunBack},
		{cel.MoonFrontIcon, IconMoon, &w.moonFront},
		{cel.MoonBackIcon, IconMoon, &w.moonBack},
	}
	var slotErrs [4]error
	if w.celestialEnabled {
		for i, slot := range slots {
			i, slot := i, slot
			g.Go(func() error {
				*slot.dst, slotErrs[i] = LoadIcon(slot.path, slot.kind)
				return nil
			})
		}
	}

	if err := g.Wait(); err != nil {
		return err
	}

	if centerErr != nil {
		ctx.Lg.Warnf("navball: center indicator icon %q: %v; indicator disabled",
			cfg.CenterIndicatorIcon, centerErr)
		w.showCenterIndicator = false
		w.centerIcon = nil
	}
	for i, slot := range slots {
		if slotErrs[i] != nil {
			ctx.Lg.Warnf("navball: celestial icon %q: %v; celestial markers disabled",
				slot.path, slotErrs[i])
			w.celestialEnabled = false
			w.sunFront, w.sunBack, w.moonFront, w.moonBack = nil, nil, nil, nil
			break
		}
	}

	return nil
}

func (w *navballWidget) Deactivate() {
	w.lut = nil
	w.skin = nil
	w.centerIcon = nil
	w.sunFront, w.sunBack, w.moonFront, w.moonBack = nil, nil, nil, nil
}

// Draw renders the sphere and its overlays. Without telemetry the ball
// draws at zero attitude rather than vanishing.
func (w *navballWidget) Draw(ctx *Context, fb *renderer.Framebuffer) bool {
	cfg := &w.config.Navball
	size := cfg.Size
	bx, by := cfg.Position[0], cfg.Position[1]

	att, _ := ctx.Rec.PlatformAttitude()
	m := celestial.Attitude(att).RotationMatrix()

	w.drawSphere(fb, m, bx, by, size)

	if cfg.ShowLevelMarker {
		w.drawLevelMarker(fb, bx, by, size)
	}
	if w.showCenterIndicator && w.centerIcon != nil {
		ind := int(float32(size) * cfg.CenterIndicatorScale)
		fb.DrawTexture(w.centerIcon, bx+(size-ind)/2, by+(size-ind)/2, ind, ind, 1)
	}
	if w.celestialEnabled {
		w.drawCelestialMarkers(ctx, fb, m, bx, by, size)
	}
	return true
}

// buildSphereLUT precomputes the pixel-to-sphere-direction table for a
// size x size widget. The table depends only on the size, so it is built
// once at activation and shared by every frame.
func buildSphereLUT(size int) []spherePoint {
	lut := make([]spherePoint, size*size)
	radius := float32(size) / 2
	for y := 0; y < size; y++ {
		sy := float32(y) - radius
		for x := 0; x < size; x++ {
			sx := float32(x) - radius
			d2 := sx*sx + sy*sy
			if d2 > radius*radius {
				continue
			}
			sz := math.Sqrt(radius*radius - d2)
			lut[y*size+x] = spherePoint{
				dir:   math.Normalize3f([3]float32{sx, sy, sz}),
				valid: true,
			}
		}
	}
	return lut
}

// sphereTexCoords maps a rotated sphere surface direction to
// equirectangular texture coordinates, each in [0, 1].
func sphereTexCoords(r [3]float32) (u, v float32) {
	u = math.Atan2(r[0], r[2])/(2*math.Pi) + 0.5
	v = math.SafeASin(r[1])/math.Pi + 0.5
	return
}

// sphereLight is the fixed light direction, up and to the right of the
// viewer.
var sphereLight = math.Normalize3f([3]float32{0.3, 0.3, 1})

func (w *navballWidget) drawSphere(fb *renderer.Framebuffer, m math.Matrix3, bx, by, size int) {
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			sp := &w.lut[y*size+x]
			if !sp.valid {
				continue
			}

			// Rotate the surface point with the attitude and map it to
			// equirectangular texture coordinates.
			u, v := sphereTexCoords(m.TransformVec3(sp.dir))
			c := w.skin.Sample(u, v)

			// Shade with the unrotated normal so the terminator stays
			// fixed with respect to the viewer as the ball turns.
			light := 0.4 + 0.6*max(math.Dot3(sp.dir, sphereLight), 0)
			fb.BlendPixel(bx+x, by+y, renderer.ScalePacked(c, light))
		}
	}
}

// drawLevelMarker draws a one pixel white line across the sphere's
// equator row, clipped to the ball by the projection table.
func (w *navballWidget) drawLevelMarker(fb *renderer.Framebuffer, bx, by, size int) {
	y := size / 2
	for x := 0; x < size; x++ {
		if w.lut[y*size+x].valid {
			fb.BlendPixel(bx+x, by+y, 0xffffffff)
		}
	}
}

// drawCelestialMarkers projects the sun and moon onto the sphere.
// Markers on the hidden hemisphere draw smaller and half transparent so
// the operator can still find a body behind the ball.
func (w *navballWidget) drawCelestialMarkers(ctx *Context, fb *renderer.Framebuffer, m math.Matrix3, bx, by, size int) {
	fix, ok := ctx.Rec.GPS()
	if !ok || fix.Time.IsZero() {
		return
	}

	cel := &w.config.Celestial
	obs := celestial.Observer{
		Latitude:  fix.Latitude,
		Longitude: fix.Longitude,
		Altitude:  fix.Altitude,
	}
	positions := celestial.Calculate(fix.Time.Unix(), obs)

	cx, cy := bx+size/2, by+size/2
	radius := size / 2
	ind := int(float32(size) * 0.52 * cel.IndicatorScale)

	bodies := []struct {
		pos         celestial.Position
		show        bool
		front, back *renderer.Texture
	}{
		{positions.Sun, cel.ShowSun, w.sunFront, w.sunBack},
		{positions.Moon, cel.ShowMoon, w.moonFront, w.moonBack},
	}
	for _, b := range bodies {
		if !b.show || !b.pos.Valid || b.pos.Altitude < float64(cel.VisibilityThreshold) {
			continue
		}

		x, y, front := celestial.SpherePosition(b.pos, m, cx, cy, radius)

		icon, drawSize, alpha := b.front, ind, float32(1)
		if !front {
			icon, drawSize, alpha = b.back, int(float32(ind)*0.7), 0.5
		}
		if icon == nil {
			continue
		}
		fb.DrawTexture(icon, x-drawSize/2, y-drawSize/2, drawSize, drawSize, alpha)
	}
}
