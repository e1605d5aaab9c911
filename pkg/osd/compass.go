// pkg/osd/compass.go
// Copyright(c) 2026 osd contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package osd

import (
	"fmt"

	"github.com/mmp/osd/pkg/celestial"
	"github.com/mmp/osd/pkg/math"
	"github.com/mmp/osd/pkg/renderer"
)

// perspectiveScale flattens the compass rings vertically so the widget
// reads as a disc seen at a slant rather than from straight above.
const perspectiveScale = 0.5

// compassWidget renders the radar compass: concentric range rings with
// distance labels, rotating cardinal letters, a wedge showing the active
// camera's field of view, and sun and moon markers. The display is
// heading-up, so the rose turns under a fixed forward-pointing wedge.
type compassWidget struct {
	config *Config

	ringLabelFont *renderer.Font
	cardinalFont  *renderer.Font

	celestialEnabled  bool
	sunIcon, moonIcon *renderer.Texture
}

func newCompassWidget(config *Config) *compassWidget {
	return &compassWidget{config: config}
}

func (w *compassWidget) Name() string { return "radar compass" }

func (w *compassWidget) Activate(ctx *ActivateContext) error {
	cfg := &w.config.RadarCompass

	var err error
	if w.ringLabelFont, err = renderer.MakeFont(cfg.RingLabelFontSize, false); err != nil {
		return err
	}
	if w.cardinalFont, err = renderer.MakeFont(cfg.CardinalFontSize, false); err != nil {
		return err
	}

	cel := &w.config.Celestial
	w.celestialEnabled = cel.Enabled
	if w.celestialEnabled {
		if w.sunIcon, err = LoadIcon(cel.SunIcon, IconSun); err != nil {
			ctx.Lg.Warnf("radar compass: sun icon %q: %v; celestial markers disabled", cel.SunIcon, err)
			w.celestialEnabled = false
		}
		if w.moonIcon, err = LoadIcon(cel.MoonIcon, IconMoon); err != nil {
			ctx.Lg.Warnf("radar compass: moon icon %q: %v; celestial markers disabled", cel.MoonIcon, err)
			w.celestialEnabled = false
		}
	}
	return nil
}

func (w *compassWidget) Deactivate() {
	w.ringLabelFont = nil
	w.cardinalFont = nil
	w.sunIcon, w.moonIcon = nil, nil
}

func (w *compassWidget) Draw(ctx *Context, fb *renderer.Framebuffer) bool {
	cfg := &w.config.RadarCompass
	size := cfg.Size
	rx := float32(size) / 2
	ry := rx * perspectiveScale
	cx := cfg.Position[0] + size/2
	cy := cfg.Position[1] + int(float32(size)*perspectiveScale/2)

	// Heading-up: the rose counter-rotates against the compass azimuth.
	var rotation float32
	if att, ok := ctx.Rec.Orientation(); ok {
		rotation = -att.Azimuth
	}

	w.drawRings(fb, cx, cy, rx, ry)
	if cfg.ShowRingLabels {
		w.drawRingLabels(fb, cx, cy, rx)
	}
	w.drawFOVWedge(ctx, fb, cx, cy, rx, ry)
	w.drawCardinals(fb, cx, cy, rx, ry, rotation)
	if w.celestialEnabled {
		w.drawCelestialMarkers(ctx, fb, cx, cy, rx, ry, rotation)
	}
	return true
}

// maxRingDistance scales the rings so the longest range lands on the
// widget edge. The distances are taken in config order, last one
// outermost.
func (w *compassWidget) maxRingDistance() float32 {
	d := w.config.RadarCompass.RingDistances
	if len(d) == 0 {
		return 0
	}
	return d[len(d)-1]
}

func (w *compassWidget) drawRings(fb *renderer.Framebuffer, cx, cy int, rx, ry float32) {
	cfg := &w.config.RadarCompass
	maxDist := w.maxRingDistance()
	if maxDist <= 0 {
		return
	}

	color := cfg.RingColor.Pack()
	for _, d := range cfg.RingDistances {
		scale := d / maxDist
		fb.DrawEllipseOutline(cx, cy, rx*scale, ry*scale, color, cfg.RingThickness)
	}
}

func (w *compassWidget) drawRingLabels(fb *renderer.Framebuffer, cx, cy int, rx float32) {
	cfg := &w.config.RadarCompass
	maxDist := w.maxRingDistance()
	if maxDist <= 0 {
		return
	}

	color := cfg.RingColor.Pack()
	for _, d := range cfg.RingDistances {
		ringRx := rx * (d / maxDist)

		var label string
		if d >= 1 {
			label = fmt.Sprintf("%.0fkm", d)
		} else {
			label = fmt.Sprintf("%.0fm", d*1000)
		}

		// Each label sits where its ring crosses the east axis, nudged
		// right so it clears the ring stroke.
		x := cx + int(ringRx) - w.ringLabelFont.MeasureWidth(label)/2 + 5
		y := cy - cfg.RingLabelFontSize/2
		fb.DrawTextOutlined(label, x, y, w.ringLabelFont, color, 0xff000000, 1)
	}
}

func (w *compassWidget) drawFOVWedge(ctx *Context, fb *renderer.Framebuffer, cx, cy int, rx, ry float32) {
	cfg := &w.config.RadarCompass

	fov := ctx.Rec.FOV()
	if fov <= 0 {
		fov = 45
	}

	fb.DrawEllipseWedgeFilled(cx, cy, rx, ry, -fov/2, fov/2, cfg.FOVFillColor.Pack())
	fb.DrawEllipseWedgeOutline(cx, cy, rx, ry, -fov/2, fov/2, cfg.FOVOutlineColor.Pack(), cfg.FOVOutlineThickness)
}

var cardinalNames = [4]string{"N", "E", "S", "W"}

func (w *compassWidget) drawCardinals(fb *renderer.Framebuffer, cx, cy int, rx, ry, rotation float32) {
	cfg := &w.config.RadarCompass
	color := cfg.CardinalColor.Pack()

	for i, name := range cardinalNames {
		sc := math.SinCos(math.CompassRadians(float32(90*i) + rotation))
		px := cx + int(0.85*rx*sc[1])
		py := cy - int(0.85*ry*sc[0])

		x := px - w.cardinalFont.MeasureWidth(name)/2
		y := py - cfg.CardinalFontSize/2
		fb.DrawTextOutlined(name, x, y, w.cardinalFont, color, 0xff000000, 1)
	}
}

// drawCelestialMarkers places the sun and moon at their azimuth on the
// rose. Bodies below the horizon still draw, shrunk and faded by
// altitude, so the operator can anticipate where one will rise.
func (w *compassWidget) drawCelestialMarkers(ctx *Context, fb *renderer.Framebuffer, cx, cy int, rx, ry, rotation float32) {
	fix, ok := ctx.Rec.GPS()
	if !ok {
		return
	}
	when, ok := ctx.Rec.CelestialTime()
	if !ok {
		return
	}

	cel := &w.config.Celestial
	obs := celestial.Observer{
		Latitude:  fix.Latitude,
		Longitude: fix.Longitude,
		Altitude:  fix.Altitude,
	}
	positions := celestial.Calculate(when.Unix(), obs)

	base := w.config.RadarCompass.Size / 8

	bodies := []struct {
		pos  celestial.Position
		show bool
		icon *renderer.Texture
	}{
		{positions.Sun, cel.ShowSun, w.sunIcon},
		{positions.Moon, cel.ShowMoon, w.moonIcon},
	}
	for _, b := range bodies {
		if !b.show || !b.pos.Valid || b.icon == nil {
			continue
		}

		x, y := celestial.CompassPosition(b.pos, rotation, cx, cy, rx, ry)
		scale, alpha := celestial.AltitudePresentation(b.pos.Altitude)
		scale *= cel.IndicatorScale

		ind := max(int(float32(base)*scale), 8)
		fb.DrawTexture(b.icon, x-ind/2, y-ind/2, ind, ind, alpha)
	}
}
