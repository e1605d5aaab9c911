// pkg/osd/crosshair.go
// Copyright(c) 2026 osd contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package osd

import (
	"fmt"

	"github.com/mmp/osd/pkg/math"
	"github.com/mmp/osd/pkg/renderer"
)

// Distances from the crosshair center to the gimbal rate readouts.
const (
	speedRadiusHorizontal = 110
	speedRadiusVertical   = 90
)

// crosshairWidget draws the boresight at the screen center plus the
// camera's calibration offset: an optional aiming circle, the cross
// itself, a center dot, and the gimbal rate readouts beside it.
type crosshairWidget struct {
	config    *Config
	speedFont *renderer.Font
}

func newCrosshairWidget(config *Config) *crosshairWidget {
	return &crosshairWidget{config: config}
}

func (w *crosshairWidget) Name() string { return "crosshair" }

func (w *crosshairWidget) Activate(ctx *ActivateContext) error {
	if w.config.Speed.Enabled {
		var err error
		if w.speedFont, err = renderer.MakeFont(w.config.Speed.FontSize, false); err != nil {
			return err
		}
	}
	return nil
}

func (w *crosshairWidget) Deactivate() {
	w.speedFont = nil
}

func (w *crosshairWidget) Draw(ctx *Context, fb *renderer.Framebuffer) bool {
	cfg := &w.config.Crosshair

	ox, oy := ctx.Rec.CrosshairOffset()
	cx := fb.Width/2 + ox
	cy := fb.Height/2 + oy

	if cfg.Circle.Enabled {
		fb.DrawCircleOutline(cx, cy, cfg.CircleRadius, cfg.Circle.Color.Pack(), cfg.Circle.Thickness)
	}
	if cfg.Cross.Enabled {
		w.drawCross(fb, cx, cy)
	}
	if cfg.CenterDot.Enabled {
		fb.DrawFilledCircle(cx, cy, cfg.CenterDotRadius, cfg.CenterDot.Color.Pack())
	}
	if w.config.Speed.Enabled {
		w.drawSpeedIndicators(ctx, fb, cx, cy)
	}
	return true
}

func (w *crosshairWidget) drawCross(fb *renderer.Framebuffer, cx, cy int) {
	cfg := &w.config.Crosshair
	color := cfg.Cross.Color.Pack()
	t := cfg.Cross.Thickness
	gap := cfg.CrossGap
	outer := gap + cfg.CrossLength

	if cfg.Orientation == "diagonal" {
		// sqrt(2)/2, so the diagonal arms span the same circle as the
		// vertical ones.
		g := int(gap * 0.707)
		o := int(outer * 0.707)
		for _, s := range [4][2]int{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}} {
			fb.DrawLine(cx+s[0]*g, cy+s[1]*g, cx+s[0]*o, cy+s[1]*o, color, t)
		}
		return
	}

	gi, oi := int(gap), int(outer)
	fb.DrawLine(cx, cy-gi, cx, cy-oi, color, t)
	fb.DrawLine(cx, cy+gi, cx, cy+oi, color, t)
	fb.DrawLine(cx-gi, cy, cx-oi, cy, color, t)
	fb.DrawLine(cx+gi, cy, cx+oi, cy, color, t)
}

// drawSpeedIndicators shows the commanded gimbal rates in degrees per
// second while the drive is slewing: azimuth beside the crosshair on the
// side it is turning toward, elevation above or below it. Rates at or
// under the threshold are considered jitter and not shown.
func (w *crosshairWidget) drawSpeedIndicators(ctx *Context, fb *renderer.Framebuffer, cx, cy int) {
	cfg := &w.config.Speed

	az, el, moving := ctx.Rec.GimbalRates()
	if !moving {
		return
	}

	color := cfg.Color.Pack()
	draw := func(s string, x, y int) {
		fb.DrawTextOutlined(s, x-w.speedFont.MeasureWidth(s)/2, y-cfg.FontSize/2,
			w.speedFont, color, 0xff000000, 1)
	}

	if math.Abs(az) > cfg.Threshold {
		x := cx + speedRadiusHorizontal
		if az < 0 {
			x = cx - speedRadiusHorizontal
		}
		draw(fmt.Sprintf("%.3f", math.Abs(az*cfg.MaxAzimuthRate)), x, cy)
	}
	if math.Abs(el) > cfg.Threshold {
		y := cy + speedRadiusVertical
		if el > 0 {
			y = cy - speedRadiusVertical
		}
		draw(fmt.Sprintf("%.3f", math.Abs(el*cfg.MaxElevationRate)), cx, y)
	}
}
