// pkg/osd/status.go
// Copyright(c) 2026 osd contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package osd

import (
	"fmt"
	gomath "math"
	"strings"

	"github.com/mmp/osd/pkg/renderer"
	"github.com/mmp/osd/pkg/telemetry"
	"github.com/mmp/osd/pkg/util"
)

const (
	// Frame delta statistics cover the samples from the trailing window;
	// the history is sized for it at the nominal telemetry rate.
	deltaHistorySize = 150
	deltaWindowUS    = 5_000_000
)

type deltaSample struct {
	tsUS    int64
	deltaMS float64
}

// statusWidget renders the diagnostic block: variant, timing, resolution,
// widget states, gimbal motion, and build identification. It is meant for
// bench work, not operators, and deliberately repaints every frame so
// encoder keyframe behavior can be checked with it.
type statusWidget struct {
	config *Config
	font   *renderer.Font

	history    *util.RingBuffer[deltaSample]
	lastSample int64
}

func newStatusWidget(config *Config) *statusWidget {
	return &statusWidget{config: config}
}

func (w *statusWidget) Name() string { return "variant info" }

// Activate uses the mono face since the delta statistics only line up in
// fixed width digits.
func (w *statusWidget) Activate(ctx *ActivateContext) error {
	var err error
	w.font, err = renderer.MakeFont(w.config.Status.FontSize, true)
	return err
}

func (w *statusWidget) Deactivate() {
	w.font = nil
	w.history = nil
}

func (w *statusWidget) Draw(ctx *Context, fb *renderer.Framebuffer) bool {
	cfg := &w.config.Status
	rec := ctx.Rec

	color := cfg.Color.Pack()
	x, y := cfg.Position[0], cfg.Position[1]
	lineHeight := cfg.FontSize + 4

	line := func(s string) {
		fb.DrawTextOutlined(s, x, y, w.font, color, 0xff000000, 1)
		y += lineHeight
	}

	variant := rec.Variant
	if variant == "" {
		variant = "unknown"
	}
	line("Variant: " + variant)
	y += 4

	line(fmt.Sprintf("Draw Count: %d", ctx.FrameCount))
	line(fmt.Sprintf("State Time: %d us", rec.MonotonicUS))
	frameLabel := util.Select(rec.ThermalActive(), "Heat Frame dt", "Day Frame dt")
	line(frameLabel + ": " + w.frameDelta(rec))
	line(fmt.Sprintf("Resolution: %dx%d", w.config.Width, w.config.Height))
	line("Mode: " + util.Select(strings.HasPrefix(variant, "recording"), "Recording", "Live"))

	line("Crosshair: " + enabledString(w.config.Crosshair.Enabled))
	line("Timestamp: " + enabledString(w.config.Timestamp.Enabled))
	line("Speed Indicators: " + enabledString(w.config.Speed.Enabled))
	line("Radar Compass: " + enabledString(w.config.RadarCompass.Enabled))
	line(fmt.Sprintf("Radar Pos: %d, %d",
		w.config.RadarCompass.Position[0], w.config.RadarCompass.Position[1]))
	line(fmt.Sprintf("Radar Size: %dpx", w.config.RadarCompass.Size))

	az, el, moving := rec.GimbalRates()
	line("Is Moving: " + util.Select(moving, "YES", "NO"))
	line(fmt.Sprintf("Az Speed: %.3f (%.1f deg)", az, az*w.config.Speed.MaxAzimuthRate))
	line(fmt.Sprintf("El Speed: %.3f (%.1f deg)", el, el*w.config.Speed.MaxElevationRate))

	build := CurrentBuild()
	line("Version: " + build.Version)
	line("Commit: " + build.Commit)
	line(fmt.Sprintf("Built: %s UTC", build.Built))

	line("[FORCES REPAINTS]")

	return true
}

func enabledString(on bool) string {
	return util.Select(on, "Enabled", "Disabled")
}

// frameDelta formats the age of the most recent camera frame relative to
// the telemetry state time, with running statistics once the trailing
// window holds enough samples.
func (w *statusWidget) frameDelta(rec *telemetry.Record) string {
	nowUS := rec.MonotonicUS
	frameUS := rec.FrameMonotonicUS()
	if nowUS == 0 || frameUS == 0 {
		return "N/A"
	}

	deltaMS := float64(nowUS-frameUS) / 1000
	w.recordDelta(nowUS, deltaMS)

	if mean, std, n := w.deltaStats(nowUS); n > 0 {
		return fmt.Sprintf("%+08.2f (avg %+08.2f std %07.2f n=%03d)", deltaMS, mean, std, n)
	}
	return fmt.Sprintf("%+08.2f ms", deltaMS)
}

// recordDelta appends a sample, starting the history over after a stall
// longer than the statistics window since samples from before a pipeline
// restart would poison the averages.
func (w *statusWidget) recordDelta(nowUS int64, deltaMS float64) {
	if w.history == nil || nowUS > w.lastSample+deltaWindowUS {
		w.history = util.NewRingBuffer[deltaSample](deltaHistorySize)
	}
	w.history.Add(deltaSample{tsUS: nowUS, deltaMS: deltaMS})
	w.lastSample = nowUS
}

// deltaStats returns the mean and population standard deviation of the
// samples inside the trailing window.
func (w *statusWidget) deltaStats(nowUS int64) (mean, std float64, n int) {
	cutoff := max(nowUS-deltaWindowUS, 0)

	var sum float64
	for i := 0; i < w.history.Size(); i++ {
		if s := w.history.Get(i); s.tsUS >= cutoff {
			sum += s.deltaMS
			n++
		}
	}
	if n == 0 {
		return 0, 0, 0
	}
	mean = sum / float64(n)

	var sq float64
	for i := 0; i < w.history.Size(); i++ {
		if s := w.history.Get(i); s.tsUS >= cutoff {
			sq += (s.deltaMS - mean) * (s.deltaMS - mean)
		}
	}
	return mean, gomath.Sqrt(sq / float64(n)), n
}
