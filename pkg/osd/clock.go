// pkg/osd/clock.go
// Copyright(c) 2026 osd contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package osd

import "github.com/mmp/osd/pkg/renderer"

const clockLayout = "2006-01-02 15:04:05Z"

// clockWidget draws the telemetry wall clock, UTC with one second
// resolution. A record with no time draws nothing rather than a fake
// epoch date.
type clockWidget struct {
	config *Config
	font   *renderer.Font
	last   string
}

func newClockWidget(config *Config) *clockWidget {
	return &clockWidget{config: config}
}

func (w *clockWidget) Name() string { return "timestamp" }

func (w *clockWidget) Activate(ctx *ActivateContext) error {
	var err error
	w.font, err = renderer.MakeFont(w.config.Timestamp.FontSize, false)
	return err
}

func (w *clockWidget) Deactivate() {
	w.font = nil
}

// Draw reports change at second granularity: consecutive frames within
// the same second do not force an encoder repaint on their own.
func (w *clockWidget) Draw(ctx *Context, fb *renderer.Framebuffer) bool {
	if ctx.Rec.Time.IsZero() {
		changed := w.last != ""
		w.last = ""
		return changed
	}

	s := ctx.Rec.Time.UTC().Format(clockLayout)
	cfg := &w.config.Timestamp
	fb.DrawTextOutlined(s, cfg.Position[0], cfg.Position[1], w.font, cfg.Color.Pack(), 0xff000000, 1)

	changed := s != w.last
	w.last = s
	return changed
}
