// pkg/osd/osd.go
// Copyright(c) 2026 osd contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package osd renders telemetry-driven overlay widgets (orientation
// sphere, radar compass, crosshair, timestamp, status block) into a
// shared RGBA framebuffer, once per telemetry update.
package osd

import (
	"errors"
	"fmt"

	"github.com/mmp/osd/pkg/log"
	"github.com/mmp/osd/pkg/renderer"
	"github.com/mmp/osd/pkg/telemetry"
	"github.com/mmp/osd/pkg/util"
)

// ActivateContext carries what widgets need while loading resources.
type ActivateContext struct {
	Config *Config
	Lg     *log.Logger
}

// Context carries per-frame state into widget Draw calls.
type Context struct {
	Rec        *telemetry.Record
	FrameCount uint64
	Lg         *log.Logger
}

// Widget is the contract every overlay element implements: Activate
// loads resources and may fail hard, Draw renders into the shared
// framebuffer and reports whether its output may differ from the
// previous frame. Draw must not do I/O.
type Widget interface {
	Name() string
	Activate(ctx *ActivateContext) error
	Deactivate()
	Draw(ctx *Context, fb *renderer.Framebuffer) bool
}

// OSD owns the framebuffer and the active widget set. It is not safe
// for concurrent use; renders are strictly sequential.
type OSD struct {
	config     Config
	fb         *renderer.Framebuffer
	widgets    []Widget
	rec        *telemetry.Record
	frameCount uint64
	lg         *log.Logger
}

// New validates the config, allocates the framebuffer, and activates
// every enabled widget. Widgets whose activation fails are dropped and
// their errors joined into the returned error; the engine is still
// usable with the surviving widgets. Reconfiguration is Destroy + New.
func New(config Config, lg *log.Logger) (*OSD, error) {
	var e util.ErrorLogger
	config.Validate(&e)
	if e.HaveErrors() {
		e.PrintErrors(lg)
		return nil, errors.New(e.String())
	}

	o := &OSD{
		config: config,
		fb:     renderer.NewFramebuffer(config.Width, config.Height),
		lg:     lg,
	}
	// The ring distance slice is the one reference type in Config; copy
	// it so the caller cannot reach engine state through their original.
	o.config.RadarCompass.RingDistances = util.DuplicateSlice(config.RadarCompass.RingDistances)

	// Back to front: later widgets draw over earlier ones.
	var candidates []Widget
	if config.RadarCompass.Enabled {
		candidates = append(candidates, newCompassWidget(&o.config))
	}
	if config.Navball.Enabled {
		candidates = append(candidates, newNavballWidget(&o.config))
	}
	if config.Crosshair.Enabled {
		candidates = append(candidates, newCrosshairWidget(&o.config))
	}
	if config.Timestamp.Enabled {
		candidates = append(candidates, newClockWidget(&o.config))
	}
	if config.Status.Enabled {
		candidates = append(candidates, newStatusWidget(&o.config))
	}

	actx := &ActivateContext{Config: &o.config, Lg: lg}
	var errs []error
	for _, w := range candidates {
		if err := w.Activate(actx); err != nil {
			lg.Errorf("%s: activation failed: %v", w.Name(), err)
			errs = append(errs, fmt.Errorf("%s: %w", w.Name(), err))
			continue
		}
		o.widgets = append(o.widgets, w)
	}

	return o, errors.Join(errs...)
}

// Config returns a deep copy of the engine's configuration; callers
// cannot reach engine state through it.
func (o *OSD) Config() Config {
	return o.config.Duplicate()
}

// Framebuffer exposes the pixel buffer the widgets render into:
// row-major RGBA, origin top left. The engine owns it for its lifetime.
func (o *OSD) Framebuffer() *renderer.Framebuffer {
	return o.fb
}

// Widgets returns the names of the successfully activated widgets in
// draw order.
func (o *OSD) Widgets() []string {
	return util.MapSlice(o.widgets, func(w Widget) string { return w.Name() })
}

// UpdateTelemetry installs the record the next Render will draw from.
func (o *OSD) UpdateTelemetry(rec *telemetry.Record) {
	o.rec = rec
}

// Render clears the framebuffer and draws the widget set back to front,
// reporting whether any widget's output may differ from the previous
// frame. A frame with no telemetry yet renders against an empty record;
// widgets skip whatever they cannot draw.
func (o *OSD) Render() bool {
	o.frameCount++

	rec := o.rec
	if rec == nil {
		rec = &telemetry.Record{}
	}
	ctx := &Context{Rec: rec, FrameCount: o.frameCount, Lg: o.lg}

	o.fb.Clear()
	changed := false
	for _, w := range o.widgets {
		changed = w.Draw(ctx, o.fb) || changed
	}
	return changed
}

// Destroy deactivates the widgets and releases the framebuffer. The
// engine must not be used afterward.
func (o *OSD) Destroy() {
	for _, w := range o.widgets {
		w.Deactivate()
	}
	o.widgets = nil
	o.fb = nil
	o.rec = nil
}
