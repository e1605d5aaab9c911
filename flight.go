// flight.go
// Copyright(c) 2026 osd contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package main

// Synthesized telemetry for running the overlay without a host: a slow
// banked orbit with the gimbal sweeping back and forth, which exercises
// every widget including the celestial markers.

import (
	"strings"
	"time"

	"github.com/mmp/osd/pkg/math"
	"github.com/mmp/osd/pkg/rand"
	"github.com/mmp/osd/pkg/telemetry"
)

const frameIntervalUS = 33_333 // 30 fps

type demoFlight struct {
	variant string
	thermal bool
	rand    rand.Rand
	frame   int
	start   time.Time
}

func newDemoFlight(variant string, seed int64) *demoFlight {
	r := rand.New()
	r.Seed(seed)
	return &demoFlight{
		variant: variant,
		thermal: strings.Contains(variant, "thermal"),
		rand:    r,
		start:   time.Now().UTC(),
	}
}

func (d *demoFlight) Next() (*telemetry.Record, error) {
	t := float32(d.frame) / 30 // seconds

	// One orbit every two minutes, the nose weaving lazily around the
	// direction of travel.
	heading := math.NormalizeHeading(3*t + 10*math.Sin(t/7))
	elevation := 12 * math.Sin(t/5)
	bank := 18 * math.Sin(t/9)

	// Orbit geometry, about a kilometer across, over the Rhine at Basel.
	angle := math.Radians(3 * t)
	lat := 47.56 + 0.005*float64(math.Cos(angle))
	lon := 7.59 + 0.005*float64(math.Sin(angle))

	nowUS := int64(d.frame+1) * frameIntervalUS
	// The cameras run a couple of frames behind the state stream.
	frameLag := int64(2000 + d.rand.Intn(6000))

	azRate := 0.8 * math.Sin(t/4)
	elRate := 0.5 * math.Cos(t/6)
	moving := math.Abs(azRate) > 0.05 || math.Abs(elRate) > 0.05

	when := d.start.Add(time.Duration(nowUS) * time.Microsecond)

	rec := &telemetry.Record{
		SpaceTime: &telemetry.SpaceTime{
			Azimuth:     heading,
			Elevation:   elevation,
			Bank:        bank,
			Latitude:    lat,
			Longitude:   lon,
			Altitude:    420 + 30*float64(math.Sin(t/11)),
			GroundSpeed: 31 + d.rand.Float32(),
			Time:        when,
		},
		Compass: &telemetry.Attitude{Azimuth: heading, Elevation: elevation, Bank: bank},
		Day:     &telemetry.Camera{HorizontalFOV: 62.2},
		Thermal: &telemetry.Camera{HorizontalFOV: 24},
		Recorder: &telemetry.Recorder{
			ThermalActive: d.thermal,
		},
		Rotary: &telemetry.Rotary{
			AzimuthRate:   azRate,
			ElevationRate: elRate,
			Moving:        moving,
		},
		Time:                    when,
		MonotonicUS:             nowUS,
		DayFrameMonotonicUS:     nowUS - frameLag,
		ThermalFrameMonotonicUS: nowUS - frameLag,
		Variant:                 d.variant,
	}

	d.frame++
	return rec, nil
}

func (d *demoFlight) Close() {}
