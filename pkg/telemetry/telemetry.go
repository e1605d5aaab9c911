// pkg/telemetry/telemetry.go
// Copyright(c) 2026 osd contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package telemetry defines the per-frame record the host delivers to the
// overlay engine and the wire codec for it. A Record carries several sensor
// source groups (inertial solution, magnetic compass, cameras, recorder,
// gimbal rotary); groups the host did not report are nil, and the accessor
// methods fold that absence into the zero values the widgets expect.
package telemetry

import (
	"fmt"
	"time"

	"github.com/mmp/osd/pkg/util"
	"github.com/vmihailenco/msgpack/v5"
)

// SpaceTime is the platform's fused position and attitude solution.
type SpaceTime struct {
	Azimuth     float32 // degrees, 0 north, increasing clockwise
	Elevation   float32 // degrees, positive above the horizon
	Bank        float32 // degrees, positive rolling right
	Latitude    float64 // degrees, positive north
	Longitude   float64 // degrees, positive east
	Altitude    float64 // meters
	GroundSpeed float32 // meters per second
	Time        time.Time
}

// Attitude is an orientation triple from a single sensor source.
type Attitude struct {
	Azimuth   float32
	Elevation float32
	Bank      float32
}

// Camera describes one imaging channel of the platform.
type Camera struct {
	HorizontalFOV float32 // degrees; zero or negative when unreported
}

// Recorder mirrors the host recorder state that affects overlay layout:
// which camera feeds the OSD and the per-camera crosshair displacement.
type Recorder struct {
	DayCrosshairOffsetX     int
	DayCrosshairOffsetY     int
	ThermalCrosshairOffsetX int
	ThermalCrosshairOffsetY int
	ThermalActive           bool
}

// Rotary reports the gimbal drive state; rates are normalized to [-1, 1]
// of the drive's maximum.
type Rotary struct {
	AzimuthRate   float32
	ElevationRate float32
	Moving        bool
}

// Record is a single telemetry update from the host.
type Record struct {
	SpaceTime *SpaceTime
	Compass   *Attitude
	Day       *Camera
	Thermal   *Camera
	Recorder  *Recorder
	Rotary    *Rotary

	// Wall clock; zero when the host has no time source.
	Time time.Time

	// Monotonic clocks in microseconds. MonotonicUS is the host clock at
	// the state update; the frame clocks give the capture time of each
	// camera's most recent frame.
	MonotonicUS             int64
	DayFrameMonotonicUS     int64
	ThermalFrameMonotonicUS int64

	Variant string
}

// Fix is a position solution together with the time it was taken.
type Fix struct {
	Latitude  float64
	Longitude float64
	Altitude  float64
	Time      time.Time
}

// Orientation returns the platform attitude as the radar compass sees it.
// The compass widget follows the magnetic compass source rather than the
// inertial solution, so this reports only the former.
func (r *Record) Orientation() (Attitude, bool) {
	if r.Compass == nil {
		return Attitude{}, false
	}
	return *r.Compass, true
}

// PlatformAttitude returns the attitude of the inertial solution, which
// drives the orientation sphere.
func (r *Record) PlatformAttitude() (Attitude, bool) {
	st := r.SpaceTime
	if st == nil {
		return Attitude{}, false
	}
	return Attitude{Azimuth: st.Azimuth, Elevation: st.Elevation, Bank: st.Bank}, true
}

// GPS returns the current position fix, if the host has one.
func (r *Record) GPS() (Fix, bool) {
	st := r.SpaceTime
	if st == nil {
		return Fix{}, false
	}
	return Fix{Latitude: st.Latitude, Longitude: st.Longitude, Altitude: st.Altitude, Time: st.Time}, true
}

// ThermalActive reports whether the thermal camera is feeding the OSD.
func (r *Record) ThermalActive() bool {
	return r.Recorder != nil && r.Recorder.ThermalActive
}

// CrosshairOffset returns the crosshair displacement in pixels for the
// active camera, (0, 0) when the recorder state is absent.
func (r *Record) CrosshairOffset() (int, int) {
	rec := r.Recorder
	if rec == nil {
		return 0, 0
	}
	if rec.ThermalActive {
		return rec.ThermalCrosshairOffsetX, rec.ThermalCrosshairOffsetY
	}
	return rec.DayCrosshairOffsetX, rec.DayCrosshairOffsetY
}

// FOV returns the horizontal field of view in degrees of the active
// camera, or zero when it is unreported. Callers that need a usable
// value apply their own fallback.
func (r *Record) FOV() float32 {
	cam := r.Day
	if r.ThermalActive() {
		cam = r.Thermal
	}
	if cam == nil {
		return 0
	}
	return cam.HorizontalFOV
}

// GimbalRates returns the normalized gimbal drive rates and whether the
// gimbal is currently in motion.
func (r *Record) GimbalRates() (az, el float32, moving bool) {
	if r.Rotary == nil {
		return 0, 0, false
	}
	return r.Rotary.AzimuthRate, r.Rotary.ElevationRate, r.Rotary.Moving
}

// CelestialTime returns the time to use for the ephemeris: the fix time
// when the inertial source carries one, otherwise the wall clock.
func (r *Record) CelestialTime() (time.Time, bool) {
	if st := r.SpaceTime; st != nil && !st.Time.IsZero() {
		return st.Time, true
	}
	if !r.Time.IsZero() {
		return r.Time, true
	}
	return time.Time{}, false
}

// FrameMonotonicUS returns the capture clock of the active camera's most
// recent frame in microseconds, zero when unknown.
func (r *Record) FrameMonotonicUS() int64 {
	if r.ThermalActive() {
		return r.ThermalFrameMonotonicUS
	}
	return r.DayFrameMonotonicUS
}

// Decode unmarshals a single host-serialized record. Both raw msgpack and
// zstd-compressed msgpack are accepted; compressed payloads are recognized
// by the zstd frame magic.
func Decode(b []byte) (*Record, error) {
	if util.IsZstd(b) {
		var err error
		if b, err = util.DecompressZstd(b); err != nil {
			return nil, fmt.Errorf("telemetry: %w", err)
		}
	}
	rec := &Record{}
	if err := msgpack.Unmarshal(b, rec); err != nil {
		return nil, fmt.Errorf("telemetry: msgpack decode: %w", err)
	}
	return rec, nil
}

// Encode marshals a record in the host wire format (msgpack, uncompressed).
func Encode(rec *Record) ([]byte, error) {
	b, err := msgpack.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("telemetry: msgpack encode: %w", err)
	}
	return b, nil
}
