// pkg/telemetry/telemetry_test.go
// Copyright(c) 2026 osd contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package telemetry

import (
	"bytes"
	"io"
	"testing"
	"time"

	"github.com/mmp/osd/pkg/util"
)

func sampleRecord() *Record {
	return &Record{
		SpaceTime: &SpaceTime{
			Azimuth:     123.5,
			Elevation:   -4.25,
			Bank:        1.5,
			Latitude:    51.4769,
			Longitude:   -0.0005,
			Altitude:    128,
			GroundSpeed: 12.5,
			Time:        time.Unix(946728000, 0).UTC(),
		},
		Compass: &Attitude{Azimuth: 120, Elevation: -4, Bank: 1},
		Day:     &Camera{HorizontalFOV: 62.5},
		Thermal: &Camera{HorizontalFOV: 24},
		Recorder: &Recorder{
			DayCrosshairOffsetX:     4,
			DayCrosshairOffsetY:     -6,
			ThermalCrosshairOffsetX: -2,
			ThermalCrosshairOffsetY: 8,
		},
		Rotary:              &Rotary{AzimuthRate: 0.25, ElevationRate: -0.5, Moving: true},
		Time:                time.Unix(946728001, 0).UTC(),
		MonotonicUS:         5_000_000,
		DayFrameMonotonicUS: 4_966_000,
		Variant:             "recording_day",
	}
}

func TestAccessorsEmptyRecord(t *testing.T) {
	var r Record
	if _, ok := r.Orientation(); ok {
		t.Errorf("empty record reports an orientation")
	}
	if _, ok := r.PlatformAttitude(); ok {
		t.Errorf("empty record reports a platform attitude")
	}
	if _, ok := r.GPS(); ok {
		t.Errorf("empty record reports a GPS fix")
	}
	if x, y := r.CrosshairOffset(); x != 0 || y != 0 {
		t.Errorf("empty record crosshair offset (%d, %d), expected (0, 0)", x, y)
	}
	if fov := r.FOV(); fov != 0 {
		t.Errorf("empty record FOV %v, expected 0", fov)
	}
	if az, el, moving := r.GimbalRates(); az != 0 || el != 0 || moving {
		t.Errorf("empty record gimbal rates (%v, %v, %v)", az, el, moving)
	}
	if _, ok := r.CelestialTime(); ok {
		t.Errorf("empty record reports a celestial time")
	}
}

func TestAccessors(t *testing.T) {
	r := sampleRecord()

	if att, ok := r.Orientation(); !ok || att != *r.Compass {
		t.Errorf("orientation %+v ok %v, expected compass source %+v", att, ok, *r.Compass)
	}
	want := Attitude{Azimuth: 123.5, Elevation: -4.25, Bank: 1.5}
	if att, ok := r.PlatformAttitude(); !ok || att != want {
		t.Errorf("platform attitude %+v ok %v, expected %+v", att, ok, want)
	}
	if fix, ok := r.GPS(); !ok || fix.Latitude != 51.4769 || fix.Altitude != 128 || !fix.Time.Equal(r.SpaceTime.Time) {
		t.Errorf("GPS fix %+v ok %v", fix, ok)
	}
	if az, el, moving := r.GimbalRates(); az != 0.25 || el != -0.5 || !moving {
		t.Errorf("gimbal rates (%v, %v, %v)", az, el, moving)
	}
}

func TestActiveCameraSelection(t *testing.T) {
	r := sampleRecord()

	if r.ThermalActive() {
		t.Errorf("thermal reported active with day recorder state")
	}
	if x, y := r.CrosshairOffset(); x != 4 || y != -6 {
		t.Errorf("day crosshair offset (%d, %d), expected (4, -6)", x, y)
	}
	if fov := r.FOV(); fov != 62.5 {
		t.Errorf("day FOV %v, expected 62.5", fov)
	}
	if us := r.FrameMonotonicUS(); us != 4_966_000 {
		t.Errorf("day frame clock %d, expected 4966000", us)
	}

	r.Recorder.ThermalActive = true
	if x, y := r.CrosshairOffset(); x != -2 || y != 8 {
		t.Errorf("thermal crosshair offset (%d, %d), expected (-2, 8)", x, y)
	}
	if fov := r.FOV(); fov != 24 {
		t.Errorf("thermal FOV %v, expected 24", fov)
	}

	// Active camera missing entirely.
	r.Thermal = nil
	if fov := r.FOV(); fov != 0 {
		t.Errorf("FOV %v with missing thermal camera, expected 0", fov)
	}
}

func TestCelestialTime(t *testing.T) {
	r := sampleRecord()
	if tm, ok := r.CelestialTime(); !ok || !tm.Equal(r.SpaceTime.Time) {
		t.Errorf("celestial time %v ok %v, expected fix time", tm, ok)
	}

	// Without a fix time, fall back to the wall clock.
	r.SpaceTime.Time = time.Time{}
	if tm, ok := r.CelestialTime(); !ok || !tm.Equal(r.Time) {
		t.Errorf("celestial time %v ok %v, expected wall clock", tm, ok)
	}

	r.SpaceTime = nil
	r.Time = time.Time{}
	if _, ok := r.CelestialTime(); ok {
		t.Errorf("celestial time reported with no time source")
	}
}

func checkRecordsMatch(t *testing.T, got, want *Record) {
	t.Helper()
	// Compare times with Equal; a decoded time.Time may carry a different
	// location than the one encoded.
	gst, wst := got.SpaceTime, want.SpaceTime
	if gst == nil {
		t.Fatalf("space time missing after decode")
	}
	if gst.Azimuth != wst.Azimuth || gst.Elevation != wst.Elevation || gst.Bank != wst.Bank ||
		gst.Latitude != wst.Latitude || gst.Longitude != wst.Longitude ||
		gst.Altitude != wst.Altitude || gst.GroundSpeed != wst.GroundSpeed ||
		!gst.Time.Equal(wst.Time) {
		t.Errorf("space time %+v, expected %+v", gst, wst)
	}
	if got.Compass == nil || *got.Compass != *want.Compass {
		t.Errorf("compass %+v, expected %+v", got.Compass, want.Compass)
	}
	if got.Recorder == nil || *got.Recorder != *want.Recorder {
		t.Errorf("recorder %+v, expected %+v", got.Recorder, want.Recorder)
	}
	if got.Rotary == nil || *got.Rotary != *want.Rotary {
		t.Errorf("rotary %+v, expected %+v", got.Rotary, want.Rotary)
	}
	if !got.Time.Equal(want.Time) {
		t.Errorf("time %v, expected %v", got.Time, want.Time)
	}
	if got.MonotonicUS != want.MonotonicUS || got.Variant != want.Variant {
		t.Errorf("monotonic %d variant %q, expected %d %q",
			got.MonotonicUS, got.Variant, want.MonotonicUS, want.Variant)
	}
}

func TestDecode(t *testing.T) {
	orig := sampleRecord()
	b, err := Encode(orig)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	t.Run("raw", func(t *testing.T) {
		rec, err := Decode(b)
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
		checkRecordsMatch(t, rec, orig)
	})

	t.Run("zstd", func(t *testing.T) {
		zb, err := util.CompressZstd(b)
		if err != nil {
			t.Fatalf("compress: %v", err)
		}
		rec, err := Decode(zb)
		if err != nil {
			t.Fatalf("decode compressed: %v", err)
		}
		checkRecordsMatch(t, rec, orig)
	})

	t.Run("garbage", func(t *testing.T) {
		if _, err := Decode([]byte{0xc1, 0xff, 0x00}); err == nil {
			t.Errorf("no error decoding garbage")
		}
	})
}

func TestLogRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	lw, err := NewLogWriter(&buf)
	if err != nil {
		t.Fatalf("log writer: %v", err)
	}

	var want []*Record
	for i := 0; i < 10; i++ {
		rec := sampleRecord()
		rec.SpaceTime.Azimuth = float32(i) * 36
		rec.MonotonicUS = int64(i) * 33_000
		want = append(want, rec)
		if err := lw.Write(rec); err != nil {
			t.Fatalf("write record %d: %v", i, err)
		}
	}
	if err := lw.Close(); err != nil {
		t.Fatalf("close log: %v", err)
	}

	lr, err := NewLogReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("log reader: %v", err)
	}
	defer lr.Close()

	for i, w := range want {
		rec, err := lr.Read()
		if err != nil {
			t.Fatalf("read record %d: %v", i, err)
		}
		if rec.SpaceTime == nil || rec.SpaceTime.Azimuth != w.SpaceTime.Azimuth {
			t.Errorf("record %d azimuth %+v, expected %v", i, rec.SpaceTime, w.SpaceTime.Azimuth)
		}
		if rec.MonotonicUS != w.MonotonicUS {
			t.Errorf("record %d monotonic %d, expected %d", i, rec.MonotonicUS, w.MonotonicUS)
		}
	}
	if _, err := lr.Read(); err != io.EOF {
		t.Errorf("expected io.EOF at end of log, got %v", err)
	}
}
