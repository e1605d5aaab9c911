// pkg/osd/navball_test.go
// Copyright(c) 2026 osd contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package osd

import (
	"slices"
	"testing"
	"time"

	"github.com/mmp/osd/pkg/math"
	"github.com/mmp/osd/pkg/renderer"
	"github.com/mmp/osd/pkg/telemetry"
)

func TestSphereLUT(t *testing.T) {
	const size = 100
	const radius = size / 2
	lut := buildSphereLUT(size)

	if len(lut) != size*size {
		t.Fatalf("got %d entries, expected %d", len(lut), size*size)
	}

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			sp := lut[y*size+x]
			sx, sy := float32(x)-radius, float32(y)-radius
			inside := sx*sx+sy*sy <= radius*radius
			if sp.valid != inside {
				t.Errorf("(%d,%d): valid %v, expected %v", x, y, sp.valid, inside)
			}
			if !sp.valid {
				continue
			}
			if l := math.Length3f(sp.dir); math.Abs(l-1) > 1e-4 {
				t.Errorf("(%d,%d): direction length %v, expected unit", x, y, l)
			}
			if sp.dir[2] < 0 {
				t.Errorf("(%d,%d): direction %v points away from the viewer", x, y, sp.dir)
			}
		}
	}

	if d := lut[size/2*size+size/2].dir; d != ([3]float32{0, 0, 1}) {
		t.Errorf("center pixel direction %v, expected +z", d)
	}
	if d := lut[size/2*size].dir; d != ([3]float32{-1, 0, 0}) {
		t.Errorf("left edge direction %v, expected -x", d)
	}
}

func TestSphereLUTDeterminism(t *testing.T) {
	if !slices.Equal(buildSphereLUT(64), buildSphereLUT(64)) {
		t.Errorf("two builds at the same size differ")
	}
}

func TestSphereTexCoords(t *testing.T) {
	for _, tc := range []struct {
		dir  [3]float32
		u, v float32
	}{
		{[3]float32{0, 0, 1}, 0.5, 0.5}, // facing the viewer: texture center
		{[3]float32{1, 0, 0}, 0.75, 0.5},
		{[3]float32{-1, 0, 0}, 0.25, 0.5},
		{[3]float32{0, 0, -1}, 1, 0.5},
		{[3]float32{0, 1, 0}, 0.5, 1},
		{[3]float32{0, -1, 0}, 0.5, 0},
	} {
		u, v := sphereTexCoords(tc.dir)
		if math.Abs(u-tc.u) > 1e-3 || math.Abs(v-tc.v) > 1e-3 {
			t.Errorf("%v: got (%v, %v), expected (%v, %v)", tc.dir, u, v, tc.u, tc.v)
		}
	}
}

func TestNavballDraw(t *testing.T) {
	config := DefaultConfig()
	config.Navball.Position = [2]int{0, 0}
	config.Navball.Size = 50
	config.Navball.ShowCenterIndicator = false
	config.Navball.ShowLevelMarker = false

	w := newNavballWidget(&config)
	if err := w.Activate(&ActivateContext{Config: &config}); err != nil {
		t.Fatalf("activate: %v", err)
	}

	fb := renderer.NewFramebuffer(64, 64)
	if !w.Draw(&Context{Rec: &telemetry.Record{}}, fb) {
		t.Errorf("draw reported no change")
	}

	if p := fb.Get(25, 25); p>>24 != 0xff {
		t.Errorf("center pixel %08x not opaque", p)
	}
	if p := fb.Get(1, 1); p != 0 {
		t.Errorf("pixel outside the ball is %08x, expected untouched", p)
	}

	config.Navball.ShowLevelMarker = true
	fb.Clear()
	w.Draw(&Context{Rec: &telemetry.Record{}}, fb)
	for _, x := range []int{0, 25, 49} {
		if p := fb.Get(x, 25); p != 0xffffffff {
			t.Errorf("level marker pixel at x=%d is %08x, expected opaque white", x, p)
		}
	}
}

func TestNavballCelestialMarkers(t *testing.T) {
	config := DefaultConfig()
	config.Navball.Position = [2]int{0, 0}
	config.Navball.Size = 100
	config.Navball.ShowCenterIndicator = false
	config.Navball.ShowLevelMarker = false

	// Greenwich, midday: the sun is up and well above the default
	// visibility threshold.
	rec := &telemetry.Record{
		SpaceTime: &telemetry.SpaceTime{
			Latitude:  51.4769,
			Longitude: 0,
			Time:      time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC),
		},
	}
	ctx := &Context{Rec: rec}

	fb := renderer.NewFramebuffer(100, 100)
	w := newNavballWidget(&config)
	if err := w.Activate(&ActivateContext{Config: &config}); err != nil {
		t.Fatalf("activate: %v", err)
	}
	w.Draw(ctx, fb)
	plain := slices.Clone(fb.Pixels())

	config.Celestial.Enabled = true
	fb.Clear()
	w2 := newNavballWidget(&config)
	if err := w2.Activate(&ActivateContext{Config: &config}); err != nil {
		t.Fatalf("activate: %v", err)
	}
	w2.Draw(ctx, fb)

	if slices.Equal(plain, fb.Pixels()) {
		t.Errorf("celestial markers did not change the render")
	}
}
