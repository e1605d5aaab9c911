// pkg/celestial/ephemeris_test.go
// Copyright(c) 2026 osd contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package celestial

import (
	"math"
	"testing"
)

// 2000-01-01 12:00:00 UTC, the J2000 epoch itself.
const j2000Unix = 946728000

func TestJ2000Days(t *testing.T) {
	if d := j2000Days(j2000Unix); d != 0 {
		t.Errorf("J2000 epoch maps to day %g, want 0", d)
	}
	if d := j2000Days(j2000Unix + 86400); d != 1 {
		t.Errorf("one day past the epoch maps to %g, want 1", d)
	}
	if d := j2000Days(0); d != -10957.5 {
		t.Errorf("Unix epoch maps to %g, want -10957.5", d)
	}
}

func TestGMST(t *testing.T) {
	// At the J2000 epoch GMST is 280.46062 degrees (Meeus).
	if g := gmstDegrees(0); math.Abs(g-280.46062) > 0.001 {
		t.Errorf("GMST at J2000 = %.5f, want 280.46062", g)
	}

	// One sidereal day later the same angle comes around again.
	if g := gmstDegrees(0.9972695663); math.Abs(g-280.46062) > 0.01 {
		t.Errorf("GMST one sidereal day on = %.5f, want 280.46062", g)
	}

	// Half a solar day advances sidereal time by a bit over 180 degrees:
	// 280.46062 + 180.49282, wrapped into [0, 360).
	if g := gmstDegrees(0.5); math.Abs(g-100.95344) > 0.01 {
		t.Errorf("GMST half a day on = %.5f, want 100.95344", g)
	}
}

func TestRefraction(t *testing.T) {
	// About half a degree at the horizon, per the standard atmosphere.
	if r := refractionDegrees(0); r < 0.4 || r > 0.6 {
		t.Errorf("horizon refraction %.3f, want about 0.48", r)
	}

	// Much smaller high in the sky.
	if r := refractionDegrees(45); r < 0 || r > 0.03 {
		t.Errorf("45 degree refraction %.4f, want about 0.017", r)
	}

	// Tapers to zero at the nadir instead of blowing up.
	if r := refractionDegrees(-90); r != 0 {
		t.Errorf("nadir refraction %.4f, want 0", r)
	}
}

func TestSunPosition(t *testing.T) {
	greenwich := Observer{Latitude: 51.4769}

	// Solar noon at Greenwich on the J2000 epoch date: the sun bears
	// nearly due south at about 15.5 degrees altitude (90 - latitude +
	// December declination).
	p := SunPosition(j2000Unix, greenwich)
	if !p.Valid {
		t.Fatal("sun position reported invalid for a valid observer")
	}
	if p.Azimuth < 176 || p.Azimuth > 184 {
		t.Errorf("noon sun azimuth %.2f, want roughly south", p.Azimuth)
	}
	if p.Altitude < 14.5 || p.Altitude > 16.5 {
		t.Errorf("noon sun altitude %.2f, want roughly 15.5", p.Altitude)
	}

	// Twelve hours earlier the sun is far below the horizon.
	p = SunPosition(j2000Unix-43200, greenwich)
	if p.Altitude > -30 {
		t.Errorf("midnight sun altitude %.2f, want well below the horizon", p.Altitude)
	}

	// Southern midsummer: the sun stands high over Sydney near local noon.
	sydney := Observer{Latitude: -33.8688, Longitude: 151.2093}
	p = SunPosition(j2000Unix-39600, sydney) // 01:00 UTC
	if p.Altitude < 65 {
		t.Errorf("Sydney summer sun altitude %.2f, want above 65", p.Altitude)
	}
}

func TestMoonPosition(t *testing.T) {
	greenwich := Observer{Latitude: 51.4769}

	// Waning crescent low in the southwest on the J2000 epoch date
	// (new moon followed on 2000-01-06).
	p := MoonPosition(j2000Unix, greenwich)
	if !p.Valid {
		t.Fatal("moon position reported invalid for a valid observer")
	}
	if p.Azimuth < 233 || p.Azimuth > 244 {
		t.Errorf("moon azimuth %.2f, want southwest near 238", p.Azimuth)
	}
	if p.Altitude < 5 || p.Altitude > 13 {
		t.Errorf("moon altitude %.2f, want near 9", p.Altitude)
	}
}

func TestCalculateValidity(t *testing.T) {
	if p := Calculate(j2000Unix, Observer{Latitude: math.NaN()}); p.Sun.Valid || p.Moon.Valid {
		t.Error("NaN latitude produced valid positions")
	}
	if p := Calculate(j2000Unix, Observer{Latitude: 91}); p.Sun.Valid || p.Moon.Valid {
		t.Error("latitude beyond the pole produced valid positions")
	}
	if p := Calculate(j2000Unix, Observer{Longitude: math.Inf(1)}); p.Sun.Valid || p.Moon.Valid {
		t.Error("infinite longitude produced valid positions")
	}

	p := Calculate(j2000Unix, Observer{Latitude: 51.4769})
	if !p.Sun.Valid || !p.Moon.Valid {
		t.Error("valid observer produced invalid positions")
	}
}
