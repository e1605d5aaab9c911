// pkg/celestial/celestial.go
// Copyright(c) 2026 osd contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package celestial computes sun and moon positions for an observer on the
// ground and maps them, given the platform attitude, to marker positions on
// the overlay widgets.
//
// Positions come from low-precision series expansions (see ephemeris.go).
// Accuracy is a few hundredths of a degree for the sun and a few tenths for
// the moon, well under the angular size of a marker icon on screen.
package celestial

import "math"

// Position is a celestial body's location in horizontal coordinates.
type Position struct {
	Azimuth  float64 // degrees, 0 = North, 90 = East
	Altitude float64 // degrees, 0 = horizon, +90 = zenith
	Valid    bool
}

// Positions holds the bodies the overlay widgets know how to draw.
type Positions struct {
	Sun  Position
	Moon Position
}

// Observer is a GPS fix: geodetic degrees, meters above the ellipsoid.
type Observer struct {
	Latitude  float64
	Longitude float64
	Altitude  float64
}

func (o Observer) valid() bool {
	if math.IsNaN(o.Latitude) || math.IsNaN(o.Longitude) ||
		math.IsInf(o.Latitude, 0) || math.IsInf(o.Longitude, 0) {
		return false
	}
	return o.Latitude >= -90 && o.Latitude <= 90
}

// Calculate returns sun and moon positions for the observer at the given
// Unix timestamp. A bogus observer (NaN or out of range coordinates) yields
// invalid positions rather than an error; the widgets skip invalid bodies.
func Calculate(unixSeconds int64, obs Observer) Positions {
	return Positions{
		Sun:  SunPosition(unixSeconds, obs),
		Moon: MoonPosition(unixSeconds, obs),
	}
}
