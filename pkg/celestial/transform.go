// pkg/celestial/transform.go
// Copyright(c) 2026 osd contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package celestial

import (
	gomath "math"

	"github.com/mmp/osd/pkg/math"
)

// Attitude is the platform orientation in degrees: azimuth 0-360 with 0 at
// north, elevation positive nose up, bank positive right wing down.
type Attitude struct {
	Azimuth   float32
	Elevation float32
	Bank      float32
}

// RotationMatrix returns the rotation the orientation sphere applies to its
// surface points for this attitude. The composition is YXZ intrinsic with
// elevation on the x axis, azimuth on the y axis, and bank on the z axis;
// azimuth landing on y and bank on z rather than the naive yaw and roll
// assignment matches the frame the sphere skins are authored in. The marker
// projection in SpherePosition relies on the same composition, so the two
// must never diverge.
func (a Attitude) RotationMatrix() math.Matrix3 {
	return math.EulerYXZQuaternion(
		math.Radians(a.Elevation),
		math.Radians(a.Azimuth),
		math.Radians(a.Bank)).ToMatrix3()
}

// HorizontalToVector converts horizontal coordinates in degrees to a unit
// direction in the east-up-north frame: +x east, +y up, +z north.
func HorizontalToVector(azDeg, altDeg float64) [3]float64 {
	sinAz, cosAz := gomath.Sincos(azDeg * degRad)
	sinAlt, cosAlt := gomath.Sincos(altDeg * degRad)
	return [3]float64{cosAlt * sinAz, sinAlt, cosAlt * cosAz}
}

// SpherePosition projects a body onto the orientation sphere widget. The
// widget is a fixed camera looking at a sphere that rotates with m, so the
// world-frame body direction goes through the inverse rotation, which for a
// rotation matrix is its transpose. front reports whether the body lands on
// the visible hemisphere; callers draw back-hemisphere markers smaller and
// dimmer. The multiply runs in float64 so a body sitting exactly on the
// hemisphere boundary keeps the sign the trigonometry gives it.
func SpherePosition(body Position, m math.Matrix3, centerX, centerY, radius int) (x, y int, front bool) {
	v := HorizontalToVector(body.Azimuth, body.Altitude)

	rx := float64(m[0][0])*v[0] + float64(m[1][0])*v[1] + float64(m[2][0])*v[2]
	ry := float64(m[0][1])*v[0] + float64(m[1][1])*v[1] + float64(m[2][1])*v[2]
	rz := float64(m[0][2])*v[0] + float64(m[1][2])*v[1] + float64(m[2][2])*v[2]

	x = centerX + int(rx*float64(radius))
	y = centerY - int(ry*float64(radius))
	return x, y, rz > 0
}

// CompassPosition places a body on the compass ellipse. The compass only
// shows azimuth, so the body sits at its azimuth relative to the current
// compass rotation, at 90% of the ellipse radii to keep markers inside the
// outermost ring.
func CompassPosition(body Position, rotationDeg float32, centerX, centerY int, radiusX, radiusY float32) (x, y int) {
	sc := math.SinCos(math.Radians(float32(body.Azimuth) + rotationDeg))
	x = centerX + int(radiusX*0.9*sc[0])
	y = centerY - int(radiusY*0.9*sc[1])
	return
}

// AltitudePresentation maps a body's altitude to the scale and opacity the
// widgets draw its marker with. Above the horizon markers grow from 1.0x at
// the horizon to 1.5x at the zenith at full opacity; below they shrink from
// 0.7x toward 0.4x and fade toward a 0.2 opacity floor, so a recently set
// body stays faintly visible.
func AltitudePresentation(altDeg float64) (scale, alpha float32) {
	a := float32(altDeg / 90)
	if altDeg >= 0 {
		return 1 + 0.5*a, 1
	}
	return 0.7 + 0.3*a, max(0.5+0.3*a, 0.2)
}
