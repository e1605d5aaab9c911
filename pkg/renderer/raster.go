// pkg/renderer/raster.go
// Copyright(c) 2026 osd contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package renderer

import (
	"github.com/mmp/osd/pkg/math"
	"github.com/mmp/osd/pkg/util"
)

// Shape drawing routines for the software rasterizer. All coordinates are
// in pixels with (0,0) at the top left. Angles are given in the compass
// convention used throughout the widgets, 0 degrees up and increasing
// clockwise; they are converted to standard math angles before any
// trigonometry. Everything composites through BlendPixel, so drawing
// partially or fully outside the framebuffer is harmless.

func (fb *Framebuffer) DrawPixel(x, y int, color uint32) {
	fb.BlendPixel(x, y, color)
}

///////////////////////////////////////////////////////////////////////////
// Lines

// DrawLine draws a line from (x0, y0) to (x1, y1), stepping with
// Bresenham's algorithm and stamping a square of side thickness at each
// step. Thickness below 2 gives a single-pixel line.
func (fb *Framebuffer) DrawLine(x0, y0, x1, y1 int, color uint32, thickness float32) {
	dx := math.Abs(x1 - x0)
	dy := math.Abs(y1 - y0)
	sx := util.Select(x0 < x1, 1, -1)
	sy := util.Select(y0 < y1, 1, -1)
	err := dx - dy

	halfThick := int(thickness / 2)

	for {
		for ty := -halfThick; ty <= halfThick; ty++ {
			for tx := -halfThick; tx <= halfThick; tx++ {
				fb.BlendPixel(x0+tx, y0+ty, color)
			}
		}

		if x0 == x1 && y0 == y1 {
			break
		}

		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

///////////////////////////////////////////////////////////////////////////
// Circles

func (fb *Framebuffer) DrawFilledCircle(cx, cy int, radius float32, color uint32) {
	r := int(radius)
	for y := -r; y <= r; y++ {
		for x := -r; x <= r; x++ {
			if x*x+y*y <= r*r {
				fb.BlendPixel(cx+x, cy+y, color)
			}
		}
	}
}

// DrawCircleOutline strokes a circle by filling the annulus between
// radius-thickness/2 and radius+thickness/2.
func (fb *Framebuffer) DrawCircleOutline(cx, cy int, radius float32, color uint32, thickness float32) {
	rOuter := int(radius + thickness/2)
	rInner := max(int(radius-thickness/2), 0)

	for y := -rOuter; y <= rOuter; y++ {
		for x := -rOuter; x <= rOuter; x++ {
			distSq := x*x + y*y
			if distSq >= rInner*rInner && distSq <= rOuter*rOuter {
				fb.BlendPixel(cx+x, cy+y, color)
			}
		}
	}
}

///////////////////////////////////////////////////////////////////////////
// Rectangles

func (fb *Framebuffer) DrawRectFilled(x, y, w, h int, color uint32) {
	for py := y; py < y+h; py++ {
		for px := x; px < x+w; px++ {
			fb.BlendPixel(px, py, color)
		}
	}
}

func (fb *Framebuffer) DrawRectOutline(x, y, w, h int, color uint32, thickness float32) {
	t := int(thickness)
	fb.DrawRectFilled(x, y, w, t, color)
	fb.DrawRectFilled(x, y+h-t, w, t, color)
	fb.DrawRectFilled(x, y+t, t, h-2*t, color)
	fb.DrawRectFilled(x+w-t, y+t, t, h-2*t, color)
}

///////////////////////////////////////////////////////////////////////////
// Arcs and wedges

// arcSegments returns the number of line segments to approximate an arc
// with, roughly one per 3 degrees of span, if the caller didn't ask for a
// specific count.
func arcSegments(startDeg, endDeg float32, segments int) int {
	if segments > 0 {
		return segments
	}
	return math.Clamp(int(math.Abs(endDeg-startDeg)/3), 4, 120)
}

// DrawArc draws a circular arc between two compass angles as a series of
// thick line segments. Pass segments <= 0 to size the tessellation from
// the angular span.
func (fb *Framebuffer) DrawArc(cx, cy int, radius float32, startDeg, endDeg float32, color uint32, thickness float32, segments int) {
	segments = arcSegments(startDeg, endDeg, segments)
	step := (endDeg - startDeg) / float32(segments)

	for i := 0; i < segments; i++ {
		sc1 := math.SinCos(math.CompassRadians(startDeg + float32(i)*step))
		sc2 := math.SinCos(math.CompassRadians(startDeg + float32(i+1)*step))

		x1 := cx + int(radius*sc1[1])
		y1 := cy - int(radius*sc1[0])
		x2 := cx + int(radius*sc2[1])
		y2 := cy - int(radius*sc2[0])

		fb.DrawLine(x1, y1, x2, y2, color, thickness)
	}
}

// wedgeAngles converts a pair of compass angles to math-convention
// radians in [0, 2 pi), ordered so startRad <= endRad, and reports
// whether the wedge crosses the zero angle. The two angles bound the
// sector of at most a half turn between them, so callers may pass them
// in either order and may wrap past 0/360 freely; a wedge whose ordered
// span exceeds a half turn is one that crosses zero, and its membership
// test inverts from a simple range check.
func wedgeAngles(startDeg, endDeg float32) (startRad, endRad float32, wraps bool) {
	startRad = math.CompassRadians(startDeg)
	endRad = math.CompassRadians(endDeg)
	if startRad > endRad {
		startRad, endRad = endRad, startRad
	}
	wraps = endRad-startRad >= math.Pi
	return
}

// inWedge tests whether a math-convention angle in [0, 2 pi) falls inside
// the wedge described by wedgeAngles.
func inWedge(angle, startRad, endRad float32, wraps bool) bool {
	if wraps {
		return angle >= endRad || angle <= startRad
	}
	return angle >= startRad && angle <= endRad
}

// pixelAngle returns the math-convention angle of the pixel offset (x, y)
// from a shape's center, normalized to [0, 2 pi). Screen y grows
// downward, hence the negation.
func pixelAngle(x, y int) float32 {
	a := math.Atan2(float32(-y), float32(x))
	if a < 0 {
		a += math.TwoPi
	}
	return a
}

// DrawWedgeFilled fills the sector of a circle between two compass
// angles, taking the narrower side when the angles are more than a half
// turn apart. The angles may be given in either order.
func (fb *Framebuffer) DrawWedgeFilled(cx, cy int, radius float32, startDeg, endDeg float32, color uint32) {
	startRad, endRad, wraps := wedgeAngles(startDeg, endDeg)

	r := int(radius)
	for y := -r; y <= r; y++ {
		for x := -r; x <= r; x++ {
			distSq := float32(x*x + y*y)
			if distSq > radius*radius {
				continue
			}
			if inWedge(pixelAngle(x, y), startRad, endRad, wraps) {
				fb.BlendPixel(cx+x, cy+y, color)
			}
		}
	}
}

// DrawWedgeOutline strokes a wedge: two radial lines from the center to
// the edge plus the arc connecting them.
func (fb *Framebuffer) DrawWedgeOutline(cx, cy int, radius float32, startDeg, endDeg float32, color uint32, thickness float32) {
	sc1 := math.SinCos(math.CompassRadians(startDeg))
	sc2 := math.SinCos(math.CompassRadians(endDeg))

	x1 := cx + int(radius*sc1[1])
	y1 := cy - int(radius*sc1[0])
	x2 := cx + int(radius*sc2[1])
	y2 := cy - int(radius*sc2[0])

	fb.DrawLine(cx, cy, x1, y1, color, thickness)
	fb.DrawLine(cx, cy, x2, y2, color, thickness)
	fb.DrawArc(cx, cy, radius, startDeg, endDeg, color, thickness, 0)
}

///////////////////////////////////////////////////////////////////////////
// Ellipses

// DrawEllipseOutline strokes an axis-aligned ellipse as 64 line segments
// in parametric form.
func (fb *Framebuffer) DrawEllipseOutline(cx, cy int, radiusX, radiusY float32, color uint32, thickness float32) {
	const segments = 64

	for i := 0; i < segments; i++ {
		sc1 := math.SinCos(float32(i) / segments * math.TwoPi)
		sc2 := math.SinCos(float32(i+1) / segments * math.TwoPi)

		x1 := cx + int(radiusX*sc1[1])
		y1 := cy + int(radiusY*sc1[0])
		x2 := cx + int(radiusX*sc2[1])
		y2 := cy + int(radiusY*sc2[0])

		fb.DrawLine(x1, y1, x2, y2, color, thickness)
	}
}

// DrawEllipseArc is DrawArc generalized to distinct x and y radii.
func (fb *Framebuffer) DrawEllipseArc(cx, cy int, radiusX, radiusY float32, startDeg, endDeg float32, color uint32, thickness float32, segments int) {
	segments = arcSegments(startDeg, endDeg, segments)
	step := (endDeg - startDeg) / float32(segments)

	for i := 0; i < segments; i++ {
		sc1 := math.SinCos(math.CompassRadians(startDeg + float32(i)*step))
		sc2 := math.SinCos(math.CompassRadians(startDeg + float32(i+1)*step))

		x1 := cx + int(radiusX*sc1[1])
		y1 := cy - int(radiusY*sc1[0])
		x2 := cx + int(radiusX*sc2[1])
		y2 := cy - int(radiusY*sc2[0])

		fb.DrawLine(x1, y1, x2, y2, color, thickness)
	}
}

// DrawEllipseWedgeFilled fills the sector of an ellipse between two
// compass angles, with the same angle handling as DrawWedgeFilled;
// membership is tested in coordinates normalized by the two radii.
func (fb *Framebuffer) DrawEllipseWedgeFilled(cx, cy int, radiusX, radiusY float32, startDeg, endDeg float32, color uint32) {
	startRad, endRad, wraps := wedgeAngles(startDeg, endDeg)

	rx, ry := int(radiusX), int(radiusY)
	for y := -ry; y <= ry; y++ {
		for x := -rx; x <= rx; x++ {
			nx := float32(x) / radiusX
			ny := float32(y) / radiusY
			if nx*nx+ny*ny > 1 {
				continue
			}
			if inWedge(pixelAngle(x, y), startRad, endRad, wraps) {
				fb.BlendPixel(cx+x, cy+y, color)
			}
		}
	}
}

func (fb *Framebuffer) DrawEllipseWedgeOutline(cx, cy int, radiusX, radiusY float32, startDeg, endDeg float32, color uint32, thickness float32) {
	sc1 := math.SinCos(math.CompassRadians(startDeg))
	sc2 := math.SinCos(math.CompassRadians(endDeg))

	x1 := cx + int(radiusX*sc1[1])
	y1 := cy - int(radiusY*sc1[0])
	x2 := cx + int(radiusX*sc2[1])
	y2 := cy - int(radiusY*sc2[0])

	fb.DrawLine(cx, cy, x1, y1, color, thickness)
	fb.DrawLine(cx, cy, x2, y2, color, thickness)
	fb.DrawEllipseArc(cx, cy, radiusX, radiusY, startDeg, endDeg, color, thickness, 0)
}
