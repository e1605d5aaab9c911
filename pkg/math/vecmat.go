// pkg/math/vecmat.go
// Copyright(c) 2026 osd contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

///////////////////////////////////////////////////////////////////////////
// point 2f

// Various useful functions for arithmetic with 2D points/vectors.
// Names are brief in order to avoid clutter when they're used.

// a+b
func Add2f(a [2]float32, b [2]float32) [2]float32 {
	return [2]float32{a[0] + b[0], a[1] + b[1]}
}

// a-b
func Sub2f(a [2]float32, b [2]float32) [2]float32 {
	return [2]float32{a[0] - b[0], a[1] - b[1]}
}

// a*s
func Scale2f(a [2]float32, s float32) [2]float32 {
	return [2]float32{s * a[0], s * a[1]}
}

func Dot(a, b [2]float32) float32 {
	return a[0]*b[0] + a[1]*b[1]
}

// Length of v
func Length2f(v [2]float32) float32 {
	return Sqrt(v[0]*v[0] + v[1]*v[1])
}

// Distance between two points
func Distance2f(a [2]float32, b [2]float32) float32 {
	return Length2f(Sub2f(a, b))
}

// Normalizes the given vector.
func Normalize2f(a [2]float32) [2]float32 {
	l := Length2f(a)
	if l == 0 {
		return [2]float32{0, 0}
	}
	return Scale2f(a, 1/l)
}

// Rotator2f returns a function that rotates points by the specified angle
// (given in degrees).
func Rotator2f(angle float32) func([2]float32) [2]float32 {
	sc := SinCos(Radians(angle))
	s, c := sc[0], sc[1]
	return func(p [2]float32) [2]float32 {
		return [2]float32{c*p[0] + s*p[1], -s*p[0] + c*p[1]}
	}
}

///////////////////////////////////////////////////////////////////////////
// point 3f

// And the same for 3D vectors, which carry the sphere geometry.

func Scale3f(a [3]float32, s float32) [3]float32 {
	return [3]float32{s * a[0], s * a[1], s * a[2]}
}

func Dot3(a, b [3]float32) float32 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

func Length3f(v [3]float32) float32 {
	return Sqrt(Dot3(v, v))
}

func Normalize3f(v [3]float32) [3]float32 {
	l := Length3f(v)
	if l == 0 {
		return [3]float32{}
	}
	return Scale3f(v, 1/l)
}

///////////////////////////////////////////////////////////////////////////
// 3x3 matrix

type Matrix3 [3][3]float32

func MakeMatrix3(m00, m01, m02, m10, m11, m12, m20, m21, m22 float32) Matrix3 {
	return [3][3]float32{
		[3]float32{m00, m01, m02},
		[3]float32{m10, m11, m12},
		[3]float32{m20, m21, m22}}
}

func Identity3x3() Matrix3 {
	var m Matrix3
	m[0][0] = 1
	m[1][1] = 1
	m[2][2] = 1
	return m
}

// MakeRotationX returns the matrix for a right-handed rotation by the given
// angle in radians around the x axis, and correspondingly for the following
// two functions.
func MakeRotationX(rad float32) Matrix3 {
	sc := SinCos(rad)
	s, c := sc[0], sc[1]
	return MakeMatrix3(
		1, 0, 0,
		0, c, -s,
		0, s, c)
}

func MakeRotationY(rad float32) Matrix3 {
	sc := SinCos(rad)
	s, c := sc[0], sc[1]
	return MakeMatrix3(
		c, 0, s,
		0, 1, 0,
		-s, 0, c)
}

func MakeRotationZ(rad float32) Matrix3 {
	sc := SinCos(rad)
	s, c := sc[0], sc[1]
	return MakeMatrix3(
		c, -s, 0,
		s, c, 0,
		0, 0, 1)
}

func (m Matrix3) PostMultiply(m2 Matrix3) Matrix3 {
	var result Matrix3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			result[i][j] = m[i][0]*m2[0][j] + m[i][1]*m2[1][j] + m[i][2]*m2[2][j]
		}
	}
	return result
}

func (m Matrix3) Transposed() Matrix3 {
	var result Matrix3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			result[i][j] = m[j][i]
		}
	}
	return result
}

func (m Matrix3) TransformVec3(v [3]float32) [3]float32 {
	return [3]float32{
		m[0][0]*v[0] + m[0][1]*v[1] + m[0][2]*v[2],
		m[1][0]*v[0] + m[1][1]*v[1] + m[1][2]*v[2],
		m[2][0]*v[0] + m[2][1]*v[1] + m[2][2]*v[2],
	}
}

///////////////////////////////////////////////////////////////////////////
// quaternions

// Quaternion represents a rotation as a Hamilton quaternion; q must be
// normalized before ToMatrix3 is called (the constructors here all return
// unit quaternions).
type Quaternion struct {
	W, X, Y, Z float32
}

func IdentityQuaternion() Quaternion {
	return Quaternion{W: 1}
}

// AxisAngleQuaternion returns the quaternion for a right-handed rotation by
// the given angle in radians around the given axis, which must be normalized.
func AxisAngleQuaternion(axis [3]float32, rad float32) Quaternion {
	sc := SinCos(rad / 2)
	s, c := sc[0], sc[1]
	return Quaternion{W: c, X: s * axis[0], Y: s * axis[1], Z: s * axis[2]}
}

// Multiply returns the Hamilton product q*r: the rotation that applies r
// first and then q.
func (q Quaternion) Multiply(r Quaternion) Quaternion {
	return Quaternion{
		W: q.W*r.W - q.X*r.X - q.Y*r.Y - q.Z*r.Z,
		X: q.W*r.X + q.X*r.W + q.Y*r.Z - q.Z*r.Y,
		Y: q.W*r.Y - q.X*r.Z + q.Y*r.W + q.Z*r.X,
		Z: q.W*r.Z + q.X*r.Y - q.Y*r.X + q.Z*r.W,
	}
}

// EulerYXZQuaternion composes per-axis rotations in intrinsic Y, X, Z order
// (equivalently, the z rotation is applied to vectors first and the y
// rotation last). Angles are in radians; the composition never hits gimbal
// lock for x rotations within (-90,90) degrees, which covers the attitude
// range the sphere widget sees in practice.
func EulerYXZQuaternion(xRad, yRad, zRad float32) Quaternion {
	qx := AxisAngleQuaternion([3]float32{1, 0, 0}, xRad)
	qy := AxisAngleQuaternion([3]float32{0, 1, 0}, yRad)
	qz := AxisAngleQuaternion([3]float32{0, 0, 1}, zRad)
	return qy.Multiply(qx).Multiply(qz)
}

// ToMatrix3 converts the unit quaternion to the equivalent rotation matrix.
func (q Quaternion) ToMatrix3() Matrix3 {
	x2, y2, z2 := q.X*q.X, q.Y*q.Y, q.Z*q.Z
	xy, xz, yz := q.X*q.Y, q.X*q.Z, q.Y*q.Z
	wx, wy, wz := q.W*q.X, q.W*q.Y, q.W*q.Z

	return MakeMatrix3(
		1-2*(y2+z2), 2*(xy-wz), 2*(xz+wy),
		2*(xy+wz), 1-2*(x2+z2), 2*(yz-wx),
		2*(xz-wy), 2*(yz+wx), 1-2*(x2+y2))
}
