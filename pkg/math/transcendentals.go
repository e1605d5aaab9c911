// pkg/math/transcendentals.go
// Copyright(c) 2026 osd contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// The Go math package only offers float64 versions of the transcendentals;
// the per-pixel inner loops here are float32 throughout, so we provide
// float32-native implementations for the subset of the domain we care
// about rather than paying for the conversions and the extra precision.

package math

import (
	gomath "math"
)

func Sin(x float32) float32 {
	return SinCos(x)[0]
}

func Cos(x float32) float32 {
	return SinCos(x)[1]
}

// SinCos computes sin(x) and cos(x) simultaneously for a single float32 value
// Ported from syrah/FixedVectorMath.h:152, which is via Abramowitz and Stegun.
func SinCos(xFull float32) [2]float32 {
	const piOverTwo = float32(1.57079637050628662109375)
	const twoOverPi = float32(0.636619746685028076171875)

	scaled := xFull * twoOverPi
	kReal := float32(gomath.Floor(float64(scaled)))
	k := int(kReal)

	// Reduced range version of x
	x := xFull - kReal*piOverTwo
	kMod4 := k & 3
	cosUsecos := kMod4 == 0 || kMod4 == 2
	sinUsecos := kMod4 == 1 || kMod4 == 3
	sinFlipsign := kMod4 > 1
	cosFlipsign := kMod4 == 1 || kMod4 == 2

	const sinC2 = -0.16666667163372039794921875
	const sinC4 = 8.333347737789154052734375e-3
	const sinC6 = -1.9842604524455964565277099609375e-4
	const sinC8 = 2.760012648650445044040679931640625e-6
	const sinC10 = -2.50293279435709337121807038784027099609375e-8

	const cosC2 = -0.5
	const cosC4 = 4.166664183139801025390625e-2
	const cosC6 = -1.388833043165504932403564453125e-3
	const cosC8 = 2.47562347794882953166961669921875e-5
	const cosC10 = -2.59630184018533327616751194000244140625e-7

	x2 := x * x

	// Compute sin formula using Horner's method
	sinFormula := x2*sinC10 + sinC8
	sinFormula = x2*sinFormula + sinC6
	sinFormula = x2*sinFormula + sinC4
	sinFormula = x2*sinFormula + sinC2
	sinFormula = x2*sinFormula + 1
	sinFormula *= x

	// Compute cos formula using Horner's method
	cosFormula := x2*cosC10 + cosC8
	cosFormula = x2*cosFormula + cosC6
	cosFormula = x2*cosFormula + cosC4
	cosFormula = x2*cosFormula + cosC2
	cosFormula = x2*cosFormula + 1

	// Select appropriate formula for sin and cos
	var sin, cos float32
	if sinUsecos {
		sin = cosFormula
	} else {
		sin = sinFormula
	}

	if cosUsecos {
		cos = cosFormula
	} else {
		cos = sinFormula
	}

	// Apply sign flips
	if sinFlipsign {
		sin = -sin
	}

	if cosFlipsign {
		cos = -cos
	}

	return [2]float32{sin, cos}
}

func SafeASin(a float32) float32 {
	return float32(gomath.Asin(float64(Clamp(a, -1, 1))))
}

func SafeACos(a float32) float32 {
	return float32(gomath.Acos(float64(Clamp(a, -1, 1))))
}

// Atan computes atan(x) for a single float32 value
// Ported from syrah/FixedVectorMath.h:289
func Atan(xFull float32) float32 {
	// atan(-x) = -atan(x) (so flip from negative to positive first)
	// if x > 1 -> atan(x) = Pi/2 - atan(1/x)
	xNeg := xFull < 0
	var xFlipped float32
	if xNeg {
		xFlipped = -xFull
	} else {
		xFlipped = xFull
	}

	xGt1 := xFlipped > 1.0
	var x float32
	if xGt1 {
		x = 1.0 / xFlipped
	} else {
		x = xFlipped
	}

	// These coefficients approximate atan(x)/x
	const atanC0 = 0.99999988079071044921875
	const atanC2 = -0.3333191573619842529296875
	const atanC4 = 0.199689209461212158203125
	const atanC6 = -0.14015688002109527587890625
	const atanC8 = 9.905083477497100830078125e-2
	const atanC10 = -5.93664981424808502197265625e-2
	const atanC12 = 2.417283318936824798583984375e-2
	const atanC14 = -4.6721356920897960662841796875e-3

	x2 := x * x
	result := x2*atanC14 + atanC12
	result = x2*result + atanC10
	result = x2*result + atanC8
	result = x2*result + atanC6
	result = x2*result + atanC4
	result = x2*result + atanC2
	result = x2*result + atanC0
	result *= x

	if xGt1 {
		result = PiOver2 - result
	}

	if xNeg {
		result = -result
	}

	return result
}

// Atan2 computes atan2(y, x) for single float32 values
// Ported from syrah/FixedVectorMath.h:327
func Atan2(y, x float32) float32 {
	// atan2(y, x) =
	//
	// atan2(y > 0, x = +-0) ->  Pi/2
	// atan2(y < 0, x = +-0) -> -Pi/2
	// atan2(y = +-0, x < +0) -> +-Pi
	// atan2(y = +-0, x >= +0) -> +-0
	//
	// atan2(y >= 0, x < 0) ->  Pi + atan(y/x)
	// atan2(y <  0, x < 0) -> -Pi + atan(y/x)
	// atan2(y, x > 0) -> atan(y/x)

	// Handle special cases for x = 0
	if x == 0 {
		if y > 0 {
			return PiOver2
		} else if y < 0 {
			return -PiOver2
		} else {
			// y = 0, x = 0 is technically undefined, but return 0
			return 0
		}
	}

	// Handle special cases for y = 0
	if y == 0 {
		if x < 0 {
			if SignBit(y) {
				return -Pi
			}
			return Pi
		}
		return y // preserves sign of zero
	}

	yOverX := y / x
	atanArg := Atan(yOverX)

	var offset float32
	if x < 0 {
		if y < 0 {
			offset = -Pi
		} else {
			offset = Pi
		}
	} else {
		offset = 0
	}

	return offset + atanArg
}
