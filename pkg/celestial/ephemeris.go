// pkg/celestial/ephemeris.go
// Copyright(c) 2026 osd contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package celestial

import "math"

// Days between the Unix epoch (1970-01-01 00:00 UTC) and the J2000 epoch
// (2000-01-01 12:00 UTC): 30 years plus 7 leap days plus half a day to noon.
const unixEpochToJ2000Days = 10957.5

const degRad = math.Pi / 180

const earthRadiusKm = 6378.137

// j2000Days converts a Unix timestamp to days since the J2000 epoch.
func j2000Days(unixSeconds int64) float64 {
	return float64(unixSeconds)/86400 - unixEpochToJ2000Days
}

// gmstDegrees returns Greenwich mean sidereal time in degrees for the given
// days since J2000, using the IAU-82 model (Vallado, "Fundamentals of
// Astrodynamics", eq. 3-47).
func gmstDegrees(d float64) float64 {
	t := d / 36525

	// Seconds of time; 876600 hours is 3155760000 seconds.
	sec := 67310.54841 + (3155760000.0+8640184.812866)*t + 0.093104*t*t - 6.2e-6*t*t*t

	sec = math.Mod(sec, 86400)
	if sec < 0 {
		sec += 86400
	}
	return sec / 86400 * 360
}

// obliquityRadians returns the mean obliquity of the ecliptic.
func obliquityRadians(d float64) float64 {
	return (23.439 - 0.00000036*d) * degRad
}

// eclipticToEquatorial converts ecliptic longitude and latitude to right
// ascension and declination for the given obliquity. All angles in radians.
func eclipticToEquatorial(lon, lat, eps float64) (ra, dec float64) {
	sinLon, cosLon := math.Sincos(lon)
	sinEps, cosEps := math.Sincos(eps)
	ra = math.Atan2(sinLon*cosEps-math.Tan(lat)*sinEps, cosLon)
	dec = math.Asin(math.Sin(lat)*cosEps + math.Cos(lat)*sinEps*sinLon)
	return
}

// sunEquatorial returns the sun's geocentric RA and declination in radians,
// per the low-precision formulas of the Astronomical Almanac (good to about
// 0.01 degrees within a century of J2000).
func sunEquatorial(d float64) (ra, dec float64) {
	g := (357.529 + 0.98560028*d) * degRad // mean anomaly
	q := 280.459 + 0.98564736*d            // mean longitude, degrees

	// Apparent ecliptic longitude; the sun's ecliptic latitude never
	// exceeds 0.001 degrees and is taken as zero.
	lon := (q + 1.915*math.Sin(g) + 0.020*math.Sin(2*g)) * degRad

	return eclipticToEquatorial(lon, 0, obliquityRadians(d))
}

// moonEquatorial returns the moon's geocentric RA and declination in
// radians plus its distance in km, from the truncated series in Montenbruck
// and Pfleger, "Astronomy on the Personal Computer". Good to a few tenths
// of a degree, which is smaller than the moon's own disc.
func moonEquatorial(d float64) (ra, dec, distKm float64) {
	l := (218.316 + 13.176396*d) * degRad // mean longitude
	m := (134.963 + 13.064993*d) * degRad // mean anomaly
	f := (93.272 + 13.229350*d) * degRad  // argument of latitude

	lon := l + 6.289*degRad*math.Sin(m)
	lat := 5.128 * degRad * math.Sin(f)
	distKm = 385001 - 20905*math.Cos(m)

	ra, dec = eclipticToEquatorial(lon, lat, obliquityRadians(d))
	return
}

// refractionDegrees returns the atmospheric refraction to add to the true
// altitude, per Saemundsson's formula (Meeus, "Astronomical Algorithms",
// ch. 16). Below -1 degree the correction tapers linearly to zero at the
// nadir so it never blows up.
func refractionDegrees(altDeg float64) float64 {
	hd := altDeg
	if hd < -1 {
		hd = -1
	}
	r := 1.02 / math.Tan((hd+10.3/(hd+5.11))*degRad) / 60
	if altDeg < -1 {
		r *= (altDeg + 90) / 89
	}
	return r
}

// horizontal converts equatorial coordinates (radians) to horizontal
// azimuth and altitude in degrees for the observer. lstDeg is the local
// sidereal time in degrees.
func horizontal(ra, dec, lstDeg float64, obs Observer) (azDeg, altDeg float64) {
	h := lstDeg*degRad - ra // hour angle, positive west of the meridian
	lat := obs.Latitude * degRad

	sinDec, cosDec := math.Sincos(dec)
	sinLat, cosLat := math.Sincos(lat)
	sinH, cosH := math.Sincos(h)

	alt := math.Asin(sinDec*sinLat + cosDec*cosLat*cosH)

	// Azimuth from north, clockwise through east.
	az := math.Atan2(-cosDec*sinH, sinDec*cosLat-cosDec*sinLat*cosH)

	azDeg = az / degRad
	if azDeg < 0 {
		azDeg += 360
	}
	return azDeg, alt / degRad
}

// SunPosition returns the sun's refracted horizontal coordinates for the
// observer at the given Unix timestamp.
func SunPosition(unixSeconds int64, obs Observer) Position {
	if !obs.valid() {
		return Position{}
	}

	d := j2000Days(unixSeconds)
	ra, dec := sunEquatorial(d)
	az, alt := horizontal(ra, dec, gmstDegrees(d)+obs.Longitude, obs)
	alt += refractionDegrees(alt)

	return Position{Azimuth: az, Altitude: alt, Valid: true}
}

// MoonPosition returns the moon's refracted horizontal coordinates for the
// observer at the given Unix timestamp. Unlike the sun, the moon is close
// enough that the observer's offset from the geocenter matters: the
// geocentric altitude is corrected for parallax, which lowers it by up to
// about a degree.
func MoonPosition(unixSeconds int64, obs Observer) Position {
	if !obs.valid() {
		return Position{}
	}

	d := j2000Days(unixSeconds)
	ra, dec, distKm := moonEquatorial(d)
	az, alt := horizontal(ra, dec, gmstDegrees(d)+obs.Longitude, obs)

	parallax := math.Asin(earthRadiusKm/distKm) / degRad
	alt -= parallax * math.Cos(alt*degRad)
	alt += refractionDegrees(alt)

	return Position{Azimuth: az, Altitude: alt, Valid: true}
}
