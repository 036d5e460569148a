// Starchart - Star-Field Charts and Time-Lapse Sky Animation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/starchart

package astro

import "math"

const arcsec = math.Pi / (180 * 3600)

// PrecessionMatrix returns the IAU 1976 rotation from the J2000 mean equator
// and equinox to the mean equator and equinox of date, for a Julian date on
// the TT scale. Its transpose rotates mean-of-date vectors back to J2000.
func PrecessionMatrix(jdTT float64) Mat3 {
	t := (jdTT - J2000) / 36525
	t2, t3 := t*t, t*t*t

	zeta := (2306.2181*t + 0.30188*t2 + 0.017998*t3) * arcsec
	z := (2306.2181*t + 1.09468*t2 + 0.018203*t3) * arcsec
	theta := (2004.3109*t - 0.42665*t2 - 0.041833*t3) * arcsec

	cz, sz := math.Cos(z), math.Sin(z)
	cZeta, sZeta := math.Cos(zeta), math.Sin(zeta)
	cTheta, sTheta := math.Cos(theta), math.Sin(theta)

	return Mat3{
		{cZeta*cTheta*cz - sZeta*sz, -sZeta*cTheta*cz - cZeta*sz, -sTheta * cz},
		{cZeta*cTheta*sz + sZeta*cz, -sZeta*cTheta*sz + cZeta*cz, -sTheta * sz},
		{cZeta * sTheta, -sZeta * sTheta, cTheta},
	}
}

// WGS84 ellipsoid flattening.
const wgs84Flattening = 1 / 298.257223563

// GeocentricLatitude converts a geodetic latitude to geocentric, both in radians.
func GeocentricLatitude(geodetic float64) float64 {
	k := (1 - wgs84Flattening) * (1 - wgs84Flattening)
	return math.Atan(k * math.Tan(geodetic))
}

// Zenith returns the unit vector towards an observer's zenith in the J2000
// frame. latDeg and lonDeg are geodetic, east-positive degrees.
func Zenith(latDeg, lonDeg, jdUT, jdTT float64) Vec3 {
	lat := GeocentricLatitude(Radians(latDeg))
	ra := GMST(jdUT) + Radians(lonDeg)
	ofDate := FromRADec(ra, lat)
	return PrecessionMatrix(jdTT).Transpose().Apply(ofDate)
}
