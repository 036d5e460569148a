// Starchart - Star-Field Charts and Time-Lapse Sky Animation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/starchart

package astro

import (
	"math"
	"time"
)

const (
	// J2000 is the Julian date of 2000-01-01 12:00 TT.
	J2000 = 2451545.0

	// J1991_25 is the Hipparcos catalog epoch.
	J1991_25 = 2448349.0625

	// DaysPerJulianYear is the length of a Julian year in days.
	DaysPerJulianYear = 365.25

	// TTMinusUTC is TAI-UTC (37 s since 2017) plus TT-TAI (32.184 s).
	// No leap second has been scheduled since; a stale value costs well
	// under a pixel of sky rotation.
	TTMinusUTC = 69.184

	unixEpochJD   = 2440587.5
	secondsPerDay = 86400.0
)

// JulianDate returns the Julian date of t on the UTC scale.
func JulianDate(t time.Time) float64 {
	t = t.UTC()
	return unixEpochJD + float64(t.Unix())/secondsPerDay + float64(t.Nanosecond())/(secondsPerDay*1e9)
}

// TerrestrialTime returns the Julian date of t on the TT scale.
func TerrestrialTime(t time.Time) float64 {
	return JulianDate(t) + TTMinusUTC/secondsPerDay
}

// GMST returns Greenwich mean sidereal time in radians, normalised to [0, 2π),
// for a Julian date on the UT scale.
func GMST(jdUT float64) float64 {
	d := jdUT - J2000
	t := d / 36525
	deg := 280.46061837 + 360.98564736629*d + 0.000387933*t*t - t*t*t/38710000
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return Radians(deg)
}
