// Starchart - Star-Field Charts and Time-Lapse Sky Animation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/starchart

/*
Package astro holds the small amount of positional astronomy Starchart needs.

All functions are pure and allocation-free, so they are safe to call from any
number of render workers.

Key Components:

  - Vec3: Cartesian vectors in AU or unit length, in the ICRS/J2000 frame
  - JulianDate, TerrestrialTime: instant to Julian date (UT and TT)
  - GMST: Greenwich mean sidereal time (IAU 1982 expression)
  - PrecessionMatrix: IAU 1976 (Lieske) precession from J2000 to mean-of-date
  - GeocentricLatitude: WGS84 geodetic to geocentric latitude
  - Stereographic: projection about an arbitrary centre direction

Accuracy is at the arcsecond-to-arcminute level, which is far below a pixel
on a chart of any practical size. Nutation, aberration, and refraction are
ignored.
*/
package astro
