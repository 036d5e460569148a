// Starchart - Star-Field Charts and Time-Lapse Sky Animation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/starchart

/*
Package ephemeris answers where the Earth is relative to the Sun.

Positions come from the VSOP87A Earth series (Bretagnon & Francou 1988) as
distributed by CDS (catalog VI/81, file VSOP87A.ear). The series gives
heliocentric rectangular coordinates in AU referred to the dynamical ecliptic
and equinox of J2000; Position rotates them to the J2000 mean equator so they
line up with ICRS star directions to well under an arcsecond.

The heliocentre stands in for the solar-system barycentre. The difference
(under 0.01 AU) shifts stellar directions by micro-arcseconds.

An Ephemeris is immutable once parsed and safe for concurrent use.
*/
package ephemeris
