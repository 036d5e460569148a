// Starchart - Star-Field Charts and Time-Lapse Sky Animation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/starchart

/*
Package projection places catalog stars on the observer's sky.

Project is a pure function of (ephemeris, catalog, edges, observer). For each
star it computes the astrometric position at the observer's instant:

  - catalog direction at epoch J1991.25, at the distance implied by the
    parallax (non-positive parallaxes are treated as 1e-6 mas, effectively
    infinitely far)
  - plus linear space motion from proper motion over the elapsed time
  - minus the Earth's heliocentric position from the ephemeris

and projects it stereographically about the observer's zenith. The zenith
lands at (0, 0), the horizon on the unit circle, north up and east left as
on a planisphere held overhead.

Every call allocates a fresh Frame. The catalog, edges, and ephemeris are
read but never written, so any number of goroutines may project
concurrently from one shared bundle.
*/
package projection
