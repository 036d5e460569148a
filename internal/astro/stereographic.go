// Starchart - Star-Field Charts and Time-Lapse Sky Animation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/starchart

package astro

import "math"

// antipodeEpsilon bounds 1+cos(θ) below which a direction is treated as the
// antipode of the centre.
const antipodeEpsilon = 1e-12

// Stereographic projects directions onto the plane tangent to a centre
// direction. The centre maps to (0, 0); directions 90° from it map to the
// unit circle; x grows to the east, y to the north, as seen from inside the
// sphere.
type Stereographic struct {
	center Vec3
	east   Vec3
	north  Vec3
}

// NewStereographic builds a projection about center, which need not be unit length.
func NewStereographic(center Vec3) Stereographic {
	c := center.Unit()
	ra, dec := c.ToRADec()
	sr, cr := math.Sin(ra), math.Cos(ra)
	sd, cd := math.Sin(dec), math.Cos(dec)
	return Stereographic{
		center: c,
		east:   Vec3{-sr, cr, 0},
		north:  Vec3{-sd * cr, -sd * sr, cd},
	}
}

// Project maps a direction (any length) to plane coordinates. The antipode of
// the centre, and anything within rounding of it, has no image and yields NaN.
func (s Stereographic) Project(v Vec3) (x, y float64) {
	u := v.Unit()
	d := 1 + u.Dot(s.center)
	if d <= antipodeEpsilon {
		return math.NaN(), math.NaN()
	}
	return -u.Dot(s.east) / d, u.Dot(s.north) / d
}
