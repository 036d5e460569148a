// Starchart - Star-Field Charts and Time-Lapse Sky Animation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/starchart

package astro

import "math"

// Vec3 is a Cartesian vector.
type Vec3 struct {
	X, Y, Z float64
}

// Add returns v + w.
func (v Vec3) Add(w Vec3) Vec3 {
	return Vec3{v.X + w.X, v.Y + w.Y, v.Z + w.Z}
}

// Sub returns v - w.
func (v Vec3) Sub(w Vec3) Vec3 {
	return Vec3{v.X - w.X, v.Y - w.Y, v.Z - w.Z}
}

// Scale returns k·v.
func (v Vec3) Scale(k float64) Vec3 {
	return Vec3{k * v.X, k * v.Y, k * v.Z}
}

// Dot returns the scalar product.
func (v Vec3) Dot(w Vec3) float64 {
	return v.X*w.X + v.Y*w.Y + v.Z*w.Z
}

// Norm returns the Euclidean length.
func (v Vec3) Norm() float64 {
	return math.Sqrt(v.Dot(v))
}

// Unit returns v scaled to unit length. The zero vector is returned unchanged.
func (v Vec3) Unit() Vec3 {
	n := v.Norm()
	if n == 0 {
		return v
	}
	return v.Scale(1 / n)
}

// Mat3 is a row-major 3x3 rotation matrix.
type Mat3 [3][3]float64

// Apply returns m·v.
func (m Mat3) Apply(v Vec3) Vec3 {
	return Vec3{
		m[0][0]*v.X + m[0][1]*v.Y + m[0][2]*v.Z,
		m[1][0]*v.X + m[1][1]*v.Y + m[1][2]*v.Z,
		m[2][0]*v.X + m[2][1]*v.Y + m[2][2]*v.Z,
	}
}

// Transpose returns mᵀ, which is the inverse for a rotation.
func (m Mat3) Transpose() Mat3 {
	var t Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			t[i][j] = m[j][i]
		}
	}
	return t
}

// FromRADec returns the unit vector for right ascension and declination in radians.
func FromRADec(ra, dec float64) Vec3 {
	cd := math.Cos(dec)
	return Vec3{cd * math.Cos(ra), cd * math.Sin(ra), math.Sin(dec)}
}

// ToRADec returns right ascension in [0, 2π) and declination in radians.
func (v Vec3) ToRADec() (ra, dec float64) {
	ra = math.Atan2(v.Y, v.X)
	if ra < 0 {
		ra += 2 * math.Pi
	}
	dec = math.Atan2(v.Z, math.Hypot(v.X, v.Y))
	return ra, dec
}

// Radians converts degrees to radians.
func Radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// Degrees converts radians to degrees.
func Degrees(rad float64) float64 {
	return rad * 180 / math.Pi
}
