// Starchart - Star-Field Charts and Time-Lapse Sky Animation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/starchart

package astro

import (
	"math"
	"testing"
	"time"
)

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestJulianDate(t *testing.T) {
	tests := []struct {
		name     string
		instant  time.Time
		expected float64
	}{
		{"J2000 noon", time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC), J2000},
		{"unix epoch", time.Unix(0, 0), 2440587.5},
		{"non-UTC input", time.Date(2000, 1, 1, 22, 0, 0, 0, time.FixedZone("AEST", 10*3600)), J2000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := JulianDate(tt.instant); !almostEqual(got, tt.expected, 1e-9) {
				t.Errorf("JulianDate(%v) = %.9f, expected %.9f", tt.instant, got, tt.expected)
			}
		})
	}
}

func TestTerrestrialTimeOffset(t *testing.T) {
	instant := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	diff := (TerrestrialTime(instant) - JulianDate(instant)) * 86400
	if !almostEqual(diff, TTMinusUTC, 1e-3) {
		t.Errorf("TT-UTC = %.4f s, expected %.3f s", diff, TTMinusUTC)
	}
}

func TestGMST(t *testing.T) {
	got := Degrees(GMST(J2000))
	if !almostEqual(got, 280.46061837, 1e-6) {
		t.Errorf("GMST(J2000) = %.8f°, expected 280.46061837°", got)
	}

	// One solar day later sidereal time has advanced ~0.9856°.
	next := Degrees(GMST(J2000 + 1))
	if !almostEqual(next-got, 0.98564736629, 1e-6) {
		t.Errorf("GMST daily advance = %.8f°, expected 0.98564737°", next-got)
	}

	for _, jd := range []float64{J2000 - 1e5, J2000, J2000 + 12345.678} {
		if g := GMST(jd); g < 0 || g >= 2*math.Pi {
			t.Errorf("GMST(%v) = %v, outside [0, 2π)", jd, g)
		}
	}
}

func TestPrecessionMatrixIdentityAtJ2000(t *testing.T) {
	m := PrecessionMatrix(J2000)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			want := 0.0
			if i == j {
				want = 1
			}
			if !almostEqual(m[i][j], want, 1e-12) {
				t.Errorf("P[%d][%d] = %v, expected %v", i, j, m[i][j], want)
			}
		}
	}
}

func TestPrecessionMatrixIsRotation(t *testing.T) {
	m := PrecessionMatrix(J2000 + 36525*0.25)
	v := Vec3{0.3, -0.5, 0.81}
	back := m.Transpose().Apply(m.Apply(v))
	if !almostEqual(back.Sub(v).Norm(), 0, 1e-12) {
		t.Errorf("PᵀP v = %+v, expected %+v", back, v)
	}
	if !almostEqual(m.Apply(v).Norm(), v.Norm(), 1e-12) {
		t.Error("precession changed vector length")
	}
}

func TestGeocentricLatitude(t *testing.T) {
	tests := []struct {
		geodetic float64
		expected float64
	}{
		{0, 0},
		{45, 44.8075766},
		{-45, -44.8075766},
		{90, 90},
	}

	for _, tt := range tests {
		got := Degrees(GeocentricLatitude(Radians(tt.geodetic)))
		if !almostEqual(got, tt.expected, 1e-5) {
			t.Errorf("GeocentricLatitude(%v°) = %.7f°, expected %.7f°", tt.geodetic, got, tt.expected)
		}
	}
}

func TestZenithAtPoleIsCelestialPole(t *testing.T) {
	instant := time.Date(2024, 6, 1, 3, 0, 0, 0, time.UTC)
	z := Zenith(90, 0, JulianDate(instant), TerrestrialTime(instant))
	if z.Z < 0.99999 {
		t.Errorf("Zenith(90, 0).Z = %v, expected ~1", z.Z)
	}
	if !almostEqual(z.Norm(), 1, 1e-12) {
		t.Errorf("|zenith| = %v, expected 1", z.Norm())
	}
}

func TestStereographic(t *testing.T) {
	centers := []struct {
		name string
		c    Vec3
	}{
		{"equator", FromRADec(Radians(30), 0)},
		{"mid latitude", FromRADec(Radians(200), Radians(-34))},
		{"north pole", Vec3{0, 0, 1}},
		{"south pole", Vec3{0, 0, -2}},
	}

	for _, tt := range centers {
		t.Run(tt.name, func(t *testing.T) {
			proj := NewStereographic(tt.c)

			x, y := proj.Project(tt.c)
			if !almostEqual(x, 0, 1e-12) || !almostEqual(y, 0, 1e-12) {
				t.Errorf("Project(center) = (%v, %v), expected (0, 0)", x, y)
			}

			// Any direction perpendicular to the centre lands on the unit circle.
			c := tt.c.Unit()
			perp := Vec3{1, 0, 0}
			if math.Abs(c.X) > 0.9 {
				perp = Vec3{0, 1, 0}
			}
			perp = perp.Sub(c.Scale(perp.Dot(c))).Unit()
			x, y = proj.Project(perp)
			if r := math.Hypot(x, y); !almostEqual(r, 1, 1e-12) {
				t.Errorf("horizon radius = %v, expected 1", r)
			}

			x, y = proj.Project(c.Scale(-1))
			if r := math.Hypot(x, y); !math.IsNaN(r) && r < 1e6 {
				t.Errorf("Project(antipode) = (%v, %v), expected to diverge", x, y)
			}
		})
	}
}

func TestStereographicAntipodeHasNoImage(t *testing.T) {
	// 1+u·c rounds to a tiny negative value here rather than zero.
	center := FromRADec(Radians(200), Radians(-34))
	proj := NewStereographic(center)

	x, y := proj.Project(center.Scale(-1))
	if !math.IsNaN(x) || !math.IsNaN(y) {
		t.Errorf("Project(antipode) = (%v, %v), expected (NaN, NaN)", x, y)
	}
}

func TestStereographicOrientation(t *testing.T) {
	// Looking up from the equator at RA 0: north is +y, east (increasing RA) is -x.
	proj := NewStereographic(FromRADec(0, 0))

	_, y := proj.Project(FromRADec(0, Radians(10)))
	if y <= 0 {
		t.Errorf("northern point y = %v, expected > 0", y)
	}
	x, _ := proj.Project(FromRADec(Radians(10), 0))
	if x >= 0 {
		t.Errorf("eastern point x = %v, expected < 0", x)
	}
}

func TestToRADecRoundTrip(t *testing.T) {
	ra, dec := Radians(123.4), Radians(-56.7)
	gotRA, gotDec := FromRADec(ra, dec).ToRADec()
	if !almostEqual(gotRA, ra, 1e-12) || !almostEqual(gotDec, dec, 1e-12) {
		t.Errorf("ToRADec = (%v, %v), expected (%v, %v)", gotRA, gotDec, ra, dec)
	}
}
