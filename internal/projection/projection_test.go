// Starchart - Star-Field Charts and Time-Lapse Sky Animation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/starchart

package projection

import (
	"math"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/tomtom215/starchart/internal/astro"
	"github.com/tomtom215/starchart/internal/catalog"
	"github.com/tomtom215/starchart/internal/ephemeris"
	"github.com/tomtom215/starchart/internal/models"
)

const testEphemeris = ` VSOP87 VERSION A1    EARTH     VARIABLE 1 (XYZ)       *T**0      1 TERMS
 1310    1  0  0  0  0  0  0  0  0  0  0  0  0     0.99982928844     1.75348568475 0.99982928844 1.75348568475      6283.07584999140
 VSOP87 VERSION A1    EARTH     VARIABLE 2 (XYZ)       *T**0      1 TERMS
 1320    1  0  0  0  0  0  0  0  0  0  0  0  0     0.99989211030     0.18265890456 0.99989211030 0.18265890456      6283.07584999140
 VSOP87 VERSION A1    EARTH     VARIABLE 3 (XYZ)       *T**0      1 TERMS
 1330    1  0  0  0  0  0  0  0  0  0  0  0  0     0.00000279620     3.19870156017 0.00000279620 3.19870156017     84334.66158130829
`

// A handful of real Hipparcos entries.
var testStars = []catalog.Star{
	{ID: 11767, RA: 37.94614689, Dec: 89.26413805, Magnitude: 2.02, Parallax: 7.56, PMRA: 44.22, PMDec: -11.74},        // Polaris
	{ID: 32349, RA: 101.28854105, Dec: -16.71314306, Magnitude: -1.44, Parallax: 379.21, PMRA: -546.01, PMDec: -1223.08}, // Sirius
	{ID: 70890, RA: 217.44894751, Dec: -62.68135207, Magnitude: 11.01, Parallax: 772.33, PMRA: -3775.75, PMDec: 765.54},  // Proxima Cen
	{ID: 104382, RA: 317.19509724, Dec: -88.95650163, Magnitude: 5.45, Parallax: 12.07, PMRA: 25.96, PMDec: 5.02},        // σ Oct
	{ID: 26727, RA: 85.18969443, Dec: -1.94257359, Magnitude: 1.74, Parallax: 3.99, PMRA: 3.99, PMDec: 2.54},             // Alnitak
	{ID: 26311, RA: 84.05338572, Dec: -1.20191725, Magnitude: 1.69, Parallax: 2.43, PMRA: 1.49, PMDec: -1.06},            // Alnilam
	{ID: 1, RA: 0.00091185, Dec: 1.08901332, Magnitude: 9.10, Parallax: -0.5},                                            // negative parallax
}

func loadFixtures(t *testing.T) (*ephemeris.Ephemeris, *catalog.Catalog) {
	t.Helper()
	eph, err := ephemeris.Parse(strings.NewReader(testEphemeris))
	if err != nil {
		t.Fatalf("parse ephemeris: %v", err)
	}
	return eph, catalog.NewCatalog(testStars)
}

func observer(lat, lon float64, instant time.Time) models.Observer {
	return models.Observer{Coordinates: models.Coordinates{Latitude: lat, Longitude: lon}, Instant: instant}
}

func radius(s ProjectedStar) float64 {
	return math.Hypot(s.X, s.Y)
}

func TestProjectIsDeterministic(t *testing.T) {
	eph, cat := loadFixtures(t)
	edges := []catalog.Edge{{Constellation: "Ori", From: 26727, To: 26311}}
	obs := observer(-33.8688, 151.2093, time.Date(2024, 1, 1, 11, 0, 0, 0, time.UTC))

	before := make([]catalog.Star, cat.Len())
	for i := range before {
		before[i] = cat.Star(i)
	}

	a := Project(eph, cat, edges, obs)
	b := Project(eph, cat, edges, obs)

	if !reflect.DeepEqual(a, b) {
		t.Error("Project() returned different frames for identical inputs")
	}
	if &a.Stars[0] == &b.Stars[0] {
		t.Error("Project() should allocate a fresh Stars slice per call")
	}
	for i := range before {
		if cat.Star(i) != before[i] {
			t.Errorf("catalog star %d mutated: %+v -> %+v", i, before[i], cat.Star(i))
		}
	}
}

func TestProjectAlignsWithCatalog(t *testing.T) {
	eph, cat := loadFixtures(t)
	frame := Project(eph, cat, nil, observer(0, 0, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)))

	if len(frame.Stars) != cat.Len() {
		t.Fatalf("len(Stars) = %d, expected %d", len(frame.Stars), cat.Len())
	}
	for i, s := range frame.Stars {
		c := cat.Star(i)
		if s.ID != c.ID || s.Magnitude != c.Magnitude {
			t.Errorf("Stars[%d] = %+v, expected ID %d mag %v", i, s, c.ID, c.Magnitude)
		}
		if math.IsNaN(s.X) || math.IsNaN(s.Y) {
			t.Errorf("Stars[%d] (HIP %d) projected to NaN", i, s.ID)
		}
	}
}

func TestProjectPoleStars(t *testing.T) {
	eph, cat := loadFixtures(t)
	instant := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	polaris, _ := cat.Index(11767)
	sigmaOct, _ := cat.Index(104382)

	north := Project(eph, cat, nil, observer(90, 0, instant))
	if r := radius(north.Stars[polaris]); r > 0.02 {
		t.Errorf("Polaris from the North Pole at r = %v, expected near the zenith", r)
	}
	if r := radius(north.Stars[sigmaOct]); r <= 1 {
		t.Errorf("σ Oct from the North Pole at r = %v, expected below the horizon", r)
	}

	south := Project(eph, cat, nil, observer(-90, 0, instant))
	if r := radius(south.Stars[sigmaOct]); r > 0.02 {
		t.Errorf("σ Oct from the South Pole at r = %v, expected near the zenith", r)
	}
	if r := radius(south.Stars[polaris]); r <= 1 {
		t.Errorf("Polaris from the South Pole at r = %v, expected below the horizon", r)
	}
}

func TestProjectZenithAndHorizon(t *testing.T) {
	eph, _ := loadFixtures(t)
	instant := time.Date(2024, 3, 15, 20, 0, 0, 0, time.UTC)
	lat, lon := 51.4779, -0.0015

	zenith := astro.Zenith(lat, lon, astro.JulianDate(instant), astro.TerrestrialTime(instant))
	ra, dec := zenith.ToRADec()

	// A perpendicular direction lies on the horizon.
	ref := astro.Vec3{Z: 1}
	horizon := ref.Sub(zenith.Scale(ref.Dot(zenith))).Unit()
	hra, hdec := horizon.ToRADec()

	cat := catalog.NewCatalog([]catalog.Star{
		{ID: 1, RA: astro.Degrees(ra), Dec: astro.Degrees(dec)},
		{ID: 2, RA: astro.Degrees(hra), Dec: astro.Degrees(hdec)},
	})
	frame := Project(eph, cat, nil, observer(lat, lon, instant))

	if r := radius(frame.Stars[0]); r > 1e-9 {
		t.Errorf("zenith star at r = %v, expected 0", r)
	}
	if r := radius(frame.Stars[1]); math.Abs(r-1) > 1e-9 {
		t.Errorf("horizon star at r = %v, expected 1", r)
	}
	// Due north of the zenith means +y.
	if frame.Stars[1].Y <= 0 {
		t.Errorf("northern horizon star y = %v, expected > 0", frame.Stars[1].Y)
	}
}

func TestProjectSegments(t *testing.T) {
	eph, cat := loadFixtures(t)
	edges := []catalog.Edge{
		{Constellation: "Ori", From: 26727, To: 26311},
		{Constellation: "Ori", From: 26311, To: 424242},
		{Constellation: "CMa", From: 999, To: 32349},
	}

	frame := Project(eph, cat, edges, observer(-33.8688, 151.2093, time.Date(2024, 1, 1, 11, 0, 0, 0, time.UTC)))
	if len(frame.Segments) != 1 {
		t.Fatalf("len(Segments) = %d, expected 1", len(frame.Segments))
	}

	from, _ := cat.Index(26727)
	to, _ := cat.Index(26311)
	seg := frame.Segments[0]
	if seg.Constellation != "Ori" ||
		seg.From != (Point{frame.Stars[from].X, frame.Stars[from].Y}) ||
		seg.To != (Point{frame.Stars[to].X, frame.Stars[to].Y}) {
		t.Errorf("segment = %+v, expected Alnitak-Alnilam endpoints", seg)
	}
	if len(edges) != 3 {
		t.Error("Project() must not modify the edge list")
	}
}

func TestAstrometricProperMotion(t *testing.T) {
	earth := astro.Vec3{}
	star := catalog.Star{RA: 0, Dec: 0, Parallax: 100, PMRA: 1000, PMDec: 0}

	// After one Julian year the star has moved 1" east.
	p := astrometric(star, astro.DaysPerJulianYear, earth)
	ra, dec := p.ToRADec()
	if got := astro.Degrees(ra) * 3600; math.Abs(got-1) > 1e-6 {
		t.Errorf("RA after one year = %v arcsec, expected 1", got)
	}
	if math.Abs(dec) > 1e-12 {
		t.Errorf("Dec after one year = %v, expected 0", dec)
	}

	// 100 mas parallax is 10 pc = 2062648 AU.
	if d := astrometric(star, 0, earth).Norm(); math.Abs(d/2062648.06-1) > 1e-6 {
		t.Errorf("distance = %v AU, expected ~2062648", d)
	}
}
