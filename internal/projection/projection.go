// Starchart - Star-Field Charts and Time-Lapse Sky Animation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/starchart

package projection

import (
	"math"

	"github.com/tomtom215/starchart/internal/astro"
	"github.com/tomtom215/starchart/internal/catalog"
	"github.com/tomtom215/starchart/internal/ephemeris"
	"github.com/tomtom215/starchart/internal/logging"
	"github.com/tomtom215/starchart/internal/metrics"
	"github.com/tomtom215/starchart/internal/models"
)

// minParallaxMas stands in for missing or negative parallaxes.
const minParallaxMas = 1e-6

const masToRad = math.Pi / (180 * 3600 * 1000)

// Point is a position on the projection plane.
type Point struct {
	X, Y float64
}

// ProjectedStar is a catalog star placed on the plane.
type ProjectedStar struct {
	ID        int
	X, Y      float64
	Magnitude float64
}

// Segment is a constellation line between two projected stars.
type Segment struct {
	Constellation string
	From, To      Point
}

// Frame is one projected sky. Stars is aligned with catalog order.
type Frame struct {
	Observer models.Observer
	Stars    []ProjectedStar
	Segments []Segment
}

// Project computes the frame for obs.
func Project(eph *ephemeris.Ephemeris, cat *catalog.Catalog, edges []catalog.Edge, obs models.Observer) Frame {
	jdUT := astro.JulianDate(obs.Instant)
	jdTT := astro.TerrestrialTime(obs.Instant)

	earth := eph.Position(ephemeris.Earth, obs.Instant)
	zenith := astro.Zenith(obs.Latitude, obs.Longitude, jdUT, jdTT)
	proj := astro.NewStereographic(zenith)
	elapsed := jdTT - astro.J1991_25

	frame := Frame{
		Observer: obs,
		Stars:    make([]ProjectedStar, cat.Len()),
		Segments: make([]Segment, 0, len(edges)),
	}

	for i := range frame.Stars {
		s := cat.Star(i)
		x, y := proj.Project(astrometric(s, elapsed, earth))
		frame.Stars[i] = ProjectedStar{ID: s.ID, X: x, Y: y, Magnitude: s.Magnitude}
	}

	dropped := 0
	for _, e := range edges {
		from, okFrom := cat.Index(e.From)
		to, okTo := cat.Index(e.To)
		if !okFrom || !okTo {
			dropped++
			continue
		}
		a, b := frame.Stars[from], frame.Stars[to]
		frame.Segments = append(frame.Segments, Segment{
			Constellation: e.Constellation,
			From:          Point{a.X, a.Y},
			To:            Point{b.X, b.Y},
		})
	}
	if dropped > 0 {
		metrics.ConstellationEdgesDropped.Add(float64(dropped))
		logging.Debug().Int("dropped", dropped).Msg("Skipped constellation edges with missing stars")
	}

	return frame
}

// astrometric returns the star's position relative to the Earth in AU,
// elapsedDays after the catalog epoch.
func astrometric(s catalog.Star, elapsedDays float64, earth astro.Vec3) astro.Vec3 {
	plx := s.Parallax
	if plx <= 0 {
		plx = minParallaxMas
	}
	dist := 1 / math.Tan(plx*masToRad)

	ra, dec := astro.Radians(s.RA), astro.Radians(s.Dec)
	sr, cr := math.Sin(ra), math.Cos(ra)
	sd, cd := math.Sin(dec), math.Cos(dec)

	dir := astro.Vec3{X: cd * cr, Y: cd * sr, Z: sd}
	east := astro.Vec3{X: -sr, Y: cr}
	north := astro.Vec3{X: -sd * cr, Y: -sd * sr, Z: cd}

	// Proper motions in mas/yr to rad/day; PMRA already includes cos δ.
	perDay := masToRad / astro.DaysPerJulianYear
	velocity := east.Scale(s.PMRA * perDay).Add(north.Scale(s.PMDec * perDay)).Scale(dist)

	return dir.Scale(dist).Add(velocity.Scale(elapsedDays)).Sub(earth)
}
