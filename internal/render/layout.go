// Starchart - Star-Field Charts and Time-Lapse Sky Animation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/starchart

package render

import (
	"math"

	"github.com/tomtom215/starchart/internal/models"
	"github.com/tomtom215/starchart/internal/projection"
)

// Defaults applied to zero-valued Options fields.
const (
	DefaultChartSize       = 10
	DefaultMaxMarkerSize   = 100
	DefaultMagnitudeCutoff = 6.5
	DefaultDPI             = 100
)

const pointsPerInch = 72

// Options controls a single render.
type Options struct {
	// ChartSize is the edge length of the square chart in inches.
	ChartSize       int
	// MaxMarkerSize is the marker area, in points squared, of a magnitude 0 star.
	MaxMarkerSize   int
	// MagnitudeCutoff hides stars fainter than this magnitude. Nil uses
	// DefaultMagnitudeCutoff.
	MagnitudeCutoff *float64
	DPI             int
	Title           string

	DrawConstellations bool
}

func (o Options) withDefaults() Options {
	if o.ChartSize == 0 {
		o.ChartSize = DefaultChartSize
	}
	if o.MaxMarkerSize == 0 {
		o.MaxMarkerSize = DefaultMaxMarkerSize
	}
	if o.MagnitudeCutoff == nil {
		o.MagnitudeCutoff = Cutoff(DefaultMagnitudeCutoff)
	}
	if o.DPI == 0 {
		o.DPI = DefaultDPI
	}
	return o
}

func (o Options) validate() error {
	const op = "render.options"
	switch {
	case o.ChartSize < 0:
		return models.Errorf(models.KindValidation, op, "chart size must be positive, got %d", o.ChartSize)
	case o.MaxMarkerSize < 0:
		return models.Errorf(models.KindValidation, op, "max marker size must be positive, got %d", o.MaxMarkerSize)
	case o.DPI < 0:
		return models.Errorf(models.KindValidation, op, "dpi must be positive, got %d", o.DPI)
	case o.MagnitudeCutoff != nil && math.IsNaN(*o.MagnitudeCutoff):
		return models.NewError(models.KindValidation, op, "magnitude cutoff is NaN", nil)
	}
	return nil
}

// Cutoff returns a MagnitudeCutoff option for mag.
func Cutoff(mag float64) *float64 {
	return &mag
}

// MarkerSize returns the marker area for a star of the given magnitude.
func MarkerSize(maxSize, magnitude float64) float64 {
	return maxSize * math.Pow(10, magnitude/-2.5)
}

// Marker is a star placed on the canvas.
type Marker struct {
	ID        int
	X, Y      float64
	Radius    float64
	Magnitude float64
}

// Line is a constellation segment in pixel space.
type Line struct {
	X1, Y1, X2, Y2 float64
}

// Layout is a frame resolved to pixel coordinates.
type Layout struct {
	Width, Height int

	// CenterX, CenterY and HorizonRadius describe the horizon circle.
	CenterX, CenterY float64
	HorizonRadius    float64

	Markers []Marker
	Lines   []Line
}

// ComputeLayout places frame on a canvas described by opts. Zero-valued
// options take their defaults.
func ComputeLayout(frame projection.Frame, opts Options) Layout {
	opts = opts.withDefaults()
	side := opts.ChartSize * opts.DPI

	l := Layout{
		Width:         side,
		Height:        side,
		CenterX:       float64(side) / 2,
		CenterY:       float64(side) / 2,
		HorizonRadius: float64(side) / 2,
	}

	toPixel := func(x, y float64) (float64, float64) {
		return (x + 1) / 2 * float64(l.Width), (1 - y) / 2 * float64(l.Height)
	}
	scale := float64(opts.DPI) / pointsPerInch
	cutoff := *opts.MagnitudeCutoff

	for _, s := range frame.Stars {
		// NaN comparisons are false, so undefined positions fall out here.
		if !(s.Magnitude <= cutoff) || !(math.Hypot(s.X, s.Y) <= 1) {
			continue
		}
		px, py := toPixel(s.X, s.Y)
		size := MarkerSize(float64(opts.MaxMarkerSize), s.Magnitude)
		l.Markers = append(l.Markers, Marker{
			ID:        s.ID,
			X:         px,
			Y:         py,
			Radius:    math.Sqrt(size/math.Pi) * scale,
			Magnitude: s.Magnitude,
		})
	}

	if opts.DrawConstellations {
		for _, seg := range frame.Segments {
			if !finite(seg.From) || !finite(seg.To) {
				continue
			}
			// Lines entirely outside the horizon would be clipped away.
			if math.Hypot(seg.From.X, seg.From.Y) > 1 && math.Hypot(seg.To.X, seg.To.Y) > 1 &&
				!crossesUnitDisk(seg.From, seg.To) {
				continue
			}
			x1, y1 := toPixel(seg.From.X, seg.From.Y)
			x2, y2 := toPixel(seg.To.X, seg.To.Y)
			l.Lines = append(l.Lines, Line{X1: x1, Y1: y1, X2: x2, Y2: y2})
		}
	}

	return l
}

func finite(p projection.Point) bool {
	return !math.IsNaN(p.X) && !math.IsNaN(p.Y) && !math.IsInf(p.X, 0) && !math.IsInf(p.Y, 0)
}

// crossesUnitDisk reports whether segment ab passes within distance 1 of the origin.
func crossesUnitDisk(a, b projection.Point) bool {
	dx, dy := b.X-a.X, b.Y-a.Y
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return math.Hypot(a.X, a.Y) <= 1
	}
	t := -(a.X*dx + a.Y*dy) / lenSq
	t = math.Max(0, math.Min(1, t))
	return math.Hypot(a.X+t*dx, a.Y+t*dy) <= 1
}
