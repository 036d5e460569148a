// Starchart - Star-Field Charts and Time-Lapse Sky Animation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/starchart

package render

import (
	"bytes"
	"errors"
	"image/png"
	"math"
	"testing"
	"time"

	"github.com/tomtom215/starchart/internal/models"
	"github.com/tomtom215/starchart/internal/projection"
)

func TestMarkerSize(t *testing.T) {
	tests := []struct {
		max       float64
		magnitude float64
		expected  float64
	}{
		{100, 0, 100},
		{100, 5, 1},
		{100, -2.5, 1000},
		{100, 2.5, 10},
		{50, 0, 50},
		{100, 10, 0.01},
	}

	for _, tt := range tests {
		got := MarkerSize(tt.max, tt.magnitude)
		if math.Abs(got-tt.expected) > 1e-9*math.Max(1, tt.expected) {
			t.Errorf("MarkerSize(%v, %v) = %v, expected %v", tt.max, tt.magnitude, got, tt.expected)
		}
	}
}

func TestComputeLayoutFilters(t *testing.T) {
	frame := projection.Frame{Stars: []projection.ProjectedStar{
		{ID: 1, X: 0, Y: 0, Magnitude: 1},
		{ID: 2, X: 0.5, Y: 0.5, Magnitude: 7},
		{ID: 3, X: 1.2, Y: 0, Magnitude: 1},
		{ID: 4, X: math.NaN(), Y: math.NaN(), Magnitude: 1},
		{ID: 5, X: 1, Y: 0, Magnitude: 6.5},
		{ID: 6, X: math.Inf(1), Y: 0, Magnitude: 0},
	}}

	l := ComputeLayout(frame, Options{})

	var ids []int
	for _, m := range l.Markers {
		ids = append(ids, m.ID)
	}
	if len(ids) != 2 || ids[0] != 1 || ids[1] != 5 {
		t.Errorf("ComputeLayout() kept %v, expected [1 5]", ids)
	}
}

func TestComputeLayoutZeroCutoff(t *testing.T) {
	frame := projection.Frame{Stars: []projection.ProjectedStar{
		{ID: 1, X: 0, Y: 0, Magnitude: -1.46},
		{ID: 2, X: 0.1, Y: 0, Magnitude: 0},
		{ID: 3, X: 0.2, Y: 0, Magnitude: 0.5},
	}}

	l := ComputeLayout(frame, Options{MagnitudeCutoff: Cutoff(0)})

	var ids []int
	for _, m := range l.Markers {
		ids = append(ids, m.ID)
	}
	if len(ids) != 2 || ids[0] != 1 || ids[1] != 2 {
		t.Errorf("ComputeLayout() kept %v, expected [1 2]", ids)
	}
}

func TestComputeLayoutPlacement(t *testing.T) {
	frame := projection.Frame{Stars: []projection.ProjectedStar{
		{ID: 1, X: 0, Y: 0, Magnitude: 0},
		{ID: 2, X: 0, Y: 1, Magnitude: 5},
		{ID: 3, X: -1, Y: 0, Magnitude: 5},
	}}

	l := ComputeLayout(frame, Options{ChartSize: 4, DPI: 72, MaxMarkerSize: 100})
	if l.Width != 288 || l.Height != 288 {
		t.Fatalf("canvas = %dx%d, expected 288x288", l.Width, l.Height)
	}

	tests := []struct {
		x, y, r float64
	}{
		{144, 144, math.Sqrt(100 / math.Pi)},
		{144, 0, math.Sqrt(1 / math.Pi)},
		{0, 144, math.Sqrt(1 / math.Pi)},
	}
	for i, tt := range tests {
		m := l.Markers[i]
		if math.Abs(m.X-tt.x) > 1e-9 || math.Abs(m.Y-tt.y) > 1e-9 || math.Abs(m.Radius-tt.r) > 1e-9 {
			t.Errorf("marker %d = (%v, %v, r=%v), expected (%v, %v, r=%v)", i, m.X, m.Y, m.Radius, tt.x, tt.y, tt.r)
		}
	}
}

func TestComputeLayoutLines(t *testing.T) {
	frame := projection.Frame{Segments: []projection.Segment{
		{Constellation: "A", From: projection.Point{X: 0, Y: 0}, To: projection.Point{X: 0.5, Y: 0}},
		{Constellation: "B", From: projection.Point{X: 0.5, Y: 0}, To: projection.Point{X: 3, Y: 0}},
		{Constellation: "C", From: projection.Point{X: -2, Y: 0}, To: projection.Point{X: 2, Y: 0}},
		{Constellation: "D", From: projection.Point{X: 2, Y: 2}, To: projection.Point{X: 3, Y: 2}},
		{Constellation: "E", From: projection.Point{X: math.NaN(), Y: 0}, To: projection.Point{X: 0, Y: 0}},
	}}

	if l := ComputeLayout(frame, Options{}); len(l.Lines) != 0 {
		t.Errorf("len(Lines) = %d with constellations off, expected 0", len(l.Lines))
	}
	if l := ComputeLayout(frame, Options{DrawConstellations: true}); len(l.Lines) != 3 {
		t.Errorf("len(Lines) = %d, expected 3", len(l.Lines))
	}
}

func TestRender(t *testing.T) {
	frame := projection.Frame{
		Stars: []projection.ProjectedStar{
			{ID: 1, X: 0, Y: 0, Magnitude: -1},
			{ID: 2, X: 0.3, Y: -0.2, Magnitude: 2},
		},
		Segments: []projection.Segment{
			{From: projection.Point{X: 0, Y: 0}, To: projection.Point{X: 0.3, Y: -0.2}},
		},
	}
	opts := Options{
		ChartSize:          2,
		DPI:                50,
		Title:              Title("Greenwich", time.Date(2024, 1, 1, 22, 0, 0, 0, time.UTC), time.Date(2024, 1, 1, 22, 0, 0, 0, time.UTC)),
		DrawConstellations: true,
	}

	img, err := Render(frame, opts)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	decoded, err := png.Decode(bytes.NewReader(img.PNG))
	if err != nil {
		t.Fatalf("png.Decode() error = %v", err)
	}
	if b := decoded.Bounds(); b.Dx() != 100 || b.Dy() != 100 {
		t.Errorf("PNG bounds = %v, expected 100x100", b)
	}

	// Center holds the brightest star, the corner is background.
	if r, g, b, _ := decoded.At(50, 50).RGBA(); r>>8 != 255 || g>>8 != 255 || b>>8 != 255 {
		t.Errorf("center pixel = (%d, %d, %d), expected white", r>>8, g>>8, b>>8)
	}
	if r, g, b, _ := decoded.At(99, 99).RGBA(); r != 0 || g != 0 || b != 0 {
		t.Errorf("corner pixel = (%d, %d, %d), expected black", r>>8, g>>8, b>>8)
	}
}

func TestRenderInvalidOptions(t *testing.T) {
	_, err := Render(projection.Frame{}, Options{ChartSize: -1})
	if !errors.Is(err, models.ErrValidation) {
		t.Errorf("Render() error = %v, expected validation error", err)
	}
}

func TestTitle(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("zoneinfo unavailable: %v", err)
	}
	local := time.Date(2024, 7, 4, 21, 30, 0, 0, ny)

	got := Title("New York", local, local)
	expected := "New York 2024-07-04 21:30:00 (2024-07-05 01:30 UTC)"
	if got != expected {
		t.Errorf("Title() = %q, expected %q", got, expected)
	}
}
