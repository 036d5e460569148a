// Starchart - Star-Field Charts and Time-Lapse Sky Animation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/starchart

package render

import (
	"bytes"
	"fmt"
	"sync"
	"time"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	"github.com/tomtom215/starchart/internal/models"
	"github.com/tomtom215/starchart/internal/projection"
)

const (
	titleSizePoints = 16
	lineWidthPoints = 0.5
	titleMargin     = 0.03
)

var (
	fontOnce sync.Once
	goFont   *opentype.Font
	fontErr  error
)

func regularFont() (*opentype.Font, error) {
	fontOnce.Do(func() {
		goFont, fontErr = opentype.Parse(goregular.TTF)
	})
	return goFont, fontErr
}

// Image is a rendered chart. Only the encoded form is kept so long
// animations hold compressed frames.
type Image struct {
	Width, Height int
	PNG           []byte
}

// Title formats a chart title from a place, its wall clock and the instant.
func Title(location string, local, instant time.Time) string {
	return fmt.Sprintf("%s %s (%s UTC)",
		location, local.Format("2006-01-02 15:04:05"), instant.UTC().Format("2006-01-02 15:04"))
}

// Render draws frame and returns the PNG-encoded chart.
func Render(frame projection.Frame, opts Options) (*Image, error) {
	const op = "render.frame"

	if err := opts.validate(); err != nil {
		return nil, err
	}
	opts = opts.withDefaults()
	l := ComputeLayout(frame, opts)

	dc := gg.NewContext(l.Width, l.Height)
	dc.SetRGB(0, 0, 0)
	dc.Clear()

	scale := float64(opts.DPI) / pointsPerInch

	if len(l.Lines) > 0 {
		dc.DrawCircle(l.CenterX, l.CenterY, l.HorizonRadius)
		dc.Clip()
		dc.SetRGBA(1, 1, 1, 0.5)
		dc.SetLineWidth(lineWidthPoints * scale)
		for _, ln := range l.Lines {
			dc.DrawLine(ln.X1, ln.Y1, ln.X2, ln.Y2)
			dc.Stroke()
		}
		dc.ResetClip()
	}

	dc.SetRGB(1, 1, 1)
	for _, m := range l.Markers {
		dc.DrawCircle(m.X, m.Y, m.Radius)
		dc.Fill()
	}

	if opts.Title != "" {
		face, err := newFace(titleSizePoints, float64(opts.DPI))
		if err != nil {
			return nil, models.Errorf(models.KindRender, op, "load title font: %w", err)
		}
		dc.SetFontFace(face)
		dc.DrawStringAnchored(opts.Title, float64(l.Width)/2, float64(l.Height)*titleMargin, 0.5, 1)
		if err := face.Close(); err != nil {
			return nil, models.Errorf(models.KindRender, op, "close title font: %w", err)
		}
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, models.Errorf(models.KindRender, op, "encode png: %w", err)
	}

	return &Image{
		Width:  l.Width,
		Height: l.Height,
		PNG:    buf.Bytes(),
	}, nil
}

func newFace(size, dpi float64) (font.Face, error) {
	f, err := regularFont()
	if err != nil {
		return nil, err
	}
	return opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     dpi,
		Hinting: font.HintingFull,
	})
}
