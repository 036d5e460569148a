// Starchart - Star-Field Charts and Time-Lapse Sky Animation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/starchart

package starchart

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/tomtom215/starchart/internal/animation"
	"github.com/tomtom215/starchart/internal/catalog"
	"github.com/tomtom215/starchart/internal/config"
	"github.com/tomtom215/starchart/internal/geocode"
	"github.com/tomtom215/starchart/internal/logging"
	"github.com/tomtom215/starchart/internal/metrics"
	"github.com/tomtom215/starchart/internal/models"
	"github.com/tomtom215/starchart/internal/timezone"
	"github.com/tomtom215/starchart/internal/validation"
)

// ImageRequest asks for a single chart.
type ImageRequest struct {
	Location      string `validate:"notblank,max=200"`
	When          string `validate:"required,localtime"`
	ChartSize     int    `validate:"omitempty,min=1,max=50"`
	MaxMarkerSize int    `validate:"omitempty,min=1,max=10000"`
}

// AnimationRequest asks for a time-lapse starting at When.
type AnimationRequest struct {
	Location      string  `validate:"notblank,max=200"`
	When          string  `validate:"required,localtime"`
	Hours         float64 `validate:"gt=0,lte=168"`
	StepMinutes   int     `validate:"min=1,max=1440"`
	ChartSize     int     `validate:"omitempty,min=1,max=50"`
	MaxMarkerSize int     `validate:"omitempty,min=1,max=10000"`
	Format        string  `validate:"omitempty,oneof=gif mp4"`

	// LoopCount is nil to use the configured default; 0 loops forever.
	LoopCount *int `validate:"omitempty,min=-1"`
}

// Renderer produces frames and animations.
type Renderer interface {
	Still(ctx context.Context, req animation.StillRequest) (*animation.Frame, error)
	Build(ctx context.Context, req animation.Request) (*animation.Animation, error)
}

// Fetcher downloads reference data.
type Fetcher interface {
	Fetch(ctx context.Context) error
}

// Dependencies are the collaborators of a Service.
type Dependencies struct {
	Renderer  Renderer
	Locations animation.LocationResolver
	Data      Fetcher
	Closers   []io.Closer
}

// Service generates chart artifacts.
type Service struct {
	cfg  *config.Config
	deps Dependencies
}

// NewService creates a Service from explicit dependencies.
func NewService(cfg *config.Config, deps Dependencies) *Service {
	return &Service{cfg: cfg, deps: deps}
}

// Open wires a Service from configuration: the catalog loader, the location
// cache and geocoder, the timezone service and the orchestrator.
func Open(cfg *config.Config) (*Service, error) {
	store, err := geocode.OpenStore(cfg.Cache)
	if err != nil {
		return nil, fmt.Errorf("open location cache: %w", err)
	}

	loader := catalog.NewLoader(cfg.Data, &http.Client{Timeout: cfg.Data.DownloadTimeout})
	locations := geocode.NewResolver(store, geocode.NewNominatimClient(cfg.Geocoder))
	zones := timezone.NewResolver(timezone.NewTimeAPIClient(cfg.Timezone))
	orch := animation.NewOrchestrator(loader, locations, zones, cfg.Animation, cfg.Render)

	return NewService(cfg, Dependencies{
		Renderer:  orch,
		Locations: locations,
		Data:      loader,
		Closers:   []io.Closer{store},
	}), nil
}

// Close releases the location cache.
func (s *Service) Close() error {
	var errs []error
	for _, c := range s.deps.Closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// GenerateImage renders one chart and returns the path of the PNG.
func (s *Service) GenerateImage(ctx context.Context, req ImageRequest) (string, error) {
	const op = "starchart.GenerateImage"

	if verr := validation.ValidateStruct(&req); verr != nil {
		return "", verr.ToError(op)
	}
	ctx = s.withCorrelationID(ctx)

	frame, err := s.deps.Renderer.Still(ctx, animation.StillRequest{
		Location:      req.Location,
		When:          req.When,
		ChartSize:     req.ChartSize,
		MaxMarkerSize: req.MaxMarkerSize,
	})
	if err != nil {
		return "", err
	}

	path, err := outputPath(s.cfg.Output.Dir, req.Location, req.When, "", "png")
	if err != nil {
		return "", err
	}
	err = writeAtomic(path, func(w io.Writer) error {
		_, werr := w.Write(frame.Image.PNG)
		return werr
	})
	if err != nil {
		return "", models.Errorf(models.KindRender, op, "write %s: %w", path, err)
	}

	logging.Ctx(ctx).Info().
		Str("location", req.Location).
		Time("instant", frame.Instant).
		Str("path", path).
		Msg("Chart written")
	return path, nil
}

// GenerateAnimation renders a time-lapse and returns the path of the GIF or
// MP4.
func (s *Service) GenerateAnimation(ctx context.Context, req AnimationRequest) (string, error) {
	const op = "starchart.GenerateAnimation"

	if verr := validation.ValidateStruct(&req); verr != nil {
		return "", verr.ToError(op)
	}
	ctx = s.withCorrelationID(ctx)

	format := req.Format
	if format == "" {
		format = s.cfg.Animation.Format
	}
	loop := s.cfg.Animation.LoopCount
	if req.LoopCount != nil {
		loop = *req.LoopCount
	}

	start := time.Now()
	anim, err := s.deps.Renderer.Build(ctx, animation.Request{
		Location:      req.Location,
		Start:         req.When,
		DurationHours: req.Hours,
		StepMinutes:   req.StepMinutes,
		ChartSize:     req.ChartSize,
		MaxMarkerSize: req.MaxMarkerSize,
		LoopCount:     loop,
	})
	if err != nil {
		return "", err
	}

	path, err := outputPath(s.cfg.Output.Dir, req.Location, req.When, "_anim", format)
	if err != nil {
		return "", err
	}

	switch format {
	case animation.FormatMP4:
		err = writeAtomicPath(path, func(tmp string) error {
			return animation.EncodeMP4(ctx, s.cfg.Animation.FFmpegPath, tmp, anim)
		})
	default:
		err = writeAtomic(path, func(w io.Writer) error {
			return animation.EncodeGIF(w, anim)
		})
	}
	if err != nil {
		if models.KindOf(err) != models.KindUnknown {
			return "", err
		}
		return "", models.Errorf(models.KindRender, op, "write %s: %w", path, err)
	}

	metrics.AnimationDuration.WithLabelValues(format).Observe(time.Since(start).Seconds())
	logging.Ctx(ctx).Info().
		Str("location", req.Location).
		Int("frames", len(anim.Frames)).
		Str("format", format).
		Str("path", path).
		Dur("duration", time.Since(start)).
		Msg("Animation written")
	return path, nil
}

// Geocode resolves a place name through the location cache.
func (s *Service) Geocode(ctx context.Context, name string) (models.Coordinates, error) {
	return s.deps.Locations.Resolve(s.withCorrelationID(ctx), name)
}

// Fetch downloads any missing reference data.
func (s *Service) Fetch(ctx context.Context) error {
	return s.deps.Data.Fetch(s.withCorrelationID(ctx))
}

func (s *Service) withCorrelationID(ctx context.Context) context.Context {
	return logging.ContextWithNewCorrelationID(ctx)
}
