// Starchart - Star-Field Charts and Time-Lapse Sky Animation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/starchart

package animation

import (
	"context"
	"errors"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/tomtom215/starchart/internal/catalog"
	"github.com/tomtom215/starchart/internal/config"
	"github.com/tomtom215/starchart/internal/logging"
	"github.com/tomtom215/starchart/internal/metrics"
	"github.com/tomtom215/starchart/internal/models"
	"github.com/tomtom215/starchart/internal/projection"
	"github.com/tomtom215/starchart/internal/render"
	"github.com/tomtom215/starchart/internal/timezone"
)

// DataSource provides the shared catalog bundle.
type DataSource interface {
	Load(ctx context.Context) (*catalog.Bundle, error)
}

// LocationResolver maps a place name to coordinates.
type LocationResolver interface {
	Resolve(ctx context.Context, name string) (models.Coordinates, error)
}

// ZoneResolver maps coordinates to a time zone.
type ZoneResolver interface {
	Location(ctx context.Context, coords models.Coordinates) (*time.Location, error)
}

// Job describes one frame to render.
type Job struct {
	Index    int
	Location string
	Local    time.Time
	Observer models.Observer
	Options  render.Options
}

// RenderFunc turns a job into an image.
type RenderFunc func(ctx context.Context, bundle *catalog.Bundle, job Job) (*render.Image, error)

// Frame is a rendered frame. Local is the wall clock at the location.
type Frame struct {
	Index   int
	Local   time.Time
	Instant time.Time
	Image   *render.Image
}

// Animation is an ordered sequence of frames.
type Animation struct {
	Location      string
	Coordinates   models.Coordinates
	Frames        []Frame
	FrameDuration time.Duration
	LoopCount     int
}

// Request describes a time-lapse.
type Request struct {
	Location      string
	Start         string // models.LocalTimeLayout
	DurationHours float64
	StepMinutes   int
	ChartSize     int
	MaxMarkerSize int
	LoopCount     int
}

// StillRequest describes a single chart.
type StillRequest struct {
	Location      string
	When          string // models.LocalTimeLayout
	ChartSize     int
	MaxMarkerSize int
}

type frameResult struct {
	frame Frame
	err   error
}

// Orchestrator builds charts and animations.
type Orchestrator struct {
	data      DataSource
	locations LocationResolver
	zones     ZoneResolver
	cfg       config.AnimationConfig
	renderCfg config.RenderConfig

	renderFrame RenderFunc
}

// NewOrchestrator creates an Orchestrator that projects and rasterises
// frames in process.
func NewOrchestrator(data DataSource, locations LocationResolver, zones ZoneResolver,
	cfg config.AnimationConfig, renderCfg config.RenderConfig) *Orchestrator {
	return &Orchestrator{
		data:        data,
		locations:   locations,
		zones:       zones,
		cfg:         cfg,
		renderCfg:   renderCfg,
		renderFrame: RenderFrame,
	}
}

// RenderFrame projects the bundle for job and rasterises the result.
func RenderFrame(ctx context.Context, bundle *catalog.Bundle, job Job) (*render.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	frame := projection.Project(bundle.Ephemeris, bundle.Catalog, bundle.Edges, job.Observer)
	return render.Render(frame, job.Options)
}

// scene is the per-request state shared by all frames.
type scene struct {
	bundle *catalog.Bundle
	coords models.Coordinates
	zone   *time.Location
}

func (o *Orchestrator) prepare(ctx context.Context, location string) (*scene, error) {
	bundle, err := o.data.Load(ctx)
	if err != nil {
		return nil, err
	}
	coords, err := o.locations.Resolve(ctx, location)
	if err != nil {
		return nil, err
	}
	zone, err := o.zones.Location(ctx, coords)
	if err != nil {
		return nil, err
	}
	return &scene{bundle: bundle, coords: coords, zone: zone}, nil
}

func (o *Orchestrator) options(chartSize, maxMarkerSize int, title string) render.Options {
	opts := render.Options{
		ChartSize:          o.renderCfg.ChartSize,
		MaxMarkerSize:      o.renderCfg.MaxMarkerSize,
		MagnitudeCutoff:    render.Cutoff(o.renderCfg.MagnitudeCutoff),
		DPI:                o.renderCfg.DPI,
		Title:              title,
		DrawConstellations: o.renderCfg.Constellations,
	}
	if chartSize > 0 {
		opts.ChartSize = chartSize
	}
	if maxMarkerSize > 0 {
		opts.MaxMarkerSize = maxMarkerSize
	}
	return opts
}

func (s *scene) job(index int, location string, local time.Time, opts render.Options) Job {
	wall := timezone.Wall(local, s.zone)
	instant := wall.UTC()
	opts.Title = render.Title(location, wall, instant)
	return Job{
		Index:    index,
		Location: location,
		Local:    wall,
		Observer: models.Observer{Coordinates: s.coords, Instant: instant},
		Options:  opts,
	}
}

// Still renders a single chart.
func (o *Orchestrator) Still(ctx context.Context, req StillRequest) (*Frame, error) {
	const op = "animation.Still"

	local, err := timezone.ParseLocal(req.When)
	if err != nil {
		return nil, err
	}
	sc, err := o.prepare(ctx, req.Location)
	if err != nil {
		return nil, err
	}

	j := sc.job(0, req.Location, local, o.options(req.ChartSize, req.MaxMarkerSize, ""))
	start := time.Now()
	img, err := o.renderFrame(ctx, sc.bundle, j)
	metrics.RecordFrame(time.Since(start), err)
	if err != nil {
		return nil, asRenderError(op, err)
	}
	return &Frame{Index: 0, Local: j.Local, Instant: j.Observer.Instant, Image: img}, nil
}

// Build renders every frame of req and returns them in chronological order.
func (o *Orchestrator) Build(ctx context.Context, req Request) (*Animation, error) {
	const op = "animation.Build"

	start, err := timezone.ParseLocal(req.Start)
	if err != nil {
		return nil, err
	}
	locals, err := PlanFrames(start, req.DurationHours, req.StepMinutes, o.cfg.MaxFrames)
	if err != nil {
		return nil, err
	}

	sc, err := o.prepare(ctx, req.Location)
	if err != nil {
		return nil, err
	}

	opts := o.options(req.ChartSize, req.MaxMarkerSize, "")
	jobs := make([]Job, len(locals))
	for i, local := range locals {
		jobs[i] = sc.job(i, req.Location, local, opts)
	}

	logging.Ctx(ctx).Info().
		Str("location", req.Location).
		Int("frames", len(jobs)).
		Int("step_minutes", req.StepMinutes).
		Msg("Starting animation render")

	frames, err := o.run(ctx, sc.bundle, jobs)
	if err != nil {
		return nil, err
	}
	if len(frames) == 0 {
		return nil, models.NewError(models.KindRender, op, "every frame failed to render", nil)
	}

	return &Animation{
		Location:      req.Location,
		Coordinates:   sc.coords,
		Frames:        frames,
		FrameDuration: FrameDuration(req.StepMinutes, o.cfg.MsPerStepMinute),
		LoopCount:     req.LoopCount,
	}, nil
}

func (o *Orchestrator) workerCount(jobs int) int {
	n := o.cfg.Workers
	if n <= 0 {
		n = runtime.GOMAXPROCS(0)
	}
	if n > jobs {
		n = jobs
	}
	return n
}

// run renders jobs on the worker pool and returns the successful frames
// sorted by index.
func (o *Orchestrator) run(ctx context.Context, bundle *catalog.Bundle, jobs []Job) ([]Frame, error) {
	const op = "animation.render"

	ctx = logging.ContextWithLogger(ctx, logging.WithComponent("animation"))
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	failFast := o.cfg.FailurePolicy != config.FailurePolicyBestEffort

	results := make(chan frameResult, len(jobs))
	jobChan := make(chan Job)
	var wg sync.WaitGroup

	for i := 0; i < o.workerCount(len(jobs)); i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobChan {
				results <- o.renderJob(ctx, bundle, job)
			}
		}()
	}

	go func() {
		defer close(jobChan)
		for _, job := range jobs {
			select {
			case jobChan <- job:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	frames := make([]Frame, 0, len(jobs))
	var firstErr error
	failed := 0
	for res := range results {
		if res.err != nil {
			failed++
			if failFast {
				if firstErr == nil {
					firstErr = res.err
					cancel()
				}
				continue
			}
			logging.Ctx(ctx).Warn().Err(res.err).Int("frame", res.frame.Index).Msg("Skipping failed frame")
			continue
		}
		frames = append(frames, res.frame)
	}

	if firstErr != nil {
		return nil, asRenderError(op, firstErr)
	}
	// Results that completed after cancellation are discarded.
	if err := ctx.Err(); err != nil {
		return nil, models.Errorf(models.KindRender, op, "animation cancelled: %w", err)
	}

	sort.Slice(frames, func(i, j int) bool { return frames[i].Index < frames[j].Index })

	if failed > 0 {
		logging.Ctx(ctx).Warn().Int("failed", failed).Int("rendered", len(frames)).Msg("Animation rendered with missing frames")
	}
	return frames, nil
}

func (o *Orchestrator) renderJob(ctx context.Context, bundle *catalog.Bundle, job Job) frameResult {
	metrics.WorkersActive.Inc()
	defer metrics.WorkersActive.Dec()

	start := time.Now()
	img, err := o.renderFrame(ctx, bundle, job)
	metrics.RecordFrame(time.Since(start), err)
	if err == nil {
		logging.Ctx(ctx).Debug().Int("frame", job.Index).Dur("elapsed", time.Since(start)).Msg("Frame rendered")
	}

	return frameResult{
		frame: Frame{Index: job.Index, Local: job.Local, Instant: job.Observer.Instant, Image: img},
		err:   err,
	}
}

func asRenderError(op string, err error) error {
	var me *models.Error
	if errors.As(err, &me) {
		return err
	}
	return models.Errorf(models.KindRender, op, "render frame: %w", err)
}
