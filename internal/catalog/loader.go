// Starchart - Star-Field Charts and Time-Lapse Sky Animation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/starchart

package catalog

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/tomtom215/starchart/internal/config"
	"github.com/tomtom215/starchart/internal/ephemeris"
	"github.com/tomtom215/starchart/internal/logging"
	"github.com/tomtom215/starchart/internal/metrics"
	"github.com/tomtom215/starchart/internal/models"
)

// Bundle is the immutable set of reference data a chart needs.
type Bundle struct {
	Ephemeris *ephemeris.Ephemeris
	Catalog   *Catalog
	Edges     []Edge
}

// Loader fetches and parses the datasets once per process.
type Loader struct {
	cfg    config.DataConfig
	client *http.Client

	mu     sync.Mutex
	bundle *Bundle
}

// NewLoader creates a Loader. A nil client gets one with cfg.DownloadTimeout.
func NewLoader(cfg config.DataConfig, client *http.Client) *Loader {
	if client == nil {
		client = &http.Client{Timeout: cfg.DownloadTimeout}
	}
	return &Loader{cfg: cfg, client: client}
}

// Load returns the memoized Bundle, loading it on the first call. Concurrent
// callers wait for the in-progress load. Failures are returned as
// models.ErrDataLoad and are not memoized.
func (l *Loader) Load(ctx context.Context) (*Bundle, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.bundle != nil {
		return l.bundle, nil
	}

	start := time.Now()
	bundle, err := l.load(ctx)
	if err != nil {
		return nil, err
	}
	l.bundle = bundle

	logging.Ctx(ctx).Info().
		Int("stars", bundle.Catalog.Len()).
		Int("edges", len(bundle.Edges)).
		Int("ephemeris_terms", bundle.Ephemeris.Terms()).
		Dur("duration", time.Since(start)).
		Msg("Reference data loaded")
	return bundle, nil
}

// Fetch downloads any missing dataset files without parsing them.
func (l *Loader) Fetch(ctx context.Context) error {
	urls := []string{l.cfg.EphemerisURL, l.cfg.CatalogURL}
	if l.cfg.ConstellationsURL != "" {
		urls = append(urls, l.cfg.ConstellationsURL)
	}
	for _, u := range urls {
		if _, err := ensureFile(ctx, l.client, l.cfg.Dir, u); err != nil {
			return models.Errorf(models.KindDataLoad, "catalog.Fetch", "fetch %s: %w", u, err)
		}
	}
	return nil
}

func (l *Loader) load(ctx context.Context) (*Bundle, error) {
	const op = "catalog.Load"

	var eph *ephemeris.Ephemeris
	err := l.loadDataset(ctx, "ephemeris", l.cfg.EphemerisURL, func(r io.Reader) error {
		var err error
		eph, err = ephemeris.Parse(r)
		return err
	})
	if err != nil {
		return nil, models.Errorf(models.KindDataLoad, op, "load ephemeris: %w", err)
	}

	var cat *Catalog
	err = l.loadDataset(ctx, "catalog", l.cfg.CatalogURL, func(r io.Reader) error {
		var err error
		cat, err = ParseHipparcos(r)
		return err
	})
	if err != nil {
		return nil, models.Errorf(models.KindDataLoad, op, "load star catalog: %w", err)
	}
	metrics.StarsLoaded.Set(float64(cat.Len()))

	edges, err := l.loadEdges(ctx, cat)
	if err != nil {
		return nil, models.Errorf(models.KindDataLoad, op, "load constellations: %w", err)
	}

	return &Bundle{Ephemeris: eph, Catalog: cat, Edges: edges}, nil
}

// loadEdges applies the constellation failure policy.
func (l *Loader) loadEdges(ctx context.Context, cat *Catalog) ([]Edge, error) {
	if l.cfg.ConstellationsURL == "" {
		logging.Ctx(ctx).Info().Msg("No constellation source configured, charts will have no lines")
		return nil, nil
	}

	var raw []Edge
	err := l.loadDataset(ctx, "constellations", l.cfg.ConstellationsURL, func(r io.Reader) error {
		var err error
		raw, err = ParseConstellations(r)
		return err
	})
	if err != nil {
		if l.cfg.ConstellationsRequired {
			return nil, err
		}
		logging.Ctx(ctx).Warn().Err(err).Msg("Constellation data unavailable, continuing without lines")
		return nil, nil
	}

	edges, dropped := FilterEdges(raw, cat)
	if dropped > 0 {
		logging.Ctx(ctx).Debug().Int("dropped", dropped).Int("kept", len(edges)).Msg("Filtered constellation edges")
	}
	return edges, nil
}

func (l *Loader) loadDataset(ctx context.Context, name, rawURL string, parse func(io.Reader) error) error {
	start := time.Now()

	path, err := ensureFile(ctx, l.client, l.cfg.Dir, rawURL)
	if err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	if err := parse(f); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	metrics.RecordDataLoad(name, time.Since(start))
	return nil
}
