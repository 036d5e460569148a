// Starchart - Star-Field Charts and Time-Lapse Sky Animation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/starchart

package geocode

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/sync/singleflight"

	"github.com/tomtom215/starchart/internal/logging"
	"github.com/tomtom215/starchart/internal/metrics"
	"github.com/tomtom215/starchart/internal/models"
)

// Resolver combines a Store and a Geocoder.
type Resolver struct {
	store    Store
	geocoder Geocoder
	group    singleflight.Group
}

// NewResolver creates a Resolver.
func NewResolver(store Store, geocoder Geocoder) *Resolver {
	return &Resolver{store: store, geocoder: geocoder}
}

// NormalizeName returns the cache key for a place name.
func NormalizeName(name string) string {
	return strings.Join(strings.Fields(name), " ")
}

// Resolve returns the coordinates for name.
func (r *Resolver) Resolve(ctx context.Context, name string) (models.Coordinates, error) {
	const op = "geocode.Resolve"

	key := NormalizeName(name)
	if key == "" {
		return models.Coordinates{}, models.NewError(models.KindValidation, op, "location name is blank", nil)
	}

	if coords, ok := r.lookup(ctx, key); ok {
		metrics.RecordLocationLookup(true)
		return coords, nil
	}
	metrics.RecordLocationLookup(false)

	ch := r.group.DoChan(key, func() (interface{}, error) {
		// The shared lookup outlives any single caller's cancellation.
		return r.fetch(context.WithoutCancel(ctx), key, name)
	})

	select {
	case <-ctx.Done():
		return models.Coordinates{}, models.Errorf(models.KindGeocode, op, "resolve %q: %w", key, ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return models.Coordinates{}, res.Err
		}
		return res.Val.(models.Coordinates), nil
	}
}

// lookup reads the store. Store failures are logged and read as a miss.
func (r *Resolver) lookup(ctx context.Context, key string) (models.Coordinates, bool) {
	coords, ok, err := r.store.Get(ctx, key)
	if err != nil {
		metrics.LocationCacheErrors.WithLabelValues("load").Inc()
		logging.Ctx(ctx).Warn().Err(err).Str("location", key).Msg("Location cache read failed")
		return models.Coordinates{}, false
	}
	return coords, ok
}

func (r *Resolver) fetch(ctx context.Context, key, query string) (models.Coordinates, error) {
	const op = "geocode.Resolve"

	// Another flight may have stored the key while this one queued.
	if coords, ok := r.lookup(ctx, key); ok {
		return coords, nil
	}

	coords, err := r.geocoder.Geocode(ctx, query)
	if errors.Is(err, ErrNoMatch) {
		logging.Ctx(ctx).Info().Str("location", key).Msg("Location not found")
		return models.Coordinates{}, models.Errorf(models.KindLocationNotFound, op, "no match for location %q", key)
	}
	if err != nil {
		logging.Ctx(ctx).Error().Err(err).Str("location", key).Msg("Geocoding failed")
		return models.Coordinates{}, models.Errorf(models.KindGeocode, op, "geocode %q: %w", key, err)
	}

	if err := r.store.Put(ctx, key, coords); err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("location", key).Msg("Failed to persist location, continuing")
	}

	logging.Ctx(ctx).Info().
		Str("location", key).
		Float64("latitude", coords.Latitude).
		Float64("longitude", coords.Longitude).
		Msg("Location resolved")
	return coords, nil
}
