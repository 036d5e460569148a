// Starchart - Star-Field Charts and Time-Lapse Sky Animation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/starchart

package timezone

import (
	"context"
	"fmt"
	"time"
	_ "time/tzdata" // zone rules for hosts without /usr/share/zoneinfo

	"github.com/tomtom215/starchart/internal/cache"
	"github.com/tomtom215/starchart/internal/logging"
	"github.com/tomtom215/starchart/internal/models"
)

// Resolver maps coordinates to zones and local times to instants.
type Resolver struct {
	finder ZoneFinder
	zones  *cache.LRU[string, *time.Location]
}

// NewResolver creates a Resolver.
func NewResolver(finder ZoneFinder) *Resolver {
	return &Resolver{finder: finder, zones: cache.NewLRU[string, *time.Location](cache.DefaultCapacity)}
}

// ParseLocal parses a naive timestamp in models.LocalTimeLayout. The result
// carries the wall-clock fields in UTC and no real zone.
func ParseLocal(s string) (time.Time, error) {
	t, err := time.Parse(models.LocalTimeLayout, s)
	if err != nil {
		return time.Time{}, models.Errorf(models.KindValidation, "timezone.ParseLocal",
			"invalid local time %q, expected YYYY-MM-DD HH:MM:SS", s)
	}
	return t, nil
}

// Wall interprets the wall-clock fields of naive in loc. A reading that
// falls in a spring-forward gap moves forward by the gap; one that occurs
// twice resolves to the earlier instant.
func Wall(naive time.Time, loc *time.Location) time.Time {
	asUTC := time.Date(naive.Year(), naive.Month(), naive.Day(),
		naive.Hour(), naive.Minute(), naive.Second(), naive.Nanosecond(), time.UTC)

	// Offsets in force a day either side cover any transition near the reading.
	var earliestValid, latest time.Time
	for _, probe := range []time.Time{asUTC.Add(-24 * time.Hour), asUTC, asUTC.Add(24 * time.Hour)} {
		_, offset := probe.In(loc).Zone()
		candidate := asUTC.Add(-time.Duration(offset) * time.Second).In(loc)

		if latest.IsZero() || candidate.After(latest) {
			latest = candidate
		}
		if sameWallClock(candidate, naive) && (earliestValid.IsZero() || candidate.Before(earliestValid)) {
			earliestValid = candidate
		}
	}

	if !earliestValid.IsZero() {
		return earliestValid
	}
	return latest
}

func sameWallClock(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd &&
		a.Hour() == b.Hour() && a.Minute() == b.Minute() && a.Second() == b.Second()
}

// Location returns the zone containing coords.
func (r *Resolver) Location(ctx context.Context, coords models.Coordinates) (*time.Location, error) {
	const op = "timezone.Location"
	key := fmt.Sprintf("%.4f,%.4f", coords.Latitude, coords.Longitude)

	if loc, ok := r.zones.Get(key); ok {
		return loc, nil
	}

	name, err := r.finder.ZoneName(ctx, coords)
	if err != nil {
		logging.Ctx(ctx).Error().Err(err).Str("coordinates", coords.String()).Msg("Timezone lookup failed")
		return nil, models.Errorf(models.KindTimezoneLookup, op, "lookup timezone for %s: %w", coords, err)
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, models.Errorf(models.KindTimezoneLookup, op, "unknown timezone %q: %w", name, err)
	}

	r.zones.Add(key, loc)

	logging.Ctx(ctx).Debug().Str("coordinates", coords.String()).Str("zone", name).Msg("Timezone resolved")
	return loc, nil
}

// ToUTC converts a naive local timestamp at coords to a UTC instant. The
// timestamp is validated before any network call.
func (r *Resolver) ToUTC(ctx context.Context, coords models.Coordinates, local string) (time.Time, error) {
	naive, err := ParseLocal(local)
	if err != nil {
		return time.Time{}, err
	}
	loc, err := r.Location(ctx, coords)
	if err != nil {
		return time.Time{}, err
	}
	return Wall(naive, loc).UTC(), nil
}
