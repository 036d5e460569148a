// Starchart - Star-Field Charts and Time-Lapse Sky Animation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/starchart

package geocode

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/tomtom215/starchart/internal/breaker"
	"github.com/tomtom215/starchart/internal/config"
	"github.com/tomtom215/starchart/internal/logging"
	"github.com/tomtom215/starchart/internal/metrics"
	"github.com/tomtom215/starchart/internal/models"
)

// Geocoder looks up a place name. A lookup that succeeds but matches
// nothing returns ErrNoMatch.
type Geocoder interface {
	Geocode(ctx context.Context, query string) (models.Coordinates, error)
}

// ErrNoMatch reports that the geocoder answered but found nothing.
var ErrNoMatch = errors.New("no matching place")

// NominatimClient queries an OpenStreetMap Nominatim search endpoint.
// Usage policy: https://operations.osmfoundation.org/policies/nominatim/
type NominatimClient struct {
	client    *http.Client
	baseURL   string
	userAgent string
	limiter   *rate.Limiter
	cb        *gobreaker.CircuitBreaker[*models.Coordinates]
}

// nominatimPlace is one element of a format=jsonv2 search response.
// Coordinates are decimal strings.
type nominatimPlace struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// NewNominatimClient creates a client from cfg.
func NewNominatimClient(cfg config.GeocoderConfig) *NominatimClient {
	burst := cfg.Burst
	if burst < 1 {
		burst = 1
	}
	return &NominatimClient{
		client:    &http.Client{Timeout: cfg.Timeout},
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		userAgent: cfg.UserAgent,
		limiter:   rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst),
		cb:        breaker.New[*models.Coordinates]("nominatim", breaker.Settings{}),
	}
}

// Geocode returns the coordinates of the best match for query.
func (c *NominatimClient) Geocode(ctx context.Context, query string) (models.Coordinates, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return models.Coordinates{}, fmt.Errorf("rate limiter: %w", err)
	}

	start := time.Now()
	result, err := c.cb.Execute(func() (*models.Coordinates, error) {
		coords, err := c.search(ctx, query)
		if errors.Is(err, ErrNoMatch) {
			// An empty answer is a healthy response; keep it out of the failure counts.
			return nil, nil
		}
		return coords, err
	})
	metrics.RecordExternalRequest("geocoder", time.Since(start), err)

	if err != nil {
		if breaker.IsRejection(err) {
			logging.Ctx(ctx).Warn().Err(err).Msg("Geocoder circuit open, request rejected")
		}
		return models.Coordinates{}, err
	}
	if result == nil {
		return models.Coordinates{}, ErrNoMatch
	}
	return *result, nil
}

func (c *NominatimClient) search(ctx context.Context, query string) (*models.Coordinates, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "jsonv2")
	params.Set("limit", "1")
	endpoint := c.baseURL + "/search?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to query geocoder: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocoder returned status %d", resp.StatusCode)
	}

	var places []nominatimPlace
	if err := json.NewDecoder(resp.Body).Decode(&places); err != nil {
		return nil, fmt.Errorf("failed to decode geocoder response: %w", err)
	}
	if len(places) == 0 {
		return nil, ErrNoMatch
	}

	coords, err := places[0].coordinates()
	if err != nil {
		return nil, err
	}

	logging.Ctx(ctx).Debug().
		Str("query", query).
		Str("match", places[0].DisplayName).
		Str("coordinates", coords.String()).
		Msg("Geocoded location")
	return &coords, nil
}

func (p nominatimPlace) coordinates() (models.Coordinates, error) {
	lat, err := strconv.ParseFloat(p.Lat, 64)
	if err != nil {
		return models.Coordinates{}, fmt.Errorf("invalid latitude %q in geocoder response: %w", p.Lat, err)
	}
	lon, err := strconv.ParseFloat(p.Lon, 64)
	if err != nil {
		return models.Coordinates{}, fmt.Errorf("invalid longitude %q in geocoder response: %w", p.Lon, err)
	}
	coords := models.Coordinates{Latitude: lat, Longitude: lon}
	if !coords.Valid() {
		return models.Coordinates{}, fmt.Errorf("geocoder returned out-of-range coordinates %s", coords)
	}
	return coords, nil
}
