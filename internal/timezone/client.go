// Starchart - Star-Field Charts and Time-Lapse Sky Animation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/starchart

package timezone

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/starchart/internal/breaker"
	"github.com/tomtom215/starchart/internal/config"
	"github.com/tomtom215/starchart/internal/logging"
	"github.com/tomtom215/starchart/internal/metrics"
	"github.com/tomtom215/starchart/internal/models"
)

// ZoneFinder returns the IANA zone name containing a coordinate.
type ZoneFinder interface {
	ZoneName(ctx context.Context, coords models.Coordinates) (string, error)
}

// TimeAPIClient queries a timeapi.io-compatible coordinate lookup.
type TimeAPIClient struct {
	client  *http.Client
	baseURL string
	cb      *gobreaker.CircuitBreaker[string]
}

// timeAPIResponse is the subset of the coordinate response we use.
type timeAPIResponse struct {
	TimeZone string `json:"timeZone"`
}

// NewTimeAPIClient creates a client from cfg.
func NewTimeAPIClient(cfg config.TimezoneConfig) *TimeAPIClient {
	return &TimeAPIClient{
		client:  &http.Client{Timeout: cfg.Timeout},
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		cb:      breaker.New[string]("timeapi", breaker.Settings{}),
	}
}

// ZoneName implements ZoneFinder.
func (c *TimeAPIClient) ZoneName(ctx context.Context, coords models.Coordinates) (string, error) {
	start := time.Now()
	name, err := c.cb.Execute(func() (string, error) {
		return c.query(ctx, coords)
	})
	metrics.RecordExternalRequest("timezone", time.Since(start), err)
	if err != nil && breaker.IsRejection(err) {
		logging.Ctx(ctx).Warn().Err(err).Msg("Timezone circuit open, request rejected")
	}
	return name, err
}

func (c *TimeAPIClient) query(ctx context.Context, coords models.Coordinates) (string, error) {
	params := url.Values{}
	params.Set("latitude", strconv.FormatFloat(coords.Latitude, 'f', -1, 64))
	params.Set("longitude", strconv.FormatFloat(coords.Longitude, 'f', -1, 64))
	endpoint := c.baseURL + "/api/TimeZone/coordinate?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to query timezone service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("timezone service returned status %d", resp.StatusCode)
	}

	var result timeAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode timezone response: %w", err)
	}
	if result.TimeZone == "" {
		return "", fmt.Errorf("timezone response has no timeZone field")
	}
	return result.TimeZone, nil
}
