// Starchart - Star-Field Charts and Time-Lapse Sky Animation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/starchart

package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/tomtom215/starchart/internal/logging"
)

// Validate checks that configuration values are present and within range.
func (c *Config) Validate() error {
	validators := []func() error{
		c.validateData,
		c.validateGeocoder,
		c.validateTimezone,
		c.validateCache,
		c.validateRender,
		c.validateAnimation,
		c.validateOutput,
		c.validateLogging,
	}

	for _, validate := range validators {
		if err := validate(); err != nil {
			return err
		}
	}
	return nil
}

func (c *Config) validateData() error {
	if strings.TrimSpace(c.Data.Dir) == "" {
		return fmt.Errorf("STARCHART_DATA_DIR must not be empty")
	}
	if err := validateHTTPURL(c.Data.EphemerisURL, "STARCHART_EPHEMERIS_URL"); err != nil {
		return err
	}
	if err := validateHTTPURL(c.Data.CatalogURL, "STARCHART_CATALOG_URL"); err != nil {
		return err
	}
	if c.Data.DownloadTimeout <= 0 {
		return fmt.Errorf("STARCHART_DOWNLOAD_TIMEOUT must be positive")
	}
	if c.Data.ConstellationsURL == "" {
		if c.Data.ConstellationsRequired {
			return fmt.Errorf("STARCHART_CONSTELLATIONS_URL is required when STARCHART_CONSTELLATIONS_REQUIRED=true")
		}
		return nil
	}
	return validateHTTPURL(c.Data.ConstellationsURL, "STARCHART_CONSTELLATIONS_URL")
}

func (c *Config) validateGeocoder() error {
	if err := validateHTTPURL(c.Geocoder.BaseURL, "STARCHART_GEOCODER_URL"); err != nil {
		return err
	}
	if strings.TrimSpace(c.Geocoder.UserAgent) == "" {
		return fmt.Errorf("STARCHART_GEOCODER_USER_AGENT is required (geocoding services reject anonymous clients)")
	}
	if c.Geocoder.Timeout <= 0 {
		return fmt.Errorf("STARCHART_GEOCODER_TIMEOUT must be positive")
	}
	if c.Geocoder.RequestsPerSecond <= 0 {
		return fmt.Errorf("STARCHART_GEOCODER_RPS must be positive")
	}
	if c.Geocoder.Burst < 1 {
		return fmt.Errorf("STARCHART_GEOCODER_BURST must be at least 1")
	}
	return nil
}

func (c *Config) validateTimezone() error {
	if err := validateHTTPURL(c.Timezone.BaseURL, "STARCHART_TIMEZONE_URL"); err != nil {
		return err
	}
	if c.Timezone.Timeout <= 0 {
		return fmt.Errorf("STARCHART_TIMEZONE_TIMEOUT must be positive")
	}
	return nil
}

func (c *Config) validateCache() error {
	switch c.Cache.Backend {
	case CacheBackendFile, CacheBackendBadger:
	default:
		return fmt.Errorf("STARCHART_CACHE_BACKEND must be %q or %q, got %q", CacheBackendFile, CacheBackendBadger, c.Cache.Backend)
	}
	if strings.TrimSpace(c.Cache.Path) == "" {
		return fmt.Errorf("STARCHART_CACHE_PATH must not be empty")
	}
	return nil
}

func (c *Config) validateRender() error {
	if c.Render.ChartSize < 1 || c.Render.ChartSize > 100 {
		return fmt.Errorf("STARCHART_CHART_SIZE must be between 1 and 100")
	}
	if c.Render.MaxMarkerSize < 1 || c.Render.MaxMarkerSize > 10000 {
		return fmt.Errorf("STARCHART_MAX_MARKER_SIZE must be between 1 and 10000")
	}
	if c.Render.MagnitudeCutoff < -2 || c.Render.MagnitudeCutoff > 15 {
		return fmt.Errorf("STARCHART_MAGNITUDE_CUTOFF must be between -2 and 15")
	}
	if c.Render.DPI < 10 || c.Render.DPI > 600 {
		return fmt.Errorf("STARCHART_DPI must be between 10 and 600")
	}
	return nil
}

func (c *Config) validateAnimation() error {
	if c.Animation.Workers < 0 {
		return fmt.Errorf("STARCHART_ANIMATION_WORKERS must not be negative")
	}
	switch c.Animation.FailurePolicy {
	case FailurePolicyFailFast, FailurePolicyBestEffort:
	default:
		return fmt.Errorf("STARCHART_ANIMATION_FAILURE_POLICY must be %q or %q", FailurePolicyFailFast, FailurePolicyBestEffort)
	}
	if c.Animation.MsPerStepMinute < 1 {
		return fmt.Errorf("STARCHART_ANIMATION_MS_PER_STEP_MINUTE must be at least 1")
	}
	switch c.Animation.Format {
	case "gif", "mp4":
	default:
		return fmt.Errorf("STARCHART_ANIMATION_FORMAT must be gif or mp4, got %q", c.Animation.Format)
	}
	if c.Animation.LoopCount < -1 {
		return fmt.Errorf("STARCHART_ANIMATION_LOOP_COUNT must be -1 (play once), 0 (forever) or positive")
	}
	if c.Animation.MaxFrames < 0 {
		return fmt.Errorf("STARCHART_ANIMATION_MAX_FRAMES must not be negative")
	}
	if c.Animation.Format == "mp4" && strings.TrimSpace(c.Animation.FFmpegPath) == "" {
		return fmt.Errorf("STARCHART_FFMPEG_PATH is required for mp4 output")
	}
	return nil
}

func (c *Config) validateOutput() error {
	if strings.TrimSpace(c.Output.Dir) == "" {
		return fmt.Errorf("STARCHART_OUTPUT_DIR must not be empty")
	}
	return nil
}

func (c *Config) validateLogging() error {
	if !logging.ValidLevel(c.Logging.Level) {
		return fmt.Errorf("STARCHART_LOG_LEVEL %q is not a valid level", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("STARCHART_LOG_FORMAT must be json or console, got %q", c.Logging.Format)
	}
	return nil
}

// validateHTTPURL checks that rawURL is an absolute http(s) URL.
func validateHTTPURL(rawURL, fieldName string) error {
	if rawURL == "" {
		return fmt.Errorf("%s is required", fieldName)
	}
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("%s failed to parse URL: %w", fieldName, err)
	}
	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return fmt.Errorf("%s scheme must be http or https, got: %s", fieldName, parsedURL.Scheme)
	}
	if parsedURL.Host == "" {
		return fmt.Errorf("%s host is required", fieldName)
	}
	return nil
}
