// Starchart - Star-Field Charts and Time-Lapse Sky Animation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/starchart

package config

import "time"

// Config holds all application configuration.
type Config struct {
	Data      DataConfig      `koanf:"data"`
	Geocoder  GeocoderConfig  `koanf:"geocoder"`
	Timezone  TimezoneConfig  `koanf:"timezone"`
	Cache     CacheConfig     `koanf:"cache"`
	Render    RenderConfig    `koanf:"render"`
	Animation AnimationConfig `koanf:"animation"`
	Output    OutputConfig    `koanf:"output"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// DataConfig locates the astronomical data files.
//
// Environment Variables:
//   - STARCHART_DATA_DIR: local cache directory for downloaded files
//   - STARCHART_EPHEMERIS_URL: VSOP87A Earth series (VSOP87A.ear)
//   - STARCHART_CATALOG_URL: Hipparcos main catalog (hip_main.dat, optionally .gz)
//   - STARCHART_CONSTELLATIONS_URL: Stellarium constellationship.fab
//   - STARCHART_CONSTELLATIONS_REQUIRED: fail instead of drawing an edge-less chart
type DataConfig struct {
	Dir                    string        `koanf:"dir"`
	EphemerisURL           string        `koanf:"ephemeris_url"`
	CatalogURL             string        `koanf:"catalog_url"`
	ConstellationsURL      string        `koanf:"constellations_url"`
	ConstellationsRequired bool          `koanf:"constellations_required"`
	DownloadTimeout        time.Duration `koanf:"download_timeout"`
}

// GeocoderConfig configures the place-name lookup service.
// The public Nominatim instance allows at most one request per second and
// requires an identifying User-Agent.
type GeocoderConfig struct {
	BaseURL           string        `koanf:"base_url"`
	UserAgent         string        `koanf:"user_agent"`
	Timeout           time.Duration `koanf:"timeout"`
	RequestsPerSecond float64       `koanf:"requests_per_second"`
	Burst             int           `koanf:"burst"`
}

// TimezoneConfig configures the coordinate-to-timezone service.
type TimezoneConfig struct {
	BaseURL string        `koanf:"base_url"`
	Timeout time.Duration `koanf:"timeout"`
}

// Location cache backends.
const (
	CacheBackendFile   = "file"
	CacheBackendBadger = "badger"
)

// CacheConfig selects where resolved locations are persisted.
// The file backend keeps one JSON object mapping name to [lat, lon];
// the badger backend keeps one key per name in a BadgerDB directory.
type CacheConfig struct {
	Backend string `koanf:"backend"`
	Path    string `koanf:"path"`
}

// RenderConfig holds chart defaults used when a request leaves them unset.
type RenderConfig struct {
	ChartSize       int     `koanf:"chart_size"`
	MaxMarkerSize   int     `koanf:"max_marker_size"`
	MagnitudeCutoff float64 `koanf:"magnitude_cutoff"`
	DPI             int     `koanf:"dpi"`
	Constellations  bool    `koanf:"constellations"`
}

// Frame failure policies.
const (
	FailurePolicyFailFast   = "fail_fast"
	FailurePolicyBestEffort = "best_effort"
)

// AnimationConfig controls frame fan-out and assembly.
//
// Environment Variables:
//   - STARCHART_ANIMATION_WORKERS: worker pool size (0 = GOMAXPROCS)
//   - STARCHART_ANIMATION_FAILURE_POLICY: fail_fast or best_effort
//   - STARCHART_ANIMATION_MS_PER_STEP_MINUTE: playback milliseconds per simulated minute
//   - STARCHART_ANIMATION_FORMAT: gif or mp4
//   - STARCHART_ANIMATION_MAX_FRAMES: largest frame count one animation may plan (0 = unlimited)
//   - STARCHART_FFMPEG_PATH: ffmpeg binary used for mp4 output
type AnimationConfig struct {
	Workers         int    `koanf:"workers"`
	FailurePolicy   string `koanf:"failure_policy"`
	MsPerStepMinute int    `koanf:"ms_per_step_minute"`
	Format          string `koanf:"format"`
	LoopCount       int    `koanf:"loop_count"`
	MaxFrames       int    `koanf:"max_frames"`
	FFmpegPath      string `koanf:"ffmpeg_path"`
}

// OutputConfig locates generated artifacts.
type OutputConfig struct {
	Dir string `koanf:"dir"`
}

// LoggingConfig holds zerolog settings.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	Level string `koanf:"level"`

	// Format is json or console.
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	Caller bool `koanf:"caller"`
}
