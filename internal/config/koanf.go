// Starchart - Star-Field Charts and Time-Lapse Sky Animation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/starchart

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
var DefaultConfigPaths = []string{
	"starchart.yaml",
	"starchart.yml",
	"/etc/starchart/config.yaml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// envPrefix is stripped from every environment variable before mapping.
const envPrefix = "STARCHART_"

// defaultConfig returns a Config struct with all default values.
func defaultConfig() *Config {
	return &Config{
		Data: DataConfig{
			Dir:                    "data",
			EphemerisURL:           "https://cdsarc.cds.unistra.fr/ftp/VI/81/VSOP87A.ear",
			CatalogURL:             "https://cdsarc.cds.unistra.fr/ftp/cats/I/239/hip_main.dat",
			ConstellationsURL:      "https://raw.githubusercontent.com/Stellarium/stellarium/v0.22.2/skycultures/western/constellationship.fab",
			ConstellationsRequired: false, // Degrade to an edge-less chart
			DownloadTimeout:        5 * time.Minute,
		},
		Geocoder: GeocoderConfig{
			BaseURL:           "https://nominatim.openstreetmap.org",
			UserAgent:         "starchart/1.0 (+https://github.com/tomtom215/starchart)",
			Timeout:           10 * time.Second,
			RequestsPerSecond: 1, // Nominatim usage policy
			Burst:             1,
		},
		Timezone: TimezoneConfig{
			BaseURL: "https://timeapi.io",
			Timeout: 10 * time.Second,
		},
		Cache: CacheConfig{
			Backend: CacheBackendFile,
			Path:    "data/locations.json",
		},
		Render: RenderConfig{
			ChartSize:       10,
			MaxMarkerSize:   100,
			MagnitudeCutoff: 6.5,
			DPI:             100,
			Constellations:  true,
		},
		Animation: AnimationConfig{
			Workers:         0, // 0 = runtime.GOMAXPROCS(0)
			FailurePolicy:   FailurePolicyFailFast,
			MsPerStepMinute: 20,
			Format:          "gif",
			LoopCount:       0, // Loop forever
			MaxFrames:       1200,
			FFmpegPath:      "ffmpeg",
		},
		Output: OutputConfig{
			Dir: "output",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// Default returns the built-in configuration without reading files or the environment.
func Default() *Config {
	return defaultConfig()
}

// Load loads configuration with Koanf v2 using layered sources:
//  1. Defaults
//  2. YAML file: path if non-empty, else the first discovered config file
//  3. STARCHART_* environment variables
//
// The result is validated before it is returned.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path == "" {
		path = findConfigFile()
	} else if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile returns the first existing config file, or "" if none.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// envMappings maps prefix-stripped, lower-cased environment names to koanf paths.
var envMappings = map[string]string{
	"data_dir":                     "data.dir",
	"ephemeris_url":                "data.ephemeris_url",
	"catalog_url":                  "data.catalog_url",
	"constellations_url":           "data.constellations_url",
	"constellations_required":      "data.constellations_required",
	"download_timeout":             "data.download_timeout",
	"geocoder_url":                 "geocoder.base_url",
	"geocoder_user_agent":          "geocoder.user_agent",
	"geocoder_timeout":             "geocoder.timeout",
	"geocoder_rps":                 "geocoder.requests_per_second",
	"geocoder_burst":               "geocoder.burst",
	"timezone_url":                 "timezone.base_url",
	"timezone_timeout":             "timezone.timeout",
	"cache_backend":                "cache.backend",
	"cache_path":                   "cache.path",
	"chart_size":                   "render.chart_size",
	"max_marker_size":              "render.max_marker_size",
	"magnitude_cutoff":             "render.magnitude_cutoff",
	"dpi":                          "render.dpi",
	"constellations":               "render.constellations",
	"animation_workers":            "animation.workers",
	"animation_failure_policy":     "animation.failure_policy",
	"animation_ms_per_step_minute": "animation.ms_per_step_minute",
	"animation_format":             "animation.format",
	"animation_loop_count":         "animation.loop_count",
	"animation_max_frames":         "animation.max_frames",
	"ffmpeg_path":                  "animation.ffmpeg_path",
	"output_dir":                   "output.dir",
	"log_level":                    "logging.level",
	"log_format":                   "logging.format",
	"log_caller":                   "logging.caller",
}

// envTransformFunc transforms environment variable names to koanf config paths.
// Unknown variables map to "" and are ignored by the provider.
//
// Examples:
//   - STARCHART_DATA_DIR -> data.dir
//   - STARCHART_GEOCODER_RPS -> geocoder.requests_per_second
//   - STARCHART_LOG_LEVEL -> logging.level
func envTransformFunc(key string) string {
	key = strings.ToLower(strings.TrimPrefix(key, envPrefix))
	return envMappings[key]
}
