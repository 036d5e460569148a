// Starchart - Star-Field Charts and Time-Lapse Sky Animation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/starchart

/*
Package config loads Starchart configuration with Koanf v2.

Sources are layered, highest priority last:

 1. Built-in defaults (defaultConfig)
 2. Optional YAML file: the path given to Load, $CONFIG_PATH, or the first of
    DefaultConfigPaths that exists
 3. Environment variables prefixed with STARCHART_

Sections:

  - data: local data directory and the remote sources for the ephemeris,
    star catalog, and constellation lines
  - geocoder: Nominatim-compatible place search endpoint and its rate limit
  - timezone: coordinate-to-zone lookup endpoint
  - cache: location cache backend (file or badger) and path
  - render: chart defaults (size, marker size, magnitude cutoff, DPI)
  - animation: worker pool size, failure policy, playback rate, encoder
  - output: artifact directory
  - logging: zerolog level and format

Example:

	cfg, err := config.Load("")
	if err != nil {
	    return err
	}
	loader := catalog.NewLoader(cfg.Data)

Config is immutable after Load and safe for concurrent reads.
*/
package config
