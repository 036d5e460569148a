// Starchart - Star-Field Charts and Time-Lapse Sky Animation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/starchart

/*
Package models defines the data types shared across Starchart packages.

Key Components:

  - Coordinates: a resolved (latitude, longitude) pair, persisted as a JSON
    two-element array so the location cache file stays compatible with
    hand-edited caches.
  - Error: the error taxonomy every core entry point reports through. Each
    Kind is a stable signal that outer layers (CLI exit codes, an HTTP
    layer's status codes) translate without string matching.

Error Kinds:

  - KindDataLoad: ephemeris, catalog, or required constellation data unobtainable
  - KindLocationNotFound: geocoder returned no match
  - KindGeocode: geocoder unreachable or returned a malformed response
  - KindTimezoneLookup: timezone service unreachable or malformed response
  - KindValidation: malformed timestamp, bad parameters, zero-frame animation
  - KindRender: a frame computation, image encode, or artifact write failed

Use errors.Is against the sentinels:

	if errors.Is(err, models.ErrLocationNotFound) {
	    // ask the user for a different spelling
	}
*/
package models
