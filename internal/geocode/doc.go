// Starchart - Star-Field Charts and Time-Lapse Sky Animation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/starchart

/*
Package geocode resolves free-text place names to coordinates.

Resolution order:

 1. Persistent Store (a JSON file by default, or BadgerDB)
 2. Nominatim search API, rate limited and behind a circuit breaker

A successful geocode is written through to the Store and never expires:
once a name has coordinates, later calls return exactly those coordinates
without touching the network. Concurrent lookups of the same uncached name
share a single upstream request.

Names are keyed after trimming and collapsing inner whitespace, so
"  New   York " and "New York" share an entry. The caller's spelling is what
the geocoder sees.

Errors:

  - models.ErrLocationNotFound: the geocoder answered with no match
  - models.ErrGeocode: the geocoder was unreachable, rejected the request,
    returned a malformed body, or its circuit breaker is open
  - models.ErrValidation: the name is blank

A corrupt cache file is logged, treated as empty, and replaced on the next
successful lookup.
*/
package geocode
