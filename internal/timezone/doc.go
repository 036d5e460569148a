// Starchart - Star-Field Charts and Time-Lapse Sky Animation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/starchart

/*
Package timezone turns a naive local timestamp at a place into a UTC instant.

Two steps:

 1. Ask a timeapi.io-compatible service which IANA zone contains the
    coordinates (GET /api/TimeZone/coordinate?latitude=..&longitude=..).
 2. Interpret the wall-clock time in that zone with the embedded tz database.

Zone lookups are memoized per coordinate rounded to four decimal places
(about 11 m), so an animation resolves its zone once.

DST Handling:

A wall time inside a spring-forward gap is shifted forward by the length of
the gap (02:30 becomes 03:30). A wall time inside an autumn overlap resolves
to the first (daylight) occurrence.

Errors:

  - models.ErrValidation: the timestamp does not match models.LocalTimeLayout
  - models.ErrTimezoneLookup: the service failed, answered with a non-200
    status or malformed body, or named a zone the tz database does not know
*/
package timezone
