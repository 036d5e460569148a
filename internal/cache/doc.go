// Starchart - Star-Field Charts and Time-Lapse Sky Animation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/starchart

// Package cache provides a bounded, thread-safe LRU map used for in-process
// memoization of lookups that are expensive to repeat, such as time zone
// queries for a coordinate.
package cache
