// Starchart - Star-Field Charts and Time-Lapse Sky Animation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/starchart

package models

import "time"

// LocalTimeLayout is the layout of naive wall-clock timestamps accepted from
// callers, e.g. "2024-01-01 22:00:00". It carries no zone; the zone is
// derived from the observer's coordinates.
const LocalTimeLayout = "2006-01-02 15:04:05"

// Observer is a viewpoint on the Earth's surface at an absolute instant.
type Observer struct {
	Coordinates
	Instant time.Time // UTC
}
