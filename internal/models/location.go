// Starchart - Star-Field Charts and Time-Lapse Sky Animation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/starchart

package models

import (
	"fmt"

	"github.com/goccy/go-json"
)

// Coordinates is a geodetic position in decimal degrees (WGS84).
// It marshals as [latitude, longitude].
type Coordinates struct {
	Latitude  float64
	Longitude float64
}

// Valid reports whether the coordinates are inside the WGS84 ranges.
func (c Coordinates) Valid() bool {
	return c.Latitude >= -90 && c.Latitude <= 90 && c.Longitude >= -180 && c.Longitude <= 180
}

// String formats the coordinates for logs and titles.
func (c Coordinates) String() string {
	return fmt.Sprintf("%.4f, %.4f", c.Latitude, c.Longitude)
}

// MarshalJSON encodes the pair as a two-element array.
func (c Coordinates) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float64{c.Latitude, c.Longitude})
}

// UnmarshalJSON decodes a two-element array and rejects out-of-range values.
func (c *Coordinates) UnmarshalJSON(data []byte) error {
	var pair []float64
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("coordinates must have 2 elements, got %d", len(pair))
	}
	decoded := Coordinates{Latitude: pair[0], Longitude: pair[1]}
	if !decoded.Valid() {
		return fmt.Errorf("coordinates out of range: %s", decoded)
	}
	*c = decoded
	return nil
}
