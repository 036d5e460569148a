// Starchart - Star-Field Charts and Time-Lapse Sky Animation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/starchart

package geocode

import (
	"context"
	"fmt"

	"github.com/tomtom215/starchart/internal/config"
	"github.com/tomtom215/starchart/internal/models"
)

// Store persists resolved locations by normalized name.
type Store interface {
	// Get returns the cached coordinates for key, or ok=false on a miss.
	Get(ctx context.Context, key string) (coords models.Coordinates, ok bool, err error)

	// Put records coordinates for key. An existing entry is left unchanged.
	Put(ctx context.Context, key string, coords models.Coordinates) error

	// Close releases any resources held by the store.
	Close() error
}

// OpenStore opens the backend selected by cfg.
func OpenStore(cfg config.CacheConfig) (Store, error) {
	switch cfg.Backend {
	case config.CacheBackendFile, "":
		return NewFileStore(cfg.Path), nil
	case config.CacheBackendBadger:
		return OpenBadgerStore(cfg.Path)
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
	}
}
