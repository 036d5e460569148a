// Starchart - Star-Field Charts and Time-Lapse Sky Animation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/starchart

package geocode

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/tomtom215/starchart/internal/models"
)

// Key prefix for BadgerDB storage
const locationKeyPrefix = "location:"

// BadgerStore keeps one key per location in a BadgerDB directory.
type BadgerStore struct {
	db     *badger.DB
	ownsDB bool
}

// OpenBadgerStore opens (or creates) a BadgerDB at dir.
func OpenBadgerStore(dir string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil // Suppress BadgerDB logs

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger db for locations: %w", err)
	}
	return &BadgerStore{db: db, ownsDB: true}, nil
}

// NewBadgerStore wraps an already open database. Close leaves it open.
func NewBadgerStore(db *badger.DB) *BadgerStore {
	return &BadgerStore{db: db}
}

// Get implements Store.
func (s *BadgerStore) Get(ctx context.Context, key string) (models.Coordinates, bool, error) {
	var coords models.Coordinates
	found := false

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(locationKeyPrefix + key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("get location: %w", err)
		}

		found = true
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &coords)
		})
	})
	if err != nil {
		return models.Coordinates{}, false, err
	}
	return coords, found, nil
}

// Put implements Store.
func (s *BadgerStore) Put(ctx context.Context, key string, coords models.Coordinates) error {
	data, err := json.Marshal(coords)
	if err != nil {
		return fmt.Errorf("marshal location: %w", err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		k := []byte(locationKeyPrefix + key)
		_, err := txn.Get(k)
		if err == nil {
			return nil // first write wins
		}
		if !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("get location: %w", err)
		}
		return txn.Set(k, data)
	})
}

// Close implements Store.
func (s *BadgerStore) Close() error {
	if s.ownsDB {
		return s.db.Close()
	}
	return nil
}
