// Starchart - Star-Field Charts and Time-Lapse Sky Animation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/starchart

package geocode

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/goccy/go-json"

	"github.com/tomtom215/starchart/internal/logging"
	"github.com/tomtom215/starchart/internal/metrics"
	"github.com/tomtom215/starchart/internal/models"
)

// FileStore keeps every entry in one JSON object, {"name": [lat, lon], ...}.
// The file is read on first use and re-read on every Put, so entries written
// by other processes survive; the merged set is rewritten whole via a temp
// file and rename, so readers never observe a partial write.
type FileStore struct {
	path string

	mu      sync.Mutex
	loaded  bool
	entries map[string]models.Coordinates
}

// NewFileStore creates a store backed by path. The file need not exist.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Get implements Store.
func (s *FileStore) Get(ctx context.Context, key string) (models.Coordinates, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.loadLocked(ctx)
	c, ok := s.entries[key]
	return c, ok, nil
}

// Put implements Store.
func (s *FileStore) Put(ctx context.Context, key string, coords models.Coordinates) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.loadLocked(ctx)
	s.mergeLocked(s.readFile(ctx))
	if _, exists := s.entries[key]; exists {
		return nil
	}
	s.entries[key] = coords

	if err := s.saveLocked(); err != nil {
		metrics.LocationCacheErrors.WithLabelValues("save").Inc()
		return err
	}
	return nil
}

// Close implements Store.
func (s *FileStore) Close() error {
	return nil
}

// loadLocked reads the file once.
func (s *FileStore) loadLocked(ctx context.Context) {
	if s.loaded {
		return
	}
	s.loaded = true
	s.entries = s.readFile(ctx)
}

// mergeLocked adds on-disk entries this store has not seen. A key already
// held keeps its value.
func (s *FileStore) mergeLocked(disk map[string]models.Coordinates) {
	for k, v := range disk {
		if _, ok := s.entries[k]; !ok {
			s.entries[k] = v
		}
	}
}

// readFile returns the entries on disk. A missing file is an empty cache; an
// unreadable or corrupt one is logged and treated as empty.
func (s *FileStore) readFile(ctx context.Context) map[string]models.Coordinates {
	entries := make(map[string]models.Coordinates)

	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return entries
	}
	if err != nil {
		metrics.LocationCacheErrors.WithLabelValues("load").Inc()
		logging.Ctx(ctx).Warn().Err(err).Str("path", s.path).Msg("Location cache unreadable, starting empty")
		return entries
	}
	if len(data) == 0 {
		return entries
	}

	if err := json.Unmarshal(data, &entries); err != nil {
		metrics.LocationCacheErrors.WithLabelValues("load").Inc()
		logging.Ctx(ctx).Warn().Err(err).Str("path", s.path).Msg("Location cache corrupt, starting empty")
		return make(map[string]models.Coordinates)
	}
	if entries == nil {
		entries = make(map[string]models.Coordinates)
	}
	return entries
}

// saveLocked writes all entries atomically.
func (s *FileStore) saveLocked() error {
	data, err := json.MarshalIndent(s.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal location cache: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create cache directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp cache file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("write temp cache file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("sync temp cache file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("close temp cache file: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename cache file: %w", err)
	}
	return nil
}
