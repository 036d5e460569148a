// Starchart - Star-Field Charts and Time-Lapse Sky Animation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/starchart

package geocode

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/dgraph-io/badger/v4"

	"github.com/tomtom215/starchart/internal/config"
	"github.com/tomtom215/starchart/internal/models"
)

// storeContract checks behaviour shared by every backend.
func storeContract(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	if _, ok, err := s.Get(ctx, "Sydney"); err != nil || ok {
		t.Fatalf("Get() on empty store = ok %v, err %v", ok, err)
	}

	if err := s.Put(ctx, "Sydney", sydney); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	got, ok, err := s.Get(ctx, "Sydney")
	if err != nil || !ok || got != sydney {
		t.Fatalf("Get() = %v, %v, %v; expected %v", got, ok, err, sydney)
	}

	// Entries are immutable once written.
	if err := s.Put(ctx, "Sydney", models.Coordinates{Latitude: 1, Longitude: 2}); err != nil {
		t.Fatalf("second Put() error = %v", err)
	}
	if got, _, _ := s.Get(ctx, "Sydney"); got != sydney {
		t.Errorf("entry overwritten: got %v, expected %v", got, sydney)
	}
}

func TestFileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "locations.json")
	storeContract(t, NewFileStore(path))

	if matches, _ := filepath.Glob(filepath.Join(filepath.Dir(path), "*.tmp")); len(matches) != 0 {
		t.Errorf("leftover temp files: %v", matches)
	}
}

func TestFileStoreReadsExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "locations.json")
	if err := os.WriteFile(path, []byte(`{"Paris": [48.8566, 2.3522]}`), 0o600); err != nil {
		t.Fatal(err)
	}

	got, ok, err := NewFileStore(path).Get(context.Background(), "Paris")
	if err != nil || !ok {
		t.Fatalf("Get() = ok %v, err %v", ok, err)
	}
	if got.Latitude != 48.8566 || got.Longitude != 2.3522 {
		t.Errorf("Get() = %v, expected 48.8566, 2.3522", got)
	}
}

func TestFileStoreKeepsEntriesFromOtherWriters(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "locations.json")
	paris := models.Coordinates{Latitude: 48.8566, Longitude: 2.3522}
	oslo := models.Coordinates{Latitude: 59.9139, Longitude: 10.7522}

	a := NewFileStore(path)
	b := NewFileStore(path)
	// Both stores load the empty cache before either writes.
	if _, _, err := a.Get(ctx, "Paris"); err != nil {
		t.Fatal(err)
	}
	if _, _, err := b.Get(ctx, "Oslo"); err != nil {
		t.Fatal(err)
	}

	if err := a.Put(ctx, "Paris", paris); err != nil {
		t.Fatalf("a.Put() error = %v", err)
	}
	if err := b.Put(ctx, "Oslo", oslo); err != nil {
		t.Fatalf("b.Put() error = %v", err)
	}

	fresh := NewFileStore(path)
	for name, expected := range map[string]models.Coordinates{"Paris": paris, "Oslo": oslo} {
		got, ok, err := fresh.Get(ctx, name)
		if err != nil || !ok || got != expected {
			t.Errorf("Get(%q) = %v, %v, %v; expected %v", name, got, ok, err, expected)
		}
	}

	// A key another writer already stored is not replaced.
	if err := a.Put(ctx, "Oslo", models.Coordinates{Latitude: 1, Longitude: 2}); err != nil {
		t.Fatalf("a.Put() error = %v", err)
	}
	if got, _, _ := NewFileStore(path).Get(ctx, "Oslo"); got != oslo {
		t.Errorf("Get(%q) = %v, expected %v", "Oslo", got, oslo)
	}
}

func TestFileStoreTreatsCorruptFileAsEmpty(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"truncated", `{"Paris": [48.8`},
		{"wrong shape", `{"Paris": {"lat": 1}}`},
		{"out of range", `{"Paris": [148.8, 2.3]}`},
		{"not an object", `[1, 2, 3]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "locations.json")
			if err := os.WriteFile(path, []byte(tt.content), 0o600); err != nil {
				t.Fatal(err)
			}
			storeContract(t, NewFileStore(path))
		})
	}
}

func TestBadgerStore(t *testing.T) {
	opts := badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		t.Fatalf("open in-memory badger: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	storeContract(t, NewBadgerStore(db))
}

func TestOpenStore(t *testing.T) {
	dir := t.TempDir()

	fileStore, err := OpenStore(config.CacheConfig{Backend: config.CacheBackendFile, Path: filepath.Join(dir, "l.json")})
	if err != nil {
		t.Fatalf("OpenStore(file) error = %v", err)
	}
	if _, ok := fileStore.(*FileStore); !ok {
		t.Errorf("OpenStore(file) = %T, expected *FileStore", fileStore)
	}

	badgerStore, err := OpenStore(config.CacheConfig{Backend: config.CacheBackendBadger, Path: filepath.Join(dir, "badger")})
	if err != nil {
		t.Fatalf("OpenStore(badger) error = %v", err)
	}
	if _, ok := badgerStore.(*BadgerStore); !ok {
		t.Errorf("OpenStore(badger) = %T, expected *BadgerStore", badgerStore)
	}
	storeContract(t, badgerStore)
	if err := badgerStore.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}

	if _, err := OpenStore(config.CacheConfig{Backend: "redis"}); err == nil {
		t.Error("OpenStore(redis) error = nil, expected failure")
	}
}
