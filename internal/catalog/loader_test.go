// Starchart - Star-Field Charts and Time-Lapse Sky Animation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/starchart

package catalog

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/klauspost/compress/gzip"

	"github.com/tomtom215/starchart/internal/config"
	"github.com/tomtom215/starchart/internal/models"
)

const testEphemeris = ` VSOP87 VERSION A1    EARTH     VARIABLE 1 (XYZ)       *T**0      1 TERMS
 1310    1  0  0  0  0  0  0  0  0  0  0  0  0     0.99982928844     1.75348568475 0.99982928844 1.75348568475      6283.07584999140
 VSOP87 VERSION A1    EARTH     VARIABLE 2 (XYZ)       *T**0      1 TERMS
 1320    1  0  0  0  0  0  0  0  0  0  0  0  0     0.99989211030     0.18265890456 0.99989211030 0.18265890456      6283.07584999140
 VSOP87 VERSION A1    EARTH     VARIABLE 3 (XYZ)       *T**0      1 TERMS
 1330    1  0  0  0  0  0  0  0  0  0  0  0  0     0.00000279620     3.19870156017 0.00000279620 3.19870156017     84334.66158130829
`

const testConstellations = "Ori 2 26727 26311 26311 25930\nCMa 1 32349 99999\n"

// dataServer serves the three datasets and counts requests per path.
type dataServer struct {
	*httptest.Server
	mu        sync.Mutex
	hits      map[string]int
	failFirst map[string]int32
}

func newDataServer(t *testing.T) *dataServer {
	t.Helper()

	catalogRows := strings.Join([]string{
		hipLine(26727, " 1.74", "085.18969443", "-01.94257359", "   3.99", "    3.99", "    2.54"),
		hipLine(26311, " 1.69", "084.05338572", "-01.20191725", "   2.43", "    1.49", "   -1.06"),
		hipLine(25930, " 2.25", "083.00166562", "-00.29909204", "   3.56", "    1.67", "    0.56"),
		hipLine(32349, "-1.44", "101.28854105", "-16.71314306", " 379.21", " -546.01", "-1223.08"),
	}, "\n")
	var gz bytes.Buffer
	zw := gzip.NewWriter(&gz)
	if _, err := zw.Write([]byte(catalogRows)); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}

	ds := &dataServer{hits: make(map[string]int), failFirst: make(map[string]int32)}
	files := map[string][]byte{
		"/VSOP87A.ear":           []byte(testEphemeris),
		"/hip_main.dat.gz":       gz.Bytes(),
		"/constellationship.fab": []byte(testConstellations),
	}
	ds.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ds.mu.Lock()
		ds.hits[r.URL.Path]++
		fail := ds.failFirst[r.URL.Path] > 0
		if fail {
			ds.failFirst[r.URL.Path]--
		}
		ds.mu.Unlock()

		if r.Header.Get("User-Agent") == "" {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		body, ok := files[r.URL.Path]
		if !ok || fail {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write(body)
	}))
	t.Cleanup(ds.Close)
	return ds
}

func (ds *dataServer) count(path string) int {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	return ds.hits[path]
}

func (ds *dataServer) config(dir string) config.DataConfig {
	return config.DataConfig{
		Dir:               dir,
		EphemerisURL:      ds.URL + "/VSOP87A.ear",
		CatalogURL:        ds.URL + "/hip_main.dat.gz",
		ConstellationsURL: ds.URL + "/constellationship.fab",
		DownloadTimeout:   5 * time.Second,
	}
}

func TestLoaderLoadsOnce(t *testing.T) {
	ds := newDataServer(t)
	dir := t.TempDir()
	loader := NewLoader(ds.config(dir), nil)

	first, err := loader.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	second, err := loader.Load(context.Background())
	if err != nil {
		t.Fatalf("second Load() error = %v", err)
	}
	if first != second {
		t.Error("Load() should return the memoized bundle")
	}

	if first.Catalog.Len() != 4 {
		t.Errorf("Catalog.Len() = %d, expected 4", first.Catalog.Len())
	}
	// CMa edge references an unknown star and is dropped.
	if len(first.Edges) != 2 {
		t.Errorf("len(Edges) = %d, expected 2", len(first.Edges))
	}

	for _, p := range []string{"/VSOP87A.ear", "/hip_main.dat.gz", "/constellationship.fab"} {
		if n := ds.count(p); n != 1 {
			t.Errorf("requests for %s = %d, expected 1", p, n)
		}
	}

	// Decompressed copy on disk, no leftovers.
	if _, err := os.Stat(filepath.Join(dir, "hip_main.dat")); err != nil {
		t.Errorf("hip_main.dat not stored: %v", err)
	}
	if matches, _ := filepath.Glob(filepath.Join(dir, "*.part")); len(matches) != 0 {
		t.Errorf("leftover partial files: %v", matches)
	}

	// A fresh loader over the same directory does not download again.
	if _, err := NewLoader(ds.config(dir), nil).Load(context.Background()); err != nil {
		t.Fatalf("Load() from disk error = %v", err)
	}
	if n := ds.count("/hip_main.dat.gz"); n != 1 {
		t.Errorf("requests after reload = %d, expected 1", n)
	}
}

func TestLoaderConcurrentCallersShareLoad(t *testing.T) {
	ds := newDataServer(t)
	loader := NewLoader(ds.config(t.TempDir()), nil)

	var wg sync.WaitGroup
	var failures atomic.Int32
	bundles := make([]*Bundle, 8)
	for i := range bundles {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			b, err := loader.Load(context.Background())
			if err != nil {
				failures.Add(1)
				return
			}
			bundles[i] = b
		}(i)
	}
	wg.Wait()

	if failures.Load() != 0 {
		t.Fatalf("%d concurrent loads failed", failures.Load())
	}
	for i, b := range bundles {
		if b != bundles[0] {
			t.Errorf("bundle %d differs from bundle 0", i)
		}
	}
	if n := ds.count("/VSOP87A.ear"); n != 1 {
		t.Errorf("ephemeris requests = %d, expected 1", n)
	}
}

func TestLoaderRetriesAfterFailure(t *testing.T) {
	ds := newDataServer(t)
	ds.failFirst["/hip_main.dat.gz"] = 1
	loader := NewLoader(ds.config(t.TempDir()), nil)

	_, err := loader.Load(context.Background())
	if !errors.Is(err, models.ErrDataLoad) {
		t.Fatalf("Load() error = %v, expected ErrDataLoad", err)
	}

	bundle, err := loader.Load(context.Background())
	if err != nil {
		t.Fatalf("retry Load() error = %v", err)
	}
	if bundle.Catalog.Len() != 4 {
		t.Errorf("Catalog.Len() = %d, expected 4", bundle.Catalog.Len())
	}
}

func TestLoaderConstellationPolicy(t *testing.T) {
	tests := []struct {
		name     string
		required bool
		wantErr  bool
	}{
		{"degrade by default", false, false},
		{"required", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds := newDataServer(t)
			cfg := ds.config(t.TempDir())
			cfg.ConstellationsURL = ds.URL + "/missing.fab"
			cfg.ConstellationsRequired = tt.required

			bundle, err := NewLoader(cfg, nil).Load(context.Background())
			if tt.wantErr {
				if !errors.Is(err, models.ErrDataLoad) {
					t.Fatalf("Load() error = %v, expected ErrDataLoad", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if len(bundle.Edges) != 0 {
				t.Errorf("len(Edges) = %d, expected 0", len(bundle.Edges))
			}
		})
	}
}

func TestLoaderMissingEphemeris(t *testing.T) {
	ds := newDataServer(t)
	cfg := ds.config(t.TempDir())
	cfg.EphemerisURL = ds.URL + "/nope.ear"

	_, err := NewLoader(cfg, nil).Load(context.Background())
	if models.KindOf(err) != models.KindDataLoad {
		t.Fatalf("KindOf(err) = %v, expected %v (err = %v)", models.KindOf(err), models.KindDataLoad, err)
	}
}

func TestFetch(t *testing.T) {
	ds := newDataServer(t)
	dir := t.TempDir()

	if err := NewLoader(ds.config(dir), nil).Fetch(context.Background()); err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	for _, name := range []string{"VSOP87A.ear", "hip_main.dat", "constellationship.fab"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("%s missing after Fetch: %v", name, err)
		}
	}
}
