// Starchart - Star-Field Charts and Time-Lapse Sky Animation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/starchart

package catalog

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/klauspost/compress/gzip"

	"github.com/tomtom215/starchart/internal/logging"
	"github.com/tomtom215/starchart/internal/metrics"
)

const userAgent = "starchart/1.0 (+https://github.com/tomtom215/starchart)"

// LocalName returns the file name a dataset URL is stored under: the last
// path element with any ".gz" suffix removed.
func LocalName(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parse URL %q: %w", rawURL, err)
	}
	name := strings.TrimSuffix(path.Base(u.Path), ".gz")
	if name == "" || name == "." || name == "/" {
		return "", fmt.Errorf("URL %q has no file name", rawURL)
	}
	return name, nil
}

// ensureFile returns the local path for rawURL inside dir, downloading it
// first if it is not already present.
func ensureFile(ctx context.Context, client *http.Client, dir, rawURL string) (string, error) {
	name, err := LocalName(rawURL)
	if err != nil {
		return "", err
	}
	dest := filepath.Join(dir, name)

	if info, err := os.Stat(dest); err == nil && info.Size() > 0 {
		return dest, nil
	}

	start := time.Now()
	n, err := download(ctx, client, rawURL, dest)
	metrics.RecordExternalRequest("download", time.Since(start), err)
	if err != nil {
		return "", err
	}

	logging.Info().
		Str("url", rawURL).
		Str("path", dest).
		Int64("bytes", n).
		Dur("duration", time.Since(start)).
		Msg("Downloaded dataset")
	return dest, nil
}

// download streams rawURL to dest via a ".part" file and an atomic rename.
func download(ctx context.Context, client *http.Client, rawURL, dest string) (int64, error) {
	logging.Info().Str("url", rawURL).Msg("Downloading dataset")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, http.NoBody)
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("fetch %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("fetch %s: HTTP %d", rawURL, resp.StatusCode)
	}

	var body io.Reader = resp.Body
	if strings.HasSuffix(strings.ToLower(rawURL), ".gz") {
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return 0, fmt.Errorf("open gzip stream: %w", err)
		}
		defer gz.Close()
		body = gz
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return 0, fmt.Errorf("create data directory: %w", err)
	}

	part := dest + ".part"
	f, err := os.Create(part)
	if err != nil {
		return 0, fmt.Errorf("create %s: %w", part, err)
	}

	n, copyErr := io.Copy(f, body)
	closeErr := f.Close()
	if copyErr != nil || closeErr != nil {
		_ = os.Remove(part)
		if copyErr != nil {
			return 0, fmt.Errorf("write %s: %w", part, copyErr)
		}
		return 0, fmt.Errorf("close %s: %w", part, closeErr)
	}
	if n == 0 {
		_ = os.Remove(part)
		return 0, fmt.Errorf("fetch %s: empty response", rawURL)
	}

	if err := os.Rename(part, dest); err != nil {
		_ = os.Remove(part)
		return 0, fmt.Errorf("rename %s: %w", part, err)
	}
	return n, nil
}
