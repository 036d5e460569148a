// Starchart - Star-Field Charts and Time-Lapse Sky Animation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/starchart

package starchart

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/tomtom215/starchart/internal/timezone"
)

const fileTimeLayout = "20060102T150405"

// Slug turns a place name into a file-name-safe token.
func Slug(location string) string {
	var b strings.Builder
	underscore := false
	for _, r := range strings.ToLower(location) {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			b.WriteRune(r)
			underscore = false
			continue
		}
		if !underscore && b.Len() > 0 {
			b.WriteByte('_')
			underscore = true
		}
	}
	slug := strings.TrimSuffix(b.String(), "_")
	if slug == "" {
		return "location"
	}
	return slug
}

// outputPath returns <dir>/<slug>_<timestamp><suffix>.<ext> and makes sure
// dir exists.
func outputPath(dir, location, when, suffix, ext string) (string, error) {
	local, err := timezone.ParseLocal(when)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}
	name := fmt.Sprintf("%s_%s%s.%s", Slug(location), local.Format(fileTimeLayout), suffix, ext)
	return filepath.Join(dir, name), nil
}

// writeAtomic streams write into a temporary file next to path and renames
// it into place.
func writeAtomic(path string, write func(w io.Writer) error) error {
	return writeAtomicPath(path, func(tmp string) error {
		f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_TRUNC, 0o600)
		if err != nil {
			return err
		}
		if err := write(f); err != nil {
			_ = f.Close()
			return err
		}
		if err := f.Sync(); err != nil {
			_ = f.Close()
			return err
		}
		return f.Close()
	})
}

// writeAtomicPath hands produce a temporary path next to path. On success
// the temporary file replaces path.
func writeAtomicPath(path string, produce func(tmp string) error) error {
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmp := f.Name()
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}

	if err := produce(tmp); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	if err := os.Chmod(tmp, 0o644); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("rename into place: %w", err)
	}
	return nil
}
