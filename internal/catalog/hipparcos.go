// Starchart - Star-Field Charts and Time-Lapse Sky Animation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/starchart

package catalog

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Star is one Hipparcos catalog entry at epoch J1991.25.
type Star struct {
	ID        int     // HIP number
	RA        float64 // degrees, ICRS
	Dec       float64 // degrees, ICRS
	Magnitude float64 // Johnson V
	Parallax  float64 // mas
	PMRA      float64 // mas/yr, μα·cos δ
	PMDec     float64 // mas/yr
}

// Catalog is an immutable ordered star list with an index by HIP number.
type Catalog struct {
	stars []Star
	index map[int]int
}

// NewCatalog builds a catalog from stars. The slice is copied. When an ID
// repeats, the first occurrence wins the index.
func NewCatalog(stars []Star) *Catalog {
	c := &Catalog{
		stars: make([]Star, len(stars)),
		index: make(map[int]int, len(stars)),
	}
	copy(c.stars, stars)
	for i, s := range c.stars {
		if _, dup := c.index[s.ID]; !dup {
			c.index[s.ID] = i
		}
	}
	return c
}

// Len returns the number of stars.
func (c *Catalog) Len() int {
	return len(c.stars)
}

// Star returns the star at position i in catalog order.
func (c *Catalog) Star(i int) Star {
	return c.stars[i]
}

// Index returns the catalog position of the star with the given HIP number.
func (c *Catalog) Index(id int) (int, bool) {
	i, ok := c.index[id]
	return i, ok
}

// Column positions in hip_main.dat (pipe-separated, zero-based).
const (
	colHIP     = 1
	colVmag    = 5
	colRAdeg   = 8
	colDEdeg   = 9
	colPlx     = 11
	colPMRA    = 12
	colPMDE    = 13
	minColumns = colPMDE + 1
)

// ParseHipparcos reads hip_main.dat. Rows without a position or magnitude
// (a few hundred in the catalog) are skipped; missing parallax or proper
// motion reads as zero.
func ParseHipparcos(r io.Reader) (*Catalog, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	stars := make([]Star, 0, 118218)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		fields := strings.Split(line, "|")
		if len(fields) < minColumns {
			return nil, fmt.Errorf("line %d: %d columns, expected at least %d", lineNo, len(fields), minColumns)
		}

		ra, okRA := optionalFloat(fields[colRAdeg])
		dec, okDec := optionalFloat(fields[colDEdeg])
		mag, okMag := optionalFloat(fields[colVmag])
		if !okRA || !okDec || !okMag {
			continue
		}

		id, err := strconv.Atoi(strings.TrimSpace(fields[colHIP]))
		if err != nil {
			return nil, fmt.Errorf("line %d: HIP number %q: %w", lineNo, fields[colHIP], err)
		}

		plx, _ := optionalFloat(fields[colPlx])
		pmra, _ := optionalFloat(fields[colPMRA])
		pmdec, _ := optionalFloat(fields[colPMDE])

		stars = append(stars, Star{
			ID:        id,
			RA:        ra,
			Dec:       dec,
			Magnitude: mag,
			Parallax:  plx,
			PMRA:      pmra,
			PMDec:     pmdec,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	if len(stars) == 0 {
		return nil, fmt.Errorf("catalog contains no usable stars")
	}
	return NewCatalog(stars), nil
}

// optionalFloat parses a fixed-width field; blank or malformed reads as absent.
func optionalFloat(field string) (float64, bool) {
	field = strings.TrimSpace(field)
	if field == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(field, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
