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

	"github.com/tomtom215/starchart/internal/logging"
	"github.com/tomtom215/starchart/internal/metrics"
)

// Edge is one constellation line segment between two stars.
type Edge struct {
	Constellation string // IAU abbreviation, e.g. "Ori"
	From          int    // HIP number
	To            int    // HIP number
}

// ParseConstellations reads a Stellarium constellationship.fab file.
// Each line is "<abbr> <pairs> <hip> <hip> ...", with 2×pairs HIP numbers.
// Blank lines and lines starting with '#' are ignored.
func ParseConstellations(r io.Reader) ([]Edge, error) {
	scanner := bufio.NewScanner(r)
	var edges []Edge

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 2 {
			return nil, fmt.Errorf("line %d: expected abbreviation and pair count", lineNo)
		}
		abbr := fields[0]
		pairs, err := strconv.Atoi(fields[1])
		if err != nil || pairs < 0 {
			return nil, fmt.Errorf("line %d: pair count %q is not a non-negative integer", lineNo, fields[1])
		}
		ids := fields[2:]
		if len(ids) < 2*pairs {
			return nil, fmt.Errorf("line %d: %s declares %d pairs but lists %d stars", lineNo, abbr, pairs, len(ids))
		}

		for p := 0; p < pairs; p++ {
			from, err := strconv.Atoi(ids[2*p])
			if err != nil {
				return nil, fmt.Errorf("line %d: HIP number %q: %w", lineNo, ids[2*p], err)
			}
			to, err := strconv.Atoi(ids[2*p+1])
			if err != nil {
				return nil, fmt.Errorf("line %d: HIP number %q: %w", lineNo, ids[2*p+1], err)
			}
			edges = append(edges, Edge{Constellation: abbr, From: from, To: to})
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read constellations: %w", err)
	}
	return edges, nil
}

// FilterEdges returns the edges whose endpoints both exist in cat, in their
// original order, and the number dropped.
func FilterEdges(edges []Edge, cat *Catalog) ([]Edge, int) {
	kept := make([]Edge, 0, len(edges))
	dropped := 0
	for _, e := range edges {
		_, okFrom := cat.Index(e.From)
		_, okTo := cat.Index(e.To)
		if !okFrom || !okTo {
			dropped++
			logging.Debug().
				Str("constellation", e.Constellation).
				Int("from", e.From).
				Int("to", e.To).
				Msg("Dropping constellation edge with missing endpoint")
			continue
		}
		kept = append(kept, e)
	}
	if dropped > 0 {
		metrics.ConstellationEdgesDropped.Add(float64(dropped))
	}
	return kept, dropped
}
