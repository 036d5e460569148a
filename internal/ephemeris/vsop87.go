// Starchart - Star-Field Charts and Time-Lapse Sky Animation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/starchart

package ephemeris

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/tomtom215/starchart/internal/astro"
)

// Body identifies a solar-system body the ephemeris can place.
type Body int

const (
	Sun Body = iota
	Earth
)

// String returns the body name.
func (b Body) String() string {
	switch b {
	case Sun:
		return "sun"
	case Earth:
		return "earth"
	default:
		return fmt.Sprintf("body(%d)", int(b))
	}
}

// maxPower is the highest power of T in VSOP87 series.
const maxPower = 5

// obliquityJ2000 is the mean obliquity of the ecliptic at J2000 (23°26'21.448").
var obliquityJ2000 = astro.Radians(23.4392911)

type term struct {
	a, b, c float64
}

// Ephemeris holds parsed VSOP87A coordinate series.
type Ephemeris struct {
	// series[coordinate][power] with coordinate 0=X, 1=Y, 2=Z.
	series [3][maxPower + 1][]term
	terms  int
}

// Terms returns the total number of periodic terms loaded.
func (e *Ephemeris) Terms() int {
	return e.terms
}

// Parse reads a VSOP87A file. Each block starts with a header line naming
// the variable (1..3) and the power of time (*T**n); the following lines are
// terms whose last three fields are the amplitude A, phase B, and frequency C.
func Parse(r io.Reader) (*Ephemeris, error) {
	eph := &Ephemeris{}
	scanner := bufio.NewScanner(r)

	variable, power := -1, -1
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		if strings.Contains(line, "VARIABLE") {
			v, p, err := parseHeader(line)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			variable, power = v, p
			continue
		}

		if variable < 0 {
			return nil, fmt.Errorf("line %d: term before any series header", lineNo)
		}

		t, err := parseTerm(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		eph.series[variable][power] = append(eph.series[variable][power], t)
		eph.terms++
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read ephemeris: %w", err)
	}

	for i, name := range []string{"X", "Y", "Z"} {
		if len(eph.series[i][0]) == 0 {
			return nil, fmt.Errorf("ephemeris has no %s*T**0 series", name)
		}
	}
	return eph, nil
}

// parseHeader extracts the zero-based variable index and power from a line like
// " VSOP87 VERSION A1    EARTH     VARIABLE 1 (XYZ)       *T**0   1007 TERMS ..."
func parseHeader(line string) (variable, power int, err error) {
	fields := strings.Fields(line[strings.Index(line, "VARIABLE")+len("VARIABLE"):])
	if len(fields) == 0 {
		return 0, 0, fmt.Errorf("header missing variable number")
	}
	v, err := strconv.Atoi(fields[0])
	if err != nil || v < 1 || v > 3 {
		return 0, 0, fmt.Errorf("header variable %q: expected 1, 2 or 3", fields[0])
	}

	idx := strings.Index(line, "*T**")
	if idx < 0 {
		return 0, 0, fmt.Errorf("header missing *T** power")
	}
	rest := strings.Fields(line[idx+len("*T**"):])
	if len(rest) == 0 {
		return 0, 0, fmt.Errorf("header missing power value")
	}
	p, err := strconv.Atoi(rest[0])
	if err != nil || p < 0 || p > maxPower {
		return 0, 0, fmt.Errorf("header power %q: expected 0..%d", rest[0], maxPower)
	}
	return v - 1, p, nil
}

func parseTerm(line string) (term, error) {
	fields := strings.Fields(line)
	if len(fields) < 3 {
		return term{}, fmt.Errorf("term has %d fields, expected at least 3", len(fields))
	}
	var vals [3]float64
	for i, f := range fields[len(fields)-3:] {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return term{}, fmt.Errorf("term field %q: %w", f, err)
		}
		vals[i] = v
	}
	return term{a: vals[0], b: vals[1], c: vals[2]}, nil
}

// Position returns the body's heliocentric position in AU, equatorial J2000,
// at the given instant.
func (e *Ephemeris) Position(body Body, t time.Time) astro.Vec3 {
	if body == Sun {
		return astro.Vec3{}
	}
	return e.positionTT(astro.TerrestrialTime(t))
}

func (e *Ephemeris) positionTT(jdTT float64) astro.Vec3 {
	// Julian millennia from J2000.
	tm := (jdTT - astro.J2000) / 365250

	var ecl [3]float64
	for v := 0; v < 3; v++ {
		tp := 1.0
		for p := 0; p <= maxPower; p++ {
			var sum float64
			for _, t := range e.series[v][p] {
				sum += t.a * math.Cos(t.b+t.c*tm)
			}
			ecl[v] += sum * tp
			tp *= tm
		}
	}

	ce, se := math.Cos(obliquityJ2000), math.Sin(obliquityJ2000)
	return astro.Vec3{
		X: ecl[0],
		Y: ecl[1]*ce - ecl[2]*se,
		Z: ecl[1]*se + ecl[2]*ce,
	}
}
