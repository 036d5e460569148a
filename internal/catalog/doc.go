// Starchart - Star-Field Charts and Time-Lapse Sky Animation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/starchart

/*
Package catalog loads the astronomical reference data every chart is drawn from.

Three datasets make up a Bundle:

  - Ephemeris: VSOP87A Earth series (see package ephemeris)
  - Catalog: the Hipparcos main catalog (ESA 1997, CDS I/239 hip_main.dat)
  - Edges: constellation stick-figure lines from Stellarium's
    constellationship.fab

Files are kept in the configured data directory and fetched from their
configured URLs on first use. A download is written to "<name>.part" and
renamed into place, so an interrupted fetch never leaves a truncated file
that later looks valid. URLs ending in ".gz" are decompressed on the fly.

Loader.Load memoizes the first successful Bundle for the life of the
Loader. A failed load is not cached, so the next call retries.

Failure Policy:

  - Ephemeris or catalog unavailable: models.ErrDataLoad
  - Constellations unavailable: warning and an empty edge list, unless
    DataConfig.ConstellationsRequired is set, in which case models.ErrDataLoad
  - Edges naming a star that is not in the catalog are dropped with a debug
    log and the starchart_constellation_edges_dropped_total counter

The Bundle and everything it points to are read-only after Load returns and
may be shared across goroutines without locking.
*/
package catalog
