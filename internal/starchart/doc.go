// Starchart - Star-Field Charts and Time-Lapse Sky Animation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/starchart

/*
Package starchart is the entry point for generating charts and time-lapses.

A Service validates requests, drives the animation orchestrator and writes
the finished artifact under the configured output directory:

	<output.dir>/<slug>_<YYYYMMDDTHHMMSS>.png
	<output.dir>/<slug>_<YYYYMMDDTHHMMSS>_anim.gif
	<output.dir>/<slug>_<YYYYMMDDTHHMMSS>_anim.mp4

The slug is the lower-cased location with runs of other characters replaced
by underscores, and the timestamp is the requested local wall clock. An
existing file with the same name is replaced. Artifacts are written to a
temporary file in the same directory and renamed into place, so readers
never observe a partial file.

Usage:

	cfg, err := config.Load("")
	svc, err := starchart.Open(cfg)
	defer svc.Close()
	path, err := svc.GenerateImage(ctx, starchart.ImageRequest{
	    Location: "Greenwich",
	    When:     "2024-01-01 22:00:00",
	})
*/
package starchart
