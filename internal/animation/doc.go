// Starchart - Star-Field Charts and Time-Lapse Sky Animation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/starchart

/*
Package animation renders time-lapse sequences of star charts.

An Orchestrator resolves the location and time zone once, plans one local
wall-clock timestamp per step, and fans the frames out to a bounded worker
pool. Every result is tagged with its frame index so the assembled sequence
is chronological no matter which worker finishes first.

# Failure Policies

  - fail_fast (default): the first failed frame cancels the remaining work
    and the build returns a render error.
  - best_effort: failed frames are logged and skipped; the build fails only
    if no frame succeeded.

# Output

EncodeGIF writes a looping GIF with a grey palette. EncodeMP4 pipes PNG
frames to ffmpeg and produces H.264 video.
*/
package animation
