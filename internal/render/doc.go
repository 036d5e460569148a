// Starchart - Star-Field Charts and Time-Lapse Sky Animation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/starchart

/*
Package render draws a projected frame as a square star chart.

Rendering is split in two steps. Layout is pure: it filters the frame by
magnitude and horizon, sizes each marker and places everything on the pixel
grid. Drawing paints the layout with fogleman/gg and encodes the result as
PNG.

# Marker Sizes

A marker's size is an area in points squared:

	size = MaxMarkerSize * 10^(magnitude / -2.5)

so a magnitude 0 star gets MaxMarkerSize and each 5 magnitudes fainter is a
factor of 100 smaller. The drawn radius is sqrt(size/pi) points, converted
to pixels at the configured DPI.

# Fonts

The Go Regular face is parsed once per process. A font.Face is created for
each render because faces hold scratch buffers and are not safe for
concurrent use.
*/
package render
