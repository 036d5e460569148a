// Starchart - Star-Field Charts and Time-Lapse Sky Animation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/starchart

/*
Package main is the starchart command-line tool.

Commands:

	starchart image    --location "Greenwich" --when "2024-01-01 22:00:00"
	starchart animate  --location "Greenwich" --when "2024-01-01 22:00:00" --hours 6 --step 10
	starchart geocode  "Greenwich"
	starchart fetch

Global flags:

	--config        YAML config file (default: CONFIG_PATH, ./starchart.yaml, /etc/starchart/config.yaml)
	--metrics-file  write Prometheus metrics in text format to this path when the command ends

Every setting can also be supplied as a STARCHART_* environment variable;
see internal/config.

# Exit Codes

	0  success
	1  unexpected failure
	2  invalid arguments or request
	3  location not found
	4  geocoder unavailable
	5  time zone lookup failed
	6  reference data could not be loaded
	7  rendering or encoding failed

# Signal Handling

SIGINT and SIGTERM cancel the running command. An animation in progress
stops dispatching frames and exits without writing output.
*/
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:])
	stop()
	os.Exit(code)
}
