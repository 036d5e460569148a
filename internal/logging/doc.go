// Starchart - Star-Field Charts and Time-Lapse Sky Animation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/starchart

// Package logging provides centralized zerolog-based structured logging for Starchart.
//
// The package keeps a single global logger that every component writes through.
// JSON output is the default so that batch renders can be shipped to a log
// pipeline; the CLI switches to console output for interactive use.
//
// # Quick Start
//
//	logging.Init(logging.Config{Level: "info", Format: "console"})
//
//	logging.Info().Str("location", name).Msg("Resolving location")
//	logging.Error().Err(err).Int("frame", i).Msg("Frame render failed")
//
// # Correlation IDs
//
// Each chart or animation request gets a short correlation ID so the log lines
// of one build can be grouped even when frames render concurrently:
//
//	ctx = logging.ContextWithNewCorrelationID(ctx)
//	logging.Ctx(ctx).Info().Msg("Animation started")
//
// # Configuration
//
// Environment variables (via internal/config):
//
//	STARCHART_LOG_LEVEL   - trace, debug, info, warn, error (default: info)
//	STARCHART_LOG_FORMAT  - json, console (default: json)
//	STARCHART_LOG_CALLER  - include caller file:line (default: false)
//
// Always terminate event chains with .Msg() or .Send(); an unterminated
// chain is never written.
package logging
