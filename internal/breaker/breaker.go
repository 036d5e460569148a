// Starchart - Star-Field Charts and Time-Lapse Sky Animation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/starchart

// Package breaker builds circuit breakers for calls to external services.
//
// Every breaker shares one policy:
//   - Max 1 probe request in half-open state
//   - 1 minute measurement window
//   - 30 second timeout before attempting recovery
//   - Opens after 5 consecutive failures, or a 60% failure rate over at
//     least 10 requests
//
// State transitions are logged and exported as
// starchart_circuit_breaker_state{name}.
package breaker

import (
	"errors"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/starchart/internal/logging"
	"github.com/tomtom215/starchart/internal/metrics"
)

// Settings overrides the shared policy. Zero values keep the defaults.
type Settings struct {
	Timeout             time.Duration
	ConsecutiveFailures uint32
}

// New creates a named circuit breaker for results of type T.
func New[T any](name string, overrides Settings) *gobreaker.CircuitBreaker[T] {
	timeout := 30 * time.Second
	if overrides.Timeout > 0 {
		timeout = overrides.Timeout
	}
	consecutive := uint32(5)
	if overrides.ConsecutiveFailures > 0 {
		consecutive = overrides.ConsecutiveFailures
	}

	metrics.CircuitBreakerState.WithLabelValues(name).Set(0) // closed

	return gobreaker.NewCircuitBreaker[T](gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     timeout,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.ConsecutiveFailures >= consecutive {
				logging.Warn().Str("breaker", name).Uint32("consecutive_failures", counts.ConsecutiveFailures).Msg("[CIRCUIT BREAKER] Opening circuit")
				return true
			}
			if counts.Requests < 10 {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			if failureRatio >= 0.6 {
				logging.Warn().Str("breaker", name).Uint32("failures", counts.TotalFailures).Float64("failure_rate", failureRatio*100).Msg("[CIRCUIT BREAKER] Opening circuit")
				return true
			}
			return false
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Info().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("[CIRCUIT BREAKER] State transition")
			metrics.RecordCircuitBreakerTransition(name, from.String(), to.String())
		},
	})
}

// IsRejection reports whether err came from the breaker refusing a call
// rather than from the call itself.
func IsRejection(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)
}
