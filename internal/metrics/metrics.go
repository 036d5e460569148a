// Starchart - Star-Field Charts and Time-Lapse Sky Animation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/starchart

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Location Cache Metrics
	LocationCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "starchart_location_cache_hits_total",
			Help: "Total number of location lookups served from the persistent cache",
		},
	)

	LocationCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "starchart_location_cache_misses_total",
			Help: "Total number of location lookups that required the geocoder",
		},
	)

	LocationCacheErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "starchart_location_cache_errors_total",
			Help: "Total number of location cache read/write failures",
		},
		[]string{"operation"}, // "load", "save"
	)

	// External Service Metrics
	ExternalRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "starchart_external_requests_total",
			Help: "Total number of requests to external services",
		},
		[]string{"service", "outcome"}, // service: "geocoder", "timezone", "download"
	)

	ExternalRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "starchart_external_request_duration_seconds",
			Help:    "Duration of external service requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"service"},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "starchart_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "starchart_circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// Data Loading Metrics
	DataLoadDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "starchart_data_load_duration_seconds",
			Help:    "Time to load and parse an astronomical data file",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"dataset"}, // "ephemeris", "catalog", "constellations"
	)

	StarsLoaded = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "starchart_catalog_stars",
			Help: "Number of stars in the loaded catalog",
		},
	)

	ConstellationEdgesDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "starchart_constellation_edges_dropped_total",
			Help: "Constellation edges dropped because an endpoint is missing from the catalog",
		},
	)

	// Rendering Metrics
	FramesRendered = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "starchart_frames_rendered_total",
			Help: "Total number of rendered frames",
		},
		[]string{"outcome"}, // "success", "failure"
	)

	FrameRenderDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "starchart_frame_render_duration_seconds",
			Help:    "Time to project and rasterise a single frame",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
	)

	AnimationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "starchart_animation_duration_seconds",
			Help:    "End-to-end animation generation time",
			Buckets: []float64{1, 5, 10, 30, 60, 120, 300, 600},
		},
		[]string{"format"},
	)

	WorkersActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "starchart_render_workers_active",
			Help: "Number of frame workers currently rendering",
		},
	)
)

// RecordLocationLookup records a cache hit or miss.
func RecordLocationLookup(hit bool) {
	if hit {
		LocationCacheHits.Inc()
	} else {
		LocationCacheMisses.Inc()
	}
}

// RecordExternalRequest records a call to an external service.
func RecordExternalRequest(service string, duration time.Duration, err error) {
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	ExternalRequestsTotal.WithLabelValues(service, outcome).Inc()
	ExternalRequestDuration.WithLabelValues(service).Observe(duration.Seconds())
}

// RecordFrame records a rendered frame.
func RecordFrame(duration time.Duration, err error) {
	if err != nil {
		FramesRendered.WithLabelValues("failure").Inc()
		return
	}
	FramesRendered.WithLabelValues("success").Inc()
	FrameRenderDuration.Observe(duration.Seconds())
}

// RecordDataLoad records how long a dataset took to load.
func RecordDataLoad(dataset string, duration time.Duration) {
	DataLoadDuration.WithLabelValues(dataset).Observe(duration.Seconds())
}

// RecordCircuitBreakerTransition updates the state gauge and transition counter.
// States use gobreaker's String() names.
func RecordCircuitBreakerTransition(name, from, to string) {
	CircuitBreakerTransitions.WithLabelValues(name, from, to).Inc()
	CircuitBreakerState.WithLabelValues(name).Set(stateValue(to))
}

func stateValue(state string) float64 {
	switch state {
	case "half-open":
		return 1
	case "open":
		return 2
	default:
		return 0
	}
}

// WriteTextfile writes every registered metric to path in the Prometheus
// text exposition format, for node_exporter's textfile collector.
func WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, prometheus.DefaultGatherer)
}
