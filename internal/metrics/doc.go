// Starchart - Star-Field Charts and Time-Lapse Sky Animation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/starchart

/*
Package metrics provides Prometheus instrumentation for Starchart.

Starchart is a batch tool, so metrics are not scraped over HTTP. Instead the
CLI can dump the default registry with WriteTextfile when a run finishes,
which suits node_exporter's textfile collector in cron-style deployments:

	starchart animate --metrics-file /var/lib/node_exporter/starchart.prom ...

# Available Metrics

Location cache:
  - starchart_location_cache_hits_total
  - starchart_location_cache_misses_total
  - starchart_location_cache_errors_total{operation}

External services:
  - starchart_external_requests_total{service,outcome}
  - starchart_external_request_duration_seconds{service}
  - starchart_circuit_breaker_state{name}
  - starchart_circuit_breaker_state_transitions_total{name,from_state,to_state}

Data and rendering:
  - starchart_data_load_duration_seconds{dataset}
  - starchart_catalog_stars
  - starchart_constellation_edges_dropped_total
  - starchart_frames_rendered_total{outcome}
  - starchart_frame_render_duration_seconds
  - starchart_animation_duration_seconds{format}
  - starchart_render_workers_active

All metrics are registered on the default registry via promauto and are safe
for concurrent use.
*/
package metrics
