// Package middleware provides event middleware for tour sessions.
//
// Every client event passes through the session's middleware chain before
// its handler runs. The chain sees the event, its context and, once next
// returns, the number of patches it produced.
//
// # Prometheus
//
//	metrics := middleware.Prometheus(middleware.WithRegistry(reg))
//	srv.Use(metrics.Handle)
//	metrics.Observe(srv.Sessions())
//
// Metrics collected:
//   - tour_events_total{event,status}
//   - tour_event_duration_seconds{event}
//   - tour_patches_sent_total
//   - tour_active_sessions
//   - tour_handler_panics_total
//
// # OpenTelemetry
//
//	srv.Use(middleware.OpenTelemetry(middleware.WithTracerName("tour")))
//
// One span per event, named tour.<event>, carrying the session ID, target
// HID and patch count. The global tracer provider is used unless
// WithTracerProvider is given.
//
// # Logging
//
//	srv.Use(middleware.Logging(logger))
package middleware
