package middleware

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/vango-dev/tour/pkg/protocol"
	"github.com/vango-dev/tour/pkg/server"
)

// MetricsConfig configures Prometheus.
type MetricsConfig struct {
	Namespace   string // default "tour"
	Subsystem   string
	ConstLabels prometheus.Labels
	Buckets     []float64             // event duration; default prometheus.DefBuckets
	Registry    prometheus.Registerer // default prometheus.DefaultRegisterer
}

// MetricsOption configures Prometheus.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metric namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) { c.Namespace = namespace }
}

// WithSubsystem sets the metric subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) { c.Subsystem = subsystem }
}

// WithConstLabels adds constant labels to every metric.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) { c.ConstLabels = labels }
}

// WithBuckets sets the event duration histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) { c.Buckets = buckets }
}

// WithRegistry registers the metrics on registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) { c.Registry = registry }
}

// Metrics are the Prometheus collectors for live sessions. Events are
// labelled by root widget and event type, both of which are small fixed
// sets.
type Metrics struct {
	eventsTotal    *prometheus.CounterVec
	eventDuration  *prometheus.HistogramVec
	submits        *prometheus.CounterVec
	patchesSent    prometheus.Counter
	activeSessions prometheus.Gauge
	handlerPanics  prometheus.Counter
}

// Prometheus creates and registers the session metrics. Install Handle as
// event middleware and pass the session manager to Observe.
//
//	m := middleware.Prometheus(middleware.WithRegistry(reg))
//	m.Observe(srv.Sessions())
//	srv.Use(m.Handle)
func Prometheus(opts ...MetricsOption) *Metrics {
	c := MetricsConfig{
		Namespace: "tour",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(&c)
	}
	f := promauto.With(c.Registry)
	counter := func(name, help string) prometheus.CounterOpts {
		return prometheus.CounterOpts{
			Namespace: c.Namespace, Subsystem: c.Subsystem, ConstLabels: c.ConstLabels,
			Name: name, Help: help,
		}
	}

	return &Metrics{
		eventsTotal: f.NewCounterVec(
			counter("events_total", "Total number of events handled"),
			[]string{"root", "event", "status"}),
		eventDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: c.Namespace, Subsystem: c.Subsystem, ConstLabels: c.ConstLabels,
			Name:    "event_duration_seconds",
			Help:    "Event handling duration in seconds, including re-render and diff",
			Buckets: c.Buckets,
		}, []string{"root", "event"}),
		submits: f.NewCounterVec(
			counter("form_submits_total", "Form submits by whether the browser default was prevented"),
			[]string{"root", "outcome"}),
		patchesSent: f.NewCounter(
			counter("patches_sent_total", "Total number of patches sent to clients")),
		handlerPanics: f.NewCounter(
			counter("handler_panics_total", "Total number of recovered handler panics")),
		activeSessions: f.NewGauge(prometheus.GaugeOpts{
			Namespace: c.Namespace, Subsystem: c.Subsystem, ConstLabels: c.ConstLabels,
			Name: "active_sessions",
			Help: "Number of active live sessions",
		}),
	}
}

// Handle is the event middleware.
func (m *Metrics) Handle(ev *server.Event, next func() error) error {
	start := time.Now()
	err := next()

	root, event := rootName(ev), ev.TypeString()
	m.eventDuration.WithLabelValues(root, event).Observe(time.Since(start).Seconds())
	m.eventsTotal.WithLabelValues(root, event, eventStatus(err)).Inc()
	m.patchesSent.Add(float64(ev.PatchCount))

	if ev.Type == protocol.EventSubmit && err == nil {
		outcome := "navigated"
		if ev.Prevented {
			outcome = "prevented"
		}
		m.submits.WithLabelValues(root, outcome).Inc()
	}
	if eventStatus(err) == "panic" {
		m.handlerPanics.Inc()
	}
	return err
}

// Observe keeps the active session gauge in step with sm.
func (m *Metrics) Observe(sm *server.SessionManager) {
	sm.SetOnSessionCreate(func(*server.Session) { m.activeSessions.Inc() })
	sm.SetOnSessionClose(func(*server.Session) { m.activeSessions.Dec() })
}

func rootName(ev *server.Event) string {
	if ev.Session == nil || ev.Session.RootName == "" {
		return "unknown"
	}
	return ev.Session.RootName
}

// eventStatus maps an event error to a label value.
func eventStatus(err error) string {
	var herr *server.HandlerError
	switch {
	case err == nil:
		return "success"
	case errors.As(err, &herr):
		return "panic"
	case errors.Is(err, server.ErrHandlerNotFound):
		return "not_found"
	default:
		return "error"
	}
}
