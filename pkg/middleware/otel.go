package middleware

import (
	"errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/tour/pkg/server"
)

// OTelConfig holds the settings applied by OTelOptions.
type OTelConfig struct {
	TracerName     string               // default "tour"
	TracerProvider trace.TracerProvider // default otel.GetTracerProvider()
	Filter         func(ev *server.Event) bool
}

// OTelOption configures OpenTelemetry.
type OTelOption func(*OTelConfig)

func WithTracerName(name string) OTelOption {
	return func(c *OTelConfig) { c.TracerName = name }
}

func WithTracerProvider(tp trace.TracerProvider) OTelOption {
	return func(c *OTelConfig) { c.TracerProvider = tp }
}

// WithEventFilter traces only the events filter accepts.
func WithEventFilter(filter func(ev *server.Event) bool) OTelOption {
	return func(c *OTelConfig) { c.Filter = filter }
}

// OpenTelemetry starts a server span named "tour.<event>" around each
// event. The span carries the session, root and target element, and after
// the handler the patch count and whether a submit was kept from
// navigating. Handlers further down the chain reach it with SpanFromEvent.
func OpenTelemetry(opts ...OTelOption) server.EventMiddleware {
	cfg := OTelConfig{TracerName: "tour"}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.TracerProvider == nil {
		cfg.TracerProvider = otel.GetTracerProvider()
	}
	tracer := cfg.TracerProvider.Tracer(cfg.TracerName)

	return func(ev *server.Event, next func() error) error {
		if cfg.Filter != nil && !cfg.Filter(ev) {
			return next()
		}

		ctx, span := tracer.Start(ev.Context(), "tour."+ev.TypeString(),
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(eventAttrs(ev)...))
		defer span.End()
		ev.WithContext(ctx)

		err := next()
		endSpan(span, ev, err)
		return err
	}
}

func eventAttrs(ev *server.Event) []attribute.KeyValue {
	kv := []attribute.KeyValue{
		attribute.String("tour.event_type", ev.TypeString()),
		attribute.String("tour.event_target", ev.HID),
		attribute.Int64("tour.event_seq", int64(ev.Seq)),
	}
	if s := ev.Session; s != nil {
		kv = append(kv,
			attribute.String("tour.session_id", s.ID),
			attribute.String("tour.root", s.RootName))
	}
	return kv
}

func endSpan(span trace.Span, ev *server.Event, err error) {
	span.SetAttributes(
		attribute.Int("tour.patch_count", ev.PatchCount),
		attribute.Bool("tour.default_prevented", ev.Prevented))

	if err == nil {
		span.SetStatus(codes.Ok, "")
		return
	}
	var herr *server.HandlerError
	if errors.As(err, &herr) {
		span.SetAttributes(attribute.Bool("tour.panic", true))
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

// SpanFromEvent returns the span OpenTelemetry started for ev, or a
// non-recording span when ev is not traced.
func SpanFromEvent(ev *server.Event) trace.Span {
	return trace.SpanFromContext(ev.Context())
}
