// Package telemetry implements ports.Tracer on top of OpenTelemetry.
package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.trai.ch/taskscript/internal/core/ports"
)

// LogSink receives the output written to a span, keyed by the span's ID.
type LogSink func(spanID string, data []byte)

// Option configures an OTelTracer.
type Option func(*OTelTracer)

// WithLogSink forwards everything written to the tracer's spans to sink.
func WithLogSink(sink LogSink) Option {
	return func(t *OTelTracer) {
		t.sink = sink
	}
}

// OTelTracer is a concrete implementation of ports.Tracer using OpenTelemetry.
type OTelTracer struct {
	tracer trace.Tracer
	sink   LogSink
}

// NewOTelTracer creates a new OTelTracer with the given instrumentation name,
// backed by the global tracer provider.
func NewOTelTracer(name string, opts ...Option) *OTelTracer {
	return NewOTelTracerFromProvider(otel.GetTracerProvider(), name, opts...)
}

// NewOTelTracerFromProvider creates a new OTelTracer backed by tp.
func NewOTelTracerFromProvider(tp trace.TracerProvider, name string, opts ...Option) *OTelTracer {
	t := &OTelTracer{tracer: tp.Tracer(name)}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Start creates a new span.
func (t *OTelTracer) Start(ctx context.Context, name string, opts ...ports.SpanOption) (context.Context, ports.Span) {
	cfg := ports.NewSpanConfig(opts...)

	ctx, span := t.tracer.Start(ctx, name)
	s := &OTelSpan{span: span, sink: t.sink}
	for k, v := range cfg.Attributes {
		s.SetAttribute(k, v)
	}
	return ctx, s
}

// EmitPlan signals that a set of tasks is planned for execution by adding an event to the current span.
func (t *OTelTracer) EmitPlan(ctx context.Context, taskNames []string) {
	span := trace.SpanFromContext(ctx)
	if span.IsRecording() {
		span.AddEvent("plan_emitted", trace.WithAttributes(
			attribute.StringSlice("tasks", taskNames),
		))
	}
}

// OTelSpan is a concrete implementation of ports.Span using OpenTelemetry.
type OTelSpan struct {
	span trace.Span
	sink LogSink
}

// End completes the span.
func (s *OTelSpan) End() {
	s.span.End()
}

// RecordError records err on the span and marks the span as failed.
func (s *OTelSpan) RecordError(err error) {
	if err == nil {
		return
	}
	s.span.RecordError(err)
	s.span.SetStatus(codes.Error, err.Error())
}

// SetAttribute adds a key-value pair to the span.
func (s *OTelSpan) SetAttribute(key string, value any) {
	switch v := value.(type) {
	case string:
		s.span.SetAttributes(attribute.String(key, v))
	case int:
		s.span.SetAttributes(attribute.Int(key, v))
	case int64:
		s.span.SetAttributes(attribute.Int64(key, v))
	case float64:
		s.span.SetAttributes(attribute.Float64(key, v))
	case bool:
		s.span.SetAttributes(attribute.Bool(key, v))
	case []string:
		s.span.SetAttributes(attribute.StringSlice(key, v))
	default:
		s.span.SetAttributes(attribute.String(key, fmt.Sprintf("%v", v)))
	}
}

// Write satisfies io.Writer by adding a log event to the span.
func (s *OTelSpan) Write(p []byte) (n int, err error) {
	s.span.AddEvent("log", trace.WithAttributes(attribute.String("message", string(p))))
	if s.sink != nil {
		s.sink(s.span.SpanContext().SpanID().String(), append([]byte(nil), p...))
	}
	return len(p), nil
}
