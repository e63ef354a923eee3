// Copyright 2026 The dadata Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package tracing records lookup executions as OpenTelemetry spans.
//
// One client span covers the whole execution, retries and waits
// included. Attempts and retry waits are recorded as span events, and
// the trace context is propagated to the server in the headers of each
// attempt.
package tracing

import (
	"context"
	"time"

	"github.com/gogama/dadata"
	"github.com/gogama/dadata/request"
	"github.com/gogama/dadata/transient"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	semconv "go.opentelemetry.io/otel/semconv/v1.32.0"
	"go.opentelemetry.io/otel/trace"
)

// TracerName is the instrumentation name used when no tracer is
// supplied.
const TracerName = "github.com/gogama/dadata"

const spanName = "dadata.findById.party"

type spanKey struct{}

// Option configures Install.
type Option func(*tracer)

// WithTracerProvider sets the provider spans are created from. The
// global provider is used by default.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(t *tracer) {
		t.provider = tp
	}
}

// WithPropagator sets the propagator that injects the trace context
// into attempt headers. The global propagator is used by default.
func WithPropagator(p propagation.TextMapPropagator) Option {
	return func(t *tracer) {
		t.propagator = p
	}
}

type tracer struct {
	provider   trace.TracerProvider
	propagator propagation.TextMapPropagator
	tracer     trace.Tracer
}

// Install adds tracing handlers to g.
func Install(g *dadata.HandlerGroup, opts ...Option) {
	t := &tracer{}
	for _, opt := range opts {
		opt(t)
	}
	if t.provider == nil {
		t.provider = otel.GetTracerProvider()
	}
	if t.propagator == nil {
		t.propagator = otel.GetTextMapPropagator()
	}
	t.tracer = t.provider.Tracer(TracerName)

	g.PushBack(dadata.BeforeExecutionStart, dadata.HandlerFunc(t.start))
	g.PushBack(dadata.BeforeAttempt, dadata.HandlerFunc(t.beforeAttempt))
	g.PushBack(dadata.AfterAttempt, dadata.HandlerFunc(t.afterAttempt))
	g.PushBack(dadata.BeforeRetryWait, dadata.HandlerFunc(t.beforeRetryWait))
	g.PushBack(dadata.AfterExecutionEnd, dadata.HandlerFunc(t.end))
}

// SpanFromExecution returns the span recording e, or a no-op span if
// e is not traced.
func SpanFromExecution(e *request.Execution) trace.Span {
	if s, ok := e.Value(spanKey{}).(trace.Span); ok {
		return s
	}
	return trace.SpanFromContext(context.Background())
}

func (t *tracer) start(_ dadata.Event, e *request.Execution) {
	_, span := t.tracer.Start(e.Plan.Context(), spanName,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithTimestamp(time.Now()),
		trace.WithAttributes(
			semconv.HTTPRequestMethodKey.String(e.Plan.Method),
			semconv.URLFullKey.String(e.Plan.URL.String()),
			semconv.ServerAddressKey.String(e.Plan.URL.Hostname()),
			attribute.Int("dadata.max_attempts", e.MaxAttempts),
		))
	if id := e.Plan.Header.Get("X-Request-ID"); id != "" {
		span.SetAttributes(attribute.String("dadata.request_id", id))
	}
	e.SetValue(spanKey{}, span)
}

func (t *tracer) beforeAttempt(_ dadata.Event, e *request.Execution) {
	span := SpanFromExecution(e)
	if !span.SpanContext().IsValid() || e.Request == nil {
		return
	}
	ctx := trace.ContextWithSpan(e.Request.Context(), span)
	t.propagator.Inject(ctx, propagation.HeaderCarrier(e.Request.Header))
}

func (t *tracer) afterAttempt(_ dadata.Event, e *request.Execution) {
	attrs := []attribute.KeyValue{attribute.Int("dadata.attempt", e.Attempt)}
	if e.Response != nil {
		attrs = append(attrs, semconv.HTTPResponseStatusCodeKey.Int(e.Response.StatusCode))
	} else if e.Err != nil {
		attrs = append(attrs,
			attribute.String("dadata.error.category", transient.Categorize(e.Err).String()),
			attribute.String("error.message", e.Err.Error()))
	}
	SpanFromExecution(e).AddEvent("dadata.attempt", trace.WithAttributes(attrs...))
}

func (t *tracer) beforeRetryWait(_ dadata.Event, e *request.Execution) {
	SpanFromExecution(e).AddEvent("dadata.retry", trace.WithAttributes(
		attribute.Int("dadata.attempt", e.Attempt),
		attribute.Int64("dadata.wait_ms", e.Wait.Milliseconds()),
	))
}

func (t *tracer) end(_ dadata.Event, e *request.Execution) {
	span := SpanFromExecution(e)
	span.SetAttributes(semconv.HTTPRequestResendCountKey.Int(e.Attempt - 1))
	if sc := e.StatusCode(); sc != 0 {
		span.SetAttributes(semconv.HTTPResponseStatusCodeKey.Int(sc))
	}
	if e.Err != nil {
		span.RecordError(e.Err)
		span.SetStatus(codes.Error, dadata.Message(e.Err))
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End(trace.WithTimestamp(e.End))
}
