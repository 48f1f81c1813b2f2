// Copyright © 2018 The ELPS authors

// Package tracing implements lisp.Tracer: an OpenTelemetry span per
// top-level cycle and per function application, installed only when
// the CLI's --trace flag is set.
package tracing

import (
	"context"
	"fmt"

	"github.com/giorgioyu125/toylisp/lisp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	stdouttrace "go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdkresource "go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.opentelemetry.io/otel/trace"
)

// New sets up an OpenTelemetry TracerProvider with a pretty-printed
// stdout exporter and returns a lisp.Tracer backed by it, plus a
// shutdown function the caller must invoke (typically deferred) to
// flush pending spans before the process exits.
func New(serviceName string) (shutdown func(context.Context) error, tracer lisp.Tracer, err error) {
	exporter, err := stdouttrace.New(stdouttrace.WithPrettyPrint())
	if err != nil {
		return nil, nil, fmt.Errorf("tracing: new exporter: %w", err)
	}

	res, err := sdkresource.Merge(sdkresource.Default(),
		sdkresource.NewSchemaless(semconv.ServiceName(serviceName)))
	if err != nil {
		return nil, nil, fmt.Errorf("tracing: new resource: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)

	t := &otelTracer{
		tr:  tp.Tracer(serviceName),
		cur: context.Background(),
	}
	return tp.Shutdown, t, nil
}

// otelTracer implements lisp.Tracer. toylisp's evaluator is strictly
// single-threaded, so a single mutable "current context" field is
// sufficient to track span nesting without any locking.
type otelTracer struct {
	tr  trace.Tracer
	cur context.Context
}

var _ lisp.Tracer = &otelTracer{}

// StartCycle opens a span named after the top-level form's printed
// representation, matching one parse-eval-print cycle to one span.
func (t *otelTracer) StartCycle(label string) func() {
	return t.startSpan(label, nil)
}

// StartCall opens a span named after the applied function: a
// primitive's registered name, or "<closure>" for a user-defined
// function (toylisp closures carry no name of their own).
func (t *otelTracer) StartCall(fun *lisp.LVal) func() {
	label := functionLabel(fun)
	attrs := []attribute.KeyValue{attribute.String("toylisp.function.kind", functionKind(fun))}
	return t.startSpan(label, attrs)
}

func (t *otelTracer) startSpan(label string, attrs []attribute.KeyValue) func() {
	parent := t.cur
	var span trace.Span
	t.cur, span = t.tr.Start(parent, label)
	if len(attrs) > 0 {
		span.SetAttributes(attrs...)
	}
	return func() {
		span.End()
		t.cur = parent
	}
}

// functionLabel and functionKind are shared by every Tracer backend
// (see opencensus.go) so each names and tags calls identically
// regardless of which exporter is installed.
func functionLabel(fun *lisp.LVal) string {
	if fun.Type == lisp.LPrimitive {
		return lisp.Primitives[fun.Prim].Name
	}
	return "<closure>"
}

func functionKind(fun *lisp.LVal) string {
	if fun.Type == lisp.LPrimitive {
		return "primitive"
	}
	return "closure"
}
