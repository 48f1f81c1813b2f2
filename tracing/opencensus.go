// Copyright © 2018 The ELPS authors

package tracing

import (
	"context"

	"github.com/giorgioyu125/toylisp/lisp"
	"go.opencensus.io/trace"
)

// NewOpenCensus returns a lisp.Tracer backed by OpenCensus instead of
// OpenTelemetry: a single mutable current-context/current-span pair,
// exported as a second Tracer backend selectable via the CLI's
// --trace-backend flag rather than --trace always meaning
// OpenTelemetry. Spans are reported to whatever exporter the caller
// has registered with OpenCensus globally (trace.RegisterExporter);
// toylisp registers none itself — this backend only starts and ends
// spans and leaves exporting to its caller.
func NewOpenCensus(parent context.Context) lisp.Tracer {
	if parent == nil {
		parent = context.Background()
	}
	return &ocTracer{cur: parent}
}

type ocTracer struct {
	cur  context.Context
	span *trace.Span
}

var _ lisp.Tracer = &ocTracer{}

func (t *ocTracer) StartCycle(label string) func() {
	return t.startSpan(label)
}

func (t *ocTracer) StartCall(fun *lisp.LVal) func() {
	return t.startSpan(functionLabel(fun))
}

func (t *ocTracer) startSpan(label string) func() {
	parent, parentSpan := t.cur, t.span
	t.cur, t.span = trace.StartSpan(parent, label)
	return func() {
		t.span.End()
		t.cur, t.span = parent, parentSpan
	}
}
