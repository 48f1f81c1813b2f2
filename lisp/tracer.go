// Copyright © 2018 The ELPS authors

package lisp

// Tracer is consulted by Eval at the start and end of each top-level
// cycle and each function application (see package tracing for an
// OpenTelemetry-backed implementation). A nil Tracer (the default)
// costs nothing; Runtime.Tracer is only non-nil when the caller
// explicitly installs one (e.g. "toylisp --trace").
type Tracer interface {
	// StartCycle marks the beginning of one top-level parse-eval-print
	// cycle and returns a function that ends the corresponding span.
	StartCycle(label string) func()

	// StartCall marks the application of fun (a Closure or strict
	// Primitive) and returns a function that ends the corresponding span.
	// A Primitive's span ends when the primitive returns. A Closure's
	// span ends as soon as its arguments are bound, before its body is
	// evaluated, because Eval continues into the body through its
	// trampoline rather than a nested call.
	StartCall(fun *LVal) func()
}

// noopTracer implements Tracer by doing nothing. It exists so call sites
// can unconditionally ask ctx.Runtime.tracer() for a Tracer instead of
// nil-checking Runtime.Tracer everywhere.
type noopTracer struct{}

func (noopTracer) StartCycle(string) func() { return func() {} }
func (noopTracer) StartCall(*LVal) func()   { return func() {} }

func (r *Runtime) tracer() Tracer {
	if r.Tracer == nil {
		return noopTracer{}
	}
	return r.Tracer
}
