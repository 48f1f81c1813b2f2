// Copyright © 2018 The ELPS authors

package lisp

import (
	"io"
	"os"
)

// Runtime holds the process-wide state that survives across top-level
// evaluation cycles: the single global environment, the stream errors are
// written to, and the optional debugger/tracer hooks. Each Context owns
// one Runtime; the CLI's REPL and file modes create exactly one Context
// (see toylisp's single-execution-context concurrency model).
type Runtime struct {
	// GlobalEnv is the shared tail of every environment extension. It is
	// mutated in place only by define, set!, and undefine!.
	GlobalEnv *LVal

	// Stdout is where display and tap write their printed output.
	Stdout io.Writer

	// Stderr is where parser errors and fatal diagnostics are written.
	Stderr io.Writer

	// Debugger, when non-nil, is consulted by Eval at breakpointable
	// points. A nil Debugger costs nothing on the hot path.
	Debugger Debugger

	// Tracer, when non-nil, is consulted at the start and end of each
	// top-level cycle and function application.
	Tracer Tracer
}

// NewRuntime returns a Runtime with an empty global environment and
// Stderr set to os.Stderr.
func NewRuntime() *Runtime {
	return &Runtime{
		GlobalEnv: Nil,
		Stdout:    os.Stdout,
		Stderr:    os.Stderr,
	}
}
