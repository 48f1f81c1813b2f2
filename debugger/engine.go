// Copyright © 2018 The ELPS authors

// Package debugger adapts a debugger/dapserver.Server into the
// lisp.Debugger hook interface: the Server owns the wire protocol and
// the breakpoint/pause state, Engine is the thin glue Eval actually
// calls through.
package debugger

import (
	"fmt"

	"github.com/giorgioyu125/toylisp/lisp"
)

// server is the subset of *dapserver.Server that Engine depends on,
// kept as an interface so this package doesn't need to import
// debugger/dapserver's concrete type for anything beyond construction.
type server interface {
	HasBreakpoint(name string) bool
	IsPaused() bool
	Pause()
	Wait()
}

// Engine implements lisp.Debugger by consulting srv's breakpoint set
// and blocking on its pause/resume signal. toylisp's evaluator is a
// flat (expr, env) trampoline, so Engine tracks no call stack of its
// own beyond what OnFunEntry/OnFunReturn report about the single
// top-level call currently in flight.
type Engine struct {
	srv     server
	funName string
}

var _ lisp.Debugger = &Engine{}

// New returns an Engine that drives srv's breakpoint and pause state.
func New(srv server) *Engine {
	return &Engine{srv: srv}
}

// IsEnabled reports true unconditionally: an Engine only exists once
// --debug has attached a dapserver.Server, so it is always "enabled" in
// the sense of being consulted; dormancy is controlled by the
// breakpoint set being empty, not by this flag.
func (e *Engine) IsEnabled() bool {
	return true
}

// OnEval reports whether expr's head names a breakpointed atom.
func (e *Engine) OnEval(_ *lisp.Context, expr, _ *lisp.LVal) bool {
	if expr.Type != lisp.LCons || expr.Car.Type != lisp.LAtom {
		return false
	}
	return e.srv.HasBreakpoint(expr.Car.Str)
}

// WaitIfPaused pauses the debuggee (notifying the DAP client with a
// stopped event) and blocks until the client sends continue.
func (e *Engine) WaitIfPaused(_ *lisp.Context, _, _ *lisp.LVal) lisp.DebugAction {
	e.srv.Pause()
	e.srv.Wait()
	return lisp.DebugContinue
}

// OnFunEntry records the printed form of the closure currently being
// applied. Nothing reads the recorded name back: the DAP server answers
// stackTrace requests with an error response.
func (e *Engine) OnFunEntry(_ *lisp.Context, fun, _ *lisp.LVal) {
	e.funName = fmt.Sprintf("%s", fun)
}

// OnFunReturn clears the in-flight call name once EvalTopLevel has the
// final result of a top-level form.
func (e *Engine) OnFunReturn(_ *lisp.Context, _, _ *lisp.LVal) {
	e.funName = ""
}
