// Copyright © 2018 The ELPS authors

package lisp

// Debugger is called by Eval at a small number of points to support
// breakpoints and stepping over the Debug Adapter Protocol (see package
// debugger/dapserver). When Runtime.Debugger is nil, no hook calls are
// made and there is zero overhead on the hot path.
//
// Hook calls use a two-check gate pattern:
//
//	if d := ctx.Runtime.Debugger; d != nil && d.IsEnabled() { ... }
//
// The nil check is free (branch-predicted not-taken); IsEnabled lets a
// debugger stay attached but dormant.
//
// toylisp's evaluator is a flat (expr, env) trampoline rather than a
// recursive call stack, so OnFunEntry/OnFunReturn fire at the two
// points that matter here: the moment a Closure is about to be
// tail-applied, and the moment EvalTopLevel has the final result of a
// top-level form.
type Debugger interface {
	// IsEnabled reports whether the debugger is actively debugging. A
	// dormant (attached but inactive) debugger returns false.
	IsEnabled() bool

	// OnEval is called before applying any Cons form, once its head has
	// been evaluated, whatever the head's type. Returns true if execution
	// should pause (for example, the head is an atom naming a
	// breakpointed symbol).
	OnEval(ctx *Context, expr, env *LVal) bool

	// WaitIfPaused blocks until the debugger allows execution to
	// continue. Called when OnEval returns true.
	WaitIfPaused(ctx *Context, expr, env *LVal) DebugAction

	// OnFunEntry is called when a Closure is about to be tail-applied,
	// after its formal parameters have been bound in fenv.
	OnFunEntry(ctx *Context, fun, fenv *LVal)

	// OnFunReturn is called by EvalTopLevel once a top-level form has
	// produced its result. fun is the top-level form itself, not a
	// Closure.
	OnFunReturn(ctx *Context, fun, result *LVal)
}

// DebugAction is the action a debugger reports from WaitIfPaused when it
// resumes execution from a paused state. Eval discards the returned
// action, so every value behaves like DebugContinue.
type DebugAction int

const (
	// DebugContinue resumes execution until the next breakpoint.
	DebugContinue DebugAction = iota
	// DebugStepInto names a request to pause on the next OnEval call;
	// Eval does not act on it.
	DebugStepInto
)
