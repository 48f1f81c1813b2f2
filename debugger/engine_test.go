// Copyright © 2018 The ELPS authors

package debugger_test

import (
	"testing"

	"github.com/giorgioyu125/toylisp/arena"
	"github.com/giorgioyu125/toylisp/debugger"
	"github.com/giorgioyu125/toylisp/lisp"
	"github.com/stretchr/testify/assert"
)

// fakeServer is a minimal stand-in for *dapserver.Server satisfying the
// narrow interface Engine depends on, so these tests don't need to
// speak the DAP wire protocol.
type fakeServer struct {
	breakpoints map[string]bool
	paused      bool
	waited      bool
}

func (f *fakeServer) HasBreakpoint(name string) bool { return f.breakpoints[name] }
func (f *fakeServer) IsPaused() bool                  { return f.paused }
func (f *fakeServer) Pause()                          { f.paused = true }
func (f *fakeServer) Wait()                           { f.waited = true }

func TestOnEvalMatchesBreakpointedAtom(t *testing.T) {
	srv := &fakeServer{breakpoints: map[string]bool{"target": true}}
	e := debugger.New(srv)

	a := arena.New[lisp.LVal](16)
	expr := lisp.Cons(a, lisp.NewAtom(a, "target"), lisp.Nil)
	assert.True(t, e.OnEval(nil, expr, lisp.Nil))
}

func TestOnEvalIgnoresNonBreakpointedAtom(t *testing.T) {
	srv := &fakeServer{breakpoints: map[string]bool{"target": true}}
	e := debugger.New(srv)

	a := arena.New[lisp.LVal](16)
	expr := lisp.Cons(a, lisp.NewAtom(a, "other"), lisp.Nil)
	assert.False(t, e.OnEval(nil, expr, lisp.Nil))
}

func TestWaitIfPausedPausesAndWaits(t *testing.T) {
	srv := &fakeServer{}
	e := debugger.New(srv)

	action := e.WaitIfPaused(nil, lisp.Nil, lisp.Nil)
	assert.Equal(t, lisp.DebugContinue, action)
	assert.True(t, srv.paused)
	assert.True(t, srv.waited)
}

func TestIsEnabledAlwaysTrue(t *testing.T) {
	e := debugger.New(&fakeServer{})
	assert.True(t, e.IsEnabled())
}
