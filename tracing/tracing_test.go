// Copyright © 2018 The ELPS authors

package tracing_test

import (
	"context"
	"testing"

	"github.com/giorgioyu125/toylisp/arena"
	"github.com/giorgioyu125/toylisp/lisp"
	"github.com/giorgioyu125/toylisp/tracing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReturnsAWorkingTracer(t *testing.T) {
	shutdown, tracer, err := tracing.New("toylisp-test")
	require.NoError(t, err)
	require.NotNil(t, tracer)
	defer func() { assert.NoError(t, shutdown(context.Background())) }()

	endCycle := tracer.StartCycle("(+ 1 2)")
	endCall := tracer.StartCall(lisp.Nil)
	endCall()
	endCycle()
}

func TestStartCallLabelsPrimitivesAndClosuresDifferently(t *testing.T) {
	_, tracer, err := tracing.New("toylisp-test")
	require.NoError(t, err)

	a := arena.New[lisp.LVal](16)
	prim := lisp.NewPrimitive(a, 0)
	assert.NotPanics(t, func() {
		end := tracer.StartCall(prim)
		end()
	})

	closure := lisp.NewClosure(a, lisp.Nil, lisp.Nil, lisp.Nil)
	assert.NotPanics(t, func() {
		end := tracer.StartCall(closure)
		end()
	})
}

func TestOpenCensusBackendImplementsTracer(t *testing.T) {
	tracer := tracing.NewOpenCensus(context.Background())
	require.NotNil(t, tracer)

	a := arena.New[lisp.LVal](16)
	prim := lisp.NewPrimitive(a, 0)

	endCycle := tracer.StartCycle("(+ 1 2)")
	endCall := tracer.StartCall(prim)
	assert.NotPanics(t, endCall)
	assert.NotPanics(t, endCycle)
}

func TestOpenCensusBackendDefaultsNilContext(t *testing.T) {
	assert.NotPanics(t, func() {
		tracer := tracing.NewOpenCensus(nil)
		end := tracer.StartCycle("cycle")
		end()
	})
}
