// Copyright © 2018 The ELPS authors

package lisp_test

import (
	"testing"

	"github.com/giorgioyu125/toylisp/arena"
	"github.com/giorgioyu125/toylisp/lisp"
	"github.com/stretchr/testify/assert"
)

func TestCopyToReconstructsConsStructure(t *testing.T) {
	src := arena.New[lisp.LVal](32)
	dest := arena.New[lisp.LVal](32)

	v := lisp.Cons(src, lisp.NewNumber(src, 1), lisp.Cons(src, lisp.NewAtom(src, "x"), lisp.Nil))
	copied := lisp.CopyTo(dest, v)

	assert.Equal(t, "(1 x)", copied.String())
	assert.NotSame(t, v, copied)
	assert.NotSame(t, v.Car, copied.Car)
}

func TestCopyToClosureSharesEnvByReference(t *testing.T) {
	src := arena.New[lisp.LVal](32)
	dest := arena.New[lisp.LVal](32)

	env := lisp.Extend(src, "y", lisp.NewNumber(src, 1), lisp.Nil)
	fn := lisp.NewClosure(src, lisp.NewAtom(src, "x"), lisp.NewAtom(src, "x"), env)
	copied := lisp.CopyTo(dest, fn)

	assert.Same(t, env, copied.Env, "CopyTo must share a closure's captured environment by reference, not copy it")
	assert.NotSame(t, fn.Body, copied.Body)
}

func TestCopyToSurvivesSourceArenaReset(t *testing.T) {
	src := arena.New[lisp.LVal](4)
	dest := arena.New[lisp.LVal](32)

	v := lisp.Cons(src, lisp.NewNumber(src, 1), lisp.Cons(src, lisp.NewNumber(src, 2), lisp.Nil))
	copied := lisp.CopyTo(dest, v)
	src.Reset()

	assert.Equal(t, "(1 2)", copied.String(), "a deep copy must be independent of the source arena's later reset")
}
