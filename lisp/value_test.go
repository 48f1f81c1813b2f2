// Copyright © 2018 The ELPS authors

package lisp_test

import (
	"testing"

	"github.com/giorgioyu125/toylisp/arena"
	"github.com/giorgioyu125/toylisp/lisp"
	"github.com/stretchr/testify/assert"
)

func TestAreEqualNumbers(t *testing.T) {
	a := arena.New[lisp.LVal](16)
	assert.True(t, lisp.AreEqual(lisp.NewNumber(a, 1), lisp.NewNumber(a, 1)))
	assert.False(t, lisp.AreEqual(lisp.NewNumber(a, 1), lisp.NewNumber(a, 2)))
}

func TestAreEqualAtomsAndStringsByContent(t *testing.T) {
	a := arena.New[lisp.LVal](16)
	assert.True(t, lisp.AreEqual(lisp.NewAtom(a, "foo"), lisp.NewAtom(a, "foo")))
	assert.True(t, lisp.AreEqual(lisp.NewString(a, "foo"), lisp.NewString(a, "foo")))
	assert.False(t, lisp.AreEqual(lisp.NewAtom(a, "foo"), lisp.NewAtom(a, "bar")))
}

func TestAreEqualConsByAddress(t *testing.T) {
	a := arena.New[lisp.LVal](16)
	c1 := lisp.Cons(a, lisp.NewNumber(a, 1), lisp.Nil)
	c2 := lisp.Cons(a, lisp.NewNumber(a, 1), lisp.Nil)
	assert.False(t, lisp.AreEqual(c1, c2), "two structurally-identical but distinct cons cells are not eq?")
	assert.True(t, lisp.AreEqual(c1, c1))
}

func TestIsProperListDetectsCycles(t *testing.T) {
	a := arena.New[lisp.LVal](16)
	tail := lisp.Cons(a, lisp.NewNumber(a, 1), lisp.Nil)
	tail.Cdr = tail // manufacture a cycle
	assert.False(t, lisp.IsProperList(tail))
}

func TestIsProperListAcceptsProperAndRejectsDotted(t *testing.T) {
	a := arena.New[lisp.LVal](16)
	proper := lisp.Cons(a, lisp.NewNumber(a, 1), lisp.Cons(a, lisp.NewNumber(a, 2), lisp.Nil))
	assert.True(t, lisp.IsProperList(proper))

	dotted := lisp.Cons(a, lisp.NewNumber(a, 1), lisp.NewNumber(a, 2))
	assert.False(t, lisp.IsProperList(dotted))
}

func TestIsTruthyOnlyNilIsFalsy(t *testing.T) {
	a := arena.New[lisp.LVal](16)
	assert.False(t, lisp.IsTruthy(lisp.Nil))
	assert.True(t, lisp.IsTruthy(lisp.NewNumber(a, 0)))
	assert.True(t, lisp.IsTruthy(lisp.NewString(a, "")))
}
