// Copyright © 2018 The ELPS authors

package lisp_test

import (
	"strings"
	"testing"

	"github.com/giorgioyu125/toylisp/lisp"
	"github.com/giorgioyu125/toylisp/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// evalAll parses every top-level form in src and evaluates each in turn
// against a freshly bootstrapped Context, returning the printed form of
// the last result: a source -> expected-printed-output table-test
// helper.
func evalAll(t *testing.T, src string) string {
	t.Helper()
	ctx := lisp.NewContext()
	lisp.Bootstrap(ctx)
	rd, err := parser.NewReader(ctx, "test", strings.NewReader(src))
	require.NoError(t, err)

	var last *lisp.LVal
	for {
		form, err := rd.Next()
		if err != nil {
			break
		}
		last = ctx.EvalTopLevel(form)
		ctx.ResetScratch()
	}
	require.NotNil(t, last, "source produced no forms: %q", src)
	return last.String()
}

func TestSelfEvaluation(t *testing.T) {
	assert.Equal(t, "6", evalAll(t, "(+ 1 2 3)"))
	assert.Equal(t, "42", evalAll(t, "42"))
	assert.Equal(t, `"hi"`, evalAll(t, `"hi"`))
}

func TestQuoteIdentity(t *testing.T) {
	assert.Equal(t, "(a b c)", evalAll(t, "'(a b c)"))
	assert.Equal(t, "foo", evalAll(t, "'foo"))
	assert.Equal(t, "()", evalAll(t, "'()"))
}

func TestConsCarCdr(t *testing.T) {
	assert.Equal(t, "1", evalAll(t, "(car (cons 1 2))"))
	assert.Equal(t, "2", evalAll(t, "(cdr (cons 1 2))"))
}

func TestListLength(t *testing.T) {
	assert.Equal(t, "3", evalAll(t, "(len '(a b c))"))
	assert.Equal(t, "0", evalAll(t, "(len '())"))
}

func TestFactorial(t *testing.T) {
	const src = `
	  (define fact (lambda (n) (if (= n 0) 1 (* n (fact (- n 1))))))
	  (fact 5)
	`
	assert.Equal(t, "120", evalAll(t, src))
}

func TestComparisonsAreStrictlyTwoArgument(t *testing.T) {
	assert.Equal(t, "#t", evalAll(t, "(< 1 2)"))
	assert.Equal(t, "()", evalAll(t, "(< 2 1)"))
	assert.Equal(t, "#t", evalAll(t, "(>= 3 3)"))
	assert.Equal(t, "#t", evalAll(t, "(= 5 5)"))
	assert.Contains(t, evalAll(t, "(< 1 2 3)"), "expects 2 arguments, but got 3")
}

func TestIntTruncatesTowardZero(t *testing.T) {
	assert.Equal(t, "3", evalAll(t, "(int 3.7)"))
	assert.Equal(t, "-3", evalAll(t, "(int -3.7)"))
	assert.Equal(t, "0", evalAll(t, "(int 0.4)"))
}

func TestLetStarSequentialScoping(t *testing.T) {
	assert.Equal(t, "110", evalAll(t, "(let* ((x 10) (y (+ x 1))) (* x y))"))
}

func TestLetStarSelfRecursiveBinding(t *testing.T) {
	const src = `
	  (let* ((count (lambda (n) (if (= n 0) 0 (+ 1 (count (- n 1)))))))
	    (count 5))
	`
	assert.Equal(t, "5", evalAll(t, src))
}

func TestQuasiquoteSplicing(t *testing.T) {
	assert.Equal(t, "(1 5 4)", evalAll(t, "`(1 ,(+ 2 3) 4)"))
}

func TestQuasiquoteNoCommaSharesStructure(t *testing.T) {
	assert.Equal(t, "(1 2 3)", evalAll(t, "`(1 2 3)"))

	ctx := lisp.NewContext()
	lisp.Bootstrap(ctx)
	rd, err := parser.NewReader(ctx, "test", strings.NewReader("`(1 2 3)"))
	require.NoError(t, err)
	form, err := rd.Next()
	require.NoError(t, err)
	assert.Same(t, form.Cdr.Car, ctx.EvalTopLevel(form), "a template with no comma is returned unrebuilt")
}

func TestLateGlobalBindingVisibleInClosure(t *testing.T) {
	const src = `
	  (define f (lambda (x) (+ x y)))
	  (define y 100)
	  (f 1)
	`
	assert.Equal(t, "101", evalAll(t, src))
}

func TestMacroExpansion(t *testing.T) {
	const src = `
	  (define m (macro (a b) ` + "`" + `(+ ,a ,b)))
	  (m 1 2)
	`
	assert.Equal(t, "3", evalAll(t, src))
}

func TestDivisionByZero(t *testing.T) {
	assert.Contains(t, evalAll(t, "(/ 1 0)"), "division by zero")
}

func TestCarOfNonPair(t *testing.T) {
	assert.Contains(t, evalAll(t, "(car '())"), "expected cons")
}

func TestUndefineThenLookup(t *testing.T) {
	const src = `
	  (define x 1)
	  (undefine! x)
	  x
	`
	assert.Contains(t, evalAll(t, src), "undefined variable: x")
}

func TestRedefinitionError(t *testing.T) {
	const src = `
	  (define x 1)
	  (define x 2)
	`
	assert.Contains(t, evalAll(t, src), "cannot redefine")
}

func TestSetBangUnboundError(t *testing.T) {
	assert.Contains(t, evalAll(t, "(set! nope 1)"), "cannot set! unbound variable")
}

func TestSetBangMutatesExistingBinding(t *testing.T) {
	const src = `
	  (define x 1)
	  (set! x 2)
	  x
	`
	assert.Equal(t, "2", evalAll(t, src))
}

func TestArityErrorOnClosure(t *testing.T) {
	const src = `
	  (define f (lambda (a b) (+ a b)))
	  (f 1)
	`
	assert.Contains(t, evalAll(t, src), "expects 2 arguments, but got 1")
}

func TestArityErrorOnPrimitive(t *testing.T) {
	assert.Contains(t, evalAll(t, "(eq? 1)"), "expects 2 arguments, but got 1")
}

func TestVariadicClosureBindsRest(t *testing.T) {
	const src = `
	  (define f (lambda (a . rest) (len rest)))
	  (f 1 2 3 4)
	`
	assert.Equal(t, "3", evalAll(t, src))
}

func TestCondFallsThroughToNil(t *testing.T) {
	assert.Equal(t, "()", evalAll(t, "(cond (() 1) (() 2))"))
}

func TestCondElseClause(t *testing.T) {
	assert.Equal(t, "3", evalAll(t, "(cond (() 1) (else 3))"))
}

func TestAndShortCircuits(t *testing.T) {
	assert.Equal(t, "()", evalAll(t, "(and 1 () this-is-never-looked-up)"))
}

func TestOrShortCircuits(t *testing.T) {
	assert.Equal(t, "1", evalAll(t, "(or () 1 2)"))
}

func TestMapcarFilterReduce(t *testing.T) {
	const incr = `(mapcar (lambda (x) (+ x 1)) '(1 2 3))`
	assert.Equal(t, "(2 3 4)", evalAll(t, incr))

	const evens = `(filter (lambda (x) (= (% x 2) 0)) '(1 2 3 4 5 6))`
	assert.Equal(t, "(2 4 6)", evalAll(t, evens))

	const sum3 = `(reduce + 0 '(1 2 3 4))`
	assert.Equal(t, "10", evalAll(t, sum3))

	const sum2 = `(reduce + '(1 2 3 4))`
	assert.Equal(t, "10", evalAll(t, sum2))
}

func TestApplyAndEval(t *testing.T) {
	assert.Equal(t, "6", evalAll(t, "(apply + '(1 2 3))"))
	assert.Equal(t, "6", evalAll(t, "(eval '(+ 1 2 3))"))
}

func TestTailCallDoesNotGrowHostStack(t *testing.T) {
	const src = `
	  (define loop (lambda (n acc) (if (= n 0) acc (loop (- n 1) (+ acc 1)))))
	  (loop 100000 0)
	`
	assert.Equal(t, "100000", evalAll(t, src))
}

func TestArenaResetInvalidatesScratchNotGlobals(t *testing.T) {
	ctx := lisp.NewContext()
	lisp.Bootstrap(ctx)
	rd, err := parser.NewReader(ctx, "test", strings.NewReader("(define x (list 1 2 3))"))
	require.NoError(t, err)
	form, err := rd.Next()
	require.NoError(t, err)
	ctx.EvalTopLevel(form)
	ctx.ResetScratch()

	rd2, err := parser.NewReader(ctx, "test", strings.NewReader("x"))
	require.NoError(t, err)
	form2, err := rd2.Next()
	require.NoError(t, err)
	result := ctx.EvalTopLevel(form2)
	assert.Equal(t, "(1 2 3)", result.String())
}
