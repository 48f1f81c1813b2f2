// Copyright © 2018 The ELPS authors

package lisp

import (
	"fmt"
	"math"
)

// PrimFunc implements one entry of the primitives table. Strict
// primitives receive an already-evaluated argument list and
// always return (result, nil, nil). Special forms receive their operand
// list unevaluated and may instead return (nil, tailExpr, tailEnv) to
// hand Eval's outer loop an expression to continue evaluating in tail
// position — the same mechanism the evaluator uses for Closure
// application — rather than recursing into Eval themselves. Either form
// may close over env, the lexical environment the call was made in.
type PrimFunc func(ctx *Context, args, env *LVal) (result, tailExpr, tailEnv *LVal)

// PrimEntry is one row of the primitives table: a name, its
// implementation, its declared arity (UnboundedArity for variadic), and
// whether it is a special form.
type PrimEntry struct {
	Name        string
	Fn          PrimFunc
	Arity       int
	SpecialForm bool
	Doc         string
}

// Primitives is the fixed table indexed by LVal.Prim. Order is
// significant only in that it determines each primitive's index; it is
// fixed once at package init and never mutated afterward.
var Primitives []PrimEntry

// primIndex maps a primitive's name to its index in Primitives, built
// once from the table below. Bootstrap does not consult it: it binds
// every primitive by walking Primitives directly.
var primIndex map[string]int

func init() {
	Primitives = []PrimEntry{
		// Special forms (operands unevaluated). See specialforms.go.
		{Name: "quote", Fn: primQuote, Arity: 1, SpecialForm: true, Doc: "(quote expr) returns expr unevaluated."},
		{Name: "backquote", Fn: primBackquote, Arity: 1, SpecialForm: true, Doc: "(backquote expr) quasiquotes expr, evaluating any ,x it contains; ,@ splicing is not supported."},
		{Name: "if", Fn: primIf, Arity: 3, SpecialForm: true, Doc: "(if test then else) evaluates then if test is truthy, else otherwise."},
		{Name: "cond", Fn: primCond, Arity: UnboundedArity, SpecialForm: true, Doc: "(cond (test expr)...) evaluates the expr of the first truthy test."},
		{Name: "and", Fn: primAnd, Arity: UnboundedArity, SpecialForm: true, Doc: "(and expr...) evaluates left to right, short-circuiting on the first falsy result."},
		{Name: "or", Fn: primOr, Arity: UnboundedArity, SpecialForm: true, Doc: "(or expr...) evaluates left to right, short-circuiting on the first truthy result."},
		{Name: "lambda", Fn: primLambda, Arity: 2, SpecialForm: true, Doc: "(lambda params body) builds a closure over the current environment."},
		{Name: "macro", Fn: primMacro, Arity: 2, SpecialForm: true, Doc: "(macro params body) builds a macro expanded at call sites before evaluation."},
		{Name: "define", Fn: primDefine, Arity: 2, SpecialForm: true, Doc: "(define name expr) binds name to expr's value in the global environment."},
		{Name: "set!", Fn: primSetBang, Arity: 2, SpecialForm: true, Doc: "(set! name expr) rebinds an existing global binding of name."},
		{Name: "undefine!", Fn: primUndefineBang, Arity: 1, SpecialForm: true, Doc: "(undefine! name) removes name's global binding."},
		{Name: "let*", Fn: primLetStar, Arity: UnboundedArity, SpecialForm: true, Doc: "(let* ((name expr)...) body...) binds names sequentially, each visible to the next, then evaluates body."},

		// Arithmetic.
		{Name: "+", Fn: primAdd, Arity: UnboundedArity, Doc: "(+ n...) sums its arguments; (+) is 0."},
		{Name: "-", Fn: primSub, Arity: UnboundedArity, Doc: "(- n...) subtracts left to right; (- n) negates n."},
		{Name: "*", Fn: primMul, Arity: UnboundedArity, Doc: "(* n...) multiplies its arguments; (*) is 1."},
		{Name: "/", Fn: primDiv, Arity: UnboundedArity, Doc: "(/ n...) divides left to right; (/ n) is 1/n."},
		{Name: "%", Fn: primMod, Arity: 2, Doc: "(% a b) is the floating-point remainder of a divided by b."},
		{Name: "int", Fn: primInt, Arity: 1, Doc: "(int n) truncates n toward zero and returns the result as a number."},

		// Comparison.
		{Name: "<", Fn: primLt, Arity: 2, Doc: "(< a b) is true if a is less than b."},
		{Name: ">", Fn: primGt, Arity: 2, Doc: "(> a b) is true if a is greater than b."},
		{Name: "<=", Fn: primLe, Arity: 2, Doc: "(<= a b) is true if a is less than or equal to b."},
		{Name: ">=", Fn: primGe, Arity: 2, Doc: "(>= a b) is true if a is greater than or equal to b."},
		{Name: "=", Fn: primNumEq, Arity: 2, Doc: "(= a b) is true if a and b are numerically equal."},

		// Equality and predicates.
		{Name: "eq?", Fn: primEqP, Arity: 2, Doc: "(eq? a b) is true if a and b are structurally equal."},
		{Name: "not", Fn: primNot, Arity: 1, Doc: "(not x) is true if x is falsy, false otherwise."},
		{Name: "pair?", Fn: primPairP, Arity: 1, Doc: "(pair? x) is true if x is a cons cell."},
		{Name: "list?", Fn: primListP, Arity: 1, Doc: "(list? x) is true if x is a proper list."},
		{Name: "number?", Fn: primNumberP, Arity: UnboundedArity, Doc: "(number? x...) is true if every argument is a number."},

		// Constructors.
		{Name: "cons", Fn: primConsFn, Arity: 2, Doc: "(cons a b) builds a new cons cell with car a and cdr b."},
		{Name: "list", Fn: primListFn, Arity: UnboundedArity, Doc: "(list x...) returns its arguments as a proper list."},
		{Name: "car", Fn: primCarFn, Arity: 1, Doc: "(car x) returns the first element of the cons cell x."},
		{Name: "cdr", Fn: primCdrFn, Arity: 1, Doc: "(cdr x) returns the rest of the cons cell x."},
		{Name: "reverse", Fn: primReverse, Arity: 1, Doc: "(reverse list) returns a new list with list's elements in reverse order."},
		{Name: "len", Fn: primLen, Arity: 1, Doc: "(len list) returns the number of elements in list."},

		// Higher-order.
		{Name: "mapcar", Fn: primMapcar, Arity: 2, Doc: "(mapcar fun list) applies fun to each element of list, returning the results as a new list."},
		{Name: "filter", Fn: primFilter, Arity: 2, Doc: "(filter fun list) returns the elements of list for which fun returns truthy."},
		{Name: "reduce", Fn: primReduce, Arity: UnboundedArity, Doc: "(reduce fun list) or (reduce fun seed list) folds fun over list's elements."},

		// Meta.
		{Name: "apply", Fn: primApply, Arity: 2, Doc: "(apply fun args) calls fun with the elements of args as its arguments."},
		{Name: "eval", Fn: primEval, Arity: 1, Doc: "(eval expr) evaluates expr a second time in the caller's environment."},

		// I/O.
		{Name: "display", Fn: primDisplay, Arity: 1, Doc: "(display x) prints x's value and returns it unchanged."},
		{Name: "tap", Fn: primTap, Arity: UnboundedArity, Doc: "(tap x) or (tap label x) prints x (optionally prefixed by label) and returns it unchanged."},
	}

	primIndex = make(map[string]int, len(Primitives))
	for i, entry := range Primitives {
		primIndex[entry.Name] = i
	}
}

// boolVal converts a Go bool into the language's boolean convention:
// TrueVal (the atom #t, bound to itself in the global environment) or
// Nil, the sole falsy value.
func boolVal(b bool) *LVal {
	if b {
		return TrueVal
	}
	return Nil
}

// --- arithmetic ---

func primAdd(ctx *Context, args, env *LVal) (*LVal, *LVal, *LVal) {
	sum := 0.0
	for a := args; a.Type == LCons; a = a.Cdr {
		n, err := checkNumber(ctx, a.Car)
		if err != nil {
			return err, nil, nil
		}
		sum += n
	}
	return NewNumber(ctx.Scratch, sum), nil, nil
}

func primSub(ctx *Context, args, env *LVal) (*LVal, *LVal, *LVal) {
	vals := ListToSlice(args)
	if len(vals) == 0 {
		return ErrArityAtLeast(ctx.Scratch, 1, 0), nil, nil
	}
	first, err := checkNumber(ctx, vals[0])
	if err != nil {
		return err, nil, nil
	}
	if len(vals) == 1 {
		return NewNumber(ctx.Scratch, -first), nil, nil
	}
	for _, v := range vals[1:] {
		n, err := checkNumber(ctx, v)
		if err != nil {
			return err, nil, nil
		}
		first -= n
	}
	return NewNumber(ctx.Scratch, first), nil, nil
}

func primMul(ctx *Context, args, env *LVal) (*LVal, *LVal, *LVal) {
	product := 1.0
	for a := args; a.Type == LCons; a = a.Cdr {
		n, err := checkNumber(ctx, a.Car)
		if err != nil {
			return err, nil, nil
		}
		product *= n
	}
	return NewNumber(ctx.Scratch, product), nil, nil
}

func primDiv(ctx *Context, args, env *LVal) (*LVal, *LVal, *LVal) {
	vals := ListToSlice(args)
	if len(vals) == 0 {
		return ErrArityAtLeast(ctx.Scratch, 1, 0), nil, nil
	}
	first, err := checkNumber(ctx, vals[0])
	if err != nil {
		return err, nil, nil
	}
	if len(vals) == 1 {
		if first == 0 {
			return ErrDivByZero(ctx.Scratch), nil, nil
		}
		return NewNumber(ctx.Scratch, 1/first), nil, nil
	}
	for _, v := range vals[1:] {
		n, err := checkNumber(ctx, v)
		if err != nil {
			return err, nil, nil
		}
		if n == 0 {
			return ErrDivByZero(ctx.Scratch), nil, nil
		}
		first /= n
	}
	return NewNumber(ctx.Scratch, first), nil, nil
}

func primMod(ctx *Context, args, env *LVal) (*LVal, *LVal, *LVal) {
	a, err := checkNumber(ctx, args.Car)
	if err != nil {
		return err, nil, nil
	}
	b, err := checkNumber(ctx, args.Cdr.Car)
	if err != nil {
		return err, nil, nil
	}
	if b == 0 {
		return ErrDivByZero(ctx.Scratch), nil, nil
	}
	return NewNumber(ctx.Scratch, math.Mod(a, b)), nil, nil
}

// primInt truncates its argument toward zero, the same (long long)
// cast the comparable C primitive applies to a double.
func primInt(ctx *Context, args, env *LVal) (*LVal, *LVal, *LVal) {
	n, err := checkNumber(ctx, args.Car)
	if err != nil {
		return err, nil, nil
	}
	return NewNumber(ctx.Scratch, math.Trunc(n)), nil, nil
}

func checkNumber(ctx *Context, v *LVal) (float64, *LVal) {
	if v.Type != LNumber {
		return 0, ErrType(ctx.Scratch, "number", v)
	}
	return v.Num, nil
}

// --- comparison ---

// numCompare implements the two-argument numeric comparisons: <, >,
// <=, >=, and =. Each takes exactly two numbers and returns the
// true-atom or Nil; there is no chained n-ary form.
func numCompare(ctx *Context, args *LVal, cmp func(a, b float64) bool) (*LVal, *LVal, *LVal) {
	a, err := checkNumber(ctx, args.Car)
	if err != nil {
		return err, nil, nil
	}
	b, err := checkNumber(ctx, args.Cdr.Car)
	if err != nil {
		return err, nil, nil
	}
	return boolVal(cmp(a, b)), nil, nil
}

func primLt(ctx *Context, args, env *LVal) (*LVal, *LVal, *LVal) {
	return numCompare(ctx, args, func(a, b float64) bool { return a < b })
}
func primGt(ctx *Context, args, env *LVal) (*LVal, *LVal, *LVal) {
	return numCompare(ctx, args, func(a, b float64) bool { return a > b })
}
func primLe(ctx *Context, args, env *LVal) (*LVal, *LVal, *LVal) {
	return numCompare(ctx, args, func(a, b float64) bool { return a <= b })
}
func primGe(ctx *Context, args, env *LVal) (*LVal, *LVal, *LVal) {
	return numCompare(ctx, args, func(a, b float64) bool { return a >= b })
}
func primNumEq(ctx *Context, args, env *LVal) (*LVal, *LVal, *LVal) {
	return numCompare(ctx, args, func(a, b float64) bool { return a == b })
}

// --- equality and predicates ---

func primEqP(ctx *Context, args, env *LVal) (*LVal, *LVal, *LVal) {
	return boolVal(AreEqual(args.Car, args.Cdr.Car)), nil, nil
}

func primNot(ctx *Context, args, env *LVal) (*LVal, *LVal, *LVal) {
	return boolVal(!IsTruthy(args.Car)), nil, nil
}

func primPairP(ctx *Context, args, env *LVal) (*LVal, *LVal, *LVal) {
	return boolVal(args.Car.Type == LCons), nil, nil
}

func primListP(ctx *Context, args, env *LVal) (*LVal, *LVal, *LVal) {
	return boolVal(IsProperList(args.Car)), nil, nil
}

// primNumberP is variadic: it is true only if every argument is a
// number. With no arguments it is vacuously true.
func primNumberP(ctx *Context, args, env *LVal) (*LVal, *LVal, *LVal) {
	for a := args; a.Type == LCons; a = a.Cdr {
		if a.Car.Type != LNumber {
			return Nil, nil, nil
		}
	}
	return boolVal(true), nil, nil
}

// --- constructors ---

func primConsFn(ctx *Context, args, env *LVal) (*LVal, *LVal, *LVal) {
	return Cons(ctx.Scratch, args.Car, args.Cdr.Car), nil, nil
}

func primListFn(ctx *Context, args, env *LVal) (*LVal, *LVal, *LVal) {
	return args, nil, nil
}

func primCarFn(ctx *Context, args, env *LVal) (*LVal, *LVal, *LVal) {
	if args.Car.Type != LCons {
		return ErrType(ctx.Scratch, "cons", args.Car), nil, nil
	}
	return args.Car.Car, nil, nil
}

func primCdrFn(ctx *Context, args, env *LVal) (*LVal, *LVal, *LVal) {
	if args.Car.Type != LCons {
		return ErrType(ctx.Scratch, "cons", args.Car), nil, nil
	}
	return args.Car.Cdr, nil, nil
}

func primReverse(ctx *Context, args, env *LVal) (*LVal, *LVal, *LVal) {
	if !IsProperList(args.Car) {
		return ErrType(ctx.Scratch, "list", args.Car), nil, nil
	}
	elems := ListToSlice(args.Car)
	out := Nil
	for _, e := range elems {
		out = Cons(ctx.Scratch, e, out)
	}
	return out, nil, nil
}

func primLen(ctx *Context, args, env *LVal) (*LVal, *LVal, *LVal) {
	if !IsProperList(args.Car) {
		return ErrType(ctx.Scratch, "list", args.Car), nil, nil
	}
	return NewNumber(ctx.Scratch, float64(ListLength(args.Car))), nil, nil
}

// --- higher-order ---

func primMapcar(ctx *Context, args, env *LVal) (*LVal, *LVal, *LVal) {
	fun := args.Car
	list := args.Cdr.Car
	if !IsProperList(list) {
		return ErrType(ctx.Scratch, "list", list), nil, nil
	}
	var out []*LVal
	for e := list; e.Type == LCons; e = e.Cdr {
		v := applyValue(ctx, fun, Cons(ctx.Scratch, e.Car, Nil))
		if IsError(v) {
			return v, nil, nil
		}
		out = append(out, v)
	}
	return SliceToList(ctx.Scratch, out), nil, nil
}

func primFilter(ctx *Context, args, env *LVal) (*LVal, *LVal, *LVal) {
	fun := args.Car
	list := args.Cdr.Car
	if !IsProperList(list) {
		return ErrType(ctx.Scratch, "list", list), nil, nil
	}
	var out []*LVal
	for e := list; e.Type == LCons; e = e.Cdr {
		v := applyValue(ctx, fun, Cons(ctx.Scratch, e.Car, Nil))
		if IsError(v) {
			return v, nil, nil
		}
		if IsTruthy(v) {
			out = append(out, e.Car)
		}
	}
	return SliceToList(ctx.Scratch, out), nil, nil
}

// primReduce implements both the 2-arg form (fun list), which uses the
// list's head as the seed and folds over its remaining elements, and
// the 3-arg form (fun seed list), which takes an explicit seed and
// folds over every element.
func primReduce(ctx *Context, args, env *LVal) (*LVal, *LVal, *LVal) {
	vals := ListToSlice(args)
	var fun, acc, list *LVal
	switch len(vals) {
	case 2:
		fun, list = vals[0], vals[1]
		if list.Type != LCons {
			return ErrType(ctx.Scratch, "non-empty list", list), nil, nil
		}
		acc, list = list.Car, list.Cdr
	case 3:
		fun, acc, list = vals[0], vals[1], vals[2]
	default:
		return ErrArity(ctx.Scratch, 3, len(vals)), nil, nil
	}
	if !IsProperList(list) {
		return ErrType(ctx.Scratch, "list", list), nil, nil
	}
	for e := list; e.Type == LCons; e = e.Cdr {
		acc = applyValue(ctx, fun, Cons(ctx.Scratch, acc, Cons(ctx.Scratch, e.Car, Nil)))
		if IsError(acc) {
			return acc, nil, nil
		}
	}
	return acc, nil, nil
}

// --- meta ---

func primApply(ctx *Context, args, env *LVal) (*LVal, *LVal, *LVal) {
	fun := args.Car
	callArgs := args.Cdr.Car
	if !IsProperList(callArgs) {
		return ErrType(ctx.Scratch, "list", callArgs), nil, nil
	}
	return applyValue(ctx, fun, callArgs), nil, nil
}

// primEval evaluates its (already-evaluated, since eval is a strict
// primitive) argument a second time, in the caller's lexical
// environment. This double evaluation is the documented behavior for
// "(eval <expr>)", including the less obvious case where the argument
// is itself already a structured form.
func primEval(ctx *Context, args, env *LVal) (*LVal, *LVal, *LVal) {
	return Eval(ctx, args.Car, env), nil, nil
}

// applyValue applies fun (an already-evaluated Closure or strict
// Primitive) to an already-evaluated argument list, the same dispatch
// Eval performs for a Cons application, but via an ordinary recursive
// call rather than the trampoline — acceptable here since callers
// (apply, mapcar, filter, reduce) make one Apply per element rather than
// chaining unboundedly deep tail calls.
func applyValue(ctx *Context, fun, args *LVal) *LVal {
	switch fun.Type {
	case LClosure:
		n := ListLength(args)
		ok, want, atLeast := closureArity(fun, n)
		if !ok {
			if atLeast {
				return ErrArityAtLeast(ctx.Scratch, want, n)
			}
			return ErrArity(ctx.Scratch, want, n)
		}
		newEnv := Bind(ctx.Scratch, fun.Params, args, fun.Env)
		return Eval(ctx, fun.Body, newEnv)
	case LPrimitive:
		entry := Primitives[fun.Prim]
		if entry.SpecialForm {
			return NewError(ctx.Scratch, "cannot apply special form: %s", entry.Name)
		}
		n := ListLength(args)
		if entry.Arity != UnboundedArity && n != entry.Arity {
			return ErrArity(ctx.Scratch, entry.Arity, n)
		}
		result, _, _ := entry.Fn(ctx, args, Nil)
		return result
	default:
		return ErrNotApplicable(ctx.Scratch, fun)
	}
}

// --- I/O ---

func primDisplay(ctx *Context, args, env *LVal) (*LVal, *LVal, *LVal) {
	fmt.Fprint(ctx.Runtime.Stdout, args.Car.String())
	return args.Car, nil, nil
}

// primTap prints an optional label followed by its argument's printed
// form, then returns the argument unchanged — a spy point that can be
// dropped into any expression position without altering the value it
// wraps. (tap v) prints just v; (tap "label" v) prints "label: v".
func primTap(ctx *Context, args, env *LVal) (*LVal, *LVal, *LVal) {
	vals := ListToSlice(args)
	switch len(vals) {
	case 1:
		fmt.Fprintln(ctx.Runtime.Stdout, vals[0].String())
		return vals[0], nil, nil
	case 2:
		label := vals[0].String()
		if vals[0].Type == LString {
			label = vals[0].Str
		}
		fmt.Fprintf(ctx.Runtime.Stdout, "%s: %s\n", label, vals[1].String())
		return vals[1], nil, nil
	default:
		return ErrArityAtLeast(ctx.Scratch, 1, len(vals)), nil, nil
	}
}
