// Copyright © 2018 The ELPS authors

package lisp

// This file implements toylisp's special forms: each
// receives its operand list unevaluated and decides for itself which
// operands (if any) to evaluate. A special form that wants its last
// evaluation to happen in tail position — so a recursive call through
// it doesn't grow the Go stack — returns a non-nil tailExpr (and,
// when the environment also changes, a non-nil tailEnv) instead of a
// result; Eval's outer loop continues from there. if, cond's matching
// clause, and let*'s final body form all do this.

func primQuote(ctx *Context, args, env *LVal) (*LVal, *LVal, *LVal) {
	return args.Car, nil, nil
}

func primBackquote(ctx *Context, args, env *LVal) (*LVal, *LVal, *LVal) {
	result, _ := backquoteExpand(ctx, args.Car, env)
	return result, nil, nil
}

// backquoteExpand walks a quasiquote template, evaluating any (comma
// expr) node it finds and splicing in the result, and reports whether
// any substitution occurred. When nothing changed the template itself
// is returned unrebuilt, a cheap-sharing property that avoids copying
// static quasiquote structure.
func backquoteExpand(ctx *Context, tmpl, env *LVal) (*LVal, bool) {
	if tmpl.Type != LCons {
		return tmpl, false
	}
	if tmpl.Car.Type == LAtom && tmpl.Car.Str == "comma" && tmpl.Cdr.Type == LCons && IsNil(tmpl.Cdr.Cdr) {
		return Eval(ctx, tmpl.Cdr.Car, env), true
	}
	car, carChanged := backquoteExpand(ctx, tmpl.Car, env)
	cdr, cdrChanged := backquoteExpand(ctx, tmpl.Cdr, env)
	if !carChanged && !cdrChanged {
		return tmpl, false
	}
	return Cons(ctx.Scratch, car, cdr), true
}

func primIf(ctx *Context, args, env *LVal) (*LVal, *LVal, *LVal) {
	cond := Eval(ctx, args.Car, env)
	if IsError(cond) {
		return cond, nil, nil
	}
	thenExpr := args.Cdr.Car
	elseExpr := args.Cdr.Cdr.Car
	if IsTruthy(cond) {
		return nil, thenExpr, env
	}
	return nil, elseExpr, env
}

// primCond walks (test body...) clauses in order. The first clause
// whose test is truthy has every body form but its last evaluated
// normally, with the last handed back as a tail expression. A clause
// whose test atom is the atom "else" always matches. cond with no
// matching clause evaluates to Nil.
func primCond(ctx *Context, args, env *LVal) (*LVal, *LVal, *LVal) {
	for c := args; c.Type == LCons; c = c.Cdr {
		clause := c.Car
		test := clause.Car
		matched := test.Type == LAtom && test.Str == "else"
		if !matched {
			v := Eval(ctx, test, env)
			if IsError(v) {
				return v, nil, nil
			}
			matched = IsTruthy(v)
		}
		if !matched {
			continue
		}
		body := clause.Cdr
		if IsNil(body) {
			return Nil, nil, nil
		}
		for body.Cdr.Type == LCons {
			v := Eval(ctx, body.Car, env)
			if IsError(v) {
				return v, nil, nil
			}
			body = body.Cdr
		}
		return nil, body.Car, env
	}
	return Nil, nil, nil
}

// primAnd evaluates its operands left to right, short-circuiting at the
// first falsy value (returning it) and otherwise returning the last
// value evaluated. and with no operands is truthy (#t).
func primAnd(ctx *Context, args, env *LVal) (*LVal, *LVal, *LVal) {
	result := TrueVal
	for a := args; a.Type == LCons; a = a.Cdr {
		result = Eval(ctx, a.Car, env)
		if IsError(result) || !IsTruthy(result) {
			return result, nil, nil
		}
	}
	return result, nil, nil
}

// primOr evaluates its operands left to right, short-circuiting at the
// first truthy value (returning it). or with no operands is Nil.
func primOr(ctx *Context, args, env *LVal) (*LVal, *LVal, *LVal) {
	result := Nil
	for a := args; a.Type == LCons; a = a.Cdr {
		result = Eval(ctx, a.Car, env)
		if IsError(result) {
			return result, nil, nil
		}
		if IsTruthy(result) {
			return result, nil, nil
		}
	}
	return result, nil, nil
}

func primLambda(ctx *Context, args, env *LVal) (*LVal, *LVal, *LVal) {
	params := args.Car
	body := args.Cdr.Car
	return NewClosure(ctx.Scratch, params, body, env), nil, nil
}

func primMacro(ctx *Context, args, env *LVal) (*LVal, *LVal, *LVal) {
	params := args.Car
	body := args.Cdr.Car
	return NewMacro(ctx.Scratch, params, body, env), nil, nil
}

// primDefine binds name to the result of evaluating expr, copying the
// value into the permanent arena and prepending it to the single
// process-wide global environment. A
// Closure or Macro bound this way has its captured environment rewired
// to point at the updated global environment, so a recursive definition
// sees its own binding and every later top-level definition sees all
// earlier ones.
func primDefine(ctx *Context, args, env *LVal) (*LVal, *LVal, *LVal) {
	if args.Car.Type != LAtom {
		return ErrType(ctx.Scratch, "atom", args.Car), nil, nil
	}
	name := args.Car.Str
	valExpr := args.Cdr.Car

	frame := FindFrame(name, ctx.Runtime.GlobalEnv)
	if frame.Type == LCons && frame.Cdr.Type != LUndefined {
		return ErrRedefinition(ctx.Scratch, name), nil, nil
	}

	val := Eval(ctx, valExpr, env)
	if IsError(val) {
		return val, nil, nil
	}
	permVal := CopyTo(ctx.Perm, val)

	if frame.Type == LCons {
		frame.Cdr = permVal
	} else {
		ctx.Runtime.GlobalEnv = Extend(ctx.Perm, name, permVal, ctx.Runtime.GlobalEnv)
	}
	if permVal.Type == LClosure || permVal.Type == LMacro {
		permVal.Env = ctx.Runtime.GlobalEnv
	}
	return NewAtom(ctx.Scratch, name), nil, nil
}

// primSetBang mutates an existing global binding in place. expr is
// evaluated in the caller's lexical environment (so it may reference
// local variables) but the target frame searched and mutated is always
// global_env, matching the invariant that global_env is changed only by
// define, set!, and undefine!.
func primSetBang(ctx *Context, args, env *LVal) (*LVal, *LVal, *LVal) {
	if args.Car.Type != LAtom {
		return ErrType(ctx.Scratch, "atom", args.Car), nil, nil
	}
	name := args.Car.Str
	frame := FindFrame(name, ctx.Runtime.GlobalEnv)
	if frame.Type != LCons {
		return ErrUnbound(ctx.Scratch, name), nil, nil
	}
	val := Eval(ctx, args.Cdr.Car, env)
	if IsError(val) {
		return val, nil, nil
	}
	permVal := CopyTo(ctx.Perm, val)
	if permVal.Type == LClosure || permVal.Type == LMacro {
		permVal.Env = ctx.Runtime.GlobalEnv
	}
	frame.Cdr = permVal
	return permVal, nil, nil
}

// primUndefineBang marks an existing global binding as undefined, so
// later lookups of name fail until a subsequent define revives it. It
// is a no-op if name has no existing frame.
func primUndefineBang(ctx *Context, args, env *LVal) (*LVal, *LVal, *LVal) {
	if args.Car.Type != LAtom {
		return ErrType(ctx.Scratch, "atom", args.Car), nil, nil
	}
	frame := FindFrame(args.Car.Str, ctx.Runtime.GlobalEnv)
	if frame.Type == LCons {
		frame.Cdr = UndefinedVal
	}
	return Nil, nil, nil
}

// primLetStar evaluates a sequence of (name expr) bindings left to
// right, each in an environment that already includes every earlier
// binding, then evaluates its body forms in that final environment with
// the last handed back as a tail expression.
//
// Each binding is installed through a placeholder frame that is
// extended into env before its value expression is evaluated, and then
// mutated in place once the value is known. This is a mutable-binding-
// cell pattern for self-reference: a binding whose value expression is
// itself a lambda captures this very
// frame by reference, so a self-recursive local function works without
// any special lambda detection.
func primLetStar(ctx *Context, args, env *LVal) (*LVal, *LVal, *LVal) {
	if args.Type != LCons {
		return ErrArityAtLeast(ctx.Scratch, 1, 0), nil, nil
	}
	bindings := args.Car
	body := args.Cdr
	letEnv := env
	for b := bindings; b.Type == LCons; b = b.Cdr {
		pair := b.Car
		if pair.Car.Type != LAtom {
			return ErrType(ctx.Scratch, "atom", pair.Car), nil, nil
		}
		frame := Cons(ctx.Scratch, pair.Car, Nil)
		letEnv = Cons(ctx.Scratch, frame, letEnv)
		val := Eval(ctx, pair.Cdr.Car, letEnv)
		if IsError(val) {
			return val, nil, nil
		}
		frame.Cdr = val
	}
	if IsNil(body) {
		return Nil, nil, nil
	}
	for body.Cdr.Type == LCons {
		v := Eval(ctx, body.Car, letEnv)
		if IsError(v) {
			return v, nil, nil
		}
		body = body.Cdr
	}
	return nil, body.Car, letEnv
}
