// Copyright © 2018 The ELPS authors

package lisp

// Eval is toylisp's recursive interpreter. Its outer
// loop is iterative over (expr, env) pairs so that a tail call from a
// Closure body, an if branch, the last body form of a matching cond
// clause, or the last body form of let* does not grow the Go call stack;
// every other recursive descent (evaluating a function-call head,
// evaluating arguments, evaluating a let* binding's value, evaluating a
// macro's own body to produce an expansion) uses an ordinary recursive
// Eval call.
//
// An atom not bound in env is looked up again in the current global
// environment, so a closure whose captured environment predates a later
// top-level define still sees that definition.
func Eval(ctx *Context, expr, env *LVal) *LVal {
	for {
		switch expr.Type {
		case LNil, LNumber, LString, LPrimitive, LClosure, LMacro, LError, LUndefined:
			return expr
		case LAtom:
			v := Lookup(ctx.Scratch, expr.Str, env)
			if IsError(v) && env != ctx.Runtime.GlobalEnv {
				v = Lookup(ctx.Scratch, expr.Str, ctx.Runtime.GlobalEnv)
			}
			return v
		case LCons:
			head := Eval(ctx, expr.Car, env)
			if IsError(head) {
				return head
			}
			args := expr.Cdr

			if d := ctx.Runtime.Debugger; d != nil && d.IsEnabled() {
				if d.OnEval(ctx, expr, env) {
					d.WaitIfPaused(ctx, expr, env)
				}
			}

			switch head.Type {
			case LMacro:
				macroEnv := Bind(ctx.Scratch, head.Params, args, head.Env)
				expansion := Eval(ctx, head.Body, macroEnv)
				if IsError(expansion) {
					return expansion
				}
				expr = expansion
				continue

			case LPrimitive:
				entry := Primitives[head.Prim]
				if entry.SpecialForm {
					if entry.Arity != UnboundedArity && ListLength(args) != entry.Arity {
						return ErrArity(ctx.Scratch, entry.Arity, ListLength(args))
					}
					result, tailExpr, tailEnv := entry.Fn(ctx, args, env)
					if tailExpr != nil {
						expr = tailExpr
						if tailEnv != nil {
							env = tailEnv
						}
						continue
					}
					return result
				}
				evaluated, errv := evalArgList(ctx, args, env)
				if errv != nil {
					return errv
				}
				n := ListLength(evaluated)
				if entry.Arity != UnboundedArity && n != entry.Arity {
					return ErrArity(ctx.Scratch, entry.Arity, n)
				}
				end := ctx.Runtime.tracer().StartCall(head)
				result, _, _ := entry.Fn(ctx, evaluated, env)
				end()
				return result

			case LClosure:
				evaluated, errv := evalArgList(ctx, args, env)
				if errv != nil {
					return errv
				}
				n := ListLength(evaluated)
				ok, want, atLeast := closureArity(head, n)
				if !ok {
					if atLeast {
						return ErrArityAtLeast(ctx.Scratch, want, n)
					}
					return ErrArity(ctx.Scratch, want, n)
				}
				end := ctx.Runtime.tracer().StartCall(head)
				newEnv := Bind(ctx.Scratch, head.Params, evaluated, head.Env)
				if d := ctx.Runtime.Debugger; d != nil && d.IsEnabled() {
					d.OnFunEntry(ctx, head, newEnv)
				}
				end()
				expr = head.Body
				env = newEnv
				continue

			default:
				return ErrNotApplicable(ctx.Scratch, head)
			}
		default:
			return NewError(ctx.Scratch, "cannot evaluate value of type %s", expr.Type)
		}
	}
}

// EvalTopLevel evaluates expr in the global environment as one
// top-level parse-eval-print cycle: the unit the driver (REPL or file
// mode) resets the scratch arena around and the unit Tracer/Debugger
// report against. Callers must print the result before the next
// ResetScratch, per the two-arena discipline invariant.
func (ctx *Context) EvalTopLevel(expr *LVal) *LVal {
	end := ctx.Runtime.tracer().StartCycle(expr.String())
	defer end()
	result := Eval(ctx, expr, ctx.Runtime.GlobalEnv)
	if d := ctx.Runtime.Debugger; d != nil && d.IsEnabled() {
		d.OnFunReturn(ctx, expr, result)
	}
	return result
}

// evalArgList evaluates each element of an unevaluated operand list in
// order, allocating the resulting list in the scratch arena. Evaluation
// stops at the first Error, which is returned as the second value.
func evalArgList(ctx *Context, args, env *LVal) (*LVal, *LVal) {
	if args.Type != LCons {
		return Nil, nil
	}
	var vals []*LVal
	for a := args; a.Type == LCons; a = a.Cdr {
		v := Eval(ctx, a.Car, env)
		if IsError(v) {
			return nil, v
		}
		vals = append(vals, v)
	}
	return SliceToList(ctx.Scratch, vals), nil
}

// closureArity reports whether a Closure's formal parameter list admits
// n actual arguments. A bare-atom parameter list is fully variadic and
// always admits any n. A parameter list that is a proper list requires
// exact equality. A parameter list that is an improper list (a chain of
// Cons cells ending in an atom rather than Nil) binds the trailing atom
// to the remaining arguments — the dotted rest-list convention — so it
// requires at least as many arguments as the Cons-cell prefix.
func closureArity(fun *LVal, n int) (ok bool, want int, atLeast bool) {
	tail := fun.Params
	if tail.Type == LAtom {
		return true, 0, true
	}
	count := 0
	for tail.Type == LCons {
		count++
		tail = tail.Cdr
	}
	if tail.Type == LAtom {
		return n >= count, count, true
	}
	return n == count, count, false
}
