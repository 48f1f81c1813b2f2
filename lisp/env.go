// Copyright © 2018 The ELPS authors

package lisp

// An environment is a Cons-chain of frames, each frame itself a
// Cons(variable-atom, bound-value), terminated by Nil. This is the same
// list structure used for ordinary data: no separate environment type
// exists, so extending an environment is just prepending a Cons cell.

// Lookup walks env from head to tail looking for a frame whose variable
// atom matches name. It returns the bound value, or an LError if name is
// unbound or bound to UndefinedVal.
func Lookup(a Allocator, name string, env *LVal) *LVal {
	for e := env; e.Type == LCons; e = e.Cdr {
		frame := e.Car
		if frame.Car.Str == name {
			if frame.Cdr.Type == LUndefined {
				return NewError(a, "undefined variable: %s", name)
			}
			return frame.Cdr
		}
	}
	return NewError(a, "undefined variable: %s", name)
}

// FindFrame walks env looking for a frame bound to name and returns the
// frame Cons cell itself (so its Cdr can be mutated in place), or Nil if
// no such frame exists.
func FindFrame(name string, env *LVal) *LVal {
	for e := env; e.Type == LCons; e = e.Cdr {
		frame := e.Car
		if frame.Car.Str == name {
			return frame
		}
	}
	return Nil
}

// Extend prepends a new frame binding the atom named name to val, never
// mutating env's own tail. The new frame and its Cons cell are allocated
// in a.
func Extend(a Allocator, name string, val *LVal, env *LVal) *LVal {
	frame := Cons(a, NewAtom(a, name), val)
	return Cons(a, frame, env)
}

// Bind performs the recursive parallel descent of formal parameters over
// actual arguments described in toylisp's component C: params and args
// are walked in lockstep, prepending one frame per pair. If params
// terminates in a non-Nil atom (the dotted rest-list convention), that
// atom is bound to the remaining args tail. Bind does not itself enforce
// arity; callers (the evaluator) check that beforehand.
func Bind(a Allocator, params, args *LVal, env *LVal) *LVal {
	for params.Type == LCons {
		env = Extend(a, params.Car.Str, args.Car, env)
		params = params.Cdr
		args = args.Cdr
	}
	if params.Type == LAtom {
		env = Extend(a, params.Str, args, env)
	}
	return env
}
