// Copyright © 2018 The ELPS authors

package lisp

// CopyTo recursively reconstructs v in dest, implementing the
// cross-arena deep copy: the tag-only singletons Nil and Undefined are
// returned verbatim, Number and Primitive are re-allocated in dest with
// the same payload (the source cell may live in an arena that is about
// to be reset), Atom/String/Error duplicate their text into dest,
// Cons recursively copies car and cdr, and Closure/Macro copy Params and
// Body but share Env by reference — the environment is typically the
// permanent global environment and must never be copied, or a closure
// would stop seeing later global definitions.
//
// define and set! are the only callers: every value they bind into the
// global environment must already be inside the permanent arena before
// the next scratch reset, per the arena discipline invariant.
func CopyTo(dest Allocator, v *LVal) *LVal {
	switch v.Type {
	case LNil, LUndefined:
		return v
	case LNumber:
		return NewNumber(dest, v.Num)
	case LPrimitive:
		return NewPrimitive(dest, v.Prim)
	case LAtom:
		return NewAtom(dest, v.Str)
	case LString:
		return NewString(dest, v.Str)
	case LError:
		out := dest.Alloc()
		out.Type = LError
		out.Str = v.Str
		return out
	case LCons:
		return Cons(dest, CopyTo(dest, v.Car), CopyTo(dest, v.Cdr))
	case LClosure:
		return NewClosure(dest, CopyTo(dest, v.Params), CopyTo(dest, v.Body), v.Env)
	case LMacro:
		return NewMacro(dest, CopyTo(dest, v.Params), CopyTo(dest, v.Body), v.Env)
	default:
		return v
	}
}
