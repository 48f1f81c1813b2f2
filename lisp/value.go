// Copyright © 2018 The ELPS authors

// Package lisp implements the value representation, environment model,
// evaluator, and two-arena memory discipline of the toylisp interpreter.
package lisp

import "fmt"

// Allocator is satisfied by *arena.Arena[LVal]. Every value constructor
// takes an Allocator so call sites make the arena choice explicit, per
// the context-plumbing discipline in toylisp's design: scratch for
// evaluation-local values, permanent for anything define/set! will make
// reachable from the global environment.
type Allocator interface {
	Alloc() *LVal
}

// LType is the tag of an LVal.
type LType uint

// Possible LVal.Type values.
const (
	// LInvalid (0) is not a valid value type.
	LInvalid LType = iota
	// LNil is the empty list and the interpreter's sole falsy value.
	LNil
	// LNumber values store a float64 in LVal.Num. Number is the only
	// numeric type; integer operations truncate via explicit coercion.
	LNumber
	// LAtom values store the symbol's name in LVal.Str. Atom identity is
	// by name equality, not address.
	LAtom
	// LString values store the character data in LVal.Str.
	LString
	// LPrimitive values store an index into the primitives table in
	// LVal.Prim. The table entry determines whether the primitive is a
	// special form (receives unevaluated arguments) or a strict
	// primitive.
	LPrimitive
	// LCons values use LVal.Car and LVal.Cdr. Lists are right-nested
	// chains of Cons cells terminated by Nil. Cons identity is by
	// address.
	LCons
	// LClosure values use LVal.Params (formal argument list, or a bare
	// LAtom for a variadic function), LVal.Body (the body expression),
	// and LVal.Env (the captured environment). Identity is by address.
	LClosure
	// LMacro values have the same shape as LClosure but their arguments
	// are passed unevaluated and their result is re-evaluated at the
	// call site.
	LMacro
	// LError values store a human readable message in LVal.Str. Errors
	// are never stored in bindings; they propagate until a driver loop
	// prints them.
	LError
	// LUndefined is the sentinel left behind by undefine!. Looking up a
	// variable bound to LUndefined produces an "undefined variable"
	// error.
	LUndefined
	// LTypeMax is not a real type. It is one greater than the largest
	// valid LType and can be used to size lookup tables.
	LTypeMax
)

var lvalTypeNames = [LTypeMax]string{
	LInvalid:   "invalid",
	LNil:       "nil",
	LNumber:    "number",
	LAtom:      "atom",
	LString:    "string",
	LPrimitive: "primitive",
	LCons:      "cons",
	LClosure:   "closure",
	LMacro:     "macro",
	LError:     "error",
	LUndefined: "undefined",
}

// String returns the type's name, as used in type-error messages.
func (t LType) String() string {
	if t >= LTypeMax {
		return lvalTypeNames[LInvalid]
	}
	return lvalTypeNames[t]
}

// LVal is the tagged union of every runtime value kind. Its zero value is
// an LInvalid value; use the constructors in this file to build values of
// a particular type into a chosen arena.
type LVal struct {
	Type LType

	Num  float64 // LNumber
	Str  string  // LAtom, LString, LError
	Prim int     // LPrimitive: index into the primitives table

	Car, Cdr *LVal // LCons

	Params *LVal // LClosure, LMacro: formal parameter list (or bare LAtom)
	Body   *LVal // LClosure, LMacro: body expression
	Env    *LVal // LClosure, LMacro: captured environment (never copied)
}

// Nil is the single tag-only sentinel for the empty list, shared across
// both arenas since it carries no payload and requires no address
// identity of its own (see toylisp's bootstrap: "initialize NIL_VALUE
// (tag-only)").
var Nil = &LVal{Type: LNil}

// UndefinedVal is the single tag-only sentinel written into a frame by
// undefine!.
var UndefinedVal = &LVal{Type: LUndefined}

// NewNumber allocates a number in a.
func NewNumber(a Allocator, n float64) *LVal {
	v := a.Alloc()
	v.Type = LNumber
	v.Num = n
	return v
}

// NewAtom allocates an atom named name in a. The name is duplicated (a
// fresh LVal, with its own copy of the Go string header) so that the
// atom's lifetime is tied only to a, matching the "make_atom duplicates
// the input text into the target arena" contract; Go's immutable strings
// make the duplication itself unobservable, but the LVal carrying it is
// still a fresh arena-owned cell.
func NewAtom(a Allocator, name string) *LVal {
	v := a.Alloc()
	v.Type = LAtom
	v.Str = name
	return v
}

// NewString allocates a string in a.
func NewString(a Allocator, s string) *LVal {
	v := a.Alloc()
	v.Type = LString
	v.Str = s
	return v
}

// maxErrorMessage bounds the length of a formatted error message, as in
// the C original's bounded message buffer.
const maxErrorMessage = 256

// NewError formats msg with args and allocates the result as an LError in
// a, truncating to maxErrorMessage characters.
func NewError(a Allocator, format string, args ...any) *LVal {
	msg := fmt.Sprintf(format, args...)
	if len(msg) > maxErrorMessage {
		msg = msg[:maxErrorMessage]
	}
	v := a.Alloc()
	v.Type = LError
	v.Str = msg
	return v
}

// NewPrimitive allocates a reference to the primitive at index idx.
func NewPrimitive(a Allocator, idx int) *LVal {
	v := a.Alloc()
	v.Type = LPrimitive
	v.Prim = idx
	return v
}

// Cons allocates a new pair (car . cdr) in a.
func Cons(a Allocator, car, cdr *LVal) *LVal {
	v := a.Alloc()
	v.Type = LCons
	v.Car = car
	v.Cdr = cdr
	return v
}

// NewClosure allocates a closure capturing env in a.
func NewClosure(a Allocator, params, body, env *LVal) *LVal {
	v := a.Alloc()
	v.Type = LClosure
	v.Params = params
	v.Body = body
	v.Env = env
	return v
}

// NewMacro allocates a macro capturing env in a.
func NewMacro(a Allocator, params, body, env *LVal) *LVal {
	v := a.Alloc()
	v.Type = LMacro
	v.Params = params
	v.Body = body
	v.Env = env
	return v
}

// IsNil reports whether v is the empty list.
func IsNil(v *LVal) bool {
	return v == nil || v.Type == LNil
}

// IsTruthy reports whether v counts as true in a boolean context: every
// value except Nil is truthy, including the number 0 and the empty
// string.
func IsTruthy(v *LVal) bool {
	return !IsNil(v)
}

// IsError reports whether v is a propagating error value.
func IsError(v *LVal) bool {
	return v != nil && v.Type == LError
}

// AreEqual implements eq? / are_equal: numbers compare by value,
// strings/atoms/error-messages by content, pairs/closures/macros by
// address, primitives by table index, Nil and Undefined trivially equal
// to their own kind.
func AreEqual(a, b *LVal) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Type != b.Type {
		return false
	}
	switch a.Type {
	case LNil, LUndefined:
		return true
	case LNumber:
		return a.Num == b.Num
	case LAtom, LString, LError:
		return a.Str == b.Str
	case LPrimitive:
		return a.Prim == b.Prim
	case LCons, LClosure, LMacro:
		return a == b
	default:
		return a == b
	}
}

// IsProperList reports whether v is a chain of Cons cells terminating in
// Nil. It uses a tortoise-and-hare walk so that a cyclic list is detected
// in bounded time rather than looping forever.
func IsProperList(v *LVal) bool {
	slow, fast := v, v
	for {
		if IsNil(fast) {
			return true
		}
		if fast.Type != LCons {
			return false
		}
		fast = fast.Cdr
		if IsNil(fast) {
			return true
		}
		if fast.Type != LCons {
			return false
		}
		fast = fast.Cdr
		slow = slow.Cdr
		if fast == slow {
			return false
		}
	}
}
