// Copyright © 2018 The ELPS authors

package lisp

// TrueAtomName is the conventional true value: an atom bound to itself in
// the global environment, so predicates and comparisons have something
// truthy to return. Nil is the language's sole falsy value; everything
// else, including the number 0 and the empty string, is truthy.
const TrueAtomName = "#t"

// TrueVal is the singleton atom bound to itself in the global
// environment under TrueAtomName. Like Nil, it carries no payload
// beyond its name and needs no arena of its own.
var TrueVal = &LVal{Type: LAtom, Str: TrueAtomName}

// UnboundedArity marks a primitive as variadic: the evaluator skips the
// arity check it would otherwise perform against the primitive's
// Arity.
const UnboundedArity = -1
