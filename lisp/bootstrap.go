// Copyright © 2018 The ELPS authors

package lisp

// errorAtomName names the sentinel atom created during bootstrap. The
// atom is not bound in the global environment, and neither the printer
// nor the DAP server reads it.
const errorAtomName = "error"

// ErrorSentinel is the permanent-arena sentinel atom named "error"
// created during Bootstrap.
var ErrorSentinel *LVal

// Bootstrap initializes a fresh Context's global environment: it seeds
// the #t → #t binding and interns every entry of the primitives table
// as a frame {name → Primitive(index)}. Nil and
// TrueVal are already tag-only package singletons and need no
// allocation; ErrorSentinel is allocated once, in the permanent arena,
// the first time Bootstrap runs.
func Bootstrap(ctx *Context) {
	if ErrorSentinel == nil {
		ErrorSentinel = NewAtom(ctx.Perm, errorAtomName)
	}

	ctx.Runtime.GlobalEnv = Extend(ctx.Perm, TrueAtomName, TrueVal, ctx.Runtime.GlobalEnv)

	for i, entry := range Primitives {
		ctx.Runtime.GlobalEnv = Extend(ctx.Perm, entry.Name, NewPrimitive(ctx.Perm, i), ctx.Runtime.GlobalEnv)
	}
}
