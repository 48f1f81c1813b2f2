// Copyright © 2018 The ELPS authors

package lisp

import "github.com/giorgioyu125/toylisp/arena"

// Context is the pair of arena handles threaded through every allocation
// site: Perm backs the global environment and every value define/set!
// makes reachable from it, Scratch backs everything else. Go's garbage
// collector keeps a slab's backing memory alive for as long as a pointer
// into it is reachable, so a single stable *Context (rather than the C
// original's pointer-to-pointer-to-arena) is sufficient even though the
// arenas themselves grow by appending new slabs; see arena.Arena's
// package doc and toylisp's design notes on arena lifetimes in languages
// with stable allocator references.
type Context struct {
	Perm    *arena.Arena[LVal]
	Scratch *arena.Arena[LVal]

	// Runtime holds the process-wide state (global environment,
	// debugger/tracer hooks, output streams) that outlives any single
	// top-level evaluation cycle.
	Runtime *Runtime
}

// NewContext creates a Context with freshly initialized permanent and
// scratch arenas.
func NewContext() *Context {
	return &Context{
		Perm:    arena.New[LVal](arena.DefaultCapacity),
		Scratch: arena.New[LVal](arena.DefaultCapacity),
		Runtime: NewRuntime(),
	}
}

// ResetScratch bulk-frees the scratch arena. The driver calls this at the
// end of every top-level cycle (see the arena discipline invariant in
// toylisp's concurrency model): every value still reachable from
// Runtime.GlobalEnv must have already been deep-copied into Perm by
// define or set!, or it becomes invalid the instant this returns.
func (c *Context) ResetScratch() {
	c.Scratch.Reset()
}
