// Copyright © 2018 The ELPS authors

package repl

import (
	"sort"
	"strings"

	"github.com/giorgioyu125/toylisp/lisp"
)

// symbolCompleter implements readline.AutoCompleter by enumerating the
// atom names bound in ctx's global environment, grounded on the
// teacher's symbolCompleter but walking a flat Cons-chain environment
// instead of a package registry.
type symbolCompleter struct {
	ctx *lisp.Context
}

func (c *symbolCompleter) Do(line []rune, pos int) ([][]rune, int) {
	start := pos
	for start > 0 {
		ch := line[start-1]
		if ch == ' ' || ch == '\t' || ch == '(' || ch == '\n' {
			break
		}
		start--
	}
	prefix := string(line[start:pos])
	if prefix == "" {
		return nil, 0
	}

	var candidates []string
	seen := make(map[string]bool)
	for e := c.ctx.Runtime.GlobalEnv; e.Type == lisp.LCons; e = e.Cdr {
		name := e.Car.Car.Str
		if strings.HasPrefix(name, prefix) && !seen[name] {
			seen[name] = true
			candidates = append(candidates, name)
		}
	}
	if len(candidates) == 0 {
		return nil, 0
	}
	sort.Strings(candidates)

	result := make([][]rune, 0, len(candidates))
	for _, sym := range candidates {
		result = append(result, []rune(sym[len(prefix):]))
	}
	return result, len(prefix)
}
