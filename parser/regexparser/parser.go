// Copyright © 2018 The ELPS authors

// Package regexparser is an alternate reader backend built on
// goparsec's regex-token combinators, offered alongside the
// hand-written recursive-descent reader in package parser. It accepts a
// narrower grammar than that reader: no dotted-pair list syntax (which
// goparsec's flat And/Kleene combinators make awkward to express
// without a lookahead combinator the vendored version of the library
// doesn't have), no ';' comments, numbers only in the NUMBER form shown
// below, and string escapes limited to \" and \\. The token-length and
// list-length caps of package parser are not enforced.
package regexparser

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/giorgioyu125/toylisp/lisp"
	parsec "github.com/prataprc/goparsec"
)

// ReadAll parses every top-level form in r, allocating every LVal it
// builds into ctx's scratch arena, the same allocation contract
// package parser's Reader follows.
func ReadAll(ctx *lisp.Context, name string, r io.Reader) ([]*lisp.LVal, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	s := parsec.NewScanner(b).TrackLineno()
	expr := newExprParser(ctx)

	var forms []*lisp.LVal
	for {
		_, s = s.SkipWS()
		if s.Endof() {
			return forms, nil
		}
		node, rest := expr(s)
		if node == nil {
			return forms, fmt.Errorf("%s:%d: syntax error", name, s.Lineno())
		}
		if err, ok := node.(error); ok {
			return forms, fmt.Errorf("%s:%d: %w", name, s.Lineno(), err)
		}
		v, ok := node.(*lisp.LVal)
		if !ok {
			return forms, fmt.Errorf("%s:%d: unexpected parse result %T", name, s.Lineno(), node)
		}
		forms = append(forms, v)
		s = rest
	}
}

// newExprParser builds the grammar:
//
//	expr   := <number> | <string> | <symbol> | <wrapped> | <list>
//	wrapped := ('\'' | '`' | ',') expr
//	list   := '(' expr* ')'
//	number := /[+-]?[0-9]+(\.[0-9]+)?([eE][+-]?[0-9]+)?/
//	string := /"(?:[^"\\]|\\.)*"/
//	symbol := /[^\s()'`,]+/
func newExprParser(ctx *lisp.Context) parsec.Parser {
	openP := parsec.Atom("(", "OPENP")
	closeP := parsec.Atom(")", "CLOSEP")
	quote := parsec.Atom("'", "QUOTE")
	backquote := parsec.Atom("`", "BACKQUOTE")
	comma := parsec.Atom(",", "COMMA")

	number := parsec.Token(`[+-]?[0-9]+(\.[0-9]+)?([eE][+-]?[0-9]+)?`, "NUMBER")
	str := parsec.Token(`"(?:[^"\\]|\\.)*"`, "STRING")
	symbol := parsec.Token(`[^\s()'`+"`"+`,]+`, "SYMBOL")

	term := parsec.OrdChoice(astTerm(ctx), number, str, symbol)

	var expr parsec.Parser
	quoted := parsec.And(astWrapped(ctx, "quote"), quote, &expr)
	backquoted := parsec.And(astWrapped(ctx, "backquote"), backquote, &expr)
	unquoted := parsec.And(astWrapped(ctx, "comma"), comma, &expr)

	list := parsec.And(astList(ctx), openP, parsec.Kleene(nil, &expr), closeP)

	expr = parsec.OrdChoice(nil, term, quoted, backquoted, unquoted, list)
	return expr
}

// astTerm converts the single matched terminal of the term alternative
// into the LVal it denotes.
func astTerm(ctx *lisp.Context) parsec.Nodify {
	return func(nodes []parsec.ParsecNode) parsec.ParsecNode {
		if len(nodes) == 0 {
			return fmt.Errorf("empty term")
		}
		term, ok := nodes[0].(*parsec.Terminal)
		if !ok {
			return nodes[0]
		}
		switch term.Name {
		case "NUMBER":
			n, err := strconv.ParseFloat(term.Value, 64)
			if err != nil {
				return fmt.Errorf("malformed number %q: %w", term.Value, err)
			}
			return lisp.NewNumber(ctx.Scratch, n)
		case "STRING":
			return lisp.NewString(ctx.Scratch, unquote(term.Value))
		case "SYMBOL":
			return lisp.NewAtom(ctx.Scratch, term.Value)
		default:
			return fmt.Errorf("unexpected token %s", term.Name)
		}
	}
}

// astWrapped builds the (name expr) desugaring for 'x, `x, and ,x,
// the same desugaring package parser's readWrapped performs. The And
// combinator's node list carries the marker terminal alongside the
// nested expr's result; only the *lisp.LVal is kept.
func astWrapped(ctx *lisp.Context, name string) parsec.Nodify {
	return func(nodes []parsec.ParsecNode) parsec.ParsecNode {
		for _, n := range nodes {
			switch v := n.(type) {
			case error:
				return v
			case *lisp.LVal:
				return lisp.Cons(ctx.Scratch, lisp.NewAtom(ctx.Scratch, name),
					lisp.Cons(ctx.Scratch, v, lisp.Nil))
			}
		}
		return fmt.Errorf("malformed %s expression", name)
	}
}

// astList builds a proper list from every *lisp.LVal in nodes,
// discarding the OPENP/CLOSEP terminals by type-switching on each
// node rather than relying on their positional index.
func astList(ctx *lisp.Context) parsec.Nodify {
	return func(nodes []parsec.ParsecNode) parsec.ParsecNode {
		var elems []*lisp.LVal
		for _, n := range nodes {
			switch v := n.(type) {
			case error:
				return v
			case *lisp.LVal:
				elems = append(elems, v)
			}
		}
		return lisp.SliceToList(ctx.Scratch, elems)
	}
}

// unquote strips the surrounding double quotes goparsec's Token regex
// keeps in the matched text and unescapes \" and \\.
func unquote(s string) string {
	if len(s) >= 2 {
		s = s[1 : len(s)-1]
	}
	s = strings.ReplaceAll(s, `\"`, `"`)
	s = strings.ReplaceAll(s, `\\`, `\`)
	return s
}
