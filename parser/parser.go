// Copyright © 2018 The ELPS authors

// Package parser implements a recursive-descent reader: a Reader
// wrapping a token source, with one read method per grammar production.
package parser

import (
	"fmt"
	"io"

	"github.com/giorgioyu125/toylisp/lisp"
	"github.com/giorgioyu125/toylisp/parser/token"
)

// MaxListElements bounds the number of elements in one list literal.
// It is a parser-imposed limit, not a language limit.
const MaxListElements = 1024

// Reader reads successive top-level forms from a source, allocating
// every LVal it builds into ctx's scratch arena (Component G: the
// context is threaded through the reader the same way it's threaded
// through every primitive).
type Reader struct {
	ctx *lisp.Context
	sc  *token.Scanner
	cur *token.Token
}

// NewReader returns a Reader over r, named file for error messages.
func NewReader(ctx *lisp.Context, file string, r io.Reader) (*Reader, error) {
	sc, err := token.NewScanner(file, r)
	if err != nil {
		return nil, err
	}
	return &Reader{ctx: ctx, sc: sc}, nil
}

func (rd *Reader) advance() error {
	t, err := rd.sc.Next()
	if err != nil {
		return err
	}
	rd.cur = t
	return nil
}

// Next reads and returns the next top-level form. It returns io.EOF
// (wrapped in nothing special — compare with errors.Is) once the source
// is exhausted.
func (rd *Reader) Next() (*lisp.LVal, error) {
	if rd.cur == nil {
		if err := rd.advance(); err != nil {
			return nil, err
		}
	}
	if rd.cur.Type == token.EOF {
		return nil, io.EOF
	}
	return rd.readForm()
}

func (rd *Reader) readForm() (*lisp.LVal, error) {
	switch rd.cur.Type {
	case token.PAREN_L:
		return rd.readList()
	case token.QUOTE:
		return rd.readWrapped("quote")
	case token.BACKQUOTE:
		return rd.readWrapped("backquote")
	case token.COMMA:
		return rd.readWrapped("comma")
	case token.NUMBER:
		return rd.readNumber()
	case token.STRING:
		v := lisp.NewString(rd.ctx.Scratch, rd.cur.Text)
		return v, rd.advance()
	case token.SYMBOL:
		v := lisp.NewAtom(rd.ctx.Scratch, rd.cur.Text)
		return v, rd.advance()
	case token.PAREN_R:
		return nil, rd.errorf("unexpected )")
	case token.DOT:
		return nil, rd.errorf("unexpected . outside a list")
	case token.EOF:
		return nil, rd.errorf("unexpected end of input")
	default:
		return nil, rd.errorf("invalid token %q", rd.cur.Text)
	}
}

func (rd *Reader) readNumber() (*lisp.LVal, error) {
	var n float64
	if _, err := fmt.Sscanf(rd.cur.Text, "%g", &n); err != nil {
		return nil, rd.errorf("malformed number %q", rd.cur.Text)
	}
	if err := rd.advance(); err != nil {
		return nil, err
	}
	return lisp.NewNumber(rd.ctx.Scratch, n), nil
}

// readWrapped implements the reader macros 'x, `x, ,x — each desugars
// to (name x).
func (rd *Reader) readWrapped(name string) (*lisp.LVal, error) {
	if err := rd.advance(); err != nil {
		return nil, err
	}
	inner, err := rd.readForm()
	if err != nil {
		return nil, err
	}
	return lisp.Cons(rd.ctx.Scratch, lisp.NewAtom(rd.ctx.Scratch, name),
		lisp.Cons(rd.ctx.Scratch, inner, lisp.Nil)), nil
}

func (rd *Reader) readList() (*lisp.LVal, error) {
	if err := rd.advance(); err != nil { // consume '('
		return nil, err
	}
	var elems []*lisp.LVal
	for {
		switch rd.cur.Type {
		case token.PAREN_R:
			if err := rd.advance(); err != nil {
				return nil, err
			}
			return lisp.SliceToList(rd.ctx.Scratch, elems), nil
		case token.DOT:
			if err := rd.advance(); err != nil {
				return nil, err
			}
			tail, err := rd.readForm()
			if err != nil {
				return nil, err
			}
			if rd.cur.Type != token.PAREN_R {
				return nil, rd.errorf("expected ) after dotted tail")
			}
			if err := rd.advance(); err != nil {
				return nil, err
			}
			return buildList(rd.ctx, elems, tail), nil
		case token.EOF:
			return nil, rd.errorf("unexpected end of input inside list")
		default:
			if len(elems) >= MaxListElements {
				return nil, rd.errorf("list literal exceeds %d elements", MaxListElements)
			}
			form, err := rd.readForm()
			if err != nil {
				return nil, err
			}
			elems = append(elems, form)
		}
	}
}

func buildList(ctx *lisp.Context, elems []*lisp.LVal, tail *lisp.LVal) *lisp.LVal {
	list := tail
	for i := len(elems) - 1; i >= 0; i-- {
		list = lisp.Cons(ctx.Scratch, elems[i], list)
	}
	return list
}

func (rd *Reader) errorf(format string, args ...any) error {
	return &token.LocationError{Loc: rd.cur.Loc, Err: fmt.Errorf(format, args...)}
}
