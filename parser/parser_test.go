// Copyright © 2018 The ELPS authors

package parser_test

import (
	"io"
	"strings"
	"testing"

	"github.com/giorgioyu125/toylisp/lisp"
	"github.com/giorgioyu125/toylisp/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseOne(t *testing.T, src string) *lisp.LVal {
	t.Helper()
	ctx := lisp.NewContext()
	rd, err := parser.NewReader(ctx, "test", strings.NewReader(src))
	require.NoError(t, err)
	form, err := rd.Next()
	require.NoError(t, err)
	return form
}

func TestParseAtomsNumbersStrings(t *testing.T) {
	assert.Equal(t, "foo", parseOne(t, "foo").String())
	assert.Equal(t, "3.5", parseOne(t, "3.5").String())
	assert.Equal(t, `"hi there"`, parseOne(t, `"hi there"`).String())
}

func TestParseList(t *testing.T) {
	assert.Equal(t, "(1 2 3)", parseOne(t, "(1 2 3)").String())
	assert.Equal(t, "()", parseOne(t, "()").String())
}

func TestParseDottedPair(t *testing.T) {
	assert.Equal(t, "(1 . 2)", parseOne(t, "(1 . 2)").String())
	assert.Equal(t, "(1 2 . 3)", parseOne(t, "(1 2 . 3)").String())
}

func TestParseReaderMacros(t *testing.T) {
	assert.Equal(t, "(quote x)", parseOne(t, "'x").String())
	assert.Equal(t, "(backquote x)", parseOne(t, "`x").String())
	assert.Equal(t, "(comma x)", parseOne(t, ",x").String())
}

func TestParseNestedList(t *testing.T) {
	assert.Equal(t, "(a (b c) d)", parseOne(t, "(a (b c) d)").String())
}

func TestParseStringEscapes(t *testing.T) {
	v := parseOne(t, `"a\nb\t\"c\""`)
	assert.Equal(t, "a\nb\t\"c\"", v.Str)
}

func TestParseUnclosedListErrors(t *testing.T) {
	ctx := lisp.NewContext()
	rd, err := parser.NewReader(ctx, "test", strings.NewReader("(1 2"))
	require.NoError(t, err)
	_, err = rd.Next()
	require.Error(t, err)
}

func TestParseUnexpectedCloseParenErrors(t *testing.T) {
	ctx := lisp.NewContext()
	rd, err := parser.NewReader(ctx, "test", strings.NewReader(")"))
	require.NoError(t, err)
	_, err = rd.Next()
	require.Error(t, err)
}

func TestParseEOFAtEndOfInput(t *testing.T) {
	ctx := lisp.NewContext()
	rd, err := parser.NewReader(ctx, "test", strings.NewReader("1 2"))
	require.NoError(t, err)
	_, err = rd.Next()
	require.NoError(t, err)
	_, err = rd.Next()
	require.NoError(t, err)
	_, err = rd.Next()
	assert.ErrorIs(t, err, io.EOF)
}

func TestParseListElementCapEnforced(t *testing.T) {
	var b strings.Builder
	b.WriteString("(")
	for i := 0; i < parser.MaxListElements+1; i++ {
		b.WriteString("1 ")
	}
	b.WriteString(")")

	ctx := lisp.NewContext()
	rd, err := parser.NewReader(ctx, "test", strings.NewReader(b.String()))
	require.NoError(t, err)
	_, err = rd.Next()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds")
}
