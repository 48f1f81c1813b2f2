// Copyright © 2024 The ELPS authors

package lsp

import (
	"testing"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWordAtPosition(t *testing.T) {
	assert.Equal(t, "foo", wordAtPosition("(foo bar)", 0, 3))
	assert.Equal(t, "bar", wordAtPosition("(foo bar)", 0, 8))
	assert.Equal(t, "", wordAtPosition("(foo bar)", 0, 9))
}

func TestDocumentStoreOpenChangeClose(t *testing.T) {
	store := NewDocumentStore()
	doc := store.Open("file:///a.lisp", 1, "(+ 1 2)")
	require.NotNil(t, doc)
	assert.Empty(t, doc.parseErrs)

	changed := store.Change("file:///a.lisp", 2, "(+ 1 2")
	assert.NotEmpty(t, changed.parseErrs, "an unclosed list should produce a parse error")

	assert.NotNil(t, store.Get("file:///a.lisp"))
	store.Close("file:///a.lisp")
	assert.Nil(t, store.Get("file:///a.lisp"))
}

func TestHoverOnPrimitiveDescribesArity(t *testing.T) {
	s := New()
	doc := s.docs.Open("file:///a.lisp", 1, "(cons 1 2)")
	_ = doc

	hover, err := s.textDocumentHover(nil, &protocol.HoverParams{
		TextDocumentPositionParams: protocol.TextDocumentPositionParams{
			TextDocument: protocol.TextDocumentIdentifier{URI: "file:///a.lisp"},
			Position:     protocol.Position{Line: 0, Character: 2},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, hover)
	content, ok := hover.Contents.(protocol.MarkupContent)
	require.True(t, ok)
	assert.Contains(t, content.Value, "cons")
	assert.Contains(t, content.Value, "2 argument(s)")
	assert.Contains(t, content.Value, "builds a new cons cell")
}

func TestCompletionFiltersByPrefix(t *testing.T) {
	s := New()
	s.docs.Open("file:///a.lisp", 1, "(ca")

	items, err := s.textDocumentCompletion(nil, &protocol.CompletionParams{
		TextDocumentPositionParams: protocol.TextDocumentPositionParams{
			TextDocument: protocol.TextDocumentIdentifier{URI: "file:///a.lisp"},
			Position:     protocol.Position{Line: 0, Character: 3},
		},
	})
	require.NoError(t, err)
	list, ok := items.([]protocol.CompletionItem)
	require.True(t, ok)
	require.NotEmpty(t, list)
	for _, it := range list {
		assert.True(t, len(it.Label) >= 2 && it.Label[:2] == "ca")
	}
}
