// Copyright © 2024 The ELPS authors

package lsp

import (
	"strings"

	"github.com/giorgioyu125/toylisp/lisp"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

func (s *Server) textDocumentCompletion(_ *glsp.Context, params *protocol.CompletionParams) (any, error) {
	doc := s.docs.Get(params.TextDocument.URI)
	if doc == nil {
		return nil, nil
	}
	doc.mu.Lock()
	content := doc.Content
	doc.mu.Unlock()

	prefix := wordAtPosition(content, int(params.Position.Line), int(params.Position.Character))

	var items []protocol.CompletionItem
	for e := s.ctx.Runtime.GlobalEnv; e.Type == lisp.LCons; e = e.Cdr {
		name := e.Car.Car.Str
		if prefix != "" && !strings.HasPrefix(name, prefix) {
			continue
		}
		kind := protocol.CompletionItemKindFunction
		if e.Car.Cdr.Type != lisp.LPrimitive {
			kind = protocol.CompletionItemKindVariable
		}
		items = append(items, protocol.CompletionItem{Label: name, Kind: &kind})
	}
	return items, nil
}
