// Copyright © 2024 The ELPS authors

package lsp

import (
	"fmt"

	"github.com/giorgioyu125/toylisp/lisp"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

func (s *Server) textDocumentHover(_ *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	doc := s.docs.Get(params.TextDocument.URI)
	if doc == nil {
		return nil, nil
	}
	doc.mu.Lock()
	content := doc.Content
	doc.mu.Unlock()

	word := wordAtPosition(content, int(params.Position.Line), int(params.Position.Character))
	if word == "" {
		return nil, nil
	}

	frame := lisp.FindFrame(word, s.ctx.Runtime.GlobalEnv)
	if frame.Type != lisp.LCons {
		return nil, nil
	}

	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.MarkupKindMarkdown,
			Value: hoverText(word, frame.Cdr),
		},
	}, nil
}

func hoverText(name string, val *lisp.LVal) string {
	if val.Type != lisp.LPrimitive {
		return fmt.Sprintf("**variable** `%s`\n\n```\n%s\n```", name, val)
	}
	entry := lisp.Primitives[val.Prim]
	kind := "primitive"
	if entry.SpecialForm {
		kind = "special form"
	}
	arity := "variadic"
	if entry.Arity != lisp.UnboundedArity {
		arity = fmt.Sprintf("%d argument(s)", entry.Arity)
	}
	text := fmt.Sprintf("**%s** `%s`\n\n%s", kind, name, arity)
	if entry.Doc != "" {
		text += "\n\n" + entry.Doc
	}
	return text
}
