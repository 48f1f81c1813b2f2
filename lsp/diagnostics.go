// Copyright © 2024 The ELPS authors

package lsp

import (
	"errors"

	"github.com/giorgioyu125/toylisp/parser/token"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

func (s *Server) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	s.captureNotify(ctx)
	doc := s.docs.Open(params.TextDocument.URI, int32(params.TextDocument.Version), params.TextDocument.Text)
	s.publishDiagnostics(doc)
	return nil
}

func (s *Server) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	s.captureNotify(ctx)
	var content string
	for _, change := range params.ContentChanges {
		switch c := change.(type) {
		case protocol.TextDocumentContentChangeEventWhole:
			content = c.Text
		case protocol.TextDocumentContentChangeEvent:
			content = c.Text
		}
	}
	doc := s.docs.Change(params.TextDocument.URI, int32(params.TextDocument.Version), content)
	s.publishDiagnostics(doc)
	return nil
}

func (s *Server) textDocumentDidClose(_ *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	s.sendNotification(protocol.ServerTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         params.TextDocument.URI,
		Diagnostics: []protocol.Diagnostic{},
	})
	s.docs.Close(params.TextDocument.URI)
	return nil
}

func (s *Server) publishDiagnostics(doc *Document) {
	doc.mu.Lock()
	errs := doc.parseErrs
	uri := doc.URI
	doc.mu.Unlock()

	diags := make([]protocol.Diagnostic, 0, len(errs))
	for _, err := range errs {
		sev := protocol.DiagnosticSeverityError
		diags = append(diags, protocol.Diagnostic{
			Range:    parseErrorRange(err),
			Severity: &sev,
			Source:   strPtr("toylisp"),
			Message:  err.Error(),
		})
	}
	s.sendNotification(protocol.ServerTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diags,
	})
}

// parseErrorRange extracts a zero-width LSP range from a *token.LocationError,
// or the zero range if err doesn't carry source position information.
func parseErrorRange(err error) protocol.Range {
	var locErr *token.LocationError
	if errors.As(err, &locErr) && locErr.Loc.Line > 0 {
		line := uint32(locErr.Loc.Line - 1)
		col := uint32(0)
		if locErr.Loc.Col > 0 {
			col = uint32(locErr.Loc.Col - 1)
		}
		pos := protocol.Position{Line: line, Character: col}
		return protocol.Range{Start: pos, End: pos}
	}
	return protocol.Range{}
}

func strPtr(s string) *string { return &s }
