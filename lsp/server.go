// Copyright © 2024 The ELPS authors

// Package lsp implements a Language Server Protocol surface:
// diagnostics, hover, and completion for the global environment — no
// references, rename, formatting, or semantic tokens, since those
// presuppose multi-file package analysis the underlying language
// doesn't have.
package lsp

import (
	"sync"

	"github.com/giorgioyu125/toylisp/lisp"
	"github.com/tliron/glsp"
	glspserver "github.com/tliron/glsp/server"

	protocol "github.com/tliron/glsp/protocol_3_16"
)

const serverName = "toylisp-lsp"

// Server is the toylisp language server. Every request is answered
// against a single Bootstrap-only Context shared across documents: the
// server never evaluates user code, so one frozen global environment is
// enough to resolve primitive names for hover and completion.
type Server struct {
	handler protocol.Handler
	glspSrv *glspserver.Server
	docs    *DocumentStore
	ctx     *lisp.Context

	notifyMu sync.Mutex
	notify   glsp.NotifyFunc

	exitFn func(int)
}

// New creates a language server backed by its own bootstrapped Context.
func New() *Server {
	ctx := lisp.NewContext()
	lisp.Bootstrap(ctx)

	s := &Server{
		docs: NewDocumentStore(),
		ctx:  ctx,
	}
	s.handler = protocol.Handler{
		Initialize: s.initialize,
		Shutdown:   s.shutdown,
		Exit:       s.exit,

		TextDocumentDidOpen:   s.textDocumentDidOpen,
		TextDocumentDidChange: s.textDocumentDidChange,
		TextDocumentDidClose:  s.textDocumentDidClose,

		TextDocumentHover:      s.textDocumentHover,
		TextDocumentCompletion: s.textDocumentCompletion,
	}
	s.glspSrv = glspserver.NewServer(&s.handler, serverName, false)
	return s
}

// Serve runs a language server over stdio until the client sends exit.
// It is the entry point cmd wires to --lsp.
func Serve() error {
	return New().glspSrv.RunStdio()
}

func (s *Server) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	s.captureNotify(ctx)
	capabilities := s.handler.CreateServerCapabilities()
	syncKind := protocol.TextDocumentSyncKindFull
	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    &syncKind,
	}
	capabilities.CompletionProvider = &protocol.CompletionOptions{}

	version := "0.1.0"
	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    serverName,
			Version: &version,
		},
	}, nil
}

func (s *Server) shutdown(_ *glsp.Context) error {
	return nil
}

func (s *Server) exit(_ *glsp.Context) error {
	if s.exitFn != nil {
		s.exitFn(0)
	}
	return nil
}

func (s *Server) captureNotify(ctx *glsp.Context) {
	s.notifyMu.Lock()
	s.notify = ctx.Notify
	s.notifyMu.Unlock()
}

func (s *Server) sendNotification(method string, params any) {
	s.notifyMu.Lock()
	fn := s.notify
	s.notifyMu.Unlock()
	if fn != nil {
		fn(method, params)
	}
}

func boolPtr(b bool) *bool { return &b }
