// Copyright © 2024 The ELPS authors

package lsp

import (
	"errors"
	"io"
	"strings"
	"sync"

	"github.com/giorgioyu125/toylisp/lisp"
	"github.com/giorgioyu125/toylisp/parser"
)

// Document is an open text document tracked by the server.
type Document struct {
	mu        sync.Mutex
	URI       string
	Version   int32
	Content   string
	parseErrs []error
}

// parse re-reads Content one top-level form at a time and stops at the
// first parse error, recording it; errors later in the file are not
// reported. It uses a fresh, throwaway Context per parse (its scratch
// arena is never reset in place; the whole Context is simply dropped
// when parsing finishes).
func (d *Document) parse() {
	d.parseErrs = nil
	ctx := lisp.NewContext()
	rd, err := parser.NewReader(ctx, d.URI, strings.NewReader(d.Content))
	if err != nil {
		d.parseErrs = append(d.parseErrs, err)
		return
	}
	for {
		_, err := rd.Next()
		if err != nil {
			if !errors.Is(err, io.EOF) {
				d.parseErrs = append(d.parseErrs, err)
			}
			return
		}
	}
}

// DocumentStore manages open documents with thread-safe access.
type DocumentStore struct {
	mu   sync.RWMutex
	docs map[string]*Document
}

// NewDocumentStore creates an empty document store.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{docs: make(map[string]*Document)}
}

// Open adds a document to the store and parses it.
func (s *DocumentStore) Open(uri string, version int32, content string) *Document {
	doc := &Document{URI: uri, Version: version, Content: content}
	doc.parse()
	s.mu.Lock()
	s.docs[uri] = doc
	s.mu.Unlock()
	return doc
}

// Change updates a document's content (full sync) and re-parses it.
func (s *DocumentStore) Change(uri string, version int32, content string) *Document {
	s.mu.Lock()
	doc, ok := s.docs[uri]
	if !ok {
		doc = &Document{URI: uri}
		s.docs[uri] = doc
	}
	s.mu.Unlock()

	doc.mu.Lock()
	doc.Version = version
	doc.Content = content
	doc.parse()
	doc.mu.Unlock()
	return doc
}

// Close removes a document from the store.
func (s *DocumentStore) Close(uri string) {
	s.mu.Lock()
	delete(s.docs, uri)
	s.mu.Unlock()
}

// Get retrieves a document by URI, or nil if it isn't open.
func (s *DocumentStore) Get(uri string) *Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.docs[uri]
}
