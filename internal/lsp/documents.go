package lsp

import "sync"

type document struct {
	content string
	result  *AnalysisResult // nil until first requested
}

// DocumentStore holds open document contents and their analyses keyed by URI.
type DocumentStore struct {
	mu   sync.RWMutex
	docs map[string]*document
}

func NewDocumentStore() *DocumentStore {
	return &DocumentStore{docs: make(map[string]*document)}
}

func (s *DocumentStore) Open(uri, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[uri] = &document{content: content}
}

// Update replaces the content and drops the cached analysis.
func (s *DocumentStore) Update(uri, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[uri] = &document{content: content}
}

func (s *DocumentStore) Close(uri string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.docs, uri)
}

func (s *DocumentStore) Get(uri string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[uri]
	if !ok {
		return "", false
	}
	return doc.content, true
}

// Result returns the analysis of an open document, computing it on first
// use. Returns nil for unknown URIs.
func (s *DocumentStore) Result(uri string) *AnalysisResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.docs[uri]
	if !ok {
		return nil
	}
	if doc.result == nil {
		doc.result = Analyze(uri, doc.content)
	}
	return doc.result
}
