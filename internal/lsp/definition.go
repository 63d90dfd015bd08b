package lsp

import (
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// definition returns the [section] header for the Directories item under
// the cursor. Returns nil if the cursor is not on an item or the section
// does not exist.
func definition(result *AnalysisResult, uri string, pos protocol.Position) *protocol.Location {
	if result == nil {
		return nil
	}

	for _, ref := range result.Directories {
		if !posInRange(pos, ref.Range) {
			continue
		}
		symRange, ok := result.Symbols[ref.Name]
		if !ok {
			return nil
		}
		return &protocol.Location{
			URI:   protocol.DocumentUri(uri),
			Range: symRange,
		}
	}
	return nil
}

// textDocumentDefinition handles textDocument/definition requests.
func (s *Server) textDocumentDefinition(_ *glsp.Context, params *protocol.DefinitionParams) (any, error) {
	uri := string(params.TextDocument.URI)

	result := s.getResult(uri)
	if result == nil {
		return nil, nil
	}

	loc := definition(result, uri, params.Position)
	if loc == nil {
		return nil, nil
	}
	return loc, nil
}
