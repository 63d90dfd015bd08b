package lsp

import (
	"fmt"

	"github.com/jsvensson/iconlookup/internal/manifest"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// posInRange returns true if pos is within the range [r.Start, r.End).
// The end position is exclusive.
func posInRange(pos protocol.Position, r protocol.Range) bool {
	if pos.Line < r.Start.Line || pos.Line > r.End.Line {
		return false
	}
	if pos.Line == r.Start.Line && pos.Character < r.Start.Character {
		return false
	}
	if pos.Line == r.End.Line && pos.Character >= r.End.Character {
		return false
	}
	return true
}

// directoryAt returns the directory name under the cursor, either a section
// header or an item of a Directories list, with its range.
func directoryAt(result *AnalysisResult, pos protocol.Position) (string, protocol.Range, bool) {
	for _, ref := range result.Directories {
		if posInRange(pos, ref.Range) {
			return ref.Name, ref.Range, true
		}
	}
	for _, s := range result.Sections {
		if s.Name != manifest.ThemeSection && posInRange(pos, s.Range) {
			return s.Name, s.Range, true
		}
	}
	return "", protocol.Range{}, false
}

// describeEntry renders a directory entry as markdown.
func describeEntry(e manifest.DirectoryEntry) string {
	md := fmt.Sprintf("**%s**\n\n`%s` · size %d · scale %d", e.Name, e.Kind, e.Size, e.Scale)
	lo, hi := e.SizeRange()
	if lo == hi {
		md += fmt.Sprintf("\n\nMatches %d px", lo)
	} else {
		md += fmt.Sprintf("\n\nMatches %d to %d px", lo, hi)
	}
	if e.Context != "" {
		md += fmt.Sprintf("\n\nContext: %s", e.Context)
	}
	return md
}

// hover describes the directory entry under the cursor. Returns nil when the
// cursor is not on a directory name or the entry was not decoded.
func hover(result *AnalysisResult, pos protocol.Position) *protocol.Hover {
	if result == nil || result.Manifest == nil {
		return nil
	}

	name, rng, ok := directoryAt(result, pos)
	if !ok {
		return nil
	}
	entry, ok := result.Manifest.Entry(name)
	if !ok {
		return nil
	}

	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.MarkupKindMarkdown,
			Value: describeEntry(entry),
		},
		Range: &rng,
	}
}

// textDocumentHover handles textDocument/hover requests.
func (s *Server) textDocumentHover(_ *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	result := s.getResult(string(params.TextDocument.URI))
	if result == nil {
		return nil, nil
	}
	return hover(result, params.Position), nil
}
