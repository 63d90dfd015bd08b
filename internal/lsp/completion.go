package lsp

import (
	"strings"

	"github.com/jsvensson/iconlookup/internal/manifest"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// themeKeys are the keys understood in the [Icon Theme] section.
var themeKeys = []string{
	"Name", "Comment", "Inherits", keyDirectories, keyScaledDirectories, "Hidden", "Example",
}

// directoryKeys are the keys understood in a directory section.
var directoryKeys = []string{
	manifest.KeySize,
	manifest.KeyScale,
	manifest.KeyType,
	manifest.KeyMinSize,
	manifest.KeyMaxSize,
	manifest.KeyThreshold,
	manifest.KeyContext,
}

// kindValues are the values accepted by the Type key.
var kindValues = []manifest.Kind{manifest.Fixed, manifest.Scalable, manifest.Threshold}

// complete produces completion items given an analysis result, document
// content and cursor position. Kept apart from the protocol handler for
// testability.
func complete(result *AnalysisResult, content string, pos protocol.Position) []protocol.CompletionItem {
	lines := splitLines(content)
	if int(pos.Line) >= len(lines) {
		return nil
	}

	line := lines[pos.Line]
	charPos := min(int(pos.Character), len(line))
	before := strings.TrimLeft(line[:charPos], " \t")

	if strings.HasPrefix(before, "[") {
		return sectionCompletions(result)
	}

	if key, _, ok := strings.Cut(before, "="); ok {
		if strings.TrimSpace(key) == manifest.KeyType {
			return kindCompletions()
		}
		return nil
	}

	sec := result.sectionAt(pos.Line)
	if sec == nil {
		return nil
	}
	if sec.Name == manifest.ThemeSection {
		return keyCompletions(themeKeys, sec)
	}
	return keyCompletions(directoryKeys, sec)
}

// sectionCompletions offers the [Icon Theme] header when absent and every
// listed directory that has no section yet.
func sectionCompletions(result *AnalysisResult) []protocol.CompletionItem {
	kind := protocol.CompletionItemKindModule

	var items []protocol.CompletionItem
	seen := make(map[string]bool)
	add := func(name string) {
		if seen[name] {
			return
		}
		seen[name] = true
		if _, exists := result.Symbols[name]; exists {
			return
		}
		insert := name + "]"
		items = append(items, protocol.CompletionItem{
			Label:      name,
			Kind:       &kind,
			InsertText: &insert,
		})
	}

	add(manifest.ThemeSection)
	for _, ref := range result.Directories {
		add(ref.Name)
	}
	return items
}

// keyCompletions returns the keys not yet set in sec.
func keyCompletions(keys []string, sec *Section) []protocol.CompletionItem {
	kind := protocol.CompletionItemKindProperty

	var items []protocol.CompletionItem
	for _, key := range keys {
		if _, defined := sec.Keys[key]; defined {
			continue
		}
		insert := key + "="
		items = append(items, protocol.CompletionItem{
			Label:      key,
			Kind:       &kind,
			InsertText: &insert,
		})
	}
	return items
}

func kindCompletions() []protocol.CompletionItem {
	kind := protocol.CompletionItemKindEnumMember

	items := make([]protocol.CompletionItem, 0, len(kindValues))
	for _, k := range kindValues {
		items = append(items, protocol.CompletionItem{
			Label: k.String(),
			Kind:  &kind,
		})
	}
	return items
}

// textDocumentCompletion is the LSP handler for textDocument/completion requests.
func (s *Server) textDocumentCompletion(_ *glsp.Context, params *protocol.CompletionParams) (any, error) {
	uri := string(params.TextDocument.URI)

	content, ok := s.docs.Get(uri)
	if !ok {
		return nil, nil
	}

	result := s.getResult(uri)
	if result == nil {
		return nil, nil
	}

	return complete(result, content, params.Position), nil
}
