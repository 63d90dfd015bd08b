package lsp

import (
	"strings"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// format normalizes index.theme content: no spaces around "=" or inside
// section brackets, no trailing whitespace, exactly one blank line before
// each section header after the first (comments stay attached), and a single final newline. Comments and
// lines it does not understand are kept as they are.
func format(content string) string {
	var out []string
	for _, raw := range splitLines(content) {
		line := strings.TrimSpace(raw)

		switch {
		case line == "":
			if len(out) > 0 && out[len(out)-1] != "" {
				out = append(out, "")
			}
			continue
		case line[0] == '#' || line[0] == ';':
		case line[0] == '[':
			if end := strings.IndexByte(line, ']'); end > 0 {
				line = "[" + strings.TrimSpace(line[1:end]) + "]"
			}
			if len(out) > 0 && !isBlankOrComment(out[len(out)-1]) {
				out = append(out, "")
			}
		default:
			if key, value, ok := strings.Cut(line, "="); ok {
				line = strings.TrimSpace(key) + "=" + strings.TrimSpace(value)
			}
		}
		out = append(out, line)
	}

	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}
	if len(out) == 0 {
		return ""
	}
	return strings.Join(out, "\n") + "\n"
}

func isBlankOrComment(line string) bool {
	return line == "" || line[0] == '#' || line[0] == ';'
}

// textDocumentFormatting replaces the whole document with its formatted form.
func (s *Server) textDocumentFormatting(_ *glsp.Context, params *protocol.DocumentFormattingParams) ([]protocol.TextEdit, error) {
	content, ok := s.docs.Get(string(params.TextDocument.URI))
	if !ok {
		return nil, nil
	}

	formatted := format(content)
	if formatted == content {
		return nil, nil
	}

	lines := splitLines(content)
	return []protocol.TextEdit{{
		Range: protocol.Range{
			Start: protocol.Position{Line: 0, Character: 0},
			End:   protocol.Position{Line: uint32(len(lines)), Character: 0},
		},
		NewText: formatted,
	}}, nil
}
