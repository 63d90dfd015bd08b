package lsp

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jsvensson/iconlookup/internal/manifest"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

var (
	DiagError   = protocol.DiagnosticSeverityError
	DiagWarning = protocol.DiagnosticSeverityWarning
	DiagInfo    = protocol.DiagnosticSeverityInformation
)

const diagSource = "iconlookup"

// Keys holding the directory lists in the theme section.
const (
	keyDirectories       = "Directories"
	keyScaledDirectories = "ScaledDirectories"
)

// Section is a [header] and the keys below it.
type Section struct {
	Name  string
	Range protocol.Range // the name between the brackets
	Line  uint32
	Keys  map[string]Key
}

// Key is one key=value line.
type Key struct {
	Name       string
	Value      string
	Range      protocol.Range
	ValueRange protocol.Range
}

// DirectoryRef is one item of a Directories or ScaledDirectories list.
type DirectoryRef struct {
	Name  string
	Range protocol.Range
}

// AnalysisResult holds everything produced by analyzing an index.theme file.
type AnalysisResult struct {
	Diagnostics []protocol.Diagnostic
	// Manifest is nil when the file could not be decoded at all.
	Manifest    *manifest.Manifest
	Sections    []*Section
	Symbols     map[string]protocol.Range // section name -> header range
	Directories []DirectoryRef
}

// Analyze scans content for positions and decodes it as a manifest. It
// collects all problems rather than stopping at the first.
func Analyze(filename, content string) *AnalysisResult {
	result := &AnalysisResult{
		Symbols: make(map[string]protocol.Range),
	}
	result.scan(content)

	m, err := manifest.Parse(filename, []byte(content))
	if err != nil {
		if len(result.Diagnostics) == 0 {
			var perr *manifest.ParseError
			msg := err.Error()
			if errors.As(err, &perr) {
				msg = perr.Err.Error()
			}
			result.addError(protocol.Range{}, msg)
		}
		return result
	}

	result.Manifest = m
	for _, p := range m.Problems {
		result.addProblem(p)
	}
	result.noteUnlisted()
	return result
}

// scan records sections, keys and directory list items with their source
// ranges, and reports lines that are not valid key/value syntax.
func (r *AnalysisResult) scan(content string) {
	var current *Section
	for i, raw := range splitLines(content) {
		line := strings.TrimRight(raw, "\r")
		trimmed := strings.TrimSpace(line)
		lineNo := uint32(i)
		indent := len(line) - len(strings.TrimLeft(line, " \t"))

		switch {
		case trimmed == "" || trimmed[0] == '#' || trimmed[0] == ';':
			continue

		case trimmed[0] == '[':
			end := strings.IndexByte(trimmed, ']')
			if end < 0 {
				r.addError(lineRange(lineNo, indent, len(line)), "unclosed section header")
				current = nil
				continue
			}
			inner := trimmed[1:end]
			name := strings.TrimSpace(inner)
			start := indent + 1 + strings.Index(inner, name)
			current = &Section{
				Name:  name,
				Range: lineRange(lineNo, start, start+len(name)),
				Line:  lineNo,
				Keys:  make(map[string]Key),
			}
			if _, dup := r.Symbols[name]; dup {
				r.addWarning(current.Range, fmt.Sprintf("duplicate section [%s], keys are merged", name))
			} else {
				r.Symbols[name] = current.Range
			}
			r.Sections = append(r.Sections, current)

		default:
			eq := strings.IndexByte(line, '=')
			if eq < 0 {
				r.addError(lineRange(lineNo, indent, len(line)), "expected key=value")
				continue
			}
			if current == nil {
				continue
			}
			k := Key{
				Name:       strings.TrimSpace(line[:eq]),
				Value:      strings.TrimSpace(line[eq+1:]),
				Range:      lineRange(lineNo, indent, indent+len(strings.TrimSpace(line[:eq]))),
				ValueRange: lineRange(lineNo, eq+1, len(line)),
			}
			current.Keys[k.Name] = k
			if current.Name == manifest.ThemeSection && (k.Name == keyDirectories || k.Name == keyScaledDirectories) {
				r.Directories = append(r.Directories, splitDirectoryList(lineNo, line, eq+1)...)
			}
		}
	}
}

// splitDirectoryList returns the items of the comma separated list starting
// at byte offset from.
func splitDirectoryList(lineNo uint32, line string, from int) []DirectoryRef {
	var refs []DirectoryRef
	start := from
	for start <= len(line) {
		end := strings.IndexByte(line[start:], ',')
		if end < 0 {
			end = len(line)
		} else {
			end += start
		}
		item := line[start:end]
		name := strings.TrimSpace(item)
		if name != "" {
			off := start + strings.Index(item, name)
			refs = append(refs, DirectoryRef{
				Name:  name,
				Range: lineRange(lineNo, off, off+len(name)),
			})
		}
		start = end + 1
	}
	return refs
}

// addProblem turns a decoding problem into a diagnostic. Problems that made
// the decoder drop the directory are errors; the rest are warnings.
func (r *AnalysisResult) addProblem(p manifest.Problem) {
	rng := r.problemRange(p)
	msg := p.Message
	if p.Key != "" {
		msg = p.Key + ": " + msg
	}
	if p.Section != manifest.ThemeSection {
		if _, ok := r.Manifest.Entry(p.Section); !ok {
			r.addError(rng, fmt.Sprintf("[%s] ignored: %s", p.Section, msg))
			return
		}
	}
	r.addWarning(rng, fmt.Sprintf("[%s] %s", p.Section, msg))
}

// noteUnlisted reports directory sections that neither list names. Lookups
// never read them.
func (r *AnalysisResult) noteUnlisted() {
	if _, ok := r.Symbols[manifest.ThemeSection]; !ok {
		return
	}
	listed := map[string]bool{manifest.ThemeSection: true}
	for _, ref := range r.Directories {
		listed[ref.Name] = true
	}
	for _, s := range r.Sections {
		if listed[s.Name] {
			continue
		}
		listed[s.Name] = true
		r.addInfo(s.Range, fmt.Sprintf("[%s] is not listed in %s or %s", s.Name, keyDirectories, keyScaledDirectories))
	}
}

// problemRange locates a problem: the offending key, else the section
// header, else the Directories item that names the section.
func (r *AnalysisResult) problemRange(p manifest.Problem) protocol.Range {
	if sec := r.section(p.Section); sec != nil {
		if k, ok := sec.Keys[p.Key]; ok && p.Key != "" {
			return k.Range
		}
		return sec.Range
	}
	for _, ref := range r.Directories {
		if ref.Name == p.Section {
			return ref.Range
		}
	}
	return protocol.Range{}
}

// section returns the first section with the given name.
func (r *AnalysisResult) section(name string) *Section {
	for _, s := range r.Sections {
		if s.Name == name {
			return s
		}
	}
	return nil
}

// sectionAt returns the section containing line, or nil above the first header.
func (r *AnalysisResult) sectionAt(line uint32) *Section {
	var found *Section
	for _, s := range r.Sections {
		if s.Line > line {
			break
		}
		found = s
	}
	return found
}

// addError adds an error-level diagnostic at the given range.
func (r *AnalysisResult) addError(rng protocol.Range, msg string) {
	r.Diagnostics = append(r.Diagnostics, protocol.Diagnostic{
		Range:    rng,
		Severity: &DiagError,
		Source:   strPtr(diagSource),
		Message:  msg,
	})
}

// addWarning adds a warning-level diagnostic at the given range.
func (r *AnalysisResult) addWarning(rng protocol.Range, msg string) {
	r.Diagnostics = append(r.Diagnostics, protocol.Diagnostic{
		Range:    rng,
		Severity: &DiagWarning,
		Source:   strPtr(diagSource),
		Message:  msg,
	})
}

// addInfo adds an information-level diagnostic at the given range.
func (r *AnalysisResult) addInfo(rng protocol.Range, msg string) {
	r.Diagnostics = append(r.Diagnostics, protocol.Diagnostic{
		Range:    rng,
		Severity: &DiagInfo,
		Source:   strPtr(diagSource),
		Message:  msg,
	})
}

func strPtr(s string) *string {
	return &s
}

func lineRange(line uint32, start, end int) protocol.Range {
	return protocol.Range{
		Start: protocol.Position{Line: line, Character: uint32(start)},
		End:   protocol.Position{Line: line, Character: uint32(end)},
	}
}

// splitLines splits content into lines, preserving empty trailing lines.
func splitLines(content string) []string {
	return strings.Split(content, "\n")
}
