// Package engine renders user supplied Go templates over lookup results,
// backing the CLI's --format flag.
package engine

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/jsvensson/iconlookup/internal/manifest"
)

// Engine executes one parsed template per record.
type Engine struct {
	tmpl *template.Template
}

// Icon is the record rendered for a resolved icon.
type Icon struct {
	Name  string
	Path  string
	Theme string
	Size  int
	Scale int
}

// Ext returns the file extension of the resolved path without the dot.
func (i Icon) Ext() string {
	return strings.TrimPrefix(filepath.Ext(i.Path), ".")
}

// Directory is the record rendered for one directory entry of a theme
// location.
type Directory struct {
	manifest.DirectoryEntry
	Theme    string
	Location string // theme directory on disk
	Manifest string // index.theme path, empty when synthesized
	Min      int
	Max      int
}

// NewDirectory fills in the derived fields of a Directory record.
func NewDirectory(theme, location, manifestPath string, e manifest.DirectoryEntry) Directory {
	lo, hi := e.SizeRange()
	return Directory{
		DirectoryEntry: e,
		Theme:          theme,
		Location:       location,
		Manifest:       manifestPath,
		Min:            lo,
		Max:            hi,
	}
}

var funcMap = template.FuncMap{
	"upper": strings.ToUpper,
	"lower": strings.ToLower,
	"join":  strings.Join,
	"base":  filepath.Base,
	"dir":   filepath.Dir,
	"kind": func(k manifest.Kind) string {
		return strings.ToLower(k.String())
	},
}

// New parses text. A trailing newline is added when text lacks one so each
// record ends up on its own line.
func New(text string) (*Engine, error) {
	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	tmpl, err := template.New("format").Funcs(funcMap).Option("missingkey=error").Parse(text)
	if err != nil {
		return nil, fmt.Errorf("parsing template: %w", err)
	}
	return &Engine{tmpl: tmpl}, nil
}

// Execute renders one record to w.
func (e *Engine) Execute(w io.Writer, data any) error {
	if err := e.tmpl.Execute(w, data); err != nil {
		return fmt.Errorf("executing template: %w", err)
	}
	return nil
}
