package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/ini.v1"
)

// IndexFile is the manifest file name inside a theme directory.
const IndexFile = "index.theme"

// ThemeSection is the top-level section holding theme metadata and the
// directory lists.
const ThemeSection = "Icon Theme"

// Keys understood inside a directory section.
const (
	KeySize      = "Size"
	KeyScale     = "Scale"
	KeyType      = "Type"
	KeyMinSize   = "MinSize"
	KeyMaxSize   = "MaxSize"
	KeyThreshold = "Threshold"
	KeyContext   = "Context"
)

// DefaultThreshold is used for Threshold directories without a Threshold key.
const DefaultThreshold = 2

// loadOptions match the desktop entry dialect: '=' is the only delimiter,
// ';' or '#' inside a value are literal characters, quotes are kept and a
// trailing backslash does not continue the line.
var loadOptions = ini.LoadOptions{
	IgnoreInlineComment:     true,
	IgnoreContinuation:      true,
	PreserveSurroundedQuote: true,
	KeyValueDelimiters:      "=",
}

// Kind is the sizing behavior of a theme subdirectory.
type Kind int

const (
	Fixed Kind = iota
	Scalable
	Threshold
)

func (k Kind) String() string {
	switch k {
	case Fixed:
		return "Fixed"
	case Scalable:
		return "Scalable"
	case Threshold:
		return "Threshold"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind parses a Type value. Unknown values are an error rather than a
// silent default.
func ParseKind(s string) (Kind, error) {
	switch strings.TrimSpace(s) {
	case "Fixed":
		return Fixed, nil
	case "Scalable":
		return Scalable, nil
	case "Threshold":
		return Threshold, nil
	default:
		return 0, fmt.Errorf("unknown directory type %q (valid: Fixed, Scalable, Threshold)", s)
	}
}

// DirectoryEntry describes one size-qualified subdirectory of a theme.
// MinSize and MaxSize only matter for Scalable entries, Threshold only for
// Threshold entries.
type DirectoryEntry struct {
	Name      string
	Size      int
	Scale     int
	Kind      Kind
	MinSize   int
	MaxSize   int
	Threshold int
	Context   string
}

// SizeRange returns the inclusive range of unscaled sizes the entry accepts
// as an exact fit.
func (e DirectoryEntry) SizeRange() (lo, hi int) {
	switch e.Kind {
	case Scalable:
		return e.MinSize, e.MaxSize
	case Threshold:
		return e.Size - e.Threshold, e.Size + e.Threshold
	default:
		return e.Size, e.Size
	}
}

// Problem records a directory that was dropped or defaulted while decoding.
type Problem struct {
	Section string
	Key     string
	Message string
}

func (p Problem) String() string {
	if p.Key == "" {
		return fmt.Sprintf("[%s]: %s", p.Section, p.Message)
	}
	return fmt.Sprintf("[%s] %s: %s", p.Section, p.Key, p.Message)
}

// Manifest is the decoded (or synthesized) description of a theme directory.
type Manifest struct {
	Path        string
	Name        string
	Comment     string
	Hidden      bool
	Directories []DirectoryEntry
	Problems    []Problem
	Synthesized bool
}

// Entry returns the directory entry with the given name.
func (m *Manifest) Entry(name string) (DirectoryEntry, bool) {
	for _, e := range m.Directories {
		if e.Name == name {
			return e, true
		}
	}
	return DirectoryEntry{}, false
}

// IndexPath returns the manifest path for a theme directory.
func IndexPath(themeDir string) string {
	return filepath.Join(themeDir, IndexFile)
}

// HasIndex reports whether themeDir carries its own manifest file.
func HasIndex(themeDir string) bool {
	info, err := os.Stat(IndexPath(themeDir))
	return err == nil && !info.IsDir()
}

// Load returns the manifest of themeDir. Without an index file it either
// fails with a *NotFoundError or, when synthesize is set, infers one from the
// folder layout.
func Load(themeDir string, synthesize bool) (*Manifest, error) {
	path := IndexPath(themeDir)
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("checking %s: %w", path, err)
		}
		if !synthesize {
			return nil, &NotFoundError{Dir: themeDir}
		}
		return Synthesize(themeDir)
	}
	return LoadFile(path)
}

// LoadFile parses the manifest file at path.
func LoadFile(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	return Parse(path, data)
}

// Parse decodes manifest content. name is used for error messages and as
// Manifest.Path.
func Parse(name string, data []byte) (*Manifest, error) {
	f, err := ini.LoadSources(loadOptions, data)
	if err != nil {
		return nil, &ParseError{Path: name, Err: err}
	}

	m := &Manifest{Path: name}

	head, err := f.GetSection(ThemeSection)
	if err != nil {
		m.Problems = append(m.Problems, Problem{
			Section: ThemeSection,
			Message: "section missing, theme has no directories",
		})
		return m, nil
	}

	m.Name = head.Key("Name").String()
	m.Comment = head.Key("Comment").String()
	m.Hidden = head.Key("Hidden").MustBool(false)

	for _, dir := range DirectoryNames(head.Key("Directories").String(), head.Key("ScaledDirectories").String()) {
		entry, problems, ok := decodeEntry(f, dir)
		m.Problems = append(m.Problems, problems...)
		if ok {
			m.Directories = append(m.Directories, entry)
		}
	}

	return m, nil
}

// DirectoryNames splits comma separated directory lists, dropping blanks and
// repeats while keeping first-seen order.
func DirectoryNames(lists ...string) []string {
	seen := make(map[string]bool)
	var names []string
	for _, list := range lists {
		for _, name := range strings.Split(list, ",") {
			name = strings.TrimSpace(name)
			if name == "" || seen[name] {
				continue
			}
			seen[name] = true
			names = append(names, name)
		}
	}
	return names
}

func decodeEntry(f *ini.File, name string) (DirectoryEntry, []Problem, bool) {
	sec, err := f.GetSection(name)
	if err != nil {
		return DirectoryEntry{}, []Problem{{Section: name, Message: "listed in Directories but has no section"}}, false
	}

	if !sec.HasKey(KeySize) {
		return DirectoryEntry{}, []Problem{{Section: name, Key: KeySize, Message: "required key missing"}}, false
	}
	size, err := sec.Key(KeySize).Int()
	if err != nil || size < 1 {
		return DirectoryEntry{}, []Problem{{Section: name, Key: KeySize, Message: fmt.Sprintf("%q is not a positive integer", sec.Key(KeySize).String())}}, false
	}

	kind := Fixed
	if sec.HasKey(KeyType) {
		kind, err = ParseKind(sec.Key(KeyType).String())
		if err != nil {
			return DirectoryEntry{}, []Problem{{Section: name, Key: KeyType, Message: err.Error()}}, false
		}
	}

	e := DirectoryEntry{
		Name:      name,
		Size:      size,
		Scale:     1,
		Kind:      kind,
		MinSize:   size,
		MaxSize:   size,
		Threshold: DefaultThreshold,
		Context:   sec.Key(KeyContext).String(),
	}

	var problems []Problem
	for _, opt := range []struct {
		key   string
		dst   *int
		floor int
	}{
		{KeyScale, &e.Scale, 1},
		{KeyMinSize, &e.MinSize, 1},
		{KeyMaxSize, &e.MaxSize, 1},
		{KeyThreshold, &e.Threshold, 0},
	} {
		if p := optionalInt(sec, name, opt.key, opt.floor, opt.dst); p != nil {
			problems = append(problems, *p)
		}
	}

	if e.Kind == Scalable && e.MinSize > e.MaxSize {
		problems = append(problems, Problem{
			Section: name,
			Key:     KeyMinSize,
			Message: fmt.Sprintf("MinSize %d is larger than MaxSize %d", e.MinSize, e.MaxSize),
		})
	}

	return e, problems, true
}

// optionalInt overwrites dst when key is present and valid. Invalid values
// keep the default and are reported.
func optionalInt(sec *ini.Section, section, key string, floor int, dst *int) *Problem {
	if !sec.HasKey(key) {
		return nil
	}
	raw := sec.Key(key).String()
	v, err := sec.Key(key).Int()
	if err != nil || v < floor {
		return &Problem{
			Section: section,
			Key:     key,
			Message: fmt.Sprintf("invalid value %q, using %d", raw, *dst),
		}
	}
	*dst = v
	return nil
}
