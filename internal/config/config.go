package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/jsvensson/iconlookup/internal/matcher"
)

// Config is the fully-resolved CLI configuration.
type Config struct {
	// SearchRoots overrides the XDG search roots when non-empty.
	SearchRoots []string

	Theme    string
	Size     int
	Scale    int
	Scheme   matcher.SizeScheme
	ForceSVG bool

	Synthesize bool

	LogVerbosity int
	LogFile      string
}

// Defaults applied when the file or a setting is absent.
const (
	DefaultTheme     = "hicolor"
	DefaultSize      = 24
	DefaultScale     = 1
	DefaultVerbosity = 0
)

// LookupBlock holds the defaults for icon lookups.
type LookupBlock struct {
	Theme    string `hcl:"theme,optional"`
	Size     *int   `hcl:"size,optional"`
	Scale    *int   `hcl:"scale,optional"`
	Scheme   string `hcl:"scheme,optional"`
	ForceSVG bool   `hcl:"force_svg,optional"`
}

// DiscoveryBlock controls how themes are discovered.
type DiscoveryBlock struct {
	Synthesize bool `hcl:"synthesize,optional"`
}

// LogBlock configures logging.
type LogBlock struct {
	Verbosity *int   `hcl:"verbosity,optional"`
	File      string `hcl:"file,optional"`
}

// File is the raw decoded configuration file.
type File struct {
	SearchRoots []string        `hcl:"search_roots,optional"`
	Lookup      *LookupBlock    `hcl:"lookup,block"`
	Discovery   *DiscoveryBlock `hcl:"discovery,block"`
	Log         *LogBlock       `hcl:"log,block"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Theme:        DefaultTheme,
		Size:         DefaultSize,
		Scale:        DefaultScale,
		Scheme:       matcher.Closest,
		LogVerbosity: DefaultVerbosity,
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/iconlookup/config.hcl.
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, "iconlookup", "config.hcl")
}

// LoadOptional loads path, returning Default() when the file does not exist.
func LoadOptional(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Load reads and decodes an HCL configuration file.
func Load(path string) (*Config, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return Parse(path, src)
}

// Parse decodes configuration source. The filename is only used in
// diagnostics.
func Parse(filename string, src []byte) (*Config, error) {
	file, diags := hclsyntax.ParseConfig(src, filename, hcl.Pos{Line: 1, Column: 1})
	if diags.HasErrors() {
		return nil, fmt.Errorf("parsing HCL: %s", diags.Error())
	}

	var raw File
	if diags := gohcl.DecodeBody(file.Body, BuildEvalContext(), &raw); diags.HasErrors() {
		return nil, fmt.Errorf("decoding config: %s", diags.Error())
	}

	return resolve(&raw)
}

func resolve(raw *File) (*Config, error) {
	cfg := Default()
	cfg.SearchRoots = raw.SearchRoots

	if l := raw.Lookup; l != nil {
		if l.Theme != "" {
			cfg.Theme = l.Theme
		}
		if l.Size != nil {
			if *l.Size < 1 {
				return nil, fmt.Errorf("lookup.size must be at least 1, got %d", *l.Size)
			}
			cfg.Size = *l.Size
		}
		if l.Scale != nil {
			if *l.Scale < 1 {
				return nil, fmt.Errorf("lookup.scale must be at least 1, got %d", *l.Scale)
			}
			cfg.Scale = *l.Scale
		}
		scheme, err := matcher.ParseSizeScheme(l.Scheme)
		if err != nil {
			return nil, fmt.Errorf("lookup.scheme: %w", err)
		}
		cfg.Scheme = scheme
		cfg.ForceSVG = l.ForceSVG
	}

	if d := raw.Discovery; d != nil {
		cfg.Synthesize = d.Synthesize
	}

	if l := raw.Log; l != nil {
		if l.Verbosity != nil {
			cfg.LogVerbosity = *l.Verbosity
		}
		cfg.LogFile = l.File
	}

	return cfg, nil
}
