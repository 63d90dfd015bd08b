// Package catalog discovers installed icon themes across search roots and
// resolves icon requests against them.
package catalog

import (
	"maps"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/jsvensson/iconlookup/internal/manifest"
	"github.com/jsvensson/iconlookup/internal/roots"
	"github.com/tliron/commonlog"
)

const loggerName = "iconlookup.catalog"

// Options control catalog discovery.
type Options struct {
	// Synthesize turns theme folders that never receive a manifest into
	// locations with an inferred one instead of dropping them.
	Synthesize bool

	// Logger receives discovery failures. Defaults to the
	// "iconlookup.catalog" commonlog logger.
	Logger commonlog.Logger
}

// Location is one physical occurrence of a theme.
type Location struct {
	Name         string
	Dir          string
	ManifestPath string // empty for synthesized locations
	Synthesized  bool

	manifest func() (*manifest.Manifest, error)
}

func newLocation(log commonlog.Logger, name, dir, manifestPath string, synthesized bool) *Location {
	l := &Location{
		Name:         name,
		Dir:          dir,
		ManifestPath: manifestPath,
		Synthesized:  synthesized,
	}
	l.manifest = sync.OnceValues(func() (*manifest.Manifest, error) {
		m, err := l.load()
		if err != nil {
			log.Warningf("theme %q at %s unusable: %s", l.Name, l.Dir, err)
		}
		return m, err
	})
	return l
}

// load reads the location's own index, or synthesizes one. A location
// that borrows an index from another root reads that file directly.
func (l *Location) load() (*manifest.Manifest, error) {
	if l.Synthesized || l.ManifestPath == manifest.IndexPath(l.Dir) {
		return manifest.Load(l.Dir, l.Synthesized)
	}
	return manifest.LoadFile(l.ManifestPath)
}

// Manifest returns the parsed manifest of the location. It is loaded on
// first use and shared afterwards.
func (l *Location) Manifest() (*manifest.Manifest, error) {
	return l.manifest()
}

// Catalog maps theme names to their locations in discovery order. It is
// read-only once built and safe for concurrent use.
type Catalog struct {
	themes map[string][]*Location
	roots  []string
	log    commonlog.Logger
}

type pendingEntry struct {
	name string
	dir  string
}

// Build scans roots in priority order. The first index.theme found for a
// folder name serves every location of that name, so a root without its own
// index still contributes once any root supplies one. Folders that are still
// without a manifest after all roots were scanned are dropped, or
// synthesized when opts.Synthesize is set.
func Build(searchRoots []string, opts Options) *Catalog {
	log := opts.Logger
	if log == nil {
		log = commonlog.GetLogger(loggerName)
	}

	c := &Catalog{
		themes: make(map[string][]*Location),
		roots:  slices.Clone(searchRoots),
		log:    log,
	}

	found := make(map[string]string)
	var pending []pendingEntry

	for _, root := range searchRoots {
		entries, err := os.ReadDir(root)
		if err != nil {
			log.Errorf("unable to read icon theme directory %s: %s", root, err)
			continue
		}

		for _, entry := range entries {
			name := entry.Name()
			dir := filepath.Join(root, name)
			if !manifest.IsDir(dir, entry) {
				continue
			}

			if index, ok := found[name]; ok {
				c.add(name, dir, index, false)
				continue
			}
			if manifest.HasIndex(dir) {
				index := manifest.IndexPath(dir)
				found[name] = index
				c.add(name, dir, index, false)
				continue
			}
			pending = append(pending, pendingEntry{name: name, dir: dir})
		}
	}

	for _, p := range pending {
		switch index, ok := found[p.name]; {
		case ok:
			c.add(p.name, p.dir, index, false)
		case opts.Synthesize:
			c.add(p.name, p.dir, "", true)
		default:
			log.Debugf("skipping %s: no %s for theme %q", p.dir, manifest.IndexFile, p.name)
		}
	}

	return c
}

func (c *Catalog) add(name, dir, index string, synthesized bool) {
	c.themes[name] = append(c.themes[name], newLocation(c.log, name, dir, index, synthesized))
}

var defaultCatalog = sync.OnceValue(func() *Catalog {
	return Build(roots.Default(), Options{})
})

// Default returns the process-wide catalog built from roots.Default(). It is
// built on first use and never refreshed; call Build for fresh data.
func Default() *Catalog {
	return defaultCatalog()
}

// Locations returns the locations of a theme in discovery order.
func (c *Catalog) Locations(name string) []*Location {
	return slices.Clone(c.themes[name])
}

// Has reports whether the catalog knows a theme.
func (c *Catalog) Has(name string) bool {
	_, ok := c.themes[name]
	return ok
}

// Names returns all theme names, sorted.
func (c *Catalog) Names() []string {
	return slices.Sorted(maps.Keys(c.themes))
}

// Len returns the number of themes.
func (c *Catalog) Len() int {
	return len(c.themes)
}

// Roots returns the search roots the catalog was built from.
func (c *Catalog) Roots() []string {
	return slices.Clone(c.roots)
}
