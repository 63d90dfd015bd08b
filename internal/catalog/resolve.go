package catalog

import (
	"path/filepath"

	"github.com/jsvensson/iconlookup/internal/iconpath"
	"github.com/jsvensson/iconlookup/internal/manifest"
	"github.com/jsvensson/iconlookup/internal/matcher"
)

// Request describes an icon to resolve within one theme.
type Request struct {
	Theme    string
	Icon     string
	Size     int
	Scale    int
	Scheme   matcher.SizeScheme
	ForceSVG bool
}

// Resolve returns the icon file for req. Every location of the theme is
// tried for an exact size match before any location is tried for the
// closest one. Locations whose manifest cannot be loaded are skipped.
func (c *Catalog) Resolve(req Request) (string, bool) {
	if req.Scale < 1 {
		req.Scale = 1
	}

	locations := c.themes[req.Theme]
	manifests := make([]*manifest.Manifest, len(locations))
	for i, loc := range locations {
		// Failures are logged once by the location.
		manifests[i], _ = loc.Manifest()
	}

	for i, loc := range locations {
		if manifests[i] == nil {
			continue
		}
		for dir := range matcher.MatchExact(manifests[i], req.Size, req.Scale) {
			if path, ok := iconpath.Build(req.Icon, filepath.Join(loc.Dir, dir), req.ForceSVG); ok {
				return path, true
			}
		}
	}

	for i, loc := range locations {
		if manifests[i] == nil {
			continue
		}
		for _, dir := range matcher.MatchClosest(manifests[i], req.Size, req.Scale, req.Scheme) {
			if path, ok := iconpath.Build(req.Icon, filepath.Join(loc.Dir, dir), req.ForceSVG); ok {
				return path, true
			}
		}
	}

	return "", false
}
