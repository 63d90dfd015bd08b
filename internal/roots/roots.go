// Package roots provides the ordered list of directories scanned for icon
// themes.
package roots

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/adrg/xdg"
)

// Pixmaps holds unthemed icons on most distributions.
const Pixmaps = "/usr/share/pixmaps"

var defaultRoots = sync.OnceValue(func() []string {
	return Resolve(Candidates())
})

// Default returns the existing search roots, highest priority first. It is
// computed once per process.
func Default() []string {
	return defaultRoots()
}

// Candidates lists the search roots from the environment, existing or not:
// $HOME/.icons, $XDG_DATA_HOME/icons, each $XDG_DATA_DIRS entry + /icons,
// then the pixmaps directory.
func Candidates() []string {
	var paths []string
	if xdg.Home != "" {
		paths = append(paths, filepath.Join(xdg.Home, ".icons"))
	}
	if xdg.DataHome != "" {
		paths = append(paths, filepath.Join(xdg.DataHome, "icons"))
	}
	paths = append(paths, DataDirs()...)
	return append(paths, Pixmaps)
}

// DataDirs returns $XDG_DATA_DIRS entries joined with "icons".
func DataDirs() []string {
	paths := make([]string, 0, len(xdg.DataDirs))
	for _, dir := range xdg.DataDirs {
		paths = append(paths, filepath.Join(dir, "icons"))
	}
	return paths
}

// Resolve keeps the existing directories of paths in order, dropping
// duplicates.
func Resolve(paths []string) []string {
	seen := make(map[string]bool, len(paths))
	var roots []string
	for _, p := range paths {
		p = filepath.Clean(p)
		if seen[p] {
			continue
		}
		seen[p] = true
		info, err := os.Stat(p)
		if err != nil || !info.IsDir() {
			continue
		}
		roots = append(roots, p)
	}
	return roots
}
