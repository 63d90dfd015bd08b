package iconpath

import (
	"os"
	"path/filepath"
)

// Extensions lists icon file extensions in lookup priority order.
var Extensions = []string{".png", ".svg", ".xmp"}

const svg = ".svg"

// Build returns the first existing icon file for name in dir. With forceSVG
// only the .svg file is considered.
func Build(name, dir string, forceSVG bool) (string, bool) {
	if forceSVG {
		return probe(dir, name+svg)
	}
	for _, ext := range Extensions {
		if path, ok := probe(dir, name+ext); ok {
			return path, true
		}
	}
	return "", false
}

// Unthemed looks for name directly inside each search root, for icons
// installed outside any theme such as /usr/share/pixmaps/foo.png.
func Unthemed(name string, roots []string, forceSVG bool) (string, bool) {
	for _, root := range roots {
		if path, ok := Build(name, root, forceSVG); ok {
			return path, true
		}
	}
	return "", false
}

func probe(dir, file string) (string, bool) {
	path := filepath.Join(dir, file)
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return "", false
	}
	return path, true
}
