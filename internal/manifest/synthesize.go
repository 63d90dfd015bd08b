package manifest

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// DefaultSynthesizedSize is used for size buckets whose name does not start
// with a number, such as "scalable".
const DefaultSynthesizedSize = 128

// Synthesize builds a manifest for a theme directory that has no index file.
// Every immediate subdirectory is a size bucket ("48x48") and every directory
// nested below a bucket ("48x48/apps") becomes a Fixed entry sized after its
// bucket.
func Synthesize(themeDir string) (*Manifest, error) {
	buckets, err := os.ReadDir(themeDir)
	if err != nil {
		return nil, fmt.Errorf("listing theme directory: %w", err)
	}

	m := &Manifest{
		Path:        themeDir,
		Name:        filepath.Base(themeDir),
		Synthesized: true,
	}

	for _, bucket := range buckets {
		link := filepath.Join(themeDir, bucket.Name())
		if !IsDir(link, bucket) {
			continue
		}
		// WalkDir does not descend into a symlinked root, so walk the target
		// and name entries after the bucket.
		root, err := filepath.EvalSymlinks(link)
		if err != nil {
			return nil, fmt.Errorf("resolving %s: %w", link, err)
		}

		size := bucketSize(bucket.Name())
		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if path == root || !d.IsDir() {
				return nil
			}
			rel, err := filepath.Rel(root, path)
			if err != nil {
				return err
			}
			m.Directories = append(m.Directories, DirectoryEntry{
				Name:      bucket.Name() + "/" + filepath.ToSlash(rel),
				Size:      size,
				Scale:     1,
				Kind:      Fixed,
				MinSize:   size,
				MaxSize:   size,
				Threshold: DefaultThreshold,
			})
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walking %s: %w", link, err)
		}
	}

	return m, nil
}

// bucketSize reads the leading number of a bucket name like "48x48" or
// "48x48@2".
func bucketSize(name string) int {
	head, _, _ := strings.Cut(name, "x")
	n, err := strconv.Atoi(head)
	if err != nil || n < 1 {
		return DefaultSynthesizedSize
	}
	return n
}

// IsDir reports whether a directory entry found at path is a directory,
// following symlinks, which os.ReadDir entries do not.
func IsDir(path string, entry fs.DirEntry) bool {
	if entry.IsDir() {
		return true
	}
	if entry.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
