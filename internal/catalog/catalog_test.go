package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/jsvensson/iconlookup/internal/manifest"
	"github.com/jsvensson/iconlookup/internal/matcher"
)

const hicolorIndex = `[Icon Theme]
Name=Hicolor
Directories=22x22/apps,48x48/apps,scalable/apps

[22x22/apps]
Size=22
Type=Fixed

[48x48/apps]
Size=48
Type=Fixed

[scalable/apps]
Size=128
MinSize=8
MaxSize=512
Type=Scalable
`

// writeTree creates files relative to root. Paths ending in "/" are
// created as directories.
func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(root, name)
		if name[len(name)-1] == '/' {
			if err := os.MkdirAll(path, 0755); err != nil {
				t.Fatal(err)
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
}

func locationDirs(locs []*Location) []string {
	dirs := make([]string, len(locs))
	for i, l := range locs {
		dirs[i] = l.Dir
	}
	return dirs
}

func TestBuildSingleRoot(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"hicolor/index.theme":  hicolorIndex,
		"Adwaita/index.theme":  "[Icon Theme]\nDirectories=\n",
		"no-index/48x48/apps/": "",
		"stray-file":           "x",
	})

	c := Build([]string{root}, Options{})

	if diff := cmp.Diff([]string{"Adwaita", "hicolor"}, c.Names()); diff != "" {
		t.Errorf("Names mismatch (-want +got):\n%s", diff)
	}
	locs := c.Locations("hicolor")
	if len(locs) != 1 {
		t.Fatalf("len(Locations) = %d, want 1", len(locs))
	}
	if locs[0].ManifestPath != filepath.Join(root, "hicolor", manifest.IndexFile) {
		t.Errorf("ManifestPath = %q", locs[0].ManifestPath)
	}
	if c.Has("no-index") {
		t.Error("theme without index should be dropped")
	}
}

func TestBuildBorrowsEarlierManifest(t *testing.T) {
	system := t.TempDir()
	user := t.TempDir()
	writeTree(t, system, map[string]string{"hicolor/index.theme": hicolorIndex})
	writeTree(t, user, map[string]string{"hicolor/48x48/apps/": ""})

	c := Build([]string{system, user}, Options{})
	locs := c.Locations("hicolor")

	want := []string{filepath.Join(system, "hicolor"), filepath.Join(user, "hicolor")}
	if diff := cmp.Diff(want, locationDirs(locs)); diff != "" {
		t.Fatalf("location dirs mismatch (-want +got):\n%s", diff)
	}
	index := filepath.Join(system, "hicolor", manifest.IndexFile)
	for _, l := range locs {
		if l.ManifestPath != index {
			t.Errorf("%s uses %q, want %q", l.Dir, l.ManifestPath, index)
		}
	}
}

func TestLocationManifestBorrowed(t *testing.T) {
	system := t.TempDir()
	user := t.TempDir()
	writeTree(t, system, map[string]string{"hicolor/index.theme": hicolorIndex})
	writeTree(t, user, map[string]string{"hicolor/48x48/apps/": ""})

	c := Build([]string{system, user}, Options{})
	for _, l := range c.Locations("hicolor") {
		m, err := l.Manifest()
		if err != nil {
			t.Fatalf("%s: Manifest() error: %v", l.Dir, err)
		}
		if len(m.Directories) != 3 {
			t.Errorf("%s: len(Directories) = %d, want 3", l.Dir, len(m.Directories))
		}
	}
}

func TestBuildFollowsSymlinks(t *testing.T) {
	root := t.TempDir()
	store := t.TempDir()
	writeTree(t, store, map[string]string{
		"hicolor/index.theme": hicolorIndex,
		"real48/apps/foo.png": "",
		"bare/placeholder/":   "",
	})
	links := map[string]string{
		filepath.Join(store, "hicolor"): filepath.Join(root, "hicolor"),
		filepath.Join(store, "bare"):    filepath.Join(root, "bare"),
		filepath.Join(store, "real48"):  filepath.Join(store, "bare", "48x48"),
	}
	for target, link := range links {
		if err := os.Symlink(target, link); err != nil {
			t.Skipf("symlinks unsupported: %v", err)
		}
	}

	c := Build([]string{root}, Options{Synthesize: true})
	if !c.Has("hicolor") {
		t.Error("symlinked theme folder was skipped")
	}

	path, ok := c.Resolve(Request{Theme: "bare", Icon: "foo", Size: 48, Scale: 1})
	want := filepath.Join(root, "bare", "48x48", "apps", "foo.png")
	if !ok || path != want {
		t.Errorf("Resolve() = %q, %v, want %q", path, ok, want)
	}
}

func TestBuildDeferredEntryUsesLaterManifest(t *testing.T) {
	user := t.TempDir()
	system := t.TempDir()
	writeTree(t, user, map[string]string{"hicolor/48x48/apps/": ""})
	writeTree(t, system, map[string]string{"hicolor/index.theme": hicolorIndex})

	c := Build([]string{user, system}, Options{})
	locs := c.Locations("hicolor")

	// The deferred user folder is appended after the sweep.
	want := []string{filepath.Join(system, "hicolor"), filepath.Join(user, "hicolor")}
	if diff := cmp.Diff(want, locationDirs(locs)); diff != "" {
		t.Fatalf("location dirs mismatch (-want +got):\n%s", diff)
	}
	if locs[1].ManifestPath != filepath.Join(system, "hicolor", manifest.IndexFile) {
		t.Errorf("deferred location uses %q", locs[1].ManifestPath)
	}
}

func TestBuildFirstManifestWins(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()
	writeTree(t, first, map[string]string{"hicolor/index.theme": hicolorIndex})
	writeTree(t, second, map[string]string{"hicolor/index.theme": "[Icon Theme]\nDirectories=\n"})

	c := Build([]string{first, second}, Options{})
	want := filepath.Join(first, "hicolor", manifest.IndexFile)
	for _, l := range c.Locations("hicolor") {
		if l.ManifestPath != want {
			t.Errorf("%s uses %q, want %q", l.Dir, l.ManifestPath, want)
		}
	}
}

func TestBuildSkipsUnreadableRoot(t *testing.T) {
	good := t.TempDir()
	writeTree(t, good, map[string]string{"hicolor/index.theme": hicolorIndex})

	c := Build([]string{filepath.Join(t.TempDir(), "missing"), good}, Options{})
	if !c.Has("hicolor") {
		t.Fatal("hicolor missing after unreadable root")
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
}

func TestBuildSynthesize(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"bare/32x32/apps/foo.png": "",
	})

	if c := Build([]string{root}, Options{}); c.Has("bare") {
		t.Fatal("bare theme should be dropped without synthesis")
	}

	c := Build([]string{root}, Options{Synthesize: true})
	locs := c.Locations("bare")
	if len(locs) != 1 || !locs[0].Synthesized {
		t.Fatalf("Locations = %+v, want one synthesized location", locs)
	}

	path, ok := c.Resolve(Request{Theme: "bare", Icon: "foo", Size: 32, Scale: 1})
	if !ok || path != filepath.Join(root, "bare", "32x32", "apps", "foo.png") {
		t.Errorf("Resolve() = %q, %v", path, ok)
	}
}

func TestLocationManifestError(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"broken/index.theme": "[Icon Theme\n"})

	c := Build([]string{root}, Options{})
	locs := c.Locations("broken")
	if len(locs) != 1 {
		t.Fatalf("len(Locations) = %d, want 1", len(locs))
	}
	if _, err := locs[0].Manifest(); !errors.Is(err, manifest.ErrParse) {
		t.Errorf("Manifest() error = %v, want ErrParse", err)
	}
	if _, ok := c.Resolve(Request{Theme: "broken", Icon: "foo", Size: 24}); ok {
		t.Error("Resolve() should find nothing in a broken theme")
	}
}

func TestLocationsIsACopy(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"hicolor/index.theme": hicolorIndex})
	c := Build([]string{root}, Options{})

	locs := c.Locations("hicolor")
	locs[0] = nil
	if c.Locations("hicolor")[0] == nil {
		t.Error("mutating the returned slice changed the catalog")
	}
}

func TestResolveEndToEnd(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"hicolor/index.theme":           hicolorIndex,
		"hicolor/scalable/apps/foo.svg": "",
		"hicolor/22x22/apps/foo.png":    "",
	})
	c := Build([]string{root}, Options{})
	base := filepath.Join(root, "hicolor")

	tests := []struct {
		name   string
		req    Request
		want   string
		wantOK bool
	}{
		{
			name:   "exact png",
			req:    Request{Theme: "hicolor", Icon: "foo", Size: 22, Scale: 1},
			want:   filepath.Join(base, "22x22", "apps", "foo.png"),
			wantOK: true,
		},
		{
			name:   "forced svg",
			req:    Request{Theme: "hicolor", Icon: "foo", Size: 256, Scale: 1, ForceSVG: true},
			want:   filepath.Join(base, "scalable", "apps", "foo.svg"),
			wantOK: true,
		},
		{
			name: "missing icon",
			req:  Request{Theme: "hicolor", Icon: "nope", Size: 22, Scale: 1},
		},
		{
			name: "missing theme",
			req:  Request{Theme: "Adwaita", Icon: "foo", Size: 22, Scale: 1},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := c.Resolve(tt.req)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("Resolve() = %q, %v; want %q, %v", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestResolveExactBeforeClosest(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"hicolor/index.theme":        hicolorIndex,
		"hicolor/48x48/apps/foo.png": "",
		"hicolor/22x22/apps/foo.png": "",
	})
	c := Build([]string{root}, Options{})

	got, ok := c.Resolve(Request{Theme: "hicolor", Icon: "foo", Size: 48, Scale: 1, Scheme: matcher.SmallerClosest})
	want := filepath.Join(root, "hicolor", "48x48", "apps", "foo.png")
	if !ok || got != want {
		t.Errorf("Resolve() = %q, %v; want %q", got, ok, want)
	}
}

func TestResolveExactAnywhereBeatsEarlierClosest(t *testing.T) {
	user := t.TempDir()
	system := t.TempDir()
	// The user root has the icon only at 22px; the system root has it at the
	// requested 48px.
	writeTree(t, user, map[string]string{
		"hicolor/index.theme":        hicolorIndex,
		"hicolor/22x22/apps/foo.png": "",
	})
	writeTree(t, system, map[string]string{
		"hicolor/48x48/apps/foo.png": "",
	})
	c := Build([]string{user, system}, Options{})

	got, ok := c.Resolve(Request{Theme: "hicolor", Icon: "foo", Size: 48, Scale: 1})
	want := filepath.Join(system, "hicolor", "48x48", "apps", "foo.png")
	if !ok || got != want {
		t.Errorf("Resolve() = %q, %v; want %q", got, ok, want)
	}

	// At 40px nothing fits exactly, so the closest pass starts with the
	// user location.
	got, ok = c.Resolve(Request{Theme: "hicolor", Icon: "foo", Size: 40, Scale: 1})
	want = filepath.Join(user, "hicolor", "22x22", "apps", "foo.png")
	if !ok || got != want {
		t.Errorf("Resolve() = %q, %v; want %q", got, ok, want)
	}
}

func TestResolveBareFolderAfterIndexedRoot(t *testing.T) {
	system := t.TempDir()
	user := t.TempDir()
	writeTree(t, system, map[string]string{"hicolor/index.theme": hicolorIndex})
	writeTree(t, user, map[string]string{"hicolor/48x48/apps/only-here.png": ""})

	c := Build([]string{system, user}, Options{})
	got, ok := c.Resolve(Request{Theme: "hicolor", Icon: "only-here", Size: 48, Scale: 1})
	want := filepath.Join(user, "hicolor", "48x48", "apps", "only-here.png")
	if !ok || got != want {
		t.Errorf("Resolve() = %q, %v; want %q", got, ok, want)
	}
}

func TestResolveSchemes(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"hicolor/index.theme": `[Icon Theme]
Directories=16x16/apps,32x32/apps

[16x16/apps]
Size=16

[32x32/apps]
Size=32
`,
		"hicolor/16x16/apps/foo.png": "",
		"hicolor/32x32/apps/foo.png": "",
	})
	c := Build([]string{root}, Options{})
	base := filepath.Join(root, "hicolor")

	tests := []struct {
		scheme matcher.SizeScheme
		size   int
		want   string
	}{
		{matcher.Closest, 20, "16x16"},
		{matcher.Closest, 28, "32x32"},
		{matcher.LargerClosest, 20, "32x32"},
		{matcher.SmallerClosest, 28, "16x16"},
	}
	for _, tt := range tests {
		t.Run(tt.scheme.String(), func(t *testing.T) {
			got, ok := c.Resolve(Request{Theme: "hicolor", Icon: "foo", Size: tt.size, Scale: 1, Scheme: tt.scheme})
			want := filepath.Join(base, tt.want, "apps", "foo.png")
			if !ok || got != want {
				t.Errorf("Resolve() = %q, %v; want %q", got, ok, want)
			}
		})
	}
}

func TestDefaultBuiltOnce(t *testing.T) {
	var wg sync.WaitGroup
	got := make([]*Catalog, 8)
	for i := range got {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got[i] = Default()
		}()
	}
	wg.Wait()

	for i, c := range got {
		if c == nil || c != got[0] {
			t.Fatalf("Default() call %d returned a different catalog", i)
		}
	}
}
