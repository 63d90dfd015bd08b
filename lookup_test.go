package iconlookup

import (
	"os"
	"path/filepath"
	"testing"
)

const hicolorIndex = `[Icon Theme]
Name=Hicolor
Directories=22x22/apps,scalable/apps

[22x22/apps]
Size=22
Type=Fixed

[scalable/apps]
Size=128
MinSize=8
MaxSize=512
Type=Scalable
`

const adwaitaIndex = `[Icon Theme]
Name=Adwaita
Directories=16x16/apps,48x48/apps

[16x16/apps]
Size=16

[48x48/apps]
Size=48
`

func setupRoot(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, name)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

func testCatalog(t *testing.T) (*Catalog, string) {
	t.Helper()
	root := setupRoot(t, map[string]string{
		"hicolor/index.theme":           hicolorIndex,
		"hicolor/scalable/apps/foo.svg": "",
		"hicolor/22x22/apps/foo.png":    "",
		"Adwaita/index.theme":           adwaitaIndex,
		"Adwaita/16x16/apps/bar.png":    "",
		"Adwaita/48x48/apps/bar.png":    "",
		"loose.png":                     "",
	})
	return NewCatalog([]string{root}, false), root
}

func TestFindDefaults(t *testing.T) {
	c, root := testCatalog(t)

	got, ok := Lookup("foo").WithSize(22).WithCatalog(c).Find()
	want := filepath.Join(root, "hicolor", "22x22", "apps", "foo.png")
	if !ok || got != want {
		t.Errorf("Find() = %q, %v; want %q", got, ok, want)
	}
}

func TestFindForceSVG(t *testing.T) {
	c, root := testCatalog(t)

	got, ok := Lookup("foo").WithSize(256).WithScale(1).ForceSVG().WithCatalog(c).Find()
	want := filepath.Join(root, "hicolor", "scalable", "apps", "foo.svg")
	if !ok || got != want {
		t.Errorf("Find() = %q, %v; want %q", got, ok, want)
	}
}

func TestFindMissing(t *testing.T) {
	c, _ := testCatalog(t)

	if got, ok := Lookup("does-not-exist").WithCatalog(c).Find(); ok {
		t.Errorf("Find() = %q, want nothing", got)
	}
}

func TestFindThemeAndScheme(t *testing.T) {
	c, root := testCatalog(t)
	base := filepath.Join(root, "Adwaita")

	tests := []struct {
		scheme SizeScheme
		want   string
	}{
		{Closest, filepath.Join(base, "16x16", "apps", "bar.png")},
		{LargerClosest, filepath.Join(base, "48x48", "apps", "bar.png")},
		{SmallerClosest, filepath.Join(base, "16x16", "apps", "bar.png")},
	}
	for _, tt := range tests {
		t.Run(tt.scheme.String(), func(t *testing.T) {
			got, ok := Lookup("bar").
				WithTheme("Adwaita").
				WithSize(24).
				WithSizeScheme(tt.scheme).
				WithCatalog(c).
				Find()
			if !ok || got != tt.want {
				t.Errorf("Find() = %q, %v; want %q", got, ok, tt.want)
			}
		})
	}
}

func TestFindFallsBackToHicolor(t *testing.T) {
	c, root := testCatalog(t)

	got, ok := Lookup("foo").WithTheme("Adwaita").WithSize(22).WithCatalog(c).Find()
	want := filepath.Join(root, "hicolor", "22x22", "apps", "foo.png")
	if !ok || got != want {
		t.Errorf("Find() = %q, %v; want %q", got, ok, want)
	}
}

func TestFindFallsBackToUnthemed(t *testing.T) {
	c, root := testCatalog(t)

	got, ok := Lookup("loose").WithTheme("NoSuchTheme").WithCatalog(c).Find()
	want := filepath.Join(root, "loose.png")
	if !ok || got != want {
		t.Errorf("Find() = %q, %v; want %q", got, ok, want)
	}
}

func TestFindWithCache(t *testing.T) {
	c, root := testCatalog(t)
	want := filepath.Join(root, "hicolor", "22x22", "apps", "foo.png")

	got, ok := Lookup("foo").WithSize(22).WithCache().WithCatalog(c).Find()
	if !ok || got != want {
		t.Fatalf("Find() = %q, %v; want %q", got, ok, want)
	}

	// The cached answer survives the file going away.
	if err := os.Remove(want); err != nil {
		t.Fatal(err)
	}
	got, ok = Lookup("foo").WithSize(22).WithCache().WithCatalog(c).Find()
	if !ok || got != want {
		t.Errorf("cached Find() = %q, %v; want %q", got, ok, want)
	}

	// Misses are cached too.
	if _, ok := Lookup("late").WithCache().WithCatalog(c).Find(); ok {
		t.Fatal("unexpected hit")
	}
	if err := os.WriteFile(filepath.Join(root, "late.png"), nil, 0644); err != nil {
		t.Fatal(err)
	}
	if got, ok := Lookup("late").WithCache().WithCatalog(c).Find(); ok {
		t.Errorf("cached miss returned %q", got)
	}
	if _, ok := Lookup("late").WithCatalog(c).Find(); !ok {
		t.Error("uncached Find() should see the new file")
	}
}
