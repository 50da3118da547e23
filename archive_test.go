package helpmaker

import (
	"bytes"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"

	"github.com/alnah/go-helpmaker/internal/assets"
	"github.com/alnah/go-helpmaker/internal/yamlutil"
)

func newTestPackager(t *testing.T) *Packager {
	t.Helper()
	resolver, err := assets.NewAssetResolver("")
	if err != nil {
		t.Fatalf("NewAssetResolver() error = %v", err)
	}
	page, err := assets.LoadPage(resolver, assets.DefaultTemplateName, assets.DefaultStyleName)
	if err != nil {
		t.Fatalf("LoadPage() error = %v", err)
	}
	return NewPackager(page, "", nil)
}

// stageDocs writes stage-2 fragments, keyed by slash-separated relative
// path, under a fresh working directory.
func stageDocs(t *testing.T, fragments map[string]string) StagingPaths {
	t.Helper()
	paths, err := GeneratePaths(t.TempDir())
	if err != nil {
		t.Fatalf("GeneratePaths() error = %v", err)
	}
	for rel, content := range fragments {
		writeFile(t, filepath.Join(paths[StageExtract], filepath.FromSlash(rel)), content)
	}
	return paths
}

func TestPackager_Package(t *testing.T) {
	t.Parallel()

	paths := stageDocs(t, map[string]string{
		"index.stage2":       "<h1 id=\"welcome\">Welcome</h1>\n<p>Start here.</p>\n",
		"guide/intro.stage2": "<p>No heading.</p>\n",
	})
	writeFile(t, filepath.Join(paths[StageRelocate], "images", "logo.png"), "PNG")

	index := filepath.Join(paths[StageExtract], "index.stage2")
	intro := filepath.Join(paths[StageExtract], "guide", "intro.stage2")
	docs := []Document{
		{Source: "/in/index.help", Stage2: index, Control: "MainWindow"},
		{Source: "/in/guide/intro.help", Stage2: intro, Title: "Getting Started"},
	}
	controls := []ControlEntry{
		{Control: "MainWindow", Path: index},
		{Control: "Orphan", Path: "/elsewhere/x.stage2"},
	}

	out := filepath.Join(t.TempDir(), "help.zip")
	if err := newTestPackager(t).Package(out, paths, docs, controls); err != nil {
		t.Fatalf("Package() error = %v", err)
	}

	entries, names := readArchive(t, out)
	wantNames := []string{"index.html", "guide/intro.html", "images/logo.png", DefaultManifestName}
	if !slices.Equal(names, wantNames) {
		t.Fatalf("entries = %v, want %v", names, wantNames)
	}

	if entries["images/logo.png"] != "PNG" {
		t.Errorf("resource content = %q, want %q", entries["images/logo.png"], "PNG")
	}

	t.Run("title from first heading", func(t *testing.T) {
		doc := parseHTML(t, entries["index.html"])
		if got := doc.Find("title").Text(); got != "Welcome" {
			t.Errorf("title = %q, want %q", got, "Welcome")
		}
		if got, _ := doc.Find(`meta[name="help-control"]`).Attr("content"); got != "MainWindow" {
			t.Errorf("help-control = %q, want %q", got, "MainWindow")
		}
		if doc.Find("main.help-page h1#welcome").Length() != 1 {
			t.Error("body fragment not embedded in page")
		}
		if doc.Find("style").Length() != 1 {
			t.Error("stylesheet not inlined")
		}
	})

	t.Run("title from frontmatter", func(t *testing.T) {
		doc := parseHTML(t, entries["guide/intro.html"])
		if got := doc.Find("title").Text(); got != "Getting Started" {
			t.Errorf("title = %q, want %q", got, "Getting Started")
		}
		if doc.Find(`meta[name="help-control"]`).Length() != 0 {
			t.Error("help-control emitted for a page without control")
		}
	})

	t.Run("manifest skips controls without page", func(t *testing.T) {
		var m Manifest
		if err := yamlutil.Unmarshal([]byte(entries[DefaultManifestName]), &m); err != nil {
			t.Fatalf("decoding manifest: %v", err)
		}
		want := []ManifestEntry{{Control: "MainWindow", Page: "index.html"}}
		if !slices.Equal(m.Controls, want) {
			t.Errorf("manifest = %+v, want %+v", m.Controls, want)
		}
	})
}

func TestPackager_TitleFallsBackToFileName(t *testing.T) {
	t.Parallel()

	paths := stageDocs(t, map[string]string{"faq.stage2": "<p>Questions.</p>\n"})
	docs := []Document{{Source: "/in/faq.help", Stage2: filepath.Join(paths[StageExtract], "faq.stage2")}}

	out := filepath.Join(t.TempDir(), "help.zip")
	if err := newTestPackager(t).Package(out, paths, docs, nil); err != nil {
		t.Fatalf("Package() error = %v", err)
	}

	entries, _ := readArchive(t, out)
	if got := parseHTML(t, entries["faq.html"]).Find("title").Text(); got != "faq" {
		t.Errorf("title = %q, want %q", got, "faq")
	}
}

func TestPackager_Deterministic(t *testing.T) {
	t.Parallel()

	paths := stageDocs(t, map[string]string{"a.stage2": "<h1>A</h1>\n"})
	docs := []Document{{Source: "/in/a.help", Stage2: filepath.Join(paths[StageExtract], "a.stage2")}}
	dir := t.TempDir()
	p := newTestPackager(t)

	var archives [2][]byte
	for i := range archives {
		out := filepath.Join(dir, "help.zip")
		if err := p.Package(out, paths, docs, nil); err != nil {
			t.Fatalf("Package() error = %v", err)
		}
		data, err := os.ReadFile(out)
		if err != nil {
			t.Fatal(err)
		}
		archives[i] = data
	}
	if !bytes.Equal(archives[0], archives[1]) {
		t.Error("archives differ between identical runs")
	}
}

func TestFirstHeading(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		fragment string
		want     string
	}{
		{name: "first of several", fragment: "<h1>One</h1><h1>Two</h1>", want: "One"},
		{name: "nested markup", fragment: "<h1>Use <code>build</code> </h1>", want: "Use build"},
		{name: "none", fragment: "<h2>Sub</h2>", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := firstHeading([]byte(tt.fragment)); got != tt.want {
				t.Errorf("firstHeading() = %q, want %q", got, tt.want)
			}
		})
	}
}

func parseHTML(t *testing.T, content string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		t.Fatalf("parsing HTML: %v", err)
	}
	return doc
}
