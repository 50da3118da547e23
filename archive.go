package helpmaker

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/klauspost/compress/zip"

	"github.com/alnah/go-helpmaker/internal/assets"
	"github.com/alnah/go-helpmaker/internal/fileutil"
	"github.com/alnah/go-helpmaker/internal/logging"
	"github.com/alnah/go-helpmaker/internal/yamlutil"
)

// archiveEpoch is the modification time of every archive entry, so equal
// inputs give byte-identical archives.
var archiveEpoch = time.Date(1980, time.January, 1, 0, 0, 0, 0, time.UTC)

// DefaultManifestName is the archive entry listing the control ids.
const DefaultManifestName = "controls.yaml"

// ManifestEntry maps a control id to a page inside the archive.
type ManifestEntry struct {
	Control string `yaml:"control"`
	Page    string `yaml:"page"`
}

// Manifest is the content of the control manifest entry.
type Manifest struct {
	Controls []ManifestEntry `yaml:"controls"`
}

// Packager writes the help archive from the staged documents and resources.
type Packager struct {
	page     *assets.Page
	manifest string
	logger   *slog.Logger
}

// NewPackager creates a Packager rendering documents with page.
func NewPackager(page *assets.Page, manifestName string, logger *slog.Logger) *Packager {
	if manifestName == "" {
		manifestName = DefaultManifestName
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Packager{page: page, manifest: manifestName, logger: logger}
}

// Package writes the archive to outFile atomically. Documents become
// <relative path>.html pages, files under resourceDir keep their relative
// paths, and the manifest lists controls with the page each one points to.
func (p *Packager) Package(outFile string, paths StagingPaths, docs []Document, controls []ControlEntry) error {
	pages := make(map[string]string, len(docs)) // stage-2 path -> page name
	err := fileutil.WriteFileAtomic(outFile, func(w io.Writer) error {
		zw := zip.NewWriter(w)

		for _, doc := range docs {
			name, err := pageName(paths[StageExtract], doc.Stage2)
			if err != nil {
				return err
			}
			if err := p.addPage(zw, name, doc); err != nil {
				return fmt.Errorf("packaging %s: %w", doc.Source, err)
			}
			pages[doc.Stage2] = name
		}

		if err := p.addResources(zw, paths[StageRelocate]); err != nil {
			return err
		}

		if err := p.addManifest(zw, controls, pages); err != nil {
			return err
		}
		return zw.Close()
	})
	if err != nil {
		return fmt.Errorf("writing archive %s: %w", outFile, err)
	}
	logging.Notice(p.logger, "archive written", "path", outFile, "pages", len(docs), "controls", len(controls))
	return nil
}

func (p *Packager) addPage(zw *zip.Writer, name string, doc Document) error {
	body, err := os.ReadFile(doc.Stage2) // #nosec G304 -- staged file
	if err != nil {
		return err
	}

	title := doc.Title
	if title == "" {
		title = firstHeading(body)
	}
	if title == "" {
		title = strings.TrimSuffix(filepath.Base(doc.Source), filepath.Ext(doc.Source))
	}

	w, err := createEntry(zw, name)
	if err != nil {
		return err
	}
	return p.page.Render(w, assets.PageData{
		Title:   title,
		Control: doc.Control,
		Body:    template.HTML(body), // #nosec G203 -- document compiled from trusted sources
	})
}

func (p *Packager) addResources(zw *zip.Writer, dir string) error {
	if !fileutil.DirExists(dir) {
		return nil
	}
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || !d.Type().IsRegular() {
			return err
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		w, err := createEntry(zw, filepath.ToSlash(rel))
		if err != nil {
			return err
		}
		f, err := os.Open(path) // #nosec G304 -- staged file
		if err != nil {
			return err
		}
		defer f.Close()
		_, err = io.Copy(w, f)
		return err
	})
}

func (p *Packager) addManifest(zw *zip.Writer, controls []ControlEntry, pages map[string]string) error {
	m := Manifest{Controls: make([]ManifestEntry, 0, len(controls))}
	for _, c := range controls {
		page, ok := pages[c.Path]
		if !ok {
			p.logger.Warn("control without packaged page", "control", c.Control, "path", c.Path)
			continue
		}
		m.Controls = append(m.Controls, ManifestEntry{Control: c.Control, Page: page})
	}

	w, err := createEntry(zw, p.manifest)
	if err != nil {
		return err
	}
	return yamlutil.Encode(w, m)
}

func createEntry(zw *zip.Writer, name string) (io.Writer, error) {
	return zw.CreateHeader(&zip.FileHeader{
		Name:     name,
		Method:   zip.Deflate,
		Modified: archiveEpoch,
	})
}

// pageName turns a stage-2 path into the slash-separated page name.
func pageName(stageDir, stage2 string) (string, error) {
	rel, err := filepath.Rel(stageDir, stage2)
	if err != nil {
		return "", err
	}
	return filepath.ToSlash(strings.TrimSuffix(rel, filepath.Ext(rel)) + ".html"), nil
}

// firstHeading returns the text of the first <h1> in an HTML fragment.
func firstHeading(fragment []byte) string {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(fragment))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(doc.Find("h1").First().Text())
}
