// Package archive builds zip archives and human-readable reports from
// extractions.
package archive

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"path"
	"strings"
	"text/template"
	"time"

	"github.com/fwojciec/sitepack"
	"github.com/klauspost/compress/flate"
)

var _ sitepack.ArchiveBuilder = (*Builder)(nil)

// Builder builds zip archives of extractions. Entries carry the extraction's
// CreatedAt as modification time, so rebuilding an archive yields the same
// bytes.
type Builder struct {
	level int
}

// Option configures a Builder.
type Option func(*Builder)

// WithLevel sets the deflate compression level.
func WithLevel(level int) Option {
	return func(b *Builder) {
		b.level = level
	}
}

// NewBuilder creates a new Builder.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{level: flate.DefaultCompression}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// BuildAssetsArchive puts captured html, css and js under html/, css/ and js/.
// Assets without captured content are omitted.
func (b *Builder) BuildAssetsArchive(e *sitepack.Extraction) ([]byte, error) {
	return b.build(e, func(w *writer) error {
		for _, kind := range []sitepack.AssetKind{sitepack.AssetHTML, sitepack.AssetCSS, sitepack.AssetJS} {
			if err := w.addAssets(string(kind), e.Assets.ByKind(kind)); err != nil {
				return err
			}
		}
		return w.addTemplate("README.md", assetsReadme, newReadmeData(e))
	})
}

// BuildProjectArchive puts captured html at the root and stylesheets and
// scripts under assets/, with a package.json serving the site locally.
func (b *Builder) BuildProjectArchive(e *sitepack.Extraction) ([]byte, error) {
	return b.build(e, func(w *writer) error {
		if err := w.addAssets("", e.Assets.HTML); err != nil {
			return err
		}
		if err := w.addAssets("assets/css", e.Assets.CSS); err != nil {
			return err
		}
		if err := w.addAssets("assets/js", e.Assets.JS); err != nil {
			return err
		}
		pkg, err := newPackageJSON(e)
		if err != nil {
			return err
		}
		if err := w.add("", "package.json", pkg); err != nil {
			return err
		}
		return w.addTemplate("README.md", projectReadme, newReadmeData(e))
	})
}

func (b *Builder) build(e *sitepack.Extraction, fill func(w *writer) error) ([]byte, error) {
	if e == nil {
		return nil, sitepack.Errorf(sitepack.EINVALID, "extraction required")
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	zw.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(out, b.level)
	})

	w := &writer{zw: zw, modified: e.CreatedAt.UTC(), names: make(map[string]bool)}
	if err := fill(w); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("closing archive: %w", err)
	}
	return buf.Bytes(), nil
}

// writer adds entries to a zip, renaming duplicates within a folder.
type writer struct {
	zw       *zip.Writer
	modified time.Time
	names    map[string]bool
}

func (w *writer) addAssets(dir string, assets []sitepack.Asset) error {
	for _, a := range assets {
		if !a.HasContent() {
			continue
		}
		if err := w.add(dir, a.Name, []byte(a.Content)); err != nil {
			return err
		}
	}
	return nil
}

func (w *writer) addTemplate(name string, tmpl *template.Template, data any) error {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return fmt.Errorf("rendering %s: %w", name, err)
	}
	return w.add("", name, buf.Bytes())
}

func (w *writer) add(dir, name string, content []byte) error {
	p := w.unique(path.Join(dir, safeName(name)))
	f, err := w.zw.CreateHeader(&zip.FileHeader{
		Name:     p,
		Method:   zip.Deflate,
		Modified: w.modified,
	})
	if err != nil {
		return fmt.Errorf("adding %s: %w", p, err)
	}
	if _, err := f.Write(content); err != nil {
		return fmt.Errorf("writing %s: %w", p, err)
	}
	return nil
}

// unique returns p, or p with "-1", "-2"... inserted before the extension
// when p was already written.
func (w *writer) unique(p string) string {
	candidate := p
	ext := path.Ext(p)
	stem := strings.TrimSuffix(p, ext)
	for i := 1; w.names[candidate]; i++ {
		candidate = fmt.Sprintf("%s-%d%s", stem, i, ext)
	}
	w.names[candidate] = true
	return candidate
}

func safeName(name string) string {
	name = strings.NewReplacer("/", "_", "\\", "_").Replace(name)
	if name == "" || name == "." || name == ".." {
		return "_"
	}
	return name
}

type packageJSON struct {
	Name            string            `json:"name"`
	Version         string            `json:"version"`
	Description     string            `json:"description"`
	Main            string            `json:"main"`
	Scripts         map[string]string `json:"scripts"`
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies"`
}

func newPackageJSON(e *sitepack.Extraction) ([]byte, error) {
	b, err := json.MarshalIndent(packageJSON{
		Name:        "extracted-" + e.HostSlug(),
		Version:     "1.0.0",
		Description: "Extracted frontend from " + e.URL,
		Main:        "index.html",
		Scripts: map[string]string{
			"start": "python -m http.server 8000",
			"serve": "npx http-server .",
		},
		Dependencies:    map[string]string{},
		DevDependencies: map[string]string{"http-server": "^14.1.1"},
	}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding package.json: %w", err)
	}
	return append(b, '\n'), nil
}
