package main_test

import (
	"archive/zip"
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fwojciec/sitepack"
	"github.com/fwojciec/sitepack/archive"
	main "github.com/fwojciec/sitepack/cmd/sitepack"
	"github.com/fwojciec/sitepack/htmltomarkdown"
	"github.com/fwojciec/sitepack/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newExtraction() *sitepack.Extraction {
	e := &sitepack.Extraction{
		ID:        "ext-1",
		URL:       "https://www.example.com/",
		Title:     "Example",
		CreatedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		Frameworks: []sitepack.Framework{
			{Name: sitepack.FrameworkReact, Detected: true, Version: sitepack.VersionUnknown, Confidence: 100},
			{Name: sitepack.FrameworkVue},
		},
		Performance: sitepack.Performance{Score: 98, TotalSize: 200000},
	}
	e.Assets.Append(
		sitepack.Asset{Name: "index.html", Kind: sitepack.AssetHTML, Content: "<html></html>", Size: 13},
		sitepack.Asset{Name: "style.css", Kind: sitepack.AssetCSS, Content: "body{}", Size: 6},
	)
	e.Normalize()
	return e
}

func newDeps(stdout, stderr *bytes.Buffer) *main.Dependencies {
	return &main.Dependencies{
		Ctx:    context.Background(),
		Stdout: stdout,
		Stderr: stderr,
		Now:    func() time.Time { return time.UnixMilli(1700000000000) },
	}
}

func findExtraction(_ context.Context, id string) (*sitepack.Extraction, error) {
	if id != "ext-1" {
		return nil, sitepack.Errorf(sitepack.ENOTFOUND, "Extraction not found")
	}
	return newExtraction(), nil
}

func TestAnalyzeCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("prints summary", func(t *testing.T) {
		t.Parallel()

		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
		deps := newDeps(stdout, stderr)
		deps.Analyzer = &mock.Analyzer{
			AnalyzeFn: func(ctx context.Context, url string) (*sitepack.Extraction, error) {
				return newExtraction(), nil
			},
		}

		err := (&main.AnalyzeCmd{URL: "https://www.example.com/"}).Run(deps)

		require.NoError(t, err)
		out := stdout.String()
		assert.Contains(t, out, "ext-1")
		assert.Contains(t, out, "html=1 css=1 js=0 images=0 fonts=0")
		assert.Contains(t, out, "Frameworks:  React")
		assert.Contains(t, out, "98/100")
	})

	t.Run("reports error message", func(t *testing.T) {
		t.Parallel()

		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
		deps := newDeps(stdout, stderr)
		deps.Analyzer = &mock.Analyzer{
			AnalyzeFn: func(ctx context.Context, url string) (*sitepack.Extraction, error) {
				return nil, sitepack.Errorf(sitepack.EINVALID, "Invalid URL: %s", url)
			},
		}

		err := (&main.AnalyzeCmd{URL: "nope"}).Run(deps)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "Invalid URL: nope")
	})
}

func TestListCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("lists id, score and url", func(t *testing.T) {
		t.Parallel()

		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
		deps := newDeps(stdout, stderr)
		var gotLimit int
		deps.Extractions = &mock.ExtractionService{
			FindRecentExtractionsFn: func(ctx context.Context, limit int) ([]*sitepack.Extraction, error) {
				gotLimit = limit
				return []*sitepack.Extraction{newExtraction()}, nil
			},
		}

		err := (&main.ListCmd{Limit: 5}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t, 5, gotLimit)
		assert.Contains(t, stdout.String(), "ext-1")
		assert.Contains(t, stdout.String(), " 98 ")
		assert.Contains(t, stdout.String(), "https://www.example.com/")
	})
}

func TestShowCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("lists assets", func(t *testing.T) {
		t.Parallel()

		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
		deps := newDeps(stdout, stderr)
		deps.Extractions = &mock.ExtractionService{FindExtractionByIDFn: findExtraction}

		err := (&main.ShowCmd{ID: "ext-1"}).Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "style.css")
		assert.Contains(t, stdout.String(), "index.html")
	})

	t.Run("prints json", func(t *testing.T) {
		t.Parallel()

		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
		deps := newDeps(stdout, stderr)
		deps.Extractions = &mock.ExtractionService{FindExtractionByIDFn: findExtraction}

		err := (&main.ShowCmd{ID: "ext-1", JSON: true}).Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), `"id": "ext-1"`)
	})

	t.Run("unknown id", func(t *testing.T) {
		t.Parallel()

		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
		deps := newDeps(stdout, stderr)
		deps.Extractions = &mock.ExtractionService{FindExtractionByIDFn: findExtraction}

		err := (&main.ShowCmd{ID: "missing"}).Run(deps)

		assert.Equal(t, sitepack.ENOTFOUND, sitepack.ErrorCode(err))
		assert.Contains(t, stderr.String(), "Extraction not found")
	})
}

func TestDeleteCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("deletes when --force is set", func(t *testing.T) {
		t.Parallel()

		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
		deps := newDeps(stdout, stderr)
		var deleted string
		deps.Extractions = &mock.ExtractionService{
			DeleteExtractionFn: func(ctx context.Context, id string) error {
				deleted = id
				return nil
			},
		}

		err := (&main.DeleteCmd{ID: "ext-1", Force: true}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "ext-1", deleted)
		assert.Contains(t, stdout.String(), "Deleted")
	})

	t.Run("requires --force flag", func(t *testing.T) {
		t.Parallel()

		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
		deps := newDeps(stdout, stderr)

		err := (&main.DeleteCmd{ID: "ext-1"}).Run(deps)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "--force")
	})

	t.Run("hints at list when not found", func(t *testing.T) {
		t.Parallel()

		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
		deps := newDeps(stdout, stderr)
		deps.Extractions = &mock.ExtractionService{
			DeleteExtractionFn: func(ctx context.Context, id string) error {
				return sitepack.Errorf(sitepack.ENOTFOUND, "Extraction not found")
			},
		}

		err := (&main.DeleteCmd{ID: "missing", Force: true}).Run(deps)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "sitepack list")
	})
}

func TestExportCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("writes project archive to file", func(t *testing.T) {
		t.Parallel()

		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
		deps := newDeps(stdout, stderr)
		deps.Extractions = &mock.ExtractionService{FindExtractionByIDFn: findExtraction}
		deps.Archives = archive.NewBuilder()
		out := filepath.Join(t.TempDir(), "site.zip")

		err := (&main.ExportCmd{ID: "ext-1", Project: true, Output: out}).Run(deps)

		require.NoError(t, err)
		r, err := zip.OpenReader(out)
		require.NoError(t, err)
		defer r.Close()
		var names []string
		for _, f := range r.File {
			names = append(names, f.Name)
		}
		assert.Contains(t, names, "index.html")
		assert.Contains(t, names, "assets/css/style.css")
		assert.Contains(t, names, "package.json")
	})

	t.Run("writes assets archive to stdout", func(t *testing.T) {
		t.Parallel()

		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
		deps := newDeps(stdout, stderr)
		deps.Extractions = &mock.ExtractionService{FindExtractionByIDFn: findExtraction}
		deps.Archives = &mock.ArchiveBuilder{
			BuildAssetsArchiveFn: func(e *sitepack.Extraction) ([]byte, error) {
				return []byte("zip-bytes"), nil
			},
		}

		err := (&main.ExportCmd{ID: "ext-1", Output: "-"}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "zip-bytes", stdout.String())
	})
}

func TestExportCmd_Run_DefaultFilename(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	deps := newDeps(stdout, stderr)
	deps.Extractions = &mock.ExtractionService{FindExtractionByIDFn: findExtraction}
	deps.Archives = archive.NewBuilder()

	err := (&main.ExportCmd{ID: "ext-1"}).Run(deps)

	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "www-example-com-assets-1700000000000.zip"))
	assert.NoError(t, err)
}

func TestReportCmd_Run(t *testing.T) {
	t.Parallel()

	newReportDeps := func(stdout, stderr *bytes.Buffer) *main.Dependencies {
		deps := newDeps(stdout, stderr)
		deps.Extractions = &mock.ExtractionService{FindExtractionByIDFn: findExtraction}
		deps.Reports = archive.NewReportRenderer(htmltomarkdown.NewConverter())
		return deps
	}

	t.Run("renders markdown", func(t *testing.T) {
		t.Parallel()

		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}

		err := (&main.ReportCmd{ID: "ext-1", Format: "markdown"}).Run(newReportDeps(stdout, stderr))

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "# Example")
		assert.Contains(t, stdout.String(), "Total assets: 2")
	})

	t.Run("renders json with the same numbers", func(t *testing.T) {
		t.Parallel()

		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}

		err := (&main.ReportCmd{ID: "ext-1", Format: "json"}).Run(newReportDeps(stdout, stderr))

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), `"totalAssets": 2`)
	})
}

func TestExportCmd_Run_Dir(t *testing.T) {
	t.Parallel()

	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	deps := newDeps(stdout, stderr)
	deps.Extractions = &mock.ExtractionService{FindExtractionByIDFn: findExtraction}
	deps.Archives = archive.NewBuilder()
	dir := filepath.Join(t.TempDir(), "site")

	err := (&main.ExportCmd{ID: "ext-1", Project: true, Dir: dir}).Run(deps)

	require.NoError(t, err)
	content, err := os.ReadFile(filepath.Join(dir, "assets", "css", "style.css"))
	require.NoError(t, err)
	assert.Equal(t, "body{}", string(content))
}
