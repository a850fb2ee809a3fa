package http_test

import (
	"archive/zip"
	"bytes"
	"context"
	"io"
	"net/http"
	"path"
	"strings"
	"testing"

	"github.com/fwojciec/sitepack/archive"
	"github.com/fwojciec/sitepack/extract"
	"github.com/fwojciec/sitepack/goquery"
	"github.com/fwojciec/sitepack/inmem"
	"github.com/fwojciec/sitepack/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServer_ArchiveNamesAreDownloadable(t *testing.T) {
	t.Parallel()

	pages := map[string]string{
		"https://example.com/":             `<link rel="stylesheet" href="/v1/style.css"><link rel="stylesheet" href="/v2/style.css">`,
		"https://example.com/v1/style.css": "h1{color:red}",
		"https://example.com/v2/style.css": "h2{color:blue}",
	}
	store := inmem.NewExtractionService()
	x := &extract.Extractor{
		Fetcher: &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				return pages[url], nil
			},
		},
		Pages:       goquery.NewAnalyzer(),
		Extractions: store,
	}
	e, err := x.Analyze(context.Background(), "https://example.com/")
	require.NoError(t, err)

	s := newServer()
	s.ExtractionService = store
	s.ArchiveBuilder = archive.NewBuilder()

	rec := serve(s, http.MethodGet, "/api/extractions/"+e.ID+"/download-all", "")
	require.Equal(t, http.StatusOK, rec.Code)

	zr, err := zip.NewReader(bytes.NewReader(rec.Body.Bytes()), int64(rec.Body.Len()))
	require.NoError(t, err)

	var downloaded []string
	for _, f := range zr.File {
		if !strings.HasPrefix(f.Name, "css/") {
			continue
		}
		rc, err := f.Open()
		require.NoError(t, err)
		want, err := io.ReadAll(rc)
		require.NoError(t, err)
		require.NoError(t, rc.Close())

		rec := serve(s, http.MethodGet, "/api/extractions/"+e.ID+"/download/css/"+path.Base(f.Name), "")

		require.Equal(t, http.StatusOK, rec.Code, f.Name)
		assert.Equal(t, string(want), rec.Body.String())
		downloaded = append(downloaded, f.Name)
	}
	assert.Equal(t, []string{"css/style.css", "css/style-1.css"}, downloaded)
}
