package goquery_test

import (
	"testing"

	"github.com/fwojciec/sitepack"
	"github.com/fwojciec/sitepack/goquery"
	"github.com/fwojciec/sitepack/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzer_AnalyzePage(t *testing.T) {
	t.Parallel()

	t.Run("analyzes a page", func(t *testing.T) {
		t.Parallel()

		html := `<html><head>
<title> Example Site </title>
<meta name="viewport" content="width=device-width">
<link rel="stylesheet" href="/style.css">
<script src="/app.js"></script>
</head><body><div class="hero-component"></div></body></html>`

		a := goquery.NewAnalyzer()
		got, err := a.AnalyzePage(html, "https://example.com/")

		require.NoError(t, err)
		assert.Equal(t, "Example Site", got.Title)
		require.Len(t, got.Assets.CSS, 1)
		require.Len(t, got.Assets.JS, 1)
		assert.Len(t, got.Frameworks, len(sitepack.FrameworkCatalog))
		assert.Equal(t, html, got.Signals.HTML)
		assert.True(t, got.Signals.HasViewportMeta)
		assert.Equal(t, 1, got.Signals.ComponentCount)
	})

	t.Run("returns empty title when missing", func(t *testing.T) {
		t.Parallel()

		a := goquery.NewAnalyzer()
		got, err := a.AnalyzePage(`<p>hi</p>`, "https://example.com/")

		require.NoError(t, err)
		assert.Empty(t, got.Title)
		assert.Zero(t, got.Assets.Count(sitepack.AssetCSS))
	})

	t.Run("rejects invalid base URL", func(t *testing.T) {
		t.Parallel()

		a := goquery.NewAnalyzer()
		_, err := a.AnalyzePage(`<p>hi</p>`, "not-a-url")

		assert.Equal(t, sitepack.EINVALID, sitepack.ErrorCode(err))
	})

	t.Run("creates a fresh URL set per page", func(t *testing.T) {
		t.Parallel()

		created := 0
		a := goquery.NewAnalyzer()
		a.NewURLSet = func() sitepack.URLSet {
			created++
			seen := map[string]bool{}
			return &mock.URLSet{
				AddFn:  func(u string) { seen[u] = true },
				TestFn: func(u string) bool { return seen[u] },
			}
		}

		html := `<script src="/a.js"></script><script src="/a.js"></script>`
		first, err := a.AnalyzePage(html, "https://example.com/")
		require.NoError(t, err)
		second, err := a.AnalyzePage(html, "https://example.com/")
		require.NoError(t, err)

		assert.Equal(t, 2, created)
		assert.Len(t, first.Assets.JS, 1)
		assert.Len(t, second.Assets.JS, 1)
	})
}
