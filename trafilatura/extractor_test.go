package trafilatura_test

import (
	"testing"

	"github.com/fwojciec/sitepack"
	"github.com/fwojciec/sitepack/trafilatura"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractor_ExtractMetadata(t *testing.T) {
	t.Parallel()

	t.Run("extracts title from meta tags", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<head>
<title>Getting Started - My Site</title>
<meta property="og:title" content="Getting Started Guide">
</head>
<body>
<nav>Navigation here</nav>
<main>
<h1>Getting Started</h1>
<p>This is the main content of the landing page for the product.</p>
</main>
<footer>Footer content</footer>
</body>
</html>`

		ext := trafilatura.NewExtractor()
		result, err := ext.ExtractMetadata(html, "https://example.com/")

		require.NoError(t, err)
		assert.NotEmpty(t, result.Title)
	})

	t.Run("extracts description", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<head>
<title>Widgets</title>
<meta name="description" content="Everything about widgets.">
</head>
<body><article><h1>Widgets</h1><p>Widgets are small devices used in many places around the house.</p></article></body>
</html>`

		ext := trafilatura.NewExtractor()
		result, err := ext.ExtractMetadata(html, "https://example.com/")

		require.NoError(t, err)
		assert.Equal(t, "Everything about widgets.", result.Description)
	})

	t.Run("resolves favicon against page URL", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<head>
<title>Icons</title>
<link rel="stylesheet" href="/style.css">
<link rel="Shortcut Icon" href="img/favicon.ico">
</head>
<body><article><p>Content that is long enough to be considered the main text of the page.</p></article></body>
</html>`

		ext := trafilatura.NewExtractor()
		result, err := ext.ExtractMetadata(html, "https://example.com/blog/")

		require.NoError(t, err)
		assert.Equal(t, "https://example.com/blog/img/favicon.ico", result.Favicon)
	})

	t.Run("returns error for empty input", func(t *testing.T) {
		t.Parallel()

		ext := trafilatura.NewExtractor()
		_, err := ext.ExtractMetadata("", "https://example.com/")

		require.Error(t, err)
		assert.Equal(t, sitepack.EINVALID, sitepack.ErrorCode(err))
	})
}
