package goquery

import (
	"strings"
	"text/template"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/sitepack"
)

// Ensure Composer implements sitepack.PreviewComposer at compile time.
var _ sitepack.PreviewComposer = (*Composer)(nil)

var previewTemplate = template.Must(template.New("preview").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Code Preview</title>
    <style>{{.CSS}}</style>
</head>
<body>
{{.Body}}
<script>{{.JS}}</script>
</body>
</html>
`))

// Composer implements sitepack.PreviewComposer.
// User code is embedded verbatim; previews are meant to run it.
type Composer struct{}

// NewComposer creates a new Composer.
func NewComposer() *Composer {
	return &Composer{}
}

// ComposePreview wraps the body content of src.HTML with src.CSS and src.JS.
func (c *Composer) ComposePreview(src sitepack.PreviewSource) (string, error) {
	body, err := bodyContent(src.HTML)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	err = previewTemplate.Execute(&b, struct {
		CSS  string
		Body string
		JS   string
	}{src.CSS, body, src.JS})
	if err != nil {
		return "", sitepack.Errorf(sitepack.EINTERNAL, "failed to render preview: %v", err)
	}
	return b.String(), nil
}

// bodyContent returns the inner HTML of body when raw is a full document,
// and raw unchanged when it is a fragment.
func bodyContent(raw string) (string, error) {
	lower := strings.ToLower(raw)
	if !strings.Contains(lower, "<html") && !strings.Contains(lower, "<body") {
		return raw, nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return "", sitepack.Errorf(sitepack.EINVALID, "failed to parse HTML: %v", err)
	}
	body, err := doc.Find("body").First().Html()
	if err != nil {
		return "", sitepack.Errorf(sitepack.EINVALID, "failed to render body: %v", err)
	}
	return strings.TrimSpace(body), nil
}
