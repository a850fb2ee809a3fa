// Package trafilatura implements sitepack.MetadataExtractor using go-trafilatura.
package trafilatura

import (
	"net/url"
	"strings"

	"github.com/fwojciec/sitepack"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Extractor implements sitepack.MetadataExtractor at compile time.
var _ sitepack.MetadataExtractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to read page metadata.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractMetadata reads title, description and favicon from rawHTML.
func (e *Extractor) ExtractMetadata(rawHTML, pageURL string) (*sitepack.PageMetadata, error) {
	if rawHTML == "" {
		return nil, sitepack.Errorf(sitepack.EINVALID, "empty HTML input")
	}

	u, err := sitepack.ParseURL(pageURL)
	if err != nil {
		return nil, err
	}

	opts := trafilatura.Options{
		EnableFallback: true,
		OriginalURL:    u,
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return nil, err
	}

	return &sitepack.PageMetadata{
		Title:       strings.TrimSpace(result.Metadata.Title),
		Description: strings.TrimSpace(result.Metadata.Description),
		Favicon:     findFavicon(rawHTML, u),
	}, nil
}

// findFavicon returns the first icon link in the document head, resolved
// against base. Trafilatura does not report icons itself.
func findFavicon(rawHTML string, base *url.URL) string {
	doc, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		return ""
	}

	var href string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if href != "" {
			return
		}
		if n.Type == html.ElementNode && n.Data == "link" && isIconLink(n) {
			href = attr(n, "href")
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	if href == "" {
		return ""
	}
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return ""
	}
	return base.ResolveReference(ref).String()
}

func isIconLink(n *html.Node) bool {
	if attr(n, "href") == "" {
		return false
	}
	for _, rel := range strings.Fields(strings.ToLower(attr(n, "rel"))) {
		if rel == "icon" {
			return true
		}
	}
	return false
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
