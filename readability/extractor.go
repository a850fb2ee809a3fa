// Package readability implements sitepack.MetadataExtractor using go-readability.
package readability

import (
	"strings"

	"github.com/fwojciec/sitepack"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements sitepack.MetadataExtractor at compile time.
var _ sitepack.MetadataExtractor = (*Extractor)(nil)

// Extractor wraps go-readability to read page metadata.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractMetadata reads title, description and favicon from rawHTML.
// The favicon is resolved against pageURL.
func (e *Extractor) ExtractMetadata(rawHTML, pageURL string) (*sitepack.PageMetadata, error) {
	if rawHTML == "" {
		return nil, sitepack.Errorf(sitepack.EINVALID, "empty HTML input")
	}

	u, err := sitepack.ParseURL(pageURL)
	if err != nil {
		return nil, err
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), u)
	if err != nil {
		return nil, err
	}

	return &sitepack.PageMetadata{
		Title:       strings.TrimSpace(article.Title),
		Description: strings.TrimSpace(article.Excerpt),
		Favicon:     article.Favicon,
	}, nil
}
