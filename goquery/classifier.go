package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/sitepack"
)

// DefaultMaxImages caps the number of images recorded per page.
const DefaultMaxImages = 20

// Classifier enumerates the stylesheets, scripts, images and fonts a page references.
type Classifier struct {
	// MaxImages caps the image bucket. Zero or less means no cap.
	MaxImages int

	// Seen, if set, drops references whose resolved URL was already recorded.
	Seen sitepack.URLSet
}

// ClassifyAssets scans doc in document order and resolves every reference
// against base. Names are unique within a bucket, so they double as file
// names in archives and download routes. The returned buckets carry no size
// or content yet.
func (c *Classifier) ClassifyAssets(doc *goquery.Document, base *url.URL) sitepack.Assets {
	assets := sitepack.Assets{}
	assets.Normalize()

	doc.Find("link[href]").FilterFunction(func(_ int, s *goquery.Selection) bool {
		return hasRel(s, "stylesheet")
	}).Each(func(i int, s *goquery.Selection) {
		c.add(&assets, sitepack.AssetCSS, s.AttrOr("href", ""), base, i)
	})

	doc.Find("script[src]").Each(func(i int, s *goquery.Selection) {
		c.add(&assets, sitepack.AssetJS, s.AttrOr("src", ""), base, i)
	})

	doc.Find("img[src]").Each(func(i int, s *goquery.Selection) {
		if c.MaxImages > 0 && len(assets.Images) >= c.MaxImages {
			return
		}
		c.add(&assets, sitepack.AssetImage, s.AttrOr("src", ""), base, i)
	})

	doc.Find("link[href]").FilterFunction(func(_ int, s *goquery.Selection) bool {
		return hasRel(s, "preload") && strings.EqualFold(strings.TrimSpace(s.AttrOr("as", "")), "font")
	}).Each(func(i int, s *goquery.Selection) {
		c.add(&assets, sitepack.AssetFont, s.AttrOr("href", ""), base, i)
	})

	return assets
}

func (c *Classifier) add(assets *sitepack.Assets, kind sitepack.AssetKind, ref string, base *url.URL, ordinal int) {
	ref = strings.TrimSpace(ref)
	if ref == "" || isDataURI(ref) {
		return
	}

	resolved, ok := resolveURL(base, ref)
	if !ok {
		return
	}

	if c.Seen != nil {
		if c.Seen.Test(resolved) {
			return
		}
		c.Seen.Add(resolved)
	}

	assets.Append(sitepack.Asset{
		Name: assets.UniqueName(kind, sitepack.AssetName(ref, kind, ordinal)),
		Path: ref,
		URL:  resolved,
		Kind: kind,
	})
}

// hasRel reports whether the rel attribute contains token, ignoring case.
func hasRel(s *goquery.Selection, token string) bool {
	for _, rel := range strings.Fields(s.AttrOr("rel", "")) {
		if strings.EqualFold(rel, token) {
			return true
		}
	}
	return false
}

func isDataURI(ref string) bool {
	return len(ref) >= 5 && strings.EqualFold(ref[:5], "data:")
}

// resolveURL resolves ref against base and drops the fragment.
func resolveURL(base *url.URL, ref string) (string, bool) {
	u, err := url.Parse(ref)
	if err != nil {
		return "", false
	}
	resolved := base.ResolveReference(u)
	resolved.Fragment = ""
	return resolved.String(), true
}
