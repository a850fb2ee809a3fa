package sitepack

import (
	"fmt"
	"net/url"
	"path"
	"strings"
)

// AssetKind identifies the category of a discovered resource.
type AssetKind string

// Supported asset kinds. The set is closed.
const (
	AssetHTML  AssetKind = "html"
	AssetCSS   AssetKind = "css"
	AssetJS    AssetKind = "js"
	AssetImage AssetKind = "image"
	AssetFont  AssetKind = "font"
)

// AssetKinds lists every asset kind in bucket order.
var AssetKinds = []AssetKind{AssetHTML, AssetCSS, AssetJS, AssetImage, AssetFont}

// ParseAssetKind converts a string to an AssetKind.
// Returns EINVALID for unknown kinds.
func ParseAssetKind(s string) (AssetKind, error) {
	switch k := AssetKind(strings.ToLower(s)); k {
	case AssetHTML, AssetCSS, AssetJS, AssetImage, AssetFont:
		return k, nil
	case "images":
		return AssetImage, nil
	case "fonts":
		return AssetFont, nil
	}
	return "", Errorf(EINVALID, "unknown asset kind %q", s)
}

// ContentType returns the MIME type used when serving an asset of this kind.
func (k AssetKind) ContentType() string {
	switch k {
	case AssetHTML:
		return "text/html"
	case AssetCSS:
		return "text/css"
	case AssetJS:
		return "application/javascript"
	}
	return "text/plain"
}

// extension is the file extension used for synthesized asset names.
func (k AssetKind) extension() string {
	switch k {
	case AssetHTML:
		return "html"
	case AssetCSS:
		return "css"
	case AssetJS:
		return "js"
	case AssetImage:
		return "jpg"
	case AssetFont:
		return "woff2"
	}
	return "bin"
}

// prefix is the stem used for synthesized asset names.
func (k AssetKind) prefix() string {
	switch k {
	case AssetCSS:
		return "style"
	case AssetJS:
		return "script"
	}
	return string(k)
}

// Asset is one resource referenced by a page.
type Asset struct {
	Name string    `json:"name"`
	Path string    `json:"path"`
	URL  string    `json:"url"`
	Size int64     `json:"size"`
	Kind AssetKind `json:"kind"`

	// Content is the captured body. Only text assets (html, css, js) carry it.
	Content string `json:"content,omitempty"`

	// Hash is the xxhash64 of Content, hex encoded.
	Hash string `json:"hash,omitempty"`
}

// HasContent reports whether the asset body was captured.
func (a *Asset) HasContent() bool {
	return a.Content != ""
}

// AssetName derives an asset file name from the reference as it appeared in
// markup. It uses the final path segment and falls back to
// "{kind}-{ordinal}.{ext}" when the reference has none.
func AssetName(ref string, kind AssetKind, ordinal int) string {
	p := ref
	if u, err := url.Parse(ref); err == nil {
		p = u.Path
	} else if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	if !strings.HasSuffix(p, "/") {
		if name := path.Base(p); name != "." && name != "/" && name != "" {
			return name
		}
	}
	return fmt.Sprintf("%s-%d.%s", kind.prefix(), ordinal, kind.extension())
}

// Assets groups the resources of an extraction by kind. Buckets are never
// nil once normalized, so they always encode as JSON arrays.
type Assets struct {
	HTML   []Asset `json:"html"`
	CSS    []Asset `json:"css"`
	JS     []Asset `json:"js"`
	Images []Asset `json:"images"`
	Fonts  []Asset `json:"fonts"`
}

// Normalize replaces nil buckets with empty slices.
func (a *Assets) Normalize() {
	for _, kind := range AssetKinds {
		if b := a.bucket(kind); *b == nil {
			*b = []Asset{}
		}
	}
}

func (a *Assets) bucket(kind AssetKind) *[]Asset {
	switch kind {
	case AssetHTML:
		return &a.HTML
	case AssetCSS:
		return &a.CSS
	case AssetJS:
		return &a.JS
	case AssetImage:
		return &a.Images
	case AssetFont:
		return &a.Fonts
	}
	panic(fmt.Sprintf("sitepack: unknown asset kind %q", kind))
}

// ByKind returns the bucket for kind.
func (a *Assets) ByKind(kind AssetKind) []Asset {
	return *a.bucket(kind)
}

// Append adds assets to the bucket matching their kind.
func (a *Assets) Append(assets ...Asset) {
	for _, asset := range assets {
		b := a.bucket(asset.Kind)
		*b = append(*b, asset)
	}
}

// Count returns the number of assets of the given kind.
func (a *Assets) Count(kind AssetKind) int {
	return len(a.ByKind(kind))
}

// UniqueName returns name, or name with "-1", "-2"... inserted before the
// extension when the bucket of kind already holds an asset of that name.
func (a *Assets) UniqueName(kind AssetKind, name string) string {
	taken := make(map[string]bool)
	for _, asset := range a.ByKind(kind) {
		taken[asset.Name] = true
	}
	ext := path.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	candidate := name
	for i := 1; taken[candidate]; i++ {
		candidate = fmt.Sprintf("%s-%d%s", stem, i, ext)
	}
	return candidate
}

// Find returns the first asset of kind with the given name.
// Returns ENOTFOUND if no asset matches.
func (a *Assets) Find(kind AssetKind, name string) (*Asset, error) {
	for i, asset := range a.ByKind(kind) {
		if asset.Name == name {
			return &a.ByKind(kind)[i], nil
		}
	}
	return nil, Errorf(ENOTFOUND, "Asset not found")
}

// All returns every asset in bucket order.
func (a *Assets) All() []Asset {
	var all []Asset
	for _, kind := range AssetKinds {
		all = append(all, a.ByKind(kind)...)
	}
	return all
}
