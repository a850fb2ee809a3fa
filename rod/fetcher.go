// Package rod provides a sitepack.Fetcher backed by a headless Chrome
// browser, for pages that build their markup with JavaScript.
package rod

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/fwojciec/sitepack"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultFetchTimeout bounds a single page render.
const DefaultFetchTimeout = 30 * time.Second

// Ensure Fetcher implements sitepack.Fetcher at compile time.
var _ sitepack.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML using Chrome browser automation.
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	manager *BrowserManager
	timeout time.Duration
	closed  atomic.Bool
}

// Option configures a Fetcher.
type Option func(*fetcherConfig)

type fetcherConfig struct {
	timeout  time.Duration
	maxPages int64
}

// WithFetchTimeout bounds each Fetch call. Defaults to DefaultFetchTimeout.
func WithFetchTimeout(d time.Duration) Option {
	return func(c *fetcherConfig) {
		c.timeout = d
	}
}

// WithRecycleAfter recycles the browser after n rendered pages.
func WithRecycleAfter(n int64) Option {
	return func(c *fetcherConfig) {
		c.maxPages = n
	}
}

// NewFetcher launches a headless browser and returns a Fetcher using it.
// Close must be called when the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	cfg := fetcherConfig{
		timeout:  DefaultFetchTimeout,
		maxPages: DefaultMaxPages,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	manager, err := NewBrowserManager(WithMaxPages(cfg.maxPages))
	if err != nil {
		return nil, err
	}

	return &Fetcher{manager: manager, timeout: cfg.timeout}, nil
}

// Fetch navigates to url, waits for the load event and returns the
// rendered document including open shadow roots.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if f.closed.Load() {
		return "", sitepack.Errorf(sitepack.EINVALID, "fetcher closed")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	page, err := f.manager.Browser().Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", fmt.Errorf("opening page: %w", err)
	}
	defer page.Close()
	defer f.manager.IncrementPageCount()

	page = page.Context(ctx)

	if err := page.Navigate(url); err != nil {
		return "", renderError(ctx, err)
	}
	if err := page.WaitLoad(); err != nil {
		return "", renderError(ctx, err)
	}

	res, err := page.Eval(serializeDocumentJS)
	if err != nil {
		return "", renderError(ctx, err)
	}

	return res.Value.Str(), nil
}

// Close releases browser resources. Close is safe to call multiple times.
func (f *Fetcher) Close() error {
	if !f.closed.CompareAndSwap(false, true) {
		return nil
	}
	return f.manager.Close()
}

// LauncherPID returns the process ID of the browser launcher.
func (f *Fetcher) LauncherPID() int {
	return f.manager.LauncherPID()
}

// renderError maps browser failures onto sitepack error codes.
func renderError(ctx context.Context, err error) error {
	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		return &sitepack.Error{Code: sitepack.ETIMEOUT, Message: "Request timed out"}
	case errors.Is(err, context.Canceled):
		return err
	}
	return &sitepack.Error{Code: sitepack.EFETCH, Message: fmt.Sprintf("Failed to fetch URL: %v", err)}
}

// serializeDocumentJS returns the document markup with open shadow roots
// inlined as declarative shadow DOM templates.
const serializeDocumentJS = `() => {
	const serialize = (node) => {
		if (node.getHTML) {
			return node.getHTML({ serializableShadowRoots: false, shadowRoots: collect(node) });
		}
		return node.innerHTML;
	};
	const collect = (root) => {
		const roots = [];
		const walk = (n) => {
			if (n.shadowRoot) { roots.push(n.shadowRoot); walk(n.shadowRoot); }
			for (const c of n.children || []) walk(c);
		};
		walk(root);
		return roots;
	};
	const doctype = document.doctype ? '<!DOCTYPE ' + document.doctype.name + '>\n' : '';
	const html = document.documentElement;
	const attrs = Array.from(html.attributes).map(a => ' ' + a.name + '="' + a.value.replace(/"/g, '&quot;') + '"').join('');
	return doctype + '<html' + attrs + '>' + serialize(html) + '</html>';
}`
