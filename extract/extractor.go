// Package extract orchestrates a single extraction: fetch the page, analyze
// its markup, measure every referenced asset and persist the result.
package extract

import (
	"context"
	"errors"
	"log/slog"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/sitepack"
	"golang.org/x/sync/errgroup"
)

// Defaults used when the corresponding Extractor field is zero.
const (
	DefaultTimeout     = 60 * time.Second
	DefaultConcurrency = 8
)

// IndexAssetName is the name of the asset holding the page markup.
const IndexAssetName = "index.html"

var _ sitepack.Analyzer = (*Extractor)(nil)

// Extractor runs the extraction pipeline.
type Extractor struct {
	Fetcher     sitepack.Fetcher
	Pages       sitepack.PageAnalyzer
	Extractions sitepack.ExtractionService

	// PageFetcher, if set, retrieves the page itself while Fetcher is used
	// for assets. A browser-backed fetcher is typically set here.
	PageFetcher sitepack.Fetcher

	// Metadata, if set, supplies description and favicon.
	Metadata sitepack.MetadataExtractor

	// RateLimiter, if set, throttles fetches per host.
	RateLimiter sitepack.DomainLimiter

	// Logger receives warnings about assets that could not be fetched.
	Logger *slog.Logger

	// Concurrency bounds parallel asset fetches.
	Concurrency int

	// Timeout bounds fetching the page and its assets.
	Timeout time.Duration

	// RetryDelays are the waits between attempts for transient asset fetch
	// failures. Nil disables retries.
	RetryDelays []time.Duration
}

// Analyze fetches rawURL, builds an Extraction and persists it.
// Nothing is persisted when the URL is invalid, the page cannot be
// fetched or the markup cannot be analyzed.
func (x *Extractor) Analyze(ctx context.Context, rawURL string) (*sitepack.Extraction, error) {
	u, err := sitepack.ParseURL(rawURL)
	if err != nil {
		return nil, err
	}
	pageURL := u.String()

	timeout := x.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	fetchCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	html, err := x.fetch(fetchCtx, x.pageFetcher(), u, nil)
	if err != nil {
		return nil, timeoutError(fetchCtx, pageURL, err)
	}

	page, err := x.Pages.AnalyzePage(html, pageURL)
	if err != nil {
		return nil, err
	}

	assets := page.Assets
	assets.Normalize()
	x.measure(fetchCtx, &assets)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	index := sitepack.Asset{
		Name: IndexAssetName,
		Path: u.RequestURI(),
		URL:  pageURL,
		Size: int64(len(html)),
		Kind: sitepack.AssetHTML,
	}
	x.capture(&index, html)
	assets.HTML = append([]sitepack.Asset{index}, assets.HTML...)

	e := &sitepack.Extraction{
		URL:         pageURL,
		Title:       page.Title,
		Assets:      assets,
		Frameworks:  page.Frameworks,
		Performance: sitepack.EstimatePerformance(assets, page.Signals),
	}
	x.applyMetadata(e, html)
	if e.Title == "" {
		e.Title = sitepack.DefaultTitle(u.Hostname())
	}

	if err := x.Extractions.CreateExtraction(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

// measure fetches every non-HTML asset to record its size, and captures the
// body of stylesheets and scripts. Failures leave the asset unmeasured.
func (x *Extractor) measure(ctx context.Context, assets *sitepack.Assets) {
	concurrency := x.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for _, kind := range []sitepack.AssetKind{sitepack.AssetCSS, sitepack.AssetJS, sitepack.AssetImage, sitepack.AssetFont} {
		bucket := assets.ByKind(kind)
		for i := range bucket {
			a := &bucket[i]
			g.Go(func() error {
				u, err := url.Parse(a.URL)
				if err != nil {
					x.warn("skipping asset with invalid URL", a, err)
					return nil
				}
				body, err := x.fetch(gctx, x.Fetcher, u, x.RetryDelays)
				if err != nil {
					x.warn("failed to fetch asset", a, err)
					return nil
				}
				a.Size = int64(len(body))
				if kind == sitepack.AssetCSS || kind == sitepack.AssetJS {
					x.capture(a, body)
				}
				return nil
			})
		}
	}

	_ = g.Wait()
}

// capture records body as the content of a. Bodies that are not valid UTF-8
// or contain NUL bytes cannot be stored unchanged, so only their size is kept.
func (x *Extractor) capture(a *sitepack.Asset, body string) {
	if !utf8.ValidString(body) || strings.ContainsRune(body, 0) {
		x.warn("asset content not captured", a, errors.New("body is not UTF-8 text"))
		return
	}
	a.Content = body
	a.Hash = hash(body)
}

func (x *Extractor) pageFetcher() sitepack.Fetcher {
	if x.PageFetcher != nil {
		return x.PageFetcher
	}
	return x.Fetcher
}

func (x *Extractor) fetch(ctx context.Context, fetcher sitepack.Fetcher, u *url.URL, delays []time.Duration) (string, error) {
	fetch := func(ctx context.Context, target string) (string, error) {
		if x.RateLimiter != nil {
			if err := x.RateLimiter.Wait(ctx, u.Host); err != nil {
				return "", err
			}
		}
		return fetcher.Fetch(ctx, target)
	}
	return fetchWithRetry(ctx, u.String(), fetch, delays)
}

func (x *Extractor) applyMetadata(e *sitepack.Extraction, html string) {
	if x.Metadata == nil {
		return
	}
	meta, err := x.Metadata.ExtractMetadata(html, e.URL)
	if err != nil {
		if x.Logger != nil {
			x.Logger.Warn("metadata extraction failed", "url", e.URL, "error", err)
		}
		return
	}
	if e.Title == "" {
		e.Title = meta.Title
	}
	e.Description = meta.Description
	e.Favicon = meta.Favicon
}

func (x *Extractor) warn(msg string, a *sitepack.Asset, err error) {
	if x.Logger == nil {
		return
	}
	x.Logger.Warn(msg, "kind", a.Kind, "url", a.URL, "error", err)
}

// timeoutError reports ETIMEOUT when the fetch deadline, rather than the
// caller, ended the request.
func timeoutError(ctx context.Context, url string, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) && sitepack.ErrorCode(err) != sitepack.EFETCH {
		return sitepack.Errorf(sitepack.ETIMEOUT, "Request timed out: %s", url)
	}
	return err
}

func hash(content string) string {
	return strconv.FormatUint(xxhash.Sum64String(content), 16)
}
