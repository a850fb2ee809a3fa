// Package http provides the HTTP implementation of sitepack.Fetcher and the
// HTTP API server.
package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/fwojciec/sitepack"
	"golang.org/x/net/html/charset"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 60 * time.Second

// DefaultMaxBodySize is the largest response body accepted. Larger bodies
// fail with EFETCH rather than being cut short.
const DefaultMaxBodySize = 20 << 20

// DefaultUserAgent identifies sitepack to remote servers.
const DefaultUserAgent = "sitepack/1.0 (+https://github.com/fwojciec/sitepack)"

// Ensure Fetcher implements sitepack.Fetcher at compile time.
var _ sitepack.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves content from URLs using plain HTTP requests.
// Unlike rod.Fetcher, this does not execute JavaScript.
type Fetcher struct {
	client      *http.Client
	timeout     time.Duration
	maxBodySize int64
	userAgent   string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithMaxBodySize sets the largest response body accepted, in bytes.
func WithMaxBodySize(n int64) Option {
	return func(f *Fetcher) {
		f.maxBodySize = n
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:     DefaultFetchTimeout,
		maxBodySize: DefaultMaxBodySize,
		userAgent:   DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch retrieves the body of the given URL.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", sitepack.Errorf(sitepack.EINVALID, "Invalid URL: %s", url)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fetchError(url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", sitepack.FetchFailed(resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBodySize+1))
	if err != nil {
		return "", fetchError(url, err)
	}
	if int64(len(body)) > f.maxBodySize {
		return "", &sitepack.Error{
			Code:    sitepack.EFETCH,
			Message: fmt.Sprintf("Response too large: exceeds %d bytes", f.maxBodySize),
			Status:  http.StatusRequestEntityTooLarge,
		}
	}

	return decodeText(body, resp.Header.Get("Content-Type")), nil
}

// decodeText converts a text body to UTF-8. The charset comes from a byte
// order mark, the Content-Type header or an HTML meta declaration; an
// undeclared body that is already valid UTF-8 is kept as is. Binary bodies
// are returned unchanged.
func decodeText(body []byte, contentType string) string {
	if !isText(body, contentType) {
		return string(body)
	}
	enc, name, certain := charset.DetermineEncoding(body, contentType)
	if name == "utf-8" || (!certain && utf8.Valid(body)) {
		return string(body)
	}
	decoded, err := enc.NewDecoder().Bytes(body)
	if err != nil {
		return string(body)
	}
	return string(decoded)
}

func isText(body []byte, contentType string) bool {
	if contentType == "" {
		contentType = http.DetectContentType(body)
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return strings.HasPrefix(mediaType, "text/") ||
		strings.Contains(mediaType, "javascript") ||
		strings.HasSuffix(mediaType, "json") ||
		strings.HasSuffix(mediaType, "xml")
}

// Close releases resources. For HTTP fetcher this is a no-op since
// http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}

func fetchError(url string, err error) error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return sitepack.Errorf(sitepack.ETIMEOUT, "Request timed out: %s", url)
	}
	if errors.Is(err, context.Canceled) {
		return err
	}
	return &sitepack.Error{Code: sitepack.EFETCH, Message: fmt.Sprintf("Failed to fetch URL: %v", err)}
}
