package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/fwojciec/sitepack"
	sitepackhttp "github.com/fwojciec/sitepack/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("returns HTML body from server", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte("<html><body>Hello World</body></html>"))
		}))
		defer server.Close()

		fetcher := sitepackhttp.NewFetcher()
		defer fetcher.Close()

		html, err := fetcher.Fetch(context.Background(), server.URL)
		require.NoError(t, err)
		assert.Equal(t, "<html><body>Hello World</body></html>", html)
	})

	t.Run("sends user agent", func(t *testing.T) {
		t.Parallel()

		agents := make(chan string, 1)
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			agents <- r.UserAgent()
		}))
		defer server.Close()

		fetcher := sitepackhttp.NewFetcher(sitepackhttp.WithUserAgent("test-agent"))
		defer fetcher.Close()

		_, err := fetcher.Fetch(context.Background(), server.URL)
		require.NoError(t, err)
		assert.Equal(t, "test-agent", <-agents)
	})

	t.Run("accepts any 2xx status", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNonAuthoritativeInfo)
			_, _ = w.Write([]byte("ok"))
		}))
		defer server.Close()

		fetcher := sitepackhttp.NewFetcher()
		defer fetcher.Close()

		body, err := fetcher.Fetch(context.Background(), server.URL)
		require.NoError(t, err)
		assert.Equal(t, "ok", body)
	})

	t.Run("rejects body over max size", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(strings.Repeat("a", 1000)))
		}))
		defer server.Close()

		fetcher := sitepackhttp.NewFetcher(sitepackhttp.WithMaxBodySize(100))
		defer fetcher.Close()

		body, err := fetcher.Fetch(context.Background(), server.URL)
		require.Error(t, err)
		assert.Empty(t, body)
		assert.Equal(t, sitepack.EFETCH, sitepack.ErrorCode(err))
		assert.Equal(t, http.StatusRequestEntityTooLarge, sitepack.ErrorStatus(err))
	})

	t.Run("accepts body of exactly max size", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(strings.Repeat("a", 100)))
		}))
		defer server.Close()

		fetcher := sitepackhttp.NewFetcher(sitepackhttp.WithMaxBodySize(100))
		defer fetcher.Close()

		body, err := fetcher.Fetch(context.Background(), server.URL)
		require.NoError(t, err)
		assert.Len(t, body, 100)
	})

	t.Run("decodes text bodies to UTF-8", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			name        string
			contentType string
			body        string
			want        string
		}{
			{"header charset", "text/html; charset=windows-1252", "<p>caf\xe9</p>", "<p>café</p>"},
			{"meta charset", "text/html", "<meta charset=\"iso-8859-1\"><p>caf\xe9</p>", "<meta charset=\"iso-8859-1\"><p>café</p>"},
			{"undeclared latin-1 stylesheet", "text/css", "a::after{content:'\xe9'}", "a::after{content:'é'}"},
			{"undeclared UTF-8 kept", "application/javascript", "const s = 'café';", "const s = 'café';"},
			{"binary untouched", "image/png", "\x89PNG\xe9\x00", "\x89PNG\xe9\x00"},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				t.Parallel()

				server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					w.Header().Set("Content-Type", tt.contentType)
					_, _ = w.Write([]byte(tt.body))
				}))
				defer server.Close()

				fetcher := sitepackhttp.NewFetcher()
				defer fetcher.Close()

				body, err := fetcher.Fetch(context.Background(), server.URL)
				require.NoError(t, err)
				assert.Equal(t, tt.want, body)
			})
		}
	})

	t.Run("returns timeout error when client timeout expires", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(100 * time.Millisecond)
			_, _ = w.Write([]byte("response"))
		}))
		defer server.Close()

		fetcher := sitepackhttp.NewFetcher(sitepackhttp.WithTimeout(10 * time.Millisecond))
		defer fetcher.Close()

		_, err := fetcher.Fetch(context.Background(), server.URL)
		require.Error(t, err)
		assert.Equal(t, sitepack.ETIMEOUT, sitepack.ErrorCode(err))
	})

	t.Run("returns timeout error when context deadline expires", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(100 * time.Millisecond)
		}))
		defer server.Close()

		fetcher := sitepackhttp.NewFetcher()
		defer fetcher.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()

		_, err := fetcher.Fetch(ctx, server.URL)
		assert.Equal(t, sitepack.ETIMEOUT, sitepack.ErrorCode(err))
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(100 * time.Millisecond)
			_, _ = w.Write([]byte("response"))
		}))
		defer server.Close()

		fetcher := sitepackhttp.NewFetcher()
		defer fetcher.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := fetcher.Fetch(ctx, server.URL)
		require.ErrorIs(t, err, context.Canceled)
	})

	t.Run("returns fetch error for non-existent host", func(t *testing.T) {
		t.Parallel()

		fetcher := sitepackhttp.NewFetcher(sitepackhttp.WithTimeout(2 * time.Second))
		defer fetcher.Close()

		_, err := fetcher.Fetch(context.Background(), "http://non-existent-host.invalid/page")
		require.Error(t, err)
		assert.Contains(t, []string{sitepack.EFETCH, sitepack.ETIMEOUT}, sitepack.ErrorCode(err))
	})

	t.Run("returns fetch error with status for non-2xx responses", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte("404 Not Found"))
		}))
		defer server.Close()

		fetcher := sitepackhttp.NewFetcher()
		defer fetcher.Close()

		_, err := fetcher.Fetch(context.Background(), server.URL)
		require.Error(t, err)
		assert.Equal(t, sitepack.EFETCH, sitepack.ErrorCode(err))
		assert.Equal(t, http.StatusNotFound, sitepack.ErrorStatus(err))
		assert.Equal(t, "Failed to fetch URL: 404", sitepack.ErrorMessage(err))
	})
}
