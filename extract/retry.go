package extract

import (
	"context"
	"net/http"
	"time"

	"github.com/fwojciec/sitepack"
)

// DefaultRetryDelays returns the backoff delays for asset fetch retries: 500ms, 1s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{500 * time.Millisecond, 1 * time.Second}
}

// FetchFunc is the signature for a fetch function.
type FetchFunc func(ctx context.Context, url string) (string, error)

// fetchWithRetry calls fetch once plus once per delay while the error is
// transient. Client errors such as 404 are returned immediately.
func fetchWithRetry(ctx context.Context, url string, fetch FetchFunc, delays []time.Duration) (string, error) {
	var lastErr error
	for attempt := 0; attempt <= len(delays); attempt++ {
		body, err := fetch(ctx, url)
		if err == nil {
			return body, nil
		}
		lastErr = err

		if attempt == len(delays) || !isTransient(err) {
			break
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(delays[attempt]):
		}
	}
	return "", lastErr
}

func isTransient(err error) bool {
	switch sitepack.ErrorCode(err) {
	case sitepack.ETIMEOUT:
		return true
	case sitepack.EFETCH:
		status := sitepack.ErrorStatus(err)
		return status == 0 || status == http.StatusTooManyRequests || status >= 500
	}
	return false
}
