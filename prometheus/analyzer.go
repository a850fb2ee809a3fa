package prometheus

import (
	"context"
	"time"

	"github.com/fwojciec/sitepack"
)

var (
	_ sitepack.Analyzer = (*Analyzer)(nil)
	_ sitepack.Fetcher  = (*Fetcher)(nil)
)

// Analyzer wraps an Analyzer and records run counts and durations.
type Analyzer struct {
	next    sitepack.Analyzer
	metrics *Metrics
}

// NewAnalyzer creates a new instrumented Analyzer.
func NewAnalyzer(next sitepack.Analyzer, m *Metrics) *Analyzer {
	return &Analyzer{next: next, metrics: m}
}

func (a *Analyzer) Analyze(ctx context.Context, url string) (e *sitepack.Extraction, err error) {
	defer func(begin time.Time) {
		a.metrics.AnalyzeDuration.Observe(time.Since(begin).Seconds())
		a.metrics.AnalysesTotal.WithLabelValues(resultCode(err)).Inc()
	}(time.Now())
	return a.next.Analyze(ctx, url)
}

// Fetcher wraps a Fetcher and records fetch counts, durations and bytes.
type Fetcher struct {
	next    sitepack.Fetcher
	metrics *Metrics
}

// NewFetcher creates a new instrumented Fetcher.
func NewFetcher(next sitepack.Fetcher, m *Metrics) *Fetcher {
	return &Fetcher{next: next, metrics: m}
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (body string, err error) {
	defer func(begin time.Time) {
		f.metrics.FetchDuration.Observe(time.Since(begin).Seconds())
		f.metrics.FetchesTotal.WithLabelValues(resultCode(err)).Inc()
		f.metrics.FetchedBytes.Add(float64(len(body)))
	}(time.Now())
	return f.next.Fetch(ctx, url)
}

func (f *Fetcher) Close() error {
	return f.next.Close()
}
