// Package bloom provides asset URL de-duplication using Bloom filters.
package bloom

import (
	"sync"

	"github.com/bits-and-blooms/bloom/v3"
	"github.com/fwojciec/sitepack"
)

// Sizing for per-page filters. Pages rarely reference more than a few
// hundred assets, and a false positive silently drops an asset, so the
// rate is kept very low.
const (
	DefaultExpectedURLs      = 1000
	DefaultFalsePositiveRate = 1e-6
)

var _ sitepack.URLSet = (*Filter)(nil)

// Filter is a concurrency-safe Bloom filter over URLs.
type Filter struct {
	mu sync.Mutex
	f  *bloom.BloomFilter
}

// NewFilter creates a new Bloom filter sized for n expected items
// with the given false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// NewURLSetFunc returns a constructor producing a fresh default-sized
// filter per call, for use as goquery.Analyzer.NewURLSet.
func NewURLSetFunc() func() sitepack.URLSet {
	return func() sitepack.URLSet {
		return NewFilter(DefaultExpectedURLs, DefaultFalsePositiveRate)
	}
}

// Add adds a URL to the filter.
func (f *Filter) Add(url string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.f.AddString(url)
}

// Test returns true if the URL might be in the filter.
// False positives are possible; false negatives are not.
func (f *Filter) Test(url string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.f.TestString(url)
}
