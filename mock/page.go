package mock

import "github.com/fwojciec/sitepack"

var (
	_ sitepack.PageAnalyzer      = (*PageAnalyzer)(nil)
	_ sitepack.MetadataExtractor = (*MetadataExtractor)(nil)
	_ sitepack.Converter         = (*Converter)(nil)
	_ sitepack.URLSet            = (*URLSet)(nil)
)

// PageAnalyzer is a mock implementation of sitepack.PageAnalyzer.
type PageAnalyzer struct {
	AnalyzePageFn func(html, baseURL string) (*sitepack.PageAnalysis, error)
}

func (a *PageAnalyzer) AnalyzePage(html, baseURL string) (*sitepack.PageAnalysis, error) {
	return a.AnalyzePageFn(html, baseURL)
}

// MetadataExtractor is a mock implementation of sitepack.MetadataExtractor.
type MetadataExtractor struct {
	ExtractMetadataFn func(html, pageURL string) (*sitepack.PageMetadata, error)
}

func (e *MetadataExtractor) ExtractMetadata(html, pageURL string) (*sitepack.PageMetadata, error) {
	return e.ExtractMetadataFn(html, pageURL)
}

// Converter is a mock implementation of sitepack.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}

// URLSet is a mock implementation of sitepack.URLSet.
type URLSet struct {
	AddFn  func(url string)
	TestFn func(url string) bool
}

func (s *URLSet) Add(url string) {
	s.AddFn(url)
}

func (s *URLSet) Test(url string) bool {
	return s.TestFn(url)
}
