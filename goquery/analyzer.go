package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/sitepack"
)

// Ensure Analyzer implements sitepack.PageAnalyzer at compile time.
var _ sitepack.PageAnalyzer = (*Analyzer)(nil)

// Analyzer implements sitepack.PageAnalyzer using goquery.
type Analyzer struct {
	Detector *Detector

	// MaxImages caps the image bucket. Zero or less means no cap.
	MaxImages int

	// NewURLSet, if set, enables de-duplication of asset URLs.
	// A fresh set is created for every page.
	NewURLSet func() sitepack.URLSet
}

// NewAnalyzer creates a new Analyzer with the default catalog and image cap.
func NewAnalyzer() *Analyzer {
	return &Analyzer{
		Detector:  NewDetector(),
		MaxImages: DefaultMaxImages,
	}
}

// AnalyzePage parses html and classifies its assets, frameworks and page signals.
func (a *Analyzer) AnalyzePage(html, baseURL string) (*sitepack.PageAnalysis, error) {
	base, err := sitepack.ParseURL(baseURL)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, sitepack.Errorf(sitepack.EINVALID, "failed to parse HTML: %v", err)
	}

	classifier := &Classifier{MaxImages: a.MaxImages}
	if a.NewURLSet != nil {
		classifier.Seen = a.NewURLSet()
	}

	return &sitepack.PageAnalysis{
		Title:      strings.TrimSpace(doc.Find("title").First().Text()),
		Assets:     classifier.ClassifyAssets(doc, base),
		Frameworks: a.Detector.DetectDocument(html, doc),
		Signals: sitepack.PageSignals{
			HTML:            html,
			HasViewportMeta: HasViewportMeta(doc),
			ComponentCount:  CountComponents(doc),
		},
	}, nil
}
