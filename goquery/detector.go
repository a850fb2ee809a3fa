package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/sitepack"
)

// Confidence levels assigned by the Detector.
const (
	ConfidenceBoth       = 100
	ConfidenceStructural = 70
	ConfidenceMarkup     = 50
)

// Signature describes how to recognize a framework in a page.
// Markers are matched case-insensitively against the raw markup.
// Selectors are matched against the parsed document.
type Signature struct {
	Name      string
	Markers   []string
	Selectors []string
}

// DefaultSignatures returns the signatures for the built-in framework catalog.
func DefaultSignatures() []Signature {
	return []Signature{
		{
			Name:      sitepack.FrameworkReact,
			Markers:   []string{"react"},
			Selectors: []string{`script[src*="react"]`, "[data-reactroot]", "#__next"},
		},
		{
			Name:      sitepack.FrameworkVue,
			Markers:   []string{"vue"},
			Selectors: []string{`script[src*="vue"]`, "[data-v-app]", "#__nuxt"},
		},
		{
			Name:      sitepack.FrameworkAngular,
			Markers:   []string{"angular", "ng-"},
			Selectors: []string{`script[src*="angular"]`, "[ng-version]", "[ng-app]"},
		},
		{
			Name:      sitepack.FrameworkBootstrap,
			Markers:   []string{"bootstrap"},
			Selectors: []string{`link[href*="bootstrap"]`, `script[src*="bootstrap"]`},
		},
		{
			Name:      sitepack.FrameworkTailwind,
			Markers:   []string{"tailwind", "tw-"},
			Selectors: []string{`link[href*="tailwind"]`, `script[src*="tailwind"]`},
		},
	}
}

// Detector identifies frontend frameworks from HTML content.
// Every signature yields exactly one result, in catalog order.
type Detector struct {
	Signatures []Signature
}

// NewDetector creates a new Detector with the default catalog.
func NewDetector() *Detector {
	return &Detector{Signatures: DefaultSignatures()}
}

// Detect parses html and reports which catalog frameworks it uses.
func (d *Detector) Detect(html string) []sitepack.Framework {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return d.DetectDocument(html, nil)
	}
	return d.DetectDocument(html, doc)
}

// DetectDocument reports which catalog frameworks the page uses.
// raw is the unparsed markup; doc may be nil, in which case only markers are checked.
func (d *Detector) DetectDocument(raw string, doc *goquery.Document) []sitepack.Framework {
	lower := strings.ToLower(raw)

	frameworks := make([]sitepack.Framework, 0, len(d.Signatures))
	for _, sig := range d.Signatures {
		f := sitepack.Framework{Name: sig.Name}

		structural := doc != nil && d.hasAnySelector(doc, sig.Selectors)
		markup := hasAnyMarker(lower, sig.Markers)
		switch {
		case structural && markup:
			f.Confidence = ConfidenceBoth
		case structural:
			f.Confidence = ConfidenceStructural
		case markup:
			f.Confidence = ConfidenceMarkup
		}
		f.Detected = structural || markup

		if f.Detected {
			f.Version = sitepack.VersionUnknown
		}
		frameworks = append(frameworks, f)
	}
	return frameworks
}

// hasSelector checks if the document contains at least one element matching the selector.
func (d *Detector) hasSelector(doc *goquery.Document, selector string) bool {
	return doc.Find(selector).Length() > 0
}

func (d *Detector) hasAnySelector(doc *goquery.Document, selectors []string) bool {
	for _, selector := range selectors {
		if d.hasSelector(doc, selector) {
			return true
		}
	}
	return false
}

func hasAnyMarker(lower string, markers []string) bool {
	for _, marker := range markers {
		if strings.Contains(lower, strings.ToLower(marker)) {
			return true
		}
	}
	return false
}
