package sitepack

// PageAnalysis holds everything derivable from the page markup alone.
type PageAnalysis struct {
	// Title is the document title; empty when the page has none.
	Title string

	// Assets holds the referenced resources in document order.
	// Sizes and contents are not yet measured.
	Assets Assets

	// Frameworks has one entry per FrameworkCatalog member.
	Frameworks []Framework

	Signals PageSignals
}

// PageAnalyzer parses page markup and classifies what it references.
type PageAnalyzer interface {
	// AnalyzePage parses html and resolves references against baseURL.
	AnalyzePage(html, baseURL string) (*PageAnalysis, error)
}

// PageMetadata is descriptive metadata of a page.
type PageMetadata struct {
	Title       string
	Description string
	Favicon     string
}

// MetadataExtractor reads descriptive metadata from page markup.
type MetadataExtractor interface {
	// ExtractMetadata processes raw HTML fetched from pageURL.
	ExtractMetadata(html, pageURL string) (*PageMetadata, error)
}

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms HTML content into Markdown.
	Convert(html string) (string, error)
}

// URLSet tracks URLs that have already been seen.
// Implementations may report false positives but never false negatives.
type URLSet interface {
	Add(url string)
	Test(url string) bool
}
