package sitepack

import (
	"context"
	"net/url"
	"strings"
	"time"
)

// Extraction is the persisted result of analyzing one URL once.
// It is immutable after creation; re-analysis creates a new Extraction.
type Extraction struct {
	ID          string      `json:"id"`
	URL         string      `json:"url"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Favicon     string      `json:"favicon"`
	Assets      Assets      `json:"assets"`
	Frameworks  []Framework `json:"frameworks"`
	Performance Performance `json:"performance"`
	CreatedAt   time.Time   `json:"createdAt"`
}

// Validate returns an error if the extraction contains invalid fields.
func (e *Extraction) Validate() error {
	if e.URL == "" {
		return Errorf(EINVALID, "extraction URL required")
	}
	if _, err := ParseURL(e.URL); err != nil {
		return err
	}
	if e.Performance.Score < 0 || e.Performance.Score > MaxScore {
		return Errorf(EINVALID, "performance score %d out of range", e.Performance.Score)
	}
	return nil
}

// Normalize replaces nil collections with empty ones so the record always
// encodes with every bucket present.
func (e *Extraction) Normalize() {
	e.Assets.Normalize()
	if e.Frameworks == nil {
		e.Frameworks = []Framework{}
	}
}

// Host returns the hostname of the analyzed URL.
func (e *Extraction) Host() string {
	u, err := url.Parse(e.URL)
	if err != nil {
		return ""
	}
	return u.Hostname()
}

// HostSlug returns the hostname with dots and slashes replaced by dashes,
// suitable for file and package names.
func (e *Extraction) HostSlug() string {
	slug := strings.NewReplacer(".", "-", "/", "-", ":", "-").Replace(e.Host())
	if slug == "" {
		return "site"
	}
	return slug
}

// DefaultTitle is the title used when a page has none.
func DefaultTitle(host string) string {
	return host + " - Frontend Assets"
}

// ParseURL parses and validates an absolute http or https URL.
// Returns EINVALID if the URL is malformed.
func ParseURL(raw string) (*url.URL, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, Errorf(EINVALID, "URL required")
	}
	u, err := url.Parse(raw)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return nil, Errorf(EINVALID, "Invalid URL: %s", raw)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, Errorf(EINVALID, "Invalid URL scheme: %s", u.Scheme)
	}
	return u, nil
}

// DefaultRecentLimit is used by FindRecentExtractions when limit is not positive.
const DefaultRecentLimit = 10

// ExtractionService represents a service for managing extractions.
// Implementations must be safe for concurrent use.
type ExtractionService interface {
	// CreateExtraction persists a new extraction, assigning ID and CreatedAt.
	CreateExtraction(ctx context.Context, e *Extraction) error

	// FindExtractionByID retrieves an extraction by ID.
	// Returns ENOTFOUND if extraction does not exist.
	FindExtractionByID(ctx context.Context, id string) (*Extraction, error)

	// FindExtractionByURL retrieves the most recent extraction of url.
	// Returns ENOTFOUND if the URL was never analyzed.
	FindExtractionByURL(ctx context.Context, url string) (*Extraction, error)

	// FindRecentExtractions returns at most limit extractions, newest first.
	// Extractions created at the same instant are ordered by ID.
	FindRecentExtractions(ctx context.Context, limit int) ([]*Extraction, error)

	// CountExtractions returns the number of stored extractions.
	CountExtractions(ctx context.Context) (int, error)

	// DeleteExtraction permanently removes an extraction.
	// Returns ENOTFOUND if extraction does not exist.
	DeleteExtraction(ctx context.Context, id string) error
}

// Analyzer runs the full extraction pipeline for a URL.
type Analyzer interface {
	// Analyze fetches and analyzes url and returns the persisted Extraction.
	Analyze(ctx context.Context, url string) (*Extraction, error)
}
