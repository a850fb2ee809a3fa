// Package inmem provides in-memory implementations of sitepack storage
// services. Data does not survive a restart.
package inmem

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/fwojciec/sitepack"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var (
	_ sitepack.ExtractionService = (*ExtractionService)(nil)
	_ sitepack.PreviewService    = (*PreviewService)(nil)
)

// ExtractionService implements sitepack.ExtractionService with a map.
type ExtractionService struct {
	mu          sync.RWMutex
	extractions map[string]*sitepack.Extraction

	// Now returns the current time. Overridable in tests.
	Now func() time.Time
}

// NewExtractionService creates an empty ExtractionService.
func NewExtractionService() *ExtractionService {
	return &ExtractionService{
		extractions: make(map[string]*sitepack.Extraction),
		Now:         time.Now,
	}
}

// CreateExtraction stores a copy of e.
func (s *ExtractionService) CreateExtraction(_ context.Context, e *sitepack.Extraction) error {
	if err := e.Validate(); err != nil {
		return err
	}
	e.Normalize()

	s.mu.Lock()
	defer s.mu.Unlock()

	e.ID = uuid.New().String()
	e.CreatedAt = s.Now().UTC()
	s.extractions[e.ID] = clone(e)
	return nil
}

// FindExtractionByID retrieves an extraction by ID.
func (s *ExtractionService) FindExtractionByID(_ context.Context, id string) (*sitepack.Extraction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.extractions[id]
	if !ok {
		return nil, sitepack.Errorf(sitepack.ENOTFOUND, "Extraction not found")
	}
	return clone(e), nil
}

// FindExtractionByURL retrieves the most recent extraction of url.
func (s *ExtractionService) FindExtractionByURL(_ context.Context, url string) (*sitepack.Extraction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var found *sitepack.Extraction
	for _, e := range s.extractions {
		if e.URL == url && (found == nil || newer(e, found)) {
			found = e
		}
	}
	if found == nil {
		return nil, sitepack.Errorf(sitepack.ENOTFOUND, "Extraction not found")
	}
	return clone(found), nil
}

// FindRecentExtractions returns at most limit extractions, newest first.
func (s *ExtractionService) FindRecentExtractions(_ context.Context, limit int) ([]*sitepack.Extraction, error) {
	if limit <= 0 {
		limit = sitepack.DefaultRecentLimit
	}

	s.mu.RLock()
	all := make([]*sitepack.Extraction, 0, len(s.extractions))
	for _, e := range s.extractions {
		all = append(all, e)
	}
	s.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool { return newer(all[i], all[j]) })
	if len(all) > limit {
		all = all[:limit]
	}

	result := make([]*sitepack.Extraction, len(all))
	for i, e := range all {
		result[i] = clone(e)
	}
	return result, nil
}

// CountExtractions returns the number of stored extractions.
func (s *ExtractionService) CountExtractions(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.extractions), nil
}

// DeleteExtraction permanently removes an extraction.
func (s *ExtractionService) DeleteExtraction(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.extractions[id]; !ok {
		return sitepack.Errorf(sitepack.ENOTFOUND, "Extraction not found")
	}
	delete(s.extractions, id)
	return nil
}

// newer orders extractions newest first, then by ID.
func newer(a, b *sitepack.Extraction) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return a.ID < b.ID
}

// clone copies e so callers cannot mutate stored records.
func clone(e *sitepack.Extraction) *sitepack.Extraction {
	c := *e
	c.Assets = sitepack.Assets{
		HTML:   append([]sitepack.Asset{}, e.Assets.HTML...),
		CSS:    append([]sitepack.Asset{}, e.Assets.CSS...),
		JS:     append([]sitepack.Asset{}, e.Assets.JS...),
		Images: append([]sitepack.Asset{}, e.Assets.Images...),
		Fonts:  append([]sitepack.Asset{}, e.Assets.Fonts...),
	}
	c.Frameworks = append([]sitepack.Framework{}, e.Frameworks...)
	return &c
}

// PreviewService implements sitepack.PreviewService with a map.
type PreviewService struct {
	mu       sync.RWMutex
	previews map[string]sitepack.CodePreview

	// Now returns the current time. Overridable in tests.
	Now func() time.Time
}

// NewPreviewService creates an empty PreviewService.
func NewPreviewService() *PreviewService {
	return &PreviewService{
		previews: make(map[string]sitepack.CodePreview),
		Now:      time.Now,
	}
}

// CreatePreview stores a generated preview document.
func (s *PreviewService) CreatePreview(_ context.Context, p *sitepack.CodePreview) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p.ID = uuid.New().String()
	p.CreatedAt = s.Now().UTC()
	s.previews[p.ID] = *p
	return nil
}

// FindPreviewByID retrieves a preview by ID.
func (s *PreviewService) FindPreviewByID(_ context.Context, id string) (*sitepack.CodePreview, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.previews[id]
	if !ok {
		return nil, sitepack.Errorf(sitepack.ENOTFOUND, "Preview not found")
	}
	return &p, nil
}
