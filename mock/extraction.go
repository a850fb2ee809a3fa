package mock

import (
	"context"

	"github.com/fwojciec/sitepack"
)

var (
	_ sitepack.ExtractionService = (*ExtractionService)(nil)
	_ sitepack.Analyzer          = (*Analyzer)(nil)
)

// ExtractionService is a mock implementation of sitepack.ExtractionService.
type ExtractionService struct {
	CreateExtractionFn      func(ctx context.Context, e *sitepack.Extraction) error
	FindExtractionByIDFn    func(ctx context.Context, id string) (*sitepack.Extraction, error)
	FindExtractionByURLFn   func(ctx context.Context, url string) (*sitepack.Extraction, error)
	FindRecentExtractionsFn func(ctx context.Context, limit int) ([]*sitepack.Extraction, error)
	CountExtractionsFn      func(ctx context.Context) (int, error)
	DeleteExtractionFn      func(ctx context.Context, id string) error
}

func (s *ExtractionService) CreateExtraction(ctx context.Context, e *sitepack.Extraction) error {
	return s.CreateExtractionFn(ctx, e)
}

func (s *ExtractionService) FindExtractionByID(ctx context.Context, id string) (*sitepack.Extraction, error) {
	return s.FindExtractionByIDFn(ctx, id)
}

func (s *ExtractionService) FindExtractionByURL(ctx context.Context, url string) (*sitepack.Extraction, error) {
	return s.FindExtractionByURLFn(ctx, url)
}

func (s *ExtractionService) FindRecentExtractions(ctx context.Context, limit int) ([]*sitepack.Extraction, error) {
	return s.FindRecentExtractionsFn(ctx, limit)
}

func (s *ExtractionService) CountExtractions(ctx context.Context) (int, error) {
	return s.CountExtractionsFn(ctx)
}

func (s *ExtractionService) DeleteExtraction(ctx context.Context, id string) error {
	return s.DeleteExtractionFn(ctx, id)
}

// Analyzer is a mock implementation of sitepack.Analyzer.
type Analyzer struct {
	AnalyzeFn func(ctx context.Context, url string) (*sitepack.Extraction, error)
}

func (a *Analyzer) Analyze(ctx context.Context, url string) (*sitepack.Extraction, error) {
	return a.AnalyzeFn(ctx, url)
}
