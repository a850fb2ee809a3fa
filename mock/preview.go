package mock

import (
	"context"

	"github.com/fwojciec/sitepack"
)

var (
	_ sitepack.PreviewService  = (*PreviewService)(nil)
	_ sitepack.PreviewComposer = (*PreviewComposer)(nil)
)

// PreviewService is a mock implementation of sitepack.PreviewService.
type PreviewService struct {
	CreatePreviewFn   func(ctx context.Context, p *sitepack.CodePreview) error
	FindPreviewByIDFn func(ctx context.Context, id string) (*sitepack.CodePreview, error)
}

func (s *PreviewService) CreatePreview(ctx context.Context, p *sitepack.CodePreview) error {
	return s.CreatePreviewFn(ctx, p)
}

func (s *PreviewService) FindPreviewByID(ctx context.Context, id string) (*sitepack.CodePreview, error) {
	return s.FindPreviewByIDFn(ctx, id)
}

// PreviewComposer is a mock implementation of sitepack.PreviewComposer.
type PreviewComposer struct {
	ComposePreviewFn func(src sitepack.PreviewSource) (string, error)
}

func (c *PreviewComposer) ComposePreview(src sitepack.PreviewSource) (string, error) {
	return c.ComposePreviewFn(src)
}
