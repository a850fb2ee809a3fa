package mock

import "github.com/fwojciec/sitepack"

var (
	_ sitepack.ArchiveBuilder = (*ArchiveBuilder)(nil)
	_ sitepack.ReportRenderer = (*ReportRenderer)(nil)
)

// ArchiveBuilder is a mock implementation of sitepack.ArchiveBuilder.
type ArchiveBuilder struct {
	BuildAssetsArchiveFn  func(e *sitepack.Extraction) ([]byte, error)
	BuildProjectArchiveFn func(e *sitepack.Extraction) ([]byte, error)
}

func (b *ArchiveBuilder) BuildAssetsArchive(e *sitepack.Extraction) ([]byte, error) {
	return b.BuildAssetsArchiveFn(e)
}

func (b *ArchiveBuilder) BuildProjectArchive(e *sitepack.Extraction) ([]byte, error) {
	return b.BuildProjectArchiveFn(e)
}

// ReportRenderer is a mock implementation of sitepack.ReportRenderer.
type ReportRenderer struct {
	RenderHTMLFn     func(r *sitepack.Report) (string, error)
	RenderMarkdownFn func(r *sitepack.Report) (string, error)
}

func (r *ReportRenderer) RenderHTML(report *sitepack.Report) (string, error) {
	return r.RenderHTMLFn(report)
}

func (r *ReportRenderer) RenderMarkdown(report *sitepack.Report) (string, error) {
	return r.RenderMarkdownFn(report)
}
