package sitepack

import (
	"fmt"
	"time"
)

// ArchiveBuilder packages the captured contents of an extraction as zip
// archives. Archives are built fully in memory.
type ArchiveBuilder interface {
	// BuildAssetsArchive groups captured html, css and js under folders
	// named after their kind, plus a README.
	BuildAssetsArchive(e *Extraction) ([]byte, error)

	// BuildProjectArchive lays captured assets out as a static site with a
	// package.json and setup instructions.
	BuildProjectArchive(e *Extraction) ([]byte, error)
}

// ReportRenderer renders a Report for human readers.
type ReportRenderer interface {
	RenderHTML(r *Report) (string, error)
	RenderMarkdown(r *Report) (string, error)
}

// Archive flavours used in download file names.
const (
	ArchiveAssets  = "assets"
	ArchiveProject = "project"
)

// ArchiveFilename returns the download name of an archive of e built at t,
// e.g. "example-com-assets-1700000000000.zip".
func (e *Extraction) ArchiveFilename(flavour string, t time.Time) string {
	return fmt.Sprintf("%s-%s-%d.zip", e.HostSlug(), flavour, t.UnixMilli())
}
