package sitepack

import (
	"context"
	"time"
)

// PreviewSource is user-supplied code to assemble into a preview page.
type PreviewSource struct {
	HTML string `json:"html"`
	CSS  string `json:"css"`
	JS   string `json:"js"`
}

// CodePreview is a generated standalone HTML page.
type CodePreview struct {
	ID        string    `json:"id"`
	Document  string    `json:"-"`
	CreatedAt time.Time `json:"createdAt"`
}

// PreviewComposer assembles a standalone HTML document from source code.
type PreviewComposer interface {
	// ComposePreview embeds src.CSS in a style element and src.JS in a
	// script element around the body content of src.HTML.
	ComposePreview(src PreviewSource) (string, error)
}

// PreviewService represents a service for managing code previews.
type PreviewService interface {
	// CreatePreview stores a preview, assigning ID and CreatedAt.
	CreatePreview(ctx context.Context, p *CodePreview) error

	// FindPreviewByID retrieves a preview by ID.
	// Returns ENOTFOUND if preview does not exist.
	FindPreviewByID(ctx context.Context, id string) (*CodePreview, error)
}
