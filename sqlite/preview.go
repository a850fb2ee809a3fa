package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/fwojciec/sitepack"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ sitepack.PreviewService = (*PreviewService)(nil)

// PreviewService implements sitepack.PreviewService using SQLite.
type PreviewService struct {
	db *DB
}

// NewPreviewService creates a new PreviewService.
func NewPreviewService(db *DB) *PreviewService {
	return &PreviewService{db: db}
}

// CreatePreview stores a generated preview document.
func (s *PreviewService) CreatePreview(ctx context.Context, p *sitepack.CodePreview) error {
	id := uuid.New().String()
	createdAt := s.db.Now().UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO code_previews (id, document, created_at)
		VALUES (?, ?, ?)
	`, id, p.Document, formatTime(createdAt))
	if err != nil {
		return err
	}

	p.ID = id
	p.CreatedAt = createdAt
	return nil
}

// FindPreviewByID retrieves a preview by ID.
func (s *PreviewService) FindPreviewByID(ctx context.Context, id string) (*sitepack.CodePreview, error) {
	var p sitepack.CodePreview
	var createdAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, document, created_at
		FROM code_previews
		WHERE id = ?
	`, id).Scan(&p.ID, &p.Document, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sitepack.Errorf(sitepack.ENOTFOUND, "Preview not found")
	}
	if err != nil {
		return nil, err
	}

	if p.CreatedAt, err = parseTime(createdAt, "created_at"); err != nil {
		return nil, err
	}
	return &p, nil
}
