package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/fwojciec/sitepack"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Compile-time interface verification.
var _ sitepack.PreviewService = (*PreviewService)(nil)

// PreviewService implements sitepack.PreviewService using PostgreSQL.
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
	createdAt := s.db.Now().UTC().Truncate(time.Microsecond)

	_, err := s.db.pool.Exec(ctx, `
		INSERT INTO code_previews (id, document, created_at)
		VALUES ($1, $2, $3)
	`, id, p.Document, createdAt)
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
	err := s.db.pool.QueryRow(ctx, `
		SELECT id, document, created_at FROM code_previews WHERE id = $1
	`, id).Scan(&p.ID, &p.Document, &p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, sitepack.Errorf(sitepack.ENOTFOUND, "Preview not found")
	}
	if err != nil {
		return nil, err
	}
	p.CreatedAt = p.CreatedAt.UTC()
	return &p, nil
}
