package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/fwojciec/sitepack"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ sitepack.ExtractionService = (*ExtractionService)(nil)

const extractionColumns = `id, url, title, description, favicon, assets, frameworks, performance, created_at`

// ExtractionService implements sitepack.ExtractionService using SQLite.
// Assets, frameworks and performance are stored as JSON text columns.
type ExtractionService struct {
	db *DB
}

// NewExtractionService creates a new ExtractionService.
func NewExtractionService(db *DB) *ExtractionService {
	return &ExtractionService{db: db}
}

// CreateExtraction persists a new extraction.
func (s *ExtractionService) CreateExtraction(ctx context.Context, e *sitepack.Extraction) error {
	if err := e.Validate(); err != nil {
		return err
	}
	e.Normalize()

	assets, err := marshalColumn(e.Assets, "assets")
	if err != nil {
		return err
	}
	frameworks, err := marshalColumn(e.Frameworks, "frameworks")
	if err != nil {
		return err
	}
	performance, err := marshalColumn(e.Performance, "performance")
	if err != nil {
		return err
	}

	id := uuid.New().String()
	createdAt := s.db.Now().UTC()

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO extractions (`+extractionColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, id, e.URL, e.Title, e.Description, e.Favicon, assets, frameworks, performance, formatTime(createdAt))
	if err != nil {
		return err
	}

	e.ID = id
	e.CreatedAt = createdAt
	return nil
}

// FindExtractionByID retrieves an extraction by ID.
func (s *ExtractionService) FindExtractionByID(ctx context.Context, id string) (*sitepack.Extraction, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+extractionColumns+`
		FROM extractions
		WHERE id = ?
	`, id)
	return scanExtraction(row)
}

// FindExtractionByURL retrieves the most recent extraction of url.
func (s *ExtractionService) FindExtractionByURL(ctx context.Context, url string) (*sitepack.Extraction, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+extractionColumns+`
		FROM extractions
		WHERE url = ?
		ORDER BY created_at DESC, id ASC
		LIMIT 1
	`, url)
	return scanExtraction(row)
}

// FindRecentExtractions returns at most limit extractions, newest first.
func (s *ExtractionService) FindRecentExtractions(ctx context.Context, limit int) ([]*sitepack.Extraction, error) {
	if limit <= 0 {
		limit = sitepack.DefaultRecentLimit
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+extractionColumns+`
		FROM extractions
		ORDER BY created_at DESC, id ASC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	extractions := []*sitepack.Extraction{}
	for rows.Next() {
		e, err := scanExtraction(rows)
		if err != nil {
			return nil, err
		}
		extractions = append(extractions, e)
	}

	return extractions, rows.Err()
}

// CountExtractions returns the number of stored extractions.
func (s *ExtractionService) CountExtractions(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM extractions").Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// DeleteExtraction permanently removes an extraction.
func (s *ExtractionService) DeleteExtraction(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM extractions WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return sitepack.Errorf(sitepack.ENOTFOUND, "Extraction not found")
	}

	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanExtraction(row scanner) (*sitepack.Extraction, error) {
	var e sitepack.Extraction
	var assets, frameworks, performance, createdAt string

	err := row.Scan(&e.ID, &e.URL, &e.Title, &e.Description, &e.Favicon,
		&assets, &frameworks, &performance, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sitepack.Errorf(sitepack.ENOTFOUND, "Extraction not found")
	}
	if err != nil {
		return nil, err
	}

	if err := unmarshalColumn(assets, &e.Assets, "assets"); err != nil {
		return nil, err
	}
	if err := unmarshalColumn(frameworks, &e.Frameworks, "frameworks"); err != nil {
		return nil, err
	}
	if err := unmarshalColumn(performance, &e.Performance, "performance"); err != nil {
		return nil, err
	}
	if e.CreatedAt, err = parseTime(createdAt, "created_at"); err != nil {
		return nil, err
	}
	e.Normalize()

	return &e, nil
}
