package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/fwojciec/sitepack"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Compile-time interface verification.
var _ sitepack.ExtractionService = (*ExtractionService)(nil)

const extractionColumns = `id, url, title, description, favicon, assets, frameworks, performance, created_at`

// recentOrder sorts newest first and breaks ties by byte order of the ID.
const recentOrder = `ORDER BY created_at DESC, id COLLATE "C" ASC`

// ExtractionService implements sitepack.ExtractionService using PostgreSQL.
// Assets, frameworks and performance are stored as JSONB columns.
type ExtractionService struct {
	db *DB
}

// NewExtractionService creates a new ExtractionService.
func NewExtractionService(db *DB) *ExtractionService {
	return &ExtractionService{db: db}
}

// CreateExtraction persists a new extraction in a single statement.
func (s *ExtractionService) CreateExtraction(ctx context.Context, e *sitepack.Extraction) error {
	if err := e.Validate(); err != nil {
		return err
	}
	e.Normalize()

	assets, err := json.Marshal(e.Assets)
	if err != nil {
		return fmt.Errorf("failed to encode assets: %w", err)
	}
	frameworks, err := json.Marshal(e.Frameworks)
	if err != nil {
		return fmt.Errorf("failed to encode frameworks: %w", err)
	}
	performance, err := json.Marshal(e.Performance)
	if err != nil {
		return fmt.Errorf("failed to encode performance: %w", err)
	}

	id := uuid.New().String()
	// PostgreSQL timestamps have microsecond precision.
	createdAt := s.db.Now().UTC().Truncate(time.Microsecond)

	_, err = s.db.pool.Exec(ctx, `
		INSERT INTO extractions (`+extractionColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, id, e.URL, e.Title, e.Description, e.Favicon, assets, frameworks, performance, createdAt)
	if err != nil {
		return err
	}

	e.ID = id
	e.CreatedAt = createdAt
	return nil
}

// FindExtractionByID retrieves an extraction by ID.
func (s *ExtractionService) FindExtractionByID(ctx context.Context, id string) (*sitepack.Extraction, error) {
	row := s.db.pool.QueryRow(ctx, `SELECT `+extractionColumns+` FROM extractions WHERE id = $1`, id)
	return scanExtraction(row)
}

// FindExtractionByURL retrieves the most recent extraction of url.
func (s *ExtractionService) FindExtractionByURL(ctx context.Context, url string) (*sitepack.Extraction, error) {
	row := s.db.pool.QueryRow(ctx, `SELECT `+extractionColumns+` FROM extractions WHERE url = $1 `+recentOrder+` LIMIT 1`, url)
	return scanExtraction(row)
}

// FindRecentExtractions returns at most limit extractions, newest first.
func (s *ExtractionService) FindRecentExtractions(ctx context.Context, limit int) ([]*sitepack.Extraction, error) {
	if limit <= 0 {
		limit = sitepack.DefaultRecentLimit
	}

	rows, err := s.db.pool.Query(ctx, `SELECT `+extractionColumns+` FROM extractions `+recentOrder+` LIMIT $1`, limit)
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
	if err := s.db.pool.QueryRow(ctx, `SELECT COUNT(*) FROM extractions`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// DeleteExtraction permanently removes an extraction.
func (s *ExtractionService) DeleteExtraction(ctx context.Context, id string) error {
	tag, err := s.db.pool.Exec(ctx, `DELETE FROM extractions WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return sitepack.Errorf(sitepack.ENOTFOUND, "Extraction not found")
	}
	return nil
}

func scanExtraction(row pgx.Row) (*sitepack.Extraction, error) {
	var e sitepack.Extraction
	var assets, frameworks, performance []byte

	err := row.Scan(&e.ID, &e.URL, &e.Title, &e.Description, &e.Favicon,
		&assets, &frameworks, &performance, &e.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, sitepack.Errorf(sitepack.ENOTFOUND, "Extraction not found")
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(assets, &e.Assets); err != nil {
		return nil, fmt.Errorf("failed to decode assets: %w", err)
	}
	if err := json.Unmarshal(frameworks, &e.Frameworks); err != nil {
		return nil, fmt.Errorf("failed to decode frameworks: %w", err)
	}
	if err := json.Unmarshal(performance, &e.Performance); err != nil {
		return nil, fmt.Errorf("failed to decode performance: %w", err)
	}
	e.CreatedAt = e.CreatedAt.UTC()
	e.Normalize()

	return &e, nil
}
