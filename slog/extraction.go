package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/sitepack"
)

var _ sitepack.ExtractionService = (*LoggingExtractionService)(nil)

// LoggingExtractionService wraps an ExtractionService with debug logging of
// every store call.
type LoggingExtractionService struct {
	next   sitepack.ExtractionService
	logger *slog.Logger
}

// NewLoggingExtractionService creates a new LoggingExtractionService.
func NewLoggingExtractionService(next sitepack.ExtractionService, logger *slog.Logger) *LoggingExtractionService {
	return &LoggingExtractionService{next: next, logger: logger}
}

func (s *LoggingExtractionService) CreateExtraction(ctx context.Context, e *sitepack.Extraction) (err error) {
	defer func(begin time.Time) {
		s.logger.Debug("create extraction",
			"url", e.URL,
			"id", e.ID,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.CreateExtraction(ctx, e)
}

func (s *LoggingExtractionService) FindExtractionByID(ctx context.Context, id string) (e *sitepack.Extraction, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("find extraction",
			"id", id,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindExtractionByID(ctx, id)
}

func (s *LoggingExtractionService) FindExtractionByURL(ctx context.Context, url string) (e *sitepack.Extraction, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("find extraction by url",
			"url", url,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindExtractionByURL(ctx, url)
}

func (s *LoggingExtractionService) FindRecentExtractions(ctx context.Context, limit int) (list []*sitepack.Extraction, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("find recent extractions",
			"limit", limit,
			"count", len(list),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindRecentExtractions(ctx, limit)
}

func (s *LoggingExtractionService) CountExtractions(ctx context.Context) (n int, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("count extractions",
			"count", n,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.CountExtractions(ctx)
}

func (s *LoggingExtractionService) DeleteExtraction(ctx context.Context, id string) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("delete extraction",
			"id", id,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.DeleteExtraction(ctx, id)
}
