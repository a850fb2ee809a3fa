package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/sitepack"
)

var (
	_ sitepack.Analyzer     = (*LoggingAnalyzer)(nil)
	_ sitepack.PageAnalyzer = (*LoggingPageAnalyzer)(nil)
)

// LoggingAnalyzer wraps an Analyzer and logs every extraction run.
type LoggingAnalyzer struct {
	next   sitepack.Analyzer
	logger *slog.Logger
}

// NewLoggingAnalyzer creates a new LoggingAnalyzer.
func NewLoggingAnalyzer(next sitepack.Analyzer, logger *slog.Logger) *LoggingAnalyzer {
	return &LoggingAnalyzer{next: next, logger: logger}
}

// Analyze delegates to the wrapped analyzer and logs the outcome.
func (a *LoggingAnalyzer) Analyze(ctx context.Context, url string) (e *sitepack.Extraction, err error) {
	defer func(begin time.Time) {
		if err != nil {
			a.logger.Warn("analyze",
				"url", url,
				"code", sitepack.ErrorCode(err),
				"duration", time.Since(begin),
				"err", err,
			)
			return
		}
		a.logger.Info("analyze",
			"url", url,
			"id", e.ID,
			"assets", len(e.Assets.All()),
			"score", e.Performance.Score,
			"duration", time.Since(begin),
		)
	}(time.Now())
	return a.next.Analyze(ctx, url)
}

// LoggingPageAnalyzer wraps a PageAnalyzer and logs the detected frameworks.
type LoggingPageAnalyzer struct {
	next   sitepack.PageAnalyzer
	logger *slog.Logger
}

// NewLoggingPageAnalyzer creates a new LoggingPageAnalyzer.
func NewLoggingPageAnalyzer(next sitepack.PageAnalyzer, logger *slog.Logger) *LoggingPageAnalyzer {
	return &LoggingPageAnalyzer{next: next, logger: logger}
}

// AnalyzePage delegates to the wrapped analyzer and logs the detected frameworks.
func (a *LoggingPageAnalyzer) AnalyzePage(html, baseURL string) (p *sitepack.PageAnalysis, err error) {
	defer func(begin time.Time) {
		var detected []string
		if p != nil {
			for _, f := range p.Frameworks {
				if f.Detected {
					detected = append(detected, f.Name)
				}
			}
		}
		a.logger.Debug("page analysis",
			"url", baseURL,
			"frameworks", detected,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return a.next.AnalyzePage(html, baseURL)
}
