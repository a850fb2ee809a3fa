package main

import (
	"fmt"
	"net/http"

	sitepackhttp "github.com/fwojciec/sitepack/http"
)

// Run executes the serve command. It blocks until the context is canceled.
func (c *ServeCmd) Run(deps *Dependencies) error {
	s := sitepackhttp.NewServer()
	s.Addr = c.Addr
	s.Logger = deps.Logger
	s.Analyzer = deps.Analyzer
	s.ExtractionService = deps.Extractions
	s.PreviewService = deps.Previews
	s.PreviewComposer = deps.Composer
	s.ArchiveBuilder = deps.Archives
	s.ReportRenderer = deps.Reports
	s.HealthCheck = deps.HealthCheck
	s.Now = deps.Now
	if deps.Metrics != nil {
		s.Middleware = []func(http.Handler) http.Handler{deps.Metrics.Middleware}
		s.MetricsHandler = deps.Metrics.Handler()
	}

	if err := s.Open(); err != nil {
		return fmt.Errorf("failed to listen on %s: %w", c.Addr, err)
	}
	deps.Logger.Info("listening", "url", s.URL())

	<-deps.Ctx.Done()
	deps.Logger.Info("shutting down")
	return s.Close()
}
