package http

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"log/slog"

	"github.com/fwojciec/sitepack"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server timeouts. Analysis fetches a page and all of its assets, so the
// write timeout leaves room for a full extraction run.
const (
	DefaultReadTimeout     = 10 * time.Second
	DefaultWriteTimeout    = 2 * time.Minute
	DefaultShutdownTimeout = 10 * time.Second
)

// Server is the HTTP API over the extraction services.
type Server struct {
	ln     net.Listener
	server *http.Server

	// Addr is the bind address, e.g. ":8080".
	Addr string

	Logger *slog.Logger

	Analyzer          sitepack.Analyzer
	ExtractionService sitepack.ExtractionService
	PreviewService    sitepack.PreviewService
	PreviewComposer   sitepack.PreviewComposer
	ArchiveBuilder    sitepack.ArchiveBuilder
	ReportRenderer    sitepack.ReportRenderer

	// Middleware is applied to every route after the built-in middleware.
	Middleware []func(http.Handler) http.Handler

	// MetricsHandler, if set, is served at /metrics.
	MetricsHandler http.Handler

	// HealthCheck, if set, is called by /healthz.
	HealthCheck func(ctx context.Context) error

	// Now returns the time used in download file names.
	Now func() time.Time
}

// NewServer returns a Server with defaults.
func NewServer() *Server {
	return &Server{
		Logger: slog.New(slog.DiscardHandler),
		Now:    time.Now,
	}
}

// Open binds Addr and serves requests in the background.
func (s *Server) Open() (err error) {
	if s.ln, err = net.Listen("tcp", s.Addr); err != nil {
		return err
	}
	s.server = &http.Server{
		Handler:      s.Handler(),
		ReadTimeout:  DefaultReadTimeout,
		WriteTimeout: DefaultWriteTimeout,
	}
	go func() {
		if err := s.server.Serve(s.ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.Logger.Error("http server stopped", "err", err)
		}
	}()
	return nil
}

// Close gracefully shuts down the server.
func (s *Server) Close() error {
	if s.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), DefaultShutdownTimeout)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// URL returns the base URL of the running server.
func (s *Server) URL() string {
	if s.ln == nil {
		return ""
	}
	return "http://" + s.ln.Addr().String()
}

// Handler builds the router. Services must be set before calling it.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	for _, mw := range s.Middleware {
		r.Use(mw)
	}

	r.Get("/healthz", s.handleHealth)
	if s.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", s.MetricsHandler)
	}

	r.Route("/api", func(r chi.Router) {
		r.Post("/analyze", s.handleAnalyze)

		r.Route("/extractions", func(r chi.Router) {
			r.Get("/", s.handleExtractionList)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleExtractionView)
				r.Delete("/", s.handleExtractionDelete)
				r.Get("/download/{kind}/{filename}", s.handleAssetDownload)
				r.Get("/download-all", s.handleAssetsArchive)
				r.Get("/export-project", s.handleProjectArchive)
				r.Get("/preview", s.handleExtractionPreview)
				r.Get("/report", s.handleReport)
			})
		})

		r.Post("/code/preview", s.handleCodePreviewCreate)
		r.Get("/code/{id}", s.handleCodePreviewView)
	})

	return r
}

// logRequests logs one line per request with its status and duration.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		defer func(begin time.Time) {
			s.Logger.Info("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(begin),
				"request_id", middleware.GetReqID(r.Context()),
			)
		}(time.Now())
		next.ServeHTTP(ww, r)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.HealthCheck != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := s.HealthCheck(ctx); err != nil {
			s.Logger.Error("health check failed", "err", err)
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unhealthy"})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
