package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/fwojciec/sitepack"
	"github.com/go-chi/chi/v5"
)

type analyzeRequest struct {
	URL string `json:"url"`
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.Error(w, r, sitepack.Errorf(sitepack.EINVALID, "Invalid request body"))
		return
	}

	e, err := s.Analyzer.Analyze(r.Context(), req.URL)
	if err != nil {
		s.Error(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

func (s *Server) handleExtractionList(w http.ResponseWriter, r *http.Request) {
	limit := sitepack.DefaultRecentLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			s.Error(w, r, sitepack.Errorf(sitepack.EINVALID, "Invalid limit: %s", v))
			return
		}
		limit = n
	}

	list, err := s.ExtractionService.FindRecentExtractions(r.Context(), limit)
	if err != nil {
		s.Error(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleExtractionView(w http.ResponseWriter, r *http.Request) {
	e, err := s.findExtraction(r)
	if err != nil {
		s.Error(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

func (s *Server) handleExtractionDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.ExtractionService.DeleteExtraction(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.Error(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Extraction deleted"})
}

func (s *Server) handleAssetDownload(w http.ResponseWriter, r *http.Request) {
	e, err := s.findExtraction(r)
	if err != nil {
		s.Error(w, r, err)
		return
	}
	kind, err := sitepack.ParseAssetKind(chi.URLParam(r, "kind"))
	if err != nil {
		s.Error(w, r, sitepack.Errorf(sitepack.ENOTFOUND, "Asset not found"))
		return
	}
	asset, err := e.Assets.Find(kind, chi.URLParam(r, "filename"))
	if err != nil {
		s.Error(w, r, err)
		return
	}
	if !asset.HasContent() {
		s.Error(w, r, sitepack.Errorf(sitepack.ENOTFOUND, "Asset content not available"))
		return
	}

	if asset.Hash != "" {
		etag := strconv.Quote(asset.Hash)
		w.Header().Set("ETag", etag)
		if r.Header.Get("If-None-Match") == etag {
			w.WriteHeader(http.StatusNotModified)
			return
		}
	}
	w.Header().Set("Content-Disposition", attachment(asset.Name))
	writeBody(w, kind.ContentType(), []byte(asset.Content))
}

func (s *Server) handleAssetsArchive(w http.ResponseWriter, r *http.Request) {
	s.serveArchive(w, r, sitepack.ArchiveAssets, s.ArchiveBuilder.BuildAssetsArchive)
}

func (s *Server) handleProjectArchive(w http.ResponseWriter, r *http.Request) {
	s.serveArchive(w, r, sitepack.ArchiveProject, s.ArchiveBuilder.BuildProjectArchive)
}

func (s *Server) serveArchive(w http.ResponseWriter, r *http.Request, flavour string, build func(*sitepack.Extraction) ([]byte, error)) {
	e, err := s.findExtraction(r)
	if err != nil {
		s.Error(w, r, err)
		return
	}
	b, err := build(e)
	if err != nil {
		s.Error(w, r, err)
		return
	}
	w.Header().Set("Content-Disposition", attachment(e.ArchiveFilename(flavour, s.Now())))
	w.Header().Set("Content-Length", strconv.Itoa(len(b)))
	writeBody(w, "application/zip", b)
}

func (s *Server) handleExtractionPreview(w http.ResponseWriter, r *http.Request) {
	e, err := s.findExtraction(r)
	if err != nil {
		s.Error(w, r, err)
		return
	}
	if len(e.Assets.HTML) == 0 || !e.Assets.HTML[0].HasContent() {
		s.Error(w, r, sitepack.Errorf(sitepack.ENOTFOUND, "No HTML content found"))
		return
	}
	writeBody(w, "text/html; charset=utf-8", []byte(e.Assets.HTML[0].Content))
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	e, err := s.findExtraction(r)
	if err != nil {
		s.Error(w, r, err)
		return
	}
	report := sitepack.NewReport(e)

	switch format := r.URL.Query().Get("format"); format {
	case "", "json":
		writeJSON(w, http.StatusOK, report)
	case "html":
		out, err := s.ReportRenderer.RenderHTML(report)
		if err != nil {
			s.Error(w, r, err)
			return
		}
		writeBody(w, "text/html; charset=utf-8", []byte(out))
	case "markdown", "md":
		out, err := s.ReportRenderer.RenderMarkdown(report)
		if err != nil {
			s.Error(w, r, err)
			return
		}
		writeBody(w, "text/markdown; charset=utf-8", []byte(out))
	default:
		s.Error(w, r, sitepack.Errorf(sitepack.EINVALID, "Unknown report format: %s", format))
	}
}

func (s *Server) findExtraction(r *http.Request) (*sitepack.Extraction, error) {
	return s.ExtractionService.FindExtractionByID(r.Context(), chi.URLParam(r, "id"))
}

func attachment(filename string) string {
	return fmt.Sprintf("attachment; filename=%q", filename)
}
