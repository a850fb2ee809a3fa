package http

import (
	"encoding/json"
	"net/http"

	"github.com/fwojciec/sitepack"
	"github.com/go-chi/chi/v5"
)

type previewResponse struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

func (s *Server) handleCodePreviewCreate(w http.ResponseWriter, r *http.Request) {
	var src sitepack.PreviewSource
	if err := json.NewDecoder(r.Body).Decode(&src); err != nil {
		s.Error(w, r, sitepack.Errorf(sitepack.EINVALID, "Invalid request body"))
		return
	}

	doc, err := s.PreviewComposer.ComposePreview(src)
	if err != nil {
		s.Error(w, r, err)
		return
	}
	p := &sitepack.CodePreview{Document: doc}
	if err := s.PreviewService.CreatePreview(r.Context(), p); err != nil {
		s.Error(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, previewResponse{ID: p.ID, URL: "/api/code/" + p.ID})
}

func (s *Server) handleCodePreviewView(w http.ResponseWriter, r *http.Request) {
	p, err := s.PreviewService.FindPreviewByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.Error(w, r, err)
		return
	}
	writeBody(w, "text/html; charset=utf-8", []byte(p.Document))
}
