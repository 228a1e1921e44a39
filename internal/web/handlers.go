// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package web

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/pdiddy/journal-finder/internal/dataset"
	"github.com/pdiddy/journal-finder/internal/search"
	"github.com/pdiddy/journal-finder/pkg/types"
)

// pageData is the view model shared by all HTML pages.
type pageData struct {
	Title   string
	Query   string
	Mode    string
	Result  *search.Result
	Journal *types.Journal
	Message string
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusOK, "index.html", pageData{Title: "Journal Finder", Mode: string(search.ModeKeyword)})
}

func (s *Server) handleSearchForm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		status := statusOf(err)
		if status == http.StatusInternalServerError {
			status = http.StatusBadRequest
		}
		s.renderError(w, status, "invalid form: "+err.Error())
		return
	}
	if !r.PostForm.Has("query") {
		s.renderError(w, http.StatusBadRequest, "missing form field: query")
		return
	}

	query := r.PostForm.Get("query")
	result, err := s.searcher.Search(query, r.PostForm.Get("type"))
	if err != nil {
		s.renderError(w, statusOf(err), err.Error())
		return
	}
	s.render(w, http.StatusOK, "index.html", pageData{
		Title:  "Journal Finder",
		Query:  query,
		Mode:   string(result.Mode),
		Result: &result,
	})
}

func (s *Server) handleJournalDetail(w http.ResponseWriter, r *http.Request) {
	s.renderJournal(w, r.URL.Query().Get("name"))
}

func (s *Server) handleJournalPath(w http.ResponseWriter, r *http.Request) {
	s.renderJournal(w, pathName(r))
}

func (s *Server) renderJournal(w http.ResponseWriter, name string) {
	j, err := s.directory.FindByName(name)
	if err != nil {
		if errors.Is(err, dataset.ErrNotFound) {
			s.logger.Info("journal not found", "name", name)
			s.renderError(w, http.StatusNotFound, s.searcher.Catalog().NotFound)
			return
		}
		s.renderError(w, statusOf(err), err.Error())
		return
	}
	s.render(w, http.StatusOK, "journal_detail.html", pageData{Title: j.Name, Journal: &j})
}

func (s *Server) renderError(w http.ResponseWriter, status int, message string) {
	s.render(w, status, "error.html", pageData{Title: "Error", Message: message})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	success(w, map[string]any{"status": "ok", "journals": s.directory.Len()})
}

// searchRequest is the JSON body of POST /api/search.
type searchRequest struct {
	Query *string `json:"query"`
	Mode  string  `json:"mode"`
}

func (s *Server) handleAPISearchQuery(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if !q.Has("q") {
		failure(w, http.StatusBadRequest, "missing query parameter: q")
		return
	}
	s.apiSearch(w, q.Get("q"), q.Get("mode"))
}

func (s *Server) handleAPISearchJSON(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		status := statusOf(err)
		if status == http.StatusInternalServerError {
			status = http.StatusBadRequest
		}
		failure(w, status, fmt.Sprintf("invalid request body: %v", err))
		return
	}
	if req.Query == nil {
		failure(w, http.StatusBadRequest, "missing field: query")
		return
	}
	s.apiSearch(w, *req.Query, req.Mode)
}

func (s *Server) apiSearch(w http.ResponseWriter, query, mode string) {
	result, err := s.searcher.Search(query, mode)
	if err != nil {
		failure(w, statusOf(err), err.Error())
		return
	}
	success(w, result)
}

func (s *Server) handleAPIJournal(w http.ResponseWriter, r *http.Request) {
	j, err := s.directory.FindByName(pathName(r))
	if err != nil {
		msg := err.Error()
		if errors.Is(err, dataset.ErrNotFound) {
			msg = s.searcher.Catalog().NotFound
		}
		failure(w, statusOf(err), msg)
		return
	}
	success(w, j)
}

// pathName returns the {name} route parameter. chi matches on the raw
// path when it carries escapes such as %2F, so the value is unescaped.
func pathName(r *http.Request) string {
	name := chi.URLParam(r, "name")
	if r.URL.RawPath != "" {
		if unescaped, err := url.PathUnescape(name); err == nil {
			return unescaped
		}
	}
	return name
}

func formatImpact(f sql.NullFloat64) string {
	if !f.Valid {
		return "-"
	}
	return fmt.Sprintf("%.3f", f.Float64)
}

func formatSimilarity(f sql.NullFloat64) string {
	if !f.Valid {
		return ""
	}
	return fmt.Sprintf("%.4f", f.Float64)
}

func formatText(s sql.NullString) string {
	if !s.Valid {
		return ""
	}
	return s.String
}
