// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Handler returns the router with the middleware stack applied.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(requestID)
	r.Use(accessLog(s.logger))
	r.Use(maxBodyBytes(s.cfg.MaxBodyBytes))
	r.Use(timeout(s.cfg.RequestTimeout))

	r.Get("/", s.handleIndex)
	r.Post("/search", s.handleSearchForm)
	r.Get("/journal_detail.html", s.handleJournalDetail)
	r.Get("/journals/{name}", s.handleJournalPath)

	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/search", s.handleAPISearchQuery)
		r.Post("/search", s.handleAPISearchJSON)
		r.Get("/journals/{name}", s.handleAPIJournal)
	})

	return r
}
