// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package web serves the journal finder over HTTP: the HTML search form,
// result table, and journal detail pages, plus a JSON API over the same
// search and lookup operations.
package web

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/pdiddy/journal-finder/internal/search"
	"github.com/pdiddy/journal-finder/pkg/types"
)

//go:embed templates/*.html
var templateFS embed.FS

var pages = []string{"index.html", "journal_detail.html", "error.html"}

// Searcher runs a query in a mode. *search.Searcher satisfies it.
type Searcher interface {
	Search(query, mode string) (search.Result, error)
	Catalog() search.Catalog
}

// Directory finds journals by name. *dataset.Store satisfies it.
type Directory interface {
	FindByName(name string) (types.Journal, error)
	Len() int
}

// Server holds the parsed templates and the read-only services the
// handlers call.
type Server struct {
	cfg       types.ServerConfig
	searcher  Searcher
	directory Directory
	logger    *slog.Logger
	templates map[string]*template.Template
}

// NewServer parses the embedded templates and returns a server. A nil
// logger means slog.Default().
func NewServer(cfg types.ServerConfig, searcher Searcher, directory Directory, logger *slog.Logger) (*Server, error) {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		cfg:       cfg,
		searcher:  searcher,
		directory: directory,
		logger:    logger,
		templates: make(map[string]*template.Template, len(pages)),
	}

	funcs := template.FuncMap{
		"impact":     formatImpact,
		"inc":        func(i int) int { return i + 1 },
		"similarity": formatSimilarity,
		"text":       formatText,
	}

	tmplFS, err := fs.Sub(templateFS, "templates")
	if err != nil {
		return nil, err
	}
	layout, err := fs.ReadFile(tmplFS, "layout.html")
	if err != nil {
		return nil, fmt.Errorf("reading layout template: %w", err)
	}
	for _, page := range pages {
		body, err := fs.ReadFile(tmplFS, page)
		if err != nil {
			return nil, fmt.Errorf("reading template %s: %w", page, err)
		}
		tmpl, err := template.New("").Funcs(funcs).Parse(string(layout))
		if err != nil {
			return nil, fmt.Errorf("parsing layout template: %w", err)
		}
		if _, err := tmpl.Parse(string(body)); err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", page, err)
		}
		s.templates[page] = tmpl
	}
	return s, nil
}

// Addr returns the host:port the server listens on.
func (s *Server) Addr() string {
	return net.JoinHostPort(s.cfg.Host, strconv.Itoa(s.cfg.Port))
}

// ListenAndServe serves until ctx is cancelled, then shuts down
// gracefully within the configured shutdown timeout.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.Addr())
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.Addr(), err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", "addr", ln.Addr().String(), "journals", s.directory.Len())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	wait := s.cfg.ShutdownTimeout
	if wait <= 0 {
		wait = types.DefaultShutdownTimeout
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), wait)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	s.logger.Info("server exited")
	return nil
}

func (s *Server) render(w http.ResponseWriter, status int, name string, data any) {
	tmpl, ok := s.templates[name]
	if !ok {
		http.Error(w, "template not found: "+name, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := tmpl.ExecuteTemplate(w, name, data); err != nil {
		s.logger.Error("rendering template", "template", name, "error", err)
	}
}
