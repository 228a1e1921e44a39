// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package dataset loads the journal dataset once at startup and serves it
// read-only: ordered iteration for the search strategies and a
// case-insensitive name index for detail lookups.
package dataset

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pdiddy/journal-finder/pkg/types"
)

// ErrNotFound is returned by FindByName when no journal has the given name.
var ErrNotFound = errors.New("journal not found")

// Causes wrapped by LoadError.
var (
	ErrSourceMissing = errors.New("source missing")
	ErrMalformed     = errors.New("malformed source")
	ErrMissingColumn = errors.New("missing required column")
	ErrEmpty         = errors.New("no journal records")
)

// LoadError reports why a dataset could not be loaded. It is fatal: the
// server must not start without a dataset.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("loading dataset %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

func loadErr(source string, cause error, format string, args ...any) *LoadError {
	msg := fmt.Sprintf(format, args...)
	if msg == "" {
		return &LoadError{Source: source, Err: cause}
	}
	return &LoadError{Source: source, Err: fmt.Errorf("%w: %s", cause, msg)}
}

// Stats summarizes a loaded dataset.
type Stats struct {
	Records     int      `json:"records" yaml:"records"`
	WithScope   int      `json:"with_scope" yaml:"with_scope"`
	WithImpact  int      `json:"with_impact" yaml:"with_impact"`
	BadImpact   int      `json:"bad_impact" yaml:"bad_impact"`
	SkippedRows int      `json:"skipped_rows" yaml:"skipped_rows"`
	Columns     []string `json:"columns" yaml:"columns"`
}

// Store is the immutable in-memory journal collection. All methods are
// safe for concurrent use because nothing mutates it after construction.
type Store struct {
	source   string
	journals []types.Journal
	byName   map[string]int
	stats    Stats
}

// New builds a store over journals in the given order. It is used by Load
// and by callers that already hold records, such as tests.
func New(source string, journals []types.Journal) *Store {
	s := &Store{
		source:   source,
		journals: journals,
		byName:   make(map[string]int, len(journals)),
	}
	for i, j := range journals {
		key := nameKey(j.Name)
		if _, ok := s.byName[key]; !ok {
			s.byName[key] = i
		}
		if j.HasScope() {
			s.stats.WithScope++
		}
		if j.ImpactFactor.Valid {
			s.stats.WithImpact++
		}
	}
	s.stats.Records = len(journals)
	return s
}

func nameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Source returns the location the store was loaded from.
func (s *Store) Source() string { return s.source }

// Len returns the number of journals.
func (s *Store) Len() int { return len(s.journals) }

// All returns the journals in load order. The slice is a copy; the
// records themselves must be treated as read-only.
func (s *Store) All() []types.Journal {
	out := make([]types.Journal, len(s.journals))
	copy(out, s.journals)
	return out
}

// Stats returns load statistics.
func (s *Store) Stats() Stats {
	st := s.stats
	st.Columns = append([]string(nil), s.stats.Columns...)
	return st
}

// FindByName returns the journal whose name equals name, ignoring case and
// surrounding whitespace. With duplicate names the first one loaded wins.
func (s *Store) FindByName(name string) (types.Journal, error) {
	i, ok := s.byName[nameKey(name)]
	if !ok {
		return types.Journal{}, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return s.journals[i], nil
}
