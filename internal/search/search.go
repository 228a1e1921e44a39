// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package search ranks journals for a query. Two strategies share one
// result contract: keyword search matches metadata substrings and ranks by
// impact factor; abstract search scores each journal's aims-and-scope
// text against a manuscript abstract by TF-IDF cosine similarity.
//
// Searches never fail for "no results": an empty Result always carries an
// Advisory explaining why. Only an unknown mode under StrictMode is an error.
package search

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/pdiddy/journal-finder/pkg/types"
)

// Mode selects the search strategy.
type Mode string

const (
	ModeKeyword  Mode = "keyword"
	ModeAbstract Mode = "abstract"
)

// ErrInvalidMode is returned in strict mode for modes other than keyword
// and abstract.
var ErrInvalidMode = errors.New("invalid search mode")

// ParseMode recognizes an exact mode name.
func ParseMode(s string) (Mode, bool) {
	switch Mode(s) {
	case ModeKeyword:
		return ModeKeyword, true
	case ModeAbstract:
		return ModeAbstract, true
	default:
		return "", false
	}
}

// Match is a ranked journal. Similarity is set only by abstract search.
type Match struct {
	types.Journal
	Similarity sql.NullFloat64
}

type matchView struct {
	Journal    types.Journal `json:"journal" yaml:"journal"`
	Similarity *float64      `json:"similarity,omitempty" yaml:"similarity,omitempty"`
}

// MarshalJSON nests the journal and omits similarity when unset.
func (m Match) MarshalJSON() ([]byte, error) {
	return json.Marshal(matchView{Journal: m.Journal, Similarity: types.NullableFloat(m.Similarity)})
}

// MarshalYAML mirrors MarshalJSON.
func (m Match) MarshalYAML() (any, error) {
	return matchView{Journal: m.Journal, Similarity: types.NullableFloat(m.Similarity)}, nil
}

// Result is the outcome of one search. Exactly one of Matches and
// Advisory is populated.
type Result struct {
	Mode     Mode     `json:"mode" yaml:"mode"`
	Query    string   `json:"query" yaml:"query"`
	Matches  []Match  `json:"matches" yaml:"matches"`
	Advisory Advisory `json:"advisory,omitempty" yaml:"advisory,omitempty"`
	Message  string   `json:"message,omitempty" yaml:"message,omitempty"`
}

// Empty reports whether the search found nothing.
func (r Result) Empty() bool { return len(r.Matches) == 0 }

func advise(mode Mode, query string, a Advisory) Result {
	return Result{
		Mode:     mode,
		Query:    query,
		Matches:  []Match{},
		Advisory: a,
		Message:  CatalogFor("en").Message(a),
	}
}

// Corpus is the read-only journal collection a Searcher ranks.
// *dataset.Store satisfies it.
type Corpus interface {
	All() []types.Journal
}

// Searcher dispatches queries to a strategy and applies result settings.
type Searcher struct {
	corpus  Corpus
	cfg     types.SearchConfig
	catalog Catalog
}

// NewSearcher returns a Searcher over corpus.
func NewSearcher(corpus Corpus, cfg types.SearchConfig) *Searcher {
	return &Searcher{corpus: corpus, cfg: cfg, catalog: CatalogFor(cfg.Locale)}
}

// Catalog returns the message catalog for the configured locale.
func (s *Searcher) Catalog() Catalog { return s.catalog }

// Search runs query in the given mode. Exactly "keyword" selects keyword
// search; anything else selects abstract search unless StrictMode is set,
// in which case unknown modes fail with ErrInvalidMode. NormalizeMode
// lower-cases and trims mode first.
func (s *Searcher) Search(query, mode string) (Result, error) {
	if s.cfg.NormalizeMode {
		mode = strings.ToLower(strings.TrimSpace(mode))
	}
	m, ok := ParseMode(mode)
	if !ok {
		if s.cfg.StrictMode {
			return Result{}, fmt.Errorf("%w: %q (use %q or %q)", ErrInvalidMode, mode, ModeKeyword, ModeAbstract)
		}
		m = ModeAbstract
	}

	var r Result
	switch m {
	case ModeKeyword:
		r = ByKeyword(query, s.corpus.All())
	default:
		r = ByAbstract(query, s.corpus.All())
		if s.cfg.MinSimilarity > 0 {
			r = r.aboveThreshold(s.cfg.MinSimilarity)
		}
	}

	if s.cfg.MaxResults > 0 && len(r.Matches) > s.cfg.MaxResults {
		r.Matches = r.Matches[:s.cfg.MaxResults]
	}
	r.Message = s.catalog.Message(r.Advisory)
	return r, nil
}

// aboveThreshold keeps matches scoring at least threshold.
func (r Result) aboveThreshold(threshold float64) Result {
	if r.Empty() {
		return r
	}
	kept := r.Matches[:0:0]
	for _, m := range r.Matches {
		if m.Similarity.Float64 >= threshold {
			kept = append(kept, m)
		}
	}
	if len(kept) == 0 {
		return advise(r.Mode, r.Query, NoVocabulary)
	}
	r.Matches = kept
	return r
}
