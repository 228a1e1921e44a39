// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"database/sql"
	"sort"

	"github.com/pdiddy/journal-finder/pkg/types"
)

// ByAbstract ranks journals with aims-and-scope text by cosine similarity
// to abstract. The TF-IDF model is fitted on the abstract plus every
// scope text, so each call vectorizes the whole corpus afresh. Journals
// without scope text are left out of the result entirely.
func ByAbstract(abstract string, journals []types.Journal) Result {
	var eligible []types.Journal
	for _, j := range journals {
		if j.HasScope() {
			eligible = append(eligible, j)
		}
	}
	if len(eligible) == 0 {
		return advise(ModeAbstract, abstract, NoCorpus)
	}

	docs := make([]string, 0, len(eligible)+1)
	docs = append(docs, abstract)
	for _, j := range eligible {
		docs = append(docs, j.AimAndScope.String)
	}

	m, err := fitTransform(docs)
	if err != nil || len(m.rows) < 2 {
		return advise(ModeAbstract, abstract, NoVocabulary)
	}

	query := m.rows[0]
	matches := make([]Match, len(eligible))
	for i, j := range eligible {
		matches[i] = Match{
			Journal:    j,
			Similarity: sql.NullFloat64{Float64: cosine(query, m.rows[i+1]), Valid: true},
		}
	}

	sort.SliceStable(matches, func(a, b int) bool {
		return matches[a].Similarity.Float64 > matches[b].Similarity.Float64
	})
	return Result{Mode: ModeAbstract, Query: abstract, Matches: matches}
}
