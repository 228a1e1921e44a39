// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"database/sql"
	"sort"
	"strings"

	"github.com/pdiddy/journal-finder/pkg/types"
)

// ByKeyword returns the journals whose description, keywords, or name
// contain keyword, ignoring case, ranked by impact factor descending with
// missing impact factors last. The keyword is a literal substring; an empty
// keyword matches every journal.
func ByKeyword(keyword string, journals []types.Journal) Result {
	needle := strings.ToLower(keyword)

	var matches []Match
	for _, j := range journals {
		if containsFold(j.Description, needle) ||
			containsFold(j.Keywords, needle) ||
			strings.Contains(strings.ToLower(j.Name), needle) {
			matches = append(matches, Match{Journal: j})
		}
	}
	if len(matches) == 0 {
		return advise(ModeKeyword, keyword, NoMatch)
	}

	sort.SliceStable(matches, func(a, b int) bool {
		return impactBefore(matches[a].ImpactFactor, matches[b].ImpactFactor)
	})
	return Result{Mode: ModeKeyword, Query: keyword, Matches: matches}
}

// containsFold reports whether a present field contains the lower-cased
// needle. Missing fields never match.
func containsFold(field sql.NullString, needle string) bool {
	return field.Valid && strings.Contains(strings.ToLower(field.String), needle)
}

// impactBefore orders present values descending and missing values last.
func impactBefore(a, b sql.NullFloat64) bool {
	switch {
	case a.Valid && b.Valid:
		return a.Float64 > b.Float64
	default:
		return a.Valid && !b.Valid
	}
}
