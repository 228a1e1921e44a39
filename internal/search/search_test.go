// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/journal-finder/pkg/types"
)

// --- fixtures ---

func text(s string) sql.NullString { return sql.NullString{String: s, Valid: true} }

func impact(f float64) sql.NullFloat64 { return sql.NullFloat64{Float64: f, Valid: true} }

type staticCorpus []types.Journal

func (c staticCorpus) All() []types.Journal { return append([]types.Journal(nil), c...) }

func oncologyFixture() []types.Journal {
	return []types.Journal{
		{Name: "A", ImpactFactor: impact(5.2), Description: text("oncology research")},
		{Name: "B", ImpactFactor: impact(8.1), Description: text("cardiology")},
		{Name: "C", Description: text("oncology imaging")},
	}
}

func scopeFixture() []types.Journal {
	return []types.Journal{
		{Name: "Heart Journal", ImpactFactor: impact(3), AimAndScope: text("Cardiology and heart research.")},
		{Name: "No Scope", ImpactFactor: impact(9)},
		{Name: "Marine Ecology", ImpactFactor: impact(2), AimAndScope: text("We publish research on marine biology and ocean ecosystems.")},
		{Name: "Blank Scope", AimAndScope: text("   ")},
	}
}

func names(r Result) []string {
	out := make([]string, len(r.Matches))
	for i, m := range r.Matches {
		out[i] = m.Name
	}
	return out
}

// --- keyword search ---

func TestByKeyword_RanksByImpactWithMissingLast(t *testing.T) {
	r := ByKeyword("oncology", oncologyFixture())

	assert.Equal(t, []string{"A", "C"}, names(r))
	assert.Equal(t, NoAdvisory, r.Advisory)
	assert.Empty(t, r.Message)
	assert.Equal(t, ModeKeyword, r.Mode)
	for _, m := range r.Matches {
		assert.False(t, m.Similarity.Valid, "keyword matches carry no similarity")
	}
}

func TestByKeyword_NoMatch(t *testing.T) {
	r := ByKeyword("zzz_no_match", oncologyFixture())

	assert.True(t, r.Empty())
	assert.NotNil(t, r.Matches)
	assert.Equal(t, NoMatch, r.Advisory)
	assert.Equal(t, CatalogFor("en").NoMatch, r.Message)
}

func TestByKeyword_CaseInsensitive(t *testing.T) {
	upper := ByKeyword("ONCOLOGY", oncologyFixture())
	lower := ByKeyword("oncology", oncologyFixture())
	assert.Equal(t, names(lower), names(upper))
}

func TestByKeyword_Fields(t *testing.T) {
	journals := []types.Journal{
		{Name: "Journal of Ocean Science", ImpactFactor: impact(1)},
		{Name: "Geo", ImpactFactor: impact(2), Keywords: text("Ocean; Climate")},
		{Name: "Bio", ImpactFactor: impact(3), Description: text("deep OCEAN life")},
		{Name: "Other", ImpactFactor: impact(4), AimAndScope: text("ocean")},
	}

	r := ByKeyword("ocean", journals)
	assert.Equal(t, []string{"Bio", "Geo", "Journal of Ocean Science"}, names(r), "aim and scope is not searched")
}

func TestByKeyword_LiteralNotPattern(t *testing.T) {
	journals := []types.Journal{
		{Name: "C++ Reports", Description: text("c++ programming")},
		{Name: "Cxx", Description: text("cxx")},
	}
	assert.Equal(t, []string{"C++ Reports"}, names(ByKeyword("c++", journals)))
	assert.True(t, ByKeyword(".*", journals).Empty())
}

func TestByKeyword_EmptyKeywordMatchesAll(t *testing.T) {
	r := ByKeyword("", oncologyFixture())
	assert.Equal(t, []string{"B", "A", "C"}, names(r))
}

func TestByKeyword_StableForEqualImpact(t *testing.T) {
	journals := []types.Journal{
		{Name: "first", ImpactFactor: impact(1), Description: text("x")},
		{Name: "null-1", Description: text("x")},
		{Name: "second", ImpactFactor: impact(1), Description: text("x")},
		{Name: "null-2", Description: text("x")},
	}
	assert.Equal(t, []string{"first", "second", "null-1", "null-2"}, names(ByKeyword("x", journals)))
}

func TestByKeyword_SortedProperty(t *testing.T) {
	journals := []types.Journal{
		{Name: "a", ImpactFactor: impact(0.5), Keywords: text("med")},
		{Name: "b", Keywords: text("med")},
		{Name: "c", ImpactFactor: impact(12), Keywords: text("med")},
		{Name: "d", ImpactFactor: impact(3.3), Keywords: text("med")},
		{Name: "e", ImpactFactor: impact(-1), Keywords: text("med")},
	}
	r := ByKeyword("med", journals)
	require.Len(t, r.Matches, 5)

	seenMissing := false
	for i, m := range r.Matches {
		if !m.ImpactFactor.Valid {
			seenMissing = true
			continue
		}
		assert.False(t, seenMissing, "present impact factor after a missing one")
		if i > 0 && r.Matches[i-1].ImpactFactor.Valid {
			assert.GreaterOrEqual(t, r.Matches[i-1].ImpactFactor.Float64, m.ImpactFactor.Float64)
		}
	}
}

// --- abstract search ---

func TestByAbstract_SingleRecordScenario(t *testing.T) {
	journals := []types.Journal{
		{Name: "Marine", AimAndScope: text("We publish research on marine biology and ocean ecosystems.")},
	}

	r := ByAbstract("ocean ecosystem research", journals)
	require.Len(t, r.Matches, 1)
	assert.Equal(t, "Marine", r.Matches[0].Name)
	assert.True(t, r.Matches[0].Similarity.Valid)
	assert.Greater(t, r.Matches[0].Similarity.Float64, 0.0)
	assert.Equal(t, NoAdvisory, r.Advisory)
}

func TestByAbstract_RanksBySimilarity(t *testing.T) {
	r := ByAbstract("ocean ecosystem research", scopeFixture())

	assert.Equal(t, []string{"Marine Ecology", "Heart Journal"}, names(r), "journals without scope are excluded")
	assert.InDelta(t, 0.30089730603520587, r.Matches[0].Similarity.Float64, 1e-9)
	assert.InDelta(t, 0.16395271289351365, r.Matches[1].Similarity.Float64, 1e-9)
	for _, m := range r.Matches {
		assert.GreaterOrEqual(t, m.Similarity.Float64, 0.0)
		assert.LessOrEqual(t, m.Similarity.Float64, 1.0)
	}
}

func TestByAbstract_NoCorpus(t *testing.T) {
	r := ByAbstract("anything", oncologyFixture())
	assert.True(t, r.Empty())
	assert.Equal(t, NoCorpus, r.Advisory)
	assert.Equal(t, CatalogFor("en").NoCorpus, r.Message)
}

func TestByAbstract_EmptyVocabulary(t *testing.T) {
	journals := []types.Journal{
		{Name: "Stop", AimAndScope: text("the and of a")},
	}
	r := ByAbstract("we are the", journals)
	assert.True(t, r.Empty())
	assert.Equal(t, NoVocabulary, r.Advisory)
}

func TestByAbstract_UnrelatedQueryScoresZero(t *testing.T) {
	r := ByAbstract("quantum chromodynamics", scopeFixture())
	require.Len(t, r.Matches, 2)
	assert.Equal(t, []string{"Heart Journal", "Marine Ecology"}, names(r), "ties keep input order")
	for _, m := range r.Matches {
		assert.Equal(t, 0.0, m.Similarity.Float64)
	}
}

func TestByAbstract_Idempotent(t *testing.T) {
	first := ByAbstract("research on ocean biology", scopeFixture())
	for i := 0; i < 20; i++ {
		again := ByAbstract("research on ocean biology", scopeFixture())
		require.Equal(t, first, again)
	}
}

func TestByAbstract_IdenticalTextScoresOne(t *testing.T) {
	scope := "Neural networks for protein folding prediction."
	r := ByAbstract(scope, []types.Journal{{Name: "X", AimAndScope: text(scope)}})
	require.Len(t, r.Matches, 1)
	assert.InDelta(t, 1.0, r.Matches[0].Similarity.Float64, 1e-12)
}

// --- dispatcher ---

func TestSearcher_Dispatch(t *testing.T) {
	corpus := staticCorpus(append(oncologyFixture(), scopeFixture()...))
	s := NewSearcher(corpus, types.SearchConfig{})

	tests := []struct {
		mode string
		want Mode
	}{
		{"keyword", ModeKeyword},
		{"KEYWORD", ModeAbstract},
		{" keyword", ModeAbstract},
		{"Keyword", ModeAbstract},
		{"abstract", ModeAbstract},
		{"", ModeAbstract},
		{"bogus", ModeAbstract},
	}
	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			r, err := s.Search("ology", tt.mode)
			require.NoError(t, err)
			assert.Equal(t, tt.want, r.Mode)
			assert.False(t, r.Empty())
		})
	}
}

func TestSearcher_NormalizeMode(t *testing.T) {
	s := NewSearcher(staticCorpus(oncologyFixture()), types.SearchConfig{NormalizeMode: true})
	for _, mode := range []string{"KEYWORD", " keyword", "Keyword"} {
		r, err := s.Search("oncology", mode)
		require.NoError(t, err, mode)
		assert.Equal(t, ModeKeyword, r.Mode, mode)
		assert.Len(t, r.Matches, 2, mode)
	}

	strict := NewSearcher(staticCorpus(oncologyFixture()), types.SearchConfig{StrictMode: true})
	_, err := strict.Search("oncology", "Keyword")
	assert.ErrorIs(t, err, ErrInvalidMode)
}

func TestSearcher_StrictMode(t *testing.T) {
	s := NewSearcher(staticCorpus(oncologyFixture()), types.SearchConfig{StrictMode: true})

	_, err := s.Search("oncology", "bogus")
	assert.ErrorIs(t, err, ErrInvalidMode)

	r, err := s.Search("oncology", "keyword")
	require.NoError(t, err)
	assert.Len(t, r.Matches, 2)
}

func TestSearcher_MaxResults(t *testing.T) {
	s := NewSearcher(staticCorpus(oncologyFixture()), types.SearchConfig{MaxResults: 1})

	r, err := s.Search("", "keyword")
	require.NoError(t, err)
	assert.Equal(t, []string{"B"}, names(r))
}

func TestSearcher_MinSimilarity(t *testing.T) {
	corpus := staticCorpus(scopeFixture())

	s := NewSearcher(corpus, types.SearchConfig{MinSimilarity: 0.2})
	r, err := s.Search("ocean ecosystem research", "abstract")
	require.NoError(t, err)
	assert.Equal(t, []string{"Marine Ecology"}, names(r))

	s = NewSearcher(corpus, types.SearchConfig{MinSimilarity: 0.99})
	r, err = s.Search("ocean ecosystem research", "abstract")
	require.NoError(t, err)
	assert.True(t, r.Empty())
	assert.Equal(t, NoVocabulary, r.Advisory)
}

func TestSearcher_Locale(t *testing.T) {
	s := NewSearcher(staticCorpus(oncologyFixture()), types.SearchConfig{Locale: "zh-CN"})

	r, err := s.Search("zzz", "keyword")
	require.NoError(t, err)
	assert.Equal(t, "没有查询到匹配结果，您可以尝试更换关键词或使用摘要进行匹配。", r.Message)
}

func TestEmptyResultAlwaysHasMessage(t *testing.T) {
	corpora := [][]types.Journal{nil, oncologyFixture(), scopeFixture()}
	queries := []string{"", "zzz", "the", "ocean"}
	for _, locale := range []string{"en", "zh", "fr"} {
		for _, c := range corpora {
			s := NewSearcher(staticCorpus(c), types.SearchConfig{Locale: locale})
			for _, q := range queries {
				for _, mode := range []string{"keyword", "abstract"} {
					r, err := s.Search(q, mode)
					require.NoError(t, err)
					if r.Empty() {
						assert.NotEqual(t, NoAdvisory, r.Advisory)
						assert.NotEmpty(t, r.Message, "locale=%s q=%q mode=%s", locale, q, mode)
					} else {
						assert.Equal(t, NoAdvisory, r.Advisory)
						assert.Empty(t, r.Message)
					}
				}
			}
		}
	}
}

func TestParseMode(t *testing.T) {
	m, ok := ParseMode("abstract")
	assert.True(t, ok)
	assert.Equal(t, ModeAbstract, m)

	_, ok = ParseMode("ABSTRACT")
	assert.False(t, ok)

	_, ok = ParseMode("semantic")
	assert.False(t, ok)
}

// --- output ---

func TestFormatTable(t *testing.T) {
	var buf bytes.Buffer
	FormatTable(ByAbstract("ocean ecosystem research", scopeFixture()), &buf)
	out := buf.String()

	assert.Contains(t, out, "Similarity")
	assert.Contains(t, out, "Marine Ecology")
	assert.Contains(t, out, "2 results")

	buf.Reset()
	FormatTable(ByKeyword("oncology", oncologyFixture()), &buf)
	assert.NotContains(t, buf.String(), "Similarity")
	assert.Contains(t, buf.String(), "-  ", "missing impact factor renders as a dash")

	buf.Reset()
	FormatTable(ByKeyword("zzz", oncologyFixture()), &buf)
	assert.Equal(t, CatalogFor("en").NoMatch+"\n", buf.String())
}

func TestFormatJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, FormatJSON(ByKeyword("oncology", oncologyFixture()), &buf))

	var got struct {
		Mode    string `json:"mode"`
		Matches []struct {
			Journal struct {
				Name         string   `json:"name"`
				ImpactFactor *float64 `json:"impact_factor"`
			} `json:"journal"`
			Similarity *float64 `json:"similarity"`
		} `json:"matches"`
		Advisory string `json:"advisory"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "keyword", got.Mode)
	require.Len(t, got.Matches, 2)
	assert.Equal(t, "A", got.Matches[0].Journal.Name)
	assert.Nil(t, got.Matches[1].Journal.ImpactFactor)
	assert.Nil(t, got.Matches[0].Similarity)
	assert.Empty(t, got.Advisory)

	buf.Reset()
	require.NoError(t, FormatJSON(ByKeyword("zzz", oncologyFixture()), &buf))
	assert.Contains(t, buf.String(), `"advisory": "no_match"`)
	assert.Contains(t, buf.String(), `"matches": []`)
}

func TestFormatYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, FormatYAML(ByAbstract("ocean ecosystem research", scopeFixture()), &buf))

	var got map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "abstract", got["mode"])
	matches, ok := got["matches"].([]any)
	require.True(t, ok)
	require.Len(t, matches, 2)
	first := matches[0].(map[string]any)
	assert.Contains(t, first, "similarity")
	assert.True(t, strings.Contains(buf.String(), "name: Marine Ecology"))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
	assert.Equal(t, "期刊期刊期刊期...", truncate("期刊期刊期刊期刊期刊期刊", 10))
}
