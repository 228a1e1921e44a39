// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import "strings"

// Advisory explains why a search returned no matches. The zero value
// means the result has matches.
type Advisory int

const (
	// NoAdvisory marks a non-empty result.
	NoAdvisory Advisory = iota
	// NoMatch: no journal matched the keyword.
	NoMatch
	// NoCorpus: no journal has aims-and-scope text to compare against.
	NoCorpus
	// NoVocabulary: the abstract and scopes left no usable terms, or
	// nothing scored above the similarity threshold.
	NoVocabulary
)

var advisoryCodes = map[Advisory]string{
	NoAdvisory:   "",
	NoMatch:      "no_match",
	NoCorpus:     "no_corpus",
	NoVocabulary: "no_vocabulary",
}

// String returns the stable machine-readable code.
func (a Advisory) String() string { return advisoryCodes[a] }

// MarshalText encodes the advisory as its code.
func (a Advisory) MarshalText() ([]byte, error) { return []byte(a.String()), nil }

// Catalog holds the user-facing texts for one locale.
type Catalog struct {
	NoMatch      string
	NoCorpus     string
	NoVocabulary string
	NotFound     string
}

var catalogs = map[string]Catalog{
	"en": {
		NoMatch:      "No matching journals found. Try another keyword or search by abstract.",
		NoCorpus:     "No journal data is available for matching.",
		NoVocabulary: "No matching journal found.",
		NotFound:     "Journal not found.",
	},
	"zh": {
		NoMatch:      "没有查询到匹配结果，您可以尝试更换关键词或使用摘要进行匹配。",
		NoCorpus:     "没有可用于匹配的期刊数据。",
		NoVocabulary: "没有找到匹配的期刊。",
		NotFound:     "未找到匹配的期刊。",
	},
}

// CatalogFor returns the catalog for locale ("en", "zh", or a tag such as
// "zh-CN"), falling back to English.
func CatalogFor(locale string) Catalog {
	l := strings.ToLower(strings.TrimSpace(locale))
	if i := strings.IndexAny(l, "-_"); i > 0 {
		l = l[:i]
	}
	if c, ok := catalogs[l]; ok {
		return c
	}
	return catalogs["en"]
}

// Message renders the advisory in the catalog's language.
func (c Catalog) Message(a Advisory) string {
	switch a {
	case NoMatch:
		return c.NoMatch
	case NoCorpus:
		return c.NoCorpus
	case NoVocabulary:
		return c.NoVocabulary
	default:
		return ""
	}
}
