// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"errors"
	"math"
	"regexp"
	"sort"
	"strings"
)

// tokenRe matches runs of two or more word characters. Single characters
// are never tokens.
var tokenRe = regexp.MustCompile(`[\p{L}\p{N}_]{2,}`)

// errEmptyVocabulary means every document reduced to nothing after
// tokenization and stopword removal.
var errEmptyVocabulary = errors.New("empty vocabulary")

// tokenize lower-cases text and returns its non-stopword tokens in order.
func tokenize(text string) []string {
	raw := tokenRe.FindAllString(strings.ToLower(text), -1)
	tokens := raw[:0]
	for _, tok := range raw {
		if !englishStopWords[tok] {
			tokens = append(tokens, tok)
		}
	}
	return tokens
}

// term is one non-zero coordinate of a sparse row.
type term struct {
	index  int
	weight float64
}

// vector is a sparse row sorted by term index.
type vector []term

// dot returns the inner product of two sorted sparse rows.
func (v vector) dot(o vector) float64 {
	var sum float64
	i, j := 0, 0
	for i < len(v) && j < len(o) {
		switch {
		case v[i].index == o[j].index:
			sum += v[i].weight * o[j].weight
			i++
			j++
		case v[i].index < o[j].index:
			i++
		default:
			j++
		}
	}
	return sum
}

func (v vector) norm() float64 {
	var sum float64
	for _, t := range v {
		sum += t.weight * t.weight
	}
	return math.Sqrt(sum)
}

// matrix is a document-term matrix with L2-normalized rows.
type matrix struct {
	vocabulary []string
	rows       []vector
}

// fitTransform learns the vocabulary of docs and returns their TF-IDF
// rows. Weights are raw term counts times the smoothed inverse document
// frequency ln((1+n)/(1+df)) + 1, and every row is scaled to unit length.
// Vocabulary indices follow sorted term order so that every floating
// point sum runs in the same order for the same input.
func fitTransform(docs []string) (*matrix, error) {
	counts := make([]map[string]int, len(docs))
	df := make(map[string]int)
	for i, doc := range docs {
		c := make(map[string]int)
		for _, tok := range tokenize(doc) {
			c[tok]++
		}
		for tok := range c {
			df[tok]++
		}
		counts[i] = c
	}
	if len(df) == 0 {
		return nil, errEmptyVocabulary
	}

	vocab := make([]string, 0, len(df))
	for tok := range df {
		vocab = append(vocab, tok)
	}
	sort.Strings(vocab)

	index := make(map[string]int, len(vocab))
	idf := make([]float64, len(vocab))
	n := float64(len(docs))
	for i, tok := range vocab {
		index[tok] = i
		idf[i] = math.Log((1+n)/(1+float64(df[tok]))) + 1
	}

	m := &matrix{vocabulary: vocab, rows: make([]vector, len(docs))}
	for i, c := range counts {
		row := make(vector, 0, len(c))
		for tok, count := range c {
			k := index[tok]
			row = append(row, term{index: k, weight: float64(count) * idf[k]})
		}
		sort.Slice(row, func(a, b int) bool { return row[a].index < row[b].index })

		if norm := row.norm(); norm > 0 {
			for k := range row {
				row[k].weight /= norm
			}
		}
		m.rows[i] = row
	}
	return m, nil
}

// cosine returns the cosine similarity of two rows, 0 when either is the
// zero vector, clamped to [0,1] against rounding.
func cosine(a, b vector) float64 {
	na, nb := a.norm(), b.norm()
	if na == 0 || nb == 0 {
		return 0
	}
	s := a.dot(b) / (na * nb)
	return math.Max(0, math.Min(1, s))
}
