// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"go.yaml.in/yaml/v3"
)

// FormatTable writes a result as a human-readable table to w. An empty
// result prints its advisory message instead.
func FormatTable(r Result, w io.Writer) {
	if r.Empty() {
		fmt.Fprintln(w, r.Message)
		return
	}

	withScore := r.Mode == ModeAbstract
	if withScore {
		fmt.Fprintf(w, "%-4s  %-50s  %-8s  %-10s  %s\n", "Rank", "Journal", "IF", "Similarity", "Keywords")
	} else {
		fmt.Fprintf(w, "%-4s  %-50s  %-8s  %s\n", "Rank", "Journal", "IF", "Keywords")
	}
	fmt.Fprintln(w, strings.Repeat("-", 100))

	for i, m := range r.Matches {
		impact := "-"
		if m.ImpactFactor.Valid {
			impact = fmt.Sprintf("%.3f", m.ImpactFactor.Float64)
		}
		keywords := ""
		if m.Keywords.Valid {
			keywords = truncate(m.Keywords.String, 30)
		}
		if withScore {
			fmt.Fprintf(w, "%-4d  %-50s  %-8s  %-10.4f  %s\n",
				i+1, truncate(m.Name, 50), impact, m.Similarity.Float64, keywords)
		} else {
			fmt.Fprintf(w, "%-4d  %-50s  %-8s  %s\n",
				i+1, truncate(m.Name, 50), impact, keywords)
		}
	}

	fmt.Fprintf(w, "\n%d results\n", len(r.Matches))
}

// FormatJSON writes a result as indented JSON to w.
func FormatJSON(r Result, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// FormatYAML writes a result as YAML to w.
func FormatYAML(r Result, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return err
	}
	return enc.Close()
}

// truncate shortens s to max runes, marking the cut with "...".
func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max-3]) + "..."
}
