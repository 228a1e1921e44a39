// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for journal-finder: the
// Journal record held by the dataset store and the configuration structs
// read at startup.
package types

import (
	"database/sql"
	"encoding/json"
	"strings"
)

// Journal is one row of the journal dataset. Records are created once when
// the dataset is loaded and never modified afterwards.
//
// Optional columns use database/sql null types so that "missing" is an
// explicit state: a missing ImpactFactor sorts last in keyword search and
// a missing AimAndScope excludes the journal from abstract search.
type Journal struct {
	// Name is the display name and lookup key. Always present.
	Name string

	// ImpactFactor is the journal impact factor (the "jif" column).
	ImpactFactor sql.NullFloat64

	// Description is the free-text journal introduction.
	Description sql.NullString

	// Keywords lists the subject areas the journal publishes in.
	Keywords sql.NullString

	// AimAndScope is the journal's stated aims and scope; the similarity corpus.
	AimAndScope sql.NullString

	// Extra holds every other column of the source row in source order,
	// rendered on the detail page only.
	Extra []Field
}

// Field is a named cell carried through from the dataset source.
type Field struct {
	Column string `json:"column" yaml:"column"`
	Value  string `json:"value" yaml:"value"`
}

// HasScope reports whether the journal has usable aims-and-scope text.
func (j Journal) HasScope() bool {
	return j.AimAndScope.Valid && strings.TrimSpace(j.AimAndScope.String) != ""
}

// Lookup returns the value of an extra column by case-insensitive name.
func (j Journal) Lookup(column string) (string, bool) {
	for _, f := range j.Extra {
		if strings.EqualFold(f.Column, column) {
			return f.Value, true
		}
	}
	return "", false
}

// journalView is the wire form of a Journal: missing values become null.
type journalView struct {
	Name         string   `json:"name" yaml:"name"`
	ImpactFactor *float64 `json:"impact_factor" yaml:"impact_factor"`
	Description  *string  `json:"description" yaml:"description"`
	Keywords     *string  `json:"keywords" yaml:"keywords"`
	AimAndScope  *string  `json:"aim_and_scope" yaml:"aim_and_scope"`
	Extra        []Field  `json:"extra,omitempty" yaml:"extra,omitempty"`
}

func (j Journal) view() journalView {
	return journalView{
		Name:         j.Name,
		ImpactFactor: NullableFloat(j.ImpactFactor),
		Description:  NullableString(j.Description),
		Keywords:     NullableString(j.Keywords),
		AimAndScope:  NullableString(j.AimAndScope),
		Extra:        j.Extra,
	}
}

// MarshalJSON encodes missing values as null.
func (j Journal) MarshalJSON() ([]byte, error) {
	return json.Marshal(j.view())
}

// UnmarshalJSON is the inverse of MarshalJSON.
func (j *Journal) UnmarshalJSON(data []byte) error {
	var v journalView
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*j = v.journal()
	return nil
}

// MarshalYAML encodes missing values as null.
func (j Journal) MarshalYAML() (any, error) {
	return j.view(), nil
}

func (v journalView) journal() Journal {
	j := Journal{Name: v.Name, Extra: v.Extra}
	if v.ImpactFactor != nil {
		j.ImpactFactor = sql.NullFloat64{Float64: *v.ImpactFactor, Valid: true}
	}
	if v.Description != nil {
		j.Description = sql.NullString{String: *v.Description, Valid: true}
	}
	if v.Keywords != nil {
		j.Keywords = sql.NullString{String: *v.Keywords, Valid: true}
	}
	if v.AimAndScope != nil {
		j.AimAndScope = sql.NullString{String: *v.AimAndScope, Valid: true}
	}
	return j
}

// NullableFloat returns a pointer to the value, or nil when it is missing.
func NullableFloat(f sql.NullFloat64) *float64 {
	if !f.Valid {
		return nil
	}
	v := f.Float64
	return &v
}

// NullableString returns a pointer to the value, or nil when it is missing.
func NullableString(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}
