// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// DatasetConfig holds settings for loading the journal dataset.
type DatasetConfig struct {
	// Source is a file path or http(s) URL. The format is chosen by
	// extension: .csv (default), .tsv, .yaml/.yml, .db/.sqlite, or a
	// sqlite:// URL.
	Source string `json:"source" mapstructure:"source" yaml:"source"`

	// Table is the SQLite table read for database sources (default "journals").
	Table string `json:"table" mapstructure:"table" yaml:"table"`

	// FetchTimeout bounds the download of a remote source (default 60s).
	FetchTimeout time.Duration `json:"fetch_timeout" mapstructure:"fetch_timeout" yaml:"fetch_timeout"`

	// UserAgent is sent when fetching remote sources.
	UserAgent string `json:"user_agent" mapstructure:"user_agent" yaml:"user_agent"`
}

// SearchConfig holds settings for the search dispatcher.
type SearchConfig struct {
	// MaxResults caps the ranked list. Zero means no cap.
	MaxResults int `json:"max_results" mapstructure:"max_results" yaml:"max_results"`

	// MinSimilarity drops abstract matches scoring below it. Zero keeps all.
	MinSimilarity float64 `json:"min_similarity" mapstructure:"min_similarity" yaml:"min_similarity"`

	// StrictMode rejects unknown search modes instead of falling back to
	// abstract search.
	StrictMode bool `json:"strict_mode" mapstructure:"strict_mode" yaml:"strict_mode"`

	// NormalizeMode matches mode names ignoring case and surrounding space.
	NormalizeMode bool `json:"normalize_mode" mapstructure:"normalize_mode" yaml:"normalize_mode"`

	// Locale selects the advisory message language: "en" or "zh".
	Locale string `json:"locale" mapstructure:"locale" yaml:"locale"`
}

// ServerConfig holds settings for the web front end.
type ServerConfig struct {
	// Host is the interface to bind (default "0.0.0.0").
	Host string `json:"host" mapstructure:"host" yaml:"host"`

	// Port is the listen port (default 5000, or $PORT).
	Port int `json:"port" mapstructure:"port" yaml:"port"`

	// RequestTimeout bounds each request (default 30s).
	RequestTimeout time.Duration `json:"request_timeout" mapstructure:"request_timeout" yaml:"request_timeout"`

	// MaxBodyBytes limits request body size (default 1 MiB).
	MaxBodyBytes int64 `json:"max_body_bytes" mapstructure:"max_body_bytes" yaml:"max_body_bytes"`

	// ShutdownTimeout bounds graceful shutdown (default 10s).
	ShutdownTimeout time.Duration `json:"shutdown_timeout" mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`
}

// Config groups all configuration sections.
type Config struct {
	Dataset DatasetConfig `json:"dataset" mapstructure:"dataset" yaml:"dataset"`
	Search  SearchConfig  `json:"search" mapstructure:"search" yaml:"search"`
	Server  ServerConfig  `json:"server" mapstructure:"server" yaml:"server"`
}

// Default values applied by the CLI before reading configuration.
const (
	DefaultDatasetSource   = "journalFinder_data_final.csv"
	DefaultTable           = "journals"
	DefaultFetchTimeout    = 60 * time.Second
	DefaultUserAgent       = "journal-finder/0.1"
	DefaultHost            = "0.0.0.0"
	DefaultPort            = 5000
	DefaultRequestTimeout  = 30 * time.Second
	DefaultMaxBodyBytes    = 1 << 20
	DefaultShutdownTimeout = 10 * time.Second
	DefaultLocale          = "en"
)
