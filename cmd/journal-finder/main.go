// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the journal-finder CLI. It serves the
// web front end and exposes keyword search, abstract search, and journal
// lookup over a dataset from the terminal.
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/journal-finder/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the journal-finder CLI.
var rootCmd = &cobra.Command{
	Use:   "journal-finder",
	Short: "Find journals for a manuscript by keyword or abstract",
	Long: `journal-finder recommends academic journals for a manuscript. Keyword
search matches journal descriptions, subject keywords, and names, ranked by
impact factor. Abstract search compares a manuscript abstract with each
journal's aims and scope using TF-IDF cosine similarity.

The dataset is loaded once from a CSV, TSV, YAML, or SQLite source, or from
an http(s) URL. Use serve to start the web front end, or search and show
to query from the terminal.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setupLogging(viper.GetString("log.level"))
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "config file (default: ./journal-finder.yaml or ~/.config/journal-finder/journal-finder.yaml)")
	flags.String("dataset", "", "dataset source: file path, sqlite:// URL, or http(s) URL (default "+types.DefaultDatasetSource+")")
	flags.String("log-level", "warn", "log level: debug, info, warn, error")

	_ = viper.BindPFlag("dataset.source", flags.Lookup("dataset"))
	_ = viper.BindPFlag("log.level", flags.Lookup("log-level"))
}

func initConfig() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintln(os.Stderr, "warning: reading .env:", err)
	}

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("journal-finder")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "journal-finder"))
		}
	}

	setDefaults(viper.GetViper())

	viper.SetEnvPrefix("JOURNAL_FINDER")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	_ = viper.BindEnv("dataset.source", "JOURNAL_FINDER_DATASET_SOURCE", "JOURNAL_FINDER_DATASET")
	_ = viper.BindEnv("server.port", "JOURNAL_FINDER_SERVER_PORT", "PORT")

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("dataset.source", types.DefaultDatasetSource)
	v.SetDefault("dataset.table", types.DefaultTable)
	v.SetDefault("dataset.fetch_timeout", types.DefaultFetchTimeout)
	v.SetDefault("dataset.user_agent", types.DefaultUserAgent)
	v.SetDefault("search.max_results", 0)
	v.SetDefault("search.min_similarity", 0.0)
	v.SetDefault("search.strict_mode", false)
	v.SetDefault("search.normalize_mode", false)
	v.SetDefault("search.locale", types.DefaultLocale)
	v.SetDefault("server.host", types.DefaultHost)
	v.SetDefault("server.port", types.DefaultPort)
	v.SetDefault("server.request_timeout", types.DefaultRequestTimeout)
	v.SetDefault("server.max_body_bytes", types.DefaultMaxBodyBytes)
	v.SetDefault("server.shutdown_timeout", types.DefaultShutdownTimeout)
	v.SetDefault("log.level", "warn")
}

// loadConfig decodes the merged flag, environment, file, and default
// settings.
func loadConfig(v *viper.Viper) (types.Config, error) {
	var cfg types.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return types.Config{}, fmt.Errorf("decoding configuration: %w", err)
	}
	if cfg.Dataset.Source == "" {
		cfg.Dataset.Source = types.DefaultDatasetSource
	}
	if cfg.Server.Port < 0 || cfg.Server.Port > 65535 {
		return types.Config{}, fmt.Errorf("invalid server port %d", cfg.Server.Port)
	}
	if cfg.Search.MaxResults < 0 {
		return types.Config{}, fmt.Errorf("invalid max results %d", cfg.Search.MaxResults)
	}
	return cfg, nil
}

func setupLogging(level string) error {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l})
	slog.SetDefault(slog.New(handler))
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
