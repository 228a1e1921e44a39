// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"database/sql"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/journal-finder/internal/dataset"
	"github.com/pdiddy/journal-finder/pkg/types"
)

const testCSV = `Journal Name,jif,期刊简介,发文领域关键词,Aim and Scope,Publisher
Alpha Oncology,5.2,oncology research,cancer,Clinical oncology trials.,Elsevier
Beta Cardio,8.1,cardiology,heart,,Springer
Gamma Imaging,,oncology imaging,radiology,Medical imaging of tumours.,Wiley
`

func writeDataset(t *testing.T) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "journals.csv")
	require.NoError(t, os.WriteFile(p, []byte(testCSV), 0o644))
	return p
}

func TestLoadConfig_Defaults(t *testing.T) {
	v := viper.New()
	setDefaults(v)

	cfg, err := loadConfig(v)
	require.NoError(t, err)
	assert.Equal(t, types.DefaultDatasetSource, cfg.Dataset.Source)
	assert.Equal(t, types.DefaultTable, cfg.Dataset.Table)
	assert.Equal(t, types.DefaultPort, cfg.Server.Port)
	assert.Equal(t, types.DefaultHost, cfg.Server.Host)
	assert.Equal(t, types.DefaultRequestTimeout, cfg.Server.RequestTimeout)
	assert.Equal(t, int64(types.DefaultMaxBodyBytes), cfg.Server.MaxBodyBytes)
	assert.Equal(t, types.DefaultLocale, cfg.Search.Locale)
	assert.False(t, cfg.Search.StrictMode)
	assert.False(t, cfg.Search.NormalizeMode)
}

func TestLoadConfig_FileAndOverrides(t *testing.T) {
	p := filepath.Join(t.TempDir(), "journal-finder.yaml")
	require.NoError(t, os.WriteFile(p, []byte(`dataset:
  source: data/journals.db
  table: catalogue
search:
  max_results: 25
  locale: zh
  normalize_mode: true
server:
  port: 8080
  request_timeout: 5s
`), 0o644))

	v := viper.New()
	setDefaults(v)
	v.SetConfigFile(p)
	require.NoError(t, v.ReadInConfig())
	v.Set("search.strict_mode", true)

	cfg, err := loadConfig(v)
	require.NoError(t, err)
	assert.Equal(t, "data/journals.db", cfg.Dataset.Source)
	assert.Equal(t, "catalogue", cfg.Dataset.Table)
	assert.Equal(t, 25, cfg.Search.MaxResults)
	assert.Equal(t, "zh", cfg.Search.Locale)
	assert.True(t, cfg.Search.StrictMode)
	assert.True(t, cfg.Search.NormalizeMode)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 5*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, types.DefaultHost, cfg.Server.Host)
}

func TestLoadConfig_PortFromEnv(t *testing.T) {
	t.Setenv("PORT", "7001")

	v := viper.New()
	setDefaults(v)
	require.NoError(t, v.BindEnv("server.port", "JOURNAL_FINDER_SERVER_PORT", "PORT"))

	cfg, err := loadConfig(v)
	require.NoError(t, err)
	assert.Equal(t, 7001, cfg.Server.Port)
}

func TestLoadConfig_Invalid(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	v.Set("server.port", 70000)
	_, err := loadConfig(v)
	assert.ErrorContains(t, err, "invalid server port")

	v = viper.New()
	setDefaults(v)
	v.Set("search.max_results", -1)
	_, err = loadConfig(v)
	assert.ErrorContains(t, err, "invalid max results")
}

func TestSetupLogging(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error", "INFO"} {
		assert.NoError(t, setupLogging(level), level)
	}
	assert.Error(t, setupLogging("loud"))
}

func TestPrintJournal(t *testing.T) {
	var buf bytes.Buffer
	printJournal(&buf, types.Journal{
		Name:        "Gamma Imaging",
		Description: sql.NullString{String: "oncology imaging", Valid: true},
		Extra:       []types.Field{{Column: "Publisher", Value: "Wiley"}},
	})
	out := buf.String()
	assert.Contains(t, out, "Gamma Imaging")
	assert.Contains(t, out, "Impact Factor:   -")
	assert.Contains(t, out, "Publisher:       Wiley")
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func TestCommands(t *testing.T) {
	path := writeDataset(t)

	out, err := execute(t, "search", "--dataset", path, "--mode", "keyword", "ONCOLOGY")
	require.NoError(t, err)
	assert.Contains(t, out, "Alpha Oncology")
	assert.Contains(t, out, "Gamma Imaging")
	assert.NotContains(t, out, "Beta Cardio")
	assert.Contains(t, out, "2 results")

	out, err = execute(t, "search", "--dataset", path, "--mode", "keyword", "zzz_no_match")
	require.NoError(t, err)
	assert.Contains(t, out, "No matching journals found.")

	out, err = execute(t, "show", "--dataset", path, "beta", "cardio")
	require.NoError(t, err)
	assert.Contains(t, out, "Beta Cardio")
	assert.Contains(t, out, "8.100")
	assert.Contains(t, out, "Springer")

	_, err = execute(t, "show", "--dataset", path, "Unknown Journal")
	assert.ErrorIs(t, err, dataset.ErrNotFound)

	out, err = execute(t, "stats", "--dataset", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Journals:           3")
	assert.Contains(t, out, "With aim and scope: 2")

	_, err = execute(t, "stats", "--dataset", filepath.Join(t.TempDir(), "missing.csv"))
	var loadErr *dataset.LoadError
	assert.ErrorAs(t, err, &loadErr)

	dbPath := filepath.Join(t.TempDir(), "journals.db")
	out, err = execute(t, "export", "--dataset", path, dbPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Exported 3 journals")

	out, err = execute(t, "search", "--dataset", dbPath, "--mode", "abstract", "clinical", "trials")
	require.NoError(t, err)
	assert.Contains(t, out, "Similarity")
	assert.Contains(t, out, "Alpha Oncology")

	out, err = execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "journal-finder dev\n", out)
}
