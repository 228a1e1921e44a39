// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dataset

import (
	"bytes"
	"context"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/pdiddy/journal-finder/internal/httputil"
	"github.com/pdiddy/journal-finder/pkg/types"
)

type format int

const (
	formatCSV format = iota
	formatTSV
	formatYAML
	formatSQLite
)

func formatOf(name string) format {
	switch strings.ToLower(path.Ext(name)) {
	case ".tsv", ".tab":
		return formatTSV
	case ".yaml", ".yml":
		return formatYAML
	case ".db", ".sqlite", ".sqlite3":
		return formatSQLite
	default:
		return formatCSV
	}
}

// Load reads the dataset named by cfg.Source and returns a Store. Every
// failure is a *LoadError. Load is called once, before serving begins.
func Load(ctx context.Context, cfg types.DatasetConfig) (*Store, error) {
	source := strings.TrimSpace(cfg.Source)
	if source == "" {
		return nil, loadErr("(unset)", ErrSourceMissing, "no dataset source configured")
	}

	tableName := cfg.Table
	if tableName == "" {
		tableName = types.DefaultTable
	}

	var (
		t   *table
		err error
	)
	switch {
	case strings.HasPrefix(source, "sqlite://"):
		u, perr := url.Parse(source)
		if perr != nil {
			return nil, loadErr(source, ErrMalformed, "%v", perr)
		}
		if tn := u.Query().Get("table"); tn != "" {
			tableName = tn
		}
		dbPath := u.Host + u.Path
		if err := checkFile(source, dbPath); err != nil {
			return nil, err
		}
		t, err = readSQLite(ctx, source, dbPath, tableName)
	case strings.HasPrefix(source, "http://"), strings.HasPrefix(source, "https://"):
		t, err = loadRemote(ctx, source, cfg)
	default:
		t, err = loadFile(ctx, source, tableName)
	}
	if err != nil {
		return nil, err
	}

	journals, st, err := t.journals(source)
	if err != nil {
		return nil, err
	}
	if len(journals) == 0 {
		return nil, loadErr(source, ErrEmpty, "")
	}

	s := New(source, journals)
	s.stats.BadImpact = st.BadImpact
	s.stats.SkippedRows = st.SkippedRows
	s.stats.Columns = st.Columns

	slog.Debug("dataset loaded", "source", source, "records", s.stats.Records,
		"with_scope", s.stats.WithScope, "skipped", s.stats.SkippedRows)
	return s, nil
}

func checkFile(source, p string) error {
	info, err := os.Stat(p)
	if errors.Is(err, fs.ErrNotExist) {
		return loadErr(source, ErrSourceMissing, "%s does not exist", p)
	}
	if err != nil {
		return loadErr(source, ErrSourceMissing, "%v", err)
	}
	if info.IsDir() {
		return loadErr(source, ErrSourceMissing, "%s is a directory", p)
	}
	return nil
}

func loadFile(ctx context.Context, p, tableName string) (*table, error) {
	if err := checkFile(p, p); err != nil {
		return nil, err
	}

	f := formatOf(p)
	if f == formatSQLite {
		return readSQLite(ctx, p, filepath.Clean(p), tableName)
	}

	fh, err := os.Open(p)
	if err != nil {
		return nil, loadErr(p, ErrSourceMissing, "%v", err)
	}
	defer fh.Close()
	return parse(p, f, fh)
}

func parse(source string, f format, r io.Reader) (*table, error) {
	switch f {
	case formatTSV:
		return readDelimited(source, r, '\t')
	case formatYAML:
		return readYAML(source, r)
	default:
		return readDelimited(source, r, ',')
	}
}

// loadRemote downloads a delimited or YAML dataset. SQLite databases are
// not fetched over HTTP.
func loadRemote(ctx context.Context, source string, cfg types.DatasetConfig) (*table, error) {
	u, err := url.Parse(source)
	if err != nil {
		return nil, loadErr(source, ErrMalformed, "%v", err)
	}
	f := formatOf(u.Path)
	if f == formatSQLite {
		return nil, loadErr(source, ErrMalformed, "remote SQLite sources are not supported")
	}

	timeout := cfg.FetchTimeout
	if timeout <= 0 {
		timeout = types.DefaultFetchTimeout
	}
	ua := cfg.UserAgent
	if ua == "" {
		ua = types.DefaultUserAgent
	}

	client := &http.Client{Timeout: timeout}
	data, err := httputil.Fetch(ctx, client, source, ua)
	if err != nil {
		return nil, loadErr(source, ErrSourceMissing, "%v", err)
	}
	return parse(source, f, bytes.NewReader(data))
}
