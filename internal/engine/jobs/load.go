package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/anatolykoptev/go_jobinsight/internal/engine"
)

// SourceKind selects where postings are read from.
type SourceKind string

const (
	SourceCSV      SourceKind = "csv"
	SourceSQLite   SourceKind = "sqlite"
	SourcePostgres SourceKind = "postgres"
)

// SourceConfig locates the postings table.
type SourceConfig struct {
	Kind        SourceKind
	Path        string // csv and sqlite
	Table       string // sqlite and postgres
	DatabaseURL string // postgres
}

// maxLoggedParseErrors caps how many individual cell errors are logged at load.
const maxLoggedParseErrors = 5

// Package-level store, set from main.go after the startup load.
var store *Store

// SetStore sets the package-level postings store.
func SetStore(s *Store) { store = s }

// GetStore returns the package-level postings store (may be nil).
func GetStore() *Store { return store }

// ReadRows reads raw rows from the configured source.
func ReadRows(ctx context.Context, sc SourceConfig) ([]RawRow, error) {
	switch SourceKind(strings.ToLower(string(sc.Kind))) {
	case SourceCSV, "":
		return ReadCSVFile(sc.Path)
	case SourceSQLite:
		return ReadSQLite(ctx, sc.Path, sc.Table)
	case SourcePostgres:
		return ReadPostgres(ctx, sc.DatabaseURL, sc.Table)
	}
	return nil, fmt.Errorf("unknown data source %q (valid: csv, sqlite, postgres)", sc.Kind)
}

// LoadStore reads, normalizes and freezes the postings table.
// Cell decode failures are logged and counted but never fail the load.
func LoadStore(ctx context.Context, sc SourceConfig) (*Store, error) {
	start := time.Now()
	rows, err := ReadRows(ctx, sc)
	if err != nil {
		return nil, err
	}

	postings, parseErrs := Normalize(rows)
	if len(parseErrs) > 0 {
		engine.AddParseErrors(len(parseErrs))
		for i, e := range parseErrs {
			if i == maxLoggedParseErrors {
				break
			}
			slog.Warn("load: cell downgraded", slog.Any("error", e))
		}
	}

	s := NewStore(postings)
	engine.SetRowsLoaded(s.Len())
	slog.Info("postings loaded",
		slog.String("source", string(sc.Kind)),
		slog.Int("rows", s.Len()),
		slog.Int("parse_errors", len(parseErrs)),
		slog.String("fingerprint", s.Fingerprint()),
		slog.Duration("elapsed", time.Since(start)),
	)
	return s, nil
}
