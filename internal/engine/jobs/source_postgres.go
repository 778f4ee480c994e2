package jobs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/anatolykoptev/go_jobinsight/internal/engine"
)

// ReadPostgres reads raw rows from a PostgreSQL table.
// Sessions are opened read-only; every column is fetched as text.
func ReadPostgres(ctx context.Context, databaseURL, table string) ([]RawRow, error) {
	if databaseURL == "" {
		return nil, errors.New("DATABASE_URL is required for the postgres source")
	}
	if table == "" {
		table = DefaultTable
	}
	query, err := selectPostingsSQL(table, "::text", "")
	if err != nil {
		return nil, fmt.Errorf("postgres: %w", err)
	}

	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse DATABASE_URL: %w", err)
	}
	config.MaxConns = 2
	config.MinConns = 0
	config.ConnConfig.RuntimeParams["default_transaction_read_only"] = "on"

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("create pgx pool: %w", err)
	}
	defer pool.Close()

	if err := engine.Retry(ctx, engine.DefaultRetryConfig, func() error { return pool.Ping(ctx) }); err != nil {
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	slog.Info("postings postgres connected", slog.String("addr", config.ConnConfig.Host), slog.String("table", table))

	rows, err := pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("postgres: query %s: %w", table, err)
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (RawRow, error) {
		cells := make([]*string, len(Columns))
		dest := make([]any, len(Columns))
		for i := range cells {
			dest[i] = &cells[i]
		}
		if err := row.Scan(dest...); err != nil {
			return RawRow{}, err
		}
		return rawRowFromValues(func(i int) string {
			if cells[i] == nil {
				return ""
			}
			return *cells[i]
		}), nil
	})
	if err != nil {
		return nil, fmt.Errorf("postgres: collect rows: %w", err)
	}
	return out, nil
}
