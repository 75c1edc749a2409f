// Package store provides read-only access to the provisioned relational
// database. It is used twice per candidate statement: once in plan-only mode
// to validate, and once for the real read after validation passes.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/marcboeker/go-duckdb/v2"

	"github.com/sqlscout/sqlscout/internal/config"
)

type Result struct {
	Columns  []string
	Rows     [][]any
	Duration time.Duration
}

type Store struct {
	db *sql.DB
}

// Open connects using the configured driver: duckdb for a local analytics
// file, pgx for a Postgres deployment.
func Open(ctx context.Context, cfg config.StoreConfig) (*Store, error) {
	var driverName string
	switch cfg.Driver {
	case "duckdb":
		driverName = "duckdb"
	case "pgx":
		driverName = "pgx"
	default:
		return nil, fmt.Errorf("unsupported store driver: %q", cfg.Driver)
	}

	db, err := sql.Open(driverName, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", cfg.Driver, err)
	}
	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxIdleTime > 0 {
		db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s store: %w", cfg.Driver, err)
	}
	return New(db), nil
}

// New wraps an existing connection pool. Used by tests to inject mocks.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) DB() *sql.DB {
	return s.db
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Plan submits the statement in the engine's plan-only execution mode.
// EXPLAIN parses and binds against the schema without materializing or
// mutating anything; the engine's error text is returned verbatim.
func (s *Store) Plan(ctx context.Context, statement string) error {
	rows, err := s.db.QueryContext(ctx, "EXPLAIN "+stripTrailingSemicolons(statement))
	if err != nil {
		return err
	}
	return rows.Close()
}

// Query executes a validated statement for real and collects all rows.
func (s *Store) Query(ctx context.Context, statement string) (Result, error) {
	if strings.TrimSpace(statement) == "" {
		return Result{}, fmt.Errorf("sql is required")
	}

	start := time.Now()
	rows, err := s.db.QueryContext(ctx, statement)
	if err != nil {
		return Result{}, err
	}
	defer func() { _ = rows.Close() }()

	columns, err := rows.Columns()
	if err != nil {
		return Result{}, fmt.Errorf("query columns: %w", err)
	}

	resultRows := make([][]any, 0)
	for rows.Next() {
		values := make([]any, len(columns))
		scanTargets := make([]any, len(columns))
		for i := range values {
			scanTargets[i] = &values[i]
		}
		if err := rows.Scan(scanTargets...); err != nil {
			return Result{}, fmt.Errorf("scan row: %w", err)
		}
		resultRows = append(resultRows, normalizeValues(values))
	}
	if err := rows.Err(); err != nil {
		return Result{}, fmt.Errorf("iterate rows: %w", err)
	}

	return Result{
		Columns:  columns,
		Rows:     resultRows,
		Duration: time.Since(start),
	}, nil
}

func normalizeValues(values []any) []any {
	normalized := make([]any, len(values))
	for i, value := range values {
		switch typed := value.(type) {
		case []byte:
			normalized[i] = string(typed)
		default:
			normalized[i] = typed
		}
	}
	return normalized
}

func stripTrailingSemicolons(value string) string {
	trimmed := strings.TrimSpace(value)
	for strings.HasSuffix(trimmed, ";") {
		trimmed = strings.TrimSpace(strings.TrimSuffix(trimmed, ";"))
	}
	return trimmed
}
