package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	_ "github.com/mattn/go-sqlite3"

	"github.com/roach88/sqlq/internal/query"
	"github.com/roach88/sqlq/internal/querysql"
)

// ErrWrongKind is returned when a query is sent to the wrong entry point,
// e.g. a select to Exec.
var ErrWrongKind = errors.New("query kind not supported by this operation")

// Store executes compiled queries against a database.
type Store struct {
	db     *sql.DB
	driver string
	style  querysql.Style
}

// Row is one result row keyed by column name.
type Row map[string]any

// Result is the outcome of Run.
type Result struct {
	// RowsAffected is set for every kind except select.
	RowsAffected int64 `json:"rows_affected"`

	// Rows is set for select.
	Rows []Row `json:"rows,omitempty"`
}

// Open opens a database with the named driver and verifies the connection.
func Open(driver, dsn string) (*Store, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if driver == "sqlite3" {
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
		if err := applyPragmas(db); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to apply pragmas: %w", err)
		}
	}

	return New(db, driver), nil
}

// New wraps an already-open database. driver selects the placeholder style.
func New(db *sql.DB, driver string) *Store {
	return &Store{
		db:     db,
		driver: driver,
		style:  querysql.StyleForDriver(driver),
	}
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// DB returns the underlying sql.DB for direct queries.
// Use with caution - prefer using Store methods when available.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Driver returns the driver name the store was opened with.
func (s *Store) Driver() string {
	return s.driver
}

// Style returns the placeholder style statements are rebound to.
func (s *Store) Style() querysql.Style {
	return s.style
}

// Run executes q with the entry point matching its kind.
func (s *Store) Run(ctx context.Context, q *query.Query) (Result, error) {
	if q.Kind() == query.Select {
		rows, err := s.Query(ctx, q)
		if err != nil {
			return Result{}, err
		}
		return Result{Rows: rows}, nil
	}

	n, err := s.Exec(ctx, q)
	if err != nil {
		return Result{}, err
	}
	return Result{RowsAffected: n}, nil
}

// Exec executes an insert, update, delete or replace query and returns the
// number of affected rows.
func (s *Store) Exec(ctx context.Context, q *query.Query) (int64, error) {
	if q.Kind() == query.Select {
		return 0, fmt.Errorf("exec %s: %w", q.Kind(), ErrWrongKind)
	}

	text, args := s.prepare(q)
	res, err := s.db.ExecContext(ctx, text, args...)
	if err != nil {
		return 0, fmt.Errorf("exec %s %s: %w", q.Kind(), q.Table(), err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	slog.Debug("statement executed", "kind", q.Kind().String(), "rows_affected", n)
	return n, nil
}

// Query executes a select query and returns every row.
func (s *Store) Query(ctx context.Context, q *query.Query) ([]Row, error) {
	if q.Kind() != query.Select {
		return nil, fmt.Errorf("query %s: %w", q.Kind(), ErrWrongKind)
	}

	text, args := s.prepare(q)
	rows, err := s.db.QueryContext(ctx, text, args...)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", q.Table(), err)
	}
	defer rows.Close()

	out, err := scanRows(rows)
	if err != nil {
		return nil, err
	}
	slog.Debug("statement executed", "kind", q.Kind().String(), "rows", len(out))
	return out, nil
}

// prepare compiles q and rebinds its placeholders for the driver.
func (s *Store) prepare(q *query.Query) (string, []any) {
	stmt := q.Compile()
	text := querysql.Rebind(s.style, stmt.SQL)
	slog.Debug("executing statement",
		"sql", text,
		"args", len(stmt.Args),
		"hash", q.Hash(),
	)
	return text, stmt.Args
}

func scanRows(rows *sql.Rows) ([]Row, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("read columns: %w", err)
	}

	out := []Row{}
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}

		row := make(Row, len(cols))
		for i, c := range cols {
			row[c] = vals[i]
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return out, nil
}

// applyPragmas sets required SQLite configuration.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}

	return nil
}
