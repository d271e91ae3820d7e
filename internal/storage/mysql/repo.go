// Package mysql implements a MySQL-backed storage.Repository using
// database/sql. Fact appends run one row at a time outside a transaction, so
// rows written before a failure stay written.
package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// Repository is a MySQL-backed implementation of storage.Repository.
type Repository struct {
	db *sql.DB
}

// NewRepository opens a MySQL connection using the provided DSN, e.g.
//
//	"user:pass@tcp(localhost:3306)/edustats?parseTime=true"
func NewRepository(ctx context.Context, dsn string) (*Repository, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, fmt.Errorf("mysql: DSN must not be empty")
	}

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("mysql: open: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("mysql: ping: %w", err)
	}

	return &Repository{db: db}, nil
}

// Exec executes an arbitrary SQL statement (typically DDL).
func (r *Repository) Exec(ctx context.Context, stmt string) error {
	if strings.TrimSpace(stmt) == "" {
		return nil
	}
	if _, err := r.db.ExecContext(ctx, stmt); err != nil {
		return fmt.Errorf("mysql: exec: %w", err)
	}
	return nil
}

// Insert appends rows using a prepared single-row INSERT executed per row,
// without a wrapping transaction. It returns the number of rows written
// before any error.
func (r *Repository) Insert(ctx context.Context, table string, columns []string, rows [][]any) (int64, error) {
	if len(columns) == 0 {
		return 0, fmt.Errorf("mysql: insert: columns must not be empty")
	}
	if len(rows) == 0 {
		return 0, nil
	}

	placeholders := make([]string, len(columns))
	for i := range placeholders {
		placeholders[i] = "?"
	}
	stmtSQL := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)",
		quoteIdent(table),
		joinQuoted(columns),
		strings.Join(placeholders, ", "),
	)

	stmt, err := r.db.PrepareContext(ctx, stmtSQL)
	if err != nil {
		return 0, fmt.Errorf("mysql: prepare insert: %w", err)
	}
	defer stmt.Close()

	var written int64
	for _, row := range rows {
		if len(row) != len(columns) {
			return written, fmt.Errorf("mysql: insert: row length %d != columns length %d", len(row), len(columns))
		}
		if _, err := stmt.ExecContext(ctx, row...); err != nil {
			return written, fmt.Errorf("mysql: insert: %w", err)
		}
		written++
	}
	return written, nil
}

// Upsert writes rows keyed by keyColumns using INSERT ... ON DUPLICATE KEY
// UPDATE. The key columns must carry a UNIQUE constraint in the table DDL.
func (r *Repository) Upsert(ctx context.Context, table string, columns, keyColumns []string, rows [][]any) (int64, error) {
	if len(columns) == 0 || len(keyColumns) == 0 {
		return 0, fmt.Errorf("mysql: upsert: columns and key columns must not be empty")
	}
	if len(rows) == 0 {
		return 0, nil
	}

	placeholders := make([]string, len(columns))
	for i := range placeholders {
		placeholders[i] = "?"
	}

	keys := map[string]bool{}
	for _, k := range keyColumns {
		keys[k] = true
	}
	sets := make([]string, 0, len(columns))
	for _, col := range columns {
		if keys[col] {
			continue
		}
		sets = append(sets, fmt.Sprintf("%s = VALUES(%s)", quoteIdent(col), quoteIdent(col)))
	}

	stmtSQL := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s) ON DUPLICATE KEY UPDATE %s",
		quoteIdent(table),
		joinQuoted(columns),
		strings.Join(placeholders, ", "),
		strings.Join(sets, ", "),
	)

	stmt, err := r.db.PrepareContext(ctx, stmtSQL)
	if err != nil {
		return 0, fmt.Errorf("mysql: prepare upsert: %w", err)
	}
	defer stmt.Close()

	var written int64
	for _, row := range rows {
		if len(row) != len(columns) {
			return written, fmt.Errorf("mysql: upsert: row length %d != columns length %d", len(row), len(columns))
		}
		if _, err := stmt.ExecContext(ctx, row...); err != nil {
			return written, fmt.Errorf("mysql: upsert: %w", err)
		}
		written++
	}
	return written, nil
}

// Count returns the row count of table.
func (r *Repository) Count(ctx context.Context, table string) (int64, error) {
	var n int64
	q := fmt.Sprintf("SELECT COUNT(*) FROM %s", quoteIdent(table))
	if err := r.db.QueryRowContext(ctx, q).Scan(&n); err != nil {
		return 0, fmt.Errorf("mysql: count %s: %w", table, err)
	}
	return n, nil
}

// Close closes the underlying connection pool.
func (r *Repository) Close() {
	r.db.Close()
}

func quoteIdent(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}

func joinQuoted(names []string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = quoteIdent(n)
	}
	return strings.Join(quoted, ", ")
}
