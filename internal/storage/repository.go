// Package storage contains the storage-agnostic repository contract and the
// factory that backend packages register themselves with at init time.
//
// The pipeline needs exactly two write shapes: an append for the immutable
// fact tables and a keyed insert-or-update for the country reference table.
// Fact appends run row-by-row without a wrapping transaction:
// a mid-batch failure leaves the rows written so far committed.
package storage

import (
	"context"
	"fmt"
	"sync"

	"edustats/internal/ddl"
)

// Config selects and configures a storage backend.
type Config struct {
	// Kind selects the backend: "sqlite", "postgres", "mysql", "mssql".
	Kind string

	// DSN is the backend connection string.
	DSN string
}

// Repository is the minimal contract every backend implements.
type Repository interface {
	// Exec executes an arbitrary SQL statement (typically DDL).
	Exec(ctx context.Context, sql string) error

	// Insert appends rows to table. Rows are written individually and are
	// not rolled back when a later row fails; the returned count reflects
	// rows written before any error.
	Insert(ctx context.Context, table string, columns []string, rows [][]any) (int64, error)

	// Upsert writes rows keyed by keyColumns: a row whose key is absent is
	// inserted, an existing row has its non-key columns overwritten.
	Upsert(ctx context.Context, table string, columns, keyColumns []string, rows [][]any) (int64, error)

	// Count returns the current row count of table.
	Count(ctx context.Context, table string) (int64, error)

	// Close releases the underlying connections.
	Close()
}

// Factory constructs a Repository for one backend kind.
type Factory func(ctx context.Context, cfg Config) (Repository, error)

var (
	mu        sync.RWMutex
	factories = map[string]Factory{}
	dialects  = map[string]ddl.Dialect{}
)

// Register installs a backend factory for kind. It is called from backend
// packages' init functions.
func Register(kind string, f Factory) {
	mu.Lock()
	defer mu.Unlock()
	factories[kind] = f
}

// RegisterDialect installs a DDL dialect for kind alongside its factory.
func RegisterDialect(kind string, d ddl.Dialect) {
	mu.Lock()
	defer mu.Unlock()
	dialects[kind] = d
}

// New opens a Repository for cfg.Kind. The kind must have been registered,
// typically by importing the storage/all package.
func New(ctx context.Context, cfg Config) (Repository, error) {
	mu.RLock()
	f, ok := factories[cfg.Kind]
	mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("storage: no backend registered for kind %q", cfg.Kind)
	}
	return f(ctx, cfg)
}

// CreateTableSQL renders an idempotent CREATE TABLE statement for kind.
func CreateTableSQL(kind string, t ddl.TableDef) (string, error) {
	mu.RLock()
	d, ok := dialects[kind]
	mu.RUnlock()
	if !ok {
		return "", fmt.Errorf("storage: no DDL dialect registered for kind %q", kind)
	}
	return ddl.BuildCreateTableSQL(d, t)
}
