// Package ddl defines the backend-agnostic table definition model and a
// shared CREATE TABLE renderer parameterized by a small per-backend dialect.
//
// Column kinds are logical ("serial", "text", "integer", "real", "date",
// "bool"); each storage backend maps them onto its own column types and
// registers its dialect with the storage factory.
package ddl

import (
	"fmt"
	"strings"
)

// Column describes one column of a table definition.
type Column struct {
	Name string

	// Kind is the logical type: "serial" (auto-increment surrogate key),
	// "text", "integer", "real", "date", or "bool".
	Kind string

	// Unique renders a per-column UNIQUE constraint.
	Unique bool
}

// TableDef describes one destination table.
type TableDef struct {
	Name    string
	Columns []Column
}

// Dialect carries the backend-specific pieces of CREATE TABLE rendering.
type Dialect struct {
	// QuoteIdent quotes a single identifier segment.
	QuoteIdent func(string) string

	// MapType maps a logical column kind onto a backend column type.
	MapType func(kind string) string

	// SerialPK is the full type-and-constraint clause for a "serial" column,
	// e.g. "INTEGER PRIMARY KEY AUTOINCREMENT".
	SerialPK string

	// WrapCreate, when set, wraps the rendered CREATE TABLE statement for
	// backends without native IF NOT EXISTS support. It receives the raw
	// (unquoted) table name and the bare CREATE TABLE statement.
	WrapCreate func(table, create string) string
}

// BuildCreateTableSQL renders an idempotent CREATE TABLE statement for t.
// Without WrapCreate the statement has the form:
//
//	CREATE TABLE IF NOT EXISTS "t" (
//	  "id" <serial-pk>,
//	  "col" TYPE [UNIQUE],
//	  ...
//	);
func BuildCreateTableSQL(d Dialect, t TableDef) (string, error) {
	name := strings.TrimSpace(t.Name)
	if name == "" {
		return "", fmt.Errorf("ddl: table name must not be empty")
	}
	if len(t.Columns) == 0 {
		return "", fmt.Errorf("ddl: table %s has no columns", name)
	}

	cols := make([]string, 0, len(t.Columns))
	for _, c := range t.Columns {
		cn := strings.TrimSpace(c.Name)
		if cn == "" {
			return "", fmt.Errorf("ddl: column with empty name in table %s", name)
		}

		var sb strings.Builder
		sb.WriteString(d.QuoteIdent(cn))
		sb.WriteByte(' ')
		if c.Kind == "serial" {
			sb.WriteString(d.SerialPK)
		} else {
			typ := d.MapType(c.Kind)
			if typ == "" {
				return "", fmt.Errorf("ddl: column %s.%s has unmapped kind %q", name, cn, c.Kind)
			}
			sb.WriteString(typ)
			if c.Unique {
				sb.WriteString(" UNIQUE")
			}
		}
		cols = append(cols, sb.String())
	}

	if d.WrapCreate != nil {
		create := fmt.Sprintf(
			"CREATE TABLE %s (\n  %s\n)",
			d.QuoteIdent(name),
			strings.Join(cols, ",\n  "),
		)
		return d.WrapCreate(name, create), nil
	}

	return fmt.Sprintf(
		"CREATE TABLE IF NOT EXISTS %s (\n  %s\n);",
		d.QuoteIdent(name),
		strings.Join(cols, ",\n  "),
	), nil
}
