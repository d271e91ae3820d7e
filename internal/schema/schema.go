// Package schema defines the destination tables and creates them idempotently
// through the backend DDL dialects.
package schema

import (
	"context"
	"fmt"

	"edustats/internal/ddl"
	"edustats/internal/storage"
)

// Tables carries the configured destination table names.
type Tables struct {
	Enrollment string
	Graduation string
	Spending   string
	Countries  string
}

// Enrollment returns the enrollment fact table definition.
func Enrollment(name string) ddl.TableDef {
	return ddl.TableDef{
		Name: name,
		Columns: []ddl.Column{
			{Name: "id", Kind: "serial"},
			{Name: "country_code", Kind: "text"},
			{Name: "country_name", Kind: "text"},
			{Name: "year", Kind: "integer"},
			{Name: "enrollment_rate", Kind: "real"},
			{Name: "education_level", Kind: "text"},
			{Name: "gender", Kind: "text"},
			{Name: "data_source", Kind: "text"},
			{Name: "extraction_date", Kind: "date"},
			{Name: "created_at", Kind: "date"},
		},
	}
}

// Graduation returns the graduation fact table definition.
func Graduation(name string) ddl.TableDef {
	return ddl.TableDef{
		Name: name,
		Columns: []ddl.Column{
			{Name: "id", Kind: "serial"},
			{Name: "country_code", Kind: "text"},
			{Name: "country_name", Kind: "text"},
			{Name: "year", Kind: "integer"},
			{Name: "graduation_rate", Kind: "real"},
			{Name: "completion_rate", Kind: "real"},
			{Name: "education_level", Kind: "text"},
			{Name: "data_source", Kind: "text"},
			{Name: "extraction_date", Kind: "date"},
			{Name: "created_at", Kind: "date"},
		},
	}
}

// Spending returns the spending fact table definition.
func Spending(name string) ddl.TableDef {
	return ddl.TableDef{
		Name: name,
		Columns: []ddl.Column{
			{Name: "id", Kind: "serial"},
			{Name: "country_code", Kind: "text"},
			{Name: "country_name", Kind: "text"},
			{Name: "year", Kind: "integer"},
			{Name: "spending_usd", Kind: "real"},
			{Name: "spending_per_capita", Kind: "real"},
			{Name: "spending_percent_gdp", Kind: "real"},
			{Name: "currency", Kind: "text"},
			{Name: "data_source", Kind: "text"},
			{Name: "extraction_date", Kind: "date"},
			{Name: "created_at", Kind: "date"},
		},
	}
}

// Countries returns the country reference table definition. Both code and
// name are unique; upserts key on country_code.
func Countries(name string) ddl.TableDef {
	return ddl.TableDef{
		Name: name,
		Columns: []ddl.Column{
			{Name: "id", Kind: "serial"},
			{Name: "country_code", Kind: "text", Unique: true},
			{Name: "country_name", Kind: "text", Unique: true},
			{Name: "region", Kind: "text"},
			{Name: "income_group", Kind: "text"},
			{Name: "population", Kind: "integer"},
			{Name: "gdp_per_capita", Kind: "real"},
			{Name: "data_available", Kind: "bool"},
			{Name: "last_updated", Kind: "date"},
			{Name: "created_at", Kind: "date"},
		},
	}
}

// All returns the four destination table definitions.
func All(t Tables) []ddl.TableDef {
	return []ddl.TableDef{
		Countries(t.Countries),
		Enrollment(t.Enrollment),
		Graduation(t.Graduation),
		Spending(t.Spending),
	}
}

// Ensure creates every destination table if it does not exist yet. kind
// selects the registered DDL dialect and must match the repository backend.
func Ensure(ctx context.Context, repo storage.Repository, kind string, t Tables) error {
	for _, td := range All(t) {
		stmt, err := storage.CreateTableSQL(kind, td)
		if err != nil {
			return fmt.Errorf("schema: render %s: %w", td.Name, err)
		}
		if err := repo.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("schema: create %s: %w", td.Name, err)
		}
	}
	return nil
}
