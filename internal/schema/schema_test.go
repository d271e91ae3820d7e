package schema

import (
	"context"
	"strings"
	"testing"

	"edustats/internal/ddl"
	"edustats/internal/storage"
)

// execRepo records executed DDL statements.
type execRepo struct {
	stmts []string
}

func (e *execRepo) Exec(ctx context.Context, sql string) error {
	e.stmts = append(e.stmts, sql)
	return nil
}

func (e *execRepo) Insert(ctx context.Context, table string, columns []string, rows [][]any) (int64, error) {
	return 0, nil
}

func (e *execRepo) Upsert(ctx context.Context, table string, columns, keyColumns []string, rows [][]any) (int64, error) {
	return 0, nil
}

func (e *execRepo) Count(ctx context.Context, table string) (int64, error) { return 0, nil }
func (e *execRepo) Close()                                                 {}

func init() {
	storage.RegisterDialect("schematest", ddl.Dialect{
		QuoteIdent: func(s string) string { return s },
		SerialPK:   "INTEGER PRIMARY KEY",
		MapType: func(kind string) string {
			switch kind {
			case "text", "date":
				return "TEXT"
			case "integer", "bool":
				return "INTEGER"
			case "real":
				return "REAL"
			}
			return ""
		},
	})
}

var tables = Tables{
	Enrollment: "education_enrollment",
	Graduation: "education_graduation",
	Spending:   "education_spending",
	Countries:  "countries",
}

/*
TestEnsure checks that every destination table gets one idempotent CREATE
statement, countries first.
*/
func TestEnsure(t *testing.T) {
	t.Parallel()

	repo := &execRepo{}
	if err := Ensure(context.Background(), repo, "schematest", tables); err != nil {
		t.Fatalf("Ensure: %v", err)
	}

	if len(repo.stmts) != 4 {
		t.Fatalf("executed %d statements, want 4", len(repo.stmts))
	}
	wantOrder := []string{"countries", "education_enrollment", "education_graduation", "education_spending"}
	for i, table := range wantOrder {
		if !strings.Contains(repo.stmts[i], "CREATE TABLE IF NOT EXISTS "+table) {
			t.Errorf("statement %d = %q, want CREATE for %s", i, repo.stmts[i], table)
		}
	}
}

func TestEnsureUnknownKind(t *testing.T) {
	t.Parallel()

	if err := Ensure(context.Background(), &execRepo{}, "nope", tables); err == nil {
		t.Error("Ensure with unregistered kind succeeded, want error")
	}
}

func TestTableDefinitions(t *testing.T) {
	t.Parallel()

	countries := Countries("countries")
	uniques := map[string]bool{}
	for _, c := range countries.Columns {
		if c.Unique {
			uniques[c.Name] = true
		}
	}
	if !uniques["country_code"] || !uniques["country_name"] {
		t.Errorf("countries unique columns = %v, want country_code and country_name", uniques)
	}

	spending := Spending("education_spending")
	var hasPercentGDP bool
	for _, c := range spending.Columns {
		if c.Name == "spending_percent_gdp" && c.Kind == "real" {
			hasPercentGDP = true
		}
	}
	if !hasPercentGDP {
		t.Error("spending table missing spending_percent_gdp real column")
	}

	for _, td := range All(tables) {
		if td.Columns[0].Name != "id" || td.Columns[0].Kind != "serial" {
			t.Errorf("table %s first column = %+v, want serial id", td.Name, td.Columns[0])
		}
	}
}
