package ddl

import (
	"strings"
	"testing"
)

func testDialect() Dialect {
	return Dialect{
		QuoteIdent: func(s string) string { return `"` + s + `"` },
		SerialPK:   "INTEGER PRIMARY KEY AUTOINCREMENT",
		MapType: func(kind string) string {
			switch kind {
			case "text":
				return "TEXT"
			case "integer":
				return "INTEGER"
			case "real":
				return "REAL"
			}
			return ""
		},
	}
}

func TestBuildCreateTableSQL(t *testing.T) {
	t.Parallel()

	td := TableDef{
		Name: "countries",
		Columns: []Column{
			{Name: "id", Kind: "serial"},
			{Name: "country_code", Kind: "text", Unique: true},
			{Name: "population", Kind: "integer"},
		},
	}

	got, err := BuildCreateTableSQL(testDialect(), td)
	if err != nil {
		t.Fatalf("BuildCreateTableSQL: %v", err)
	}

	want := "CREATE TABLE IF NOT EXISTS \"countries\" (\n" +
		"  \"id\" INTEGER PRIMARY KEY AUTOINCREMENT,\n" +
		"  \"country_code\" TEXT UNIQUE,\n" +
		"  \"population\" INTEGER\n" +
		");"
	if got != want {
		t.Errorf("BuildCreateTableSQL =\n%s\nwant:\n%s", got, want)
	}
}

func TestBuildCreateTableSQLWrapped(t *testing.T) {
	t.Parallel()

	d := testDialect()
	d.WrapCreate = func(table, create string) string {
		return "IF MISSING " + table + " THEN " + create
	}

	got, err := BuildCreateTableSQL(d, TableDef{
		Name:    "facts",
		Columns: []Column{{Name: "id", Kind: "serial"}},
	})
	if err != nil {
		t.Fatalf("BuildCreateTableSQL: %v", err)
	}
	if !strings.HasPrefix(got, "IF MISSING facts THEN CREATE TABLE \"facts\"") {
		t.Errorf("wrapped statement = %q", got)
	}
	if strings.Contains(got, "IF NOT EXISTS") {
		t.Errorf("wrapped statement still carries IF NOT EXISTS: %q", got)
	}
}

func TestBuildCreateTableSQLErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		td   TableDef
	}{
		{"empty table name", TableDef{Columns: []Column{{Name: "id", Kind: "serial"}}}},
		{"no columns", TableDef{Name: "t"}},
		{"empty column name", TableDef{Name: "t", Columns: []Column{{Kind: "text"}}}},
		{"unmapped kind", TableDef{Name: "t", Columns: []Column{{Name: "c", Kind: "blob"}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if _, err := BuildCreateTableSQL(testDialect(), tt.td); err == nil {
				t.Error("BuildCreateTableSQL succeeded, want error")
			}
		})
	}
}
