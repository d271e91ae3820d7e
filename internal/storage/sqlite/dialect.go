package sqlite

import "edustats/internal/ddl"

// Dialect returns the SQLite DDL dialect. SQLite's type affinity keeps the
// mapping small: dates are stored as ISO-8601 TEXT and booleans as INTEGER.
func Dialect() ddl.Dialect {
	return ddl.Dialect{
		QuoteIdent: quoteIdent,
		SerialPK:   "INTEGER PRIMARY KEY AUTOINCREMENT",
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
	}
}
