package postgres

import "edustats/internal/ddl"

// Dialect returns the PostgreSQL DDL dialect.
func Dialect() ddl.Dialect {
	return ddl.Dialect{
		QuoteIdent: quoteIdent,
		SerialPK:   "BIGSERIAL PRIMARY KEY",
		MapType: func(kind string) string {
			switch kind {
			case "text":
				return "TEXT"
			case "integer":
				return "BIGINT"
			case "real":
				return "DOUBLE PRECISION"
			case "date":
				return "DATE"
			case "bool":
				return "BOOLEAN"
			}
			return ""
		},
	}
}
