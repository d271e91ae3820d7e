package mysql

import "edustats/internal/ddl"

// Dialect returns the MySQL DDL dialect. Text columns that may carry a
// UNIQUE constraint use VARCHAR(255) because MySQL cannot index bare TEXT.
func Dialect() ddl.Dialect {
	return ddl.Dialect{
		QuoteIdent: quoteIdent,
		SerialPK:   "BIGINT AUTO_INCREMENT PRIMARY KEY",
		MapType: func(kind string) string {
			switch kind {
			case "text":
				return "VARCHAR(255)"
			case "integer":
				return "BIGINT"
			case "real":
				return "DOUBLE"
			case "date":
				return "DATE"
			case "bool":
				return "BOOLEAN"
			}
			return ""
		},
	}
}
