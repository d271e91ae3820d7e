package mssql

import (
	"fmt"
	"strings"

	"edustats/internal/ddl"
)

// Dialect returns the SQL Server DDL dialect. SQL Server has no CREATE TABLE
// IF NOT EXISTS, so the statement is wrapped in an OBJECT_ID existence check.
func Dialect() ddl.Dialect {
	return ddl.Dialect{
		QuoteIdent: quoteIdent,
		SerialPK:   "BIGINT IDENTITY(1,1) PRIMARY KEY",
		MapType: func(kind string) string {
			switch kind {
			case "text":
				return "NVARCHAR(255)"
			case "integer":
				return "BIGINT"
			case "real":
				return "FLOAT"
			case "date":
				return "DATE"
			case "bool":
				return "BIT"
			}
			return ""
		},
		WrapCreate: func(table, create string) string {
			escaped := strings.ReplaceAll(table, "'", "''")
			return fmt.Sprintf(
				"IF OBJECT_ID(N'%s', N'U') IS NULL\nBEGIN\n%s\nEND;",
				escaped,
				create,
			)
		},
	}
}
