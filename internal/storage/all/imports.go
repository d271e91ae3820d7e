// Package all registers every storage backend via side-effect imports.
// Import it from the binary entrypoint so storage.New can resolve any
// configured backend kind.
package all

import (
	_ "edustats/internal/storage/mssql"
	_ "edustats/internal/storage/mysql"
	_ "edustats/internal/storage/postgres"
	_ "edustats/internal/storage/sqlite"
)
