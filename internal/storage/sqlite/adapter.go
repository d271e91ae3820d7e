package sqlite

import (
	"context"

	"edustats/internal/storage"
)

// newRepository is swappable in tests.
var newRepository = NewRepository

func init() {
	storage.Register("sqlite", func(ctx context.Context, cfg storage.Config) (storage.Repository, error) {
		r, err := newRepository(ctx, cfg.DSN)
		if err != nil {
			return nil, err
		}
		return r, nil
	})
	storage.RegisterDialect("sqlite", Dialect())
}
