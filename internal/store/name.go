package store

import (
	"context"
	"database/sql"
)

// NameStore provides access to the pool of names players memorize.
type NameStore interface {
	// ListActive returns the name of every row in memory_names whose active
	// flag is set. Order is unspecified.
	ListActive(ctx context.Context) ([]string, error)

	// Upsert inserts each name as active, or re-activates it if it already
	// exists. It returns the number of rows inserted or changed.
	Upsert(ctx context.Context, names []string) (int64, error)

	// DeactivateExcept clears the active flag on every active name not in keep.
	// It returns the number of rows deactivated.
	DeactivateExcept(ctx context.Context, keep []string) (int64, error)

	// WithTx returns a new NameStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) NameStore
}
