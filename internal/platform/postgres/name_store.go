package postgres

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/phrazzld/recall-sprint/internal/platform/logger"
	"github.com/phrazzld/recall-sprint/internal/store"
)

// PostgresNameStore implements store.NameStore on the memory_names table.
type PostgresNameStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresNameStore creates a new PostgreSQL implementation of store.NameStore.
// If logger is nil, a default logger will be used.
func NewPostgresNameStore(db store.DBTX, logger *slog.Logger) *PostgresNameStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresNameStore{
		db:     db,
		logger: logger.With(slog.String("component", "name_store")),
	}
}

var _ store.NameStore = (*PostgresNameStore)(nil)

const listActiveNamesQuery = `
	SELECT name
	FROM memory_names
	WHERE active AND name <> ''
`

// ListActive implements store.NameStore.ListActive.
func (s *PostgresNameStore) ListActive(ctx context.Context) ([]string, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, listActiveNamesQuery)
	if err != nil {
		log.Error("failed to query active names", slog.String("error", err.Error()))
		return nil, store.NewStoreError("name", "list", "query failed", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	names := make([]string, 0)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			log.Error("failed to scan name row", slog.String("error", err.Error()))
			return nil, store.NewStoreError("name", "list", "scan failed", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		log.Error("error iterating name rows", slog.String("error", err.Error()))
		return nil, store.NewStoreError("name", "list", "iteration failed", err)
	}

	log.Debug("active names loaded", slog.Int("count", len(names)))
	return names, nil
}

const upsertNamesQuery = `
	INSERT INTO memory_names (name, active)
	SELECT DISTINCT btrim(n), TRUE
	FROM unnest($1::text[]) AS n
	WHERE btrim(n) <> ''
	ON CONFLICT (name) DO UPDATE
	SET active = TRUE, updated_at = NOW()
	WHERE memory_names.active IS DISTINCT FROM TRUE
`

// Upsert implements store.NameStore.Upsert.
func (s *PostgresNameStore) Upsert(ctx context.Context, names []string) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if len(names) == 0 {
		return 0, nil
	}

	res, err := s.db.ExecContext(ctx, upsertNamesQuery, names)
	if err != nil {
		log.Error("failed to upsert names",
			slog.String("error", err.Error()),
			slog.Int("count", len(names)))
		return 0, store.NewStoreError("name", "upsert", "insert failed", MapError(err))
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, store.NewStoreError("name", "upsert", "rows affected unavailable", err)
	}

	log.Info("names upserted", slog.Int64("changed", affected), slog.Int("submitted", len(names)))
	return affected, nil
}

const deactivateNamesQuery = `
	UPDATE memory_names
	SET active = FALSE, updated_at = NOW()
	WHERE active AND NOT (name = ANY($1::text[]))
`

// DeactivateExcept implements store.NameStore.DeactivateExcept.
func (s *PostgresNameStore) DeactivateExcept(ctx context.Context, keep []string) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if keep == nil {
		keep = []string{}
	}

	res, err := s.db.ExecContext(ctx, deactivateNamesQuery, keep)
	if err != nil {
		log.Error("failed to deactivate names", slog.String("error", err.Error()))
		return 0, store.NewStoreError("name", "deactivate", "update failed", MapError(err))
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, store.NewStoreError("name", "deactivate", "rows affected unavailable", err)
	}

	log.Info("names deactivated", slog.Int64("count", affected))
	return affected, nil
}

// WithTx implements store.NameStore.WithTx.
func (s *PostgresNameStore) WithTx(tx *sql.Tx) store.NameStore {
	return &PostgresNameStore{db: tx, logger: s.logger}
}
