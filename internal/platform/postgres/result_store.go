package postgres

import (
	"context"
	"log/slog"

	"github.com/phrazzld/recall-sprint/internal/domain"
	"github.com/phrazzld/recall-sprint/internal/platform/logger"
	"github.com/phrazzld/recall-sprint/internal/store"
)

// PostgresResultStore implements store.ResultStore on the memory_results table.
type PostgresResultStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresResultStore creates a new PostgreSQL implementation of store.ResultStore.
// If logger is nil, a default logger will be used.
func NewPostgresResultStore(db store.DBTX, logger *slog.Logger) *PostgresResultStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresResultStore{
		db:     db,
		logger: logger.With(slog.String("component", "result_store")),
	}
}

var _ store.ResultStore = (*PostgresResultStore)(nil)

const insertResultQuery = `
	INSERT INTO memory_results (id, email, names_presented, answers_submitted, score, status, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
`

// Create implements store.ResultStore.Create.
func (s *PostgresResultStore) Create(ctx context.Context, result *domain.Result) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := result.Validate(); err != nil {
		log.Warn("result validation failed during create",
			slog.String("error", err.Error()),
			slog.String("result_id", result.ID.String()))
		return err
	}

	_, err := s.db.ExecContext(ctx, insertResultQuery,
		result.ID,
		result.Email,
		result.NamesPresented,
		result.AnswersSubmitted,
		result.Score,
		string(result.Status),
		result.CreatedAt,
	)
	if err != nil {
		log.Error("failed to create result",
			slog.String("error", err.Error()),
			slog.String("result_id", result.ID.String()))
		return store.NewStoreError("result", "create", "insert failed", MapError(err))
	}

	log.Info("result created",
		slog.String("result_id", result.ID.String()),
		slog.Int("score", result.Score),
		slog.String("status", string(result.Status)))
	return nil
}
