package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/recall-sprint/internal/domain"
	"github.com/phrazzld/recall-sprint/internal/platform/logger"
	"github.com/phrazzld/recall-sprint/internal/redact"
	"github.com/phrazzld/recall-sprint/internal/store"
)

// RecordParams describes a finished run as submitted by a client.
type RecordParams struct {
	Email            string
	NamesPresented   []string
	AnswersSubmitted []string
	Score            int
	Status           domain.Status
}

// ResultService records finished runs.
type ResultService interface {
	// Record validates and persists one run. Validation failures wrap
	// domain.ErrValidation; store failures wrap domain.ErrPersistence.
	Record(ctx context.Context, params RecordParams) (*domain.Result, error)
}

type resultServiceImpl struct {
	results store.ResultStore
	logger  *slog.Logger
}

// NewResultService creates a ResultService backed by results.
func NewResultService(results store.ResultStore, logger *slog.Logger) (ResultService, error) {
	if results == nil {
		return nil, errors.New("result store cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &resultServiceImpl{
		results: results,
		logger:  logger.With(slog.String("component", "result_service")),
	}, nil
}

// Record implements ResultService.Record.
func (s *resultServiceImpl) Record(ctx context.Context, params RecordParams) (*domain.Result, error) {
	log := logger.FromContextOrDefault(ctx, s.logger).With(
		slog.String("email", redact.Email(params.Email)))

	result, err := domain.NewResult(
		params.Email,
		params.NamesPresented,
		params.AnswersSubmitted,
		params.Score,
		params.Status,
	)
	if err != nil {
		log.Warn("result rejected", slog.String("error", err.Error()))
		return nil, err
	}

	if err := s.results.Create(ctx, result); err != nil {
		log.Error("failed to persist result",
			slog.String("error", redact.Error(err)),
			slog.String("result_id", result.ID.String()))
		return nil, NewServiceError("record_result", "failed to persist result",
			fmt.Errorf("%w: %w", domain.ErrPersistence, err))
	}

	log.Info("result recorded",
		slog.String("result_id", result.ID.String()),
		slog.Int("score", result.Score),
		slog.String("status", string(result.Status)))
	return result, nil
}
