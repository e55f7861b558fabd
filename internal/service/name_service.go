package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/phrazzld/recall-sprint/internal/domain"
	"github.com/phrazzld/recall-sprint/internal/platform/logger"
	"github.com/phrazzld/recall-sprint/internal/store"
)

// Sampler draws n distinct members from a pool.
type Sampler interface {
	Sample(pool []string, n int) ([]string, error)
}

// Draw is the set of names handed to one run.
type Draw struct {
	Names    []string
	PoolSize int
}

// NameService provides the names for a new run.
type NameService interface {
	// Draw lists the active pool and samples the configured number of names.
	// Returns an error wrapping domain.ErrInsufficientPool when the active
	// pool is smaller than the configured count.
	Draw(ctx context.Context) (*Draw, error)
}

type nameServiceImpl struct {
	names   store.NameStore
	sampler Sampler
	count   int
	logger  *slog.Logger
}

// NewNameService creates a NameService drawing count names per run.
func NewNameService(names store.NameStore, sampler Sampler, count int, logger *slog.Logger) (NameService, error) {
	if names == nil {
		return nil, errors.New("name store cannot be nil")
	}
	if sampler == nil {
		return nil, errors.New("sampler cannot be nil")
	}
	if count <= 0 {
		return nil, errors.New("draw count must be positive")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &nameServiceImpl{
		names:   names,
		sampler: sampler,
		count:   count,
		logger:  logger.With(slog.String("component", "name_service")),
	}, nil
}

// Draw implements NameService.Draw.
func (s *nameServiceImpl) Draw(ctx context.Context) (*Draw, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	pool, err := s.names.ListActive(ctx)
	if err != nil {
		log.Error("failed to list active names", slog.String("error", err.Error()))
		return nil, NewServiceError("draw_names", "failed to list active names", err)
	}

	names, err := s.sampler.Sample(pool, s.count)
	if err != nil {
		var poolErr *domain.InsufficientPoolError
		if errors.As(err, &poolErr) {
			log.Warn("active pool too small",
				slog.Int("available", poolErr.Available),
				slog.Int("required", poolErr.Required))
		}
		return nil, NewServiceError("draw_names", "failed to sample names", err)
	}

	log.Debug("names drawn", slog.Int("count", len(names)), slog.Int("pool_size", len(pool)))
	return &Draw{Names: names, PoolSize: len(pool)}, nil
}
