package service

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/phrazzld/recall-sprint/internal/platform/logger"
	"github.com/phrazzld/recall-sprint/internal/store"
)

// SeedReport summarizes a seeding run.
type SeedReport struct {
	// Submitted is the number of distinct names read from the input.
	Submitted int
	// Changed is the number of names inserted or re-activated.
	Changed int64
	// Deactivated is the number of active names switched off by pruning.
	Deactivated int64
}

// SeedService loads names into the pool.
type SeedService interface {
	// Seed upserts names as active in a single transaction. With prune set,
	// active names missing from the input are deactivated in the same transaction.
	Seed(ctx context.Context, names []string, prune bool) (*SeedReport, error)
}

type seedServiceImpl struct {
	db     *sql.DB
	names  store.NameStore
	logger *slog.Logger
}

// NewSeedService creates a SeedService running its writes on db.
func NewSeedService(db *sql.DB, names store.NameStore, logger *slog.Logger) (SeedService, error) {
	if db == nil {
		return nil, errors.New("db cannot be nil")
	}
	if names == nil {
		return nil, errors.New("name store cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &seedServiceImpl{
		db:     db,
		names:  names,
		logger: logger.With(slog.String("component", "seed_service")),
	}, nil
}

// Seed implements SeedService.Seed.
func (s *seedServiceImpl) Seed(ctx context.Context, names []string, prune bool) (*SeedReport, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if len(names) == 0 && !prune {
		return &SeedReport{}, nil
	}

	report := &SeedReport{Submitted: len(names)}
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txNames := s.names.WithTx(tx)

		changed, err := txNames.Upsert(ctx, names)
		if err != nil {
			return err
		}
		report.Changed = changed

		if prune {
			deactivated, err := txNames.DeactivateExcept(ctx, names)
			if err != nil {
				return err
			}
			report.Deactivated = deactivated
		}
		return nil
	})
	if err != nil {
		log.Error("seeding failed", slog.String("error", err.Error()))
		return nil, NewServiceError("seed_names", "failed to seed names", err)
	}

	log.Info("name pool seeded",
		slog.Int("submitted", report.Submitted),
		slog.Int64("changed", report.Changed),
		slog.Int64("deactivated", report.Deactivated),
		slog.Bool("prune", prune))
	return report, nil
}

// ParseNameList reads one name per line, trimming whitespace and skipping
// blank lines and lines starting with '#'. Duplicates keep their first position.
func ParseNameList(r io.Reader) ([]string, error) {
	seen := make(map[string]struct{})
	names := make([]string, 0)

	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		name := strings.TrimSpace(scanner.Text())
		if name == "" || strings.HasPrefix(name, "#") {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read name list at line %d: %w", line+1, err)
	}
	return names, nil
}
