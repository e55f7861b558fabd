package store

import (
	"context"

	"github.com/phrazzld/recall-sprint/internal/domain"
)

// ResultStore persists completed quiz runs to memory_results.
type ResultStore interface {
	// Create saves a new result. The result is validated first; validation
	// failures are returned as-is, and an existing ID yields ErrDuplicate.
	Create(ctx context.Context, result *domain.Result) error
}
