// Package sampling draws fixed-size random subsets from a name pool.
package sampling

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/phrazzld/recall-sprint/internal/domain"
)

// Sampler selects names uniformly at random without replacement.
// It is safe for concurrent use.
type Sampler struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// New returns a Sampler seeded from crypto/rand.
func New() (*Sampler, error) {
	var b [16]byte
	if _, err := crand.Read(b[:]); err != nil {
		return nil, fmt.Errorf("read random seed: %w", err)
	}
	seed1 := binary.LittleEndian.Uint64(b[:8])
	seed2 := binary.LittleEndian.Uint64(b[8:])
	return NewWithSeed(seed1, seed2), nil
}

// NewWithSeed returns a deterministic Sampler, mainly for tests.
func NewWithSeed(seed1, seed2 uint64) *Sampler {
	return &Sampler{rnd: rand.New(rand.NewPCG(seed1, seed2))}
}

// Sample returns n names drawn from pool. It shuffles a copy of the pool with
// Fisher-Yates and truncates, so every n-subset (and every order) is equally
// likely. pool is never modified.
//
// Returns an *domain.InsufficientPoolError when pool holds fewer than n names.
func (s *Sampler) Sample(pool []string, n int) ([]string, error) {
	if n < 0 {
		return nil, fmt.Errorf("sample size must not be negative, got %d", n)
	}
	if len(pool) < n {
		return nil, &domain.InsufficientPoolError{Available: len(pool), Required: n}
	}

	shuffled := make([]string, len(pool))
	copy(shuffled, pool)

	s.mu.Lock()
	for i := len(shuffled) - 1; i > 0; i-- {
		j := s.rnd.IntN(i + 1)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}
	s.mu.Unlock()

	return shuffled[:n:n], nil
}
