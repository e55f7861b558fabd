package service

import (
	"context"
	"database/sql"

	"github.com/phrazzld/recall-sprint/internal/domain"
	"github.com/phrazzld/recall-sprint/internal/store"
	"github.com/stretchr/testify/mock"
)

// MockNameStore mocks store.NameStore
type MockNameStore struct {
	mock.Mock
}

func (m *MockNameStore) ListActive(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	names, _ := args.Get(0).([]string)
	return names, args.Error(1)
}

func (m *MockNameStore) Upsert(ctx context.Context, names []string) (int64, error) {
	args := m.Called(ctx, names)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNameStore) DeactivateExcept(ctx context.Context, keep []string) (int64, error) {
	args := m.Called(ctx, keep)
	return args.Get(0).(int64), args.Error(1)
}

// WithTx returns the mock itself so expectations carry across transactions.
func (m *MockNameStore) WithTx(tx *sql.Tx) store.NameStore {
	return m
}

// MockResultStore mocks store.ResultStore
type MockResultStore struct {
	mock.Mock
}

func (m *MockResultStore) Create(ctx context.Context, result *domain.Result) error {
	args := m.Called(ctx, result)
	return args.Error(0)
}

// MockSampler mocks Sampler
type MockSampler struct {
	mock.Mock
}

func (m *MockSampler) Sample(pool []string, n int) ([]string, error) {
	args := m.Called(pool, n)
	names, _ := args.Get(0).([]string)
	return names, args.Error(1)
}
