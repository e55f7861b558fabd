package service

import (
	"context"
	"errors"
	"testing"

	"github.com/phrazzld/recall-sprint/internal/domain"
	"github.com/phrazzld/recall-sprint/internal/domain/sampling"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewNameService(t *testing.T) {
	t.Parallel()

	_, err := NewNameService(nil, &MockSampler{}, 20, nil)
	assert.Error(t, err)

	_, err = NewNameService(&MockNameStore{}, nil, 20, nil)
	assert.Error(t, err)

	_, err = NewNameService(&MockNameStore{}, &MockSampler{}, 0, nil)
	assert.Error(t, err)

	svc, err := NewNameService(&MockNameStore{}, &MockSampler{}, 20, nil)
	require.NoError(t, err)
	assert.NotNil(t, svc)
}

func TestNameService_Draw(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	pool := []string{"Nora", "Miles", "Selene", "Ada"}

	t.Run("success", func(t *testing.T) {
		t.Parallel()
		names := &MockNameStore{}
		sampler := &MockSampler{}
		names.On("ListActive", mock.Anything).Return(pool, nil)
		sampler.On("Sample", pool, 3).Return([]string{"Ada", "Nora", "Miles"}, nil)

		svc, err := NewNameService(names, sampler, 3, nil)
		require.NoError(t, err)

		draw, err := svc.Draw(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"Ada", "Nora", "Miles"}, draw.Names)
		assert.Equal(t, 4, draw.PoolSize)
		names.AssertExpectations(t)
		sampler.AssertExpectations(t)
	})

	t.Run("insufficient pool passes through", func(t *testing.T) {
		t.Parallel()
		names := &MockNameStore{}
		names.On("ListActive", mock.Anything).Return(pool, nil)

		svc, err := NewNameService(names, sampling.NewWithSeed(1, 2), 20, nil)
		require.NoError(t, err)

		draw, err := svc.Draw(ctx)
		assert.Nil(t, draw)
		require.ErrorIs(t, err, domain.ErrInsufficientPool)

		var poolErr *domain.InsufficientPoolError
		require.ErrorAs(t, err, &poolErr)
		assert.Equal(t, 4, poolErr.Available)
		assert.Equal(t, 20, poolErr.Required)

		var svcErr *ServiceError
		assert.False(t, errors.As(err, &svcErr), "pool errors are not wrapped")
	})

	t.Run("store failure is wrapped", func(t *testing.T) {
		t.Parallel()
		names := &MockNameStore{}
		names.On("ListActive", mock.Anything).Return(nil, errors.New("connection reset"))

		svc, err := NewNameService(names, &MockSampler{}, 20, nil)
		require.NoError(t, err)

		_, err = svc.Draw(ctx)
		var svcErr *ServiceError
		require.ErrorAs(t, err, &svcErr)
		assert.Equal(t, "draw_names", svcErr.Operation)
		assert.NotErrorIs(t, err, domain.ErrInsufficientPool)
	})
}
