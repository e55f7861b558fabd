package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/recall-sprint/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestMapError(t *testing.T) {
	t.Parallel()

	other := errors.New("boom")

	tests := []struct {
		name     string
		input    error
		expected error
	}{
		{name: "nil", input: nil, expected: nil},
		{name: "no rows", input: sql.ErrNoRows, expected: store.ErrNotFound},
		{name: "unique", input: &pgconn.PgError{Code: uniqueViolationCode}, expected: store.ErrDuplicate},
		{name: "check", input: &pgconn.PgError{Code: checkViolationCode, ConstraintName: "memory_results_status_check"}, expected: store.ErrInvalidEntity},
		{name: "not null", input: &pgconn.PgError{Code: notNullViolationCode, ColumnName: "email"}, expected: store.ErrInvalidEntity},
		{name: "wrapped unique", input: fmt.Errorf("exec: %w", &pgconn.PgError{Code: uniqueViolationCode}), expected: store.ErrDuplicate},
		{name: "unmapped", input: other, expected: other},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := MapError(tt.input)
			if tt.expected == nil {
				assert.NoError(t, got)
				return
			}
			assert.ErrorIs(t, got, tt.expected)
		})
	}
}

func TestViolationHelpers(t *testing.T) {
	t.Parallel()

	assert.True(t, IsUniqueViolation(&pgconn.PgError{Code: uniqueViolationCode}))
	assert.False(t, IsUniqueViolation(errors.New("x")))
	assert.True(t, IsUndefinedTable(fmt.Errorf("q: %w", &pgconn.PgError{Code: undefinedTableCode})))
	assert.False(t, IsUndefinedTable(&pgconn.PgError{Code: uniqueViolationCode}))
}

func TestIsMigrationCommand(t *testing.T) {
	t.Parallel()

	for _, c := range MigrationCommands {
		assert.True(t, IsMigrationCommand(c), c)
	}
	assert.False(t, IsMigrationCommand("create"))
	assert.False(t, IsMigrationCommand(""))
}
