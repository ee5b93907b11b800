package postgres_test

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/tasks-api/internal/platform/postgres"
	"github.com/phrazzld/tasks-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPgError(code string) *pgconn.PgError {
	return &pgconn.PgError{
		Code:           code,
		Message:        "error message",
		SchemaName:     "public",
		TableName:      "tasks",
		ColumnName:     "title",
		ConstraintName: "tasks_title_check",
	}
}

type mockResult struct {
	rowsAffected int64
	err          error
}

func (m mockResult) LastInsertId() (int64, error) { return 0, m.err }
func (m mockResult) RowsAffected() (int64, error) { return m.rowsAffected, m.err }

func TestMapError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		err     error
		wantErr error
	}{
		{name: "no rows", err: sql.ErrNoRows, wantErr: store.ErrNotFound},
		{name: "unique violation", err: newPgError("23505"), wantErr: store.ErrDuplicate},
		{name: "foreign key violation", err: newPgError("23503"), wantErr: store.ErrInvalidEntity},
		{name: "check violation", err: newPgError("23514"), wantErr: store.ErrInvalidEntity},
		{name: "not null violation", err: newPgError("23502"), wantErr: store.ErrInvalidEntity},
		{
			name:    "wrapped unique violation",
			err:     fmt.Errorf("insert: %w", newPgError("23505")),
			wantErr: store.ErrDuplicate,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mapped := postgres.MapError(tc.err)
			assert.ErrorIs(t, mapped, tc.wantErr)
		})
	}

	t.Run("nil", func(t *testing.T) {
		assert.NoError(t, postgres.MapError(nil))
	})

	t.Run("unmapped errors pass through", func(t *testing.T) {
		original := errors.New("connection refused")
		assert.Same(t, original, postgres.MapError(original))

		pgErr := newPgError("42P01")
		assert.Equal(t, error(pgErr), postgres.MapError(pgErr))
	})

	t.Run("original PgError remains reachable", func(t *testing.T) {
		mapped := postgres.MapError(newPgError("23514"))
		var pgErr *pgconn.PgError
		require.True(t, errors.As(mapped, &pgErr))
		assert.Equal(t, "tasks_title_check", pgErr.ConstraintName)
	})
}

func TestViolationPredicates(t *testing.T) {
	t.Parallel()

	assert.True(t, postgres.IsUniqueViolation(newPgError("23505")))
	assert.True(t, postgres.IsUniqueViolation(fmt.Errorf("wrapped: %w", newPgError("23505"))))
	assert.False(t, postgres.IsUniqueViolation(newPgError("23503")))
	assert.False(t, postgres.IsUniqueViolation(errors.New("23505")))

	assert.True(t, postgres.IsForeignKeyViolation(newPgError("23503")))
	assert.False(t, postgres.IsForeignKeyViolation(newPgError("23505")))
	assert.False(t, postgres.IsForeignKeyViolation(nil))
}

func TestCheckRowsAffected(t *testing.T) {
	t.Parallel()

	assert.NoError(t, postgres.CheckRowsAffected(mockResult{rowsAffected: 1}, store.ErrTaskNotFound))
	assert.ErrorIs(t,
		postgres.CheckRowsAffected(mockResult{rowsAffected: 0}, store.ErrTaskNotFound),
		store.ErrTaskNotFound)

	resultErr := errors.New("driver does not support RowsAffected")
	assert.ErrorIs(t, postgres.CheckRowsAffected(mockResult{err: resultErr}, store.ErrTaskNotFound), resultErr)

	assert.Error(t, postgres.CheckRowsAffected(nil, store.ErrTaskNotFound))
}
