//go:build integration

package testdb

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/google/uuid"
)

// WithTx runs fn inside a transaction that is always rolled back,
// including when fn panics.
func WithTx(t *testing.T, db *sql.DB, fn func(t *testing.T, tx *sql.Tx)) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
	defer cancel()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		t.Fatalf("failed to begin transaction: %v", err)
	}

	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			t.Logf("warning: failed to rollback transaction: %v", err)
		}
	}()

	fn(t, tx)
}

// MustInsertUser inserts a user row directly and returns its ID.
func MustInsertUser(ctx context.Context, t *testing.T, tx *sql.Tx, username string) uuid.UUID {
	t.Helper()

	id := uuid.New()
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO users (id, username, created_at) VALUES ($1, $2, NOW())`,
		id, username,
	); err != nil {
		t.Fatalf("failed to insert test user %q: %v", username, err)
	}
	return id
}
