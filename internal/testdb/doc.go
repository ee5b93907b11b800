//go:build integration

// Package testdb provides helpers for PostgreSQL integration tests.
//
// Tests open one shared, goose-migrated connection with GetTestDBWithT and run
// each case inside WithTx, which always rolls back so cases stay isolated:
//
//	db := testdb.GetTestDBWithT(t)
//	testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
//	    taskStore := postgres.NewPostgresTaskStore(tx, nil)
//	    ...
//	})
//
// When DATABASE_URL is not set the tests are skipped.
package testdb
