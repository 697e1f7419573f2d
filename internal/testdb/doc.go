//go:build integration

// Package testdb provides utilities for database integration tests.
//
// Each test runs inside its own transaction, which is rolled back when the
// test completes, so tests can run in parallel against one database without
// cleanup. Tests are skipped when no database URL is configured.
//
//	db := testdb.GetTestDBWithT(t)
//	testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
//		scripts := postgres.NewPostgresScriptStore(tx, nil)
//		...
//	})
package testdb
