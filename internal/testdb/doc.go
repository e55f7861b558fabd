// Package testdb provides helpers for PostgreSQL integration tests.
//
// Tests using it are compiled only with the integration build tag:
//
//	DATABASE_URL=postgres://... go test -tags=integration ./...
//
// GetTestDBWithT skips the calling test when no database URL is set and
// applies the embedded migrations once per process. WithTx runs a test body in
// a transaction that is always rolled back, so tests can share one database.
package testdb
