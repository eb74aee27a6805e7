// Package testrunner executes a Config's declared test blocks against a
// live Postgres backend (spec.md §4.F). Each test runs inside its own
// transaction, rolled back unconditionally, so tests never persist state;
// setup/assert/assert_fail/assert_eq/assert_notify/assert_snapshot read
// exactly as declared and teardown runs afterward, outside the
// transaction.
package testrunner

import "context"

// Driver owns a connection to a test database and opens one Tx per test.
type Driver interface {
	// Begin opens a new transaction for one test.
	Begin(ctx context.Context) (Tx, error)
	// Exec runs a statement outside any transaction, used for teardown.
	Exec(ctx context.Context, stmt string) error
	Close() error
}

// Tx is one test's transaction scope.
type Tx interface {
	// Exec runs a batched command (setup, assert_fail, assert_error).
	Exec(ctx context.Context, stmt string) error
	// QueryRow runs a query and returns the first column of the first
	// row. hasRow is false when the query returned zero rows.
	QueryRow(ctx context.Context, query string) (value any, hasRow bool, err error)
	// Listen subscribes to a notification channel before setup runs, so
	// a NOTIFY fired during setup is observed. Drivers that cannot
	// support LISTEN/NOTIFY return an error.
	Listen(ctx context.Context, channel string) error
	// AwaitNotification blocks until a notification arrives on a
	// previously Listen-ed channel or the deadline elapses.
	AwaitNotification(ctx context.Context) (payload string, ok bool, err error)
	Rollback() error
}
