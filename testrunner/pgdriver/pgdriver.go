// Package pgdriver is the real-Postgres testrunner.Driver, a thin
// database/sql wrapper grounded on migrate/shadow.ShadowDB's own
// sql.Open("postgres", ...) usage and its create/drop-database dance
// against the "postgres" maintenance database.
package pgdriver

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"

	"github.com/dbschema-go/dbschema/testrunner"
)

// Driver is a testrunner.Driver backed by a real PostgreSQL connection.
type Driver struct {
	dsn      string
	db       *sql.DB
	listener *pq.Listener
}

// New opens a connection pool against dsn and verifies it is reachable.
func New(ctx context.Context, dsn string) (*Driver, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return &Driver{dsn: dsn, db: db}, nil
}

func (d *Driver) Begin(ctx context.Context) (testrunner.Tx, error) {
	sqltx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &tx{sqltx: sqltx, driver: d}, nil
}

func (d *Driver) Exec(ctx context.Context, stmt string) error {
	_, err := d.db.ExecContext(ctx, stmt)
	return err
}

func (d *Driver) Close() error {
	if d.listener != nil {
		d.listener.Close()
	}
	return d.db.Close()
}

// CreateDatabase connects to the "postgres" maintenance database derived
// from dsn and issues CREATE DATABASE for name, mirroring
// ShadowDB.createPostgresShadow.
func CreateDatabase(ctx context.Context, dsn, name string) error {
	maint, err := maintenanceDSN(dsn)
	if err != nil {
		return err
	}
	db, err := sql.Open("postgres", maint)
	if err != nil {
		return fmt.Errorf("failed to connect to postgres database: %w", err)
	}
	defer db.Close()

	_, err = db.ExecContext(ctx, fmt.Sprintf("CREATE DATABASE %s", quoteIdentifier(name)))
	if err != nil && !strings.Contains(err.Error(), "already exists") {
		return fmt.Errorf("failed to create database %s: %w", name, err)
	}
	return nil
}

// DropDatabase mirrors ShadowDB.dropPostgresShadow.
func DropDatabase(ctx context.Context, dsn, name string) error {
	maint, err := maintenanceDSN(dsn)
	if err != nil {
		return err
	}
	db, err := sql.Open("postgres", maint)
	if err != nil {
		return fmt.Errorf("failed to connect to postgres database: %w", err)
	}
	defer db.Close()

	_, err = db.ExecContext(ctx, fmt.Sprintf("DROP DATABASE IF EXISTS %s", quoteIdentifier(name)))
	if err != nil {
		return fmt.Errorf("failed to drop database %s: %w", name, err)
	}
	return nil
}

func maintenanceDSN(dsn string) (string, error) {
	if !strings.Contains(dsn, "/") {
		return "", fmt.Errorf("cannot derive maintenance DSN from %q", dsn)
	}
	parts := strings.Split(dsn, "/")
	rest := parts[len(parts)-1]
	if i := strings.IndexAny(rest, "?"); i >= 0 {
		parts[len(parts)-1] = "postgres" + rest[i:]
	} else {
		parts[len(parts)-1] = "postgres"
	}
	return strings.Join(parts, "/"), nil
}

func quoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

type tx struct {
	sqltx  *sql.Tx
	driver *Driver
}

func (t *tx) Exec(ctx context.Context, stmt string) error {
	_, err := t.sqltx.ExecContext(ctx, stmt)
	return err
}

func (t *tx) QueryRow(ctx context.Context, query string) (any, bool, error) {
	rows, err := t.sqltx.QueryContext(ctx, query)
	if err != nil {
		return nil, false, err
	}
	defer rows.Close()
	if !rows.Next() {
		return nil, false, rows.Err()
	}
	v, err := scanFirstColumn(rows)
	return v, true, err
}

func (t *tx) QueryAll(ctx context.Context, query string) ([][]string, error) {
	rows, err := t.sqltx.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	var out [][]string
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		row := make([]string, len(cols))
		for i, v := range vals {
			row[i] = stringify(v)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (t *tx) Listen(ctx context.Context, channel string) error {
	if t.driver.listener == nil {
		t.driver.listener = pq.NewListener(t.driver.dsn, 10*time.Second, time.Minute, nil)
	}
	return t.driver.listener.Listen(channel)
}

func (t *tx) AwaitNotification(ctx context.Context) (string, bool, error) {
	if t.driver.listener == nil {
		return "", false, fmt.Errorf("assert_notify used without a prior Listen")
	}
	select {
	case n := <-t.driver.listener.Notify:
		if n == nil {
			return "", false, nil
		}
		return n.Extra, true, nil
	case <-ctx.Done():
		return "", false, nil
	}
}

func (t *tx) Rollback() error {
	return t.sqltx.Rollback()
}

func scanFirstColumn(rows *sql.Rows) (any, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	vals := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range vals {
		ptrs[i] = &vals[i]
	}
	if err := rows.Scan(ptrs...); err != nil {
		return nil, err
	}
	return vals[0], nil
}

func stringify(v any) string {
	switch x := v.(type) {
	case []byte:
		return string(x)
	case string:
		return x
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", x)
	}
}
