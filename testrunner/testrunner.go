package testrunner

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dbschema-go/dbschema/ir"
)

// Result is the outcome of one test.
type Result struct {
	Name    string
	Passed  bool
	Message string
}

// Summary is the outcome of a full run.
type Summary struct {
	Total   int
	Passed  int
	Failed  int
	Results []Result
}

// NotifyDeadline bounds how long assert_notify waits for a notification
// to arrive once its setup statements have run.
const NotifyDeadline = 5 * time.Second

// Run executes every test in cfg in declaration order, optionally
// restricted to names in filter (nil or empty means all), per the
// six-step algorithm of spec.md §4.F. Every failure, including a failure
// to open a test's transaction, is recorded as that test's Result and
// the run continues; Run does not stop early and its error is always nil.
func Run(ctx context.Context, driver Driver, cfg *ir.Config, filter map[string]bool) (Summary, error) {
	var sum Summary
	for _, test := range cfg.Tests {
		if filter != nil && len(filter) > 0 && !filter[test.Name] {
			continue
		}
		sum.Total++
		res := runOne(ctx, driver, test)
		sum.Results = append(sum.Results, res)
		if res.Passed {
			sum.Passed++
		} else {
			sum.Failed++
		}
	}
	return sum, nil
}

func runOne(ctx context.Context, driver Driver, test ir.Test) (res Result) {
	tx, err := driver.Begin(ctx)
	if err != nil {
		return Result{Name: test.Name, Passed: false, Message: fmt.Sprintf("begin failed: %s", err)}
	}
	// Teardown runs after the rollback whether the test passed or failed;
	// a teardown error only replaces the result of a passing test.
	defer func() {
		for _, stmt := range test.Teardown {
			if err := driver.Exec(ctx, stmt); err != nil {
				if res.Passed {
					res = Result{Name: test.Name, Passed: false, Message: fmt.Sprintf("teardown failed: %s", err)}
				}
				return
			}
		}
	}()

	if len(test.AssertNotify) > 0 {
		for _, n := range test.AssertNotify {
			if err := tx.Listen(ctx, n.Channel); err != nil {
				tx.Rollback()
				return Result{Name: test.Name, Passed: false, Message: fmt.Sprintf("listen failed: %s", err)}
			}
		}
	}

	for _, stmt := range test.Setup {
		if err := tx.Exec(ctx, stmt); err != nil {
			tx.Rollback()
			return Result{Name: test.Name, Passed: false, Message: fmt.Sprintf("setup failed: %s", err)}
		}
	}

	if res, ok := runAsserts(ctx, tx, test); !ok {
		tx.Rollback()
		return res
	}
	if res, ok := runAssertFails(ctx, tx, test); !ok {
		tx.Rollback()
		return res
	}
	if res, ok := runAssertErrors(ctx, tx, test); !ok {
		tx.Rollback()
		return res
	}
	if res, ok := runAssertEqs(ctx, tx, test); !ok {
		tx.Rollback()
		return res
	}
	if res, ok := runAssertSnapshots(ctx, tx, test); !ok {
		tx.Rollback()
		return res
	}
	if res, ok := runAssertNotifies(ctx, tx, test); !ok {
		tx.Rollback()
		return res
	}

	tx.Rollback()

	return Result{Name: test.Name, Passed: true}
}

func runAsserts(ctx context.Context, tx Tx, test ir.Test) (Result, bool) {
	for _, q := range test.Asserts {
		v, hasRow, err := tx.QueryRow(ctx, q)
		if err != nil {
			return Result{Name: test.Name, Message: fmt.Sprintf("assert query failed: %s", err)}, false
		}
		if !hasRow {
			return Result{Name: test.Name, Message: "assert returned no rows"}, false
		}
		ok, err := truthy(v)
		if err != nil {
			return Result{Name: test.Name, Message: fmt.Sprintf("assert returned false: %s", err)}, false
		}
		if !ok {
			return Result{Name: test.Name, Message: "assert returned false"}, false
		}
	}
	return Result{}, true
}

func runAssertFails(ctx context.Context, tx Tx, test ir.Test) (Result, bool) {
	for _, stmt := range test.AssertFail {
		if err := tx.Exec(ctx, stmt); err == nil {
			return Result{Name: test.Name, Message: "assert_fail statement did not fail"}, false
		}
	}
	return Result{}, true
}

func runAssertErrors(ctx context.Context, tx Tx, test ir.Test) (Result, bool) {
	for _, a := range test.AssertError {
		err := tx.Exec(ctx, a.SQL)
		if err == nil {
			return Result{Name: test.Name, Message: "assert_error statement did not fail"}, false
		}
		if !strings.Contains(err.Error(), a.MessageContains) {
			return Result{Name: test.Name, Message: fmt.Sprintf("assert_error message %q does not contain %q", err.Error(), a.MessageContains)}, false
		}
	}
	return Result{}, true
}

func runAssertEqs(ctx context.Context, tx Tx, test ir.Test) (Result, bool) {
	for _, a := range test.AssertEq {
		v, hasRow, err := tx.QueryRow(ctx, a.Query)
		if err != nil {
			return Result{Name: test.Name, Message: fmt.Sprintf("assert_eq query failed: %s", err)}, false
		}
		if !hasRow {
			return Result{Name: test.Name, Message: "assert_eq returned no rows"}, false
		}
		got := stringify(v)
		if got != a.Expected {
			return Result{Name: test.Name, Message: fmt.Sprintf("assert_eq: expected %q, got %q", a.Expected, got)}, false
		}
	}
	return Result{}, true
}

func runAssertSnapshots(ctx context.Context, tx Tx, test ir.Test) (Result, bool) {
	for _, a := range test.AssertSnapshot {
		rows, err := queryAll(ctx, tx, a.Query)
		if err != nil {
			return Result{Name: test.Name, Message: fmt.Sprintf("assert_snapshot query failed: %s", err)}, false
		}
		if !rowsEqual(rows, a.Rows) {
			return Result{Name: test.Name, Message: fmt.Sprintf("assert_snapshot: expected %v, got %v", a.Rows, rows)}, false
		}
	}
	return Result{}, true
}

func runAssertNotifies(ctx context.Context, tx Tx, test ir.Test) (Result, bool) {
	for _, n := range test.AssertNotify {
		nctx, cancel := context.WithTimeout(ctx, NotifyDeadline)
		payload, ok, err := tx.AwaitNotification(nctx)
		cancel()
		if err != nil {
			return Result{Name: test.Name, Message: fmt.Sprintf("assert_notify failed: %s", err)}, false
		}
		if !ok {
			return Result{Name: test.Name, Message: fmt.Sprintf("assert_notify: no notification received on %q", n.Channel)}, false
		}
		if n.PayloadContains != nil && !strings.Contains(payload, *n.PayloadContains) {
			return Result{Name: test.Name, Message: fmt.Sprintf("assert_notify: payload %q does not contain %q", payload, *n.PayloadContains)}, false
		}
	}
	return Result{}, true
}

func stringify(v any) string {
	switch x := v.(type) {
	case []byte:
		return string(x)
	case string:
		return x
	default:
		return fmt.Sprintf("%v", x)
	}
}

// queryAll is implemented per-driver via a type assertion to an
// optional multi-row querier, since Tx's core contract only needs the
// first column of the first row for every other assertion kind.
func queryAll(ctx context.Context, tx Tx, query string) ([][]string, error) {
	mr, ok := tx.(interface {
		QueryAll(ctx context.Context, query string) ([][]string, error)
	})
	if !ok {
		return nil, fmt.Errorf("driver does not support assert_snapshot")
	}
	return mr.QueryAll(ctx, query)
}

func rowsEqual(got, want [][]string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if len(got[i]) != len(want[i]) {
			return false
		}
		for j := range got[i] {
			if got[i][j] != want[i][j] {
				return false
			}
		}
	}
	return true
}
