package extract

import (
	"github.com/dbschema-go/dbschema/eval"
	"github.com/dbschema-go/dbschema/lang/ast"
)

func extractTest(blk *ast.Block, env *eval.Env) (Test, error) {
	b := blk.Body
	setup, err := stringOrStringList(b, env, "test", "setup")
	if err != nil {
		return Test{}, err
	}
	asserts, err := stringOrStringList(b, env, "test", "assert")
	if err != nil {
		return Test{}, err
	}
	assertFail, err := stringOrStringList(b, env, "test", "assert_fail")
	if err != nil {
		return Test{}, err
	}
	teardown, err := stringOrStringList(b, env, "test", "teardown")
	if err != nil {
		return Test{}, err
	}

	var notifies []NotifyAssert
	for _, nb := range b.BlocksOfType("assert_notify") {
		channel, err := reqString(nb.Body, env, "test.assert_notify", "channel")
		if err != nil {
			return Test{}, err
		}
		payload, err := optString(nb.Body, env, "test.assert_notify", "payload_contains")
		if err != nil {
			return Test{}, err
		}
		notifies = append(notifies, NotifyAssert{Channel: channel, PayloadContains: payload})
	}

	var eqs []EqAssert
	for _, eb := range b.BlocksOfType("assert_eq") {
		query, err := reqString(eb.Body, env, "test.assert_eq", "query")
		if err != nil {
			return Test{}, err
		}
		expected, err := reqString(eb.Body, env, "test.assert_eq", "expected")
		if err != nil {
			return Test{}, err
		}
		eqs = append(eqs, EqAssert{Query: query, Expected: expected})
	}

	var errs []ErrorAssert
	for _, eb := range b.BlocksOfType("assert_error") {
		sql, err := reqString(eb.Body, env, "test.assert_error", "sql")
		if err != nil {
			return Test{}, err
		}
		msg, err := reqString(eb.Body, env, "test.assert_error", "message_contains")
		if err != nil {
			return Test{}, err
		}
		errs = append(errs, ErrorAssert{SQL: sql, MessageContains: msg})
	}

	var snapshots []SnapshotAssert
	for _, sb := range b.BlocksOfType("assert_snapshot") {
		query, err := reqString(sb.Body, env, "test.assert_snapshot", "query")
		if err != nil {
			return Test{}, err
		}
		rows, err := extractRowsAttribute(sb.Body, env, "test.assert_snapshot", "rows")
		if err != nil {
			return Test{}, err
		}
		snapshots = append(snapshots, SnapshotAssert{Query: query, Rows: rows})
	}

	return Test{
		Name: blk.Label(0), Setup: setup, Asserts: asserts, AssertFail: assertFail,
		AssertNotify: notifies, AssertEq: eqs, AssertError: errs, AssertSnapshot: snapshots, Teardown: teardown,
	}, nil
}

// extractRowsAttribute evaluates a literal 2-D string array
// (`rows = [["a","b"], ["c","d"]]`), as assert_snapshot's expected
// result set.
func extractRowsAttribute(b *ast.Body, env *eval.Env, block, name string) ([][]string, error) {
	a := b.Attribute(name)
	if a == nil {
		return nil, nil
	}
	v, err := eval.Eval(a.Value, env)
	if err != nil {
		return nil, err
	}
	rows := make([][]string, len(v.Arr))
	for i, rowVal := range v.Arr {
		row := make([]string, len(rowVal.Arr))
		for j, cell := range rowVal.Arr {
			row[j] = cell.String()
		}
		rows[i] = row
	}
	return rows, nil
}
