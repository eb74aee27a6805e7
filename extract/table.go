package extract

import (
	"github.com/dbschema-go/dbschema/eval"
	"github.com/dbschema-go/dbschema/internal/diagnostics"
	"github.com/dbschema-go/dbschema/lang/ast"
)

func extractTable(blk *ast.Block, env *eval.Env) (Table, error) {
	b := blk.Body
	altName, err := optString(b, env, "table", "table_name")
	if err != nil {
		return Table{}, err
	}
	schema, err := optString(b, env, "table", "schema")
	if err != nil {
		return Table{}, err
	}
	ifNotExists, err := optBool(b, env, "table", "if_not_exists", true)
	if err != nil {
		return Table{}, err
	}
	var columns []Column
	for _, cb := range b.BlocksOfType("column") {
		if err := iterate(cb, env, func(b *ast.Block, e *eval.Env) error {
			col, err := extractColumn(b, e)
			if err != nil {
				return err
			}
			columns = append(columns, col)
			return nil
		}); err != nil {
			return Table{}, err
		}
	}
	var pk *PrimaryKey
	if pkBlocks := b.BlocksOfType("primary_key"); len(pkBlocks) > 0 {
		p, err := extractPrimaryKey(pkBlocks[0], env)
		if err != nil {
			return Table{}, err
		}
		pk = &p
	}
	var indexes []Index
	for _, ib := range b.BlocksOfType("index") {
		idx, err := extractTableIndex(ib, env)
		if err != nil {
			return Table{}, err
		}
		indexes = append(indexes, idx)
	}
	var checks []Check
	for _, cb := range b.BlocksOfType("check") {
		c, err := extractCheck(cb, env)
		if err != nil {
			return Table{}, err
		}
		checks = append(checks, c)
	}
	var fks []ForeignKey
	for _, fb := range b.BlocksOfType("foreign_key") {
		fk, err := extractForeignKey(fb, env)
		if err != nil {
			return Table{}, err
		}
		fks = append(fks, fk)
	}
	var partitionBy *PartitionBy
	if pbBlocks := b.BlocksOfType("partition_by"); len(pbBlocks) > 0 {
		strategy := pbBlocks[0].Label(0)
		cols, err := stringList(pbBlocks[0].Body, env, "table.partition_by", "columns")
		if err != nil {
			return Table{}, err
		}
		partitionBy = &PartitionBy{Strategy: strategy, Columns: cols}
	}
	var partitions []Partition
	for _, pb := range b.BlocksOfType("partition") {
		values, err := reqString(pb.Body, env, "table.partition", "values")
		if err != nil {
			return Table{}, err
		}
		partitions = append(partitions, Partition{Name: pb.Label(0), Values: values})
	}
	lintIgnore, err := stringList(b, env, "table", "lint_ignore")
	if err != nil {
		return Table{}, err
	}
	comment, err := optString(b, env, "table", "comment")
	if err != nil {
		return Table{}, err
	}
	mapAttr, err := optString(b, env, "table", "map")
	if err != nil {
		return Table{}, err
	}
	return Table{
		Name: blk.Label(0), AltName: altName, Schema: schema, IfNotExists: ifNotExists,
		Columns: columns, PrimaryKey: pk, Indexes: indexes, Checks: checks, ForeignKeys: fks,
		PartitionBy: partitionBy, Partitions: partitions, LintIgnore: lintIgnore, Comment: comment, Map: mapAttr,
	}, nil
}

// extractColumn builds one Column record per call. The preserved
// `count` expansion bug (spec.md §4.C) lives entirely in how this
// function is invoked, not in this function itself: the parser already
// pulls any `count = N` attribute off a column block into blk.Count
// (the same mechanism every block kind uses for repetition), so
// extractTable's caller runs this through the generic iterate() helper
// N times against blk itself unchanged. Since the block's label never
// varies across those iterations, the result is N Column records
// sharing one name verbatim — not renamed col1/col2/... — and
// downstream backend emitters must tolerate a table with duplicate
// column names as the faithful, if questionable, output of this
// construct.
func extractColumn(blk *ast.Block, env *eval.Env) (Column, error) {
	b := blk.Body
	typ, err := reqString(b, env, "column", "type")
	if err != nil {
		return Column{}, err
	}
	nullable, err := optBool(b, env, "column", "nullable", true)
	if err != nil {
		return Column{}, err
	}
	def, err := optString(b, env, "column", "default")
	if err != nil {
		return Column{}, err
	}
	dbType, err := optString(b, env, "column", "db_type")
	if err != nil {
		return Column{}, err
	}
	lintIgnore, err := stringList(b, env, "column", "lint_ignore")
	if err != nil {
		return Column{}, err
	}
	comment, err := optString(b, env, "column", "comment")
	if err != nil {
		return Column{}, err
	}
	count := 1
	if blk.Count != nil {
		countVal, err := eval.Eval(blk.Count, env)
		if err != nil {
			return Column{}, err
		}
		n, err := countVal.AsNumber()
		if err != nil {
			return Column{}, diagnostics.TypeMismatch(blk.Count.Span(), "column count", "number", countVal.Kind.String())
		}
		count = int(n)
	}
	return Column{
		Name: blk.Label(0), Type: typ, Nullable: nullable, Default: def, DBType: dbType,
		LintIgnore: lintIgnore, Comment: comment, Count: count,
	}, nil
}

func extractPrimaryKey(blk *ast.Block, env *eval.Env) (PrimaryKey, error) {
	b := blk.Body
	name, err := optString(b, env, "primary_key", "name")
	if err != nil {
		return PrimaryKey{}, err
	}
	columns, err := stringList(b, env, "primary_key", "columns")
	if err != nil {
		return PrimaryKey{}, err
	}
	return PrimaryKey{Name: name, Columns: columns}, nil
}

func extractCheck(blk *ast.Block, env *eval.Env) (Check, error) {
	b := blk.Body
	name, err := optString(b, env, "check", "name")
	if err != nil {
		return Check{}, err
	}
	expr, err := reqString(b, env, "check", "expression")
	if err != nil {
		return Check{}, err
	}
	return Check{Name: name, Expression: expr}, nil
}

func extractTableIndex(blk *ast.Block, env *eval.Env) (Index, error) {
	b := blk.Body
	name, err := optString(b, env, "index", "name")
	if err != nil {
		return Index{}, err
	}
	columns, err := stringList(b, env, "index", "columns")
	if err != nil {
		return Index{}, err
	}
	expressions, err := stringList(b, env, "index", "expressions")
	if err != nil {
		return Index{}, err
	}
	where, err := optString(b, env, "index", "where")
	if err != nil {
		return Index{}, err
	}
	orders, err := stringList(b, env, "index", "orders")
	if err != nil {
		return Index{}, err
	}
	opClasses, err := stringList(b, env, "index", "operator_classes")
	if err != nil {
		return Index{}, err
	}
	unique, err := optBool(b, env, "index", "unique", false)
	if err != nil {
		return Index{}, err
	}
	return Index{
		Name: name, Columns: columns, Expressions: expressions, Where: where,
		Orders: orders, OperatorClasses: opClasses, Unique: unique,
	}, nil
}

func extractForeignKey(blk *ast.Block, env *eval.Env) (ForeignKey, error) {
	b := blk.Body
	name, err := optString(b, env, "foreign_key", "name")
	if err != nil {
		return ForeignKey{}, err
	}
	columns, err := stringList(b, env, "foreign_key", "columns")
	if err != nil {
		return ForeignKey{}, err
	}
	refSchema, err := optString(b, env, "foreign_key", "ref_schema")
	if err != nil {
		return ForeignKey{}, err
	}
	refTable, err := reqString(b, env, "foreign_key", "ref_table")
	if err != nil {
		return ForeignKey{}, err
	}
	refColumns, err := stringList(b, env, "foreign_key", "ref_columns")
	if err != nil {
		return ForeignKey{}, err
	}
	onDelete, err := optString(b, env, "foreign_key", "on_delete")
	if err != nil {
		return ForeignKey{}, err
	}
	onUpdate, err := optString(b, env, "foreign_key", "on_update")
	if err != nil {
		return ForeignKey{}, err
	}
	backRefName, err := optString(b, env, "foreign_key", "back_reference_name")
	if err != nil {
		return ForeignKey{}, err
	}
	return ForeignKey{
		Name: name, Columns: columns, RefSchema: refSchema, RefTable: refTable, RefColumns: refColumns,
		OnDelete: onDelete, OnUpdate: onUpdate, BackReferenceName: backRefName,
	}, nil
}
