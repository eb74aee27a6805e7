package extract

import (
	"github.com/dbschema-go/dbschema/eval"
	"github.com/dbschema-go/dbschema/lang/ast"
)

func extractFunction(blk *ast.Block, env *eval.Env) (Function, error) {
	b := blk.Body
	altName, err := optString(b, env, "function", "name")
	if err != nil {
		return Function{}, err
	}
	schema, err := optString(b, env, "function", "schema")
	if err != nil {
		return Function{}, err
	}
	language, err := reqString(b, env, "function", "language")
	if err != nil {
		return Function{}, err
	}
	parameters, err := stringList(b, env, "function", "parameters")
	if err != nil {
		return Function{}, err
	}
	returns, err := reqString(b, env, "function", "returns")
	if err != nil {
		return Function{}, err
	}
	replace, err := optBool(b, env, "function", "replace", true)
	if err != nil {
		return Function{}, err
	}
	volatility, err := optString(b, env, "function", "volatility")
	if err != nil {
		return Function{}, err
	}
	strict, err := optBool(b, env, "function", "strict", false)
	if err != nil {
		return Function{}, err
	}
	security, err := optString(b, env, "function", "security")
	if err != nil {
		return Function{}, err
	}
	cost, err := optFloat(b, env, "function", "cost")
	if err != nil {
		return Function{}, err
	}
	body, err := reqString(b, env, "function", "body")
	if err != nil {
		return Function{}, err
	}
	comment, err := optString(b, env, "function", "comment")
	if err != nil {
		return Function{}, err
	}
	return Function{
		Name: blk.Label(0), AltName: altName, Schema: schema, Language: language, Parameters: parameters,
		Returns: returns, Replace: replace, Volatility: volatility, Strict: strict, Security: security,
		Cost: cost, Body: body, Comment: comment,
	}, nil
}

func extractProcedure(blk *ast.Block, env *eval.Env) (Procedure, error) {
	b := blk.Body
	altName, err := optString(b, env, "procedure", "name")
	if err != nil {
		return Procedure{}, err
	}
	schema, err := optString(b, env, "procedure", "schema")
	if err != nil {
		return Procedure{}, err
	}
	language, err := reqString(b, env, "procedure", "language")
	if err != nil {
		return Procedure{}, err
	}
	parameters, err := stringList(b, env, "procedure", "parameters")
	if err != nil {
		return Procedure{}, err
	}
	replace, err := optBool(b, env, "procedure", "replace", true)
	if err != nil {
		return Procedure{}, err
	}
	security, err := optString(b, env, "procedure", "security")
	if err != nil {
		return Procedure{}, err
	}
	body, err := reqString(b, env, "procedure", "body")
	if err != nil {
		return Procedure{}, err
	}
	comment, err := optString(b, env, "procedure", "comment")
	if err != nil {
		return Procedure{}, err
	}
	return Procedure{
		Name: blk.Label(0), AltName: altName, Schema: schema, Language: language, Parameters: parameters,
		Replace: replace, Security: security, Body: body, Comment: comment,
	}, nil
}

func extractAggregate(blk *ast.Block, env *eval.Env) (Aggregate, error) {
	b := blk.Body
	altName, err := optString(b, env, "aggregate", "name")
	if err != nil {
		return Aggregate{}, err
	}
	schema, err := optString(b, env, "aggregate", "schema")
	if err != nil {
		return Aggregate{}, err
	}
	inputs, err := stringList(b, env, "aggregate", "inputs")
	if err != nil {
		return Aggregate{}, err
	}
	sfunc, err := reqString(b, env, "aggregate", "sfunc")
	if err != nil {
		return Aggregate{}, err
	}
	stype, err := reqString(b, env, "aggregate", "stype")
	if err != nil {
		return Aggregate{}, err
	}
	finalfunc, err := optString(b, env, "aggregate", "finalfunc")
	if err != nil {
		return Aggregate{}, err
	}
	initcond, err := optString(b, env, "aggregate", "initcond")
	if err != nil {
		return Aggregate{}, err
	}
	parallel, err := optString(b, env, "aggregate", "parallel")
	if err != nil {
		return Aggregate{}, err
	}
	comment, err := optString(b, env, "aggregate", "comment")
	if err != nil {
		return Aggregate{}, err
	}
	return Aggregate{
		Name: blk.Label(0), AltName: altName, Schema: schema, Inputs: inputs, SFunc: sfunc, SType: stype,
		FinalFunc: finalfunc, InitCond: initcond, Parallel: parallel, Comment: comment,
	}, nil
}

func extractOperator(blk *ast.Block, env *eval.Env) (Operator, error) {
	b := blk.Body
	altName, err := optString(b, env, "operator", "name")
	if err != nil {
		return Operator{}, err
	}
	schema, err := optString(b, env, "operator", "schema")
	if err != nil {
		return Operator{}, err
	}
	left, err := optString(b, env, "operator", "left")
	if err != nil {
		return Operator{}, err
	}
	right, err := optString(b, env, "operator", "right")
	if err != nil {
		return Operator{}, err
	}
	procedure, err := reqString(b, env, "operator", "procedure")
	if err != nil {
		return Operator{}, err
	}
	commutator, err := optString(b, env, "operator", "commutator")
	if err != nil {
		return Operator{}, err
	}
	negator, err := optString(b, env, "operator", "negator")
	if err != nil {
		return Operator{}, err
	}
	restrict, err := optString(b, env, "operator", "restrict")
	if err != nil {
		return Operator{}, err
	}
	join, err := optString(b, env, "operator", "join")
	if err != nil {
		return Operator{}, err
	}
	comment, err := optString(b, env, "operator", "comment")
	if err != nil {
		return Operator{}, err
	}
	return Operator{
		Name: blk.Label(0), AltName: altName, Schema: schema, Left: left, Right: right, Procedure: procedure,
		Commutator: commutator, Negator: negator, Restrict: restrict, Join: join, Comment: comment,
	}, nil
}
