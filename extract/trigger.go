package extract

import (
	"github.com/dbschema-go/dbschema/eval"
	"github.com/dbschema-go/dbschema/lang/ast"
)

func extractTrigger(blk *ast.Block, env *eval.Env) (Trigger, error) {
	b := blk.Body
	altName, err := optString(b, env, "trigger", "name")
	if err != nil {
		return Trigger{}, err
	}
	schema, err := optString(b, env, "trigger", "schema")
	if err != nil {
		return Trigger{}, err
	}
	table, err := reqString(b, env, "trigger", "table")
	if err != nil {
		return Trigger{}, err
	}
	timing, err := stringDefault(b, env, "trigger", "timing", "BEFORE")
	if err != nil {
		return Trigger{}, err
	}
	events, err := stringListDefault(b, env, "trigger", "events", []string{"UPDATE"})
	if err != nil {
		return Trigger{}, err
	}
	level, err := stringDefault(b, env, "trigger", "level", "ROW")
	if err != nil {
		return Trigger{}, err
	}
	function, err := reqString(b, env, "trigger", "function")
	if err != nil {
		return Trigger{}, err
	}
	functionSchema, err := optString(b, env, "trigger", "function_schema")
	if err != nil {
		return Trigger{}, err
	}
	when, err := optString(b, env, "trigger", "when")
	if err != nil {
		return Trigger{}, err
	}
	comment, err := optString(b, env, "trigger", "comment")
	if err != nil {
		return Trigger{}, err
	}
	return Trigger{
		Name: blk.Label(0), AltName: altName, Schema: schema, Table: table, Timing: timing, Events: events,
		Level: level, Function: function, FunctionSchema: functionSchema, When: when, Comment: comment,
	}, nil
}

func extractRule(blk *ast.Block, env *eval.Env) (Rule, error) {
	b := blk.Body
	altName, err := optString(b, env, "rule", "name")
	if err != nil {
		return Rule{}, err
	}
	schema, err := optString(b, env, "rule", "schema")
	if err != nil {
		return Rule{}, err
	}
	table, err := reqString(b, env, "rule", "table")
	if err != nil {
		return Rule{}, err
	}
	event, err := reqString(b, env, "rule", "event")
	if err != nil {
		return Rule{}, err
	}
	where, err := optString(b, env, "rule", "where")
	if err != nil {
		return Rule{}, err
	}
	instead, err := optBool(b, env, "rule", "instead", false)
	if err != nil {
		return Rule{}, err
	}
	command, err := reqString(b, env, "rule", "command")
	if err != nil {
		return Rule{}, err
	}
	comment, err := optString(b, env, "rule", "comment")
	if err != nil {
		return Rule{}, err
	}
	return Rule{
		Name: blk.Label(0), AltName: altName, Schema: schema, Table: table, Event: event,
		Where: where, Instead: instead, Command: command, Comment: comment,
	}, nil
}

func extractEventTrigger(blk *ast.Block, env *eval.Env) (EventTrigger, error) {
	b := blk.Body
	altName, err := optString(b, env, "event_trigger", "name")
	if err != nil {
		return EventTrigger{}, err
	}
	event, err := reqString(b, env, "event_trigger", "event")
	if err != nil {
		return EventTrigger{}, err
	}
	tags, err := stringList(b, env, "event_trigger", "tags")
	if err != nil {
		return EventTrigger{}, err
	}
	function, err := reqString(b, env, "event_trigger", "function")
	if err != nil {
		return EventTrigger{}, err
	}
	functionSchema, err := optString(b, env, "event_trigger", "function_schema")
	if err != nil {
		return EventTrigger{}, err
	}
	comment, err := optString(b, env, "event_trigger", "comment")
	if err != nil {
		return EventTrigger{}, err
	}
	return EventTrigger{
		Name: blk.Label(0), AltName: altName, Event: event, Tags: tags,
		Function: function, FunctionSchema: functionSchema, Comment: comment,
	}, nil
}
