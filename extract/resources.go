package extract

import (
	"github.com/dbschema-go/dbschema/eval"
	"github.com/dbschema-go/dbschema/lang/ast"
)

func extractProvider(blk *ast.Block, env *eval.Env) (Provider, error) {
	version, err := optString(blk.Body, env, "provider", "version")
	if err != nil {
		return Provider{}, err
	}
	return Provider{ProviderType: blk.Label(0), Version: version}, nil
}

func extractExtension(blk *ast.Block, env *eval.Env) (Extension, error) {
	altName, err := optString(blk.Body, env, "extension", "name")
	if err != nil {
		return Extension{}, err
	}
	ifNotExists, err := optBool(blk.Body, env, "extension", "if_not_exists", true)
	if err != nil {
		return Extension{}, err
	}
	schema, err := optString(blk.Body, env, "extension", "schema")
	if err != nil {
		return Extension{}, err
	}
	version, err := optString(blk.Body, env, "extension", "version")
	if err != nil {
		return Extension{}, err
	}
	comment, err := optString(blk.Body, env, "extension", "comment")
	if err != nil {
		return Extension{}, err
	}
	return Extension{
		Name: blk.Label(0), AltName: altName, IfNotExists: ifNotExists,
		Schema: schema, Version: version, Comment: comment,
	}, nil
}

func extractCollation(blk *ast.Block, env *eval.Env) (Collation, error) {
	b := blk.Body
	altName, err := optString(b, env, "collation", "name")
	if err != nil {
		return Collation{}, err
	}
	schema, err := optString(b, env, "collation", "schema")
	if err != nil {
		return Collation{}, err
	}
	ifNotExists, err := optBool(b, env, "collation", "if_not_exists", true)
	if err != nil {
		return Collation{}, err
	}
	from, err := optString(b, env, "collation", "from")
	if err != nil {
		return Collation{}, err
	}
	locale, err := optString(b, env, "collation", "locale")
	if err != nil {
		return Collation{}, err
	}
	lcCollate, err := optString(b, env, "collation", "lc_collate")
	if err != nil {
		return Collation{}, err
	}
	lcType, err := optString(b, env, "collation", "lc_ctype")
	if err != nil {
		return Collation{}, err
	}
	provider, err := optString(b, env, "collation", "provider")
	if err != nil {
		return Collation{}, err
	}
	var deterministic *bool
	if a := b.Attribute("deterministic"); a != nil {
		v, err := eval.Eval(a.Value, env)
		if err != nil {
			return Collation{}, err
		}
		d, err := v.AsBool()
		if err != nil {
			return Collation{}, err
		}
		deterministic = &d
	}
	version, err := optString(b, env, "collation", "version")
	if err != nil {
		return Collation{}, err
	}
	comment, err := optString(b, env, "collation", "comment")
	if err != nil {
		return Collation{}, err
	}
	return Collation{
		Name: blk.Label(0), AltName: altName, Schema: schema, IfNotExists: ifNotExists,
		From: from, Locale: locale, LCCollate: lcCollate, LCType: lcType,
		Provider: provider, Deterministic: deterministic, Version: version, Comment: comment,
	}, nil
}

func extractSequence(blk *ast.Block, env *eval.Env) (Sequence, error) {
	b := blk.Body
	altName, err := optString(b, env, "sequence", "name")
	if err != nil {
		return Sequence{}, err
	}
	schema, err := optString(b, env, "sequence", "schema")
	if err != nil {
		return Sequence{}, err
	}
	ifNotExists, err := optBool(b, env, "sequence", "if_not_exists", true)
	if err != nil {
		return Sequence{}, err
	}
	as, err := optString(b, env, "sequence", "as")
	if err != nil {
		return Sequence{}, err
	}
	increment, err := optInt(b, env, "sequence", "increment")
	if err != nil {
		return Sequence{}, err
	}
	minVal, err := optInt(b, env, "sequence", "min_value")
	if err != nil {
		return Sequence{}, err
	}
	maxVal, err := optInt(b, env, "sequence", "max_value")
	if err != nil {
		return Sequence{}, err
	}
	start, err := optInt(b, env, "sequence", "start")
	if err != nil {
		return Sequence{}, err
	}
	cache, err := optInt(b, env, "sequence", "cache")
	if err != nil {
		return Sequence{}, err
	}
	cycle, err := optBool(b, env, "sequence", "cycle", false)
	if err != nil {
		return Sequence{}, err
	}
	ownedBy, err := optString(b, env, "sequence", "owned_by")
	if err != nil {
		return Sequence{}, err
	}
	comment, err := optString(b, env, "sequence", "comment")
	if err != nil {
		return Sequence{}, err
	}
	return Sequence{
		Name: blk.Label(0), AltName: altName, Schema: schema, IfNotExists: ifNotExists,
		As: as, Increment: increment, MinValue: minVal, MaxValue: maxVal, Start: start,
		Cache: cache, Cycle: cycle, OwnedBy: ownedBy, Comment: comment,
	}, nil
}

func extractSchema(blk *ast.Block, env *eval.Env) (Schema, error) {
	b := blk.Body
	altName, err := optString(b, env, "schema", "name")
	if err != nil {
		return Schema{}, err
	}
	ifNotExists, err := optBool(b, env, "schema", "if_not_exists", true)
	if err != nil {
		return Schema{}, err
	}
	authorization, err := optString(b, env, "schema", "authorization")
	if err != nil {
		return Schema{}, err
	}
	comment, err := optString(b, env, "schema", "comment")
	if err != nil {
		return Schema{}, err
	}
	return Schema{Name: blk.Label(0), AltName: altName, IfNotExists: ifNotExists, Authorization: authorization, Comment: comment}, nil
}

func extractEnum(blk *ast.Block, env *eval.Env) (Enum, error) {
	b := blk.Body
	altName, err := optString(b, env, "enum", "name")
	if err != nil {
		return Enum{}, err
	}
	schema, err := optString(b, env, "enum", "schema")
	if err != nil {
		return Enum{}, err
	}
	values, err := stringList(b, env, "enum", "values")
	if err != nil {
		return Enum{}, err
	}
	comment, err := optString(b, env, "enum", "comment")
	if err != nil {
		return Enum{}, err
	}
	return Enum{Name: blk.Label(0), AltName: altName, Schema: schema, Values: values, Comment: comment}, nil
}

func extractDomain(blk *ast.Block, env *eval.Env) (Domain, error) {
	b := blk.Body
	altName, err := optString(b, env, "domain", "name")
	if err != nil {
		return Domain{}, err
	}
	schema, err := optString(b, env, "domain", "schema")
	if err != nil {
		return Domain{}, err
	}
	typ, err := reqString(b, env, "domain", "type")
	if err != nil {
		return Domain{}, err
	}
	notNull, err := optBool(b, env, "domain", "not_null", false)
	if err != nil {
		return Domain{}, err
	}
	def, err := optString(b, env, "domain", "default")
	if err != nil {
		return Domain{}, err
	}
	constraint, err := optString(b, env, "domain", "constraint")
	if err != nil {
		return Domain{}, err
	}
	check, err := optString(b, env, "domain", "check")
	if err != nil {
		return Domain{}, err
	}
	comment, err := optString(b, env, "domain", "comment")
	if err != nil {
		return Domain{}, err
	}
	return Domain{
		Name: blk.Label(0), AltName: altName, Schema: schema, Type: typ, NotNull: notNull,
		Default: def, Constraint: constraint, Check: check, Comment: comment,
	}, nil
}

func extractCompositeType(blk *ast.Block, env *eval.Env) (CompositeType, error) {
	b := blk.Body
	altName, err := optString(b, env, "type", "name")
	if err != nil {
		return CompositeType{}, err
	}
	schema, err := optString(b, env, "type", "schema")
	if err != nil {
		return CompositeType{}, err
	}
	var fields []CompositeTypeField
	for _, fb := range b.BlocksOfType("field") {
		typ, err := reqString(fb.Body, env, "type.field", "type")
		if err != nil {
			return CompositeType{}, err
		}
		fields = append(fields, CompositeTypeField{Name: fb.Label(0), Type: typ})
	}
	comment, err := optString(b, env, "type", "comment")
	if err != nil {
		return CompositeType{}, err
	}
	return CompositeType{Name: blk.Label(0), AltName: altName, Schema: schema, Fields: fields, Comment: comment}, nil
}

func extractView(blk *ast.Block, env *eval.Env) (View, error) {
	b := blk.Body
	altName, err := optString(b, env, "view", "name")
	if err != nil {
		return View{}, err
	}
	schema, err := optString(b, env, "view", "schema")
	if err != nil {
		return View{}, err
	}
	replace, err := optBool(b, env, "view", "replace", true)
	if err != nil {
		return View{}, err
	}
	sql, err := reqString(b, env, "view", "sql")
	if err != nil {
		return View{}, err
	}
	comment, err := optString(b, env, "view", "comment")
	if err != nil {
		return View{}, err
	}
	return View{Name: blk.Label(0), AltName: altName, Schema: schema, Replace: replace, SQL: sql, Comment: comment}, nil
}

func extractMaterializedView(blk *ast.Block, env *eval.Env) (MaterializedView, error) {
	b := blk.Body
	altName, err := optString(b, env, "materialized", "name")
	if err != nil {
		return MaterializedView{}, err
	}
	schema, err := optString(b, env, "materialized", "schema")
	if err != nil {
		return MaterializedView{}, err
	}
	withData, err := optBool(b, env, "materialized", "with_data", true)
	if err != nil {
		return MaterializedView{}, err
	}
	sql, err := reqString(b, env, "materialized", "sql")
	if err != nil {
		return MaterializedView{}, err
	}
	comment, err := optString(b, env, "materialized", "comment")
	if err != nil {
		return MaterializedView{}, err
	}
	return MaterializedView{Name: blk.Label(0), AltName: altName, Schema: schema, WithData: withData, SQL: sql, Comment: comment}, nil
}

func extractPolicy(blk *ast.Block, env *eval.Env) (Policy, error) {
	b := blk.Body
	altName, err := optString(b, env, "policy", "name")
	if err != nil {
		return Policy{}, err
	}
	schema, err := optString(b, env, "policy", "schema")
	if err != nil {
		return Policy{}, err
	}
	table, err := reqString(b, env, "policy", "table")
	if err != nil {
		return Policy{}, err
	}
	command, err := reqString(b, env, "policy", "command")
	if err != nil {
		return Policy{}, err
	}
	as, err := optString(b, env, "policy", "as")
	if err != nil {
		return Policy{}, err
	}
	roles, err := stringList(b, env, "policy", "roles")
	if err != nil {
		return Policy{}, err
	}
	using, err := optString(b, env, "policy", "using")
	if err != nil {
		return Policy{}, err
	}
	check, err := optString(b, env, "policy", "check")
	if err != nil {
		return Policy{}, err
	}
	comment, err := optString(b, env, "policy", "comment")
	if err != nil {
		return Policy{}, err
	}
	return Policy{
		Name: blk.Label(0), AltName: altName, Schema: schema, Table: table, Command: command,
		As: as, Roles: roles, Using: using, Check: check, Comment: comment,
	}, nil
}

func extractRole(blk *ast.Block, env *eval.Env) (Role, error) {
	b := blk.Body
	altName, err := optString(b, env, "role", "name")
	if err != nil {
		return Role{}, err
	}
	login, err := optBool(b, env, "role", "login", false)
	if err != nil {
		return Role{}, err
	}
	superuser, err := optBool(b, env, "role", "superuser", false)
	if err != nil {
		return Role{}, err
	}
	createdb, err := optBool(b, env, "role", "createdb", false)
	if err != nil {
		return Role{}, err
	}
	createrole, err := optBool(b, env, "role", "createrole", false)
	if err != nil {
		return Role{}, err
	}
	replication, err := optBool(b, env, "role", "replication", false)
	if err != nil {
		return Role{}, err
	}
	password, err := optString(b, env, "role", "password")
	if err != nil {
		return Role{}, err
	}
	inRole, err := stringList(b, env, "role", "in_role")
	if err != nil {
		return Role{}, err
	}
	comment, err := optString(b, env, "role", "comment")
	if err != nil {
		return Role{}, err
	}
	return Role{
		Name: blk.Label(0), AltName: altName, Login: login, Superuser: superuser, CreateDB: createdb,
		CreateRole: createrole, Replication: replication, Password: password, InRole: inRole, Comment: comment,
	}, nil
}

func extractTablespace(blk *ast.Block, env *eval.Env) (Tablespace, error) {
	b := blk.Body
	altName, err := optString(b, env, "tablespace", "name")
	if err != nil {
		return Tablespace{}, err
	}
	location, err := reqString(b, env, "tablespace", "location")
	if err != nil {
		return Tablespace{}, err
	}
	owner, err := optString(b, env, "tablespace", "owner")
	if err != nil {
		return Tablespace{}, err
	}
	options, err := stringList(b, env, "tablespace", "options")
	if err != nil {
		return Tablespace{}, err
	}
	comment, err := optString(b, env, "tablespace", "comment")
	if err != nil {
		return Tablespace{}, err
	}
	return Tablespace{Name: blk.Label(0), AltName: altName, Location: location, Owner: owner, Options: options, Comment: comment}, nil
}

func extractGrant(blk *ast.Block, env *eval.Env) (Grant, error) {
	b := blk.Body
	role, err := reqString(b, env, "grant", "role")
	if err != nil {
		return Grant{}, err
	}
	privileges, err := stringList(b, env, "grant", "privileges")
	if err != nil {
		return Grant{}, err
	}
	schema, err := optString(b, env, "grant", "schema")
	if err != nil {
		return Grant{}, err
	}
	table, err := optString(b, env, "grant", "table")
	if err != nil {
		return Grant{}, err
	}
	function, err := optString(b, env, "grant", "function")
	if err != nil {
		return Grant{}, err
	}
	database, err := optString(b, env, "grant", "database")
	if err != nil {
		return Grant{}, err
	}
	sequence, err := optString(b, env, "grant", "sequence")
	if err != nil {
		return Grant{}, err
	}
	return Grant{
		Name: blk.Label(0), Role: role, Privileges: privileges, Schema: schema,
		Table: table, Function: function, Database: database, Sequence: sequence,
	}, nil
}

func extractForeignDataWrapper(blk *ast.Block, env *eval.Env) (ForeignDataWrapper, error) {
	b := blk.Body
	altName, err := optString(b, env, "foreign_data_wrapper", "name")
	if err != nil {
		return ForeignDataWrapper{}, err
	}
	handler, err := optString(b, env, "foreign_data_wrapper", "handler")
	if err != nil {
		return ForeignDataWrapper{}, err
	}
	validator, err := optString(b, env, "foreign_data_wrapper", "validator")
	if err != nil {
		return ForeignDataWrapper{}, err
	}
	options, err := stringList(b, env, "foreign_data_wrapper", "options")
	if err != nil {
		return ForeignDataWrapper{}, err
	}
	comment, err := optString(b, env, "foreign_data_wrapper", "comment")
	if err != nil {
		return ForeignDataWrapper{}, err
	}
	return ForeignDataWrapper{Name: blk.Label(0), AltName: altName, Handler: handler, Validator: validator, Options: options, Comment: comment}, nil
}

func extractForeignServer(blk *ast.Block, env *eval.Env) (ForeignServer, error) {
	b := blk.Body
	altName, err := optString(b, env, "foreign_server", "name")
	if err != nil {
		return ForeignServer{}, err
	}
	wrapper, err := reqString(b, env, "foreign_server", "wrapper")
	if err != nil {
		return ForeignServer{}, err
	}
	typ, err := optString(b, env, "foreign_server", "type")
	if err != nil {
		return ForeignServer{}, err
	}
	version, err := optString(b, env, "foreign_server", "version")
	if err != nil {
		return ForeignServer{}, err
	}
	options, err := stringList(b, env, "foreign_server", "options")
	if err != nil {
		return ForeignServer{}, err
	}
	comment, err := optString(b, env, "foreign_server", "comment")
	if err != nil {
		return ForeignServer{}, err
	}
	return ForeignServer{Name: blk.Label(0), AltName: altName, Wrapper: wrapper, Type: typ, Version: version, Options: options, Comment: comment}, nil
}

func extractForeignTable(blk *ast.Block, env *eval.Env) (ForeignTable, error) {
	b := blk.Body
	altName, err := optString(b, env, "foreign_table", "name")
	if err != nil {
		return ForeignTable{}, err
	}
	schema, err := optString(b, env, "foreign_table", "schema")
	if err != nil {
		return ForeignTable{}, err
	}
	server, err := reqString(b, env, "foreign_table", "server")
	if err != nil {
		return ForeignTable{}, err
	}
	var columns []Column
	for _, cb := range b.BlocksOfType("column") {
		col, err := extractColumn(cb, env)
		if err != nil {
			return ForeignTable{}, err
		}
		columns = append(columns, col)
	}
	options, err := stringList(b, env, "foreign_table", "options")
	if err != nil {
		return ForeignTable{}, err
	}
	comment, err := optString(b, env, "foreign_table", "comment")
	if err != nil {
		return ForeignTable{}, err
	}
	return ForeignTable{Name: blk.Label(0), AltName: altName, Schema: schema, Server: server, Columns: columns, Options: options, Comment: comment}, nil
}

func extractPublication(blk *ast.Block, env *eval.Env) (Publication, error) {
	b := blk.Body
	altName, err := optString(b, env, "publication", "name")
	if err != nil {
		return Publication{}, err
	}
	allTables, err := optBool(b, env, "publication", "all_tables", false)
	if err != nil {
		return Publication{}, err
	}
	var tables []PublicationTable
	for _, tb := range b.BlocksOfType("table") {
		schema, err := optString(tb.Body, env, "publication.table", "schema")
		if err != nil {
			return Publication{}, err
		}
		tables = append(tables, PublicationTable{Schema: schema, Table: tb.Label(0)})
	}
	publish, err := stringList(b, env, "publication", "publish")
	if err != nil {
		return Publication{}, err
	}
	comment, err := optString(b, env, "publication", "comment")
	if err != nil {
		return Publication{}, err
	}
	return Publication{Name: blk.Label(0), AltName: altName, AllTables: allTables, Tables: tables, Publish: publish, Comment: comment}, nil
}

func extractSubscription(blk *ast.Block, env *eval.Env) (Subscription, error) {
	b := blk.Body
	altName, err := optString(b, env, "subscription", "name")
	if err != nil {
		return Subscription{}, err
	}
	connection, err := reqString(b, env, "subscription", "connection")
	if err != nil {
		return Subscription{}, err
	}
	publications, err := stringList(b, env, "subscription", "publications")
	if err != nil {
		return Subscription{}, err
	}
	comment, err := optString(b, env, "subscription", "comment")
	if err != nil {
		return Subscription{}, err
	}
	return Subscription{Name: blk.Label(0), AltName: altName, Connection: connection, Publications: publications, Comment: comment}, nil
}

func extractTextSearchDictionary(blk *ast.Block, env *eval.Env) (TextSearchDictionary, error) {
	b := blk.Body
	altName, err := optString(b, env, "text_search_dictionary", "name")
	if err != nil {
		return TextSearchDictionary{}, err
	}
	schema, err := optString(b, env, "text_search_dictionary", "schema")
	if err != nil {
		return TextSearchDictionary{}, err
	}
	template, err := reqString(b, env, "text_search_dictionary", "template")
	if err != nil {
		return TextSearchDictionary{}, err
	}
	options, err := stringList(b, env, "text_search_dictionary", "options")
	if err != nil {
		return TextSearchDictionary{}, err
	}
	comment, err := optString(b, env, "text_search_dictionary", "comment")
	if err != nil {
		return TextSearchDictionary{}, err
	}
	return TextSearchDictionary{Name: blk.Label(0), AltName: altName, Schema: schema, Template: template, Options: options, Comment: comment}, nil
}

func extractTextSearchConfiguration(blk *ast.Block, env *eval.Env) (TextSearchConfiguration, error) {
	b := blk.Body
	altName, err := optString(b, env, "text_search_configuration", "name")
	if err != nil {
		return TextSearchConfiguration{}, err
	}
	schema, err := optString(b, env, "text_search_configuration", "schema")
	if err != nil {
		return TextSearchConfiguration{}, err
	}
	parser, err := reqString(b, env, "text_search_configuration", "parser")
	if err != nil {
		return TextSearchConfiguration{}, err
	}
	var mappings []TextSearchConfigMapping
	for _, mb := range b.BlocksOfType("mapping") {
		tokens, err := stringList(mb.Body, env, "text_search_configuration.mapping", "tokens")
		if err != nil {
			return TextSearchConfiguration{}, err
		}
		dicts, err := stringList(mb.Body, env, "text_search_configuration.mapping", "dictionaries")
		if err != nil {
			return TextSearchConfiguration{}, err
		}
		mappings = append(mappings, TextSearchConfigMapping{Tokens: tokens, Dictionaries: dicts})
	}
	comment, err := optString(b, env, "text_search_configuration", "comment")
	if err != nil {
		return TextSearchConfiguration{}, err
	}
	return TextSearchConfiguration{Name: blk.Label(0), AltName: altName, Schema: schema, Parser: parser, Mappings: mappings, Comment: comment}, nil
}

func extractTextSearchTemplate(blk *ast.Block, env *eval.Env) (TextSearchTemplate, error) {
	b := blk.Body
	altName, err := optString(b, env, "text_search_template", "name")
	if err != nil {
		return TextSearchTemplate{}, err
	}
	schema, err := optString(b, env, "text_search_template", "schema")
	if err != nil {
		return TextSearchTemplate{}, err
	}
	init, err := optString(b, env, "text_search_template", "init")
	if err != nil {
		return TextSearchTemplate{}, err
	}
	lexize, err := reqString(b, env, "text_search_template", "lexize")
	if err != nil {
		return TextSearchTemplate{}, err
	}
	comment, err := optString(b, env, "text_search_template", "comment")
	if err != nil {
		return TextSearchTemplate{}, err
	}
	return TextSearchTemplate{Name: blk.Label(0), AltName: altName, Schema: schema, Init: init, Lexize: lexize, Comment: comment}, nil
}

func extractTextSearchParser(blk *ast.Block, env *eval.Env) (TextSearchParser, error) {
	b := blk.Body
	altName, err := optString(b, env, "text_search_parser", "name")
	if err != nil {
		return TextSearchParser{}, err
	}
	schema, err := optString(b, env, "text_search_parser", "schema")
	if err != nil {
		return TextSearchParser{}, err
	}
	start, err := reqString(b, env, "text_search_parser", "start")
	if err != nil {
		return TextSearchParser{}, err
	}
	gettoken, err := reqString(b, env, "text_search_parser", "gettoken")
	if err != nil {
		return TextSearchParser{}, err
	}
	end, err := reqString(b, env, "text_search_parser", "end")
	if err != nil {
		return TextSearchParser{}, err
	}
	headline, err := optString(b, env, "text_search_parser", "headline")
	if err != nil {
		return TextSearchParser{}, err
	}
	lextypes, err := reqString(b, env, "text_search_parser", "lextypes")
	if err != nil {
		return TextSearchParser{}, err
	}
	comment, err := optString(b, env, "text_search_parser", "comment")
	if err != nil {
		return TextSearchParser{}, err
	}
	return TextSearchParser{
		Name: blk.Label(0), AltName: altName, Schema: schema, Start: start, GetToken: gettoken,
		End: end, Headline: headline, LexTypes: lextypes, Comment: comment,
	}, nil
}

func extractStatistics(blk *ast.Block, env *eval.Env) (Statistics, error) {
	b := blk.Body
	altName, err := optString(b, env, "statistics", "name")
	if err != nil {
		return Statistics{}, err
	}
	schema, err := optString(b, env, "statistics", "schema")
	if err != nil {
		return Statistics{}, err
	}
	table, err := reqString(b, env, "statistics", "table")
	if err != nil {
		return Statistics{}, err
	}
	columns, err := stringList(b, env, "statistics", "columns")
	if err != nil {
		return Statistics{}, err
	}
	kinds, err := stringList(b, env, "statistics", "kinds")
	if err != nil {
		return Statistics{}, err
	}
	comment, err := optString(b, env, "statistics", "comment")
	if err != nil {
		return Statistics{}, err
	}
	return Statistics{Name: blk.Label(0), AltName: altName, Schema: schema, Table: table, Columns: columns, Kinds: kinds, Comment: comment}, nil
}

func extractStandaloneIndex(blk *ast.Block, env *eval.Env) (StandaloneIndex, error) {
	b := blk.Body
	table, err := reqString(b, env, "index", "table")
	if err != nil {
		return StandaloneIndex{}, err
	}
	schema, err := optString(b, env, "index", "schema")
	if err != nil {
		return StandaloneIndex{}, err
	}
	columns, err := stringList(b, env, "index", "columns")
	if err != nil {
		return StandaloneIndex{}, err
	}
	expressions, err := stringList(b, env, "index", "expressions")
	if err != nil {
		return StandaloneIndex{}, err
	}
	where, err := optString(b, env, "index", "where")
	if err != nil {
		return StandaloneIndex{}, err
	}
	orders, err := stringList(b, env, "index", "orders")
	if err != nil {
		return StandaloneIndex{}, err
	}
	opClasses, err := stringList(b, env, "index", "operator_classes")
	if err != nil {
		return StandaloneIndex{}, err
	}
	unique, err := optBool(b, env, "index", "unique", false)
	if err != nil {
		return StandaloneIndex{}, err
	}
	return StandaloneIndex{
		Name: blk.Label(0), Table: table, Schema: schema, Columns: columns, Expressions: expressions,
		Where: where, Orders: orders, OperatorClasses: opClasses, Unique: unique,
	}, nil
}
