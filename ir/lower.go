package ir

import "github.com/dbschema-go/dbschema/extract"

// Lower converts an extract.Config into an ir.Config. The conversion is
// mechanical and one-to-one (spec.md §4.D): every AST record becomes
// its IR counterpart field-for-field, in the same order. Back-reference
// inference runs last, once every table exists, so it can resolve
// foreign keys declared anywhere in the graph regardless of
// declaration order.
func Lower(cfg *extract.Config) *Config {
	out := &Config{
		Providers:              make([]Provider, len(cfg.Providers)),
		Functions:              make([]Function, len(cfg.Functions)),
		Procedures:             make([]Procedure, len(cfg.Procedures)),
		Aggregates:             make([]Aggregate, len(cfg.Aggregates)),
		Operators:              make([]Operator, len(cfg.Operators)),
		Triggers:               make([]Trigger, len(cfg.Triggers)),
		Rules:                  make([]Rule, len(cfg.Rules)),
		EventTriggers:          make([]EventTrigger, len(cfg.EventTriggers)),
		Extensions:             make([]Extension, len(cfg.Extensions)),
		Collations:             make([]Collation, len(cfg.Collations)),
		Sequences:              make([]Sequence, len(cfg.Sequences)),
		Schemas:                make([]Schema, len(cfg.Schemas)),
		Enums:                  make([]Enum, len(cfg.Enums)),
		Domains:                make([]Domain, len(cfg.Domains)),
		Types:                  make([]CompositeType, len(cfg.Types)),
		Tables:                 make([]Table, len(cfg.Tables)),
		Indexes:                make([]StandaloneIndex, len(cfg.Indexes)),
		Statistics:             make([]Statistics, len(cfg.Statistics)),
		Views:                  make([]View, len(cfg.Views)),
		Materialized:           make([]MaterializedView, len(cfg.Materialized)),
		Policies:               make([]Policy, len(cfg.Policies)),
		Roles:                  make([]Role, len(cfg.Roles)),
		Tablespaces:            make([]Tablespace, len(cfg.Tablespaces)),
		Grants:                 make([]Grant, len(cfg.Grants)),
		ForeignDataWrappers:    make([]ForeignDataWrapper, len(cfg.ForeignDataWrappers)),
		ForeignServers:         make([]ForeignServer, len(cfg.ForeignServers)),
		ForeignTables:          make([]ForeignTable, len(cfg.ForeignTables)),
		TextSearchDictionaries: make([]TextSearchDictionary, len(cfg.TextSearchDictionaries)),
		TextSearchConfigs:      make([]TextSearchConfiguration, len(cfg.TextSearchConfigs)),
		TextSearchTemplates:    make([]TextSearchTemplate, len(cfg.TextSearchTemplates)),
		TextSearchParsers:      make([]TextSearchParser, len(cfg.TextSearchParsers)),
		Publications:           make([]Publication, len(cfg.Publications)),
		Subscriptions:          make([]Subscription, len(cfg.Subscriptions)),
		Tests:                  make([]Test, len(cfg.Tests)),
	}

	for i, v := range cfg.Providers {
		out.Providers[i] = Provider{ProviderType: v.ProviderType, Version: v.Version}
	}
	for i, v := range cfg.Functions {
		out.Functions[i] = Function{
			Name: v.Name, AltName: v.AltName, Schema: v.Schema, Language: v.Language,
			Parameters: v.Parameters, Returns: v.Returns, Replace: v.Replace, Volatility: v.Volatility,
			Strict: v.Strict, Security: v.Security, Cost: v.Cost, Body: v.Body, Comment: v.Comment,
		}
	}
	for i, v := range cfg.Procedures {
		out.Procedures[i] = Procedure{
			Name: v.Name, AltName: v.AltName, Schema: v.Schema, Language: v.Language,
			Parameters: v.Parameters, Replace: v.Replace, Security: v.Security, Body: v.Body, Comment: v.Comment,
		}
	}
	for i, v := range cfg.Aggregates {
		out.Aggregates[i] = Aggregate{
			Name: v.Name, AltName: v.AltName, Schema: v.Schema, Inputs: v.Inputs, SFunc: v.SFunc,
			SType: v.SType, FinalFunc: v.FinalFunc, InitCond: v.InitCond, Parallel: v.Parallel, Comment: v.Comment,
		}
	}
	for i, v := range cfg.Operators {
		out.Operators[i] = Operator{
			Name: v.Name, AltName: v.AltName, Schema: v.Schema, Left: v.Left, Right: v.Right,
			Procedure: v.Procedure, Commutator: v.Commutator, Negator: v.Negator, Restrict: v.Restrict,
			Join: v.Join, Comment: v.Comment,
		}
	}
	for i, v := range cfg.Triggers {
		out.Triggers[i] = Trigger{
			Name: v.Name, AltName: v.AltName, Schema: v.Schema, Table: v.Table, Timing: v.Timing,
			Events: v.Events, Level: v.Level, Function: v.Function, FunctionSchema: v.FunctionSchema,
			When: v.When, Comment: v.Comment,
		}
	}
	for i, v := range cfg.Rules {
		out.Rules[i] = Rule{
			Name: v.Name, AltName: v.AltName, Schema: v.Schema, Table: v.Table, Event: v.Event,
			Where: v.Where, Instead: v.Instead, Command: v.Command, Comment: v.Comment,
		}
	}
	for i, v := range cfg.EventTriggers {
		out.EventTriggers[i] = EventTrigger{
			Name: v.Name, AltName: v.AltName, Event: v.Event, Tags: v.Tags,
			Function: v.Function, FunctionSchema: v.FunctionSchema, Comment: v.Comment,
		}
	}
	for i, v := range cfg.Extensions {
		out.Extensions[i] = Extension{
			Name: v.Name, AltName: v.AltName, IfNotExists: v.IfNotExists, Schema: v.Schema,
			Version: v.Version, Comment: v.Comment,
		}
	}
	for i, v := range cfg.Collations {
		out.Collations[i] = Collation{
			Name: v.Name, AltName: v.AltName, Schema: v.Schema, IfNotExists: v.IfNotExists, From: v.From,
			Locale: v.Locale, LCCollate: v.LCCollate, LCType: v.LCType, Provider: v.Provider,
			Deterministic: v.Deterministic, Version: v.Version, Comment: v.Comment,
		}
	}
	for i, v := range cfg.Sequences {
		out.Sequences[i] = Sequence{
			Name: v.Name, AltName: v.AltName, Schema: v.Schema, IfNotExists: v.IfNotExists, As: v.As,
			Increment: v.Increment, MinValue: v.MinValue, MaxValue: v.MaxValue, Start: v.Start,
			Cache: v.Cache, Cycle: v.Cycle, OwnedBy: v.OwnedBy, Comment: v.Comment,
		}
	}
	for i, v := range cfg.Schemas {
		out.Schemas[i] = Schema{
			Name: v.Name, AltName: v.AltName, IfNotExists: v.IfNotExists,
			Authorization: v.Authorization, Comment: v.Comment,
		}
	}
	for i, v := range cfg.Enums {
		out.Enums[i] = Enum{Name: v.Name, AltName: v.AltName, Schema: v.Schema, Values: v.Values, Comment: v.Comment}
	}
	for i, v := range cfg.Domains {
		out.Domains[i] = Domain{
			Name: v.Name, AltName: v.AltName, Schema: v.Schema, Type: v.Type, NotNull: v.NotNull,
			Default: v.Default, Constraint: v.Constraint, Check: v.Check, Comment: v.Comment,
		}
	}
	for i, v := range cfg.Types {
		fields := make([]CompositeTypeField, len(v.Fields))
		for j, f := range v.Fields {
			fields[j] = CompositeTypeField{Name: f.Name, Type: f.Type}
		}
		out.Types[i] = CompositeType{Name: v.Name, AltName: v.AltName, Schema: v.Schema, Fields: fields, Comment: v.Comment}
	}
	for i, v := range cfg.Tables {
		out.Tables[i] = lowerTable(v)
	}
	for i, v := range cfg.Indexes {
		out.Indexes[i] = StandaloneIndex{
			Name: v.Name, Table: v.Table, Schema: v.Schema, Columns: v.Columns, Expressions: v.Expressions,
			Where: v.Where, Orders: v.Orders, OperatorClasses: v.OperatorClasses, Unique: v.Unique,
		}
	}
	for i, v := range cfg.Statistics {
		out.Statistics[i] = Statistics{
			Name: v.Name, AltName: v.AltName, Schema: v.Schema, Table: v.Table,
			Columns: v.Columns, Kinds: v.Kinds, Comment: v.Comment,
		}
	}
	for i, v := range cfg.Views {
		out.Views[i] = View{Name: v.Name, AltName: v.AltName, Schema: v.Schema, Replace: v.Replace, SQL: v.SQL, Comment: v.Comment}
	}
	for i, v := range cfg.Materialized {
		out.Materialized[i] = MaterializedView{
			Name: v.Name, AltName: v.AltName, Schema: v.Schema, WithData: v.WithData, SQL: v.SQL, Comment: v.Comment,
		}
	}
	for i, v := range cfg.Policies {
		out.Policies[i] = Policy{
			Name: v.Name, AltName: v.AltName, Schema: v.Schema, Table: v.Table, Command: v.Command,
			As: v.As, Roles: v.Roles, Using: v.Using, Check: v.Check, Comment: v.Comment,
		}
	}
	for i, v := range cfg.Roles {
		out.Roles[i] = Role{
			Name: v.Name, AltName: v.AltName, Login: v.Login, Superuser: v.Superuser, CreateDB: v.CreateDB,
			CreateRole: v.CreateRole, Replication: v.Replication, Password: v.Password, InRole: v.InRole, Comment: v.Comment,
		}
	}
	for i, v := range cfg.Tablespaces {
		out.Tablespaces[i] = Tablespace{Name: v.Name, AltName: v.AltName, Location: v.Location, Owner: v.Owner, Options: v.Options, Comment: v.Comment}
	}
	for i, v := range cfg.Grants {
		out.Grants[i] = Grant{
			Name: v.Name, Role: v.Role, Privileges: v.Privileges, Schema: v.Schema,
			Table: v.Table, Function: v.Function, Database: v.Database, Sequence: v.Sequence,
		}
	}
	for i, v := range cfg.ForeignDataWrappers {
		out.ForeignDataWrappers[i] = ForeignDataWrapper{
			Name: v.Name, AltName: v.AltName, Handler: v.Handler, Validator: v.Validator, Options: v.Options, Comment: v.Comment,
		}
	}
	for i, v := range cfg.ForeignServers {
		out.ForeignServers[i] = ForeignServer{
			Name: v.Name, AltName: v.AltName, Wrapper: v.Wrapper, Type: v.Type, Version: v.Version,
			Options: v.Options, Comment: v.Comment,
		}
	}
	for i, v := range cfg.ForeignTables {
		cols := make([]Column, len(v.Columns))
		for j, c := range v.Columns {
			cols[j] = lowerColumn(c)
		}
		out.ForeignTables[i] = ForeignTable{
			Name: v.Name, AltName: v.AltName, Schema: v.Schema, Server: v.Server,
			Columns: cols, Options: v.Options, Comment: v.Comment,
		}
	}
	for i, v := range cfg.TextSearchDictionaries {
		out.TextSearchDictionaries[i] = TextSearchDictionary{
			Name: v.Name, AltName: v.AltName, Schema: v.Schema, Template: v.Template, Options: v.Options, Comment: v.Comment,
		}
	}
	for i, v := range cfg.TextSearchConfigs {
		mappings := make([]TextSearchConfigMapping, len(v.Mappings))
		for j, m := range v.Mappings {
			mappings[j] = TextSearchConfigMapping{Tokens: m.Tokens, Dictionaries: m.Dictionaries}
		}
		out.TextSearchConfigs[i] = TextSearchConfiguration{
			Name: v.Name, AltName: v.AltName, Schema: v.Schema, Parser: v.Parser, Mappings: mappings, Comment: v.Comment,
		}
	}
	for i, v := range cfg.TextSearchTemplates {
		out.TextSearchTemplates[i] = TextSearchTemplate{
			Name: v.Name, AltName: v.AltName, Schema: v.Schema, Init: v.Init, Lexize: v.Lexize, Comment: v.Comment,
		}
	}
	for i, v := range cfg.TextSearchParsers {
		out.TextSearchParsers[i] = TextSearchParser{
			Name: v.Name, AltName: v.AltName, Schema: v.Schema, Start: v.Start, GetToken: v.GetToken,
			End: v.End, Headline: v.Headline, LexTypes: v.LexTypes, Comment: v.Comment,
		}
	}
	for i, v := range cfg.Publications {
		tables := make([]PublicationTable, len(v.Tables))
		for j, t := range v.Tables {
			tables[j] = PublicationTable{Schema: t.Schema, Table: t.Table}
		}
		out.Publications[i] = Publication{
			Name: v.Name, AltName: v.AltName, AllTables: v.AllTables, Tables: tables, Publish: v.Publish, Comment: v.Comment,
		}
	}
	for i, v := range cfg.Subscriptions {
		out.Subscriptions[i] = Subscription{
			Name: v.Name, AltName: v.AltName, Connection: v.Connection, Publications: v.Publications, Comment: v.Comment,
		}
	}
	for i, v := range cfg.Tests {
		out.Tests[i] = lowerTest(v)
	}

	inferBackReferences(out)
	return out
}

func lowerColumn(v extract.Column) Column {
	return Column{
		Name: v.Name, Type: v.Type, Nullable: v.Nullable, Default: v.Default, DBType: v.DBType,
		LintIgnore: v.LintIgnore, Comment: v.Comment, Count: v.Count,
	}
}

func lowerTable(v extract.Table) Table {
	cols := make([]Column, len(v.Columns))
	for i, c := range v.Columns {
		cols[i] = lowerColumn(c)
	}
	var pk *PrimaryKey
	if v.PrimaryKey != nil {
		pk = &PrimaryKey{Name: v.PrimaryKey.Name, Columns: v.PrimaryKey.Columns}
	}
	indexes := make([]Index, len(v.Indexes))
	for i, ix := range v.Indexes {
		indexes[i] = Index{
			Name: ix.Name, Columns: ix.Columns, Expressions: ix.Expressions, Where: ix.Where,
			Orders: ix.Orders, OperatorClasses: ix.OperatorClasses, Unique: ix.Unique,
		}
	}
	checks := make([]Check, len(v.Checks))
	for i, c := range v.Checks {
		checks[i] = Check{Name: c.Name, Expression: c.Expression}
	}
	fks := make([]ForeignKey, len(v.ForeignKeys))
	for i, fk := range v.ForeignKeys {
		fks[i] = ForeignKey{
			Name: fk.Name, Columns: fk.Columns, RefSchema: fk.RefSchema, RefTable: fk.RefTable,
			RefColumns: fk.RefColumns, OnDelete: fk.OnDelete, OnUpdate: fk.OnUpdate,
			BackReferenceName: fk.BackReferenceName,
		}
	}
	var partitionBy *PartitionBy
	if v.PartitionBy != nil {
		partitionBy = &PartitionBy{Strategy: v.PartitionBy.Strategy, Columns: v.PartitionBy.Columns}
	}
	partitions := make([]Partition, len(v.Partitions))
	for i, p := range v.Partitions {
		partitions[i] = Partition{Name: p.Name, Values: p.Values}
	}
	return Table{
		Name: v.Name, AltName: v.AltName, Schema: v.Schema, IfNotExists: v.IfNotExists,
		Columns: cols, PrimaryKey: pk, Indexes: indexes, Checks: checks, ForeignKeys: fks,
		PartitionBy: partitionBy, Partitions: partitions, LintIgnore: v.LintIgnore,
		Comment: v.Comment, Map: v.Map,
	}
}

func lowerTest(v extract.Test) Test {
	notifies := make([]NotifyAssert, len(v.AssertNotify))
	for i, n := range v.AssertNotify {
		notifies[i] = NotifyAssert{Channel: n.Channel, PayloadContains: n.PayloadContains}
	}
	eqs := make([]EqAssert, len(v.AssertEq))
	for i, e := range v.AssertEq {
		eqs[i] = EqAssert{Query: e.Query, Expected: e.Expected}
	}
	errs := make([]ErrorAssert, len(v.AssertError))
	for i, e := range v.AssertError {
		errs[i] = ErrorAssert{SQL: e.SQL, MessageContains: e.MessageContains}
	}
	snapshots := make([]SnapshotAssert, len(v.AssertSnapshot))
	for i, s := range v.AssertSnapshot {
		rows := make([][]string, len(s.Rows))
		copy(rows, s.Rows)
		snapshots[i] = SnapshotAssert{Query: s.Query, Rows: rows}
	}
	return Test{
		Name: v.Name, Setup: v.Setup, Asserts: v.Asserts, AssertFail: v.AssertFail,
		AssertNotify: notifies, AssertEq: eqs, AssertError: errs, AssertSnapshot: snapshots, Teardown: v.Teardown,
	}
}

// inferBackReferences appends one BackReference to every table T for
// each foreign key declared by some other table U pointing at T,
// matched by T's declared name or alt_name (spec.md §4.D, §9). This
// runs as a second pass over the fully lowered table list so it sees
// every foreign key regardless of declaration order, and it only ever
// appends to a stored, name-keyed slice -- never a pointer back to U --
// so two tables referencing each other can't form a reference cycle in
// memory.
func inferBackReferences(cfg *Config) {
	tables := cfg.Tables
	for i := range cfg.Tables {
		target := &cfg.Tables[i]
		for _, other := range tables {
			for _, fk := range other.ForeignKeys {
				matchesName := fk.RefTable == target.Name
				matchesAlt := target.AltName != nil && fk.RefTable == *target.AltName
				if !matchesName && !matchesAlt {
					continue
				}
				var name string
				if fk.BackReferenceName != nil && *fk.BackReferenceName != "" {
					name = *fk.BackReferenceName
				} else {
					name = lowerASCII(other.Name) + "s"
				}
				refTable := other.Name
				if other.AltName != nil && *other.AltName != "" {
					refTable = *other.AltName
				}
				target.BackReferences = append(target.BackReferences, BackReference{Name: name, Table: refTable})
			}
		}
	}
}

func lowerASCII(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}
