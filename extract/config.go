// Package extract walks a loaded file's remaining body (after eval has
// consumed variable/locals/module/output declarations) and populates a
// typed AstConfig: one record per declared resource, across the closed
// set of kinds this language supports. Grounded on
// psl/parsing/ast/parser.go's per-block-type parse-function layout,
// generalized from Prisma's five top-level kinds (model/enum/type/
// generator/datasource) to this spec's much larger resource catalog, and
// on original_source/src/ir/config.rs for the exact field set each kind
// carries (the extractor's records and the IR's records share identical
// field semantics, per spec.md §4.D's "mechanical one-to-one" lowering).
package extract

// Config is the growing AstConfig spec.md §4.C describes: one ordered
// slice per resource kind, populated by Extract in file-then-module-
// graph-load order.
type Config struct {
	Providers               []Provider
	Functions               []Function
	Procedures              []Procedure
	Aggregates              []Aggregate
	Operators               []Operator
	Triggers                []Trigger
	Rules                   []Rule
	EventTriggers           []EventTrigger
	Extensions              []Extension
	Collations              []Collation
	Sequences               []Sequence
	Schemas                 []Schema
	Enums                   []Enum
	Domains                 []Domain
	Types                   []CompositeType
	Tables                  []Table
	Indexes                 []StandaloneIndex
	Statistics              []Statistics
	Views                   []View
	Materialized            []MaterializedView
	Policies                []Policy
	Roles                   []Role
	Tablespaces             []Tablespace
	Grants                  []Grant
	ForeignDataWrappers     []ForeignDataWrapper
	ForeignServers          []ForeignServer
	ForeignTables           []ForeignTable
	TextSearchDictionaries  []TextSearchDictionary
	TextSearchConfigs       []TextSearchConfiguration
	TextSearchTemplates     []TextSearchTemplate
	TextSearchParsers       []TextSearchParser
	Publications            []Publication
	Subscriptions           []Subscription
	Tests                   []Test
}

type Provider struct {
	ProviderType string
	Version      *string
}

type Function struct {
	Name       string
	AltName    *string
	Schema     *string
	Language   string
	Parameters []string
	Returns    string
	Replace    bool
	Volatility *string
	Strict     bool
	Security   *string
	Cost       *float64
	Body       string
	Comment    *string
}

type Procedure struct {
	Name       string
	AltName    *string
	Schema     *string
	Language   string
	Parameters []string
	Replace    bool
	Security   *string
	Body       string
	Comment    *string
}

type Aggregate struct {
	Name       string
	AltName    *string
	Schema     *string
	Inputs     []string
	SFunc      string
	SType      string
	FinalFunc  *string
	InitCond   *string
	Parallel   *string
	Comment    *string
}

type Operator struct {
	Name      string
	AltName   *string
	Schema    *string
	Left      *string
	Right     *string
	Procedure string
	Commutator *string
	Negator    *string
	Restrict   *string
	Join       *string
	Comment    *string
}

type Trigger struct {
	Name           string
	AltName        *string
	Schema         *string
	Table          string
	Timing         string
	Events         []string
	Level          string
	Function       string
	FunctionSchema *string
	When           *string
	Comment        *string
}

type Rule struct {
	Name    string
	AltName *string
	Schema  *string
	Table   string
	Event   string
	Where   *string
	Instead bool
	Command string
	Comment *string
}

type EventTrigger struct {
	Name           string
	AltName        *string
	Event          string
	Tags           []string
	Function       string
	FunctionSchema *string
	Comment        *string
}

type Extension struct {
	Name        string
	AltName     *string
	IfNotExists bool
	Schema      *string
	Version     *string
	Comment     *string
}

type Collation struct {
	Name          string
	AltName       *string
	Schema        *string
	IfNotExists   bool
	From          *string
	Locale        *string
	LCCollate     *string
	LCType        *string
	Provider      *string
	Deterministic *bool
	Version       *string
	Comment       *string
}

type Sequence struct {
	Name        string
	AltName     *string
	Schema      *string
	IfNotExists bool
	As          *string
	Increment   *int64
	MinValue    *int64
	MaxValue    *int64
	Start       *int64
	Cache       *int64
	Cycle       bool
	OwnedBy     *string
	Comment     *string
}

type Schema struct {
	Name          string
	AltName       *string
	IfNotExists   bool
	Authorization *string
	Comment       *string
}

type Enum struct {
	Name    string
	AltName *string
	Schema  *string
	Values  []string
	Comment *string
}

type Domain struct {
	Name       string
	AltName    *string
	Schema     *string
	Type       string
	NotNull    bool
	Default    *string
	Constraint *string
	Check      *string
	Comment    *string
}

type CompositeTypeField struct {
	Name string
	Type string
}

type CompositeType struct {
	Name    string
	AltName *string
	Schema  *string
	Fields  []CompositeTypeField
	Comment *string
}

type View struct {
	Name    string
	AltName *string
	Schema  *string
	Replace bool
	SQL     string
	Comment *string
}

type MaterializedView struct {
	Name     string
	AltName  *string
	Schema   *string
	WithData bool
	SQL      string
	Comment  *string
}

type Policy struct {
	Name    string
	AltName *string
	Schema  *string
	Table   string
	Command string
	As      *string
	Roles   []string
	Using   *string
	Check   *string
	Comment *string
}

type Role struct {
	Name        string
	AltName     *string
	Login       bool
	Superuser   bool
	CreateDB    bool
	CreateRole  bool
	Replication bool
	Password    *string
	InRole      []string
	Comment     *string
}

type Tablespace struct {
	Name     string
	AltName  *string
	Location string
	Owner    *string
	Options  []string
	Comment  *string
}

type Grant struct {
	Name       string
	Role       string
	Privileges []string
	Schema     *string
	Table      *string
	Function   *string
	Database   *string
	Sequence   *string
}

type ForeignDataWrapper struct {
	Name      string
	AltName   *string
	Handler   *string
	Validator *string
	Options   []string
	Comment   *string
}

type ForeignServer struct {
	Name    string
	AltName *string
	Wrapper string
	Type    *string
	Version *string
	Options []string
	Comment *string
}

type ForeignTable struct {
	Name    string
	AltName *string
	Schema  *string
	Server  string
	Columns []Column
	Options []string
	Comment *string
}

type PublicationTable struct {
	Schema *string
	Table  string
}

type Publication struct {
	Name      string
	AltName   *string
	AllTables bool
	Tables    []PublicationTable
	Publish   []string
	Comment   *string
}

type Subscription struct {
	Name         string
	AltName      *string
	Connection   string
	Publications []string
	Comment      *string
}

type TextSearchDictionary struct {
	Name    string
	AltName *string
	Schema  *string
	Template string
	Options []string
	Comment *string
}

type TextSearchConfigMapping struct {
	Tokens        []string
	Dictionaries  []string
}

type TextSearchConfiguration struct {
	Name     string
	AltName  *string
	Schema   *string
	Parser   string
	Mappings []TextSearchConfigMapping
	Comment  *string
}

type TextSearchTemplate struct {
	Name    string
	AltName *string
	Schema  *string
	Init    *string
	Lexize  string
	Comment *string
}

type TextSearchParser struct {
	Name      string
	AltName   *string
	Schema    *string
	Start     string
	GetToken  string
	End       string
	Headline  *string
	LexTypes  string
	Comment   *string
}

type Column struct {
	Name       string
	Type       string
	Nullable   bool
	Default    *string
	DBType     *string
	LintIgnore []string
	Comment    *string
	Count      int
}

type PrimaryKey struct {
	Name    *string
	Columns []string
}

type Check struct {
	Name       *string
	Expression string
}

type Index struct {
	Name             *string
	Columns          []string
	Expressions      []string
	Where            *string
	Orders           []string
	OperatorClasses  []string
	Unique           bool
}

type ForeignKey struct {
	Name              *string
	Columns           []string
	RefSchema         *string
	RefTable          string
	RefColumns        []string
	OnDelete          *string
	OnUpdate          *string
	BackReferenceName *string
}

type PartitionBy struct {
	Strategy string
	Columns  []string
}

type Partition struct {
	Name   string
	Values string
}

type Table struct {
	Name        string
	AltName     *string
	Schema      *string
	IfNotExists bool
	Columns     []Column
	PrimaryKey  *PrimaryKey
	Indexes     []Index
	Checks      []Check
	ForeignKeys []ForeignKey
	PartitionBy *PartitionBy
	Partitions  []Partition
	LintIgnore  []string
	Comment     *string
	Map         *string
}

type StandaloneIndex struct {
	Name            string
	Table           string
	Schema          *string
	Columns         []string
	Expressions     []string
	Where           *string
	Orders          []string
	OperatorClasses []string
	Unique          bool
}

type Statistics struct {
	Name    string
	AltName *string
	Schema  *string
	Table   string
	Columns []string
	Kinds   []string
	Comment *string
}

type NotifyAssert struct {
	Channel         string
	PayloadContains *string
}

type EqAssert struct {
	Query    string
	Expected string
}

type ErrorAssert struct {
	SQL             string
	MessageContains string
}

type SnapshotAssert struct {
	Query string
	Rows  [][]string
}

type Test struct {
	Name          string
	Setup         []string
	Asserts       []string
	AssertFail    []string
	AssertNotify  []NotifyAssert
	AssertEq      []EqAssert
	AssertError   []ErrorAssert
	AssertSnapshot []SnapshotAssert
	Teardown      []string
}
