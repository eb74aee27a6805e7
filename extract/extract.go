package extract

import (
	"github.com/dbschema-go/dbschema/eval"
	"github.com/dbschema-go/dbschema/internal/diagnostics"
	"github.com/dbschema-go/dbschema/lang/ast"
)

// ExtractAll walks a root LoadedFile and every submodule it transitively
// loaded (eval.LoadedFile.Submodules, already flattened depth-first in
// load order by the evaluator), extracting each file's remaining body
// into one combined Config. Extraction order within a file does not
// matter (spec.md §4.C); extraction order across files follows the
// module graph in load order, which Submodules already encodes.
func ExtractAll(root *eval.LoadedFile) (*Config, error) {
	cfg := &Config{}
	if err := Extract(root.Body, root.Env, cfg); err != nil {
		return nil, err
	}
	for _, sub := range root.Submodules {
		if err := Extract(sub.Body, sub.Env, cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// Extract walks one file's body (module/variable/locals/output already
// consumed by eval.LoadFile) and appends every resource it finds to cfg.
// A block carrying for_each/count is expanded first: the extractor is
// invoked once per iteration against an environment extended with
// each/count.index (spec.md §4.C). dynamic blocks are expanded before
// any of this, since they are a pure syntax-tree rewrite (spec.md §4.B).
func Extract(body *ast.Body, env *eval.Env, cfg *Config) error {
	expanded, err := eval.ExpandDynamicBlocks(body, env)
	if err != nil {
		return err
	}
	for _, s := range expanded.Structures {
		blk, ok := s.(*ast.Block)
		if !ok {
			continue
		}
		if err := extractBlock(blk, env, cfg); err != nil {
			return err
		}
	}
	return nil
}

func extractBlock(blk *ast.Block, env *eval.Env, cfg *Config) error {
	return iterate(blk, env, func(b *ast.Block, e *eval.Env) error {
		return dispatch(b, e, cfg)
	})
}

// iterate expands a block's for_each/count (spec.md §4.C: "for a block
// carrying for_each or count, the extractor is invoked once per
// iteration with an environment extended with each or count.index"),
// calling fn once per resulting instance. This is the single mechanism
// behind both top-level resource repetition and the preserved column
// `count` expansion bug (extractColumn relies on fn being called with
// an environment whose count.index varies but whose block body/labels
// never do, so the resulting columns share one name verbatim).
func iterate(blk *ast.Block, env *eval.Env, fn func(*ast.Block, *eval.Env) error) error {
	switch {
	case blk.ForEach != nil && blk.Count != nil:
		return diagnostics.Structural(blk.Sp, blk.Kind, "cannot use both for_each and count on the same block")
	case blk.ForEach != nil:
		collection, err := eval.Eval(blk.ForEach, env)
		if err != nil {
			return err
		}
		switch collection.Kind {
		case eval.KindArray:
			for _, v := range collection.Arr {
				if err := fn(blk, env.WithEach(nil, v)); err != nil {
					return err
				}
			}
		case eval.KindObject:
			for _, k := range eval.SortedKeys(collection) {
				v, _ := collection.Get(k)
				keyVal := eval.String(k)
				if err := fn(blk, env.WithEach(&keyVal, v)); err != nil {
					return err
				}
			}
		default:
			return diagnostics.TypeMismatch(blk.ForEach.Span(), blk.Kind+" for_each", "array or object", collection.Kind.String())
		}
		return nil
	case blk.Count != nil:
		countVal, err := eval.Eval(blk.Count, env)
		if err != nil {
			return err
		}
		n, err := countVal.AsNumber()
		if err != nil {
			return diagnostics.TypeMismatch(blk.Count.Span(), blk.Kind+" count", "number", countVal.Kind.String())
		}
		for i := 0; i < int(n); i++ {
			if err := fn(blk, env.WithCount(i)); err != nil {
				return err
			}
		}
		return nil
	default:
		return fn(blk, env)
	}
}

// dispatch is the closed switch over every resource kind this language
// supports, one extractor function per kind, mirroring
// psl/parsing/ast/parser.go's per-block-type parse-function layout.
func dispatch(blk *ast.Block, env *eval.Env, cfg *Config) error {
	switch blk.Kind {
	case "provider":
		v, err := extractProvider(blk, env)
		if err != nil {
			return err
		}
		cfg.Providers = append(cfg.Providers, v)
	case "function":
		v, err := extractFunction(blk, env)
		if err != nil {
			return err
		}
		cfg.Functions = append(cfg.Functions, v)
	case "procedure":
		v, err := extractProcedure(blk, env)
		if err != nil {
			return err
		}
		cfg.Procedures = append(cfg.Procedures, v)
	case "aggregate":
		v, err := extractAggregate(blk, env)
		if err != nil {
			return err
		}
		cfg.Aggregates = append(cfg.Aggregates, v)
	case "operator":
		v, err := extractOperator(blk, env)
		if err != nil {
			return err
		}
		cfg.Operators = append(cfg.Operators, v)
	case "trigger":
		v, err := extractTrigger(blk, env)
		if err != nil {
			return err
		}
		cfg.Triggers = append(cfg.Triggers, v)
	case "rule":
		v, err := extractRule(blk, env)
		if err != nil {
			return err
		}
		cfg.Rules = append(cfg.Rules, v)
	case "event_trigger":
		v, err := extractEventTrigger(blk, env)
		if err != nil {
			return err
		}
		cfg.EventTriggers = append(cfg.EventTriggers, v)
	case "extension":
		v, err := extractExtension(blk, env)
		if err != nil {
			return err
		}
		cfg.Extensions = append(cfg.Extensions, v)
	case "collation":
		v, err := extractCollation(blk, env)
		if err != nil {
			return err
		}
		cfg.Collations = append(cfg.Collations, v)
	case "sequence":
		v, err := extractSequence(blk, env)
		if err != nil {
			return err
		}
		cfg.Sequences = append(cfg.Sequences, v)
	case "schema":
		v, err := extractSchema(blk, env)
		if err != nil {
			return err
		}
		cfg.Schemas = append(cfg.Schemas, v)
	case "enum":
		v, err := extractEnum(blk, env)
		if err != nil {
			return err
		}
		cfg.Enums = append(cfg.Enums, v)
	case "domain":
		v, err := extractDomain(blk, env)
		if err != nil {
			return err
		}
		cfg.Domains = append(cfg.Domains, v)
	case "type":
		v, err := extractCompositeType(blk, env)
		if err != nil {
			return err
		}
		cfg.Types = append(cfg.Types, v)
	case "table":
		v, err := extractTable(blk, env)
		if err != nil {
			return err
		}
		cfg.Tables = append(cfg.Tables, v)
	case "index":
		v, err := extractStandaloneIndex(blk, env)
		if err != nil {
			return err
		}
		cfg.Indexes = append(cfg.Indexes, v)
	case "statistics":
		v, err := extractStatistics(blk, env)
		if err != nil {
			return err
		}
		cfg.Statistics = append(cfg.Statistics, v)
	case "view":
		v, err := extractView(blk, env)
		if err != nil {
			return err
		}
		cfg.Views = append(cfg.Views, v)
	case "materialized":
		v, err := extractMaterializedView(blk, env)
		if err != nil {
			return err
		}
		cfg.Materialized = append(cfg.Materialized, v)
	case "policy":
		v, err := extractPolicy(blk, env)
		if err != nil {
			return err
		}
		cfg.Policies = append(cfg.Policies, v)
	case "role":
		v, err := extractRole(blk, env)
		if err != nil {
			return err
		}
		cfg.Roles = append(cfg.Roles, v)
	case "tablespace":
		v, err := extractTablespace(blk, env)
		if err != nil {
			return err
		}
		cfg.Tablespaces = append(cfg.Tablespaces, v)
	case "grant":
		v, err := extractGrant(blk, env)
		if err != nil {
			return err
		}
		cfg.Grants = append(cfg.Grants, v)
	case "foreign_data_wrapper":
		v, err := extractForeignDataWrapper(blk, env)
		if err != nil {
			return err
		}
		cfg.ForeignDataWrappers = append(cfg.ForeignDataWrappers, v)
	case "foreign_server":
		v, err := extractForeignServer(blk, env)
		if err != nil {
			return err
		}
		cfg.ForeignServers = append(cfg.ForeignServers, v)
	case "foreign_table":
		v, err := extractForeignTable(blk, env)
		if err != nil {
			return err
		}
		cfg.ForeignTables = append(cfg.ForeignTables, v)
	case "text_search_dictionary":
		v, err := extractTextSearchDictionary(blk, env)
		if err != nil {
			return err
		}
		cfg.TextSearchDictionaries = append(cfg.TextSearchDictionaries, v)
	case "text_search_configuration":
		v, err := extractTextSearchConfiguration(blk, env)
		if err != nil {
			return err
		}
		cfg.TextSearchConfigs = append(cfg.TextSearchConfigs, v)
	case "text_search_template":
		v, err := extractTextSearchTemplate(blk, env)
		if err != nil {
			return err
		}
		cfg.TextSearchTemplates = append(cfg.TextSearchTemplates, v)
	case "text_search_parser":
		v, err := extractTextSearchParser(blk, env)
		if err != nil {
			return err
		}
		cfg.TextSearchParsers = append(cfg.TextSearchParsers, v)
	case "publication":
		v, err := extractPublication(blk, env)
		if err != nil {
			return err
		}
		cfg.Publications = append(cfg.Publications, v)
	case "subscription":
		v, err := extractSubscription(blk, env)
		if err != nil {
			return err
		}
		cfg.Subscriptions = append(cfg.Subscriptions, v)
	case "test":
		v, err := extractTest(blk, env)
		if err != nil {
			return err
		}
		cfg.Tests = append(cfg.Tests, v)
	default:
		return diagnostics.Structural(blk.Sp, blk.Kind, "unknown top-level block kind %q", blk.Kind)
	}
	return nil
}
