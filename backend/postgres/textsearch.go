package postgres

import (
	"fmt"
	"strings"

	"github.com/dbschema-go/dbschema/ir"
)

func emitTextSearchDictionary(w *strings.Builder, d ir.TextSearchDictionary) {
	schema := ir.EffectiveSchema(d.Schema)
	name := ir.EffectiveName(d.Name, d.AltName)
	fmt.Fprintf(w, "CREATE TEXT SEARCH DICTIONARY %s (\n    TEMPLATE = %s", qualify(schema, name), d.Template)
	for _, o := range d.Options {
		fmt.Fprintf(w, ",\n    %s", o)
	}
	w.WriteString("\n);\n\n")
}

func emitTextSearchTemplate(w *strings.Builder, t ir.TextSearchTemplate) {
	schema := ir.EffectiveSchema(t.Schema)
	name := ir.EffectiveName(t.Name, t.AltName)
	fmt.Fprintf(w, "CREATE TEXT SEARCH TEMPLATE %s (\n", qualify(schema, name))
	if t.Init != nil {
		fmt.Fprintf(w, "    INIT = %s,\n", *t.Init)
	}
	fmt.Fprintf(w, "    LEXIZE = %s\n);\n\n", t.Lexize)
}

func emitTextSearchParser(w *strings.Builder, p ir.TextSearchParser) {
	schema := ir.EffectiveSchema(p.Schema)
	name := ir.EffectiveName(p.Name, p.AltName)
	fmt.Fprintf(w, "CREATE TEXT SEARCH PARSER %s (\n", qualify(schema, name))
	fmt.Fprintf(w, "    START = %s,\n", p.Start)
	fmt.Fprintf(w, "    GETTOKEN = %s,\n", p.GetToken)
	fmt.Fprintf(w, "    END = %s,\n", p.End)
	if p.Headline != nil {
		fmt.Fprintf(w, "    HEADLINE = %s,\n", *p.Headline)
	}
	fmt.Fprintf(w, "    LEXTYPES = %s\n);\n\n", p.LexTypes)
}

func emitTextSearchConfiguration(w *strings.Builder, c ir.TextSearchConfiguration) {
	schema := ir.EffectiveSchema(c.Schema)
	name := ir.EffectiveName(c.Name, c.AltName)
	fmt.Fprintf(w, "CREATE TEXT SEARCH CONFIGURATION %s (\n    PARSER = %s\n);\n\n", qualify(schema, name), c.Parser)
	for _, m := range c.Mappings {
		dicts := strings.Join(m.Dictionaries, ", ")
		fmt.Fprintf(w, "ALTER TEXT SEARCH CONFIGURATION %s\n    ADD MAPPING FOR %s WITH %s;\n\n",
			qualify(schema, name), strings.Join(m.Tokens, ", "), dicts)
	}
}
