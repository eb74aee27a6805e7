package postgres

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dbschema-go/dbschema/ir"
)

func emitFunction(w *strings.Builder, f ir.Function) {
	schema := ir.EffectiveSchema(f.Schema)
	name := ir.EffectiveName(f.Name, f.AltName)
	orReplace := ""
	if f.Replace {
		orReplace = "OR REPLACE "
	}
	fmt.Fprintf(w, "CREATE %sFUNCTION %s(%s) RETURNS %s LANGUAGE %s",
		orReplace, qualify(schema, name), strings.Join(f.Parameters, ", "), f.Returns, strings.ToLower(f.Language))
	if f.Volatility != nil {
		fmt.Fprintf(w, " %s", strings.ToUpper(*f.Volatility))
	}
	if f.Strict {
		w.WriteString(" STRICT")
	}
	if f.Security != nil && strings.EqualFold(*f.Security, "definer") {
		w.WriteString(" SECURITY DEFINER")
	}
	if f.Cost != nil {
		fmt.Fprintf(w, " COST %s", strconv.FormatFloat(*f.Cost, 'g', -1, 64))
	}
	fmt.Fprintf(w, " AS $$\n%s\n$$;\n\n", f.Body)
}

func emitProcedure(w *strings.Builder, p ir.Procedure) {
	schema := ir.EffectiveSchema(p.Schema)
	name := ir.EffectiveName(p.Name, p.AltName)
	orReplace := ""
	if p.Replace {
		orReplace = "OR REPLACE "
	}
	fmt.Fprintf(w, "CREATE %sPROCEDURE %s(%s) LANGUAGE %s",
		orReplace, qualify(schema, name), strings.Join(p.Parameters, ", "), strings.ToLower(p.Language))
	if p.Security != nil && strings.EqualFold(*p.Security, "definer") {
		w.WriteString(" SECURITY DEFINER")
	}
	fmt.Fprintf(w, " AS $$\n%s\n$$;\n\n", p.Body)
}

func emitAggregate(w *strings.Builder, a ir.Aggregate) {
	schema := ir.EffectiveSchema(a.Schema)
	name := ir.EffectiveName(a.Name, a.AltName)
	var parts []string
	parts = append(parts, "SFUNC = "+a.SFunc, "STYPE = "+a.SType)
	if a.FinalFunc != nil {
		parts = append(parts, "FINALFUNC = "+*a.FinalFunc)
	}
	if a.InitCond != nil {
		parts = append(parts, "INITCOND = "+literal(*a.InitCond))
	}
	if a.Parallel != nil {
		parts = append(parts, "PARALLEL = "+strings.ToUpper(*a.Parallel))
	}
	fmt.Fprintf(w, "CREATE AGGREGATE %s(%s) (\n    %s\n);\n\n",
		qualify(schema, name), strings.Join(a.Inputs, ", "), strings.Join(parts, ",\n    "))
}

func emitOperator(w *strings.Builder, o ir.Operator) {
	schema := ir.EffectiveSchema(o.Schema)
	name := ir.EffectiveName(o.Name, o.AltName)
	var parts []string
	parts = append(parts, "PROCEDURE = "+o.Procedure)
	if o.Left != nil {
		parts = append(parts, "LEFTARG = "+*o.Left)
	}
	if o.Right != nil {
		parts = append(parts, "RIGHTARG = "+*o.Right)
	}
	if o.Commutator != nil {
		parts = append(parts, "COMMUTATOR = "+*o.Commutator)
	}
	if o.Negator != nil {
		parts = append(parts, "NEGATOR = "+*o.Negator)
	}
	if o.Restrict != nil {
		parts = append(parts, "RESTRICT = "+*o.Restrict)
	}
	if o.Join != nil {
		parts = append(parts, "JOIN = "+*o.Join)
	}
	fmt.Fprintf(w, "CREATE OPERATOR %s.%s (\n    %s\n);\n\n", ident(schema), name, strings.Join(parts, ",\n    "))
}

// operatorComment renders the OPERATOR(...) syntax COMMENT ON OPERATOR
// requires, since operator names are symbols (+, =, @>, ...) rather
// than identifiers and must never be quoted like one.
func operatorComment(w *strings.Builder, schema, name, left, right, comment string) {
	fmt.Fprintf(w, "COMMENT ON OPERATOR OPERATOR(%s.%s) (%s, %s) IS %s;\n\n",
		ident(schema), name, left, right, literal(comment))
}
