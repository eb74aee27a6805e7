// Package ast defines the syntax tree produced by lang/parser: an
// ordered Body of Attributes and Blocks, and the Expression sum type
// spec.md §3 describes.
package ast

import "github.com/dbschema-go/dbschema/internal/diagnostics"

// Body is an ordered sequence of top-level structures: attributes and
// nested blocks, in source order.
type Body struct {
	Structures []Structure
}

// Attributes returns every Attribute directly in the body, in order.
func (b *Body) Attributes() []*Attribute {
	var out []*Attribute
	for _, s := range b.Structures {
		if a, ok := s.(*Attribute); ok {
			out = append(out, a)
		}
	}
	return out
}

// Blocks returns every Block directly in the body, in order.
func (b *Body) Blocks() []*Block {
	var out []*Block
	for _, s := range b.Structures {
		if blk, ok := s.(*Block); ok {
			out = append(out, blk)
		}
	}
	return out
}

// BlocksOfType returns every Block directly in the body whose
// identifier matches kind, in order.
func (b *Body) BlocksOfType(kind string) []*Block {
	var out []*Block
	for _, blk := range b.Blocks() {
		if blk.Kind == kind {
			out = append(out, blk)
		}
	}
	return out
}

// Attribute looks up a single attribute by name, or returns nil.
func (b *Body) Attribute(name string) *Attribute {
	for _, a := range b.Attributes() {
		if a.Name == name {
			return a
		}
	}
	return nil
}

// Structure is either an *Attribute or a *Block.
type Structure interface {
	structureNode()
	Span() diagnostics.Span
}

// Attribute is a `name = expr` assignment.
type Attribute struct {
	Name  string
	Value Expression
	Sp    diagnostics.Span
}

func (*Attribute) structureNode()                 {}
func (a *Attribute) Span() diagnostics.Span       { return a.Sp }

// Block is a `kind "label" "label" { body }` syntactic unit. ForEach
// and Count, when present, hold the raw attribute expressions; a block
// may carry at most one of them (spec.md §3 invariant), enforced by the
// parser, not this type.
type Block struct {
	Kind    string
	Labels  []string
	Body    *Body
	ForEach Expression
	Count   Expression
	Sp      diagnostics.Span
}

func (*Block) structureNode()           {}
func (b *Block) Span() diagnostics.Span { return b.Sp }

// Label returns the i'th label, or "" if absent.
func (b *Block) Label(i int) string {
	if i < 0 || i >= len(b.Labels) {
		return ""
	}
	return b.Labels[i]
}

// Expression is the syntax-tree sum type for all expression forms
// spec.md §3 lists: literal, identifier reference, template,
// array/object, conditional, for-comprehension, unary/binary operation,
// function call, and traversal.
type Expression interface {
	exprNode()
	Span() diagnostics.Span
}

type StringLit struct {
	Value string
	Sp    diagnostics.Span
}

type NumberLit struct {
	Value float64
	Sp    diagnostics.Span
}

type BoolLit struct {
	Value bool
	Sp    diagnostics.Span
}

type NullLit struct {
	Sp diagnostics.Span
}

// Ident is a bare identifier reference: either a traversal root (var,
// local, locals, each, count, module, data) or sugar for var.<name>
// when bound directly to a declared variable name.
type Ident struct {
	Name string
	Sp   diagnostics.Span
}

// TemplatePart is one element of a Template: either a literal string
// segment or an interpolated expression.
type TemplatePart struct {
	Literal string
	Interp  Expression // nil when this part is a literal segment
}

// Template is a string built from interleaved literal text and
// interpolation expressions.
type Template struct {
	Parts []TemplatePart
	Sp    diagnostics.Span
}

type ArrayExpr struct {
	Elems []Expression
	Sp    diagnostics.Span
}

// ObjectExpr preserves declaration order of its keys.
type ObjectExpr struct {
	Keys   []string
	Values []Expression
	Sp     diagnostics.Span
}

type Conditional struct {
	Cond, Then, Else Expression
	Sp               diagnostics.Span
}

// ForExpr models both comprehension forms: `[for k, v in coll : expr]`
// (IsMap=false) and `{for k, v in coll : key => value ...}` (IsMap=true,
// Group set when the trailing `...` is present).
type ForExpr struct {
	KeyVar     string // "" if the single-variable form `for v in coll` is used
	ValVar     string
	Collection Expression
	KeyExpr    Expression // map form only
	ValueExpr  Expression
	Cond       Expression // filter predicate, nil if absent
	IsMap      bool
	Group      bool
	Sp         diagnostics.Span
}

type UnaryOp int

const (
	UnaryNot UnaryOp = iota
	UnaryNeg
)

type UnaryExpr struct {
	Op UnaryOp
	X  Expression
	Sp diagnostics.Span
}

type BinaryOp int

const (
	BinEq BinaryOp = iota
	BinNotEq
	BinLt
	BinLtEq
	BinGt
	BinGtEq
	BinAnd
	BinOr
)

type BinaryExpr struct {
	Op   BinaryOp
	L, R Expression
	Sp   diagnostics.Span
}

type FuncCall struct {
	Name string
	Args []Expression
	Sp   diagnostics.Span
}

// TraversalOp is one step of a Traversal after its root: attribute
// access (`.name`) or index access (`[expr]`).
type TraversalOp struct {
	Attr  string     // "" when this is an index operator
	Index Expression // nil when this is an attribute operator
}

// Traversal is a root identifier followed by zero or more attribute or
// index operators, e.g. `var.table.columns[0]`.
type Traversal struct {
	Root Ident
	Ops  []TraversalOp
	Sp   diagnostics.Span
}

func (*StringLit) exprNode()   {}
func (*NumberLit) exprNode()   {}
func (*BoolLit) exprNode()     {}
func (*NullLit) exprNode()     {}
func (*Ident) exprNode()       {}
func (*Template) exprNode()    {}
func (*ArrayExpr) exprNode()   {}
func (*ObjectExpr) exprNode()  {}
func (*Conditional) exprNode() {}
func (*ForExpr) exprNode()     {}
func (*UnaryExpr) exprNode()   {}
func (*BinaryExpr) exprNode()  {}
func (*FuncCall) exprNode()    {}
func (*Traversal) exprNode()   {}

func (e *StringLit) Span() diagnostics.Span   { return e.Sp }
func (e *NumberLit) Span() diagnostics.Span   { return e.Sp }
func (e *BoolLit) Span() diagnostics.Span     { return e.Sp }
func (e *NullLit) Span() diagnostics.Span     { return e.Sp }
func (e *Ident) Span() diagnostics.Span       { return e.Sp }
func (e *Template) Span() diagnostics.Span    { return e.Sp }
func (e *ArrayExpr) Span() diagnostics.Span   { return e.Sp }
func (e *ObjectExpr) Span() diagnostics.Span  { return e.Sp }
func (e *Conditional) Span() diagnostics.Span { return e.Sp }
func (e *ForExpr) Span() diagnostics.Span     { return e.Sp }
func (e *UnaryExpr) Span() diagnostics.Span   { return e.Sp }
func (e *BinaryExpr) Span() diagnostics.Span  { return e.Sp }
func (e *FuncCall) Span() diagnostics.Span    { return e.Sp }
func (e *Traversal) Span() diagnostics.Span   { return e.Sp }
