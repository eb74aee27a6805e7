// Package parser builds the lang/ast syntax tree from a token stream,
// grounded on the teacher's hand-rolled recursive-descent parser
// (psl/parsing/ast.Parser), generalized from Prisma's schema grammar to
// this language's HCL-style block/expression grammar.
package parser

import (
	"strconv"

	"github.com/dbschema-go/dbschema/internal/debug"
	"github.com/dbschema-go/dbschema/internal/diagnostics"
	"github.com/dbschema-go/dbschema/lang/ast"
	"github.com/dbschema-go/dbschema/lang/lexer"
	"github.com/dbschema-go/dbschema/lang/token"
)

// Parser consumes a token stream and produces an *ast.Body.
type Parser struct {
	file string
	toks []token.Token
	pos  int
}

// Parse lexes and parses source attributed to file into a syntax tree.
func Parse(file, source string) (*ast.Body, error) {
	toks, err := lexer.New(file, source).Tokenize()
	if err != nil {
		return nil, err
	}
	p := &Parser{file: file, toks: toks}
	body, err := p.parseBody(token.EOF)
	if err != nil {
		return nil, err
	}
	debug.Debug("parsed body", "file", file, "structures", len(body.Structures))
	return body, nil
}

// ParseExpressionString parses source as a single, standalone
// expression (used to recursively parse `${...}` interpolations).
func ParseExpressionString(file, source string) (ast.Expression, error) {
	toks, err := lexer.New(file, source).Tokenize()
	if err != nil {
		return nil, err
	}
	p := &Parser{file: file, toks: toks}
	return p.parseExpression()
}

func (p *Parser) cur() token.Token  { return p.toks[p.pos] }
func (p *Parser) curKind() token.Kind { return p.toks[p.pos].Kind }

func (p *Parser) advance() token.Token {
	t := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *Parser) expect(k token.Kind) (token.Token, error) {
	if p.curKind() != k {
		return token.Token{}, p.errorf("expected %s, got %s %q", k, p.curKind(), p.cur().Value)
	}
	return p.advance(), nil
}

func (p *Parser) span(start token.Token) diagnostics.Span {
	end := p.toks[p.pos]
	return diagnostics.Span{File: p.file, Start: start.Start, End: end.Start, Line: start.Line, Column: start.Column}
}

func (p *Parser) errorf(format string, args ...any) error {
	return diagnostics.Syntax(p.span(p.cur()), format, args...)
}

// parseBody parses structures until the given terminator token kind is
// seen (token.EOF for a whole file, token.RBrace for a nested block).
func (p *Parser) parseBody(terminator token.Kind) (*ast.Body, error) {
	body := &ast.Body{}
	for p.curKind() != terminator {
		if p.curKind() == token.EOF {
			return nil, p.errorf("unexpected end of input, expected %s", terminator)
		}
		structure, err := p.parseStructure()
		if err != nil {
			return nil, err
		}
		body.Structures = append(body.Structures, structure)
	}
	return body, nil
}

// parseStructure parses one Attribute or Block. Both start with an
// identifier; the distinguishing lookahead is whether `=` or a label/`{`
// follows.
func (p *Parser) parseStructure() (ast.Structure, error) {
	if p.curKind() != token.Ident {
		return nil, p.errorf("expected attribute or block, got %s %q", p.curKind(), p.cur().Value)
	}
	start := p.cur()
	name := p.advance().Value

	if p.curKind() == token.Equals {
		p.advance()
		value, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		return &ast.Attribute{Name: name, Value: value, Sp: p.span(start)}, nil
	}

	blk := &ast.Block{Kind: name}
	for p.curKind() == token.String {
		blk.Labels = append(blk.Labels, p.advance().Value)
	}
	if _, err := p.expect(token.LBrace); err != nil {
		return nil, err
	}
	inner, err := p.parseBody(token.RBrace)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RBrace); err != nil {
		return nil, err
	}
	blk.Sp = p.span(start)

	// Pull for_each/count out of the body into dedicated fields: both
	// the evaluator (module iteration) and the extractor (resource
	// iteration) need them before walking the rest of the body, and
	// spec.md §3 forbids a block from carrying both.
	var kept []ast.Structure
	for _, s := range inner.Structures {
		if a, ok := s.(*ast.Attribute); ok {
			switch a.Name {
			case "for_each":
				if blk.ForEach != nil {
					return nil, diagnostics.Structural(a.Sp, name, "duplicate for_each attribute")
				}
				blk.ForEach = a.Value
				continue
			case "count":
				if blk.Count != nil {
					return nil, diagnostics.Structural(a.Sp, name, "duplicate count attribute")
				}
				blk.Count = a.Value
				continue
			}
		}
		kept = append(kept, s)
	}
	inner.Structures = kept
	blk.Body = inner
	if blk.ForEach != nil && blk.Count != nil {
		return nil, diagnostics.Structural(blk.Sp, name, "cannot use both for_each and count on the same block")
	}
	return blk, nil
}

// parseExpression is the conditional-operator entry point. Precedence,
// loosest first: ?:, ||, &&, ==/!=, relational, unary, postfix/primary.
func (p *Parser) parseExpression() (ast.Expression, error) {
	return p.parseConditional()
}

func (p *Parser) parseConditional() (ast.Expression, error) {
	start := p.cur()
	cond, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if p.curKind() != token.Question {
		return cond, nil
	}
	p.advance()
	thenExpr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.Colon); err != nil {
		return nil, err
	}
	elseExpr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return &ast.Conditional{Cond: cond, Then: thenExpr, Else: elseExpr, Sp: p.span(start)}, nil
}

func (p *Parser) parseOr() (ast.Expression, error) {
	start := p.cur()
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.curKind() == token.OrOr {
		p.advance()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpr{Op: ast.BinOr, L: left, R: right, Sp: p.span(start)}
	}
	return left, nil
}

func (p *Parser) parseAnd() (ast.Expression, error) {
	start := p.cur()
	left, err := p.parseEquality()
	if err != nil {
		return nil, err
	}
	for p.curKind() == token.AndAnd {
		p.advance()
		right, err := p.parseEquality()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpr{Op: ast.BinAnd, L: left, R: right, Sp: p.span(start)}
	}
	return left, nil
}

func (p *Parser) parseEquality() (ast.Expression, error) {
	start := p.cur()
	left, err := p.parseRelational()
	if err != nil {
		return nil, err
	}
	for p.curKind() == token.EqEq || p.curKind() == token.NotEq {
		op := ast.BinEq
		if p.curKind() == token.NotEq {
			op = ast.BinNotEq
		}
		p.advance()
		right, err := p.parseRelational()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpr{Op: op, L: left, R: right, Sp: p.span(start)}
	}
	return left, nil
}

var relOps = map[token.Kind]ast.BinaryOp{
	token.Lt: ast.BinLt, token.LtEq: ast.BinLtEq, token.Gt: ast.BinGt, token.GtEq: ast.BinGtEq,
}

func (p *Parser) parseRelational() (ast.Expression, error) {
	start := p.cur()
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := relOps[p.curKind()]
		if !ok {
			break
		}
		p.advance()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpr{Op: op, L: left, R: right, Sp: p.span(start)}
	}
	return left, nil
}

func (p *Parser) parseUnary() (ast.Expression, error) {
	start := p.cur()
	switch p.curKind() {
	case token.Bang:
		p.advance()
		x, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryExpr{Op: ast.UnaryNot, X: x, Sp: p.span(start)}, nil
	case token.Minus:
		p.advance()
		x, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryExpr{Op: ast.UnaryNeg, X: x, Sp: p.span(start)}, nil
	default:
		return p.parsePostfix()
	}
}

func (p *Parser) parsePostfix() (ast.Expression, error) {
	start := p.cur()
	primary, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	root, isIdent := primary.(*ast.Ident)
	if !isIdent {
		return primary, nil
	}
	var ops []ast.TraversalOp
	for {
		switch p.curKind() {
		case token.Dot:
			p.advance()
			name, err := p.expect(token.Ident)
			if err != nil {
				return nil, err
			}
			ops = append(ops, ast.TraversalOp{Attr: name.Value})
		case token.LBracket:
			p.advance()
			idx, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(token.RBracket); err != nil {
				return nil, err
			}
			ops = append(ops, ast.TraversalOp{Index: idx})
		default:
			if len(ops) == 0 {
				return root, nil
			}
			return &ast.Traversal{Root: *root, Ops: ops, Sp: p.span(start)}, nil
		}
	}
}

func (p *Parser) parsePrimary() (ast.Expression, error) {
	start := p.cur()
	switch p.curKind() {
	case token.String:
		raw := p.advance().Value
		return p.buildTemplate(raw, p.span(start))
	case token.Heredoc:
		raw := p.advance().Value
		return p.buildTemplate(raw, p.span(start))
	case token.Number:
		v := p.advance().Value
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, diagnostics.Syntax(p.span(start), "invalid number literal %q", v)
		}
		return &ast.NumberLit{Value: f, Sp: p.span(start)}, nil
	case token.Bool:
		v := p.advance().Value == "true"
		return &ast.BoolLit{Value: v, Sp: p.span(start)}, nil
	case token.Null:
		p.advance()
		return &ast.NullLit{Sp: p.span(start)}, nil
	case token.LParen:
		p.advance()
		inner, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RParen); err != nil {
			return nil, err
		}
		return inner, nil
	case token.LBracket:
		return p.parseArrayOrFor()
	case token.LBrace:
		return p.parseObjectOrFor()
	case token.Ident:
		name := p.advance().Value
		if p.curKind() == token.LParen {
			return p.parseFuncCall(name, start)
		}
		return &ast.Ident{Name: name, Sp: p.span(start)}, nil
	default:
		return nil, p.errorf("unexpected token %s %q in expression", p.curKind(), p.cur().Value)
	}
}

func (p *Parser) parseFuncCall(name string, start token.Token) (ast.Expression, error) {
	p.advance() // (
	var args []ast.Expression
	for p.curKind() != token.RParen {
		arg, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if p.curKind() == token.Comma {
			p.advance()
			continue
		}
		break
	}
	if _, err := p.expect(token.RParen); err != nil {
		return nil, err
	}
	return &ast.FuncCall{Name: name, Args: args, Sp: p.span(start)}, nil
}

func (p *Parser) parseArrayOrFor() (ast.Expression, error) {
	start := p.cur()
	p.advance() // [
	if p.curKind() == token.KwFor {
		return p.parseForExpr(start, token.RBracket, false)
	}
	var elems []ast.Expression
	for p.curKind() != token.RBracket {
		e, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		elems = append(elems, e)
		if p.curKind() == token.Comma {
			p.advance()
			continue
		}
		break
	}
	if _, err := p.expect(token.RBracket); err != nil {
		return nil, err
	}
	return &ast.ArrayExpr{Elems: elems, Sp: p.span(start)}, nil
}

func (p *Parser) parseObjectOrFor() (ast.Expression, error) {
	start := p.cur()
	p.advance() // {
	if p.curKind() == token.KwFor {
		return p.parseForExpr(start, token.RBrace, true)
	}
	obj := &ast.ObjectExpr{}
	for p.curKind() != token.RBrace {
		var key string
		switch p.curKind() {
		case token.Ident:
			key = p.advance().Value
		case token.String:
			raw := p.advance().Value
			s, err := unescape(raw, p.span(start))
			if err != nil {
				return nil, err
			}
			key = s
		default:
			return nil, p.errorf("expected object key, got %s", p.curKind())
		}
		if p.curKind() == token.Equals || p.curKind() == token.Colon {
			p.advance()
		} else {
			return nil, p.errorf("expected '=' or ':' after object key %q", key)
		}
		val, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		obj.Keys = append(obj.Keys, key)
		obj.Values = append(obj.Values, val)
		if p.curKind() == token.Comma {
			p.advance()
			continue
		}
		break
	}
	if _, err := p.expect(token.RBrace); err != nil {
		return nil, err
	}
	obj.Sp = p.span(start)
	return obj, nil
}

// parseForExpr parses the common tail of both comprehension forms,
// having already consumed the opening bracket/brace and confirmed the
// next token is `for`.
func (p *Parser) parseForExpr(start token.Token, terminator token.Kind, isMap bool) (ast.Expression, error) {
	p.advance() // for
	first, err := p.expect(token.Ident)
	if err != nil {
		return nil, err
	}
	fe := &ast.ForExpr{IsMap: isMap}
	if p.curKind() == token.Comma {
		p.advance()
		second, err := p.expect(token.Ident)
		if err != nil {
			return nil, err
		}
		fe.KeyVar = first.Value
		fe.ValVar = second.Value
	} else {
		fe.ValVar = first.Value
	}
	if _, err := p.expect(token.KwIn); err != nil {
		return nil, err
	}
	coll, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	fe.Collection = coll
	if _, err := p.expect(token.Colon); err != nil {
		return nil, err
	}
	if isMap {
		keyExpr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.FatArrow); err != nil {
			return nil, err
		}
		valExpr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		fe.KeyExpr = keyExpr
		fe.ValueExpr = valExpr
		if p.curKind() == token.Ellipsis {
			p.advance()
			fe.Group = true
		}
	} else {
		valExpr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		fe.ValueExpr = valExpr
	}
	if p.curKind() == token.KwIf {
		p.advance()
		cond, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		fe.Cond = cond
	}
	if _, err := p.expect(terminator); err != nil {
		return nil, err
	}
	fe.Sp = p.span(start)
	return fe, nil
}
