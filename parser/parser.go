// Package parser turns a token sequence into a single function item,
// using recursive descent with one-token lookahead and a precedence-
// climbing expression grammar.
package parser

import (
	"fmt"

	"github.com/lumenlang/lumenc/ast"
	"github.com/lumenlang/lumenc/lexer"
	"github.com/lumenlang/lumenc/types"
)

// Parse lexes src and parses exactly one function item from it.
func Parse(src string) (*ast.Node, error) {
	p := &Parser{tokens: tokenize(src)}
	return p.parseFn()
}

// tokenize runs the lexer to completion and drops trivia: the parser
// never sees WHITESPACE or comment tokens.
func tokenize(src string) []lexer.Token {
	l := lexer.New(src)

	var toks []lexer.Token

	for {
		tok := l.NextToken()
		if !tok.Type.IsTrivia() {
			toks = append(toks, tok)
		}

		if tok.Type == lexer.EOF {
			break
		}
	}

	return toks
}

// Parser consumes a pre-lexed, trivia-free token slice.
type Parser struct {
	tokens []lexer.Token
	pos    int
}

func (p *Parser) cur() lexer.Token {
	if p.pos < len(p.tokens) {
		return p.tokens[p.pos]
	}

	return lexer.Token{Type: lexer.EOF}
}

func (p *Parser) advance() lexer.Token {
	tok := p.cur()
	if p.pos < len(p.tokens) {
		p.pos++
	}

	return tok
}

func (p *Parser) expect(tt lexer.TokenType) (lexer.Token, error) {
	if p.cur().Type != tt {
		return lexer.Token{}, p.unexpected(tt.String())
	}

	return p.advance(), nil
}

func (p *Parser) unexpected(expected string) error {
	if p.cur().Type == lexer.EOF {
		return fmt.Errorf("Unexpected end of input, expected %s", expected)
	}

	return fmt.Errorf("Unexpected token, expected %s", expected)
}

// parseFn parses the single top-level item this grammar supports:
//
//	FUNCTION_DEFINITION
//	  : ATTR* 'pub'? 'fn' IDENTIFIER '(' ')' ('->' TYPE)? BLOCK
//	  ;
func (p *Parser) parseFn() (*ast.Node, error) {
	var attrs []ast.Path

	for p.cur().Type == lexer.HASH {
		a, err := p.parseAttr()
		if err != nil {
			return nil, err
		}

		attrs = append(attrs, a...)
	}

	vis := ast.Private

	if p.cur().Type == lexer.PUB {
		p.advance()

		vis = ast.Public
	}

	if _, err := p.expect(lexer.FN); err != nil {
		return nil, err
	}

	name, err := p.expect(lexer.IDENT)
	if err != nil {
		return nil, p.unexpected("identifier")
	}

	if _, err := p.expect(lexer.LPAREN); err != nil {
		return nil, err
	}

	// Parameter parsing is present in the type signature, but the body
	// accepts zero params in this revision.
	if _, err := p.expect(lexer.RPAREN); err != nil {
		return nil, err
	}

	retTy := types.VoidType

	if p.cur().Type == lexer.ARROW {
		p.advance()

		retTy, err = p.parseType()
		if err != nil {
			return nil, err
		}
	}

	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	return &ast.Node{
		Vis:   vis,
		Attrs: attrs,
		Name:  name.Literal,
		Kind: &ast.Fn{
			Sig:  ast.FnSig{Return: retTy},
			Body: body,
		},
	}, nil
}

// parseAttr parses `#` `[` IDENT (',' IDENT)* `]`, returning one Path
// per segment.
func (p *Parser) parseAttr() ([]ast.Path, error) {
	p.advance() // '#'

	if _, err := p.expect(lexer.LBRACKET); err != nil {
		return nil, err
	}

	var paths []ast.Path

	for {
		seg, err := p.expect(lexer.IDENT)
		if err != nil {
			return nil, p.unexpected("identifier")
		}

		paths = append(paths, ast.NewPath(seg.Literal))

		if p.cur().Type != lexer.COMMA {
			break
		}

		p.advance()
	}

	if _, err := p.expect(lexer.RBRACKET); err != nil {
		return nil, err
	}

	return paths, nil
}

// parseType matches one identifier against the closed type set.
func (p *Parser) parseType() (types.Type, error) {
	tok, err := p.expect(lexer.IDENT)
	if err != nil {
		return types.Type{}, p.unexpected("type")
	}

	ty, ok := types.Lookup(tok.Literal)
	if !ok {
		return types.Type{}, fmt.Errorf("Unknown type")
	}

	return ty, nil
}

// parseBlock parses `{` STATEMENTS `}`.
func (p *Parser) parseBlock() (*ast.Block, error) {
	if _, err := p.expect(lexer.LBRACE); err != nil {
		return nil, err
	}

	var stmts []ast.Stmt

	for p.cur().Type != lexer.RBRACE {
		if p.cur().Type == lexer.EOF {
			return nil, p.unexpected("}")
		}

		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}

		stmts = append(stmts, stmt)
	}

	p.advance() // '}'

	return &ast.Block{Stmts: stmts}, nil
}

// parseStatement parses a let-statement, or an expression classified as
// Semi (consumed trailing ';') or a tail Expr.
func (p *Parser) parseStatement() (ast.Stmt, error) {
	if p.cur().Type == lexer.LET {
		return p.parseLet()
	}

	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	if p.cur().Type == lexer.SEMICOLON {
		p.advance()

		return &ast.SemiStmt{Expr: expr}, nil
	}

	return &ast.ExprStmt{Expr: expr}, nil
}

// parseLet parses `let IDENT (':' TYPE)? '=' EXPR ';'`.
func (p *Parser) parseLet() (ast.Stmt, error) {
	p.advance() // 'let'

	name, err := p.expect(lexer.IDENT)
	if err != nil {
		return nil, p.unexpected("identifier")
	}

	var ty *types.Type

	if p.cur().Type == lexer.COLON {
		p.advance()

		t, err := p.parseType()
		if err != nil {
			return nil, err
		}

		ty = &t
	}

	if _, err := p.expect(lexer.ASSIGN); err != nil {
		return nil, err
	}

	init, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(lexer.SEMICOLON); err != nil {
		return nil, err
	}

	return &ast.LetStmt{Name: name.Literal, Ty: ty, Init: init}, nil
}

func (p *Parser) parseExpression() (ast.Expr, error) {
	return p.parseAssignment()
}

// parseAssignment is a reserved level: the grammar defines no statement-
// position assignment expression yet (`=`, `+=`, ...), so it delegates.
func (p *Parser) parseAssignment() (ast.Expr, error) {
	return p.parseEllipsis()

	// =
	// +=
	// -=
}

// parseEllipsis is reserved for range expressions (`..`, `..=`).
func (p *Parser) parseEllipsis() (ast.Expr, error) {
	return p.parseLogicalOr()

	// ..
	// ..=
}

func (p *Parser) parseLogicalOr() (ast.Expr, error) {
	left, err := p.parseLogicalAnd()
	if err != nil {
		return nil, err
	}

	for p.cur().Type == lexer.OR {
		p.advance()

		right, err := p.parseLogicalAnd()
		if err != nil {
			return nil, err
		}

		left = &ast.BinaryExpr{Left: left, Op: ast.OpLogOr, Right: right}
	}

	return left, nil
}

func (p *Parser) parseLogicalAnd() (ast.Expr, error) {
	left, err := p.parseComparison()
	if err != nil {
		return nil, err
	}

	for p.cur().Type == lexer.AND {
		p.advance()

		right, err := p.parseComparison()
		if err != nil {
			return nil, err
		}

		left = &ast.BinaryExpr{Left: left, Op: ast.OpLogAnd, Right: right}
	}

	return left, nil
}

var comparisonOps = map[lexer.TokenType]ast.BinaryOp{
	lexer.EQ: ast.OpEq,
	lexer.NE: ast.OpNe,
	lexer.LT: ast.OpLt,
	lexer.GT: ast.OpGt,
	lexer.LE: ast.OpLe,
	lexer.GE: ast.OpGe,
}

// parseComparison is the grammar's documented non-associative exception:
// chained comparisons without parentheses are rejected rather than
// guessed at (see the open question in the design notes).
func (p *Parser) parseComparison() (ast.Expr, error) {
	left, err := p.parseBitOr()
	if err != nil {
		return nil, err
	}

	op, ok := comparisonOps[p.cur().Type]
	if !ok {
		return left, nil
	}

	p.advance()

	right, err := p.parseBitOr()
	if err != nil {
		return nil, err
	}

	if _, chained := comparisonOps[p.cur().Type]; chained {
		return nil, fmt.Errorf("chained comparison requires parentheses")
	}

	return &ast.BinaryExpr{Left: left, Op: op, Right: right}, nil
}

func (p *Parser) parseBitOr() (ast.Expr, error) {
	left, err := p.parseBitXor()
	if err != nil {
		return nil, err
	}

	for p.cur().Type == lexer.PIPE {
		p.advance()

		right, err := p.parseBitXor()
		if err != nil {
			return nil, err
		}

		left = &ast.BinaryExpr{Left: left, Op: ast.OpBitOr, Right: right}
	}

	return left, nil
}

func (p *Parser) parseBitXor() (ast.Expr, error) {
	left, err := p.parseBitAnd()
	if err != nil {
		return nil, err
	}

	for p.cur().Type == lexer.CARET {
		p.advance()

		right, err := p.parseBitAnd()
		if err != nil {
			return nil, err
		}

		left = &ast.BinaryExpr{Left: left, Op: ast.OpBitXor, Right: right}
	}

	return left, nil
}

func (p *Parser) parseBitAnd() (ast.Expr, error) {
	left, err := p.parseShift()
	if err != nil {
		return nil, err
	}

	for p.cur().Type == lexer.AMP {
		p.advance()

		right, err := p.parseShift()
		if err != nil {
			return nil, err
		}

		left = &ast.BinaryExpr{Left: left, Op: ast.OpBitAnd, Right: right}
	}

	return left, nil
}

func (p *Parser) parseShift() (ast.Expr, error) {
	left, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}

	for {
		var op ast.BinaryOp

		switch p.cur().Type {
		case lexer.SHL:
			op = ast.OpShl
		case lexer.SHR:
			op = ast.OpShr
		default:
			return left, nil
		}

		p.advance()

		right, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}

		left = &ast.BinaryExpr{Left: left, Op: op, Right: right}
	}
}

func (p *Parser) parseAdditive() (ast.Expr, error) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}

	for {
		var op ast.BinaryOp

		switch p.cur().Type {
		case lexer.PLUS:
			op = ast.OpAdd
		case lexer.MINUS:
			op = ast.OpSub
		default:
			return left, nil
		}

		p.advance()

		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}

		left = &ast.BinaryExpr{Left: left, Op: op, Right: right}
	}
}

func (p *Parser) parseMultiplicative() (ast.Expr, error) {
	left, err := p.parseCast()
	if err != nil {
		return nil, err
	}

	for {
		var op ast.BinaryOp

		switch p.cur().Type {
		case lexer.STAR:
			op = ast.OpMul
		case lexer.SLASH:
			op = ast.OpDiv
		case lexer.PERCENT:
			op = ast.OpRem
		default:
			return left, nil
		}

		p.advance()

		right, err := p.parseCast()
		if err != nil {
			return nil, err
		}

		left = &ast.BinaryExpr{Left: left, Op: op, Right: right}
	}
}

// parseCast is reserved for `as TYPE` casts.
func (p *Parser) parseCast() (ast.Expr, error) {
	return p.parseUnary()

	// as
}

// parseUnary handles prefix `-` and `!`. Other prefix forms (`*`, `&`,
// `&mut`) are reserved.
func (p *Parser) parseUnary() (ast.Expr, error) {
	switch p.cur().Type {
	case lexer.MINUS:
		p.advance()

		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}

		return &ast.UnaryExpr{Op: ast.OpNeg, Expr: operand}, nil
	case lexer.BANG:
		p.advance()

		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}

		return &ast.UnaryExpr{Op: ast.OpNot, Expr: operand}, nil
	default:
		return p.parsePostfix()
	}
}

// parsePostfix is reserved for paths, calls, field access, indexing.
func (p *Parser) parsePostfix() (ast.Expr, error) {
	return p.parsePrimary()

	// Paths
	// Method calls
	// Field expressions
	// Function calls
	// Array indexing
}

// parsePrimary parses number literals, identifiers (one-segment Paths),
// parenthesised expressions, `if` expressions, and block expressions.
func (p *Parser) parsePrimary() (ast.Expr, error) {
	tok := p.cur()

	switch tok.Type {
	case lexer.NUMBER:
		p.advance()

		return &ast.LiteralExpr{Literal: ast.Literal{Value: tok.Literal}}, nil
	case lexer.IDENT:
		p.advance()

		return &ast.PathExpr{Path: ast.NewPath(tok.Literal)}, nil
	case lexer.LPAREN:
		p.advance()

		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}

		if _, err := p.expect(lexer.RPAREN); err != nil {
			return nil, err
		}

		return expr, nil
	case lexer.IF:
		return p.parseIf()
	case lexer.LBRACE:
		block, err := p.parseBlock()
		if err != nil {
			return nil, err
		}

		return &ast.BlockExpr{Block: block}, nil
	default:
		return nil, p.unexpected("primary")
	}
}

// parseIf parses `if` EXPR BLOCK (`else` (IF | BLOCK))?.
func (p *Parser) parseIf() (ast.Expr, error) {
	p.advance() // 'if'

	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	then, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	var elseArm ast.Expr

	if p.cur().Type == lexer.ELSE {
		p.advance()

		if p.cur().Type == lexer.IF {
			elseArm, err = p.parseIf()
			if err != nil {
				return nil, err
			}
		} else {
			block, err := p.parseBlock()
			if err != nil {
				return nil, err
			}

			elseArm = &ast.BlockExpr{Block: block}
		}
	}

	return &ast.IfExpr{Cond: cond, Then: then, Else: elseArm}, nil
}
