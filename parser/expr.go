package parser

import (
	"strings"

	"github.com/yu-lang/yu/ast"
	"github.com/yu-lang/yu/diag"
	"github.com/yu-lang/yu/token"
)

// operatorPrecedence mirrors the original grammar's precedence table:
// */% bind tighter than +-, which bind tighter than the bitwise/logical
// operators &|^. Unlisted operators are not binary infix operators.
func operatorPrecedence(k token.Kind) int {
	switch k {
	case token.STAR, token.SLASH, token.PERCENT:
		return 3
	case token.PLUS, token.MINUS:
		return 2
	case token.AND, token.OR, token.XOR:
		return 1
	default:
		return 0
	}
}

func isBinaryOperator(k token.Kind) bool {
	return operatorPrecedence(k) > 0
}

func (p *Parser) parseExpression() uint32 {
	return p.parseBinary(0)
}

// parseBinary implements precedence-climbing: it parses a unary
// expression, then repeatedly folds in binary operators whose precedence
// is strictly greater than minPrec, recursing with the operator's own
// precedence as the new minimum so operators of equal precedence group
// left.
func (p *Parser) parseBinary(minPrec int) uint32 {
	left := p.parseUnary()

	for isBinaryOperator(p.cur().Kind) && operatorPrecedence(p.cur().Kind) > minPrec {
		op := p.cur()
		prec := operatorPrecedence(op.Kind)
		p.advance()
		right := p.parseBinary(prec)
		line, col := p.file.TokenLineCol(op)
		left = p.tree.Expressions.AddBinary(line, col, left, op.Kind, right)
	}

	return left
}

// parseUnary handles the prefix unary operators (arithmetic negation,
// logical negation, bitwise complement, address-of) and the await
// expression form, all of which share the same right-recursive shape.
func (p *Parser) parseUnary() uint32 {
	if p.matchAny(token.MINUS, token.BANG, token.TILDE, token.AND, token.AWAIT) {
		op := p.advance()
		operand := p.parseUnary()
		line, col := p.file.TokenLineCol(op)
		return p.tree.Expressions.AddUnary(line, col, op.Kind, operand)
	}
	return p.parseCall()
}

// parseCall parses a primary expression followed by zero or more postfix
// suffixes: calls (foo(1, 2)), member access (foo.bar), and indexing
// (foo[0]), chainable in any order (e.g. foo(1).bar[0]).
func (p *Parser) parseCall() uint32 {
	expr := p.parsePrimary()
	for {
		switch {
		case p.match(token.LEFT_PAREN):
			expr = p.finishCall(expr)
		case p.match(token.DOT):
			expr = p.finishMember(expr)
		case p.match(token.LEFT_BRACKET):
			expr = p.finishIndex(expr)
		default:
			return expr
		}
	}
}

func (p *Parser) finishCall(callee uint32) uint32 {
	lparen := p.advance()
	var args []uint32
	if !p.match(token.RIGHT_PAREN) {
		for {
			args = append(args, p.parseExpression())
			if !p.match(token.COMMA) {
				break
			}
			p.advance()
		}
	}
	p.expect(token.RIGHT_PAREN)
	line, col := p.file.TokenLineCol(lparen)
	return p.tree.Expressions.AddCall(line, col, callee, args)
}

func (p *Parser) finishMember(object uint32) uint32 {
	dot := p.advance()
	nameTok := p.expect(token.IDENTIFIER)
	name := token.TokenValue(p.file.Source, nameTok)
	line, col := p.file.TokenLineCol(dot)
	return p.tree.Expressions.AddMember(line, col, object, name)
}

func (p *Parser) finishIndex(object uint32) uint32 {
	lbracket := p.advance()
	index := p.parseExpression()
	p.expect(token.RIGHT_BRACKET)
	line, col := p.file.TokenLineCol(lbracket)
	return p.tree.Expressions.AddIndex(line, col, object, index)
}

func (p *Parser) parsePrimary() uint32 {
	switch p.cur().Kind {
	case token.NUM_LITERAL, token.STR_LITERAL, token.TRUE, token.FALSE, token.NIL:
		return p.parseLiteral()
	case token.IDENTIFIER:
		return p.parseIdentifier()
	case token.LEFT_PAREN:
		return p.parseGrouping()
	default:
		p.errorf(diag.UnexpectedToken, "expected expression, found %s", p.cur().Kind)
		line, col := p.lineCol()
		return p.tree.Expressions.AddLiteral(line, col, token.NIL, "")
	}
}

func (p *Parser) lineCol() (int, int) {
	line, col := p.file.TokenLineCol(p.cur())
	return line, col
}

func (p *Parser) parseGrouping() uint32 {
	lparen := p.advance()
	inner := p.parseExpression()
	p.expect(token.RIGHT_PAREN)
	line, col := p.file.TokenLineCol(lparen)
	return p.tree.Expressions.AddGrouping(line, col, inner)
}

func (p *Parser) parseLiteral() uint32 {
	tok := p.advance()
	line, col := p.file.TokenLineCol(tok)
	value := token.TokenValue(p.file.Source, tok)
	return p.tree.Expressions.AddLiteral(line, col, tok.Kind, value)
}

func (p *Parser) parseIdentifier() uint32 {
	tok := p.advance()
	line, col := p.file.TokenLineCol(tok)
	name := token.TokenValue(p.file.Source, tok)

	symIdx, ok := p.lookupSymbol(name)
	if !ok {
		p.errorf(diag.UnresolvedSymbol, "undefined symbol %q", name)
	}
	return p.tree.Expressions.AddVariable(line, col, name, symIdx)
}

// inferLiteralType mirrors the original variable-declaration type
// inference: string literals infer STRING, true/false/null infer
// BOOLEAN/NIL, a value containing '.' infers F64, and any other numeral
// infers I32 if it fits in a signed 32-bit value, else I64.
func inferLiteralType(tok token.Token, text string) token.Kind {
	switch tok.Kind {
	case token.STR_LITERAL:
		return token.STRING
	case token.TRUE, token.FALSE:
		return token.BOOLEAN
	case token.NIL:
		return token.NIL
	}
	if strings.Contains(text, ".") {
		return token.F64
	}
	var value uint64
	for i := 0; i < len(text); i++ {
		c := text[i]
		if c < '0' || c > '9' {
			break
		}
		value = value*10 + uint64(c-'0')
	}
	if value <= 0x7fffffff {
		return token.I32
	}
	return token.I64
}

// inferDeclType derives a variable declaration's type from its
// initializer expression when no explicit annotation was given. Literal
// initializers use inferLiteralType; a bare variable reference copies
// the referenced symbol's declared type; anything else falls back to
// i32, the same default the original inference rule collapses unknown
// numeral bases to.
func (p *Parser) inferDeclType(initExpr uint32) uint32 {
	switch p.tree.Expressions.Kinds[initExpr] {
	case ast.ExprLiteral:
		litKind := p.tree.Expressions.LiteralKind[initExpr]
		text := p.tree.Expressions.LiteralValue[initExpr]
		inferredKind := inferLiteralType(token.Token{Kind: litKind}, text)
		return p.tree.Types.AddPrimitive(inferredKind.String())
	case ast.ExprVariable:
		symIdx := p.tree.Expressions.SymbolIndex[initExpr]
		if int(symIdx) < p.tree.Symbols.Len() {
			return p.tree.Symbols.Types[symIdx]
		}
	}
	return p.tree.Types.AddPrimitive("I32")
}
