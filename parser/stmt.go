package parser

import (
	"github.com/yu-lang/yu/diag"
	"github.com/yu-lang/yu/token"
)

// parseStatement dispatches on the current token to parse a single
// non-declaration statement, recovering via synchronize on error.
func (p *Parser) parseStatement() uint32 {
	var idx uint32
	switch p.cur().Kind {
	case token.IF:
		idx = p.parseIfStatement()
	case token.WHILE:
		idx = p.parseWhileStatement()
	case token.FOR:
		idx = p.parseForStatement()
	case token.LEFT_BRACE:
		idx = p.parseBlockStatement()
	case token.RETURN:
		idx = p.parseReturnStatement()
	case token.SWITCH:
		idx = p.parseSwitchStatement()
	case token.TRY:
		idx = p.parseTryStatement()
	case token.BREAK:
		idx = p.parseBreakStatement()
	case token.CONTINUE:
		idx = p.parseContinueStatement()
	default:
		idx = p.parseExpressionStatement()
	}

	if p.panicMode {
		p.synchronize()
	}
	return idx
}

func (p *Parser) parseIfStatement() uint32 {
	start := p.advance() // 'if'
	cond := p.parseExpression()
	then := p.parseBlockStatement()

	hasElse := false
	var elseBody uint32
	if p.match(token.ELSE) {
		p.advance()
		hasElse = true
		if p.match(token.IF) {
			elseBody = p.parseIfStatement()
		} else {
			elseBody = p.parseBlockStatement()
		}
	}

	line, col := p.file.TokenLineCol(start)
	return p.tree.Statements.AddIf(line, col, cond, then, elseBody, hasElse)
}

func (p *Parser) parseWhileStatement() uint32 {
	start := p.advance() // 'while'
	cond := p.parseExpression()
	body := p.parseBlockStatement()
	line, col := p.file.TokenLineCol(start)
	return p.tree.Statements.AddWhile(line, col, cond, body)
}

// parseForStatement parses a C-style `for (init; cond; post) { body }`.
func (p *Parser) parseForStatement() uint32 {
	start := p.advance() // 'for'
	p.expect(token.LEFT_PAREN)

	p.scope++
	var init uint32
	if !p.match(token.SEMICOLON) {
		init = p.parseVariableDecl()
	} else {
		p.advance()
	}

	var cond uint32
	if !p.match(token.SEMICOLON) {
		cond = p.parseExpression()
	}
	p.expect(token.SEMICOLON)

	var post uint32
	if !p.match(token.RIGHT_PAREN) {
		post = p.parseExpression()
	}
	p.expect(token.RIGHT_PAREN)

	body := p.parseBlockStatement()
	p.scope--

	line, col := p.file.TokenLineCol(start)
	return p.tree.Statements.AddFor(line, col, init, cond, post, body)
}

// parseBlockStatement parses `{ stmt... }`, incrementing the lexical
// scope depth for the duration of the block so declarations inside it
// shadow outer symbols and fall out of scope at the closing brace.
func (p *Parser) parseBlockStatement() uint32 {
	start := p.expect(token.LEFT_BRACE)
	p.scope++

	var stmts []uint32
	for !p.match(token.RIGHT_BRACE) && !p.isAtEnd() {
		stmts = append(stmts, p.parseTopLevelOrStatement())
	}

	p.scope--
	line, col := p.file.TokenLineCol(start)
	idx := p.tree.Statements.AddBlock(line, col, stmts, p.scope+1)
	p.expect(token.RIGHT_BRACE)
	return idx
}

// parseTopLevelOrStatement allows declarations (var/function/class/enum)
// to appear nested inside a block, not only at the top level.
func (p *Parser) parseTopLevelOrStatement() uint32 {
	ann := p.parseAnnotations()
	isAsync := p.match(token.ASYNC)
	if isAsync {
		p.advance()
	}

	var idx uint32
	switch p.cur().Kind {
	case token.VAR, token.CONST:
		idx = p.parseVariableDecl()
	case token.FUNCTION:
		idx = p.parseFunctionDecl()
	case token.CLASS:
		idx = p.parseClassDecl()
	case token.ENUM:
		idx = p.parseEnumDecl()
	default:
		idx = p.parseStatement()
	}
	p.attachModifiers(idx, ann, isAsync)
	return idx
}

func (p *Parser) parseExpressionStatement() uint32 {
	start := p.cur()
	expr := p.parseExpression()
	p.expect(token.SEMICOLON)
	line, col := p.file.TokenLineCol(start)
	return p.tree.Statements.AddExpressionStmt(line, col, expr)
}

func (p *Parser) parseBreakStatement() uint32 {
	start := p.advance()
	p.expect(token.SEMICOLON)
	line, col := p.file.TokenLineCol(start)
	return p.tree.Statements.AddBreak(line, col)
}

func (p *Parser) parseContinueStatement() uint32 {
	start := p.advance()
	p.expect(token.SEMICOLON)
	line, col := p.file.TokenLineCol(start)
	return p.tree.Statements.AddContinue(line, col)
}

// parseSwitchStatement parses `switch (subject) { case v: body ... default: body }`.
func (p *Parser) parseSwitchStatement() uint32 {
	start := p.advance() // 'switch'
	p.expect(token.LEFT_PAREN)
	subject := p.parseExpression()
	p.expect(token.RIGHT_PAREN)
	p.expect(token.LEFT_BRACE)

	var values, bodies []uint32
	var defaultBody uint32
	hasDefault := false

	for !p.match(token.RIGHT_BRACE) && !p.isAtEnd() {
		switch p.cur().Kind {
		case token.CASE:
			p.advance()
			val := p.parseExpression()
			p.expect(token.COLON)
			body := p.parseCaseBody()
			values = append(values, val)
			bodies = append(bodies, body)
		case token.DEFAULT:
			p.advance()
			p.expect(token.COLON)
			defaultBody = p.parseCaseBody()
			hasDefault = true
		default:
			p.errorf(diag.UnexpectedToken, "expected case or default, found %s", p.cur().Kind)
			p.advance()
		}
	}
	p.expect(token.RIGHT_BRACE)

	line, col := p.file.TokenLineCol(start)
	return p.tree.Statements.AddSwitch(line, col, subject, values, bodies, defaultBody, hasDefault)
}

// parseCaseBody collects statements until the next case/default/closing
// brace, wrapping them in a synthetic block statement.
func (p *Parser) parseCaseBody() uint32 {
	start := p.cur()
	var stmts []uint32
	for !p.matchAny(token.CASE, token.DEFAULT, token.RIGHT_BRACE) && !p.isAtEnd() {
		stmts = append(stmts, p.parseTopLevelOrStatement())
	}
	line, col := p.file.TokenLineCol(start)
	return p.tree.Statements.AddBlock(line, col, stmts, p.scope)
}

// parseTryStatement parses `try { body } [catch (name) { body }]`.
func (p *Parser) parseTryStatement() uint32 {
	start := p.advance() // 'try'
	body := p.parseBlockStatement()

	hasCatch := false
	var catchParam string
	var catchBody uint32
	if p.match(token.CATCH) {
		p.advance()
		hasCatch = true
		if p.match(token.LEFT_PAREN) {
			p.advance()
			nameTok := p.expect(token.IDENTIFIER)
			catchParam = token.TokenValue(p.file.Source, nameTok)
			p.expect(token.RIGHT_PAREN)
			p.addSymbol(catchParam, 0, 0)
		}
		catchBody = p.parseBlockStatement()
	}

	line, col := p.file.TokenLineCol(start)
	return p.tree.Statements.AddTry(line, col, body, catchParam, catchBody, hasCatch)
}
