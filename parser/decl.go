package parser

import (
	"github.com/yu-lang/yu/ast"
	"github.com/yu-lang/yu/diag"
	"github.com/yu-lang/yu/token"
)

// parseVariableDecl parses `var name [: type] = expr;` or the const
// variant. When no explicit type annotation is given, the declared
// type is inferred from the initializer following the original
// inference rule (see inferLiteralType).
func (p *Parser) parseVariableDecl() uint32 {
	start := p.cur()
	isConst := p.match(token.CONST)
	p.advance() // var or const

	nameTok := p.expect(token.IDENTIFIER)
	name := token.TokenValue(p.file.Source, nameTok)

	var typeIndex uint32
	explicitType := false
	if p.match(token.COLON) {
		p.advance()
		typeIndex = p.parseType()
		explicitType = true
	}

	p.expect(token.EQUAL)
	initExpr := p.parseExpression()

	if !explicitType {
		typeIndex = p.inferDeclType(initExpr)
	}

	p.expect(token.SEMICOLON)

	flags := ast.SymbolFlags(0)
	if isConst {
		flags |= ast.SymbolIsConst
	}
	symIdx := p.addSymbol(name, typeIndex, flags)

	line, col := p.file.TokenLineCol(start)
	return p.tree.Statements.AddVarDecl(line, col, name, typeIndex, initExpr, symIdx, isConst)
}

// parseReturnStatement parses `return;` or `return expr;`.
func (p *Parser) parseReturnStatement() uint32 {
	start := p.advance() // 'return'
	if p.match(token.SEMICOLON) {
		p.advance()
		line, col := p.file.TokenLineCol(start)
		return p.tree.Statements.AddReturn(line, col, 0, false)
	}
	value := p.parseExpression()
	p.expect(token.SEMICOLON)
	line, col := p.file.TokenLineCol(start)
	return p.tree.Statements.AddReturn(line, col, value, true)
}

// parseFunctionDecl parses a function declaration:
//
//	function name<Generics>(params) -> returnType { body }
//
// The arrow is two adjacent tokens (MINUS, GREATER), not a single lexer
// token: the grammar has no shift operator to disambiguate against, so
// the lexer's unconditional two-GREATER-token rule for `>>` never
// collides with it.
func (p *Parser) parseFunctionDecl() uint32 {
	return p.parseFunctionDeclWithVisibility(ast.VisibilityDefault)
}

func (p *Parser) parseFunctionDeclWithVisibility(vis ast.Visibility) uint32 {
	start := p.advance() // 'function'
	nameTok := p.expect(token.IDENTIFIER)
	name := token.TokenValue(p.file.Source, nameTok)

	var generics []string
	if p.match(token.LESS) {
		generics = p.parseGenericParams()
	}

	p.scope++
	params, paramTypes := p.parseParamList()

	p.expect(token.MINUS)
	p.expect(token.GREATER)
	returnType := p.parseType()

	funcType := p.tree.Types.AddFunction(paramTypes, returnType)
	if len(generics) > 0 {
		p.tree.Types.GenericNames = append(p.tree.Types.GenericNames, generics...)
	}

	symFlags := ast.SymbolIsFunction
	symIdx := p.addSymbol(name, funcType, symFlags)

	body := p.parseBlockStatement()
	p.scope--

	line, col := p.file.TokenLineCol(start)
	idx := p.tree.Statements.AddFunction(line, col, name, funcType, body, params, vis)
	_ = symIdx
	return idx
}

// parseParamList parses `(name: type, ...)` and declares each parameter
// as a symbol in the function's scope, returning both their symbol
// indices and their type indices in declaration order.
func (p *Parser) parseParamList() (symbolIndices, typeIndices []uint32) {
	p.expect(token.LEFT_PAREN)
	if p.match(token.RIGHT_PAREN) {
		p.advance()
		return nil, nil
	}
	for {
		nameTok := p.expect(token.IDENTIFIER)
		name := token.TokenValue(p.file.Source, nameTok)
		p.expect(token.COLON)
		typeIdx := p.parseType()
		symIdx := p.addSymbol(name, typeIdx, 0)
		symbolIndices = append(symbolIndices, symIdx)
		typeIndices = append(typeIndices, typeIdx)

		if !p.match(token.COMMA) {
			break
		}
		p.advance()
	}
	p.expect(token.RIGHT_PAREN)
	return symbolIndices, typeIndices
}

// parseType parses a primitive type name or a generic instantiation like
// List<i32>; nested generics tokenize as two adjacent GREATER tokens
// (e.g. List<List<i32>>), which this function consumes one at a time.
func (p *Parser) parseType() uint32 {
	if !p.cur().Kind.IsPrimitiveType() && !p.match(token.IDENTIFIER) {
		p.errorf(diag.UnexpectedToken, "expected type, found %s", p.cur().Kind)
		return p.tree.Types.AddPrimitive("void")
	}
	nameTok := p.advance()
	name := token.TokenValue(p.file.Source, nameTok)

	if !p.match(token.LESS) {
		return p.tree.Types.AddPrimitive(name)
	}

	p.advance() // '<'
	var generics []string
	for {
		argType := p.parseType()
		generics = append(generics, p.tree.Types.Names[argType])
		if p.match(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	p.expect(token.GREATER)
	return p.tree.Types.AddGeneric(name, generics)
}

// parseGenericParams parses `<T, U, ...Rest>` generic parameter lists,
// including at most one trailing variadic `...Name` parameter, and
// nested `<...>` bounds. It always consumes a single closing GREATER:
// the lexer never fuses `>>` into one token (spec open question 2), so
// closing two nested generic lists consumes two adjacent GREATER tokens,
// one per parseGenericParams/parseType return.
func (p *Parser) parseGenericParams() []string {
	p.expect(token.LESS)
	var names []string
	for !p.match(token.GREATER) && !p.isAtEnd() {
		variadic := false
		if p.match(token.DOT) {
			// '...' lexes as three DOT tokens.
			p.advance()
			p.advance()
			p.advance()
			variadic = true
		}
		nameTok := p.expect(token.IDENTIFIER)
		name := token.TokenValue(p.file.Source, nameTok)
		names = append(names, name)

		flags := ast.SymbolIsType | ast.SymbolIsGenericParam
		if variadic {
			flags |= ast.SymbolIsVariadic
		}
		p.addSymbol(name, 0, flags)

		if p.match(token.LESS) {
			p.parseGenericParams()
		}
		if p.match(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	p.expect(token.GREATER)
	return names
}

// parseClassDecl parses `class Name { members... }`, where each member
// is a field declaration or a method declaration.
func (p *Parser) parseClassDecl() uint32 {
	return p.parseClassDeclWithVisibility(ast.VisibilityDefault)
}

func (p *Parser) parseClassDeclWithVisibility(vis ast.Visibility) uint32 {
	start := p.advance() // 'class'
	nameTok := p.expect(token.IDENTIFIER)
	name := token.TokenValue(p.file.Source, nameTok)

	classType := p.tree.Types.AddPrimitive(name)
	p.addSymbol(name, classType, ast.SymbolIsType)

	p.expect(token.LEFT_BRACE)
	p.scope++
	var members []uint32
	for !p.match(token.RIGHT_BRACE) && !p.isAtEnd() {
		members = append(members, p.parseClassMember())
	}
	p.scope--
	p.expect(token.RIGHT_BRACE)

	line, col := p.file.TokenLineCol(start)
	return p.tree.Statements.AddClass(line, col, name, members, vis)
}

func (p *Parser) parseClassMember() uint32 {
	vis := ast.VisibilityDefault
	switch p.cur().Kind {
	case token.PUBLIC:
		vis = ast.VisibilityPublic
		p.advance()
	case token.PRIVATE:
		vis = ast.VisibilityPrivate
		p.advance()
	case token.PROTECTED:
		vis = ast.VisibilityProtected
		p.advance()
	}

	if p.match(token.FUNCTION) {
		return p.parseFunctionDeclWithVisibility(vis)
	}
	return p.parseVariableDecl()
}

// parseEnumDecl parses `enum Name { A, B = expr, C };`.
func (p *Parser) parseEnumDecl() uint32 {
	start := p.advance() // 'enum'
	nameTok := p.expect(token.IDENTIFIER)
	name := token.TokenValue(p.file.Source, nameTok)

	enumType := p.tree.Types.AddPrimitive(name)
	p.addSymbol(name, enumType, ast.SymbolIsEnum)

	p.expect(token.LEFT_BRACE)
	var memberNames []string
	var memberValues []uint32
	for !p.match(token.RIGHT_BRACE) && !p.isAtEnd() {
		memberTok := p.expect(token.IDENTIFIER)
		memberName := token.TokenValue(p.file.Source, memberTok)
		memberNames = append(memberNames, memberName)

		var value uint32
		if p.match(token.EQUAL) {
			p.advance()
			value = p.parseExpression()
		}
		memberValues = append(memberValues, value)
		p.addSymbol(memberName, enumType, ast.SymbolIsEnumMember)

		if p.match(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	p.expect(token.RIGHT_BRACE)
	if p.match(token.SEMICOLON) {
		p.advance()
	}

	line, col := p.file.TokenLineCol(start)
	return p.tree.Statements.AddEnum(line, col, name, memberNames, memberValues)
}

// parseImportStatement parses `import path;` or
// `from path import name [as alias];`.
func (p *Parser) parseImportStatement() uint32 {
	start := p.cur()
	if p.match(token.FROM) {
		p.advance()
		pathTok := p.expect(token.IDENTIFIER)
		path := token.TokenValue(p.file.Source, pathTok)
		p.expect(token.IMPORT)
		nameTok := p.expect(token.IDENTIFIER)
		name := token.TokenValue(p.file.Source, nameTok)

		alias := ""
		if p.match(token.AS) {
			p.advance()
			aliasTok := p.expect(token.IDENTIFIER)
			alias = token.TokenValue(p.file.Source, aliasTok)
		}
		p.expect(token.SEMICOLON)
		line, col := p.file.TokenLineCol(start)
		return p.tree.Statements.AddImport(line, col, name, path, alias)
	}

	p.advance() // 'import'
	pathTok := p.expect(token.IDENTIFIER)
	path := token.TokenValue(p.file.Source, pathTok)
	p.expect(token.SEMICOLON)
	line, col := p.file.TokenLineCol(start)
	return p.tree.Statements.AddImport(line, col, path, "", "")
}

// parseModifiedDecl parses a declaration prefixed by visibility or
// storage modifiers (public/private/protected/static/final class|function).
func (p *Parser) parseModifiedDecl() uint32 {
	vis := ast.VisibilityDefault
	var extraFlags ast.StmtFlags
	for {
		switch p.cur().Kind {
		case token.PUBLIC:
			vis = ast.VisibilityPublic
			p.advance()
			continue
		case token.PRIVATE:
			vis = ast.VisibilityPrivate
			p.advance()
			continue
		case token.PROTECTED:
			vis = ast.VisibilityProtected
			p.advance()
			continue
		case token.STATIC:
			extraFlags |= ast.StmtIsStatic
			p.advance()
			continue
		case token.FINAL:
			extraFlags |= ast.StmtIsFinal
			p.advance()
			continue
		}
		break
	}

	var idx uint32
	if p.match(token.CLASS) {
		idx = p.parseClassDeclWithVisibility(vis)
	} else {
		idx = p.parseFunctionDeclWithVisibility(vis)
	}
	p.tree.Statements.Flags[idx] |= extraFlags
	return idx
}
