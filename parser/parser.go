// Package parser implements the recursive-descent parser that turns a
// token.List into a columnar ast.AST. It never panics on malformed input:
// on a syntax error it reports a diag.Diagnostic through the configured
// Sink, enters panic mode, and resynchronizes at the next statement
// boundary rather than aborting the parse.
package parser

import (
	"fmt"

	"github.com/yu-lang/yu/ast"
	"github.com/yu-lang/yu/diag"
	"github.com/yu-lang/yu/token"
)

// Parser holds the mutable state of a single parse. It is not safe for
// concurrent use; construct one Parser per compilation unit.
type Parser struct {
	file   *token.File
	tokens *token.List
	sink   diag.Sink

	tree *ast.AST

	pos       int
	scope     int
	panicMode bool
}

// New constructs a Parser over tokens lexed from file, reporting
// diagnostics to sink.
func New(file *token.File, tokens *token.List, sink diag.Sink) *Parser {
	return &Parser{
		file:   file,
		tokens: tokens,
		sink:   sink,
		tree:   ast.New(),
	}
}

// Parse consumes the entire token stream and returns the resulting AST.
// Parse errors are reported to the Parser's Sink rather than returned;
// callers should check the Sink for errors after Parse returns.
func (p *Parser) Parse() *ast.AST {
	var stmts []uint32
	for !p.isAtEnd() {
		if stmt, ok := p.parseTopLevel(); ok {
			stmts = append(stmts, stmt)
		}
	}
	p.tree.SetRoot(stmts)
	return p.tree
}

func (p *Parser) parseTopLevel() (uint32, bool) {
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
	case token.IMPORT, token.FROM:
		idx = p.parseImportStatement()
	case token.PUBLIC, token.PRIVATE, token.PROTECTED, token.STATIC, token.FINAL:
		idx = p.parseModifiedDecl()
	default:
		idx = p.parseStatement()
	}
	p.attachModifiers(idx, ann, isAsync)
	return idx, true
}

// annotationKinds maps each `@`-prefixed annotation token to its
// Annotations bit.
var annotationKinds = map[token.Kind]ast.Annotations{
	token.ALIGN_ANNOT:      ast.AnnotAlign,
	token.DEPRECATED_ANNOT: ast.AnnotDeprecated,
	token.PACKED_ANNOT:     ast.AnnotPacked,
	token.NO_DISCARD_ANNOT: ast.AnnotNoDiscard,
	token.VOLATILE_ANNOT:   ast.AnnotVolatile,
	token.LAZY_ANNOT:       ast.AnnotLazy,
	token.PURE_ANNOT:       ast.AnnotPure,
	token.TAIL_REC_ANNOT:   ast.AnnotTailRec,
}

// parseAnnotations consumes a run of leading `@align`/`@packed`/etc.
// annotation tokens and folds them into a single bitset, to be attached
// to the declaration that follows.
func (p *Parser) parseAnnotations() ast.Annotations {
	var ann ast.Annotations
	for {
		bit, ok := annotationKinds[p.cur().Kind]
		if !ok {
			return ann
		}
		ann |= bit
		p.advance()
	}
}

// attachModifiers records the leading annotation bitset and async keyword
// parsed ahead of a declaration onto the declaration's own statement node.
func (p *Parser) attachModifiers(idx uint32, ann ast.Annotations, isAsync bool) {
	if ann != 0 {
		p.tree.Statements.SetAnnotations(idx, ann)
	}
	if isAsync {
		p.tree.Statements.Flags[idx] |= ast.StmtIsAsync
	}
}

func (p *Parser) cur() token.Token {
	if p.pos >= p.tokens.Len() {
		return p.tokens.At(p.tokens.Len() - 1)
	}
	return p.tokens.At(p.pos)
}

func (p *Parser) peek(offset int) token.Token {
	idx := p.pos + offset
	if idx >= p.tokens.Len() {
		return p.tokens.At(p.tokens.Len() - 1)
	}
	return p.tokens.At(idx)
}

func (p *Parser) curText() string {
	return token.TokenValue(p.file.Source, p.cur())
}

func (p *Parser) isAtEnd() bool {
	return p.cur().Kind == token.END_OF_FILE
}

func (p *Parser) advance() token.Token {
	t := p.cur()
	if !p.isAtEnd() {
		p.pos++
	}
	return t
}

func (p *Parser) match(k token.Kind) bool {
	return p.cur().Kind == k
}

func (p *Parser) matchAny(kinds ...token.Kind) bool {
	for _, k := range kinds {
		if p.cur().Kind == k {
			return true
		}
	}
	return false
}

// expect consumes the current token if it has kind k, else reports an
// unexpected-token diagnostic, enters panic mode, and returns the current
// token unconsumed.
func (p *Parser) expect(k token.Kind) token.Token {
	if p.match(k) {
		return p.advance()
	}
	p.errorf(diag.UnexpectedToken, "expected %s, found %s", k, p.cur().Kind)
	return p.cur()
}

func (p *Parser) errorf(code diag.Code, format string, args ...any) {
	line, col := p.file.TokenLineCol(p.cur())
	p.sink.Report(diag.Diagnostic{
		Severity: diag.Error,
		Code:     code,
		Message:  fmt.Sprintf(format, args...),
		File:     p.file.Name,
		Line:     line,
		Col:      col,
		Length:   int(p.cur().Length),
	})
	p.panicMode = true
}

// synchronize discards tokens until it finds one that plausibly starts a
// new statement, clearing panic mode so parsing can resume.
func (p *Parser) synchronize() {
	p.panicMode = false
	for !p.isAtEnd() {
		if p.cur().Kind == token.SEMICOLON {
			p.advance()
			return
		}
		switch p.cur().Kind {
		case token.FUNCTION, token.VAR, token.CONST, token.IF, token.WHILE,
			token.FOR, token.RETURN, token.CLASS, token.ENUM, token.RIGHT_BRACE:
			return
		}
		p.advance()
	}
}

func (p *Parser) addSymbol(name string, typeIndex uint32, flags ast.SymbolFlags) uint32 {
	return p.tree.Symbols.Add(name, typeIndex, p.scope, flags)
}

func (p *Parser) lookupSymbol(name string) (uint32, bool) {
	return p.tree.Symbols.Lookup(name, p.scope)
}
