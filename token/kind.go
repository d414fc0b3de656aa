package token

// Kind identifies the lexical category of a Token. The ordering mirrors the
// original Yu grammar's token_i enum: keywords, primitive type names,
// single-character operators, delimiters, annotations, then the special
// tokens (identifiers, literals, unknown, end of file).
type Kind uint8

const (
	// Keywords
	TRUE Kind = iota
	FALSE
	NIL
	IMPORT
	VAR
	CONST
	FUNCTION
	INLINE
	RETURN
	ENUM
	IF
	ELSE
	FOR
	WHILE
	BREAK
	CONTINUE
	SWITCH
	CASE
	DEFAULT
	CLASS
	FINAL
	PUBLIC
	PRIVATE
	PROTECTED
	STATIC
	AWAIT
	ASYNC
	TRY
	CATCH
	FROM
	AS
	OPERATOR
	NEW
	DELETE

	// Primitive type names
	U8
	I8
	U16
	I16
	U32
	I32
	U64
	I64
	F32
	F64
	STRING
	BOOLEAN
	VOID
	PTR

	// Single-character operators
	PLUS
	MINUS
	STAR
	SLASH
	PERCENT
	EQUAL
	BANG
	LESS
	GREATER
	AND
	OR
	XOR
	TILDE
	DOT

	// Delimiters
	LEFT_PAREN
	RIGHT_PAREN
	LEFT_BRACE
	RIGHT_BRACE
	LEFT_BRACKET
	RIGHT_BRACKET
	COMMA
	COLON
	SEMICOLON
	QUESTION

	// Annotations
	ALIGN_ANNOT
	DEPRECATED_ANNOT
	PACKED_ANNOT
	NO_DISCARD_ANNOT
	VOLATILE_ANNOT
	LAZY_ANNOT
	PURE_ANNOT
	TAIL_REC_ANNOT

	// Special tokens
	IDENTIFIER
	NUM_LITERAL
	STR_LITERAL
	ANNOTATION
	UNKNOWN
	END_OF_FILE
)

var kindNames = [...]string{
	TRUE: "TRUE", FALSE: "FALSE", NIL: "NIL", IMPORT: "IMPORT", VAR: "VAR",
	CONST: "CONST", FUNCTION: "FUNCTION", INLINE: "INLINE", RETURN: "RETURN",
	ENUM: "ENUM", IF: "IF", ELSE: "ELSE", FOR: "FOR", WHILE: "WHILE",
	BREAK: "BREAK", CONTINUE: "CONTINUE", SWITCH: "SWITCH", CASE: "CASE",
	DEFAULT: "DEFAULT", CLASS: "CLASS", FINAL: "FINAL", PUBLIC: "PUBLIC",
	PRIVATE: "PRIVATE", PROTECTED: "PROTECTED", STATIC: "STATIC",
	AWAIT: "AWAIT", ASYNC: "ASYNC", TRY: "TRY", CATCH: "CATCH", FROM: "FROM",
	AS: "AS", OPERATOR: "OPERATOR", NEW: "NEW", DELETE: "DELETE",

	U8: "U8", I8: "I8", U16: "U16", I16: "I16", U32: "U32", I32: "I32",
	U64: "U64", I64: "I64", F32: "F32", F64: "F64", STRING: "STRING",
	BOOLEAN: "BOOLEAN", VOID: "VOID", PTR: "PTR",

	PLUS: "PLUS", MINUS: "MINUS", STAR: "STAR", SLASH: "SLASH",
	PERCENT: "PERCENT", EQUAL: "EQUAL", BANG: "BANG", LESS: "LESS",
	GREATER: "GREATER", AND: "AND", OR: "OR", XOR: "XOR", TILDE: "TILDE",
	DOT: "DOT",

	LEFT_PAREN: "LEFT_PAREN", RIGHT_PAREN: "RIGHT_PAREN",
	LEFT_BRACE: "LEFT_BRACE", RIGHT_BRACE: "RIGHT_BRACE",
	LEFT_BRACKET: "LEFT_BRACKET", RIGHT_BRACKET: "RIGHT_BRACKET",
	COMMA: "COMMA", COLON: "COLON", SEMICOLON: "SEMICOLON",
	QUESTION: "QUESTION",

	ALIGN_ANNOT: "ALIGN_ANNOT", DEPRECATED_ANNOT: "DEPRECATED_ANNOT",
	PACKED_ANNOT: "PACKED_ANNOT", NO_DISCARD_ANNOT: "NO_DISCARD_ANNOT",
	VOLATILE_ANNOT: "VOLATILE_ANNOT", LAZY_ANNOT: "LAZY_ANNOT",
	PURE_ANNOT: "PURE_ANNOT", TAIL_REC_ANNOT: "TAIL_REC_ANNOT",

	IDENTIFIER:  "IDENTIFIER",
	NUM_LITERAL: "NUM_LITERAL",
	STR_LITERAL: "STR_LITERAL",
	ANNOTATION:  "ANNOTATION",
	UNKNOWN:     "UNKNOWN",
	END_OF_FILE: "EOF",
}

// String returns the canonical uppercase name used in .ytok dumps.
func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "UNKNOWN"
}

// IsPrimitiveType reports whether k names one of the primitive type
// keywords (u8..i64, f32, f64, string, boolean, void, Ptr).
func (k Kind) IsPrimitiveType() bool {
	return k >= U8 && k <= PTR
}

// keywords maps source text to the keyword/type/annotation Kind it denotes.
// "new" and "delete" are deliberately distinct entries: the original Yu
// lexer mapped both to the same NEW value, which the language spec treats
// as a bug.
var keywords = map[string]Kind{
	"true": TRUE, "false": FALSE, "null": NIL, "import": IMPORT,
	"var": VAR, "const": CONST, "function": FUNCTION, "inline": INLINE,
	"return": RETURN, "enum": ENUM, "if": IF, "else": ELSE, "for": FOR,
	"while": WHILE, "break": BREAK, "continue": CONTINUE, "switch": SWITCH,
	"case": CASE, "default": DEFAULT, "class": CLASS, "final": FINAL,
	"public": PUBLIC, "private": PRIVATE, "protected": PROTECTED,
	"static": STATIC, "await": AWAIT, "async": ASYNC, "try": TRY,
	"catch": CATCH, "from": FROM, "as": AS, "operator": OPERATOR,
	"new": NEW, "delete": DELETE,

	"u8": U8, "i8": I8, "u16": U16, "i16": I16, "u32": U32, "i32": I32,
	"u64": U64, "i64": I64, "f32": F32, "f64": F64, "string": STRING,
	"boolean": BOOLEAN, "void": VOID, "Ptr": PTR,

	"@align": ALIGN_ANNOT, "@deprecated": DEPRECATED_ANNOT,
	"@packed": PACKED_ANNOT, "@nodiscard": NO_DISCARD_ANNOT,
	"@volatile": VOLATILE_ANNOT, "@lazy": LAZY_ANNOT, "@pure": PURE_ANNOT,
	"@tailrec": TAIL_REC_ANNOT,
}

// LookupKeyword returns the Kind for text if it names a keyword, primitive
// type, or annotation, and ok=true. Otherwise it returns ok=false, meaning
// text should be tokenized as IDENTIFIER or ANNOTATION.
func LookupKeyword(text string) (Kind, bool) {
	k, ok := keywords[text]
	return k, ok
}

// singleCharKinds maps a single byte to the Kind of the operator/delimiter
// it denotes. Index by the byte value; init fills every byte that names no
// operator or delimiter with UNKNOWN.
var singleCharKinds [256]Kind

func init() {
	for i := range singleCharKinds {
		singleCharKinds[i] = UNKNOWN
	}
	table := map[byte]Kind{
		'+': PLUS, '-': MINUS, '*': STAR, '/': SLASH, '%': PERCENT,
		'=': EQUAL, '!': BANG, '<': LESS, '>': GREATER, '&': AND,
		'|': OR, '^': XOR, '~': TILDE, '.': DOT,
		'(': LEFT_PAREN, ')': RIGHT_PAREN, '{': LEFT_BRACE, '}': RIGHT_BRACE,
		'[': LEFT_BRACKET, ']': RIGHT_BRACKET, ',': COMMA, ':': COLON,
		';': SEMICOLON, '?': QUESTION,
	}
	for b, k := range table {
		singleCharKinds[b] = k
	}
}

// SingleCharKind returns the Kind of the single-character operator or
// delimiter denoted by b, or UNKNOWN if b names neither.
func SingleCharKind(b byte) Kind {
	return singleCharKinds[b]
}
