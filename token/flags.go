package token

// Flags is an 8-bit bitset of structural lexical errors attached to a
// single token. The lexer never rejects malformed input outright; it
// flags the offending token and keeps going.
type Flags uint8

const (
	UNTERMINATED_STRING Flags = 1 << iota
	INVALID_ESCAPE_SEQUENCE
	INVALID_DIGIT
	MULTIPLE_DECIMAL_POINTS
	INVALID_EXPONENT
	UNTERMINATED_BLOCK_COMMENT
	INVALID_IDENTIFIER_START
	INVALID_IDENTIFIER_CHAR
)

// Has reports whether all bits in f are set.
func (flags Flags) Has(f Flags) bool {
	return flags&f == f
}

var flagNames = []struct {
	flag Flags
	name string
}{
	{UNTERMINATED_STRING, "UNTERMINATED_STRING"},
	{INVALID_ESCAPE_SEQUENCE, "INVALID_ESCAPE_SEQUENCE"},
	{INVALID_DIGIT, "INVALID_DIGIT"},
	{MULTIPLE_DECIMAL_POINTS, "MULTIPLE_DECIMAL_POINTS"},
	{INVALID_EXPONENT, "INVALID_EXPONENT"},
	{UNTERMINATED_BLOCK_COMMENT, "UNTERMINATED_BLOCK_COMMENT"},
	{INVALID_IDENTIFIER_START, "INVALID_IDENTIFIER_START"},
	{INVALID_IDENTIFIER_CHAR, "INVALID_IDENTIFIER_CHAR"},
}

// String lists the set flag names joined by '|', or "NONE" if flags is 0.
func (flags Flags) String() string {
	if flags == 0 {
		return "NONE"
	}
	out := ""
	for _, fn := range flagNames {
		if flags.Has(fn.flag) {
			if out != "" {
				out += "|"
			}
			out += fn.name
		}
	}
	return out
}
