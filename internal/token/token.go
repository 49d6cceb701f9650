// Package token defines the lexical tokens of the c4 language, ordered so
// that the operator enumerators double as precedence levels.
package token

// Kind identifies a lexical token. Punctuation that the parser only ever
// tests for equality (`~ ; { } ( ) ] , :`) is represented by its raw byte
// value, so Kind spans the ASCII range plus the named kinds below.
type Kind int

// Named kinds start at 128, just past ASCII, so that single-character
// punctuation can be compared directly against its rune value. A source
// byte of 128 or above passes through the lexer as its own Kind and is not
// distinguished from these.
const (
	Num Kind = 128 + iota
	Fun
	Sys
	Glo
	Loc
	Id

	// keywords
	Char
	Else
	Enum
	If
	Int
	Return
	While

	// operators, ordered by precedence (Assign lowest, Brak highest).
	// expr's precedence-climbing loop relies on this ordering: it keeps
	// consuming operators while the current token's Kind is >= the
	// level it was called with.
	Assign
	Cond
	Lor
	Lan
	Or
	Xor
	And
	Eq
	Ne
	Lt
	Gt
	Le
	Ge
	Shl
	Shr
	Add
	Sub
	Mul
	Div
	Mod
	Inc
	Dec
	Brak
)

var names = map[Kind]string{
	Num: "Num", Fun: "Fun", Sys: "Sys", Glo: "Glo", Loc: "Loc", Id: "Id",
	Char: "char", Else: "else", Enum: "enum", If: "if", Int: "int", Return: "return", While: "while",
	Assign: "=", Cond: "?", Lor: "||", Lan: "&&", Or: "|", Xor: "^", And: "&",
	Eq: "==", Ne: "!=", Lt: "<", Gt: ">", Le: "<=", Ge: ">=", Shl: "<<", Shr: ">>",
	Add: "+", Sub: "-", Mul: "*", Div: "/", Mod: "%", Inc: "++", Dec: "--", Brak: "[",
}

// String renders k for diagnostics and trace output; punctuation kinds
// render as their literal byte.
func (k Kind) String() string {
	if s, ok := names[k]; ok {
		return s
	}
	if k == 0 {
		return "<eof>"
	}
	if k >= 0 && k < 128 {
		return string(rune(k))
	}
	return "<unknown>"
}

// Keywords maps the reserved words to their Kind, in the fixed order they
// must be pre-inserted into the symbol table so that keyword Kind values
// and symbol-table token values agree (spec §4.B).
var Keywords = []struct {
	Name string
	Kind Kind
}{
	{"char", Char},
	{"else", Else},
	{"enum", Enum},
	{"if", If},
	{"int", Int},
	{"return", Return},
	{"while", While},
}

// Token is a single lexed unit: its Kind, and an auxiliary integer value
// (an integer literal's value, or a data-segment offset for a string
// literal).
type Token struct {
	Kind Kind
	IVal int32
}
